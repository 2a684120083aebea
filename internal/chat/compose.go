package chat

import (
	"fmt"
	"strings"

	"chatapp/internal/models"
)

// MaxFileDumpChars caps how much of each attached file is inlined into the
// prompt, roughly 2,500 tokens per file.
const MaxFileDumpChars = 10000

// TruncationMarker is appended to a file body cut at MaxFileDumpChars.
const TruncationMarker = "\n... [Content truncated due to length] ...\n"

// DefaultFilePrompt substitutes for an empty input when files are attached.
const DefaultFilePrompt = "I've uploaded some files. Please analyze them."

// FileDump renders attached files as the prompt block appended to a user
// message. Empty when no files are attached.
func FileDump(files []models.UploadedFile) string {
	if len(files) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\n\nUPLOADED FILES:\n\n")
	for i, f := range files {
		fmt.Fprintf(&sb, "FILE %d: %s\n", i+1, f.Name)
		sb.WriteString("```\n")
		body := f.Content
		if runes := []rune(body); len(runes) > MaxFileDumpChars {
			body = string(runes[:MaxFileDumpChars]) + TruncationMarker
		}
		sb.WriteString(body)
		sb.WriteString("\n```\n\n")
	}
	sb.WriteString("Please use the content of these files to inform your response.\n")
	return sb.String()
}

// ComposeUserMessage builds the user turn for a submission: Content is the
// text plus the file dump, DisplayContent the original text so the UI never
// shows the dump inline. Files are copied by value at submission time.
func ComposeUserMessage(text string, files []models.UploadedFile) models.Message {
	if text == "" && len(files) > 0 {
		text = DefaultFilePrompt
	}

	m := models.Message{
		Role:           models.RoleUser,
		Content:        text + FileDump(files),
		DisplayContent: text,
	}
	if len(files) > 0 {
		m.AttachedFiles = append([]models.UploadedFile(nil), files...)
	}
	return m
}
