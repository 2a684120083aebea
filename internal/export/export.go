// Package export renders chats and single messages to downloadable files.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"chatapp/internal/models"
)

// Format selects an export encoding.
type Format string

const (
	FormatText Format = "txt"
	FormatDocx Format = "docx"
	FormatPDF  Format = "pdf"
)

// pdfNote is appended to PDF exports, which are produced as annotated text.
const pdfNote = "NOTE: This is a text export that you can convert to PDF using a PDF converter tool.\n"

// SenderName maps a message role to its display name.
func SenderName(role, agentName string) string {
	if role == models.RoleAssistant {
		return agentName
	}
	return "You"
}

// ChatText renders a full chat transcript. System messages are omitted and
// attachment dumps are replaced by the user's typed text.
func ChatText(chat *models.Chat, agentName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", chat.Title)
	fmt.Fprintf(&b, "Date: %s\n", chat.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Agent: %s\n\n", agentName)
	for _, m := range chat.Messages {
		if m.Role == models.RoleSystem {
			continue
		}
		fmt.Fprintf(&b, "## %s:\n%s\n\n", SenderName(m.Role, agentName), m.Display())
	}
	return b.String()
}

// MessageText renders one message on its own.
func MessageText(msg models.Message, agentName string) string {
	var b strings.Builder
	b.WriteString("# Message Export\n")
	fmt.Fprintf(&b, "Date: %s\n\n", time.Now().Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "## %s:\n%s\n", SenderName(msg.Role, agentName), msg.Display())
	return b.String()
}

// ChatFilename builds the output name for a whole-chat export.
func ChatFilename(chatID string, f Format) string {
	ext := string(f)
	if f == FormatPDF {
		ext = "txt"
	}
	return fmt.Sprintf("chat_%s_%s.%s", chatID, time.Now().Format("2006-01-02"), ext)
}

// MessageFilename builds the output name for a single-message export.
func MessageFilename(role string, f Format) string {
	ext := string(f)
	if f == FormatPDF {
		ext = "txt"
	}
	return fmt.Sprintf("message_%d_%s.%s", time.Now().UnixMilli(), role, ext)
}

// Chat writes a chat transcript to dir in the requested format and returns
// the written path.
func Chat(dir string, chat *models.Chat, agentName string, f Format) (string, error) {
	path := filepath.Join(dir, ChatFilename(chat.ID, f))
	switch f {
	case FormatDocx:
		return path, writeDocx(path, chat.Title, chatLines(chat, agentName))
	case FormatPDF:
		return path, writeFile(path, pdfNote+"\n"+ChatText(chat, agentName))
	default:
		return path, writeFile(path, ChatText(chat, agentName))
	}
}

// Message writes one message to dir in the requested format and returns the
// written path.
func Message(dir string, msg models.Message, agentName string, f Format) (string, error) {
	path := filepath.Join(dir, MessageFilename(msg.Role, f))
	switch f {
	case FormatDocx:
		return path, writeDocx(path, "Message Export", messageLines(msg, agentName))
	case FormatPDF:
		return path, writeFile(path, pdfNote+"\n"+MessageText(msg, agentName))
	default:
		return path, writeFile(path, MessageText(msg, agentName))
	}
}

func chatLines(chat *models.Chat, agentName string) []line {
	lines := []line{
		{text: fmt.Sprintf("Date: %s", chat.CreatedAt.Format("2006-01-02 15:04"))},
		{text: fmt.Sprintf("Agent: %s", agentName)},
		{text: ""},
	}
	for _, m := range chat.Messages {
		if m.Role == models.RoleSystem {
			continue
		}
		lines = append(lines,
			line{text: SenderName(m.Role, agentName) + ":", bold: true},
			line{text: m.Display()},
			line{text: ""},
		)
	}
	return lines
}

func messageLines(msg models.Message, agentName string) []line {
	return []line{
		{text: fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02 15:04"))},
		{text: ""},
		{text: SenderName(msg.Role, agentName) + ":", bold: true},
		{text: msg.Display()},
	}
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}
