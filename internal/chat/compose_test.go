package chat

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatapp/internal/models"
)

func file(name, content string) models.UploadedFile {
	return models.UploadedFile{Name: name, Content: content, Size: int64(len(content))}
}

func TestFileDumpEmpty(t *testing.T) {
	assert.Equal(t, "", FileDump(nil))
}

func TestFileDumpFormat(t *testing.T) {
	dump := FileDump([]models.UploadedFile{
		file("main.go", "package main"),
		file("util.py", "def f(): pass"),
	})

	assert.True(t, strings.HasPrefix(dump, "\n\nUPLOADED FILES:\n\n"))
	assert.Contains(t, dump, "FILE 1: main.go\n```\npackage main\n```\n")
	assert.Contains(t, dump, "FILE 2: util.py\n```\ndef f(): pass\n```\n")
	assert.True(t, strings.HasSuffix(dump, "Please use the content of these files to inform your response.\n"))
}

func TestFileDumpTruncation(t *testing.T) {
	over := strings.Repeat("a", MaxFileDumpChars+1)
	dump := FileDump([]models.UploadedFile{file("big.txt", over)})
	assert.Contains(t, dump, strings.Repeat("a", MaxFileDumpChars)+TruncationMarker)
	assert.NotContains(t, dump, strings.Repeat("a", MaxFileDumpChars+1))

	exact := strings.Repeat("b", MaxFileDumpChars)
	dump = FileDump([]models.UploadedFile{file("fits.txt", exact)})
	assert.Contains(t, dump, exact)
	assert.NotContains(t, dump, TruncationMarker)
}

func TestFileDumpTruncationCountsRunes(t *testing.T) {
	// MaxFileDumpChars multibyte runes fit exactly even though the byte
	// length is double the cap.
	fits := strings.Repeat("é", MaxFileDumpChars)
	dump := FileDump([]models.UploadedFile{file("fits.txt", fits)})
	assert.Contains(t, dump, fits)
	assert.NotContains(t, dump, TruncationMarker)

	over := strings.Repeat("é", MaxFileDumpChars+1)
	dump = FileDump([]models.UploadedFile{file("big.txt", over)})
	assert.Contains(t, dump, strings.Repeat("é", MaxFileDumpChars)+TruncationMarker)
	assert.True(t, utf8.ValidString(dump))
}

func TestComposeUserMessage(t *testing.T) {
	files := []models.UploadedFile{file("a.txt", "body")}
	m := ComposeUserMessage("look at this", files)

	assert.Equal(t, models.RoleUser, m.Role)
	assert.Equal(t, "look at this", m.DisplayContent)
	assert.Equal(t, "look at this", m.Display())
	assert.True(t, strings.HasPrefix(m.Content, "look at this\n\nUPLOADED FILES:"))
	require.Len(t, m.AttachedFiles, 1)
	assert.Equal(t, "a.txt", m.AttachedFiles[0].Name)
}

func TestComposeUserMessageDefaultPrompt(t *testing.T) {
	m := ComposeUserMessage("", []models.UploadedFile{file("a.txt", "body")})
	assert.Equal(t, DefaultFilePrompt, m.DisplayContent)
	assert.True(t, strings.HasPrefix(m.Content, DefaultFilePrompt))
}

func TestComposeUserMessageNoFiles(t *testing.T) {
	m := ComposeUserMessage("just text", nil)
	assert.Equal(t, "just text", m.Content)
	assert.Empty(t, m.AttachedFiles)
}

func TestComposeCopiesFilesByValue(t *testing.T) {
	files := []models.UploadedFile{file("a.txt", "v1")}
	m := ComposeUserMessage("hi", files)
	files[0].Content = "v2"
	assert.Equal(t, "v1", m.AttachedFiles[0].Content)
}
