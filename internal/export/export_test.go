package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatapp/internal/models"
)

func sampleChat() *models.Chat {
	return &models.Chat{
		ID:        "1700000000000",
		Title:     "Explain quicksort in detail wi...",
		Agent:     "coder",
		CreatedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Messages: []models.Message{
			{Role: models.RoleSystem, Content: "You are an expert programmer."},
			{Role: models.RoleUser, Content: "Explain quicksort UPLOADED FILES dump", DisplayContent: "Explain quicksort"},
			{Role: models.RoleAssistant, Content: "Quicksort partitions the array."},
		},
	}
}

func TestChatTextFormat(t *testing.T) {
	got := ChatText(sampleChat(), "Code Expert")

	assert.True(t, strings.HasPrefix(got, "# Explain quicksort in detail wi...\n"))
	assert.Contains(t, got, "Date: 2026-03-14 09:30\n")
	assert.Contains(t, got, "Agent: Code Expert\n")
	assert.Contains(t, got, "## You:\nExplain quicksort\n")
	assert.Contains(t, got, "## Code Expert:\nQuicksort partitions the array.\n")
	// System prompt and the raw file dump stay out of exports.
	assert.NotContains(t, got, "expert programmer")
	assert.NotContains(t, got, "UPLOADED FILES")
}

func TestMessageTextFormat(t *testing.T) {
	msg := models.Message{Role: models.RoleAssistant, Content: "Here is the answer."}
	got := MessageText(msg, "Code Expert")

	assert.True(t, strings.HasPrefix(got, "# Message Export\n"))
	assert.Contains(t, got, "## Code Expert:\nHere is the answer.\n")
}

func TestSenderName(t *testing.T) {
	assert.Equal(t, "You", SenderName(models.RoleUser, "Code Expert"))
	assert.Equal(t, "Code Expert", SenderName(models.RoleAssistant, "Code Expert"))
}

func TestFilenames(t *testing.T) {
	today := time.Now().Format("2006-01-02")

	assert.Equal(t, fmt.Sprintf("chat_42_%s.txt", today), ChatFilename("42", FormatText))
	assert.Equal(t, fmt.Sprintf("chat_42_%s.docx", today), ChatFilename("42", FormatDocx))
	// PDF degrades to annotated text, so the extension is txt.
	assert.Equal(t, fmt.Sprintf("chat_42_%s.txt", today), ChatFilename("42", FormatPDF))

	name := MessageFilename(models.RoleAssistant, FormatText)
	assert.True(t, strings.HasPrefix(name, "message_"))
	assert.True(t, strings.HasSuffix(name, "_assistant.txt"))
}

func TestChatWritesTextFile(t *testing.T) {
	dir := t.TempDir()
	path, err := Chat(dir, sampleChat(), "Code Expert", FormatText)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "## Code Expert:")
}

func TestChatPDFCarriesConversionNote(t *testing.T) {
	dir := t.TempDir()
	path, err := Chat(dir, sampleChat(), "Code Expert", FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, ".txt", filepath.Ext(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "NOTE: This is a text export"))
}

func TestChatWritesDocx(t *testing.T) {
	dir := t.TempDir()
	path, err := Chat(dir, sampleChat(), "Code Expert", FormatDocx)
	require.NoError(t, err)
	assert.Equal(t, ".docx", filepath.Ext(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestMessageWritesFile(t *testing.T) {
	dir := t.TempDir()
	msg := models.Message{Role: models.RoleUser, Content: "raw", DisplayContent: "shown"}
	path, err := Message(dir, msg, "Code Expert", FormatText)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "## You:\nshown\n")
}

func TestExportCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "exports")
	_, err := Chat(dir, sampleChat(), "Code Expert", FormatText)
	require.NoError(t, err)
}
