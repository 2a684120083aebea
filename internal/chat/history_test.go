package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatapp/internal/models"
	"chatapp/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func testAgent() models.Agent {
	return models.Agent{
		ID:           "default",
		Name:         "General Assistant",
		SystemPrompt: "You are a helpful assistant.",
		IsDefault:    true,
	}
}

func TestNewChatSeedsSingleSystemMessage(t *testing.T) {
	h, err := Load(openStore(t))
	require.NoError(t, err)

	c, err := h.NewChat(testAgent())
	require.NoError(t, err)

	require.Len(t, c.Messages, 1)
	assert.Equal(t, models.RoleSystem, c.Messages[0].Role)
	assert.Equal(t, "You are a helpful assistant.", c.Messages[0].Content)

	require.NoError(t, h.AppendMessage(models.Message{Role: models.RoleUser, Content: "hi"}))
	require.NoError(t, h.AppendPlaceholder())
	require.NoError(t, h.AppendDelta("hello"))
	require.NoError(t, h.FinishStreaming())

	system := 0
	for _, m := range h.Conversation() {
		if m.Role == models.RoleSystem {
			system++
		}
	}
	assert.Equal(t, 1, system)
}

func TestSetSystemPromptReplacesInPlace(t *testing.T) {
	h, err := Load(openStore(t))
	require.NoError(t, err)
	_, err = h.NewChat(testAgent())
	require.NoError(t, err)

	require.NoError(t, h.SetSystemPrompt("You are terse."))
	conv := h.Conversation()
	require.Len(t, conv, 1)
	assert.Equal(t, "You are terse.", conv[0].Content)
}

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hi", "Hi"},
		{"Explain quicksort in detail with code", "Explain quicksort in detail wi..."},
		{"exactly thirty characters here", "exactly thirty characters here"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DeriveTitle(tt.in))
	}
}

func TestFirstUserMessageSetsTitle(t *testing.T) {
	h, err := Load(openStore(t))
	require.NoError(t, err)
	c, err := h.NewChat(testAgent())
	require.NoError(t, err)
	assert.Equal(t, "New Chat (General Assistant)", c.Title)

	require.NoError(t, h.AppendMessage(models.Message{Role: models.RoleUser, Content: "Explain quicksort in detail with code"}))
	assert.Equal(t, "Explain quicksort in detail wi...", c.Title)

	// Subsequent user turns leave the title alone.
	require.NoError(t, h.AppendMessage(models.Message{Role: models.RoleUser, Content: "And heapsort"}))
	assert.Equal(t, "Explain quicksort in detail wi...", c.Title)
}

func TestFileOnlyTitleFallback(t *testing.T) {
	h, err := Load(openStore(t))
	require.NoError(t, err)
	c, err := h.NewChat(testAgent())
	require.NoError(t, err)

	msg := models.Message{Role: models.RoleUser, Content: "dump"}
	msg.DisplayContent = ""
	require.NoError(t, h.AppendMessage(msg))
	// Display of a user message without DisplayContent falls back to Content.
	assert.Equal(t, "dump", c.Title)
}

func TestStreamingLifecycle(t *testing.T) {
	h, err := Load(openStore(t))
	require.NoError(t, err)
	_, err = h.NewChat(testAgent())
	require.NoError(t, err)

	require.NoError(t, h.AppendMessage(models.Message{Role: models.RoleUser, Content: "hi"}))
	require.NoError(t, h.AppendPlaceholder())
	assert.True(t, h.StreamingActive())

	require.NoError(t, h.AppendDelta("Hel"))
	require.NoError(t, h.AppendDelta("lo"))

	conv := h.Conversation()
	assert.Equal(t, "Hello", conv[len(conv)-1].Content)

	require.NoError(t, h.FinishStreaming())
	assert.False(t, h.StreamingActive())

	// Further deltas have nowhere to go.
	assert.Error(t, h.AppendDelta("!"))
}

func TestMarkStoppedRetainsPartialContent(t *testing.T) {
	h, err := Load(openStore(t))
	require.NoError(t, err)
	c, err := h.NewChat(testAgent())
	require.NoError(t, err)

	require.NoError(t, h.AppendPlaceholder())
	require.NoError(t, h.AppendDelta("Hel"))
	require.NoError(t, h.AppendDelta("lo"))
	require.NoError(t, h.MarkStopped())

	last := c.LastMessage()
	assert.Equal(t, "Hello", last.Content)
	assert.True(t, last.WasStopped)
	assert.False(t, last.IsStreaming)
}

func TestFailStreamingReplacesContent(t *testing.T) {
	h, err := Load(openStore(t))
	require.NoError(t, err)
	c, err := h.NewChat(testAgent())
	require.NoError(t, err)

	require.NoError(t, h.AppendPlaceholder())
	require.NoError(t, h.AppendDelta("partial"))
	require.NoError(t, h.FailStreaming("Error: Unable to generate response. Please try again."))

	last := c.LastMessage()
	assert.Equal(t, "Error: Unable to generate response. Please try again.", last.Content)
	assert.False(t, last.IsStreaming)
}

func TestMarkSentClearsOldestQueued(t *testing.T) {
	h, err := Load(openStore(t))
	require.NoError(t, err)
	c, err := h.NewChat(testAgent())
	require.NoError(t, err)

	require.NoError(t, h.AppendMessage(models.Message{Role: models.RoleUser, Content: "a", IsQueued: true}))
	require.NoError(t, h.AppendMessage(models.Message{Role: models.RoleUser, Content: "b", IsQueued: true}))

	require.NoError(t, h.MarkSent())
	assert.False(t, c.Messages[1].IsQueued)
	assert.True(t, c.Messages[2].IsQueued)

	require.NoError(t, h.MarkSent())
	assert.False(t, c.Messages[2].IsQueued)
}

func TestLoadRepairsCrashedStream(t *testing.T) {
	st := openStore(t)

	h, err := Load(st)
	require.NoError(t, err)
	_, err = h.NewChat(testAgent())
	require.NoError(t, err)
	require.NoError(t, h.AppendPlaceholder())
	require.NoError(t, h.AppendDelta("cut off"))

	// Reload simulates a restart with the stream still flagged open.
	reloaded, err := Load(st)
	require.NoError(t, err)
	require.Len(t, reloaded.Chats(), 1)
	last := reloaded.Chats()[0].LastMessage()
	assert.False(t, last.IsStreaming)
	assert.True(t, last.WasStopped)
	assert.Equal(t, "cut off", last.Content)
}

func TestSelectAndDelete(t *testing.T) {
	h, err := Load(openStore(t))
	require.NoError(t, err)

	first, err := h.NewChat(testAgent())
	require.NoError(t, err)
	second, err := h.NewChat(testAgent())
	require.NoError(t, err)

	// Newest chat is selected and listed first.
	assert.Equal(t, second.ID, h.Current().ID)
	assert.Equal(t, second.ID, h.Chats()[0].ID)

	require.NoError(t, h.Select(first.ID))
	assert.Equal(t, first.ID, h.Current().ID)

	require.NoError(t, h.Delete(first.ID))
	assert.Nil(t, h.Current())
	require.Len(t, h.Chats(), 1)

	assert.Error(t, h.Select("missing"))
	assert.ErrorIs(t, h.AppendMessage(models.Message{Role: models.RoleUser, Content: "x"}), ErrNoCurrentChat)
}

func TestDeleteLastChatClearsStoredHistory(t *testing.T) {
	st := openStore(t)
	h, err := Load(st)
	require.NoError(t, err)

	c, err := h.NewChat(testAgent())
	require.NoError(t, err)
	_, ok, err := st.Get(store.KeyHistory)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, h.Delete(c.ID))
	_, ok, err = st.Get(store.KeyHistory)
	require.NoError(t, err)
	assert.False(t, ok, "emptied history should clear the stored key")
}

func TestHistoryPersistsAcrossLoads(t *testing.T) {
	st := openStore(t)

	h, err := Load(st)
	require.NoError(t, err)
	c, err := h.NewChat(testAgent())
	require.NoError(t, err)
	require.NoError(t, h.AppendMessage(models.Message{Role: models.RoleUser, Content: "remember me"}))

	reloaded, err := Load(st)
	require.NoError(t, err)
	require.Len(t, reloaded.Chats(), 1)
	assert.Equal(t, c.ID, reloaded.Chats()[0].ID)
	assert.Equal(t, "remember me", reloaded.Chats()[0].Messages[1].Content)
	// Selection is not persisted; a fresh load starts without a current chat.
	assert.Nil(t, reloaded.Current())
}
