// Package chat owns the conversation state: the persisted chat collection,
// the derived view of the current conversation, message composition, and the
// submission queue. All mutation of a chat goes through History so the live
// conversation and the persisted snapshot can never diverge.
package chat

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"chatapp/internal/models"
	"chatapp/internal/store"
)

// TitleLimit is the number of leading characters of the first user message
// used as a chat title before truncation.
const TitleLimit = 30

// ErrNoCurrentChat is returned by mutations that need an active chat.
var ErrNoCurrentChat = errors.New("no current chat")

// History is the durable owner of all chats. The current conversation is a
// derived read of the selected chat, not a second copy.
type History struct {
	store     *store.Store
	chats     []*models.Chat
	currentID string
}

// Load reads the chat history snapshot. A missing or empty snapshot yields
// an empty history with no current chat.
func Load(st *store.Store) (*History, error) {
	h := &History{store: st}

	raw, ok, err := st.Get(store.KeyHistory)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return h, nil
	}
	if err := json.Unmarshal([]byte(raw), &h.chats); err != nil {
		return nil, err
	}

	// A crash mid-stream can leave a placeholder flagged as streaming.
	for _, c := range h.chats {
		for i := range c.Messages {
			if c.Messages[i].IsStreaming {
				c.Messages[i].IsStreaming = false
				c.Messages[i].WasStopped = true
			}
		}
	}
	return h, nil
}

// DeriveTitle produces a chat title from the first user message: the first
// TitleLimit characters plus an ellipsis when longer.
func DeriveTitle(firstUserText string) string {
	r := []rune(firstUserText)
	if len(r) > TitleLimit {
		return string(r[:TitleLimit]) + "..."
	}
	return firstUserText
}

// NewChat creates a chat seeded with the agent's system prompt, selects it,
// and persists. The id is derived from creation time, as the history sort
// order depends on it.
func (h *History) NewChat(ag models.Agent) (*models.Chat, error) {
	now := time.Now()
	c := &models.Chat{
		ID:        strconv.FormatInt(now.UnixMilli(), 10),
		Title:     "New Chat (" + ag.Name + ")",
		Agent:     ag.ID,
		Messages:  []models.Message{{Role: models.RoleSystem, Content: ag.SystemPrompt}},
		CreatedAt: now,
	}
	h.chats = append([]*models.Chat{c}, h.chats...)
	h.currentID = c.ID
	return c, h.persist()
}

// Current returns the selected chat, or nil before the first chat exists.
func (h *History) Current() *models.Chat {
	return h.byID(h.currentID)
}

// Conversation returns the live message sequence of the current chat.
func (h *History) Conversation() []models.Message {
	if c := h.Current(); c != nil {
		return c.Messages
	}
	return nil
}

// Chats returns all chats, most recent first.
func (h *History) Chats() []*models.Chat {
	return h.chats
}

// Select makes id the current chat.
func (h *History) Select(id string) error {
	if h.byID(id) == nil {
		return errors.New("unknown chat " + id)
	}
	h.currentID = id
	return nil
}

// Delete removes a chat. Deleting the current chat leaves no selection; the
// caller decides whether to create a replacement.
func (h *History) Delete(id string) error {
	for i, c := range h.chats {
		if c.ID == id {
			h.chats = append(h.chats[:i], h.chats[i+1:]...)
			if h.currentID == id {
				h.currentID = ""
			}
			return h.persist()
		}
	}
	return nil
}

// SetSystemPrompt replaces the system message of the current chat, used when
// the active agent is edited in place.
func (h *History) SetSystemPrompt(prompt string) error {
	c := h.Current()
	if c == nil {
		return ErrNoCurrentChat
	}
	c.Messages[0].Content = prompt
	return h.persist()
}

// AppendMessage appends a turn to the current chat. The first user turn
// derives the chat title; a blank fallback keeps the synthesized default.
func (h *History) AppendMessage(m models.Message) error {
	c := h.Current()
	if c == nil {
		return ErrNoCurrentChat
	}
	_, hadUser := c.FirstUserMessage()
	c.Messages = append(c.Messages, m)
	if m.Role == models.RoleUser && !hadUser {
		title := m.Display()
		if title == "" {
			title = "File analysis"
		}
		c.Title = DeriveTitle(title)
	}
	return h.persist()
}

// AppendPlaceholder appends the empty streaming assistant message that
// deltas will be merged into.
func (h *History) AppendPlaceholder() error {
	return h.AppendMessage(models.Message{Role: models.RoleAssistant, IsStreaming: true})
}

// AppendDelta merges an inbound delta into the streaming placeholder, in
// arrival order.
func (h *History) AppendDelta(delta string) error {
	m, err := h.streamingMessage()
	if err != nil {
		return err
	}
	m.Content += delta
	return h.persist()
}

// FinishStreaming marks the placeholder complete; its content is immutable
// from here on.
func (h *History) FinishStreaming() error {
	m, err := h.streamingMessage()
	if err != nil {
		return err
	}
	m.IsStreaming = false
	return h.persist()
}

// MarkStopped records a user cancellation: partial content is retained.
func (h *History) MarkStopped() error {
	m, err := h.streamingMessage()
	if err != nil {
		return err
	}
	m.IsStreaming = false
	m.WasStopped = true
	return h.persist()
}

// FailStreaming replaces the placeholder content with the fixed transport
// failure text.
func (h *History) FailStreaming(errText string) error {
	m, err := h.streamingMessage()
	if err != nil {
		return err
	}
	m.Content = errText
	m.IsStreaming = false
	return h.persist()
}

// MarkSent clears the queued flag on the oldest queued user message, as the
// queue drains it into a real submission.
func (h *History) MarkSent() error {
	c := h.Current()
	if c == nil {
		return ErrNoCurrentChat
	}
	for i := range c.Messages {
		if c.Messages[i].IsQueued {
			c.Messages[i].IsQueued = false
			return h.persist()
		}
	}
	return nil
}

// SetFiles replaces the uploaded-file set attached to the current chat.
func (h *History) SetFiles(files []models.UploadedFile) error {
	c := h.Current()
	if c == nil {
		return ErrNoCurrentChat
	}
	c.UploadedFiles = files
	return h.persist()
}

// StreamingActive reports whether the current chat has an open placeholder.
func (h *History) StreamingActive() bool {
	c := h.Current()
	if c == nil {
		return false
	}
	m := c.LastMessage()
	return m != nil && m.IsStreaming
}

func (h *History) streamingMessage() (*models.Message, error) {
	c := h.Current()
	if c == nil {
		return nil, ErrNoCurrentChat
	}
	m := c.LastMessage()
	if m == nil || !m.IsStreaming {
		return nil, errors.New("no streaming message in current chat")
	}
	return m, nil
}

func (h *History) byID(id string) *models.Chat {
	if id == "" {
		return nil
	}
	for _, c := range h.chats {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (h *History) persist() error {
	// Deleting the last chat clears the key instead of storing "[]".
	if len(h.chats) == 0 {
		return h.store.Delete(store.KeyHistory)
	}
	data, err := json.Marshal(h.chats)
	if err != nil {
		return err
	}
	return h.store.Set(store.KeyHistory, string(data))
}
