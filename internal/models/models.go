package models

import "time"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn in a conversation. Content carries the full text sent
// to the completion endpoint; DisplayContent, when set, is what the UI shows
// instead (file dumps stay out of the transcript).
type Message struct {
	Role           string         `json:"role"`
	Content        string         `json:"content"`
	DisplayContent string         `json:"displayContent,omitempty"`
	AttachedFiles  []UploadedFile `json:"attachedFiles,omitempty"`
	IsStreaming    bool           `json:"isStreaming,omitempty"`
	WasStopped     bool           `json:"wasStopped,omitempty"`
	IsQueued       bool           `json:"isQueued,omitempty"`
}

// Display returns the text the transcript should show for this message.
func (m Message) Display() string {
	if m.Role == RoleUser && m.DisplayContent != "" {
		return m.DisplayContent
	}
	return m.Content
}

// UploadedFile is a user-attached text file, copied by value into the
// messages it rides along with.
type UploadedFile struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Mime       string    `json:"type"`
	Size       int64     `json:"size"`
	Content    string    `json:"content"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// Agent is a named persona with a fixed system prompt. Default agents are
// seeded at first run and cannot be deleted.
type Agent struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	SystemPrompt string `json:"systemPrompt"`
	Icon         string `json:"icon"`
	IsDefault    bool   `json:"isDefault"`
}

// Chat is a persisted conversation. Messages index 0 is always the system
// message holding the owning agent's prompt.
type Chat struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Agent         string         `json:"agent"`
	Messages      []Message      `json:"messages"`
	UploadedFiles []UploadedFile `json:"uploadedFiles,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// FirstUserMessage returns the first user turn, if any.
func (c *Chat) FirstUserMessage() (Message, bool) {
	for _, m := range c.Messages {
		if m.Role == RoleUser {
			return m, true
		}
	}
	return Message{}, false
}

// LastMessage returns a pointer to the final message, or nil for an empty chat.
func (c *Chat) LastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return &c.Messages[len(c.Messages)-1]
}
