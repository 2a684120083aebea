package ui

import (
	"regexp"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"chatapp/internal/agent"
	"chatapp/internal/chat"
	"chatapp/internal/export"
	"chatapp/internal/llm"
	"chatapp/internal/models"
	"chatapp/internal/session"
	"chatapp/internal/store"
)

const (
	ModalWidthMax      = 60
	CompactWidthThresh = 100 // Width below which the sidebar is hidden
	SidebarWidth       = 30

	// ConnectivityInterval is how often the endpoint is probed.
	ConnectivityInterval = 30 * time.Second

	// LoadingPhraseInterval is how long each loading phrase is shown.
	LoadingPhraseInterval = 800 * time.Millisecond
)

// ModalWidth is recomputed on window resize.
var ModalWidth = ModalWidthMax

// LoadingPhrases rotate under the streaming placeholder while a response is
// generating.
var LoadingPhrases = []string{"Thinking", "Reasoning", "Gathering data", "Responding"}

// LoadingPhrase returns the phrase for a given time since generation
// started. Phrase selection is a pure function of elapsed time, so redraws
// at any cadence show a consistent rotation.
func LoadingPhrase(elapsed time.Duration) string {
	if elapsed < 0 {
		elapsed = 0
	}
	idx := int(elapsed/LoadingPhraseInterval) % len(LoadingPhrases)
	return LoadingPhrases[idx]
}

// MentionRE matches @file mentions: @word or @"path with spaces".
var MentionRE = regexp.MustCompile(`@("([^"]+)"|([^\s]+))`)

type ErrMsg error

// StreamEventMsg carries one session event into the update loop, tagged
// with its originating session so stale events are dropped.
type StreamEventMsg struct {
	Session *session.Session
	Event   session.Event
}

type connectivityTickMsg time.Time

// ConnectivityMsg reports the result of an endpoint probe.
type ConnectivityMsg struct {
	Online bool
}

// ExportDoneMsg reports the result of a background export.
type ExportDoneMsg struct {
	Path string
	Err  error
}

// exportOption is one row of the export modal.
type exportOption struct {
	Label     string
	WholeChat bool
	Format    export.Format
}

var exportOptions = []exportOption{
	{Label: "Chat → Text (.txt)", WholeChat: true, Format: export.FormatText},
	{Label: "Chat → Word (.docx)", WholeChat: true, Format: export.FormatDocx},
	{Label: "Chat → PDF (text for conversion)", WholeChat: true, Format: export.FormatPDF},
	{Label: "Last message → Text (.txt)", Format: export.FormatText},
	{Label: "Last message → Word (.docx)", Format: export.FormatDocx},
	{Label: "Last message → PDF (text for conversion)", Format: export.FormatPDF},
}

// agentEditor holds the state of the agent create/edit form.
type agentEditor struct {
	ID       string // empty when creating
	Name     textinput.Model
	Icon     textinput.Model
	Prompt   textarea.Model
	FocusIdx int
	Err      string
}

type Model struct {
	Viewport  viewport.Model
	TextInput textarea.Model
	Spinner   spinner.Model
	Renderer  *glamour.TermRenderer

	Store      *store.Store
	History    *chat.History
	Agents     *agent.Registry
	Queue      *chat.Queue
	Controller *session.Controller
	Client     *llm.Client
	Log        *zap.SugaredLogger

	ExportDir string

	// Streaming state
	ActiveSession *session.Session
	StreamStart   time.Time

	Online bool

	// The agent used for the next new chat.
	CurrentAgentID string

	WindowWidth  int
	WindowHeight int

	SidebarVisible bool

	// Modals
	HistoryOpen        bool
	HistorySelectedIdx int
	HistoryErr         error
	AgentsOpen         bool
	AgentSelectedIdx   int
	AgentsErr          string
	EditorOpen         bool
	Editor             agentEditor
	ExportOpen         bool
	ExportSelectedIdx  int
	ShortcutsOpen      bool

	// Transient status line under the input
	StatusLine string

	// File mention autocomplete
	FileSuggestOpen   bool
	FileSuggestions   []string
	FileSuggestIdx    int
	FileSuggestPrefix string
	PendingFiles      []string // Paths mentioned in current input (for display)
}

// CurrentAgent resolves the agent of the current chat, falling back to the
// selected agent, then to the built-in default.
func (m *Model) CurrentAgent() models.Agent {
	if c := m.History.Current(); c != nil {
		if ag, ok := m.Agents.Get(c.Agent); ok {
			return ag
		}
	}
	if ag, ok := m.Agents.Get(m.CurrentAgentID); ok {
		return ag
	}
	ag, _ := m.Agents.Get(agent.DefaultAgentID)
	return ag
}
