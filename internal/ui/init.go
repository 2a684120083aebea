package ui

import (
	"path/filepath"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"chatapp/internal/agent"
	"chatapp/internal/chat"
	"chatapp/internal/config"
	"chatapp/internal/llm"
	"chatapp/internal/session"
	"chatapp/internal/store"
)

func InitialModel(cfg config.Config, st *store.Store, dataDir string, log *zap.SugaredLogger) (Model, error) {
	registry, err := agent.Load(st)
	if err != nil {
		return Model{}, err
	}
	history, err := chat.Load(st)
	if err != nil {
		return Model{}, err
	}

	client := llm.New(cfg.BaseURL, cfg.APIKey, cfg.Model)

	ti := textarea.New()
	ti.Placeholder = "Type a message..."
	ti.Prompt = "❯ "
	ti.ShowLineNumbers = false
	ti.CharLimit = 0
	ti.MaxHeight = 6
	ti.SetHeight(2)
	ti.SetWidth(80)
	ti.FocusedStyle.Prompt = lipgloss.NewStyle().Foreground(lipgloss.Color("#B39DDB")).Bold(true)
	ti.BlurredStyle.Prompt = lipgloss.NewStyle().Foreground(lipgloss.Color("#B39DDB")).Bold(true)
	ti.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(lipgloss.Color("#545454"))
	ti.BlurredStyle.Placeholder = lipgloss.NewStyle().Foreground(lipgloss.Color("#545454"))
	ti.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ti.BlurredStyle.CursorLine = lipgloss.NewStyle()
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#B39DDB"))

	vp := viewport.New(60, 15)

	sidebarVisible := true
	if pref, ok, _ := st.Get(store.KeySidebar); ok && pref == "hidden" {
		sidebarVisible = false
	}

	return Model{
		Viewport:       vp,
		TextInput:      ti,
		Spinner:        sp,
		Store:          st,
		History:        history,
		Agents:         registry,
		Queue:          &chat.Queue{},
		Controller:     session.NewController(client),
		Client:         client,
		Log:            log,
		ExportDir:      filepath.Join(dataDir, "exports"),
		CurrentAgentID: agent.DefaultAgentID,
		SidebarVisible: sidebarVisible,
	}, nil
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.TextInput.Cursor.BlinkCmd(),
		m.Spinner.Tick,
		m.pingCmd(),
		connectivityTick(),
	)
}

func NewProgram(cfg config.Config, st *store.Store, dataDir string, log *zap.SugaredLogger) (*tea.Program, error) {
	m, err := InitialModel(cfg, st, dataDir, log)
	if err != nil {
		return nil, err
	}
	return tea.NewProgram(&m, tea.WithAltScreen()), nil
}
