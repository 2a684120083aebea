package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"chatapp/internal/agent"
	"chatapp/internal/chat"
	"chatapp/internal/export"
	"chatapp/internal/models"
	"chatapp/internal/session"
	"chatapp/internal/store"
	"chatapp/internal/styles"
	"chatapp/internal/upload"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		spCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case spinner.TickMsg:
		m.Spinner, spCmd = m.Spinner.Update(msg)
		if m.ActiveSession != nil {
			m.UpdateViewport()
			return m, spCmd
		}
		return m, nil

	case StreamEventMsg:
		return m.handleStreamEvent(msg)

	case connectivityTickMsg:
		return m, tea.Batch(m.pingCmd(), connectivityTick())

	case ConnectivityMsg:
		wasOnline := m.Online
		m.Online = msg.Online
		if !wasOnline && msg.Online {
			m.Log.Infow("endpoint reachable again", "queued", m.Queue.Len())
		}
		return m, m.drainQueue()

	case ExportDoneMsg:
		if msg.Err != nil {
			m.StatusLine = styles.ErrorStyle.Render(fmt.Sprintf("Export failed: %v", msg.Err))
		} else {
			m.StatusLine = styles.InfoStyle(fmt.Sprintf("Exported to %s", msg.Path))
		}
		return m, nil

	case tea.KeyMsg:
		if handled, model, cmd := m.handleModalKey(msg); handled {
			return model, cmd
		}

		if isNewlineShortcut(msg) {
			m.TextInput.InsertString("\n")
			m.FileSuggestOpen = false
			m.updateInputLayout()
			return m, nil
		}

		if m.FileSuggestOpen {
			switch msg.String() {
			case "esc":
				m.FileSuggestOpen = false
				return m, nil
			case "up", "ctrl+p":
				if len(m.FileSuggestions) > 0 {
					m.FileSuggestIdx--
					if m.FileSuggestIdx < 0 {
						m.FileSuggestIdx = len(m.FileSuggestions) - 1
					}
				}
				return m, nil
			case "down", "ctrl+n":
				if len(m.FileSuggestions) > 0 {
					m.FileSuggestIdx++
					if m.FileSuggestIdx >= len(m.FileSuggestions) {
						m.FileSuggestIdx = 0
					}
				}
				return m, nil
			case "tab":
				m.insertSelectedSuggestion()
				return m, nil
			}
		}

		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit

		case tea.KeyEsc:
			if m.FileSuggestOpen {
				m.FileSuggestOpen = false
				return m, nil
			}
			if m.ActiveSession != nil {
				if err := m.Controller.Stop(m.ActiveSession); err != nil {
					m.Log.Warnw("stop rejected", "error", err)
				}
				return m, nil
			}
			return m, tea.Quit

		case tea.KeyCtrlN:
			if m.ActiveSession != nil {
				m.StatusLine = styles.InfoStyle("Finish or stop the current response first")
				return m, nil
			}
			return m, m.startNewChat(m.CurrentAgent())

		case tea.KeyCtrlB:
			m.AgentsOpen = true
			m.AgentsErr = ""
			m.AgentSelectedIdx = 0
			m.HistoryOpen = false
			m.ShortcutsOpen = false
			m.ExportOpen = false
			return m, nil

		case tea.KeyCtrlH:
			m.HistoryOpen = true
			m.HistoryErr = nil
			m.HistorySelectedIdx = 0
			m.AgentsOpen = false
			m.ShortcutsOpen = false
			m.ExportOpen = false
			return m, nil

		case tea.KeyCtrlE:
			m.ExportOpen = true
			m.ExportSelectedIdx = 0
			m.HistoryOpen = false
			m.AgentsOpen = false
			m.ShortcutsOpen = false
			return m, nil

		case tea.KeyCtrlT:
			m.SidebarVisible = !m.SidebarVisible
			pref := "visible"
			if !m.SidebarVisible {
				pref = "hidden"
			}
			if err := m.Store.Set(store.KeySidebar, pref); err != nil {
				m.Log.Warnw("persist sidebar preference", "error", err)
			}
			return m, nil

		case tea.KeyCtrlS:
			m.ShortcutsOpen = true
			m.HistoryOpen = false
			m.AgentsOpen = false
			m.ExportOpen = false
			return m, nil

		case tea.KeyEnter:
			if m.FileSuggestOpen && len(m.FileSuggestions) > 0 {
				m.insertSelectedSuggestion()
				return m, nil
			}
			return m, m.submit()
		}

	case ErrMsg:
		m.StatusLine = styles.ErrorStyle.Render(fmt.Sprintf("Error: %v", msg))
		return m, nil

	case tea.WindowSizeMsg:
		m.WindowWidth = msg.Width
		m.WindowHeight = msg.Height

		ModalWidth = msg.Width - 10
		if ModalWidth > ModalWidthMax {
			ModalWidth = ModalWidthMax
		}
		if ModalWidth < 30 {
			ModalWidth = 30
		}
		styles.ContentWidth = ModalWidth - 6

		chatWidth := m.chatWidth()
		m.Viewport.Width = chatWidth - 2

		m.updateInputLayout()
		glamourStyle := "dark"
		if !lipgloss.HasDarkBackground() {
			glamourStyle = "light"
		}
		m.Renderer, _ = glamour.NewTermRenderer(
			glamour.WithStylePath(glamourStyle),
			glamour.WithWordWrap(chatWidth-6),
		)
		m.UpdateViewport()
		return m, tea.Batch(tiCmd, vpCmd)
	}

	m.TextInput, tiCmd = m.TextInput.Update(msg)
	m.updateInputLayout()

	// Filter out terminal background color queries and cursor reference codes that leak into the input
	val := m.TextInput.Value()
	if strings.Contains(val, "]11;rgb:") || strings.Contains(val, "1;rgb:") || strings.Contains(val, "[1;1R") {
		m.TextInput.Reset()
	}

	// Check for @ file mention trigger
	val = m.TextInput.Value()
	cursorPos := TextareaCursorIndex(m.TextInput)
	if prefix, _, found := GetAtPosition(val, cursorPos); found {
		suggestions := GetFileSuggestions(prefix)
		if len(suggestions) > 0 {
			m.FileSuggestions = suggestions
			m.FileSuggestOpen = true
			m.FileSuggestIdx = 0
			m.FileSuggestPrefix = prefix
		} else {
			m.FileSuggestOpen = false
		}
	} else {
		m.FileSuggestOpen = false
	}

	_, m.PendingFiles = ExtractFileMentions(val)

	m.Viewport, vpCmd = m.Viewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd)
}

// submit turns the input box into a user turn: attachments are read and
// validated, the message is composed, and it either starts a stream or is
// queued when one is running or the endpoint is offline.
func (m *Model) submit() tea.Cmd {
	input := m.TextInput.Value()
	if strings.TrimSpace(input) == "" {
		return nil
	}

	clean, paths := ExtractFileMentions(input)
	var files []models.UploadedFile
	var problems []string
	for _, p := range paths {
		f, err := upload.Read(p)
		if err != nil {
			problems = append(problems, err.Error())
			continue
		}
		files = append(files, f)
	}
	if len(problems) > 0 {
		m.StatusLine = styles.ErrorStyle.Render(strings.Join(problems, ". "))
	} else {
		m.StatusLine = ""
	}

	msg := chat.ComposeUserMessage(strings.TrimSpace(clean), files)
	if msg.Content == "" {
		return nil
	}

	if m.History.Current() == nil {
		if _, err := m.History.NewChat(m.CurrentAgent()); err != nil {
			m.StatusLine = styles.ErrorStyle.Render(err.Error())
			return nil
		}
	}

	m.TextInput.Reset()
	m.updateInputLayout()
	m.FileSuggestOpen = false
	m.PendingFiles = nil

	if m.ActiveSession != nil || !m.Online {
		msg.IsQueued = true
		if err := m.History.AppendMessage(msg); err != nil {
			m.StatusLine = styles.ErrorStyle.Render(err.Error())
			return nil
		}
		m.Queue.Enqueue(m.History.Current().ID)
		m.UpdateViewport()
		return m.drainQueue()
	}

	if err := m.History.AppendMessage(msg); err != nil {
		m.StatusLine = styles.ErrorStyle.Render(err.Error())
		return nil
	}
	if len(files) > 0 {
		if err := m.History.SetFiles(files); err != nil {
			m.Log.Warnw("record chat attachments", "error", err)
		}
	}
	m.UpdateViewport()
	return m.startStream()
}

// startStream snapshots the conversation, opens the placeholder, and begins
// a generation session.
func (m *Model) startStream() tea.Cmd {
	conv := append([]models.Message(nil), m.History.Conversation()...)
	s, err := m.Controller.Start(conv)
	if err != nil {
		m.StatusLine = styles.ErrorStyle.Render(err.Error())
		return nil
	}
	if err := m.History.AppendPlaceholder(); err != nil {
		m.StatusLine = styles.ErrorStyle.Render(err.Error())
	}
	m.ActiveSession = s
	m.StreamStart = time.Now()
	m.UpdateViewport()
	return tea.Batch(listenSession(s), m.Spinner.Tick)
}

// startNewChat creates a fresh chat for the agent and has it introduce
// itself.
func (m *Model) startNewChat(ag models.Agent) tea.Cmd {
	m.CurrentAgentID = ag.ID
	if _, err := m.History.NewChat(ag); err != nil {
		m.StatusLine = styles.ErrorStyle.Render(err.Error())
		return nil
	}
	m.TextInput.Reset()
	m.updateInputLayout()
	m.StatusLine = ""

	s, err := m.Controller.StartIntroduction(ag)
	if err != nil {
		m.UpdateViewport()
		return nil
	}
	if err := m.History.AppendPlaceholder(); err != nil {
		m.StatusLine = styles.ErrorStyle.Render(err.Error())
	}
	m.ActiveSession = s
	m.StreamStart = time.Now()
	m.UpdateViewport()
	return tea.Batch(listenSession(s), m.Spinner.Tick)
}

func (m *Model) handleStreamEvent(msg StreamEventMsg) (tea.Model, tea.Cmd) {
	if msg.Session != m.ActiveSession {
		// Event from a finished session; its history entry is already settled.
		return m, nil
	}
	ev := msg.Event
	switch {
	case ev.Err != nil:
		m.ActiveSession = nil
		switch {
		case errors.Is(ev.Err, session.ErrStopped):
			if err := m.History.MarkStopped(); err != nil {
				m.Log.Warnw("mark stopped", "error", err)
			}
		case msg.Session.Intro():
			// Introductions degrade to a canned greeting.
			if err := m.History.FailStreaming(session.FallbackIntroduction(m.CurrentAgent())); err != nil {
				m.Log.Warnw("apply introduction fallback", "error", err)
			}
		default:
			m.Log.Warnw("generation failed", "error", ev.Err)
			if err := m.History.FailStreaming(session.TransportFailureText); err != nil {
				m.Log.Warnw("record generation failure", "error", err)
			}
		}
		m.Queue.EndDrain()
		m.UpdateViewport()
		return m, m.drainQueue()

	case ev.Done:
		m.ActiveSession = nil
		if err := m.History.FinishStreaming(); err != nil {
			m.Log.Warnw("finish streaming", "error", err)
		}
		m.Queue.EndDrain()
		m.UpdateViewport()
		return m, m.drainQueue()

	default:
		if err := m.History.AppendDelta(ev.Delta); err != nil {
			m.Log.Warnw("append delta", "error", err)
		}
		m.UpdateViewport()
		return m, listenSession(msg.Session)
	}
}

// drainQueue sends the oldest queued submission when nothing blocks it.
// The submission drains into the chat it was enqueued under, re-selecting
// that chat if the user switched away while it waited.
func (m *Model) drainQueue() tea.Cmd {
	if !m.Queue.CanDrain(m.ActiveSession != nil, m.Online) {
		return nil
	}
	chatID, ok := m.Queue.BeginDrain()
	if !ok {
		return nil
	}
	if cur := m.History.Current(); cur == nil || cur.ID != chatID {
		if err := m.History.Select(chatID); err != nil {
			// The chat was deleted while its submission waited; move on.
			m.Log.Warnw("queued chat gone, skipping", "chat", chatID)
			m.Queue.EndDrain()
			return m.drainQueue()
		}
	}
	if err := m.History.MarkSent(); err != nil {
		m.Log.Warnw("clear queued flag", "error", err)
	}
	cmd := m.startStream()
	if m.ActiveSession == nil {
		m.Queue.EndDrain()
	}
	return cmd
}

// listenSession forwards the next session event into the update loop.
func listenSession(s *session.Session) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-s.Events()
		if !ok {
			return nil
		}
		return StreamEventMsg{Session: s, Event: ev}
	}
}

func connectivityTick() tea.Cmd {
	return tea.Tick(ConnectivityInterval, func(t time.Time) tea.Msg {
		return connectivityTickMsg(t)
	})
}

func (m *Model) pingCmd() tea.Cmd {
	client := m.Client
	return func() tea.Msg {
		err := client.Ping(context.Background())
		return ConnectivityMsg{Online: err == nil}
	}
}

// handleModalKey routes keys while a modal is open. The first return value
// reports whether the key was consumed.
func (m *Model) handleModalKey(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	switch {
	case m.HistoryOpen:
		return true, m, m.historyModalKey(msg)
	case m.EditorOpen:
		return true, m, m.editorKey(msg)
	case m.AgentsOpen:
		return true, m, m.agentsModalKey(msg)
	case m.ExportOpen:
		return true, m, m.exportModalKey(msg)
	case m.ShortcutsOpen:
		switch msg.String() {
		case "ctrl+c":
			return true, m, tea.Quit
		case "esc", "enter", "ctrl+s":
			m.ShortcutsOpen = false
		}
		return true, m, nil
	}
	return false, m, nil
}

func (m *Model) historyModalKey(msg tea.KeyMsg) tea.Cmd {
	chats := m.History.Chats()
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc", "ctrl+h":
		m.HistoryOpen = false
		m.HistoryErr = nil
	case "up", "k":
		if len(chats) > 0 {
			m.HistorySelectedIdx--
			if m.HistorySelectedIdx < 0 {
				m.HistorySelectedIdx = len(chats) - 1
			}
		}
	case "down", "j":
		if len(chats) > 0 {
			m.HistorySelectedIdx++
			if m.HistorySelectedIdx >= len(chats) {
				m.HistorySelectedIdx = 0
			}
		}
	case "enter":
		if len(chats) == 0 {
			return nil
		}
		if m.ActiveSession != nil {
			m.HistoryErr = errors.New("finish or stop the current response first")
			return nil
		}
		if err := m.History.Select(chats[m.HistorySelectedIdx].ID); err != nil {
			m.HistoryErr = err
			return nil
		}
		m.HistoryOpen = false
		m.HistoryErr = nil
		m.UpdateViewport()
	case "d":
		if len(chats) == 0 {
			return nil
		}
		if m.ActiveSession != nil {
			m.HistoryErr = errors.New("finish or stop the current response first")
			return nil
		}
		if err := m.History.Delete(chats[m.HistorySelectedIdx].ID); err != nil {
			m.HistoryErr = err
			return nil
		}
		if m.HistorySelectedIdx >= len(m.History.Chats()) {
			m.HistorySelectedIdx = len(m.History.Chats()) - 1
		}
		if m.HistorySelectedIdx < 0 {
			m.HistorySelectedIdx = 0
		}
		m.UpdateViewport()
	}
	return nil
}

func (m *Model) agentsModalKey(msg tea.KeyMsg) tea.Cmd {
	agents := m.Agents.List()
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc", "ctrl+b":
		m.AgentsOpen = false
		m.AgentsErr = ""
	case "up", "k":
		m.AgentSelectedIdx--
		if m.AgentSelectedIdx < 0 {
			m.AgentSelectedIdx = len(agents) - 1
		}
	case "down", "j":
		m.AgentSelectedIdx++
		if m.AgentSelectedIdx >= len(agents) {
			m.AgentSelectedIdx = 0
		}
	case "enter":
		if len(agents) == 0 {
			return nil
		}
		if m.ActiveSession != nil {
			m.AgentsErr = "finish or stop the current response first"
			return nil
		}
		ag := agents[m.AgentSelectedIdx]
		m.AgentsOpen = false
		m.AgentsErr = ""
		return m.startNewChat(ag)
	case "n":
		m.openEditor(models.Agent{})
	case "e":
		if len(agents) == 0 {
			return nil
		}
		m.openEditor(agents[m.AgentSelectedIdx])
	case "d":
		if len(agents) == 0 {
			return nil
		}
		ag := agents[m.AgentSelectedIdx]
		if err := m.Agents.Delete(ag.ID); err != nil {
			var protected *agent.ProtectedAgentError
			if errors.As(err, &protected) {
				m.AgentsErr = fmt.Sprintf("%s is a built-in agent and cannot be deleted", ag.Name)
			} else {
				m.AgentsErr = err.Error()
			}
			return nil
		}
		m.AgentsErr = ""
		if m.CurrentAgentID == ag.ID {
			m.CurrentAgentID = agent.DefaultAgentID
		}
		if m.AgentSelectedIdx >= len(m.Agents.List()) {
			m.AgentSelectedIdx = len(m.Agents.List()) - 1
		}
	}
	return nil
}

func (m *Model) openEditor(ag models.Agent) {
	name := textinput.New()
	name.Placeholder = "Agent name"
	name.SetValue(ag.Name)
	name.Focus()

	icon := textinput.New()
	icon.Placeholder = "Icon (emoji)"
	icon.SetValue(ag.Icon)

	prompt := textarea.New()
	prompt.Placeholder = "System prompt"
	prompt.ShowLineNumbers = false
	prompt.SetValue(ag.SystemPrompt)
	prompt.SetWidth(styles.ContentWidth)
	prompt.SetHeight(5)

	m.Editor = agentEditor{ID: ag.ID, Name: name, Icon: icon, Prompt: prompt}
	m.EditorOpen = true
	m.AgentsOpen = false
}

func (m *Model) editorKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc":
		m.EditorOpen = false
		m.AgentsOpen = true
		return nil
	case "tab", "shift+tab":
		if msg.String() == "tab" {
			m.Editor.FocusIdx = (m.Editor.FocusIdx + 1) % 3
		} else {
			m.Editor.FocusIdx = (m.Editor.FocusIdx + 2) % 3
		}
		m.Editor.Name.Blur()
		m.Editor.Icon.Blur()
		m.Editor.Prompt.Blur()
		switch m.Editor.FocusIdx {
		case 0:
			m.Editor.Name.Focus()
		case 1:
			m.Editor.Icon.Focus()
		case 2:
			m.Editor.Prompt.Focus()
		}
		return nil
	case "ctrl+s":
		return m.saveEditor()
	}

	var cmd tea.Cmd
	switch m.Editor.FocusIdx {
	case 0:
		m.Editor.Name, cmd = m.Editor.Name.Update(msg)
	case 1:
		m.Editor.Icon, cmd = m.Editor.Icon.Update(msg)
	case 2:
		m.Editor.Prompt, cmd = m.Editor.Prompt.Update(msg)
	}
	return cmd
}

func (m *Model) saveEditor() tea.Cmd {
	id := m.Editor.ID
	creating := id == ""
	if creating {
		id = uuid.NewString()
	}
	name := m.Editor.Name.Value()
	icon := m.Editor.Icon.Value()
	prompt := m.Editor.Prompt.Value()

	if err := m.Agents.Upsert(id, name, prompt, icon); err != nil {
		m.Editor.Err = err.Error()
		return nil
	}

	// Editing the active chat's agent retargets its system prompt in place.
	if c := m.History.Current(); c != nil && c.Agent == id && !creating {
		if err := m.History.SetSystemPrompt(strings.TrimSpace(prompt)); err != nil {
			m.Log.Warnw("update chat system prompt", "error", err)
		}
	}

	m.EditorOpen = false
	m.AgentsOpen = true
	m.Editor.Err = ""
	return nil
}

func (m *Model) exportModalKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc", "ctrl+e":
		m.ExportOpen = false
	case "up", "k":
		m.ExportSelectedIdx--
		if m.ExportSelectedIdx < 0 {
			m.ExportSelectedIdx = len(exportOptions) - 1
		}
	case "down", "j":
		m.ExportSelectedIdx++
		if m.ExportSelectedIdx >= len(exportOptions) {
			m.ExportSelectedIdx = 0
		}
	case "enter":
		opt := exportOptions[m.ExportSelectedIdx]
		m.ExportOpen = false
		return m.exportCmd(opt)
	}
	return nil
}

func (m *Model) exportCmd(opt exportOption) tea.Cmd {
	c := m.History.Current()
	if c == nil {
		return func() tea.Msg { return ExportDoneMsg{Err: chat.ErrNoCurrentChat} }
	}
	agentName := m.CurrentAgent().Name
	dir := m.ExportDir

	if opt.WholeChat {
		snapshot := *c
		snapshot.Messages = append([]models.Message(nil), c.Messages...)
		return func() tea.Msg {
			path, err := export.Chat(dir, &snapshot, agentName, opt.Format)
			return ExportDoneMsg{Path: path, Err: err}
		}
	}

	last, ok := lastExportableMessage(c)
	if !ok {
		return func() tea.Msg { return ExportDoneMsg{Err: errors.New("no message to export")} }
	}
	return func() tea.Msg {
		path, err := export.Message(dir, last, agentName, opt.Format)
		return ExportDoneMsg{Path: path, Err: err}
	}
}

func lastExportableMessage(c *models.Chat) (models.Message, bool) {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		msg := c.Messages[i]
		if msg.Role != models.RoleSystem && !msg.IsStreaming {
			return msg, true
		}
	}
	return models.Message{}, false
}

func (m *Model) insertSelectedSuggestion() {
	if len(m.FileSuggestions) == 0 || m.FileSuggestIdx >= len(m.FileSuggestions) {
		m.FileSuggestOpen = false
		return
	}
	selected := m.FileSuggestions[m.FileSuggestIdx]
	val := m.TextInput.Value()
	cursorPos := TextareaCursorIndex(m.TextInput)
	prefix, startPos, found := GetAtPosition(val, cursorPos)
	if found {
		newVal := val[:startPos] + "@" + selected + " " + val[startPos+1+len(prefix):]
		newCursorIndex := startPos + len(selected) + 2
		m.TextInput.SetValue(newVal)
		row, col := TextareaCursorFromIndex(newVal, newCursorIndex)
		SetTextareaCursor(&m.TextInput, row, col)
	}
	m.FileSuggestOpen = false
}

func isNewlineShortcut(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "shift+enter", "shift+return", "ctrl+j", "ctrl+enter", "alt+enter":
		return true
	default:
		return false
	}
}

func (m *Model) chatWidth() int {
	w := m.WindowWidth - 2
	if m.sidebarShown() {
		w -= SidebarWidth
	}
	if w < 20 {
		w = 20
	}
	return w
}

func (m *Model) sidebarShown() bool {
	return m.SidebarVisible && m.WindowWidth >= CompactWidthThresh
}

func (m *Model) updateInputLayout() {
	if m.WindowWidth == 0 || m.WindowHeight == 0 {
		return
	}

	inputWidth := m.chatWidth() - 4
	if inputWidth < 20 {
		inputWidth = 20
	}
	contentWidth := inputWidth - 2
	if contentWidth < 1 {
		contentWidth = 1
	}

	maxInputHeight := 6
	lineCount := WrappedLineCount(m.TextInput.Value(), contentWidth)
	if lineCount < 1 {
		lineCount = 1
	}
	if lineCount > maxInputHeight {
		lineCount = maxInputHeight
	}

	m.TextInput.MaxHeight = maxInputHeight
	m.TextInput.SetWidth(inputWidth)
	m.TextInput.SetHeight(lineCount)

	inputBoxHeight := m.TextInput.Height() + 2
	reserved := inputBoxHeight + 5
	viewportHeight := m.WindowHeight - reserved
	if viewportHeight < 5 {
		viewportHeight = 5
	}
	m.Viewport.Height = viewportHeight
}
