package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"chatapp/internal/models"
	"chatapp/internal/styles"
)

func GetWelcomeScreen(width, height int, agentName string) string {
	art := `
 ╭──────────────────────────────────────────────╮
 │                                              │
 │    ▄████▄  ██░ ██  ▄▄▄     ▄▄▄█████▓         │
 │   ▒██▀ ▀█ ▓██░ ██▒▒████▄   ▓  ██▒ ▓▒         │
 │   ▒▓█    ▄▒██▀▀██░▒██  ▀█▄ ▒ ▓██░ ▒░         │
 │   ▒▓▓▄ ▄██░▓█ ░██ ░██▄▄▄▄██░ ▓██▓ ░          │
 │   ▒ ▓███▀ ░▓█▒░██▓ ▓█   ▓██▒ ▒██▒ ░          │
 │   ░ ░▒ ▒  ░▒ ░░▒░▒ ▒▒   ▓▒█░ ▒ ░░            │
 │     ░  ▒   ▒ ░▒░ ░  ▒   ▒▒ ░   ░             │
 │   ░        ░  ░░ ░  ░   ▒    ░               │
 │   ░ ░      ░  ░  ░      ░  ░                 │
 │                                              │
 ╰──────────────────────────────────────────────╯
`
	subtitle := fmt.Sprintf("Ctrl+N starts a chat with %s • Ctrl+S shows shortcuts", agentName)

	styledArt := styles.WelcomeArtStyle.Render(art)
	styledSubtitle := styles.WelcomeSubtitleStyle.Render(subtitle)

	content := lipgloss.JoinVertical(lipgloss.Center, styledArt, "", styledSubtitle)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// UpdateViewport rebuilds the transcript from the current conversation.
func (m *Model) UpdateViewport() {
	conv := m.History.Conversation()
	ag := m.CurrentAgent()

	var rendered []string
	for _, msg := range conv {
		switch msg.Role {
		case models.RoleUser:
			rendered = append(rendered, m.formatUserMessage(msg, len(rendered) == 0))
		case models.RoleAssistant:
			if msg.IsStreaming {
				rendered = append(rendered, m.formatStreamingMessage(msg, ag))
				continue
			}
			rendered = append(rendered, m.formatAgentMessage(msg, ag))
		}
	}

	if len(rendered) == 0 {
		m.Viewport.SetContent(GetWelcomeScreen(m.Viewport.Width, m.Viewport.Height, ag.Name))
		return
	}

	m.Viewport.SetContent(strings.Join(rendered, "\n\n"))
	m.Viewport.GotoBottom()
}

func (m *Model) formatUserMessage(msg models.Message, isFirst bool) string {
	label := styles.UserLabelStyle.Render("YOU")
	if msg.IsQueued {
		label += " " + styles.QueuedBadgeStyle.Render("queued")
	}

	body := msg.Display()
	if len(msg.AttachedFiles) > 0 {
		names := make([]string, len(msg.AttachedFiles))
		for i, f := range msg.AttachedFiles {
			names[i] = f.Name
		}
		body += "\n" + styles.AttachmentStyle.Render("📎 "+strings.Join(names, ", "))
	}

	rendered := styles.UserMsgStyle.Width(m.Viewport.Width - 4).Render(body)
	if isFirst {
		return fmt.Sprintf("\n%s\n%s", label, rendered)
	}
	return fmt.Sprintf("%s\n%s", label, rendered)
}

func (m *Model) formatAgentMessage(msg models.Message, ag models.Agent) string {
	label := m.agentLabel(ag)
	if msg.WasStopped {
		label += " " + styles.StoppedBadgeStyle.Render("stopped")
	}

	content := msg.Content
	if m.Renderer != nil && content != "" {
		if rendered, err := m.Renderer.Render(content); err == nil {
			content = strings.TrimSpace(rendered)
		}
	}
	return fmt.Sprintf("%s\n%s", label, styles.AgentMsgStyle.Render(content))
}

func (m *Model) formatStreamingMessage(msg models.Message, ag models.Agent) string {
	label := m.agentLabel(ag)
	phrase := LoadingPhrase(time.Since(m.StreamStart))
	status := fmt.Sprintf("%s%s...", m.Spinner.View(), phrase)

	if msg.Content == "" {
		return fmt.Sprintf("%s\n%s", label, status)
	}
	return fmt.Sprintf("%s\n%s\n%s", label, styles.AgentMsgStyle.Render(msg.Content), status)
}

func (m *Model) agentLabel(ag models.Agent) string {
	name := strings.ToUpper(ag.Name)
	if ag.Icon != "" {
		name = ag.Icon + " " + name
	}
	return styles.AgentLabelStyle.Background(styles.GetAgentColor(ag.ID)).Render(name)
}

func (m *Model) RenderSidebar() string {
	height := m.WindowHeight - 3
	if height < 5 {
		height = 5
	}

	ag := m.CurrentAgent()
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.GetAgentColor(ag.ID)).
		Render(fmt.Sprintf("%s %s", ag.Icon, ag.Name))

	var items []string
	items = append(items, header, "")

	current := ""
	if c := m.History.Current(); c != nil {
		current = c.ID
	}
	for i, c := range m.History.Chats() {
		if i >= height-4 {
			break
		}
		title := TruncateRunes(c.Title, SidebarWidth-6)
		line := "  " + title
		if c.ID == current {
			line = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#B39DDB")).
				Render("▸ " + title)
		}
		items = append(items, line)
	}
	if len(m.History.Chats()) == 0 {
		items = append(items, styles.InfoStyle("No chats yet"))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, items...)
	return lipgloss.NewStyle().
		Width(SidebarWidth-2).
		Height(height).
		Padding(1, 1).
		BorderRight(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#333333")).
		Render(body)
}

func (m *Model) RenderHistorySelector() string {
	chats := m.History.Chats()
	title := styles.ModalTitleStyle.Render(fmt.Sprintf("Chat History (%d)", len(chats)))

	var body string
	if m.HistoryErr != nil {
		body = lipgloss.NewStyle().Width(styles.ContentWidth).Render(
			styles.ErrorStyle.Render(fmt.Sprintf("Error: %v", m.HistoryErr)))
	} else if len(chats) == 0 {
		body = styles.ModalItemStyle.Render(lipgloss.NewStyle().Foreground(styles.HintColor).Render("No chats yet"))
	} else {
		items := make([]string, 0, len(chats))
		for i, c := range chats {
			cursor := "  "
			if i == m.HistorySelectedIdx {
				cursor = "> "
			}
			timeStr := RelativeTime(c.CreatedAt)
			titleStr := TruncateRunes(c.Title, styles.ContentWidth-4-len(timeStr))
			item := fmt.Sprintf("%s%s %s", cursor, titleStr,
				lipgloss.NewStyle().Foreground(styles.HintColor).Render(timeStr))
			if i == m.HistorySelectedIdx {
				items = append(items, styles.ModalSelectedStyle.Render(item))
			} else {
				items = append(items, styles.ModalItemStyle.Render(item))
			}
		}
		body = lipgloss.JoinVertical(lipgloss.Left, items...)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, body)
	hint := lipgloss.NewStyle().
		Foreground(styles.HintColor).
		Width(styles.ContentWidth).
		PaddingTop(1).
		Render("↑/↓: navigate • Enter: open • d: delete • Esc: close")

	return lipgloss.JoinVertical(lipgloss.Left, content, hint)
}

func (m *Model) RenderAgentSelector() string {
	agents := m.Agents.List()
	title := styles.ModalTitleStyle.Render("Agents")

	var items []string
	for i, ag := range agents {
		display := fmt.Sprintf("%s %s", ag.Icon, ag.Name)
		if ag.IsDefault {
			display += lipgloss.NewStyle().Foreground(styles.HintColor).Render("  built-in")
		}
		if i == m.AgentSelectedIdx {
			items = append(items, styles.ModalSelectedStyle.Render(display))
		} else {
			items = append(items, styles.ModalItemStyle.Render(display))
		}
	}
	body := lipgloss.JoinVertical(lipgloss.Left, items...)

	if m.AgentsErr != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, body, "",
			lipgloss.NewStyle().Width(styles.ContentWidth).Render(styles.ErrorStyle.Render(m.AgentsErr)))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, body)
	hint := lipgloss.NewStyle().
		Foreground(styles.HintColor).
		Width(styles.ContentWidth).
		PaddingTop(1).
		Render("Enter: new chat • n: new • e: edit • d: delete • Esc: close")

	return lipgloss.JoinVertical(lipgloss.Left, content, hint)
}

func (m *Model) RenderAgentEditor() string {
	header := "Edit Agent"
	if m.Editor.ID == "" {
		header = "New Agent"
	}
	title := styles.ModalTitleStyle.Render(header)

	labelStyle := lipgloss.NewStyle().Foreground(styles.HintColor)
	parts := []string{
		title,
		labelStyle.Render("Name"),
		m.Editor.Name.View(),
		"",
		labelStyle.Render("Icon"),
		m.Editor.Icon.View(),
		"",
		labelStyle.Render("System prompt"),
		m.Editor.Prompt.View(),
	}
	if m.Editor.Err != "" {
		parts = append(parts, "", styles.ErrorStyle.Render(m.Editor.Err))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)
	hint := lipgloss.NewStyle().
		Foreground(styles.HintColor).
		Width(styles.ContentWidth).
		PaddingTop(1).
		Render("Tab: next field • Ctrl+S: save • Esc: cancel")

	return lipgloss.JoinVertical(lipgloss.Left, content, hint)
}

func (m *Model) RenderExportSelector() string {
	title := styles.ModalTitleStyle.Render("Export")

	var items []string
	for i, opt := range exportOptions {
		if i == m.ExportSelectedIdx {
			items = append(items, styles.ModalSelectedStyle.Render(opt.Label))
		} else {
			items = append(items, styles.ModalItemStyle.Render(opt.Label))
		}
	}
	body := lipgloss.JoinVertical(lipgloss.Left, items...)

	content := lipgloss.JoinVertical(lipgloss.Left, title, body)
	hint := lipgloss.NewStyle().
		Foreground(styles.HintColor).
		Width(styles.ContentWidth).
		PaddingTop(1).
		Render("↑/↓: navigate • Enter: export • Esc: close")

	return lipgloss.JoinVertical(lipgloss.Left, content, hint)
}

func (m *Model) RenderShortcutsModal() string {
	title := styles.ModalTitleStyle.Render("Keyboard Shortcuts")

	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Ctrl+C", "Quit Application"},
		{"Ctrl+N", "New Chat"},
		{"Ctrl+B", "Agents"},
		{"Ctrl+H", "Chat History"},
		{"Ctrl+E", "Export"},
		{"Ctrl+T", "Toggle Sidebar"},
		{"Ctrl+S", "View Shortcuts (this menu)"},
		{"Esc", "Stop Generation"},
		{"@", "Attach File (in input)"},
	}

	var items []string
	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFCC80")).
		Bold(true).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#E0E0E0"))

	for _, s := range shortcuts {
		line := fmt.Sprintf("%s %s", keyStyle.Render(s.key), descStyle.Render(s.desc))
		items = append(items, styles.ModalItemStyle.Render(line))
	}

	listContent := lipgloss.JoinVertical(lipgloss.Left, items...)
	content := lipgloss.JoinVertical(lipgloss.Left, title, listContent)

	hint := lipgloss.NewStyle().
		Foreground(styles.HintColor).
		Width(styles.ContentWidth).
		PaddingTop(1).
		Render("Esc/Enter: close")

	return lipgloss.JoinVertical(lipgloss.Left, content, hint)
}

func (m *Model) RenderBottomBar() string {
	ag := m.CurrentAgent()
	agentBadge := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(styles.GetAgentColor(ag.ID)).
		Padding(0, 1).
		Render(strings.ToUpper(TruncateRunes(ag.Name, 20)))

	var conn string
	if m.Online {
		conn = styles.OnlineStyle.Render("● online")
	} else {
		conn = styles.OfflineStyle.Render("● offline")
	}

	queued := ""
	if n := m.Queue.Len(); n > 0 {
		queued = styles.QueuedBadgeStyle.Render(fmt.Sprintf("%d queued", n))
	}

	chatCount := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666666")).
		Render(fmt.Sprintf("%d chats", len(m.History.Chats())))

	help := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#555555")).
		Render("Help: ^S")

	leftSide := lipgloss.JoinHorizontal(lipgloss.Center, agentBadge, "  ", conn)
	if queued != "" {
		leftSide = lipgloss.JoinHorizontal(lipgloss.Center, leftSide, "  ", queued)
	}
	rightSide := lipgloss.JoinHorizontal(lipgloss.Center, chatCount, "  ", help)

	availableWidth := m.WindowWidth - lipgloss.Width(leftSide) - lipgloss.Width(rightSide) - 2
	if availableWidth < 0 {
		availableWidth = 0
	}
	spacer := strings.Repeat(" ", availableWidth)

	bar := lipgloss.JoinHorizontal(lipgloss.Center, leftSide, spacer, rightSide)

	return lipgloss.NewStyle().
		Width(m.WindowWidth).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#333333")).
		Padding(0, 1).
		Render(bar)
}

func (m *Model) RenderPendingFiles() string {
	if len(m.PendingFiles) == 0 {
		return ""
	}

	chipStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#7C4DFF")).
		Padding(0, 1).
		MarginRight(1)

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888"))

	var chips []string
	for _, file := range m.PendingFiles {
		chips = append(chips, chipStyle.Render("📄 "+filepath.Base(file)))
	}

	return labelStyle.Render("Attached: ") + strings.Join(chips, " ")
}

func (m *Model) RenderFileSuggestions() string {
	if !m.FileSuggestOpen || len(m.FileSuggestions) == 0 {
		return ""
	}

	suggestionStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#E0E0E0")).
		Padding(0, 1)

	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#7C4DFF")).
		Padding(0, 1)

	var lines []string
	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		Italic(true).
		Render("  Files (↑↓ to select, Tab/Enter to insert)")
	lines = append(lines, header)

	for i, suggestion := range m.FileSuggestions {
		if i == m.FileSuggestIdx {
			lines = append(lines, selectedStyle.Render("▸ "+suggestion))
		} else {
			lines = append(lines, suggestionStyle.Render("  "+suggestion))
		}
	}

	popupStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#7C4DFF")).
		Background(lipgloss.Color("#1E1E2E")).
		Padding(0, 1)

	return popupStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderModal(body string) string {
	modal := styles.ModalStyle.Width(ModalWidth).Render(body)
	return lipgloss.Place(
		m.WindowWidth,
		m.WindowHeight,
		lipgloss.Center,
		lipgloss.Center,
		modal,
	)
}

func (m *Model) View() string {
	switch {
	case m.HistoryOpen:
		return m.renderModal(m.RenderHistorySelector())
	case m.EditorOpen:
		return m.renderModal(m.RenderAgentEditor())
	case m.AgentsOpen:
		return m.renderModal(m.RenderAgentSelector())
	case m.ExportOpen:
		return m.renderModal(m.RenderExportSelector())
	case m.ShortcutsOpen:
		return m.renderModal(m.RenderShortcutsModal())
	}

	fileSuggestPopup := m.RenderFileSuggestions()
	pendingFilesDisplay := m.RenderPendingFiles()

	inputWidth := m.chatWidth() - 2
	inputBox := styles.InputBoxStyle.Width(inputWidth).Render(m.TextInput.View())

	var inputParts []string
	if m.StatusLine != "" {
		inputParts = append(inputParts, m.StatusLine)
	}
	if pendingFilesDisplay != "" {
		inputParts = append(inputParts, pendingFilesDisplay)
	}
	if fileSuggestPopup != "" {
		inputParts = append(inputParts, fileSuggestPopup)
	}
	inputParts = append(inputParts, inputBox)
	inputSection := lipgloss.JoinVertical(lipgloss.Left, inputParts...)

	chatContent := lipgloss.JoinVertical(lipgloss.Center,
		styles.TitleStyle.Render(m.chatTitle()),
		"",
		m.Viewport.View(),
		"",
		inputSection,
	)

	var mainArea string
	if m.sidebarShown() {
		mainArea = lipgloss.JoinHorizontal(lipgloss.Top, m.RenderSidebar(), chatContent)
	} else {
		mainArea = lipgloss.PlaceHorizontal(m.WindowWidth, lipgloss.Center, chatContent)
	}

	bottomBar := m.RenderBottomBar()
	return lipgloss.JoinVertical(lipgloss.Left, mainArea, bottomBar)
}

func (m *Model) chatTitle() string {
	if c := m.History.Current(); c != nil {
		return TruncateRunes(c.Title, m.chatWidth()-4)
	}
	return "CHAT"
}
