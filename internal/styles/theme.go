package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines a complete color scheme for the application
type Theme struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	BgBase     lipgloss.Color
	BgSurface  lipgloss.Color
	BgElevated lipgloss.Color

	TextPrimary   lipgloss.Color
	TextSecondary lipgloss.Color
	TextMuted     lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	Border  lipgloss.Color
	Divider lipgloss.Color
}

// DarkTheme is the dark mode color scheme
var DarkTheme = Theme{
	Primary:   lipgloss.Color("#818CF8"), // Indigo 400
	Secondary: lipgloss.Color("#22D3EE"), // Cyan 400
	Accent:    lipgloss.Color("#F472B6"), // Pink 400

	BgBase:     lipgloss.Color("#0B0B0F"),
	BgSurface:  lipgloss.Color("#141419"),
	BgElevated: lipgloss.Color("#1E1E2A"),

	TextPrimary:   lipgloss.Color("#F1F5F9"), // Slate 100
	TextSecondary: lipgloss.Color("#94A3B8"), // Slate 400
	TextMuted:     lipgloss.Color("#64748B"), // Slate 500

	Success: lipgloss.Color("#34D399"), // Emerald 400
	Warning: lipgloss.Color("#FBBF24"), // Amber 400
	Error:   lipgloss.Color("#FB7185"), // Rose 400
	Info:    lipgloss.Color("#60A5FA"), // Blue 400

	Border:  lipgloss.Color("#27272A"),
	Divider: lipgloss.Color("#1F2937"),
}

// LightTheme is the light mode color scheme
var LightTheme = Theme{
	Primary:   lipgloss.Color("#4F46E5"), // Indigo 600
	Secondary: lipgloss.Color("#0891B2"), // Cyan 600
	Accent:    lipgloss.Color("#DB2777"), // Pink 600

	BgBase:     lipgloss.Color("#FAFAFA"),
	BgSurface:  lipgloss.Color("#FFFFFF"),
	BgElevated: lipgloss.Color("#F4F4F5"),

	TextPrimary:   lipgloss.Color("#18181B"), // Zinc 900
	TextSecondary: lipgloss.Color("#52525B"), // Zinc 600
	TextMuted:     lipgloss.Color("#A1A1AA"), // Zinc 400

	Success: lipgloss.Color("#10B981"), // Emerald 500
	Warning: lipgloss.Color("#F59E0B"), // Amber 500
	Error:   lipgloss.Color("#EF4444"), // Red 500
	Info:    lipgloss.Color("#3B82F6"), // Blue 500

	Border:  lipgloss.Color("#E4E4E7"),
	Divider: lipgloss.Color("#F4F4F5"),
}

// CurrentTheme holds the active theme (set at runtime based on terminal)
var CurrentTheme = DarkTheme

// AgentColorMap returns the accent color for the built-in agents
var AgentColorMap = map[string]lipgloss.Color{
	"default":  lipgloss.Color("#818CF8"), // Indigo
	"coder":    lipgloss.Color("#34D399"), // Emerald
	"creative": lipgloss.Color("#F472B6"), // Pink
	"teacher":  lipgloss.Color("#FBBF24"), // Amber
}

// GetAgentColor returns the color for an agent
func GetAgentColor(agentID string) lipgloss.Color {
	if c, ok := AgentColorMap[agentID]; ok {
		return c
	}
	return CurrentTheme.Primary
}

// InitTheme sets the current theme based on terminal background
func InitTheme() {
	if lipgloss.HasDarkBackground() {
		CurrentTheme = DarkTheme
	} else {
		CurrentTheme = LightTheme
	}
}
