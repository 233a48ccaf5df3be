package theme

import "github.com/charmbracelet/lipgloss"

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue   = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen  = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed    = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorGray   = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite  = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
)

// HeaderStyle is used for section headings (LOGIN, VIEW ALL TASKS, ...).
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite)

// ErrorStyle renders validation and authorization failure messages.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(ColorRed)

// SuccessStyle renders confirmation messages after a committed action.
var SuccessStyle = lipgloss.NewStyle().
	Foreground(ColorGreen)

// LabelStyle renders the fixed field labels in a task block.
var LabelStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorBlue)

// DividerStyle renders the horizontal rules between sections and tasks.
var DividerStyle = lipgloss.NewStyle().
	Foreground(ColorSubtle)

// StatusStyle returns a color-coded style for a completion status.
func StatusStyle(completed bool) lipgloss.Style {
	if completed {
		return lipgloss.NewStyle().Foreground(ColorGreen)
	}
	return lipgloss.NewStyle().Foreground(ColorYellow)
}
