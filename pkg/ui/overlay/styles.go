package overlay

import "github.com/charmbracelet/lipgloss"

// Hex colors so fades can blend between them.
const (
	BorderDim  = "#3A3A3A"
	BorderOpen = "#FF87D7"
	Muted      = "#8A8A8A"
	Text       = "#E4E4E4"
	Surface    = "#262626"
	Highlight  = "#3A3A3A"
)

// Tone accents.
const (
	AccentInfo    = "#5FD7FF"
	AccentSuccess = "#5FD75F"
	AccentWarning = "#FFAF00"
	AccentDanger  = "#FF5F5F"
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Background(lipgloss.Color(Surface)).
			Foreground(lipgloss.Color(Text)).
			Padding(0, 1)

	tooltipStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Foreground(lipgloss.Color(Text)).
			Padding(0, 1)

	kbdStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Muted))

	itemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Text))

	itemActiveStyle = lipgloss.NewStyle().
			Background(lipgloss.Color(Highlight)).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true)

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(BorderDim))

	titleStyle = lipgloss.NewStyle().Bold(true)

	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Muted))
)
