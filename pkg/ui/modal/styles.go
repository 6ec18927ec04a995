package modal

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/sheetui/pkg/ui/overlay"
)

// Border accents per variant, as hex so presence fades can blend them.
const (
	accentDefault = overlay.BorderOpen
	accentDanger  = overlay.AccentDanger
	accentWarning = overlay.AccentWarning
	accentInfo    = overlay.AccentInfo
)

var (
	Primary = lipgloss.Color(overlay.BorderOpen)
	Error   = lipgloss.Color(overlay.AccentDanger)
	Muted   = lipgloss.Color(overlay.Muted)
)

// Button styles
var (
	Button = lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Background(lipgloss.Color("238")).
		Padding(0, 2)

	ButtonFocused = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(Primary).
			Bold(true).
			Padding(0, 2)

	ButtonDanger = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("238")).
			Padding(0, 2)

	ButtonDangerFocused = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(Error).
				Bold(true).
				Padding(0, 2)
)

// Text styles
var (
	ModalTitle = lipgloss.NewStyle().Bold(true)
	MutedText  = lipgloss.NewStyle().Foreground(Muted)
	Body       = lipgloss.NewStyle()
	Hint       = lipgloss.NewStyle().Foreground(Muted).Italic(true)
)

// List styles
var (
	ListItemNormal = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	ListItemSelected = lipgloss.NewStyle().
				Background(lipgloss.Color("237")).
				Foreground(lipgloss.Color("255"))

	ListItemFocused = lipgloss.NewStyle().
			Background(lipgloss.Color("237")).
			Foreground(lipgloss.Color("255")).
			Bold(true)

	ListCursor = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)
)

var frame = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	Padding(0, 1)
