// Package palette implements the command palette overlay.
package palette

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/sheetui/pkg/presence"
	"github.com/marcus/sheetui/pkg/ui/overlay"
)

const (
	// DefaultExitDuration matches the modal family.
	DefaultExitDuration = 240 * time.Millisecond

	width      = 56
	maxVisible = 8
)

var (
	groupStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(overlay.Muted)).Bold(true)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(overlay.Text))
	activeStyle   = lipgloss.NewStyle().Background(lipgloss.Color(overlay.Highlight)).Foreground(lipgloss.Color("255"))
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(overlay.Muted)).Faint(true)
	shortcutStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(overlay.Muted))
	emptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(overlay.Muted)).Italic(true)
	frameStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// Palette is a searchable command list.
type Palette struct {
	*overlay.Overlay
	input    textinput.Model
	commands []Command
	results  []Command
	active   int
}

// New creates a closed palette over cmds.
func New(sched presence.Scheduler, exit time.Duration, cmds []Command) *Palette {
	ti := textinput.New()
	ti.Placeholder = "Search commands (save, sort, color...)"
	ti.Prompt = "> "
	ti.CharLimit = 80
	ti.Width = width - 8

	return &Palette{
		Overlay:  overlay.New(sched, "palette", exit),
		input:    ti,
		commands: cmds,
		results:  cmds,
	}
}

// SetCommands replaces the command list and refilters.
func (p *Palette) SetCommands(cmds []Command) {
	p.commands = cmds
	p.refilter()
}

// Open clears the query and opens the palette.
func (p *Palette) Open() tea.Cmd {
	p.input.SetValue("")
	p.active = 0
	p.refilter()
	p.SetOpen(true)
	return p.input.Focus()
}

// Close closes the palette.
func (p *Palette) Close() {
	p.input.Blur()
	p.SetOpen(false)
}

// Query returns the current search text.
func (p *Palette) Query() string { return p.input.Value() }

// Results returns the filtered commands.
func (p *Palette) Results() []Command { return p.results }

// Active returns the highlighted command.
func (p *Palette) Active() (Command, bool) {
	if p.active < 0 || p.active >= len(p.results) {
		return Command{}, false
	}
	return p.results[p.active], true
}

func (p *Palette) refilter() {
	p.results = Filter(p.input.Value(), p.commands)
	if len(p.results) == 0 {
		p.active = 0
		return
	}
	p.active = min(p.active, len(p.results)-1)
}

// HandleKey processes a key while open. Enter on an enabled command closes
// the palette and returns the command's ID; esc closes it.
func (p *Palette) HandleKey(msg tea.KeyMsg) (string, tea.Cmd) {
	if !p.IsOpen() {
		return "", nil
	}
	n := len(p.results)
	switch msg.String() {
	case "esc":
		p.Close()
		return "", nil
	case "down", "ctrl+n":
		if n > 0 {
			p.active = (p.active + 1) % n
		}
		return "", nil
	case "up", "ctrl+p":
		if n > 0 {
			p.active = (p.active - 1 + n) % n
		}
		return "", nil
	case "enter":
		c, ok := p.Active()
		if !ok || c.Disabled {
			return "", nil
		}
		p.Close()
		return c.ID, nil
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	p.refilter()
	return "", cmd
}

// View renders the palette, or "" while unmounted.
func (p *Palette) View() string {
	if !p.Mounted() {
		return ""
	}
	inner := width - 4

	lines := []string{p.input.View(), strings.Repeat("─", inner)}
	if len(p.results) == 0 {
		lines = append(lines, emptyStyle.Render("No matching commands"))
	}

	start := 0
	if p.active >= maxVisible {
		start = p.active - maxVisible + 1
	}
	end := min(start+maxVisible, len(p.results))
	lastGroup := ""
	for i := start; i < end; i++ {
		c := p.results[i]
		if c.Group != "" && c.Group != lastGroup {
			lines = append(lines, groupStyle.Render(strings.ToUpper(c.Group)))
		}
		lastGroup = c.Group
		lines = append(lines, p.renderRow(c, i == p.active, inner))
	}

	style := frameStyle.
		Width(width).
		BorderForeground(p.Accent(overlay.BorderDim, overlay.BorderOpen))
	if p.State() == presence.StateClosed {
		style = style.Faint(true)
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (p *Palette) renderRow(c Command, active bool, w int) string {
	shortcut := ""
	if c.Shortcut != "" {
		shortcut = shortcutStyle.Render(c.Shortcut)
	}
	labelW := max(w-ansi.StringWidth(c.Shortcut)-2, 1)
	label := ansi.Truncate(c.Label, labelW, "…")
	gap := max(w-ansi.StringWidth(label)-ansi.StringWidth(c.Shortcut), 1)
	row := label + strings.Repeat(" ", gap)

	switch {
	case c.Disabled:
		return disabledStyle.Render(row + c.Shortcut)
	case active:
		return activeStyle.Render(row) + shortcut
	default:
		return labelStyle.Render(row) + shortcut
	}
}
