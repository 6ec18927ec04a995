package overlay

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/sheetui/pkg/presence"
)

// Dropdown is a single-choice list anchored under a toolbar button.
type Dropdown struct {
	*Overlay
	title    string
	options  []string
	selected int
	x, y     int
}

// NewDropdown creates a closed dropdown.
func NewDropdown(sched presence.Scheduler, title string, options []string, exit time.Duration) *Dropdown {
	return &Dropdown{
		Overlay: New(sched, "dropdown", exit),
		title:   title,
		options: options,
	}
}

// OpenAt opens the dropdown at (x, y) with current preselected.
func (d *Dropdown) OpenAt(x, y int, current string) {
	d.x, d.y = x, y
	d.selected = 0
	for i, o := range d.options {
		if o == current {
			d.selected = i
		}
	}
	d.SetOpen(true)
}

// Close closes the dropdown.
func (d *Dropdown) Close() {
	d.SetOpen(false)
}

// Selected returns the highlighted option.
func (d *Dropdown) Selected() string {
	if d.selected < 0 || d.selected >= len(d.options) {
		return ""
	}
	return d.options[d.selected]
}

// Pos returns the anchor position.
func (d *Dropdown) Pos() (int, int) { return d.x, d.y }

// HandleKey processes navigation while open. It returns the chosen option
// on enter and closes the dropdown on enter or esc.
func (d *Dropdown) HandleKey(msg tea.KeyMsg) (choice string, handled bool) {
	if !d.IsOpen() {
		return "", false
	}
	switch msg.String() {
	case "up", "k":
		if d.selected > 0 {
			d.selected--
		}
	case "down", "j":
		if d.selected < len(d.options)-1 {
			d.selected++
		}
	case "enter":
		choice = d.Selected()
		d.Close()
	case "esc":
		d.Close()
	}
	return choice, true
}

// View renders the dropdown, or "" when unmounted.
func (d *Dropdown) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(d.title))
	for i, o := range d.options {
		sb.WriteString("\n")
		if i == d.selected {
			sb.WriteString(itemActiveStyle.Render("> " + o))
		} else {
			sb.WriteString(itemStyle.Render("  " + o))
		}
	}
	return d.Box(sb.String(), boxStyle)
}
