package overlay

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/sheetui/pkg/presence"
)

// MenuItem is one context menu entry. Separator items are not selectable.
type MenuItem struct {
	ID        string
	Label     string
	Shortcut  string
	Separator bool
}

// Separator returns a divider item.
func Separator() MenuItem { return MenuItem{Separator: true} }

// ContextMenu is a cell action menu opened at a screen position.
type ContextMenu struct {
	*Overlay
	items  []MenuItem
	active int
	x, y   int
}

// NewContextMenu creates a closed menu.
func NewContextMenu(sched presence.Scheduler, items []MenuItem, exit time.Duration) *ContextMenu {
	return &ContextMenu{
		Overlay: New(sched, "context_menu", exit),
		items:   items,
	}
}

// OpenAt opens the menu at (x, y). The position is kept while the menu
// exits so it does not jump during the close transition.
func (c *ContextMenu) OpenAt(x, y int) {
	c.x, c.y = x, y
	c.active = c.next(-1, 1)
	c.SetOpen(true)
}

// Close closes the menu.
func (c *ContextMenu) Close() {
	c.SetOpen(false)
}

// Pos returns the last open position.
func (c *ContextMenu) Pos() (int, int) { return c.x, c.y }

// Active returns the highlighted item ID.
func (c *ContextMenu) Active() string {
	if c.active < 0 || c.active >= len(c.items) {
		return ""
	}
	return c.items[c.active].ID
}

func (c *ContextMenu) next(from, dir int) int {
	for i := from + dir; i >= 0 && i < len(c.items); i += dir {
		if !c.items[i].Separator {
			return i
		}
	}
	if from < 0 {
		return -1
	}
	return from
}

// HandleKey navigates the menu. Enter returns the active item's ID and
// closes the menu; esc closes it.
func (c *ContextMenu) HandleKey(msg tea.KeyMsg) (action string, handled bool) {
	if !c.IsOpen() {
		return "", false
	}
	switch msg.String() {
	case "up", "k":
		c.active = c.next(c.active, -1)
	case "down", "j":
		c.active = c.next(c.active, 1)
	case "enter":
		action = c.Active()
		c.Close()
	case "esc":
		c.Close()
	}
	return action, true
}

// View renders the menu, or "" when unmounted.
func (c *ContextMenu) View() string {
	width := 0
	for _, it := range c.items {
		width = max(width, lipgloss.Width(it.Label)+lipgloss.Width(it.Shortcut)+4)
	}

	var lines []string
	for i, it := range c.items {
		if it.Separator {
			lines = append(lines, separatorStyle.Render(strings.Repeat("─", width)))
			continue
		}
		gap := width - lipgloss.Width(it.Label) - lipgloss.Width(it.Shortcut) - 2
		line := " " + it.Label + strings.Repeat(" ", max(gap, 1)) + kbdStyle.Render(it.Shortcut) + " "
		if i == c.active {
			line = itemActiveStyle.Render(" " + it.Label + strings.Repeat(" ", max(gap, 1)) + it.Shortcut + " ")
		}
		lines = append(lines, line)
	}
	return c.Box(strings.Join(lines, "\n"), boxStyle.Padding(0))
}
