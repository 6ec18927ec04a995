package overlay

import (
	"time"

	"github.com/marcus/sheetui/pkg/presence"
)

// Tooltip shows a label and optional shortcut next to a trigger while the
// trigger is hovered or focused.
type Tooltip struct {
	*Overlay
	label    string
	shortcut string
	x, y     int
}

// NewTooltip creates a hidden tooltip.
func NewTooltip(sched presence.Scheduler, exit time.Duration) *Tooltip {
	return &Tooltip{Overlay: New(sched, "tooltip", exit)}
}

// Show points the tooltip at a trigger and opens it. Moving between triggers
// while open only updates the content.
func (t *Tooltip) Show(label, shortcut string, x, y int) {
	t.label = label
	t.shortcut = shortcut
	t.x, t.y = x, y
	t.SetOpen(true)
}

// Hide closes the tooltip. Its last content stays visible while exiting.
func (t *Tooltip) Hide() {
	t.SetOpen(false)
}

// Label returns the current label.
func (t *Tooltip) Label() string { return t.label }

// Pos returns the anchor position.
func (t *Tooltip) Pos() (int, int) { return t.x, t.y }

// View renders the tooltip, or "" when unmounted.
func (t *Tooltip) View() string {
	content := t.label
	if t.shortcut != "" {
		content += "  " + kbdStyle.Render(t.shortcut)
	}
	return t.Box(content, tooltipStyle)
}
