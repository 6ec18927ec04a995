package overlay

import (
	"time"

	"github.com/marcus/sheetui/pkg/presence"
)

// Popover is an anchored panel whose content is supplied by its owner.
type Popover struct {
	*Overlay
	x, y int
}

// NewPopover creates a closed popover.
func NewPopover(sched presence.Scheduler, name string, exit time.Duration) *Popover {
	return &Popover{Overlay: New(sched, name, exit)}
}

// OpenAt anchors the popover and opens it.
func (p *Popover) OpenAt(x, y int) {
	p.x, p.y = x, y
	p.SetOpen(true)
}

// Close closes the popover.
func (p *Popover) Close() {
	p.SetOpen(false)
}

// Pos returns the anchor position.
func (p *Popover) Pos() (int, int) { return p.x, p.y }

// Render frames content, or returns "" when unmounted.
func (p *Popover) Render(content string) string {
	return p.Box(content, boxStyle)
}
