// Package presence controls when a transient UI surface (tooltip, modal,
// dropdown, toast, context menu, popover) exists in the render tree and which
// of its two visual states it shows.
//
// A Controller turns a host's boolean intent into a Snapshot. Opening always
// renders one "closed" frame before "open" so the animation system sees a
// before state; closing keeps the surface mounted in the "closed" state for
// the configured exit duration before unmounting it.
//
//	c := presence.New(sched, false, presence.WithExitDuration(120*time.Millisecond))
//	defer c.Dispose()
//
//	// on every intent change:
//	snap := c.Evaluate(hovered)
//	if snap.Mounted {
//	    render(content, snap.State)
//	}
//
// All calls, including the callbacks handed to the Scheduler, must happen on
// the host's single UI goroutine. The controller holds no locks.
package presence

import (
	"log/slog"
	"time"
)

// DefaultExitDuration is the delay between a closing intent and the unmount.
const DefaultExitDuration = 240 * time.Millisecond

// State is the visual flag a renderer attaches to a mounted surface.
// StateClosed covers both "mounted, not yet entered" and "mounted, exiting".
type State string

const (
	StateOpen   State = "open"
	StateClosed State = "closed"
)

// Snapshot is the (isMounted, state) pair consumed by rendering code.
type Snapshot struct {
	Mounted bool
	State   State
}

// Presence is the capability every overlay host consumes.
type Presence interface {
	Evaluate(intent bool) Snapshot
	Snapshot() Snapshot
	Dispose()
}

type phase int

const (
	phaseUnmounted phase = iota
	phaseEntering        // mounted, closed, enter frame pending
	phaseOpen            // mounted, open
	phaseExiting         // mounted, closed, exit timer pending
)

func (p phase) String() string {
	switch p {
	case phaseEntering:
		return "entering"
	case phaseOpen:
		return "open"
	case phaseExiting:
		return "exiting"
	default:
		return "unmounted"
	}
}

// Controller is the presence state machine. Create one per overlay instance
// with New and call Dispose exactly once when the host is torn down.
type Controller struct {
	sched        Scheduler
	exitDuration time.Duration
	onChange     func(Snapshot)
	logger       *slog.Logger
	name         string

	phase phase
	// opened records whether the current mount reached phaseOpen. It decides
	// whether a re-open during exit snaps back or replays the enter frame.
	opened bool

	// Tokens are compared at fire time. Zero means nothing is pending; a
	// callback whose captured token no longer matches is stale.
	seq         uint64
	enterToken  uint64
	exitToken   uint64
	enterHandle Handle
	exitHandle  Handle

	disposed bool
}

var _ Presence = (*Controller)(nil)

// Option configures a Controller.
type Option func(*Controller)

// WithExitDuration sets how long a closing surface stays mounted.
// Negative durations are ignored.
func WithExitDuration(d time.Duration) Option {
	return func(c *Controller) {
		if d >= 0 {
			c.exitDuration = d
		}
	}
}

// WithOnChange registers a callback invoked after every observable change,
// whether caused by Evaluate or by a scheduled handle firing.
func WithOnChange(fn func(Snapshot)) Option {
	return func(c *Controller) {
		c.onChange = fn
	}
}

// WithLogger sets the logger used for debug transition logs.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithName labels the controller in log records.
func WithName(name string) Option {
	return func(c *Controller) {
		c.name = name
	}
}

// New creates a controller seeded with the host's initial intent.
func New(sched Scheduler, intent bool, opts ...Option) *Controller {
	c := &Controller{
		sched:        sched,
		exitDuration: DefaultExitDuration,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if intent {
		c.Evaluate(true)
	}
	return c
}

// ExitDuration returns the configured exit delay.
func (c *Controller) ExitDuration() time.Duration {
	return c.exitDuration
}

// Snapshot returns the current projection without side effects.
func (c *Controller) Snapshot() Snapshot {
	switch c.phase {
	case phaseOpen:
		return Snapshot{Mounted: true, State: StateOpen}
	case phaseEntering, phaseExiting:
		return Snapshot{Mounted: true, State: StateClosed}
	default:
		return Snapshot{Mounted: false, State: StateClosed}
	}
}

// Pending reports whether an enter frame or an exit timer is outstanding.
func (c *Controller) Pending() (enter, exit bool) {
	return c.enterToken != 0, c.exitToken != 0
}

// Evaluate feeds the host's current intent into the state machine and
// returns the resulting snapshot. Repeating the same intent is a no-op.
func (c *Controller) Evaluate(intent bool) Snapshot {
	if c.disposed {
		return c.Snapshot()
	}

	prev := c.phase
	if intent {
		c.evaluateOpen()
	} else {
		c.evaluateClosed()
	}
	if c.phase != prev {
		c.changed(prev, "intent")
	}
	return c.Snapshot()
}

func (c *Controller) evaluateOpen() {
	switch c.phase {
	case phaseUnmounted:
		c.opened = false
		c.phase = phaseEntering
		c.scheduleEnter()
	case phaseEntering:
		if c.enterToken == 0 {
			c.scheduleEnter()
		}
	case phaseExiting:
		c.cancelExit()
		if c.opened {
			// Snap back without replaying the enter frame.
			c.phase = phaseOpen
			return
		}
		c.phase = phaseEntering
		c.scheduleEnter()
	}
}

func (c *Controller) evaluateClosed() {
	switch c.phase {
	case phaseEntering, phaseOpen:
		c.cancelEnter()
		c.phase = phaseExiting
		c.scheduleExit()
	}
}

func (c *Controller) scheduleEnter() {
	c.cancelEnter()
	c.seq++
	token := c.seq
	c.enterToken = token
	c.enterHandle = c.sched.NextFrame(func() { c.fireEnter(token) })
}

func (c *Controller) scheduleExit() {
	c.cancelExit()
	c.seq++
	token := c.seq
	c.exitToken = token
	c.exitHandle = c.sched.AfterFunc(c.exitDuration, func() { c.fireExit(token) })
}

func (c *Controller) cancelEnter() {
	if c.enterHandle != nil {
		c.enterHandle.Cancel()
	}
	c.enterHandle = nil
	c.enterToken = 0
}

func (c *Controller) cancelExit() {
	if c.exitHandle != nil {
		c.exitHandle.Cancel()
	}
	c.exitHandle = nil
	c.exitToken = 0
}

func (c *Controller) fireEnter(token uint64) {
	if c.disposed || token == 0 || token != c.enterToken {
		return
	}
	c.enterHandle = nil
	c.enterToken = 0
	if c.phase != phaseEntering {
		return
	}
	c.phase = phaseOpen
	c.opened = true
	c.changed(phaseEntering, "enter")
}

func (c *Controller) fireExit(token uint64) {
	if c.disposed || token == 0 || token != c.exitToken {
		return
	}
	c.exitHandle = nil
	c.exitToken = 0
	if c.phase != phaseExiting {
		return
	}
	c.phase = phaseUnmounted
	c.opened = false
	c.changed(phaseExiting, "exit")
}

func (c *Controller) changed(from phase, cause string) {
	c.logger.Debug("presence transition",
		"overlay", c.name, "from", from.String(), "to", c.phase.String(), "cause", cause)
	if c.onChange != nil {
		c.onChange(c.Snapshot())
	}
}

// Dispose cancels every pending handle and turns later calls into no-ops.
// It is safe to call more than once.
func (c *Controller) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.cancelEnter()
	c.cancelExit()
	c.onChange = nil
}
