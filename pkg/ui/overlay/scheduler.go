package overlay

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/sheetui/pkg/presence"
)

// FireMsg is delivered to Update when a scheduled callback is due.
type FireMsg struct {
	ID uint64
}

// TeaScheduler implements presence.Scheduler on top of the bubbletea event
// loop. Scheduling only records a tea.Tick command; the callback itself runs
// inside Update when its FireMsg arrives, so every presence transition happens
// on the program's update goroutine.
//
// Models call Handle for each message and return Cmd alongside their own
// commands:
//
//	if m.sched.Handle(msg) {
//	    return m, m.sched.Cmd()
//	}
//	...
//	return m, tea.Batch(cmd, m.sched.Cmd())
type TeaScheduler struct {
	frame   time.Duration
	seq     uint64
	pending map[uint64]func()
	cmds    []tea.Cmd
}

var _ presence.Scheduler = (*TeaScheduler)(nil)

// NewTeaScheduler creates a scheduler whose frames last frame.
func NewTeaScheduler(frame time.Duration) *TeaScheduler {
	if frame <= 0 {
		frame = presence.DefaultFrameInterval
	}
	return &TeaScheduler{
		frame:   frame,
		pending: make(map[uint64]func()),
	}
}

// FrameInterval returns the frame delay.
func (s *TeaScheduler) FrameInterval() time.Duration {
	return s.frame
}

// NextFrame implements presence.Scheduler.
func (s *TeaScheduler) NextFrame(fn func()) presence.Handle {
	return s.AfterFunc(s.frame, fn)
}

// AfterFunc implements presence.Scheduler.
func (s *TeaScheduler) AfterFunc(d time.Duration, fn func()) presence.Handle {
	s.seq++
	id := s.seq
	s.pending[id] = fn
	s.cmds = append(s.cmds, tea.Tick(max(d, 0), func(time.Time) tea.Msg {
		return FireMsg{ID: id}
	}))
	return presence.HandleFunc(func() {
		delete(s.pending, id)
	})
}

// Handle runs the callback for a FireMsg. It reports whether msg was a
// FireMsg at all; cancelled or unknown IDs are dropped.
func (s *TeaScheduler) Handle(msg tea.Msg) bool {
	fm, ok := msg.(FireMsg)
	if !ok {
		return false
	}
	fn, ok := s.pending[fm.ID]
	if !ok {
		return true
	}
	delete(s.pending, fm.ID)
	fn()
	return true
}

// Cmd drains the commands recorded since the last call.
func (s *TeaScheduler) Cmd() tea.Cmd {
	if len(s.cmds) == 0 {
		return nil
	}
	cmds := s.cmds
	s.cmds = nil
	return tea.Batch(cmds...)
}

// Pending counts callbacks that have not fired or been cancelled.
func (s *TeaScheduler) Pending() int {
	return len(s.pending)
}
