// Package presencetest provides a deterministic virtual-time Scheduler for
// testing presence controllers and the overlays built on them.
package presencetest

import (
	"container/heap"
	"time"

	"github.com/marcus/sheetui/pkg/presence"
)

// Scheduler queues frames and timers against a virtual clock. Nothing fires
// until the test calls Frame or Advance.
type Scheduler struct {
	// Leaky makes Cancel a no-op with respect to firing, modelling a platform
	// whose cancellation is unreliable. Handles still report Cancelled.
	Leaky bool

	now    time.Duration
	seq    uint64
	frames []*Handle
	timers timerHeap
}

var _ presence.Scheduler = (*Scheduler)(nil)

// New returns an empty scheduler at virtual time zero.
func New() *Scheduler {
	s := &Scheduler{}
	heap.Init(&s.timers)
	return s
}

// Handle is a scheduled callback.
type Handle struct {
	fn        func()
	at        time.Duration
	seq       uint64
	cancelled bool
	fired     bool
}

// Cancel implements presence.Handle.
func (h *Handle) Cancel() { h.cancelled = true }

// Cancelled reports whether Cancel was called.
func (h *Handle) Cancelled() bool { return h.cancelled }

// Fired reports whether the callback ran.
func (h *Handle) Fired() bool { return h.fired }

func (s *Scheduler) live(h *Handle) bool {
	return !h.fired && (!h.cancelled || s.Leaky)
}

// NextFrame implements presence.Scheduler.
func (s *Scheduler) NextFrame(fn func()) presence.Handle {
	s.seq++
	h := &Handle{fn: fn, at: s.now, seq: s.seq}
	s.frames = append(s.frames, h)
	return h
}

// AfterFunc implements presence.Scheduler.
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) presence.Handle {
	s.seq++
	h := &Handle{fn: fn, at: s.now + max(d, 0), seq: s.seq}
	heap.Push(&s.timers, h)
	return h
}

// Now returns the virtual time.
func (s *Scheduler) Now() time.Duration { return s.now }

// Frame runs every frame callback registered before the call, in order.
// Callbacks registered while running wait for the next Frame.
func (s *Scheduler) Frame() int {
	batch := s.frames
	s.frames = nil
	n := 0
	for _, h := range batch {
		if !s.live(h) {
			continue
		}
		h.fired = true
		h.fn()
		n++
	}
	return n
}

// Advance moves the clock forward by d and fires every timer that becomes
// due, in (deadline, registration) order. Advance(0) fires timers due now.
func (s *Scheduler) Advance(d time.Duration) int {
	target := s.now + max(d, 0)
	n := 0
	for s.timers.Len() > 0 && s.timers[0].at <= target {
		h := heap.Pop(&s.timers).(*Handle)
		if h.at > s.now {
			s.now = h.at
		}
		if !s.live(h) {
			continue
		}
		h.fired = true
		h.fn()
		n++
	}
	s.now = target
	return n
}

// Tick runs one frame then fires timers due at the current time.
func (s *Scheduler) Tick() int {
	return s.Frame() + s.Advance(0)
}

// PendingFrames counts frame callbacks that would still run.
func (s *Scheduler) PendingFrames() int {
	n := 0
	for _, h := range s.frames {
		if s.live(h) {
			n++
		}
	}
	return n
}

// PendingTimers counts timers that would still run.
func (s *Scheduler) PendingTimers() int {
	n := 0
	for _, h := range s.timers {
		if s.live(h) {
			n++
		}
	}
	return n
}

type timerHeap []*Handle

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].at != h[j].at {
		return h[i].at < h[j].at
	}
	return h[i].seq < h[j].seq
}

func (h timerHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *timerHeap) Push(x any) { *h = append(*h, x.(*Handle)) }

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
