package presence

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// DefaultFrameInterval approximates one paint at 60 FPS.
const DefaultFrameInterval = 16 * time.Millisecond

// ErrLoopStarted is returned when Run is called on a loop that already ran.
var ErrLoopStarted = errors.New("presence: loop already started")

// Loop is a Scheduler for hosts without their own event loop. Every callback,
// and every function passed to Do, runs serially on the goroutine calling Run.
type Loop struct {
	frameInterval time.Duration
	work          chan func()
	done          chan struct{}
	started       atomic.Bool
}

var _ Scheduler = (*Loop)(nil)

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithFrameInterval sets the delay used by NextFrame.
func WithFrameInterval(d time.Duration) LoopOption {
	return func(l *Loop) {
		if d > 0 {
			l.frameInterval = d
		}
	}
}

// NewLoop creates a loop. Nothing runs until Run is called.
func NewLoop(opts ...LoopOption) *Loop {
	l := &Loop{
		frameInterval: DefaultFrameInterval,
		work:          make(chan func(), 64),
		done:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run executes posted work until ctx is cancelled. A loop runs at most once.
func (l *Loop) Run(ctx context.Context) error {
	if !l.started.CompareAndSwap(false, true) {
		return ErrLoopStarted
	}
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.work:
			fn()
		}
	}
}

// Do posts fn onto the loop. It reports false once the loop has stopped.
// Hosts use it to call Evaluate and Dispose from other goroutines. Work
// posted while Run is returning may be accepted and never run.
func (l *Loop) Do(fn func()) bool {
	// done is checked on its own first: once closed, the buffered send below
	// would otherwise still be chosen at random.
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.work <- fn:
		return true
	case <-l.done:
		return false
	}
}

// NextFrame implements Scheduler.
func (l *Loop) NextFrame(fn func()) Handle {
	return l.AfterFunc(l.frameInterval, fn)
}

// AfterFunc implements Scheduler. The cancelled flag is only read and written
// on the loop goroutine, so a timer that has already posted its callback is
// still suppressed by Cancel.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Handle {
	h := &loopHandle{}
	h.timer = time.AfterFunc(max(d, 0), func() {
		l.Do(func() {
			if h.cancelled {
				return
			}
			h.cancelled = true
			fn()
		})
	})
	return h
}

type loopHandle struct {
	timer     *time.Timer
	cancelled bool
}

func (h *loopHandle) Cancel() {
	h.cancelled = true
	h.timer.Stop()
}
