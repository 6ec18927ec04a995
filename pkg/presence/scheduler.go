package presence

import "time"

// Handle is a cancellable reference to a scheduled callback.
type Handle interface {
	Cancel()
}

// HandleFunc adapts a plain function to Handle.
type HandleFunc func()

// Cancel calls f.
func (f HandleFunc) Cancel() {
	if f != nil {
		f()
	}
}

// Scheduler is provided by the host. Callbacks must never run inside the
// scheduling call itself and must always run on the host's UI goroutine.
// A zero or negative AfterFunc delay still defers to the next turn of the
// host loop.
type Scheduler interface {
	// NextFrame runs fn before the next paint.
	NextFrame(fn func()) Handle
	// AfterFunc runs fn once d has elapsed.
	AfterFunc(d time.Duration, fn func()) Handle
}
