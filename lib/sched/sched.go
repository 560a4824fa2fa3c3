package sched

import (
	"sync"
	"sync/atomic"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// Scheduler defers a unit of work to the next discrete processing step.
// Implementations guarantee that every submitted function runs exactly once
// and that functions run in submission order (global FIFO per scheduler).
// There is no cancellation: once submitted, the function will run.
type Scheduler interface {
	// RunNext schedules fn to run at the next processing step.
	RunNext(fn func())
}

// --------------------------------------------------------------------------
// RunLoop Implementation
// --------------------------------------------------------------------------

// RunLoop is a single-goroutine Scheduler. Submitted functions are queued in
// an unbounded FIFO and executed one at a time, so no two scheduled
// functions ever run concurrently.
type RunLoop struct {
	mu     sync.Mutex
	queue  []func()
	closed bool
	signal chan struct{} // signals queue availability (buffered, size 1)

	running atomic.Bool
	done    chan struct{}
}

// NewRunLoop creates a RunLoop and starts its processing goroutine.
func NewRunLoop() *RunLoop {
	r := &RunLoop{
		queue:  make([]func(), 0, 16),
		signal: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	r.start()
	return r
}

// RunNext schedules fn to run on the loop goroutine. Submissions after Close
// are dropped.
//
// Thread-safety: may be called from any goroutine.
func (r *RunLoop) RunNext(fn func()) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.queue = append(r.queue, fn)
	r.mu.Unlock()

	// non-blocking - a buffer of 1 coalesces multiple signals
	select {
	case r.signal <- struct{}{}:
	default:
	}
}

// Close stops the loop after the already queued functions have run. It is
// safe to call Close more than once; the loop cannot be restarted.
func (r *RunLoop) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.mu.Unlock()

	select {
	case r.signal <- struct{}{}:
	default:
	}
	<-r.done
}

// start launches the processing goroutine. Guarded by a CAS so the loop is
// started at most once.
func (r *RunLoop) start() {
	if !r.running.CompareAndSwap(false, true) {
		return
	}

	go func() {
		defer close(r.done)
		for {
			<-r.signal

			for {
				r.mu.Lock()
				if len(r.queue) == 0 {
					closed := r.closed
					r.mu.Unlock()
					if closed {
						return
					}
					break
				}
				fn := r.queue[0]
				r.queue = r.queue[1:]
				r.mu.Unlock()

				fn()
			}
		}
	}()
}

// --------------------------------------------------------------------------
// Immediate Implementation
// --------------------------------------------------------------------------

// Immediate is a Scheduler that runs every function inline on the calling
// goroutine. Useful in tests and in hosts that already provide their own
// tick loop around the store.
type Immediate struct{}

func (Immediate) RunNext(fn func()) { fn() }
