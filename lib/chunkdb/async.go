package chunkdb

import (
	"context"

	"github.com/IMvampireXD/MCBE-Storage-Database/lib/sched"
)

// --------------------------------------------------------------------------
// Future
// --------------------------------------------------------------------------

// Future is the result handle of an asynchronous store operation. It is
// completed exactly once, by the scheduler tick running the operation.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// complete resolves the future. Must be called exactly once.
func (f *Future[T]) complete(value T, err error) {
	f.value = value
	f.err = err
	close(f.done)
}

// Done returns a channel that is closed when the result is available.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the result is available or ctx is cancelled. The
// scheduled operation itself is not cancelled - once scheduled it will run.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// --------------------------------------------------------------------------
// Async Operations
// --------------------------------------------------------------------------

// tick returns the scheduler async operations run on.
func (s *Store) tick() sched.Scheduler {
	if s.scheduler != nil {
		return s.scheduler
	}
	return defaultLoop()
}

// GetAsync performs Get at the next scheduler tick. An absent value
// resolves to Absent() with a nil error.
func (s *Store) GetAsync(key string) *Future[Value] {
	f := newFuture[Value]()
	s.tick().RunNext(func() {
		v, _, err := s.Get(key)
		f.complete(v, err)
	})
	return f
}

// SetAsync performs Set at the next scheduler tick. Operations submitted
// through the same scheduler run in submission order.
func (s *Store) SetAsync(key string, value Value) *Future[struct{}] {
	f := newFuture[struct{}]()
	s.tick().RunNext(func() {
		f.complete(struct{}{}, s.Set(key, value))
	})
	return f
}
