package chunkdb

import (
	"context"
	"testing"
	"time"

	"github.com/IMvampireXD/MCBE-Storage-Database/lib/sched"
	"github.com/IMvampireXD/MCBE-Storage-Database/lib/substrate"
)

func newAsyncStore(t *testing.T) *Store {
	t.Helper()
	loop := sched.NewRunLoop()
	t.Cleanup(loop.Close)

	store, err := NewRegistry().Open(substrate.NewMemoryStore(), "async", &Options{
		Scheduler: loop,
		AutoCache: true,
	})
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	return store
}

func TestSetAsyncGetAsync(t *testing.T) {
	store := newAsyncStore(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := store.SetAsync("k", NewScalar(7)).Await(ctx); err != nil {
		t.Fatalf("set async: %v", err)
	}

	value, err := store.GetAsync("k").Await(ctx)
	if err != nil {
		t.Fatalf("get async: %v", err)
	}
	if value.Float() != 7 {
		t.Errorf("got %v, want 7", value)
	}
}

func TestGetAsyncMissingKey(t *testing.T) {
	store := newAsyncStore(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	value, err := store.GetAsync("missing").Await(ctx)
	if err != nil {
		t.Fatalf("get async: %v", err)
	}
	if !value.IsAbsent() {
		t.Errorf("got %v, want absent", value)
	}
}

func TestAsyncOperationsRunInSubmissionOrder(t *testing.T) {
	store := newAsyncStore(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// all writes target the same key; the last submitted write must win
	var last *Future[struct{}]
	for i := 0; i < 50; i++ {
		last = store.SetAsync("k", NewScalar(float64(i)))
	}
	if _, err := last.Await(ctx); err != nil {
		t.Fatalf("await: %v", err)
	}

	value, err := store.GetAsync("k").Await(ctx)
	if err != nil {
		t.Fatalf("get async: %v", err)
	}
	if value.Float() != 49 {
		t.Errorf("got %v, want 49 (submission order violated)", value)
	}
}

func TestAsyncSurfacesErrors(t *testing.T) {
	store := newAsyncStore(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := store.SetAsync("", NewScalar(1)).Await(ctx); !IsInvalidIdentifier(err) {
		t.Errorf("got %v, want invalid identifier error", err)
	}
}

func TestFutureAwaitHonorsContext(t *testing.T) {
	// a future that is never completed
	f := newFuture[Value]()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := f.Await(ctx); err != context.Canceled {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestFutureDone(t *testing.T) {
	store := newAsyncStore(t)

	f := store.SetAsync("k", NewFlag(true))
	select {
	case <-f.Done():
	case <-time.After(5 * time.Second):
		t.Fatalf("future never completed")
	}
}
