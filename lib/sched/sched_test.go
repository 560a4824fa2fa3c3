package sched

import (
	"sync"
	"testing"
)

func TestRunLoopFIFO(t *testing.T) {
	loop := NewRunLoop()

	var (
		mu    sync.Mutex
		order []int
	)
	for i := 0; i < 100; i++ {
		loop.RunNext(func() {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
		})
	}

	// Close waits for the queue to drain
	loop.Close()

	if len(order) != 100 {
		t.Fatalf("got %d executed functions, want 100", len(order))
	}
	for i, got := range order {
		if got != i {
			t.Fatalf("position %d: got %d, want %d (order violated)", i, got, i)
		}
	}
}

func TestRunLoopNoInterleaving(t *testing.T) {
	loop := NewRunLoop()

	// a plain counter is safe if functions never run concurrently; run with
	// -race to catch violations
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				loop.RunNext(func() { counter++ })
			}
		}()
	}
	wg.Wait()
	loop.Close()

	if counter != 1000 {
		t.Errorf("got %d, want 1000", counter)
	}
}

func TestRunLoopCloseDropsLateSubmissions(t *testing.T) {
	loop := NewRunLoop()
	loop.Close()

	ran := false
	loop.RunNext(func() { ran = true })
	if ran {
		t.Errorf("submission after Close must be dropped")
	}

	// double Close is a no-op
	loop.Close()
}

func TestImmediate(t *testing.T) {
	var s Scheduler = Immediate{}

	ran := false
	s.RunNext(func() { ran = true })
	if !ran {
		t.Errorf("Immediate must run the function inline")
	}
}
