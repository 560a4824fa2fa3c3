package testing

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/IMvampireXD/MCBE-Storage-Database/lib/substrate"
)

// StoreFactory is a function that creates a fresh instance of a
// PropertyStore implementation.
type StoreFactory func() substrate.PropertyStore

// RunPropertyStoreTests runs the conformance test suite every PropertyStore
// implementation must pass.
func RunPropertyStoreTests(t *testing.T, name string, factory StoreFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Set&Get", func(t *testing.T) {
			testSetGet(t, factory())
		})

		t.Run("Overwrite", func(t *testing.T) {
			testOverwrite(t, factory())
		})

		t.Run("DeleteByNil", func(t *testing.T) {
			testDeleteByNil(t, factory())
		})

		t.Run("ListIDs", func(t *testing.T) {
			testListIDs(t, factory())
		})

		t.Run("ValueKinds", func(t *testing.T) {
			testValueKinds(t, factory())
		})

		t.Run("MaxSizeText", func(t *testing.T) {
			testMaxSizeText(t, factory())
		})
	})
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testSetGet(t *testing.T, store substrate.PropertyStore) {
	if _, ok := store.GetProperty("missing"); ok {
		t.Fatalf("expected missing id to not be found")
	}

	if err := store.SetProperty("id1", "value1"); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	got, ok := store.GetProperty("id1")
	if !ok {
		t.Fatalf("expected id1 to be found")
	}
	if got != "value1" {
		t.Errorf("got %v, want value1", got)
	}
}

func testOverwrite(t *testing.T, store substrate.PropertyStore) {
	if err := store.SetProperty("id", 1.0); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := store.SetProperty("id", "text"); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	got, ok := store.GetProperty("id")
	if !ok || got != "text" {
		t.Errorf("got (%v, %t), want (text, true)", got, ok)
	}
}

func testDeleteByNil(t *testing.T, store substrate.PropertyStore) {
	if err := store.SetProperty("id", true); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := store.SetProperty("id", nil); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok := store.GetProperty("id"); ok {
		t.Errorf("expected id to be removed")
	}

	// deleting a missing id is a no-op
	if err := store.SetProperty("missing", nil); err != nil {
		t.Errorf("deleting missing id failed: %v", err)
	}
}

func testListIDs(t *testing.T, store substrate.PropertyStore) {
	want := []string{"a", "b", "c"}
	for i, id := range want {
		if err := store.SetProperty(id, float64(i)); err != nil {
			t.Fatalf("set %q failed: %v", id, err)
		}
	}

	got := store.ListPropertyIDs()
	slices.Sort(got)
	if !slices.Equal(got, want) {
		t.Errorf("got ids %v, want %v", got, want)
	}
}

func testValueKinds(t *testing.T, store substrate.PropertyStore) {
	values := map[string]any{
		"num":  42.5,
		"flag": true,
		"text": "hello",
		"vec":  substrate.Vector{X: 1, Y: 2, Z: 3},
	}

	for id, value := range values {
		if err := store.SetProperty(id, value); err != nil {
			t.Fatalf("set %q failed: %v", id, err)
		}
	}

	for id, want := range values {
		got, ok := store.GetProperty(id)
		if !ok {
			t.Fatalf("expected %q to be found", id)
		}
		if got != want {
			t.Errorf("%s: got %v (%T), want %v (%T)", id, got, got, want, want)
		}
	}
}

func testMaxSizeText(t *testing.T, store substrate.PropertyStore) {
	value := strings.Repeat("x", substrate.MaxEntrySize)
	if err := store.SetProperty("big", value); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	got, ok := store.GetProperty("big")
	if !ok {
		t.Fatalf("expected big to be found")
	}
	text, ok := got.(string)
	if !ok || len(text) != substrate.MaxEntrySize {
		t.Errorf("got %d bytes, want %d", len(text), substrate.MaxEntrySize)
	}
}

// --------------------------------------------------------------------------
// Benchmarks
// --------------------------------------------------------------------------

// RunPropertyStoreBenchmarks runs the shared benchmarks for a PropertyStore
// implementation.
func RunPropertyStoreBenchmarks(b *testing.B, name string, factory StoreFactory) {
	b.Run(name+"/Set", func(b *testing.B) {
		store := factory()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = store.SetProperty(fmt.Sprintf("id-%d", i%1024), float64(i))
		}
	})

	b.Run(name+"/Get", func(b *testing.B) {
		store := factory()
		for i := 0; i < 1024; i++ {
			_ = store.SetProperty(fmt.Sprintf("id-%d", i), float64(i))
		}
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = store.GetProperty(fmt.Sprintf("id-%d", i%1024))
		}
	})
}
