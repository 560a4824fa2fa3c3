package chunkdb

import (
	"testing"

	"github.com/IMvampireXD/MCBE-Storage-Database/lib/substrate"
)

func TestRegistryInterning(t *testing.T) {
	registry := NewRegistry()
	source := substrate.NewMemoryStore()

	first, err := registry.Open(source, "db", DefaultOptions())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	second, err := registry.Open(source, "db", DefaultOptions())
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if first != second {
		t.Fatalf("same (source, id) must return the same instance")
	}

	// both handles observe identical state by construction
	mustSet(t, first, "k", NewScalar(1))
	if got := mustGet(t, second, "k"); got.Float() != 1 {
		t.Errorf("second handle sees %v", got)
	}
}

func TestRegistrySeparatesSourcesAndIDs(t *testing.T) {
	registry := NewRegistry()
	sourceA := substrate.NewMemoryStore()
	sourceB := substrate.NewMemoryStore()

	a1, _ := registry.Open(sourceA, "db", nil)
	a2, _ := registry.Open(sourceA, "other", nil)
	b1, _ := registry.Open(sourceB, "db", nil)

	if a1 == a2 {
		t.Errorf("different ids on one source must be distinct instances")
	}
	if a1 == b1 {
		t.Errorf("same id on different sources must be distinct instances")
	}
}

func TestRegistryRejectsBadInput(t *testing.T) {
	registry := NewRegistry()
	source := substrate.NewMemoryStore()

	if _, err := registry.Open(nil, "db", nil); err == nil {
		t.Errorf("nil source must be rejected")
	}
	if _, err := registry.Open(source, "", nil); !IsInvalidIdentifier(err) {
		t.Errorf("empty database id: got %v", err)
	}
	if _, err := registry.Open(source, "a"+reservedMarker, nil); !IsInvalidIdentifier(err) {
		t.Errorf("marker in database id: got %v", err)
	}
	if _, err := registry.Open(source, "a_b", nil); !IsInvalidIdentifier(err) {
		t.Errorf("underscore in database id: got %v", err)
	}
}

func TestClearKeepsInstanceRegistered(t *testing.T) {
	registry := NewRegistry()
	source := substrate.NewMemoryStore()

	store, _ := registry.Open(source, "db", nil)
	mustSet(t, store, "k", NewScalar(1))
	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	again, _ := registry.Open(source, "db", nil)
	if again != store {
		t.Errorf("clear must not unregister the instance")
	}
	if again.Size() != 0 {
		t.Errorf("cleared store reports %d keys", again.Size())
	}
}

func TestPackageLevelOpen(t *testing.T) {
	source := substrate.NewMemoryStore()

	first, err := Open(source, "db", nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	second, _ := Open(source, "db", nil)
	if first != second {
		t.Errorf("package-level Open must intern through the default registry")
	}
}
