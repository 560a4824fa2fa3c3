package flatfile_test

import (
	"os"
	"path/filepath"
	"testing"

	storetesting "github.com/IMvampireXD/MCBE-Storage-Database/lib/chunkdb/testing"
	"github.com/IMvampireXD/MCBE-Storage-Database/lib/substrate"
	"github.com/IMvampireXD/MCBE-Storage-Database/lib/substrate/flatfile"
)

func TestFlatfileStore(t *testing.T) {
	storetesting.RunPropertyStoreTests(t, "Flatfile", func() substrate.PropertyStore {
		store, err := flatfile.Open(filepath.Join(t.TempDir(), "store.dat"))
		if err != nil {
			t.Fatalf("open failed: %v", err)
		}
		return store
	})
}

func TestFlatfilePersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.dat")

	store, err := flatfile.Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	entries := map[string]any{
		"num":  42.5,
		"flag": true,
		"text": "hello",
		"vec":  substrate.Vector{X: 1, Y: -2, Z: 3.5},
	}
	for id, value := range entries {
		if err := store.SetProperty(id, value); err != nil {
			t.Fatalf("set %q failed: %v", id, err)
		}
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	// reopen and verify everything survived the restart
	reopened, err := flatfile.Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	for id, want := range entries {
		got, ok := reopened.GetProperty(id)
		if !ok {
			t.Fatalf("expected %q to survive reopen", id)
		}
		if got != want {
			t.Errorf("%s: got %v, want %v", id, got, want)
		}
	}

	// a deleted entry must not resurface after reopen
	if err := reopened.SetProperty("num", nil); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := reopened.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	final, err := flatfile.Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if _, ok := final.GetProperty("num"); ok {
		t.Errorf("deleted entry resurfaced after reopen")
	}
}

func TestFlatfileFlushWithoutWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.dat")

	store, err := flatfile.Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	// nothing written, nothing flushed - the file must not even exist
	if err := store.Flush(); err != nil {
		t.Fatalf("flush failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected no snapshot file after empty flush")
	}
}

func TestFlatfileRejectsForeignFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.dat")
	if err := os.WriteFile(path, []byte("not a snapshot at all"), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	if _, err := flatfile.Open(path); err == nil {
		t.Fatalf("expected open to fail on a foreign file")
	}
}

func TestFlatfileRejectsUnsupportedValue(t *testing.T) {
	store, err := flatfile.Open(filepath.Join(t.TempDir(), "store.dat"))
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	if err := store.SetProperty("bad", []int{1, 2, 3}); err == nil {
		t.Fatalf("expected an error for a non-native value type")
	}
}

func BenchmarkFlatfileStore(b *testing.B) {
	storetesting.RunPropertyStoreBenchmarks(b, "Flatfile", func() substrate.PropertyStore {
		store, err := flatfile.Open(filepath.Join(b.TempDir(), "store.dat"))
		if err != nil {
			b.Fatalf("open failed: %v", err)
		}
		return store
	})
}
