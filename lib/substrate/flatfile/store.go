package flatfile

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/IMvampireXD/MCBE-Storage-Database/lib/substrate"
	"github.com/puzpuzpuz/xsync/v3"
)

// --------------------------------------------------------------------------
// Constants
// --------------------------------------------------------------------------

// Constants for the snapshot file format
const (
	magicNum        = "FLATPROP"  // File format identifier
	flatfileVersion = 1           // Snapshot format version
	writeBufferSize = 1024 * 1024 // 1 MB buffer for snapshot IO
)

// value type tags used in the snapshot format
const (
	tagNumber byte = iota
	tagBool
	tagString
	tagVector
)

// --------------------------------------------------------------------------
// Store
// --------------------------------------------------------------------------

// Store is a persistent substrate.PropertyStore. All entries live in memory;
// Flush (or Close) writes them to a single binary snapshot file, and Open
// restores them from it. Writes between flushes are not durable.
type Store struct {
	path  string
	data  *xsync.MapOf[string, any]
	dirty atomic.Bool

	// serializes Flush against itself; map access needs no locking
	flushMu sync.Mutex
}

// Open creates a Store bound to the snapshot file at path. If the file
// exists its entries are loaded; otherwise the store starts empty and the
// file is created on the first Flush.
func Open(path string) (*Store, error) {
	s := &Store{
		path: path,
		data: xsync.NewMapOf[string, any](),
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := s.load(f); err != nil {
		return nil, fmt.Errorf("flatfile: loading %s: %w", path, err)
	}
	return s, nil
}

// --------------------------------------------------------------------------
// Interface Methods (docu see substrate.PropertyStore)
// --------------------------------------------------------------------------

func (s *Store) SetProperty(id string, value any) error {
	if value == nil {
		s.data.Delete(id)
		s.dirty.Store(true)
		return nil
	}

	switch value.(type) {
	case float64, bool, string, substrate.Vector:
	default:
		return fmt.Errorf("flatfile: unsupported value type %T for id %q", value, id)
	}

	s.data.Store(id, value)
	s.dirty.Store(true)
	return nil
}

func (s *Store) GetProperty(id string) (any, bool) {
	return s.data.Load(id)
}

func (s *Store) ListPropertyIDs() []string {
	ids := make([]string, 0, s.data.Size())
	s.data.Range(func(id string, _ any) bool {
		ids = append(ids, id)
		return true
	})
	return ids
}

// --------------------------------------------------------------------------
// Persistence Operations
// --------------------------------------------------------------------------

// Flush writes a snapshot of all entries to the store's file. The snapshot
// is written to a temporary file first and moved into place, so a crash
// mid-flush never corrupts the previous snapshot. A flush with no pending
// writes is a no-op.
//
// Thread-safety: Flush may be called concurrently with reads and writes; it
// snapshots the map without blocking modifications.
func (s *Store) Flush() error {
	if !s.dirty.Load() {
		return nil
	}

	s.flushMu.Lock()
	defer s.flushMu.Unlock()

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := s.save(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return err
	}

	s.dirty.Store(false)
	return nil
}

// Close flushes pending writes. The store stays usable afterwards; Close
// exists so callers can defer durability to scope exit.
func (s *Store) Close() error {
	return s.Flush()
}

// save writes the snapshot format to w:
//
//	magic | version (uint8) | entry count (uint64) | entries
//
// with each entry as id length (uint32) | id bytes | type tag (uint8) |
// payload. All integers are little-endian.
func (s *Store) save(w io.Writer) error {
	bw := bufio.NewWriterSize(w, writeBufferSize)

	type entry struct {
		id    string
		value any
	}
	var entries []entry
	s.data.Range(func(id string, value any) bool {
		entries = append(entries, entry{id, value})
		return true
	})

	if _, err := bw.WriteString(magicNum); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint8(flatfileVersion)); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint64(len(entries))); err != nil {
		return err
	}

	for _, e := range entries {
		if err := writeString(bw, e.id); err != nil {
			return err
		}
		if err := writeValue(bw, e.value); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// load restores entries from a snapshot previously written by save.
func (s *Store) load(r io.Reader) error {
	br := bufio.NewReaderSize(r, writeBufferSize)

	magicBytes := make([]byte, len(magicNum))
	if _, err := io.ReadFull(br, magicBytes); err != nil {
		return err
	}
	if string(magicBytes) != magicNum {
		return fmt.Errorf("invalid file format: magic number mismatch")
	}

	var version uint8
	if err := binary.Read(br, binary.LittleEndian, &version); err != nil {
		return err
	}
	if int(version) != flatfileVersion {
		return fmt.Errorf("unsupported version: %d (expected %d)", version, flatfileVersion)
	}

	var count uint64
	if err := binary.Read(br, binary.LittleEndian, &count); err != nil {
		return err
	}

	for i := uint64(0); i < count; i++ {
		id, err := readString(br)
		if err != nil {
			return err
		}
		value, err := readValue(br)
		if err != nil {
			return err
		}
		s.data.Store(id, value)
	}

	return nil
}

// --------------------------------------------------------------------------
// Encoding Helpers
// --------------------------------------------------------------------------

func writeString(w io.Writer, s string) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func readString(r io.Reader) (string, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func writeValue(w io.Writer, value any) error {
	switch v := value.(type) {
	case float64:
		if _, err := w.Write([]byte{tagNumber}); err != nil {
			return err
		}
		return binary.Write(w, binary.LittleEndian, v)
	case bool:
		if _, err := w.Write([]byte{tagBool}); err != nil {
			return err
		}
		var b byte
		if v {
			b = 1
		}
		_, err := w.Write([]byte{b})
		return err
	case string:
		if _, err := w.Write([]byte{tagString}); err != nil {
			return err
		}
		return writeString(w, v)
	case substrate.Vector:
		if _, err := w.Write([]byte{tagVector}); err != nil {
			return err
		}
		for _, f := range []float64{v.X, v.Y, v.Z} {
			if err := binary.Write(w, binary.LittleEndian, f); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported value type %T", value)
	}
}

func readValue(r io.Reader) (any, error) {
	var tag [1]byte
	if _, err := io.ReadFull(r, tag[:]); err != nil {
		return nil, err
	}

	switch tag[0] {
	case tagNumber:
		var f float64
		if err := binary.Read(r, binary.LittleEndian, &f); err != nil {
			return nil, err
		}
		return f, nil
	case tagBool:
		var b [1]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return nil, err
		}
		return b[0] == 1, nil
	case tagString:
		return readString(r)
	case tagVector:
		var vec substrate.Vector
		for _, f := range []*float64{&vec.X, &vec.Y, &vec.Z} {
			if err := binary.Read(r, binary.LittleEndian, f); err != nil {
				return nil, err
			}
		}
		return vec, nil
	default:
		return nil, fmt.Errorf("unknown value tag %d", tag[0])
	}
}
