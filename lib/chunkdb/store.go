package chunkdb

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/IMvampireXD/MCBE-Storage-Database/lib/sched"
	"github.com/IMvampireXD/MCBE-Storage-Database/lib/substrate"
	"github.com/puzpuzpuz/xsync/v3"
)

// --------------------------------------------------------------------------
// Options
// --------------------------------------------------------------------------

// Options configures a Store at first construction. Because instances are
// interned per (source, database id), options only take effect for the call
// that actually creates the instance.
type Options struct {
	// Scheduler runs the deferred bodies of GetAsync/SetAsync. Nil selects a
	// process-wide shared run loop.
	Scheduler sched.Scheduler
	// AutoCache controls whether reads and writes populate the value cache.
	AutoCache bool
}

// DefaultOptions returns the default Store options.
func DefaultOptions() *Options {
	return &Options{
		Scheduler: nil, // shared run loop
		AutoCache: true,
	}
}

// defaultLoop lazily starts the process-wide scheduler shared by all stores
// that were opened without an explicit one.
var defaultLoop = sync.OnceValue(func() sched.Scheduler {
	return sched.NewRunLoop()
})

// --------------------------------------------------------------------------
// Store
// --------------------------------------------------------------------------

// Store is a chunked key-value database layered over a flat property
// substrate. Arbitrary-size logical values are encoded into one or more
// substrate entries (see keys.go for the id scheme); an in-memory key index
// and an optional value cache keep reads close to O(1).
//
// Stores are obtained through a Registry (or the package-level Open), which
// interns one canonical instance per (source, database id) pair.
//
// Thread-safety: all methods are safe for concurrent use. The intended
// execution model is still cooperative - the substrate contract gives no
// atomicity across the multiple entries of a chunked write.
type Store struct {
	databaseID string
	source     substrate.PropertyStore
	scheduler  sched.Scheduler
	prefix     string

	index     *xsync.MapOf[string, struct{}]
	cache     *xsync.MapOf[string, Value]
	autoCache atomic.Bool

	metrics *storeMetrics
}

// newStore builds a store and reconstructs its key index from the substrate.
// Construction goes through Registry.Open, which guarantees a single
// instance per (source, database id).
func newStore(source substrate.PropertyStore, databaseID string, opts *Options) *Store {
	if opts == nil {
		opts = DefaultOptions()
	}

	s := &Store{
		databaseID: databaseID,
		source:     source,
		scheduler:  opts.Scheduler,
		prefix:     dbPrefix(databaseID),
		index:      xsync.NewMapOf[string, struct{}](),
		cache:      xsync.NewMapOf[string, Value](),
		metrics:    newStoreMetrics(databaseID),
	}
	s.autoCache.Store(opts.AutoCache)
	s.initializeFromProperties()
	return s
}

// DatabaseID returns the namespace this store owns.
func (s *Store) DatabaseID() string { return s.databaseID }

// initializeFromProperties rebuilds the key index by scanning the
// substrate's id list for this store's prefix. Data chunks are skipped: the
// key they belong to is indexed through its meta entry.
func (s *Store) initializeFromProperties() {
	for _, id := range s.source.ListPropertyIDs() {
		if key, ok := parseIndexedKey(s.prefix, id); ok {
			s.index.Store(key, struct{}{})
		}
	}
}

// --------------------------------------------------------------------------
// Write Operations
// --------------------------------------------------------------------------

// Set writes value under key, replacing whatever encoding a previous write
// left behind. Writing Absent() removes the key. Text-class payloads larger
// than substrate.MaxEntrySize are split into data chunks plus a meta entry
// holding the chunk count; everything else is a single entry.
func (s *Store) Set(key string, value Value) error {
	if err := validateIdentifier("key", key); err != nil {
		return err
	}

	if value.IsAbsent() {
		if err := s.erase(key); err != nil {
			return err
		}
		s.index.Delete(key)
		s.cache.Delete(key)
		return nil
	}

	// Serialize before touching the substrate: a value that fails to
	// serialize must leave the previous encoding intact.
	payload, isText, err := value.payload()
	if err != nil {
		return err
	}

	// Previous encodings go first so a type change or a shrink in chunk
	// count never leaves orphaned entries.
	if err := s.erase(key); err != nil {
		return err
	}

	switch {
	case isText && len(payload) > substrate.MaxEntrySize:
		chunks := splitIntoChunks(payload, substrate.MaxEntrySize)
		if err := s.setProperty(buildID(s.prefix, tagMeta, key), float64(len(chunks))); err != nil {
			return err
		}
		for i, chunk := range chunks {
			if err := s.setProperty(buildChunkID(s.prefix, key, i), chunk); err != nil {
				return err
			}
		}
		s.metrics.chunkedWrites.Inc()
	case isText:
		if err := s.setProperty(buildID(s.prefix, tagString, key), payload); err != nil {
			return err
		}
	default:
		if err := s.setProperty(buildID(s.prefix, tagNative, key), value.native()); err != nil {
			return err
		}
	}

	s.index.Store(key, struct{}{})
	if s.autoCache.Load() {
		// cache the logical value as set, not its serialized form
		s.cache.Store(key, value)
	}
	s.metrics.sets.Inc()
	return nil
}

// DeleteValue is equivalent to Set(key, Absent()).
func (s *Store) DeleteValue(key string) error {
	return s.Set(key, Absent())
}

// Delete removes key and every substrate entry encoding it. The return
// value reports whether the key existed.
func (s *Store) Delete(key string) (bool, error) {
	if err := validateIdentifier("key", key); err != nil {
		return false, err
	}

	existed, err := s.Has(key)
	if err != nil {
		return false, err
	}

	if err := s.erase(key); err != nil {
		return false, err
	}
	s.cache.Delete(key)
	s.index.Delete(key)
	s.metrics.deletes.Inc()
	return existed, nil
}

// Clear removes every substrate entry carrying this store's prefix and
// empties the index and cache. Cost is proportional to the store's total
// entry count, chunks included.
func (s *Store) Clear() error {
	for _, id := range s.source.ListPropertyIDs() {
		if strings.HasPrefix(id, s.prefix) {
			if err := s.setProperty(id, nil); err != nil {
				return err
			}
		}
	}
	s.index.Clear()
	s.cache.Clear()
	return nil
}

// erase removes every possible encoding of key from the substrate. The
// chunk count must be read before the meta entry is deleted, since it is
// the only record of how many data chunks exist.
func (s *Store) erase(key string) error {
	metaID := buildID(s.prefix, tagMeta, key)
	if raw, ok := s.source.GetProperty(metaID); ok {
		if count, ok := chunkCount(raw); ok {
			for i := 0; i < count; i++ {
				if err := s.setProperty(buildChunkID(s.prefix, key, i), nil); err != nil {
					return err
				}
			}
		}
		if err := s.setProperty(metaID, nil); err != nil {
			return err
		}
	}

	if err := s.setProperty(buildID(s.prefix, tagNative, key), nil); err != nil {
		return err
	}
	return s.setProperty(buildID(s.prefix, tagString, key), nil)
}

// setProperty forwards to the substrate, wrapping failures in a *Error.
func (s *Store) setProperty(id string, value any) error {
	if err := s.source.SetProperty(id, value); err != nil {
		return NewError(RetCSubstrateError, fmt.Sprintf("substrate write for %q: %v", id, err))
	}
	return nil
}

// --------------------------------------------------------------------------
// Read Operations
// --------------------------------------------------------------------------

// Get retrieves the value for key. The boolean return value reports whether
// a value was found. Cached values are returned without touching the
// substrate; otherwise the encodings are probed in priority order (native,
// string, chunked). A chunked payload with a missing chunk reads as absent
// rather than failing.
func (s *Store) Get(key string) (Value, bool, error) {
	if err := validateIdentifier("key", key); err != nil {
		return Absent(), false, err
	}
	s.metrics.gets.Inc()

	if v, ok := s.cache.Load(key); ok {
		s.metrics.cacheHits.Inc()
		return v, true, nil
	}
	s.metrics.cacheMisses.Inc()

	if _, ok := s.index.Load(key); !ok && !s.existsInSubstrate(key) {
		return Absent(), false, nil
	}

	v, ok := s.read(key)
	if !ok {
		return Absent(), false, nil
	}

	if s.autoCache.Load() {
		s.cache.Store(key, v)
	}
	return v, true, nil
}

// Has reports whether key exists: cached, indexed or directly present in
// the substrate.
func (s *Store) Has(key string) (bool, error) {
	if err := validateIdentifier("key", key); err != nil {
		return false, err
	}
	if _, ok := s.cache.Load(key); ok {
		return true, nil
	}
	if _, ok := s.index.Load(key); ok {
		return true, nil
	}
	return s.existsInSubstrate(key), nil
}

// Size returns the number of indexed keys.
func (s *Store) Size() int {
	return s.index.Size()
}

// read decodes whatever encoding of key the substrate currently holds.
func (s *Store) read(key string) (Value, bool) {
	if raw, ok := s.source.GetProperty(buildID(s.prefix, tagNative, key)); ok {
		return fromNative(raw), true
	}

	if raw, ok := s.source.GetProperty(buildID(s.prefix, tagString, key)); ok {
		payload, ok := raw.(string)
		if !ok {
			return Absent(), false
		}
		return decodeText(payload), true
	}

	if raw, ok := s.source.GetProperty(buildID(s.prefix, tagMeta, key)); ok {
		count, ok := chunkCount(raw)
		if !ok {
			return Absent(), false
		}
		var b strings.Builder
		for i := 0; i < count; i++ {
			chunk, ok := s.source.GetProperty(buildChunkID(s.prefix, key, i))
			if !ok {
				// partial corruption degrades to absence, never to a crash
				return Absent(), false
			}
			text, ok := chunk.(string)
			if !ok {
				return Absent(), false
			}
			b.WriteString(text)
		}
		return decodeText(b.String()), true
	}

	return Absent(), false
}

// existsInSubstrate probes the single-entry encodings and the meta entry.
// Individual data chunks are not probed - their existence is implied by the
// meta entry.
func (s *Store) existsInSubstrate(key string) bool {
	for _, tag := range []typeTag{tagNative, tagString, tagMeta} {
		if _, ok := s.source.GetProperty(buildID(s.prefix, tag, key)); ok {
			return true
		}
	}
	return false
}

// maxChunkCount caps how many data chunks a meta entry may claim. At
// MaxEntrySize bytes per chunk this allows values up to 32 GiB; anything
// larger is treated as corruption.
const maxChunkCount = 1 << 20

// chunkCount interprets a meta entry's raw value. Non-integral, negative or
// implausibly large counts read as invalid, so a corrupted meta entry
// degrades to absence instead of driving an enormous chunk loop.
func chunkCount(raw any) (int, bool) {
	f, ok := raw.(float64)
	if !ok || f < 0 || f > maxChunkCount || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// --------------------------------------------------------------------------
// Cache Control
// --------------------------------------------------------------------------

// Load warms the cache for key from the substrate, regardless of the
// autoCache flag. Neither the key index nor persisted data change. The
// return value reports whether a value was found.
func (s *Store) Load(key string) (bool, error) {
	if err := validateIdentifier("key", key); err != nil {
		return false, err
	}
	v, ok := s.read(key)
	if !ok {
		return false, nil
	}
	s.cache.Store(key, v)
	return true, nil
}

// Unload evicts key from the cache without affecting the key index or
// persisted data.
func (s *Store) Unload(key string) {
	s.cache.Delete(key)
}

// EnableCache makes future reads and writes populate the value cache.
// Already evicted entries are not retroactively repopulated.
func (s *Store) EnableCache() {
	s.autoCache.Store(true)
}

// DisableCache stops cache population and drops all current cache entries.
// Callers disable caching to bound memory, so stale entries do not linger.
func (s *Store) DisableCache() {
	s.autoCache.Store(false)
	s.cache.Clear()
}
