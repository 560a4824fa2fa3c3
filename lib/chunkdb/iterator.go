package chunkdb

import "iter"

// --------------------------------------------------------------------------
// Iteration
// --------------------------------------------------------------------------

// The sequences below iterate over a snapshot of the key index taken when
// the sequence is created. They are finite and restartable - every call
// produces a fresh snapshot - and their order is unspecified, since it
// derives from a set. Mutating the store while ranging affects only what a
// per-key Get observes, never the snapshot itself.

// snapshotKeys copies the current key index.
func (s *Store) snapshotKeys() []string {
	keys := make([]string, 0, s.index.Size())
	s.index.Range(func(key string, _ struct{}) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Keys returns a sequence over the indexed logical keys.
func (s *Store) Keys() iter.Seq[string] {
	keys := s.snapshotKeys()
	return func(yield func(string) bool) {
		for _, k := range keys {
			if !yield(k) {
				return
			}
		}
	}
}

// Values returns a sequence over the logical values. Keys deleted between
// snapshot and visit are skipped.
func (s *Store) Values() iter.Seq[Value] {
	keys := s.snapshotKeys()
	return func(yield func(Value) bool) {
		for _, k := range keys {
			v, ok, err := s.Get(k)
			if err != nil || !ok {
				continue
			}
			if !yield(v) {
				return
			}
		}
	}
}

// Entries returns a sequence over key-value pairs. Keys deleted between
// snapshot and visit are skipped.
func (s *Store) Entries() iter.Seq2[string, Value] {
	keys := s.snapshotKeys()
	return func(yield func(string, Value) bool) {
		for _, k := range keys {
			v, ok, err := s.Get(k)
			if err != nil || !ok {
				continue
			}
			if !yield(k, v) {
				return
			}
		}
	}
}
