// Package flatfile implements a persistent substrate.PropertyStore backed by
// a single binary snapshot file.
//
// All entries are held in a concurrent in-memory map; Flush writes the whole
// map to disk atomically (temporary file plus rename) and Open restores it.
// The snapshot format ("FLATPROP", versioned, little-endian, tagged values)
// carries the four native substrate value forms: numbers, booleans, strings
// and vectors.
//
// The store is intended for the bundled CLI and for tests that need entries
// to survive a process restart. It is deliberately not a storage engine:
// durability is snapshot-at-flush, not write-ahead.
package flatfile
