// Package substrate defines the flat property store contract that the
// chunked key-value layer is built on, along with the native value types the
// substrate understands.
//
// The package focuses on:
//   - A minimal interface (PropertyStore) for host-provided flat storage:
//     synchronous point get/set, delete-by-nil, and unordered id enumeration
//   - The fixed native value forms: float64, bool, string and Vector
//   - The hard per-entry size limit (MaxEntrySize) that makes chunking
//     necessary in the first place
//
// Key Components:
//
//   - PropertyStore Interface: The substrate abstraction. Hosts supply their
//     own implementation; this repository ships two reference
//     implementations that satisfy the same conformance suite.
//
//   - Memory Store: An in-process implementation backed by a concurrent map.
//     It is the default store for tests and for embedding the library
//     without persistence.
//
//   - Flatfile Store: A persistent implementation (subpackage flatfile) that
//     snapshots all entries to a single binary file. It demonstrates the
//     restart behavior of the layers above: entries persist, in-memory
//     indexes are rebuilt by enumeration.
//
// Implementations must treat ids and values as opaque. Namespacing,
// encoding, chunking and caching are concerns of the chunkdb package.
package substrate
