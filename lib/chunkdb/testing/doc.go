// Package testing provides the shared conformance test suite and benchmarks
// for substrate.PropertyStore implementations.
//
// Implementations hand a factory to RunPropertyStoreTests and get the full
// behavioral contract checked: point get/set, overwrite, delete-by-nil, id
// enumeration, the native value kinds and the per-entry size limit. The
// bundled memory and flatfile substrates both run this suite; host-provided
// substrates are encouraged to do the same.
package testing
