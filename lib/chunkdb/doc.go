// Package chunkdb implements a key-value store on top of a flat property
// substrate: a host-provided mapping from short string ids to small scalar
// values with a hard per-entry size limit and no native support for
// composite values, chunking or change notification.
//
// The package focuses on:
//   - A layered encoding that stores arbitrary-size structured values in a
//     substrate that only holds small scalars, with O(1) cost for small
//     values and transparent multi-entry reconstruction for large ones
//   - A consistent in-memory view (key index plus optional value cache)
//     that survives process restarts by being rebuilt from the substrate
//   - Graceful handling of partially missing or legacy persisted state
//
// Key Components:
//
//   - Value: A tagged logical value type with the kinds Scalar, Flag, Text,
//     Vector and Structured. The kind is fixed at construction, so the
//     store reads back values by type tag instead of sniffing shapes.
//     From() classifies dynamic Go values, including the structural
//     "exactly x, y, z numeric" vector check.
//
//   - Store: The chunked store itself. Every logical key owns exactly one
//     encoding at a time: a NATIVE entry (scalar, flag or vector in the
//     substrate's native form), a STRING entry (text payload within the
//     size limit), or a META entry holding a chunk count plus that many
//     DATA chunk entries. Writes always erase the previous encoding first,
//     so type changes and shrinking chunk counts leave no orphans.
//
//   - Registry: Explicit interning of one canonical Store per
//     (source, database id) pair. A process-wide default registry backs the
//     package-level Open.
//
//   - Futures: GetAsync/SetAsync defer the synchronous operation to a tick
//     scheduler (see the sched package) and hand back a Future resolved
//     when the tick runs. Submission order is execution order.
//
// Error Handling:
//
//	Malformed caller input (empty ids, ids containing the reserved marker)
//	fails fast with a *Error carrying RetCInvalidIdentifier. Malformed
//	persisted state is handled leniently: payloads that fail to parse as
//	JSON are returned as raw text, and a chunked value with a missing chunk
//	reads as absent. Read paths never fail on corrupt state.
package chunkdb
