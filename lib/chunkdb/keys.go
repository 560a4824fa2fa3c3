package chunkdb

import (
	"fmt"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// Namespace Scheme
// --------------------------------------------------------------------------

// Every substrate entry owned by a store is named
//
//	⟨reservedMarker⟩⟨databaseID⟩_⟨typeTag⟩⟨logicalKey⟩[_⟨chunkIndex⟩]
//
// The reserved marker keeps the namespace disjoint from entries written by
// unrelated code, which is what makes prefix enumeration (and Clear) safe.
// Chunk ids are only ever constructed, never parsed back into a key and an
// index, so logical keys may freely contain underscores; the marker itself
// is the single banned character sequence (see validateIdentifier).

// reservedMarker namespaces every substrate id this package writes.
const reservedMarker = "§§"

// typeTag distinguishes the mutually exclusive encodings of a logical key.
type typeTag byte

const (
	tagNative typeTag = 'N' // scalar, flag or vector in the substrate's native form
	tagString typeTag = 'S' // text payload within the entry size limit
	tagMeta   typeTag = 'M' // chunk count for an oversized payload
	tagChunk  typeTag = 'C' // one piece of an oversized payload
)

// dbPrefix returns the id prefix shared by every entry of a database.
func dbPrefix(databaseID string) string {
	return reservedMarker + databaseID + "_"
}

// buildID constructs the substrate id for a single-entry encoding of key.
func buildID(prefix string, tag typeTag, key string) string {
	return prefix + string(tag) + key
}

// buildChunkID constructs the substrate id for one data chunk of key.
func buildChunkID(prefix, key string, index int) string {
	return prefix + string(tagChunk) + key + "_" + strconv.Itoa(index)
}

// parseIndexedKey recovers the logical key from a substrate id during index
// reconstruction. Only NATIVE, STRING and META entries contribute to the
// index - data chunks are implied by their meta entry - so chunk-tagged and
// foreign ids report false.
func parseIndexedKey(prefix, id string) (string, bool) {
	rest, ok := strings.CutPrefix(id, prefix)
	if !ok || rest == "" {
		return "", false
	}

	tag, key := typeTag(rest[0]), rest[1:]
	if key == "" {
		return "", false
	}

	switch tag {
	case tagNative, tagString, tagMeta:
		return key, true
	default:
		return "", false
	}
}

// --------------------------------------------------------------------------
// Identifier Validation
// --------------------------------------------------------------------------

// validateIdentifier rejects database ids and logical keys that are empty or
// contain the reserved marker. The marker ban is what lets the prefix scan
// attribute every substrate id to exactly one database.
func validateIdentifier(what, s string) *Error {
	if s == "" {
		return NewError(RetCInvalidIdentifier, fmt.Sprintf("%s must be a non-empty string", what))
	}
	if strings.Contains(s, reservedMarker) {
		return NewError(RetCInvalidIdentifier, fmt.Sprintf("%s must not contain the reserved marker %q", what, reservedMarker))
	}
	return nil
}

// validateDatabaseID additionally bans the underscore: the id format
// delimits the database id with "_", so "alpha" and "alpha_x" would
// otherwise own overlapping prefixes and Clear on one could eat the other.
// Logical keys have no such restriction.
func validateDatabaseID(s string) *Error {
	if err := validateIdentifier("database id", s); err != nil {
		return err
	}
	if strings.Contains(s, "_") {
		return NewError(RetCInvalidIdentifier, "database id must not contain '_'")
	}
	return nil
}

// --------------------------------------------------------------------------
// Chunking
// --------------------------------------------------------------------------

// splitIntoChunks cuts s into consecutive pieces of at most size bytes. The
// pieces cover s exactly; only the last piece may be shorter. Boundaries are
// byte offsets, so a multi-byte rune may straddle two chunks - reassembly by
// concatenation restores the original bytes regardless.
func splitIntoChunks(s string, size int) []string {
	chunks := make([]string, 0, (len(s)+size-1)/size)
	for len(s) > size {
		chunks = append(chunks, s[:size])
		s = s[size:]
	}
	return append(chunks, s)
}
