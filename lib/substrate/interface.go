package substrate

import "fmt"

// --------------------------------------------------------------------------
// Constants
// --------------------------------------------------------------------------

// MaxEntrySize is the maximum serialized size (in bytes) of a single text
// value the substrate accepts. Larger payloads must be split across multiple
// entries by the caller before they reach a PropertyStore.
const MaxEntrySize = 32767

// --------------------------------------------------------------------------
// Helper Types
// --------------------------------------------------------------------------

// Vector is the substrate's fixed 3-component numeric record. It is the only
// composite value a PropertyStore accepts natively.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v Vector) String() string {
	return fmt.Sprintf("Vector{%g, %g, %g}", v.X, v.Y, v.Z)
}

// --------------------------------------------------------------------------
// PropertyStore Interface
// --------------------------------------------------------------------------

// PropertyStore is the flat property facility higher layers are built on: a
// mapping from opaque string ids to small scalar values. It supports only
// synchronous point reads and writes plus unordered enumeration of ids -
// there are no composite values, no chunking and no change notification.
//
// Valid value types are float64, bool, string (at most MaxEntrySize bytes)
// and Vector. Implementations are not required to reject oversized or
// mistyped values; keeping every write within the contract is the caller's
// responsibility.
type PropertyStore interface {
	// SetProperty inserts or updates the entry for id. A nil value removes
	// the entry.
	SetProperty(id string, value any) error

	// GetProperty retrieves the value for an exact id. The boolean return
	// value indicates whether an entry for the id exists.
	GetProperty(id string) (value any, loaded bool)

	// ListPropertyIDs returns the ids of all currently set entries, across
	// every namespace sharing this store. The order is unspecified.
	ListPropertyIDs() []string
}
