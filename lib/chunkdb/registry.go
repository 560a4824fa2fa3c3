package chunkdb

import (
	"github.com/IMvampireXD/MCBE-Storage-Database/lib/substrate"
	"github.com/puzpuzpuz/xsync/v3"
)

// --------------------------------------------------------------------------
// Registry
// --------------------------------------------------------------------------

// registryKey identifies a store by its substrate handle and database id.
type registryKey struct {
	source substrate.PropertyStore
	id     string
}

// Registry interns Store instances: for a given (source, database id) pair
// there is exactly one canonical *Store, so two handles to the same logical
// database can never hold divergent indexes or caches. Instances live for
// the registry's lifetime; Clear empties a store's data but keeps it
// registered.
type Registry struct {
	stores *xsync.MapOf[registryKey, *Store]
}

// NewRegistry creates an empty registry. Applications normally own one
// registry at top level; the package-level Open uses a process-wide default.
func NewRegistry() *Registry {
	return &Registry{
		stores: xsync.NewMapOf[registryKey, *Store](),
	}
}

// Open returns the canonical store for (source, databaseID), creating it -
// including the index reconstruction scan - on first reference. The opts
// parameter only applies to that first reference; later calls for the same
// pair return the existing instance unchanged.
func (r *Registry) Open(source substrate.PropertyStore, databaseID string, opts *Options) (*Store, error) {
	if source == nil {
		return nil, NewError(RetCInvalidOperation, "source must not be nil")
	}
	if err := validateDatabaseID(databaseID); err != nil {
		return nil, err
	}

	store, _ := r.stores.LoadOrCompute(registryKey{source: source, id: databaseID}, func() *Store {
		return newStore(source, databaseID, opts)
	})
	return store, nil
}

// --------------------------------------------------------------------------
// Default Registry
// --------------------------------------------------------------------------

var defaultRegistry = NewRegistry()

// Open returns the canonical store for (source, databaseID) from the
// process-wide default registry. See Registry.Open.
func Open(source substrate.PropertyStore, databaseID string, opts *Options) (*Store, error) {
	return defaultRegistry.Open(source, databaseID, opts)
}
