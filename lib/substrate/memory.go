package substrate

import (
	"github.com/puzpuzpuz/xsync/v3"
)

// memoryStore is an in-process PropertyStore backed by a concurrent map.
type memoryStore struct {
	data *xsync.MapOf[string, any]
}

// NewMemoryStore creates an empty in-process PropertyStore. It is the
// substrate of choice for tests and for hosts that do not need persistence.
//
// Thread-safety: all methods are safe for concurrent use.
func NewMemoryStore() PropertyStore {
	return &memoryStore{
		data: xsync.NewMapOf[string, any](),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see substrate.PropertyStore)
// --------------------------------------------------------------------------

func (m *memoryStore) SetProperty(id string, value any) error {
	if value == nil {
		m.data.Delete(id)
		return nil
	}
	m.data.Store(id, value)
	return nil
}

func (m *memoryStore) GetProperty(id string) (any, bool) {
	return m.data.Load(id)
}

func (m *memoryStore) ListPropertyIDs() []string {
	ids := make([]string, 0, m.data.Size())
	m.data.Range(func(id string, _ any) bool {
		ids = append(ids, id)
		return true
	})
	return ids
}
