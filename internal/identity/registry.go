package identity

import "sync"

// Registry maps display names to canonical absolute locations.
//
// It is an explicitly scoped store rather than package-level state so tests
// can construct isolated instances and assert on exact contents. Entries are
// created on first mint and never evicted; a later mint for a different
// location with the same display name overwrites the earlier entry.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]string),
	}
}

// Put stores the canonical location for a display name, overwriting any
// previous entry for that name.
func (r *Registry) Put(name, location string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = location
}

// Get returns the canonical location for a display name.
func (r *Registry) Get(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	loc, ok := r.entries[name]
	return loc, ok
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Entries returns a snapshot of all entries.
func (r *Registry) Entries() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make(map[string]string, len(r.entries))
	for k, v := range r.entries {
		snapshot[k] = v
	}
	return snapshot
}
