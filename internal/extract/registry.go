package extract

import "github.com/phobologic/specgap/internal/model"

// Registry maps display keys to method entries, remembering insertion order.
// A later Add at the same key overwrites in place; Remove retracts.
type Registry struct {
	order   []string
	entries map[string]model.MethodEntry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]model.MethodEntry)}
}

// Add inserts e under its display key, overwriting any previous entry.
func (r *Registry) Add(e model.MethodEntry) {
	key := e.String()
	if _, ok := r.entries[key]; !ok {
		r.order = append(r.order, key)
	}
	r.entries[key] = e
}

// Remove deletes key if present. Removing a missing key is a no-op.
func (r *Registry) Remove(key string) {
	if _, ok := r.entries[key]; !ok {
		return
	}
	delete(r.entries, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Merge adds every entry of other, overwriting on key collision.
func (r *Registry) Merge(other *Registry) {
	for _, key := range other.order {
		r.Add(other.entries[key])
	}
}

// Get returns the entry stored under key.
func (r *Registry) Get(key string) (model.MethodEntry, bool) {
	e, ok := r.entries[key]
	return e, ok
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	return len(r.order)
}

// Values returns the entries in insertion order.
func (r *Registry) Values() []model.MethodEntry {
	out := make([]model.MethodEntry, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.entries[key])
	}
	return out
}
