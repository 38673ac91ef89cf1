// Package cow provides a copy-on-write map used for the structurally shared
// component tables of the stroke store.
//
// A Map is either owned or shared. Clone is O(1): it hands out a second
// handle to the same underlying table and marks it shared. The first
// mutation through any handle of a shared table copies the table once,
// after which that handle owns its copy. This is what makes history
// snapshots cheap while keeping mutation semantics value-like.
package cow

// Map is a copy-on-write map from K to V.
// The zero value is not usable; create one with NewMap.
//
// Map handles are not safe for concurrent mutation; the stroke store
// confines them to its owner goroutine.
type Map[K comparable, V any] struct {
	t *table[K, V]
}

type table[K comparable, V any] struct {
	m map[K]V
	// shared is set when more than one handle may reference this table.
	// Once set it stays set; a stale flag only costs one extra copy.
	shared bool
}

// NewMap creates an empty owned map.
func NewMap[K comparable, V any]() Map[K, V] {
	return Map[K, V]{t: &table[K, V]{m: make(map[K]V)}}
}

// Clone returns a handle sharing the underlying table with m.
// Both handles copy the table on their next mutation.
func (m Map[K, V]) Clone() Map[K, V] {
	m.t.shared = true
	return Map[K, V]{t: m.t}
}

// Same reports whether a and b share the same underlying table.
// This is the identity check used to skip redundant history entries.
func Same[K comparable, V any](a, b Map[K, V]) bool {
	return a.t == b.t
}

// mutable returns the underlying map, copying it first if it is shared.
func (m *Map[K, V]) mutable() map[K]V {
	if m.t.shared {
		copied := make(map[K]V, len(m.t.m))
		for k, v := range m.t.m {
			copied[k] = v
		}
		m.t = &table[K, V]{m: copied}
	}
	return m.t.m
}

// Get returns the value for the key and whether it was present.
func (m Map[K, V]) Get(k K) (V, bool) {
	v, ok := m.t.m[k]
	return v, ok
}

// Set stores the value for the key.
func (m *Map[K, V]) Set(k K, v V) {
	m.mutable()[k] = v
}

// Delete removes the key. Deleting an absent key is a no-op.
func (m *Map[K, V]) Delete(k K) {
	if _, ok := m.t.m[k]; !ok {
		return
	}
	delete(m.mutable(), k)
}

// Len returns the number of entries.
func (m Map[K, V]) Len() int {
	return len(m.t.m)
}

// Keys returns all keys in unspecified order.
func (m Map[K, V]) Keys() []K {
	keys := make([]K, 0, len(m.t.m))
	for k := range m.t.m {
		keys = append(keys, k)
	}
	return keys
}

// Range calls fn for every entry until fn returns false.
// fn must not mutate the map.
func (m Map[K, V]) Range(fn func(K, V) bool) {
	for k, v := range m.t.m {
		if !fn(k, v) {
			return
		}
	}
}

// Clear removes all entries, leaving the map owned.
func (m *Map[K, V]) Clear() {
	m.t = &table[K, V]{m: make(map[K]V)}
}
