// Package stabledict implements a fixed-capacity string-keyed map based on
// open addressing with double hashing.
//
// The capacity is chosen once, must be a power of two, and never changes:
// the dict does not grow. Removed keys leave tombstones behind, which later
// inserts reuse. Use Compact to drop the tombstones without reallocating.
//
// Keys are stored as given. Go strings are immutable, so a stored key can't be
// changed behind the dict's back.
//
// A Dict is not safe for concurrent use.
package stabledict

// Dict is a string-keyed map with a fixed number of slots.
// Build it with New: a zero-value Dict behaves like a closed one.
type Dict[V any] struct {
	table[V]
}

// Returns a new dict with exactly `capacity` slots.
func New[V any](capacity int, opts ...Option[V]) (*Dict[V], error) {
	var d Dict[V]
	if err := d.init(capacity, opts...); err != nil {
		return nil, err
	}

	return &d, nil
}

// Insert stores the value under the key.
// If the key was present, its value is replaced and the old one is returned.
// Otherwise the given value is returned.
func (d *Dict[V]) Insert(key string, value V) (V, error) {
	return d.put(key, value)
}

// Search returns the value stored under the key.
func (d *Dict[V]) Search(key string) (V, bool) {
	return d.get(key)
}

// Remove deletes the key, reporting whether it was present.
func (d *Dict[V]) Remove(key string) bool {
	return d.delete(key)
}

// Number of live keys.
func (d *Dict[V]) Len() int {
	return int(d.size)
}

// Returns the number of slots, fixed at construction.
func (d *Dict[V]) Cap() int {
	return int(d.capacity)
}
