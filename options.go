package stabledict

// Option configures a dict at construction time.
type Option[V any] func(t *table[V])

// Override the default FNV hash pair. Any pair works: the probe step derived
// from the secondary hash is forced odd.
func WithHashFuncs[V any](primary, secondary HashFunc) Option[V] {
	return func(t *table[V]) {
		t.primary = primary
		t.secondary = secondary
	}
}

// Use xxhash for both hashes instead of FNV.
func WithXXHash[V any]() Option[V] {
	return WithHashFuncs[V](XXHashPrimary, XXHashSecondary)
}
