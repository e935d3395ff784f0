package model

// Generic secondary-index helpers shared by every *_ops.go file. A
// secondary index is a `map[K]map[V]struct{}` — a set of V per K — kept in
// lockstep with a primary table by the wrapper ops below, per spec.md
// §4.1's invariant that every write goes through the entity-store API so
// indexes and back-references never drift from the primary record.

func indexAdd[K comparable, V comparable](idx map[K]map[V]struct{}, key K, val V) {
	bucket, ok := idx[key]
	if !ok {
		bucket = make(map[V]struct{})
		idx[key] = bucket
	}
	bucket[val] = struct{}{}
}

func indexRemove[K comparable, V comparable](idx map[K]map[V]struct{}, key K, val V) {
	bucket, ok := idx[key]
	if !ok {
		return
	}
	delete(bucket, val)
	if len(bucket) == 0 {
		delete(idx, key)
	}
}

// indexValues copies the set at key into a deterministic-order-independent
// slice; callers that need determinism sort the result themselves.
func indexValues[K comparable, V comparable](idx map[K]map[V]struct{}, key K) []V {
	bucket := idx[key]
	out := make([]V, 0, len(bucket))
	for v := range bucket {
		out = append(out, v)
	}
	return out
}
