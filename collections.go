package incr

// This file is deliberately layered on top of the core combinators (Map,
// MapMut, Cutoff, Then, ...) rather than inside them: ordered-map/vector
// collection adapters are the "builder surface" that sits outside the
// engine proper, demonstrated here with the one pattern that carried over
// well from the teacher's diff_maps.go.

// DiffMapAdded returns an anchor that, each time input changes, reports just
// the key/value pairs present in the latest map but absent from the
// previous one. The very first read reports every key as added.
func DiffMapAdded[K comparable, V any](e *Engine, input Anchor[map[K]V]) Anchor[map[K]V] {
	var previous map[K]V
	seeded := false
	return MapMut(e, input, func(latest map[K]V, out *map[K]V) bool {
		added := make(map[K]V)
		for k, v := range latest {
			if _, ok := previous[k]; !ok {
				added[k] = v
			}
		}
		changed := !seeded || !mapKeysEqual(added, *out)
		*out = added
		previous = cloneMap(latest)
		seeded = true
		return changed
	})
}

// DiffMapRemoved is DiffMapAdded's mirror: it reports key/value pairs
// present in the previous map but absent from the latest one.
func DiffMapRemoved[K comparable, V any](e *Engine, input Anchor[map[K]V]) Anchor[map[K]V] {
	var previous map[K]V
	seeded := false
	return MapMut(e, input, func(latest map[K]V, out *map[K]V) bool {
		removed := make(map[K]V)
		for k, v := range previous {
			if _, ok := latest[k]; !ok {
				removed[k] = v
			}
		}
		changed := !seeded || !mapKeysEqual(removed, *out)
		*out = removed
		previous = cloneMap(latest)
		seeded = true
		return changed
	})
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func mapKeysEqual[K comparable, V any](a, b map[K]V) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
