package cmp

// SliceEq checks two slices hold the same elements in the same order.
func SliceEq[T comparable](a []T, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for nth, va := range a {
		if va != b[nth] {
			return false
		}
	}
	return true
}

// SliceEqWith checks two slices are equal, element by element, with pred.
func SliceEqWith[T any, U any](a []T, b []U, pred func(a T, b U) bool) bool {
	if len(a) != len(b) {
		return false
	}

	for nth := range a {
		if !pred(a[nth], b[nth]) {
			return false
		}
	}

	return true
}

// SliceContentEq checks two slices hold the same elements, ignoring order.
func SliceContentEq[T comparable](a []T, b []T) bool {
	if len(a) != len(b) {
		return false
	}

	rest := append([]T(nil), b...)

A:
	for _, x := range a {
		for i, y := range rest {
			if x == y {
				rest = append(rest[:i], rest[i+1:]...)
				continue A
			}
		}
		return false
	}

	return len(rest) == 0
}

// MapEq checks two maps hold the same key-value pairs.
func MapEq[K comparable, V comparable](a, b map[K]V) bool {
	if len(a) != len(b) {
		return false
	}
	for k, va := range a {
		vb, ok := b[k]
		if !ok || va != vb {
			return false
		}
	}
	return true
}

// MapEqWith checks two maps have same keyset and, for each key, values are equal with pred.
func MapEqWith[K comparable, V any, W any](a map[K]V, b map[K]W, pred func(V, W) bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k, va := range a {
		vb, ok := b[k]
		if !ok || !pred(va, vb) {
			return false
		}
	}
	return true
}
