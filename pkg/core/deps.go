package core

import "reflect"

// depsChanged reports whether two dependency lists differ. Lists of
// different length always differ.
func depsChanged(prev, next []any) bool {
	if prev == nil || next == nil || len(prev) != len(next) {
		return true
	}
	for i := range next {
		if !sameValue(prev[i], next[i]) {
			return true
		}
	}
	return false
}

// sameValue compares two dependency values with ==. Values whose dynamic
// type is not comparable (funcs, slices, maps) are never the same, which
// errs on the side of re-running.
func sameValue(a, b any) (same bool) {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	// Interface fields may still hold uncomparable values.
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}
