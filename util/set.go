package util

import (
	"sort"

	"github.com/xtgo/set"
)

// sortedBy adapts a slice ordered by less to sort.Interface, as required by xtgo/set
type sortedBy[A any] struct {
	items []A
	less  func(a, b A) bool
}

func (s sortedBy[A]) Len() int           { return len(s.items) }
func (s sortedBy[A]) Less(i, j int) bool { return s.less(s.items[i], s.items[j]) }
func (s sortedBy[A]) Swap(i, j int)      { s.items[i], s.items[j] = s.items[j], s.items[i] }

var _ sort.Interface = sortedBy[int]{}

// SortedUnion returns the union of fst and snd, which must both be
// sorted by less and free of duplicates. The inputs are not modified.
func SortedUnion[A any](fst, snd []A, less func(a, b A) bool) []A {
	if len(snd) == 0 {
		return fst
	}
	if len(fst) == 0 {
		return snd
	}
	data := make([]A, 0, len(fst)+len(snd))
	data = append(append(data, fst...), snd...)
	size := set.Union(sortedBy[A]{data, less}, len(fst))
	return data[:size]
}

// SortedDiff returns the elements of fst which are not in snd. Both must be
// sorted by less and free of duplicates. The inputs are not modified.
func SortedDiff[A any](fst, snd []A, less func(a, b A) bool) []A {
	if len(fst) == 0 || len(snd) == 0 {
		return fst
	}
	data := make([]A, 0, len(fst)+len(snd))
	data = append(append(data, fst...), snd...)
	size := set.Diff(sortedBy[A]{data, less}, len(fst))
	return data[:size]
}
