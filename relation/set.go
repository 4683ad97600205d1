package relation

import (
	"encoding/json"
	"sort"
)

// Set is an unordered, duplicate free collection.
type Set[T comparable] map[T]struct{}

func NewSet[T comparable](items ...T) Set[T] {
	s := make(Set[T], len(items))
	for _, it := range items {
		s.Add(it)
	}
	return s
}

func (s Set[T]) Add(item T) {
	s[item] = struct{}{}
}

func (s Set[T]) Has(item T) bool {
	_, ok := s[item]
	return ok
}

// Intersect returns the items present in both s and other.
func (s Set[T]) Intersect(other Set[T]) Set[T] {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}

	res := make(Set[T])
	for it := range small {
		if large.Has(it) {
			res.Add(it)
		}
	}
	return res
}

// Equal reports whether both sets have the same items.
func (s Set[T]) Equal(other Set[T]) bool {
	if len(s) != len(other) {
		return false
	}
	for it := range s {
		if !other.Has(it) {
			return false
		}
	}
	return true
}

// Sorted returns the items ordered with less.
func (s Set[T]) Sorted(less func(a, b T) bool) []T {
	items := make([]T, 0, len(s))
	for it := range s {
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool { return less(items[i], items[j]) })
	return items
}

// Lemmas is a set of lemma strings.
type Lemmas = Set[string]

// SortedLemmas returns the lemmas in alphabetical order.
func SortedLemmas(s Lemmas) []string {
	return s.Sorted(func(a, b string) bool { return a < b })
}

// Tuple is one of the relation tuples VSO, VS or VO.
type Tuple interface {
	comparable
	Lemmas() []string
}

// Sorted returns the tuples ordered by their lemmas.
func Sorted[T Tuple](s Set[T]) []T {
	return s.Sorted(func(a, b T) bool {
		return lessLemmas(a.Lemmas(), b.Lemmas())
	})
}

func lessLemmas(a, b []string) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// MarshalTuples encodes the set as a sorted JSON array of lemma arrays.
func MarshalTuples[T Tuple](s Set[T]) ([]byte, error) {
	out := make([][]string, 0, len(s))
	for _, t := range Sorted(s) {
		out = append(out, t.Lemmas())
	}
	return json.Marshal(out)
}
