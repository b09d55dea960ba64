package container

import "iter"

// Set is a Map with a unit value.
type Set[K comparable] struct {
	m *Map[K, struct{}]
}

// NewSet returns a set with at least capacity slots.
func NewSet[K comparable](capacity int, hash Hasher[K]) *Set[K] {
	return &Set[K]{m: NewMap[K, struct{}](capacity, hash)}
}

// SetOf returns a set holding items.
func SetOf[K comparable](hash Hasher[K], items ...K) *Set[K] {
	s := NewSet[K](len(items)*2, hash)
	for _, item := range items {
		s.Place(item)
	}
	return s
}

func (s *Set[K]) Has(k K) bool {
	return s.m.Has(k)
}

// Place adds k. It reports false if k was already present.
func (s *Set[K]) Place(k K) bool {
	if s.m.Has(k) {
		return false
	}
	s.m.Put(k, struct{}{})
	return true
}

func (s *Set[K]) Delete(k K) bool {
	return s.m.Remove(k)
}

func (s *Set[K]) Count() int {
	return s.m.Len()
}

func (s *Set[K]) Clear() {
	s.m.Clear()
}

// All yields the members in slot order.
func (s *Set[K]) All() iter.Seq[K] {
	return s.m.Keys()
}

// Intersect returns the members present in both s and other.
func (s *Set[K]) Intersect(other *Set[K]) *Set[K] {
	small, large := s, other
	if large.Count() < small.Count() {
		small, large = large, small
	}
	out := NewSet[K](small.Count()*2, s.m.hash)
	for k := range small.All() {
		if large.Has(k) {
			out.Place(k)
		}
	}
	return out
}

// SubsetOf reports whether every member of s is in other.
func (s *Set[K]) SubsetOf(other *Set[K]) bool {
	if s.Count() > other.Count() {
		return false
	}
	for k := range s.All() {
		if !other.Has(k) {
			return false
		}
	}
	return true
}
