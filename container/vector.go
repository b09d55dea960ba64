package container

import "iter"

const defaultCapacity = 8

// Vector is a growable contiguous sequence. Capacity doubles on growth and never shrinks.
type Vector[T any] struct {
	items []T
}

// NewVector returns an empty vector with room for capacity elements.
func NewVector[T any](capacity int) *Vector[T] {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Vector[T]{items: make([]T, 0, capacity)}
}

// Push appends item.
func (v *Vector[T]) Push(item T) {
	if len(v.items) == cap(v.items) {
		v.grow(len(v.items) + 1)
	}
	v.items = append(v.items, item)
}

// Pop removes and returns the last element. It panics on an empty vector.
func (v *Vector[T]) Pop() T {
	n := len(v.items) - 1
	item := v.items[n]
	var zero T
	v.items[n] = zero
	v.items = v.items[:n]
	return item
}

// At returns the element at i.
func (v *Vector[T]) At(i int) T {
	return v.items[i]
}

// Ref returns a pointer to the element at i. The pointer is invalidated by growth.
func (v *Vector[T]) Ref(i int) *T {
	return &v.items[i]
}

// Set overwrites the element at i.
func (v *Vector[T]) Set(i int, item T) {
	v.items[i] = item
}

// Top returns the last element. It panics on an empty vector.
func (v *Vector[T]) Top() T {
	return v.items[len(v.items)-1]
}

func (v *Vector[T]) Len() int {
	return len(v.items)
}

func (v *Vector[T]) Cap() int {
	return cap(v.items)
}

// Resize grows the vector to n elements, zero filling new slots. It never shrinks.
func (v *Vector[T]) Resize(n int) {
	if n <= len(v.items) {
		return
	}
	if n > cap(v.items) {
		v.grow(n)
	}
	v.items = v.items[:n]
}

// Copy returns an independent vector holding the same elements.
func (v *Vector[T]) Copy() *Vector[T] {
	items := make([]T, len(v.items), cap(v.items))
	copy(items, v.items)
	return &Vector[T]{items: items}
}

// Clear drops every element but keeps the capacity.
func (v *Vector[T]) Clear() {
	clear(v.items)
	v.items = v.items[:0]
}

// Slice exposes the live elements. The slice aliases the vector until the next growth.
func (v *Vector[T]) Slice() []T {
	return v.items
}

// All yields index/element pairs in order.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, item := range v.items {
			if !yield(i, item) {
				return
			}
		}
	}
}

// Values yields the elements in order.
func (v *Vector[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range v.items {
			if !yield(item) {
				return
			}
		}
	}
}

// Count reports how many elements satisfy pred.
func (v *Vector[T]) Count(pred func(T) bool) int {
	n := 0
	for _, item := range v.items {
		if pred(item) {
			n++
		}
	}
	return n
}

// Filter returns a new vector with the elements satisfying pred, in order.
func (v *Vector[T]) Filter(pred func(T) bool) *Vector[T] {
	out := NewVector[T](len(v.items))
	for _, item := range v.items {
		if pred(item) {
			out.Push(item)
		}
	}
	return out
}

func (v *Vector[T]) grow(need int) {
	next := cap(v.items) * 2
	if next == 0 {
		next = defaultCapacity
	}
	for next < need {
		next *= 2
	}
	items := make([]T, len(v.items), next)
	copy(items, v.items)
	v.items = items
}

// MapVector returns a vector holding fn applied to every element of v.
func MapVector[T, U any](v *Vector[T], fn func(T) U) *Vector[U] {
	out := NewVector[U](v.Len())
	for _, item := range v.items {
		out.Push(fn(item))
	}
	return out
}

// Fold reduces v from the left, starting from init.
func Fold[T, A any](v *Vector[T], init A, fn func(A, T) A) A {
	acc := init
	for _, item := range v.items {
		acc = fn(acc, item)
	}
	return acc
}
