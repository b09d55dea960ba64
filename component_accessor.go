package depot

import (
	"unsafe"
)

// Accessor reads and writes one component as a Go value of type T. T must hold no
// pointers and be exactly as large as the component. Values are copied in and out since
// rows are packed without alignment.
type Accessor[T any] struct {
	Component
}

func newAccessor[T any](w *World, name string) (Accessor[T], error) {
	c, ok := w.Component(name)
	if !ok {
		return Accessor[T]{}, UnknownComponentError{Name: name}
	}
	var zero T
	if size := int(unsafe.Sizeof(zero)); size != c.size {
		return Accessor[T]{}, SizeMismatchError{Name: name, Want: c.size, Got: size}
	}
	return Accessor[T]{Component: c}, nil
}

// Get returns the value at the cursor's row.
func (a Accessor[T]) Get(c *Cursor) T {
	return a.decode(c.Field(a.Component))
}

// Set stores v at the cursor's row and records the row as mutated.
func (a Accessor[T]) Set(c *Cursor, v T) {
	c.Set(a.Component, a.encode(&v))
}

// Check reports whether the cursor's table stores the component.
func (a Accessor[T]) Check(c *Cursor) bool {
	return c.Has(a.Component)
}

// GetEntity reads the component of e outside a tick.
func (a Accessor[T]) GetEntity(w *World, e EntityID) (T, error) {
	field, err := w.Get(e, a.name)
	if err != nil {
		var zero T
		return zero, err
	}
	return a.decode(field), nil
}

// SetEntity writes the component of e outside a tick.
func (a Accessor[T]) SetEntity(w *World, e EntityID, v T) error {
	return w.Set(e, a.name, a.encode(&v))
}

func (a Accessor[T]) decode(field []byte) T {
	var v T
	copy(a.encode(&v), field)
	return v
}

func (a Accessor[T]) encode(v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), a.size)
}
