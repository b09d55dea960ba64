package depot

import (
	"strings"

	"github.com/TheBitDrifter/depot/container"
)

// componentRegistry maps component names to their layout. Registration order fixes each
// component's mask bit.
type componentRegistry struct {
	items       *container.Vector[Component]
	indices     *container.Map[uint64, int]
	maxCapacity int
}

func newComponentRegistry(capacity int) *componentRegistry {
	return &componentRegistry{
		items:       container.NewVector[Component](capacity),
		indices:     container.NewMap[uint64, int](capacity, container.HashUint64[uint64]),
		maxCapacity: MaxComponents,
	}
}

func (r *componentRegistry) register(name string, size int) (Component, error) {
	if name == "" || strings.ContainsAny(name, ", \t\n") {
		return Component{}, ErrInvalidName
	}
	if size <= 0 {
		return Component{}, ErrInvalidSize
	}
	hash := HashName(name)
	if r.indices.Has(hash) {
		return Component{}, AlreadyRegisteredError{Name: name}
	}
	if r.items.Len() >= r.maxCapacity {
		return Component{}, ErrComponentLimit
	}
	c := Component{
		name: name,
		hash: hash,
		size: size,
		bit:  uint32(r.items.Len()),
	}
	r.indices.Put(hash, r.items.Len())
	r.items.Push(c)
	return c, nil
}

func (r *componentRegistry) byHash(hash uint64) (Component, bool) {
	idx, ok := r.indices.Find(hash)
	if !ok {
		return Component{}, false
	}
	return r.items.At(idx), true
}

func (r *componentRegistry) lookup(name string) (Component, bool) {
	return r.byHash(HashName(name))
}

// resolve turns a component list into components, rejecting unknown or repeated names.
func (r *componentRegistry) resolve(list string) ([]Component, error) {
	names, err := tokenize(list)
	if err != nil {
		return nil, err
	}
	comps := make([]Component, len(names))
	for i, name := range names {
		c, ok := r.lookup(name)
		if !ok {
			return nil, UnknownComponentError{Name: name}
		}
		comps[i] = c
	}
	return comps, nil
}

func (r *componentRegistry) len() int {
	return r.items.Len()
}
