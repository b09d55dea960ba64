package depot

import "github.com/cespare/xxhash/v2"

// MaxComponents bounds the registrations a single world accepts.
const MaxComponents = 64

// Component describes a registered component: its name, the hash tables are keyed by,
// its fixed byte size and the mask bit used for system matching.
type Component struct {
	name string
	hash uint64
	size int
	bit  uint32
}

func (c Component) Name() string {
	return c.name
}

func (c Component) Hash() uint64 {
	return c.hash
}

func (c Component) Size() int {
	return c.size
}

// Bit is the component's position in table and system masks.
func (c Component) Bit() uint32 {
	return c.bit
}

// IsZero reports whether c is the zero Component.
func (c Component) IsZero() bool {
	return c.size == 0
}

// HashName returns the hash a component name is keyed by.
func HashName(name string) uint64 {
	return xxhash.Sum64String(name)
}
