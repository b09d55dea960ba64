package depot

import (
	"fmt"
	"sync/atomic"
)

// Mode tells real entities apart from the throwaway ones used by dry-run transitions.
type Mode uint8

const (
	ModeStorage Mode = iota
	ModeCached
)

func (m Mode) String() string {
	if m == ModeCached {
		return "cached"
	}
	return "storage"
}

// EntityID is a 64-bit handle packing a monotonically increasing counter and a Mode.
// Handles are never reused. The zero handle is never issued.
type EntityID uint64

const modeBits = 1

// NewEntityID packs counter and mode into a handle.
func NewEntityID(counter uint64, mode Mode) EntityID {
	return EntityID(counter<<modeBits | uint64(mode&1))
}

// Counter returns the counter part of the handle.
func (id EntityID) Counter() uint64 {
	return uint64(id) >> modeBits
}

// Mode returns the mode part of the handle.
func (id EntityID) Mode() Mode {
	return Mode(id & 1)
}

// WithMode returns the handle with its mode replaced.
func (id EntityID) WithMode(m Mode) EntityID {
	return NewEntityID(id.Counter(), m)
}

func (id EntityID) IsZero() bool {
	return id == 0
}

func (id EntityID) String() string {
	return fmt.Sprintf("Entity(%d:%s)", id.Counter(), id.Mode())
}

// IDCounter generates entity handles. Increment and SetMode are lock-free and safe for
// concurrent use.
type IDCounter struct {
	v atomic.Uint64
}

// Increment advances the counter, keeping the current mode, and returns the new handle.
func (c *IDCounter) Increment() EntityID {
	for {
		cur := c.v.Load()
		next := NewEntityID(EntityID(cur).Counter()+1, EntityID(cur).Mode())
		if c.v.CompareAndSwap(cur, uint64(next)) {
			return next
		}
	}
}

// SetMode overwrites the mode bit and keeps the counter.
func (c *IDCounter) SetMode(m Mode) {
	for {
		cur := c.v.Load()
		next := EntityID(cur).WithMode(m)
		if c.v.CompareAndSwap(cur, uint64(next)) {
			return
		}
	}
}

// Current returns the most recently issued handle, or a zero-counter handle before the
// first Increment.
func (c *IDCounter) Current() EntityID {
	return EntityID(c.v.Load())
}
