/*
Package arena provides a region-based bump allocator.

Memory is handed out from fixed-size regions. Once returned, a slice never moves: when the
current region cannot satisfy a request a fresh region is appended instead of compacting.
Allocations are released as a unit, either all at once with Release or back to a mark with
a Frame.
*/
package arena

import "fmt"

// RegionSize is the capacity in bytes of every region.
const RegionSize = 64 << 10

const align = 8

// Arena is a bump allocator over a growing list of regions.
// It is not safe for concurrent use.
type Arena struct {
	regions [][]byte
	offset  int
	used    int
}

// Frame marks a point in an arena that can be rewound to.
type Frame struct {
	arena   *Arena
	regions int
	offset  int
	used    int
}

// New returns an arena with one empty region.
func New() *Arena {
	a := &Arena{}
	a.NewRegion()
	return a
}

// Allocate returns n zeroed bytes. The slice stays valid until the arena (or an enclosing
// frame) is released. Requesting more than RegionSize bytes panics.
func (a *Arena) Allocate(n int) []byte {
	if n < 0 || n > RegionSize {
		panic(fmt.Sprintf("arena: allocation of %d bytes exceeds region size %d", n, RegionSize))
	}
	start := alignUp(a.offset)
	if start+n > RegionSize || len(a.regions) == 0 {
		a.NewRegion()
		start = 0
	}
	region := a.regions[len(a.regions)-1]
	buf := region[start : start+n : start+n]
	clear(buf)
	a.offset = start + n
	a.used += n
	return buf
}

// Remaining reports the contiguous bytes left in the current region.
func (a *Arena) Remaining() int {
	if len(a.regions) == 0 {
		return 0
	}
	start := alignUp(a.offset)
	if start >= RegionSize {
		return 0
	}
	return RegionSize - start
}

// NewRegion forces the next allocation into a fresh region.
func (a *Arena) NewRegion() {
	a.regions = append(a.regions, make([]byte, RegionSize))
	a.offset = 0
}

// Regions reports how many regions the arena holds.
func (a *Arena) Regions() int {
	return len(a.regions)
}

// Allocated reports the bytes handed out since creation or the last release.
func (a *Arena) Allocated() int {
	return a.used
}

// Release drops every region. The arena is unusable until NewRegion or Allocate is called.
func (a *Arena) Release() {
	a.regions = nil
	a.offset = 0
	a.used = 0
}

// Begin opens a frame at the current allocation point.
func (a *Arena) Begin() Frame {
	return Frame{
		arena:   a,
		regions: len(a.regions),
		offset:  a.offset,
		used:    a.used,
	}
}

// End rewinds the arena to the frame's mark. Memory allocated inside the frame must not be
// used afterwards.
func (f Frame) End() {
	a := f.arena
	if a == nil {
		return
	}
	if f.regions < len(a.regions) {
		for i := f.regions; i < len(a.regions); i++ {
			a.regions[i] = nil
		}
		a.regions = a.regions[:f.regions]
	}
	a.offset = f.offset
	a.used = f.used
	if len(a.regions) == 0 {
		a.NewRegion()
	}
}

func alignUp(n int) int {
	return (n + align - 1) &^ (align - 1)
}
