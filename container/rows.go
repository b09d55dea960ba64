package container

import "github.com/TheBitDrifter/depot/arena"

// Allocator hands out zeroed byte buffers that never move.
type Allocator interface {
	Allocate(n int) []byte
}

// Rows is a type-erased vector of fixed-width byte rows.
//
// Buffers that fit in one arena region come from the allocator; larger ones come from the
// Go heap. Outgrown buffers are abandoned to their owner, never freed individually.
type Rows struct {
	width int
	buf   []byte
	len   int
	cap   int
	alloc Allocator
}

// NewRows returns an empty row store. alloc may be nil.
func NewRows(width, capacity int, alloc Allocator) *Rows {
	r := &Rows{width: width, alloc: alloc}
	if capacity > 0 {
		r.reserve(capacity)
	}
	return r
}

func (r *Rows) Width() int {
	return r.width
}

func (r *Rows) Len() int {
	return r.len
}

func (r *Rows) Cap() int {
	return r.cap
}

// Append adds one zeroed row and returns its position.
func (r *Rows) Append() int {
	if r.len == r.cap {
		next := r.cap * 2
		if next == 0 {
			next = defaultCapacity
		}
		r.reserve(next)
	}
	i := r.len
	r.len++
	clear(r.Row(i))
	return i
}

// Row returns the bytes of row i. Writes through the slice land in the store.
func (r *Rows) Row(i int) []byte {
	if i < 0 || i >= r.len {
		panic("container: row index out of range")
	}
	start := i * r.width
	end := start + r.width
	return r.buf[start:end:end]
}

// CopyRow copies row src over row dst.
func (r *Rows) CopyRow(dst, src int) {
	copy(r.Row(dst), r.Row(src))
}

// SwapRemove overwrites row i with the last row and truncates. It returns the former
// position of the row that moved into i, or -1 when i was the last row.
func (r *Rows) SwapRemove(i int) int {
	last := r.len - 1
	if i != last {
		r.CopyRow(i, last)
	}
	r.len--
	if i == last {
		return -1
	}
	return last
}

// Release drops every row together with the buffer. The next Append allocates afresh.
func (r *Rows) Release() {
	r.buf = nil
	r.len = 0
	r.cap = 0
}

// Clear drops every row and keeps the buffer.
func (r *Rows) Clear() {
	r.len = 0
}

func (r *Rows) reserve(rows int) {
	if rows <= r.cap {
		return
	}
	size := rows * r.width
	var buf []byte
	if r.alloc != nil && size <= arena.RegionSize {
		buf = r.alloc.Allocate(size)
	} else {
		buf = make([]byte, size)
	}
	copy(buf, r.buf[:r.len*r.width])
	r.buf = buf
	r.cap = rows
}
