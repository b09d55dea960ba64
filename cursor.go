package depot

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// View is a lightweight handle on a table's rows. It copies nothing.
type View struct {
	table   *Table
	rows    int
	tick    uint64
	workers int
}

func (v View) Table() *Table {
	return v.table
}

func (v View) Len() int {
	return v.rows
}

func (v View) Tick() uint64 {
	return v.tick
}

// Cursor returns a cursor over every row of the view.
func (v View) Cursor() *Cursor {
	return &Cursor{table: v.table, tick: v.tick, end: v.rows}
}

// WithWorkers returns a copy of the view fanning out to n workers, clamped to
// [1, MaxWorkers].
func (v View) WithWorkers(n int) View {
	v.workers = min(max(n, 1), MaxWorkers)
	return v
}

type span struct {
	start, end int
}

// partition splits rows into at most workers contiguous spans. Each span holds
// rows/parts rows; the last one also takes the remainder.
func partition(rows, workers int) []span {
	if rows <= 0 {
		return nil
	}
	parts := min(max(workers, 1), MaxWorkers, rows)
	size := rows / parts
	spans := make([]span, parts)
	for i := range spans {
		spans[i] = span{start: i * size, end: (i + 1) * size}
	}
	spans[parts-1].end = rows
	return spans
}

// ParallelEach calls fn once for every row of the view, splitting the rows into
// contiguous partitions that each run on their own goroutine. It returns once every
// partition has finished. Rows within a partition are visited in ascending order;
// partitions run in no particular order.
//
// fn may write only to the row its cursor points at. Entity creation and deletion must
// go through Query.CreateEntity and Query.Delete, which defer them to the end of the
// tick. Nothing enforces this.
//
// Every partition runs to completion. The first error returned by fn, if any, is
// reported after the join.
func (v View) ParallelEach(fn func(c *Cursor) error) error {
	spans := partition(v.rows, v.workers)
	if len(spans) == 0 {
		return nil
	}
	var g errgroup.Group
	for _, sp := range spans {
		g.Go(func() error {
			var first error
			c := &Cursor{table: v.table, tick: v.tick}
			for row := sp.start; row < sp.end; row++ {
				c.position, c.end, c.started = row, row+1, true
				if err := fn(c); err != nil && first == nil {
					first = fmt.Errorf("row %d: %w", row, err)
				}
			}
			return first
		})
	}
	return g.Wait()
}

// Cursor walks rows of one table. Use Next in a for loop, or Done and Advance.
type Cursor struct {
	table    *Table
	tick     uint64
	position int
	end      int
	started  bool
}

// Next moves to the next row and reports whether there is one. The first call stays on
// the starting row.
func (c *Cursor) Next() bool {
	if !c.started {
		c.started = true
	} else {
		c.position++
	}
	return c.position < c.end
}

// Done reports whether the cursor is past its last row.
func (c *Cursor) Done() bool {
	return c.position >= c.end
}

// Advance moves to the next row.
func (c *Cursor) Advance() {
	c.started = true
	c.position++
}

// Position is the current row index.
func (c *Cursor) Position() int {
	return c.position
}

func (c *Cursor) Tick() uint64 {
	return c.tick
}

func (c *Cursor) Table() *Table {
	return c.table
}

// Entity is the entity stored at the current row.
func (c *Cursor) Entity() EntityID {
	c.check()
	return c.table.Entity(c.position)
}

// Field returns the bytes of component comp at the current row. Writes through the slice
// are not recorded as mutations; use Set for that. It panics past the last row or if the
// table lacks comp.
func (c *Cursor) Field(comp Component) []byte {
	c.check()
	return c.table.Field(c.position, comp)
}

// FieldByName is Field keyed by component name.
func (c *Cursor) FieldByName(name string) []byte {
	c.check()
	col, ok := c.table.offsets.Find(HashName(name))
	if !ok {
		panic("depot: component " + name + " is not stored in this table")
	}
	return col.slice(c.table.Row(c.position))
}

// Set copies value into component comp at the current row and records the row as
// mutated this tick.
func (c *Cursor) Set(comp Component, value []byte) {
	field := c.Field(comp)
	if len(value) != len(field) {
		panic(SizeMismatchError{Name: comp.name, Want: len(field), Got: len(value)})
	}
	copy(field, value)
	c.table.markMutated(c.table.Entity(c.position))
}

// Has reports whether the cursor's table stores comp.
func (c *Cursor) Has(comp Component) bool {
	return c.table.Contains(comp)
}

func (c *Cursor) check() {
	if c.position < 0 || c.position >= c.end {
		panic(fmt.Sprintf("depot: cursor position %d outside [0, %d)", c.position, c.end))
	}
}
