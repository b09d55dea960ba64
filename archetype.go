package depot

import (
	"iter"
	"slices"
	"sync"

	"github.com/TheBitDrifter/depot/arena"
	"github.com/TheBitDrifter/depot/container"
	"github.com/TheBitDrifter/mask"
)

var _ mask.Maskable = &Table{}

// emptyTable holds every entity without components. It is shared by all worlds, never
// stores rows and is never mutated.
var emptyTable = &Table{
	key:      Key{},
	keySet:   container.NewSet[uint64](0, container.HashUint64[uint64]),
	offsets:  container.NewMap[uint64, column](0, container.HashUint64[uint64]),
	rows:     container.NewRows(0, 0, nil),
	entities: container.NewVector[EntityID](0),
	index:    container.NewMap[EntityID, int](0, container.HashUint64[EntityID]),
	created:  container.NewVector[EntityID](0),
	deleted:  container.NewVector[EntityID](0),
	mutated:  container.NewSet[EntityID](0, container.HashUint64[EntityID]),
	dead:     container.NewVector[int](0),
}

// Table is the columnar storage block for one exact component set (an archetype).
//
// Rows are fixed width: each is the packed concatenation of the table's components at the
// offsets fixed when the table was built. Structural changes made during a tick are
// buffered and applied when the tick commits.
type Table struct {
	id      uint64
	key     Key
	keySet  *container.Set[uint64]
	mask    mask.Mask
	mode    Mode
	arena   *arena.Arena
	offsets *container.Map[uint64, column]
	width   int

	rows     *container.Rows
	entities *container.Vector[EntityID]
	index    *container.Map[EntityID, int]

	// mu guards created, deleted and mutated, which workers may append to.
	mu      sync.Mutex
	created *container.Vector[EntityID]
	deleted *container.Vector[EntityID]
	mutated *container.Set[EntityID]
	dead    *container.Vector[int]

	sim *simulation
}

func newTable(s *space, key Key) *Table {
	t := &Table{
		id:       key.ID(),
		key:      key,
		keySet:   container.SetOf(container.HashUint64[uint64], key...),
		mode:     s.mode,
		arena:    s.scratch,
		offsets:  container.NewMap[uint64, column](len(key)*2, container.HashUint64[uint64]),
		entities: container.NewVector[EntityID](s.cfg.InitialRows),
		index:    container.NewMap[EntityID, int](s.cfg.InitialCapacity, container.HashUint64[EntityID]),
		created:  container.NewVector[EntityID](0),
		deleted:  container.NewVector[EntityID](0),
		mutated:  container.NewSet[EntityID](0, container.HashUint64[EntityID]),
		dead:     container.NewVector[int](0),
	}

	if t.arena == nil {
		t.arena = arena.New()
	}

	// Sorted-hash order keeps the layout identical for identical keys.
	offset := 0
	for _, h := range key {
		c, ok := s.components.byHash(h)
		if !ok {
			panic("depot: table key holds an unregistered component")
		}
		t.offsets.Put(h, column{offset: offset, size: c.size})
		t.mask.Mark(c.bit)
		offset += c.size
	}
	t.width = offset
	t.rows = container.NewRows(t.width, s.cfg.InitialRows, t.arena)

	if t.mode == ModeStorage {
		t.sim = newSimulation(s.components, s.cfg, s.log)
	}
	return t
}

func (t *Table) ID() uint64 {
	return t.id
}

// Key returns a copy of the table's sorted component hashes.
func (t *Table) Key() Key {
	return slices.Clone(t.key)
}

func (t *Table) Mask() mask.Mask {
	return t.mask
}

func (t *Table) Mode() Mode {
	return t.mode
}

// Width is the byte size of one row.
func (t *Table) Width() int {
	return t.width
}

// Len is the number of rows, dead rows awaiting compaction included.
func (t *Table) Len() int {
	return t.rows.Len()
}

// Contains reports whether the table stores component c.
func (t *Table) Contains(c Component) bool {
	return t.keySet.Has(c.hash)
}

// Offset returns the byte offset of the component with the given hash inside a row.
func (t *Table) Offset(hash uint64) (int, bool) {
	col, ok := t.offsets.Find(hash)
	return col.offset, ok
}

// column locates one component inside a row.
type column struct {
	offset, size int
}

func (c column) slice(row []byte) []byte {
	return row[c.offset : c.offset+c.size : c.offset+c.size]
}

// Has reports whether e is indexed in this table.
func (t *Table) Has(e EntityID) bool {
	return t.index.Has(e)
}

// RowOf returns the row position of e.
func (t *Table) RowOf(e EntityID) (int, bool) {
	return t.index.Find(e)
}

// Entity returns the entity stored at row, or the zero handle for a dead row.
func (t *Table) Entity(row int) EntityID {
	return t.entities.At(row)
}

// Row returns the raw bytes of row.
func (t *Table) Row(row int) []byte {
	return t.rows.Row(row)
}

// Field returns the bytes of component c in row. It panics if the table lacks c.
func (t *Table) Field(row int, c Component) []byte {
	col, ok := t.offsets.Find(c.hash)
	if !ok {
		panic("depot: component " + c.name + " is not stored in this table")
	}
	return col.slice(t.rows.Row(row))
}

// Created returns the rows appended since the last commit.
func (t *Table) Created() []int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rowsFor(t.created.Values())
}

// Mutated returns the rows written through Set since the last commit, in ascending order.
func (t *Table) Mutated() []int {
	t.mu.Lock()
	defer t.mu.Unlock()
	rows := t.rowsFor(t.mutated.All())
	slices.Sort(rows)
	return rows
}

// PendingDeletes reports how many deletions are queued for the next commit.
func (t *Table) PendingDeletes() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.deleted.Len()
}

// DeadRows reports how many rows await compaction.
func (t *Table) DeadRows() int {
	return t.dead.Len()
}

func (t *Table) rowsFor(entities iter.Seq[EntityID]) []int {
	var rows []int
	for e := range entities {
		if row, ok := t.index.Find(e); ok {
			rows = append(rows, row)
		}
	}
	return rows
}

// appendRow adds a zeroed row for e and indexes it.
func (t *Table) appendRow(e EntityID) int {
	row := t.rows.Append()
	t.entities.Push(e)
	t.index.Put(e, row)
	t.mu.Lock()
	t.created.Push(e)
	t.mu.Unlock()
	return row
}

// release unindexes e and leaves its row dead until the next compaction.
func (t *Table) release(e EntityID, row int) {
	t.index.Remove(e)
	t.entities.Set(row, 0)
	t.dead.Push(row)
}

func (t *Table) queueDelete(e EntityID) {
	t.mu.Lock()
	t.deleted.Push(e)
	t.mu.Unlock()
}

func (t *Table) markMutated(e EntityID) {
	t.mu.Lock()
	t.mutated.Place(e)
	t.mu.Unlock()
}

// compact removes dead rows by moving the last row into each hole, highest hole first,
// and reindexes every entity that moved. It reports how many rows were removed.
func (t *Table) compact() int {
	n := t.dead.Len()
	if n == 0 {
		return 0
	}
	dead := t.dead.Slice()
	slices.Sort(dead)
	for i := n - 1; i >= 0; i-- {
		row := dead[i]
		moved := t.rows.SwapRemove(row)
		last := t.entities.Pop()
		if moved < 0 {
			continue
		}
		t.entities.Set(row, last)
		t.index.Put(last, row)
	}
	t.dead.Clear()
	return n
}

// drainDeletes unindexes every queued deletion and returns the entities removed.
func (t *Table) drainDeletes() []EntityID {
	t.mu.Lock()
	queued := slices.Clone(t.deleted.Slice())
	t.deleted.Clear()
	t.mu.Unlock()

	removed := queued[:0]
	for _, e := range queued {
		row, ok := t.index.Find(e)
		if !ok {
			continue
		}
		t.release(e, row)
		removed = append(removed, e)
	}
	return removed
}

func (t *Table) clearTickBuffers() {
	t.mu.Lock()
	t.created.Clear()
	t.mutated.Clear()
	t.mu.Unlock()
}

// reset drops every row and buffer.
func (t *Table) reset() {
	t.rows.Clear()
	t.entities.Clear()
	t.index.Clear()
	t.dead.Clear()
	t.mu.Lock()
	t.created.Clear()
	t.deleted.Clear()
	t.mutated.Clear()
	t.mu.Unlock()
}

// destroy hands the table's memory back as a unit.
func (t *Table) destroy() {
	t.reset()
	t.arena.Release()
}
