package depot

import (
	"bytes"

	"github.com/TheBitDrifter/depot/arena"
	"go.uber.org/zap"
)

// simulation runs dry-run transitions against cached tables. It shares the parent's
// component registry and never owns a simulation of its own: cached tables stop the
// recursion. Cached rows live in one scratch arena rewound after every preview.
type simulation struct {
	space
	ids IDCounter
}

func newSimulation(components *componentRegistry, cfg Config, log *zap.Logger) *simulation {
	cfg.InitialRows = 1
	cfg.InitialCapacity = 0
	sim := &simulation{space: newSpace(ModeCached, components, cfg, log)}
	sim.scratch = arena.New()
	sim.ids.SetMode(ModeCached)
	return sim
}

// Preview is the outcome of a dry-run transition.
type Preview struct {
	key   Key
	id    uint64
	table *Table
	row   []byte
}

// Key is the sorted key of the table the entity would land in.
func (p Preview) Key() Key {
	return p.key
}

// TableID is the id of the table the entity would land in.
func (p Preview) TableID() uint64 {
	return p.id
}

// Width is the row width of the target table.
func (p Preview) Width() int {
	return len(p.row)
}

// Row is a copy of the row the entity would occupy after the transition.
func (p Preview) Row() []byte {
	return p.row
}

// Field returns the bytes c would hold after the transition.
func (p Preview) Field(c Component) ([]byte, bool) {
	if p.table == nil {
		return nil, false
	}
	col, ok := p.table.offsets.Find(c.hash)
	if !ok {
		return nil, false
	}
	return col.slice(p.row), true
}

// preview replays the transition of the entity stored at srcRow of src into a cached copy
// of the tables and reports the result. The parent space is only read.
func (s *simulation) preview(src *Table, srcRow int, target Key) Preview {
	frame := s.scratch.Begin()
	defer func() {
		s.reset()
		frame.End()
	}()

	cached := s.ids.Increment()
	if src == emptyTable {
		s.entities.Put(cached, 0)
	} else {
		ct := s.tableFor(src.key)
		row := ct.appendRow(cached)
		copy(ct.rows.Row(row), src.rows.Row(srcRow))
		s.entities.Put(cached, ct.id)
	}

	dst := s.transition(cached, target)
	p := Preview{key: target, id: dst.id}
	if dst != emptyTable {
		row, _ := dst.index.Find(cached)
		p.table = dst
		p.row = bytes.Clone(dst.rows.Row(row))
	}
	return p
}

// reset empties every cached table and drops its row buffer, which points into the
// scratch frame about to be rewound.
func (s *simulation) reset() {
	for t := range s.order.Values() {
		t.reset()
		t.rows.Release()
	}
	s.entities.Clear()
}

func (s *simulation) destroy() {
	for t := range s.order.Values() {
		t.destroy()
	}
	s.order.Clear()
	s.tables.Clear()
	s.entities.Clear()
}
