package depot

import (
	"github.com/TheBitDrifter/mask"
	"go.uber.org/zap"
)

var _ Scope = &Query{}

// SystemFunc is invoked once per tick for every table matching the system.
type SystemFunc func(q *Query) error

type system struct {
	name     string
	fn       SystemFunc
	required Key
	mask     mask.Mask
	tables   []*Table
}

func (s *system) matches(t *Table) bool {
	return t.mask.ContainsAll(s.mask)
}

// rebuildSchedule re-associates every system with the tables whose key covers its
// required components.
func (w *World) rebuildSchedule() {
	for sys := range w.systems.Values() {
		sys.tables = sys.tables[:0]
		for t := range w.order.Values() {
			if sys.matches(t) {
				sys.tables = append(sys.tables, t)
			}
		}
	}
	w.dirty = false
	w.log.Debug("schedule rebuilt",
		zap.Int("systems", w.systems.Len()),
		zap.Int("tables", w.order.Len()),
	)
}

// Query binds a system invocation to one matched table.
type Query struct {
	world  *World
	table  *Table
	system *system
}

// Table is the table this query walks.
func (q *Query) Table() *Table {
	return q.table
}

// Len is the number of rows in the table.
func (q *Query) Len() int {
	return q.table.Len()
}

// Tick is the number of the tick in progress.
func (q *Query) Tick() uint64 {
	return q.world.tick
}

// System is the name of the running system.
func (q *Query) System() string {
	return q.system.name
}

// Has reports whether e is stored in the matched table.
func (q *Query) Has(e EntityID) bool {
	return q.table.Has(e)
}

// CreateEntity reserves a handle now; the entity joins the world, without components,
// when the tick commits. Safe to call from ParallelEach workers.
func (q *Query) CreateEntity() EntityID {
	return q.world.enqueueCreate()
}

// Delete queues e for removal when the tick commits. Safe to call from ParallelEach
// workers.
func (q *Query) Delete(e EntityID) error {
	if q.table.Has(e) {
		q.table.queueDelete(e)
		return nil
	}
	return q.world.enqueueDelete(e)
}

// Sequential returns a cursor over every row of the table, starting at row 0.
func (q *Query) Sequential() *Cursor {
	return q.Vectorize().Cursor()
}

// Vectorize returns a view of the table's rows for bulk or parallel iteration.
func (q *Query) Vectorize() View {
	return View{
		table:   q.table,
		rows:    q.table.Len(),
		tick:    q.world.tick,
		workers: q.world.cfg.Workers,
	}
}
