package depot

import (
	"github.com/TheBitDrifter/depot/arena"
	"github.com/TheBitDrifter/depot/container"
	"go.uber.org/zap"
)

// space is a set of tables plus the registry saying which table each entity lives in.
// A World owns the storage space; every storage table owns a simulation with a cached one.
type space struct {
	mode       Mode
	components *componentRegistry
	tables     *container.Map[uint64, *Table]
	order      *container.Vector[*Table]
	entities   *container.Map[EntityID, uint64]
	cfg        Config
	log        *zap.Logger

	// scratch, when set, backs the rows of every table in the space instead of an arena
	// per table.
	scratch *arena.Arena

	onTableCreated func(*Table)
}

func newSpace(mode Mode, components *componentRegistry, cfg Config, log *zap.Logger) space {
	return space{
		mode:       mode,
		components: components,
		tables:     container.NewMap[uint64, *Table](cfg.InitialCapacity, container.HashUint64[uint64]),
		order:      container.NewVector[*Table](0),
		entities:   container.NewMap[EntityID, uint64](cfg.InitialCapacity, container.HashUint64[EntityID]),
		cfg:        cfg,
		log:        log,
	}
}

// tableOf returns the table e is indexed in.
func (s *space) tableOf(e EntityID) (*Table, bool) {
	id, ok := s.entities.Find(e)
	if !ok {
		return nil, false
	}
	if id == 0 {
		return emptyTable, true
	}
	t, ok := s.tables.Find(id)
	return t, ok
}

// tableFor returns the table for key, building it on first use.
func (s *space) tableFor(key Key) *Table {
	id := key.ID()
	if id == 0 {
		return emptyTable
	}
	if t, ok := s.tables.Find(id); ok {
		if !t.key.Equal(key) {
			panic("depot: table id collision")
		}
		return t
	}
	t := newTable(s, key)
	s.tables.Put(id, t)
	s.order.Push(t)
	s.log.Debug("table created",
		zap.Uint64("table", id),
		zap.Int("components", len(key)),
		zap.Int("width", t.width),
		zap.Stringer("mode", s.mode),
	)
	if s.onTableCreated != nil {
		s.onTableCreated(t)
	}
	return t
}

// transition moves e from its current table into the table for target, copying every
// component both tables share. The source row is left dead for the next compaction so
// row positions handed out earlier in the tick stay valid. Callers validate e and target.
func (s *space) transition(e EntityID, target Key) *Table {
	src, ok := s.tableOf(e)
	if !ok {
		panic("depot: transition of an unindexed entity")
	}
	dst := s.tableFor(target)
	if dst == src {
		return dst
	}

	srcRow := -1
	if src != emptyTable {
		srcRow, _ = src.index.Find(e)
	}

	if dst != emptyTable {
		dstRow := dst.appendRow(e)
		if src != emptyTable {
			s.copyShared(src, srcRow, dst, dstRow)
		}
	}
	if src != emptyTable {
		src.release(e, srcRow)
	}
	s.entities.Put(e, dst.id)
	return dst
}

// copyShared copies the components src and dst have in common from one row to the other.
func (s *space) copyShared(src *Table, srcRow int, dst *Table, dstRow int) {
	from := src.rows.Row(srcRow)
	to := dst.rows.Row(dstRow)
	for h := range src.keySet.Intersect(dst.keySet).All() {
		c, _ := s.components.byHash(h)
		so, _ := src.offsets.Find(h)
		do, _ := dst.offsets.Find(h)
		copy(to[do.offset:do.offset+c.size], from[so.offset:so.offset+c.size])
	}
}

// compact removes dead rows from every table.
func (s *space) compact() int {
	removed := 0
	for t := range s.order.Values() {
		removed += t.compact()
	}
	return removed
}
