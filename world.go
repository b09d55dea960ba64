package depot

import (
	"fmt"
	"sync"

	"github.com/TheBitDrifter/depot/container"
	iter_util "github.com/TheBitDrifter/util/iter"
	"go.uber.org/zap"
)

var _ Storage = &World{}

// World owns every registry and drives the tick. Outside a tick it is safe for use by
// one goroutine at a time; inside a tick systems reach it only through their Query.
type World struct {
	space

	counter IDCounter
	systems *container.Vector[*system]
	dirty   bool
	tick    uint64

	locked    bool
	destroyed bool

	// sim previews transitions out of the empty table, which owns no simulation.
	sim *simulation

	pendingMu     sync.Mutex
	pendingCreate []EntityID
	pendingDelete []EntityID
}

type worldOptions struct {
	cfg Config
	log *zap.Logger
}

// WorldOption configures a World at construction.
type WorldOption func(*worldOptions)

// WithConfig replaces DefaultConfig.
func WithConfig(cfg Config) WorldOption {
	return func(o *worldOptions) {
		o.cfg = cfg
	}
}

// WithLogger sets the logger. Worlds log nothing by default.
func WithLogger(log *zap.Logger) WorldOption {
	return func(o *worldOptions) {
		o.log = log
	}
}

func newWorld(opts ...WorldOption) (*World, error) {
	o := worldOptions{cfg: DefaultConfig(), log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.cfg.Validate(); err != nil {
		return nil, err
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}

	components := newComponentRegistry(MaxComponents)
	w := &World{
		space:   newSpace(ModeStorage, components, o.cfg, o.log),
		systems: container.NewVector[*system](0),
		sim:     newSimulation(components, o.cfg, o.log),
	}
	w.onTableCreated = func(*Table) {
		w.dirty = true
	}
	return w, nil
}

// guard reports why the outside-tick API cannot run right now, if it cannot.
func (w *World) guard() error {
	if w.destroyed {
		return ErrWorldDestroyed
	}
	if w.locked {
		return LockedWorldError{}
	}
	return nil
}

// RegisterComponent adds a named component of size bytes. Its size never changes.
func (w *World) RegisterComponent(name string, size int) (Component, error) {
	if err := w.guard(); err != nil {
		return Component{}, err
	}
	c, err := w.components.register(name, size)
	if err != nil {
		return Component{}, fmt.Errorf("register component %q: %w", name, err)
	}
	return c, nil
}

// RegisterManifest registers every component of m in order, stopping at the first failure.
func (w *World) RegisterManifest(m Manifest) error {
	for _, cs := range m.Components {
		if _, err := w.RegisterComponent(cs.Name, cs.Size); err != nil {
			return err
		}
	}
	return nil
}

// Component looks up a registered component by name.
func (w *World) Component(name string) (Component, bool) {
	return w.components.lookup(name)
}

// RegisterSystem appends a system that runs once per tick against every table holding
// all of the required components. Systems run in registration order.
func (w *World) RegisterSystem(name string, fn SystemFunc, required string) error {
	if err := w.guard(); err != nil {
		return err
	}
	if fn == nil {
		return ErrNilSystem
	}
	comps, err := w.components.resolve(required)
	if err != nil {
		return fmt.Errorf("register system %q: %w", name, err)
	}
	sys := &system{name: name, fn: fn}
	hashes := make([]uint64, len(comps))
	for i, c := range comps {
		hashes[i] = c.hash
		sys.mask.Mark(c.bit)
	}
	sys.required = KeyOf(hashes...)
	w.systems.Push(sys)
	w.dirty = true
	return nil
}

// NewEntity creates an entity without components.
func (w *World) NewEntity() (EntityID, error) {
	if err := w.guard(); err != nil {
		return 0, err
	}
	e := w.counter.Increment()
	w.entities.Put(e, emptyTable.id)
	return e, nil
}

// MarkDelete queues e for removal at the end of the next tick.
func (w *World) MarkDelete(e EntityID) error {
	if w.destroyed {
		return ErrWorldDestroyed
	}
	return w.enqueueDelete(e)
}

// AddComponents moves e into the table holding its current components plus the listed
// ones. Shared component bytes are carried over; new ones start zeroed. Nothing changes
// if any listed component is unknown, repeated or already present.
func (w *World) AddComponents(e EntityID, components string) error {
	if err := w.guard(); err != nil {
		return err
	}
	src, ok := w.tableOf(e)
	if !ok {
		return InvalidEntityError{Entity: e}
	}
	add, err := w.delta(src, components, true)
	if err != nil {
		return err
	}
	w.transition(e, src.key.With(add))
	return nil
}

// RemoveComponents moves e into the table holding its current components minus the listed
// ones. Nothing changes if any listed component is unknown, repeated or absent.
func (w *World) RemoveComponents(e EntityID, components string) error {
	if err := w.guard(); err != nil {
		return err
	}
	src, ok := w.tableOf(e)
	if !ok {
		return InvalidEntityError{Entity: e}
	}
	drop, err := w.delta(src, components, false)
	if err != nil {
		return err
	}
	w.transition(e, src.key.Without(drop))
	return nil
}

// delta resolves a component list against src. Adding requires every component to be
// absent from src; removing requires every one to be present.
func (w *World) delta(src *Table, components string, adding bool) (Key, error) {
	comps, err := w.components.resolve(components)
	if err != nil {
		return nil, err
	}
	hashes := make([]uint64, len(comps))
	for i, c := range comps {
		present := src.Contains(c)
		if adding && present {
			return nil, ComponentExistsError{Name: c.name}
		}
		if !adding && !present {
			return nil, ComponentNotFoundError{Name: c.name}
		}
		hashes[i] = c.hash
	}
	return KeyOf(hashes...), nil
}

// Get returns the bytes of the named component on e. The slice aliases table memory and
// stays valid until e moves or the next tick commits.
func (w *World) Get(e EntityID, name string) ([]byte, error) {
	if err := w.guard(); err != nil {
		return nil, err
	}
	t, row, c, err := w.locate(e, name)
	if err != nil {
		return nil, err
	}
	return t.Field(row, c), nil
}

// Set overwrites the named component on e with value, which must match its size.
func (w *World) Set(e EntityID, name string, value []byte) error {
	if err := w.guard(); err != nil {
		return err
	}
	t, row, c, err := w.locate(e, name)
	if err != nil {
		return err
	}
	if len(value) != c.size {
		return SizeMismatchError{Name: name, Want: c.size, Got: len(value)}
	}
	copy(t.Field(row, c), value)
	t.markMutated(e)
	return nil
}

func (w *World) locate(e EntityID, name string) (*Table, int, Component, error) {
	t, ok := w.tableOf(e)
	if !ok {
		return nil, 0, Component{}, InvalidEntityError{Entity: e}
	}
	c, ok := w.components.lookup(name)
	if !ok {
		return nil, 0, Component{}, UnknownComponentError{Name: name}
	}
	if !t.Contains(c) {
		return nil, 0, Component{}, ComponentNotFoundError{Name: name}
	}
	row, _ := t.index.Find(e)
	return t, row, c, nil
}

// Has reports whether e is alive.
func (w *World) Has(e EntityID) bool {
	return w.entities.Has(e)
}

// TableOf returns the table e currently lives in. Entities without components live in a
// shared empty table with id 0.
func (w *World) TableOf(e EntityID) (*Table, bool) {
	return w.tableOf(e)
}

// Tables returns every table in creation order.
func (w *World) Tables() []*Table {
	return iter_util.Collect(w.order.Values())
}

// Tick is the number of completed ticks.
func (w *World) Tick() uint64 {
	return w.tick
}

// Len is the number of live entities.
func (w *World) Len() int {
	return w.entities.Len()
}

// Locked reports whether a tick is in progress.
func (w *World) Locked() bool {
	return w.locked
}

// Preview reports where e would land, and what its row would hold, if the listed
// components were added. The world is left untouched.
func (w *World) Preview(e EntityID, components string) (Preview, error) {
	if err := w.guard(); err != nil {
		return Preview{}, err
	}
	src, ok := w.tableOf(e)
	if !ok {
		return Preview{}, InvalidEntityError{Entity: e}
	}
	add, err := w.delta(src, components, true)
	if err != nil {
		return Preview{}, err
	}
	target := src.key.With(add)
	if src == emptyTable {
		return w.sim.preview(src, -1, target), nil
	}
	row, _ := src.index.Find(e)
	return src.sim.preview(src, row, target), nil
}

// Progress runs one tick: every system against each of its tables in registration order,
// then the commit of deferred creations and deletions. A failing system stops the
// remaining ones; the commit still happens and the error is returned.
func (w *World) Progress() error {
	if err := w.guard(); err != nil {
		return err
	}
	w.locked = true
	if w.dirty {
		w.rebuildSchedule()
	}
	// Rows left dead by migrations since the last commit.
	w.compact()

	var runErr error
	for sys := range w.systems.Values() {
		if runErr = w.run(sys); runErr != nil {
			break
		}
	}

	w.commit()
	w.locked = false
	w.tick++
	return runErr
}

func (w *World) run(sys *system) error {
	for _, t := range sys.tables {
		q := &Query{world: w, table: t, system: sys}
		if err := sys.fn(q); err != nil {
			return fmt.Errorf("system %s: %w", sys.name, err)
		}
	}
	return nil
}

// Destroy releases every table. Further calls fail with ErrWorldDestroyed.
func (w *World) Destroy() error {
	if err := w.guard(); err != nil {
		return err
	}
	tables := w.order.Len()
	for t := range w.order.Values() {
		if t.sim != nil {
			t.sim.destroy()
		}
		t.destroy()
	}
	w.sim.destroy()
	w.order.Clear()
	w.tables.Clear()
	w.entities.Clear()
	w.systems.Clear()
	w.destroyed = true
	w.log.Info("world destroyed",
		zap.Int("tables", tables),
		zap.Uint64("ticks", w.tick),
	)
	return nil
}
