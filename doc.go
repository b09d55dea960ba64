/*
Package depot provides an entity-component data engine with archetype tables and a
tick scheduler.

Entities carrying the same set of components share a table. Each table stores one
fixed-width byte row per entity, the components packed at offsets fixed when the table was
built. Adding or removing components moves an entity to the table for its new set,
carrying the shared bytes along. Systems registered on a World run once per tick against
every table holding their required components, either row by row or fanned out over up to
MaxWorkers goroutines.

Core Concepts:

  - Entity: A handle (EntityID) for one record. Handles are never reused.
  - Component: A named, fixed-size block of bytes.
  - Table: All entities sharing one exact component set (an archetype).
  - System: A function run every tick against the tables that match it.
  - Tick: One call to Progress. Creations and deletions requested by systems are
    applied when it commits.

Basic Usage:

	world, _ := depot.Factory.NewWorld()
	world.RegisterComponent("pos", 16)
	world.RegisterComponent("vel", 16)

	e, _ := world.NewEntity()
	world.AddComponents(e, "pos, vel")

	pos, _ := depot.FactoryNewAccessor[Vec2](world, "pos")
	vel, _ := depot.FactoryNewAccessor[Vec2](world, "vel")

	world.RegisterSystem("move", func(q *depot.Query) error {
		return q.Vectorize().ParallelEach(func(c *depot.Cursor) error {
			p, v := pos.Get(c), vel.Get(c)
			pos.Set(c, Vec2{p.X + v.X, p.Y + v.Y})
			return nil
		})
	}, "pos, vel")

	world.Progress()

Component lists are comma separated names; order and surrounding blanks do not matter.
*/
package depot
