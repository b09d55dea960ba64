package depot_test

import (
	"fmt"

	"github.com/TheBitDrifter/depot"
)

// Position is a simple component for 2D coordinates
type Position struct {
	X float64
	Y float64
}

// Velocity is a simple component for 2D movement
type Velocity struct {
	X float64
	Y float64
}

// Example shows entities moved by a parallel system
func Example_basic() {
	world, _ := depot.Factory.NewWorld()
	world.RegisterComponent("position", 16)
	world.RegisterComponent("velocity", 16)

	position, _ := depot.FactoryNewAccessor[Position](world, "position")
	velocity, _ := depot.FactoryNewAccessor[Velocity](world, "velocity")

	// Five still entities and three moving ones
	var mover depot.EntityID
	for i := 0; i < 8; i++ {
		e, _ := world.NewEntity()
		world.AddComponents(e, "position")
		if i >= 5 {
			world.AddComponents(e, "velocity")
			velocity.SetEntity(world, e, Velocity{X: 1, Y: 2})
			mover = e
		}
	}

	world.RegisterSystem("movement", func(q *depot.Query) error {
		return q.Vectorize().ParallelEach(func(c *depot.Cursor) error {
			pos, vel := position.Get(c), velocity.Get(c)
			position.Set(c, Position{X: pos.X + vel.X, Y: pos.Y + vel.Y})
			return nil
		})
	}, "velocity, position")

	for i := 0; i < 10; i++ {
		world.Progress()
	}

	for _, t := range world.Tables() {
		fmt.Printf("table with %d components holds %d entities\n", len(t.Key()), t.Len())
	}
	pos, _ := position.GetEntity(world, mover)
	fmt.Printf("mover at (%.0f, %.0f) after %d ticks\n", pos.X, pos.Y, world.Tick())

	// Output:
	// table with 1 components holds 5 entities
	// table with 2 components holds 3 entities
	// mover at (10, 20) after 10 ticks
}

// Example shows deferred structural changes inside a tick
func Example_deferred() {
	world, _ := depot.Factory.NewWorld()
	world.RegisterComponent("health", 4)

	for i := 0; i < 4; i++ {
		e, _ := world.NewEntity()
		world.AddComponents(e, "health")
	}

	world.RegisterSystem("reaper", func(q *depot.Query) error {
		for c := q.Sequential(); c.Next(); {
			if c.Position()%2 == 0 {
				q.Delete(c.Entity())
			}
		}
		fmt.Println("during tick:", world.Len())
		return nil
	}, "health")

	world.Progress()
	fmt.Println("after tick:", world.Len())

	// Output:
	// during tick: 4
	// after tick: 2
}
