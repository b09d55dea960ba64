package bench

import (
	"testing"

	"github.com/TheBitDrifter/depot"
)

const (
	nPos    = 9000
	nPosVel = 1000
)

type Position struct {
	X float64
	Y float64
}

type Velocity struct {
	X float64
	Y float64
}

func newWorld(b *testing.B, workers int) (*depot.World, depot.Accessor[Position], depot.Accessor[Velocity]) {
	cfg := depot.DefaultConfig()
	cfg.Workers = workers
	cfg.InitialRows = 1024
	world, err := depot.Factory.NewWorld(depot.WithConfig(cfg))
	if err != nil {
		b.Fatal(err)
	}
	world.RegisterComponent("position", 16)
	world.RegisterComponent("velocity", 16)
	position, _ := depot.FactoryNewAccessor[Position](world, "position")
	velocity, _ := depot.FactoryNewAccessor[Velocity](world, "velocity")

	for i := 0; i < nPos+nPosVel; i++ {
		e, _ := world.NewEntity()
		if i < nPosVel {
			world.AddComponents(e, "position, velocity")
		} else {
			world.AddComponents(e, "position")
		}
	}
	world.Progress()
	return world, position, velocity
}

func BenchmarkIterDepotSequential(b *testing.B) {
	b.StopTimer()
	world, position, velocity := newWorld(b, 1)
	world.RegisterSystem("move", func(q *depot.Query) error {
		for c := q.Sequential(); c.Next(); {
			pos, vel := position.Get(c), velocity.Get(c)
			position.Set(c, Position{pos.X + vel.X, pos.Y + vel.Y})
		}
		return nil
	}, "position, velocity")
	b.StartTimer()

	for i := 0; i < b.N; i++ {
		world.Progress()
	}
}

func BenchmarkIterDepotParallel(b *testing.B) {
	b.StopTimer()
	world, position, velocity := newWorld(b, depot.MaxWorkers)
	world.RegisterSystem("move", func(q *depot.Query) error {
		return q.Vectorize().ParallelEach(func(c *depot.Cursor) error {
			pos, vel := position.Get(c), velocity.Get(c)
			position.Set(c, Position{pos.X + vel.X, pos.Y + vel.Y})
			return nil
		})
	}, "position, velocity")
	b.StartTimer()

	for i := 0; i < b.N; i++ {
		world.Progress()
	}
}

func BenchmarkAddRemoveDepot(b *testing.B) {
	b.StopTimer()
	world, _, _ := newWorld(b, 1)
	var entities []depot.EntityID
	for _, t := range world.Tables() {
		if len(t.Key()) != 1 {
			continue
		}
		for row := 0; row < t.Len() && len(entities) < nPosVel; row++ {
			entities = append(entities, t.Entity(row))
		}
	}
	b.StartTimer()

	for i := 0; i < b.N; i++ {
		for _, e := range entities {
			world.AddComponents(e, "velocity")
		}
		for _, e := range entities {
			world.RemoveComponents(e, "velocity")
		}
		world.Progress()
	}
}
