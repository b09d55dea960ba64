package main

import (
	"fmt"
	"os"
	"time"

	"github.com/TheBitDrifter/depot"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type vec2 struct {
	X, Y float64
}

var defaultManifest = depot.Manifest{
	Components: []depot.ComponentSpec{
		{Name: "position", Size: 16},
		{Name: "velocity", Size: 16},
		{Name: "lifetime", Size: 4},
	},
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "depot",
		Short:        "Drive a depot world from the command line",
		SilenceUsage: true,
	}
	root.AddCommand(newRunCmd())
	return root
}

type runOptions struct {
	config   string
	manifest string
	ticks    int
	entities int
	profile  string
}

func newRunCmd() *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:     "run",
		Short:   "Populate a world and advance it a number of ticks",
		Example: "depot run --config depot.toml --manifest components.yaml --ticks 100 --entities 10000",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}
	cmd.Flags().StringVar(&opts.config, "config", "", "TOML config file")
	cmd.Flags().StringVar(&opts.manifest, "manifest", "", "YAML component manifest (must declare position, velocity and lifetime)")
	cmd.Flags().IntVar(&opts.ticks, "ticks", 100, "ticks to run")
	cmd.Flags().IntVar(&opts.entities, "entities", 10000, "entities to spawn before the first tick")
	cmd.Flags().StringVar(&opts.profile, "profile", "", "write a cpu or mem profile to the working directory")
	return cmd
}

func run(opts runOptions) error {
	switch opts.profile {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown profile %q, want cpu or mem", opts.profile)
	}

	cfg := depot.DefaultConfig()
	if opts.config != "" {
		loaded, err := depot.LoadConfig(opts.config)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	log, err := depot.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync()

	manifest := defaultManifest
	if opts.manifest != "" {
		if manifest, err = depot.LoadManifest(opts.manifest); err != nil {
			return err
		}
	}

	world, err := depot.Factory.NewWorld(depot.WithConfig(cfg), depot.WithLogger(log))
	if err != nil {
		return err
	}
	defer world.Destroy()
	if err := world.RegisterManifest(manifest); err != nil {
		return err
	}

	sim, err := newSimulation(world)
	if err != nil {
		return err
	}
	if err := sim.spawn(opts.entities); err != nil {
		return err
	}

	start := time.Now()
	for range opts.ticks {
		if err := world.Progress(); err != nil {
			return fmt.Errorf("tick %d: %w", world.Tick(), err)
		}
		if err := sim.respawn(); err != nil {
			return err
		}
	}
	elapsed := time.Since(start)

	log.Info("run finished",
		zap.Uint64("ticks", world.Tick()),
		zap.Int("entities", world.Len()),
		zap.Int("tables", len(world.Tables())),
		zap.Int("workers", cfg.Workers),
		zap.Duration("elapsed", elapsed),
	)
	return nil
}

// simulation moves particles and retires them when their lifetime runs out. Retired
// particles come back as bare entities, which respawn gives components again.
type simulation struct {
	world    *depot.World
	position depot.Accessor[vec2]
	velocity depot.Accessor[vec2]
	lifetime depot.Accessor[int32]
	bare     []depot.EntityID
}

func newSimulation(w *depot.World) (*simulation, error) {
	s := &simulation{world: w}
	var err error
	if s.position, err = depot.FactoryNewAccessor[vec2](w, "position"); err != nil {
		return nil, err
	}
	if s.velocity, err = depot.FactoryNewAccessor[vec2](w, "velocity"); err != nil {
		return nil, err
	}
	if s.lifetime, err = depot.FactoryNewAccessor[int32](w, "lifetime"); err != nil {
		return nil, err
	}

	if err := w.RegisterSystem("movement", s.move, "position, velocity"); err != nil {
		return nil, err
	}
	if err := w.RegisterSystem("aging", s.age, "lifetime"); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *simulation) spawn(n int) error {
	for i := range n {
		e, err := s.world.NewEntity()
		if err != nil {
			return err
		}
		if err := s.give(e, i); err != nil {
			return err
		}
	}
	return nil
}

func (s *simulation) give(e depot.EntityID, seed int) error {
	if err := s.world.AddComponents(e, "position, velocity, lifetime"); err != nil {
		return err
	}
	if err := s.velocity.SetEntity(s.world, e, vec2{X: float64(seed%7 - 3), Y: float64(seed%5 - 2)}); err != nil {
		return err
	}
	return s.lifetime.SetEntity(s.world, e, int32(10+seed%50))
}

func (s *simulation) respawn() error {
	for i, e := range s.bare {
		if err := s.give(e, i); err != nil {
			return err
		}
	}
	s.bare = s.bare[:0]
	return nil
}

func (s *simulation) move(q *depot.Query) error {
	return q.Vectorize().ParallelEach(func(c *depot.Cursor) error {
		p, v := s.position.Get(c), s.velocity.Get(c)
		s.position.Set(c, vec2{X: p.X + v.X, Y: p.Y + v.Y})
		return nil
	})
}

func (s *simulation) age(q *depot.Query) error {
	for c := q.Sequential(); c.Next(); {
		left := s.lifetime.Get(c) - 1
		s.lifetime.Set(c, left)
		if left > 0 {
			continue
		}
		if err := q.Delete(c.Entity()); err != nil {
			return err
		}
		s.bare = append(s.bare, q.CreateEntity())
	}
	return nil
}
