package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/bounce/internal/config"
	"github.com/san-kum/bounce/internal/physics"
	"github.com/san-kum/bounce/internal/sim"
)

// Experiment turns a scene config into a simulator and its bodies.
type Experiment struct {
	cfg       *config.Config
	simulator *sim.Simulator
	bodies    []physics.Body
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Setup(metrics []sim.Metric) error {
	bodies, err := e.cfg.Build(e.cfg.Seed)
	if err != nil {
		return err
	}

	e.bodies = bodies
	e.simulator = sim.New(e.cfg.World, e.cfg.SimPolicy())
	for _, m := range metrics {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, e.bodies, e.cfg.SimConfig())
}

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}

func (e *Experiment) Bodies() []physics.Body {
	return e.bodies
}

// Ensemble runs the same scene under numRuns consecutive seeds.
func (e *Experiment) Ensemble(ctx context.Context, numRuns int, registry *Registry) ([]*sim.Result, error) {
	ens := sim.NewEnsemble(e.cfg.World, e.cfg.SimPolicy(), numRuns, e.cfg.Seed)
	if registry != nil {
		ens = ens.WithMetrics(func() []sim.Metric { return registry.DefaultMetrics(e.cfg.World) })
	}
	return ens.Run(ctx, e.cfg.Build, e.cfg.SimConfig())
}
