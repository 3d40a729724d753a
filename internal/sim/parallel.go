package sim

import (
	"context"
	"sync"

	"github.com/san-kum/bounce/internal/physics"
)

// SceneFactory builds a fresh body set for one ensemble member.
type SceneFactory func(seed int64) ([]physics.Body, error)

// Ensemble runs independent scenes concurrently, one goroutine per run. Each
// run owns its bodies, so nothing is shared across goroutines.
type Ensemble struct {
	world     physics.World
	policy    Policy
	numRuns   int
	seedStart int64
	metrics   func() []Metric
}

func NewEnsemble(world physics.World, policy Policy, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{world: world, policy: policy, numRuns: numRuns, seedStart: seedStart}
}

// WithMetrics sets a constructor called once per run, since metrics are
// stateful.
func (e *Ensemble) WithMetrics(fn func() []Metric) *Ensemble {
	e.metrics = fn
	return e
}

func (e *Ensemble) Run(ctx context.Context, build SceneFactory, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			bodies, err := build(e.seedStart + int64(idx))
			if err != nil {
				errs[idx] = err
				return
			}

			sim := New(e.world, e.policy)
			if e.metrics != nil {
				for _, m := range e.metrics() {
					sim.AddMetric(m)
				}
			}

			results[idx], errs[idx] = sim.Run(ctx, bodies, cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
