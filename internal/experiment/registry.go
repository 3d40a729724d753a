package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/bounce/internal/metrics"
	"github.com/san-kum/bounce/internal/physics"
	"github.com/san-kum/bounce/internal/sim"
)

type Registry struct {
	metrics map[string]func(physics.World) sim.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]func(physics.World) sim.Metric),
	}

	r.metrics["kinetic_energy"] = func(physics.World) sim.Metric { return metrics.NewKineticEnergy() }
	r.metrics["energy_loss"] = func(physics.World) sim.Metric { return metrics.NewEnergyLoss() }
	r.metrics["mean_speed"] = func(physics.World) sim.Metric { return metrics.NewMeanSpeed() }
	r.metrics["peak_speed"] = func(physics.World) sim.Metric { return metrics.NewPeakSpeed() }
	r.metrics["containment"] = func(w physics.World) sim.Metric { return metrics.NewContainment(w) }
	r.metrics["max_overshoot"] = func(w physics.World) sim.Metric { return metrics.NewOvershoot(w) }

	return r
}

func (r *Registry) GetMetric(name string, world physics.World) (sim.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(world), nil
}

// Metrics resolves names in order; an empty list means DefaultMetrics.
func (r *Registry) Metrics(names []string, world physics.World) ([]sim.Metric, error) {
	if len(names) == 0 {
		return r.DefaultMetrics(world), nil
	}
	out := make([]sim.Metric, 0, len(names))
	for _, name := range names {
		m, err := r.GetMetric(name, world)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *Registry) DefaultMetrics(world physics.World) []sim.Metric {
	return metrics.Default(world)
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
