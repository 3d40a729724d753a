package metrics

import (
	"github.com/san-kum/bounce/internal/physics"
	"github.com/san-kum/bounce/internal/sim"
)

// Default returns a fresh set of the metrics every run records.
func Default(world physics.World) []sim.Metric {
	return []sim.Metric{
		NewKineticEnergy(),
		NewEnergyLoss(),
		NewMeanSpeed(),
		NewPeakSpeed(),
		NewContainment(world),
		NewOvershoot(world),
	}
}
