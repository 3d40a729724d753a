package metrics

import (
	"math"

	"github.com/san-kum/bounce/internal/physics"
)

// kinetic sums ½|v|² over all bodies. Bodies have no mass, so unit mass is
// assumed.
func kinetic(bodies []physics.Snapshot) float64 {
	sum := 0.0
	for _, b := range bodies {
		sum += 0.5 * (b.Velocity.DX*b.Velocity.DX + b.Velocity.DY*b.Velocity.DY)
	}
	return sum
}

// KineticEnergy reports the mean total kinetic energy per tick.
type KineticEnergy struct {
	name    string
	total   float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(tick int, bodies []physics.Snapshot) {
	e.total += kinetic(bodies)
	e.samples++
}

func (e *KineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *KineticEnergy) Reset() {
	e.total = 0
	e.samples = 0
}

// EnergyLoss reports the fraction of the first observed kinetic energy that
// is gone by the last observation. Gravity feeds energy in, so the value can
// go negative.
type EnergyLoss struct {
	name    string
	initial float64
	current float64
	samples int
}

func NewEnergyLoss() *EnergyLoss {
	return &EnergyLoss{name: "energy_loss"}
}

func (e *EnergyLoss) Name() string { return e.name }

func (e *EnergyLoss) Observe(tick int, bodies []physics.Snapshot) {
	k := kinetic(bodies)
	if e.samples == 0 {
		e.initial = k
	}
	e.current = k
	e.samples++
}

func (e *EnergyLoss) Value() float64 {
	if e.initial == 0 {
		return 0
	}
	return (e.initial - e.current) / math.Abs(e.initial)
}

func (e *EnergyLoss) Reset() {
	e.initial = 0
	e.current = 0
	e.samples = 0
}

// Kinetic exposes the per-tick energy sum for renderers.
func Kinetic(bodies []physics.Snapshot) float64 {
	return kinetic(bodies)
}
