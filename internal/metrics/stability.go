package metrics

import "github.com/san-kum/bounce/internal/physics"

// Containment reports the fraction of ticks on which every body ended inside
// the arena.
type Containment struct {
	name       string
	world      physics.World
	violations int
	samples    int
}

func NewContainment(world physics.World) *Containment {
	return &Containment{
		name:  "containment",
		world: world,
	}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(tick int, bodies []physics.Snapshot) {
	c.samples++
	for _, b := range bodies {
		if c.world.Overshoot(b.Bounds()) > 0 {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}

// Overshoot reports the furthest any body edge ended past a wall.
type Overshoot struct {
	name  string
	world physics.World
	max   float64
}

func NewOvershoot(world physics.World) *Overshoot {
	return &Overshoot{name: "max_overshoot", world: world}
}

func (o *Overshoot) Name() string { return o.name }

func (o *Overshoot) Observe(tick int, bodies []physics.Snapshot) {
	for _, b := range bodies {
		if d := o.world.Overshoot(b.Bounds()); d > o.max {
			o.max = d
		}
	}
}

func (o *Overshoot) Value() float64 { return o.max }

func (o *Overshoot) Reset() { o.max = 0 }
