package config

import (
	"math"
	"math/rand"

	"github.com/san-kum/bounce/internal/physics"
)

// Palette is cycled through for random bodies.
var Palette = []string{
	"#ff6b6b", "#feca57", "#48dbfb", "#1dd1a1",
	"#5f27cd", "#ff9ff3", "#54a0ff", "#c8d6e5",
}

// Build creates the scene's bodies: explicit bodies first, in file order,
// then the random ones drawn from seed. The same config and seed always
// produce the same scene.
func (c *Config) Build(seed int64) ([]physics.Body, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	bodies := make([]physics.Body, 0, len(c.Bodies)+c.Random.Count)
	nextID := 0
	for _, b := range c.Bodies {
		body, err := physics.NewCheckedCircle(
			physics.ID(b.ID),
			b.Radius,
			physics.Vec2{X: b.X, Y: b.Y},
			physics.Velocity{DX: b.DX, DY: b.DY},
			b.Elasticity,
			b.Color,
		)
		if err != nil {
			return nil, err
		}
		bodies = append(bodies, body)
		if b.ID > nextID {
			nextID = b.ID
		}
	}

	rnd := rand.New(rand.NewSource(seed))
	r := c.Random
	for i := 0; i < r.Count; i++ {
		nextID++
		radius := r.RadiusMin + rnd.Float64()*(r.RadiusMax-r.RadiusMin)
		pos := physics.Vec2{
			X: radius + rnd.Float64()*(c.World.Width-2*radius),
			Y: radius + rnd.Float64()*(c.World.Height-2*radius),
		}
		angle := rnd.Float64() * 2 * math.Pi
		speed := rnd.Float64() * r.SpeedMax
		vel := physics.Velocity{DX: speed * math.Cos(angle), DY: speed * math.Sin(angle)}
		color := Palette[i%len(Palette)]

		bodies = append(bodies, physics.NewCircle(physics.ID(nextID), radius, pos, vel, r.Elasticity, color))
	}

	return bodies, nil
}
