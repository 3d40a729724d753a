package physics

import "fmt"

// World is the fixed configuration of a run.
type World struct {
	// Gravity is subtracted from the vertical velocity every tick.
	Gravity float64 `yaml:"gravity" json:"gravity"`
	// TickRate is advisory; only the host scheduler reads it.
	TickRate int     `yaml:"tick_rate" json:"tick_rate"`
	Width    float64 `yaml:"width" json:"width"`
	Height   float64 `yaml:"height" json:"height"`
}

func DefaultWorld() World {
	return World{
		Gravity:  0.2,
		TickRate: 60,
		Width:    1000,
		Height:   1000,
	}
}

// Validate rejects arenas the kinematics cannot make sense of. The core never
// calls it; hosts should before the first tick.
func (w World) Validate() error {
	if w.Width <= 0 || w.Height <= 0 {
		return fmt.Errorf("%w: arena must be positive, got %gx%g", ErrInvalidWorld, w.Width, w.Height)
	}
	if w.TickRate <= 0 {
		return fmt.Errorf("%w: tick rate must be positive, got %d", ErrInvalidWorld, w.TickRate)
	}
	return nil
}

// Overshoot returns how far box b extends past the arena on its worst side, or
// zero when it is fully inside.
func (w World) Overshoot(b Box) float64 {
	over := 0.0
	for _, d := range []float64{-b.Left, b.Right - w.Width, -b.Bottom, b.Top - w.Height} {
		if d > over {
			over = d
		}
	}
	return over
}
