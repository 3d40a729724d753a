package analysis

import (
	"fmt"

	"github.com/san-kum/bounce/internal/physics"
	"github.com/san-kum/bounce/internal/sim"
)

var fields = map[string]func(physics.Snapshot) float64{
	"x":     func(s physics.Snapshot) float64 { return s.Center.X },
	"y":     func(s physics.Snapshot) float64 { return s.Center.Y },
	"dx":    func(s physics.Snapshot) float64 { return s.Velocity.DX },
	"dy":    func(s physics.Snapshot) float64 { return s.Velocity.DY },
	"speed": func(s physics.Snapshot) float64 { return s.Velocity.Speed() },
}

// Series extracts one field of body id across frames, with the tick of each
// sample. Frames where the body is absent are skipped.
func Series(frames []sim.Frame, id physics.ID, field string) ([]int, []float64, error) {
	get, ok := fields[field]
	if !ok {
		return nil, nil, fmt.Errorf("unknown field: %s (available: x, y, dx, dy, speed)", field)
	}

	ticks := make([]int, 0, len(frames))
	values := make([]float64, 0, len(frames))
	for _, f := range frames {
		for _, b := range f.Bodies {
			if b.ID == id {
				ticks = append(ticks, f.Tick)
				values = append(values, get(b))
				break
			}
		}
	}
	if len(values) == 0 {
		return nil, nil, fmt.Errorf("body %d not found", id)
	}
	return ticks, values, nil
}

// Rebounds returns the sample indexes where a falling body starts rising.
func Rebounds(dy []float64) []int {
	var out []int
	for i := 1; i < len(dy); i++ {
		if dy[i-1] < 0 && dy[i] > 0 {
			out = append(out, i)
		}
	}
	return out
}
