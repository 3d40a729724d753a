package optim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/bounce/internal/config"
	"github.com/san-kum/bounce/internal/experiment"
	"github.com/san-kum/bounce/internal/physics"
)

func shortPair() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Ticks = 10
	return cfg
}

func TestGridSearch_Minimize(t *testing.T) {
	g := NewGridSearch([]string{"gravity", "elasticity"}, [][]float64{{0, 0.5}, {0.5, 1.0}})
	build := SceneBuilder(shortPair(), experiment.NewRegistry(), []string{"peak_speed"})

	best, all, err := g.Search(context.Background(), build, "peak_speed")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("expected 4 points, got %d", len(all))
	}
	if best.Params["gravity"] != 0 {
		t.Errorf("expected gravity 0 to win, got %v", best.Params["gravity"])
	}
	if best.Value != 5 {
		t.Errorf("expected peak speed 5, got %v", best.Value)
	}
}

func TestGridSearch_Maximize(t *testing.T) {
	g := NewGridSearch([]string{"gravity"}, [][]float64{{0, 0.5}}).Maximize()
	build := SceneBuilder(shortPair(), experiment.NewRegistry(), []string{"peak_speed"})

	best, _, err := g.Search(context.Background(), build, "peak_speed")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if best.Params["gravity"] != 0.5 {
		t.Errorf("expected gravity 0.5 to win, got %v", best.Params["gravity"])
	}
	if best.Value <= 5 {
		t.Errorf("expected peak speed above 5, got %v", best.Value)
	}
}

func TestGridSearch_Errors(t *testing.T) {
	build := SceneBuilder(shortPair(), experiment.NewRegistry(), []string{"peak_speed"})

	if _, _, err := NewGridSearch([]string{"gravity"}, nil).Search(context.Background(), build, "peak_speed"); err == nil {
		t.Error("expected error for mismatched ranges")
	}
	if _, _, err := NewGridSearch([]string{"gravity"}, [][]float64{{0}}).Search(context.Background(), build, "containment"); err == nil {
		t.Error("expected error for unrecorded metric")
	}
	if _, _, err := NewGridSearch([]string{"mass"}, [][]float64{{1}}).Search(context.Background(), build, "peak_speed"); err == nil {
		t.Error("expected error for unknown parameter")
	}
}

func TestApplyParams(t *testing.T) {
	base := shortPair()

	cfg, err := ApplyParams(base, map[string]float64{"gravity": 1, "elasticity": 0.3, "radius": 10})
	if err != nil {
		t.Fatalf("ApplyParams: %v", err)
	}
	if cfg.World.Gravity != 1 {
		t.Errorf("expected gravity 1, got %v", cfg.World.Gravity)
	}
	for _, b := range cfg.Bodies {
		if b.Elasticity != 0.3 || b.Radius != 10 {
			t.Errorf("expected elasticity 0.3 radius 10, got %v %v", b.Elasticity, b.Radius)
		}
	}
	if base.World.Gravity != config.DefaultGravity || base.Bodies[0].Radius != config.DefaultRadius {
		t.Error("expected base config to stay untouched")
	}

	if _, err := ApplyParams(base, map[string]float64{"radius": -1}); !errors.Is(err, physics.ErrInvalidBody) {
		t.Errorf("expected ErrInvalidBody, got %v", err)
	}
}

func TestApplyParams_Speed(t *testing.T) {
	base := shortPair()
	base.Bodies = append(base.Bodies,
		config.BodyConfig{ID: 3, Radius: 10, X: 500, Y: 200, DX: 3, DY: 4, Elasticity: 1},
		config.BodyConfig{ID: 4, Radius: 10, X: 500, Y: 800, Elasticity: 1},
	)

	cfg, err := ApplyParams(base, map[string]float64{"speed": 10})
	if err != nil {
		t.Fatalf("ApplyParams: %v", err)
	}

	tests := []struct {
		id     int
		dx, dy float64
	}{
		{1, 10, 0},
		{2, -10, 0},
		{3, 6, 8},
		{4, 0, 0},
	}
	for _, tt := range tests {
		b := cfg.Bodies[tt.id-1]
		if math.Abs(b.DX-tt.dx) > 1e-9 || math.Abs(b.DY-tt.dy) > 1e-9 {
			t.Errorf("body %d: expected (%v, %v), got (%v, %v)", tt.id, tt.dx, tt.dy, b.DX, b.DY)
		}
	}
	if cfg.Random.SpeedMax != 10 {
		t.Errorf("expected random speed max 10, got %v", cfg.Random.SpeedMax)
	}
	if base.Bodies[0].DX != 5 {
		t.Error("expected base config to stay untouched")
	}
}

func TestGridSearch_Speed(t *testing.T) {
	g := NewGridSearch([]string{"speed"}, [][]float64{{1, 5, 50}})
	build := SceneBuilder(shortPair(), experiment.NewRegistry(), []string{"mean_speed"})

	best, all, err := g.Search(context.Background(), build, "mean_speed")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 points, got %d", len(all))
	}
	if best.Params["speed"] != 1 {
		t.Errorf("expected speed 1 to win, got %v", best.Params["speed"])
	}
	seen := make(map[float64]bool)
	for _, p := range all {
		if seen[p.Value] {
			t.Errorf("expected distinct mean speeds, got %v twice", p.Value)
		}
		seen[p.Value] = true
	}
}
