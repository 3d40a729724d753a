package experiment

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/bounce/internal/config"
)

func TestExperimentRun(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Ticks = 44

	exp := New(cfg)
	if _, err := exp.Run(context.Background()); err == nil {
		t.Error("expected error before setup")
	}

	registry := NewRegistry()
	if err := exp.Setup(registry.DefaultMetrics(cfg.World)); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Frames) != 45 {
		t.Errorf("expected 45 frames, got %d", len(result.Frames))
	}
	if dx := exp.Bodies()[0].Velocity().DX; math.Abs(dx+4) > 1e-9 {
		t.Errorf("expected body 1 to bounce to dx -4, got %f", dx)
	}
	if result.Metrics["containment"] != 1 {
		t.Errorf("expected full containment, got %f", result.Metrics["containment"])
	}
}

func TestExperimentSetupInvalid(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.World.Height = 0

	if err := New(cfg).Setup(nil); err == nil {
		t.Error("expected setup error for invalid world")
	}
}

func TestExperimentEnsemble(t *testing.T) {
	cfg := config.GetPreset("rain")
	cfg.Ticks = 30

	results, err := New(cfg).Ensemble(context.Background(), 3, NewRegistry())
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, r := range results {
		if r.TicksTaken != 30 {
			t.Errorf("run %d: expected 30 ticks, got %d", i, r.TicksTaken)
		}
		if _, ok := r.Metrics["kinetic_energy"]; !ok {
			t.Errorf("run %d: missing kinetic_energy", i)
		}
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	cfg := config.DefaultConfig()

	if len(r.ListMetrics()) != 6 {
		t.Errorf("expected 6 metrics, got %v", r.ListMetrics())
	}

	ms, err := r.Metrics([]string{"peak_speed", "containment"}, cfg.World)
	if err != nil {
		t.Fatalf("metrics failed: %v", err)
	}
	if len(ms) != 2 || ms[0].Name() != "peak_speed" {
		t.Errorf("expected [peak_speed containment], got %d metrics", len(ms))
	}

	if _, err := r.GetMetric("jerk", cfg.World); err == nil {
		t.Error("expected error for unknown metric")
	}

	defaults, err := r.Metrics(nil, cfg.World)
	if err != nil || len(defaults) != 6 {
		t.Errorf("expected 6 default metrics, got %d (%v)", len(defaults), err)
	}
}
