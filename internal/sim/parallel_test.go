package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/bounce/internal/physics"
)

func TestEnsembleRun(t *testing.T) {
	ens := NewEnsemble(testWorld(), PolicySnapshot, 4, 10).
		WithMetrics(func() []Metric { return []Metric{&countMetric{}} })

	seeds := make(chan int64, 4)
	build := func(seed int64) ([]physics.Body, error) {
		seeds <- seed
		return []physics.Body{
			physics.NewCircle(1, 10, physics.Vec2{X: float64(100 + seed), Y: 500}, physics.Velocity{DX: 1}, 0.9, ""),
		}, nil
	}

	results, err := ens.Run(context.Background(), build, Config{Ticks: 20})
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	close(seeds)

	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Metrics["count"] != 20 {
			t.Errorf("run %d: expected 20 observations, got %f", i, r.Metrics["count"])
		}
		want := float64(100+10+int64(i)) + 20
		if got := r.Frames[len(r.Frames)-1].Bodies[0].Center.X; got != want {
			t.Errorf("run %d: expected x %f, got %f", i, want, got)
		}
	}

	seen := map[int64]bool{}
	for s := range seeds {
		seen[s] = true
	}
	for s := int64(10); s < 14; s++ {
		if !seen[s] {
			t.Errorf("seed %d never built", s)
		}
	}
}

func TestEnsembleBuildError(t *testing.T) {
	boom := errors.New("boom")
	ens := NewEnsemble(testWorld(), PolicySnapshot, 3, 0)

	_, err := ens.Run(context.Background(), func(seed int64) ([]physics.Body, error) {
		if seed == 1 {
			return nil, boom
		}
		return nil, nil
	}, Config{Ticks: 1})
	if !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}
