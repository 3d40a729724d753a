package physics

import (
	"errors"
	"testing"
)

func TestWorldValidate(t *testing.T) {
	tests := []struct {
		name    string
		world   World
		wantErr bool
	}{
		{"default", DefaultWorld(), false},
		{"zero width", World{Gravity: 0.2, TickRate: 60, Width: 0, Height: 100}, true},
		{"negative height", World{Gravity: 0.2, TickRate: 60, Width: 100, Height: -1}, true},
		{"zero tick rate", World{Gravity: 0.2, TickRate: 0, Width: 100, Height: 100}, true},
		{"negative gravity", World{Gravity: -1, TickRate: 30, Width: 100, Height: 100}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.world.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidWorld) {
				t.Errorf("expected ErrInvalidWorld, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestWorldOvershoot(t *testing.T) {
	w := World{Width: 100, Height: 100, TickRate: 1}

	tests := []struct {
		box  Box
		want float64
	}{
		{Box{10, 20, 10, 20}, 0},
		{Box{-3, 7, 10, 20}, 3},
		{Box{90, 105, 10, 20}, 5},
		{Box{10, 20, -1, 9}, 1},
		{Box{10, 20, 95, 112}, 12},
		{Box{-2, 104, 10, 20}, 4},
	}

	for _, tt := range tests {
		if got := w.Overshoot(tt.box); got != tt.want {
			t.Errorf("Overshoot(%+v) = %v, want %v", tt.box, got, tt.want)
		}
	}
}

func TestBoxOverlaps(t *testing.T) {
	a := Box{0, 10, 0, 10}

	tests := []struct {
		name string
		b    Box
		want bool
	}{
		{"inside", Box{2, 4, 2, 4}, true},
		{"partial", Box{5, 15, 5, 15}, true},
		{"shared edge", Box{10, 20, 0, 10}, false},
		{"disjoint x", Box{11, 20, 0, 10}, false},
		{"disjoint y", Box{0, 10, 11, 20}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Overlaps(tt.b); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
			if got := tt.b.Overlaps(a); got != tt.want {
				t.Errorf("expected symmetric %v, got %v", tt.want, got)
			}
		})
	}
}
