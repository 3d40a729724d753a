package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/bounce/internal/physics"
)

func TestCanvas_SetAndIsSet(t *testing.T) {
	c := NewCanvas(10, 5)
	if c.PixelWidth() != 20 || c.PixelHeight() != 20 {
		t.Fatalf("expected 20x20 sub-pixels, got %dx%d", c.PixelWidth(), c.PixelHeight())
	}

	c.Set(3, 5)
	if !c.IsSet(3, 5) {
		t.Error("expected (3,5) to be set")
	}
	if c.IsSet(2, 5) {
		t.Error("expected (2,5) to be clear")
	}

	c.Set(-1, 0)
	c.Set(100, 100)
	if c.IsSet(-1, 0) || c.IsSet(100, 100) {
		t.Error("expected out of range pixels to be ignored")
	}

	c.Clear()
	if c.IsSet(3, 5) {
		t.Error("expected Clear to reset pixels")
	}
}

func TestCanvas_DrawCircleSymmetric(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawCircle(10, 10, 4)

	for _, p := range [][2]int{{14, 10}, {6, 10}, {10, 14}, {10, 6}} {
		if !c.IsSet(p[0], p[1]) {
			t.Errorf("expected (%d,%d) on the circle", p[0], p[1])
		}
	}
	if c.IsSet(10, 10) {
		t.Error("expected the center to stay clear")
	}

	for x := 0; x < c.PixelWidth(); x++ {
		for y := 0; y < c.PixelHeight(); y++ {
			if c.IsSet(x, y) != c.IsSet(20-x, y) {
				t.Errorf("expected mirror symmetry at (%d,%d)", x, y)
			}
		}
	}
}

func TestCanvas_String(t *testing.T) {
	c := NewCanvas(4, 3)
	lines := strings.Split(strings.TrimRight(c.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for _, l := range lines {
		if len([]rune(l)) != 4 {
			t.Errorf("expected 4 cells per line, got %d", len([]rune(l)))
		}
	}
}

func TestDrawArena(t *testing.T) {
	c := NewCanvas(10, 5)
	w := physics.DefaultWorld()
	bodies := []physics.Snapshot{{
		ID:     1,
		Center: physics.Vec2{X: 500, Y: 500},
		HitBox: physics.Size{Width: 200, Height: 200},
	}}

	DrawArena(c, w, bodies)

	if !c.IsSet(0, 0) || !c.IsSet(19, 19) {
		t.Error("expected arena corners to be drawn")
	}
	// center projects to (10,10), radius 100 scales to 2
	if !c.IsSet(12, 10) || !c.IsSet(10, 8) {
		t.Error("expected body outline around the projected center")
	}
}

func TestProject_FlipsY(t *testing.T) {
	c := NewCanvas(10, 5)
	w := physics.DefaultWorld()

	x, y := Project(c, w, physics.Vec2{X: 0, Y: w.Height})
	if x != 0 || y != 0 {
		t.Errorf("expected top left to map to (0,0), got (%d,%d)", x, y)
	}
	x, y = Project(c, w, physics.Vec2{X: w.Width, Y: 0})
	if x != 19 || y != 19 {
		t.Errorf("expected bottom right to map to (19,19), got (%d,%d)", x, y)
	}
}
