package export

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/san-kum/bounce/internal/physics"
	"github.com/san-kum/bounce/internal/sim"
	"github.com/san-kum/bounce/internal/viz"
)

func TestCanvasToSVG(t *testing.T) {
	if CanvasToSVG(nil, 1) != "" {
		t.Error("expected empty output for nil canvas")
	}

	c := viz.NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)

	svg := CanvasToSVG(c, 10)
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("expected a complete svg document")
	}
	if got := strings.Count(svg, "<circle"); got != 2 {
		t.Errorf("expected 2 dots, got %d", got)
	}
	if !strings.Contains(svg, `width="40" height="40"`) {
		t.Error("expected 40x40 document")
	}
}

func TestTrajectoriesToSVG(t *testing.T) {
	world := physics.DefaultWorld()
	if TrajectoriesToSVG(nil, world) != "" {
		t.Error("expected empty output for no frames")
	}

	body := func(id physics.ID, x, y float64, color string) physics.Snapshot {
		return physics.Snapshot{
			ID:     id,
			Center: physics.Vec2{X: x, Y: y},
			HitBox: physics.Size{Width: 64, Height: 64},
			Color:  color,
		}
	}
	frames := []sim.Frame{
		{Tick: 0, Bodies: []physics.Snapshot{body(1, 250, 500, "#ff0000"), body(2, 750, 500, "")}},
		{Tick: 1, Bodies: []physics.Snapshot{body(1, 255, 499.8, "#ff0000"), body(2, 745, 499.8, "")}},
	}

	svg := TrajectoriesToSVG(frames, world)
	if got := strings.Count(svg, "<path"); got != 2 {
		t.Errorf("expected 2 paths, got %d", got)
	}
	if got := strings.Count(svg, "<circle"); got != 2 {
		t.Errorf("expected 2 outlines, got %d", got)
	}
	if !strings.Contains(svg, "M250.0,500.0 L255.0,500.2") {
		t.Error("expected body 1 path with flipped y")
	}
	if !strings.Contains(svg, `stroke="#ff0000"`) || !strings.Contains(svg, `stroke="#00ff00"`) {
		t.Error("expected body colors with default fallback")
	}
	if !strings.Contains(svg, `r="32.0"`) {
		t.Error("expected radius from hit box")
	}
}

func TestTrajectoriesToSVG_HostileColor(t *testing.T) {
	tests := []struct {
		name  string
		color string
	}{
		{"quote", `#fff" onload="x`},
		{"markup", `"/><script>alert(1)</script><g a="`},
		{"ampersand", "red&blue"},
		{"apostrophe", "it's"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := physics.Snapshot{ID: 1, HitBox: physics.Size{Width: 10, Height: 10}, Color: tt.color}
			frames := []sim.Frame{{Tick: 0, Bodies: []physics.Snapshot{snap}}, {Tick: 1, Bodies: []physics.Snapshot{snap}}}

			svg := TrajectoriesToSVG(frames, physics.DefaultWorld())
			dec := xml.NewDecoder(strings.NewReader(svg))
			strokes := 0
			for {
				tok, err := dec.Token()
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					t.Fatalf("malformed svg: %v\n%s", err, svg)
				}
				el, ok := tok.(xml.StartElement)
				if !ok || (el.Name.Local != "path" && el.Name.Local != "circle") {
					continue
				}
				for _, a := range el.Attr {
					if a.Name.Local == "stroke" {
						strokes++
						if a.Value != tt.color {
							t.Errorf("expected stroke %q, got %q", tt.color, a.Value)
						}
					}
					if a.Name.Local == "onload" {
						t.Error("color leaked an attribute")
					}
				}
			}
			if strokes != 2 {
				t.Errorf("expected 2 stroked elements, got %d", strokes)
			}
		})
	}
}
