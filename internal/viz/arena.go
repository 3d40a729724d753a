package viz

import (
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/bounce/internal/physics"
)

// Scale maps arena units to canvas sub-pixels, keeping the aspect ratio.
func Scale(c *Canvas, w physics.World) float64 {
	sx := float64(c.PixelWidth()-1) / w.Width
	sy := float64(c.PixelHeight()-1) / w.Height
	return math.Min(sx, sy)
}

// Project maps arena coordinates (y up) to canvas sub-pixels (y down).
func Project(c *Canvas, w physics.World, p physics.Vec2) (int, int) {
	s := Scale(c, w)
	return int(math.Round(p.X * s)), int(math.Round((w.Height - p.Y) * s))
}

// DrawArena clears c and draws the arena border and every body outline.
func DrawArena(c *Canvas, w physics.World, bodies []physics.Snapshot) {
	c.Clear()
	s := Scale(c, w)

	c.DrawRect(0, 0, int(math.Round(w.Width*s)), int(math.Round(w.Height*s)))
	for _, b := range bodies {
		x, y := Project(c, w, b.Center)
		r := int(math.Round(b.HitBox.Width / 2 * s))
		if r < 1 {
			r = 1
		}
		c.DrawCircle(x, y, r)
	}
}

// Viewport fits the arena into a screen rectangle with a margin, centred and
// with the aspect ratio kept.
type Viewport struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
	Width   float64
	Height  float64
}

func NewViewport(w physics.World, screenW, screenH, margin int) Viewport {
	availW := float64(screenW - 2*margin)
	availH := float64(screenH - 2*margin)
	s := math.Min(availW/w.Width, availH/w.Height)
	if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		s = 1
	}
	return Viewport{
		Scale:   s,
		OffsetX: float64(margin) + (availW-w.Width*s)/2,
		OffsetY: float64(margin) + (availH-w.Height*s)/2,
		Width:   w.Width * s,
		Height:  w.Height * s,
	}
}

// Project maps arena coordinates (y up) to screen pixels (y down).
func (v Viewport) Project(p physics.Vec2) (float64, float64) {
	return v.OffsetX + p.X*v.Scale, v.OffsetY + v.Height - p.Y*v.Scale
}

// ParseHexColor reads "#rrggbb" or "#rgb". The leading '#' is optional.
func ParseHexColor(s string) (r, g, b uint8, ok bool) {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 || strings.Trim(s, "0123456789abcdefABCDEF") != "" {
		return 0, 0, 0, false
	}
	c, err := colorful.Hex("#" + s)
	if err != nil {
		return 0, 0, 0, false
	}
	r, g, b = c.RGB255()
	return r, g, b, true
}
