package export

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/san-kum/bounce/internal/physics"
	"github.com/san-kum/bounce/internal/sim"
	"github.com/san-kum/bounce/internal/viz"
)

const defaultStroke = "#00ff00"

// CanvasToSVG converts a Braille canvas to SVG format
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.PixelWidth()) * scale
	height := float64(canvas.PixelHeight()) * scale

	var sb strings.Builder
	sb.WriteString(header(width, height))
	sb.WriteString(fmt.Sprintf("<g fill=\"%s\">\n", defaultStroke))

	dotRadius := scale * 0.4
	for y := 0; y < canvas.PixelHeight(); y++ {
		for x := 0; x < canvas.PixelWidth(); x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// TrajectoriesToSVG draws the path of every body across frames, plus its
// outline at the last frame. Arena units map one to one onto the viewBox
// with y flipped.
func TrajectoriesToSVG(frames []sim.Frame, world physics.World) string {
	if len(frames) == 0 {
		return ""
	}

	paths := make(map[physics.ID][]physics.Vec2)
	for _, f := range frames {
		for _, b := range f.Bodies {
			paths[b.ID] = append(paths[b.ID], b.Center)
		}
	}

	last := frames[len(frames)-1].Bodies
	colors := make(map[physics.ID]string, len(last))
	for _, b := range last {
		colors[b.ID] = b.Color
	}

	ids := make([]physics.ID, 0, len(paths))
	for id := range paths {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var sb strings.Builder
	sb.WriteString(header(world.Width, world.Height))
	sb.WriteString(fmt.Sprintf(`<rect x="0" y="0" width="%.0f" height="%.0f" fill="none" stroke="#666666"/>
`, world.Width, world.Height))

	for _, id := range ids {
		pts := paths[id]
		if len(pts) < 2 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke(colors[id])))
		for i, p := range pts {
			if i > 0 {
				sb.WriteString(" L")
			}
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", p.X, world.Height-p.Y))
		}
		sb.WriteString("\"/>\n")
	}

	for _, b := range last {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="%s"/>
`, b.Center.X, world.Height-b.Center.Y, b.HitBox.Width/2, stroke(b.Color)))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func header(width, height float64) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)
}

// stroke returns color escaped for a double-quoted attribute.
func stroke(color string) string {
	if color == "" {
		return defaultStroke
	}
	return html.EscapeString(color)
}
