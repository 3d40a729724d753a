package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/bounce/internal/sim"
)

type ExportBody struct {
	ID     int     `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	DX     float64 `json:"dx"`
	DY     float64 `json:"dy"`
	Radius float64 `json:"radius"`
	Color  string  `json:"color,omitempty"`
}

type ExportFrame struct {
	Tick   int          `json:"tick"`
	Bodies []ExportBody `json:"bodies"`
}

type ExportData struct {
	Meta   RunMetadata   `json:"meta"`
	Frames []ExportFrame `json:"frames"`
}

func NewExportData(meta RunMetadata, frames []sim.Frame) ExportData {
	data := ExportData{
		Meta:   meta,
		Frames: make([]ExportFrame, len(frames)),
	}
	for i, f := range frames {
		bodies := make([]ExportBody, len(f.Bodies))
		for j, b := range f.Bodies {
			bodies[j] = ExportBody{
				ID:     int(b.ID),
				X:      b.Center.X,
				Y:      b.Center.Y,
				DX:     b.Velocity.DX,
				DY:     b.Velocity.DY,
				Radius: b.HitBox.Width / 2,
				Color:  b.Color,
			}
		}
		data.Frames[i] = ExportFrame{Tick: f.Tick, Bodies: bodies}
	}
	return data
}

func WriteJSON(w io.Writer, meta RunMetadata, frames []sim.Frame) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(meta, frames))
}

func ExportJSON(path string, meta RunMetadata, frames []sim.Frame) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, meta, frames)
}
