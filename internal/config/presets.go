package config

import (
	"sort"

	"github.com/san-kum/bounce/internal/physics"
)

var defaultWorld = physics.World{
	Gravity:  DefaultGravity,
	TickRate: DefaultTickRate,
	Width:    DefaultWidth,
	Height:   DefaultHeight,
}

var Presets = map[string]*Config{
	"pair": DefaultConfig(),
	"rain": {
		Name: "rain", World: defaultWorld, Policy: "snapshot", Ticks: 1200, RecordEvery: 2, Seed: 1337,
		Random: RandomConfig{Count: 16, RadiusMin: 12, RadiusMax: 40, SpeedMax: 10, Elasticity: 0.9},
	},
	"corner": {
		Name: "corner", World: defaultWorld, Policy: "snapshot", Ticks: 600, RecordEvery: 1,
		Bodies: []BodyConfig{
			{ID: 1, Radius: 24, X: 100, Y: 100, DX: -6, DY: -6, Elasticity: 0.9, Color: "#ff6b6b"},
			{ID: 2, Radius: 24, X: 900, Y: 900, DX: 6, DY: 6, Elasticity: 0.9, Color: "#48dbfb"},
			{ID: 3, Radius: 24, X: 100, Y: 900, DX: -6, DY: 6, Elasticity: 0.9, Color: "#1dd1a1"},
			{ID: 4, Radius: 24, X: 900, Y: 100, DX: 6, DY: -6, Elasticity: 0.9, Color: "#feca57"},
		},
	},
	"stack": {
		Name: "stack", World: defaultWorld, Policy: "sequential", Ticks: 900, RecordEvery: 3,
		Bodies: []BodyConfig{
			{ID: 1, Radius: 30, X: 500, Y: 200, Elasticity: 0.6, Color: "#5f27cd"},
			{ID: 2, Radius: 30, X: 500, Y: 400, Elasticity: 0.6, Color: "#54a0ff"},
			{ID: 3, Radius: 30, X: 500, Y: 600, Elasticity: 0.6, Color: "#ff9ff3"},
			{ID: 4, Radius: 30, X: 500, Y: 800, Elasticity: 0.6, Color: "#c8d6e5"},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
