package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/bounce/internal/physics"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if len(cfg.Bodies) != 2 {
		t.Errorf("expected 2 bodies, got %d", len(cfg.Bodies))
	}
	if cfg.World.Gravity != 0.2 {
		t.Errorf("expected gravity 0.2, got %f", cfg.World.Gravity)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		target error
	}{
		{"zero width", func(c *Config) { c.World.Width = 0 }, physics.ErrInvalidWorld},
		{"bad policy", func(c *Config) { c.Policy = "batched" }, ErrInvalidConfig},
		{"zero ticks", func(c *Config) { c.Ticks = 0 }, ErrInvalidConfig},
		{"negative record", func(c *Config) { c.RecordEvery = -2 }, ErrInvalidConfig},
		{"duplicate id", func(c *Config) { c.Bodies[1].ID = 1 }, ErrDuplicateID},
		{"zero radius", func(c *Config) { c.Bodies[0].Radius = 0 }, physics.ErrInvalidBody},
		{"negative elasticity", func(c *Config) { c.Bodies[0].Elasticity = -1 }, physics.ErrInvalidBody},
		{"random negative count", func(c *Config) { c.Random.Count = -1 }, ErrInvalidConfig},
		{"random empty range", func(c *Config) { c.Random.Count = 2; c.Random.RadiusMin = 50; c.Random.RadiusMax = 10 }, ErrInvalidConfig},
		{"random too large", func(c *Config) { c.Random.Count = 2; c.Random.RadiusMax = 600 }, ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.target) {
				t.Errorf("expected %v, got %v", tt.target, err)
			}
		})
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")

	cfg := DefaultConfig()
	cfg.Name = "saved"
	cfg.Random.Count = 3
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Name != "saved" {
		t.Errorf("expected name saved, got %s", loaded.Name)
	}
	if len(loaded.Bodies) != 2 || loaded.Bodies[1].DX != -5 {
		t.Errorf("expected default pair round-tripped, got %+v", loaded.Bodies)
	}
	if loaded.Random.Count != 3 {
		t.Errorf("expected random count 3, got %d", loaded.Random.Count)
	}
}

func TestLoad_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	data := []byte(`
name: solo
world:
  gravity: 0.5
bodies:
  - id: 7
    radius: 10
    x: 100
    y: 100
    elasticity: 1
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.World.Gravity != 0.5 {
		t.Errorf("expected gravity 0.5, got %f", cfg.World.Gravity)
	}
	if cfg.World.Width != DefaultWidth || cfg.World.TickRate != DefaultTickRate {
		t.Errorf("expected default arena, got %+v", cfg.World)
	}
	if len(cfg.Bodies) != 1 || cfg.Bodies[0].ID != 7 {
		t.Errorf("expected only body 7, got %+v", cfg.Bodies)
	}
	if cfg.Ticks != DefaultTicks {
		t.Errorf("expected default ticks, got %d", cfg.Ticks)
	}
}

func TestLoad_BodiesKey(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		bodies int
		ticks  int
	}{
		{"ticks only", "ticks: 10\n", 2, 10},
		{"world only", "world:\n  gravity: 0\n", 2, DefaultTicks},
		{"empty bodies", "bodies: []\nrandom:\n  count: 4\n", 0, DefaultTicks},
		{"one body", "bodies:\n  - id: 3\n    radius: 5\n    x: 10\n    y: 10\n", 1, DefaultTicks},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "scene.yaml")
			if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
				t.Fatal(err)
			}
			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("load failed: %v", err)
			}
			if len(cfg.Bodies) != tt.bodies {
				t.Errorf("expected %d bodies, got %+v", tt.bodies, cfg.Bodies)
			}
			if cfg.Ticks != tt.ticks {
				t.Errorf("expected %d ticks, got %d", tt.ticks, cfg.Ticks)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("expected valid scene, got %v", err)
			}
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("ticks: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestBuild(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Random.Count = 10

	bodies, err := cfg.Build(42)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if len(bodies) != 12 {
		t.Fatalf("expected 12 bodies, got %d", len(bodies))
	}

	ids := map[physics.ID]bool{}
	for _, b := range bodies {
		if ids[b.ID()] {
			t.Errorf("duplicate id %d", b.ID())
		}
		ids[b.ID()] = true

		if over := cfg.World.Overshoot(b.Snapshot().Bounds()); over > 0 {
			t.Errorf("body %d placed outside the arena by %f", b.ID(), over)
		}
	}
	if bodies[2].ID() != 3 {
		t.Errorf("expected first random id 3, got %d", bodies[2].ID())
	}

	again, err := cfg.Build(42)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	for i := range bodies {
		if bodies[i].Snapshot() != again[i].Snapshot() {
			t.Errorf("body %d differs between builds with the same seed", i)
		}
	}
}

func TestBuild_Invalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bodies[0].Radius = -3

	if _, err := cfg.Build(1); !errors.Is(err, physics.ErrInvalidBody) {
		t.Errorf("expected ErrInvalidBody, got %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("pair")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	cfg.Bodies[0].X = -1
	if Presets["pair"].Bodies[0].X != 250 {
		t.Error("GetPreset returned shared bodies")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsValid(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		if _, err := cfg.Build(cfg.Seed); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != 4 {
		t.Errorf("expected 4 presets, got %v", presets)
	}
	if presets[0] != "corner" {
		t.Errorf("expected sorted names, got %v", presets)
	}
}
