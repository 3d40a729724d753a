package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/bounce/internal/physics"
	"github.com/san-kum/bounce/internal/sim"
)

const (
	DefaultGravity     = 0.2
	DefaultTickRate    = 60
	DefaultWidth       = 1000.0
	DefaultHeight      = 1000.0
	DefaultTicks       = 600
	DefaultRecordEvery = 1
	DefaultRadius      = 32.0
	DefaultElasticity  = 0.8
	DefaultSpeedMax    = 8.0
)

var (
	ErrInvalidConfig = errors.New("config: invalid scene")
	ErrDuplicateID   = errors.New("config: duplicate body id")
)

type Config struct {
	Name        string        `yaml:"name"`
	World       physics.World `yaml:"world"`
	Policy      string        `yaml:"policy"`
	Ticks       int           `yaml:"ticks"`
	RecordEvery int           `yaml:"record_every"`
	Seed        int64         `yaml:"seed"`
	Bodies      []BodyConfig  `yaml:"bodies"`
	Random      RandomConfig  `yaml:"random"`
}

type BodyConfig struct {
	ID         int     `yaml:"id"`
	Radius     float64 `yaml:"radius"`
	X          float64 `yaml:"x"`
	Y          float64 `yaml:"y"`
	DX         float64 `yaml:"dx"`
	DY         float64 `yaml:"dy"`
	Elasticity float64 `yaml:"elasticity"`
	Color      string  `yaml:"color"`
}

// RandomConfig adds Count bodies placed fully inside the arena. Their IDs
// continue after the largest explicit ID.
type RandomConfig struct {
	Count      int     `yaml:"count"`
	RadiusMin  float64 `yaml:"radius_min"`
	RadiusMax  float64 `yaml:"radius_max"`
	SpeedMax   float64 `yaml:"speed_max"`
	Elasticity float64 `yaml:"elasticity"`
}

func DefaultConfig() *Config {
	return &Config{
		Name: "pair",
		World: physics.World{
			Gravity:  DefaultGravity,
			TickRate: DefaultTickRate,
			Width:    DefaultWidth,
			Height:   DefaultHeight,
		},
		Policy:      sim.PolicySnapshot.String(),
		Ticks:       DefaultTicks,
		RecordEvery: DefaultRecordEvery,
		Bodies: []BodyConfig{
			{ID: 1, Radius: DefaultRadius, X: 250, Y: 500, DX: 5, Elasticity: DefaultElasticity, Color: "#7b2cbf"},
			{ID: 2, Radius: DefaultRadius, X: 750, Y: 500, DX: -5, Elasticity: DefaultElasticity, Color: "#7b2cbf"},
		},
		Random: RandomConfig{
			RadiusMin:  16,
			RadiusMax:  DefaultRadius,
			SpeedMax:   DefaultSpeedMax,
			Elasticity: DefaultElasticity,
		},
	}
}

// Load reads a YAML scene on top of DefaultConfig. A file that sets bodies
// replaces the default pair entirely; one that omits the key keeps it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var keys map[string]yaml.Node
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if _, ok := keys["bodies"]; ok {
		cfg.Bodies = nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate fails fast on values the kinematics would silently misbehave on.
func (c *Config) Validate() error {
	if err := c.World.Validate(); err != nil {
		return err
	}
	if _, err := sim.ParsePolicy(c.Policy); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Ticks <= 0 {
		return fmt.Errorf("%w: ticks must be positive, got %d", ErrInvalidConfig, c.Ticks)
	}
	if c.RecordEvery < 0 {
		return fmt.Errorf("%w: record_every must not be negative, got %d", ErrInvalidConfig, c.RecordEvery)
	}

	seen := make(map[int]bool, len(c.Bodies))
	for _, b := range c.Bodies {
		if seen[b.ID] {
			return fmt.Errorf("%w: %d", ErrDuplicateID, b.ID)
		}
		seen[b.ID] = true
		if b.Radius <= 0 {
			return fmt.Errorf("%w: body %d radius must be positive, got %g", physics.ErrInvalidBody, b.ID, b.Radius)
		}
		if b.Elasticity < 0 {
			return fmt.Errorf("%w: body %d elasticity must not be negative, got %g", physics.ErrInvalidBody, b.ID, b.Elasticity)
		}
	}

	return c.Random.validate(c.World)
}

func (r RandomConfig) validate(w physics.World) error {
	if r.Count < 0 {
		return fmt.Errorf("%w: random count must not be negative, got %d", ErrInvalidConfig, r.Count)
	}
	if r.Count == 0 {
		return nil
	}
	if r.RadiusMin <= 0 || r.RadiusMax < r.RadiusMin {
		return fmt.Errorf("%w: random radius range [%g, %g] is empty", ErrInvalidConfig, r.RadiusMin, r.RadiusMax)
	}
	if 2*r.RadiusMax > w.Width || 2*r.RadiusMax > w.Height {
		return fmt.Errorf("%w: random radius %g does not fit a %gx%g arena", ErrInvalidConfig, r.RadiusMax, w.Width, w.Height)
	}
	if r.SpeedMax < 0 || r.Elasticity < 0 {
		return fmt.Errorf("%w: random speed and elasticity must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Clone returns a copy that shares nothing with c.
func (c *Config) Clone() *Config {
	out := *c
	out.Bodies = append([]BodyConfig(nil), c.Bodies...)
	return &out
}

func (c *Config) SimPolicy() sim.Policy {
	p, _ := sim.ParsePolicy(c.Policy)
	return p
}

func (c *Config) SimConfig() sim.Config {
	return sim.Config{Ticks: c.Ticks, RecordEvery: c.RecordEvery}
}
