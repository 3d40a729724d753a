package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/bounce/internal/physics"
)

type Simulator struct {
	world     physics.World
	policy    Policy
	metrics   []Metric
	observers []Observer
}

func New(world physics.World, policy Policy) *Simulator {
	return &Simulator{
		world:     world,
		policy:    policy,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) World() physics.World { return s.world }
func (s *Simulator) Policy() Policy       { return s.policy }
func (s *Simulator) SetPolicy(p Policy)   { s.policy = p }

// Step advances bodies by one tick and notifies observers. Metrics are only
// fed by Run.
func (s *Simulator) Step(tick int, bodies []physics.Body) []physics.Snapshot {
	StepWith(bodies, s.world, s.policy)
	snaps := physics.Snapshots(bodies)
	for _, obs := range s.observers {
		obs.OnStep(tick, snaps)
	}
	return snaps
}

// Run steps bodies cfg.Ticks times as fast as possible. bodies is mutated in
// place and ends in the final state.
func (s *Simulator) Run(ctx context.Context, bodies []physics.Body, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	every := cfg.RecordEvery
	if every <= 0 {
		every = 1
	}

	result := &Result{
		Frames:  make([]Frame, 0, cfg.Ticks/every+2),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	result.Frames = append(result.Frames, Frame{Tick: 0, Bodies: physics.Snapshots(bodies)})

	for tick := 1; tick <= cfg.Ticks; tick++ {
		select {
		case <-ctx.Done():
			s.collect(result)
			return result, ctx.Err()
		default:
		}

		snaps := s.Step(tick, bodies)
		for _, m := range s.metrics {
			m.Observe(tick, snaps)
		}
		result.TicksTaken++

		if tick%every == 0 || tick == cfg.Ticks {
			result.Frames = append(result.Frames, Frame{Tick: tick, Bodies: snaps})
		}
	}

	s.collect(result)
	return result, nil
}

// RunWithCallback steps bodies until cfg.Ticks is reached or callback returns
// false. A non-positive cfg.Ticks runs until ctx is done.
func (s *Simulator) RunWithCallback(ctx context.Context, bodies []physics.Body, cfg Config, callback func(tick int, bodies []physics.Snapshot) bool) error {
	if err := s.world.Validate(); err != nil {
		return err
	}

	for tick := 1; cfg.Ticks <= 0 || tick <= cfg.Ticks; tick++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !callback(tick, s.Step(tick, bodies)) {
			return nil
		}
	}

	return nil
}

// RunRealtime is RunWithCallback paced by a Clock at the world's tick rate.
func (s *Simulator) RunRealtime(ctx context.Context, bodies []physics.Body, cfg Config, callback func(tick int, bodies []physics.Snapshot) bool) error {
	if err := s.world.Validate(); err != nil {
		return err
	}

	clock := NewClock(s.world.TickRate)
	return clock.Drive(ctx, cfg.Ticks, func(tick int) bool {
		return callback(tick, s.Step(tick, bodies))
	})
}

func (s *Simulator) collect(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) validateConfig(cfg Config) error {
	if err := s.world.Validate(); err != nil {
		return err
	}
	if cfg.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", cfg.Ticks)
	}
	if cfg.RecordEvery < 0 {
		return fmt.Errorf("record interval must not be negative, got %d", cfg.RecordEvery)
	}
	return nil
}
