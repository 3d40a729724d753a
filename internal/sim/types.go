package sim

import (
	"fmt"

	"github.com/san-kum/bounce/internal/physics"
)

// Policy decides what each body sees of the others during a tick.
type Policy int

const (
	// PolicySnapshot collides every body against the state of the world
	// before the tick started. The result does not depend on body order.
	PolicySnapshot Policy = iota
	// PolicySequential collides each body against the others' current state,
	// so bodies earlier in the slice are seen after their update.
	PolicySequential
)

func (p Policy) String() string {
	switch p {
	case PolicySnapshot:
		return "snapshot"
	case PolicySequential:
		return "sequential"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "", "snapshot":
		return PolicySnapshot, nil
	case "sequential":
		return PolicySequential, nil
	default:
		return 0, fmt.Errorf("unknown policy: %s", name)
	}
}

type Metric interface {
	Name() string
	Observe(tick int, bodies []physics.Snapshot)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(tick int, bodies []physics.Snapshot)
}

type Config struct {
	Ticks int
	// RecordEvery keeps one frame out of every RecordEvery ticks. Frame 0 and
	// the last tick are always kept.
	RecordEvery int
}

func DefaultConfig() Config {
	return Config{
		Ticks:       600,
		RecordEvery: 1,
	}
}

// Frame is the state of every body after Tick ticks.
type Frame struct {
	Tick   int
	Bodies []physics.Snapshot
}

type Result struct {
	Frames     []Frame
	Metrics    map[string]float64
	TicksTaken int
}
