package sim

import (
	"context"
	"time"
)

// Clock is a fixed-timestep scheduler. It owns all pacing so the simulation
// core never sleeps.
type Clock struct {
	interval time.Duration
}

// NewClock returns a clock ticking tickRate times per second. Non-positive
// rates fall back to 60.
func NewClock(tickRate int) *Clock {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &Clock{interval: time.Second / time.Duration(tickRate)}
}

func (c *Clock) Interval() time.Duration { return c.interval }

// Drive calls fn once per interval with a 1-based tick number until fn
// returns false, ticks calls have been made, or ctx is done. Non-positive
// ticks means no limit. Ticks missed by a slow fn are dropped, not replayed.
func (c *Clock) Drive(ctx context.Context, ticks int, fn func(tick int) bool) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for tick := 1; ticks <= 0 || tick <= ticks; tick++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		if !fn(tick) {
			return nil
		}
	}
	return nil
}
