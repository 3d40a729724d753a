package metrics

import "github.com/san-kum/bounce/internal/physics"

// Speed tracks the mean and peak body speed.
type Speed struct {
	name    string
	peak    bool
	sum     float64
	max     float64
	samples int
}

func NewMeanSpeed() *Speed {
	return &Speed{name: "mean_speed"}
}

func NewPeakSpeed() *Speed {
	return &Speed{name: "peak_speed", peak: true}
}

func (s *Speed) Name() string { return s.name }

func (s *Speed) Observe(tick int, bodies []physics.Snapshot) {
	for _, b := range bodies {
		v := b.Velocity.Speed()
		s.sum += v
		if v > s.max {
			s.max = v
		}
		s.samples++
	}
}

func (s *Speed) Value() float64 {
	if s.peak {
		return s.max
	}
	if s.samples == 0 {
		return 0
	}
	return s.sum / float64(s.samples)
}

func (s *Speed) Reset() {
	s.sum = 0
	s.max = 0
	s.samples = 0
}
