package audio

import "math"

// G2, Bb2, D3, F3, A3
var padFreqs = []float64{98.00, 116.54, 146.83, 174.61, 220.00}

type ping struct {
	freq, amp, phase float64
}

// Synth renders the pad and pings. It is not safe for concurrent use.
type Synth struct {
	Time        float64
	FilterState [2]float64
	DelayLine   [2][]float64
	DelayHead   int

	energy       float64
	energySmooth float64
	pings        []ping
}

func NewSynth() *Synth {
	delayLen := int(float64(SampleRate) * 0.6)
	return &Synth{
		DelayLine: [2][]float64{make([]float64, delayLen), make([]float64, delayLen)},
	}
}

func (s *Synth) SetEnergy(e float64) { s.energy = e }

// Ping starts a decaying tone. Louder for faster impacts; the oldest ping is
// dropped when too many are ringing.
func (s *Synth) Ping(freq, speed float64) {
	amp := math.Min(0.05+speed/40, 0.5)
	if len(s.pings) == maxPings {
		s.pings = s.pings[1:]
	}
	s.pings = append(s.pings, ping{freq: freq, amp: amp})
}

// Triangle Wave: Smooth, flute-like, no harsh buzz
func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// Low Pass Filter (One Pole)
func lpf(sample, cutoff, dt, state float64) (float64, float64) {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	out := state + alpha*(sample-state)
	return out, out
}

// Fill writes one buffer of stereo samples.
func (s *Synth) Fill(out [][]float32) {
	if len(out) < 2 {
		return
	}

	s.energySmooth = s.energySmooth*0.995 + s.energy*0.005
	// energy opens the filter from 300Hz up to 1200Hz
	cutoff := 300.0 + math.Min(s.energySmooth/5.0, 900.0)
	dt := 1.0 / float64(SampleRate)
	vol := 0.252

	for i := 0; i < len(out[0]); i++ {
		sampleL, sampleR := 0.0, 0.0
		g := 1.0 / float64(len(padFreqs))
		for j, f := range padFreqs {
			lfo := math.Sin(s.Time*0.2 + float64(j))
			sampleL += triangle(s.Time*(f*0.999)) * g * (0.7 + 0.3*lfo)
			sampleR += triangle(s.Time*(f*1.001)) * g * (0.7 + 0.3*lfo)
		}

		var outL, outR float64
		outL, s.FilterState[0] = lpf(sampleL, cutoff, dt, s.FilterState[0])
		outR, s.FilterState[1] = lpf(sampleR, cutoff, dt, s.FilterState[1])

		for k := range s.pings {
			p := &s.pings[k]
			v := math.Sin(2*math.Pi*p.phase) * p.amp
			outL += v
			outR += v
			p.phase += p.freq * dt
			p.amp *= pingDecay
		}

		// ping pong delay
		delayL := s.DelayLine[0][s.DelayHead]
		delayR := s.DelayLine[1][s.DelayHead]
		mixL := outL + delayL*0.3 + delayR*0.1
		mixR := outR + delayR*0.3 + delayL*0.1
		s.DelayLine[0][s.DelayHead] = mixL * 0.7
		s.DelayLine[1][s.DelayHead] = mixR * 0.7
		s.DelayHead = (s.DelayHead + 1) % len(s.DelayLine[0])

		out[0][i] = float32(mixL * vol)
		out[1][i] = float32(mixR * vol)

		s.Time += dt
	}

	live := s.pings[:0]
	for _, p := range s.pings {
		if p.amp > 1e-3 {
			live = append(live, p)
		}
	}
	s.pings = live
}
