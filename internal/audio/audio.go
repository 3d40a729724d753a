package audio

import (
	"fmt"
	"math"
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/san-kum/bounce/internal/metrics"
	"github.com/san-kum/bounce/internal/physics"
)

const (
	SampleRate = 44100
	BufferSize = 1024

	maxPings  = 16
	pingDecay = 0.9995
)

// Processor sonifies a running simulation: a pad whose brightness follows
// kinetic energy, plus a short ping for every bounce. It implements
// sim.Observer.
type Processor struct {
	Stream *portaudio.Stream
	Active bool

	world physics.World
	prev  map[physics.ID]physics.Velocity

	mu    sync.Mutex
	synth *Synth
}

func NewProcessor(world physics.World) *Processor {
	return &Processor{
		world: world,
		prev:  make(map[physics.ID]physics.Velocity),
		synth: NewSynth(),
	}
}

func (a *Processor) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("audio init: %w", err)
	}

	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, a.ProcessAudio)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("audio stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("audio start: %w", err)
	}

	a.Stream = stream
	a.Active = true
	return nil
}

func (a *Processor) Stop() {
	if a.Stream != nil {
		a.Stream.Stop()
		a.Stream.Close()
		a.Stream = nil
	}
	if a.Active {
		portaudio.Terminate()
	}
	a.Active = false
}

// OnStep feeds the synth from the latest tick.
func (a *Processor) OnStep(tick int, bodies []physics.Snapshot) {
	bounced := DetectBounces(a.prev, bodies, a.world.Gravity)
	energy := metrics.Kinetic(bodies)

	a.mu.Lock()
	a.synth.SetEnergy(energy)
	for _, b := range bounced {
		a.synth.Ping(PitchFor(b.HitBox.Width/2), b.Velocity.Speed())
	}
	a.mu.Unlock()

	for _, b := range bodies {
		a.prev[b.ID] = b.Velocity
	}
}

// Pending reports the pings still ringing.
func (a *Processor) Pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.synth.pings)
}

func (a *Processor) ProcessAudio(out [][]float32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.synth.Fill(out)
}

// DetectBounces returns the bodies whose velocity was reflected since prev.
// A horizontal sign flip is always a reflection. A vertical one is too,
// unless gravity alone could have turned the body at its apex.
func DetectBounces(prev map[physics.ID]physics.Velocity, bodies []physics.Snapshot, gravity float64) []physics.Snapshot {
	var out []physics.Snapshot
	for _, b := range bodies {
		p, ok := prev[b.ID]
		if !ok {
			continue
		}
		v := b.Velocity
		switch {
		case p.DX*v.DX < 0:
			out = append(out, b)
		case p.DY < 0 && v.DY > 0:
			out = append(out, b)
		case p.DY > gravity && v.DY < 0:
			out = append(out, b)
		}
	}
	return out
}

// PitchFor maps a radius to a ping frequency; small bodies sound higher.
func PitchFor(radius float64) float64 {
	if radius <= 0 {
		return 880
	}
	f := 440 * 32 / radius
	return math.Max(110, math.Min(f, 1760))
}
