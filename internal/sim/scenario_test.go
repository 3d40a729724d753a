package sim_test

import (
	"context"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/bounce/internal/physics"
	"github.com/san-kum/bounce/internal/sim"
)

var _ = Describe("Head-on pair", func() {
	var (
		world  physics.World
		bodies []physics.Body
	)

	BeforeEach(func() {
		world = physics.World{Gravity: 0.2, TickRate: 60, Width: 1000, Height: 1000}
		bodies = []physics.Body{
			physics.NewCircle(1, 32, physics.Vec2{X: 250, Y: 500}, physics.Velocity{DX: 5}, 0.8, "#7b2cbf"),
			physics.NewCircle(2, 32, physics.Vec2{X: 750, Y: 500}, physics.Velocity{DX: -5}, 0.8, "#7b2cbf"),
		}
	})

	It("falls 0.2 faster every tick until the boxes meet", func() {
		for tick := 1; tick <= 43; tick++ {
			before := physics.Snapshots(bodies)
			sim.Step(bodies, world)

			for i, b := range bodies {
				Expect(before[i].Center.Y).To(BeNumerically(">=", 32))
				Expect(b.Velocity().DY).To(BeNumerically("~", before[i].Velocity.DY-0.2, 1e-9))
				Expect(b.Velocity().DX).To(Equal(before[i].Velocity.DX))
			}
		}

		gap := bodies[1].Center().X - bodies[0].Center().X
		Expect(gap).To(Equal(70.0))
	})

	It("reflects both bodies once the predicted boxes overlap", func() {
		for tick := 1; tick <= 43; tick++ {
			sim.Step(bodies, world)
		}
		before := physics.Snapshots(bodies)

		sim.Step(bodies, world)

		for i, b := range bodies {
			v := b.Velocity()
			Expect(v.DX).To(BeNumerically("~", -0.8*before[i].Velocity.DX, 1e-9))
			Expect(v.DY).To(BeNumerically("~", -0.8*before[i].Velocity.DY-0.2, 1e-9))
		}
		Expect(bodies[0].Velocity().DX).To(BeNumerically("<", 0))
		Expect(bodies[1].Velocity().DX).To(BeNumerically(">", 0))
	})

	It("does not depend on body order under the snapshot policy", func() {
		reversed := []physics.Body{
			physics.NewCircle(2, 32, physics.Vec2{X: 750, Y: 500}, physics.Velocity{DX: -5}, 0.8, ""),
			physics.NewCircle(1, 32, physics.Vec2{X: 250, Y: 500}, physics.Velocity{DX: 5}, 0.8, ""),
		}

		for tick := 0; tick < 300; tick++ {
			sim.Step(bodies, world)
			sim.Step(reversed, world)
		}

		Expect(bodies[0].Center()).To(Equal(reversed[1].Center()))
		Expect(bodies[1].Velocity()).To(Equal(reversed[0].Velocity()))
	})

	It("records the run through the simulator", func() {
		s := sim.New(world, sim.PolicySnapshot)
		result, err := s.Run(context.Background(), bodies, sim.Config{Ticks: 44, RecordEvery: 44})

		Expect(err).NotTo(HaveOccurred())
		Expect(result.Frames).To(HaveLen(2))
		Expect(result.Frames[1].Bodies[0].Velocity.DX).To(BeNumerically("~", -4, 1e-9))
	})
})

var _ = Describe("Arena containment", func() {
	It("keeps wall overshoot within one tick of travel", func() {
		world := physics.World{Gravity: 0.35, TickRate: 60, Width: 400, Height: 300}
		rnd := rand.New(rand.NewSource(7))

		bodies := make([]physics.Body, 0, 12)
		for i := 0; i < 12; i++ {
			r := 5 + rnd.Float64()*15
			pos := physics.Vec2{
				X: r + rnd.Float64()*(world.Width-2*r),
				Y: r + rnd.Float64()*(world.Height-2*r),
			}
			vel := physics.Velocity{DX: rnd.Float64()*16 - 8, DY: rnd.Float64()*16 - 8}
			bodies = append(bodies, physics.NewCircle(physics.ID(i+1), r, pos, vel, 0.9, ""))
		}

		for tick := 0; tick < 500; tick++ {
			sim.Step(bodies, world)
			for _, s := range physics.Snapshots(bodies) {
				Expect(world.Overshoot(s.Bounds())).To(BeNumerically("<=", s.Velocity.Speed()+1e-9))
			}
		}
	})

	It("behaves the same under the sequential policy", func() {
		world := physics.World{Gravity: 0.2, TickRate: 60, Width: 200, Height: 200}
		bodies := []physics.Body{
			physics.NewCircle(1, 10, physics.Vec2{X: 20, Y: 180}, physics.Velocity{DX: 12, DY: 3}, 1, ""),
			physics.NewCircle(2, 10, physics.Vec2{X: 180, Y: 20}, physics.Velocity{DX: -9, DY: 6}, 0.5, ""),
		}

		for tick := 0; tick < 400; tick++ {
			sim.StepWith(bodies, world, sim.PolicySequential)
			for _, s := range physics.Snapshots(bodies) {
				Expect(world.Overshoot(s.Bounds())).To(BeNumerically("<=", s.Velocity.Speed()+1e-9))
			}
		}
	})
})
