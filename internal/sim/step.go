package sim

import "github.com/san-kum/bounce/internal/physics"

var scratch = NewSnapshotPool()

// Step advances bodies by one tick under PolicySnapshot.
func Step(bodies []physics.Body, world physics.World) {
	StepWith(bodies, world, PolicySnapshot)
}

// StepWith advances bodies by one tick. Body i runs all of its collision
// checks and then its update before body i+1 is touched.
func StepWith(bodies []physics.Body, world physics.World, policy Policy) {
	switch policy {
	case PolicySequential:
		stepSequential(bodies, world)
	default:
		stepSnapshot(bodies, world)
	}
}

func stepSnapshot(bodies []physics.Body, world physics.World) {
	snaps := scratch.Capture(bodies)
	defer scratch.Put(snaps)

	for i, b := range bodies {
		for j := range snaps {
			if i == j {
				continue
			}
			b.Collide(snaps[j])
		}
		b.Update(world)
	}
}

func stepSequential(bodies []physics.Body, world physics.World) {
	for i, b := range bodies {
		for j, other := range bodies {
			if i == j {
				continue
			}
			b.Collide(other.Snapshot())
		}
		b.Update(world)
	}
}
