package physics

// Geometry is the shape-specific half of a body.
type Geometry interface {
	HitBox() Size
	Center() Vec2
}

// Body is anything the driver can step. Update and Collide mutate only the
// receiver; every query is pure.
type Body interface {
	Geometry
	ID() ID
	Velocity() Velocity
	Elasticity() float64
	SetVelocity(v Velocity)

	// Update applies gravity, reflects off the arena walls and integrates the
	// position by one tick.
	Update(w World)
	// Collide reflects the receiver's velocity when its predicted hit box
	// overlaps other's predicted hit box.
	Collide(other Snapshot)
	// Snapshot returns a value copy of the current state.
	Snapshot() Snapshot
}

// Snapshots copies the state of every body, preserving order.
func Snapshots(bodies []Body) []Snapshot {
	out := make([]Snapshot, len(bodies))
	for i, b := range bodies {
		out[i] = b.Snapshot()
	}
	return out
}
