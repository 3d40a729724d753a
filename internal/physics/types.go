package physics

import "math"

// ID identifies a body to the driver and to renderers.
type ID int

type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(d Velocity) Vec2 {
	return Vec2{X: v.X + d.DX, Y: v.Y + d.DY}
}

// Velocity is measured in arena units per tick.
type Velocity struct {
	DX, DY float64
}

func (v Velocity) Speed() float64 {
	return math.Hypot(v.DX, v.DY)
}

func (v Velocity) Scale(factor float64) Velocity {
	return Velocity{DX: v.DX * factor, DY: v.DY * factor}
}

// Size is the full width and height of a hit box.
type Size struct {
	Width, Height float64
}

// Box is an axis-aligned rectangle given by its edges.
type Box struct {
	Left, Right, Bottom, Top float64
}

// BoxAround returns the box of the given size centred on c.
func BoxAround(c Vec2, s Size) Box {
	hw, hh := s.Width/2, s.Height/2
	return Box{
		Left:   c.X - hw,
		Right:  c.X + hw,
		Bottom: c.Y - hh,
		Top:    c.Y + hh,
	}
}

// Overlaps reports strict overlap; boxes that only share an edge do not overlap.
func (b Box) Overlaps(o Box) bool {
	return b.Left < o.Right &&
		b.Right > o.Left &&
		b.Top > o.Bottom &&
		b.Bottom < o.Top
}

// Snapshot is a value copy of a body taken before mutation. Collide only ever
// sees snapshots, so no body can observe another body mid-update.
type Snapshot struct {
	ID         ID
	Center     Vec2
	Velocity   Velocity
	HitBox     Size
	Elasticity float64
	Color      string
}

// Predicted returns the hit box shifted by one tick of velocity.
func (s Snapshot) Predicted() Box {
	return BoxAround(s.Center.Add(s.Velocity), s.HitBox)
}

// Bounds returns the hit box at the current position.
func (s Snapshot) Bounds() Box {
	return BoxAround(s.Center, s.HitBox)
}
