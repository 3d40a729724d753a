package physics

import "fmt"

// Circle is a round body. Its hit box is the square that bounds it.
type Circle struct {
	Motion
	radius float64
	color  string
}

// NewCircle builds a circle without validating it. Degenerate values behave
// however the arithmetic makes them behave.
func NewCircle(id ID, radius float64, pos Vec2, vel Velocity, elasticity float64, color string) *Circle {
	return &Circle{
		Motion: NewMotion(id, pos, vel, elasticity),
		radius: radius,
		color:  color,
	}
}

// NewCheckedCircle is NewCircle with the radius and elasticity checked.
func NewCheckedCircle(id ID, radius float64, pos Vec2, vel Velocity, elasticity float64, color string) (*Circle, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("%w: body %d radius must be positive, got %g", ErrInvalidBody, id, radius)
	}
	if elasticity < 0 {
		return nil, fmt.Errorf("%w: body %d elasticity must not be negative, got %g", ErrInvalidBody, id, elasticity)
	}
	return NewCircle(id, radius, pos, vel, elasticity, color), nil
}

func (c *Circle) Radius() float64 { return c.radius }

// Color is opaque to the simulation and only carried for renderers.
func (c *Circle) Color() string { return c.color }

func (c *Circle) HitBox() Size {
	return Size{Width: c.radius * 2, Height: c.radius * 2}
}

func (c *Circle) Update(w World) {
	c.Integrate(w, c.HitBox())
}

func (c *Circle) Collide(other Snapshot) {
	c.Deflect(c.HitBox(), other)
}

func (c *Circle) Snapshot() Snapshot {
	return Snapshot{
		ID:         c.id,
		Center:     c.pos,
		Velocity:   c.vel,
		HitBox:     c.HitBox(),
		Elasticity: c.elasticity,
		Color:      c.color,
	}
}

var _ Body = (*Circle)(nil)
