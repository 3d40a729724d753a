package physics

// Motion is the kinematic state shared by every shape. Shapes embed it and
// pass their hit box to Integrate and Deflect.
type Motion struct {
	id         ID
	pos        Vec2
	vel        Velocity
	elasticity float64
}

func NewMotion(id ID, pos Vec2, vel Velocity, elasticity float64) Motion {
	return Motion{id: id, pos: pos, vel: vel, elasticity: elasticity}
}

func (m *Motion) ID() ID                 { return m.id }
func (m *Motion) Center() Vec2           { return m.pos }
func (m *Motion) Velocity() Velocity     { return m.vel }
func (m *Motion) Elasticity() float64    { return m.elasticity }
func (m *Motion) SetVelocity(v Velocity) { m.vel = v }

// Integrate advances the body by one tick.
//
// Gravity only applies while the center is at least half a hit box above the
// floor. The four predicted edges are computed once, after gravity, and each
// wall is tested against them independently: a component is reflected only
// when its edge would cross the wall and it still points outward.
func (m *Motion) Integrate(w World, hit Size) {
	if m.pos.Y >= hit.Height/2 {
		m.vel.DY -= w.Gravity
	}

	next := BoxAround(m.pos.Add(m.vel), hit)

	if next.Right > w.Width && m.vel.DX > 0 {
		m.vel.DX = -m.elasticity * m.vel.DX
	}
	if next.Top > w.Height && m.vel.DY > 0 {
		m.vel.DY = -m.elasticity * m.vel.DY
	}
	if next.Left < 0 && m.vel.DX < 0 {
		m.vel.DX = -m.elasticity * m.vel.DX
	}
	if next.Bottom < 0 && m.vel.DY < 0 {
		m.vel.DY = -m.elasticity * m.vel.DY
	}

	m.pos = m.pos.Add(m.vel)
}

// Deflect reverses both velocity components, scaled by this body's
// elasticity, when the predicted boxes overlap. Bodies sharing an ID never
// deflect each other.
func (m *Motion) Deflect(hit Size, other Snapshot) {
	if other.ID == m.id {
		return
	}
	if !BoxAround(m.pos.Add(m.vel), hit).Overlaps(other.Predicted()) {
		return
	}
	m.vel.DX = -m.elasticity * m.vel.DX
	m.vel.DY = -m.elasticity * m.vel.DY
}
