package physics

import "errors"

// Construction errors. The kinematics themselves never fail.
var (
	// ErrInvalidWorld indicates non-positive arena dimensions or tick rate.
	ErrInvalidWorld = errors.New("physics: invalid world")

	// ErrInvalidBody indicates a non-positive radius or negative elasticity.
	ErrInvalidBody = errors.New("physics: invalid body")
)
