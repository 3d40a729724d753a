// Package physics holds the simulation core: circular bodies moving through a
// bounded arena under constant gravity.
//
// A body is described by two capabilities:
//
//   - [Geometry]: shape-specific queries (hit box, center)
//   - [Body]: shared kinematics ([Motion]) plus the two state transitions,
//     Update and Collide
//
// The only shape is [Circle]. A new shape embeds [Motion] and supplies its own
// hit box; the integration and reflection rules come for free.
//
// # Approximations
//
// Wall and body reflection is decided on the predicted position (position plus
// velocity) and applied to the velocity before integration. It is not a swept
// test, so fast bodies may finish a tick past a wall or skip through another
// body. Body-body detection compares axis-aligned boxes, not circles.
package physics
