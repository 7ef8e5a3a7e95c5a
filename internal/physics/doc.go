// Package physics implements point-mass gravitation in the plane.
//
// A [Body] carries position, velocity, mass and the trail of positions it
// has visited. Forces are plain Newtonian pairs:
//
//   - [Body.ForceFrom]: force exerted on a body by one other body
//   - [Body.NetForce]: sum over a body set, skipping the body's own index
//   - [Body.Advance]: semi-implicit Euler update (velocity, then position)
//   - [StepAll]: advances a whole body set under an [Ordering] policy
//
// # Ordering
//
// [Snapshot] computes every net force from the pre-step positions before
// moving anything. [Sequential] moves each body right after its own force
// evaluation, so later bodies see earlier ones already advanced.
//
//	bodies := []*physics.Body{sun, earth}
//	physics.StepAll(bodies, physics.DefaultGravity(), 86400, physics.Snapshot)
//
// # Degenerate distances
//
// Two coincident bodies divide by zero. With [Gravity.MinDistance] left at
// zero the resulting Inf/NaN propagates into the state; use [Valid] to
// detect it.
package physics
