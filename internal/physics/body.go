package physics

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// G is the gravitational constant in m³/(kg·s²).
	G = 6.67428e-11

	// AU is one astronomical unit in meters.
	AU = 149.6e9
)

// Gravity holds the interaction parameters shared by every body pair.
type Gravity struct {
	G float64
	// MinDistance clamps the separation used for the force magnitude.
	// Zero disables the clamp.
	MinDistance float64
}

func DefaultGravity() Gravity {
	return Gravity{G: G}
}

// BodyParams describes a body at construction time.
type BodyParams struct {
	Name     string
	Position r2.Vec
	Velocity r2.Vec
	Mass     float64
	Radius   float64
	Color    color.RGBA
	Anchor   bool
}

// Body is a gravitating point mass.
type Body struct {
	Name  string
	Pos   r2.Vec
	Vel   r2.Vec
	Color color.RGBA

	// DistanceToAnchor is the separation from the anchor body measured
	// during the last force evaluation against it.
	DistanceToAnchor float64

	mass       float64
	radius     float64
	anchor     bool
	trajectory []r2.Vec
}

// NewBody validates p and returns the body it describes.
func NewBody(p BodyParams) (*Body, error) {
	if !(p.Mass > 0) {
		return nil, fmt.Errorf("%w: %s has mass %g", ErrNonPositiveMass, p.Name, p.Mass)
	}
	return &Body{
		Name:   p.Name,
		Pos:    p.Position,
		Vel:    p.Velocity,
		Color:  p.Color,
		mass:   p.Mass,
		radius: p.Radius,
		anchor: p.Anchor,
	}, nil
}

func (b *Body) Mass() float64   { return b.mass }
func (b *Body) Radius() float64 { return b.radius }
func (b *Body) IsAnchor() bool  { return b.anchor }

// Trajectory returns the positions recorded after each step, oldest first.
// The slice is shared with the body and must not be modified.
func (b *Body) Trajectory() []r2.Vec { return b.trajectory }

// ForceFrom returns the gravitational force other exerts on b.
//
// When other is the anchor, the separation is cached in b.DistanceToAnchor.
// other is never modified.
func (b *Body) ForceFrom(other *Body, g Gravity) r2.Vec {
	dx := other.Pos.X - b.Pos.X
	dy := other.Pos.Y - b.Pos.Y
	r := math.Sqrt(dx*dx + dy*dy)

	if other.anchor {
		b.DistanceToAnchor = r
	}

	if g.MinDistance > 0 && r < g.MinDistance {
		r = g.MinDistance
	}

	f := g.G * b.mass * other.mass / (r * r)
	theta := math.Atan2(dy, dx)

	return r2.Vec{X: math.Cos(theta) * f, Y: math.Sin(theta) * f}
}

// NetForce sums the forces on b from every body except bodies[self].
func (b *Body) NetForce(bodies []*Body, self int, g Gravity) r2.Vec {
	var total r2.Vec
	for j, other := range bodies {
		if j == self {
			continue
		}
		total = r2.Add(total, b.ForceFrom(other, g))
	}
	return total
}

// Advance applies force for dt seconds: velocity first, then position with
// the updated velocity. The new position is appended to the trajectory.
func (b *Body) Advance(force r2.Vec, dt float64) {
	acc := r2.Scale(1/b.mass, force)
	b.Vel = r2.Add(b.Vel, r2.Scale(dt, acc))
	b.Pos = r2.Add(b.Pos, r2.Scale(dt, b.Vel))
	b.trajectory = append(b.trajectory, b.Pos)
}

// Step advances bodies[self], which must be b, by dt under the pull of the
// rest of the set.
func (b *Body) Step(bodies []*Body, self int, g Gravity, dt float64) {
	b.Advance(b.NetForce(bodies, self, g), dt)
}
