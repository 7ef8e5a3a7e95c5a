package physics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Ordering selects how a body set is advanced within one step.
type Ordering int

const (
	// Snapshot evaluates all forces from pre-step positions, then moves
	// every body.
	Snapshot Ordering = iota
	// Sequential moves each body immediately after its own force
	// evaluation, in slice order.
	Sequential
)

func (o Ordering) String() string {
	switch o {
	case Snapshot:
		return "snapshot"
	case Sequential:
		return "sequential"
	default:
		return fmt.Sprintf("ordering(%d)", int(o))
	}
}

// ParseOrdering maps a configuration name to an Ordering. The empty string
// selects Snapshot.
func ParseOrdering(s string) (Ordering, error) {
	switch s {
	case "", "snapshot":
		return Snapshot, nil
	case "sequential":
		return Sequential, nil
	}
	return 0, fmt.Errorf("unknown ordering: %s", s)
}

// StepAll advances every body by dt.
func StepAll(bodies []*Body, g Gravity, dt float64, order Ordering) {
	if order == Sequential {
		for i, b := range bodies {
			b.Step(bodies, i, g, dt)
		}
		return
	}

	forces := make([]r2.Vec, len(bodies))
	for i, b := range bodies {
		forces[i] = b.NetForce(bodies, i, g)
	}
	for i, b := range bodies {
		b.Advance(forces[i], dt)
	}
}

// Anchor returns the first anchor body, or nil.
func Anchor(bodies []*Body) *Body {
	for _, b := range bodies {
		if b.anchor {
			return b
		}
	}
	return nil
}

// Valid reports whether every position and velocity is finite.
func Valid(bodies []*Body) bool {
	for _, b := range bodies {
		for _, v := range [...]float64{b.Pos.X, b.Pos.Y, b.Vel.X, b.Vel.Y} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

func KineticEnergy(bodies []*Body) float64 {
	ke := 0.0
	for _, b := range bodies {
		ke += 0.5 * b.mass * r2.Norm2(b.Vel)
	}
	return ke
}

func PotentialEnergy(bodies []*Body, g Gravity) float64 {
	pe := 0.0
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			r := r2.Norm(r2.Sub(bodies[j].Pos, bodies[i].Pos))
			if g.MinDistance > 0 && r < g.MinDistance {
				r = g.MinDistance
			}
			pe -= g.G * bodies[i].mass * bodies[j].mass / r
		}
	}
	return pe
}

// TotalEnergy is the sum of kinetic and potential energy in joules.
func TotalEnergy(bodies []*Body, g Gravity) float64 {
	return KineticEnergy(bodies) + PotentialEnergy(bodies, g)
}

func Momentum(bodies []*Body) r2.Vec {
	var p r2.Vec
	for _, b := range bodies {
		p = r2.Add(p, r2.Scale(b.mass, b.Vel))
	}
	return p
}

// AngularMomentum is the z component about the origin.
func AngularMomentum(bodies []*Body) float64 {
	L := 0.0
	for _, b := range bodies {
		L += b.mass * r2.Cross(b.Pos, b.Vel)
	}
	return L
}

func CenterOfMass(bodies []*Body) r2.Vec {
	var sum r2.Vec
	total := 0.0
	for _, b := range bodies {
		sum = r2.Add(sum, r2.Scale(b.mass, b.Pos))
		total += b.mass
	}
	if total == 0 {
		return r2.Vec{}
	}
	return r2.Scale(1/total, sum)
}
