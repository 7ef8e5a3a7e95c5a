package metrics

import (
	"math"

	"github.com/san-kum/orbitsim/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

// MomentumDrift reports the largest change in total linear momentum, in
// kg·m/s, relative to the first observation.
type MomentumDrift struct {
	name     string
	initial  r2.Vec
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{
		name: "momentum_drift",
	}
}

func (m *MomentumDrift) Name() string { return m.name }

func (m *MomentumDrift) Observe(bodies []*physics.Body, t float64) {
	p := physics.Momentum(bodies)
	if m.samples == 0 {
		m.initial = p
	}
	m.samples++
	m.maxDrift = math.Max(m.maxDrift, r2.Norm(r2.Sub(p, m.initial)))
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.initial = r2.Vec{}
	m.maxDrift = 0
	m.samples = 0
}
