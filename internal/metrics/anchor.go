package metrics

import (
	"math"

	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
)

// Extreme selects which end of the anchor distance range is reported.
type Extreme int

const (
	Closest Extreme = iota
	Farthest
)

// AnchorDistance tracks the closest or farthest approach of one body to the
// anchor, as cached by the body during force evaluation.
type AnchorDistance struct {
	body    string
	extreme Extreme
	value   float64
	seen    bool
}

func NewAnchorDistance(body string, extreme Extreme) *AnchorDistance {
	return &AnchorDistance{body: body, extreme: extreme}
}

func (a *AnchorDistance) Name() string {
	if a.extreme == Farthest {
		return "aphelion_" + a.body
	}
	return "perihelion_" + a.body
}

func (a *AnchorDistance) Observe(bodies []*physics.Body, t float64) {
	for _, b := range bodies {
		if b.Name != a.body || b.IsAnchor() || b.DistanceToAnchor == 0 {
			continue
		}
		d := b.DistanceToAnchor
		switch {
		case !a.seen:
			a.value = d
		case a.extreme == Farthest:
			a.value = math.Max(a.value, d)
		default:
			a.value = math.Min(a.value, d)
		}
		a.seen = true
		return
	}
}

func (a *AnchorDistance) Value() float64 { return a.value }

func (a *AnchorDistance) Reset() {
	a.value = 0
	a.seen = false
}

// Defaults returns the metrics a headless run reports for bodies.
func Defaults(bodies []*physics.Body, g physics.Gravity) []sim.Metric {
	out := []sim.Metric{
		NewEnergy(g),
		NewEnergyDrift(g),
		NewMomentumDrift(),
		NewStability(100 * physics.AU),
	}
	for _, b := range bodies {
		if b.IsAnchor() {
			continue
		}
		out = append(out, NewAnchorDistance(b.Name, Closest), NewAnchorDistance(b.Name, Farthest))
	}
	return out
}
