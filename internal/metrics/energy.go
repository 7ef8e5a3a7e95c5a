package metrics

import (
	"math"

	"github.com/san-kum/orbitsim/internal/physics"
)

// Energy reports the mean total energy of the observed states, in joules.
type Energy struct {
	name        string
	gravity     physics.Gravity
	samples     int
	totalEnergy float64
}

func NewEnergy(g physics.Gravity) *Energy {
	return &Energy{
		name:    "energy",
		gravity: g,
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(bodies []*physics.Body, t float64) {
	e.totalEnergy += physics.TotalEnergy(bodies, e.gravity)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift reports the largest relative deviation from the first
// observed total energy.
type EnergyDrift struct {
	name          string
	gravity       physics.Gravity
	initialEnergy float64
	currentEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(g physics.Gravity) *EnergyDrift {
	return &EnergyDrift{
		name:    "energy_drift",
		gravity: g,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(bodies []*physics.Body, t float64) {
	energy := physics.TotalEnergy(bodies, e.gravity)

	if e.samples == 0 {
		e.initialEnergy = energy
	}

	e.currentEnergy = energy
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Current() float64 {
	return e.currentEnergy
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
