package metrics

import (
	"math"

	"github.com/san-kum/meshwave/internal/mesh"
	"github.com/san-kum/meshwave/internal/physics"
)

// EnergyDrift tracks the worst relative deviation of total mechanical
// energy from its initial value over the run.
type EnergyDrift struct {
	name    string
	params  physics.Params
	mass    *mesh.Grid
	dynamic *mesh.Mask

	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(p physics.Params, mass *mesh.Grid, dynamic *mesh.Mask) *EnergyDrift {
	return &EnergyDrift{
		name:    "energy_drift",
		params:  p,
		mass:    mass,
		dynamic: dynamic,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(pos, vel *mesh.Grid, t float64) {
	energy := physics.Energy(pos, vel, e.mass, e.dynamic, e.params)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
