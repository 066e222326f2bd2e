package sim

import "github.com/san-kum/meshwave/internal/mesh"

type Config struct {
	Dt            float64 // integration timestep, s
	Steps         int     // number of stored states, including the initial one
	OutputFPS     int     // playback frame rate used when resampling
	Decimals      int     // rounding precision of exported values
	ValidateState bool    // abort if a state contains NaN/Inf
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		Steps:         1000,
		OutputFPS:     30,
		Decimals:      4,
		ValidateState: true,
	}
}

// Metric accumulates a scalar over the run, observing one state per step.
type Metric interface {
	Name() string
	Observe(pos, vel *mesh.Grid, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every stored step.
type Observer interface {
	OnStep(step int, pos, vel *mesh.Grid, t float64)
}

// Result holds the full per-step trajectory. Grids are snapshots owned by
// the result; callers may read them freely.
type Result struct {
	Times       []float64
	Positions   []*mesh.Grid
	Velocities  []*mesh.Grid
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
}
