package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/meshwave/internal/mesh"
	"github.com/san-kum/meshwave/internal/physics"
)

// Simulator advances a mesh with the velocity-Verlet scheme: forces are
// evaluated at both ends of each step, which keeps the energy of an undamped
// oscillatory mesh bounded over long runs.
type Simulator struct {
	params    physics.Params
	mass      *mesh.Grid
	dynamic   *mesh.Mask
	metrics   []Metric
	observers []Observer
}

func New(params physics.Params, mass *mesh.Grid, dynamic *mesh.Mask) *Simulator {
	return &Simulator{
		params:  params,
		mass:    mass,
		dynamic: dynamic,
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run integrates cfg.Steps states starting from the given displacement grid
// with zero initial velocity. The static mask is applied to the initial grid
// and re-applied to position and velocity after every update, so pinned
// cells hold exactly zero for the whole run. Deterministic: identical inputs
// produce identical trajectories.
func (s *Simulator) Run(ctx context.Context, initial *mesh.Grid, cfg Config) (*Result, error) {
	if err := s.validate(initial, cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Times:      make([]float64, 0, cfg.Steps),
		Positions:  make([]*mesh.Grid, 0, cfg.Steps),
		Velocities: make([]*mesh.Grid, 0, cfg.Steps),
		Metrics:    make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	pos := initial.Clone()
	s.pin(pos)
	vel := mesh.New(initial.Ny, initial.Nx)
	t := 0.0

	s.record(result, 0, pos, vel, t)

	initialEnergy := physics.Energy(pos, vel, s.mass, s.dynamic, s.params)

	for step := 1; step < cfg.Steps; step++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		forcesThen := physics.Forces(pos, s.params)
		accThen := s.accel(forcesThen)

		next := mesh.New(pos.Ny, pos.Nx)
		dt2 := cfg.Dt * cfg.Dt
		for i := range next.Data {
			next.Data[i] = pos.Data[i] + vel.Data[i]*cfg.Dt + 0.5*accThen.Data[i]*dt2
		}
		s.pin(next)

		forcesNow := physics.Forces(next, s.params)
		accNow := s.accel(forcesNow)

		halfDt := 0.5 * cfg.Dt
		for i := range vel.Data {
			vel.Data[i] += (accThen.Data[i] + accNow.Data[i]) * halfDt
		}
		pos = next
		s.pinVel(vel)

		t += cfg.Dt

		if cfg.ValidateState && !pos.IsValid() {
			return result, &SimError{Step: step, Time: t, Wrapped: ErrInvalidState}
		}

		s.record(result, step, pos, vel, t)
	}

	finalEnergy := physics.Energy(pos, vel, s.mass, s.dynamic, s.params)
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) record(result *Result, step int, pos, vel *mesh.Grid, t float64) {
	for _, m := range s.metrics {
		m.Observe(pos, vel, t)
	}
	for _, obs := range s.observers {
		obs.OnStep(step, pos, vel, t)
	}
	result.Positions = append(result.Positions, pos.Clone())
	result.Velocities = append(result.Velocities, vel.Clone())
	result.Times = append(result.Times, t)
	result.StepsTaken = step
}

// accel converts a force grid to accelerations. Static cells are set to
// zero rather than divided, so a zero mass there is not a fault.
func (s *Simulator) accel(forces *mesh.Grid) *mesh.Grid {
	acc := mesh.New(forces.Ny, forces.Nx)
	for i := range forces.Data {
		if s.dynamic.Data[i] {
			acc.Data[i] = forces.Data[i] / s.mass.Data[i]
		}
	}
	return acc
}

func (s *Simulator) pin(pos *mesh.Grid) {
	for i := range pos.Data {
		if !s.dynamic.Data[i] {
			pos.Data[i] = 0
		}
	}
}

func (s *Simulator) pinVel(vel *mesh.Grid) {
	for i := range vel.Data {
		if !s.dynamic.Data[i] {
			vel.Data[i] = 0
		}
	}
}

func (s *Simulator) validate(initial *mesh.Grid, cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("sim: dt must be positive, got %g", cfg.Dt)
	}
	if cfg.Steps < 1 {
		return fmt.Errorf("sim: steps must be at least 1, got %d", cfg.Steps)
	}
	if cfg.OutputFPS <= 0 {
		return fmt.Errorf("sim: output fps must be positive, got %d", cfg.OutputFPS)
	}
	if cfg.Decimals < 0 {
		return fmt.Errorf("sim: decimals must be non-negative, got %d", cfg.Decimals)
	}
	if err := s.params.Validate(); err != nil {
		return err
	}
	if !mesh.SameShape(initial, s.mass) || !s.dynamic.MatchesShape(initial) {
		return ErrShapeMismatch
	}
	for i, dyn := range s.dynamic.Data {
		if dyn && s.mass.Data[i] <= 0 {
			return fmt.Errorf("%w: cell (%d,%d)", ErrZeroMass, i/initial.Nx, i%initial.Nx)
		}
	}
	return nil
}
