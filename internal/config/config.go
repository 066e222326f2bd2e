package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/meshwave/internal/mesh"
	"github.com/san-kum/meshwave/internal/physics"
	"github.com/san-kum/meshwave/internal/sim"
)

const (
	DefaultDt        = 0.001
	DefaultSteps     = 5000
	DefaultFPS       = 30
	DefaultDecimals  = 4
	DefaultElastic   = 40.0
	DefaultLength    = 0.05
	DefaultSep       = 0.1
	DefaultMass      = 0.1
	DefaultAmplitude = 1.0
)

type Config struct {
	Name    string        `yaml:"name"`
	Physics PhysicsConfig `yaml:"physics"`
	Output  OutputConfig  `yaml:"output"`
	Grids   GridsConfig   `yaml:"grids"`
}

type PhysicsConfig struct {
	MassScale       float64 `yaml:"mass_scale"`
	AmplitudeScale  float64 `yaml:"amplitude_scale"`
	ElasticConstant float64 `yaml:"elastic_constant"`
	NaturalLength   float64 `yaml:"natural_length"`
	Separation      float64 `yaml:"particle_separation"`
	Timestep        float64 `yaml:"timestep"`
	Steps           int     `yaml:"steps"`
}

type OutputConfig struct {
	FPS      int `yaml:"fps"`
	Decimals int `yaml:"decimals"`
}

// GridsConfig names the per-cell inputs. Either Dir points at a directory
// with dynamic.png, mass.png and amplitude.png, or the three grids are
// written inline.
type GridsConfig struct {
	Dir       string      `yaml:"dir,omitempty"`
	Dynamic   [][]int     `yaml:"dynamic,omitempty"`
	Mass      [][]float64 `yaml:"mass,omitempty"`
	Amplitude [][]float64 `yaml:"amplitude,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Name: "mesh",
		Physics: PhysicsConfig{
			MassScale:       DefaultMass,
			AmplitudeScale:  DefaultAmplitude,
			ElasticConstant: DefaultElastic,
			NaturalLength:   DefaultLength,
			Separation:      DefaultSep,
			Timestep:        DefaultDt,
			Steps:           DefaultSteps,
		},
		Output: OutputConfig{
			FPS:      DefaultFPS,
			Decimals: DefaultDecimals,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params extracts the run-wide spring constants.
func (c *Config) Params() physics.Params {
	return physics.Params{
		Elastic:       c.Physics.ElasticConstant,
		NaturalLength: c.Physics.NaturalLength,
		Separation:    c.Physics.Separation,
	}
}

// SimConfig extracts the integrator and output settings.
func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		Dt:            c.Physics.Timestep,
		Steps:         c.Physics.Steps,
		OutputFPS:     c.Output.FPS,
		Decimals:      c.Output.Decimals,
		ValidateState: true,
	}
}

// BuildInputs produces the mesh inputs: the mass grid (cell values times
// MassScale), the initial displacement (amplitude times AmplitudeScale) and
// the dynamic mask. All three must agree on shape.
func (c *Config) BuildInputs() (mass, initial *mesh.Grid, dynamic *mesh.Mask, err error) {
	if c.Grids.Dir != "" {
		mass, initial, dynamic, err = readGridDir(c.Grids.Dir)
	} else {
		mass, initial, dynamic, err = c.inlineGrids()
	}
	if err != nil {
		return nil, nil, nil, err
	}

	if !mesh.SameShape(mass, initial) || !dynamic.MatchesShape(mass) {
		return nil, nil, nil, fmt.Errorf("config: grid shapes disagree: mass %dx%d, amplitude %dx%d, dynamic %dx%d",
			mass.Ny, mass.Nx, initial.Ny, initial.Nx, dynamic.Ny, dynamic.Nx)
	}

	return mass.Scaled(c.Physics.MassScale), initial.Scaled(c.Physics.AmplitudeScale), dynamic, nil
}

func (c *Config) inlineGrids() (*mesh.Grid, *mesh.Grid, *mesh.Mask, error) {
	if len(c.Grids.Mass) == 0 || len(c.Grids.Amplitude) == 0 || len(c.Grids.Dynamic) == 0 {
		return nil, nil, nil, fmt.Errorf("config: no grid source: set grids.dir or inline mass, amplitude and dynamic")
	}
	mass, err := mesh.FromRows(c.Grids.Mass)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("config: mass: %w", err)
	}
	amp, err := mesh.FromRows(c.Grids.Amplitude)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("config: amplitude: %w", err)
	}
	dyn, err := mesh.MaskFromRows(c.Grids.Dynamic)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("config: dynamic: %w", err)
	}
	return mass, amp, dyn, nil
}

// Validate surfaces configuration errors before any integration starts.
func (c *Config) Validate() error {
	p := c.Physics
	if p.Timestep <= 0 {
		return fmt.Errorf("config: timestep must be positive, got %g", p.Timestep)
	}
	if p.Steps < 1 {
		return fmt.Errorf("config: steps must be at least 1, got %d", p.Steps)
	}
	if p.MassScale <= 0 {
		return fmt.Errorf("config: mass_scale must be positive, got %g", p.MassScale)
	}
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if c.Output.FPS <= 0 {
		return fmt.Errorf("config: output fps must be positive, got %d", c.Output.FPS)
	}
	if c.Output.Decimals < 0 {
		return fmt.Errorf("config: output decimals must be non-negative, got %d", c.Output.Decimals)
	}
	return nil
}
