package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/qplex/atombeam/internal/atoms"
	"github.com/qplex/atombeam/internal/capture"
	"github.com/qplex/atombeam/internal/oven"
)

const (
	DefaultAtoms       = 1000
	DefaultTemperature = 823.0
	DefaultDiameter    = 0.0004
	DefaultLength      = 0.01
	DefaultSigmaX      = 15e-3
	DefaultSigmaY      = 15e-3
	DefaultPlaneZ      = -0.15
	DefaultDuration    = 0.1
	DefaultSteps       = 200
)

// Config is one immutable run description. Loaded once, passed into
// constructors, never read from ambient scope, so several runs with
// different parameters can coexist in one process.
type Config struct {
	Atom     string         `yaml:"atom"`
	Count    int            `yaml:"count"`
	Seed     uint64         `yaml:"seed"`
	Oven     OvenConfig     `yaml:"oven"`
	Sim      SimConfig      `yaml:"sim"`
	Criteria CriteriaConfig `yaml:"criteria"`
	Sweep    SweepConfig    `yaml:"sweep"`
}

type OvenConfig struct {
	Temperature    float64 `yaml:"temperature"`
	Diameter       float64 `yaml:"diameter"`
	Length         float64 `yaml:"length"`
	SigmaX         float64 `yaml:"sigma_x"`
	SigmaY         float64 `yaml:"sigma_y"`
	PlaneZ         float64 `yaml:"plane_z"`
	VMinAxial      float64 `yaml:"v_min_axial"`
	VMaxAxial      float64 `yaml:"v_max_axial"`
	VMinTransverse float64 `yaml:"v_min_transverse"`
	VMaxTransverse float64 `yaml:"v_max_transverse"`
	GridSize       int     `yaml:"grid_size"`
}

type SimConfig struct {
	Duration float64 `yaml:"duration"`
	Steps    int     `yaml:"steps"`
}

type CriteriaConfig struct {
	Cutoff        float64 `yaml:"cutoff"`
	TrapHalfWidth float64 `yaml:"trap_half_width"`
	Innermost     float64 `yaml:"innermost"`
}

type SweepConfig struct {
	// Detunings are -0.5*i*Gamma + 0.5 for i in [GammaFrom, GammaTo).
	GammaFrom int `yaml:"gamma_from"`
	GammaTo   int `yaml:"gamma_to"`
	Workers   int `yaml:"workers"`
}

func DefaultConfig() *Config {
	return &Config{
		Atom:  "strontium",
		Count: DefaultAtoms,
		Oven: OvenConfig{
			Temperature:    DefaultTemperature,
			Diameter:       DefaultDiameter,
			Length:         DefaultLength,
			SigmaX:         DefaultSigmaX,
			SigmaY:         DefaultSigmaY,
			PlaneZ:         DefaultPlaneZ,
			VMinAxial:      5,
			VMaxAxial:      1500,
			VMinTransverse: 1e-5,
			VMaxTransverse: 50,
			GridSize:       oven.DefaultGridSize,
		},
		Sim: SimConfig{
			Duration: DefaultDuration,
			Steps:    DefaultSteps,
		},
		Criteria: CriteriaConfig{
			Cutoff:        0.35,
			TrapHalfWidth: 0.05,
			Innermost:     0.01,
		},
		Sweep: SweepConfig{
			GammaFrom: 2,
			GammaTo:   40,
			Workers:   1,
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

// AtomSpecies resolves the configured species name.
func (c *Config) AtomSpecies() (atoms.Atom, error) {
	a, ok := atoms.ByName(c.Atom)
	if !ok {
		return atoms.Atom{}, fmt.Errorf("config: unknown atom %q", c.Atom)
	}
	return a, nil
}

// Geometry maps the oven section onto sampler parameters.
func (c *Config) Geometry() oven.Geometry {
	o := c.Oven
	return oven.Geometry{
		Temperature:    o.Temperature,
		Diameter:       o.Diameter,
		Length:         o.Length,
		SigmaX:         o.SigmaX,
		SigmaY:         o.SigmaY,
		PlaneZ:         o.PlaneZ,
		VMinAxial:      o.VMinAxial,
		VMaxAxial:      o.VMaxAxial,
		VMinTransverse: o.VMinTransverse,
		VMaxTransverse: o.VMaxTransverse,
		GridSize:       o.GridSize,
	}
}

// ClassifyCriteria maps the criteria section onto the classifier.
func (c *Config) ClassifyCriteria() capture.Criteria {
	crit := capture.DefaultCriteria()
	crit.Cutoff = c.Criteria.Cutoff
	crit.TrapHalfWidth = c.Criteria.TrapHalfWidth
	crit.Innermost = c.Criteria.Innermost
	return crit
}
