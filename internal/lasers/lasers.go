// Package lasers holds the declarative laser and coupling parameter
// tables consumed at the propagator boundary. No beam physics is
// evaluated here; an external force engine interprets these tables.
package lasers

import (
	"fmt"
	"sort"
)

// Polarization names the beam polarization convention.
type Polarization string

const (
	CircularLeft  Polarization = "circular-left"
	CircularRight Polarization = "circular-right"
	Horizontal    Polarization = "horizontal"
)

// GaussianBeam is one laser beam entry. Lengths in meters, power in
// watts; Direction is a unit vector from the beam source.
type GaussianBeam struct {
	Tag           string       `yaml:"tag"`
	Wavelength    float64      `yaml:"wavelength"`
	Waist         float64      `yaml:"waist"`
	Power         float64      `yaml:"power"`
	WaistPosition [3]float64   `yaml:"waist_position"`
	Direction     [3]float64   `yaml:"direction"`
	Polarization  Polarization `yaml:"polarization"`
}

// Coupling ties a beam to an atomic transition at a fixed detuning
// (rad/s, negative below resonance).
type Coupling struct {
	BeamTag    string  `yaml:"beam"`
	Transition string  `yaml:"transition"`
	Detuning   float64 `yaml:"detuning"`
}

// Configuration is the full optical table: beams by tag plus the
// active atom-light couplings. The sweep driver rewrites the slower
// coupling between runs, so mutation is part of the contract; copies
// made with Clone are independent.
type Configuration struct {
	beams     map[string]GaussianBeam
	couplings []Coupling
}

func NewConfiguration(beams ...GaussianBeam) *Configuration {
	c := &Configuration{beams: make(map[string]GaussianBeam, len(beams))}
	for _, b := range beams {
		c.beams[b.Tag] = b
	}
	return c
}

// AddBeam registers or replaces a beam by tag.
func (c *Configuration) AddBeam(b GaussianBeam) { c.beams[b.Tag] = b }

// Beam looks up a beam by tag.
func (c *Configuration) Beam(tag string) (GaussianBeam, bool) {
	b, ok := c.beams[tag]
	return b, ok
}

// AddCoupling activates beamTag on the named transition. The beam
// must already be registered.
func (c *Configuration) AddCoupling(beamTag, transition string, detuning float64) error {
	if _, ok := c.beams[beamTag]; !ok {
		return fmt.Errorf("lasers: no beam tagged %q", beamTag)
	}
	c.couplings = append(c.couplings, Coupling{
		BeamTag:    beamTag,
		Transition: transition,
		Detuning:   detuning,
	})
	return nil
}

// RemoveCoupling drops every coupling of beamTag on the transition.
// Removing a coupling that was never added is a no-op.
func (c *Configuration) RemoveCoupling(transition, beamTag string) {
	kept := c.couplings[:0]
	for _, cp := range c.couplings {
		if cp.Transition != transition || cp.BeamTag != beamTag {
			kept = append(kept, cp)
		}
	}
	c.couplings = kept
}

// Couplings returns the active couplings, sorted by beam tag for
// stable output.
func (c *Configuration) Couplings() []Coupling {
	out := append([]Coupling(nil), c.couplings...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].BeamTag != out[j].BeamTag {
			return out[i].BeamTag < out[j].BeamTag
		}
		return out[i].Transition < out[j].Transition
	})
	return out
}

// Clone returns an independent copy.
func (c *Configuration) Clone() *Configuration {
	out := &Configuration{
		beams:     make(map[string]GaussianBeam, len(c.beams)),
		couplings: append([]Coupling(nil), c.couplings...),
	}
	for tag, b := range c.beams {
		out.beams[tag] = b
	}
	return out
}
