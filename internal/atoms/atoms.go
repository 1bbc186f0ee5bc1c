// Package atoms holds the species parameter tables used across the
// beam pipeline. Values are in SI units.
package atoms

import "math"

// Boltzmann constant, J/K.
const Boltzmann = 1.380649e-23

// Atomic mass unit, kg.
const amu = 1.66053906660e-27

// Transition describes one optical transition of a species.
type Transition struct {
	// Wavelength in meters.
	Wavelength float64
	// Gamma is the natural linewidth in rad/s.
	Gamma float64
}

// Atom is one species entry: mass plus its addressable transitions
// keyed by name. The "main" transition drives the Zeeman slower.
type Atom struct {
	Name  string
	Mass  float64
	Trans map[string]Transition
}

// ThermalSpeed returns sigma = sqrt(kB*T/M) for this species at
// temperature T.
func (a Atom) ThermalSpeed(temperature float64) float64 {
	return math.Sqrt(Boltzmann * temperature / a.Mass)
}

func Strontium() Atom {
	return Atom{
		Name: "strontium",
		Mass: 87.62 * amu,
		Trans: map[string]Transition{
			"main":   {Wavelength: 461e-9, Gamma: 2 * math.Pi * 30.5e6},
			"narrow": {Wavelength: 689e-9, Gamma: 2 * math.Pi * 7.4e3},
		},
	}
}

func Ytterbium() Atom {
	return Atom{
		Name: "ytterbium",
		Mass: 173.04 * amu,
		Trans: map[string]Transition{
			"main":   {Wavelength: 399e-9, Gamma: 2 * math.Pi * 29.1e6},
			"narrow": {Wavelength: 556e-9, Gamma: 2 * math.Pi * 182e3},
		},
	}
}

func Rubidium() Atom {
	return Atom{
		Name: "rubidium",
		Mass: 86.909 * amu,
		Trans: map[string]Transition{
			"main": {Wavelength: 780e-9, Gamma: 2 * math.Pi * 6.065e6},
		},
	}
}

// ByName resolves a species from its config name. Unknown names
// return false.
func ByName(name string) (Atom, bool) {
	switch name {
	case "strontium", "sr":
		return Strontium(), true
	case "ytterbium", "yb":
		return Ytterbium(), true
	case "rubidium", "rb":
		return Rubidium(), true
	}
	return Atom{}, false
}
