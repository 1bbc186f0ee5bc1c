package lasers

// SlowerBeamTag names the counter-propagating Zeeman slower beam the
// detuning sweep rewrites between runs.
const SlowerBeamTag = "laser_ZS_1"

// SlowerConfiguration returns the reference slowing setup: a single
// broad beam against the atomic flux on the main transition, plus the
// four transverse MOT beams. Powers and waists are table values the
// external engine is free to reinterpret.
func SlowerConfiguration(detuning float64) *Configuration {
	cfg := NewConfiguration(
		GaussianBeam{
			Tag:          SlowerBeamTag,
			Wavelength:   461e-9,
			Waist:        8e-3,
			Power:        40e-3,
			Direction:    [3]float64{0, 0, -1},
			Polarization: CircularLeft,
		},
		GaussianBeam{
			Tag:          "laser_MOT_1",
			Wavelength:   461e-9,
			Waist:        10e-3,
			Power:        10e-3,
			Direction:    [3]float64{1, 0, 0},
			Polarization: CircularRight,
		},
		GaussianBeam{
			Tag:          "laser_MOT_2",
			Wavelength:   461e-9,
			Waist:        10e-3,
			Power:        10e-3,
			Direction:    [3]float64{-1, 0, 0},
			Polarization: CircularRight,
		},
		GaussianBeam{
			Tag:          "laser_MOT_3",
			Wavelength:   461e-9,
			Waist:        10e-3,
			Power:        10e-3,
			Direction:    [3]float64{0, 1, 0},
			Polarization: CircularLeft,
		},
		GaussianBeam{
			Tag:          "laser_MOT_4",
			Wavelength:   461e-9,
			Waist:        10e-3,
			Power:        10e-3,
			Direction:    [3]float64{0, -1, 0},
			Polarization: CircularLeft,
		},
	)
	cfg.AddCoupling(SlowerBeamTag, "main", detuning)
	return cfg
}
