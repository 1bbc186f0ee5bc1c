package config

// Presets are named run configurations for the reference apparatus.
// Values not set here keep their defaults.
var Presets = map[string]func() *Config{
	// The published strontium oven at 823 K.
	"sr-oven": func() *Config {
		return DefaultConfig()
	},
	// Ytterbium variant on the 399 nm transition.
	"yb-oven": func() *Config {
		cfg := DefaultConfig()
		cfg.Atom = "ytterbium"
		cfg.Oven.Temperature = 673
		return cfg
	},
	// Quick smoke run: few atoms, coarse grid, short window.
	"smoke": func() *Config {
		cfg := DefaultConfig()
		cfg.Count = 50
		cfg.Oven.GridSize = 5000
		cfg.Sim.Steps = 50
		cfg.Sweep.GammaTo = 6
		return cfg
	},
}

// PresetNames lists the available presets.
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
