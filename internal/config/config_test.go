package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Atom != "strontium" {
		t.Errorf("default atom %q", cfg.Atom)
	}
	if cfg.Count != DefaultAtoms {
		t.Errorf("default count %d", cfg.Count)
	}
	if cfg.Oven.VMinTransverse <= 0 {
		t.Error("default transverse domain must exclude zero")
	}

	crit := cfg.ClassifyCriteria()
	if !(0 < crit.Innermost && crit.Innermost < crit.TrapHalfWidth && crit.TrapHalfWidth < crit.Cutoff) {
		t.Errorf("default criteria misordered: %+v", crit)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Atom = "ytterbium"
	cfg.Count = 123
	cfg.Oven.Temperature = 700
	cfg.Sweep.Workers = 8

	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Atom != "ytterbium" || loaded.Count != 123 {
		t.Errorf("roundtrip lost fields: %+v", loaded)
	}
	if loaded.Oven.Temperature != 700 {
		t.Errorf("oven temperature %g", loaded.Oven.Temperature)
	}
	if loaded.Sweep.Workers != 8 {
		t.Errorf("sweep workers %d", loaded.Sweep.Workers)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("atom: rubidium\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Atom != "rubidium" {
		t.Errorf("atom %q", cfg.Atom)
	}
	if cfg.Oven.Diameter != DefaultDiameter {
		t.Errorf("diameter default lost: %g", cfg.Oven.Diameter)
	}
}

func TestAtomSpecies(t *testing.T) {
	cfg := DefaultConfig()
	a, err := cfg.AtomSpecies()
	if err != nil {
		t.Fatalf("species lookup failed: %v", err)
	}
	if a.Mass <= 0 {
		t.Error("non-positive mass")
	}

	cfg.Atom = "unobtainium"
	if _, err := cfg.AtomSpecies(); err == nil {
		t.Error("expected error for unknown atom")
	}
}

func TestPresets(t *testing.T) {
	for name, build := range Presets {
		cfg := build()
		if cfg == nil {
			t.Fatalf("preset %q returned nil", name)
		}
		if _, err := cfg.AtomSpecies(); err != nil {
			t.Errorf("preset %q: %v", name, err)
		}
	}
	if len(PresetNames()) != len(Presets) {
		t.Error("preset names incomplete")
	}
}
