package config

import (
	"path/filepath"
	"sort"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Material.Tc != 1388 {
		t.Errorf("expected nickel Curie temperature, got %f", cfg.Material.Tc)
	}
	if cfg.InitTe != DefaultInitTemp || cfg.InitTph != DefaultInitTemp {
		t.Errorf("expected both baths at %f K", DefaultInitTemp)
	}
	if cfg.Pulse.Fluence <= 0 || cfg.Pulse.FWHM <= 0 {
		t.Error("pulse parameters must be positive")
	}
	if cfg.Grid.Start >= cfg.Grid.End || cfg.Grid.Points < 2 {
		t.Error("grid must span a positive window with at least two points")
	}

	if err := cfg.Material.Constants().Validate(); err != nil {
		t.Errorf("default material should validate: %v", err)
	}
}

func TestGridTimes(t *testing.T) {
	g := GridConfig{Start: -1e-13, End: 1e-13, Points: 5}
	times := g.Times()

	if len(times) != 5 {
		t.Fatalf("expected 5 points, got %d", len(times))
	}
	if times[0] != -1e-13 || times[4] != 1e-13 {
		t.Errorf("endpoints not pinned: [%e, %e]", times[0], times[4])
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Pulse.Fluence = 1.5e9
	cfg.InitTe = 500

	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Pulse.Fluence != 1.5e9 {
		t.Errorf("fluence lost in roundtrip: %e", loaded.Pulse.Fluence)
	}
	if loaded.InitTe != 500 {
		t.Errorf("initial temperature lost in roundtrip: %f", loaded.InitTe)
	}
	if loaded.Material.Gep != cfg.Material.Gep {
		t.Errorf("material lost in roundtrip: %e", loaded.Material.Gep)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected at least one preset")
	}
	if !sort.StringsAreSorted(names) {
		t.Error("preset names should be sorted")
	}

	for _, name := range names {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Fatalf("listed preset %q not found", name)
		}
		if err := cfg.Material.Constants().Validate(); err != nil {
			t.Errorf("preset %q material invalid: %v", name, err)
		}
	}

	if GetPreset("no-such-preset") != nil {
		t.Error("unknown preset should return nil")
	}
}
