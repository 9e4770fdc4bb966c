package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aholtz/demag/internal/m3tm"
	"github.com/aholtz/demag/internal/pulse"
)

const (
	DefaultInitTemp = 273.15
	DefaultFluence  = 4.039e9
	DefaultFWHM     = 39e-15
	DefaultStart    = -100e-15
	DefaultEnd      = 100e-15
	DefaultPoints   = 20000
)

type Config struct {
	Material MaterialConfig `yaml:"material"`
	InitTe   float64        `yaml:"init_te"`
	InitTph  float64        `yaml:"init_tph"`
	Grid     GridConfig     `yaml:"grid"`
	Pulse    PulseConfig    `yaml:"pulse"`
}

type MaterialConfig struct {
	Cp    float64 `yaml:"cp"`
	Gamma float64 `yaml:"gamma"`
	Gep   float64 `yaml:"gep"`
	Tc    float64 `yaml:"tc"`
	R     float64 `yaml:"r"`
}

type GridConfig struct {
	Start  float64 `yaml:"start"`
	End    float64 `yaml:"end"`
	Points int     `yaml:"points"`
}

type PulseConfig struct {
	Fluence float64 `yaml:"fluence"`
	FWHM    float64 `yaml:"fwhm"`
}

// DefaultConfig is the nickel quench scenario: a 39 fs pulse of
// 4.039e9 J/m^3 absorbed energy density on a room-temperature sample
// over a +/-100 fs grid.
func DefaultConfig() *Config {
	ni := m3tm.Nickel()
	return &Config{
		Material: MaterialConfig{Cp: ni.Cp, Gamma: ni.Gamma, Gep: ni.Gep, Tc: ni.Tc, R: ni.R},
		InitTe:   DefaultInitTemp,
		InitTph:  DefaultInitTemp,
		Grid:     GridConfig{Start: DefaultStart, End: DefaultEnd, Points: DefaultPoints},
		Pulse:    PulseConfig{Fluence: DefaultFluence, FWHM: DefaultFWHM},
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

func (m MaterialConfig) Constants() m3tm.Material {
	return m3tm.Material{Cp: m.Cp, Gamma: m.Gamma, Gep: m.Gep, Tc: m.Tc, R: m.R}
}

// Times materializes the stepping grid.
func (g GridConfig) Times() []float64 {
	return pulse.Linspace(g.Start, g.End, g.Points)
}
