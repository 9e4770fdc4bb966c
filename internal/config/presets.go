package config

import "sort"

var Presets = map[string]*Config{
	// The quench scenario from the nickel absorption experiments.
	"nickel-quench": DefaultConfig(),

	// Same sample, roughly half the absorbed energy: partial quench.
	"nickel-gentle": {
		Material: DefaultConfig().Material,
		InitTe:   DefaultInitTemp,
		InitTph:  DefaultInitTemp,
		Grid:     GridConfig{Start: DefaultStart, End: DefaultEnd, Points: DefaultPoints},
		Pulse:    PulseConfig{Fluence: 2.0e9, FWHM: DefaultFWHM},
	},

	// Longer pulse at the same energy: slower heating, shallower quench.
	"nickel-long-pulse": {
		Material: DefaultConfig().Material,
		InitTe:   DefaultInitTemp,
		InitTph:  DefaultInitTemp,
		Grid:     GridConfig{Start: -300e-15, End: 300e-15, Points: 60000},
		Pulse:    PulseConfig{Fluence: DefaultFluence, FWHM: 120e-15},
	},

	// Sample held near Tc before the pulse arrives.
	"nickel-warm": {
		Material: DefaultConfig().Material,
		InitTe:   900,
		InitTph:  900,
		Grid:     GridConfig{Start: DefaultStart, End: DefaultEnd, Points: DefaultPoints},
		Pulse:    PulseConfig{Fluence: DefaultFluence, FWHM: DefaultFWHM},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
