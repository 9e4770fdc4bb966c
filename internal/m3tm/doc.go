// Package m3tm implements the microscopic three-temperature model of
// ultrafast demagnetization: coupled electron temperature, phonon
// temperature, and mean-field magnetization driven by an absorbed
// optical or X-ray pulse.
//
//   - [Material]: per-material constants (heat capacities, coupling,
//     Curie temperature, demagnetization rate)
//   - [Sample]: the mutable simulation state with its append-only
//     trajectory [History]
//   - [EquilibriumMagnetization]: the Curie-Weiss self-consistency
//     solve used at construction
//
// # Example
//
//	s, _ := m3tm.NewSample(m3tm.Nickel(), 273.15, 273.15, 0)
//	s.Step(1e-17, 0)
//
// # Thread Safety
//
// A Sample is owned by the caller that constructed it and must not be
// stepped concurrently. Construct one Sample per run.
package m3tm
