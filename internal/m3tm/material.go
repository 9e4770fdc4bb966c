package m3tm

import "fmt"

// Material holds the constants of the microscopic three-temperature
// model for one material. Units are SI and must be mutually
// consistent; the simulator itself is unit-agnostic.
type Material struct {
	Cp    float64 `json:"cp"`    // lattice heat capacity, J/(m^3 K)
	Gamma float64 `json:"gamma"` // electron heat capacity coefficient, Ce = Gamma*Te
	Gep   float64 `json:"gep"`   // electron-phonon coupling
	Tc    float64 `json:"tc"`    // Curie temperature, K
	R     float64 `json:"r"`     // demagnetization rate scale, 1/s
}

// Nickel returns the constants used for the nickel quench experiments.
func Nickel() Material {
	return Material{
		Cp:    2.07e6,
		Gamma: 665,
		Gep:   405e6,
		Tc:    1388,
		R:     25.3e12,
	}
}

func (m Material) Validate() error {
	check := func(name string, v float64) error {
		if v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %g", ErrBadMaterial, name, v)
		}
		return nil
	}
	if err := check("cp", m.Cp); err != nil {
		return err
	}
	if err := check("gamma", m.Gamma); err != nil {
		return err
	}
	if err := check("gep", m.Gep); err != nil {
		return err
	}
	if err := check("tc", m.Tc); err != nil {
		return err
	}
	return check("r", m.R)
}
