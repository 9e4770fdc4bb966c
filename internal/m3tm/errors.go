package m3tm

import "errors"

// Domain errors for sample construction and stepping.
var (
	// ErrNoConvergence indicates the equilibrium magnetization solve
	// failed for the given electron and Curie temperatures.
	ErrNoConvergence = errors.New("m3tm: equilibrium magnetization solve did not converge")

	// ErrInvalidInput indicates a non-positive temperature, timestep,
	// or absorbed power where one is required.
	ErrInvalidInput = errors.New("m3tm: invalid input")

	// ErrBadMaterial indicates a material constant outside its valid range.
	ErrBadMaterial = errors.New("m3tm: material constant out of valid bounds")
)
