package m3tm

import (
	"fmt"
	"math"

	"github.com/aholtz/demag/internal/optim"
)

func coth(x float64) float64 {
	return 1 / math.Tanh(x)
}

// EquilibriumResidual evaluates the mean-field self-consistency
// condition 1 - m*coth(m*Tc/Te). Its zero in m is the equilibrium
// magnetization at electron temperature te.
func EquilibriumResidual(m, te, tc float64) float64 {
	return 1 - m*coth(m*tc/te)
}

// EquilibriumMagnetization solves the self-consistency condition for
// the equilibrium magnetization at electron temperature te. The
// condition has no closed form; the solve starts from m = 1 and is
// deterministic for fixed inputs. At the Curie temperature the solve
// lands on the vanishing root; above it no root exists and
// ErrNoConvergence is returned.
func EquilibriumMagnetization(te, tc float64) (float64, error) {
	if te <= 0 || tc <= 0 {
		return 0, fmt.Errorf("%w: temperatures must be positive (te=%g, tc=%g)", ErrInvalidInput, te, tc)
	}

	f := func(m float64) float64 { return EquilibriumResidual(m, te, tc) }
	root, err := optim.FindRoot(f, 1.0, optim.DefaultRootOptions())
	if err != nil {
		return 0, fmt.Errorf("%w: te=%g tc=%g: %v", ErrNoConvergence, te, tc, err)
	}
	return root, nil
}
