package m3tm

import (
	"fmt"
	"math"
)

// History is the recorded trajectory of a sample: four row-aligned
// series, one row per snapshot, keyed by time. The last row always
// equals the live state of the sample that owns it.
type History struct {
	T   []float64
	Te  []float64
	Tph []float64
	M   []float64
}

func (h *History) Len() int { return len(h.T) }

func (h *History) append(t, te, tph, m float64) {
	h.T = append(h.T, t)
	h.Te = append(h.Te, te)
	h.Tph = append(h.Tph, tph)
	h.M = append(h.M, m)
}

// IsFinite reports whether every recorded value is finite. Numerical
// blow-up from an unstable timestep shows up here, not as a step error.
func (h *History) IsFinite() bool {
	for i := range h.T {
		if !isFinite(h.Te[i]) || !isFinite(h.Tph[i]) || !isFinite(h.M[i]) {
			return false
		}
	}
	return true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Sample is the mutable three-temperature state of one material:
// electron temperature, phonon temperature, and normalized
// magnetization. It is advanced one explicit Euler step at a time and
// is not safe for concurrent use; each simulation run constructs its
// own Sample.
type Sample struct {
	Mat  Material
	Te   float64
	Tph  float64
	M    float64
	Time float64
	Hist History
}

// NewSample constructs a sample at thermal equilibrium: temperatures
// are taken as given and the magnetization is solved from the
// mean-field self-consistency condition at te0. The history starts
// with exactly the initial snapshot.
func NewSample(mat Material, te0, tph0, t0 float64) (*Sample, error) {
	if err := mat.Validate(); err != nil {
		return nil, err
	}
	if te0 <= 0 || tph0 <= 0 {
		return nil, fmt.Errorf("%w: initial temperatures must be positive (te=%g, tph=%g)", ErrInvalidInput, te0, tph0)
	}

	m0, err := EquilibriumMagnetization(te0, mat.Tc)
	if err != nil {
		return nil, err
	}

	s := &Sample{Mat: mat, Te: te0, Tph: tph0, M: m0, Time: t0}
	s.Hist.append(t0, te0, tph0, m0)
	return s, nil
}

// Step advances the state by dt with the given absorbed power density
// delivered to the electron bath. All three updates read the pre-step
// values of the coupled variables (a single simultaneous first-order
// discretization), then a snapshot is appended to the history.
//
// There is no stability guard: the caller chooses dt small enough for
// the stiffness of the scenario, and checks Hist.IsFinite afterwards.
func (s *Sample) Step(dt, power float64) error {
	if dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidInput, dt)
	}
	if power < 0 {
		return fmt.Errorf("%w: absorbed power must be non-negative, got %g", ErrInvalidInput, power)
	}

	te, tph, m := s.Te, s.Tph, s.M

	s.Time += dt

	ce := s.Mat.Gamma * te
	s.Te = te + dt*(s.Mat.Gep*(tph-te)+power)/ce
	s.Tph = tph + dt*s.Mat.Gep*(te-tph)/s.Mat.Cp

	f := EquilibriumResidual(m, te, s.Mat.Tc)
	s.M = m + dt*s.Mat.R*m*(tph/s.Mat.Tc)*f

	s.Hist.append(s.Time, s.Te, s.Tph, s.M)
	return nil
}
