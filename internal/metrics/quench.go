// Package metrics provides per-run observables computed over the
// simulated trajectory: demagnetization depth, peak bath temperatures,
// and post-pulse recovery.
package metrics

import "github.com/aholtz/demag/internal/sim"

// Quench tracks the deepest fractional loss of magnetization relative
// to the first observed (pre-pulse) value.
type Quench struct {
	m0      float64
	minFrac float64
	tMin    float64
	seen    bool
}

func NewQuench() *Quench {
	return &Quench{minFrac: 1}
}

func (q *Quench) Name() string { return "quench" }

func (q *Quench) Observe(s sim.Snapshot) {
	if !q.seen {
		q.m0 = s.M
		q.seen = true
		return
	}
	if q.m0 == 0 {
		return
	}
	frac := s.M / q.m0
	if frac < q.minFrac {
		q.minFrac = frac
		q.tMin = s.Time
	}
}

// Value returns 1 - min(m/m0): zero for an unperturbed run, approaching
// one for full demagnetization.
func (q *Quench) Value() float64 {
	if !q.seen {
		return 0
	}
	return 1 - q.minFrac
}

// TimeOfMinimum returns the time at which the magnetization was deepest.
func (q *Quench) TimeOfMinimum() float64 { return q.tMin }

func (q *Quench) Reset() {
	q.m0 = 0
	q.minFrac = 1
	q.tMin = 0
	q.seen = false
}
