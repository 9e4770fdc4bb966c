package metrics

import "github.com/aholtz/demag/internal/sim"

// Recovery tracks the final magnetization as a fraction of the first
// observed value, i.e. how much of the quench has relaxed back by the
// end of the grid.
type Recovery struct {
	m0   float64
	last float64
	seen bool
}

func NewRecovery() *Recovery {
	return &Recovery{}
}

func (r *Recovery) Name() string { return "recovery" }

func (r *Recovery) Observe(s sim.Snapshot) {
	if !r.seen {
		r.m0 = s.M
		r.seen = true
	}
	r.last = s.M
}

func (r *Recovery) Value() float64 {
	if !r.seen || r.m0 == 0 {
		return 0
	}
	return r.last / r.m0
}

func (r *Recovery) Reset() {
	r.m0 = 0
	r.last = 0
	r.seen = false
}
