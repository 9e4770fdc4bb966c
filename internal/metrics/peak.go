package metrics

import "github.com/aholtz/demag/internal/sim"

// PeakTemperature tracks the maximum of one bath temperature over the run.
type PeakTemperature struct {
	name  string
	pick  func(sim.Snapshot) float64
	peak  float64
	tPeak float64
	seen  bool
}

func NewPeakElectron() *PeakTemperature {
	return &PeakTemperature{
		name: "peak_te",
		pick: func(s sim.Snapshot) float64 { return s.Te },
	}
}

func NewPeakPhonon() *PeakTemperature {
	return &PeakTemperature{
		name: "peak_tph",
		pick: func(s sim.Snapshot) float64 { return s.Tph },
	}
}

func (p *PeakTemperature) Name() string { return p.name }

func (p *PeakTemperature) Observe(s sim.Snapshot) {
	v := p.pick(s)
	if !p.seen || v > p.peak {
		p.peak = v
		p.tPeak = s.Time
		p.seen = true
	}
}

func (p *PeakTemperature) Value() float64 { return p.peak }

// TimeOfPeak returns the time at which the maximum was reached.
func (p *PeakTemperature) TimeOfPeak() float64 { return p.tPeak }

func (p *PeakTemperature) Reset() {
	p.peak = 0
	p.tPeak = 0
	p.seen = false
}
