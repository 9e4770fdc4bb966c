package sim

import (
	"context"
	"sync"

	"github.com/aholtz/demag/internal/m3tm"
	"github.com/aholtz/demag/internal/pulse"
)

type SweepPoint struct {
	Fluence  float64
	Quench   float64 // fraction of the initial magnetization lost at the deepest point
	Measured Measurements
}

// Sweep runs the same scenario at several pulse energies in parallel,
// one goroutine per fluence. Each run constructs its own sample via
// newSample, so no state is shared between runs and the points come
// back in fluence order.
type Sweep struct {
	newSample func() (*m3tm.Sample, error)
	fwhm      float64
	fluences  []float64
}

func NewSweep(newSample func() (*m3tm.Sample, error), fwhm float64, fluences []float64) *Sweep {
	return &Sweep{newSample: newSample, fwhm: fwhm, fluences: fluences}
}

func (sw *Sweep) Run(ctx context.Context, times []float64, cfg Config) ([]SweepPoint, error) {
	points := make([]SweepPoint, len(sw.fluences))
	errs := make([]error, len(sw.fluences))

	var wg sync.WaitGroup
	for i, fl := range sw.fluences {
		wg.Add(1)
		go func(idx int, fluence float64) {
			defer wg.Done()

			p, err := pulse.Gaussian(times, fluence, sw.fwhm)
			if err != nil {
				errs[idx] = err
				return
			}

			s, err := sw.newSample()
			if err != nil {
				errs[idx] = err
				return
			}

			res, err := New().Run(ctx, s, times, p, cfg)
			if err != nil {
				errs[idx] = err
				return
			}

			points[idx] = SweepPoint{
				Fluence:  fluence,
				Quench:   quench(res),
				Measured: res.Measured,
			}
		}(i, fl)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return points, nil
}

func quench(res *Result) float64 {
	if len(res.M) == 0 || res.M[0] == 0 {
		return 0
	}
	min := res.M[0]
	for _, m := range res.M {
		if m < min {
			min = m
		}
	}
	return 1 - min/res.M[0]
}
