// Package sim drives a three-temperature sample over a time grid under
// a synthesized excitation pulse and collects the trajectory, metric
// values, and pulse-weighted measurements of the run.
package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/aholtz/demag/internal/m3tm"
	"github.com/aholtz/demag/internal/pulse"
)

type Runner struct {
	metrics   []Metric
	observers []Observer
}

func New() *Runner {
	return &Runner{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run steps the sample across the grid. Each interval is forced with
// the pulse value from the interval's start, so pulse[i-1] drives the
// step from times[i-1] to times[i]. The sample must have been
// constructed at times[0].
//
// Run returns an error only for invalid inputs or context
// cancellation. Numerical blow-up is recorded in Result.Errors (when
// cfg.ValidateState is set) and is otherwise observable through the
// returned series.
func (r *Runner) Run(ctx context.Context, s *m3tm.Sample, times, p []float64, cfg Config) (*Result, error) {
	if err := r.validate(s, times, p); err != nil {
		return nil, err
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	result := &Result{
		Pulse:   append([]float64(nil), p...),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	r.notify(Snapshot{Time: s.Time, Te: s.Te, Tph: s.Tph, M: s.M, Power: p[0]})

	for i := 1; i < len(times); i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		dt := times[i] - times[i-1]
		if err := s.Step(dt, p[i-1]); err != nil {
			return nil, err
		}

		result.StepsTaken++
		r.notify(Snapshot{Time: s.Time, Te: s.Te, Tph: s.Tph, M: s.M, Power: p[i]})

		if cfg.ValidateState && !finite(s.Te, s.Tph, s.M) {
			result.Errors = append(result.Errors, StepError{
				Step:    i,
				Time:    s.Time,
				Message: "state went non-finite (NaN/Inf)",
			})
			break
		}
	}

	h := &s.Hist
	result.Times = append([]float64(nil), h.T...)
	result.Te = append([]float64(nil), h.Te...)
	result.Tph = append([]float64(nil), h.Tph...)
	result.M = append([]float64(nil), h.M...)

	if len(result.Times) == len(p) {
		r.measure(result, times, p)
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (r *Runner) validate(s *m3tm.Sample, times, p []float64) error {
	if s == nil {
		return fmt.Errorf("%w: nil sample", m3tm.ErrInvalidInput)
	}
	if len(times) < 2 {
		return pulse.ErrGrid
	}
	if len(p) != len(times) {
		return fmt.Errorf("%w: %d grid points but %d pulse values", pulse.ErrSeries, len(times), len(p))
	}
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			return fmt.Errorf("%w (violation at index %d)", pulse.ErrGrid, i)
		}
	}
	if s.Hist.Len() != 1 || s.Time != times[0] {
		return fmt.Errorf("%w: sample must be freshly constructed at the grid start t=%g", m3tm.ErrInvalidInput, times[0])
	}
	return nil
}

func (r *Runner) notify(snap Snapshot) {
	for _, m := range r.metrics {
		m.Observe(snap)
	}
	for _, o := range r.observers {
		o.OnStep(snap)
	}
}

func (r *Runner) measure(result *Result, times, p []float64) {
	if wm, err := pulse.WeightedMagnetization(times, p, result.M); err == nil {
		result.Measured.Magnetization = wm
	}
	if wt, err := pulse.WeightedTemperature(times, p, result.Te); err == nil {
		result.Measured.ElectronTemperature = wt
	}
	if wt, err := pulse.WeightedTemperature(times, p, result.Tph); err == nil {
		result.Measured.PhononTemperature = wt
	}
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
