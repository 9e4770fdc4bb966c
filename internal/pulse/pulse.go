// Package pulse synthesizes excitation waveforms and models what a
// finite-duration probe pulse records: time averages weighted by the
// probe's own intensity profile.
package pulse

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrGrid indicates a time grid that is too short or not strictly increasing.
	ErrGrid = errors.New("pulse: time grid must be strictly increasing with at least two points")

	// ErrShape indicates a non-positive pulse duration.
	ErrShape = errors.New("pulse: fwhm must be positive")

	// ErrSeries indicates mismatched or degenerate series passed to a measurement.
	ErrSeries = errors.New("pulse: series must share the time grid")
)

// Linspace returns n evenly spaced points covering [start, end].
func Linspace(start, end float64, n int) []float64 {
	if n < 2 {
		return []float64{start}
	}
	ts := make([]float64, n)
	step := (end - start) / float64(n-1)
	for i := range ts {
		ts[i] = start + float64(i)*step
	}
	ts[n-1] = end
	return ts
}

// Trapz integrates y over the (possibly nonuniform) grid t by the
// trapezoidal rule.
func Trapz(t, y []float64) float64 {
	sum := 0.0
	for i := 1; i < len(t); i++ {
		sum += 0.5 * (y[i] + y[i-1]) * (t[i] - t[i-1])
	}
	return sum
}

// Gaussian synthesizes an absorbed-power pulse on the grid: a Gaussian
// centered at t = 0 whose trapezoidal time integral over the grid
// equals fluence. The width is given as FWHM and converted to the
// Gaussian sigma.
//
// The grid must sample the Gaussian adequately; a grid that is too
// coarse or clips the tails shifts the integral away from fluence and
// is the caller's responsibility.
func Gaussian(times []float64, fluence, fwhm float64) ([]float64, error) {
	if err := checkGrid(times); err != nil {
		return nil, err
	}
	if fwhm <= 0 {
		return nil, fmt.Errorf("%w, got %g", ErrShape, fwhm)
	}

	sigma := fwhm / (2 * math.Sqrt(2*math.Ln2))

	p := make([]float64, len(times))
	for i, t := range times {
		p[i] = math.Exp(-t * t / (2 * sigma * sigma))
	}

	raw := Trapz(times, p)
	scale := fluence / raw
	for i := range p {
		p[i] *= scale
	}
	return p, nil
}

func checkGrid(times []float64) error {
	if len(times) < 2 {
		return ErrGrid
	}
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			return fmt.Errorf("%w (violation at index %d)", ErrGrid, i)
		}
	}
	return nil
}
