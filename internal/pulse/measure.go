package pulse

import "fmt"

// WeightedMagnetization returns the pulse-weighted time average of the
// magnetization series, expressed as a fraction of the first (pre-pulse
// equilibrium) sample. This is what a probe pulse with the given
// intensity profile would record instead of any instantaneous value.
func WeightedMagnetization(times, p, m []float64) (float64, error) {
	avg, err := weightedAverage(times, p, m)
	if err != nil {
		return 0, err
	}
	if m[0] == 0 {
		return 0, fmt.Errorf("%w: zero pre-pulse magnetization", ErrSeries)
	}
	return avg / m[0], nil
}

// WeightedTemperature returns the pulse-weighted time average of a
// temperature series, without normalization.
func WeightedTemperature(times, p, temp []float64) (float64, error) {
	return weightedAverage(times, p, temp)
}

func weightedAverage(times, p, y []float64) (float64, error) {
	if err := checkGrid(times); err != nil {
		return 0, err
	}
	if len(p) != len(times) || len(y) != len(times) {
		return 0, fmt.Errorf("%w: got %d times, %d pulse, %d values", ErrSeries, len(times), len(p), len(y))
	}

	norm := Trapz(times, p)
	if norm == 0 {
		return 0, fmt.Errorf("%w: pulse integrates to zero", ErrSeries)
	}

	weighted := make([]float64, len(y))
	for i := range y {
		weighted[i] = p[i] * y[i]
	}
	return Trapz(times, weighted) / norm, nil
}
