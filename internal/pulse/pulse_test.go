package pulse

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinspace(t *testing.T) {
	ts := Linspace(-1, 1, 5)
	require.Len(t, ts, 5)
	assert.Equal(t, -1.0, ts[0])
	assert.Equal(t, 1.0, ts[4])
	assert.InDelta(t, 0.0, ts[2], 1e-15)
}

func TestTrapzConstant(t *testing.T) {
	ts := Linspace(0, 2, 101)
	ys := make([]float64, len(ts))
	for i := range ys {
		ys[i] = 3.0
	}
	assert.InDelta(t, 6.0, Trapz(ts, ys), 1e-12)
}

func TestGaussianEnergyConservation(t *testing.T) {
	ts := Linspace(-100e-15, 100e-15, 10001)
	const fluence = 4.039e9

	p, err := Gaussian(ts, fluence, 39e-15)
	require.NoError(t, err)
	require.Len(t, p, len(ts))

	got := Trapz(ts, p)
	assert.InDelta(t, fluence, got, fluence*1e-6, "rescaled integral must equal the requested fluence")
}

func TestGaussianWidthConvention(t *testing.T) {
	// grid hitting t = 0 and t = +/-FWHM/2 exactly
	const fwhm = 40e-15
	ts := Linspace(-fwhm, fwhm, 5)

	p, err := Gaussian(ts, 1.0, fwhm)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, p[1]/p[2], 1e-12, "value at -FWHM/2 should be half the peak")
	assert.InDelta(t, 0.5, p[3]/p[2], 1e-12, "value at +FWHM/2 should be half the peak")
}

func TestGaussianPeakCentered(t *testing.T) {
	ts := Linspace(-50e-15, 50e-15, 1001)
	p, err := Gaussian(ts, 1.0, 10e-15)
	require.NoError(t, err)

	peak := 0
	for i := range p {
		if p[i] > p[peak] {
			peak = i
		}
	}
	assert.InDelta(t, 0.0, ts[peak], 1e-16)
}

func TestGaussianBadInputs(t *testing.T) {
	good := Linspace(-1, 1, 10)

	_, err := Gaussian([]float64{0}, 1, 1)
	assert.ErrorIs(t, err, ErrGrid)

	_, err = Gaussian([]float64{0, 1, 1, 2}, 1, 1)
	assert.ErrorIs(t, err, ErrGrid)

	_, err = Gaussian([]float64{0, 2, 1}, 1, 1)
	assert.ErrorIs(t, err, ErrGrid)

	_, err = Gaussian(good, 1, 0)
	assert.ErrorIs(t, err, ErrShape)

	_, err = Gaussian(good, 1, -5)
	assert.ErrorIs(t, err, ErrShape)
}

func TestGaussianNonnegative(t *testing.T) {
	ts := Linspace(-100e-15, 100e-15, 501)
	p, err := Gaussian(ts, 2e9, 39e-15)
	require.NoError(t, err)
	for i, v := range p {
		require.False(t, math.IsNaN(v), "NaN at %d", i)
		require.GreaterOrEqual(t, v, 0.0)
	}
}
