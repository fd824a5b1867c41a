package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-fourier-series/internal/harmonics"
	"github.com/tphakala/go-fourier-series/internal/series"
	"github.com/tphakala/go-fourier-series/internal/window"
)

// TestCompare tests the error measures on handcrafted slices.
func TestCompare(t *testing.T) {
	m, err := Compare([]float64{0, 2}, []float64{0, 1})
	require.NoError(t, err)

	assert.InDelta(t, math.Sqrt(0.5), m.RMS, 1e-12)
	assert.InDelta(t, 1.0, m.MaxAbs, 1e-12)
	assert.InDelta(t, 1.0, m.Overshoot, 1e-12, "2 exceeds the reference max of 1 by 1")
}

// TestCompare_PerfectMatch tests zero metrics for identical input.
func TestCompare_PerfectMatch(t *testing.T) {
	v := []float64{-1, 0.5, 1}
	m, err := Compare(v, v)
	require.NoError(t, err)
	assert.Zero(t, m.RMS)
	assert.Zero(t, m.MaxAbs)
	assert.Zero(t, m.Overshoot)
}

// TestCompare_Undershoot tests excursion below the reference envelope.
func TestCompare_Undershoot(t *testing.T) {
	m, err := Compare([]float64{-3, 0}, []float64{-1, 1})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, m.Overshoot, 1e-12, "-3 exits the envelope [-1,1] by 2")
}

// TestCompare_Validation tests input checks.
func TestCompare_Validation(t *testing.T) {
	_, err := Compare([]float64{1}, []float64{1, 2})
	assert.Error(t, err)

	_, err = Compare(nil, nil)
	assert.Error(t, err)
}

// TestCompareFunc_GibbsOvershoot tests that the raw square-wave partial sum
// exhibits the Gibbs excursion (~9% of the jump) and that the Lanczos taper
// suppresses it.
func TestCompareFunc_GibbsOvershoot(t *testing.T) {
	w := harmonics.NewSquare(1.0, testPeriod)
	s := harmonics.Amplitudes(w.Provider, 100)
	g := series.Grid{Start: -math.Pi, End: math.Pi, Count: 2000}

	raw, err := series.NewDirect(s, testPeriod).Sample(nil, g)
	require.NoError(t, err)
	rawMetrics, err := CompareFunc(raw, w.Reference, g)
	require.NoError(t, err)

	// Wilbraham-Gibbs: the peak sits ~8.9% of the jump above the plateau
	assert.Greater(t, rawMetrics.Overshoot, 0.1)
	assert.Less(t, rawMetrics.Overshoot, 0.2)

	tapered, err := window.Apply(s, window.Spec{Shape: window.ShapeLanczos})
	require.NoError(t, err)
	smooth, err := series.NewDirect(tapered, testPeriod).Sample(nil, g)
	require.NoError(t, err)
	smoothMetrics, err := CompareFunc(smooth, w.Reference, g)
	require.NoError(t, err)

	assert.Less(t, smoothMetrics.Overshoot, rawMetrics.Overshoot/2,
		"σ-approximation must suppress ringing")
}

// TestCompareFunc_Validation tests input checks.
func TestCompareFunc_Validation(t *testing.T) {
	g := series.Grid{Start: 0, End: 1, Count: 4}

	_, err := CompareFunc(make([]float64, 4), nil, g)
	assert.Error(t, err)

	_, err = CompareFunc(make([]float64, 3), math.Sin, g)
	assert.Error(t, err)

	_, err = CompareFunc(make([]float64, 4), math.Sin, series.Grid{Start: 1, End: 0, Count: 4})
	assert.Error(t, err)
}
