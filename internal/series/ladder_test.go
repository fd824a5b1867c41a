package series

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-fourier-series/internal/harmonics"
	"github.com/tphakala/go-fourier-series/internal/testutil"
)

// defaultLadder mirrors the canonical render ladder.
var defaultLadder = []int{1, 2, 5, 10, 100, 1000}

// TestLadder_MatchesFreshSynthesis tests that every snapshot equals a direct
// synthesis of the truncated spectrum.
func TestLadder_MatchesFreshSynthesis(t *testing.T) {
	s := squareSpectrum(100)
	g := Grid{Start: -math.Pi, End: math.Pi, Count: 300}
	counts := []int{1, 2, 5, 10, 100}

	snaps, err := Ladder(s, testPeriod, g, counts)
	require.NoError(t, err)
	require.Len(t, snaps, len(counts))

	for _, n := range counts {
		snap, ok := snaps[n]
		require.True(t, ok, "missing snapshot for n=%d", n)
		require.Len(t, snap, g.Count)

		fresh, err := NewDirect(s.Truncated(n), testPeriod).Sample(nil, g)
		require.NoError(t, err)
		for i := range fresh {
			assert.InDelta(t, fresh[i], snap[i], testEngineDelta, "n=%d sample %d", n, i)
		}
	}
}

// TestLadder_ZeroCount tests the DC-only snapshot.
func TestLadder_ZeroCount(t *testing.T) {
	s := harmonics.Spectrum{DC: 0.5, Cos: []float64{1, 2}, Sin: []float64{3, 4}}
	g := Grid{Start: 0, End: 1, Count: 10}

	snaps, err := Ladder(s, testPeriod, g, []int{0})
	require.NoError(t, err)
	for i, v := range snaps[0] {
		assert.Equal(t, 0.5, v, "sample %d", i)
	}
}

// TestLadder_DuplicateCounts tests that repeated counts yield one snapshot.
func TestLadder_DuplicateCounts(t *testing.T) {
	s := squareSpectrum(10)
	g := Grid{Start: 0, End: testPeriod, Count: 50}

	snaps, err := Ladder(s, testPeriod, g, []int{5, 5, 10, 5})
	require.NoError(t, err)
	assert.Len(t, snaps, 2)
}

// TestLadder_CountBeyondSpectrum tests rejection of counts the spectrum
// cannot serve.
func TestLadder_CountBeyondSpectrum(t *testing.T) {
	s := squareSpectrum(10)
	g := Grid{Start: 0, End: 1, Count: 10}

	_, err := Ladder(s, testPeriod, g, []int{5, 11})
	assert.Error(t, err)

	_, err = Ladder(s, testPeriod, g, []int{-1})
	assert.Error(t, err)
}

// TestLadder_InvalidInput tests grid and period validation.
func TestLadder_InvalidInput(t *testing.T) {
	s := squareSpectrum(4)

	_, err := Ladder(s, testPeriod, Grid{Start: 1, End: 0, Count: 10}, []int{1})
	assert.Error(t, err)

	_, err = Ladder(s, 0, Grid{Start: 0, End: 1, Count: 10}, []int{1})
	assert.Error(t, err)
}

// TestLadder_SawtoothConvergence tests that the approximation error against
// the exact sawtooth shrinks at every ladder step. The sawtooth carries every
// harmonic, so each step contributes.
func TestLadder_SawtoothConvergence(t *testing.T) {
	w := harmonics.NewSawtooth(1.0, testPeriod)
	s := harmonics.Amplitudes(w.Provider, 1000)
	g := Grid{Start: -math.Pi, End: math.Pi, Count: testGridCount}

	snaps, err := Ladder(s, testPeriod, g, defaultLadder)
	require.NoError(t, err)

	pts := g.Points(nil)
	rms := func(approx []float64) float64 {
		var sum float64
		for i, v := range approx {
			d := v - w.Reference(pts[i])
			sum += d * d
		}
		return math.Sqrt(sum / float64(len(approx)))
	}

	errs := make([]float64, 0, len(defaultLadder))
	for _, n := range defaultLadder {
		errs = append(errs, rms(snaps[n]))
	}
	for i := 1; i < len(errs); i++ {
		assert.Less(t, errs[i], errs[i-1],
			"RMS error must shrink from N=%d to N=%d", defaultLadder[i-1], defaultLadder[i])
	}
}

// TestLadder_SquareSymmetry tests that square-wave snapshots keep odd
// symmetry over a symmetric interval at every harmonic count.
func TestLadder_SquareSymmetry(t *testing.T) {
	s := squareSpectrum(1000)
	g := Grid{Start: -math.Pi, End: math.Pi, Count: testGridCount}

	snaps, err := Ladder(s, testPeriod, g, []int{1, 5, 1000})
	require.NoError(t, err)
	for n, snap := range snaps {
		testutil.AssertOddSymmetry(t, snap, 1e-9, "n=%d", n)
	}
}
