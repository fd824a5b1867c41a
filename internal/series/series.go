// Package series implements partial-sum synthesis of truncated Fourier
// series over sample grids.
//
// Two engines are provided. The direct engine evaluates the trigonometric
// sum per sample using SIMD dot products against recurrence-generated
// harmonic tables and works on any grid. The FFT engine renders exactly one
// period onto a uniform grid through the inverse real FFT and wins once the
// harmonic count is large. Engine selection happens in the public API; both
// produce identical waveforms within floating-point tolerance on grids they
// share.
package series

import (
	"fmt"
	"math"

	"github.com/tphakala/go-fourier-series/internal/harmonics"
)

// Grid describes a uniform sample grid with inclusive endpoints, matching
// linspace semantics: Count points from Start to End, spaced
// (End-Start)/(Count-1) apart.
type Grid struct {
	Start float64
	End   float64
	Count int
}

// Validate checks the grid bounds and sample count.
func (g Grid) Validate() error {
	if g.Count < minGridCount {
		return fmt.Errorf("grid needs at least %d samples, got %d", minGridCount, g.Count)
	}
	if !(g.End > g.Start) {
		return fmt.Errorf("grid end %g must exceed start %g", g.End, g.Start)
	}
	if math.IsNaN(g.Start) || math.IsInf(g.Start, 0) || math.IsNaN(g.End) || math.IsInf(g.End, 0) {
		return fmt.Errorf("grid bounds must be finite, got [%g, %g]", g.Start, g.End)
	}
	return nil
}

// Step returns the sample spacing.
func (g Grid) Step() float64 {
	return (g.End - g.Start) / float64(g.Count-1)
}

// At returns the position of sample i. The final index is exactly End,
// guarding against accumulated rounding; every engine must evaluate through
// this rule so approximation and reference curves share abscissae.
func (g Grid) At(i int) float64 {
	if i == g.Count-1 {
		return g.End
	}
	return g.Start + float64(i)*g.Step()
}

// Points materializes the grid sample positions into dst, allocating when
// dst lacks capacity.
func (g Grid) Points(dst []float64) []float64 {
	dst = resize(dst, g.Count)
	for i := range dst {
		dst[i] = g.At(i)
	}
	return dst
}

// SpansOnePeriod reports whether the grid covers exactly one fundamental
// period, endpoint included, within rounding tolerance. Grids with this
// property qualify for FFT synthesis.
func (g Grid) SpansOnePeriod(period float64) bool {
	if period <= 0 {
		return false
	}
	return math.Abs((g.End-g.Start)-period) <= periodMatchTolerance*period
}

// EvaluateAt computes the partial sum at a single time point:
//
//	f(t) = DC + Σ_{k=1..N} (Cos[k-1]·cos(kωt) + Sin[k-1]·sin(kωt)),  ω = 2π/period
func EvaluateAt(s harmonics.Spectrum, period, t float64) float64 {
	theta := twoPi * t / period
	cosStep := math.Cos(theta)
	sinStep := math.Sin(theta)

	sum := s.DC
	c, sn := cosStep, sinStep
	for k := range s.Cos {
		sum += s.Cos[k]*c + s.Sin[k]*sn
		// angle addition: advance from kθ to (k+1)θ
		c, sn = c*cosStep-sn*sinStep, sn*cosStep+c*sinStep
	}
	return sum
}

// resize returns dst with exactly n elements, reusing its backing array
// when capacity allows.
func resize(dst []float64, n int) []float64 {
	if cap(dst) >= n {
		return dst[:n]
	}
	return make([]float64, n)
}
