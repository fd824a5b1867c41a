package analysis

import (
	"fmt"
	"math"

	"github.com/tphakala/go-fourier-series/internal/series"
)

// Metrics quantifies how a synthesized waveform approximates its reference.
type Metrics struct {
	// RMS is the root-mean-square pointwise error.
	RMS float64

	// MaxAbs is the largest pointwise absolute error.
	MaxAbs float64

	// Overshoot is the largest excursion of the approximation beyond the
	// reference's [min, max] envelope. Gibbs ringing shows up here: the raw
	// square-wave partial sum overshoots the jump by about 9% of the
	// amplitude regardless of harmonic count.
	Overshoot float64
}

// Compare measures an approximation against a reference of equal length.
func Compare(approx, ref []float64) (Metrics, error) {
	if len(approx) != len(ref) {
		return Metrics{}, fmt.Errorf("length mismatch: approximation %d, reference %d", len(approx), len(ref))
	}
	if len(approx) == 0 {
		return Metrics{}, fmt.Errorf("empty input")
	}

	refMin, refMax := math.Inf(1), math.Inf(-1)
	for _, v := range ref {
		refMin = math.Min(refMin, v)
		refMax = math.Max(refMax, v)
	}

	var m Metrics
	var sum float64
	for i, v := range approx {
		d := v - ref[i]
		sum += d * d
		if ad := math.Abs(d); ad > m.MaxAbs {
			m.MaxAbs = ad
		}
		if over := v - refMax; over > m.Overshoot {
			m.Overshoot = over
		}
		if under := refMin - v; under > m.Overshoot {
			m.Overshoot = under
		}
	}
	m.RMS = math.Sqrt(sum / float64(len(approx)))
	return m, nil
}

// CompareFunc measures an approximation sampled over a grid against a
// reference function evaluated at the same grid points.
func CompareFunc(approx []float64, f func(float64) float64, g series.Grid) (Metrics, error) {
	if f == nil {
		return Metrics{}, fmt.Errorf("reference function must not be nil")
	}
	if err := g.Validate(); err != nil {
		return Metrics{}, err
	}
	if len(approx) != g.Count {
		return Metrics{}, fmt.Errorf("approximation has %d samples, grid has %d", len(approx), g.Count)
	}

	ref := make([]float64, g.Count)
	step := g.Step()
	for i := range ref {
		ref[i] = f(g.Start + float64(i)*step)
	}
	return Compare(approx, ref)
}
