package mathutil

import (
	"math"
)

// Sinc computes the normalized sinc function: sin(πx) / (πx).
//
// Used for the Lanczos σ-approximation, where the n-th harmonic of a
// truncated Fourier series is weighted by sinc(n/(N+1)) to damp Gibbs
// oscillation near discontinuities.
//
// Sinc(0) = 1 by continuity; integer arguments yield exactly 0.
func Sinc(x float64) float64 {
	if math.Abs(x) < sincTinyArgThreshold {
		// Taylor expansion around 0: 1 - (πx)²/6, avoids 0/0
		px := math.Pi * x
		return 1.0 - px*px/sincTaylorDivisor
	}
	px := math.Pi * x
	return math.Sin(px) / px
}
