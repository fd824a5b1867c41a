package series

import (
	"fmt"
	"math"

	"github.com/tphakala/go-fourier-series/internal/harmonics"
)

// Ladder renders partial-sum snapshots at several harmonic counts in a
// single accumulation pass. Harmonic terms are added one at a time to a
// running sum vector, and the vector is copied out whenever the term index
// reaches a requested count. Rendering the counts {1, 2, 5, 10, 100, 1000}
// therefore costs one 1000-harmonic pass instead of six separate syntheses.
//
// The returned map holds one waveform per distinct requested count. Each
// snapshot equals a fresh direct synthesis at that count within rounding.
func Ladder(s harmonics.Spectrum, period float64, g Grid, counts []int) (map[int][]float64, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if period <= 0 {
		return nil, fmt.Errorf("period must be positive, got %g", period)
	}

	need := 0
	wanted := make(map[int]bool, len(counts))
	for _, n := range counts {
		if n < 0 {
			return nil, fmt.Errorf("harmonic count must be non-negative, got %d", n)
		}
		if n > s.Harmonics() {
			return nil, fmt.Errorf("spectrum carries %d harmonics, ladder requests %d", s.Harmonics(), n)
		}
		wanted[n] = true
		if n > need {
			need = n
		}
	}

	count := g.Count

	// per-sample recurrence state: cos(kωtᵢ) and sin(kωtᵢ) advanced in k
	cosStep := make([]float64, count)
	sinStep := make([]float64, count)
	cosCur := make([]float64, count)
	sinCur := make([]float64, count)
	acc := make([]float64, count)
	for i := range acc {
		theta := twoPi * g.At(i) / period
		cosStep[i] = math.Cos(theta)
		sinStep[i] = math.Sin(theta)
		cosCur[i] = cosStep[i]
		sinCur[i] = sinStep[i]
		acc[i] = s.DC
	}

	out := make(map[int][]float64, len(wanted))
	snapshot := func(n int) {
		snap := make([]float64, count)
		copy(snap, acc)
		out[n] = snap
	}

	if wanted[0] {
		snapshot(0)
	}
	for k := 1; k <= need; k++ {
		ca, sa := s.Cos[k-1], s.Sin[k-1]
		for i := range acc {
			acc[i] += ca*cosCur[i] + sa*sinCur[i]
			cosCur[i], sinCur[i] = cosCur[i]*cosStep[i]-sinCur[i]*sinStep[i],
				sinCur[i]*cosStep[i]+cosCur[i]*sinStep[i]
		}
		if wanted[k] {
			snapshot(k)
		}
	}

	return out, nil
}
