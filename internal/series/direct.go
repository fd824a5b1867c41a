package series

import (
	"math"
	"sync"

	"github.com/tphakala/simd/f64"

	"github.com/tphakala/go-fourier-series/internal/harmonics"
)

// Direct evaluates partial sums per sample. For each grid point the harmonic
// cosine and sine tables are generated by the angle-addition recurrence and
// folded against the spectrum amplitudes with SIMD dot products.
type Direct struct {
	spectrum harmonics.Spectrum
	period   float64

	// scratch tables, one entry per harmonic
	cosTab []float64
	sinTab []float64
}

// NewDirect builds a direct synthesizer for the spectrum. The period sets
// the fundamental ω = 2π/period.
func NewDirect(s harmonics.Spectrum, period float64) *Direct {
	n := s.Harmonics()
	return &Direct{
		spectrum: s,
		period:   period,
		cosTab:   make([]float64, n),
		sinTab:   make([]float64, n),
	}
}

// Sample renders the partial sum over the grid into dst, allocating when dst
// lacks capacity. The returned slice has g.Count samples.
func (d *Direct) Sample(dst []float64, g Grid) ([]float64, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	dst = resize(dst, g.Count)
	for i := range dst {
		dst[i] = d.evaluate(g.At(i))
	}
	return dst, nil
}

// SampleParallel renders the partial sum with the grid split across workers.
// Each worker owns private recurrence tables; dst writes are disjoint.
// Grids below the parallel threshold fall back to sequential sampling.
func (d *Direct) SampleParallel(dst []float64, g Grid, workers int) ([]float64, error) {
	if workers <= 1 || g.Count < minParallelSamples {
		return d.Sample(dst, g)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if workers > maxWorkers {
		workers = maxWorkers
	}

	dst = resize(dst, g.Count)
	chunk := (g.Count + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		if lo >= g.Count {
			break
		}
		hi := min(lo+chunk, g.Count)

		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			local := NewDirect(d.spectrum, d.period)
			for i := lo; i < hi; i++ {
				dst[i] = local.evaluate(g.At(i))
			}
		}(lo, hi)
	}
	wg.Wait()

	return dst, nil
}

// evaluate computes the partial sum at time t using the scratch tables.
// Not safe for concurrent use; parallel paths clone the synthesizer.
func (d *Direct) evaluate(t float64) float64 {
	s := d.spectrum
	n := len(d.cosTab)
	if n == 0 {
		return s.DC
	}

	theta := twoPi * t / d.period
	cosStep := math.Cos(theta)
	sinStep := math.Sin(theta)

	c, sn := cosStep, sinStep
	for k := range n {
		d.cosTab[k] = c
		d.sinTab[k] = sn
		// advance from kθ to (k+1)θ
		c, sn = c*cosStep-sn*sinStep, sn*cosStep+c*sinStep
	}

	// table and amplitude lengths match by construction
	return s.DC + f64.DotProductUnsafe(s.Cos, d.cosTab) + f64.DotProductUnsafe(s.Sin, d.sinTab)
}
