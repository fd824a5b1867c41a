package series

import (
	"fmt"
	"math/cmplx"

	"github.com/tphakala/simd/c128"
	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/tphakala/go-fourier-series/internal/harmonics"
)

// FFTSynth renders one fundamental period of a spectrum onto a uniform grid
// of m samples through the inverse real FFT. Harmonic k maps onto frequency
// bin k with amplitude (m/2)·(Cosₖ - i·Sinₖ); the inverse transform then
// reconstructs the partial sum in O(m log m) regardless of harmonic count.
type FFTSynth struct {
	fft *fourier.FFT
	m   int

	coeff []complex128
	rot   []complex128
}

// NewFFTSynth prepares a synthesizer for grids of m samples per period.
func NewFFTSynth(m int) (*FFTSynth, error) {
	if m < minFFTSamples {
		return nil, fmt.Errorf("fft synthesis needs at least %d samples per period, got %d", minFFTSamples, m)
	}
	return &FFTSynth{
		fft: fourier.NewFFT(m),
		m:   m,
	}, nil
}

// MaxHarmonics returns the highest harmonic the grid can carry, strictly
// below the Nyquist bin.
func (fs *FFTSynth) MaxHarmonics() int {
	return (fs.m - 1) / 2
}

// Synthesize renders the spectrum at the m samples tᵢ = start + i·period/m,
// covering one period with the endpoint excluded. dst is reused when its
// capacity allows.
func (fs *FFTSynth) Synthesize(dst []float64, s harmonics.Spectrum, period, start float64) ([]float64, error) {
	n := s.Harmonics()
	if n > fs.MaxHarmonics() {
		return nil, fmt.Errorf("grid of %d samples carries at most %d harmonics, got %d",
			fs.m, fs.MaxHarmonics(), n)
	}
	if period <= 0 {
		return nil, fmt.Errorf("period must be positive, got %g", period)
	}

	bins := fs.m/2 + 1
	if cap(fs.coeff) < bins {
		fs.coeff = make([]complex128, bins)
	}
	coeff := fs.coeff[:bins]
	for i := range coeff {
		coeff[i] = 0
	}

	half := float64(fs.m) / 2
	coeff[0] = complex(s.DC*float64(fs.m), 0)
	for k := 1; k <= n; k++ {
		coeff[k] = complex(half*s.Cos[k-1], -half*s.Sin[k-1])
	}

	// shift the synthesis origin when the grid does not start at t = 0
	if start != 0 && n > 0 {
		fs.rotate(coeff[1:n+1], twoPi*start/period)
	}

	dst = resize(dst, fs.m)
	dst = fs.fft.Sequence(dst, coeff)

	// gonum's inverse transform is unnormalized
	f64.Scale(dst, dst, 1.0/float64(fs.m))

	return dst, nil
}

// rotate multiplies bin k (1-based within the slice) by e^{ik·phase}.
func (fs *FFTSynth) rotate(bins []complex128, phase float64) {
	if cap(fs.rot) < len(bins) {
		fs.rot = make([]complex128, len(bins))
	}
	rot := fs.rot[:len(bins)]

	step := cmplx.Exp(complex(0, phase))
	r := step
	for i := range rot {
		rot[i] = r
		r *= step
	}
	c128.Mul(bins, bins, rot)
}
