// Package analysis extracts Fourier coefficients from periodic functions and
// sampled data, and measures how well partial sums approximate their targets.
//
// Extraction offers two routes to the trigonometric coefficients. The FFT
// route projects one period of uniform samples through the forward real FFT,
// which equals the rectangle-rule quadrature of the defining integrals and is
// spectrally accurate for smooth integrands. The explicit trapezoid route
// integrates a single coefficient pair directly and serves as an independent
// cross-check.
package analysis

import (
	"fmt"
	"math"

	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/tphakala/go-fourier-series/internal/harmonics"
)

// FromSamples extracts the synthesis spectrum for harmonics 1..n from one
// fundamental period of uniform samples (endpoint excluded). The sample
// count must exceed 2n so every requested harmonic lies strictly below
// Nyquist.
//
//	DC = Re C₀ / M,  aₖ = 2·Re Cₖ / M,  bₖ = -2·Im Cₖ / M
//
// where Cₖ are the forward FFT coefficients of the M samples.
func FromSamples(samples []float64, n int) (harmonics.Spectrum, error) {
	m := len(samples)
	if m < minAnalysisSamples {
		return harmonics.Spectrum{}, fmt.Errorf("analysis needs at least %d samples, got %d", minAnalysisSamples, m)
	}
	if n < 0 {
		return harmonics.Spectrum{}, fmt.Errorf("harmonic count must be non-negative, got %d", n)
	}
	if maxHarmonics := (m - 1) / 2; n > maxHarmonics {
		return harmonics.Spectrum{}, fmt.Errorf("%d samples resolve at most %d harmonics, got %d",
			m, maxHarmonics, n)
	}

	fft := fourier.NewFFT(m)
	coeff := fft.Coefficients(nil, samples)

	scale := 2.0 / float64(m)
	s := harmonics.Spectrum{
		DC:  real(coeff[0]) / float64(m),
		Cos: make([]float64, n),
		Sin: make([]float64, n),
	}
	for k := 1; k <= n; k++ {
		s.Cos[k-1] = scale * real(coeff[k])
		s.Sin[k-1] = -scale * imag(coeff[k])
	}
	return s, nil
}

// FromFunc extracts the synthesis spectrum for harmonics 1..n of a periodic
// function by sampling one period and projecting through FromSamples.
// samples ≤ 0 selects an automatic grid of oversampleFactor·n points,
// bounded below by minAutoSamples.
func FromFunc(f func(float64) float64, period float64, n, samples int) (harmonics.Spectrum, error) {
	if f == nil {
		return harmonics.Spectrum{}, fmt.Errorf("function must not be nil")
	}
	if period <= 0 {
		return harmonics.Spectrum{}, fmt.Errorf("period must be positive, got %g", period)
	}
	if samples <= 0 {
		samples = max(oversampleFactor*n, minAutoSamples)
	}

	buf := make([]float64, samples)
	step := period / float64(samples)
	for i := range buf {
		v := f(float64(i) * step)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return harmonics.Spectrum{}, fmt.Errorf("function returned %g at t=%g", v, float64(i)*step)
		}
		buf[i] = v
	}
	return FromSamples(buf, n)
}

// Integrate computes the single coefficient pair (aₙ, bₙ) of a periodic
// function by composite trapezoid quadrature over one period:
//
//	aₙ = (2/T) ∫₀ᵀ f(t)·cos(nωt) dt,  bₙ = (2/T) ∫₀ᵀ f(t)·sin(nωt) dt
//
// For n = 0 the aₙ value is 2·DC per the trigonometric-form convention.
// The sample count controls quadrature resolution; samples ≤ 0 selects
// minAutoSamples.
func Integrate(f func(float64) float64, period float64, n, samples int) (a, b float64, err error) {
	if f == nil {
		return 0, 0, fmt.Errorf("function must not be nil")
	}
	if period <= 0 {
		return 0, 0, fmt.Errorf("period must be positive, got %g", period)
	}
	if n < 0 {
		return 0, 0, fmt.Errorf("harmonic index must be non-negative, got %d", n)
	}
	if samples <= 0 {
		samples = minAutoSamples
	}

	omega := 2 * math.Pi / period
	h := period / float64(samples)

	// trapezoid over a full period: endpoints coincide, so the half-weight
	// terms fold into a plain sum
	var sumA, sumB float64
	for i := range samples {
		t := float64(i) * h
		v := f(t)
		phase := omega * float64(n) * t
		sumA += v * math.Cos(phase)
		sumB += v * math.Sin(phase)
	}

	scale := 2.0 / float64(samples)
	return scale * sumA, scale * sumB, nil
}

// Mean returns the average of the samples, the DC estimate of one period.
func Mean(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	return f64.Sum(samples) / float64(len(samples))
}

// EnergyMismatch returns the absolute difference between the spectrum energy
// (per Parseval) and the mean square of one period of samples. Small values
// indicate the spectrum captures nearly all signal energy.
func EnergyMismatch(s harmonics.Spectrum, samples []float64) float64 {
	if len(samples) == 0 {
		return s.Energy()
	}
	var sq float64
	for _, v := range samples {
		sq += v * v
	}
	return math.Abs(s.Energy() - sq/float64(len(samples)))
}
