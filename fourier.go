package fourier

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-fourier-series/internal/window"
)

// Provider yields the complex Fourier coefficient cₙ of the target function
// for harmonic index n. Synthesis queries indices -N..N inclusive, so
// providers must handle negative indices and zero. Real-valued targets have
// conjugate-symmetric coefficients, c₋ₙ = conj(cₙ), but symmetry is not
// required.
type Provider func(n int) complex128

// Synthesizer is the main interface for partial-sum synthesis of a truncated
// Fourier series. Implementations may evaluate the trigonometric sum
// directly or go through the inverse FFT depending on the harmonic count
// and grid geometry.
type Synthesizer interface {
	// Evaluate computes the partial sum at a single time point.
	Evaluate(t float64) float64

	// Sample renders the partial sum across the configured grid.
	// The result has Config.Samples values spanning [Start, End] with
	// both endpoints included.
	Sample() ([]float64, error)

	// SampleLadder renders partial-sum snapshots at several harmonic
	// counts in a single accumulation pass. Every count must be at most
	// the configured harmonic order. The map holds one waveform per
	// distinct requested count.
	SampleLadder(counts []int) (map[int][]float64, error)

	// Coefficients returns a copy of the synthesis amplitudes in use,
	// after any configured taper.
	Coefficients() Spectrum

	// Points returns the time values of the sample grid.
	Points() []float64

	// Info reports the synthesis setup chosen at construction.
	Info() Info
}

// Config holds synthesis configuration.
type Config struct {
	// Provider yields the complex Fourier coefficients of the target
	// function. Required.
	Provider Provider

	// Period is the fundamental period T in the units of the evaluation
	// variable. Must be positive and finite.
	Period float64

	// Harmonics is the truncation order N: harmonics 1..N enter the
	// partial sum along with the DC term. Zero keeps only DC.
	Harmonics int

	// Start and End bound the evaluation interval. End must exceed Start.
	Start float64
	End   float64

	// Samples is the number of evenly spaced evaluation points across the
	// interval, both endpoints included.
	Samples int

	// Taper names the spectral taper applied to the amplitudes before
	// synthesis: "lanczos", "fejer", "hann", "hamming", "kaiser", or
	// "kaiser:BETA" for an explicit Kaiser shape parameter. Empty means
	// no taper. Tapers damp the Gibbs overshoot near discontinuities at
	// the cost of a slower transition.
	Taper string

	// EnableFFT permits FFT synthesis when the grid spans exactly one
	// period and the harmonic count is large enough to pay for the
	// transform.
	EnableFFT bool

	// Parallel enables concurrent grid evaluation on the direct path.
	// Has no effect on small grids.
	Parallel bool
}

// Spectrum holds the real synthesis amplitudes of the truncated series:
//
//	f(t) ≈ DC + Σ_{k=1..N} (Cos[k-1]·cos(kωt) + Sin[k-1]·sin(kωt)),  ω = 2π/T
//
// where N = len(Cos) = len(Sin).
type Spectrum struct {
	// DC is the constant term c₀.
	DC float64

	// Cos[k-1] is the cosine amplitude of harmonic k.
	Cos []float64

	// Sin[k-1] is the sine amplitude of harmonic k.
	Sin []float64
}

// Harmonics reports the number of harmonics the spectrum carries.
func (s Spectrum) Harmonics() int {
	return len(s.Cos)
}

// Common errors returned by the synthesizer.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid synthesizer configuration")

	// ErrBadCoefficient indicates the coefficient provider returned a
	// non-finite value.
	ErrBadCoefficient = errors.New("non-finite coefficient")
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Provider == nil {
		return fmt.Errorf("%w: coefficient provider is required", ErrInvalidConfig)
	}

	if !(c.Period > 0) || math.IsInf(c.Period, 0) {
		return fmt.Errorf("%w: period must be positive and finite", ErrInvalidConfig)
	}

	if c.Harmonics < 0 {
		return fmt.Errorf("%w: harmonics must not be negative", ErrInvalidConfig)
	}

	if c.Harmonics > maxHarmonics {
		return fmt.Errorf("%w: too many harmonics (max %d)", ErrInvalidConfig, maxHarmonics)
	}

	if math.IsInf(c.Start, 0) || math.IsInf(c.End, 0) {
		return fmt.Errorf("%w: interval must be finite", ErrInvalidConfig)
	}

	if !(c.End > c.Start) {
		return fmt.Errorf("%w: interval end must exceed start", ErrInvalidConfig)
	}

	if c.Samples < minSamples {
		return fmt.Errorf("%w: samples must be at least %d", ErrInvalidConfig, minSamples)
	}

	if c.Samples > maxSamples {
		return fmt.Errorf("%w: too many samples (max %d)", ErrInvalidConfig, maxSamples)
	}

	if c.Taper != "" {
		if _, err := window.ParseSpec(c.Taper); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}

	return nil
}

// DefaultConfig returns a configuration with the canonical defaults: one
// period of 2π sampled at 1000 points over [-π, π], 100 harmonics, FFT path
// enabled. The caller supplies the Provider.
func DefaultConfig() Config {
	return Config{
		Period:    DefaultPeriod,
		Harmonics: DefaultHarmonics,
		Start:     DefaultIntervalStart,
		End:       DefaultIntervalEnd,
		Samples:   DefaultSamples,
		EnableFFT: true,
	}
}

// New creates a synthesizer with the specified configuration. The provider
// is projected onto real synthesis amplitudes once, up front; non-finite
// coefficients are rejected here rather than surfacing as NaN waveforms
// later. The synthesis algorithm (direct or FFT) is chosen from the
// harmonic count and grid geometry.
func New(config *Config) (Synthesizer, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return newSynthesizer(config)
}

// Info describes the synthesis setup a Synthesizer selected.
type Info struct {
	// Algorithm is the synthesis path in use: "direct" or "fft".
	Algorithm string

	// Harmonics is the truncation order N.
	Harmonics int

	// Samples is the grid point count.
	Samples int

	// Taper is the taper description in effect, empty when none.
	Taper string

	// Parallel indicates concurrent grid evaluation.
	Parallel bool
}
