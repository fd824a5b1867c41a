package fourier

import (
	"fmt"

	"github.com/tphakala/go-fourier-series/internal/analysis"
	"github.com/tphakala/go-fourier-series/internal/expr"
	"github.com/tphakala/go-fourier-series/internal/harmonics"
)

// Square returns the coefficient provider of the odd square wave
// f(t) = A·sgn(sin(2πt/T)): cₙ = -2Ai/(πn) for odd n, 0 otherwise.
// Closed-form coefficients do not depend on the period; the period is
// supplied separately through Config.
func Square(amplitude float64) Provider {
	return Provider(harmonics.NewSquare(amplitude, DefaultPeriod).Provider)
}

// Sawtooth returns the coefficient provider of the rising sawtooth
// f(t) = 2At/T for t ∈ (-T/2, T/2): cₙ = Ai·(-1)ⁿ/(πn) for n ≠ 0.
func Sawtooth(amplitude float64) Provider {
	return Provider(harmonics.NewSawtooth(amplitude, DefaultPeriod).Provider)
}

// Triangle returns the coefficient provider of the even triangle wave
// peaking at +A at t = 0: cₙ = 4A/(π²n²) for odd n, 0 otherwise.
func Triangle(amplitude float64) Provider {
	return Provider(harmonics.NewTriangle(amplitude, DefaultPeriod).Provider)
}

// Pulse returns the coefficient provider of the centered rectangular pulse
// train of height A and duty cycle d ∈ (0, 1): c₀ = A·d,
// cₙ = A·sin(πnd)/(πn) for n ≠ 0.
func Pulse(amplitude, duty float64) (Provider, error) {
	w, err := harmonics.NewPulse(amplitude, DefaultPeriod, duty)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return Provider(w.Provider), nil
}

// RectifiedSine returns the coefficient provider of the full-wave rectified
// sine A·|sin(πt/T)|: c₀ = 2A/π, cₙ = -2A/(π(4n²-1)) for n ≠ 0.
func RectifiedSine(amplitude float64) Provider {
	return Provider(harmonics.NewRectifiedSine(amplitude, DefaultPeriod).Provider)
}

// FromReal builds a provider from trigonometric-form coefficient functions:
// a(n) is the cosine amplitude aₙ for n ≥ 0 (a₀ is twice the DC level) and
// b(n) is the sine amplitude bₙ for n ≥ 1.
func FromReal(a, b func(n int) float64) Provider {
	return Provider(harmonics.RealProvider{A: a, B: b}.Complex())
}

// FromExpression compiles an arithmetic formula in the harmonic index n into
// a provider. Formulas use the imaginary unit i (or j), the constants pi,
// tau and e, and the functions sin, cos, tan, sinh, cosh, exp, log, sqrt,
// pow, abs, conj, re and im. Example: "-2*i/(pi*n)" is the unit square wave.
//
// The formula is evaluated for n ≠ 0 only; pair with WithDC to set the
// constant term.
func FromExpression(formula string) (Provider, error) {
	p, err := expr.Compile(formula)
	if err != nil {
		return nil, err
	}
	return Provider(p), nil
}

// FromFunc derives coefficients numerically by sampling one period of f and
// projecting through the FFT. The function is sampled from t = 0 with
// automatic oversampling for the requested harmonic count.
func FromFunc(f func(t float64) float64, period float64, n int) (Provider, error) {
	spec, err := analysis.FromFunc(f, period, n, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return Provider(spec.Provider()), nil
}

// FromSamples derives coefficients for harmonics 1..n from uniform samples
// covering exactly one period, endpoint excluded.
func FromSamples(samples []float64, n int) (Provider, error) {
	spec, err := analysis.FromSamples(samples, n)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return Provider(spec.Provider()), nil
}

// WithDC returns a provider that yields dc at n = 0 and p(n) elsewhere.
// Coefficient formulas are rarely valid at n = 0, so the constant term is
// specified separately.
func WithDC(dc complex128, p Provider) Provider {
	return Provider(harmonics.WithDC(dc, harmonics.Provider(p)))
}

// Scaled returns a provider with every coefficient multiplied by factor,
// including the DC term.
func Scaled(p Provider, factor float64) Provider {
	return Provider(harmonics.Scaled(harmonics.Provider(p), factor))
}

// NewSquareWave creates a synthesizer for a square wave of the given
// amplitude with n harmonics and default period, interval and grid.
func NewSquareWave(amplitude float64, n int) (Synthesizer, error) {
	return newDefaultWave(Square(amplitude), n)
}

// NewSawtoothWave creates a synthesizer for a sawtooth wave of the given
// amplitude with n harmonics and default period, interval and grid.
func NewSawtoothWave(amplitude float64, n int) (Synthesizer, error) {
	return newDefaultWave(Sawtooth(amplitude), n)
}

// NewTriangleWave creates a synthesizer for a triangle wave of the given
// amplitude with n harmonics and default period, interval and grid.
func NewTriangleWave(amplitude float64, n int) (Synthesizer, error) {
	return newDefaultWave(Triangle(amplitude), n)
}

// NewPulseWave creates a synthesizer for a pulse train of the given
// amplitude and duty cycle with n harmonics and default period, interval
// and grid.
func NewPulseWave(amplitude, duty float64, n int) (Synthesizer, error) {
	p, err := Pulse(amplitude, duty)
	if err != nil {
		return nil, err
	}
	return newDefaultWave(p, n)
}

// NewRectifiedSineWave creates a synthesizer for a full-wave rectified sine
// of the given amplitude with n harmonics and default period, interval and
// grid.
func NewRectifiedSineWave(amplitude float64, n int) (Synthesizer, error) {
	return newDefaultWave(RectifiedSine(amplitude), n)
}

func newDefaultWave(p Provider, n int) (Synthesizer, error) {
	config := DefaultConfig()
	config.Provider = p
	config.Harmonics = n
	return New(&config)
}

// Sample is a convenience function for one-shot synthesis: it renders the
// n-harmonic partial sum of the provider across the default grid.
func Sample(p Provider, n int) ([]float64, error) {
	s, err := newDefaultWave(p, n)
	if err != nil {
		return nil, err
	}
	return s.Sample()
}

// Ladder is a convenience function for one-shot ladder synthesis: it renders
// partial sums at every requested harmonic count across the default grid in
// a single pass. The synthesis order is the largest requested count.
func Ladder(p Provider, counts []int) (map[int][]float64, error) {
	n := 0
	for _, c := range counts {
		if c > n {
			n = c
		}
	}

	s, err := newDefaultWave(p, n)
	if err != nil {
		return nil, err
	}
	return s.SampleLadder(counts)
}

// Coefficients projects a provider onto synthesis amplitudes for harmonics
// 1..n plus the DC term, without building a synthesizer.
func Coefficients(p Provider, n int) (Spectrum, error) {
	if p == nil {
		return Spectrum{}, fmt.Errorf("%w: coefficient provider is required", ErrInvalidConfig)
	}
	if n < 0 {
		return Spectrum{}, fmt.Errorf("%w: harmonics must not be negative", ErrInvalidConfig)
	}

	spec, err := projectSpectrum(p, n)
	if err != nil {
		return Spectrum{}, err
	}
	return Spectrum{DC: spec.DC, Cos: spec.Cos, Sin: spec.Sin}, nil
}
