package harmonics

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by waveform construction.
var (
	// ErrUnknownKind is returned when a waveform name does not match any
	// built-in kind.
	ErrUnknownKind = errors.New("unknown waveform kind")

	// ErrInvalidDuty is returned when a pulse duty cycle is outside (0, 1).
	ErrInvalidDuty = errors.New("invalid duty cycle")
)

// Kind identifies a built-in waveform with known closed-form coefficients.
type Kind int

const (
	// KindSquare is the odd square wave alternating between -A and +A.
	KindSquare Kind = iota
	// KindSawtooth is the rising sawtooth from -A to +A over one period.
	KindSawtooth
	// KindTriangle is the even triangle wave peaking at +A at t = 0.
	KindTriangle
	// KindPulse is the centered rectangular pulse train of height A.
	KindPulse
	// KindRectifiedSine is the full-wave rectified sine A·|sin(πt/T)|.
	KindRectifiedSine
)

// String returns the canonical name of the waveform kind.
func (k Kind) String() string {
	switch k {
	case KindSquare:
		return "square"
	case KindSawtooth:
		return "sawtooth"
	case KindTriangle:
		return "triangle"
	case KindPulse:
		return "pulse"
	case KindRectifiedSine:
		return "rectsine"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind resolves a waveform name to its Kind.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "square":
		return KindSquare, nil
	case "sawtooth", "saw":
		return KindSawtooth, nil
	case "triangle":
		return KindTriangle, nil
	case "pulse":
		return KindPulse, nil
	case "rectsine", "rectified-sine":
		return KindRectifiedSine, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
}

// KindNames lists the canonical names of all built-in waveforms.
func KindNames() []string {
	return []string{"square", "sawtooth", "triangle", "pulse", "rectsine"}
}

// Waveform couples a coefficient provider with the exact periodic function it
// represents. The reference function is used for convergence measurement and
// as the comparison channel in audio export.
type Waveform struct {
	Kind      Kind
	Provider  Provider
	Reference func(t float64) float64
	Amplitude float64
	Period    float64
	Duty      float64 // pulse trains only, 0 otherwise
}

// New constructs a built-in waveform with the given amplitude and period.
// Pulse trains get the default 50% duty cycle; use NewPulse for other duties.
func New(kind Kind, amplitude, period float64) (Waveform, error) {
	switch kind {
	case KindSquare:
		return NewSquare(amplitude, period), nil
	case KindSawtooth:
		return NewSawtooth(amplitude, period), nil
	case KindTriangle:
		return NewTriangle(amplitude, period), nil
	case KindPulse:
		return NewPulse(amplitude, period, defaultPulseDuty)
	case KindRectifiedSine:
		return NewRectifiedSine(amplitude, period), nil
	default:
		return Waveform{}, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}
}

// NewSquare returns the odd square wave of amplitude A and period T:
// f(t) = A·sgn(sin(2πt/T)). Closed form: cₙ = -2Ai/(πn) for odd n, 0 otherwise.
func NewSquare(amplitude, period float64) Waveform {
	return Waveform{
		Kind:      KindSquare,
		Amplitude: amplitude,
		Period:    period,
		Provider: func(n int) complex128 {
			if n == 0 || n%2 == 0 {
				return 0
			}
			return complex(0, -2*amplitude/(math.Pi*float64(n)))
		},
		Reference: func(t float64) float64 {
			u := wrap(t, period)
			switch {
			case u == 0 || u == -period/2:
				// series converges to the discontinuity midpoint
				return 0
			case u > 0:
				return amplitude
			default:
				return -amplitude
			}
		},
	}
}

// NewSawtooth returns the rising sawtooth of amplitude A and period T:
// f(t) = 2At/T for t ∈ (-T/2, T/2). Closed form: cₙ = Ai·(-1)ⁿ/(πn), n ≠ 0.
func NewSawtooth(amplitude, period float64) Waveform {
	return Waveform{
		Kind:      KindSawtooth,
		Amplitude: amplitude,
		Period:    period,
		Provider: func(n int) complex128 {
			if n == 0 {
				return 0
			}
			sign := 1.0
			if n%2 != 0 {
				sign = -1.0
			}
			return complex(0, sign*amplitude/(math.Pi*float64(n)))
		},
		Reference: func(t float64) float64 {
			u := wrap(t, period)
			if u == -period/2 {
				// discontinuity midpoint
				return 0
			}
			return 2 * amplitude * u / period
		},
	}
}

// NewTriangle returns the even triangle wave of amplitude A and period T,
// peaking at +A at t = 0 and reaching -A at t = ±T/2.
// Closed form: cₙ = 4A/(π²n²) for odd n, 0 otherwise.
func NewTriangle(amplitude, period float64) Waveform {
	return Waveform{
		Kind:      KindTriangle,
		Amplitude: amplitude,
		Period:    period,
		Provider: func(n int) complex128 {
			if n == 0 || n%2 == 0 {
				return 0
			}
			fn := float64(n)
			return complex(4*amplitude/(math.Pi*math.Pi*fn*fn), 0)
		},
		Reference: func(t float64) float64 {
			u := wrap(t, period)
			return amplitude * (1 - 4*math.Abs(u)/period)
		},
	}
}

// NewPulse returns the centered rectangular pulse train of height A, period T
// and duty cycle d ∈ (0, 1): f(t) = A for |t| < dT/2 within a period, else 0.
// Closed form: c₀ = A·d, cₙ = A·sin(πnd)/(πn) for n ≠ 0.
func NewPulse(amplitude, period, duty float64) (Waveform, error) {
	if duty <= 0 || duty >= 1 {
		return Waveform{}, fmt.Errorf("%w: %g not in (0, 1)", ErrInvalidDuty, duty)
	}
	return Waveform{
		Kind:      KindPulse,
		Amplitude: amplitude,
		Period:    period,
		Duty:      duty,
		Provider: func(n int) complex128 {
			if n == 0 {
				return complex(amplitude*duty, 0)
			}
			fn := float64(n)
			return complex(amplitude*math.Sin(math.Pi*fn*duty)/(math.Pi*fn), 0)
		},
		Reference: func(t float64) float64 {
			u := math.Abs(wrap(t, period))
			half := duty * period / 2
			switch {
			case u < half:
				return amplitude
			case u == half:
				// discontinuity midpoint
				return amplitude / 2
			default:
				return 0
			}
		},
	}, nil
}

// NewRectifiedSine returns the full-wave rectified sine A·|sin(πt/T)| with
// period T. Closed form: c₀ = 2A/π, cₙ = -2A/(π(4n²-1)) for n ≠ 0.
func NewRectifiedSine(amplitude, period float64) Waveform {
	return Waveform{
		Kind:      KindRectifiedSine,
		Amplitude: amplitude,
		Period:    period,
		Provider: func(n int) complex128 {
			if n == 0 {
				return complex(2*amplitude/math.Pi, 0)
			}
			fn := float64(n)
			return complex(-2*amplitude/(math.Pi*(4*fn*fn-1)), 0)
		},
		Reference: func(t float64) float64 {
			return amplitude * math.Abs(math.Sin(math.Pi*t/period))
		},
	}
}

// wrap reduces t into the principal period [-T/2, T/2).
func wrap(t, period float64) float64 {
	u := math.Mod(t+period/2, period)
	if u < 0 {
		u += period
	}
	return u - period/2
}
