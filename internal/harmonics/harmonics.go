// Package harmonics provides Fourier coefficient providers and the real
// synthesis amplitudes derived from them.
//
// A truncated Fourier series with N harmonics and fundamental period T is
//
//	f(t) ≈ c₀ + Σ_{n=1..N} (cₙ·e^{inωt} + c₋ₙ·e^{-inωt}),  ω = 2π/T
//
// taking the real part, or equivalently in trigonometric form
//
//	f(t) ≈ a₀/2 + Σ_{n=1..N} (aₙ·cos(nωt) + bₙ·sin(nωt)).
//
// Coefficients come from closed forms (see waveforms.go), from numerical
// analysis of sampled data, or from user expressions. Synthesis engines
// consume the projected Spectrum rather than raw providers.
package harmonics

// Provider yields the complex Fourier coefficient cₙ for harmonic index n.
// Synthesis queries indices -N..N inclusive; providers must handle negative
// indices and zero.
type Provider func(n int) complex128

// RealProvider yields trigonometric-form coefficients. A(n) is the cosine
// amplitude aₙ for n ≥ 0 (a₀ is twice the DC level, per convention), and
// B(n) is the sine amplitude bₙ for n ≥ 1.
type RealProvider struct {
	A func(n int) float64
	B func(n int) float64
}

// Spectrum holds the real synthesis amplitudes of a truncated series:
//
//	f(t) ≈ DC + Σ_{k=1..N} (Cos[k-1]·cos(kωt) + Sin[k-1]·sin(kωt))
//
// where N = len(Cos) = len(Sin). Spectrum is the common currency between
// coefficient providers, tapers, and synthesis engines.
type Spectrum struct {
	DC  float64
	Cos []float64
	Sin []float64
}

// Amplitudes projects a complex provider onto real synthesis amplitudes for
// harmonics 1..n plus the DC level. Negative n is treated as zero harmonics.
//
// For each harmonic k, the real part of cₖ·e^{ikωt} + c₋ₖ·e^{-ikωt}
// contributes (Re cₖ + Re c₋ₖ)·cos(kωt) + (Im c₋ₖ - Im cₖ)·sin(kωt).
// This holds for arbitrary providers; conjugate symmetry is not assumed.
func Amplitudes(p Provider, n int) Spectrum {
	if n < 0 {
		n = 0
	}
	s := Spectrum{
		DC:  real(p(0)),
		Cos: make([]float64, n),
		Sin: make([]float64, n),
	}
	for k := 1; k <= n; k++ {
		pos := p(k)
		neg := p(-k)
		s.Cos[k-1] = real(pos) + real(neg)
		s.Sin[k-1] = imag(neg) - imag(pos)
	}
	return s
}

// Amplitudes projects trigonometric-form coefficients onto synthesis
// amplitudes for harmonics 1..n plus the DC level.
func (rp RealProvider) Amplitudes(n int) Spectrum {
	if n < 0 {
		n = 0
	}
	s := Spectrum{
		DC:  rp.A(0) / 2,
		Cos: make([]float64, n),
		Sin: make([]float64, n),
	}
	for k := 1; k <= n; k++ {
		s.Cos[k-1] = rp.A(k)
		s.Sin[k-1] = rp.B(k)
	}
	return s
}

// Complex converts trigonometric-form coefficients to the complex form:
// c₀ = a₀/2, c₊ₙ = (aₙ - i·bₙ)/2, c₋ₙ = (aₙ + i·bₙ)/2.
func (rp RealProvider) Complex() Provider {
	return func(n int) complex128 {
		if n == 0 {
			return complex(rp.A(0)/2, 0)
		}
		k := n
		if k < 0 {
			k = -k
		}
		a := rp.A(k)
		b := rp.B(k)
		if n > 0 {
			return complex(a/2, -b/2)
		}
		return complex(a/2, b/2)
	}
}

// Real converts a complex provider to trigonometric form: aₙ = Re cₙ + Re c₋ₙ,
// bₙ = Im c₋ₙ - Im cₙ, a₀ = 2·Re c₀. For conjugate-symmetric providers this
// reduces to the textbook aₙ = 2·Re cₙ, bₙ = -2·Im cₙ.
func Real(p Provider) RealProvider {
	return RealProvider{
		A: func(n int) float64 {
			if n == 0 {
				return 2 * real(p(0))
			}
			return real(p(n)) + real(p(-n))
		},
		B: func(n int) float64 {
			if n <= 0 {
				return 0
			}
			return imag(p(-n)) - imag(p(n))
		},
	}
}

// WithDC returns a provider that yields dc at n = 0 and p(n) elsewhere.
// Interactive inputs specify the DC term separately from the harmonic
// formula, which is rarely valid at n = 0.
func WithDC(dc complex128, p Provider) Provider {
	return func(n int) complex128 {
		if n == 0 {
			return dc
		}
		return p(n)
	}
}

// Scaled returns a provider with every coefficient multiplied by factor.
func Scaled(p Provider, factor float64) Provider {
	f := complex(factor, 0)
	return func(n int) complex128 {
		return f * p(n)
	}
}

// Harmonics reports the number of harmonics the spectrum carries.
func (s Spectrum) Harmonics() int {
	return len(s.Cos)
}

// Truncated returns a view of the spectrum keeping only the first n
// harmonics. The returned spectrum shares the underlying amplitude arrays.
// n larger than the spectrum is clamped.
func (s Spectrum) Truncated(n int) Spectrum {
	if n < 0 {
		n = 0
	}
	if n > len(s.Cos) {
		n = len(s.Cos)
	}
	return Spectrum{DC: s.DC, Cos: s.Cos[:n], Sin: s.Sin[:n]}
}

// Provider returns a conjugate-symmetric coefficient provider that
// reproduces the spectrum: Amplitudes(s.Provider(), s.Harmonics()) equals s.
// Harmonics beyond the spectrum are zero.
func (s Spectrum) Provider() Provider {
	return func(n int) complex128 {
		if n == 0 {
			return complex(s.DC, 0)
		}
		k := n
		if k < 0 {
			k = -k
		}
		if k > len(s.Cos) {
			return 0
		}
		if n < 0 {
			return complex(s.Cos[k-1]/2, s.Sin[k-1]/2)
		}
		return complex(s.Cos[k-1]/2, -s.Sin[k-1]/2)
	}
}

// Clone returns a deep copy of the spectrum.
func (s Spectrum) Clone() Spectrum {
	out := Spectrum{
		DC:  s.DC,
		Cos: make([]float64, len(s.Cos)),
		Sin: make([]float64, len(s.Sin)),
	}
	copy(out.Cos, s.Cos)
	copy(out.Sin, s.Sin)
	return out
}

// Energy returns the mean power of the synthesized waveform per Parseval:
// DC² + Σ (Cosₖ² + Sinₖ²)/2.
func (s Spectrum) Energy() float64 {
	e := s.DC * s.DC
	for i := range s.Cos {
		e += (s.Cos[i]*s.Cos[i] + s.Sin[i]*s.Sin[i]) / 2
	}
	return e
}
