// Package window provides harmonic tapers that damp the Gibbs oscillation of
// truncated Fourier series.
//
// A taper assigns each harmonic k = 1..N a weight in [0, 1] that rolls off
// with increasing k. Multiplying the synthesis amplitudes by these weights
// trades convergence speed at discontinuities for suppressed ringing. The
// identity taper (ShapeNone) reproduces the raw partial sum.
package window

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tphakala/go-fourier-series/internal/harmonics"
	"github.com/tphakala/go-fourier-series/internal/mathutil"
)

// ErrUnknownShape is returned when a taper name does not match any shape.
var ErrUnknownShape = errors.New("unknown taper shape")

// Shape identifies a taper weight formula.
type Shape int

const (
	// ShapeNone applies no weighting (raw partial sum).
	ShapeNone Shape = iota
	// ShapeLanczos applies the σ-approximation weight sinc(k/(N+1)).
	ShapeLanczos
	// ShapeFejer applies the Cesàro mean weight 1 - k/(N+1).
	ShapeFejer
	// ShapeHann applies a raised-cosine rolloff over the harmonic index.
	ShapeHann
	// ShapeHamming applies the Hamming rolloff over the harmonic index.
	ShapeHamming
	// ShapeKaiser applies the Kaiser rolloff with tunable β.
	ShapeKaiser
)

// String returns the canonical name of the shape.
func (s Shape) String() string {
	switch s {
	case ShapeNone:
		return "none"
	case ShapeLanczos:
		return "lanczos"
	case ShapeFejer:
		return "fejer"
	case ShapeHann:
		return "hann"
	case ShapeHamming:
		return "hamming"
	case ShapeKaiser:
		return "kaiser"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// ShapeNames lists the canonical names of all taper shapes.
func ShapeNames() []string {
	return []string{"none", "lanczos", "fejer", "hann", "hamming", "kaiser"}
}

// Spec selects a taper shape and its parameters.
type Spec struct {
	// Shape selects the weight formula.
	Shape Shape

	// Beta is the Kaiser β parameter; ignored by other shapes.
	// Zero selects DefaultKaiserBeta.
	Beta float64
}

// Validate checks the spec for usable parameter values.
func (s *Spec) Validate() error {
	switch s.Shape {
	case ShapeNone, ShapeLanczos, ShapeFejer, ShapeHann, ShapeHamming:
		return nil
	case ShapeKaiser:
		if s.Beta < 0 {
			return fmt.Errorf("kaiser beta must be non-negative, got %f", s.Beta)
		}
		if s.Beta > maxKaiserBeta {
			return fmt.Errorf("kaiser beta %f exceeds maximum %f", s.Beta, maxKaiserBeta)
		}
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnknownShape, int(s.Shape))
	}
}

// ParseSpec resolves a taper description of the form "name" or "kaiser:beta".
func ParseSpec(desc string) (Spec, error) {
	name, param, hasParam := strings.Cut(desc, ":")

	var spec Spec
	switch name {
	case "", "none":
		spec.Shape = ShapeNone
	case "lanczos", "sigma":
		spec.Shape = ShapeLanczos
	case "fejer", "cesaro":
		spec.Shape = ShapeFejer
	case "hann":
		spec.Shape = ShapeHann
	case "hamming":
		spec.Shape = ShapeHamming
	case "kaiser":
		spec.Shape = ShapeKaiser
		spec.Beta = DefaultKaiserBeta
	default:
		return Spec{}, fmt.Errorf("%w: %q", ErrUnknownShape, name)
	}

	if hasParam {
		if spec.Shape != ShapeKaiser {
			return Spec{}, fmt.Errorf("taper %q takes no parameter", name)
		}
		beta, err := strconv.ParseFloat(param, 64)
		if err != nil {
			return Spec{}, fmt.Errorf("invalid kaiser beta %q: %w", param, err)
		}
		spec.Beta = beta
	}

	if err := spec.Validate(); err != nil {
		return Spec{}, err
	}
	return spec, nil
}

// String renders the spec in the form ParseSpec accepts.
func (s Spec) String() string {
	if s.Shape == ShapeKaiser && s.Beta != 0 {
		return fmt.Sprintf("kaiser:%g", s.Beta)
	}
	return s.Shape.String()
}

// KaiserFromAttenuation builds a Kaiser spec whose β achieves the requested
// sidelobe suppression in dB.
func KaiserFromAttenuation(db float64) Spec {
	return Spec{Shape: ShapeKaiser, Beta: mathutil.KaiserBeta(db)}
}

// Weights computes the taper weights for harmonics 1..n.
//
// All shapes use N+1 as the rolloff denominator so that the weight of the
// highest retained harmonic stays strictly positive.
//
// Parameters:
//
//	spec: Taper shape and parameters
//	n: Number of harmonics
//
// Returns:
//
//	Slice of n weights in (0, 1], or an error for invalid specs
func Weights(spec Spec, n int) ([]float64, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("harmonic count must be non-negative, got %d", n)
	}

	w := make([]float64, n)
	denom := float64(n + 1)

	switch spec.Shape {
	case ShapeNone:
		for i := range w {
			w[i] = 1.0
		}
	case ShapeLanczos:
		for i := range w {
			w[i] = mathutil.Sinc(float64(i+1) / denom)
		}
	case ShapeFejer:
		for i := range w {
			w[i] = 1.0 - float64(i+1)/denom
		}
	case ShapeHann:
		for i := range w {
			w[i] = hannBase * (1.0 + math.Cos(math.Pi*float64(i+1)/denom))
		}
	case ShapeHamming:
		for i := range w {
			w[i] = hammingAlpha + hammingBeta*math.Cos(math.Pi*float64(i+1)/denom)
		}
	case ShapeKaiser:
		beta := spec.Beta
		if beta == 0 {
			beta = DefaultKaiserBeta
		}
		norm := mathutil.BesselI0(beta)
		for i := range w {
			x := float64(i+1) / denom
			w[i] = mathutil.BesselI0(beta*math.Sqrt(1.0-x*x)) / norm
		}
	}

	return w, nil
}

// Apply returns a copy of the spectrum with taper weights applied to the
// harmonic amplitudes. The DC level is never tapered.
func Apply(s harmonics.Spectrum, spec Spec) (harmonics.Spectrum, error) {
	w, err := Weights(spec, s.Harmonics())
	if err != nil {
		return harmonics.Spectrum{}, err
	}

	out := s.Clone()
	for i := range w {
		out.Cos[i] *= w[i]
		out.Sin[i] *= w[i]
	}
	return out, nil
}
