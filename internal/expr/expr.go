// Package expr compiles textual coefficient formulas into providers.
//
// A formula is a Go arithmetic expression in the complex variable n, the
// harmonic index. Familiar spellings from interactive use are accepted and
// normalized first: π or PI for pi, a bare i or j (or suffixed 2j) for the
// imaginary unit. The normalized expression is compiled once inside a yaegi
// interpreter and then called natively per harmonic, so synthesis pays no
// per-call parsing cost.
//
// Available inside formulas: the constants pi, tau, e; the functions sin,
// cos, tan, sinh, cosh, exp, log, sqrt, pow, abs, conj, re, im (all over
// complex128).
//
// Providers returned by Compile are not safe for concurrent use; project
// them into a Spectrum before parallel synthesis.
package expr

import (
	"errors"
	"fmt"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/tphakala/go-fourier-series/internal/harmonics"
)

// ErrBadExpression is returned when a coefficient formula cannot be
// normalized or compiled.
var ErrBadExpression = errors.New("invalid coefficient expression")

// coefficient function source template; the interpreter compiles this once
// per formula
const srcTemplate = `package coeff

import "math/cmplx"

const (
	pi  = 3.141592653589793
	tau = 6.283185307179586
	e   = 2.718281828459045
)

func sin(z complex128) complex128    { return cmplx.Sin(z) }
func cos(z complex128) complex128    { return cmplx.Cos(z) }
func tan(z complex128) complex128    { return cmplx.Tan(z) }
func sinh(z complex128) complex128   { return cmplx.Sinh(z) }
func cosh(z complex128) complex128   { return cmplx.Cosh(z) }
func exp(z complex128) complex128    { return cmplx.Exp(z) }
func log(z complex128) complex128    { return cmplx.Log(z) }
func sqrt(z complex128) complex128   { return cmplx.Sqrt(z) }
func pow(z, w complex128) complex128 { return cmplx.Pow(z, w) }
func abs(z complex128) complex128    { return complex(cmplx.Abs(z), 0) }
func conj(z complex128) complex128   { return cmplx.Conj(z) }
func re(z complex128) complex128     { return complex(real(z), 0) }
func im(z complex128) complex128     { return complex(imag(z), 0) }

func Coefficient(n complex128) complex128 {
	return complex128(%s)
}
`

// Compile builds a coefficient provider from a formula in n.
//
// The formula is evaluated with n set to the (complex-valued) harmonic
// index. Formulas are usually singular at n = 0; combine the result with
// harmonics.WithDC to supply the DC term separately.
func Compile(formula string) (harmonics.Provider, error) {
	normalized, err := Normalize(formula)
	if err != nil {
		return nil, err
	}

	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("%w: loading interpreter symbols: %v", ErrBadExpression, err)
	}

	if _, err := i.Eval(fmt.Sprintf(srcTemplate, normalized)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadExpression, err)
	}

	v, err := i.Eval("coeff.Coefficient")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadExpression, err)
	}
	fn, ok := v.Interface().(func(complex128) complex128)
	if !ok {
		return nil, fmt.Errorf("%w: formula does not evaluate to a complex value", ErrBadExpression)
	}

	return func(n int) complex128 {
		return fn(complex(float64(n), 0))
	}, nil
}

// CompileWithDC builds a provider that yields the given DC coefficient at
// n = 0 and the compiled formula elsewhere, mirroring interactive input
// where c₀ and cₙ are entered separately.
func CompileWithDC(dc complex128, formula string) (harmonics.Provider, error) {
	p, err := Compile(formula)
	if err != nil {
		return nil, err
	}
	return harmonics.WithDC(dc, p), nil
}
