package expr

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTolerance = 1e-12

// TestNormalize tests token-level rewriting of interactive spellings.
func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"pi lowercase", "pi", "pi", false},
		{"pi uppercase", "PI*n", "pi * n", false},
		{"pi mixed", "Pi", "pi", false},
		{"pi unicode", "π / n", "pi / n", false},
		{"bare i", "i", "1i", false},
		{"bare j", "j", "1i", false},
		{"multiplied j", "2*j", "2 * 1i", false},
		{"suffixed j", "2j", "2i", false},
		{"suffixed float j", "1.5j", "1.5i", false},
		{"go imaginary literal", "1.5i", "1.5i", false},
		{"square formula", "-4*i/(pi*n)", "- 4 * 1i / ( pi * n )", false},
		{"call", "sin(n)", "sin ( n )", false},
		{"two args", "pow(n, 2)", "pow ( n , 2 )", false},
		{"identifier untouched", "conj(n)*i", "conj ( n ) * 1i", false},
		{"python power", "n**2", "", true},
		{"assignment", "x = 2", "", true},
		{"string literal", `"abc"`, "", true},
		{"keyword", "func()", "", true},
		{"selector", "n.Real", "", true},
		{"unknown identifier", "foo", "", true},
		{"unknown call", "gamma(n)", "", true},
		{"brace", "{n}", "", true},
		{"empty", "", "", true},
		{"whitespace only", "   ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrBadExpression)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestCompile_SquareFormula tests the canonical interactive square-wave
// formula against its closed form at positive and negative indices.
func TestCompile_SquareFormula(t *testing.T) {
	p, err := Compile("-2*i/(pi*n)")
	require.NoError(t, err)

	for _, n := range []int{1, 2, 3, -1, -2, -5} {
		want := complex(0, -2/(math.Pi*float64(n)))
		got := p(n)
		assert.InDelta(t, real(want), real(got), testTolerance, "Re c_%d", n)
		assert.InDelta(t, imag(want), imag(got), testTolerance, "Im c_%d", n)
	}
}

// TestCompile_Functions tests the predeclared function set.
func TestCompile_Functions(t *testing.T) {
	tests := []struct {
		formula string
		n       int
		want    complex128
	}{
		{"i", 5, 1i},
		{"pow(n, 2)", 3, 9},
		{"exp(i*pi*n)", 2, 1},
		{"exp(i*pi*n)", 3, -1},
		{"abs(-3*n)", 2, 6},
		{"conj(2+3j)", 1, 2 - 3i},
		{"sqrt(re(n))", 4, 2},
		{"sin(pi/2)*n", 2, 2},
		{"tau/pi", 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.formula, func(t *testing.T) {
			p, err := Compile(tt.formula)
			require.NoError(t, err)
			got := p(tt.n)
			assert.InDelta(t, real(tt.want), real(got), 1e-9, "Re")
			assert.InDelta(t, imag(tt.want), imag(got), 1e-9, "Im")
		})
	}
}

// TestCompile_Errors tests rejection of malformed formulas.
func TestCompile_Errors(t *testing.T) {
	for _, formula := range []string{
		"",
		"n**2",
		"foo(n)",
		"1/0",
		"n +",
	} {
		t.Run(formula, func(t *testing.T) {
			_, err := Compile(formula)
			assert.ErrorIs(t, err, ErrBadExpression)
		})
	}
}

// TestCompile_RejectsSelfReference tests that a formula naming the generated
// coefficient function is rejected instead of compiling into unbounded
// recursion.
func TestCompile_RejectsSelfReference(t *testing.T) {
	for _, formula := range []string{
		"Coefficient(n)",
		"2*Coefficient(n-1)",
	} {
		t.Run(formula, func(t *testing.T) {
			_, err := Compile(formula)
			assert.ErrorIs(t, err, ErrBadExpression)
		})
	}
}

// TestCompile_SingularAtZero tests that a 1/n formula yields a non-finite
// value at n = 0 instead of panicking; callers supply DC separately.
func TestCompile_SingularAtZero(t *testing.T) {
	p, err := Compile("1/n")
	require.NoError(t, err)

	v := p(0)
	assert.True(t, cmplx.IsInf(v) || cmplx.IsNaN(v), "expected non-finite, got %v", v)
}

// TestCompileWithDC tests the separate DC path.
func TestCompileWithDC(t *testing.T) {
	p, err := CompileWithDC(2.5, "1/n")
	require.NoError(t, err)

	assert.Equal(t, complex128(2.5), p(0))
	assert.InDelta(t, 0.5, real(p(2)), testTolerance)
}

// TestCompileWithDC_PropagatesErrors tests formula errors surface.
func TestCompileWithDC_PropagatesErrors(t *testing.T) {
	_, err := CompileWithDC(0, "n**3")
	assert.ErrorIs(t, err, ErrBadExpression)
}
