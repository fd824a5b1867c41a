package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSinc tests Sinc against known values.
func TestSinc(t *testing.T) {
	tests := []struct {
		name     string
		x        float64
		expected float64
	}{
		{"Zero", 0.0, 1.0},
		{"Half", 0.5, 2.0 / math.Pi},
		{"One", 1.0, 0.0},
		{"Two", 2.0, 0.0},
		{"Negative one", -1.0, 0.0},
		{"Quarter", 0.25, math.Sin(math.Pi/4) / (math.Pi / 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Sinc(tt.x), 1e-12)
		})
	}
}

// TestSinc_Even tests sinc(x) = sinc(-x).
func TestSinc_Even(t *testing.T) {
	for x := 0.1; x < 5.0; x += 0.3 {
		assert.InDelta(t, Sinc(x), Sinc(-x), 1e-15, "sinc not even at x=%v", x)
	}
}

// TestSinc_TinyArgContinuity tests the Taylor branch joins the direct branch smoothly.
func TestSinc_TinyArgContinuity(t *testing.T) {
	// Values straddling the branch threshold must agree to high precision.
	below := Sinc(9e-9)
	above := Sinc(1.1e-8)
	assert.InDelta(t, below, above, 1e-12)
	assert.InDelta(t, 1.0, below, 1e-12)
}

// TestSinc_BoundedByOne tests |sinc(x)| ≤ 1 with maximum only at 0.
func TestSinc_BoundedByOne(t *testing.T) {
	for x := -10.0; x <= 10.0; x += 0.07 {
		v := Sinc(x)
		assert.LessOrEqual(t, math.Abs(v), 1.0, "sinc exceeds 1 at x=%v", x)
	}
}
