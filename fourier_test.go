package fourier

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testTolerance = 1e-12
	testAmplitude = 1.0
)

// validConfig returns a minimal valid configuration for mutation in tests.
func validConfig() Config {
	c := DefaultConfig()
	c.Provider = Square(testAmplitude)
	return c
}

// TestConfigValidate tests configuration validation across the parameter
// space.
func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"nil provider", func(c *Config) { c.Provider = nil }, true},
		{"zero period", func(c *Config) { c.Period = 0 }, true},
		{"negative period", func(c *Config) { c.Period = -1 }, true},
		{"nan period", func(c *Config) { c.Period = math.NaN() }, true},
		{"inf period", func(c *Config) { c.Period = math.Inf(1) }, true},
		{"negative harmonics", func(c *Config) { c.Harmonics = -1 }, true},
		{"zero harmonics", func(c *Config) { c.Harmonics = 0 }, false},
		{"too many harmonics", func(c *Config) { c.Harmonics = maxHarmonics + 1 }, true},
		{"inverted interval", func(c *Config) { c.Start, c.End = 1, -1 }, true},
		{"empty interval", func(c *Config) { c.Start, c.End = 1, 1 }, true},
		{"nan interval", func(c *Config) { c.Start = math.NaN() }, true},
		{"inf interval", func(c *Config) { c.End = math.Inf(1) }, true},
		{"one sample", func(c *Config) { c.Samples = 1 }, true},
		{"two samples", func(c *Config) { c.Samples = 2 }, false},
		{"too many samples", func(c *Config) { c.Samples = maxSamples + 1 }, true},
		{"unknown taper", func(c *Config) { c.Taper = "blackman" }, true},
		{"malformed kaiser taper", func(c *Config) { c.Taper = "kaiser:x" }, true},
		{"named taper", func(c *Config) { c.Taper = "lanczos" }, false},
		{"kaiser taper with beta", func(c *Config) { c.Taper = "kaiser:8.6" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(&c)

			err := c.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestNew_NilConfig tests that a nil configuration is rejected.
func TestNew_NilConfig(t *testing.T) {
	s, err := New(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Nil(t, s)
}

// TestNew_BadCoefficient tests that non-finite provider values are rejected
// at construction rather than surfacing as NaN waveforms.
func TestNew_BadCoefficient(t *testing.T) {
	tests := []struct {
		name     string
		provider Provider
	}{
		{"nan harmonic", func(n int) complex128 {
			if n == 3 || n == -3 {
				return complex(math.NaN(), 0)
			}
			return 0
		}},
		{"inf harmonic", func(n int) complex128 {
			if n == 1 {
				return complex(0, math.Inf(1))
			}
			return 0
		}},
		{"nan dc", func(n int) complex128 {
			if n == 0 {
				return complex(math.NaN(), 0)
			}
			return 0
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			c.Provider = tt.provider
			c.Harmonics = 5

			s, err := New(&c)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrBadCoefficient)
			assert.Nil(t, s)
		})
	}
}

// TestNew_SelectsAlgorithm tests direct/FFT path selection from harmonic
// count and grid geometry.
func TestNew_SelectsAlgorithm(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"high order one-period grid", func(c *Config) { c.Harmonics = 200 }, algorithmFFT},
		{"low order stays direct", func(c *Config) { c.Harmonics = 10 }, algorithmDirect},
		{"fft disabled", func(c *Config) { c.Harmonics = 200; c.EnableFFT = false }, algorithmDirect},
		{"grid not spanning a period", func(c *Config) { c.Harmonics = 200; c.End = math.Pi / 2 }, algorithmDirect},
		{"order above grid capacity", func(c *Config) { c.Harmonics = 200; c.Samples = 300 }, algorithmDirect},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(&c)

			s, err := New(&c)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Info().Algorithm)
		})
	}
}

// TestDefaultConfig tests the canonical defaults.
func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	assert.InDelta(t, 2*math.Pi, c.Period, testTolerance)
	assert.Equal(t, 100, c.Harmonics)
	assert.Equal(t, 1000, c.Samples)
	assert.InDelta(t, -math.Pi, c.Start, testTolerance)
	assert.InDelta(t, math.Pi, c.End, testTolerance)
	assert.True(t, c.EnableFFT)

	c.Provider = Square(testAmplitude)
	assert.NoError(t, c.Validate())
}

// TestDefaultLadder tests that callers own the returned slice.
func TestDefaultLadder(t *testing.T) {
	ladder := DefaultLadder()
	require.Equal(t, []int{1, 2, 5, 10, 100, 1000}, ladder)

	ladder[0] = 999
	assert.Equal(t, 1, DefaultLadder()[0])
}

// TestSynthesizer_Coefficients tests the amplitude view and its copy
// semantics.
func TestSynthesizer_Coefficients(t *testing.T) {
	c := validConfig()
	c.Harmonics = 5

	s, err := New(&c)
	require.NoError(t, err)

	spec := s.Coefficients()
	require.Equal(t, 5, spec.Harmonics())
	assert.InDelta(t, 0.0, spec.DC, testTolerance)
	for k := 1; k <= 5; k++ {
		assert.InDelta(t, 0.0, spec.Cos[k-1], testTolerance, "cos at k=%d", k)
		want := 0.0
		if k%2 == 1 {
			want = 4 * testAmplitude / (math.Pi * float64(k))
		}
		assert.InDelta(t, want, spec.Sin[k-1], testTolerance, "sin at k=%d", k)
	}

	// mutating the copy must not leak into the synthesizer
	spec.Sin[0] = 999
	assert.NotEqual(t, 999.0, s.Coefficients().Sin[0])
}

// TestSynthesizer_Points tests the grid point view.
func TestSynthesizer_Points(t *testing.T) {
	c := validConfig()
	c.Start, c.End = -1, 3
	c.Samples = 5

	s, err := New(&c)
	require.NoError(t, err)

	points := s.Points()
	require.Len(t, points, 5)
	assert.InDelta(t, -1.0, points[0], testTolerance)
	assert.InDelta(t, 0.0, points[1], testTolerance)
	assert.InDelta(t, 3.0, points[4], testTolerance)
}

// TestSynthesizer_Info tests construction metadata.
func TestSynthesizer_Info(t *testing.T) {
	c := validConfig()
	c.Harmonics = 42
	c.Taper = "hann"
	c.Parallel = true

	s, err := New(&c)
	require.NoError(t, err)

	info := s.Info()
	assert.Equal(t, algorithmDirect, info.Algorithm)
	assert.Equal(t, 42, info.Harmonics)
	assert.Equal(t, DefaultSamples, info.Samples)
	assert.Equal(t, "hann", info.Taper)
	assert.True(t, info.Parallel)
}
