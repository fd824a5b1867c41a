package fourier

import "github.com/tphakala/go-fourier-series/internal/series"

// Canonical defaults, shared with the preset and command layers.
const (
	// DefaultPeriod is the default fundamental period, 2π.
	DefaultPeriod = series.DefaultPeriod

	// DefaultHarmonics is the default truncation order.
	DefaultHarmonics = series.DefaultHarmonics

	// DefaultSamples is the default grid point count.
	DefaultSamples = series.DefaultSamples

	// DefaultIntervalStart is the default evaluation interval start, -π.
	DefaultIntervalStart = series.DefaultIntervalStart

	// DefaultIntervalEnd is the default evaluation interval end, π.
	DefaultIntervalEnd = series.DefaultIntervalEnd
)

// DefaultLadder returns the default harmonic-count ladder
// {1, 2, 5, 10, 100, 1000}. Callers own the returned slice.
func DefaultLadder() []int {
	return series.DefaultLadder()
}

// Synthesis limits
const (
	minSamples   = 2       // smallest usable grid
	maxSamples   = 1 << 24 // grid size cap, ~16.8M points
	maxHarmonics = 1 << 20 // truncation order cap
)

// Algorithm names reported by Info
const (
	algorithmDirect = "direct"
	algorithmFFT    = "fft"
)
