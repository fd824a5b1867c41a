package series

import "math"

const twoPi = 2 * math.Pi

// Defaults shared by the public Config and preset loading. Values follow
// the tool's interactive lineage: one fundamental period of 2π sampled at
// 1000 points over [-π, π], 100 harmonics.
const (
	DefaultPeriod        = twoPi
	DefaultHarmonics     = 100
	DefaultSamples       = 1000
	DefaultIntervalStart = -math.Pi
	DefaultIntervalEnd   = math.Pi
)

// DefaultLadder returns the default harmonic-count ladder rendered as a
// panel grid. Callers own the returned slice.
func DefaultLadder() []int {
	return []int{1, 2, 5, 10, 100, 1000}
}

// Grid constraints
const (
	// minGridCount is the smallest usable sample grid.
	minGridCount = 2

	// periodMatchTolerance is the relative tolerance for recognizing a grid
	// that spans exactly one fundamental period.
	periodMatchTolerance = 1e-9
)

// Engine selection and sizing
const (
	// FFTCrossoverHarmonics is the harmonic count above which FFT synthesis
	// overtakes per-sample dot products on one-period grids. Determined
	// empirically on amd64; the direct path stays competitive longer than
	// operation counts suggest because of SIMD folding.
	FFTCrossoverHarmonics = 64

	// minFFTSamples is the smallest FFT synthesis grid.
	minFFTSamples = 4

	// minParallelSamples is the grid size below which parallel sampling
	// costs more than it saves.
	minParallelSamples = 2048

	// maxWorkers caps the sampling worker count.
	maxWorkers = 64
)
