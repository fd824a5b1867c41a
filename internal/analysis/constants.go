package analysis

// Extraction grid sizing
const (
	// minAnalysisSamples is the smallest sample count FromSamples accepts.
	minAnalysisSamples = 4

	// oversampleFactor scales the automatic extraction grid relative to the
	// requested harmonic count. Generous oversampling keeps quadrature error
	// of discontinuous waveforms below coefficient magnitude.
	oversampleFactor = 16

	// minAutoSamples floors the automatic extraction grid.
	minAutoSamples = 1024
)
