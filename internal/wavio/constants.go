package wavio

const (
	// Channel counts
	monoChannels   = 1
	stereoChannels = 2

	// Sample format constants
	bitsPerSample16 = 16
	bitsPerSample24 = 24

	// Full-scale values per bit depth
	maxInt16 = 32767.0
	maxInt24 = 8388607.0

	// wavFormatPCM is the RIFF audio format tag for linear PCM.
	wavFormatPCM = 1

	// peakTarget is the normalization target, slightly below full scale.
	peakTarget = 0.95

	// Sample rate bounds accepted for synthesis output.
	minSampleRate = 8000
	maxSampleRate = 192000
)
