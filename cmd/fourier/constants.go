package main

import "time"

const (
	// defaultWaveform is rendered when neither --waveform nor --term is given.
	defaultWaveform = "square"

	// outputFileMode for written images and WAV files.
	outputFileMode = 0o644

	// watchDebounce coalesces rapid editor save events into one re-render.
	watchDebounce = 300 * time.Millisecond
)

// Audio export defaults
const (
	defaultFrequency  = 440.0
	defaultSampleRate = 44100
	defaultBitDepth   = 16
	defaultDuration   = 2.0
)

// Coefficient table layout
const (
	defaultCoeffCount = 10
	coeffColWidth     = 14
	coeffPrecision    = 6
)
