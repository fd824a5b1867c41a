package harmonics

// Waveform construction constants
const (
	// defaultPulseDuty is the duty cycle used when New constructs a pulse
	// train without an explicit duty.
	defaultPulseDuty = 0.5
)
