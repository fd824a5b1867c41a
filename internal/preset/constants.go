package preset

// Image formats accepted by the render block.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

// Defaults applied when a preset file leaves attributes unset.
const (
	defaultAmplitude = 1.0
	defaultWidth     = 1280
	defaultHeight    = 720
	defaultFormat    = FormatPNG
)
