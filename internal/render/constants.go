package render

import "image/color"

const (
	// renderDPI of 72 makes one vg point one pixel, so Options dimensions
	// map directly to raster dimensions.
	renderDPI = 72

	// gridCols is the ladder grid width in panels.
	gridCols = 2

	// minPanelPoints is the smallest drawable curve.
	minPanelPoints = 2

	// tilePadPoints separates and frames ladder grid tiles.
	tilePadPoints = 6
)

// Line styling, in points.
const (
	approxLineWidth    = 1.5
	referenceLineWidth = 1
	referenceDashOn    = 4
	referenceDashOff   = 2
)

var (
	approxColor    = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	referenceColor = color.RGBA{R: 127, G: 127, B: 127, A: 255}
)
