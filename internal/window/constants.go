package window

// Taper formula constants
const (
	// DefaultKaiserBeta is used when a Kaiser spec carries no explicit β.
	// β = 8.6 suppresses sidelobes by roughly 87 dB.
	DefaultKaiserBeta = 8.6

	// maxKaiserBeta bounds β to keep I₀(β) finite in float64.
	maxKaiserBeta = 50.0

	// Raised-cosine coefficients over the harmonic index
	hannBase     = 0.5
	hammingAlpha = 0.54
	hammingBeta  = 0.46
)
