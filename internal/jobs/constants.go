package jobs

const (
	// maxQueued bounds the render backlog; submissions beyond it are
	// rejected rather than buffered without limit.
	maxQueued = 64

	// maxProgress is the progress value of a completed job.
	maxProgress = 100

	// evictionsPerTTL is how many janitor passes fit in one TTL, so a
	// finished job outlives its TTL by at most a quarter of it.
	evictionsPerTTL = 4
)
