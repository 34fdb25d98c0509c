package engine

// Derivative orders.
const (
	minOrder = OrderVelocity
	maxOrder = OrderJerk
)

// Worker pool limits for table-driven builds.
const (
	// defaultWorkers is used when the caller does not choose a pool size.
	defaultWorkers = 4

	// minFramesPerWorker keeps tiny ranges on a single goroutine.
	minFramesPerWorker = 64
)

// Frame spans used by the difference schemes.
const (
	singleFrameSpan = 1
)
