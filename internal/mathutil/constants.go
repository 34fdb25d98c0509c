package mathutil

// Precision limits in decimal digits.
const (
	// MinPrecision is the fewest fractional digits a run may retain.
	MinPrecision = 1

	// MaxPrecision is the most fractional digits a run may retain.
	// Beyond 10 digits the fixed-point strings stop round-tripping
	// for typical arc lengths in metres.
	MaxPrecision = 10

	// DefaultPrecision matches the exporter's historical default.
	DefaultPrecision = 4
)

const (
	fixedPointFormat = 'f'
	float64Bits      = 64
)
