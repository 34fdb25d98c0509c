package motionio

import "github.com/tphakala/go-motion-io/internal/mathutil"

// Run defaults, matching the exporter's historical settings.
const (
	DefaultFirstFrame = 0
	DefaultLastFrame  = 1000
	DefaultFrameRate  = 30.0
	DefaultPrecision  = mathutil.DefaultPrecision
)

// Precision limits in fractional decimal digits.
const (
	MinPrecision = mathutil.MinPrecision
	MaxPrecision = mathutil.MaxPrecision
)

// File handling constants
const (
	tempFilePattern = ".motionio-*.tmp"
	outputFileMode  = 0o644
)
