// Package engine implements the finite-difference kinematics engine: the
// position sampler, the derivative rules for first, interior and last
// frames, and the motion table builder that drives them over a frame range.
package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-motion-io/internal/mathutil"
)

// Errors returned by the engine.
var (
	// ErrInvalidConfig indicates a run that must not start: bad frame range,
	// frame rate, precision or derivative order, or host values that cannot
	// be converted to a position.
	ErrInvalidConfig = errors.New("invalid motion configuration")

	// ErrMissingContext indicates the host could not resolve a frame or path.
	ErrMissingContext = errors.New("missing host context")
)

// Order is the time-derivative order of a series. Order 0 is position.
type Order int

const (
	// OrderPosition is the sampled arc-length position.
	OrderPosition Order = iota
	// OrderVelocity is the first derivative.
	OrderVelocity
	// OrderAcceleration is the second derivative.
	OrderAcceleration
	// OrderJerk is the third derivative.
	OrderJerk
)

// String returns the lowercase name of the order.
func (o Order) String() string {
	switch o {
	case OrderPosition:
		return "position"
	case OrderVelocity:
		return "velocity"
	case OrderAcceleration:
		return "acceleration"
	case OrderJerk:
		return "jerk"
	default:
		return fmt.Sprintf("order(%d)", int(o))
	}
}

// Scheme selects the time step used by the difference rule.
type Scheme int

const (
	// SchemeForward divides every difference by one frame period, including
	// interior frames whose look-behind and look-ahead are two frames apart.
	// This is the exporter's historical convention and the default.
	SchemeForward Scheme = iota

	// SchemeCentral divides by the actual span between the two samples:
	// two frame periods for interior frames, one at the range boundaries.
	SchemeCentral
)

// String returns the lowercase name of the scheme.
func (s Scheme) String() string {
	switch s {
	case SchemeForward:
		return "forward"
	case SchemeCentral:
		return "central"
	default:
		return fmt.Sprintf("scheme(%d)", int(s))
	}
}

// Timeline is the immutable configuration of one run.
type Timeline struct {
	// FirstFrame and LastFrame bound the closed frame range.
	FirstFrame int
	LastFrame  int

	// FrameRate is in frames per second.
	FrameRate float64

	// Precision is the number of fractional decimal digits retained for
	// every persisted or reused value.
	Precision int

	// Order is the highest derivative computed (velocity, acceleration or jerk).
	Order Order

	// Scheme selects the difference time step.
	Scheme Scheme
}

// Validate checks the timeline before any frame is processed.
func (t *Timeline) Validate() error {
	if t.FirstFrame < 0 {
		return fmt.Errorf("%w: first frame must be non-negative, got %d", ErrInvalidConfig, t.FirstFrame)
	}
	if t.LastFrame < t.FirstFrame {
		return fmt.Errorf("%w: last frame %d precedes first frame %d", ErrInvalidConfig, t.LastFrame, t.FirstFrame)
	}
	if !(t.FrameRate > 0) || math.IsInf(t.FrameRate, 0) {
		return fmt.Errorf("%w: frame rate must be positive, got %v", ErrInvalidConfig, t.FrameRate)
	}
	if !mathutil.ValidPrecision(t.Precision) {
		return fmt.Errorf("%w: precision must be %d-%d digits, got %d",
			ErrInvalidConfig, mathutil.MinPrecision, mathutil.MaxPrecision, t.Precision)
	}
	if t.Order < minOrder || t.Order > maxOrder {
		return fmt.Errorf("%w: derivative order must be %d-%d, got %d", ErrInvalidConfig, minOrder, maxOrder, t.Order)
	}
	if t.Scheme != SchemeForward && t.Scheme != SchemeCentral {
		return fmt.Errorf("%w: unknown difference scheme %d", ErrInvalidConfig, t.Scheme)
	}
	return nil
}

// Frames returns the number of frames in the range.
func (t *Timeline) Frames() int {
	return t.LastFrame - t.FirstFrame + 1
}

// TimeAt returns the elapsed time of frame in seconds, rounded to the
// timeline precision.
func (t *Timeline) TimeAt(frame int) float64 {
	return mathutil.Round(float64(frame)/t.FrameRate, t.Precision)
}

// step returns the time between two frames under the timeline's scheme.
func (t *Timeline) step(prevFrame, nextFrame int) float64 {
	span := singleFrameSpan
	if t.Scheme == SchemeCentral {
		span = nextFrame - prevFrame
	}
	return float64(span) / t.FrameRate
}

// neighbours returns the frames whose values feed the difference at frame.
// A boundary frame substitutes itself for the missing neighbour.
func (t *Timeline) neighbours(frame int) (prevFrame, nextFrame int) {
	prevFrame, nextFrame = frame-1, frame+1
	if frame == t.FirstFrame {
		prevFrame = frame
	}
	if frame == t.LastFrame {
		nextFrame = frame
	}
	return prevFrame, nextFrame
}

// difference applies the finite-difference rule to two neighbour values.
func (t *Timeline) difference(prev, next float64, prevFrame, nextFrame int) float64 {
	dt := t.step(prevFrame, nextFrame)
	if dt == 0 {
		return 0
	}
	return mathutil.Round((next-prev)/dt, t.Precision)
}
