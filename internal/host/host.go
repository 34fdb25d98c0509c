// Package host defines the path-evaluation capability the kinematics engine
// reads from, together with the implementations used by the CLI and tests.
//
// A host owns the path geometry. For a given frame it reports the path's
// total arc length, its nominal traversal duration and the current progress
// along it. Two access styles exist:
//
//   - [PathEvaluator] models an animation host with a single mutable
//     "current frame". Callers move the cursor, then read. Only one caller
//     may drive it at a time.
//   - [Addressable] models a precomputed frame -> snapshot table. Reads are
//     independent of each other and safe for concurrent use.
//
// [Cursor] adapts any Addressable into a PathEvaluator, which is how the
// sequential engine path consumes a table.
package host

import (
	"errors"
	"fmt"
	"math"
)

// Errors reported by hosts.
var (
	// ErrInvalidSnapshot indicates a snapshot with a non-positive curve
	// length or path duration.
	ErrInvalidSnapshot = errors.New("invalid path snapshot")

	// ErrUnknownFrame indicates the host cannot resolve the requested frame.
	ErrUnknownFrame = errors.New("frame not available from host")

	// ErrMalformedTable indicates a snapshot table file that cannot be parsed.
	ErrMalformedTable = errors.New("malformed snapshot table")
)

// PathSnapshot is the per-frame state read from the host.
//
// EvalTime is absolute progress on the [0, PathDuration] scale (the
// animation host's evaluation time), not a [0, 1] fraction.
type PathSnapshot struct {
	CurveLength  float64 `json:"curve_length"`
	PathDuration float64 `json:"path_duration"`
	EvalTime     float64 `json:"eval_time"`
}

// Validate checks that the snapshot can be converted to an arc-length position.
func (s PathSnapshot) Validate() error {
	if !(s.CurveLength > 0) || math.IsInf(s.CurveLength, 0) {
		return fmt.Errorf("%w: curve length must be positive, got %v", ErrInvalidSnapshot, s.CurveLength)
	}
	if !(s.PathDuration > 0) || math.IsInf(s.PathDuration, 0) {
		return fmt.Errorf("%w: path duration must be positive, got %v", ErrInvalidSnapshot, s.PathDuration)
	}
	if math.IsNaN(s.EvalTime) || math.IsInf(s.EvalTime, 0) {
		return fmt.Errorf("%w: eval time must be finite, got %v", ErrInvalidSnapshot, s.EvalTime)
	}
	return nil
}

// Position returns the unrounded arc-length distance travelled along the path.
func (s PathSnapshot) Position() float64 {
	return s.EvalTime * s.CurveLength / s.PathDuration
}

// PathEvaluator is a host with an implicit current frame.
type PathEvaluator interface {
	// SetFrame moves the host's evaluation point to frame.
	SetFrame(frame int)

	// Snapshot reads the path state at the current evaluation point.
	Snapshot() (PathSnapshot, error)
}

// Addressable is a host that can be queried at any frame without moving
// shared state.
type Addressable interface {
	SnapshotAt(frame int) (PathSnapshot, error)
}
