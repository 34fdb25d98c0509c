// Package testutil provides reusable test helpers for the kinematics packages.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tphakala/go-motion-io/internal/host"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance = 1e-10
	RoundedTolerance = 1e-9
)

// AssertFrameSequence verifies that frames is exactly first, first+1, ..., last.
func AssertFrameSequence(t *testing.T, frames []int, first, last int) bool {
	t.Helper()
	if !assert.Len(t, frames, last-first+1, "frame count") {
		return false
	}
	for i, f := range frames {
		if !assert.Equal(t, first+i, f, "frame at index %d", i) {
			return false
		}
	}
	return true
}

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertMonotonic verifies that a slice is monotonically non-decreasing.
func AssertMonotonic(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i := 1; i < len(s); i++ {
		if s[i] < s[i-1] {
			return assert.Fail(t, "not monotonic",
				"s[%d]=%f < s[%d]=%f", i, s[i], i-1, s[i-1])
		}
	}
	return true
}

// AssertAllInDelta verifies that every element is within tolerance of expected.
func AssertAllInDelta(t *testing.T, s []float64, expected, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if !assert.InDelta(t, expected, v, tolerance, "s[%d]", i) {
			return false
		}
	}
	return true
}

// SnapshotTable builds a host table with a fixed curve length and path
// duration and the given evaluation times, starting at frame first.
func SnapshotTable(first int, curveLength, pathDuration float64, evalTimes ...float64) *host.Table {
	snaps := make(map[int]host.PathSnapshot, len(evalTimes))
	for i, e := range evalTimes {
		snaps[first+i] = host.PathSnapshot{
			CurveLength:  curveLength,
			PathDuration: pathDuration,
			EvalTime:     e,
		}
	}
	return host.NewTable(snaps)
}

// QuadraticTable returns a table whose position at frame f is scale*f*f,
// for frames first..last, on a path of unit length and duration.
func QuadraticTable(first, last int, scale float64) *host.Table {
	evalTimes := make([]float64, 0, last-first+1)
	for f := first; f <= last; f++ {
		evalTimes = append(evalTimes, scale*float64(f)*float64(f))
	}
	return SnapshotTable(first, 1, 1, evalTimes...)
}
