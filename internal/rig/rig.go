// Package rig computes follow-path offsets for multi-bogey vehicle rigs.
package rig

import (
	"math"

	"github.com/tphakala/go-motion-io/internal/keyframe"
)

// Distance returns the straight-line distance between a and b.
func Distance(a, b keyframe.Vec3) float64 {
	return math.Sqrt((a.X-b.X)*(a.X-b.X) + (a.Y-b.Y)*(a.Y-b.Y) + (a.Z-b.Z)*(a.Z-b.Z))
}

// BogeyOffset returns the follow-path offset, in evaluation-time units, that
// separates each bogey from the vehicle centre.
//
// The path is traversed at curveLength/pathDuration per unit of evaluation
// time, so half the bogey spacing divided by that speed is the offset.
// It returns 0 when either length or duration is not positive or the bogeys
// coincide.
func BogeyOffset(front, rear keyframe.Vec3, curveLength, pathDuration float64) float64 {
	if !(curveLength > 0) || !(pathDuration > 0) {
		return 0
	}
	spacing := Distance(front, rear)
	if spacing == 0 {
		return 0
	}
	speed := curveLength / pathDuration
	return (spacing / 2) / speed
}

// BogeyOffsets returns the offsets to apply to the front and rear bogey
// constraints. The front bogey leads the centre, so its offset is negative.
func BogeyOffsets(front, rear keyframe.Vec3, curveLength, pathDuration float64) (frontOffset, rearOffset float64) {
	offset := BogeyOffset(front, rear, curveLength, pathDuration)
	if offset == 0 {
		return 0, 0
	}
	return -offset, offset
}
