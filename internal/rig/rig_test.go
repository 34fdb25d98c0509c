package rig

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tphakala/go-motion-io/internal/keyframe"
)

func TestBogeyOffset(t *testing.T) {
	front := keyframe.Vec3{X: 6}
	rear := keyframe.Vec3{X: -6}

	// 12 m spacing on a 1200 m track traversed over 600 frames: 2 m per
	// frame, so each bogey sits 3 frames from the centre.
	assert.InDelta(t, 3.0, BogeyOffset(front, rear, 1200, 600), 1e-12)

	f, r := BogeyOffsets(front, rear, 1200, 600)
	assert.InDelta(t, -3.0, f, 1e-12)
	assert.InDelta(t, 3.0, r, 1e-12)
}

func TestBogeyOffset_Degenerate(t *testing.T) {
	a := keyframe.Vec3{X: 1, Y: 2, Z: 3}
	b := keyframe.Vec3{X: 4, Y: 6, Z: 3}

	assert.Zero(t, BogeyOffset(a, b, 0, 100))
	assert.Zero(t, BogeyOffset(a, b, 100, 0))
	assert.Zero(t, BogeyOffset(a, a, 100, 100))

	f, r := BogeyOffsets(a, a, 100, 100)
	assert.Zero(t, f)
	assert.Zero(t, r)
}

func TestDistance(t *testing.T) {
	assert.InDelta(t, 5.0, Distance(keyframe.Vec3{X: 1, Y: 2}, keyframe.Vec3{X: 4, Y: 6}), 1e-12)
}
