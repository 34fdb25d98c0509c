package keyframe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAxis(t *testing.T) {
	tests := []struct {
		in   string
		want Axis
	}{
		{"x", AxisX},
		{"Y", AxisY},
		{" z ", AxisZ},
	}
	for _, tt := range tests {
		got, err := ParseAxis(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
		assert.True(t, got.Valid())
	}

	_, err := ParseAxis("w")
	require.Error(t, err)
	assert.False(t, Axis(5).Valid())
}

func TestVec3_GetWith(t *testing.T) {
	v := Vec3{X: 1, Y: 2, Z: 3}

	assert.Equal(t, 2.0, v.Get(AxisY))
	assert.Equal(t, Vec3{X: 1, Y: 9, Z: 3}, v.With(AxisY, 9))
	assert.Equal(t, Vec3{X: 7, Y: 2, Z: 3}, v.With(AxisX, 7))
	assert.Equal(t, Vec3{X: 1, Y: 2, Z: 3}, v, "With does not modify the receiver")
}

func TestEntity_SetKeyframe(t *testing.T) {
	e := NewEntity("ANIM_propulsion", Vec3{X: 1, Y: 2, Z: 3})
	assert.Equal(t, "ANIM_propulsion", e.Name())

	e.SetKeyframe(5, Vec3{X: 1, Y: 10, Z: 3})
	e.SetKeyframe(2, Vec3{X: 1, Y: 4, Z: 3})
	e.SetKeyframe(5, Vec3{X: 1, Y: 11, Z: 3})

	loc, ok := e.Keyframe(5)
	require.True(t, ok)
	assert.Equal(t, 11.0, loc.Y, "last write wins")
	assert.Equal(t, Vec3{X: 1, Y: 11, Z: 3}, e.Location())

	keys := e.Keys()
	require.Len(t, keys, 2)
	assert.Equal(t, 2, keys[0].Frame)
	assert.Equal(t, 5, keys[1].Frame)

	_, ok = e.Keyframe(3)
	assert.False(t, ok)
}
