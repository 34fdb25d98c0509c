package motionio

import (
	"context"
	"fmt"
	"os"

	"github.com/tphakala/go-motion-io/internal/host"
	"github.com/tphakala/go-motion-io/internal/keyframe"
	"github.com/tphakala/go-motion-io/internal/rig"
)

// Vec3 is a location in scene units.
type Vec3 = keyframe.Vec3

// NewCursor wraps an addressable host so it can be driven frame by frame.
func NewCursor(src Addressable) *Cursor {
	return host.NewCursor(src)
}

// NewTable builds an addressable host from a frame -> snapshot mapping.
func NewTable(snapshots map[int]PathSnapshot) *host.Table {
	return host.NewTable(snapshots)
}

// LoadHostTable reads a snapshot table with the columns frame,
// curve_length, path_duration and eval_time.
func LoadHostTable(path string) (*host.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open host table: %w", ErrInvalidConfig, err)
	}
	defer func() { _ = f.Close() }()

	t, err := host.ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}
	return t, nil
}

// NewEntity creates an in-memory import target at loc.
func NewEntity(name string, loc Vec3) *keyframe.Entity {
	return keyframe.NewEntity(name, loc)
}

// ParseAxis accepts "x", "y" or "z".
func ParseAxis(s string) (Axis, error) {
	a, err := keyframe.ParseAxis(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return a, nil
}

// BuildLinear is a convenience for a constant-speed path: the object covers
// curveLength over pathDuration frames starting at frame start.
func BuildLinear(ctx context.Context, cfg Config, curveLength, pathDuration float64, start int) (*Run, error) {
	return Build(ctx, cfg, NewCursor(LinearPath{
		CurveLength:  curveLength,
		PathDuration: pathDuration,
		Start:        start,
	}))
}

// BogeyOffsets returns the follow-path offsets for the front and rear bogey
// of a vehicle whose bogeys sit at front and rear, on a path of curveLength
// traversed over pathDuration. The front offset is negative. Both are zero
// when any input is degenerate.
func BogeyOffsets(front, rear Vec3, curveLength, pathDuration float64) (frontOffset, rearOffset float64) {
	return rig.BogeyOffsets(front, rear, curveLength, pathDuration)
}
