// Package keyframe models the entity that imported positions are keyed onto.
package keyframe

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// Vec3 is a location in scene units.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Axis selects one component of a Vec3.
type Axis int

// Axes.
const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// ParseAxis accepts "x", "y" or "z" in either case.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	default:
		return 0, fmt.Errorf("unknown axis %q", s)
	}
}

// String returns the lowercase axis name.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("axis(%d)", int(a))
	}
}

// Valid reports whether a names one of the three axes.
func (a Axis) Valid() bool {
	return a >= AxisX && a <= AxisZ
}

// Get returns the component of v on axis a.
func (v Vec3) Get(a Axis) float64 {
	switch a {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	default:
		return v.Z
	}
}

// With returns v with the component on axis a replaced by value.
func (v Vec3) With(a Axis, value float64) Vec3 {
	switch a {
	case AxisX:
		v.X = value
	case AxisY:
		v.Y = value
	default:
		v.Z = value
	}
	return v
}

// Target is an entity with a mutable location that accepts keyframes.
type Target interface {
	// Location returns the entity's current location.
	Location() Vec3

	// SetKeyframe sets the location and records it as a keyframe at frame.
	// A second keyframe at the same frame replaces the first.
	SetKeyframe(frame int, loc Vec3)
}

// Key is one recorded keyframe.
type Key struct {
	Frame    int  `json:"frame"`
	Location Vec3 `json:"location"`
}

// Entity is an in-memory Target.
type Entity struct {
	mu       sync.Mutex
	name     string
	location Vec3
	keys     map[int]Vec3
}

// NewEntity creates an entity at loc with no keyframes.
func NewEntity(name string, loc Vec3) *Entity {
	return &Entity{name: name, location: loc, keys: make(map[int]Vec3)}
}

// Name returns the entity name.
func (e *Entity) Name() string {
	return e.name
}

// Location returns the current location.
func (e *Entity) Location() Vec3 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.location
}

// SetKeyframe implements Target.
func (e *Entity) SetKeyframe(frame int, loc Vec3) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.location = loc
	e.keys[frame] = loc
}

// Keyframe returns the location keyed at frame.
func (e *Entity) Keyframe(frame int) (Vec3, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	loc, ok := e.keys[frame]
	return loc, ok
}

// Keys returns all keyframes in ascending frame order.
func (e *Entity) Keys() []Key {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Key, 0, len(e.keys))
	for _, f := range slices.Sorted(maps.Keys(e.keys)) {
		out = append(out, Key{Frame: f, Location: e.keys[f]})
	}
	return out
}
