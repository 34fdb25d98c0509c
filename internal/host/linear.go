package host

import "fmt"

// LinearPath is a constant-speed traversal: the object starts at Start and
// advances one unit of evaluation time per frame until it reaches the end of
// the path, where it stays. This is the default path animation of the
// animation host when no custom evaluation-time curve is keyed.
type LinearPath struct {
	CurveLength  float64
	PathDuration float64
	Start        int
}

// SnapshotAt returns the path state at frame.
func (p LinearPath) SnapshotAt(frame int) (PathSnapshot, error) {
	s := PathSnapshot{
		CurveLength:  p.CurveLength,
		PathDuration: p.PathDuration,
		EvalTime:     min(max(float64(frame-p.Start), 0), p.PathDuration),
	}
	if err := s.Validate(); err != nil {
		return PathSnapshot{}, fmt.Errorf("linear path at frame %d: %w", frame, err)
	}
	return s, nil
}
