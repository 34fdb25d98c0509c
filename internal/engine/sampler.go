package engine

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-motion-io/internal/host"
	"github.com/tphakala/go-motion-io/internal/mathutil"
)

// Sampler converts the host's path state into rounded arc-length positions.
//
// Sampler drives the host's shared cursor and is not safe for concurrent use.
type Sampler struct {
	eval      host.PathEvaluator
	precision int

	// Statistics
	samples    int
	lookaheads int
}

// NewSampler creates a sampler reading from eval.
func NewSampler(eval host.PathEvaluator, precision int) *Sampler {
	return &Sampler{eval: eval, precision: precision}
}

// Sample moves the host to frame and returns the rounded position there.
// The cursor stays parked on frame.
func (s *Sampler) Sample(frame int) (PositionSample, error) {
	s.eval.SetFrame(frame)
	pos, err := s.read(frame)
	if err != nil {
		return PositionSample{}, err
	}
	s.samples++
	return PositionSample{Frame: frame, Position: pos}, nil
}

// Peek samples frame as a scratch value and parks the cursor back on
// restore before returning, whether or not the read succeeded.
func (s *Sampler) Peek(frame, restore int) (float64, error) {
	s.eval.SetFrame(frame)
	defer s.eval.SetFrame(restore)

	pos, err := s.read(frame)
	if err != nil {
		return 0, err
	}
	s.lookaheads++
	return pos, nil
}

func (s *Sampler) read(frame int) (float64, error) {
	snap, err := s.eval.Snapshot()
	if err != nil {
		return 0, classifyHostError(frame, err)
	}
	return snapshotPosition(frame, snap, s.precision)
}

func snapshotPosition(frame int, snap host.PathSnapshot, precision int) (float64, error) {
	if err := snap.Validate(); err != nil {
		return 0, classifyHostError(frame, err)
	}
	return mathutil.Round(snap.Position(), precision), nil
}

// classifyHostError maps host failures onto the engine's error taxonomy.
func classifyHostError(frame int, err error) error {
	switch {
	case errors.Is(err, host.ErrInvalidSnapshot):
		return fmt.Errorf("%w: frame %d: %w", ErrInvalidConfig, frame, err)
	case errors.Is(err, host.ErrUnknownFrame):
		return fmt.Errorf("%w: frame %d: %w", ErrMissingContext, frame, err)
	default:
		return fmt.Errorf("frame %d: %w", frame, err)
	}
}
