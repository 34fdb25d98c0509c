package engine

import (
	"context"
	"fmt"

	"github.com/tphakala/go-motion-io/internal/host"
)

// Builder runs the sampler and differentiator over a timeline and assembles
// one MotionRecord per frame.
type Builder struct {
	tl    Timeline
	eval  host.PathEvaluator
	stats Stats
}

// NewBuilder validates tl and returns a builder reading from eval.
func NewBuilder(tl Timeline, eval host.PathEvaluator) (*Builder, error) {
	if err := tl.Validate(); err != nil {
		return nil, err
	}
	if eval == nil {
		return nil, fmt.Errorf("%w: no path evaluator", ErrMissingContext)
	}
	return &Builder{tl: tl, eval: eval}, nil
}

// Build processes every frame of the range in ascending order.
//
// The context is checked between frames. Any failure aborts the run and no
// records are returned.
func (b *Builder) Build(ctx context.Context) ([]MotionRecord, error) {
	sampler := NewSampler(b.eval, b.tl.Precision)
	diff := NewDifferentiator(b.tl, sampler)
	records := make([]MotionRecord, 0, b.tl.Frames())

	for frame := b.tl.FirstFrame; frame <= b.tl.LastFrame; frame++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("frame %d: %w", frame, err)
		}

		sample, err := sampler.Sample(frame)
		if err != nil {
			return nil, err
		}
		if err := diff.Advance(sample); err != nil {
			return nil, fmt.Errorf("frame %d: %w", frame, err)
		}
		derivs, err := diff.Step()
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", frame, err)
		}

		records = append(records, MotionRecord{
			Frame:       frame,
			Time:        b.tl.TimeAt(frame),
			Position:    sample.Position,
			Derivatives: derivs,
		})
	}

	b.stats = Stats{
		Frames:     len(records),
		Samples:    sampler.samples,
		Lookaheads: sampler.lookaheads,
	}
	return records, nil
}

// Stats returns the counters of the last successful Build.
func (b *Builder) Stats() Stats {
	return b.stats
}
