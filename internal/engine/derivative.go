package engine

import "fmt"

// Differentiator computes time derivatives of the position series frame by
// frame.
//
// For frame f the rule takes two neighbour values of the next-lower order
// and divides their difference by the scheme's time step:
//
//	first frame:    prev = value(f),   next = value(f+1)
//	interior frame: prev = value(f-1), next = value(f+1)
//	last frame:     prev = value(f-1), next = value(f)
//
// Look-behind values come from the persisted series. Look-ahead values are
// computed from scratch samples, recursively for higher orders, and are never
// persisted: frame f+1 is sampled again when the builder reaches it.
// Every result is rounded to the timeline precision before it is reused.
type Differentiator struct {
	tl      Timeline
	sampler *Sampler

	// series[k][i] is the order-k value of frame FirstFrame+i.
	series  [][]float64
	current int
}

// NewDifferentiator creates a differentiator over tl that takes look-ahead
// samples through sampler.
func NewDifferentiator(tl Timeline, sampler *Sampler) *Differentiator {
	series := make([][]float64, tl.Order+1)
	for k := range series {
		series[k] = make([]float64, 0, tl.Frames())
	}
	return &Differentiator{
		tl:      tl,
		sampler: sampler,
		series:  series,
		current: tl.FirstFrame - 1,
	}
}

// Advance persists the position of the next frame in the range and makes it
// the current frame.
func (d *Differentiator) Advance(sample PositionSample) error {
	want := d.tl.FirstFrame + len(d.series[OrderPosition])
	if sample.Frame != want {
		return fmt.Errorf("position for frame %d out of sequence, expected frame %d", sample.Frame, want)
	}
	d.series[OrderPosition] = append(d.series[OrderPosition], sample.Position)
	d.current = sample.Frame
	return nil
}

// At returns the order-o derivative at frame without persisting it.
//
// frame must be the current frame and every lower order must already be
// persisted for it. The host cursor is parked on frame when At returns.
func (d *Differentiator) At(o Order, frame int) (float64, error) {
	if frame != d.current {
		return 0, fmt.Errorf("derivative requested for frame %d while frame %d is current", frame, d.current)
	}
	if o < minOrder || o > d.tl.Order {
		return 0, fmt.Errorf("%w: derivative order %d outside 1-%d", ErrInvalidConfig, o, d.tl.Order)
	}
	if len(d.series[o-1]) != d.index(frame)+1 {
		return 0, fmt.Errorf("%s at frame %d not yet computed", o-1, frame)
	}
	return d.value(o, frame)
}

// Step computes and persists every derivative of the current frame, lowest
// order first, and returns them.
func (d *Differentiator) Step() ([]float64, error) {
	out := make([]float64, 0, d.tl.Order)
	for o := minOrder; o <= d.tl.Order; o++ {
		v, err := d.At(o, d.current)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", o, err)
		}
		d.series[o] = append(d.series[o], v)
		out = append(out, v)
	}
	return out, nil
}

// Series returns the persisted values of order o. The slice must not be
// modified.
func (d *Differentiator) Series(o Order) []float64 {
	return d.series[o]
}

func (d *Differentiator) index(frame int) int {
	return frame - d.tl.FirstFrame
}

// value returns the order-o value at frame, from the persisted series when
// available and otherwise by evaluating the rule on scratch values.
func (d *Differentiator) value(o Order, frame int) (float64, error) {
	if i := d.index(frame); i < len(d.series[o]) {
		return d.series[o][i], nil
	}
	if o == OrderPosition {
		return d.sampler.Peek(frame, d.current)
	}

	prevFrame, nextFrame := d.tl.neighbours(frame)
	prev, err := d.value(o-1, prevFrame)
	if err != nil {
		return 0, err
	}
	next, err := d.value(o-1, nextFrame)
	if err != nil {
		return 0, err
	}
	return d.tl.difference(prev, next, prevFrame, nextFrame), nil
}
