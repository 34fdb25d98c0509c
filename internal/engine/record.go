package engine

// PositionSample is one rounded arc-length position.
type PositionSample struct {
	Frame    int
	Position float64
}

// MotionRecord is one exported row. Derivatives holds velocity first, then
// acceleration and jerk when the run computes them.
type MotionRecord struct {
	Frame       int
	Time        float64
	Position    float64
	Derivatives []float64
}

// Value returns the series value of the given order, or 0 when the record
// does not carry it.
func (r MotionRecord) Value(o Order) float64 {
	if o == OrderPosition {
		return r.Position
	}
	if !r.HasOrder(o) {
		return 0
	}
	return r.Derivatives[o-1]
}

// HasOrder reports whether the record carries the given order.
func (r MotionRecord) HasOrder(o Order) bool {
	return o == OrderPosition || (o > OrderPosition && int(o) <= len(r.Derivatives))
}

// Velocity returns the first derivative.
func (r MotionRecord) Velocity() float64 { return r.Value(OrderVelocity) }

// Acceleration returns the second derivative, or 0 when not computed.
func (r MotionRecord) Acceleration() float64 { return r.Value(OrderAcceleration) }

// Jerk returns the third derivative, or 0 when not computed.
func (r MotionRecord) Jerk() float64 { return r.Value(OrderJerk) }

// Stats reports how much host work a build performed.
type Stats struct {
	// Frames is the number of records produced.
	Frames int
	// Samples counts persisted position samples.
	Samples int
	// Lookaheads counts scratch samples taken past the current frame.
	Lookaheads int
}
