// Package profile summarizes the columns of a motion table.
package profile

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/tphakala/go-motion-io/internal/engine"
	"github.com/tphakala/go-motion-io/internal/simdops"
)

// Column holds summary statistics of one series.
type Column struct {
	Order  engine.Order
	Min    float64
	Max    float64
	Peak   float64 // largest magnitude, sign preserved
	Mean   float64
	RMS    float64
	StdDev float64
}

// Summary describes a whole run.
type Summary struct {
	Frames   int
	Duration float64 // seconds between the first and last frame
	Distance float64 // net arc length travelled
	Columns  []Column
}

// Summarize computes statistics for position and every derivative carried by
// the records. It returns the zero Summary for an empty table.
func Summarize(records []engine.MotionRecord) Summary {
	if len(records) == 0 {
		return Summary{}
	}

	first, last := records[0], records[len(records)-1]
	s := Summary{
		Frames:   len(records),
		Duration: last.Time - first.Time,
		Distance: last.Position - first.Position,
	}

	for o := engine.OrderPosition; last.HasOrder(o); o++ {
		s.Columns = append(s.Columns, summarizeColumn(o, Series(records, o)))
	}
	return s
}

// Column returns the statistics for order o, if present.
func (s Summary) Column(o engine.Order) (Column, bool) {
	for _, c := range s.Columns {
		if c.Order == o {
			return c, true
		}
	}
	return Column{}, false
}

// Series extracts one column of the table.
func Series(records []engine.MotionRecord, o engine.Order) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.Value(o)
	}
	return out
}

func summarizeColumn(o engine.Order, x []float64) Column {
	c := Column{
		Order: o,
		Min:   floats.Min(x),
		Max:   floats.Max(x),
		Mean:  simdops.Mean(x),
		RMS:   math.Sqrt(simdops.MeanSquare(x)),
	}
	c.Peak = c.Max
	if math.Abs(c.Min) > math.Abs(c.Max) {
		c.Peak = c.Min
	}
	if len(x) > 1 {
		c.StdDev = stat.StdDev(x, nil)
	}
	return c
}
