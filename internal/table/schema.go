// Package table reads and writes the delimited motion table.
package table

import (
	"fmt"
	"strconv"

	"github.com/tphakala/go-motion-io/internal/engine"
)

// Column headers. The frame header carries the frame rate, for example
// "Frames (30fps)".
const (
	frameHeaderFormat = "Frames (%sfps)"
	timeHeader        = "Time (sec)"
)

// valueHeaders names the value column of each series order.
var valueHeaders = map[engine.Order]string{
	engine.OrderPosition:     "Distance Elapsed(m)",
	engine.OrderVelocity:     "Propulsion Vel (m/s)",
	engine.OrderAcceleration: "Propulsion Acceleration (m/s^2)",
	engine.OrderJerk:         "Propulsion Jerk (m/s^3)",
}

// Default column positions used by the importer when no header names are given.
const (
	DefaultFrameIndex    = 0
	DefaultPositionIndex = 2
)

// Layout describes the columns and number format of an exported table.
type Layout struct {
	FrameRate float64
	Precision int
	Order     engine.Order
}

// Header returns the header row.
func (l Layout) Header() []string {
	fps := strconv.FormatFloat(l.FrameRate, 'f', -1, 64)
	header := []string{fmt.Sprintf(frameHeaderFormat, fps), timeHeader}
	for o := engine.OrderPosition; o <= l.Order; o++ {
		header = append(header, valueHeaders[o])
	}
	return header
}
