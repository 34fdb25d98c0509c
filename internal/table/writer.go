package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/tphakala/go-motion-io/internal/engine"
	"github.com/tphakala/go-motion-io/internal/mathutil"
)

// Row formats one record. Numbers are fixed-point with exactly
// l.Precision fractional digits; the frame is an integer.
func (l Layout) Row(r engine.MotionRecord) []string {
	row := make([]string, 0, int(l.Order)+3)
	row = append(row,
		strconv.Itoa(r.Frame),
		mathutil.Format(r.Time, l.Precision),
	)
	for o := engine.OrderPosition; o <= l.Order; o++ {
		row = append(row, mathutil.Format(r.Value(o), l.Precision))
	}
	return row
}

// Write writes the header and one row per record.
func Write(w io.Writer, l Layout, records []engine.MotionRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(l.Header()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(l.Row(r)); err != nil {
			return fmt.Errorf("write frame %d: %w", r.Frame, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush table: %w", err)
	}
	return nil
}
