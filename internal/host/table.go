package host

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Snapshot table column names.
const (
	ColumnFrame        = "frame"
	ColumnCurveLength  = "curve_length"
	ColumnPathDuration = "path_duration"
	ColumnEvalTime     = "eval_time"
)

var tableColumns = []string{ColumnFrame, ColumnCurveLength, ColumnPathDuration, ColumnEvalTime}

// Table is a precomputed frame -> snapshot mapping. It is read-only after
// construction and safe for concurrent use.
type Table struct {
	snapshots map[int]PathSnapshot
}

// NewTable builds a table from a copy of snapshots.
func NewTable(snapshots map[int]PathSnapshot) *Table {
	return &Table{snapshots: maps.Clone(snapshots)}
}

// SnapshotAt returns the snapshot recorded for frame.
func (t *Table) SnapshotAt(frame int) (PathSnapshot, error) {
	s, ok := t.snapshots[frame]
	if !ok {
		return PathSnapshot{}, fmt.Errorf("%w: %d", ErrUnknownFrame, frame)
	}
	return s, nil
}

// Frames returns the recorded frames in ascending order.
func (t *Table) Frames() []int {
	return slices.Sorted(maps.Keys(t.snapshots))
}

// Len returns the number of recorded frames.
func (t *Table) Len() int {
	return len(t.snapshots)
}

// ReadTable parses a delimited snapshot table. The first row is a header
// naming the columns frame, curve_length, path_duration and eval_time in any
// order; extra columns are ignored. A repeated frame keeps the last row.
func ReadTable(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty input", ErrMalformedTable)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrMalformedTable, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	cols := make([]int, len(tableColumns))
	for i, name := range tableColumns {
		c, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrMalformedTable, name)
		}
		cols[i] = c
	}

	snapshots := make(map[int]PathSnapshot)
	for row := 2; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrMalformedTable, row, err)
		}

		frame, err := strconv.Atoi(strings.TrimSpace(record[cols[0]]))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: frame: %w", ErrMalformedTable, row, err)
		}
		var vals [3]float64
		for i := range vals {
			field := strings.TrimSpace(record[cols[i+1]])
			vals[i], err = strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d: %s: %w", ErrMalformedTable, row, tableColumns[i+1], err)
			}
		}
		snapshots[frame] = PathSnapshot{CurveLength: vals[0], PathDuration: vals[1], EvalTime: vals[2]}
	}

	return &Table{snapshots: snapshots}, nil
}
