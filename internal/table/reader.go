package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Errors reported by the importer.
var (
	// ErrMalformedRow indicates a row whose frame or position cannot be parsed.
	ErrMalformedRow = errors.New("malformed row")

	// ErrMissingColumn indicates the header lacks a required column.
	ErrMissingColumn = errors.New("missing required column")

	// ErrEmptyInput indicates a file without a header row.
	ErrEmptyInput = errors.New("empty table")
)

// Columns selects the frame and position columns of an imported table.
// An empty name selects the default column position.
type Columns struct {
	Frame    string
	Position string
}

// KeyRow is one imported (frame, position) pair.
type KeyRow struct {
	Frame    int
	Position float64
}

// ReadPositions parses every row of a table with a header. Rows are returned
// in file order; repeated frames are kept. The first row that fails to parse
// aborts the read and no rows are returned.
func ReadPositions(r io.Reader, cols Columns) ([]KeyRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrMalformedRow, err)
	}

	frameCol, err := resolveColumn(header, cols.Frame, DefaultFrameIndex)
	if err != nil {
		return nil, err
	}
	posCol, err := resolveColumn(header, cols.Position, DefaultPositionIndex)
	if err != nil {
		return nil, err
	}

	var rows []KeyRow
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrMalformedRow, line, err)
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		if frameCol >= len(record) || posCol >= len(record) {
			return nil, fmt.Errorf("%w: row %d: has %d fields", ErrMalformedRow, line, len(record))
		}

		frame, err := strconv.Atoi(strings.TrimSpace(record[frameCol]))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: frame %q", ErrMalformedRow, line, record[frameCol])
		}
		pos, err := strconv.ParseFloat(strings.TrimSpace(record[posCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: position %q", ErrMalformedRow, line, record[posCol])
		}
		rows = append(rows, KeyRow{Frame: frame, Position: pos})
	}
	return rows, nil
}

// resolveColumn finds name in header (case-insensitive), or falls back to
// index when name is empty.
func resolveColumn(header []string, name string, index int) (int, error) {
	if name == "" {
		if index >= len(header) {
			return 0, fmt.Errorf("%w: column %d of %d", ErrMissingColumn, index, len(header))
		}
		return index, nil
	}
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), strings.TrimSpace(name)) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrMissingColumn, name)
}
