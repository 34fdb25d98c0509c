package motionio

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tphakala/go-motion-io/internal/table"
)

// KeyRow is one imported (frame, position) pair.
type KeyRow = table.KeyRow

// ReadPositions parses the frame and position columns of a table.
// Missing columns and empty input are configuration errors; a row that does
// not parse is ErrMalformedRow. No rows are returned on error.
func ReadPositions(r io.Reader, cols Columns) ([]KeyRow, error) {
	rows, err := table.ReadPositions(r, cols)
	switch {
	case err == nil:
		return rows, nil
	case errors.Is(err, table.ErrMissingColumn), errors.Is(err, table.ErrEmptyInput):
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	default:
		return nil, err
	}
}

// ApplyKeyframes keys every row onto target in order. The selected axis
// takes the row's position; the other two keep the target's current value.
// A frame that appears twice is keyed twice, so the later row wins.
func ApplyKeyframes(target Target, axis Axis, rows []KeyRow) error {
	if target == nil {
		return fmt.Errorf("%w: no import target", ErrMissingContext)
	}
	if !axis.Valid() {
		return fmt.Errorf("%w: invalid axis %d", ErrInvalidConfig, int(axis))
	}
	for _, row := range rows {
		target.SetKeyframe(row.Frame, target.Location().With(axis, row.Position))
	}
	return nil
}

// Import reads the table at path and keys its positions onto target.
//
// The whole file is parsed before the first keyframe is set, so a
// malformed row leaves target untouched. It returns the number of rows
// applied.
func Import(path string, target Target, axis Axis, cols Columns, opts ...Option) (int, error) {
	if target == nil {
		return 0, fmt.Errorf("%w: no import target", ErrMissingContext)
	}
	if !axis.Valid() {
		return 0, fmt.Errorf("%w: invalid axis %d", ErrInvalidConfig, int(axis))
	}
	log := applyOptions(opts).logger.With("input", path)

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: open input: %w", ErrInvalidConfig, err)
	}
	defer func() { _ = f.Close() }()

	rows, err := ReadPositions(f, cols)
	if err != nil {
		return 0, fmt.Errorf("import %s: %w", path, err)
	}
	if err := ApplyKeyframes(target, axis, rows); err != nil {
		return 0, err
	}

	log.Info("keyframes imported", "rows", len(rows), "axis", axis.String())
	return len(rows), nil
}
