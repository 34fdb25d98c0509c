package motionio

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/tphakala/go-motion-io/internal/table"
)

// layout returns the table layout of the configuration.
func (c *Config) layout() table.Layout {
	tl := c.timeline()
	return table.Layout{FrameRate: tl.FrameRate, Precision: tl.Precision, Order: tl.Order}
}

// WriteTable writes records as a delimited table with the configuration's
// header and number format.
func WriteTable(w io.Writer, cfg Config, records []Record) error {
	return table.Write(w, cfg.layout(), records)
}

// Export builds the motion table and writes it to path.
//
// Export is all-or-nothing. The configuration is validated and the output
// directory is probed before any frame is processed; the table is written to
// a temporary file next to path and renamed over path only after the whole
// run succeeded. On failure path is left untouched.
func Export(ctx context.Context, cfg Config, eval PathEvaluator, path string, opts ...Option) (run *Run, err error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if path == "" {
		return nil, fmt.Errorf("%w: no output path", ErrInvalidConfig)
	}

	o := applyOptions(opts)
	id := uuid.NewString()
	log := o.logger.With("run_id", id, "output", path)

	tmp, err := os.CreateTemp(filepath.Dir(path), tempFilePattern)
	if err != nil {
		return nil, fmt.Errorf("%w: output not writable: %w", ErrInvalidConfig, err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	run, err = build(ctx, cfg, eval, id, log)
	if err != nil {
		return nil, err
	}

	if err = WriteTable(tmp, cfg, run.Records); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	if err = tmp.Chmod(outputFileMode); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}

	log.Info("file written",
		"frames", len(run.Records),
		"elapsed", run.Elapsed,
	)
	return run, nil
}
