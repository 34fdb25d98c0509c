package motionio

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tphakala/go-motion-io/internal/engine"
	"github.com/tphakala/go-motion-io/internal/host"
	"github.com/tphakala/go-motion-io/internal/keyframe"
	"github.com/tphakala/go-motion-io/internal/platform/logger"
	"github.com/tphakala/go-motion-io/internal/profile"
	"github.com/tphakala/go-motion-io/internal/table"
)

// Common errors. Test with errors.Is.
var (
	// ErrInvalidConfig indicates a run that cannot start or must abort
	// because of its inputs: bad frame range, frame rate, precision or
	// order, non-positive host geometry, unwritable output, unreadable
	// input or missing import columns.
	ErrInvalidConfig = engine.ErrInvalidConfig

	// ErrMissingContext indicates a missing import target or a host that
	// cannot resolve a frame.
	ErrMissingContext = engine.ErrMissingContext

	// ErrInvalidSnapshot indicates non-positive curve length or path
	// duration reported by the host. Errors wrapping it also wrap
	// ErrInvalidConfig.
	ErrInvalidSnapshot = host.ErrInvalidSnapshot

	// ErrMalformedRow indicates an import row whose frame or position does
	// not parse. The whole import is aborted.
	ErrMalformedRow = table.ErrMalformedRow
)

// Re-exported engine and host types.
type (
	// Record is one row of the motion table.
	Record = engine.MotionRecord

	// Order is a time-derivative order; see OrderVelocity and friends.
	Order = engine.Order

	// Scheme selects the difference time step.
	Scheme = engine.Scheme

	// Stats reports how much host work a build performed.
	Stats = engine.Stats

	// Summary holds per-column statistics of a run.
	Summary = profile.Summary

	// PathEvaluator is a host with a mutable current frame.
	PathEvaluator = host.PathEvaluator

	// PathSnapshot is the per-frame path state read from the host.
	PathSnapshot = host.PathSnapshot

	// LinearPath is a constant-speed host.
	LinearPath = host.LinearPath

	// Addressable is a host that can be read at any frame.
	Addressable = host.Addressable

	// Cursor adapts an Addressable host into a PathEvaluator.
	Cursor = host.Cursor

	// Target is an entity that imported positions are keyed onto.
	Target = keyframe.Target

	// Axis selects a location component.
	Axis = keyframe.Axis

	// Columns selects the frame and position columns of an imported table.
	Columns = table.Columns
)

// Derivative orders.
const (
	OrderVelocity     = engine.OrderVelocity
	OrderAcceleration = engine.OrderAcceleration
	OrderJerk         = engine.OrderJerk
)

// Difference schemes.
const (
	SchemeForward = engine.SchemeForward
	SchemeCentral = engine.SchemeCentral
)

// Location axes.
const (
	AxisX = keyframe.AxisX
	AxisY = keyframe.AxisY
	AxisZ = keyframe.AxisZ
)

// Config holds the configuration of one run.
type Config struct {
	// FirstFrame and LastFrame bound the closed frame range.
	FirstFrame int
	LastFrame  int

	// FrameRate is in frames per second.
	FrameRate float64

	// Precision is the number of fractional digits kept for every exported
	// value and for every value reused by a later difference (1-10).
	Precision int

	// Order is the highest derivative computed. The zero value selects
	// velocity.
	Order Order

	// Scheme selects the difference time step. The zero value is the
	// historical forward convention.
	Scheme Scheme

	// Parallel samples positions concurrently when the evaluator can also
	// be addressed by frame, as a Cursor can. Results are identical to the
	// sequential build. Evaluators that only expose a shared cursor are
	// always processed sequentially.
	Parallel bool

	// Workers bounds the number of sampling goroutines when Parallel is
	// set. Zero selects a default.
	Workers int
}

// DefaultConfig returns the historical exporter settings.
func DefaultConfig() Config {
	return Config{
		FirstFrame: DefaultFirstFrame,
		LastFrame:  DefaultLastFrame,
		FrameRate:  DefaultFrameRate,
		Precision:  DefaultPrecision,
		Order:      OrderVelocity,
	}
}

// Validate checks the configuration before any frame is processed.
func (c *Config) Validate() error {
	tl := c.timeline()
	return tl.Validate()
}

func (c *Config) timeline() engine.Timeline {
	order := c.Order
	if order == engine.OrderPosition {
		order = engine.OrderVelocity
	}
	return engine.Timeline{
		FirstFrame: c.FirstFrame,
		LastFrame:  c.LastFrame,
		FrameRate:  c.FrameRate,
		Precision:  c.Precision,
		Order:      order,
		Scheme:     c.Scheme,
	}
}

// Run is the result of a build.
type Run struct {
	// ID identifies the run in logs.
	ID string

	// Records holds one row per frame in ascending order.
	Records []Record

	// Stats reports host work.
	Stats Stats

	// Summary holds per-column statistics.
	Summary Summary

	// Elapsed is the wall-clock duration of the build.
	Elapsed time.Duration
}

// Option configures Build, Export and Import.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for run progress. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func applyOptions(opts []Option) *options {
	o := &options{logger: logger.Discard()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Build samples eval over the configured frame range and computes the
// motion table.
//
// Any failure aborts the run: no partial table is returned.
func Build(ctx context.Context, cfg Config, eval PathEvaluator, opts ...Option) (*Run, error) {
	o := applyOptions(opts)
	id := uuid.NewString()
	return build(ctx, cfg, eval, id, o.logger.With("run_id", id))
}

func build(ctx context.Context, cfg Config, eval PathEvaluator, id string, log *slog.Logger) (*Run, error) {
	tl := cfg.timeline()
	if err := tl.Validate(); err != nil {
		return nil, err
	}
	if eval == nil {
		return nil, fmt.Errorf("%w: no path evaluator", ErrMissingContext)
	}

	start := time.Now()
	src, addressable := eval.(host.Addressable)
	parallel := cfg.Parallel && addressable

	log.Debug("build started",
		"first_frame", tl.FirstFrame,
		"last_frame", tl.LastFrame,
		"fps", tl.FrameRate,
		"precision", tl.Precision,
		"order", tl.Order.String(),
		"scheme", tl.Scheme.String(),
		"parallel", parallel,
	)

	var (
		records []Record
		stats   Stats
		err     error
	)
	if parallel {
		records, stats, err = engine.BuildTable(ctx, tl, src, cfg.Workers)
	} else {
		var b *engine.Builder
		b, err = engine.NewBuilder(tl, eval)
		if err == nil {
			records, err = b.Build(ctx)
			stats = b.Stats()
		}
	}
	if err != nil {
		log.Debug("build aborted", "error", err)
		return nil, err
	}

	run := &Run{
		ID:      id,
		Records: records,
		Stats:   stats,
		Summary: profile.Summarize(records),
		Elapsed: time.Since(start),
	}
	log.Debug("build finished",
		"frames", stats.Frames,
		"lookaheads", stats.Lookaheads,
		"elapsed", run.Elapsed,
	)
	return run, nil
}

// ParseOrder accepts "velocity", "acceleration" or "jerk" (or 1-3).
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "velocity", "vel", "1":
		return OrderVelocity, nil
	case "acceleration", "accel", "2":
		return OrderAcceleration, nil
	case "jerk", "3":
		return OrderJerk, nil
	default:
		return 0, fmt.Errorf("%w: unknown derivative order %q", ErrInvalidConfig, s)
	}
}

// ParseScheme accepts "forward" or "central".
func ParseScheme(s string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "forward", "":
		return SchemeForward, nil
	case "central":
		return SchemeCentral, nil
	default:
		return 0, fmt.Errorf("%w: unknown difference scheme %q", ErrInvalidConfig, s)
	}
}
