// Command motionio exports path-following kinematics to CSV and keys
// exported tables back onto an entity.
//
// Usage:
//
//	motionio export -last 250 -curve-length 120 -path-duration 250 motion.csv
//	motionio export -host snapshots.csv -order jerk -parallel motion.csv
//	motionio import -axis y motion.csv                 # prints keyframes as JSON
//	motionio offset -front 0,4.5,0 -rear 0,-4.5,0 -curve-length 120 -path-duration 250
//
// Defaults come from MOTIONIO_* environment variables, optionally loaded
// from a .env file; flags override them.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	motionio "github.com/tphakala/go-motion-io"
	"github.com/tphakala/go-motion-io/internal/keyframe"
	"github.com/tphakala/go-motion-io/internal/mathutil"
	"github.com/tphakala/go-motion-io/internal/platform/config"
	"github.com/tphakala/go-motion-io/internal/platform/logger"
	"github.com/tphakala/go-motion-io/internal/platform/metrics"
)

var errUsage = errors.New("usage: motionio <export|import|offset> [options] [file]")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		stop()
		log.Fatal(err)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	envFile := os.Getenv("MOTIONIO_ENV_FILE")
	if envFile == "" {
		envFile = defaultEnvFile
	}
	defaults, err := config.Load(envFile)
	if err != nil {
		return err
	}

	switch args[0] {
	case cmdExport:
		return runExport(ctx, defaults, args[1:], stdout, stderr)
	case cmdImport:
		return runImport(defaults, args[1:], stdout, stderr)
	case cmdOffset:
		return runOffset(args[1:], stdout, stderr)
	default:
		return fmt.Errorf("unknown command %q: %w", args[0], errUsage)
	}
}

// commonFlags are shared by export and import.
type commonFlags struct {
	logLevel    *string
	logFormat   *string
	metricsFile *string
}

func addCommonFlags(fs *flag.FlagSet, d config.Defaults) commonFlags {
	return commonFlags{
		logLevel:    fs.String("log-level", d.LogLevel, "Log level: debug, info, warn, error"),
		logFormat:   fs.String("log-format", d.LogFormat, "Log format: text, json"),
		metricsFile: fs.String("metrics-file", d.MetricsFile, "Write Prometheus metrics to this textfile"),
	}
}

func (c commonFlags) logger(w io.Writer) *slog.Logger {
	return logger.New(w, *c.logLevel, *c.logFormat)
}

func runExport(ctx context.Context, d config.Defaults, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet(cmdExport, flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		first        = fs.Int("first", d.FirstFrame, "First frame of the range")
		last         = fs.Int("last", d.LastFrame, "Last frame of the range (inclusive)")
		fps          = fs.Float64("fps", d.FrameRate, "Frame rate in frames per second")
		precision    = fs.Int("precision", d.Precision, "Fractional digits (1-10)")
		order        = fs.String("order", d.Order, "Highest derivative: velocity, acceleration, jerk")
		scheme       = fs.String("scheme", d.Scheme, "Difference time step: forward, central")
		parallel     = fs.Bool("parallel", d.Parallel, "Sample positions concurrently")
		workers      = fs.Int("workers", d.Workers, "Sampling goroutines when -parallel is set (0 = default)")
		hostFile     = fs.String("host", "", "Snapshot table: frame,curve_length,path_duration,eval_time")
		curveLength  = fs.Float64("curve-length", 0, "Curve length of a constant-speed path")
		pathDuration = fs.Float64("path-duration", defaultPathDuration, "Path duration in frames of a constant-speed path")
		pathStart    = fs.Int("path-start", 0, "Frame at which a constant-speed path starts")
	)
	common := addCommonFlags(fs, d)
	if err := fs.Parse(args); err != nil {
		return err
	}

	output := d.Output
	if fs.NArg() > 0 {
		output = fs.Arg(0)
	}

	cfg, err := exportConfig(*first, *last, *fps, *precision, *order, *scheme)
	if err != nil {
		return err
	}
	cfg.Parallel = *parallel
	cfg.Workers = *workers

	src, err := openHost(*hostFile, *curveLength, *pathDuration, *pathStart)
	if err != nil {
		return err
	}

	log := common.logger(stderr)
	m := metrics.New()
	start := time.Now()

	result, err := motionio.Export(ctx, cfg, motionio.NewCursor(src), output, motionio.WithLogger(log))
	if err != nil {
		m.ObserveFailure(metrics.KindExport, time.Since(start))
		return errors.Join(err, writeMetrics(m, *common.metricsFile))
	}
	m.ObserveExport(len(result.Records), result.Stats.Lookaheads, result.Elapsed)

	for _, col := range result.Summary.Columns {
		log.Info("column summary",
			"run_id", result.ID,
			"order", col.Order.String(),
			"min", col.Min,
			"max", col.Max,
			"peak", col.Peak,
			"mean", col.Mean,
			"rms", col.RMS,
		)
	}
	_, _ = fmt.Fprintf(stdout, "Exported %d frames -> %s\n", len(result.Records), output)

	return writeMetrics(m, *common.metricsFile)
}

func runImport(d config.Defaults, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet(cmdImport, flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		axisName = fs.String("axis", d.Axis, "Location axis to key: x, y, z")
		frameCol = fs.String("frame-col", "", "Frame column header (default: first column)")
		posCol   = fs.String("position-col", "", "Position column header (default: third column)")
		name     = fs.String("name", defaultEntityName, "Name of the keyed entity")
		location = fs.String("location", "0,0,0", "Starting location x,y,z of the entity")
	)
	common := addCommonFlags(fs, d)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("import needs an input file: %w", errUsage)
	}

	axis, err := motionio.ParseAxis(*axisName)
	if err != nil {
		return err
	}
	loc, err := parseVec3(*location)
	if err != nil {
		return err
	}

	log := common.logger(stderr)
	m := metrics.New()
	start := time.Now()

	ent := motionio.NewEntity(*name, loc)
	cols := motionio.Columns{Frame: *frameCol, Position: *posCol}
	n, err := motionio.Import(fs.Arg(0), ent, axis, cols, motionio.WithLogger(log))
	if err != nil {
		m.ObserveFailure(metrics.KindImport, time.Since(start))
		return errors.Join(err, writeMetrics(m, *common.metricsFile))
	}
	m.ObserveImport(n, time.Since(start))

	if err := writeKeys(stdout, ent.Name(), ent.Keys()); err != nil {
		return err
	}
	return writeMetrics(m, *common.metricsFile)
}

func runOffset(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet(cmdOffset, flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		front        = fs.String("front", "", "Front bogey location x,y,z")
		rear         = fs.String("rear", "", "Rear bogey location x,y,z")
		curveLength  = fs.Float64("curve-length", 0, "Curve length of the path")
		pathDuration = fs.Float64("path-duration", defaultPathDuration, "Path duration in frames")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	f, err := parseVec3(*front)
	if err != nil {
		return fmt.Errorf("front: %w", err)
	}
	r, err := parseVec3(*rear)
	if err != nil {
		return fmt.Errorf("rear: %w", err)
	}

	fo, ro := motionio.BogeyOffsets(f, r, *curveLength, *pathDuration)
	_, err = fmt.Fprintf(stdout, "front offset: %s\nrear offset: %s\n",
		mathutil.Format(fo, offsetPrecision), mathutil.Format(ro, offsetPrecision))
	return err
}

// writeKeys prints the keyed entity as indented JSON.
func writeKeys(w io.Writer, name string, keys []keyframe.Key) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Entity string         `json:"entity"`
		Keys   []keyframe.Key `json:"keyframes"`
	}{name, keys})
}
