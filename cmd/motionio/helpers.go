package main

import (
	"fmt"
	"strconv"
	"strings"

	motionio "github.com/tphakala/go-motion-io"
	"github.com/tphakala/go-motion-io/internal/platform/metrics"
)

// exportConfig assembles and validates the run configuration from flag values.
func exportConfig(first, last int, fps float64, precision int, order, scheme string) (motionio.Config, error) {
	o, err := motionio.ParseOrder(order)
	if err != nil {
		return motionio.Config{}, err
	}
	s, err := motionio.ParseScheme(scheme)
	if err != nil {
		return motionio.Config{}, err
	}

	cfg := motionio.Config{
		FirstFrame: first,
		LastFrame:  last,
		FrameRate:  fps,
		Precision:  precision,
		Order:      o,
		Scheme:     s,
	}
	if err := cfg.Validate(); err != nil {
		return motionio.Config{}, err
	}
	return cfg, nil
}

// openHost loads a snapshot table when hostFile is set, and otherwise
// describes a constant-speed path.
func openHost(hostFile string, curveLength, pathDuration float64, pathStart int) (motionio.Addressable, error) {
	if hostFile != "" {
		t, err := motionio.LoadHostTable(hostFile)
		if err != nil {
			return nil, err
		}
		return t, nil
	}
	if curveLength <= 0 {
		return nil, fmt.Errorf("%w: need -host or a positive -curve-length", motionio.ErrInvalidConfig)
	}
	return motionio.LinearPath{
		CurveLength:  curveLength,
		PathDuration: pathDuration,
		Start:        pathStart,
	}, nil
}

// parseVec3 parses "x,y,z".
func parseVec3(s string) (motionio.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != vec3Components {
		return motionio.Vec3{}, fmt.Errorf("invalid location %q: want x,y,z", s)
	}
	var v [vec3Components]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return motionio.Vec3{}, fmt.Errorf("invalid location %q: %w", s, err)
		}
		v[i] = f
	}
	return motionio.Vec3{X: v[0], Y: v[1], Z: v[2]}, nil
}

// writeMetrics writes m to path when path is set.
func writeMetrics(m *metrics.Metrics, path string) error {
	if path == "" {
		return nil
	}
	if err := m.WriteTextfile(path); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
