package engine

import (
	"context"
	"fmt"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/tphakala/go-motion-io/internal/host"
)

// BuildTable computes the same records as Builder.Build from a host that
// can be addressed by frame, without a shared cursor.
//
// Positions are sampled by up to workers goroutines (0 selects a default).
// Each derivative order is then computed over the whole series at once.
// Look-ahead values equal the persisted values of the following frame, so
// the output is identical to the sequential build.
func BuildTable(ctx context.Context, tl Timeline, src host.Addressable, workers int) ([]MotionRecord, Stats, error) {
	if err := tl.Validate(); err != nil {
		return nil, Stats{}, err
	}
	if src == nil {
		return nil, Stats{}, fmt.Errorf("%w: no path table", ErrMissingContext)
	}

	positions, err := samplePositions(ctx, tl, src, workers)
	if err != nil {
		return nil, Stats{}, err
	}

	series := make([][]float64, tl.Order+1)
	series[OrderPosition] = positions
	for o := minOrder; o <= tl.Order; o++ {
		series[o] = differentiateSeries(tl, series[o-1])
	}

	records := make([]MotionRecord, tl.Frames())
	for i := range records {
		frame := tl.FirstFrame + i
		derivs := make([]float64, tl.Order)
		for o := minOrder; o <= tl.Order; o++ {
			derivs[o-1] = series[o][i]
		}
		records[i] = MotionRecord{
			Frame:       frame,
			Time:        tl.TimeAt(frame),
			Position:    positions[i],
			Derivatives: derivs,
		}
	}

	return records, Stats{Frames: len(records), Samples: len(positions)}, nil
}

// differentiateSeries applies the difference rule to every frame of s.
func differentiateSeries(tl Timeline, s []float64) []float64 {
	n := len(s)
	prev := make([]float64, n)
	next := make([]float64, n)
	for i := range s {
		prevFrame, nextFrame := tl.neighbours(tl.FirstFrame + i)
		prev[i] = s[prevFrame-tl.FirstFrame]
		next[i] = s[nextFrame-tl.FirstFrame]
	}

	// Difference first, then divide and round per frame so each element
	// matches the scalar rule bit for bit.
	delta := floats.SubTo(make([]float64, n), next, prev)
	out := make([]float64, n)
	for i, d := range delta {
		prevFrame, nextFrame := tl.neighbours(tl.FirstFrame + i)
		out[i] = tl.difference(0, d, prevFrame, nextFrame)
	}
	return out
}

// samplePositions reads and rounds the position of every frame, splitting
// the range into contiguous chunks across a worker pool.
func samplePositions(ctx context.Context, tl Timeline, src host.Addressable, workers int) ([]float64, error) {
	n := tl.Frames()
	if workers <= 0 {
		workers = defaultWorkers
	}
	workers = max(1, min(workers, n/minFramesPerWorker))

	positions := make([]float64, n)
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	var sampleErr error
	var errMu sync.Mutex
	var errFrame int

	for w := range workers {
		lo := w * chunk
		hi := min(lo+chunk, n)
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				frame := tl.FirstFrame + i
				var err error
				if ctxErr := ctx.Err(); ctxErr != nil {
					err = fmt.Errorf("frame %d: %w", frame, ctxErr)
				} else {
					positions[i], err = sampleAt(src, frame, tl.Precision)
				}
				if err != nil {
					errMu.Lock()
					// Report the lowest failing frame, as a sequential run would.
					if sampleErr == nil || frame < errFrame {
						sampleErr = err
						errFrame = frame
					}
					errMu.Unlock()
					return
				}
			}
		}(lo, hi)
	}
	wg.Wait()

	if sampleErr != nil {
		return nil, sampleErr
	}
	return positions, nil
}

func sampleAt(src host.Addressable, frame, precision int) (float64, error) {
	snap, err := src.SnapshotAt(frame)
	if err != nil {
		return 0, classifyHostError(frame, err)
	}
	return snapshotPosition(frame, snap, precision)
}
