package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveExport(t *testing.T) {
	m := New()
	m.ObserveExport(601, 600, 2*time.Second)
	m.ObserveExport(3, 2, time.Second)

	assert.InDelta(t, 2, testutil.ToFloat64(m.runsTotal.WithLabelValues(KindExport)), 0)
	assert.InDelta(t, 604, testutil.ToFloat64(m.framesTotal), 0)
	assert.InDelta(t, 602, testutil.ToFloat64(m.lookaheadsTotal), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.lastRunDuration), 1e-9)
}

func TestMetrics_ObserveImportAndFailure(t *testing.T) {
	m := New()
	m.ObserveImport(3, time.Millisecond)
	m.ObserveFailure(KindImport, time.Millisecond)

	assert.InDelta(t, 1, testutil.ToFloat64(m.runsTotal.WithLabelValues(KindImport)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.failuresTotal.WithLabelValues(KindImport)), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(m.keyframesTotal), 0)
}

func TestMetrics_WriteTextfile(t *testing.T) {
	m := New()
	m.ObserveExport(10, 9, time.Second)

	path := filepath.Join(t.TempDir(), "motionio.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "motionio_frames_total 10")
	assert.Contains(t, string(data), `motionio_runs_total{kind="export"} 1`)
}
