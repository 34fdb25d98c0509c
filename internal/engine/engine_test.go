package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-motion-io/internal/host"
	"github.com/tphakala/go-motion-io/internal/mathutil"
	"github.com/tphakala/go-motion-io/internal/testutil"
)

// spyHost records every cursor move made through it.
type spyHost struct {
	*host.Cursor
	moves []int
}

func newSpyHost(src host.Addressable) *spyHost {
	return &spyHost{Cursor: host.NewCursor(src)}
}

func (s *spyHost) SetFrame(frame int) {
	s.moves = append(s.moves, frame)
	s.Cursor.SetFrame(frame)
}

func exampleTable() *host.Table {
	return testutil.SnapshotTable(0, 10, 1, 0.0, 0.5, 1.0)
}

func exampleTimeline(scheme Scheme) Timeline {
	return Timeline{
		FirstFrame: 0,
		LastFrame:  2,
		FrameRate:  30,
		Precision:  4,
		Order:      OrderVelocity,
		Scheme:     scheme,
	}
}

func build(t *testing.T, tl Timeline, src host.Addressable) []MotionRecord {
	t.Helper()
	b, err := NewBuilder(tl, host.NewCursor(src))
	require.NoError(t, err)
	records, err := b.Build(context.Background())
	require.NoError(t, err)
	return records
}

func column(records []MotionRecord, o Order) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.Value(o)
	}
	return out
}

func frames(records []MotionRecord) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.Frame
	}
	return out
}

// =============================================================================
// Reference Scenarios
// =============================================================================

// TestBuild_LinearExample_Forward checks the three-frame example under the
// default scheme, where the interior difference spans two frames over one
// frame period.
func TestBuild_LinearExample_Forward(t *testing.T) {
	records := build(t, exampleTimeline(SchemeForward), exampleTable())

	testutil.AssertFrameSequence(t, frames(records), 0, 2)
	assert.Equal(t, []float64{0, 5, 10}, column(records, OrderPosition))
	assert.Equal(t, []float64{150, 300, 150}, column(records, OrderVelocity))
	assert.Equal(t, []float64{0, 0.0333, 0.0667}, []float64{records[0].Time, records[1].Time, records[2].Time})
}

// TestBuild_LinearExample_Central checks the same example with the span-aware
// time step, where every frame reports the path's constant slope.
func TestBuild_LinearExample_Central(t *testing.T) {
	records := build(t, exampleTimeline(SchemeCentral), exampleTable())

	assert.Equal(t, []float64{0, 5, 10}, column(records, OrderPosition))
	assert.Equal(t, []float64{150, 150, 150}, column(records, OrderVelocity))
}

// TestBuild_SingleFrame verifies that a one-frame range yields zero for every
// derivative order under both schemes.
func TestBuild_SingleFrame(t *testing.T) {
	for _, scheme := range []Scheme{SchemeForward, SchemeCentral} {
		t.Run(scheme.String(), func(t *testing.T) {
			tl := Timeline{FirstFrame: 7, LastFrame: 7, FrameRate: 24, Precision: 4, Order: OrderJerk, Scheme: scheme}
			src := testutil.SnapshotTable(7, 12.5, 3, 1.7)

			records := build(t, tl, src)
			require.Len(t, records, 1)

			r := records[0]
			assert.Equal(t, 7, r.Frame)
			assert.InDelta(t, 7.0833, r.Position, testutil.RoundedTolerance)
			assert.Equal(t, 0.0, r.Velocity())
			assert.Equal(t, 0.0, r.Acceleration())
			assert.Equal(t, 0.0, r.Jerk())
			assert.Equal(t, "0.0000", mathutil.Format(r.Velocity(), tl.Precision))
		})
	}
}

// TestBuild_RecordCount verifies one record per frame in ascending order.
func TestBuild_RecordCount(t *testing.T) {
	tests := []struct {
		name        string
		first, last int
	}{
		{"Single", 0, 0},
		{"Two", 0, 1},
		{"Offset", 5, 20},
		{"Long", 0, 600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl := Timeline{FirstFrame: tt.first, LastFrame: tt.last, FrameRate: 30, Precision: 4, Order: OrderVelocity}
			src := host.LinearPath{CurveLength: 100, PathDuration: 250}

			records := build(t, tl, src)
			testutil.AssertFrameSequence(t, frames(records), tt.first, tt.last)
			testutil.AssertMonotonic(t, column(records, OrderPosition))
		})
	}
}

// =============================================================================
// Boundary Rules
// =============================================================================

// TestBuild_BoundaryConsistency verifies that the first and last frames use
// themselves as the missing neighbour and otherwise follow the general rule.
func TestBuild_BoundaryConsistency(t *testing.T) {
	tl := Timeline{FirstFrame: 3, LastFrame: 9, FrameRate: 25, Precision: 5, Order: OrderVelocity}
	src := testutil.QuadraticTable(3, 9, 0.013)

	records := build(t, tl, src)
	pos := column(records, OrderPosition)
	vel := column(records, OrderVelocity)
	dt := 1.0 / tl.FrameRate
	last := len(records) - 1

	assert.Equal(t, mathutil.Round((pos[1]-pos[0])/dt, tl.Precision), vel[0], "first frame")
	assert.Equal(t, mathutil.Round((pos[last]-pos[last-1])/dt, tl.Precision), vel[last], "last frame")
	for i := 1; i < last; i++ {
		assert.Equal(t, mathutil.Round((pos[i+1]-pos[i-1])/dt, tl.Precision), vel[i], "interior index %d", i)
	}
}

// TestBuild_TwoFrames verifies the case where both frames are boundaries.
func TestBuild_TwoFrames(t *testing.T) {
	tl := Timeline{FirstFrame: 0, LastFrame: 1, FrameRate: 30, Precision: 4, Order: OrderAcceleration}
	records := build(t, tl, testutil.SnapshotTable(0, 10, 1, 0, 0.5))

	assert.Equal(t, []float64{150, 150}, column(records, OrderVelocity))
	assert.Equal(t, []float64{0, 0}, column(records, OrderAcceleration))
}

// =============================================================================
// Higher Orders
// =============================================================================

// TestBuild_QuadraticAcceleration verifies constant acceleration and zero jerk
// away from the boundaries for a quadratic position signal.
func TestBuild_QuadraticAcceleration(t *testing.T) {
	tl := Timeline{FirstFrame: 0, LastFrame: 20, FrameRate: 10, Precision: 4, Order: OrderJerk, Scheme: SchemeCentral}
	records := build(t, tl, testutil.QuadraticTable(0, 20, 0.01))

	acc := column(records, OrderAcceleration)
	jerk := column(records, OrderJerk)

	// Second-order values need two clean neighbours on each side.
	testutil.AssertAllInDelta(t, acc[2:len(acc)-2], 2.0, testutil.RoundedTolerance)
	testutil.AssertAllInDelta(t, jerk[4:len(jerk)-4], 0.0, testutil.RoundedTolerance)
	testutil.AssertNoNaNOrInf(t, jerk)
}

// TestBuild_ConstantSpeedHasNoAcceleration verifies zero acceleration in the
// interior of a constant-speed traversal.
func TestBuild_ConstantSpeedHasNoAcceleration(t *testing.T) {
	tl := Timeline{FirstFrame: 0, LastFrame: 50, FrameRate: 30, Precision: 4, Order: OrderAcceleration}
	records := build(t, tl, host.LinearPath{CurveLength: 120, PathDuration: 200})

	acc := column(records, OrderAcceleration)
	testutil.AssertAllInDelta(t, acc[2:len(acc)-2], 0.0, testutil.RoundedTolerance)
}

// TestDifferentiator_HigherOrderFollowsRule verifies that each order is the
// difference rule applied to the persisted lower-order series.
func TestDifferentiator_HigherOrderFollowsRule(t *testing.T) {
	tl := Timeline{FirstFrame: 0, LastFrame: 12, FrameRate: 24, Precision: 6, Order: OrderJerk}
	records := build(t, tl, testutil.QuadraticTable(0, 12, 0.037))

	for o := OrderVelocity; o <= OrderJerk; o++ {
		lower := column(records, o-1)
		got := column(records, o)
		for i := range records {
			prevFrame, nextFrame := tl.neighbours(i)
			want := tl.difference(lower[prevFrame], lower[nextFrame], prevFrame, nextFrame)
			assert.Equal(t, want, got[i], "%s at frame %d", o, i)
		}
	}
}

// =============================================================================
// Host Cursor
// =============================================================================

// TestDifferentiator_RestoresCursor verifies the cursor is parked on the
// current frame after every derivative step.
func TestDifferentiator_RestoresCursor(t *testing.T) {
	tl := Timeline{FirstFrame: 0, LastFrame: 6, FrameRate: 30, Precision: 4, Order: OrderJerk}
	spy := newSpyHost(testutil.QuadraticTable(0, 6, 0.02))
	sampler := NewSampler(spy, tl.Precision)
	diff := NewDifferentiator(tl, sampler)

	for frame := tl.FirstFrame; frame <= tl.LastFrame; frame++ {
		sample, err := sampler.Sample(frame)
		require.NoError(t, err)
		require.NoError(t, diff.Advance(sample))

		_, err = diff.Step()
		require.NoError(t, err)
		assert.Equal(t, frame, spy.Frame(), "cursor after frame %d", frame)
	}
}

// TestBuild_LookaheadIsScratch verifies that look-ahead samples are not
// persisted and every frame is sampled explicitly once.
func TestBuild_LookaheadIsScratch(t *testing.T) {
	tl := Timeline{FirstFrame: 0, LastFrame: 9, FrameRate: 30, Precision: 4, Order: OrderVelocity}
	b, err := NewBuilder(tl, host.NewCursor(host.LinearPath{CurveLength: 10, PathDuration: 100}))
	require.NoError(t, err)

	_, err = b.Build(context.Background())
	require.NoError(t, err)

	stats := b.Stats()
	assert.Equal(t, 10, stats.Frames)
	assert.Equal(t, 10, stats.Samples)
	assert.Equal(t, 9, stats.Lookaheads, "every frame but the last peeks one ahead")
}

// TestDifferentiator_OutOfSequence verifies that positions must arrive in order.
func TestDifferentiator_OutOfSequence(t *testing.T) {
	tl := Timeline{FirstFrame: 0, LastFrame: 3, FrameRate: 30, Precision: 4, Order: OrderVelocity}
	diff := NewDifferentiator(tl, NewSampler(host.NewCursor(exampleTable()), 4))

	require.Error(t, diff.Advance(PositionSample{Frame: 1}))
	require.NoError(t, diff.Advance(PositionSample{Frame: 0}))

	_, err := diff.At(OrderVelocity, 2)
	require.Error(t, err, "only the current frame can be differentiated")
	_, err = diff.At(OrderAcceleration, 0)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

// =============================================================================
// Determinism and Table Builds
// =============================================================================

// TestBuild_Deterministic verifies identical inputs yield identical strings.
func TestBuild_Deterministic(t *testing.T) {
	tl := Timeline{FirstFrame: 0, LastFrame: 90, FrameRate: 29.97, Precision: 7, Order: OrderJerk}
	src := testutil.QuadraticTable(0, 90, 0.0123457)

	a := build(t, tl, src)
	b := build(t, tl, src)

	require.Len(t, b, len(a))
	for i := range a {
		for o := OrderPosition; o <= OrderJerk; o++ {
			assert.Equal(t,
				mathutil.Format(a[i].Value(o), tl.Precision),
				mathutil.Format(b[i].Value(o), tl.Precision))
		}
	}
}

// TestBuildTable_MatchesSequential verifies the table-driven build produces
// exactly the records of the cursor-driven build.
func TestBuildTable_MatchesSequential(t *testing.T) {
	for _, scheme := range []Scheme{SchemeForward, SchemeCentral} {
		for _, workers := range []int{0, 1, 3, 16} {
			tl := Timeline{FirstFrame: 4, LastFrame: 400, FrameRate: 30, Precision: 4, Order: OrderJerk, Scheme: scheme}
			src := testutil.QuadraticTable(4, 400, 0.00731)

			want := build(t, tl, src)
			got, stats, err := BuildTable(context.Background(), tl, src, workers)
			require.NoError(t, err)

			assert.Equal(t, want, got, "scheme=%s workers=%d", scheme, workers)
			assert.Equal(t, tl.Frames(), stats.Samples)
		}
	}
}

func TestBuildTable_SingleFrame(t *testing.T) {
	tl := Timeline{FirstFrame: 0, LastFrame: 0, FrameRate: 30, Precision: 4, Order: OrderJerk}
	got, _, err := BuildTable(context.Background(), tl, testutil.SnapshotTable(0, 10, 1, 0.3), 4)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []float64{0, 0, 0}, got[0].Derivatives)
}

// =============================================================================
// Errors
// =============================================================================

func TestTimeline_Validate(t *testing.T) {
	valid := Timeline{FirstFrame: 0, LastFrame: 10, FrameRate: 30, Precision: 4, Order: OrderVelocity}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Timeline)
	}{
		{"Reversed range", func(tl *Timeline) { tl.FirstFrame, tl.LastFrame = 10, 9 }},
		{"Negative first frame", func(tl *Timeline) { tl.FirstFrame = -1 }},
		{"Zero frame rate", func(tl *Timeline) { tl.FrameRate = 0 }},
		{"Negative frame rate", func(tl *Timeline) { tl.FrameRate = -30 }},
		{"Precision zero", func(tl *Timeline) { tl.Precision = 0 }},
		{"Precision eleven", func(tl *Timeline) { tl.Precision = 11 }},
		{"Position order", func(tl *Timeline) { tl.Order = OrderPosition }},
		{"Order four", func(tl *Timeline) { tl.Order = OrderJerk + 1 }},
		{"Unknown scheme", func(tl *Timeline) { tl.Scheme = Scheme(9) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl := valid
			tt.mutate(&tl)
			require.ErrorIs(t, tl.Validate(), ErrInvalidConfig)

			_, err := NewBuilder(tl, host.NewCursor(exampleTable()))
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestNewBuilder_NilEvaluator(t *testing.T) {
	_, err := NewBuilder(exampleTimeline(SchemeForward), nil)
	require.ErrorIs(t, err, ErrMissingContext)
}

// TestBuild_InvalidSnapshot verifies non-positive host geometry is a
// configuration error and aborts the run without records.
func TestBuild_InvalidSnapshot(t *testing.T) {
	src := host.NewTable(map[int]host.PathSnapshot{
		0: {CurveLength: 10, PathDuration: 1},
		1: {CurveLength: 0, PathDuration: 1},
		2: {CurveLength: 10, PathDuration: 1},
	})
	b, err := NewBuilder(exampleTimeline(SchemeForward), host.NewCursor(src))
	require.NoError(t, err)

	records, err := b.Build(context.Background())
	require.ErrorIs(t, err, ErrInvalidConfig)
	require.ErrorIs(t, err, host.ErrInvalidSnapshot)
	assert.Nil(t, records)

	_, _, err = BuildTable(context.Background(), exampleTimeline(SchemeForward), src, 2)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

// TestBuild_MissingLookaheadFrame verifies a host that cannot resolve the
// look-ahead frame is a missing-context error and the cursor is restored.
func TestBuild_MissingLookaheadFrame(t *testing.T) {
	spy := newSpyHost(testutil.SnapshotTable(0, 10, 1, 0, 0.5))
	tl := Timeline{FirstFrame: 0, LastFrame: 2, FrameRate: 30, Precision: 4, Order: OrderVelocity}

	b, err := NewBuilder(tl, spy)
	require.NoError(t, err)

	_, err = b.Build(context.Background())
	require.ErrorIs(t, err, ErrMissingContext)
	require.ErrorIs(t, err, host.ErrUnknownFrame)
	assert.Equal(t, 1, spy.Frame(), "cursor parked on the frame being processed")
}

func TestBuild_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b, err := NewBuilder(exampleTimeline(SchemeForward), host.NewCursor(exampleTable()))
	require.NoError(t, err)
	_, err = b.Build(ctx)
	require.ErrorIs(t, err, context.Canceled)

	_, _, err = BuildTable(ctx, exampleTimeline(SchemeForward), exampleTable(), 1)
	require.ErrorIs(t, err, context.Canceled)
}

func TestOrder_String(t *testing.T) {
	assert.Equal(t, "velocity", OrderVelocity.String())
	assert.Equal(t, "jerk", OrderJerk.String())
	assert.Equal(t, "order(7)", Order(7).String())
	assert.Equal(t, "central", SchemeCentral.String())
}

func TestMotionRecord_MissingOrders(t *testing.T) {
	r := MotionRecord{Frame: 1, Position: 2, Derivatives: []float64{3}}
	assert.True(t, r.HasOrder(OrderVelocity))
	assert.False(t, r.HasOrder(OrderAcceleration))
	assert.Equal(t, 3.0, r.Velocity())
	assert.Equal(t, 0.0, r.Jerk())
	assert.Equal(t, 2.0, r.Value(OrderPosition))
}
