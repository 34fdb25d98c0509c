// Package motionio derives path-following kinematics from a scene host and
// moves them in and out of delimited tables.
//
// An object constrained to a parametric path reports, per frame, how far
// along the path it is. motionio samples that progress over a frame range,
// turns it into arc-length position and differentiates it with a fixed
// first / interior / last finite-difference rule to produce velocity,
// acceleration and jerk. The result is written as a CSV table. The inverse
// operation reads such a table back and keys the positions onto one axis of
// an entity.
//
// # Features
//
//   - Deterministic output: every value is rounded to a fixed number of
//     fractional digits before it is exported or reused by a later difference
//   - Derivatives up to jerk, computed recursively from one difference rule
//   - Forward or central time step (see [SchemeForward] and [SchemeCentral])
//   - Concurrent sampling for hosts that can be read at any frame
//   - All-or-nothing export and import
//
// # Quick Start
//
// Export the motion of a constant-speed path:
//
//	cfg := motionio.DefaultConfig()
//	cfg.LastFrame = 250
//	eval := motionio.NewCursor(motionio.LinearPath{
//	    CurveLength:  120,
//	    PathDuration: 250,
//	})
//	run, err := motionio.Export(ctx, cfg, eval, "motion.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	vel, _ := run.Summary.Column(motionio.OrderVelocity)
//	fmt.Println(vel.Peak)
//
// Key an exported table back onto the Y axis of an entity:
//
//	ent := motionio.NewEntity("train", motionio.Vec3{})
//	n, err := motionio.Import("motion.csv", ent, motionio.AxisY, motionio.Columns{})
//
// # Architecture
//
// A run is a single pass over the frame range:
//
//	Host -> [Sampler] -> [Differentiator] -> Records -> [Table writer]
//	          round        first/interior/last
//
// The sampler moves the host cursor and rounds position. The differentiator
// keeps the persisted series per order and samples look-ahead frames as
// scratch values that never enter the series. Hosts that implement
// [Addressable] can be sampled by a worker pool instead; the differences are
// then computed as vectors and the table is identical to the sequential one.
//
// # Thread Safety
//
// A [PathEvaluator] is driven by one goroutine per run. [Cursor] serializes
// its methods, so one cursor may be shared, but concurrent runs on the same
// cursor interleave frames and will not produce meaningful tables. Use one
// cursor per run.
package motionio
