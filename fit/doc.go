/*
Package fit turns raw streamline traces into compact Hermite curves.

Raw traces are point sequences with a spacing of roughly one unit. They are
processed in stages:

  - SmoothPath removes local direction noise in two passes, leaving endpoints in place.
  - HighestCurvaturePoints reduces the trace to a small set of control points, keeping
    sharp turns and dropping straight runs.
  - Smoothing.Fit attaches velocities to the control points.
  - ClipPass truncates new curves where they come too close to existing ones.
  - MergeEndings snaps curve endpoints onto nearby curves of a target network.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package fit

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/streetplan"
)

// tracer writes to trace with key 'fit'
func tracer() tracing.Trace {
	return tracing.Select("fit")
}

// ErrTooFewPoints is returned when a path is too short to be fitted.
var ErrTooFewPoints = errors.New("path has too few points")

// Separation returns the required minimum distance between roads at a position.
type Separation func(p streetplan.Pair) float64

// ConstantSeparation returns a Separation with the same distance everywhere.
func ConstantSeparation(d float64) Separation {
	return func(streetplan.Pair) float64 {
		return d
	}
}

// Seed is a candidate seed emitted while tracing, together with its arc-length
// position on the trace, normalized to [0,1].
type Seed struct {
	Position streetplan.Pair
	Fraction float64
}
