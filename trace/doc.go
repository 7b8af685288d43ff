/*
Package trace grows a road network by integrating streamlines of a tensor field.

A Tracer follows the major or minor eigenvector field from a seed point with
4th-order Runge-Kutta steps, until it leaves the grid or the city boundary,
reaches a degenerate point, comes too close to an existing road, exceeds its
maximum length or closes a loop. Along the way it emits candidate seeds for
further roads, spaced by the separation distance.

A Planner repeats tracing for a number of iterations, alternating between
major and minor roads. Each iteration traces all queued seeds in parallel,
fits the traces to Hermite curves, clips them against the roads accepted so
far and queues the seeds on the surviving curves.

	field, _ := tensor.NewField(512, 0.0004, tensor.Radial{Center: streetplan.P(200, 200)})
	planner, err := NewPlanner(field, DefaultParams(), streetplan.P(200, 200))
	...
	major, minor := planner.Run(planner.Prioritize(DefaultSeedPoints()), nil, nil)

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package trace

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'trace'
func tracer() tracing.Trace {
	return tracing.Select("trace")
}

// ErrInvalidParams is returned for inconsistent planning parameters.
var ErrInvalidParams = errors.New("invalid street plan parameters")
