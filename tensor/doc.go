/*
Package tensor implements the tensor field which steers road directions.

A field is composed of design elements placed by a designer. Each element
contributes a symmetric, trace-free 2×2 tensor

	T = R ⋅ | cos 2θ   sin 2θ |
	        | sin 2θ  −cos 2θ |

whose eigenvectors give two orthogonal preferred directions at every point of
the grid: the major direction at angle θ and the minor direction perpendicular
to it. Contributions are weighted by exp(−decay⋅d²), d being the distance to
the element's center, and simply summed up.

Where the summed tensor vanishes, directions are undefined. Such a location is
called a degenerate point. Callers have to treat a degenerate field as a
stopping condition, not as an error. Type DegenerateIndex locates degenerate
points coarsely, at the granularity of grid sectors.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package tensor

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'tensor'
func tracer() tracing.Trace {
	return tracing.Select("tensor")
}

// DegeneracyThreshold is the tensor norm below which the field is considered
// degenerate.
const DegeneracyThreshold = 0.0001

// ErrInvalidField indicates a field with a non-positive size or an invalid decay.
var ErrInvalidField = errors.New("invalid tensor field parameters")
