/*
Package status implements an ordered sweep structure for sweep-line algorithms.

A SkipList holds integer handles into a caller-owned collection of segments.
Its order is not fixed at insertion time: two handles are compared by the
x-coordinate at which their segments cross a horizontal sweep line, and the
height of that line is supplied anew with every operation. The same structure
thus represents different orderings at different sweep heights, as long as
the segments do not cross between them.

Clients are responsible for height consistency. Reusing a list built at one
height for operations at a materially different height, with segments crossing
in between, leaves the list unsorted; the list does not validate this.

A SkipList is not safe for concurrent use. Callers needing concurrent sweeps
have to serialize access or use one list per sweep.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package status

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'status'
func tracer() tracing.Trace {
	return tracing.Select("status")
}
