package trace

import (
	"math"

	"github.com/npillmayer/streetplan"
	"github.com/npillmayer/streetplan/fit"
	"github.com/npillmayer/streetplan/hermite"
	"github.com/npillmayer/streetplan/tensor"
	"golang.org/x/sync/errgroup"
)

// LoopEpsilon is the squared distance to its origin at which a trace is
// considered to have closed a loop.
const LoopEpsilon = 0.0001

// Region restricts tracing to an area within the grid.
type Region interface {
	Contains(p streetplan.Pair) bool
}

// Output is the result of tracing a single seed. An empty Output (no path,
// no seeds) is returned for seeds which could not be traced.
type Output struct {
	Path  []streetplan.Pair
	Seeds []fit.Seed // fractions are relative to the arc length of the whole trace
}

// IsEmpty is a predicate: did tracing produce a path?
func (o Output) IsEmpty() bool {
	return len(o.Path) == 0
}

// Tracer integrates streamlines of a tensor field. A Tracer is not modified by
// tracing and may be used by several goroutines at once.
type Tracer struct {
	Field      *tensor.Field
	H          float64         // step size
	Separation fit.Separation  // required distance to Previous
	Major      bool            // follow the major eigenvector field
	MaxLength  float64         // maximum arc length
	Previous   []hermite.Curve // roads to keep away from; read-only while tracing
	Boundary   Region          // optional, nil for the whole grid
	Workers    int             // goroutines for distance queries against Previous
}

func (tr *Tracer) inside(p streetplan.Pair) bool {
	return tr.Field.Contains(p) && (tr.Boundary == nil || tr.Boundary.Contains(p))
}

// margin is the distance of p from the nearest road of Previous, minus the separation.
func (tr *Tracer) margin(p streetplan.Pair) float64 {
	d2 := hermite.NearestDistanceSquared(p, tr.Previous, tr.Workers)
	return math.Sqrt(d2) - tr.Separation(p)
}

// direction returns the unit eigenvector at p, oriented along ref. Positions
// off the grid are clamped onto it. Degenerate positions yield the zero vector.
func (tr *Tracer) direction(p, ref streetplan.Pair) streetplan.Pair {
	size := tr.Field.Size()
	p = p.Clamped(streetplan.Origin, streetplan.P(size, size))
	d := tr.Field.Directions(p).Direction(tr.Major).Unit()
	if ref.Dot(d) < 0 {
		return -d
	}
	return d
}

// Trace follows the field from seed. Seeds outside the grid or the boundary, or
// closer to a road of Previous than the separation distance, produce an empty
// Output, as does a step size H ≤ 0.
//
// The trace stops when the next step would leave the grid or the boundary, come
// too close to a road of Previous or exceed MaxLength, at a degenerate point of
// the field, or when it returns to seed. The distance to Previous is measured
// lazily: only after travelling as far as the safety margin of the last
// measurement. A step failing a check is not taken, so every position of the
// path lies inside and keeps the separation.
//
// Path holds positions about one unit of arc length apart, plus the last position.
// Seeds are emitted whenever the trace has travelled the separation distance
// since the last seed.
func (tr *Tracer) Trace(seed streetplan.Pair) Output {
	if !(tr.H > 0) || !tr.inside(seed) {
		return Output{}
	}
	margin := tr.margin(seed)
	if margin <= 0 {
		tracer().Debugf("seed %v too close to existing roads", seed)
		return Output{}
	}
	stride := max(1, int(math.Round(1/tr.H)))
	path := []streetplan.Pair{seed}
	var seeds []fit.Seed
	var length, sinceSeed, sinceCheck float64
	var heading streetplan.Pair // zero until the first step
	p, steps := seed, 0
	for length+tr.H <= tr.MaxLength {
		k1 := tr.direction(p, heading)
		if k1.IsOrigin() { // degenerate point
			break
		}
		k2 := tr.direction(p+k1.Scaled(tr.H/2), k1)
		k3 := tr.direction(p+k2.Scaled(tr.H/2), k1)
		k4 := tr.direction(p+k3.Scaled(tr.H), k1)
		m := (k1 + k2.Scaled(2) + k3.Scaled(2) + k4).Scaled(1.0 / 6)
		next := p + m.Scaled(tr.H)
		if !tr.inside(next) {
			break
		}
		dist := (next - p).Norm()
		if sinceCheck += dist; sinceCheck >= margin {
			if margin = tr.margin(next); margin <= 0 {
				break
			}
			sinceCheck = 0
		}
		length += dist
		sinceSeed += dist
		heading = k1
		p = next
		steps++
		if sinceSeed >= tr.Separation(p) {
			sinceSeed = 0
			seeds = append(seeds, fit.Seed{Position: p, Fraction: length})
		}
		if steps%stride == 0 {
			path = append(path, p)
		}
		if (p - seed).NormSq() <= LoopEpsilon {
			break
		}
	}
	if p != path[len(path)-1] {
		path = append(path, p)
	}
	if len(path) < 2 {
		return Output{}
	}
	for i := range seeds {
		seeds[i].Fraction /= length
	}
	tracer().Debugf("traced %v: %d steps, length %.2f, %d seeds", seed, steps, length, len(seeds))
	return Output{Path: path, Seeds: seeds}
}

// TraceAll traces every seed, using up to workers goroutines. Result i belongs to
// seeds[i], independent of the order in which traces complete.
func (tr *Tracer) TraceAll(seeds []streetplan.Pair, workers int) []Output {
	results := make([]Output, len(seeds))
	var g errgroup.Group
	g.SetLimit(max(1, workers))
	for i, seed := range seeds {
		g.Go(func() error {
			results[i] = tr.Trace(seed)
			return nil
		})
	}
	_ = g.Wait() // tracing never fails
	return results
}
