package fit

import (
	"github.com/npillmayer/streetplan"
	"github.com/npillmayer/streetplan/hermite"
)

// StartTolerance scales the squared separation distance a curve's first control
// point has to keep from existing curves. Curves starting closer are dropped.
const StartTolerance = 0.85

// Clipped is a curve which survived the clip pass, with the positions of
// those seeds lying on the part of the curve that was kept.
type Clipped struct {
	Curve     hermite.Curve
	Seeds     []streetplan.Pair
	Truncated bool // some trailing control points have been cut off
}

// ClipPass checks new curves against each other and against previously accepted
// curves. Curves are processed in order; every processed curve becomes an obstacle
// for the curves following it, in full and whether it was kept or not.
//
// A curve is dropped if its first control point lies within StartTolerance of the
// squared separation of an obstacle. Otherwise it is truncated before the first
// control point closer to an obstacle than the separation. Truncated curves with
// fewer than 2 control points or a length below minLength are dropped.
// Nearest-distance queries use up to workers goroutines.
func ClipPass(curves []SmoothedCurve, previous []hermite.Curve, sep Separation,
	minLength float64, workers int) []Clipped {
	obstacles := make([]hermite.Curve, 0, len(curves)+len(previous))
	obstacles = append(obstacles, previous...)
	result := make([]Clipped, 0, len(curves))
	for i, sc := range curves {
		if clipped, ok := clip(i, sc, obstacles, sep, minLength, workers); ok {
			result = append(result, clipped)
		}
		if len(sc.Curve) > 0 {
			obstacles = append(obstacles, sc.Curve)
		}
	}
	return result
}

func clip(i int, sc SmoothedCurve, obstacles []hermite.Curve, sep Separation,
	minLength float64, workers int) (Clipped, bool) {
	c := sc.Curve
	if len(c) == 0 {
		return Clipped{}, false
	}
	start := c[0].Position
	d := sep(start)
	if hermite.NearestDistanceSquared(start, obstacles, workers) < StartTolerance*d*d {
		tracer().Debugf("curve #%d starts too close to existing roads", i)
		return Clipped{}, false
	}
	n := 0
	for _, cp := range c {
		d := sep(cp.Position)
		if hermite.NearestDistanceSquared(cp.Position, obstacles, workers) < d*d {
			break
		}
		n++
	}
	if n < 2 {
		tracer().Debugf("curve #%d clipped to %d control points, dropped", i, n)
		return Clipped{}, false
	}
	kept := c[:n].Clone()
	if l := kept.Length(); l < minLength {
		tracer().Debugf("curve #%d clipped to length %.2f, dropped", i, l)
		return Clipped{}, false
	}
	limit := float64(n) / float64(len(c))
	var seeds []streetplan.Pair
	for _, s := range sc.Seeds {
		if s.Fraction < limit {
			seeds = append(seeds, s.Position)
		}
	}
	return Clipped{Curve: kept, Seeds: seeds, Truncated: n < len(c)}, true
}
