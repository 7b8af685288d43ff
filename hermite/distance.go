package hermite

import (
	"math"

	"github.com/npillmayer/streetplan"
	"golang.org/x/sync/errgroup"
)

// Below this number of curves queries are not split across workers.
const parallelThreshold = 64

// SegmentDistanceSquared returns the squared distance of p to the line segment
// [a,b], together with the closest point on the segment. A degenerate segment
// (a = b) is treated as a point.
func SegmentDistanceSquared(p, a, b streetplan.Pair) (float64, streetplan.Pair) {
	d := b - a
	l := d.NormSq()
	if l == 0 {
		return (p - a).NormSq(), a
	}
	t := (p - a).Dot(d) / l
	t = math.Max(0, math.Min(1, t))
	c := a + d.Scaled(t)
	return (p - c).NormSq(), c
}

// DistanceSquared returns the squared distance of p to the polyline through the
// control points of c. An empty curve has infinite distance.
func (c Curve) DistanceSquared(p streetplan.Pair) float64 {
	h, _ := c.closest(p)
	return h.DistanceSquared
}

// Hit describes the point of a set of curves nearest to a query point.
type Hit struct {
	DistanceSquared float64
	Point           streetplan.Pair // nearest point on a curve
	Direction       streetplan.Pair // direction of the segment containing Point
	Curve           int             // index of the curve hit
	Segment         int             // index of the segment start within the curve
}

var noHit = Hit{DistanceSquared: math.Inf(1), Curve: -1, Segment: -1}

func (c Curve) closest(p streetplan.Pair) (Hit, bool) {
	h := noHit
	switch len(c) {
	case 0:
		return h, false
	case 1:
		h.DistanceSquared, h.Point, h.Segment = (p - c[0].Position).NormSq(), c[0].Position, 0
		h.Direction = c[0].Velocity
		return h, true
	}
	for i := 0; i < len(c)-1; i++ {
		a, b := c[i].Position, c[i+1].Position
		d2, pt := SegmentDistanceSquared(p, a, b)
		if d2 < h.DistanceSquared {
			h.DistanceSquared, h.Point, h.Segment = d2, pt, i
			h.Direction = b - a
		}
	}
	return h, true
}

// Closest finds the point on any of the curves nearest to p. If there is no
// non-empty curve, false is returned.
func Closest(p streetplan.Pair, curves []Curve) (Hit, bool) {
	best, found := noHit, false
	for i, c := range curves {
		h, ok := c.closest(p)
		if ok && (!found || h.DistanceSquared < best.DistanceSquared) {
			h.Curve = i
			best, found = h, true
		}
	}
	return best, found
}

// NearestDistanceSquared returns the squared distance from p to the nearest
// of the given curves, or +Inf if there are none. For large sets of curves the
// search is split into chunks evaluated by up to workers goroutines, and the
// partial minima are reduced afterwards.
func NearestDistanceSquared(p streetplan.Pair, curves []Curve, workers int) float64 {
	if workers <= 1 || len(curves) < parallelThreshold {
		return nearestIn(p, curves)
	}
	chunk := (len(curves) + workers - 1) / workers
	mins := make([]float64, (len(curves)+chunk-1)/chunk)
	var g errgroup.Group
	for i := range mins {
		lo, hi := i*chunk, min((i+1)*chunk, len(curves))
		g.Go(func() error {
			mins[i] = nearestIn(p, curves[lo:hi])
			return nil
		})
	}
	_ = g.Wait() // workers never fail
	d2 := math.Inf(1)
	for _, m := range mins {
		d2 = math.Min(d2, m)
	}
	return d2
}

func nearestIn(p streetplan.Pair, curves []Curve) float64 {
	d2 := math.Inf(1)
	for _, c := range curves {
		if h, ok := c.closest(p); ok && h.DistanceSquared < d2 {
			d2 = h.DistanceSquared
		}
	}
	return d2
}
