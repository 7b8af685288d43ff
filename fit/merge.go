package fit

import (
	"math"

	"github.com/npillmayer/streetplan"
	"github.com/npillmayer/streetplan/hermite"
)

// MinMergeDistance is the distance below which an endpoint is considered to
// be connected already.
const MinMergeDistance = 0.001

// MergeEndings snaps the endpoints of curves onto the nearest point of any curve
// in targets, if that point is farther away than MinMergeDistance and closer
// than connection. Start and end are handled independently; velocities and
// interior control points are left untouched. The input curves are not modified.
func MergeEndings(curves, targets []hermite.Curve, connection float64) []hermite.Curve {
	merged := make([]hermite.Curve, len(curves))
	for i, c := range curves {
		m := c.Clone()
		if len(m) > 0 {
			if p, ok := snap(m[0].Position, targets, connection); ok {
				m[0].Position = p
			}
			last := len(m) - 1
			if p, ok := snap(m[last].Position, targets, connection); ok {
				m[last].Position = p
			}
		}
		merged[i] = m
	}
	return merged
}

func snap(p streetplan.Pair, targets []hermite.Curve, connection float64) (streetplan.Pair, bool) {
	hit, ok := hermite.Closest(p, targets)
	if !ok {
		return p, false
	}
	d := math.Sqrt(hit.DistanceSquared)
	if d > MinMergeDistance && d < connection {
		tracer().Debugf("merging road ending %v onto %v", p, hit.Point)
		return hit.Point, true
	}
	return p, false
}
