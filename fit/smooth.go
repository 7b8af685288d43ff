package fit

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/npillmayer/streetplan"
	"github.com/npillmayer/streetplan/hermite"
)

// SmoothPath returns a smoothed copy of path.
//
// The first pass nudges a point whenever the directions of the incoming and
// outgoing edges differ by at least alpha (measured as 1 − cos of the angle).
// The second pass replaces a point by the average of itself and its neighbours
// whenever the unit directions of these edges differ by at least beta.
// Endpoints are never moved. Paths with fewer than 3 points are returned as a copy.
func SmoothPath(path []streetplan.Pair, alpha, beta float64) []streetplan.Pair {
	if len(path) < 3 {
		return slices.Clone(path)
	}
	first := make([]streetplan.Pair, len(path))
	first[0], first[len(path)-1] = path[0], path[len(path)-1]
	for i := 1; i < len(path)-1; i++ {
		first[i] = path[i]
		cv, pv := derivative(i, path), derivative(i-1, path)
		if 1-math.Min(cv.Unit().Dot(pv.Unit()), 1) < alpha {
			continue
		}
		dv := cv - pv
		if l := dv.NormSq(); l > 0 {
			first[i] += dv.Scaled(0.5 * math.Sqrt(cv.NormSq()/l))
		}
	}
	second := make([]streetplan.Pair, len(first))
	second[0], second[len(first)-1] = first[0], first[len(first)-1]
	for i := 1; i < len(first)-1; i++ {
		second[i] = first[i]
		if curvature(i, first).Norm() >= beta {
			second[i] = (first[i-1] + first[i] + first[i+1]).Scaled(1.0 / 3)
		}
	}
	return second
}

func derivative(i int, path []streetplan.Pair) streetplan.Pair {
	return path[i+1] - path[i]
}

// curvature approximates the second derivative at an interior point by the
// difference of the unit directions of the adjacent edges.
func curvature(i int, path []streetplan.Pair) streetplan.Pair {
	return derivative(i, path).Unit() - derivative(i-1, path).Unit()
}

// HighestCurvaturePoints selects control point indices of path. Interior points
// are ranked by curvature, highest first, and accepted greedily if they are at
// least padding indices away from every index accepted before. Index 0 and the
// last index are always part of the result. Indices are returned in ascending order.
func HighestCurvaturePoints(path []streetplan.Pair, padding int) []int {
	switch len(path) {
	case 0:
		return nil
	case 1:
		return []int{0}
	}
	last := len(path) - 1
	ranked := make([]int, 0, last)
	k := make([]float64, len(path))
	for i := 1; i < last; i++ {
		ranked = append(ranked, i)
		k[i] = curvature(i, path).NormSq()
	}
	slices.SortStableFunc(ranked, func(a, b int) int {
		return cmp.Compare(k[b], k[a])
	})
	accepted := []int{0, last}
	for _, i := range ranked {
		if slices.ContainsFunc(accepted, func(j int) bool { return abs(i-j) < padding }) {
			continue
		}
		accepted = append(accepted, i)
	}
	slices.Sort(accepted)
	return accepted
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Smoothing holds the parameters for turning a trace into a Hermite curve.
type Smoothing struct {
	Alpha   float64 // direction change threshold of the first smoothing pass
	Beta    float64 // direction change threshold of the second smoothing pass
	Padding int     // minimum index distance between control points
	H       float64 // integration step size of the trace
	Blend   float64 // blend factor for interior velocities
}

// SmoothedCurve is a fitted curve together with the seeds emitted while tracing it.
type SmoothedCurve struct {
	Curve hermite.Curve
	Seeds []Seed
}

// Fit smoothes path, reduces it to its highest-curvature points and attaches
// velocities. Velocities are difference quotients divided by H²: forward at the
// first point, backward at the last point and a Blend-weighted sum of both at
// interior points.
func (s Smoothing) Fit(path []streetplan.Pair) (hermite.Curve, error) {
	if len(path) < 2 {
		return nil, fmt.Errorf("%w: %d points", ErrTooFewPoints, len(path))
	}
	smoothed := SmoothPath(path, s.Alpha, s.Beta)
	indices := HighestCurvaturePoints(smoothed, s.Padding)
	h2 := s.H * s.H
	last := len(smoothed) - 1
	curve := make(hermite.Curve, len(indices))
	for k, i := range indices {
		p := smoothed[i]
		var v streetplan.Pair
		switch i {
		case 0:
			v = (smoothed[1] - p).Scaled(1 / h2)
		case last:
			v = (p - smoothed[last-1]).Scaled(1 / h2)
		default:
			fwd := (smoothed[i+1] - p).Scaled(1 / h2)
			bwd := (p - smoothed[i-1]).Scaled(1 / h2)
			v = (fwd + bwd).Scaled(s.Blend)
		}
		curve[k] = hermite.ControlPoint{Position: p, Velocity: v}
	}
	return curve, nil
}

// Curve fits a trace and keeps its seeds. Traces too short to be fitted
// result in ErrTooFewPoints.
func (s Smoothing) Curve(path []streetplan.Pair, seeds []Seed) (SmoothedCurve, error) {
	c, err := s.Fit(path)
	if err != nil {
		return SmoothedCurve{}, err
	}
	tracer().Debugf("fitted trace of %d points to %d control points", len(path), len(c))
	return SmoothedCurve{Curve: c, Seeds: seeds}, nil
}
