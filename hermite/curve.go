// Package hermite deals with roads represented as piecewise cubic Hermite curves.
/*
A Hermite curve is given by a sequence of control points, each holding a
position and a velocity (tangent). Between two consecutive control points
p0, p1 with velocities m0, m1 the curve follows

	h(t) = (2t³−3t²+1)⋅p0 + (t³−2t²+t)⋅m0 + (−2t³+3t²)⋅p1 + (t³−t²)⋅m1,   t ∈ [0,1].

Geometric queries (distance of a point to a set of curves) treat curves as
polylines between their control points. The control points are chosen densely
enough at high curvature for the error to be negligible.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package hermite

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/streetplan"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// tracer writes to trace with key 'hermite'
func tracer() tracing.Trace {
	return tracing.Select("hermite")
}

// ControlPoint is a node of a Hermite curve.
type ControlPoint struct {
	Position streetplan.Pair
	Velocity streetplan.Pair // tangent used for cubic interpolation
}

// Curve is a Hermite curve. Accepted curves have at least 2 control points and
// are not modified, except for endpoint merging replacing the first or last point.
type Curve []ControlPoint

func (c Curve) String() string {
	s := "hermite{"
	for i, cp := range c {
		if i > 0 {
			s += " .. "
		}
		s += fmt.Sprintf("%v", cp.Position)
	}
	return s + "}"
}

// N returns the number of control points.
func (c Curve) N() int {
	return len(c)
}

// Clone returns a copy of c which does not share storage with c.
func (c Curve) Clone() Curve {
	return append(Curve(nil), c...)
}

// Length returns the length of the polyline through the control points.
func (c Curve) Length() float64 {
	var l float64
	for i := 1; i < len(c); i++ {
		l += (c[i].Position - c[i-1].Position).Norm()
	}
	return l
}

// Evaluate returns the point at parameter t ∈ [0,1] of the cubic Hermite
// segment from p0 to p1 with velocities m0 and m1.
func Evaluate(p0, p1, m0, m1 streetplan.Pair, t float64) streetplan.Pair {
	d := p0 - p1
	a := d.Scaled(2) + m0 + m1
	b := -m0.Scaled(2) - m1 - d.Scaled(3)
	return ((a.Scaled(t) + b).Scaled(t) + m0).Scaled(t) + p0
}

// Resample converts c into a dense point sequence by evaluating every segment
// between consecutive control points at the given number of subdivisions.
// Joints between segments are emitted once.
func (c Curve) Resample(subdivisions int) []streetplan.Pair {
	if subdivisions < 1 {
		subdivisions = 1
	}
	if len(c) < 2 {
		pts := make([]streetplan.Pair, len(c))
		for i, cp := range c {
			pts[i] = cp.Position
		}
		return pts
	}
	pts := make([]streetplan.Pair, 0, (len(c)-1)*subdivisions+1)
	pts = append(pts, c[0].Position)
	for i := 0; i < len(c)-1; i++ {
		this, next := c[i], c[i+1]
		for k := 1; k <= subdivisions; k++ {
			t := float64(k) / float64(subdivisions)
			pts = append(pts, Evaluate(this.Position, next.Position, this.Velocity, next.Velocity, t))
		}
	}
	return pts
}

// BezierPath converts c into an open path of cubic Bézier segments. Each Hermite
// segment p0, m0 → p1, m1 has Bézier controls p0 + m0/3 and p1 − m1/3.
func (c Curve) BezierPath() *path.Data {
	p := &path.Data{}
	if len(c) == 0 {
		return p
	}
	p = p.MoveTo(toVec(c[0].Position))
	for i := 1; i < len(c); i++ {
		prev, cp := c[i-1], c[i]
		c1 := prev.Position + prev.Velocity.Scaled(1.0/3)
		c2 := cp.Position - cp.Velocity.Scaled(1.0/3)
		p = p.CubeTo(toVec(c1), toVec(c2), toVec(cp.Position))
	}
	return p
}

func toVec(p streetplan.Pair) vec.Vec2 {
	return vec.Vec2{X: p.X(), Y: p.Y()}
}
