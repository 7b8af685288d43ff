/*
Package streetplan generates road networks from a 2D tensor field.

A designer places field-generating elements (package tensor) over a square grid.
Streamlines following the field's principal directions are traced and spaced
apart (package trace), fitted to compact Hermite curves and clipped against
already accepted roads (packages hermite and fit). Package status provides an
ordered sweep structure for consumers building street graphs from the result.

This root package holds the points and vectors shared by all sub-packages.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package streetplan

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'streetplan'
func tracer() tracing.Trace {
	return tracing.Select("streetplan")
}

// === Numeric Data Type =====================================================

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Zap makes n = 0 if n "means" to be zero
func Zap(n float64) float64 {
	if Is0(n) {
		n = 0
	}
	return n
}

// === Pair Data Type ========================================================

// Pair is a 2D point or displacement vector. It is used both as a grid location
// and as a direction.
type Pair complex128

// Origin represents the frequently used constant (0,0).
var Origin = P(0, 0)

// Pretty Stringer for simple pairs.
func (p Pair) String() string {
	return fmt.Sprintf("(%g,%g)", real(p), imag(p))
}

// C returns a Pair as a complex number.
func (p Pair) C() complex128 {
	return complex128(p)
}

// P is a quick notation for contructing a pair from floats.
func P(x, y float64) Pair {
	return Pair(complex(x, y))
}

// Dir returns the unit vector pointing in direction theta (radians,
// counterclockwise from the x-axis).
func Dir(theta float64) Pair {
	return Pair(cmplx.Rect(1, theta))
}

// F is a quick notation for getting float values from a pair.
func (p Pair) F() (float64, float64) {
	return real(p), imag(p)
}

// X is the x-part of a pair.
func (p Pair) X() float64 {
	return real(p)
}

// Y is the y-part of a pair.
func (p Pair) Y() float64 {
	return imag(p)
}

// Zap rounds x-part and y-part to Epsilon.
func (p Pair) Zap() Pair {
	return P(Zap(p.X()), Zap(p.Y()))
}

// IsOrigin is a predicate: is this pair origin?
func (p Pair) IsOrigin() bool {
	return p.Equal(Origin)
}

// IsNaN is true if either part of p is NaN.
func (p Pair) IsNaN() bool {
	return math.IsNaN(p.X()) || math.IsNaN(p.Y())
}

// Equal compares two pairs.
func (p Pair) Equal(p2 Pair) bool {
	return Is0(p.X()-p2.X()) && Is0(p.Y()-p2.Y())
}

// Scaled returns a new pair scaled by factor a.
func (p Pair) Scaled(a float64) Pair {
	return P(p.X()*a, p.Y()*a)
}

// Norm is the Euclidean length of p.
func (p Pair) Norm() float64 {
	return cmplx.Abs(p.C())
}

// NormSq is the squared Euclidean length of p.
func (p Pair) NormSq() float64 {
	return p.X()*p.X() + p.Y()*p.Y()
}

// Dot is the scalar product of p and q.
func (p Pair) Dot(q Pair) float64 {
	return p.X()*q.X() + p.Y()*q.Y()
}

// Unit returns p scaled to length 1. The zero vector has no direction;
// Unit returns Origin for vectors of (near) zero length instead of dividing by zero.
func (p Pair) Unit() Pair {
	n := p.Norm()
	if Is0(n) {
		return Origin
	}
	return p.Scaled(1 / n)
}

// Perp returns p rotated by 90° counterclockwise.
func (p Pair) Perp() Pair {
	return P(-p.Y(), p.X())
}

// Rotated returns a new pair rotated around origin by theta (counterclockwise).
func (p Pair) Rotated(theta float64) Pair {
	return p * Dir(theta)
}

// Clamped returns p with each coordinate clamped to the box spanned by a and b.
// The corners may be given in any order.
func (p Pair) Clamped(a, b Pair) Pair {
	minx, maxx := math.Min(a.X(), b.X()), math.Max(a.X(), b.X())
	miny, maxy := math.Min(a.Y(), b.Y()), math.Max(a.Y(), b.Y())
	return P(math.Max(minx, math.Min(maxx, p.X())), math.Max(miny, math.Min(maxy, p.Y())))
}

// === Segments ==============================================================

// Segment is one straight edge of an external curve or graph, given by its
// two end points.
type Segment [2]Pair

// XAt returns the x-coordinate at which the line through segment s crosses
// the horizontal line y = height. Horizontal segments yield ±Inf or NaN.
func (s Segment) XAt(height float64) float64 {
	d := s[1] - s[0]
	return s[0].X() + ((height-s[0].Y())/d.Y())*d.X()
}
