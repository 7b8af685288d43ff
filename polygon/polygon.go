/*
Package polygon provides simple polygons and polygonal regions.

Polygons are built knot by knot, in the same builder style as paths:

	pg := NullPolygon().Knot(streetplan.P(0, 0)).Knot(streetplan.P(1, 3)).Knot(streetplan.P(3, 0)).Cycle()

Regions are the result of boolean operations on polygons. They may consist of
several contours, including holes, and are queried with Contains, using the
even-odd rule. Clipping is done by package polyclip.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package polygon

import (
	"fmt"
	"strings"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/streetplan"
)

// tracer writes to trace with key 'polygon'
func tracer() tracing.Trace {
	return tracing.Select("polygon")
}

// Polygon is a simple polygon, given by its knots. A polygon is always closed;
// Cycle is part of the builder syntax only.
type Polygon struct {
	contour polyclip.Contour
}

// NullPolygon creates an empty polygon, to be extended by subsequent builder calls.
func NullPolygon() *Polygon {
	return &Polygon{}
}

// Knot appends a vertex. Part of builder functionality.
func (pg *Polygon) Knot(p streetplan.Pair) *Polygon {
	pg.contour.Add(polyclip.Point{X: p.X(), Y: p.Y()})
	return pg
}

// Cycle closes the polygon. Part of builder functionality.
func (pg *Polygon) Cycle() *Polygon {
	return pg
}

// Box creates a rectangle from two opposite corners.
func Box(a, b streetplan.Pair) *Polygon {
	ll := streetplan.P(min(a.X(), b.X()), min(a.Y(), b.Y()))
	ur := streetplan.P(max(a.X(), b.X()), max(a.Y(), b.Y()))
	return NullPolygon().Knot(ll).Knot(streetplan.P(ur.X(), ll.Y())).Knot(ur).
		Knot(streetplan.P(ll.X(), ur.Y())).Cycle()
}

// N returns the number of knots.
func (pg *Polygon) N() int {
	return len(pg.contour)
}

// Pt returns knot i. Indices wrap around.
func (pg *Polygon) Pt(i int) streetplan.Pair {
	n := len(pg.contour)
	i = ((i % n) + n) % n
	return streetplan.P(pg.contour[i].X, pg.contour[i].Y)
}

// Contains is a predicate: is p inside the polygon?
func (pg *Polygon) Contains(p streetplan.Pair) bool {
	if len(pg.contour) < 3 {
		return false
	}
	return pg.contour.Contains(polyclip.Point{X: p.X(), Y: p.Y()})
}

// BoundingBox returns the lower left and upper right corners of the polygon's
// bounding box.
func (pg *Polygon) BoundingBox() (streetplan.Pair, streetplan.Pair) {
	if len(pg.contour) == 0 {
		return streetplan.Origin, streetplan.Origin
	}
	bb := pg.contour.BoundingBox()
	return streetplan.P(bb.Min.X, bb.Min.Y), streetplan.P(bb.Max.X, bb.Max.Y)
}

// AsString returns a polygon in MetaPost-like notation.
func AsString(pg *Polygon) string {
	if pg == nil {
		return "<nil>"
	}
	var sb strings.Builder
	for i := range pg.N() {
		if i > 0 {
			sb.WriteString("--")
		}
		sb.WriteString(pg.Pt(i).String())
	}
	sb.WriteString("--cycle")
	return sb.String()
}

// Region is a set of contours resulting from boolean operations on polygons.
type Region struct {
	contours polyclip.Polygon
}

// Intersection returns the region covered by both a and b.
func Intersection(a, b *Polygon) Region {
	r := Region{
		contours: polyclip.Polygon{a.contour}.Construct(polyclip.INTERSECTION, polyclip.Polygon{b.contour}),
	}
	tracer().Debugf("intersection has %d contours", len(r.contours))
	return r
}

// IsEmpty is a predicate: does r cover no area?
func (r Region) IsEmpty() bool {
	return len(r.contours) == 0
}

// Contains is a predicate: is p inside r? Contours are combined with the
// even-odd rule, which makes contours lying within another one holes.
func (r Region) Contains(p streetplan.Pair) bool {
	pt := polyclip.Point{X: p.X(), Y: p.Y()}
	inside := false
	for _, c := range r.contours {
		if len(c) >= 3 && c.Contains(pt) {
			inside = !inside
		}
	}
	return inside
}

func (r Region) String() string {
	return fmt.Sprintf("region{%d contours}", len(r.contours))
}
