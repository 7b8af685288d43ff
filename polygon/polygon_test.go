package polygon

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/streetplan"
)

func TestBuilder(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pg := NullPolygon().Knot(streetplan.P(0, 0)).Knot(streetplan.P(1, 3)).Knot(streetplan.P(3, 0)).Cycle()
	tracer().Infof("pg = %s", AsString(pg))
	if pg.N() != 3 {
		t.Fail()
	}
	if pg.Pt(3) != pg.Pt(0) || pg.Pt(-1) != streetplan.P(3, 0) {
		t.Errorf("expected knot indices to wrap around")
	}
}

func TestBox(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	box := Box(streetplan.P(0, 5), streetplan.P(4, 1))
	tracer().Infof("box = %s", AsString(box))
	if box.N() != 4 {
		t.Fail()
	}
	ll, ur := box.BoundingBox()
	if ll != streetplan.P(0, 1) || ur != streetplan.P(4, 5) {
		t.Errorf("expected bounding box (0,1)..(4,5), is %v..%v", ll, ur)
	}
	if !box.Contains(streetplan.P(2, 3)) || box.Contains(streetplan.P(5, 3)) {
		t.Errorf("box containment is wrong")
	}
}

func TestIntersection(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	triangle := NullPolygon().Knot(streetplan.P(-10, -10)).Knot(streetplan.P(30, -10)).
		Knot(streetplan.P(-10, 30)).Cycle()
	square := Box(streetplan.P(0, 0), streetplan.P(20, 20))
	r := Intersection(triangle, square)
	tracer().Infof("intersection = %v", r)
	if r.IsEmpty() {
		t.Fatalf("expected intersection to be non-empty")
	}
	for _, p := range []streetplan.Pair{streetplan.P(1, 1), streetplan.P(5, 10)} {
		if !r.Contains(p) {
			t.Errorf("expected %v to be inside the intersection", p)
		}
	}
	for _, p := range []streetplan.Pair{streetplan.P(-5, -5), streetplan.P(18, 18), streetplan.P(25, 1)} {
		if r.Contains(p) {
			t.Errorf("expected %v to be outside the intersection", p)
		}
	}
	far := Box(streetplan.P(100, 100), streetplan.P(120, 120))
	if !Intersection(far, square).IsEmpty() {
		t.Errorf("expected disjoint polygons to have an empty intersection")
	}
}
