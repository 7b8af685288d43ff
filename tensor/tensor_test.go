package tensor

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/streetplan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testfield(t *testing.T) *Field {
	t.Helper()
	f, err := NewField(512, 0.0004,
		Grid{Center: streetplan.P(100, 100), Angle: -math.Pi / 3 * 2, Length: 500},
		Radial{Center: streetplan.P(200, 200)},
		Grid{Center: streetplan.P(300, 400), Angle: 0.1, Length: 200},
		Grid{Center: streetplan.P(0, 400), Angle: 0.7, Length: 10},
	)
	require.NoError(t, err)
	return f
}

func TestNewFieldValidation(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := NewField(0, 0.1)
	assert.True(t, errors.Is(err, ErrInvalidField))
	_, err = NewField(100, -1)
	assert.True(t, errors.Is(err, ErrInvalidField))
	_, err = NewField(100, math.NaN())
	assert.True(t, errors.Is(err, ErrInvalidField))
	f, err := NewField(100, 0)
	require.NoError(t, err)
	assert.Equal(t, 100.0, f.Size())
	assert.Empty(t, f.Elements())
	g := Grid{Center: streetplan.P(10, 10), Length: 50}
	f, err = NewField(100, 0.25, g)
	require.NoError(t, err)
	assert.Equal(t, 0.25, f.Decay())
	elems := f.Elements()
	require.Len(t, elems, 1)
	elems[0] = Radial{}
	assert.Equal(t, g, f.Elements()[0], "elements must be copied")
}

func TestFieldIsSymmetric(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f := testfield(t)
	for x := 0.0; x <= 512; x += 37 {
		for y := 0.0; y <= 512; y += 41 {
			for _, tn := range []Tensor{
				f.Evaluate(streetplan.P(x, y)),
				f.EvaluateSmoothed(streetplan.P(x, y)),
			} {
				m := tn.Matrix()
				if m[0][1] != m[1][0] {
					t.Fatalf("tensor at (%g,%g) is not symmetric: %v", x, y, tn)
				}
				if !(tn.Norm() >= 0) {
					t.Fatalf("tensor at (%g,%g) has invalid norm %g", x, y, tn.Norm())
				}
			}
		}
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f := testfield(t)
	p := streetplan.P(123.4, 321.5)
	assert.Equal(t, f.Evaluate(p), f.Evaluate(p))
	assert.Equal(t, f.EvaluateSmoothed(p), f.EvaluateSmoothed(p))
}

func TestEigenvectorsAreOrthonormal(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f := testfield(t)
	for x := 0.0; x <= 512; x += 29 {
		for y := 0.0; y <= 512; y += 31 {
			tn := f.EvaluateSmoothed(streetplan.P(x, y))
			ev := tn.Eigenvectors()
			if tn.Norm() <= DegeneracyThreshold {
				assert.True(t, ev.Degenerate)
				continue
			}
			assert.InDelta(t, 1.0, ev.Major.Norm(), 1e-9)
			assert.InDelta(t, 1.0, ev.Minor.Norm(), 1e-9)
			assert.InDelta(t, 0.0, ev.Major.Dot(ev.Minor), 1e-9)
		}
	}
}

func TestEigenvectorsOfZeroTensor(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	ev := Tensor{}.Eigenvectors()
	assert.True(t, ev.Degenerate)
	assert.Equal(t, streetplan.Origin, ev.Major)
	assert.Equal(t, streetplan.Origin, ev.Minor)
	ev = Tensor{A: math.NaN()}.Eigenvectors()
	assert.True(t, ev.Degenerate)
}

func TestEigenvectorsSolveEigenEquation(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tn := FromAngle(2.5, 0.4)
	ev := tn.Eigenvectors()
	m := tn.Matrix()
	mul := func(v streetplan.Pair) streetplan.Pair {
		return streetplan.P(m[0][0]*v.X()+m[0][1]*v.Y(), m[1][0]*v.X()+m[1][1]*v.Y())
	}
	assert.True(t, mul(ev.Major).Equal(ev.Major.Scaled(2.5)), "major: %v", mul(ev.Major))
	assert.True(t, mul(ev.Minor).Equal(ev.Minor.Scaled(-2.5)), "minor: %v", mul(ev.Minor))
}

func TestGridElement(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	g := Grid{Center: streetplan.P(50, 50), Angle: 0, Length: 20}
	f, err := NewField(100, 0.001, g)
	require.NoError(t, err)
	ev := f.Directions(streetplan.P(55, 50))
	require.False(t, ev.Degenerate)
	assert.InDelta(t, 1.0, math.Abs(ev.Major.X()), 1e-9)
	assert.InDelta(t, 1.0, math.Abs(ev.Minor.Y()), 1e-9)
	// beyond its length a grid contributes nothing
	assert.Equal(t, Tensor{}, f.Evaluate(streetplan.P(90, 90)))
	assert.Equal(t, streetplan.P(50, 50), g.Anchor())
}

func TestRadialElement(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := streetplan.P(50, 50)
	f, err := NewField(100, 0, Radial{Center: c})
	require.NoError(t, err)
	assert.True(t, f.Evaluate(c).IsDegenerate())
	for _, p := range []streetplan.Pair{streetplan.P(70, 50), streetplan.P(40, 80), streetplan.P(20, 20)} {
		ev := f.Evaluate(p).Eigenvectors()
		require.False(t, ev.Degenerate)
		radius := (p - c).Unit()
		assert.InDelta(t, 0.0, ev.Major.Dot(radius), 1e-9, "major should circle around center")
		assert.InDelta(t, 1.0, math.Abs(ev.Minor.Dot(radius)), 1e-9, "minor should radiate from center")
	}
}

func TestDegenerateIndex(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f, err := NewField(100, 0, Radial{Center: streetplan.P(50, 50)})
	require.NoError(t, err)
	idx := NewDegenerateIndex(f, 10)
	assert.Equal(t, streetplan.P(55, 55), idx.SectorCenter(5, 5))
	assert.Equal(t, 0.0, idx.Distance(streetplan.P(55, 55)))
	d := idx.Distance(streetplan.P(95, 5))
	assert.False(t, math.IsInf(d, 0))
	assert.True(t, d > 0)
	assert.Equal(t, d, idx.Distance(streetplan.P(95, 5)), "lazy sector scan must be stable")
}

func TestDegenerateIndexWithoutDegeneratePoints(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f, err := NewField(64, 0, Grid{Center: streetplan.P(32, 32), Length: 1000})
	require.NoError(t, err)
	idx := NewDegenerateIndex(f, 0)
	assert.True(t, math.IsInf(idx.Distance(streetplan.P(10, 10)), 1))
}
