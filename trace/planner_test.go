package trace

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/streetplan"
	"github.com/npillmayer/streetplan/hermite"
	"github.com/npillmayer/streetplan/polygon"
	"github.com/npillmayer/streetplan/tensor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallParams() Params {
	p := DefaultParams()
	p.GridSize = 100
	p.Separation = 10
	p.MaxLength = 50
	p.Iterations = 1
	p.Workers = 2
	return p
}

// cityField is the field of four design elements on a 512×512 grid.
func cityField(t testing.TB) *tensor.Field {
	t.Helper()
	f, err := tensor.NewField(512, 0.0004,
		tensor.Grid{Center: streetplan.P(100, 100), Angle: -2 * math.Pi / 3, Length: 500},
		tensor.Radial{Center: streetplan.P(200, 200)},
		tensor.Grid{Center: streetplan.P(300, 400), Angle: 0.1, Length: 200},
		tensor.Grid{Center: streetplan.P(0, 400), Angle: 0.7, Length: 10},
	)
	require.NoError(t, err)
	return f
}

func TestNewPlannerErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f := uniformField(t, 100)
	_, err := NewPlanner(nil, smallParams(), streetplan.P(50, 50))
	assert.True(t, errors.Is(err, ErrInvalidParams))
	_, err = NewPlanner(f, DefaultParams(), streetplan.P(50, 50)) // grid size 512
	assert.True(t, errors.Is(err, ErrInvalidParams))
	p := smallParams()
	p.H = -1
	_, err = NewPlanner(f, p, streetplan.P(50, 50))
	assert.True(t, errors.Is(err, ErrInvalidParams))
	far := polygon.Box(streetplan.P(200, 200), streetplan.P(300, 300))
	_, err = NewPlanner(f, smallParams(), streetplan.P(50, 50), WithBoundary(far))
	assert.True(t, errors.Is(err, ErrInvalidParams))
	pl, err := NewPlanner(f, smallParams(), streetplan.P(50, 50), WithWorkers(3))
	require.NoError(t, err)
	assert.Equal(t, 3, pl.Params().Workers)
}

func TestOptionsPanicOnNonsense(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.Panics(t, func() { WithWorkers(0) })
	assert.Panics(t, func() { WithMetrics(nil) })
	assert.Panics(t, func() { WithBoundary(nil) })
	assert.Panics(t, func() { WithSeparation(nil) })
}

func TestCloseSeedsYieldOneCurve(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pl, err := NewPlanner(uniformField(t, 100), smallParams(), streetplan.P(50, 50))
	require.NoError(t, err)
	seeds := pl.Prioritize([]streetplan.Pair{streetplan.P(30, 50), streetplan.P(30, 53)})
	require.Len(t, seeds, 2)
	major, minor := pl.Run(seeds, nil, nil)
	assert.Len(t, major, 1)
	assert.Empty(t, minor)
	c := major[0]
	require.GreaterOrEqual(t, len(c), 2)
	assert.Equal(t, streetplan.P(30, 50), c[0].Position)
}

func TestRunKeepsPreviousCurves(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pl, err := NewPlanner(uniformField(t, 100), smallParams(), streetplan.P(50, 50))
	require.NoError(t, err)
	previous := []hermite.Curve{{
		{Position: streetplan.P(0, 50)},
		{Position: streetplan.P(100, 50)},
	}}
	seeds := pl.Prioritize([]streetplan.Pair{streetplan.P(30, 52), streetplan.P(10, 80)})
	major, _ := pl.Run(seeds, previous, nil)
	require.Len(t, major, 1, "seed near previous road must not produce a road")
	assert.Equal(t, streetplan.P(10, 80), major[0][0].Position)
	require.Len(t, previous, 1)
	assert.Len(t, previous[0], 2)
}

func TestRoadEndingNearPreviousRoadSurvives(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	params := smallParams()
	params.Separation = 5
	pl, err := NewPlanner(uniformField(t, 100), params, streetplan.P(50, 50))
	require.NoError(t, err)
	previous := []hermite.Curve{{
		{Position: streetplan.P(70.5, 0)},
		{Position: streetplan.P(70.5, 100)},
	}}
	seeds := pl.Prioritize([]streetplan.Pair{streetplan.P(50, 50)})
	major, _ := pl.Run(seeds, previous, nil)
	require.Len(t, major, 1)
	c := major[0]
	assert.Equal(t, streetplan.P(50, 50), c[0].Position)
	last := c[len(c)-1].Position
	assert.GreaterOrEqual(t, previous[0].DistanceSquared(last), 25.0)
	assert.Greater(t, last.X(), 65.0, "road cut short")
}

func TestPlannerCity(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	params := DefaultParams()
	params.Iterations = 2
	reg := prometheus.NewRegistry()
	metrics, err := NewMetrics(reg)
	require.NoError(t, err)
	pl, err := NewPlanner(cityField(t), params, streetplan.P(200, 200), WithMetrics(metrics))
	require.NoError(t, err)
	seeds := pl.Prioritize(DefaultSeedPoints())
	require.NotEmpty(t, seeds)
	major, minor := pl.Run(seeds, nil, nil)
	require.NotEmpty(t, major)
	sep := params.Separation
	for i, c := range major {
		require.GreaterOrEqual(t, len(c), 2)
		assert.GreaterOrEqual(t, c.Length(), params.MinLength())
		for j := range i {
			for _, cp := range c {
				d2 := major[j].DistanceSquared(cp.Position)
				assert.GreaterOrEqual(t, d2, sep*sep-1e-6, "curve %d too close to curve %d", i, j)
			}
		}
	}
	for _, c := range minor {
		require.GreaterOrEqual(t, len(c), 2)
	}
	assert.Greater(t, testutil.ToFloat64(metrics.Traces), 0.0)
	accepted := testutil.ToFloat64(metrics.Curves.WithLabelValues(OutcomeAccepted)) +
		testutil.ToFloat64(metrics.Curves.WithLabelValues(OutcomeTruncated))
	assert.Equal(t, float64(len(major)+len(minor)), accepted)
	assert.Greater(t, testutil.ToFloat64(metrics.QueueSize), 0.0)

	connected := pl.Connect(minor, major)
	assert.Len(t, connected, len(minor))
}

func TestMetricsRegistration(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	reg := prometheus.NewRegistry()
	_, err := NewMetrics(reg)
	require.NoError(t, err)
	_, err = NewMetrics(reg)
	assert.Error(t, err, "expected duplicate registration to fail")
	m, err := NewMetrics(nil)
	require.NoError(t, err)
	m.traced(3)
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Traces))
	var none *Metrics
	none.traced(1) // must not panic
	none.curve(OutcomeDropped)
	none.seeded(1, 1)
}
