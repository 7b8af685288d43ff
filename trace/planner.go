package trace

import (
	"fmt"
	"slices"

	"github.com/npillmayer/streetplan"
	"github.com/npillmayer/streetplan/fit"
	"github.com/npillmayer/streetplan/hermite"
	"github.com/npillmayer/streetplan/polygon"
	"github.com/npillmayer/streetplan/tensor"
	"golang.org/x/sync/errgroup"
)

// Planner grows a network of major and minor roads over a tensor field.
type Planner struct {
	field       *tensor.Field
	params      Params
	center      streetplan.Pair
	separation  fit.Separation
	prioritizer *Prioritizer
	outline     *polygon.Polygon
	boundary    Region
	metrics     *Metrics
}

// Option configures a Planner.
type Option func(*Planner)

// WithWorkers sets the size of the worker pool, overriding Params.Workers.
// Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("trace: WithWorkers(%d): need at least one worker", n))
	}
	return func(pl *Planner) {
		pl.params.Workers = n
	}
}

// WithMetrics makes the planner record its work in m. Panics if m is nil.
func WithMetrics(m *Metrics) Option {
	if m == nil {
		panic("trace: WithMetrics(nil)")
	}
	return func(pl *Planner) {
		pl.metrics = m
	}
}

// WithBoundary restricts roads to the part of the grid inside outline.
// Panics if outline is nil.
func WithBoundary(outline *polygon.Polygon) Option {
	if outline == nil {
		panic("trace: WithBoundary(nil)")
	}
	return func(pl *Planner) {
		pl.outline = outline
	}
}

// WithSeparation replaces the separation function derived from Params.
// Panics if sep is nil.
func WithSeparation(sep fit.Separation) Option {
	if sep == nil {
		panic("trace: WithSeparation(nil)")
	}
	return func(pl *Planner) {
		pl.separation = sep
	}
}

// NewPlanner creates a planner for a field, with the city center at center.
// The grid size of params has to match the size of the field.
func NewPlanner(field *tensor.Field, params Params, center streetplan.Pair, opts ...Option) (*Planner, error) {
	if field == nil {
		return nil, fmt.Errorf("%w: no tensor field", ErrInvalidParams)
	}
	pl := &Planner{
		field:  field,
		params: params,
		center: center,
	}
	for _, opt := range opts {
		opt(pl)
	}
	if err := pl.params.Validate(); err != nil {
		return nil, err
	}
	if pl.params.GridSize != field.Size() {
		return nil, fmt.Errorf("%w: grid size %g does not match field size %g",
			ErrInvalidParams, pl.params.GridSize, field.Size())
	}
	if pl.separation == nil {
		pl.separation = pl.params.SeparationFrom(center)
	}
	if pl.outline != nil {
		grid := polygon.Box(streetplan.Origin, streetplan.P(field.Size(), field.Size()))
		region := polygon.Intersection(pl.outline, grid)
		if region.IsEmpty() {
			return nil, fmt.Errorf("%w: boundary does not overlap the grid", ErrInvalidParams)
		}
		pl.boundary = region
	}
	pl.prioritizer = NewPrioritizer(field, center)
	tracer().Infof("planner on %gx%g grid: %d design elements, decay %g, boundary %v",
		field.Size(), field.Size(), len(field.Elements()), field.Decay(), pl.outline != nil)
	return pl, nil
}

// Params returns the planner's parameters.
func (pl *Planner) Params() Params {
	return pl.params
}

// Prioritize turns points into seeds for major roads, dropping points which
// cannot be traced.
func (pl *Planner) Prioritize(points []streetplan.Pair) []SeedPoint {
	return pl.prioritizer.Prioritize(points, true)
}

// Run performs Params.Iterations rounds of tracing. Even rounds trace major roads,
// odd rounds minor roads. Each round traces every queued seed, highest priority
// first; seeds stay queued for later rounds. Roads are kept apart from roads of
// the same family: majorPrev and minorPrev are roads accepted before.
//
// Run returns the roads added to each family. majorPrev and minorPrev are not modified.
func (pl *Planner) Run(seeds []SeedPoint, majorPrev, minorPrev []hermite.Curve) (major, minor []hermite.Curve) {
	queue := NewSeedQueue(seeds...)
	allMajor, allMinor := slices.Clip(majorPrev), slices.Clip(minorPrev)
	for i := range pl.params.Iterations {
		followMajor := i%2 == 0
		accepted := &allMinor
		if followMajor {
			accepted = &allMajor
		}
		curves, newSeeds := pl.iterate(queue.Ordered(), *accepted, followMajor)
		*accepted = append(*accepted, curves...)
		queue.Push(newSeeds...)
		pl.metrics.seeded(len(newSeeds), queue.Len())
		tracer().Infof("iteration %d (major=%v): %d curves accepted, %d seeds queued",
			i, followMajor, len(curves), queue.Len())
	}
	return allMajor[len(majorPrev):], allMinor[len(minorPrev):]
}

// iterate performs a single round of tracing, fitting and clipping.
func (pl *Planner) iterate(seeds []SeedPoint, accepted []hermite.Curve, followMajor bool) ([]hermite.Curve, []SeedPoint) {
	positions := make([]streetplan.Pair, len(seeds))
	for i, s := range seeds {
		positions[i] = s.Position
	}
	tr := &Tracer{
		Field:      pl.field,
		H:          pl.params.H,
		Separation: pl.separation,
		Major:      followMajor,
		MaxLength:  pl.params.MaxLength,
		Previous:   accepted,
		Boundary:   pl.boundary,
		Workers:    1,
	}
	outputs := tr.TraceAll(positions, pl.params.Workers)
	pl.metrics.traced(len(outputs))
	smoothed := pl.fitAll(outputs)
	emitted := 0
	for _, sc := range smoothed {
		emitted += len(sc.Seeds)
	}
	clipped := fit.ClipPass(smoothed, accepted, pl.separation, pl.params.MinLength(), pl.params.Workers)
	curves := make([]hermite.Curve, len(clipped))
	var newSeeds []SeedPoint
	for i, c := range clipped {
		curves[i] = c.Curve
		if c.Truncated {
			pl.metrics.curve(OutcomeTruncated)
		} else {
			pl.metrics.curve(OutcomeAccepted)
		}
		newSeeds = append(newSeeds, pl.prioritizer.Prioritize(c.Seeds, followMajor)...)
	}
	for range len(smoothed) - len(clipped) {
		pl.metrics.curve(OutcomeDropped)
	}
	tracer().Debugf("seeds before clipping: %d, after: %d", emitted, len(newSeeds))
	return curves, newSeeds
}

// fitAll fits traces to curves in parallel. Empty traces are skipped; the order
// of the remaining ones is kept.
func (pl *Planner) fitAll(outputs []Output) []fit.SmoothedCurve {
	smoothing := pl.params.Smoothing()
	fitted := make([]*fit.SmoothedCurve, len(outputs))
	var g errgroup.Group
	g.SetLimit(pl.params.Workers)
	for i, out := range outputs {
		if out.IsEmpty() {
			continue
		}
		g.Go(func() error {
			sc, err := smoothing.Curve(out.Path, out.Seeds)
			if err != nil {
				tracer().Errorf("trace #%d: %v", i, err)
				return nil
			}
			fitted[i] = &sc
			return nil
		})
	}
	_ = g.Wait() // failures are logged and skipped
	smoothed := make([]fit.SmoothedCurve, 0, len(outputs))
	for _, sc := range fitted {
		if sc != nil {
			smoothed = append(smoothed, *sc)
		}
	}
	return smoothed
}

// Connect snaps the endpoints of curves onto nearby roads of targets, closing
// gaps of up to Params.Connection.
func (pl *Planner) Connect(curves, targets []hermite.Curve) []hermite.Curve {
	return fit.MergeEndings(curves, targets, pl.params.Connection)
}
