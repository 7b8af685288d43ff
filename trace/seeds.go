package trace

import (
	"cmp"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/emirpasic/gods/queues/priorityqueue"
	"github.com/npillmayer/streetplan"
	"github.com/npillmayer/streetplan/tensor"
)

// SeedPoint is a start position for tracing a road.
type SeedPoint struct {
	Position    streetplan.Pair
	Priority    float64 // higher priorities are traced first
	FollowMajor bool    // the family of the road which emitted the seed
}

func (s SeedPoint) String() string {
	return fmt.Sprintf("seed%v[%.4g]", s.Position, s.Priority)
}

// --- Seed queue ------------------------------------------------------------

type queued struct {
	seed SeedPoint
	seq  int // insertion order, breaks priority ties
}

// SeedQueue orders seeds by descending priority. Seeds of equal priority are
// ordered by insertion. SeedQueue is not safe for concurrent use.
type SeedQueue struct {
	pq  *priorityqueue.Queue
	seq int
}

// NewSeedQueue creates a queue holding seeds.
func NewSeedQueue(seeds ...SeedPoint) *SeedQueue {
	q := &SeedQueue{
		pq: priorityqueue.NewWith(func(a, b any) int {
			qa, qb := a.(queued), b.(queued)
			if c := cmp.Compare(qb.seed.Priority, qa.seed.Priority); c != 0 {
				return c
			}
			return cmp.Compare(qa.seq, qb.seq)
		}),
	}
	q.Push(seeds...)
	return q
}

// Push adds seeds to the queue.
func (q *SeedQueue) Push(seeds ...SeedPoint) {
	for _, s := range seeds {
		q.pq.Enqueue(queued{seed: s, seq: q.seq})
		q.seq++
	}
}

// Pop removes the seed with the highest priority.
func (q *SeedQueue) Pop() (SeedPoint, bool) {
	v, ok := q.pq.Dequeue()
	if !ok {
		return SeedPoint{}, false
	}
	return v.(queued).seed, true
}

// Len returns the number of queued seeds.
func (q *SeedQueue) Len() int {
	return q.pq.Size()
}

// Ordered returns all queued seeds, highest priority first. The queue is left unchanged.
func (q *SeedQueue) Ordered() []SeedPoint {
	entries := make([]queued, 0, q.pq.Size())
	for v, ok := q.pq.Dequeue(); ok; v, ok = q.pq.Dequeue() {
		entries = append(entries, v.(queued))
	}
	seeds := make([]SeedPoint, len(entries))
	for i, e := range entries {
		seeds[i] = e.seed
		q.pq.Enqueue(e)
	}
	return seeds
}

// --- Initial seed points ---------------------------------------------------

var defaultSeedPoints = [...][2]float64{
	{391, 113}, {10, 470}, {382, 472}, {61, 152}, {413, 291},
	{191, 298}, {0, 303}, {147, 0}, {304, 294}, {298, 41},
	{230, 509}, {502, 416}, {127, 205}, {285, 162}, {459, 40},
	{299, 436}, {121, 472}, {508, 493}, {470, 151}, {214, 413},
	{364, 355}, {171, 63}, {355, 191}, {274, 355}, {66, 336},
	{230, 65}, {30, 31}, {223, 12}, {193, 146}, {447, 224},
}

// DefaultSeedPoints returns a fixed, well spread set of 30 points on a 512×512 grid.
func DefaultSeedPoints() []streetplan.Pair {
	pts := make([]streetplan.Pair, len(defaultSeedPoints))
	for i, p := range defaultSeedPoints {
		pts[i] = streetplan.P(p[0], p[1])
	}
	return pts
}

// Candidates is the number of random candidates DistributePoints draws per point.
const Candidates = 10

// DistributePoints spreads n points with integer coordinates over a grid of the
// given size. Each point is the one farthest away from the points chosen before,
// out of Candidates random candidates.
func DistributePoints(n int, size int, rng *rand.Rand) []streetplan.Pair {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if n <= 0 || size <= 0 {
		return nil
	}
	points := make([]streetplan.Pair, 0, n)
	for len(points) < n {
		var best streetplan.Pair
		bestDist := -1.0
		for range Candidates {
			c := streetplan.P(float64(rng.IntN(size)), float64(rng.IntN(size)))
			if d := nearestPoint(c, points); d > bestDist {
				best, bestDist = c, d
			}
		}
		points = append(points, best)
	}
	return points
}

func nearestPoint(c streetplan.Pair, points []streetplan.Pair) float64 {
	d2 := math.Inf(1)
	for _, p := range points {
		d2 = math.Min(d2, (p - c).NormSq())
	}
	return math.Sqrt(d2)
}

// --- Priorities ------------------------------------------------------------

// Prioritizer rates seed positions. Positions close to the city center or close
// to a degenerate point of the field get higher priorities.
type Prioritizer struct {
	Field  *tensor.Field
	Center streetplan.Pair
	Index  *tensor.DegenerateIndex
}

// NewPrioritizer creates a Prioritizer for a field with a city center.
func NewPrioritizer(field *tensor.Field, center streetplan.Pair) *Prioritizer {
	return &Prioritizer{
		Field:  field,
		Center: center,
		Index:  tensor.NewDegenerateIndex(field, tensor.DefaultSectorCount),
	}
}

// Priority returns exp(−|center − p|) + exp(−d), with d the distance of p to the
// nearest degenerate sector. Positions where the smoothed field is degenerate
// cannot be traced and are reported with false.
func (pr *Prioritizer) Priority(p streetplan.Pair) (float64, bool) {
	if pr.Field.EvaluateSmoothed(p).IsDegenerate() {
		return 0, false
	}
	return math.Exp(-(pr.Center - p).Norm()) + math.Exp(-pr.Index.Distance(p)), true
}

// Prioritize rates points, dropping the ones which cannot be traced.
func (pr *Prioritizer) Prioritize(points []streetplan.Pair, major bool) []SeedPoint {
	seeds := make([]SeedPoint, 0, len(points))
	for _, p := range points {
		if prio, ok := pr.Priority(p); ok {
			seeds = append(seeds, SeedPoint{Position: p, Priority: prio, FollowMajor: major})
		} else {
			tracer().Debugf("dropping seed %v at degenerate position", p)
		}
	}
	return seeds
}
