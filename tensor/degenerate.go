package tensor

import (
	"math"
	"sort"
	"sync"

	"github.com/npillmayer/streetplan"
)

// DefaultSectorCount is the number of sectors per grid side used by
// NewDegenerateIndex if no positive count is given.
const DefaultSectorCount = 16

type sectorState uint8

const (
	sectorUnknown sectorState = iota
	sectorClean
	sectorDegenerate
)

// DegenerateIndex estimates the distance from a position to the nearest degenerate
// point of a field. The grid is partitioned into N×N sectors; sectors are probed
// nearest-first and the distance to the center of the first sector holding a
// degenerate sample is returned.
//
// Results are exact at sector granularity only: the distance is measured to
// sector centers, not to the degenerate sample itself. More sectors improve
// precision at the cost of performance.
//
// Sectors are scanned lazily and the outcome is remembered. A DegenerateIndex is
// safe for concurrent use.
type DegenerateIndex struct {
	field      *Field
	n          int
	sectorSize float64
	mx         sync.Mutex
	states     []sectorState
}

// NewDegenerateIndex creates an index over field f with n×n sectors.
func NewDegenerateIndex(f *Field, n int) *DegenerateIndex {
	if n <= 0 {
		n = DefaultSectorCount
	}
	return &DegenerateIndex{
		field:      f,
		n:          n,
		sectorSize: f.size / float64(n),
		states:     make([]sectorState, n*n),
	}
}

// SectorCenter returns the center of sector (sx, sy).
func (idx *DegenerateIndex) SectorCenter(sx, sy int) streetplan.Pair {
	return streetplan.P(
		(float64(sx)+0.5)*idx.sectorSize,
		(float64(sy)+0.5)*idx.sectorSize,
	)
}

// Distance returns the distance from p to the center of the nearest sector
// containing a degenerate point, or +Inf if the field has none.
func (idx *DegenerateIndex) Distance(p streetplan.Pair) float64 {
	order := make([]int, idx.n*idx.n)
	dist := make([]float64, len(order))
	for i := range order {
		order[i] = i
		dist[i] = (idx.SectorCenter(i/idx.n, i%idx.n) - p).NormSq()
	}
	sort.SliceStable(order, func(a, b int) bool {
		return dist[order[a]] < dist[order[b]]
	})
	for _, s := range order {
		if idx.hasDegeneratePoint(s) {
			return math.Sqrt(dist[s])
		}
	}
	return math.Inf(1)
}

func (idx *DegenerateIndex) hasDegeneratePoint(s int) bool {
	idx.mx.Lock()
	state := idx.states[s]
	idx.mx.Unlock()
	if state == sectorUnknown {
		state = sectorClean
		if idx.scan(s/idx.n, s%idx.n) {
			state = sectorDegenerate
		}
		idx.mx.Lock()
		idx.states[s] = state
		idx.mx.Unlock()
	}
	return state == sectorDegenerate
}

// scan samples a sector at unit spacing, starting from its lower left corner.
func (idx *DegenerateIndex) scan(sx, sy int) bool {
	x0 := float64(sx) * idx.sectorSize
	y0 := float64(sy) * idx.sectorSize
	steps := int(math.Ceil(idx.sectorSize))
	for i := 0; i < steps; i++ {
		for j := 0; j < steps; j++ {
			p := streetplan.P(x0+float64(i), y0+float64(j))
			if idx.field.EvaluateSmoothed(p).IsDegenerate() {
				tracer().Debugf("sector (%d,%d) has degenerate point at %v", sx, sy, p)
				return true
			}
		}
	}
	return false
}
