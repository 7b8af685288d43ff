package status

import (
	"iter"
	"math/rand/v2"

	"github.com/npillmayer/streetplan"
)

type kind uint8

const (
	kindStart kind = iota
	kindValue
	kindEnd
)

// Nodes live in an arena and link to each other by arena index.
// Index 0 is the start sentinel, index 1 the end sentinel.
const (
	startNode = 0
	endNode   = 1
	noNode    = -1
)

type node struct {
	kind  kind
	value int
	next  []int // next[l] is the successor on level l
	prev  []int // prev[l] is the predecessor on level l
}

// SkipList is a randomized, doubly linked, multi-level list of segment handles,
// ordered by a height-dependent comparator. It is bounded by start and end
// sentinels existing on every level.
//
// The number of levels may grow with insertions, but never shrinks.
type SkipList struct {
	nodes []node
	free  []int // recycled arena slots
	rng   *rand.Rand
	len   int
}

// New creates an empty skip list. rng is the source of randomness for level
// selection; a fixed seed makes the structure deterministic. If rng is nil, a
// randomly seeded generator is used.
func New(rng *rand.Rand) *SkipList {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &SkipList{
		nodes: []node{
			{kind: kindStart, next: []int{endNode}, prev: []int{noNode}},
			{kind: kindEnd, next: []int{noNode}, prev: []int{startNode}},
		},
		rng: rng,
	}
}

// Len returns the number of values stored.
func (sl *SkipList) Len() int {
	return sl.len
}

// Height returns the number of levels of the list.
func (sl *SkipList) Height() int {
	return len(sl.nodes[startNode].next)
}

// compare implements the height-dependent order of node n relative to element:
// start < values < end. Values are ordered by
// the x-coordinate of their segments at the given height. Distinct values with
// equal or undefined (NaN) x-coordinates are treated as "less".
func (sl *SkipList) compare(n int, element int, segments []streetplan.Segment, height float64) int {
	nd := &sl.nodes[n]
	switch nd.kind {
	case kindStart:
		return -1
	case kindEnd:
		return 1
	}
	if nd.value == element {
		return 0
	}
	if segments[nd.value].XAt(height) > segments[element].XAt(height) {
		return 1
	}
	return -1
}

// traverse finds the last node not greater than element, starting at the
// top level and descending whenever the next step would overshoot.
// It returns the predecessor of element on every level, level 0 first.
func (sl *SkipList) traverse(element int, segments []streetplan.Segment, height float64) []int {
	h := sl.Height()
	path := make([]int, h)
	cur, level := startNode, h-1
	for {
		next := sl.nodes[cur].next[level]
		if sl.compare(next, element, segments, height) > 0 {
			path[level] = cur
			if level == 0 {
				return path
			}
			level--
		} else {
			cur = next
		}
	}
}

// Insert adds element, a handle into segments, at its position for the given
// sweep height. It returns the values immediately before and after the new node,
// if there are any; callers use them to detect newly adjacent geometry.
//
// The new node is linked into a uniformly random number of levels between 1 and
// the current height. If it reaches the top level, a coin flip decides whether
// the list grows by one additional level containing just this node.
func (sl *SkipList) Insert(element int, segments []streetplan.Segment, height float64) (prev, next int, hasPrev, hasNext bool) {
	path := sl.traverse(element, segments, height)
	maxLevels := len(path)
	levels := 1 + sl.rng.IntN(maxLevels)
	n := sl.alloc(element, levels)
	for l := 0; l < levels; l++ {
		p := path[l]
		s := sl.nodes[p].next[l]
		sl.nodes[n].prev[l] = p
		sl.nodes[n].next[l] = s
		sl.nodes[p].next[l] = n
		sl.nodes[s].prev[l] = n
	}
	if levels == maxLevels && sl.rng.IntN(2) == 1 {
		sl.nodes[startNode].next = append(sl.nodes[startNode].next, n)
		sl.nodes[endNode].prev = append(sl.nodes[endNode].prev, n)
		sl.nodes[n].next = append(sl.nodes[n].next, endNode)
		sl.nodes[n].prev = append(sl.nodes[n].prev, startNode)
		tracer().Debugf("skip list grows to height %d", sl.Height())
	}
	sl.len++
	prev, hasPrev = sl.valueOf(sl.nodes[n].prev[0])
	next, hasNext = sl.valueOf(sl.nodes[n].next[0])
	return
}

// Remove deletes element, evaluating positions at the given sweep height.
// It returns false if element could not be found, which is not an error.
func (sl *SkipList) Remove(element int, segments []streetplan.Segment, height float64) bool {
	path := sl.traverse(element, segments, height)
	n := path[0]
	// Values tied with element at this height are passed over by traverse;
	// walk back over them.
	x := segments[element].XAt(height)
	for n != startNode && sl.nodes[n].value != element {
		other := segments[sl.nodes[n].value].XAt(height)
		if !(other == x || isNaN(other) || isNaN(x)) {
			break
		}
		n = sl.nodes[n].prev[0]
	}
	if n == startNode || sl.nodes[n].value != element {
		return false
	}
	nd := &sl.nodes[n]
	for l := range nd.next {
		p, s := nd.prev[l], nd.next[l]
		sl.nodes[p].next[l] = s
		sl.nodes[s].prev[l] = p
	}
	sl.release(n)
	sl.len--
	return true
}

// Iter returns the stored values on the given level in ascending order. Level 0
// enumerates all values; levels beyond the list's height are empty. The
// sequence is lazy and may be ranged over repeatedly.
func (sl *SkipList) Iter(level int) iter.Seq[int] {
	return func(yield func(int) bool) {
		if level < 0 || level >= sl.Height() {
			return
		}
		for n := sl.nodes[startNode].next[level]; n != endNode; n = sl.nodes[n].next[level] {
			if !yield(sl.nodes[n].value) {
				return
			}
		}
	}
}

// Values returns all stored values in ascending order.
func (sl *SkipList) Values() []int {
	values := make([]int, 0, sl.len)
	for v := range sl.Iter(0) {
		values = append(values, v)
	}
	return values
}

func (sl *SkipList) valueOf(n int) (int, bool) {
	if sl.nodes[n].kind != kindValue {
		return 0, false
	}
	return sl.nodes[n].value, true
}

func (sl *SkipList) alloc(value int, levels int) int {
	nd := node{
		kind:  kindValue,
		value: value,
		next:  make([]int, levels),
		prev:  make([]int, levels),
	}
	if k := len(sl.free); k > 0 {
		n := sl.free[k-1]
		sl.free = sl.free[:k-1]
		sl.nodes[n] = nd
		return n
	}
	sl.nodes = append(sl.nodes, nd)
	return len(sl.nodes) - 1
}

func (sl *SkipList) release(n int) {
	sl.nodes[n] = node{kind: kindValue, value: noNode}
	sl.free = append(sl.free, n)
}

func isNaN(x float64) bool {
	return x != x
}
