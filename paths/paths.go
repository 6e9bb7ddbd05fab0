// Package paths implements grid pathfinding over a bounded rectangular
// range: multi-source Dijkstra and breadth-first distance maps, A*,
// Jump Point Search in 4-way and 8-way movement modes, and connected
// component labeling.
//
// A PathRange owns all per-cell scratch storage. Queries never clear
// that storage; each query bumps a generation counter and stale cells
// are fenced off by their stamp, so repeated queries inside a turn
// loop cost no per-cell reset work. Movement policy stays with the
// caller through small capability interfaces.
package paths

import (
	"fmt"

	"github.com/lixenwraith/spatial/grid"
)

// Unreachable is returned by distance queries for cells no source
// reached. Reserved above any real accumulated cost
const Unreachable = 1<<30 - 1

// Pather provides neighbor expansion. The policy decides connectivity
// and blocking; only returned neighbors are expanded
type Pather interface {
	Neighbors(p grid.Point) []grid.Point
}

// WeightedPather adds non-negative per-edge costs for Dijkstra maps
type WeightedPather interface {
	Pather
	Cost(from, to grid.Point) int
}

// AstarPather adds an admissible estimate for A*. An estimate that
// overshoots the real remaining cost voids the shortest-path guarantee
type AstarPather interface {
	WeightedPather
	Estimation(from, to grid.Point) int
}

// Node is a cell paired with its accumulated cost in a distance map
type Node struct {
	P    grid.Point
	Cost int
}

// --- Cache owner ---

// node is per-cell search bookkeeping. Valid only while gen matches the
// owning cache's current generation
type node struct {
	parent int // Flat index of the predecessor, -1 for sources
	g      int // Accumulated cost from the nearest source
	f      int // Heap rank, g plus heuristic where one applies
	gen    int
	open   bool // Still in the frontier, not yet settled
}

type bfsNode struct {
	dist int
	gen  int
}

type ccNode struct {
	label int
	gen   int
}

// PathRange owns the per-cell caches for one rectangular range. Methods
// must not be called concurrently; results stay valid until the next
// query on the same owner
type PathRange struct {
	rg   grid.Range
	w    int
	size int

	pair    []node // A* and JPS single-pair bookkeeping
	pairGen int
	dij     []node
	dijGen  int
	bfs     []bfsNode
	bfsGen  int
	cc      []ccNode
	ccGen   int

	// Reusable buffers so steady-state queries allocate nothing
	heap    minHeap
	fifo    []int
	nodes   []Node
	points  []grid.Point
	ccStack []int
}

// NewPathRange creates a cache owner for the given range. Storage for
// the whole area is allocated up front so impossible sizes fail here
// rather than mid-query
func NewPathRange(rg grid.Range) *PathRange {
	pr := &PathRange{}
	pr.SetRange(rg)
	return pr
}

// SetRange rebinds the owner to a new range. Backing storage is reused
// whenever the new area fits its capacity, and every sub-cache is
// invalidated by a generation bump, so no values survive the move even
// when the shape is unchanged
func (pr *PathRange) SetRange(rg grid.Range) {
	if rg.Empty() {
		rg = grid.Range{}
	}
	pr.rg = rg
	sz := rg.Size()
	pr.w = sz.X
	pr.size = sz.X * sz.Y
	pr.pair = growNodes(pr.pair, pr.size)
	pr.dij = growNodes(pr.dij, pr.size)
	if cap(pr.bfs) < pr.size {
		pr.bfs = make([]bfsNode, pr.size)
	} else {
		pr.bfs = pr.bfs[:pr.size]
	}
	if cap(pr.cc) < pr.size {
		pr.cc = make([]ccNode, pr.size)
	} else {
		pr.cc = pr.cc[:pr.size]
	}
	pr.pairGen++
	pr.dijGen++
	pr.bfsGen++
	pr.ccGen++
}

func growNodes(ns []node, size int) []node {
	if cap(ns) < size {
		return make([]node, size)
	}
	return ns[:size]
}

// Range returns the currently bound range
func (pr *PathRange) Range() grid.Range {
	return pr.rg
}

// Contains reports whether p lies inside the bound range
func (pr *PathRange) Contains(p grid.Point) bool {
	return p.In(pr.rg)
}

// idx maps an in-range point to its flat cell index. Out-of-range
// points are a caller error and panic rather than clamp
func (pr *PathRange) idx(p grid.Point) int {
	if !p.In(pr.rg) {
		panic(fmt.Sprintf("paths: point %v outside range %v", p, pr.rg))
	}
	return (p.Y-pr.rg.Min.Y)*pr.w + (p.X - pr.rg.Min.X)
}

// ptAt is the inverse of idx
func (pr *PathRange) ptAt(i int) grid.Point {
	return grid.Point{X: pr.rg.Min.X + i%pr.w, Y: pr.rg.Min.Y + i/pr.w}
}
