// Package fov computes fields of view over a bounded rectangular
// range. Two engines share one cache owner: a ray caster that
// accumulates per-step light costs through a Lighter, for weighted
// visibility with falloff and partial transparency, and a symmetric
// shadow caster for plain visible/not-visible answers. Both keep the
// same generation-stamp discipline as the paths package: queries never
// clear per-cell storage, they bump a counter and let stale stamps
// fence off old values.
package fov

import (
	"fmt"

	"github.com/lixenwraith/spatial/grid"
)

// Lighter is the capability FOV queries light through. Cost returns
// the cost of propagating from from to an adjacent cell to for the
// given source; a negative cost marks to as fully opaque. MaxCost
// returns the total cost budget for the source, its vision range
type Lighter interface {
	Cost(src, from, to grid.Point) int
	MaxCost(src grid.Point) int
}

// LightNode is a visible cell paired with its accumulated light cost
type LightNode struct {
	P    grid.Point
	Cost int
}

// rayNode is per-cell ray bookkeeping. Valid only while gen matches
// the owner's current ray generation; src and parent identify the
// winning source and the previous cell on its ray
type rayNode struct {
	cost   int
	src    int
	parent int
	gen    int
}

type costNode struct {
	cost int
	gen  int
}

// FOV owns the per-cell caches for one rectangular range. Methods must
// not be called concurrently; results stay valid until the next query
// of the same kind on the same owner. Ray and shadow-casting results
// live in separate sub-caches, so one FOV can hold both at once
type FOV struct {
	rg   grid.Range
	w    int
	size int

	ray     []rayNode
	rayGen  int
	scratch []costNode // per-source accumulation, so unions stay exact
	scrGen  int
	srcs    []grid.Point
	lighted []LightNode

	ssc      []int // visibility stamps
	sscGen   int
	visibles []grid.Point
	sscStack []sscRow

	rays []LightNode
}

// NewFOV creates a cache owner for the given range. Storage for the
// whole area is allocated up front so impossible sizes fail here
// rather than mid-query
func NewFOV(rg grid.Range) *FOV {
	fov := &FOV{}
	fov.SetRange(rg)
	return fov
}

// SetRange rebinds the owner to a new range. Backing storage is reused
// whenever the new area fits its capacity, and every sub-cache is
// invalidated by a generation bump, so no values survive the move even
// when the shape is unchanged
func (fov *FOV) SetRange(rg grid.Range) {
	if rg.Empty() {
		rg = grid.Range{}
	}
	fov.rg = rg
	sz := rg.Size()
	fov.w = sz.X
	fov.size = sz.X * sz.Y
	if cap(fov.ray) < fov.size {
		fov.ray = make([]rayNode, fov.size)
	} else {
		fov.ray = fov.ray[:fov.size]
	}
	if cap(fov.scratch) < fov.size {
		fov.scratch = make([]costNode, fov.size)
	} else {
		fov.scratch = fov.scratch[:fov.size]
	}
	if cap(fov.ssc) < fov.size {
		fov.ssc = make([]int, fov.size)
	} else {
		fov.ssc = fov.ssc[:fov.size]
	}
	fov.rayGen++
	fov.scrGen++
	fov.sscGen++
}

// Range returns the currently bound range
func (fov *FOV) Range() grid.Range {
	return fov.rg
}

// Contains reports whether p lies inside the bound range
func (fov *FOV) Contains(p grid.Point) bool {
	return p.In(fov.rg)
}

func (fov *FOV) idx(p grid.Point) int {
	if !p.In(fov.rg) {
		panic(fmt.Sprintf("fov: point %v outside range %v", p, fov.rg))
	}
	return (p.Y-fov.rg.Min.Y)*fov.w + (p.X - fov.rg.Min.X)
}

func (fov *FOV) ptAt(i int) grid.Point {
	return grid.Point{X: fov.rg.Min.X + i%fov.w, Y: fov.rg.Min.Y + i/fov.w}
}

// --- Ray vision maps ---

// VisionMap computes the lighted cells around src: every cell whose
// accumulated ray cost stays within lt.MaxCost(src), walls excluded
// once lt reports opacity. The returned nodes are reused by the next
// vision or light map on this owner; read cells with At afterwards
func (fov *FOV) VisionMap(lt Lighter, src grid.Point) []LightNode {
	fov.srcs = append(fov.srcs[:0], src)
	return fov.lightMap(lt)
}

// LightMap computes the union of per-source vision maps, keeping the
// minimum cost per cell. Sources outside the range light nothing. The
// returned nodes are reused by the next vision or light map
func (fov *FOV) LightMap(lt Lighter, srcs []grid.Point) []LightNode {
	fov.srcs = append(fov.srcs[:0], srcs...)
	return fov.lightMap(lt)
}

func (fov *FOV) lightMap(lt Lighter) []LightNode {
	fov.rayGen++
	fov.lighted = fov.lighted[:0]
	for i, src := range fov.srcs {
		if !src.In(fov.rg) {
			continue
		}
		fov.castSource(lt, src, i)
	}
	for i, ln := range fov.lighted {
		fov.lighted[i].Cost = fov.ray[fov.idx(ln.P)].cost
	}
	return fov.lighted
}

// castSource propagates light from one source in expanding rings.
// Each ring cell derives its cost from its best already-lit parent one
// ring in: the diagonal step back toward the source, and off the
// diagonals also the step back along the dominant axis. Accumulation
// reads the per-source scratch, never the merged map, so one source's
// cheap cells cannot corrupt another's rays
func (fov *FOV) castSource(lt Lighter, src grid.Point, srci int) {
	fov.scrGen++
	maxCost := lt.MaxCost(src)
	i := fov.idx(src)
	fov.scratch[i] = costNode{cost: 0, gen: fov.scrGen}
	fov.mergeRay(i, 0, srci, -1)

	radius := maxRadius(fov.rg, src)
	for d := 1; d <= radius; d++ {
		lit := 0
		x0 := max(src.X-d, fov.rg.Min.X)
		x1 := min(src.X+d, fov.rg.Max.X-1)
		y0 := max(src.Y-d, fov.rg.Min.Y)
		y1 := min(src.Y+d, fov.rg.Max.Y-1)
		if y := src.Y - d; y >= fov.rg.Min.Y {
			for x := x0; x <= x1; x++ {
				if fov.castCell(lt, src, srci, grid.Point{X: x, Y: y}, maxCost) {
					lit++
				}
			}
		}
		if y := src.Y + d; y < fov.rg.Max.Y {
			for x := x0; x <= x1; x++ {
				if fov.castCell(lt, src, srci, grid.Point{X: x, Y: y}, maxCost) {
					lit++
				}
			}
		}
		if x := src.X - d; x >= fov.rg.Min.X {
			for y := max(y0, src.Y-d+1); y <= min(y1, src.Y+d-1); y++ {
				if fov.castCell(lt, src, srci, grid.Point{X: x, Y: y}, maxCost) {
					lit++
				}
			}
		}
		if x := src.X + d; x < fov.rg.Max.X {
			for y := max(y0, src.Y-d+1); y <= min(y1, src.Y+d-1); y++ {
				if fov.castCell(lt, src, srci, grid.Point{X: x, Y: y}, maxCost) {
					lit++
				}
			}
		}
		if lit == 0 {
			break
		}
	}
}

// castCell lights one cell from its best parent and reports whether it
// is lit for this source
func (fov *FOV) castCell(lt Lighter, src grid.Point, srci int, p grid.Point, maxCost int) bool {
	dx := p.X - src.X
	dy := p.Y - src.Y
	sx := sign(dx)
	sy := sign(dy)

	parent := grid.Point{X: p.X - sx, Y: p.Y - sy}
	pi := fov.idx(parent)
	best := -1
	if fov.scratch[pi].gen == fov.scrGen {
		best = fov.scratch[pi].cost
	}
	if adx, ady := abs(dx), abs(dy); adx != ady && adx != 0 && ady != 0 {
		q := grid.Point{X: p.X - sx, Y: p.Y}
		if ady > adx {
			q = grid.Point{X: p.X, Y: p.Y - sy}
		}
		qi := fov.idx(q)
		if fov.scratch[qi].gen == fov.scrGen && (best < 0 || fov.scratch[qi].cost < best) {
			best = fov.scratch[qi].cost
			parent, pi = q, qi
		}
	}
	if best < 0 {
		return false
	}
	step := lt.Cost(src, parent, p)
	if step < 0 {
		return false
	}
	c := best + step
	if c > maxCost {
		return false
	}
	i := fov.idx(p)
	fov.scratch[i] = costNode{cost: c, gen: fov.scrGen}
	fov.mergeRay(i, c, srci, pi)
	return true
}

// mergeRay folds one source's cell cost into the union map, keeping
// the cheapest source and its parent link
func (fov *FOV) mergeRay(i, cost, srci, parent int) {
	nd := &fov.ray[i]
	if nd.gen != fov.rayGen {
		*nd = rayNode{cost: cost, src: srci, parent: parent, gen: fov.rayGen}
		fov.lighted = append(fov.lighted, LightNode{P: fov.ptAt(i)})
		return
	}
	if cost < nd.cost {
		*nd = rayNode{cost: cost, src: srci, parent: parent, gen: fov.rayGen}
	}
}

// At returns the accumulated cost computed for p by the last VisionMap
// or LightMap. Panics if p is outside the range
func (fov *FOV) At(p grid.Point) (int, bool) {
	nd := &fov.ray[fov.idx(p)]
	if nd.gen != fov.rayGen {
		return 0, false
	}
	return nd.cost, true
}

// From returns the previous cell on the ray reaching to, one step back
// toward its source. Reports false when to is not lit or is itself a
// source. Panics if to is outside the range
func (fov *FOV) From(lt Lighter, to grid.Point) (LightNode, bool) {
	nd := &fov.ray[fov.idx(to)]
	if nd.gen != fov.rayGen || nd.parent < 0 {
		return LightNode{}, false
	}
	return LightNode{P: fov.ptAt(nd.parent), Cost: fov.ray[nd.parent].cost}, true
}

// Ray returns the propagation chain reaching to, walked parent by
// parent back to a source, ordered source first and to last. After a
// LightMap the walk always descends in cost, so it may finish at a
// nearer source than the one that lit to. Returns nil when to is not
// lit. The returned slice is reused by the next Ray call. Panics if to
// is outside the range
func (fov *FOV) Ray(lt Lighter, to grid.Point) []LightNode {
	i := fov.idx(to)
	if fov.ray[i].gen != fov.rayGen {
		return nil
	}
	fov.rays = fov.rays[:0]
	for ; i >= 0; i = fov.ray[i].parent {
		fov.rays = append(fov.rays, LightNode{P: fov.ptAt(i), Cost: fov.ray[i].cost})
	}
	for i, j := 0, len(fov.rays)-1; i < j; i, j = i+1, j-1 {
		fov.rays[i], fov.rays[j] = fov.rays[j], fov.rays[i]
	}
	return fov.rays
}

// maxRadius returns the Chebyshev distance from src to the farthest
// cell of rg
func maxRadius(rg grid.Range, src grid.Point) int {
	r := src.X - rg.Min.X
	if d := rg.Max.X - 1 - src.X; d > r {
		r = d
	}
	if d := src.Y - rg.Min.Y; d > r {
		r = d
	}
	if d := rg.Max.Y - 1 - src.Y; d > r {
		r = d
	}
	return r
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}

