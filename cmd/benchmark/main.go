package main

import (
	"flag"
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"github.com/lixenwraith/spatial/fov"
	"github.com/lixenwraith/spatial/grid"
	"github.com/lixenwraith/spatial/paths"
)

var (
	size   = flag.Int("size", 64, "Map side length")
	walls  = flag.Int("walls", 15, "Wall percentage")
	radius = flag.Int("radius", 20, "Vision radius")
	iters  = flag.Int("iters", 500, "Iterations per query")
	seed   = flag.Int64("seed", 1, "Terrain seed")
)

const (
	cellFloor grid.Cell = iota
	cellWall
)

type terrain struct {
	gd    *grid.Grid
	nb    paths.Neighbors
	diags bool
}

func newTerrain(side, wallPct int, seed int64) *terrain {
	rng := rand.New(rand.NewSource(seed))
	t := &terrain{gd: grid.NewGrid(side, side), diags: true}
	t.gd.Map(func(p grid.Point, c grid.Cell) grid.Cell {
		if rng.Intn(100) < wallPct {
			return cellWall
		}
		return cellFloor
	})

	// Cleared lanes keep the corner endpoints connected
	bounds := t.gd.Bounds()
	bounds.Line(0).Iter(func(p grid.Point) { t.gd.Set(p, cellFloor) })
	bounds.Column(side - 1).Iter(func(p grid.Point) { t.gd.Set(p, cellFloor) })

	return t
}

func (t *terrain) passable(p grid.Point) bool {
	return t.gd.Contains(p) && t.gd.At(p) == cellFloor
}

func (t *terrain) Neighbors(p grid.Point) []grid.Point {
	if !t.diags {
		return t.nb.Cardinal(p, t.passable)
	}
	return t.nb.All(p, func(q grid.Point) bool {
		if !t.passable(q) {
			return false
		}
		if q.X != p.X && q.Y != p.Y {
			return t.passable(grid.Point{X: q.X, Y: p.Y}) && t.passable(grid.Point{X: p.X, Y: q.Y})
		}
		return true
	})
}

func (t *terrain) Cost(from, to grid.Point) int {
	return 1
}

func (t *terrain) Estimation(from, to grid.Point) int {
	if t.diags {
		return paths.DistanceChebyshev(from, to)
	}
	return paths.DistanceManhattan(from, to)
}

type lighter struct {
	t      *terrain
	radius int
}

func (lt *lighter) Cost(src, from, to grid.Point) int {
	if from != src && lt.t.gd.At(from) == cellWall {
		return lt.radius
	}
	return 1
}

func (lt *lighter) MaxCost(src grid.Point) int {
	return lt.radius
}

// measure runs fn once for its result count, then times iters more
// calls and prints the per-op average
func measure(name string, iters int, fn func() int) {
	if iters < 1 {
		iters = 1
	}
	n := fn()

	start := time.Now()
	for i := 0; i < iters; i++ {
		fn()
	}
	per := time.Since(start) / time.Duration(iters)

	fmt.Printf("  %-12s %10v/op  %6d cells\n", name+":", per, n)
}

func main() {
	flag.Parse()

	side := *size
	t := newTerrain(side, *walls, *seed)
	pr := paths.NewPathRange(t.gd.Bounds())
	fv := fov.NewFOV(t.gd.Bounds())
	lt := &lighter{t: t, radius: *radius}

	from := grid.Point{X: 0, Y: 0}
	to := grid.Point{X: side - 1, Y: side - 1}
	center := grid.Point{X: side / 2, Y: side / 2}
	t.gd.Set(center, cellFloor)

	quads := []grid.Point{
		{X: side / 4, Y: side / 4},
		{X: 3 * side / 4, Y: side / 4},
		{X: side / 4, Y: 3 * side / 4},
		{X: 3 * side / 4, Y: 3 * side / 4},
	}
	for _, p := range quads {
		t.gd.Set(p, cellFloor)
	}

	fmt.Printf("Benchmark Results:\n")
	fmt.Printf("  Terrain:     %dx%d, %d%% walls, seed %d, %d iterations\n",
		side, side, *walls, *seed, *iters)

	srcs := []grid.Point{center}
	measure("Dijkstra", *iters, func() int {
		return len(pr.DijkstraMap(t, srcs, paths.Unreachable))
	})
	measure("BFS", *iters, func() int {
		return len(pr.BFSMap(t, srcs, paths.Unreachable))
	})
	measure("A*", *iters, func() int {
		return len(pr.AstarPath(t, from, to))
	})

	var buf []grid.Point
	measure("JPS 8-way", *iters, func() int {
		buf = pr.JPSPath(buf[:0], from, to, t.passable, true)
		return len(buf)
	})
	measure("JPS 4-way", *iters, func() int {
		buf = pr.JPSPath(buf[:0], from, to, t.passable, false)
		return len(buf)
	})

	measure("CC all", *iters, func() int {
		pr.CCMapAll(t)
		return side * side
	})
	measure("CC flood", *iters, func() int {
		return len(pr.CCMap(t, from))
	})

	measure("ray FOV", *iters, func() int {
		return len(fv.VisionMap(lt, center))
	})
	measure("ray FOV x4", *iters, func() int {
		return len(fv.LightMap(lt, quads))
	})
	measure("shadow FOV", *iters, func() int {
		return len(fv.SSCVisionMap(center, *radius, t.passable, true))
	})

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	fmt.Printf("  Total Alloc:  %d bytes\n", m.TotalAlloc)
	fmt.Printf("  Mallocs:      %d\n", m.Mallocs)
}
