package fov

import (
	"testing"

	"github.com/lixenwraith/spatial/grid"
)

// boxLighter propagates light at cost 1 per step and treats '#' cells
// as fully opaque
type boxLighter struct {
	rg    grid.Range
	walls map[grid.Point]bool
	max   int
}

func parseLighter(rows []string, max int) *boxLighter {
	bl := &boxLighter{walls: make(map[grid.Point]bool), max: max}
	w := 0
	for y, row := range rows {
		if len(row) > w {
			w = len(row)
		}
		for x, r := range row {
			if r == '#' {
				bl.walls[grid.Point{X: x, Y: y}] = true
			}
		}
	}
	bl.rg = grid.NewRange(0, 0, w, len(rows))
	return bl
}

func (bl *boxLighter) Cost(src, from, to grid.Point) int {
	if bl.walls[to] {
		return -1
	}
	return 1
}

func (bl *boxLighter) MaxCost(src grid.Point) int {
	return bl.max
}

func chebyshev(p, q grid.Point) int {
	dx, dy := abs(p.X-q.X), abs(p.Y-q.Y)
	return max(dx, dy)
}

func TestVisionMapOpenField(t *testing.T) {
	bl := parseLighter([]string{
		"...........",
		"...........",
		"...........",
		"...........",
		"...........",
		"...........",
		"...........",
		"...........",
		"...........",
		"...........",
		"...........",
	}, 3)
	fv := NewFOV(bl.rg)
	src := grid.Point{X: 5, Y: 5}
	nodes := fv.VisionMap(bl, src)
	if len(nodes) != 49 {
		t.Errorf("Expected 49 lighted cells at radius 3, got %d", len(nodes))
	}
	for _, nd := range nodes {
		if want := chebyshev(src, nd.P); nd.Cost != want {
			t.Errorf("Expected cost %d at %v, got %d", want, nd.P, nd.Cost)
		}
	}
	bl.rg.Iter(func(p grid.Point) {
		c, ok := fv.At(p)
		if d := chebyshev(src, p); d <= 3 {
			if !ok || c != d {
				t.Errorf("Expected cost %d at %v, got %d lit %v", d, p, c, ok)
			}
		} else if ok {
			t.Errorf("Expected %v beyond the budget to be dark", p)
		}
	})
}

func TestVisionMapWallShadow(t *testing.T) {
	bl := parseLighter([]string{
		".......",
		"...#...",
		".......",
		".......",
	}, 10)
	fv := NewFOV(bl.rg)
	fv.VisionMap(bl, grid.Point{X: 3, Y: 0})

	if _, ok := fv.At(grid.Point{X: 3, Y: 1}); ok {
		t.Error("Expected the wall itself to stay dark")
	}
	if _, ok := fv.At(grid.Point{X: 3, Y: 2}); ok {
		t.Error("Expected the cell behind the wall to be dark")
	}
	if _, ok := fv.At(grid.Point{X: 3, Y: 3}); ok {
		t.Error("Expected the axis shadow to extend")
	}
	if _, ok := fv.At(grid.Point{X: 2, Y: 2}); !ok {
		t.Error("Expected the cell beside the shadow to be lit")
	}
	if _, ok := fv.At(grid.Point{X: 0, Y: 2}); !ok {
		t.Error("Expected a far cell off the shadow to be lit")
	}
}

func TestVisionMapCornerSource(t *testing.T) {
	bl := parseLighter([]string{
		".....",
		".....",
		".....",
		".....",
		".....",
	}, 10)
	fv := NewFOV(bl.rg)
	src := grid.Point{X: 0, Y: 0}
	nodes := fv.VisionMap(bl, src)
	if len(nodes) != 25 {
		t.Errorf("Expected all 25 cells lit from the corner, got %d", len(nodes))
	}
	if c, ok := fv.At(src); !ok || c != 0 {
		t.Errorf("Expected the source lit at cost 0, got %d lit %v", c, ok)
	}
	if c, ok := fv.At(grid.Point{X: 4, Y: 4}); !ok || c != 4 {
		t.Errorf("Expected cost 4 at the far corner, got %d lit %v", c, ok)
	}
}

func TestVisionMapSourceOutside(t *testing.T) {
	bl := parseLighter([]string{"...", "..."}, 5)
	fv := NewFOV(bl.rg)
	nodes := fv.VisionMap(bl, grid.Point{X: -1, Y: 0})
	if len(nodes) != 0 {
		t.Errorf("Expected no lighted cells, got %d", len(nodes))
	}
	bl.rg.Iter(func(p grid.Point) {
		if _, ok := fv.At(p); ok {
			t.Errorf("Expected %v to be dark", p)
		}
	})
}

func TestLightMapMinUnion(t *testing.T) {
	bl := parseLighter([]string{
		".........",
		".........",
		".........",
	}, 3)
	fv := NewFOV(bl.rg)
	a := grid.Point{X: 0, Y: 1}
	b := grid.Point{X: 8, Y: 1}
	nodes := fv.LightMap(bl, []grid.Point{a, b})

	for _, nd := range nodes {
		if want := min(chebyshev(a, nd.P), chebyshev(b, nd.P)); nd.Cost != want {
			t.Errorf("Expected cost %d at %v, got %d", want, nd.P, nd.Cost)
		}
	}
	bl.rg.Iter(func(p grid.Point) {
		want := min(chebyshev(a, p), chebyshev(b, p))
		c, ok := fv.At(p)
		if want <= 3 {
			if !ok || c != want {
				t.Errorf("Expected cost %d at %v, got %d lit %v", want, p, c, ok)
			}
		} else if ok {
			t.Errorf("Expected %v outside both budgets to be dark", p)
		}
	})
}

func TestLightMapSourcesOutsideSkipped(t *testing.T) {
	bl := parseLighter([]string{"....."}, 2)
	fv := NewFOV(bl.rg)
	nodes := fv.LightMap(bl, []grid.Point{{X: -3, Y: 0}, {X: 0, Y: 0}})
	if len(nodes) != 3 {
		t.Errorf("Expected 3 cells from the in-range source, got %d", len(nodes))
	}
}

func TestVisionMapFog(t *testing.T) {
	bl := parseLighter([]string{"....."}, 4)
	fog := &fogLighter{boxLighter: bl, fog: map[grid.Point]bool{{X: 2, Y: 0}: true}}
	fv := NewFOV(bl.rg)
	fv.VisionMap(fog, grid.Point{X: 0, Y: 0})

	tests := []struct {
		p    grid.Point
		cost int
		lit  bool
	}{
		{grid.Point{X: 0, Y: 0}, 0, true},
		{grid.Point{X: 1, Y: 0}, 1, true},
		{grid.Point{X: 2, Y: 0}, 4, true}, // Fog costs 3 to enter
		{grid.Point{X: 3, Y: 0}, 0, false},
		{grid.Point{X: 4, Y: 0}, 0, false},
	}
	for _, tc := range tests {
		c, ok := fv.At(tc.p)
		if ok != tc.lit {
			t.Errorf("Expected lit %v at %v, got %v", tc.lit, tc.p, ok)
			continue
		}
		if ok && c != tc.cost {
			t.Errorf("Expected cost %d at %v, got %d", tc.cost, tc.p, c)
		}
	}
}

// fogLighter charges 3 to enter fog cells on top of boxLighter walls
type fogLighter struct {
	*boxLighter
	fog map[grid.Point]bool
}

func (fl *fogLighter) Cost(src, from, to grid.Point) int {
	if fl.walls[to] {
		return -1
	}
	if fl.fog[to] {
		return 3
	}
	return 1
}

func TestFromAndRay(t *testing.T) {
	bl := parseLighter([]string{
		".......",
		".......",
		".......",
	}, 6)
	fv := NewFOV(bl.rg)
	src := grid.Point{X: 1, Y: 1}
	fv.VisionMap(bl, src)

	to := grid.Point{X: 6, Y: 1}
	ray := fv.Ray(bl, to)
	if len(ray) == 0 {
		t.Fatal("Expected a ray to a lit cell")
	}
	if ray[0].P != src || ray[0].Cost != 0 {
		t.Errorf("Expected ray to start at the source, got %v", ray[0])
	}
	if last := ray[len(ray)-1]; last.P != to {
		t.Errorf("Expected ray to end at %v, got %v", to, last.P)
	}
	for i := 1; i < len(ray); i++ {
		if chebyshev(ray[i-1].P, ray[i].P) != 1 {
			t.Errorf("Expected adjacent ray steps, got %v to %v", ray[i-1].P, ray[i].P)
		}
		if ray[i].Cost <= ray[i-1].Cost {
			t.Errorf("Expected increasing costs along the ray, got %d after %d", ray[i].Cost, ray[i-1].Cost)
		}
	}

	from, ok := fv.From(bl, to)
	if !ok {
		t.Fatal("Expected a previous cell for a lit non-source")
	}
	if from != ray[len(ray)-2] {
		t.Errorf("Expected %v one step back, got %v", ray[len(ray)-2], from)
	}
	if _, ok := fv.From(bl, src); ok {
		t.Error("Expected no previous cell for the source")
	}
	if srcRay := fv.Ray(bl, src); len(srcRay) != 1 || srcRay[0].P != src {
		t.Errorf("Expected single-cell ray at the source, got %v", srcRay)
	}
}

func TestRayUnlit(t *testing.T) {
	bl := parseLighter([]string{"........."}, 2)
	fv := NewFOV(bl.rg)
	fv.VisionMap(bl, grid.Point{X: 0, Y: 0})
	if ray := fv.Ray(bl, grid.Point{X: 8, Y: 0}); ray != nil {
		t.Errorf("Expected nil ray to an unlit cell, got %v", ray)
	}
	if _, ok := fv.From(bl, grid.Point{X: 8, Y: 0}); ok {
		t.Error("Expected no previous cell for an unlit cell")
	}
}

func TestFOVSetRangeInvalidates(t *testing.T) {
	bl := parseLighter([]string{"....", "...."}, 5)
	fv := NewFOV(bl.rg)
	src := grid.Point{X: 0, Y: 0}
	fv.VisionMap(bl, src)
	if _, ok := fv.At(src); !ok {
		t.Fatal("Expected the source to be lit")
	}

	fv.SetRange(bl.rg)
	if _, ok := fv.At(src); ok {
		t.Error("Expected all cells dark after SetRange")
	}
	if ray := fv.Ray(bl, src); ray != nil {
		t.Errorf("Expected nil ray after SetRange, got %v", ray)
	}
}

func TestFOVQueriesPanicOutsideRange(t *testing.T) {
	fv := NewFOV(grid.NewRange(0, 0, 3, 3))
	out := grid.Point{X: 3, Y: 3}
	tests := []struct {
		name string
		fn   func()
	}{
		{"At", func() { fv.At(out) }},
		{"From", func() { fv.From(nil, out) }},
		{"Ray", func() { fv.Ray(nil, out) }},
		{"Visible", func() { fv.Visible(out) }},
	}
	for _, tc := range tests {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Expected %s to panic for out-of-range point", tc.name)
				}
			}()
			tc.fn()
		}()
	}
}
