package fov

import (
	"math/rand"
	"testing"

	"github.com/lixenwraith/spatial/grid"
)

func parseWalls(rows []string) (grid.Range, map[grid.Point]bool) {
	walls := make(map[grid.Point]bool)
	w := 0
	for y, row := range rows {
		if len(row) > w {
			w = len(row)
		}
		for x, r := range row {
			if r == '#' {
				walls[grid.Point{X: x, Y: y}] = true
			}
		}
	}
	return grid.NewRange(0, 0, w, len(rows)), walls
}

func passFunc(rg grid.Range, walls map[grid.Point]bool) func(grid.Point) bool {
	return func(p grid.Point) bool {
		return p.In(rg) && !walls[p]
	}
}

func TestSSCVisionMapSmallRoom(t *testing.T) {
	rg, walls := parseWalls([]string{
		".....",
		".....",
		".....",
		".....",
		".....",
	})
	fv := NewFOV(rg)
	visible := fv.SSCVisionMap(grid.Point{X: 2, Y: 2}, 4, passFunc(rg, walls), true)
	if len(visible) != 25 {
		t.Errorf("Expected all 25 cells visible, got %d", len(visible))
	}
	rg.Iter(func(p grid.Point) {
		if !fv.Visible(p) {
			t.Errorf("Expected %v to be visible", p)
		}
	})
}

func TestSSCWalledRoom(t *testing.T) {
	rg, walls := parseWalls([]string{
		"#######",
		"#.....#",
		"#.....#",
		"#.....#",
		"#.....#",
		"#.....#",
		"#######",
	})
	fv := NewFOV(rg)
	visible := fv.SSCVisionMap(grid.Point{X: 3, Y: 3}, 10, passFunc(rg, walls), true)
	if len(visible) != 49 {
		t.Errorf("Expected the whole room including walls visible, got %d", len(visible))
	}
}

func TestSSCPillarShadow(t *testing.T) {
	rg, walls := parseWalls([]string{
		".....",
		".....",
		"..#..",
		".....",
		".....",
	})
	fv := NewFOV(rg)
	fv.SSCVisionMap(grid.Point{X: 0, Y: 2}, 10, passFunc(rg, walls), true)

	if !fv.Visible(grid.Point{X: 2, Y: 2}) {
		t.Error("Expected the pillar itself to be visible")
	}
	if fv.Visible(grid.Point{X: 3, Y: 2}) {
		t.Error("Expected the cell behind the pillar to be hidden")
	}
	if fv.Visible(grid.Point{X: 4, Y: 2}) {
		t.Error("Expected the shadow to extend behind the pillar")
	}
	if !fv.Visible(grid.Point{X: 3, Y: 0}) {
		t.Error("Expected a cell off the shadow line to be visible")
	}
	if !fv.Visible(grid.Point{X: 3, Y: 4}) {
		t.Error("Expected a cell off the shadow line to be visible")
	}
}

func TestSSCDiagonalGap(t *testing.T) {
	rg, walls := parseWalls([]string{
		".#..",
		"#...",
		"....",
		"....",
	})
	src := grid.Point{X: 0, Y: 0}
	fv := NewFOV(rg)

	fv.SSCVisionMap(src, 10, passFunc(rg, walls), true)
	if !fv.Visible(grid.Point{X: 1, Y: 1}) {
		t.Error("Expected sight through the diagonal gap with diagonal movement")
	}
	if !fv.Visible(grid.Point{X: 2, Y: 2}) {
		t.Error("Expected the gap sightline to extend with diagonal movement")
	}

	// Without diagonal movement the gap seals: a cell walled off on both
	// orthogonal sides toward the source stays dark, as does everything
	// sighted only through it
	fv.SSCVisionMap(src, 10, passFunc(rg, walls), false)
	if fv.Visible(grid.Point{X: 1, Y: 1}) {
		t.Error("Expected the pinched cell to be hidden without diagonal movement")
	}
	if fv.Visible(grid.Point{X: 2, Y: 2}) {
		t.Error("Expected no sight past the sealed gap")
	}
	if fv.Visible(grid.Point{X: 2, Y: 1}) {
		t.Error("Expected no sight past the sealed gap")
	}
	if !fv.Visible(grid.Point{X: 1, Y: 0}) {
		t.Error("Expected the adjacent wall to stay visible")
	}
	if !fv.Visible(src) {
		t.Error("Expected the source to stay visible")
	}
}

// Symmetry is the property the scanner is named for: between open
// cells, sight must run both ways or neither way, whichever movement
// mode is in force
func TestSSCSymmetry(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 12; i++ {
		rg := grid.NewRange(0, 0, 12, 12)
		walls := make(map[grid.Point]bool)
		rg.Iter(func(p grid.Point) {
			if rng.Intn(100) < 25+5*(i%3) {
				walls[p] = true
			}
		})
		pass := passFunc(rg, walls)
		var open []grid.Point
		rg.Iter(func(p grid.Point) {
			if pass(p) {
				open = append(open, p)
			}
		})
		diags := i%2 == 0
		maxRange := 24
		if i%4 >= 2 {
			maxRange = 5
		}

		fv := NewFOV(rg)
		vis := make(map[[2]grid.Point]bool)
		for _, a := range open {
			fv.SSCVisionMap(a, maxRange, pass, diags)
			for _, b := range open {
				vis[[2]grid.Point{a, b}] = fv.Visible(b)
			}
		}
		for _, a := range open {
			for _, b := range open {
				if vis[[2]grid.Point{a, b}] != vis[[2]grid.Point{b, a}] {
					t.Fatalf("Map %d (diags %v, range %d): asymmetric sight between %v and %v",
						i, diags, maxRange, a, b)
				}
			}
		}
	}
}

func TestSSCRangeBound(t *testing.T) {
	rg, walls := parseWalls([]string{
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
	})
	fv := NewFOV(rg)
	src := grid.Point{X: 4, Y: 4}
	visible := fv.SSCVisionMap(src, 2, passFunc(rg, walls), true)
	if len(visible) != 25 {
		t.Errorf("Expected 25 cells within range 2, got %d", len(visible))
	}
	for _, p := range visible {
		if d := max(abs(p.X-src.X), abs(p.Y-src.Y)); d > 2 {
			t.Errorf("Expected nothing beyond range 2, got %v", p)
		}
	}

	visible = fv.SSCVisionMap(src, 0, passFunc(rg, walls), true)
	if len(visible) != 1 || visible[0] != src {
		t.Errorf("Expected only the source at range 0, got %v", visible)
	}
	visible = fv.SSCVisionMap(src, -1, passFunc(rg, walls), true)
	if len(visible) != 0 {
		t.Errorf("Expected nothing at negative range, got %v", visible)
	}
}

func TestSSCSourceOutside(t *testing.T) {
	rg, walls := parseWalls([]string{"...", "..."})
	fv := NewFOV(rg)
	visible := fv.SSCVisionMap(grid.Point{X: 5, Y: 5}, 3, passFunc(rg, walls), true)
	if len(visible) != 0 {
		t.Errorf("Expected no visible cells, got %v", visible)
	}
	rg.Iter(func(p grid.Point) {
		if fv.Visible(p) {
			t.Errorf("Expected %v to be hidden", p)
		}
	})
}

func TestSSCLightMapUnion(t *testing.T) {
	rg, walls := parseWalls([]string{
		"....#....",
		"....#....",
		"....#....",
	})
	pass := passFunc(rg, walls)
	fv := NewFOV(rg)
	a := grid.Point{X: 1, Y: 1}
	b := grid.Point{X: 7, Y: 1}

	want := make(map[grid.Point]bool)
	for _, p := range fv.SSCVisionMap(a, 10, pass, true) {
		want[p] = true
	}
	for _, p := range fv.SSCVisionMap(b, 10, pass, true) {
		want[p] = true
	}

	visible := fv.SSCLightMap([]grid.Point{a, b}, 10, pass, true)
	if len(visible) != len(want) {
		t.Errorf("Expected %d cells in the union, got %d", len(want), len(visible))
	}
	for _, p := range visible {
		if !want[p] {
			t.Errorf("Expected %v in some single-source map", p)
		}
	}
	if !fv.Visible(grid.Point{X: 0, Y: 0}) || !fv.Visible(grid.Point{X: 8, Y: 0}) {
		t.Error("Expected cells on both sides of the dividing wall to be visible")
	}
}

func TestSSCIdempotent(t *testing.T) {
	rg, walls := parseWalls([]string{
		"......",
		".#..#.",
		"......",
		"..##..",
		"......",
	})
	pass := passFunc(rg, walls)
	fv := NewFOV(rg)
	src := grid.Point{X: 0, Y: 0}

	first := append([]grid.Point(nil), fv.SSCVisionMap(src, 10, pass, false)...)
	second := fv.SSCVisionMap(src, 10, pass, false)
	if len(first) != len(second) {
		t.Fatalf("Expected %d cells, got %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Expected cell %d to be %v, got %v", i, first[i], second[i])
		}
	}
}

func TestSSCVisibleAfterSetRange(t *testing.T) {
	rg, walls := parseWalls([]string{"....", "...."})
	fv := NewFOV(rg)
	src := grid.Point{X: 0, Y: 0}
	fv.SSCVisionMap(src, 5, passFunc(rg, walls), true)
	if !fv.Visible(src) {
		t.Fatal("Expected the source to be visible")
	}
	fv.SetRange(rg)
	rg.Iter(func(p grid.Point) {
		if fv.Visible(p) {
			t.Errorf("Expected %v to be hidden after SetRange", p)
		}
	})
}
