package grid

import "fmt"

// Cell is a single terrain value. The zero cell is whatever the caller
// decides it means; the container attaches no semantics
type Cell int

// Grid is a flat dense cell container over a range anchored at (0,0).
// It is a convenience terrain layer for callers and demos; the query
// engines only ever see it through callbacks
type Grid struct {
	rg    Range
	cells []Cell
}

// NewGrid returns a w by h grid with all cells zero. Negative sizes are
// treated as zero
func NewGrid(w, h int) *Grid {
	gd := &Grid{}
	gd.Resize(w, h)
	return gd
}

// Bounds returns the grid's range, anchored at (0,0)
func (gd *Grid) Bounds() Range {
	return gd.rg
}

// Size returns the width and height as a point
func (gd *Grid) Size() Point {
	return gd.rg.Size()
}

// Resize changes the grid to w by h, reusing the backing storage when it
// has enough capacity. Cell contents after a resize are unspecified;
// callers are expected to Fill or repopulate
func (gd *Grid) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	gd.rg = Range{Max: Point{w, h}}
	size := w * h
	if cap(gd.cells) < size {
		gd.cells = make([]Cell, size)
		return
	}
	gd.cells = gd.cells[:size]
}

// Contains reports whether p lies inside the grid
func (gd *Grid) Contains(p Point) bool {
	return p.In(gd.rg)
}

// At returns the cell at p. Panics if p is outside the grid
func (gd *Grid) At(p Point) Cell {
	return gd.cells[gd.idx(p)]
}

// Set writes the cell at p. Panics if p is outside the grid
func (gd *Grid) Set(p Point, c Cell) {
	gd.cells[gd.idx(p)] = c
}

// Fill sets every cell to c
func (gd *Grid) Fill(c Cell) {
	for i := range gd.cells {
		gd.cells[i] = c
	}
}

// Count returns the number of cells equal to c
func (gd *Grid) Count(c Cell) int {
	n := 0
	for i := range gd.cells {
		if gd.cells[i] == c {
			n++
		}
	}
	return n
}

// Iter calls fn for every cell in row-major order
func (gd *Grid) Iter(fn func(Point, Cell)) {
	w := gd.rg.Max.X
	for i, c := range gd.cells {
		fn(Point{i % w, i / w}, c)
	}
}

// Map replaces every cell with fn's result in row-major order
func (gd *Grid) Map(fn func(Point, Cell) Cell) {
	w := gd.rg.Max.X
	for i, c := range gd.cells {
		gd.cells[i] = fn(Point{i % w, i / w}, c)
	}
}

func (gd *Grid) idx(p Point) int {
	if !p.In(gd.rg) {
		panic(fmt.Sprintf("grid: point %v outside %v", p, gd.rg))
	}
	return p.Y*gd.rg.Max.X + p.X
}
