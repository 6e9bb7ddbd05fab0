package grid

import "fmt"

// Point is an integer cell position. Value type, compared by value
type Point struct {
	X, Y int
}

// String returns the point formatted as (x,y)
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Shift returns the point translated by (x, y)
func (p Point) Shift(x, y int) Point {
	return Point{p.X + x, p.Y + y}
}

// Add returns the componentwise sum p + q
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns the componentwise difference p - q
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Mul returns the point scaled by k
func (p Point) Mul(k int) Point {
	return Point{p.X * k, p.Y * k}
}

// Div returns the point divided by k, truncated toward zero
func (p Point) Div(k int) Point {
	return Point{p.X / k, p.Y / k}
}

// In reports whether the point lies inside rg
func (p Point) In(rg Range) bool {
	return p.X >= rg.Min.X && p.X < rg.Max.X && p.Y >= rg.Min.Y && p.Y < rg.Max.Y
}

// Range is a half-open rectangle of cells: Min included, Max excluded.
// A range with Min.X >= Max.X or Min.Y >= Max.Y contains no cells
type Range struct {
	Min, Max Point
}

// NewRange returns the range covering both corners, whichever order the
// coordinates are given in
func NewRange(x0, y0, x1, y1 int) Range {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return Range{Min: Point{x0, y0}, Max: Point{x1, y1}}
}

// String returns the range formatted as (x0,y0)-(x1,y1)
func (rg Range) String() string {
	return fmt.Sprintf("%v-%v", rg.Min, rg.Max)
}

// Size returns the width and height as a point
func (rg Range) Size() Point {
	return rg.Max.Sub(rg.Min)
}

// Empty reports whether the range contains no cells
func (rg Range) Empty() bool {
	return rg.Min.X >= rg.Max.X || rg.Min.Y >= rg.Max.Y
}

// Eq reports whether the ranges cover the same cells. All empty ranges
// are equal to each other
func (rg Range) Eq(r Range) bool {
	if rg.Empty() && r.Empty() {
		return true
	}
	return rg == r
}

// Contains reports whether p lies inside the range
func (rg Range) Contains(p Point) bool {
	return p.In(rg)
}

// Overlaps reports whether the ranges share at least one cell
func (rg Range) Overlaps(r Range) bool {
	return !rg.Intersect(r).Empty()
}

// Intersect returns the largest range contained in both. The result is
// empty when they do not overlap
func (rg Range) Intersect(r Range) Range {
	if r.Min.X > rg.Min.X {
		rg.Min.X = r.Min.X
	}
	if r.Min.Y > rg.Min.Y {
		rg.Min.Y = r.Min.Y
	}
	if r.Max.X < rg.Max.X {
		rg.Max.X = r.Max.X
	}
	if r.Max.Y < rg.Max.Y {
		rg.Max.Y = r.Max.Y
	}
	if rg.Empty() {
		return Range{}
	}
	return rg
}

// Union returns the smallest range containing both
func (rg Range) Union(r Range) Range {
	if rg.Empty() {
		return r
	}
	if r.Empty() {
		return rg
	}
	if r.Min.X < rg.Min.X {
		rg.Min.X = r.Min.X
	}
	if r.Min.Y < rg.Min.Y {
		rg.Min.Y = r.Min.Y
	}
	if r.Max.X > rg.Max.X {
		rg.Max.X = r.Max.X
	}
	if r.Max.Y > rg.Max.Y {
		rg.Max.Y = r.Max.Y
	}
	return rg
}

// Add returns the range translated by p
func (rg Range) Add(p Point) Range {
	return Range{Min: rg.Min.Add(p), Max: rg.Max.Add(p)}
}

// Sub returns the range translated by -p
func (rg Range) Sub(p Point) Range {
	return Range{Min: rg.Min.Sub(p), Max: rg.Max.Sub(p)}
}

// Shift returns the range with each coordinate offset independently
func (rg Range) Shift(x0, y0, x1, y1 int) Range {
	rg = Range{Min: rg.Min.Shift(x0, y0), Max: rg.Max.Shift(x1, y1)}
	if rg.Empty() {
		return Range{}
	}
	return rg
}

// Line returns the sub-range covering row y of the range, counted from
// Min.Y. Empty when y is out of bounds
func (rg Range) Line(y int) Range {
	if rg.Min.Shift(0, y).In(rg) {
		rg.Min.Y += y
		rg.Max.Y = rg.Min.Y + 1
		return rg
	}
	return Range{}
}

// Lines returns the sub-range covering rows y0 up to but excluding y1
func (rg Range) Lines(y0, y1 int) Range {
	nrg := rg
	nrg.Min.Y = rg.Min.Y + y0
	nrg.Max.Y = rg.Min.Y + y1
	return rg.Intersect(nrg)
}

// Column returns the sub-range covering column x of the range, counted
// from Min.X. Empty when x is out of bounds
func (rg Range) Column(x int) Range {
	if rg.Min.Shift(x, 0).In(rg) {
		rg.Min.X += x
		rg.Max.X = rg.Min.X + 1
		return rg
	}
	return Range{}
}

// Columns returns the sub-range covering columns x0 up to but excluding x1
func (rg Range) Columns(x0, x1 int) Range {
	nrg := rg
	nrg.Min.X = rg.Min.X + x0
	nrg.Max.X = rg.Min.X + x1
	return rg.Intersect(nrg)
}

// Iter calls fn for every cell of the range in row-major order
func (rg Range) Iter(fn func(Point)) {
	for y := rg.Min.Y; y < rg.Max.Y; y++ {
		for x := rg.Min.X; x < rg.Max.X; x++ {
			fn(Point{x, y})
		}
	}
}
