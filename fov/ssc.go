package fov

import "github.com/lixenwraith/spatial/grid"

// --- Symmetric shadow casting ---

// Slope fractions keep exact integer arithmetic; den stays positive
type fraction struct {
	num, den int
}

// sscRow is one pending row of a quadrant scan: a depth and the slope
// interval still lit at that depth
type sscRow struct {
	depth      int
	start, end fraction
}

// Quadrant axes: world = src + depth*dv + col*cv
var sscQuadrants = [4]struct{ dv, cv grid.Point }{
	{dv: grid.Point{Y: -1}, cv: grid.Point{X: 1}},
	{dv: grid.Point{X: 1}, cv: grid.Point{Y: 1}},
	{dv: grid.Point{Y: 1}, cv: grid.Point{X: 1}},
	{dv: grid.Point{X: -1}, cv: grid.Point{Y: 1}},
}

// SSCVisionMap computes binary visibility around src out to maxRange
// (Chebyshev) with symmetric shadow casting: a floor cell is visible
// iff its center lies inside an unblocked slope interval, which makes
// visibility mutual between floor cells at equal range, and walls are
// revealed whenever any interval reaches them. Without diags, a floor
// cell whose two source-side orthogonal neighbors are both blocked is
// treated as opaque and stays dark, so sight cannot thread a diagonal
// wall gap that 4-way movement cannot thread. The returned slice is
// reused by the next SSC query; read cells with Visible afterwards
func (fov *FOV) SSCVisionMap(src grid.Point, maxRange int, passable func(grid.Point) bool, diags bool) []grid.Point {
	fov.sscGen++
	fov.visibles = fov.visibles[:0]
	fov.sscFrom(src, maxRange, passable, diags)
	return fov.visibles
}

// SSCLightMap computes the union of per-source SSC vision maps.
// Sources outside the range light nothing. The returned slice is
// reused by the next SSC query
func (fov *FOV) SSCLightMap(srcs []grid.Point, maxRange int, passable func(grid.Point) bool, diags bool) []grid.Point {
	fov.sscGen++
	fov.visibles = fov.visibles[:0]
	for _, src := range srcs {
		fov.sscFrom(src, maxRange, passable, diags)
	}
	return fov.visibles
}

// Visible reports whether p was revealed by the last SSCVisionMap or
// SSCLightMap. Panics if p is outside the range
func (fov *FOV) Visible(p grid.Point) bool {
	return fov.ssc[fov.idx(p)] == fov.sscGen
}

func (fov *FOV) sscFrom(src grid.Point, maxRange int, passable func(grid.Point) bool, diags bool) {
	if !src.In(fov.rg) || maxRange < 0 {
		return
	}
	fov.sscReveal(src)
	for _, q := range sscQuadrants {
		fov.sscScan(src, q.dv, q.cv, maxRange, passable, diags)
	}
}

func (fov *FOV) sscReveal(p grid.Point) {
	i := fov.idx(p)
	if fov.ssc[i] != fov.sscGen {
		fov.ssc[i] = fov.sscGen
		fov.visibles = append(fov.visibles, p)
	}
}

// sscScan runs one quadrant with an explicit row stack. Blocked runs
// narrow the interval handed to the next depth; a row whose interval
// pinches shut simply pushes nothing
func (fov *FOV) sscScan(src, dv, cv grid.Point, maxRange int, passable func(grid.Point) bool, diags bool) {
	const (
		tileNone = iota
		tileFloor
		tileWall
	)
	pass := func(p grid.Point) bool {
		return p.In(fov.rg) && passable(p)
	}

	fov.sscStack = fov.sscStack[:0]
	fov.sscStack = append(fov.sscStack, sscRow{
		depth: 1,
		start: fraction{num: -1, den: 1},
		end:   fraction{num: 1, den: 1},
	})
	for len(fov.sscStack) > 0 {
		row := fov.sscStack[len(fov.sscStack)-1]
		fov.sscStack = fov.sscStack[:len(fov.sscStack)-1]
		if row.depth > maxRange {
			continue
		}
		minCol := roundTiesUp(row.depth, row.start)
		maxCol := roundTiesDown(row.depth, row.end)
		prev := tileNone
		for col := minCol; col <= maxCol; col++ {
			p := src.Add(dv.Mul(row.depth)).Add(cv.Mul(col))
			floor := pass(p)
			pinched := floor && !diags && fov.sscPinched(p, src, pass)
			blocking := !floor || pinched
			if (blocking || sscSymmetric(row, col)) && p.In(fov.rg) && !pinched {
				fov.sscReveal(p)
			}
			if prev == tileWall && !blocking {
				row.start = sscSlope(row.depth, col)
			}
			if prev == tileFloor && blocking {
				fov.sscStack = append(fov.sscStack, sscRow{
					depth: row.depth + 1,
					start: row.start,
					end:   sscSlope(row.depth, col),
				})
			}
			if blocking {
				prev = tileWall
			} else {
				prev = tileFloor
			}
		}
		if prev == tileFloor {
			fov.sscStack = append(fov.sscStack, sscRow{
				depth: row.depth + 1,
				start: row.start,
				end:   row.end,
			})
		}
	}
}

// sscPinched reports whether sight into p squeezes through a diagonal
// wall gap: both orthogonal neighbors of p on the source side are
// blocked. On-axis cells have one such neighbor and are never pinched
func (fov *FOV) sscPinched(p, src grid.Point, pass func(grid.Point) bool) bool {
	dx := src.X - p.X
	dy := src.Y - p.Y
	if dx == 0 || dy == 0 {
		return false
	}
	return !pass(grid.Point{X: p.X + sign(dx), Y: p.Y}) &&
		!pass(grid.Point{X: p.X, Y: p.Y + sign(dy)})
}

// sscSymmetric reports whether the cell center at col lies inside the
// row's slope interval
func sscSymmetric(row sscRow, col int) bool {
	return col*row.start.den >= row.depth*row.start.num &&
		col*row.end.den <= row.depth*row.end.num
}

// sscSlope returns the slope of the near edge of the cell at
// (depth, col), the dividing line between it and its lower neighbor
func sscSlope(depth, col int) fraction {
	return fraction{num: 2*col - 1, den: 2 * depth}
}

// roundTiesUp returns depth*f rounded to the nearest integer, halves up
func roundTiesUp(depth int, f fraction) int {
	return divFloor(2*depth*f.num+f.den, 2*f.den)
}

// roundTiesDown returns depth*f rounded to the nearest integer, halves
// down
func roundTiesDown(depth int, f fraction) int {
	return divCeil(2*depth*f.num-f.den, 2*f.den)
}

// divFloor divides rounding toward negative infinity; b must be
// positive
func divFloor(a, b int) int {
	q := a / b
	if r := a % b; r < 0 {
		q--
	}
	return q
}

// divCeil divides rounding toward positive infinity; b must be
// positive
func divCeil(a, b int) int {
	q := a / b
	if r := a % b; r > 0 {
		q++
	}
	return q
}
