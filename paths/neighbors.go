package paths

import "github.com/lixenwraith/spatial/grid"

// Offsets clockwise from north. Cardinal first so All keeps orthogonal
// steps ahead of diagonal ones at equal rank
var (
	cardinalOffsets = [4]grid.Point{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}}
	diagonalOffsets = [4]grid.Point{{X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
)

// Neighbors builds neighbor lists for the capability interfaces. The
// returned slice is an internal buffer reused by the next call, so it
// must be consumed before calling again
type Neighbors struct {
	ps []grid.Point
}

// All returns p's eight neighbors satisfying keep, cardinal before
// diagonal
func (nb *Neighbors) All(p grid.Point, keep func(grid.Point) bool) []grid.Point {
	nb.ps = nb.ps[:0]
	for _, off := range cardinalOffsets {
		q := p.Add(off)
		if keep(q) {
			nb.ps = append(nb.ps, q)
		}
	}
	for _, off := range diagonalOffsets {
		q := p.Add(off)
		if keep(q) {
			nb.ps = append(nb.ps, q)
		}
	}
	return nb.ps
}

// Cardinal returns p's four orthogonal neighbors satisfying keep
func (nb *Neighbors) Cardinal(p grid.Point, keep func(grid.Point) bool) []grid.Point {
	nb.ps = nb.ps[:0]
	for _, off := range cardinalOffsets {
		q := p.Add(off)
		if keep(q) {
			nb.ps = append(nb.ps, q)
		}
	}
	return nb.ps
}

// Diagonal returns p's four diagonal neighbors satisfying keep
func (nb *Neighbors) Diagonal(p grid.Point, keep func(grid.Point) bool) []grid.Point {
	nb.ps = nb.ps[:0]
	for _, off := range diagonalOffsets {
		q := p.Add(off)
		if keep(q) {
			nb.ps = append(nb.ps, q)
		}
	}
	return nb.ps
}

// DistanceManhattan returns |dx| + |dy|, the exact step count under
// 4-way movement on an open grid
func DistanceManhattan(p, q grid.Point) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

// DistanceChebyshev returns max(|dx|, |dy|), the exact step count under
// 8-way movement on an open grid
func DistanceChebyshev(p, q grid.Point) int {
	dx := abs(p.X - q.X)
	dy := abs(p.Y - q.Y)
	if dx > dy {
		return dx
	}
	return dy
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
