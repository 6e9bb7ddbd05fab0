package paths

import "github.com/lixenwraith/spatial/grid"

// JPSPath returns a shortest path from from to to inclusive under
// uniform step costs, or nil when no path exists. The passable
// predicate supplies the terrain policy; out-of-range cells are always
// blocked. With diags, movement is 8-way and diagonal steps never cut
// corners (both orthogonal cells beside the step must be open); without
// it, movement is strictly 4-way. The search expands only jump points,
// cells where an optimal path is forced to turn, and the result is
// expanded back to explicit unit steps, so its length always matches an
// A* path over the same terrain. The computed path is appended to path,
// which is truncated first and may be nil
func (pr *PathRange) JPSPath(path []grid.Point, from, to grid.Point, passable func(grid.Point) bool, diags bool) []grid.Point {
	path = path[:0]
	if !from.In(pr.rg) || !to.In(pr.rg) || !passable(from) || !passable(to) {
		return nil
	}
	if from == to {
		return append(path, from)
	}
	pr.pairGen++
	pr.heap.reset()
	s := &jpsSearch{pr: pr, to: to, passable: passable, diags: diags}

	gen := pr.pairGen
	start := pr.idx(from)
	goal := pr.idx(to)
	sn := &pr.pair[start]
	sn.gen = gen
	sn.parent = -1
	sn.g = 0
	sn.open = true
	pr.heap.push(start, s.estimate(from))

	var dirs [8]grid.Point
	for !pr.heap.empty() {
		e := pr.heap.pop()
		nd := &pr.pair[e.idx]
		if !nd.open {
			continue
		}
		nd.open = false
		if e.idx == goal {
			return s.assemble(path, goal)
		}
		p := pr.ptAt(e.idx)
		g := nd.g

		n := s.successorDirs(p, nd.parent, &dirs)
		for _, d := range dirs[:n] {
			jp, dist, ok := s.jump(p, d)
			if !ok {
				continue
			}
			ng := g + dist
			j := pr.idx(jp)
			qn := &pr.pair[j]
			if qn.gen == gen && ng >= qn.g {
				continue
			}
			qn.gen = gen
			qn.parent = e.idx
			qn.g = ng
			qn.open = true
			pr.heap.push(j, ng+s.estimate(jp))
		}
	}
	return nil
}

type jpsSearch struct {
	pr       *PathRange
	to       grid.Point
	passable func(grid.Point) bool
	diags    bool
}

func (s *jpsSearch) pass(p grid.Point) bool {
	return p.In(s.pr.rg) && s.passable(p)
}

func (s *jpsSearch) estimate(p grid.Point) int {
	if s.diags {
		return DistanceChebyshev(p, s.to)
	}
	return DistanceManhattan(p, s.to)
}

// normDir classifies the travel direction from a parent jump point into
// the mode's canonical set: one of 8 unit directions with diags, one of
// the 4 axes without. A 4-way delta touching both axes resolves to its
// dominant axis, vertical on ties, so 4-way pruning can never slip into
// the 8-way rules
func normDir(from, to grid.Point, diags bool) grid.Point {
	d := grid.Point{X: sign(to.X - from.X), Y: sign(to.Y - from.Y)}
	if diags || d.X == 0 || d.Y == 0 {
		return d
	}
	if abs(to.X-from.X) > abs(to.Y-from.Y) {
		return grid.Point{X: d.X}
	}
	return grid.Point{Y: d.Y}
}

// successorDirs writes the pruned direction set for expanding p into
// dirs and returns how many were written. The start cell, with no
// parent, expands every direction of the mode
func (s *jpsSearch) successorDirs(p grid.Point, parent int, dirs *[8]grid.Point) int {
	if parent == -1 {
		copy(dirs[:4], cardinalOffsets[:])
		if !s.diags {
			return 4
		}
		copy(dirs[4:], diagonalOffsets[:])
		return 8
	}
	d := normDir(s.pr.ptAt(parent), p, s.diags)
	n := 0
	dirs[n] = d
	n++
	switch {
	case !s.diags && d.Y != 0:
		// Vertical travel keeps both horizontal turns open
		dirs[n] = grid.Point{X: -1}
		dirs[n+1] = grid.Point{X: 1}
		return n + 2
	case s.diags && d.X != 0 && d.Y != 0:
		// Diagonal travel keeps its two component directions; corner
		// rules leave it nothing else to inherit
		dirs[n] = grid.Point{X: d.X}
		dirs[n+1] = grid.Point{Y: d.Y}
		return n + 2
	case d.X != 0:
		if !s.pass(p.Shift(-d.X, -1)) && s.pass(p.Shift(0, -1)) {
			dirs[n] = grid.Point{Y: -1}
			n++
			if s.diags {
				dirs[n] = grid.Point{X: d.X, Y: -1}
				n++
			}
		}
		if !s.pass(p.Shift(-d.X, 1)) && s.pass(p.Shift(0, 1)) {
			dirs[n] = grid.Point{Y: 1}
			n++
			if s.diags {
				dirs[n] = grid.Point{X: d.X, Y: 1}
				n++
			}
		}
	default:
		if !s.pass(p.Shift(-1, -d.Y)) && s.pass(p.Shift(-1, 0)) {
			dirs[n] = grid.Point{X: -1}
			n++
			if s.diags {
				dirs[n] = grid.Point{X: -1, Y: d.Y}
				n++
			}
		}
		if !s.pass(p.Shift(1, -d.Y)) && s.pass(p.Shift(1, 0)) {
			dirs[n] = grid.Point{X: 1}
			n++
			if s.diags {
				dirs[n] = grid.Point{X: 1, Y: d.Y}
				n++
			}
		}
	}
	return n
}

// jump scans from p along d until it reaches the goal, a cell with a
// forced neighbor, or a wall. It returns the jump point and the number
// of steps taken to it
func (s *jpsSearch) jump(p, d grid.Point) (grid.Point, int, bool) {
	switch {
	case d.X != 0 && d.Y != 0:
		return s.jumpDiag(p, d)
	case !s.diags && d.Y != 0:
		return s.jumpVert(p, d)
	default:
		return s.jumpStraight(p, d)
	}
}

func (s *jpsSearch) jumpStraight(p, d grid.Point) (grid.Point, int, bool) {
	dist := 0
	for {
		p = p.Add(d)
		dist++
		if !s.pass(p) {
			return p, 0, false
		}
		if p == s.to || s.forcedStraight(p, d) {
			return p, dist, true
		}
	}
}

// forcedStraight reports whether p, entered along d, has a neighbor
// reachable at full cost only through p: the cell beside the previous
// position is blocked while the cell beside p is open. The rule is the
// same in both movement modes
func (s *jpsSearch) forcedStraight(p, d grid.Point) bool {
	if d.X != 0 {
		return !s.pass(p.Shift(-d.X, -1)) && s.pass(p.Shift(0, -1)) ||
			!s.pass(p.Shift(-d.X, 1)) && s.pass(p.Shift(0, 1))
	}
	return !s.pass(p.Shift(-1, -d.Y)) && s.pass(p.Shift(-1, 0)) ||
		!s.pass(p.Shift(1, -d.Y)) && s.pass(p.Shift(1, 0))
}

// jumpDiag scans diagonally, probing a straight jump along each
// component direction at every step. Corner rules make every diagonal
// step conditional on both orthogonal cells beside it
func (s *jpsSearch) jumpDiag(p, d grid.Point) (grid.Point, int, bool) {
	dist := 0
	for {
		if !s.pass(p.Shift(d.X, 0)) || !s.pass(p.Shift(0, d.Y)) {
			return p, 0, false
		}
		p = p.Add(d)
		dist++
		if !s.pass(p) {
			return p, 0, false
		}
		if p == s.to {
			return p, dist, true
		}
		if _, _, ok := s.jumpStraight(p, grid.Point{X: d.X}); ok {
			return p, dist, true
		}
		if _, _, ok := s.jumpStraight(p, grid.Point{Y: d.Y}); ok {
			return p, dist, true
		}
	}
}

// jumpVert scans vertically in 4-way mode, probing a horizontal jump to
// each side at every step. It plays the role diagonal scans play with
// diags on: the axis whose turns stay open everywhere
func (s *jpsSearch) jumpVert(p, d grid.Point) (grid.Point, int, bool) {
	dist := 0
	for {
		p = p.Add(d)
		dist++
		if !s.pass(p) {
			return p, 0, false
		}
		if p == s.to {
			return p, dist, true
		}
		if _, _, ok := s.jumpStraight(p, grid.Point{X: -1}); ok {
			return p, dist, true
		}
		if _, _, ok := s.jumpStraight(p, grid.Point{X: 1}); ok {
			return p, dist, true
		}
	}
}

// assemble expands the jump point chain ending at goal into explicit
// unit steps appended to path. The chain is collected as flat indices
// so path may safely alias any point slice this owner handed out
// earlier
func (s *jpsSearch) assemble(path []grid.Point, goal int) []grid.Point {
	pr := s.pr
	pr.fifo = pr.fifo[:0]
	for i := goal; i != -1; i = pr.pair[i].parent {
		pr.fifo = append(pr.fifo, i)
	}
	prev := pr.ptAt(pr.fifo[len(pr.fifo)-1])
	path = append(path, prev)
	for k := len(pr.fifo) - 2; k >= 0; k-- {
		next := pr.ptAt(pr.fifo[k])
		path = fillSegment(path, prev, next, s.diags)
		prev = next
	}
	return path
}

// fillSegment appends the unit steps from a, exclusive, to b inclusive.
// With diags the diagonal leg comes first, then the straight remainder;
// without, the vertical leg comes first so a jump pair that is not
// axis-aligned still expands to legal orthogonal steps
func fillSegment(path []grid.Point, a, b grid.Point, diags bool) []grid.Point {
	p := a
	for p != b {
		d := grid.Point{X: sign(b.X - p.X), Y: sign(b.Y - p.Y)}
		switch {
		case diags:
			p = p.Add(d)
		case d.Y != 0:
			p = p.Shift(0, d.Y)
		default:
			p = p.Shift(d.X, 0)
		}
		path = append(path, p)
	}
	return path
}
