package paths

import "github.com/lixenwraith/spatial/grid"

// AstarPath returns a minimum-cost path from from to to inclusive, or
// nil when no path exists. Path optimality holds as long as the
// estimate never overshoots the true remaining cost. The returned
// slice is reused by the next path query on this owner
func (pr *PathRange) AstarPath(ap AstarPather, from, to grid.Point) []grid.Point {
	if !from.In(pr.rg) || !to.In(pr.rg) {
		return nil
	}
	pr.pairGen++
	gen := pr.pairGen
	pr.heap.reset()

	start := pr.idx(from)
	goal := pr.idx(to)
	sn := &pr.pair[start]
	sn.gen = gen
	sn.parent = -1
	sn.g = 0
	sn.open = true
	pr.heap.push(start, ap.Estimation(from, to))

	for !pr.heap.empty() {
		e := pr.heap.pop()
		nd := &pr.pair[e.idx]
		if !nd.open {
			continue
		}
		nd.open = false
		if e.idx == goal {
			return pr.buildPath(goal)
		}
		p := pr.ptAt(e.idx)
		g := nd.g

		for _, q := range ap.Neighbors(p) {
			if !q.In(pr.rg) {
				continue
			}
			ng := g + ap.Cost(p, q)
			j := pr.idx(q)
			qn := &pr.pair[j]
			if qn.gen == gen && ng >= qn.g {
				continue
			}
			qn.gen = gen
			qn.parent = e.idx
			qn.g = ng
			qn.open = true
			pr.heap.push(j, ng+ap.Estimation(q, to))
		}
	}
	return nil
}

// buildPath walks the parent chain from goal back to the start and
// reverses it in place
func (pr *PathRange) buildPath(goal int) []grid.Point {
	pr.points = pr.points[:0]
	for i := goal; i != -1; i = pr.pair[i].parent {
		pr.points = append(pr.points, pr.ptAt(i))
	}
	for i, j := 0, len(pr.points)-1; i < j; i, j = i+1, j-1 {
		pr.points[i], pr.points[j] = pr.points[j], pr.points[i]
	}
	return pr.points
}
