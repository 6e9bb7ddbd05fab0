package paths

import "github.com/lixenwraith/spatial/grid"

// CCMapAll labels every cell of the range with its connected component
// under nb, so two cells share a CCAt label iff they are joined through
// neighbor expansion. Labels count up from 1 in scan order; a cell no
// other cell expands into becomes its own component
func (pr *PathRange) CCMapAll(nb Pather) {
	pr.ccGen++
	gen := pr.ccGen
	label := 0
	for i := 0; i < pr.size; i++ {
		if pr.cc[i].gen == gen {
			continue
		}
		label++
		pr.ccFlood(nb, i, label, false)
	}
}

// CCMap labels only the component containing p and returns its cells.
// Labels from earlier calls are invalidated; after this call CCAt
// reports 1 inside the component and 0 everywhere else. The returned
// slice is reused by the next query. Panics if p is outside the range
func (pr *PathRange) CCMap(nb Pather, p grid.Point) []grid.Point {
	pr.ccGen++
	pr.points = pr.points[:0]
	pr.ccFlood(nb, pr.idx(p), 1, true)
	return pr.points
}

// CCAt returns the component label computed for p by the last CCMap or
// CCMapAll, or 0 when p was not labeled. Panics if p is outside the
// range
func (pr *PathRange) CCAt(p grid.Point) int {
	cn := &pr.cc[pr.idx(p)]
	if cn.gen != pr.ccGen {
		return 0
	}
	return cn.label
}

// ccFlood labels the component of cell i by iterative depth-first
// traversal, collecting its points into pr.points when collect is set
func (pr *PathRange) ccFlood(nb Pather, i, label int, collect bool) {
	gen := pr.ccGen
	pr.ccStack = pr.ccStack[:0]
	pr.ccStack = append(pr.ccStack, i)
	pr.cc[i].gen = gen
	pr.cc[i].label = label

	for len(pr.ccStack) > 0 {
		j := pr.ccStack[len(pr.ccStack)-1]
		pr.ccStack = pr.ccStack[:len(pr.ccStack)-1]
		p := pr.ptAt(j)
		if collect {
			pr.points = append(pr.points, p)
		}
		for _, q := range nb.Neighbors(p) {
			if !q.In(pr.rg) {
				continue
			}
			k := pr.idx(q)
			if pr.cc[k].gen == gen {
				continue
			}
			pr.cc[k].gen = gen
			pr.cc[k].label = label
			pr.ccStack = append(pr.ccStack, k)
		}
	}
}
