package paths

import "github.com/lixenwraith/spatial/grid"

// DijkstraMap computes minimum accumulated costs from any source to
// every cell reachable within maxCost, using wp for expansion and edge
// costs. Sources outside the range are skipped. The returned nodes are
// ordered by increasing cost and reused by the next map query; read
// individual cells afterwards with DijkstraAt
func (pr *PathRange) DijkstraMap(wp WeightedPather, srcs []grid.Point, maxCost int) []Node {
	pr.dijGen++
	gen := pr.dijGen
	pr.heap.reset()
	pr.nodes = pr.nodes[:0]

	for _, src := range srcs {
		if !src.In(pr.rg) {
			continue
		}
		i := pr.idx(src)
		nd := &pr.dij[i]
		if nd.gen == gen {
			continue
		}
		nd.gen = gen
		nd.parent = -1
		nd.g = 0
		nd.open = true
		pr.heap.push(i, 0)
	}

	for !pr.heap.empty() {
		e := pr.heap.pop()
		nd := &pr.dij[e.idx]
		if !nd.open {
			continue
		}
		nd.open = false
		p := pr.ptAt(e.idx)
		pr.nodes = append(pr.nodes, Node{P: p, Cost: nd.g})
		g := nd.g

		for _, q := range wp.Neighbors(p) {
			if !q.In(pr.rg) {
				continue
			}
			ng := g + wp.Cost(p, q)
			if ng > maxCost {
				continue
			}
			j := pr.idx(q)
			qn := &pr.dij[j]
			if qn.gen == gen && ng >= qn.g {
				continue
			}
			qn.gen = gen
			qn.parent = e.idx
			qn.g = ng
			qn.open = true
			pr.heap.push(j, ng)
		}
	}
	return pr.nodes
}

// DijkstraAt returns the cost computed for p by the last DijkstraMap,
// or Unreachable when no source reached it. Panics if p is outside the
// range
func (pr *PathRange) DijkstraAt(p grid.Point) int {
	nd := &pr.dij[pr.idx(p)]
	if nd.gen != pr.dijGen {
		return Unreachable
	}
	return nd.g
}
