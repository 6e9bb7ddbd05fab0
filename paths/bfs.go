package paths

import "github.com/lixenwraith/spatial/grid"

// BFSMap computes step distances from any source to every cell within
// maxCost steps, expanding with nb. Every edge counts one step; use
// DijkstraMap when edges have weights. Sources outside the range are
// skipped. The returned nodes are ordered by increasing distance and
// reused by the next map query
func (pr *PathRange) BFSMap(nb Pather, srcs []grid.Point, maxCost int) []Node {
	pr.bfsGen++
	gen := pr.bfsGen
	pr.fifo = pr.fifo[:0]
	pr.nodes = pr.nodes[:0]

	for _, src := range srcs {
		if !src.In(pr.rg) {
			continue
		}
		i := pr.idx(src)
		bn := &pr.bfs[i]
		if bn.gen == gen {
			continue
		}
		bn.gen = gen
		bn.dist = 0
		pr.fifo = append(pr.fifo, i)
		pr.nodes = append(pr.nodes, Node{P: src, Cost: 0})
	}

	for qi := 0; qi < len(pr.fifo); qi++ {
		i := pr.fifo[qi]
		d := pr.bfs[i].dist
		if d >= maxCost {
			continue
		}
		p := pr.ptAt(i)
		for _, q := range nb.Neighbors(p) {
			if !q.In(pr.rg) {
				continue
			}
			j := pr.idx(q)
			bn := &pr.bfs[j]
			if bn.gen == gen {
				continue
			}
			bn.gen = gen
			bn.dist = d + 1
			pr.fifo = append(pr.fifo, j)
			pr.nodes = append(pr.nodes, Node{P: q, Cost: d + 1})
		}
	}
	return pr.nodes
}

// BFSAt returns the distance computed for p by the last BFSMap, or
// Unreachable when no source reached it. Panics if p is outside the
// range
func (pr *PathRange) BFSAt(p grid.Point) int {
	bn := &pr.bfs[pr.idx(p)]
	if bn.gen != pr.bfsGen {
		return Unreachable
	}
	return bn.dist
}
