package paths

// --- Min-heap frontier for Dijkstra, A* and JPS ---

// Entries are never removed in place. A cell whose cost improves is
// pushed again and the stale copy is skipped on pop once the cell has
// settled. Ties on rank pop in insertion order, which keeps query
// results identical across platforms
type heapEntry struct {
	idx  int // Flat cell index (y*width + x)
	rank int // Accumulated cost, plus heuristic where one applies
	seq  int // Insertion order, breaks rank ties
}

type minHeap struct {
	entries []heapEntry
	seq     int
}

func (h *minHeap) reset() {
	h.entries = h.entries[:0]
}

func (h *minHeap) empty() bool {
	return len(h.entries) == 0
}

func (h *minHeap) less(a, b heapEntry) bool {
	if a.rank != b.rank {
		return a.rank < b.rank
	}
	return a.seq < b.seq
}

func (h *minHeap) push(idx, rank int) {
	h.seq++
	h.entries = append(h.entries, heapEntry{idx: idx, rank: rank, seq: h.seq})

	// Sift up
	es := h.entries
	i := len(es) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(es[i], es[parent]) {
			break
		}
		es[parent], es[i] = es[i], es[parent]
		i = parent
	}
}

func (h *minHeap) pop() heapEntry {
	es := h.entries
	n := len(es)
	e := es[0]
	es[0] = es[n-1]
	h.entries = es[:n-1]
	es = h.entries

	// Sift down
	i := 0
	for {
		left := 2*i + 1
		if left >= len(es) {
			break
		}
		smallest := left
		if right := left + 1; right < len(es) && h.less(es[right], es[left]) {
			smallest = right
		}
		if !h.less(es[smallest], es[i]) {
			break
		}
		es[i], es[smallest] = es[smallest], es[i]
		i = smallest
	}
	return e
}
