package astar

// openItem is one heap entry. g is a snapshot of the node's cost when pushed;
// an entry whose g no longer matches the arena node is stale.
type openItem struct {
	handle int32
	g, h   int
	seq    uint64
}

func (it openItem) f() int { return it.g + it.h }

// openPQ is a min-heap of openItem ordered by f, then h, then push order.
// Lower h first prefers nodes closer to the goal among equal-f candidates;
// push order makes the remaining ties deterministic.
type openPQ []openItem

// Len returns the number of items in the heap.
func (pq openPQ) Len() int { return len(pq) }

// Less defines the ordering used by container/heap.
func (pq openPQ) Less(i, j int) bool {
	fi, fj := pq[i].f(), pq[j].f()
	if fi != fj {
		return fi < fj
	}
	if pq[i].h != pq[j].h {
		return pq[i].h < pq[j].h
	}

	return pq[i].seq < pq[j].seq
}

// Swap swaps two elements in the heap.
func (pq openPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push appends x, which must be an openItem. Called by heap.Push.
func (pq *openPQ) Push(x interface{}) { *pq = append(*pq, x.(openItem)) }

// Pop removes and returns the last element. Called by heap.Pop.
func (pq *openPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
