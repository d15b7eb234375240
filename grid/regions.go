package grid

// Regions labels the 4-connected components of free cells. Blocked cells
// carry label -1.
type Regions struct {
	g      *Grid
	labels []int32
	count  int
}

// Regions finds all contiguous free regions with a BFS per unlabeled free
// cell, scanning in row-major order so labels are deterministic.
//
// Time:   O(W·H·4).
// Memory: O(W·H) for labels and the queue.
func (g *Grid) Regions() *Regions {
	labels := make([]int32, len(g.blocked))
	for i := range labels {
		labels[i] = -1
	}
	var (
		count int32
		queue = make([]int, 0, 64)
	)
	for i0, b := range g.blocked {
		if b || labels[i0] >= 0 {
			continue
		}
		queue = append(queue[:0], i0)
		labels[i0] = count
		for qi := 0; qi < len(queue); qi++ {
			u := g.At(queue[qi])
			for _, d := range Offsets4 {
				v := u.Add(d)
				if g.Blocked(v) {
					continue
				}
				vi := g.Index(v)
				if labels[vi] < 0 {
					labels[vi] = count
					queue = append(queue, vi)
				}
			}
		}
		count++
	}

	return &Regions{g: g, labels: labels, count: int(count)}
}

// Count returns the number of free regions.
func (r *Regions) Count() int { return r.count }

// Label returns the region of c, or -1 if c is blocked or out of bounds.
func (r *Regions) Label(c Cell) int {
	if r.g.Blocked(c) {
		return -1
	}

	return int(r.labels[r.g.Index(c)])
}

// Connected reports whether a and b are free cells of the same region.
// Complexity: O(1).
func (r *Regions) Connected(a, b Cell) bool {
	la := r.Label(a)

	return la >= 0 && la == r.Label(b)
}
