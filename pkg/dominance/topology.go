package dominance

import (
	"cmp"
	"slices"
)

// TopologicalOrder returns config indices so that every config comes before
// the configs it dominates, using Kahn's algorithm over the cover edges.
// Ties are broken by space order, so the result is deterministic.
func (r *Relation) TopologicalOrder() ([]int, error) {
	covers, err := r.CoverEdges()
	if err != nil {
		return nil, err
	}

	outgoing := make([][]int, r.n)
	inDegree := make([]int, r.n)
	for _, e := range covers {
		outgoing[e.Upper] = append(outgoing[e.Upper], e.Lower)
		inDegree[e.Lower]++
	}

	queue := make([]int, 0, r.n)
	for i := 0; i < r.n; i++ {
		if inDegree[i] == 0 {
			queue = append(queue, i)
		}
	}

	sorted := make([]int, 0, r.n)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		sorted = append(sorted, current)

		for _, next := range outgoing[current] {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if len(sorted) != r.n {
		return nil, ErrCycle
	}
	return sorted, nil
}

// OrderedCoverEdges returns the cover edges sorted by the topological
// position of their upper config, then of their lower config. It fails with
// ErrCycle exactly when TopologicalOrder does.
func (r *Relation) OrderedCoverEdges() ([]Pair, error) {
	order, err := r.TopologicalOrder()
	if err != nil {
		return nil, err
	}
	rank := make([]int, r.n)
	for pos, i := range order {
		rank[i] = pos
	}

	covers, err := r.CoverEdges()
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(covers, func(a, b Pair) int {
		return cmp.Or(
			cmp.Compare(rank[a.Upper], rank[b.Upper]),
			cmp.Compare(rank[a.Lower], rank[b.Lower]),
		)
	})
	return covers, nil
}
