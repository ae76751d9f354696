// Package dominance precomputes the dominance order of a config space once,
// so that classifying each of the 2^n candidates does not repeat the O(n^2)
// level comparisons.
//
// Config i dominates config j (i != j) when it has at least as many open
// activators and at most as many open repressors:
//
//	a_i >= a_j  and  r_i <= r_j
//
// On a space without duplicate level pairs this is a strict partial order
// (the product order of activator ascending and repressor descending), and
// its Hasse diagram is enough to decide monotonicity.
package dominance

import (
	"errors"

	"github.com/dd0wney/regnet-monotone/pkg/network"
)

// ErrCycle is returned when two distinct configs share both levels, so the
// relation has a 2-cycle and no Hasse diagram exists.
var ErrCycle = errors.New("dominance: relation is not antisymmetric")

// Pair is an ordered pair of config indices where Upper dominates Lower.
type Pair struct {
	Upper int
	Lower int
}

// Relation is the memoized dominance relation of one space.
type Relation struct {
	n         int
	dominates [][]bool
	pairs     []Pair
	antisym   bool
}

// Build compares every ordered pair of distinct configs once.
func Build(space *network.Space) *Relation {
	n := space.Len()
	r := &Relation{
		n:         n,
		dominates: make([][]bool, n),
		antisym:   true,
	}
	for i := range r.dominates {
		r.dominates[i] = make([]bool, n)
	}

	for i := 0; i < n; i++ {
		ci := space.At(i)
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			cj := space.At(j)
			if ci.ActivatorLevel() >= cj.ActivatorLevel() && ci.RepressorLevel() <= cj.RepressorLevel() {
				r.dominates[i][j] = true
				r.pairs = append(r.pairs, Pair{Upper: i, Lower: j})
			}
		}
	}

	for _, p := range r.pairs {
		if r.dominates[p.Lower][p.Upper] {
			r.antisym = false
			break
		}
	}
	return r
}

// Len returns the number of configs the relation is defined over.
func (r *Relation) Len() int { return r.n }

// Dominates reports whether config i dominates config j.
func (r *Relation) Dominates(i, j int) bool { return r.dominates[i][j] }

// Pairs returns every dominance pair, ordered by Upper then Lower.
func (r *Relation) Pairs() []Pair {
	out := make([]Pair, len(r.pairs))
	copy(out, r.pairs)
	return out
}

// Antisymmetric reports whether no two distinct configs dominate each other.
func (r *Relation) Antisymmetric() bool { return r.antisym }

// CoverEdges returns the transitive reduction of the relation: pairs (u, v)
// with no w such that u dominates w and w dominates v.
func (r *Relation) CoverEdges() ([]Pair, error) {
	if !r.antisym {
		return nil, ErrCycle
	}

	covers := make([]Pair, 0, len(r.pairs))
	for _, p := range r.pairs {
		covered := true
		for w := 0; w < r.n; w++ {
			if w == p.Upper || w == p.Lower {
				continue
			}
			if r.dominates[p.Upper][w] && r.dominates[w][p.Lower] {
				covered = false
				break
			}
		}
		if covered {
			covers = append(covers, p)
		}
	}
	return covers, nil
}
