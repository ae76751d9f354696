// Package filter keeps the monotonic candidates of an enumeration.
package filter

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"
	"sync"

	"github.com/dd0wney/regnet-monotone/pkg/enumerate"
	"github.com/dd0wney/regnet-monotone/pkg/monotone"
	"github.com/dd0wney/regnet-monotone/pkg/network"
	"github.com/dd0wney/regnet-monotone/pkg/parallel"
)

// Set is the monotonic subset of an enumeration, in enumeration order, with
// the original ordinals kept (rejected ordinals leave gaps).
type Set struct {
	space     *network.Space
	functions []enumerate.Candidate
}

// Filter classifies every candidate in order and keeps the monotonic ones.
// It never fails; an empty set is a valid result.
func Filter(space *network.Space, candidates iter.Seq[enumerate.Candidate]) *Set {
	cls := monotone.NewClassifier(space)
	set := &Set{space: space}
	for c := range candidates {
		if cls.IsMonotonic(c) {
			set.functions = append(set.functions, c)
		}
	}
	return set
}

// ErrWorkerPanic is returned by ParallelFilter when a classification task
// panicked, since its candidate can no longer be accounted for.
var ErrWorkerPanic = errors.New("filter: classification task panicked")

// ParallelFilter classifies candidates on a pool of workers. Each task reads
// only the shared read-only classifier and its own candidate. Kept candidates
// are appended under a mutex and sorted back into enumeration order before
// returning.
func ParallelFilter(ctx context.Context, space *network.Space, candidates iter.Seq[enumerate.Candidate], workers int) (*Set, error) {
	cls := monotone.NewClassifier(space)
	kept, err := parallelKeep(ctx, candidates, workers, cls.IsMonotonic)
	if err != nil {
		return nil, err
	}
	return &Set{space: space, functions: kept}, nil
}

func parallelKeep(ctx context.Context, candidates iter.Seq[enumerate.Candidate], workers int, keep func(enumerate.Candidate) bool) ([]enumerate.Candidate, error) {
	pool, err := parallel.NewWorkerPool(workers)
	if err != nil {
		return nil, err
	}

	var (
		mu   sync.Mutex
		kept []enumerate.Candidate
	)

	var submitErr error
	for c := range candidates {
		if submitErr = pool.Submit(ctx, func() {
			if keep(c) {
				mu.Lock()
				kept = append(kept, c)
				mu.Unlock()
			}
		}); submitErr != nil {
			break
		}
	}
	pool.Close()

	if submitErr != nil {
		return nil, submitErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if panics := pool.Panics(); len(panics) > 0 {
		return nil, fmt.Errorf("%w: %d tasks, first: %v", ErrWorkerPanic, len(panics), panics[0])
	}

	slices.SortFunc(kept, func(a, b enumerate.Candidate) int {
		return cmp.Compare(a.Ordinal(), b.Ordinal())
	})
	return kept, nil
}

// Space returns the space the set was classified against.
func (s *Set) Space() *network.Space { return s.space }

// Len returns the number of retained functions.
func (s *Set) Len() int { return len(s.functions) }

// Functions returns a copy of the retained candidates.
func (s *Set) Functions() []enumerate.Candidate {
	out := make([]enumerate.Candidate, len(s.functions))
	copy(out, s.functions)
	return out
}

// Labels returns the original "func<ordinal>" labels.
func (s *Set) Labels() []string {
	labels := make([]string, len(s.functions))
	for i, f := range s.functions {
		labels[i] = f.Label()
	}
	return labels
}

// Rows returns each retained function as a bit row in space order.
func (s *Set) Rows() [][]int {
	rows := make([][]int, len(s.functions))
	for i, f := range s.functions {
		rows[i] = f.Bits()
	}
	return rows
}

// Mappings returns each retained function as a config id -> bit map, paired
// with its label, in enumeration order.
func (s *Set) Mappings() []Entry {
	out := make([]Entry, len(s.functions))
	for i, f := range s.functions {
		out[i] = Entry{Label: f.Label(), Bits: f.Mapping(s.space)}
	}
	return out
}

// Entry is one retained function as handed to presentation.
type Entry struct {
	Label string
	Bits  map[string]int
}

// Equal reports whether both sets hold the same candidates in the same order.
func (s *Set) Equal(other *Set) bool {
	if other == nil {
		return false
	}
	return slices.Equal(s.functions, other.functions)
}
