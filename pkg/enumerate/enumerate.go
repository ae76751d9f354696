// Package enumerate produces every total function from a config space to
// {0, 1}, lazily and in a fixed order.
//
// Order: lexicographic over the bit vector in space order. The first config's
// bit varies slowest, the last config's bit varies fastest, so candidate k
// (1-based) is the binary expansion of k-1. For the canonical space func1 is
// all zeros, func2 fires only on config "9", and func512 is all ones.
package enumerate

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/dd0wney/regnet-monotone/pkg/network"
)

// MaxSpaceSize is the largest space whose candidates fit the 64-bit encoding.
const MaxSpaceSize = 63

var (
	// ErrSpaceTooLarge is returned for spaces beyond MaxSpaceSize
	ErrSpaceTooLarge = errors.New("enumerate: config space too large")
	// ErrOrdinalRange is returned by At for ordinals outside [1, Count]
	ErrOrdinalRange = errors.New("enumerate: ordinal out of range")
)

// Enumerator walks {0,1}^n for a fixed space. It holds no iteration state,
// so All may be called any number of times.
type Enumerator struct {
	space *network.Space
	n     int
}

// New creates an enumerator over space.
func New(space *network.Space) (*Enumerator, error) {
	if space == nil || space.Len() == 0 {
		return nil, network.ErrEmptySpace
	}
	if space.Len() > MaxSpaceSize {
		return nil, fmt.Errorf("%w: %d configs, max %d", ErrSpaceTooLarge, space.Len(), MaxSpaceSize)
	}
	return &Enumerator{space: space, n: space.Len()}, nil
}

// Space returns the space being enumerated.
func (e *Enumerator) Space() *network.Space { return e.space }

// Count returns 2^n.
func (e *Enumerator) Count() uint64 {
	return uint64(1) << uint(e.n)
}

// All yields every candidate in enumeration order.
func (e *Enumerator) All() iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		count := e.Count()
		for v := uint64(0); v < count; v++ {
			if !yield(Candidate{value: v, n: e.n}) {
				return
			}
		}
	}
}

// At returns the candidate with the given 1-based ordinal.
func (e *Enumerator) At(ordinal uint64) (Candidate, error) {
	if ordinal == 0 || ordinal > e.Count() {
		return Candidate{}, fmt.Errorf("%w: %d not in [1, %d]", ErrOrdinalRange, ordinal, e.Count())
	}
	return Candidate{value: ordinal - 1, n: e.n}, nil
}

// ParseLabel extracts the ordinal from a "func<ordinal>" label. The whole
// label must match; the ordinal is plain decimal and at least 1.
func ParseLabel(label string) (uint64, error) {
	digits, ok := strings.CutPrefix(label, "func")
	if !ok || digits == "" || digits[0] < '0' || digits[0] > '9' {
		return 0, fmt.Errorf("enumerate: invalid label %q", label)
	}
	ordinal, err := strconv.ParseUint(digits, 10, 64)
	if err != nil || ordinal == 0 {
		return 0, fmt.Errorf("enumerate: invalid label %q", label)
	}
	return ordinal, nil
}
