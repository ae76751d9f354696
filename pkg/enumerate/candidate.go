package enumerate

import (
	"fmt"
	"strconv"

	"github.com/dd0wney/regnet-monotone/pkg/network"
)

// Candidate is one total function from a config space to {0, 1}.
//
// The function is stored as the integer whose n-bit binary expansion is the
// bit vector in space order, config 0 being the most significant bit. The
// 1-based ordinal is that integer plus one.
type Candidate struct {
	value uint64
	n     int
}

// FromBits builds the candidate assigning bits[i] to the i-th config of a
// space of len(bits) configs. Bits must be 0 or 1.
func FromBits(bits []int) (Candidate, error) {
	if len(bits) == 0 || len(bits) > MaxSpaceSize {
		return Candidate{}, fmt.Errorf("%w: %d configs", ErrSpaceTooLarge, len(bits))
	}
	var v uint64
	for i, b := range bits {
		if b != 0 && b != 1 {
			return Candidate{}, fmt.Errorf("enumerate: bit %d is %d, want 0 or 1", i, b)
		}
		v = v<<1 | uint64(b)
	}
	return Candidate{value: v, n: len(bits)}, nil
}

// FromMapping builds a candidate from an id->bit mapping over space.
func FromMapping(space *network.Space, mapping map[string]int) (Candidate, error) {
	bits := make([]int, space.Len())
	for i, id := range space.IDs() {
		b, ok := mapping[id]
		if !ok {
			return Candidate{}, fmt.Errorf("enumerate: mapping has no bit for config %q", id)
		}
		bits[i] = b
	}
	return FromBits(bits)
}

// Ordinal returns the 1-based position of the candidate in enumeration order.
func (c Candidate) Ordinal() uint64 { return c.value + 1 }

// Label returns the display label "func<ordinal>".
func (c Candidate) Label() string {
	return "func" + strconv.FormatUint(c.Ordinal(), 10)
}

// Len returns the number of configs the candidate is defined over.
func (c Candidate) Len() int { return c.n }

// Bit returns the output assigned to the i-th config.
func (c Candidate) Bit(i int) int {
	return int(c.value >> uint(c.n-1-i) & 1)
}

// Bits returns the outputs in space order.
func (c Candidate) Bits() []int {
	bits := make([]int, c.n)
	for i := range bits {
		bits[i] = c.Bit(i)
	}
	return bits
}

// Lookup returns the output assigned to the config with the given id.
func (c Candidate) Lookup(space *network.Space, id string) (int, bool) {
	i, ok := space.Index(id)
	if !ok || i >= c.n {
		return 0, false
	}
	return c.Bit(i), true
}

// Mapping returns the config id -> bit mapping over space.
func (c Candidate) Mapping(space *network.Space) map[string]int {
	m := make(map[string]int, c.n)
	for i, id := range space.IDs() {
		m[id] = c.Bit(i)
	}
	return m
}

// IsConstant reports whether every config gets the same output.
func (c Candidate) IsConstant() bool {
	all := uint64(1)<<uint(c.n) - 1
	return c.value == 0 || c.value == all
}

// Inverted returns the candidate with every output flipped.
func (c Candidate) Inverted() Candidate {
	all := uint64(1)<<uint(c.n) - 1
	return Candidate{value: ^c.value & all, n: c.n}
}

// Permuted returns the candidate re-aligned to a space permuted with the
// same perm as network.Space.Permute: bit i of the result is c.Bit(perm[i]).
func (c Candidate) Permuted(perm []int) Candidate {
	var v uint64
	for _, p := range perm {
		v = v<<1 | uint64(c.Bit(p))
	}
	return Candidate{value: v, n: len(perm)}
}

func (c Candidate) String() string {
	out := make([]byte, c.n)
	for i := range out {
		out[i] = byte('0' + c.Bit(i))
	}
	return c.Label() + "[" + string(out) + "]"
}
