package network

import (
	"fmt"
	"strconv"
)

// Space is an ordered, immutable sequence of configs, unique by ID.
type Space struct {
	configs []Config
	index   map[string]int
}

// Build returns the canonical 3x3 space: levels in {0, 1, 2}, repressor
// level as outer loop, activator level as inner loop, IDs "1".."9".
func Build() (*Space, error) {
	return BuildGrid(MaxLevel, MaxLevel)
}

// MaxGridConfigs is the largest grid BuildGrid generates: one config per bit
// of a 64-bit candidate encoding, less one so 2^n still fits.
const MaxGridConfigs = 63

// BuildGrid generates the (maxActivator+1) x (maxRepressor+1) grid with the
// same loop order and ID scheme as Build.
func BuildGrid(maxActivator, maxRepressor int) (*Space, error) {
	if maxActivator < 0 || maxRepressor < 0 {
		return nil, fmt.Errorf("network: grid bounds %dx%d: %w", maxActivator, maxRepressor, ErrInvalidLevel)
	}
	if maxActivator >= MaxGridConfigs || maxRepressor >= MaxGridConfigs ||
		(maxActivator+1)*(maxRepressor+1) > MaxGridConfigs {
		return nil, fmt.Errorf("%w: bounds %dx%d", ErrGridTooLarge, maxActivator, maxRepressor)
	}

	configs := make([]Config, 0, (maxActivator+1)*(maxRepressor+1))
	id := 1
	for repressor := 0; repressor <= maxRepressor; repressor++ {
		for activator := 0; activator <= maxActivator; activator++ {
			c, err := newBoundedConfig(activator, repressor, maxActivator, maxRepressor, strconv.Itoa(id))
			if err != nil {
				return nil, err
			}
			configs = append(configs, c)
			id++
		}
	}
	return NewSpace(configs...)
}

// NewSpace builds a space from configs in the given order.
func NewSpace(configs ...Config) (*Space, error) {
	if len(configs) == 0 {
		return nil, ErrEmptySpace
	}

	s := &Space{
		configs: make([]Config, len(configs)),
		index:   make(map[string]int, len(configs)),
	}
	for i, c := range configs {
		if _, dup := s.index[c.id]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, c.id)
		}
		s.configs[i] = c
		s.index[c.id] = i
	}
	return s, nil
}

// Len returns the number of configs.
func (s *Space) Len() int { return len(s.configs) }

// At returns the config at position i.
func (s *Space) At(i int) Config { return s.configs[i] }

// Configs returns a copy of the configs in space order.
func (s *Space) Configs() []Config {
	out := make([]Config, len(s.configs))
	copy(out, s.configs)
	return out
}

// Index returns the position of the config with the given ID.
func (s *Space) Index(id string) (int, bool) {
	i, ok := s.index[id]
	return i, ok
}

// IDs returns config identifiers in space order.
func (s *Space) IDs() []string {
	ids := make([]string, len(s.configs))
	for i, c := range s.configs {
		ids[i] = c.id
	}
	return ids
}

// Columns returns the "(activator, repressor)" labels in space order.
func (s *Space) Columns() []string {
	cols := make([]string, len(s.configs))
	for i, c := range s.configs {
		cols[i] = c.Label()
	}
	return cols
}

// Permute returns a new space whose i-th config is s.At(perm[i]).
// perm must be a permutation of 0..Len()-1.
func (s *Space) Permute(perm []int) (*Space, error) {
	if len(perm) != len(s.configs) {
		return nil, fmt.Errorf("network: permutation of length %d for space of %d", len(perm), len(s.configs))
	}
	seen := make([]bool, len(perm))
	out := make([]Config, len(perm))
	for i, p := range perm {
		if p < 0 || p >= len(perm) || seen[p] {
			return nil, fmt.Errorf("network: invalid permutation %v", perm)
		}
		seen[p] = true
		out[i] = s.configs[p]
	}
	return NewSpace(out...)
}

// Swapped returns the space with activator and repressor levels exchanged on
// every config. Order and IDs are kept.
func (s *Space) Swapped() *Space {
	out := make([]Config, len(s.configs))
	for i, c := range s.configs {
		out[i] = c.Swapped()
	}
	sp, _ := NewSpace(out...)
	return sp
}
