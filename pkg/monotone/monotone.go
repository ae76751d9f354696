// Package monotone decides whether a candidate output function respects the
// activator/repressor order of a config space.
//
// A candidate is monotonic when it is not constant and, for every ordered
// pair of distinct configs (c1, c2):
//
//   - if c1 has at least the activators and at most the repressors of c2,
//     then f(c1) >= f(c2) (activator-dominance rule);
//   - if c1 has at most the activators and at least the repressors of c2,
//     then f(c1) <= f(c2) (repressor-dominance rule).
//
// Both rules are checked for every pair; when two configs tie on one axis
// both may apply to the same pair. Constant functions are rejected before any
// pair is examined, even though they preserve the order trivially.
package monotone

import (
	"github.com/dd0wney/regnet-monotone/pkg/enumerate"
	"github.com/dd0wney/regnet-monotone/pkg/network"
)

// IsMonotonic classifies f by comparing every ordered pair of configs.
func IsMonotonic(space *network.Space, f enumerate.Candidate) bool {
	return Explain(space, f).Monotonic
}

// Explain classifies f like IsMonotonic and reports the first rule broken.
func Explain(space *network.Space, f enumerate.Candidate) Verdict {
	if f.IsConstant() {
		return Verdict{Reason: ReasonConstant, First: -1, Second: -1}
	}

	n := space.Len()
	for i := 0; i < n; i++ {
		c1 := space.At(i)
		out1 := f.Bit(i)
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			c2 := space.At(j)
			out2 := f.Bit(j)

			if c1.ActivatorLevel() >= c2.ActivatorLevel() && c1.RepressorLevel() <= c2.RepressorLevel() {
				if out1 < out2 {
					return Verdict{Reason: ReasonActivatorDominance, First: i, Second: j}
				}
			}

			if c1.ActivatorLevel() <= c2.ActivatorLevel() && c1.RepressorLevel() >= c2.RepressorLevel() {
				if out1 > out2 {
					return Verdict{Reason: ReasonRepressorDominance, First: i, Second: j}
				}
			}
		}
	}

	return Verdict{Monotonic: true, Reason: ReasonNone, First: -1, Second: -1}
}
