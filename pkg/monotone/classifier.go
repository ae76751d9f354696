package monotone

import (
	"github.com/dd0wney/regnet-monotone/pkg/dominance"
	"github.com/dd0wney/regnet-monotone/pkg/enumerate"
	"github.com/dd0wney/regnet-monotone/pkg/network"
)

// Classifier gives the same verdict as IsMonotonic but compares only a
// precomputed set of edges: the Hasse cover edges in topological order when
// the dominance order has one, every dominance pair otherwise. Both rules of IsMonotonic
// reduce to "upper >= lower" on a dominance pair, so one check per edge
// suffices. A Classifier is read-only after construction and safe for
// concurrent use.
type Classifier struct {
	space *network.Space
	edges []dominance.Pair
}

// NewClassifier builds the edge set for space once.
func NewClassifier(space *network.Space) *Classifier {
	rel := dominance.Build(space)
	edges, err := rel.OrderedCoverEdges()
	if err != nil {
		edges = rel.Pairs()
	}
	return &Classifier{space: space, edges: edges}
}

// Space returns the space the classifier was built for.
func (c *Classifier) Space() *network.Space { return c.space }

// Edges returns how many comparisons each classification performs.
func (c *Classifier) Edges() int { return len(c.edges) }

// IsMonotonic classifies f.
func (c *Classifier) IsMonotonic(f enumerate.Candidate) bool {
	if f.IsConstant() {
		return false
	}
	for _, e := range c.edges {
		if f.Bit(e.Upper) < f.Bit(e.Lower) {
			return false
		}
	}
	return true
}
