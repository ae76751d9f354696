package monotone

import (
	"fmt"

	"github.com/dd0wney/regnet-monotone/pkg/network"
)

// Reason names why a candidate was rejected.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonConstant
	ReasonActivatorDominance
	ReasonRepressorDominance
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonConstant:
		return "constant"
	case ReasonActivatorDominance:
		return "activator-dominance"
	case ReasonRepressorDominance:
		return "repressor-dominance"
	default:
		return "unknown"
	}
}

// Verdict is the outcome of classifying one candidate. First and Second are
// the space indices of the violating pair, or -1.
type Verdict struct {
	Monotonic bool
	Reason    Reason
	First     int
	Second    int
}

// Describe renders the verdict with config labels from space.
func (v Verdict) Describe(space *network.Space) string {
	switch v.Reason {
	case ReasonNone:
		return "monotonic"
	case ReasonConstant:
		return "not monotonic: constant function"
	}
	c1, c2 := space.At(v.First), space.At(v.Second)
	switch v.Reason {
	case ReasonActivatorDominance:
		return fmt.Sprintf("not monotonic: %s dominates %s but has the lower output", c1, c2)
	default:
		return fmt.Sprintf("not monotonic: %s is more repressed than %s but has the higher output", c1, c2)
	}
}
