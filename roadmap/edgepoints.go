package roadmap

import (
	"github.com/personalrobotics/multiset-planning/space"
	"github.com/personalrobotics/multiset-planning/utils"
)

// EdgePoints allocates the interior check states for an edge from a to
// b of the given length, interpolated in bisection order so that a
// checker finds mid-edge failures early. checkRadius is half the
// space's longest valid segment length; an edge shorter than twice the
// check radius has no interior states.
func EdgePoints(s space.Space, bp *utils.BisectPerm, a, b space.State, distance, checkRadius float64) []space.State {
	if checkRadius <= 0 {
		return nil
	}
	n := int(distance / (2 * checkRadius))
	if n <= 0 {
		return nil
	}
	order := bp.Get(n)
	states := make([]space.State, n)
	for i := 0; i < n; i++ {
		st := s.Alloc()
		s.Interpolate(a, b, float64(1+order[i])/float64(n+1), st)
		states[i] = st
	}
	return states
}

// InitEdge populates an edge's interior states and resets its tags to
// match, preserving the states/tags length invariant.
func InitEdge(s space.Space, bp *utils.BisectPerm, g *Graph, e *Edge, checkRadius float64) {
	e.EdgeStates = EdgePoints(s, bp, g.Vertices[e.V].State, g.Vertices[e.W].State, e.Distance, checkRadius)
	e.EdgeTags = make([]int, len(e.EdgeStates))
}
