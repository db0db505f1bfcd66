package motionplan

import (
	"fmt"
	"io"
	"math"

	"github.com/personalrobotics/multiset-planning/roadmap"
)

// lazySP alternates an inner Dijkstra over the lazy weights with
// targeted edge evaluation until a candidate path is fully evaluated.
//
// weight reads the current lazy weight, isEvaled reports whether an
// edge has been fully decided, and evaluate performs pending checks on
// an edge and returns its recomputed lazy weight. tripped is polled at
// the top of every outer iteration; alglog, when non-nil, receives a
// line-based trace.
//
// It returns the evaluated path on success; cancelled is true when
// tripped ended the search.
func lazySP(
	g *roadmap.Graph,
	start, goal int,
	weight func(*roadmap.Edge) float64,
	isEvaled func(*roadmap.Edge) bool,
	evaluate func(*roadmap.Edge) float64,
	selector string,
	tripped func() bool,
	alglog io.Writer,
) (path []pathEdge, success, cancelled bool) {
	for {
		if tripped != nil && tripped() {
			return nil, false, true
		}
		candidate, ok := dijkstraPath(g, start, goal, weight)
		if !ok {
			return nil, false, false
		}
		if alglog != nil {
			fmt.Fprintf(alglog, "candidate_path")
			for _, pe := range candidate {
				fmt.Fprintf(alglog, " %d", pe.edge.Index)
			}
			fmt.Fprintln(alglog)
		}
		target := selectEdge(candidate, isEvaled, selector)
		if target < 0 {
			return candidate, true, false
		}
		if alglog != nil {
			fmt.Fprintf(alglog, "eval_edge %d\n", candidate[target].edge.Index)
		}
		evaluate(candidate[target].edge)
	}
}

// selectEdge picks the index of the path edge to evaluate next, or -1
// if the whole path is evaluated.
func selectEdge(path []pathEdge, isEvaled func(*roadmap.Edge) bool, selector string) int {
	switch selector {
	case SelectorFwd:
		for i, pe := range path {
			if !isEvaled(pe.edge) {
				return i
			}
		}
		return -1
	default: // SelectorAlt
		center := float64(len(path)-1) / 2
		best := -1
		bestScore := math.Inf(1)
		for i, pe := range path {
			if isEvaled(pe.edge) {
				continue
			}
			if score := math.Abs(float64(i) - center); score < bestScore {
				bestScore = score
				best = i
			}
		}
		return best
	}
}
