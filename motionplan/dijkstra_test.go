package motionplan

import (
	"testing"

	"go.viam.com/test"

	"github.com/personalrobotics/multiset-planning/roadmap"
)

func lineVertex(g *roadmap.Graph) int {
	return g.AddVertex(nil, 0).Index
}

func TestDijkstraTieBreakAndOrientation(t *testing.T) {
	// two equal-cost routes 0-1-3 and 0-2-3; the lower-index route wins
	g := roadmap.NewGraph()
	for i := 0; i < 4; i++ {
		lineVertex(g)
	}
	g.AddEdge(0, 1, 1, 0).WLazy = 1
	g.AddEdge(0, 2, 1, 0).WLazy = 1
	g.AddEdge(1, 3, 1, 0).WLazy = 1
	g.AddEdge(2, 3, 1, 0).WLazy = 1

	path, ok := dijkstraPath(g, 0, 3, func(e *roadmap.Edge) float64 { return e.WLazy })
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, path, test.ShouldHaveLength, 2)
	test.That(t, path[0].from, test.ShouldEqual, 0)
	test.That(t, path[0].to, test.ShouldEqual, 1)
	test.That(t, path[1].from, test.ShouldEqual, 1)
	test.That(t, path[1].to, test.ShouldEqual, 3)
}

func TestDijkstraSkipsInfiniteEdges(t *testing.T) {
	g := roadmap.NewGraph()
	for i := 0; i < 3; i++ {
		lineVertex(g)
	}
	g.AddEdge(0, 1, 1, 0).WLazy = 1
	e := g.AddEdge(1, 2, 1, 0)
	setInf(e)

	_, ok := dijkstraPath(g, 0, 2, func(e *roadmap.Edge) float64 { return e.WLazy })
	test.That(t, ok, test.ShouldBeFalse)

	// zero-edge path when start is goal
	path, ok := dijkstraPath(g, 0, 0, func(e *roadmap.Edge) float64 { return e.WLazy })
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, path, test.ShouldHaveLength, 0)
}
