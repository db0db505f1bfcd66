package motionplan

import (
	"testing"

	"go.viam.com/test"

	"github.com/personalrobotics/multiset-planning/roadmap"
	"github.com/personalrobotics/multiset-planning/space"
)

func TestOverlayApplyRoundTrip(t *testing.T) {
	g := roadmap.NewGraph()
	for i := 0; i < 4; i++ {
		g.AddVertex(space.State([]float64{float64(i), 0}), 0)
	}
	coreV, coreE := g.NumVertices(), g.NumEdges()

	om := newOverlayManager(g)
	start := om.addRoot(space.State([]float64{-1, 0}))
	goal := om.addRoot(space.State([]float64{4, 0}))
	for _, pair := range []struct{ root, core int }{
		{start, 0}, {start, 1}, {goal, 2}, {goal, 3},
	} {
		anchor := om.addAnchor(pair.core)
		oe := om.addEdge(pair.root, anchor, 1)
		oe.edgeTags = []int{0, 0}
		oe.edgeStates = []space.State{
			space.State([]float64{0, 0}),
			space.State([]float64{0, 0}),
		}
	}

	om.apply()
	test.That(t, om.isApplied, test.ShouldBeTrue)
	test.That(t, g.NumVertices(), test.ShouldEqual, coreV+2)
	test.That(t, g.NumEdges(), test.ShouldEqual, coreE+4)
	test.That(t, om.appliedVertices, test.ShouldHaveLength, 2)
	test.That(t, om.appliedEdges, test.ShouldHaveLength, 4)

	// re-apply without unapply is a no-op
	om.apply()
	test.That(t, g.NumVertices(), test.ShouldEqual, coreV+2)
	test.That(t, g.NumEdges(), test.ShouldEqual, coreE+4)

	// edits to applied core properties survive the round trip
	firstCoreEdge := om.edges[0].coreEdge
	g.Edges[firstCoreEdge].WLazy = 7.0
	g.Edges[firstCoreEdge].EdgeTags[1] = 5
	startCore := om.vertices[start].coreVertex
	g.Vertices[startCore].Tag = 3

	om.unapply()
	test.That(t, om.isApplied, test.ShouldBeFalse)
	test.That(t, g.NumVertices(), test.ShouldEqual, coreV)
	test.That(t, g.NumEdges(), test.ShouldEqual, coreE)
	test.That(t, om.edges[0].wLazy, test.ShouldEqual, 7.0)
	test.That(t, om.edges[0].edgeTags, test.ShouldResemble, []int{0, 5})
	test.That(t, om.vertices[start].tag, test.ShouldEqual, 3)
	test.That(t, om.vertices[start].coreVertex, test.ShouldEqual, -1)

	om.apply()
	test.That(t, g.Edges[om.edges[0].coreEdge].WLazy, test.ShouldEqual, 7.0)
	test.That(t, g.Edges[om.edges[0].coreEdge].EdgeTags, test.ShouldResemble, []int{0, 5})
	test.That(t, g.Vertices[om.vertices[start].coreVertex].Tag, test.ShouldEqual, 3)

	// edge bookkeeping invariant holds throughout
	for _, e := range g.Edges {
		test.That(t, len(e.EdgeStates), test.ShouldEqual, len(e.EdgeTags))
	}
}

func TestOverlayClearRequiresUnapplied(t *testing.T) {
	g := roadmap.NewGraph()
	g.AddVertex(space.State([]float64{0, 0}), 0)

	om := newOverlayManager(g)
	om.addRoot(space.State([]float64{1, 1}))
	om.apply()
	test.That(t, func() { om.clear() }, test.ShouldPanic)
	om.unapply()
	om.clear()
	test.That(t, om.vertices, test.ShouldHaveLength, 0)
	test.That(t, om.edges, test.ShouldHaveLength, 0)
}
