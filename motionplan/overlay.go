package motionplan

import (
	"fmt"

	"github.com/personalrobotics/multiset-planning/roadmap"
	"github.com/personalrobotics/multiset-planning/space"
)

// overlayVertex is either a root (start/goal, owning its own state) or
// an anchor (a stub referring to a pre-existing core vertex).
type overlayVertex struct {
	anchor bool

	// root properties, pushed to the core vertex on apply
	state    space.State
	subgraph int
	isShadow bool
	tag      int

	// anchors: the referenced core vertex, set at construction.
	// roots: the inserted core vertex while applied, else -1.
	coreVertex int
}

// overlayEdge connects two overlay vertices and corresponds to a
// freshly inserted core edge while applied.
type overlayEdge struct {
	u, v int

	distance   float64
	subgraph   int
	edgeStates []space.State
	edgeTags   []int
	wLazy      float64

	// the inserted core edge index while applied, else -1
	coreEdge int
}

// overlayManager grafts start/goal roots and their anchor edges onto
// the core graph and removes them again, preserving edits made to the
// applied core properties across apply/unapply cycles.
type overlayManager struct {
	g         *roadmap.Graph
	vertices  []*overlayVertex
	edges     []*overlayEdge
	isApplied bool

	// overlay vertex/edge ids whose core entities this manager
	// inserted, in insertion order
	appliedVertices []int
	appliedEdges    []int
}

func newOverlayManager(g *roadmap.Graph) *overlayManager {
	return &overlayManager{g: g}
}

func (om *overlayManager) addRoot(st space.State) int {
	om.vertices = append(om.vertices, &overlayVertex{
		state:      st,
		coreVertex: -1,
	})
	return len(om.vertices) - 1
}

func (om *overlayManager) addAnchor(coreVertex int) int {
	om.vertices = append(om.vertices, &overlayVertex{
		anchor:     true,
		coreVertex: coreVertex,
	})
	return len(om.vertices) - 1
}

func (om *overlayManager) addEdge(u, v int, distance float64) *overlayEdge {
	e := &overlayEdge{
		u:        u,
		v:        v,
		distance: distance,
		coreEdge: -1,
	}
	om.edges = append(om.edges, e)
	return e
}

// clear discards all overlay entities. Clearing while applied would
// orphan inserted core entities.
func (om *overlayManager) clear() {
	if om.isApplied {
		panic("overlay cleared while applied")
	}
	om.vertices = nil
	om.edges = nil
}

// apply inserts core vertices for unapplied roots and core edges for
// every overlay edge, pushing property values overlay -> core. A second
// apply without an intervening unapply is a no-op.
func (om *overlayManager) apply() {
	if om.isApplied {
		return
	}
	for i, ov := range om.vertices {
		if ov.anchor || ov.coreVertex != -1 {
			continue
		}
		v := om.g.AddVertex(ov.state, ov.subgraph)
		v.IsShadow = ov.isShadow
		v.Tag = ov.tag
		ov.coreVertex = v.Index
		om.appliedVertices = append(om.appliedVertices, i)
	}
	for i, oe := range om.edges {
		u := om.vertices[oe.u].coreVertex
		v := om.vertices[oe.v].coreVertex
		if u < 0 || v < 0 {
			panic(fmt.Sprintf("overlay edge %d applied with unresolved endpoint", i))
		}
		e := om.g.AddEdge(u, v, oe.distance, oe.subgraph)
		e.EdgeStates = append([]space.State{}, oe.edgeStates...)
		e.EdgeTags = append([]int{}, oe.edgeTags...)
		e.WLazy = oe.wLazy
		oe.coreEdge = e.Index
		om.appliedEdges = append(om.appliedEdges, i)
	}
	om.isApplied = true
}

// unapply pushes current core property values back into the overlay so
// that edits made during search survive the round trip, then removes
// the inserted core edges and vertices in LIFO order.
func (om *overlayManager) unapply() {
	if !om.isApplied {
		return
	}
	for _, vi := range om.appliedVertices {
		ov := om.vertices[vi]
		v := om.g.Vertices[ov.coreVertex]
		ov.state = v.State
		ov.subgraph = v.Subgraph
		ov.isShadow = v.IsShadow
		ov.tag = v.Tag
	}
	for _, ei := range om.appliedEdges {
		oe := om.edges[ei]
		e := om.g.Edges[oe.coreEdge]
		oe.distance = e.Distance
		oe.subgraph = e.Subgraph
		oe.edgeStates = append([]space.State{}, e.EdgeStates...)
		oe.edgeTags = append([]int{}, e.EdgeTags...)
		oe.wLazy = e.WLazy
	}
	for i := len(om.appliedEdges) - 1; i >= 0; i-- {
		oe := om.edges[om.appliedEdges[i]]
		om.g.RemoveLastEdge(oe.coreEdge)
		oe.coreEdge = -1
	}
	for i := len(om.appliedVertices) - 1; i >= 0; i-- {
		ov := om.vertices[om.appliedVertices[i]]
		om.g.RemoveLastVertex(ov.coreVertex)
		ov.coreVertex = -1
	}
	om.appliedVertices = nil
	om.appliedEdges = nil
	om.isApplied = false
}
