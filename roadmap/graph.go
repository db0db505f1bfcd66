// Package roadmap provides the probabilistic roadmap graph, its batch
// generators, and the persisted text format.
package roadmap

import (
	"fmt"

	"github.com/personalrobotics/multiset-planning/space"
)

// Vertex is a sampled configuration in the roadmap. Fields double as
// the vertex property maps of the planner.
type Vertex struct {
	// Index is the stable insertion id of the vertex.
	Index int
	// State is the configuration owned by this vertex.
	State space.State
	// Subgraph is the batch at which the vertex first appeared.
	Subgraph int
	// IsShadow is reserved for roadmap pruning; unused in the base flow.
	IsShadow bool
	// Tag is the family effort model tag for the vertex state.
	Tag int
}

// Edge is a candidate local path between two roadmap vertices.
type Edge struct {
	// Index is the stable insertion id of the edge.
	Index int
	// V and W are the endpoint vertex indices.
	V, W int
	// Distance is the cached space distance between the endpoints.
	Distance float64
	// Subgraph is the batch at which the edge appeared.
	Subgraph int
	// EdgeStates holds the interior check states in bisection order.
	EdgeStates []space.State
	// EdgeTags holds one effort model tag per interior state.
	EdgeTags []int
	// WLazy is the current lazy weight of the edge.
	WLazy float64
}

// Other returns the endpoint of e opposite v.
func (e *Edge) Other(v int) int {
	if e.V == v {
		return e.W
	}
	return e.V
}

// Graph is an undirected roadmap with stable vertex and edge indices.
// Removal is LIFO only, which keeps indices stable; it exists to serve
// overlay unapply.
type Graph struct {
	Vertices []*Vertex
	Edges    []*Edge
	// incident edge indices per vertex
	adj [][]int
}

// NewGraph returns an empty roadmap graph.
func NewGraph() *Graph {
	return &Graph{}
}

// NumVertices returns the vertex count.
func (g *Graph) NumVertices() int { return len(g.Vertices) }

// NumEdges returns the edge count.
func (g *Graph) NumEdges() int { return len(g.Edges) }

// AddVertex appends a vertex owning the given state and returns it.
func (g *Graph) AddVertex(st space.State, subgraph int) *Vertex {
	v := &Vertex{
		Index:    len(g.Vertices),
		State:    st,
		Subgraph: subgraph,
	}
	g.Vertices = append(g.Vertices, v)
	g.adj = append(g.adj, nil)
	return v
}

// AddEdge appends an edge between vertices u and v and returns it. The
// edge index is the edge's position in Edges, so it increases with each
// insertion; an index freed by RemoveLastEdge is reused by the next one.
func (g *Graph) AddEdge(u, v int, distance float64, subgraph int) *Edge {
	e := &Edge{
		Index:    len(g.Edges),
		V:        u,
		W:        v,
		Distance: distance,
		Subgraph: subgraph,
	}
	g.Edges = append(g.Edges, e)
	g.adj[u] = append(g.adj[u], e.Index)
	g.adj[v] = append(g.adj[v], e.Index)
	return e
}

// IncidentEdges returns the indices of edges incident to vertex v. The
// returned slice is owned by the graph.
func (g *Graph) IncidentEdges(v int) []int {
	return g.adj[v]
}

// RemoveLastEdge removes the most recently inserted edge. It panics if
// the named edge is not the last one; overlay bookkeeping guarantees
// LIFO order.
func (g *Graph) RemoveLastEdge(index int) {
	if len(g.Edges) == 0 || index != len(g.Edges)-1 {
		panic(fmt.Sprintf("non-LIFO edge removal: %d with %d edges", index, len(g.Edges)))
	}
	e := g.Edges[index]
	g.adj[e.V] = g.adj[e.V][:len(g.adj[e.V])-1]
	if e.V != e.W {
		g.adj[e.W] = g.adj[e.W][:len(g.adj[e.W])-1]
	}
	g.Edges = g.Edges[:index]
}

// RemoveLastVertex removes the most recently inserted vertex, which must
// have no incident edges.
func (g *Graph) RemoveLastVertex(index int) {
	if len(g.Vertices) == 0 || index != len(g.Vertices)-1 {
		panic(fmt.Sprintf("non-LIFO vertex removal: %d with %d vertices", index, len(g.Vertices)))
	}
	if len(g.adj[index]) != 0 {
		panic(fmt.Sprintf("removing vertex %d with %d incident edges", index, len(g.adj[index])))
	}
	g.Vertices = g.Vertices[:index]
	g.adj = g.adj[:index]
}
