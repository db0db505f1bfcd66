package motionplan

import (
	"container/heap"
	"math"

	"github.com/personalrobotics/multiset-planning/roadmap"
)

// pathEdge is an edge oriented from the search source; To is the vertex
// entered by walking the edge away from the start.
type pathEdge struct {
	edge     *roadmap.Edge
	from, to int
}

type queueItem struct {
	vertex int
	dist   float64
}

// distQueue orders by distance, breaking ties by lower vertex index so
// that equal-cost searches are deterministic.
type distQueue []queueItem

func (q distQueue) Len() int { return len(q) }

func (q distQueue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].vertex < q[j].vertex
}

func (q distQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *distQueue) Push(x interface{}) { *q = append(*q, x.(queueItem)) }

func (q *distQueue) Pop() interface{} {
	old := *q
	item := old[len(old)-1]
	*q = old[:len(old)-1]
	return item
}

// dijkstraPath runs Dijkstra from start under the given edge weights,
// terminating as soon as goal is settled, and pops the shortest path as
// oriented edges by walking predecessors. It returns nil, false when
// goal is unreachable under finite weights.
func dijkstraPath(g *roadmap.Graph, start, goal int, weight func(*roadmap.Edge) float64) ([]pathEdge, bool) {
	inf := math.Inf(1)
	dist := make([]float64, g.NumVertices())
	pred := make([]*roadmap.Edge, g.NumVertices())
	settled := make([]bool, g.NumVertices())
	for i := range dist {
		dist[i] = inf
	}
	dist[start] = 0

	q := &distQueue{{vertex: start, dist: 0}}
	heap.Init(q)
	for q.Len() > 0 {
		item := heap.Pop(q).(queueItem)
		u := item.vertex
		if settled[u] {
			continue
		}
		settled[u] = true
		if u == goal {
			break
		}
		for _, ei := range g.IncidentEdges(u) {
			e := g.Edges[ei]
			w := weight(e)
			if math.IsInf(w, 1) {
				continue
			}
			v := e.Other(u)
			if settled[v] {
				continue
			}
			if d := item.dist + w; d < dist[v] {
				dist[v] = d
				pred[v] = e
				heap.Push(q, queueItem{vertex: v, dist: d})
			}
		}
	}

	if math.IsInf(dist[goal], 1) {
		return nil, false
	}
	var path []pathEdge
	for v := goal; v != start; {
		e := pred[v]
		u := e.Other(v)
		path = append(path, pathEdge{edge: e, from: u, to: v})
		v = u
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, true
}
