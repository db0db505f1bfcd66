// Package motionplan implements a multiset lazy shortest-path planner
// over an incrementally densified probabilistic roadmap. Expensive
// validity checks are deferred until a candidate shortest path demands
// them, and partial results are shared across related validity contexts
// through a family effort model.
package motionplan

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"github.com/personalrobotics/multiset-planning/family"
	"github.com/personalrobotics/multiset-planning/roadmap"
	"github.com/personalrobotics/multiset-planning/space"
	"github.com/personalrobotics/multiset-planning/utils"
)

// Solution is the result of a Solve call. Path is populated only for
// StatusExactSolution and holds fresh copies of the states along the
// path, start first.
type Solution struct {
	Status Status
	Path   []space.State
}

// Planner binds a configuration space, a validity family, and a roadmap
// generator into a lazy shortest-path planner. It is single-threaded;
// none of its collaborators may be mutated by the caller during Solve.
type Planner struct {
	logger golog.Logger
	space  space.Space
	fam    *family.Family
	effort *family.EffortModel
	gen    roadmap.Generator
	opts   *Options

	g       *roadmap.Graph
	overlay *overlayManager
	bp      *utils.BisectPerm
	// half the space's longest valid segment length
	checkRadius float64

	numBatches int

	problemSet bool
	trivial    bool
	ovStart    int
	ovGoal     int
	startState space.State

	alglog io.Writer
}

// NewPlanner generates the first roadmap batch and prepares the family
// effort model. opts may be nil for defaults.
func NewPlanner(
	s space.Space,
	fam *family.Family,
	gen roadmap.Generator,
	opts *Options,
	logger golog.Logger,
) (*Planner, error) {
	if fam.Len() == 0 {
		return nil, NewEmptyFamilyError()
	}
	if opts == nil {
		opts = NewBasicOptions()
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	effort, err := family.NewEffortModel(fam)
	if err != nil {
		return nil, err
	}

	p := &Planner{
		logger:      logger,
		space:       s,
		fam:         fam,
		effort:      effort,
		gen:         gen,
		opts:        opts,
		g:           roadmap.NewGraph(),
		bp:          utils.NewBisectPerm(),
		checkRadius: 0.5 * s.LongestValidSegmentLength(),
	}
	p.overlay = newOverlayManager(p.g)

	if err := gen.Generate(p.g, 1); err != nil {
		return nil, errors.Wrap(err, "generating initial roadmap batch")
	}
	p.numBatches = 1
	for _, e := range p.g.Edges {
		roadmap.InitEdge(p.space, p.bp, p.g, e, p.checkRadius)
	}
	logger.Debugw("roadmap generated",
		"roadmap", roadmap.CanonicalName(gen),
		"vertices", p.g.NumVertices(),
		"edges", p.g.NumEdges())
	return p, nil
}

// SetAlgLog routes a line-based algorithm trace to w; nil disables it.
func (p *Planner) SetAlgLog(w io.Writer) {
	p.alglog = w
}

// NumSubgraphsGenerated returns how many roadmap batches exist.
func (p *Planner) NumSubgraphsGenerated() int {
	return p.numBatches
}

// SetProblem binds the target validity subset and the start/goal pair.
// Switching targets recomputes every lazy edge weight; previously
// evaluated tags keep their knowledge under the new target.
func (p *Planner) SetProblem(start, goal space.State, target family.SubsetName) error {
	if !p.effort.HasTarget() || p.effort.Target() != target {
		if err := p.effort.SetTarget(target); err != nil {
			return err
		}
		for _, e := range p.g.Edges {
			p.calcWLazy(e)
		}
	}

	p.overlay.unapply()
	p.overlay.clear()

	startCopy := p.space.Alloc()
	p.space.Copy(start, startCopy)
	p.ovStart = p.overlay.addRoot(startCopy)

	goalCopy := p.space.Alloc()
	p.space.Copy(goal, goalCopy)
	p.ovGoal = p.overlay.addRoot(goalCopy)

	p.startState = startCopy
	p.trivial = p.space.Distance(startCopy, goalCopy) == 0

	for _, root := range []int{p.ovStart, p.ovGoal} {
		rootState := p.overlay.vertices[root].state
		for _, v := range p.g.Vertices {
			dist := p.space.Distance(rootState, v.State)
			if p.opts.AnchorRadius < dist {
				continue
			}
			anchor := p.overlay.addAnchor(v.Index)
			oe := p.overlay.addEdge(root, anchor, dist)
			oe.edgeStates = roadmap.EdgePoints(p.space, p.bp, rootState, v.State, dist, p.checkRadius)
			oe.edgeTags = make([]int, len(oe.edgeStates))
		}
	}

	p.overlayApply()
	p.problemSet = true
	return nil
}

// Solve runs batches of lazy search, densifying the roadmap between
// failures, until an exact solution is found, the generator runs out of
// batches, or termination trips. termination may be nil; context
// cancellation trips it as well. Both are polled at the top of each
// search iteration and before every densification.
func (p *Planner) Solve(ctx context.Context, termination func() bool) (*Solution, error) {
	if !p.problemSet {
		return nil, NewNoProblemError()
	}
	tripped := func() bool {
		if ctx.Err() != nil {
			return true
		}
		return termination != nil && termination()
	}

	if p.trivial {
		out := p.space.Alloc()
		p.space.Copy(p.startState, out)
		return &Solution{Status: StatusExactSolution, Path: []space.State{out}}, nil
	}

	for {
		p.logAliases()
		path, success, cancelled := lazySP(
			p.g,
			p.overlay.vertices[p.ovStart].coreVertex,
			p.overlay.vertices[p.ovGoal].coreVertex,
			func(e *roadmap.Edge) float64 { return e.WLazy },
			p.isEvaledEdge,
			p.evaluateEdge,
			p.opts.Selector,
			tripped,
			p.alglog,
		)
		if cancelled {
			return &Solution{Status: StatusTimeout}, nil
		}
		if success {
			return &Solution{Status: StatusExactSolution, Path: p.buildPath(path)}, nil
		}

		if batchCap := p.batchCap(); batchCap != 0 && p.numBatches+1 > batchCap {
			p.logger.Debugw("roadmap exhausted", "batches", p.numBatches)
			return &Solution{Status: StatusTimeout}, nil
		}
		if tripped() {
			return &Solution{Status: StatusTimeout}, nil
		}

		p.logger.Debugw("densifying", "batch", p.numBatches)
		p.overlay.unapply()
		numEdgesBefore := p.g.NumEdges()
		if err := p.gen.Generate(p.g, p.numBatches+1); err != nil {
			return nil, errors.Wrap(err, "densifying roadmap")
		}
		p.numBatches++
		for _, e := range p.g.Edges[numEdgesBefore:] {
			roadmap.InitEdge(p.space, p.bp, p.g, e, p.checkRadius)
			p.calcWLazy(e)
		}
		p.overlayApply()
	}
}

// DumpGraph writes the core roadmap in the persisted text format. The
// space must be a real-vector space for states to serialize.
func (p *Planner) DumpGraph(w io.Writer) error {
	rvs, ok := p.space.(*space.RealVectorSpace)
	if !ok {
		return errors.New("graph dump requires a real vector space")
	}
	return roadmap.WriteGraph(w, p.g, rvs)
}

// batchCap resolves the effective densification cap: the tighter of the
// generator's own cap and the configured maximum.
func (p *Planner) batchCap() int {
	limit := p.gen.BatchCap()
	if p.opts.MaxBatches != 0 && (limit == 0 || p.opts.MaxBatches < limit) {
		limit = p.opts.MaxBatches
	}
	return limit
}

// overlayApply applies the overlay and brings the lazy weights of the
// inserted core edges current.
func (p *Planner) overlayApply() {
	if p.overlay.isApplied {
		return
	}
	p.overlay.apply()
	for _, ei := range p.overlay.appliedEdges {
		p.calcWLazy(p.g.Edges[p.overlay.edges[ei].coreEdge])
	}
}

// calcWLazy recomputes the lazy weight of one edge from its endpoint
// and interior tags.
func (p *Planner) calcWLazy(e *roadmap.Edge) {
	va := p.g.Vertices[e.V]
	vb := p.g.Vertices[e.W]
	knownInvalid := math.IsInf(p.effort.XHat(va.Tag), 1) || math.IsInf(p.effort.XHat(vb.Tag), 1)
	for _, tag := range e.EdgeTags {
		if knownInvalid {
			break
		}
		knownInvalid = math.IsInf(p.effort.XHat(tag), 1)
	}
	if knownInvalid {
		e.WLazy = math.Inf(1)
		return
	}
	w := p.opts.CoeffDistance * e.Distance
	w += p.opts.CoeffSubgraph * e.Distance * float64(e.Subgraph)
	for _, tag := range e.EdgeTags {
		w += p.opts.CoeffCheckCost * p.effort.PHat(tag)
	}
	w += 0.5 * p.opts.CoeffCheckCost * p.effort.PHat(va.Tag)
	w += 0.5 * p.opts.CoeffCheckCost * p.effort.PHat(vb.Tag)
	e.WLazy = w
}

// isEvaledEdge reports whether both endpoints and every interior state
// of the edge are fully decided under the target.
func (p *Planner) isEvaledEdge(e *roadmap.Edge) bool {
	if !p.effort.IsEvaled(p.g.Vertices[e.V].Tag) || !p.effort.IsEvaled(p.g.Vertices[e.W].Tag) {
		return false
	}
	for _, tag := range e.EdgeTags {
		if !p.effort.IsEvaled(tag) {
			return false
		}
	}
	return true
}

// evaluateEdge performs pending checks on the edge: endpoints first,
// then the interior states in their stored bisection order, aborting on
// the first failure. It then brings the lazy weight of the edge and of
// every edge incident to its endpoints current, since endpoint tag
// changes affect those weights too.
func (p *Planner) evaluateEdge(e *roadmap.Edge) float64 {
	va := p.g.Vertices[e.V]
	vb := p.g.Vertices[e.W]

	aborted := false
	for _, v := range []*roadmap.Vertex{va, vb} {
		for !aborted && !p.effort.IsEvaled(v.Tag) {
			aborted = !p.effort.EvalPartial(&v.Tag, v.State)
		}
		if aborted {
			break
		}
	}
	for i := 0; !aborted && i < len(e.EdgeTags); i++ {
		for !aborted && !p.effort.IsEvaled(e.EdgeTags[i]) {
			aborted = !p.effort.EvalPartial(&e.EdgeTags[i], e.EdgeStates[i])
		}
	}

	p.calcWLazy(e)
	for _, ei := range p.g.IncidentEdges(va.Index) {
		p.calcWLazy(p.g.Edges[ei])
	}
	for _, ei := range p.g.IncidentEdges(vb.Index) {
		p.calcWLazy(p.g.Edges[ei])
	}
	return e.WLazy
}

// buildPath copies out the states along an oriented edge path, start
// state first.
func (p *Planner) buildPath(path []pathEdge) []space.State {
	out := make([]space.State, 0, len(path)+1)
	first := p.space.Alloc()
	p.space.Copy(p.g.Vertices[p.overlay.vertices[p.ovStart].coreVertex].State, first)
	out = append(out, first)
	for _, pe := range path {
		st := p.space.Alloc()
		p.space.Copy(p.g.Vertices[pe.to].State, st)
		out = append(out, st)
	}
	return out
}

// logAliases writes overlay-to-core id aliases to the algorithm log so
// a trace consumer can resolve applied entities.
func (p *Planner) logAliases() {
	if p.alglog == nil {
		return
	}
	fmt.Fprintln(p.alglog, "alias reset")
	for i, vi := range p.overlay.appliedVertices {
		fmt.Fprintf(p.alglog, "alias vertex applied-%d index %d\n", i, p.overlay.vertices[vi].coreVertex)
	}
	for i, ei := range p.overlay.appliedEdges {
		fmt.Fprintf(p.alglog, "alias edge applied-%d index %d\n", i, p.g.Edges[p.overlay.edges[ei].coreEdge].Index)
	}
}
