package roadmap

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/personalrobotics/multiset-planning/space"
	"github.com/personalrobotics/multiset-planning/utils"
)

// HaltonDens is a multi-batch generator over real-vector spaces. Batch
// k adds nPerBatch Halton-placed vertices and connects each new vertex
// to all existing vertices within the batch radius
// radiusFirstBatch * (k+1)^(-1/d). Earlier batches' edges are kept even
// though the radius shrinks.
type HaltonDens struct {
	space *space.RealVectorSpace
	args  string

	nPerBatch        int
	radiusFirstBatch float64

	numGenerated int
	verticesMade int
	edgesMade    int
}

// NewHaltonDens parses and validates canonical args of the form
// "n_perbatch=<uint> radius_firstbatch=<float>". Only real-vector
// spaces are supported.
func NewHaltonDens(s space.Space, args string) (*HaltonDens, error) {
	rvs, ok := s.(*space.RealVectorSpace)
	if !ok {
		return nil, errors.New("bad args: halton_dens roadmap supports only real vector spaces")
	}
	if utils.GetPrime(rvs.Dimension()-1) == 0 {
		return nil, errors.Errorf("not enough primes hardcoded for dimension %d", rvs.Dimension())
	}
	var nPerBatch int
	var radiusFirstBatch float64
	if _, err := fmt.Sscanf(args, "n_perbatch=%d radius_firstbatch=%g", &nPerBatch, &radiusFirstBatch); err != nil {
		return nil, errors.Wrap(err, "bad args to halton_dens roadmap")
	}
	canonical := fmt.Sprintf("n_perbatch=%d radius_firstbatch=%s", nPerBatch, formatFloat(radiusFirstBatch))
	if args != canonical {
		return nil, errors.Errorf("bad args: %q not in canonical form %q", args, canonical)
	}
	if nPerBatch <= 0 || radiusFirstBatch < 0 {
		return nil, errors.Errorf("bad args: out-of-range halton_dens parameter in %q", args)
	}
	return &HaltonDens{
		space:            rvs,
		args:             args,
		nPerBatch:        nPerBatch,
		radiusFirstBatch: radiusFirstBatch,
	}, nil
}

func (h *HaltonDens) Type() string { return TypeHaltonDens }

func (h *HaltonDens) Args() string { return h.args }

// BatchCap is 0: densification is unbounded.
func (h *HaltonDens) BatchCap() int { return 0 }

func (h *HaltonDens) NumGenerated() int { return h.numGenerated }

// Generate extends the graph batch by batch until targetBatches exist.
func (h *HaltonDens) Generate(g *Graph, targetBatches int) error {
	dim := h.space.Dimension()
	for h.numGenerated < targetBatches {
		batch := h.numGenerated
		radius := h.radiusFirstBatch * math.Pow(1/float64(batch+1), 1/float64(dim))
		for g.NumVertices() < (batch+1)*h.nPerBatch {
			st := h.space.Alloc()
			values := h.space.Values(st)
			for j := 0; j < dim; j++ {
				lo, hi := h.space.BoundsLow(j), h.space.BoundsHigh(j)
				values[j] = lo + (hi-lo)*utils.Halton(utils.GetPrime(j), h.verticesMade)
			}
			vNew := g.AddVertex(st, batch)
			for ui := 0; ui < vNew.Index; ui++ {
				dist := h.space.Distance(st, g.Vertices[ui].State)
				if radius < dist {
					continue
				}
				g.AddEdge(vNew.Index, ui, dist, batch)
				h.edgesMade++
			}
			h.verticesMade++
		}
		h.numGenerated++
	}
	return nil
}
