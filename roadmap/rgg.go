package roadmap

import (
	"fmt"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/personalrobotics/multiset-planning/space"
)

// RGG is a single-batch random geometric graph generator: n uniform
// samples from a seeded sampler, each connected to every earlier vertex
// within the connection radius.
type RGG struct {
	space  space.Space
	args   string
	n      int
	radius float64
	seed   int64

	numGenerated int
	verticesMade int
	edgesMade    int
	rng          *rand.Rand
}

// NewRGG parses and validates canonical args of the form
// "n=<uint> radius=<float> seed=<uint>".
func NewRGG(s space.Space, args string) (*RGG, error) {
	var n int
	var radius float64
	var seed int64
	if _, err := fmt.Sscanf(args, "n=%d radius=%g seed=%d", &n, &radius, &seed); err != nil {
		return nil, errors.Wrap(err, "bad args to rgg roadmap")
	}
	if canonical := fmt.Sprintf("n=%d radius=%s seed=%d", n, formatFloat(radius), seed); args != canonical {
		return nil, errors.Errorf("bad args: %q not in canonical form %q", args, canonical)
	}
	if n < 0 || radius < 0 || seed < 0 {
		return nil, errors.Errorf("bad args: negative rgg parameter in %q", args)
	}
	return &RGG{
		space:  s,
		args:   args,
		n:      n,
		radius: radius,
		seed:   seed,
		rng:    rand.New(rand.NewSource(seed)),
	}, nil
}

func (r *RGG) Type() string { return TypeRGG }

func (r *RGG) Args() string { return r.args }

// BatchCap is 1: an RGG is a single batch.
func (r *RGG) BatchCap() int { return 1 }

func (r *RGG) NumGenerated() int { return r.numGenerated }

// Generate samples the single batch. Once generated, further calls with
// targetBatches of 1 are no-ops; asking for more batches is an error.
func (r *RGG) Generate(g *Graph, targetBatches int) error {
	if targetBatches > 1 {
		return errors.Errorf("rgg roadmap supports only 1 batch, not %d", targetBatches)
	}
	if r.numGenerated != 0 || targetBatches != 1 {
		return nil
	}
	for g.NumVertices() < r.n {
		st := r.space.Alloc()
		r.space.SampleUniform(r.rng, st)
		vNew := g.AddVertex(st, 0)
		for ui := 0; ui < vNew.Index; ui++ {
			dist := r.space.Distance(st, g.Vertices[ui].State)
			if r.radius < dist {
				continue
			}
			g.AddEdge(vNew.Index, ui, dist, 0)
			r.edgesMade++
		}
		r.verticesMade++
	}
	r.numGenerated = 1
	return nil
}
