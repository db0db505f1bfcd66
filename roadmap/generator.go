package roadmap

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"

	"github.com/personalrobotics/multiset-planning/space"
)

// Published generator type names.
const (
	TypeRGG        = "rgg"
	TypeHaltonDens = "halton_dens"
)

// Generator produces roadmap batches ("subgraphs") into a graph on
// demand. Generators are stateful: successive Generate calls extend the
// graph rather than restart it.
type Generator interface {
	// Type returns the published generator type name.
	Type() string

	// Args returns the canonical argument string.
	Args() string

	// BatchCap returns the maximum number of batches this generator can
	// produce, or 0 if unbounded.
	BatchCap() int

	// NumGenerated returns how many batches have been generated so far.
	NumGenerated() int

	// Generate extends the graph until targetBatches batches exist.
	// Vertices and edges receive their subgraph index; edge indices
	// increase monotonically.
	Generate(g *Graph, targetBatches int) error
}

// NewGenerator constructs a published generator by type name. The
// argument string must be in canonical form; otherwise construction
// fails with a BadArgs error.
func NewGenerator(s space.Space, typeName, args string) (Generator, error) {
	switch typeName {
	case TypeRGG:
		return NewRGG(s, args)
	case TypeHaltonDens:
		return NewHaltonDens(s, args)
	default:
		return nil, errors.Errorf("bad args: unknown roadmap type %q", typeName)
	}
}

// CanonicalName identifies a generator (and therefore the roadmap it
// deterministically produces) for cache keying.
func CanonicalName(gen Generator) string {
	return fmt.Sprintf("%s(%s)", gen.Type(), gen.Args())
}

// formatFloat renders a double in the shortest form that parses back to
// the identical value; argument strings and the persisted roadmap
// format both require lossless round-trips.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
