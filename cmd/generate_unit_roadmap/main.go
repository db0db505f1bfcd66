// Package main generates a roadmap over the unit hypercube and prints
// it on stdout in the persisted roadmap format.
//
// Usage: generate_unit_roadmap <dim> <type> <args>
// e.g.:  generate_unit_roadmap 2 rgg "n=50 radius=0.3 seed=1"
package main

import (
	"context"
	"os"
	"strconv"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"

	"github.com/personalrobotics/multiset-planning/roadmap"
	"github.com/personalrobotics/multiset-planning/space"
)

var logger = golog.NewDebugLogger("generate_unit_roadmap")

func main() {
	utils.ContextualMain(mainWithArgs, logger)
}

func mainWithArgs(ctx context.Context, args []string, logger golog.Logger) error {
	if len(args) != 4 {
		return errors.Errorf("usage: %s <dim> <type> <args>", args[0])
	}
	dim, err := strconv.Atoi(args[1])
	if err != nil {
		err = errors.Wrapf(err, "bad dimension %q", args[1])
	}
	if dim <= 0 {
		err = multierr.Append(err, errors.Errorf("dimension %d is not positive", dim))
	}
	if err != nil {
		return err
	}

	s, err := space.NewUnitBoxSpace(dim)
	if err != nil {
		return err
	}
	gen, err := roadmap.NewGenerator(s, args[2], args[3])
	if err != nil {
		return err
	}

	g := roadmap.NewGraph()
	if err := gen.Generate(g, 1); err != nil {
		return err
	}
	logger.Debugw("roadmap generated",
		"roadmap", roadmap.CanonicalName(gen),
		"vertices", g.NumVertices(),
		"edges", g.NumEdges())
	return roadmap.WriteGraph(os.Stdout, g, s)
}
