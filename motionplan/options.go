package motionplan

import (
	"encoding/json"

	"go.uber.org/multierr"

	"github.com/pkg/errors"
)

// default values for planner options.
const (
	// weight per unit of edge distance.
	defaultCoeffDistance = 1.0

	// weight per unit of expected remaining check cost. Zero by
	// default: the lazy weight is then pure distance and the effort
	// model contributes nothing to edge ordering, which is what a
	// caller wanting Euclidean-shortest paths expects.
	defaultCoeffCheckCost = 0.0

	// weight per unit of distance times batch index, penalizing later
	// densification batches.
	defaultCoeffSubgraph = 0.0

	// space distance within which start and goal are anchored to
	// roadmap vertices.
	defaultAnchorRadius = 0.12
)

// the set of supported edge selector policies.
const (
	// SelectorFwd evaluates the first unevaluated edge from the source.
	SelectorFwd = "fwd"
	// SelectorAlt evaluates the unevaluated edge nearest the middle of
	// the candidate path, alternating sides as evaluation proceeds.
	SelectorAlt = "alt"
)

// Options configure a Planner.
type Options struct {
	// Lazy weight coefficients; all must be non-negative.
	CoeffDistance  float64 `json:"coeff_distance"`
	CoeffCheckCost float64 `json:"coeff_checkcost"`
	CoeffSubgraph  float64 `json:"coeff_subgraph"`

	// Selector is the edge evaluation policy, "fwd" or "alt".
	Selector string `json:"selector"`

	// AnchorRadius is the space distance within which start and goal
	// connect to roadmap vertices.
	AnchorRadius float64 `json:"anchor_radius"`

	// MaxBatches caps densification; 0 defers to the generator's own
	// batch cap.
	MaxBatches int `json:"max_batches"`
}

// NewBasicOptions returns the default planner options.
func NewBasicOptions() *Options {
	return &Options{
		CoeffDistance:  defaultCoeffDistance,
		CoeffCheckCost: defaultCoeffCheckCost,
		CoeffSubgraph:  defaultCoeffSubgraph,
		Selector:       SelectorAlt,
		AnchorRadius:   defaultAnchorRadius,
	}
}

func (o *Options) validate() error {
	var err error
	if o.CoeffDistance < 0 {
		err = multierr.Append(err, errors.Errorf("coeff_distance %g is negative", o.CoeffDistance))
	}
	if o.CoeffCheckCost < 0 {
		err = multierr.Append(err, errors.Errorf("coeff_checkcost %g is negative", o.CoeffCheckCost))
	}
	if o.CoeffSubgraph < 0 {
		err = multierr.Append(err, errors.Errorf("coeff_subgraph %g is negative", o.CoeffSubgraph))
	}
	if o.Selector != SelectorFwd && o.Selector != SelectorAlt {
		err = multierr.Append(err, errors.Errorf("unknown selector %q", o.Selector))
	}
	if o.AnchorRadius <= 0 {
		err = multierr.Append(err, errors.Errorf("anchor_radius %g is not positive", o.AnchorRadius))
	}
	if o.MaxBatches < 0 {
		err = multierr.Append(err, errors.Errorf("max_batches %d is negative", o.MaxBatches))
	}
	return err
}

// OptionsFromExtra overlays recognized keys from a loose option map
// onto the defaults, the same way planner extras decode elsewhere: via
// a JSON round trip.
func OptionsFromExtra(extra map[string]interface{}) (*Options, error) {
	opts := NewBasicOptions()
	if len(extra) == 0 {
		return opts, nil
	}
	jsonBytes, err := json.Marshal(extra)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(jsonBytes, opts); err != nil {
		return nil, err
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return opts, nil
}
