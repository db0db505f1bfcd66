package motionplan

import "github.com/pkg/errors"

// NewNoProblemError is returned when Solve is called before SetProblem.
func NewNoProblemError() error {
	return errors.New("solve called with no problem set")
}

// NewEmptyFamilyError is returned when a planner is constructed over a
// family with no subsets.
func NewEmptyFamilyError() error {
	return errors.New("planner requires a non-empty family")
}

// Status is the outcome of a Solve call.
type Status int

const (
	// StatusUnknown is the zero status.
	StatusUnknown Status = iota
	// StatusExactSolution means a fully evaluated path was found.
	StatusExactSolution
	// StatusTimeout covers both an exhausted roadmap and a tripped
	// termination condition.
	StatusTimeout
)

func (s Status) String() string {
	switch s {
	case StatusExactSolution:
		return "exact_solution"
	case StatusTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}
