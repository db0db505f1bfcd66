// Package family models a set of related validity contexts ("subsets")
// over one configuration space, together with the effort model that
// schedules the cheapest remaining checks to decide validity under a
// target subset.
package family

import (
	"github.com/pkg/errors"

	"github.com/personalrobotics/multiset-planning/space"
)

// SubsetName identifies a validity subset within a family.
type SubsetName string

// Predicate evaluates whether a configuration belongs to a subset. It
// is the expensive call the planner defers.
type Predicate func(space.State) bool

// Subset couples a predicate with its evaluation cost and the prior
// probability that a uniformly drawn configuration passes it.
type Subset struct {
	Predicate  Predicate
	CheckCost  float64
	PriorValid float64
}

// Family is a labeled collection of subsets with known set relations
// among them. Relations let a result for one subset be deduced from
// results for others.
type Family struct {
	subsets map[SubsetName]*Subset
	// insertion order, for stable subset indexing
	order []SubsetName
	// inclusions[i] = {sub, sup}: sub is contained in sup
	inclusions [][2]SubsetName
	// intersections: subset = intersection of operands
	intersections []intersection
}

type intersection struct {
	subset   SubsetName
	operands []SubsetName
}

// NewFamily returns an empty family.
func NewFamily() *Family {
	return &Family{subsets: map[SubsetName]*Subset{}}
}

// AddSubset registers a named subset. Cost must be positive and prior
// must lie in (0,1].
func (f *Family) AddSubset(name SubsetName, checkCost, priorValid float64, pred Predicate) error {
	if _, ok := f.subsets[name]; ok {
		return errors.Errorf("duplicate subset %q", name)
	}
	if pred == nil {
		return errors.Errorf("subset %q has no predicate", name)
	}
	if checkCost <= 0 {
		return errors.Errorf("subset %q has nonpositive check cost", name)
	}
	if priorValid <= 0 || priorValid > 1 {
		return errors.Errorf("subset %q has prior %g outside (0,1]", name, priorValid)
	}
	f.subsets[name] = &Subset{Predicate: pred, CheckCost: checkCost, PriorValid: priorValid}
	f.order = append(f.order, name)
	return nil
}

// AddInclusion records sub ⊆ sup.
func (f *Family) AddInclusion(sub, sup SubsetName) error {
	for _, name := range []SubsetName{sub, sup} {
		if _, ok := f.subsets[name]; !ok {
			return errors.Errorf("unknown subset %q in inclusion", name)
		}
	}
	f.inclusions = append(f.inclusions, [2]SubsetName{sub, sup})
	return nil
}

// AddIntersection records subset = operands[0] ∩ operands[1] ∩ ...
func (f *Family) AddIntersection(subset SubsetName, operands ...SubsetName) error {
	if _, ok := f.subsets[subset]; !ok {
		return errors.Errorf("unknown subset %q in intersection", subset)
	}
	if len(operands) == 0 {
		return errors.Errorf("intersection for %q has no operands", subset)
	}
	for _, name := range operands {
		if _, ok := f.subsets[name]; !ok {
			return errors.Errorf("unknown subset %q in intersection", name)
		}
	}
	f.intersections = append(f.intersections, intersection{subset: subset, operands: append([]SubsetName{}, operands...)})
	return nil
}

// Len returns the number of subsets.
func (f *Family) Len() int { return len(f.subsets) }

// Names returns the subset names in registration order.
func (f *Family) Names() []SubsetName {
	return append([]SubsetName{}, f.order...)
}

// Subset returns the named subset, or nil.
func (f *Family) Subset(name SubsetName) *Subset {
	return f.subsets[name]
}
