package family

import (
	"math"

	"github.com/pkg/errors"

	"github.com/personalrobotics/multiset-planning/space"
)

// trit is partial knowledge about one subset at one location.
type trit byte

const (
	tritUnknown trit = iota
	tritValid
	tritInvalid
)

// ErrEmptyFamily is returned when an effort model is built over a
// family with no subsets.
var ErrEmptyFamily = errors.New("family must be non-empty")

// Tag values index knowledge states inside an EffortModel. Tag 0 means
// nothing is known about the location. Tags are opaque to callers and
// only grow; their semantics are recomputed when the target changes.
//
// EffortModel answers, for a target subset T and a location tag, whether
// validity under T is decided, the expected remaining check cost to
// decide it, and which single predicate evaluation to perform next. The
// per-tag answers come from a memoized expected-cost recursion over the
// DAG of deduction-closed knowledge states; knowledge only grows along
// transitions, so the recursion is finite.
type EffortModel struct {
	fam   *Family
	names []SubsetName
	index map[SubsetName]int

	// relations compiled to subset indices
	inclusions    [][2]int
	intersections []struct {
		subset   int
		operands []int
	}

	target int
	// supersets[i] reports target ⊆ i under the current target; only
	// supersets are candidate checks, so that a failed check always
	// proves the target invalid.
	supersets []bool

	states  [][]trit
	ids     map[string]int
	entries []emEntry
}

type emEntry struct {
	decided bool
	invalid bool
	// expected remaining check cost to decide validity under the target
	pHat float64
	// +Inf iff known invalid under the target; otherwise a crude lower
	// bound on the probability of validity
	xHat float64
	// subset index of the cheapest next check; -1 when decided
	best int
}

// NewEffortModel compiles the family's relations. No target is set; Set
// a target before using the per-tag queries.
func NewEffortModel(fam *Family) (*EffortModel, error) {
	if fam.Len() == 0 {
		return nil, ErrEmptyFamily
	}
	m := &EffortModel{
		fam:    fam,
		names:  fam.Names(),
		index:  map[SubsetName]int{},
		target: -1,
		ids:    map[string]int{},
	}
	for i, name := range m.names {
		m.index[name] = i
	}
	for _, inc := range fam.inclusions {
		m.inclusions = append(m.inclusions, [2]int{m.index[inc[0]], m.index[inc[1]]})
	}
	for _, ins := range fam.intersections {
		ops := make([]int, len(ins.operands))
		for i, op := range ins.operands {
			ops[i] = m.index[op]
		}
		m.intersections = append(m.intersections, struct {
			subset   int
			operands []int
		}{m.index[ins.subset], ops})
	}
	// tag 0: nothing known
	m.internState(make([]trit, len(m.names)))
	return m, nil
}

// HasTarget reports whether a target subset is bound.
func (m *EffortModel) HasTarget() bool { return m.target >= 0 }

// Target returns the current target subset name; valid only when
// HasTarget.
func (m *EffortModel) Target() SubsetName { return m.names[m.target] }

// SetTarget binds the target subset and recomputes the per-tag answers.
// Existing tags remain valid indices with updated semantics.
func (m *EffortModel) SetTarget(name SubsetName) error {
	t, ok := m.index[name]
	if !ok {
		return errors.Errorf("unknown target subset %q", name)
	}
	m.target = t

	// supersets of the target: the target itself, then closed over
	// inclusions and intersection-operand containment
	m.supersets = make([]bool, len(m.names))
	m.supersets[t] = true
	for changed := true; changed; {
		changed = false
		for _, inc := range m.inclusions {
			if m.supersets[inc[0]] && !m.supersets[inc[1]] {
				m.supersets[inc[1]] = true
				changed = true
			}
		}
		for _, ins := range m.intersections {
			if !m.supersets[ins.subset] {
				continue
			}
			for _, op := range ins.operands {
				if !m.supersets[op] {
					m.supersets[op] = true
					changed = true
				}
			}
		}
	}

	for i := range m.entries {
		m.entries[i] = m.computeEntry(m.states[i])
	}
	return nil
}

// IsEvaled reports whether validity under the target is fully
// determined from this tag.
func (m *EffortModel) IsEvaled(tag int) bool {
	return m.entries[tag].decided
}

// PHat returns the expected remaining check cost to decide validity
// under the target from this tag; zero when decided.
func (m *EffortModel) PHat(tag int) float64 {
	return m.entries[tag].pHat
}

// XHat returns +Inf when the location is known invalid under the
// target, and a finite probability-mass lower bound otherwise.
func (m *EffortModel) XHat(tag int) float64 {
	return m.entries[tag].xHat
}

// EvalPartial advances the tag by performing exactly one predicate
// evaluation, the one minimizing expected remaining cost. It returns
// whether the predicate passed; on failure the new tag is known
// invalid under the target. On a tag that is already decided it
// evaluates nothing and returns whether the tag is known valid.
func (m *EffortModel) EvalPartial(tag *int, st space.State) bool {
	entry := m.entries[*tag]
	if entry.decided {
		return !entry.invalid
	}
	check := entry.best
	passed := m.fam.subsets[m.names[check]].Predicate(st)
	result := tritValid
	if !passed {
		result = tritInvalid
	}
	next := append([]trit{}, m.states[*tag]...)
	next[check] = result
	m.close(next)
	*tag = m.internState(next)
	return passed
}

// internState canonicalizes a closed knowledge vector to a tag,
// creating its entry on first sight.
func (m *EffortModel) internState(k []trit) int {
	key := string(tritBytes(k))
	if id, ok := m.ids[key]; ok {
		return id
	}
	id := len(m.states)
	m.states = append(m.states, k)
	m.ids[key] = id
	if m.target >= 0 {
		m.entries = append(m.entries, m.computeEntry(k))
	} else {
		m.entries = append(m.entries, emEntry{best: -1})
	}
	return id
}

func tritBytes(k []trit) []byte {
	b := make([]byte, len(k))
	for i, t := range k {
		b[i] = byte(t)
	}
	return b
}

// close applies the relation deduction rules to fixpoint, in place. A
// contradiction means the caller's predicates violate the declared
// relations; that is an unrecoverable modeling error.
func (m *EffortModel) close(k []trit) {
	set := func(i int, v trit) bool {
		switch k[i] {
		case tritUnknown:
			k[i] = v
			return true
		case v:
			return false
		}
		panic("family relations contradict predicate results")
	}
	for changed := true; changed; {
		changed = false
		for _, inc := range m.inclusions {
			sub, sup := inc[0], inc[1]
			if k[sub] == tritValid && k[sup] != tritValid {
				changed = set(sup, tritValid) || changed
			}
			if k[sup] == tritInvalid && k[sub] != tritInvalid {
				changed = set(sub, tritInvalid) || changed
			}
		}
		for _, ins := range m.intersections {
			allValid := true
			numValid := 0
			anyInvalid := false
			for _, op := range ins.operands {
				switch k[op] {
				case tritValid:
					numValid++
				case tritInvalid:
					anyInvalid = true
					allValid = false
				default:
					allValid = false
				}
			}
			switch {
			case anyInvalid:
				if k[ins.subset] != tritInvalid {
					changed = set(ins.subset, tritInvalid) || changed
				}
			case allValid:
				if k[ins.subset] != tritValid {
					changed = set(ins.subset, tritValid) || changed
				}
			}
			if k[ins.subset] == tritValid {
				for _, op := range ins.operands {
					if k[op] != tritValid {
						changed = set(op, tritValid) || changed
					}
				}
			}
			if k[ins.subset] == tritInvalid && numValid == len(ins.operands)-1 {
				for _, op := range ins.operands {
					if k[op] == tritUnknown {
						changed = set(op, tritInvalid) || changed
					}
				}
			}
		}
	}
}

// computeEntry evaluates the expected-cost recursion for one knowledge
// state under the current target.
func (m *EffortModel) computeEntry(k []trit) emEntry {
	memo := map[string]float64{}
	cost, best := m.expectedCost(k, memo)
	entry := emEntry{pHat: cost, best: best}
	switch k[m.target] {
	case tritValid:
		entry.decided = true
		entry.best = -1
		entry.xHat = 1
	case tritInvalid:
		entry.decided = true
		entry.invalid = true
		entry.best = -1
		entry.xHat = math.Inf(1)
	default:
		entry.xHat = m.validityBound(k)
	}
	return entry
}

// expectedCost returns the minimal expected remaining check cost to
// decide the target from state k, and the subset index realizing it.
func (m *EffortModel) expectedCost(k []trit, memo map[string]float64) (float64, int) {
	if k[m.target] != tritUnknown {
		return 0, -1
	}
	key := string(tritBytes(k))
	if c, ok := memo[key]; ok {
		return c, -1
	}
	// guard against re-entry; knowledge growth makes true cycles
	// impossible, so any hit on the guard is within this call tree only
	memo[key] = math.Inf(1)

	bestCost := math.Inf(1)
	best := -1
	for c := range m.names {
		if !m.supersets[c] || k[c] != tritUnknown {
			continue
		}
		sub := m.fam.subsets[m.names[c]]
		succ := append([]trit{}, k...)
		succ[c] = tritValid
		m.close(succ)
		succCost, _ := m.expectedCost(succ, memo)
		// a failed superset check proves the target invalid, so the
		// failure branch carries no further cost
		cost := sub.CheckCost + sub.PriorValid*succCost
		if cost < bestCost {
			bestCost = cost
			best = c
		}
	}
	memo[key] = bestCost
	return bestCost, best
}

// validityBound multiplies the priors of the still-unknown candidate
// checks; only the +Inf case of XHat is load-bearing, this finite value
// is a crude estimate.
func (m *EffortModel) validityBound(k []trit) float64 {
	bound := 1.0
	for c := range m.names {
		if m.supersets[c] && k[c] == tritUnknown {
			bound *= m.fam.subsets[m.names[c]].PriorValid
		}
	}
	return bound
}
