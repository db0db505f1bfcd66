package family

import (
	"math"
	"testing"

	"go.viam.com/test"

	"github.com/personalrobotics/multiset-planning/space"
)

func recordingPredicate(log *[]string, name string, result bool) Predicate {
	return func(space.State) bool {
		*log = append(*log, name)
		return result
	}
}

func TestEffortModelEmptyFamily(t *testing.T) {
	_, err := NewEffortModel(NewFamily())
	test.That(t, err, test.ShouldEqual, ErrEmptyFamily)
}

func TestEffortModelSingleSubset(t *testing.T) {
	fam := NewFamily()
	test.That(t, fam.AddSubset("self", 2, 0.5, func(space.State) bool { return true }), test.ShouldBeNil)
	m, err := NewEffortModel(fam)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, m.HasTarget(), test.ShouldBeFalse)
	test.That(t, m.SetTarget("self"), test.ShouldBeNil)
	test.That(t, m.Target(), test.ShouldEqual, SubsetName("self"))
	test.That(t, m.SetTarget("other"), test.ShouldNotBeNil)

	tag := 0
	test.That(t, m.IsEvaled(tag), test.ShouldBeFalse)
	test.That(t, m.PHat(tag), test.ShouldEqual, 2.0)
	test.That(t, math.IsInf(m.XHat(tag), 1), test.ShouldBeFalse)

	passed := m.EvalPartial(&tag, nil)
	test.That(t, passed, test.ShouldBeTrue)
	test.That(t, tag, test.ShouldNotEqual, 0)
	test.That(t, m.IsEvaled(tag), test.ShouldBeTrue)
	test.That(t, m.PHat(tag), test.ShouldEqual, 0.0)
	test.That(t, math.IsInf(m.XHat(tag), 1), test.ShouldBeFalse)
}

func TestEffortModelFailureIsInfinite(t *testing.T) {
	fam := NewFamily()
	test.That(t, fam.AddSubset("self", 1, 0.5, func(space.State) bool { return false }), test.ShouldBeNil)
	m, err := NewEffortModel(fam)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, m.SetTarget("self"), test.ShouldBeNil)

	tag := 0
	test.That(t, m.EvalPartial(&tag, nil), test.ShouldBeFalse)
	test.That(t, m.IsEvaled(tag), test.ShouldBeTrue)
	test.That(t, math.IsInf(m.XHat(tag), 1), test.ShouldBeTrue)
	test.That(t, m.PHat(tag), test.ShouldEqual, 0.0)
}

func TestEffortModelChecksCheapSupersetFirst(t *testing.T) {
	// target is contained in cheap, so a failed cheap check rules the
	// target out for a tenth of the cost
	var log []string
	fam := NewFamily()
	test.That(t, fam.AddSubset("target", 10, 0.9, recordingPredicate(&log, "target", true)), test.ShouldBeNil)
	test.That(t, fam.AddSubset("cheap", 1, 0.5, recordingPredicate(&log, "cheap", true)), test.ShouldBeNil)
	test.That(t, fam.AddInclusion("target", "cheap"), test.ShouldBeNil)

	m, err := NewEffortModel(fam)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, m.SetTarget("target"), test.ShouldBeNil)

	// E[check cheap first] = 1 + 0.5*10 = 6 beats E[direct] = 10
	tag := 0
	test.That(t, m.PHat(tag), test.ShouldEqual, 6.0)

	test.That(t, m.EvalPartial(&tag, nil), test.ShouldBeTrue)
	test.That(t, log, test.ShouldResemble, []string{"cheap"})
	test.That(t, m.IsEvaled(tag), test.ShouldBeFalse)
	test.That(t, m.PHat(tag), test.ShouldEqual, 10.0)

	test.That(t, m.EvalPartial(&tag, nil), test.ShouldBeTrue)
	test.That(t, log, test.ShouldResemble, []string{"cheap", "target"})
	test.That(t, m.IsEvaled(tag), test.ShouldBeTrue)
}

func TestEffortModelSupersetFailureDecidesTarget(t *testing.T) {
	var log []string
	fam := NewFamily()
	test.That(t, fam.AddSubset("target", 10, 0.9, recordingPredicate(&log, "target", true)), test.ShouldBeNil)
	test.That(t, fam.AddSubset("cheap", 1, 0.5, recordingPredicate(&log, "cheap", false)), test.ShouldBeNil)
	test.That(t, fam.AddInclusion("target", "cheap"), test.ShouldBeNil)

	m, err := NewEffortModel(fam)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, m.SetTarget("target"), test.ShouldBeNil)

	tag := 0
	test.That(t, m.EvalPartial(&tag, nil), test.ShouldBeFalse)
	test.That(t, log, test.ShouldResemble, []string{"cheap"})
	test.That(t, m.IsEvaled(tag), test.ShouldBeTrue)
	test.That(t, math.IsInf(m.XHat(tag), 1), test.ShouldBeTrue)
}

func TestEffortModelIntersectionDeduction(t *testing.T) {
	// target = left ∩ right: two cheap checks decide the target and the
	// target's own predicate is never run
	var log []string
	fam := NewFamily()
	test.That(t, fam.AddSubset("target", 5, 0.9, recordingPredicate(&log, "target", true)), test.ShouldBeNil)
	test.That(t, fam.AddSubset("left", 1, 0.9, recordingPredicate(&log, "left", true)), test.ShouldBeNil)
	test.That(t, fam.AddSubset("right", 1, 0.9, recordingPredicate(&log, "right", true)), test.ShouldBeNil)
	test.That(t, fam.AddIntersection("target", "left", "right"), test.ShouldBeNil)

	m, err := NewEffortModel(fam)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, m.SetTarget("target"), test.ShouldBeNil)

	// E = 1 + 0.9*(1 + 0.9*0) = 1.9
	tag := 0
	test.That(t, m.PHat(tag), test.ShouldAlmostEqual, 1.9)

	test.That(t, m.EvalPartial(&tag, nil), test.ShouldBeTrue)
	test.That(t, m.EvalPartial(&tag, nil), test.ShouldBeTrue)
	test.That(t, log, test.ShouldResemble, []string{"left", "right"})
	test.That(t, m.IsEvaled(tag), test.ShouldBeTrue)
	test.That(t, math.IsInf(m.XHat(tag), 1), test.ShouldBeFalse)
	test.That(t, m.PHat(tag), test.ShouldEqual, 0.0)
}

func TestEffortModelTargetSwitchReusesTags(t *testing.T) {
	fam := NewFamily()
	test.That(t, fam.AddSubset("a", 10, 0.9, func(space.State) bool { return true }), test.ShouldBeNil)
	test.That(t, fam.AddSubset("b", 1, 0.5, func(space.State) bool { return true }), test.ShouldBeNil)
	test.That(t, fam.AddInclusion("a", "b"), test.ShouldBeNil)

	m, err := NewEffortModel(fam)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, m.SetTarget("a"), test.ShouldBeNil)

	tag := 0
	test.That(t, m.EvalPartial(&tag, nil), test.ShouldBeTrue) // checks b
	test.That(t, m.IsEvaled(tag), test.ShouldBeFalse)

	// the same tag decides the new target immediately
	test.That(t, m.SetTarget("b"), test.ShouldBeNil)
	test.That(t, m.IsEvaled(tag), test.ShouldBeTrue)
	test.That(t, m.PHat(tag), test.ShouldEqual, 0.0)
	test.That(t, m.PHat(0), test.ShouldEqual, 1.0)
}
