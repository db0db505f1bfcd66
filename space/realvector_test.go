package space

import (
	"math"
	"math/rand"
	"testing"

	"go.viam.com/test"
)

func TestRealVectorSpaceBasics(t *testing.T) {
	s, err := NewRealVectorSpace([]float64{0, -1}, []float64{2, 1})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, s.Dimension(), test.ShouldEqual, 2)
	test.That(t, s.BoundsLow(1), test.ShouldEqual, -1.0)
	test.That(t, s.BoundsHigh(0), test.ShouldEqual, 2.0)

	_, err = NewRealVectorSpace([]float64{0}, []float64{1, 2})
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewRealVectorSpace([]float64{1}, []float64{0})
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewUnitBoxSpace(0)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestDistanceInterpolate(t *testing.T) {
	s, err := NewUnitBoxSpace(2)
	test.That(t, err, test.ShouldBeNil)

	a := State([]float64{0, 0})
	b := State([]float64{0.3, 0.4})
	test.That(t, s.Distance(a, b), test.ShouldAlmostEqual, 0.5)
	test.That(t, s.Distance(b, a), test.ShouldAlmostEqual, 0.5)
	test.That(t, s.Distance(a, a), test.ShouldEqual, 0.0)

	mid := s.Alloc()
	s.Interpolate(a, b, 0.5, mid)
	test.That(t, s.Values(mid)[0], test.ShouldAlmostEqual, 0.15)
	test.That(t, s.Values(mid)[1], test.ShouldAlmostEqual, 0.2)
	s.Interpolate(a, b, 0, mid)
	test.That(t, s.Distance(mid, a), test.ShouldEqual, 0.0)
	s.Interpolate(a, b, 1, mid)
	test.That(t, s.Distance(mid, b), test.ShouldEqual, 0.0)

	out := s.Alloc()
	s.Copy(b, out)
	test.That(t, s.Values(out), test.ShouldResemble, []float64{0.3, 0.4})
}

func TestSampleUniformDeterminism(t *testing.T) {
	s, err := NewRealVectorSpace([]float64{-2, 0}, []float64{2, 10})
	test.That(t, err, test.ShouldBeNil)

	sample := func(seed int64, n int) [][]float64 {
		rng := rand.New(rand.NewSource(seed))
		out := make([][]float64, n)
		for i := range out {
			st := s.Alloc()
			s.SampleUniform(rng, st)
			out[i] = s.Values(st)
			for j, v := range out[i] {
				test.That(t, v, test.ShouldBeGreaterThanOrEqualTo, s.BoundsLow(j))
				test.That(t, v, test.ShouldBeLessThanOrEqualTo, s.BoundsHigh(j))
			}
		}
		return out
	}
	test.That(t, sample(7, 20), test.ShouldResemble, sample(7, 20))
}

func TestLongestValidSegmentLength(t *testing.T) {
	s, err := NewRealVectorSpace([]float64{0, 0}, []float64{1, 4})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, s.LongestValidSegmentLength(), test.ShouldAlmostEqual, 0.04)

	s.SetLongestValidSegmentFraction(0.1)
	test.That(t, s.LongestValidSegmentLength(), test.ShouldAlmostEqual, 0.4)

	u, err := NewUnitBoxSpace(3)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, math.Abs(u.LongestValidSegmentLength()-0.01), test.ShouldBeLessThan, 1e-12)
}
