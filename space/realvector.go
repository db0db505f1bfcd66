package space

import (
	"math/rand"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// defaultSegmentFraction is the longest valid segment length as a
// fraction of the maximal extent of the bounds, matching the resolution
// convention of common sampling-based planning libraries.
const defaultSegmentFraction = 0.01

// RealVectorSpace is a bounded box in R^d with Euclidean distance and
// straight-line interpolation. Its states are []float64 of length d.
type RealVectorSpace struct {
	low, high       []float64
	segmentFraction float64
}

// NewRealVectorSpace creates a space with the given per-coordinate
// bounds. The slices must be the same nonzero length and low[i] <=
// high[i] for every i.
func NewRealVectorSpace(low, high []float64) (*RealVectorSpace, error) {
	if len(low) == 0 || len(low) != len(high) {
		return nil, errors.Errorf("mismatched bounds lengths %d and %d", len(low), len(high))
	}
	for i := range low {
		if high[i] < low[i] {
			return nil, errors.Errorf("inverted bounds at coordinate %d", i)
		}
	}
	return &RealVectorSpace{
		low:             append([]float64{}, low...),
		high:            append([]float64{}, high...),
		segmentFraction: defaultSegmentFraction,
	}, nil
}

// NewUnitBoxSpace creates [0,1]^dim.
func NewUnitBoxSpace(dim int) (*RealVectorSpace, error) {
	if dim <= 0 {
		return nil, errors.Errorf("nonpositive dimension %d", dim)
	}
	low := make([]float64, dim)
	high := make([]float64, dim)
	for i := range high {
		high[i] = 1
	}
	return NewRealVectorSpace(low, high)
}

// SetLongestValidSegmentFraction overrides the check-density constant as
// a fraction of the maximum extent.
func (s *RealVectorSpace) SetLongestValidSegmentFraction(frac float64) {
	s.segmentFraction = frac
}

func (s *RealVectorSpace) Dimension() int { return len(s.low) }

func (s *RealVectorSpace) BoundsLow(i int) float64 { return s.low[i] }

func (s *RealVectorSpace) BoundsHigh(i int) float64 { return s.high[i] }

// Values exposes the coordinates backing a state of this space.
func (s *RealVectorSpace) Values(a State) []float64 { return a.([]float64) }

func (s *RealVectorSpace) Distance(a, b State) float64 {
	av, bv := a.([]float64), b.([]float64)
	diff := make([]float64, len(av))
	floats.SubTo(diff, av, bv)
	return floats.Norm(diff, 2)
}

func (s *RealVectorSpace) Interpolate(a, b State, t float64, out State) {
	av, bv, ov := a.([]float64), b.([]float64), out.([]float64)
	for i := range ov {
		ov[i] = av[i] + (bv[i]-av[i])*t
	}
}

func (s *RealVectorSpace) Copy(a State, out State) {
	copy(out.([]float64), a.([]float64))
}

func (s *RealVectorSpace) Alloc() State {
	return make([]float64, len(s.low))
}

func (s *RealVectorSpace) SampleUniform(rng *rand.Rand, out State) {
	ov := out.([]float64)
	for i := range ov {
		ov[i] = s.low[i] + (s.high[i]-s.low[i])*rng.Float64()
	}
}

// LongestValidSegmentLength scales the maximum extent of the bounds by
// the configured segment fraction.
func (s *RealVectorSpace) LongestValidSegmentLength() float64 {
	extent := 0.0
	for i := range s.low {
		if e := s.high[i] - s.low[i]; e > extent {
			extent = e
		}
	}
	return s.segmentFraction * extent
}
