// Package space defines the configuration space contract the planner
// plans over, together with a real-vector implementation.
package space

import "math/rand"

// State is an opaque configuration point. States are allocated and
// interpreted only by the Space that created them; the planner treats
// them as handles.
type State interface{}

// Space is the configuration space contract required by the roadmap
// generators and the planner.
type Space interface {
	// Dimension returns the number of coordinates in a configuration.
	Dimension() int

	// BoundsLow and BoundsHigh bound coordinate i.
	BoundsLow(i int) float64
	BoundsHigh(i int) float64

	// Distance returns a non-negative distance between two states.
	Distance(a, b State) float64

	// Interpolate writes the configuration at parameter t in [0,1]
	// along the local path from a to b into out.
	Interpolate(a, b State, t float64, out State)

	// Copy writes a into out.
	Copy(a State, out State)

	// Alloc returns a new uninitialized state owned by the caller.
	Alloc() State

	// SampleUniform writes a uniform sample over the bounds into out.
	SampleUniform(rng *rand.Rand, out State)

	// LongestValidSegmentLength is the resolution at which local paths
	// are checked; used only as a check-density constant.
	LongestValidSegmentLength() float64
}
