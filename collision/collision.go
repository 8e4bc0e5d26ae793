// Package collision tests a posed arm against the floor and against itself. Links are modeled as
// capsules: a segment between consecutive joints plus a fixed radius, so two links touch when their
// segments come closer than twice that radius.
package collision

import (
	"fmt"

	"github.com/golang/geo/r3"

	"go.viam.com/armsim/referenceframe"
	"go.viam.com/armsim/spatialmath"
)

const (
	// FloorHeight is the nominal height of the floor plane.
	FloorHeight = 0.
	// FloorBuffer is the margin above the floor that no joint may enter.
	FloorBuffer = 0.05
	// LinkRadius is the approximate radius of every link.
	LinkRadius = 0.03
	// ClearanceThreshold is the minimum distance allowed between two non-adjacent links.
	ClearanceThreshold = 2 * LinkRadius
)

// NumSegments is the number of links checked: the fixed base column plus one per joint.
const NumSegments = referenceframe.NumJoints + 1

// Segment is the center line of one link.
type Segment struct {
	Start r3.Vector
	End   r3.Vector
}

// Segments returns the link segments of a posed arm: the base column from the world origin to the
// first joint, then one segment between each pair of consecutive positions.
func Segments(positions referenceframe.Positions) [NumSegments]Segment {
	var segs [NumSegments]Segment
	segs[0] = Segment{Start: r3.Vector{}, End: positions[0]}
	for i := 1; i < NumSegments; i++ {
		segs[i] = Segment{Start: positions[i-1], End: positions[i]}
	}
	return segs
}

// Distance returns the minimum distance between two segments.
func (s Segment) Distance(other Segment) float64 {
	return spatialmath.SegmentDistanceToSegment(s.Start, s.End, other.Start, other.End)
}

// Kind distinguishes the two ways a pose can be invalid.
type Kind int

const (
	// Floor means a joint is below the floor buffer.
	Floor Kind = iota
	// Self means two non-adjacent links are closer than the clearance.
	Self
)

func (k Kind) String() string {
	if k == Floor {
		return "floor"
	}
	return "self"
}

// Collision describes one violation. For Floor, Index is the offending position and Distance is its
// height. For Self, Index and Other are the two segment indices and Distance is their separation.
type Collision struct {
	Kind     Kind
	Index    int
	Other    int
	Distance float64
}

func (c Collision) String() string {
	if c.Kind == Floor {
		return fmt.Sprintf("joint %d at height %.4f is below the floor limit", c.Index, c.Distance)
	}
	return fmt.Sprintf("links %d and %d are %.4f apart", c.Index, c.Other, c.Distance)
}

// Checker holds the floor and clearance settings used to validate poses.
type Checker struct {
	FloorHeight float64
	FloorBuffer float64
	Clearance   float64
}

// DefaultChecker returns a Checker using the package constants.
func DefaultChecker() Checker {
	return Checker{
		FloorHeight: FloorHeight,
		FloorBuffer: FloorBuffer,
		Clearance:   ClearanceThreshold,
	}
}

// Check reports whether the pose collides with the floor or with itself, using the defaults.
func Check(positions referenceframe.Positions) bool {
	return DefaultChecker().Check(positions)
}

// Check reports whether the pose collides. It returns on the first violation found: the floor is
// checked first, then segment pairs in ascending order of the first index and, for each, ascending
// order of the second index starting two past the first.
func (c Checker) Check(positions referenceframe.Positions) bool {
	found := false
	c.visit(positions, func(Collision) bool {
		found = true
		return false
	})
	return found
}

// Collisions returns every violation in the pose, in the same order Check would encounter them.
func (c Checker) Collisions(positions referenceframe.Positions) []Collision {
	var collisions []Collision
	c.visit(positions, func(col Collision) bool {
		collisions = append(collisions, col)
		return true
	})
	return collisions
}

// SegmentsCollide reports whether two links are closer than the clearance.
func (c Checker) SegmentsCollide(a, b Segment) bool {
	return a.Distance(b) < c.Clearance
}

// visit calls fn for each violation until fn returns false.
func (c Checker) visit(positions referenceframe.Positions, fn func(Collision) bool) {
	floor := c.FloorHeight + c.FloorBuffer
	for i, p := range positions {
		if p.Z < floor {
			if !fn(Collision{Kind: Floor, Index: i, Other: -1, Distance: p.Z}) {
				return
			}
		}
	}

	segs := Segments(positions)
	for i := 0; i < NumSegments; i++ {
		// Adjacent links share a joint and always touch.
		for j := i + 2; j < NumSegments; j++ {
			if d := segs[i].Distance(segs[j]); d < c.Clearance {
				if !fn(Collision{Kind: Self, Index: i, Other: j, Distance: d}) {
					return
				}
			}
		}
	}
}
