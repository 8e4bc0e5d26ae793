package collision

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/armsim/referenceframe"
)

func restPositions() referenceframe.Positions {
	return referenceframe.ComputeFK(referenceframe.JointAngles{}, referenceframe.DefaultDimensions)
}

func TestRestPoseIsFree(t *testing.T) {
	positions := restPositions()
	test.That(t, Check(positions), test.ShouldBeFalse)
	test.That(t, DefaultChecker().Collisions(positions), test.ShouldBeEmpty)
}

func TestSegments(t *testing.T) {
	positions := restPositions()
	segs := Segments(positions)
	test.That(t, segs[0].Start, test.ShouldResemble, r3.Vector{})
	test.That(t, segs[0].End, test.ShouldResemble, positions[0])
	for i := 1; i < NumSegments; i++ {
		test.That(t, segs[i].Start, test.ShouldResemble, positions[i-1])
		test.That(t, segs[i].End, test.ShouldResemble, positions[i])
	}
}

func TestFloor(t *testing.T) {
	for i := range restPositions() {
		positions := restPositions()
		positions[i].Z = FloorHeight + FloorBuffer - 0.001
		test.That(t, Check(positions), test.ShouldBeTrue)

		collisions := DefaultChecker().Collisions(positions)
		test.That(t, collisions, test.ShouldNotBeEmpty)
		test.That(t, collisions[0].Kind, test.ShouldEqual, Floor)
		test.That(t, collisions[0].Index, test.ShouldEqual, i)
	}

	// A raised floor rejects the rest pose's first joint.
	raised := Checker{FloorHeight: 0.3, Clearance: ClearanceThreshold}
	test.That(t, raised.Check(restPositions()), test.ShouldBeTrue)
}

func TestClearanceBoundary(t *testing.T) {
	checker := DefaultChecker()
	threshold := checker.Clearance
	base := Segment{Start: r3.Vector{}, End: r3.Vector{X: 1}}

	for _, tc := range []struct {
		name     string
		offset   float64
		expected bool
	}{
		{"coincident", 0, true},
		{"half threshold", threshold / 2, true},
		{"at threshold", threshold, false},
		{"double threshold", threshold * 2, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			parallel := Segment{Start: r3.Vector{Y: tc.offset}, End: r3.Vector{X: 1, Y: tc.offset}}
			test.That(t, base.Distance(parallel), test.ShouldAlmostEqual, tc.offset, 1e-12)
			test.That(t, checker.SegmentsCollide(base, parallel), test.ShouldEqual, tc.expected)

			crossing := Segment{Start: r3.Vector{X: 0.5, Y: -1, Z: tc.offset}, End: r3.Vector{X: 0.5, Y: 1, Z: tc.offset}}
			test.That(t, checker.SegmentsCollide(base, crossing), test.ShouldEqual, tc.expected)
		})
	}
}

func TestSelfCollision(t *testing.T) {
	// Folding the elbow almost all the way back lays the forearm alongside the upper arm.
	positions := referenceframe.ComputeFK(referenceframe.JointAngles{0, 0, 0, 3.0, 0, 0, 0}, referenceframe.DefaultDimensions)
	test.That(t, Check(positions), test.ShouldBeTrue)

	collisions := DefaultChecker().Collisions(positions)
	test.That(t, collisions, test.ShouldNotBeEmpty)
	found := false
	for _, c := range collisions {
		test.That(t, c.Kind, test.ShouldEqual, Self)
		test.That(t, c.Other-c.Index, test.ShouldBeGreaterThan, 1)
		test.That(t, c.Distance, test.ShouldBeLessThan, ClearanceThreshold)
		if c.Index == 3 && c.Other == 5 {
			found = true
		}
	}
	test.That(t, found, test.ShouldBeTrue)

	// Reported in the order Check visits them.
	for i := 1; i < len(collisions); i++ {
		prev, cur := collisions[i-1], collisions[i]
		test.That(t, prev.Index < cur.Index || (prev.Index == cur.Index && prev.Other < cur.Other), test.ShouldBeTrue)
	}
}

func TestCollisionString(t *testing.T) {
	test.That(t, Collision{Kind: Floor, Index: 2, Distance: 0.01}.String(), test.ShouldContainSubstring, "joint 2")
	test.That(t, Collision{Kind: Self, Index: 1, Other: 4, Distance: 0.02}.String(), test.ShouldContainSubstring, "links 1 and 4")
	test.That(t, Self.String(), test.ShouldEqual, "self")
}
