package spatialmath

import (
	"github.com/golang/geo/r3"

	"go.viam.com/armsim/utils"
)

// segmentEpsilon bounds squared lengths and the parameter denominator below which segments are
// treated as points or as parallel.
const segmentEpsilon = 1e-6

// closestSegmentParams returns the parameters s, t in [0,1] of the closest points p1 + s*(q1-p1) and
// p2 + t*(q2-p2) between two segments.
// reference: Ericson, Real-Time Collision Detection, 5.1.9.
func closestSegmentParams(p1, q1, p2, q2 r3.Vector) (s, t float64) {
	d1 := q1.Sub(p1)
	d2 := q2.Sub(p2)
	r := p1.Sub(p2)
	a := d1.Dot(d1)
	e := d2.Dot(d2)
	f := d2.Dot(r)

	switch {
	case a <= segmentEpsilon && e <= segmentEpsilon:
		return 0, 0
	case a <= segmentEpsilon:
		return 0, utils.Clamp(f/e, 0, 1)
	}

	c := d1.Dot(r)
	if e <= segmentEpsilon {
		return utils.Clamp(-c/a, 0, 1), 0
	}

	b := d1.Dot(d2)
	denom := a*e - b*b
	// Near-parallel segments have no unique closest pair; pin s to the start of the first segment.
	if denom > segmentEpsilon {
		s = utils.Clamp((b*f-c*e)/denom, 0, 1)
	}

	t = (b*s + f) / e
	if t < 0 {
		t = 0
		s = utils.Clamp(-c/a, 0, 1)
	} else if t > 1 {
		t = 1
		s = utils.Clamp((b-c)/a, 0, 1)
	}
	return s, t
}

// ClosestPointsSegmentSegment returns the closest pair of points between segment p1-q1 and segment
// p2-q2, the first on p1-q1 and the second on p2-q2.
func ClosestPointsSegmentSegment(p1, q1, p2, q2 r3.Vector) (r3.Vector, r3.Vector) {
	s, t := closestSegmentParams(p1, q1, p2, q2)
	return p1.Add(q1.Sub(p1).Mul(s)), p2.Add(q2.Sub(p2).Mul(t))
}

// SegmentDistanceToSegment returns the minimum distance between segment p1-q1 and segment p2-q2.
func SegmentDistanceToSegment(p1, q1, p2, q2 r3.Vector) float64 {
	c1, c2 := ClosestPointsSegmentSegment(p1, q1, p2, q2)
	return c1.Distance(c2)
}
