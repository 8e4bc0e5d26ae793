package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestProjectOntoPlane(t *testing.T) {
	p := ProjectOntoPlane(r3.Vector{X: 1, Y: 2, Z: 3}, r3.Vector{Z: 1})
	vectorsAlmostEqual(t, p, r3.Vector{X: 1, Y: 2})
}

func TestSignedAngleAbout(t *testing.T) {
	for _, tc := range []struct {
		name     string
		from, to r3.Vector
		axis     r3.Vector
		expected float64
	}{
		{"quarter turn ccw", r3.Vector{X: 1}, r3.Vector{Y: 1}, r3.Vector{Z: 1}, math.Pi / 2},
		{"quarter turn cw", r3.Vector{Y: 1}, r3.Vector{X: 1}, r3.Vector{Z: 1}, -math.Pi / 2},
		{"flipped axis", r3.Vector{X: 1}, r3.Vector{Y: 1}, r3.Vector{Z: -1}, -math.Pi / 2},
		{"axial components ignored", r3.Vector{X: 1, Z: 5}, r3.Vector{Y: 1, Z: -3}, r3.Vector{Z: 1}, math.Pi / 2},
		{"unnormalized axis", r3.Vector{X: 1}, r3.Vector{X: 1, Y: 1}, r3.Vector{Z: 10}, math.Pi / 4},
		{"same direction", r3.Vector{X: 2}, r3.Vector{X: 0.5}, r3.Vector{Z: 1}, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			angle, ok := SignedAngleAbout(tc.from, tc.to, tc.axis)
			test.That(t, ok, test.ShouldBeTrue)
			test.That(t, angle, test.ShouldAlmostEqual, tc.expected, 1e-9)
		})
	}

	t.Run("degenerate projection", func(t *testing.T) {
		_, ok := SignedAngleAbout(r3.Vector{Z: 1}, r3.Vector{X: 1}, r3.Vector{Z: 1})
		test.That(t, ok, test.ShouldBeFalse)
		_, ok = SignedAngleAbout(r3.Vector{X: 1}, r3.Vector{}, r3.Vector{Z: 1})
		test.That(t, ok, test.ShouldBeFalse)
	})

	t.Run("opposite directions", func(t *testing.T) {
		angle, ok := SignedAngleAbout(r3.Vector{X: 1}, r3.Vector{X: -1}, r3.Vector{Z: 1})
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, math.Abs(angle), test.ShouldAlmostEqual, math.Pi, 1e-9)
	})
}
