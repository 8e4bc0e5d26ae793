package referenceframe

import (
	"math/rand"
	"testing"

	"go.viam.com/test"
)

func TestLimitClamp(t *testing.T) {
	l := Limit{Min: -1, Max: 2}
	test.That(t, l.Clamp(3), test.ShouldEqual, 2.)
	test.That(t, l.Clamp(-3), test.ShouldEqual, -1.)
	test.That(t, l.Clamp(0.5), test.ShouldEqual, 0.5)
	test.That(t, l.Contains(2), test.ShouldBeTrue)
	test.That(t, l.Contains(2.0001), test.ShouldBeFalse)
	test.That(t, l.Range(), test.ShouldEqual, 3.)

	frozen := Limit{Min: 0.4, Max: 0.4}
	test.That(t, frozen.Clamp(-5), test.ShouldEqual, 0.4)
	test.That(t, frozen.Clamp(5), test.ShouldEqual, 0.4)
}

func TestLimitsClampCopies(t *testing.T) {
	angles := JointAngles{5, -5, 0, 0, 0, 0, 0}
	clamped := DefaultLimits.Clamp(angles)
	test.That(t, angles[0], test.ShouldEqual, 5.)
	test.That(t, clamped[0], test.ShouldEqual, DefaultLimits[0].Max)
	test.That(t, clamped[1], test.ShouldEqual, DefaultLimits[1].Min)
	test.That(t, DefaultLimits.Contains(clamped), test.ShouldBeTrue)
}

func TestRandomInputs(t *testing.T) {
	limits := DefaultLimits
	limits[3] = Limit{Min: 0.25, Max: 0.25}
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		angles := RandomInputs(limits, rng)
		test.That(t, limits.Contains(angles), test.ShouldBeTrue)
		test.That(t, angles[3], test.ShouldEqual, 0.25)
	}

	// A nil source is seeded deterministically.
	test.That(t, RandomInputs(limits, nil), test.ShouldResemble, RandomInputs(limits, nil))
}
