package utils

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestDegRad(t *testing.T) {
	test.That(t, DegToRad(180), test.ShouldAlmostEqual, math.Pi)
	test.That(t, RadToDeg(math.Pi/2), test.ShouldAlmostEqual, 90)
	test.That(t, RadToDeg(DegToRad(-37.5)), test.ShouldAlmostEqual, -37.5)
}

func TestClamp(t *testing.T) {
	test.That(t, Clamp(2, -1, 1), test.ShouldEqual, 1.)
	test.That(t, Clamp(-2, -1, 1), test.ShouldEqual, -1.)
	test.That(t, Clamp(0.25, -1, 1), test.ShouldEqual, 0.25)
	test.That(t, Clamp(3, 0.5, 0.5), test.ShouldEqual, 0.5)
}

func TestFloat64AlmostEqual(t *testing.T) {
	test.That(t, Float64AlmostEqual(1, 1+1e-9, 1e-6), test.ShouldBeTrue)
	test.That(t, Float64AlmostEqual(1, 1.1, 1e-6), test.ShouldBeFalse)
	test.That(t, Square(-3), test.ShouldEqual, 9.)
}

func TestDefaultParallelFactor(t *testing.T) {
	test.That(t, defaultParallelFactor(0), test.ShouldEqual, 1)
	test.That(t, defaultParallelFactor(4), test.ShouldEqual, 4)
	test.That(t, defaultParallelFactor(32), test.ShouldEqual, 32)
	test.That(t, defaultParallelFactor(64), test.ShouldEqual, 16)
	test.That(t, ParallelFactor, test.ShouldBeGreaterThan, 0)
}
