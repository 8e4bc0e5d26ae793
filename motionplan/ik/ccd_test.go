package ik

import (
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/armsim/referenceframe"
)

func TestSolveAtTarget(t *testing.T) {
	m := referenceframe.DefaultModel()
	seed := referenceframe.JointAngles{0.2, 0.4, -0.1, 0.6, 0.3, -0.5, 0.7}
	target := m.Transform(seed).Tip()

	moves := 0
	s := DefaultSolver()
	s.Observer = func(Step) { moves++ }
	sol := s.Solve(m, target, seed)

	test.That(t, sol.Converged, test.ShouldBeTrue)
	test.That(t, sol.Iterations, test.ShouldEqual, 0)
	test.That(t, moves, test.ShouldEqual, 0)
	test.That(t, sol.Angles, test.ShouldResemble, seed)
	test.That(t, sol.Distance, test.ShouldBeLessThan, 1e-9)
}

func TestDistanceNeverIncreases(t *testing.T) {
	m := referenceframe.DefaultModel()
	rng := rand.New(rand.NewSource(3))
	targets := []r3.Vector{
		{X: 0.3, Y: 0.1, Z: 0.6},
		{X: -0.4, Y: 0.4, Z: 0.3},
		{X: 0.2, Y: -0.5, Z: 0.1},
		{X: 3, Y: 0, Z: 0.5},
	}
	for _, target := range targets {
		for n := 0; n < 20; n++ {
			seed := referenceframe.RandomInputs(m.Limits, rng)
			prev := m.Transform(seed).Tip().Distance(target)
			start := prev

			s := DefaultSolver()
			s.Observer = func(step Step) {
				test.That(t, step.Distance, test.ShouldBeLessThanOrEqualTo, prev+1e-9)
				prev = step.Distance
			}
			sol := s.Solve(m, target, seed)
			test.That(t, sol.Distance, test.ShouldBeLessThanOrEqualTo, start+1e-9)
			test.That(t, sol.Iterations, test.ShouldBeLessThanOrEqualTo, DefaultMaxIterations)
		}
	}
}

func TestLimitsHoldAtEveryStep(t *testing.T) {
	m := referenceframe.DefaultModel()
	m.Limits = referenceframe.Limits{
		{Min: -0.5, Max: 0.5},
		{Min: 0.2, Max: 0.2},
		{Min: -1, Max: 0.1},
		{Min: 0, Max: 1.5},
		{Min: -0.3, Max: -0.3},
		{Min: -0.1, Max: 0.4},
		{Min: -1, Max: 1},
	}
	rng := rand.New(rand.NewSource(11))
	for n := 0; n < 30; n++ {
		seed := referenceframe.RandomInputs(m.Limits, rng)
		target := r3.Vector{X: rng.Float64() - 0.5, Y: rng.Float64() - 0.5, Z: rng.Float64()}

		s := DefaultSolver()
		s.Observer = func(step Step) {
			test.That(t, m.Limits.Contains(step.Angles), test.ShouldBeTrue)
		}
		sol := s.Solve(m, target, seed)
		test.That(t, m.Limits.Contains(sol.Angles), test.ShouldBeTrue)
		test.That(t, sol.Angles[1], test.ShouldEqual, 0.2)
		test.That(t, sol.Angles[4], test.ShouldEqual, -0.3)
	}
}

func TestSeedOutsideLimitsIsClamped(t *testing.T) {
	m := referenceframe.DefaultModel()
	seed := referenceframe.JointAngles{5, -5, 5, -5, 5, -5, 5}
	sol := DefaultSolver().Solve(m, r3.Vector{X: 0.3, Z: 0.5}, seed)
	test.That(t, m.Limits.Contains(sol.Angles), test.ShouldBeTrue)
}

func TestWristRollUntouched(t *testing.T) {
	m := referenceframe.DefaultModel()
	seed := referenceframe.JointAngles{0, 0.3, 0, 0.5, 0, 0.2, 1.0}
	s := DefaultSolver()
	s.Observer = func(step Step) {
		test.That(t, step.Joint, test.ShouldBeLessThan, referenceframe.NumJoints-1)
	}
	sol := s.Solve(m, r3.Vector{X: 0.4, Y: 0.2, Z: 0.4}, seed)
	test.That(t, sol.Angles[6], test.ShouldEqual, 1.0)
}

func TestRepeatedSolvesConverge(t *testing.T) {
	m := referenceframe.DefaultModel()
	reachable := referenceframe.JointAngles{0.4, 0.6, -0.3, 0.9, 0.2, 0.5, 0}
	target := m.Transform(reachable).Tip()

	angles := referenceframe.JointAngles{}
	var sol Solution
	for frame := 0; frame < 200; frame++ {
		sol = DefaultSolver().Solve(m, target, angles)
		angles = sol.Angles
		if sol.Converged {
			break
		}
	}
	test.That(t, sol.Converged, test.ShouldBeTrue)
	test.That(t, m.Transform(angles).Tip().Distance(target), test.ShouldBeLessThan, DefaultGoalThreshold)
}

func TestUnreachableTarget(t *testing.T) {
	m := referenceframe.DefaultModel()
	target := r3.Vector{X: 5, Z: 0.5}
	sol := DefaultSolver().Solve(m, target, referenceframe.JointAngles{})

	test.That(t, sol.Converged, test.ShouldBeFalse)
	test.That(t, sol.Iterations, test.ShouldEqual, DefaultMaxIterations)
	test.That(t, m.Limits.Contains(sol.Angles), test.ShouldBeTrue)
	for _, a := range sol.Angles {
		test.That(t, math.IsNaN(a), test.ShouldBeFalse)
	}
	// The arm leans towards the target even though it cannot get there.
	test.That(t, m.Transform(sol.Angles).Tip().X, test.ShouldBeGreaterThan, 0)
}

func TestSolveIK(t *testing.T) {
	target := r3.Vector{X: 0.3, Y: 0.1, Z: 0.6}
	seed := referenceframe.JointAngles{0.1, 0.2, 0, 0.3, 0, 0.2, 0}
	angles := SolveIK(target, seed, referenceframe.DefaultDimensions, referenceframe.DefaultLimits)

	before := referenceframe.ComputeFK(seed, referenceframe.DefaultDimensions).Tip().Distance(target)
	after := referenceframe.ComputeFK(angles, referenceframe.DefaultDimensions).Tip().Distance(target)
	test.That(t, after, test.ShouldBeLessThan, before)
	test.That(t, referenceframe.DefaultLimits.Contains(angles), test.ShouldBeTrue)
}
