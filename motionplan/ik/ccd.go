// Package ik solves inverse kinematics for the simulated arm with damped cyclic coordinate descent.
// Solving never fails: when the target cannot be reached within the iteration budget the best
// configuration found is returned, and it is up to the caller to validate it before committing.
package ik

import (
	"github.com/golang/geo/r3"

	"go.viam.com/armsim/referenceframe"
	"go.viam.com/armsim/spatialmath"
)

const (
	// DefaultMaxIterations is the number of joint sweeps per solve. It is sized for one solve per
	// rendered frame rather than for full convergence.
	DefaultMaxIterations = 5
	// DefaultDamping scales every joint correction to keep the sweep from overshooting.
	DefaultDamping = 0.5
	// DefaultGoalThreshold is the tip distance, in meters, at which the solver stops early.
	DefaultGoalThreshold = 0.01
	// DefaultFirstJoint is the joint each sweep starts from. The wrist roll joint spins about the
	// last link and cannot move the tip, so it is left to direct input.
	DefaultFirstJoint = referenceframe.NumJoints - 2
)

// Step is a snapshot of the solver immediately after one joint update.
type Step struct {
	Iteration int
	Joint     int
	Angles    referenceframe.JointAngles
	Distance  float64
}

// StepObserver is called after each joint update.
type StepObserver func(Step)

// Solution is the result of a solve.
type Solution struct {
	Angles referenceframe.JointAngles
	// Distance from the tip to the target for Angles.
	Distance float64
	// Iterations is the number of sweeps performed.
	Iterations int
	Converged  bool
}

// Solver holds the CCD parameters.
type Solver struct {
	MaxIterations int
	Damping       float64
	GoalThreshold float64
	FirstJoint    int
	Observer      StepObserver
}

// DefaultSolver returns a Solver with the default parameters.
func DefaultSolver() Solver {
	return Solver{
		MaxIterations: DefaultMaxIterations,
		Damping:       DefaultDamping,
		GoalThreshold: DefaultGoalThreshold,
		FirstJoint:    DefaultFirstJoint,
	}
}

// SolveIK moves the tip of the default chain towards target starting from seed and returns the
// resulting joint angles.
func SolveIK(
	target r3.Vector,
	seed referenceframe.JointAngles,
	dims referenceframe.Dimensions,
	limits referenceframe.Limits,
) referenceframe.JointAngles {
	m := referenceframe.Model{Axes: referenceframe.DefaultAxes, Dimensions: dims, Limits: limits}
	return DefaultSolver().Solve(m, target, seed).Angles
}

// Solve runs up to MaxIterations sweeps from FirstJoint down to the base. Each joint is turned,
// about its current world axis, by Damping times the angle that would swing the tip towards the
// target, then clamped to its limit. The chain is re-evaluated after every joint so the next joint
// works from the updated tip. The seed is clamped to the model's limits before the first sweep.
func (s Solver) Solve(m referenceframe.Model, target r3.Vector, seed referenceframe.JointAngles) Solution {
	angles := m.Limits.Clamp(seed)
	frames := m.Frames(angles)
	tip := spatialmath.Origin(frames[referenceframe.NumJoints])

	first := s.FirstJoint
	if first < 0 || first >= referenceframe.NumJoints {
		first = DefaultFirstJoint
	}

	for iter := 0; iter < s.MaxIterations; iter++ {
		if dist := tip.Distance(target); dist < s.GoalThreshold {
			return Solution{Angles: angles, Distance: dist, Iterations: iter, Converged: true}
		}

		for i := first; i >= 0; i-- {
			pivot := spatialmath.Origin(frames[i])
			toEnd := tip.Sub(pivot).Normalize()
			toTarget := target.Sub(pivot).Normalize()

			delta, ok := spatialmath.SignedAngleAbout(toEnd, toTarget, m.JointAxis(frames, i))
			if !ok {
				continue
			}
			angles[i] = m.Limits[i].Clamp(angles[i] + s.Damping*delta)

			frames = m.Frames(angles)
			tip = spatialmath.Origin(frames[referenceframe.NumJoints])
			if s.Observer != nil {
				s.Observer(Step{Iteration: iter, Joint: i, Angles: angles, Distance: tip.Distance(target)})
			}
		}
	}

	dist := tip.Distance(target)
	return Solution{Angles: angles, Distance: dist, Iterations: s.MaxIterations, Converged: dist < s.GoalThreshold}
}
