// Package referenceframe describes the seven joint serial chain of the simulated arm and computes
// its forward kinematics. Every function here is pure: callers own the joint state and pass it in.
package referenceframe

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/armsim/spatialmath"
)

// NumJoints is the number of revolute joints in the chain.
const NumJoints = 7

// JointAngles holds one angle, in radians, per joint. It is an array so that it is copied on
// assignment and never aliased between the caller and the engine.
type JointAngles [NumJoints]float64

// Dimensions holds the link lengths in meters: the base to the first joint, then the seven offsets
// between consecutive joints, the last of which ends at the tip.
type Dimensions [NumJoints + 1]float64

// Sum returns the total length of the chain, i.e. the height of the tip when fully extended.
func (d Dimensions) Sum() float64 {
	total := 0.
	for _, l := range d {
		total += l
	}
	return total
}

// Positions holds the world-space position of each joint pivot followed by the tip. Index 0 is the
// first joint, index NumJoints is the tip.
type Positions [NumJoints + 1]r3.Vector

// Tip returns the end effector position.
func (p Positions) Tip() r3.Vector {
	return p[NumJoints]
}

// DefaultAxes is the axis assignment of the simulated arm. Pitch joints alternate with joints that
// spin about their own link, so the last joint (wrist roll) never moves the tip.
var DefaultAxes = [NumJoints]Axis{AxisZ, AxisY, AxisZ, AxisY, AxisZ, AxisY, AxisZ}

// DefaultDimensions are the factory link lengths.
var DefaultDimensions = Dimensions{0.15, 0.25, 0.10, 0.30, 0.10, 0.25, 0.10, 0.12}

// DefaultLimits are the factory joint ranges.
var DefaultLimits = Limits{
	{Min: -2.9, Max: 2.9},
	{Min: -1.76, Max: 1.76},
	{Min: -2.9, Max: 2.9},
	{Min: -2.0, Max: 2.0},
	{Min: -2.9, Max: 2.9},
	{Min: -2.0, Max: 2.0},
	{Min: -2.9, Max: 2.9},
}

// DefaultSpeeds are the factory jog speeds in radians per second.
var DefaultSpeeds = [NumJoints]float64{1.5, 1.5, 1.8, 1.8, 2.2, 2.2, 2.6}

// Model is the static description of the chain: per joint rotation axes, link lengths, limits and
// jog speeds. Speeds are only consumed by input mapping, never by kinematics.
type Model struct {
	Axes       [NumJoints]Axis
	Dimensions Dimensions
	Limits     Limits
	Speeds     [NumJoints]float64
}

// DefaultModel returns the factory model.
func DefaultModel() Model {
	return Model{
		Axes:       DefaultAxes,
		Dimensions: DefaultDimensions,
		Limits:     DefaultLimits,
		Speeds:     DefaultSpeeds,
	}
}

// Validate returns every problem with the model combined into one error.
func (m Model) Validate() error {
	var err error
	for i, axis := range m.Axes {
		if !axis.Valid() {
			multierr.AppendInto(&err, errors.Errorf("joint %d has invalid axis %d", i, int(axis)))
		}
	}
	for i, l := range m.Dimensions {
		if l <= 0 {
			multierr.AppendInto(&err, errors.Errorf("link %d length must be positive, got %v", i, l))
		}
	}
	for i, l := range m.Limits {
		if l.Min > l.Max {
			multierr.AppendInto(&err, errors.Errorf("joint %d limit min %v exceeds max %v", i, l.Min, l.Max))
		}
	}
	for i, s := range m.Speeds {
		if s < 0 {
			multierr.AppendInto(&err, errors.Errorf("joint %d speed must not be negative, got %v", i, s))
		}
	}
	return err
}

// Frames returns the world transform at each joint pivot, before that joint's rotation is applied,
// followed by the tip frame. The chain starts at the identity, rises by the base length, then for
// each joint rotates about its axis and advances along the local z axis by the next link length.
func (m Model) Frames(angles JointAngles) [NumJoints + 1]mgl64.Mat4 {
	var frames [NumJoints + 1]mgl64.Mat4
	frames[0] = spatialmath.Translation(r3.Vector{Z: m.Dimensions[0]})
	for i := 0; i < NumJoints; i++ {
		link := spatialmath.Compose(m.Axes[i].Rotation(angles[i]), spatialmath.Translation(r3.Vector{Z: m.Dimensions[i+1]}))
		frames[i+1] = spatialmath.Compose(frames[i], link)
	}
	return frames
}

// Transform computes the world-space position of every joint and the tip. Angles are used as given;
// limits are not applied.
func (m Model) Transform(angles JointAngles) Positions {
	frames := m.Frames(angles)
	var positions Positions
	for i, f := range frames {
		positions[i] = spatialmath.Origin(f)
	}
	return positions
}

// JointAxis returns the world-space direction of joint i's rotation axis given the pivot frames
// from Frames. A joint's own rotation leaves its axis fixed, so the frame before the rotation is
// enough.
func (m Model) JointAxis(frames [NumJoints + 1]mgl64.Mat4, i int) r3.Vector {
	return spatialmath.RotateVector(frames[i], m.Axes[i].Vector()).Normalize()
}

// ComputeFK computes joint positions for the default axis assignment.
func ComputeFK(angles JointAngles, dims Dimensions) Positions {
	return Model{Axes: DefaultAxes, Dimensions: dims}.Transform(angles)
}
