package referenceframe

import (
	"math/rand"

	"go.viam.com/armsim/utils"
)

// Limit represents the range of motion of a joint, in radians.
type Limit struct {
	Min float64
	Max float64
}

// Clamp bounds v to the limit.
func (l Limit) Clamp(v float64) float64 {
	return utils.Clamp(v, l.Min, l.Max)
}

// Contains reports whether v lies within the limit.
func (l Limit) Contains(v float64) bool {
	return v >= l.Min && v <= l.Max
}

// Range returns the width of the limit.
func (l Limit) Range() float64 {
	return l.Max - l.Min
}

// Limits holds one Limit per joint.
type Limits [NumJoints]Limit

// Clamp returns a copy of angles with every joint bounded to its limit.
func (ls Limits) Clamp(angles JointAngles) JointAngles {
	for i, l := range ls {
		angles[i] = l.Clamp(angles[i])
	}
	return angles
}

// Contains reports whether every joint angle lies within its limit.
func (ls Limits) Contains(angles JointAngles) bool {
	for i, l := range ls {
		if !l.Contains(angles[i]) {
			return false
		}
	}
	return true
}

// RandomInputs draws each joint angle uniformly from its limit.
func RandomInputs(ls Limits, rSeed *rand.Rand) JointAngles {
	if rSeed == nil {
		//nolint:gosec
		rSeed = rand.New(rand.NewSource(1))
	}
	var angles JointAngles
	for i, l := range ls {
		angles[i] = l.Min + rSeed.Float64()*l.Range()
	}
	return angles
}
