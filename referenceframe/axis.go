package referenceframe

import (
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/armsim/spatialmath"
)

// Axis is the principal local axis a revolute joint rotates about.
type Axis int

// The three principal axes.
const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "unknown"
	}
}

// Valid reports whether a is one of the three principal axes.
func (a Axis) Valid() bool {
	return a == AxisX || a == AxisY || a == AxisZ
}

// Vector returns the unit vector of the axis in the joint's local frame.
func (a Axis) Vector() r3.Vector {
	switch a {
	case AxisX:
		return r3.Vector{X: 1}
	case AxisY:
		return r3.Vector{Y: 1}
	default:
		return r3.Vector{Z: 1}
	}
}

// Rotation returns the homogeneous transform rotating by angle radians about the axis.
func (a Axis) Rotation(angle float64) mgl64.Mat4 {
	switch a {
	case AxisX:
		return spatialmath.RotationX(angle)
	case AxisY:
		return spatialmath.RotationY(angle)
	default:
		return spatialmath.RotationZ(angle)
	}
}

// ParseAxis parses "x", "y" or "z", ignoring case.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	}
	return AxisZ, errors.Errorf("invalid joint axis %q, must be one of x, y, z", s)
}

// MarshalText implements encoding.TextMarshaler.
func (a Axis) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, errors.Errorf("invalid joint axis %d", int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Axis) UnmarshalText(text []byte) error {
	parsed, err := ParseAxis(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
