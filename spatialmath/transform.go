// Package spatialmath defines the geometry primitives used by the kinematics engine: points and
// directions as r3 vectors, rigid transforms as homogeneous 4x4 matrices.
package spatialmath

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
)

// R3ToVec3 converts an r3.Vector into an mgl64.Vec3.
func R3ToVec3(v r3.Vector) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// Vec3ToR3 converts an mgl64.Vec3 into an r3.Vector.
func Vec3ToR3(v mgl64.Vec3) r3.Vector {
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}

// Translation returns the homogeneous transform translating by v.
func Translation(v r3.Vector) mgl64.Mat4 {
	return mgl64.Translate3D(v.X, v.Y, v.Z)
}

// RotationX returns the homogeneous transform rotating by angle radians about the x axis.
func RotationX(angle float64) mgl64.Mat4 {
	return mgl64.HomogRotate3DX(angle)
}

// RotationY returns the homogeneous transform rotating by angle radians about the y axis.
func RotationY(angle float64) mgl64.Mat4 {
	return mgl64.HomogRotate3DY(angle)
}

// RotationZ returns the homogeneous transform rotating by angle radians about the z axis.
func RotationZ(angle float64) mgl64.Mat4 {
	return mgl64.HomogRotate3DZ(angle)
}

// Compose returns the transform that applies b in the frame produced by a, i.e. a*b.
func Compose(a, b mgl64.Mat4) mgl64.Mat4 {
	return a.Mul4(b)
}

// TransformPoint applies the full transform m to the point p.
func TransformPoint(m mgl64.Mat4, p r3.Vector) r3.Vector {
	return Vec3ToR3(m.Mul4x1(R3ToVec3(p).Vec4(1)).Vec3())
}

// RotateVector applies only the rotational part of m to the direction v.
func RotateVector(m mgl64.Mat4, v r3.Vector) r3.Vector {
	return Vec3ToR3(m.Mat3().Mul3x1(R3ToVec3(v)))
}

// Origin returns the world-space origin of the frame described by m.
func Origin(m mgl64.Mat4) r3.Vector {
	return Vec3ToR3(m.Col(3).Vec3())
}
