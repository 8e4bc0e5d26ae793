package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"

	"go.viam.com/armsim/utils"
)

// projectionEpsilon is the smallest projected length that still defines a direction.
const projectionEpsilon = 1e-6

// ProjectOntoPlane removes the component of v along the unit normal n.
func ProjectOntoPlane(v, n r3.Vector) r3.Vector {
	return v.Sub(n.Mul(v.Dot(n)))
}

// SignedAngleAbout returns the angle, in radians, that rotates the projection of from onto the plane
// perpendicular to axis into the projection of to. The sign follows the right hand rule about axis.
// ok is false when either projection is too short to define a direction, in which case no rotation
// about axis can bring the two vectors closer.
func SignedAngleAbout(from, to, axis r3.Vector) (angle float64, ok bool) {
	n := axis.Normalize()
	pf := ProjectOntoPlane(from, n)
	pt := ProjectOntoPlane(to, n)
	if pf.Norm() < projectionEpsilon || pt.Norm() < projectionEpsilon {
		return 0, false
	}
	pf, pt = pf.Normalize(), pt.Normalize()

	angle = math.Acos(utils.Clamp(pf.Dot(pt), -1, 1))
	if pf.Cross(pt).Dot(n) < 0 {
		angle = -angle
	}
	return angle, true
}
