package mathutil

import "github.com/go-gl/mathgl/mgl64"

// QuatFromXYZW builds a quaternion from (x, y, z, w) components.
func QuatFromXYZW(v []float64) mgl64.Quat {
	return mgl64.Quat{W: v[3], V: mgl64.Vec3{v[0], v[1], v[2]}}
}

// QuatXYZW returns the quaternion as (x, y, z, w).
func QuatXYZW(q mgl64.Quat) [4]float64 {
	return [4]float64{q.V[0], q.V[1], q.V[2], q.W}
}

// Slerp interpolates along the shortest arc between a and b.
func Slerp(a, b mgl64.Quat, t float64) mgl64.Quat {
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	return mgl64.QuatSlerp(a, b, t)
}
