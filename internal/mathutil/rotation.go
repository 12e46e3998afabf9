package mathutil

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	AxisX = mgl64.Vec3{1, 0, 0}
	AxisY = mgl64.Vec3{0, 1, 0}
	AxisZ = mgl64.Vec3{0, 0, 1}
)

// RotX returns a rotation around the X axis. Angle in radians.
func RotX(a float64) mgl64.Quat {
	return mgl64.QuatRotate(a, AxisX)
}

// RotY returns a rotation around the Y axis.
func RotY(a float64) mgl64.Quat {
	return mgl64.QuatRotate(a, AxisY)
}

// RotZ returns a rotation around the Z axis.
func RotZ(a float64) mgl64.Quat {
	return mgl64.QuatRotate(a, AxisZ)
}

// ComposeXYZ builds an orientation from per-axis angles applied in X, Y, Z order
// (intrinsic), i.e. Rx · Ry · Rz.
func ComposeXYZ(angles mgl64.Vec3) mgl64.Quat {
	return RotX(angles[0]).Mul(RotY(angles[1])).Mul(RotZ(angles[2])).Normalize()
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}
