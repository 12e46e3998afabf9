package mathutil

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3FromSlice reads the first three components of v.
func Vec3FromSlice(v []float64) mgl64.Vec3 {
	return mgl64.Vec3{v[0], v[1], v[2]}
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// ClampSym clamps v to [-limit, limit].
func ClampSym(v, limit float64) float64 {
	return mgl64.Clamp(v, -limit, limit)
}

// IsFinite reports whether v is neither NaN nor ±Inf.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
