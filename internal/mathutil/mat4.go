package mathutil

import "github.com/go-gl/mathgl/mgl64"

// TRS builds a local affine matrix T · R · S.
func TRS(t mgl64.Vec3, r mgl64.Quat, s mgl64.Vec3) mgl64.Mat4 {
	return mgl64.Translate3D(t[0], t[1], t[2]).
		Mul4(r.Mat4()).
		Mul4(mgl64.Scale3D(s[0], s[1], s[2]))
}

// MulPoint transforms a 3D point (w=1) by the 4×4 matrix.
func MulPoint(m mgl64.Mat4, v mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(v.Vec4(1)).Vec3()
}

// Translation returns the translation column of an affine matrix.
func Translation(m mgl64.Mat4) mgl64.Vec3 {
	return m.Col(3).Vec3()
}
