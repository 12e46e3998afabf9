package mathutil

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestComposeXYZMatchesAxisProduct(t *testing.T) {
	angles := mgl64.Vec3{0.3, -1.1, 2.0}
	want := RotX(0.3).Mul(RotY(-1.1)).Mul(RotZ(2.0))
	got := ComposeXYZ(angles)
	assert.True(t, got.ApproxEqualThreshold(want, 1e-12) || got.ApproxEqualThreshold(want.Scale(-1), 1e-12))
}

func TestComposeXYZOrderMatters(t *testing.T) {
	xyz := ComposeXYZ(mgl64.Vec3{math.Pi / 2, math.Pi / 2, 0})
	zyx := RotY(math.Pi / 2).Mul(RotX(math.Pi / 2))
	assert.False(t, xyz.ApproxEqualThreshold(zyx, 1e-6))
}

func TestSlerpTakesShortestArc(t *testing.T) {
	a := mgl64.QuatIdent()
	b := RotZ(0.5).Scale(-1) // same rotation, opposite hemisphere
	mid := Slerp(a, b, 0.5)
	want := RotZ(0.25)
	assert.True(t, mid.ApproxEqualThreshold(want, 1e-9))
}

func TestTRSAppliesScaleThenRotationThenTranslation(t *testing.T) {
	m := TRS(mgl64.Vec3{1, 0, 0}, RotZ(math.Pi/2), mgl64.Vec3{2, 2, 2})
	p := MulPoint(m, mgl64.Vec3{1, 0, 0})
	assert.InDelta(t, 1.0, p[0], 1e-9)
	assert.InDelta(t, 2.0, p[1], 1e-9)
	assert.InDelta(t, 0.0, p[2], 1e-9)
	assert.Equal(t, mgl64.Vec3{1, 0, 0}, Translation(m))
}

func TestClampSym(t *testing.T) {
	assert.Equal(t, 0.25, ClampSym(3, 0.25))
	assert.Equal(t, -0.25, ClampSym(-0.9, 0.25))
	assert.Equal(t, 0.1, ClampSym(0.1, 0.25))
}

func TestLerp(t *testing.T) {
	got := Lerp(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{2, 4, -2}, 0.25)
	assert.Equal(t, mgl64.Vec3{0.5, 1, -0.5}, got)
}
