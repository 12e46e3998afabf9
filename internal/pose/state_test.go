package pose

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"avatar-rig/internal/mathutil"
	"avatar-rig/internal/metrics"
	"avatar-rig/internal/skeleton"
)

func newArm(t *testing.T, opts ...Option) *State {
	t.Helper()
	skel, err := skeleton.New([]skeleton.BoneDescriptor{
		{Name: "mShoulderLeft", Rest: skeleton.Transform{Translation: mgl64.Vec3{0, 1, 0}}},
		{Name: "mElbowLeft", Parent: "mShoulderLeft", Rest: skeleton.Transform{Translation: mgl64.Vec3{1, 0, 0}}},
		{Name: "mWristLeft", Parent: "mElbowLeft", Rest: skeleton.Transform{Translation: mgl64.Vec3{1, 0, 0}}},
		{Name: "L_HAND", Parent: "mWristLeft"},
	})
	require.NoError(t, err)
	return New(skel, opts...)
}

func TestIdentityPoseAtLoad(t *testing.T) {
	s := newArm(t)
	for _, name := range s.Skeleton().Names() {
		rot, ok := s.CurrentRotation(name)
		require.True(t, ok)
		assert.Equal(t, mgl64.Vec3{}, rot)
		pos, _ := s.CurrentPosition(name)
		assert.Equal(t, mgl64.Vec3{}, pos)
		sc, _ := s.CurrentScale(name)
		assert.Equal(t, 1.0, sc)
	}
	w, ok := s.World("mWristLeft")
	require.True(t, ok)
	assert.InDelta(t, 2.0, w.Position[0], 1e-12)
	assert.InDelta(t, 1.0, w.Position[1], 1e-12)
}

func TestApplyRotationReplacesAxisAngle(t *testing.T) {
	s := newArm(t)
	for _, axis := range []Axis{X, Y, Z} {
		require.NoError(t, s.ApplyRotation("mElbowLeft", axis, 0.4))
		require.NoError(t, s.ApplyRotation("mElbowLeft", axis, -1.2))
		rot, ok := s.CurrentRotation("mElbowLeft")
		require.True(t, ok)
		assert.Equal(t, -1.2, rot[axis], axis.String())
	}
}

func TestApplyRotationComposesXYZFromStoredTriple(t *testing.T) {
	s := newArm(t)
	require.NoError(t, s.ApplyRotation("mElbowLeft", Z, 0.7))
	require.NoError(t, s.ApplyRotation("mElbowLeft", X, 0.3))
	require.NoError(t, s.ApplyRotation("mElbowLeft", Y, -0.5))

	q, ok := s.CurrentOrientation("mElbowLeft")
	require.True(t, ok)
	want := mathutil.ComposeXYZ(mgl64.Vec3{0.3, -0.5, 0.7})
	assert.True(t, q.ApproxEqualThreshold(want, 1e-12))
}

func TestApplyRotationDoesNotClamp(t *testing.T) {
	s := newArm(t)
	require.NoError(t, s.ApplyRotation("mElbowLeft", X, 5*math.Pi))
	rot, _ := s.CurrentRotation("mElbowLeft")
	assert.Equal(t, 5*math.Pi, rot[0])
}

func TestApplyRotationPropagatesToDescendants(t *testing.T) {
	s := newArm(t)
	require.NoError(t, s.ApplyRotation("mElbowLeft", Z, math.Pi/2))

	w, ok := s.World("mWristLeft")
	require.True(t, ok)
	// Elbow at (1,1,0); wrist offset (1,0,0) rotated 90° about Z -> (0,1,0).
	assert.InDelta(t, 1.0, w.Position[0], 1e-9)
	assert.InDelta(t, 2.0, w.Position[1], 1e-9)

	hand, _ := s.World("L_HAND")
	assert.InDelta(t, w.Position[0], hand.Position[0], 1e-12)
	assert.True(t, hand.Orientation.ApproxEqualThreshold(mathutil.RotZ(math.Pi/2), 1e-9))
}

func TestApplyPositionClamps(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0.1, 0.1},
		{0.25, 0.25},
		{0.9, 0.25},
		{-3, -0.25},
		{-0.25, -0.25},
	}
	s := newArm(t)
	for _, tt := range tests {
		got, err := s.ApplyPosition("L_HAND", Y, tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
		pos, _ := s.CurrentPosition("L_HAND")
		assert.Equal(t, tt.want, pos[1])
	}
}

func TestApplyPositionMovesBone(t *testing.T) {
	s := newArm(t)
	_, err := s.ApplyPosition("L_HAND", Z, 0.2)
	require.NoError(t, err)
	w, _ := s.World("L_HAND")
	assert.InDelta(t, 0.2, w.Position[2], 1e-12)
}

func TestApplyPositionOnPrimaryBoneIsAllowed(t *testing.T) {
	s := newArm(t)
	v, err := s.ApplyPosition("mElbowLeft", X, 0.1)
	require.NoError(t, err)
	assert.Equal(t, 0.1, v)
}

func TestApplyScale(t *testing.T) {
	s := newArm(t)
	require.NoError(t, s.ApplyScale("mElbowLeft", 2))
	sc, _ := s.CurrentScale("mElbowLeft")
	assert.Equal(t, 2.0, sc)

	w, _ := s.World("mWristLeft")
	assert.InDelta(t, 3.0, w.Position[0], 1e-12)
	assert.Equal(t, mgl64.Vec3{2, 2, 2}, w.Scale)
}

func TestApplyScaleRejectsDegenerateFactors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	s := newArm(t, WithFaultRecorder(m))
	require.NoError(t, s.ApplyScale("L_HAND", 1.5))

	for _, f := range []float64{-1, 0, math.NaN(), math.Inf(1)} {
		err := s.ApplyScale("L_HAND", f)
		assert.ErrorIs(t, err, ErrDegenerateScale)
		sc, _ := s.CurrentScale("L_HAND")
		assert.Equal(t, 1.5, sc)
	}
	assert.Equal(t, 4.0, testutil.ToFloat64(m.Faults.WithLabelValues(metrics.FaultDegenerateScale)))
}

func TestUnknownBoneIsReportedNotFatal(t *testing.T) {
	m := metrics.New(nil)
	s := newArm(t, WithFaultRecorder(m))
	before := s.Snapshot()

	assert.ErrorIs(t, s.ApplyRotation("Spine2", X, 1), ErrUnknownBone)
	_, err := s.ApplyPosition("Spine2", X, 1)
	assert.ErrorIs(t, err, ErrUnknownBone)
	assert.ErrorIs(t, s.ApplyScale("Spine2", 2), ErrUnknownBone)
	assert.ErrorIs(t, s.SetOrientation("Spine2", mgl64.QuatIdent()), ErrUnknownBone)

	_, ok := s.CurrentRotation("Spine2")
	assert.False(t, ok)
	_, ok = s.CurrentPosition("Spine2")
	assert.False(t, ok)
	_, ok = s.CurrentScale("Spine2")
	assert.False(t, ok)
	_, ok = s.World("Spine2")
	assert.False(t, ok)

	assert.Equal(t, before, s.Snapshot())
	assert.Equal(t, 4.0, testutil.ToFloat64(m.Faults.WithLabelValues(metrics.FaultUnknownBone)))
}

func TestInvalidAxis(t *testing.T) {
	s := newArm(t)
	assert.ErrorIs(t, s.ApplyRotation("mElbowLeft", Axis(7), 1), ErrInvalidAxis)
	_, err := s.ApplyPosition("L_HAND", Axis(-1), 1)
	assert.ErrorIs(t, err, ErrInvalidAxis)
}

func TestSetOrientationBypassesTriple(t *testing.T) {
	s := newArm(t)
	require.NoError(t, s.ApplyRotation("mElbowLeft", X, 0.5))
	q := mathutil.RotY(1.0)
	require.NoError(t, s.SetOrientation("mElbowLeft", q))

	rot, _ := s.CurrentRotation("mElbowLeft")
	assert.Equal(t, mgl64.Vec3{0.5, 0, 0}, rot)
	got, _ := s.CurrentOrientation("mElbowLeft")
	assert.Equal(t, q, got)

	// The next slider move recomposes from the stored triple again.
	require.NoError(t, s.ApplyRotation("mElbowLeft", Z, 0))
	got, _ = s.CurrentOrientation("mElbowLeft")
	assert.True(t, got.ApproxEqualThreshold(mathutil.RotX(0.5), 1e-12))
}

func TestRoundTrip(t *testing.T) {
	s := newArm(t)
	require.NoError(t, s.ApplyRotation("mWristLeft", Y, 1.25))
	_, err := s.ApplyPosition("L_HAND", X, 0.6)
	require.NoError(t, err)
	require.NoError(t, s.ApplyScale("L_HAND", 3))

	rot, _ := s.CurrentRotation("mWristLeft")
	assert.Equal(t, mgl64.Vec3{0, 1.25, 0}, rot)
	pos, _ := s.CurrentPosition("L_HAND")
	assert.Equal(t, mgl64.Vec3{0.25, 0, 0}, pos)
	sc, _ := s.CurrentScale("L_HAND")
	assert.Equal(t, 3.0, sc)
}

func TestReset(t *testing.T) {
	s := newArm(t)
	rest := s.Snapshot()
	require.NoError(t, s.ApplyRotation("mShoulderLeft", X, 1))
	require.NoError(t, s.ApplyScale("L_HAND", 2))
	s.Reset()
	assert.Equal(t, rest, s.Snapshot())
}

func TestParseAxis(t *testing.T) {
	for in, want := range map[string]Axis{"x": X, "Y": Y, "z": Z} {
		got, err := ParseAxis(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseAxis("w")
	assert.ErrorIs(t, err, ErrInvalidAxis)
	assert.Equal(t, "Axis(9)", Axis(9).String())
}

func TestNonFiniteInputsAreRejected(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	s := newArm(t, WithFaultRecorder(m))
	_, err := s.ApplyPosition("L_HAND", X, 0.1)
	require.NoError(t, err)
	before := s.Snapshot()

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		stored, err := s.ApplyPosition("L_HAND", X, v)
		assert.ErrorIs(t, err, ErrNonFinite)
		assert.Zero(t, stored)
		assert.ErrorIs(t, s.ApplyRotation("mElbowLeft", Y, v), ErrNonFinite)
	}
	bad := mgl64.Quat{W: math.NaN(), V: mgl64.Vec3{0, 0, 0}}
	assert.ErrorIs(t, s.SetOrientation("mElbowLeft", bad), ErrNonFinite)

	pos, _ := s.CurrentPosition("L_HAND")
	assert.Equal(t, mgl64.Vec3{0.1, 0, 0}, pos)
	rot, _ := s.CurrentRotation("mElbowLeft")
	assert.Equal(t, mgl64.Vec3{}, rot)
	assert.Equal(t, before, s.Snapshot())
	assert.Equal(t, 7.0, testutil.ToFloat64(m.Faults.WithLabelValues(metrics.FaultNonFinite)))
}

func newRestRotated(t *testing.T) *State {
	t.Helper()
	skel, err := skeleton.New([]skeleton.BoneDescriptor{
		{Name: "mShoulderLeft", Rest: skeleton.Transform{Rotation: mathutil.RotY(math.Pi / 2)}},
		{Name: "mElbowLeft", Parent: "mShoulderLeft", Rest: skeleton.Transform{Translation: mgl64.Vec3{1, 0, 0}}},
	})
	require.NoError(t, err)
	return New(skel)
}

func TestSetOrientationReplacesRestRotation(t *testing.T) {
	s := newRestRotated(t)
	sample := mathutil.RotZ(0.5)
	require.NoError(t, s.SetOrientation("mShoulderLeft", sample))

	w, ok := s.World("mShoulderLeft")
	require.True(t, ok)
	assert.True(t, w.Orientation.ApproxEqualThreshold(sample, 1e-12))

	elbow, _ := s.World("mElbowLeft")
	want := sample.Rotate(mgl64.Vec3{1, 0, 0})
	assert.True(t, elbow.Position.ApproxEqualThreshold(want, 1e-12), elbow.Position)

	// Pose controls layer on the rest rotation again.
	require.NoError(t, s.ApplyRotation("mShoulderLeft", Z, 0))
	w, _ = s.World("mShoulderLeft")
	assert.True(t, w.Orientation.ApproxEqualThreshold(mathutil.RotY(math.Pi/2), 1e-12))
}

func TestResetMatchesIncrementalPropagation(t *testing.T) {
	s := newRestRotated(t)
	atRest := s.Snapshot()

	// A zero rotation recomputes the chain bone by bone.
	require.NoError(t, s.ApplyRotation("mShoulderLeft", X, 0))
	for i, b := range s.Snapshot() {
		assert.True(t, b.Matrix.ApproxEqualThreshold(atRest[i].Matrix, 1e-12), b.Name)
		assert.True(t, b.Orientation.ApproxEqualThreshold(atRest[i].Orientation, 1e-12), b.Name)
	}

	require.NoError(t, s.SetOrientation("mShoulderLeft", mathutil.RotX(1)))
	s.Reset()
	assert.Equal(t, atRest, s.Snapshot())
	elbow, _ := s.World("mElbowLeft")
	assert.True(t, elbow.Position.ApproxEqualThreshold(mgl64.Vec3{0, 0, -1}, 1e-12), elbow.Position)
}
