// Package pose holds the live per-bone pose of a loaded skeleton and keeps
// world transforms current after every mutation.
package pose

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"avatar-rig/internal/mathutil"
	"avatar-rig/internal/metrics"
	"avatar-rig/internal/skeleton"
	"avatar-rig/internal/taxonomy"
)

var (
	ErrUnknownBone     = errors.New("bone not found")
	ErrDegenerateScale = errors.New("degenerate scale")
	ErrInvalidAxis     = errors.New("invalid axis")
	ErrNonFinite       = errors.New("non-finite value")
)

// FaultRecorder receives recoverable fault kinds (see package metrics).
type FaultRecorder interface {
	Fault(kind string)
}

// bonePose is the mutable part of one bone. angles is the absolute X/Y/Z
// triple set through ApplyRotation; orientation is what is actually applied.
// When replaced is set, orientation came from playback and stands in for the
// rest rotation instead of being layered on it.
type bonePose struct {
	angles      mgl64.Vec3
	orientation mgl64.Quat
	replaced    bool
	offset      mgl64.Vec3
	scale       float64
}

func identityPose() bonePose {
	return bonePose{orientation: mgl64.QuatIdent(), scale: 1}
}

// BoneTransform is the world transform of one bone, as consumed by a renderer.
type BoneTransform struct {
	Name        string
	Matrix      mgl64.Mat4
	Position    mgl64.Vec3
	Orientation mgl64.Quat
	Scale       mgl64.Vec3
}

// State is the pose of one skeleton. It is not safe for concurrent use.
type State struct {
	skel       *skeleton.Skeleton
	poses      []bonePose
	worlds     []mgl64.Mat4
	worldRot   []mgl64.Quat
	worldScale []mgl64.Vec3
	faults     FaultRecorder
}

// Option configures a State.
type Option func(*State)

// WithFaultRecorder reports unknown-bone and degenerate-scale faults to r.
func WithFaultRecorder(r FaultRecorder) Option {
	return func(s *State) { s.faults = r }
}

// New returns the identity pose of skel with world transforms computed.
func New(skel *skeleton.Skeleton, opts ...Option) *State {
	n := skel.Len()
	s := &State{
		skel:       skel,
		poses:      make([]bonePose, n),
		worlds:     make([]mgl64.Mat4, n),
		worldRot:   make([]mgl64.Quat, n),
		worldScale: make([]mgl64.Vec3, n),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Reset()
	return s
}

// Skeleton returns the skeleton this pose belongs to.
func (s *State) Skeleton() *skeleton.Skeleton {
	return s.skel
}

// Reset restores the identity pose on every bone.
func (s *State) Reset() {
	for i := range s.poses {
		s.poses[i] = identityPose()
	}
	// The identity pose is the rest pose.
	copy(s.worlds, skeleton.BuildWorldMatrices(s.skel, skeleton.RestLocals(s.skel)))
	for i := 0; i < s.skel.Len(); i++ {
		b := s.skel.Bone(i)
		s.chainFrame(i, b.Parent, b.Rest.Rotation, b.Rest.Scale)
	}
}

func (s *State) lookup(op, name string) (int, error) {
	i, ok := s.skel.Index(name)
	if !ok {
		s.fault(metrics.FaultUnknownBone)
		return 0, fmt.Errorf("pose: %s %q: %w", op, name, ErrUnknownBone)
	}
	return i, nil
}

func (s *State) fault(kind string) {
	if s.faults != nil {
		s.faults.Fault(kind)
	}
}

// ApplyRotation replaces the stored angle of one axis, recomposes the
// orientation as X·Y·Z from the three stored angles and propagates.
// Angles are stored as given; no range clamping is applied.
func (s *State) ApplyRotation(name string, axis Axis, radians float64) error {
	if !axis.valid() {
		return fmt.Errorf("pose: apply rotation %q: %w", name, ErrInvalidAxis)
	}
	i, err := s.lookup("apply rotation", name)
	if err != nil {
		return err
	}
	if !mathutil.IsFinite(radians) {
		s.fault(metrics.FaultNonFinite)
		return fmt.Errorf("pose: apply rotation %q (%g): %w", name, radians, ErrNonFinite)
	}
	p := &s.poses[i]
	p.angles[axis] = radians
	p.orientation = mathutil.ComposeXYZ(p.angles)
	p.replaced = false
	s.propagate(i)
	return nil
}

// ApplyPosition clamps value to ±taxonomy.PositionLimit, stores it as the
// offset of one axis and propagates. It returns the stored value.
func (s *State) ApplyPosition(name string, axis Axis, value float64) (float64, error) {
	if !axis.valid() {
		return 0, fmt.Errorf("pose: apply position %q: %w", name, ErrInvalidAxis)
	}
	i, err := s.lookup("apply position", name)
	if err != nil {
		return 0, err
	}
	if !mathutil.IsFinite(value) {
		s.fault(metrics.FaultNonFinite)
		return 0, fmt.Errorf("pose: apply position %q (%g): %w", name, value, ErrNonFinite)
	}
	v := mathutil.ClampSym(value, taxonomy.PositionLimit)
	s.poses[i].offset[axis] = v
	s.propagate(i)
	return v, nil
}

// ApplyScale sets a uniform scale. Zero, negative and non-finite factors are
// rejected with ErrDegenerateScale and leave the bone untouched.
func (s *State) ApplyScale(name string, factor float64) error {
	i, err := s.lookup("apply scale", name)
	if err != nil {
		return err
	}
	if !mathutil.IsFinite(factor) || factor <= 0 {
		s.fault(metrics.FaultDegenerateScale)
		return fmt.Errorf("pose: apply scale %q (%g): %w", name, factor, ErrDegenerateScale)
	}
	s.poses[i].scale = factor
	s.propagate(i)
	return nil
}

// SetOrientation overwrites the bone's local rotation with q, replacing the
// rest rotation, and leaves the stored axis angles untouched. Used by clip
// playback. The next ApplyRotation on the bone recomposes from the angles.
func (s *State) SetOrientation(name string, q mgl64.Quat) error {
	i, err := s.lookup("set orientation", name)
	if err != nil {
		return err
	}
	if !mathutil.IsFinite(q.W) || !mathutil.IsFinite(q.V[0]) || !mathutil.IsFinite(q.V[1]) || !mathutil.IsFinite(q.V[2]) {
		s.fault(metrics.FaultNonFinite)
		return fmt.Errorf("pose: set orientation %q: %w", name, ErrNonFinite)
	}
	p := &s.poses[i]
	p.orientation = q
	p.replaced = true
	s.propagate(i)
	return nil
}

// CurrentRotation returns the stored absolute X/Y/Z angles.
func (s *State) CurrentRotation(name string) (mgl64.Vec3, bool) {
	i, ok := s.skel.Index(name)
	if !ok {
		return mgl64.Vec3{}, false
	}
	return s.poses[i].angles, true
}

// CurrentOrientation returns the applied pose orientation: relative to rest
// after ApplyRotation, the bone's full local rotation after SetOrientation.
func (s *State) CurrentOrientation(name string) (mgl64.Quat, bool) {
	i, ok := s.skel.Index(name)
	if !ok {
		return mgl64.Quat{}, false
	}
	return s.poses[i].orientation, true
}

// CurrentPosition returns the stored (clamped) position offset.
func (s *State) CurrentPosition(name string) (mgl64.Vec3, bool) {
	i, ok := s.skel.Index(name)
	if !ok {
		return mgl64.Vec3{}, false
	}
	return s.poses[i].offset, true
}

// CurrentScale returns the stored uniform scale.
func (s *State) CurrentScale(name string) (float64, bool) {
	i, ok := s.skel.Index(name)
	if !ok {
		return 0, false
	}
	return s.poses[i].scale, true
}

// World returns the world transform of one bone.
func (s *State) World(name string) (BoneTransform, bool) {
	i, ok := s.skel.Index(name)
	if !ok {
		return BoneTransform{}, false
	}
	return s.transform(i), true
}

// Snapshot returns the world transform of every bone in skeleton order.
func (s *State) Snapshot() []BoneTransform {
	out := make([]BoneTransform, len(s.worlds))
	for i := range s.worlds {
		out[i] = s.transform(i)
	}
	return out
}

func (s *State) transform(i int) BoneTransform {
	return BoneTransform{
		Name:        s.skel.Bone(i).Name,
		Matrix:      s.worlds[i],
		Position:    mathutil.Translation(s.worlds[i]),
		Orientation: s.worldRot[i],
		Scale:       s.worldScale[i],
	}
}

// propagate recomputes bone i and all of its descendants.
func (s *State) propagate(i int) {
	for _, j := range s.skel.Descendants(i) {
		s.recompute(j)
	}
}

// recompute rebuilds the local and world transform of bone i from its rest
// transform and pose. The parent must already be current.
func (s *State) recompute(i int) {
	b := s.skel.Bone(i)
	p := s.poses[i]

	t := b.Rest.Translation.Add(p.offset)
	r := p.orientation
	if !p.replaced {
		r = b.Rest.Rotation.Mul(p.orientation)
	}
	sc := b.Rest.Scale.Mul(p.scale)
	local := mathutil.TRS(t, r, sc)

	if b.Parent < 0 {
		s.worlds[i] = local
	} else {
		s.worlds[i] = s.worlds[b.Parent].Mul4(local)
	}
	s.chainFrame(i, b.Parent, r, sc)
}

// chainFrame sets the world rotation and scale of bone i from its local ones.
func (s *State) chainFrame(i, parent int, r mgl64.Quat, sc mgl64.Vec3) {
	if parent < 0 {
		s.worldRot[i] = r
		s.worldScale[i] = sc
		return
	}
	s.worldRot[i] = s.worldRot[parent].Mul(r)
	ps := s.worldScale[parent]
	s.worldScale[i] = mgl64.Vec3{ps[0] * sc[0], ps[1] * sc[1], ps[2] * sc[2]}
}
