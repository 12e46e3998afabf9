// Package engine serializes pose control, clip playback and rendering reads
// over one loaded skeleton.
package engine

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"k8s.io/klog/v2"

	"avatar-rig/internal/clip"
	"avatar-rig/internal/metrics"
	"avatar-rig/internal/pose"
	"avatar-rig/internal/retarget"
	"avatar-rig/internal/skeleton"
	"avatar-rig/internal/taxonomy"
)

var (
	ErrNoSkeleton    = errors.New("no skeleton loaded")
	ErrUnknownTarget = errors.New("unknown control target")
)

// highDropRatio is the share of dropped tracks above which a retarget is
// logged as a warning.
const highDropRatio = 0.5

// Engine owns the loaded skeleton, its pose and the active clip. All methods
// are safe for concurrent use; each call observes and leaves a complete pose.
type Engine struct {
	mu       sync.Mutex
	taxonomy *taxonomy.Taxonomy
	mapping  *retarget.Mapping
	metrics  *metrics.Metrics

	skel   *skeleton.Skeleton
	pose   *pose.State
	player *retarget.Player

	qmu   sync.Mutex
	queue []Command
}

// Option configures an Engine.
type Option func(*Engine)

// WithTaxonomy replaces the default bone taxonomy.
func WithTaxonomy(t *taxonomy.Taxonomy) Option {
	return func(e *Engine) { e.taxonomy = t }
}

// WithMapping replaces the default joint-name mapping.
func WithMapping(m *retarget.Mapping) Option {
	return func(e *Engine) { e.mapping = m }
}

// WithMetrics records faults and playback counters to m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// New returns an engine with no skeleton loaded.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.taxonomy == nil {
		e.taxonomy = taxonomy.Default()
	}
	if e.mapping == nil {
		e.mapping = retarget.DefaultMapping()
	}
	return e
}

// LoadSkeleton builds a skeleton from descs and installs it.
func (e *Engine) LoadSkeleton(descs []skeleton.BoneDescriptor) error {
	s, err := skeleton.New(descs)
	if err != nil {
		return fmt.Errorf("engine: load skeleton: %w", err)
	}
	e.SetSkeleton(s)
	return nil
}

// SetSkeleton installs s with an identity pose. Any previous pose state and
// in-flight clip are discarded.
func (e *Engine) SetSkeleton(s *skeleton.Skeleton) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.skel = s
	e.pose = pose.New(s, pose.WithFaultRecorder(e.metrics))
	e.player = nil

	known := 0
	for _, name := range s.Names() {
		if _, ok := e.taxonomy.CategoryOf(name); ok {
			known++
		}
	}
	klog.Infof("Loaded skeleton: %d bones, %d categorized", s.Len(), known)
}

// Skeleton returns the loaded skeleton.
func (e *Engine) Skeleton() (*skeleton.Skeleton, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.skel, e.skel != nil
}

// Taxonomy returns the bone taxonomy in use.
func (e *Engine) Taxonomy() *taxonomy.Taxonomy {
	return e.taxonomy
}

// Mapping returns the joint-name mapping in use.
func (e *Engine) Mapping() *retarget.Mapping {
	return e.mapping
}

// Categories returns the taxonomy categories restricted to bones present in
// the loaded skeleton. Without a skeleton the full taxonomy is returned.
func (e *Engine) Categories() []taxonomy.Category {
	e.mu.Lock()
	defer e.mu.Unlock()

	cats := e.taxonomy.Categories()
	if e.skel == nil {
		return cats
	}
	for i := range cats {
		var present []string
		for _, b := range cats[i].Bones {
			if e.skel.Has(b) {
				present = append(present, b)
			}
		}
		cats[i].Bones = present
	}
	return cats
}

func (e *Engine) state(op string) (*pose.State, error) {
	if e.pose == nil {
		return nil, fmt.Errorf("engine: %s: %w", op, ErrNoSkeleton)
	}
	return e.pose, nil
}

// ApplyRotation sets the absolute angle of one axis of a bone.
func (e *Engine) ApplyRotation(bone string, axis pose.Axis, radians float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, err := e.state("apply rotation")
	if err != nil {
		return err
	}
	return s.ApplyRotation(bone, axis, radians)
}

// ApplyPosition sets one axis of a bone's position offset and returns the
// clamped value that was stored.
func (e *Engine) ApplyPosition(bone string, axis pose.Axis, value float64) (float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, err := e.state("apply position")
	if err != nil {
		return 0, err
	}
	return s.ApplyPosition(bone, axis, value)
}

// ApplyScale sets a bone's uniform scale.
func (e *Engine) ApplyScale(bone string, factor float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, err := e.state("apply scale")
	if err != nil {
		return err
	}
	return s.ApplyScale(bone, factor)
}

// ApplyControl applies a value addressed by a taxonomy control target
// (rot_x, pos_y, scale, ...).
func (e *Engine) ApplyControl(bone, target string, value float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.applyControl(bone, target, value)
}

func (e *Engine) applyControl(bone, target string, value float64) error {
	s, err := e.state("apply control")
	if err != nil {
		return err
	}
	switch target {
	case taxonomy.TargetRotX:
		return s.ApplyRotation(bone, pose.X, value)
	case taxonomy.TargetRotY:
		return s.ApplyRotation(bone, pose.Y, value)
	case taxonomy.TargetRotZ:
		return s.ApplyRotation(bone, pose.Z, value)
	case taxonomy.TargetPosX:
		_, err = s.ApplyPosition(bone, pose.X, value)
	case taxonomy.TargetPosY:
		_, err = s.ApplyPosition(bone, pose.Y, value)
	case taxonomy.TargetPosZ:
		_, err = s.ApplyPosition(bone, pose.Z, value)
	case taxonomy.TargetScale:
		err = s.ApplyScale(bone, value)
	default:
		err = fmt.Errorf("engine: apply control %q on %q: %w", target, bone, ErrUnknownTarget)
	}
	return err
}

// CurrentRotation returns the stored X/Y/Z angles of a bone.
func (e *Engine) CurrentRotation(bone string) (mgl64.Vec3, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pose == nil {
		return mgl64.Vec3{}, false
	}
	return e.pose.CurrentRotation(bone)
}

// CurrentOrientation returns the orientation currently applied to a bone.
func (e *Engine) CurrentOrientation(bone string) (mgl64.Quat, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pose == nil {
		return mgl64.Quat{}, false
	}
	return e.pose.CurrentOrientation(bone)
}

// CurrentPosition returns the stored position offset of a bone.
func (e *Engine) CurrentPosition(bone string) (mgl64.Vec3, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pose == nil {
		return mgl64.Vec3{}, false
	}
	return e.pose.CurrentPosition(bone)
}

// CurrentScale returns the stored uniform scale of a bone.
func (e *Engine) CurrentScale(bone string) (float64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pose == nil {
		return 0, false
	}
	return e.pose.CurrentScale(bone)
}

// World returns the world transform of a bone.
func (e *Engine) World(bone string) (pose.BoneTransform, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pose == nil {
		return pose.BoneTransform{}, false
	}
	return e.pose.World(bone)
}

// Snapshot returns the world transforms of every bone, or nil without a skeleton.
func (e *Engine) Snapshot() []pose.BoneTransform {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pose == nil {
		return nil
	}
	return e.pose.Snapshot()
}

// ResetPose restores the identity pose and stops playback.
func (e *Engine) ResetPose() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, err := e.state("reset pose")
	if err != nil {
		return err
	}
	e.player = nil
	s.Reset()
	return nil
}

// Play retargets c onto the loaded skeleton and starts it from time zero,
// replacing any clip already playing. The pose is written on the next Tick.
func (e *Engine) Play(c *clip.Clip) (retarget.Report, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.skel == nil {
		return retarget.Report{}, fmt.Errorf("engine: play %q: %w", c.Name, ErrNoSkeleton)
	}

	out, rep, err := retarget.Retarget(c, e.skel, e.mapping)
	if err != nil {
		return rep, fmt.Errorf("engine: play %q: %w", c.Name, err)
	}
	e.metrics.Retargeted(rep.Retained, rep.Dropped)
	for range rep.Unmapped {
		e.metrics.Fault(metrics.FaultUnmappedJoint)
	}
	for range rep.Missing {
		e.metrics.Fault(metrics.FaultMissingBone)
	}

	klog.Infof("Retargeted clip %q [%s]: %d tracks retained, %d dropped, duration %.3fs",
		c.Name, rep.ID, rep.Retained, rep.Dropped, out.Duration)
	if rep.DropRatio() > highDropRatio {
		klog.Warningf("Clip %q [%s] dropped %.0f%% of its tracks (unmapped %v, missing %v)",
			c.Name, rep.ID, rep.DropRatio()*100, rep.Unmapped, rep.Missing)
	}

	e.player = retarget.NewPlayer(out, retarget.WithPlayerFaults(e.metrics))
	return rep, nil
}

// Stop ends playback. The pose keeps the last written orientations.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.player = nil
}

// Playing reports whether a clip is active and its current time.
func (e *Engine) Playing() (float64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.player == nil {
		return 0, false
	}
	return e.player.Time(), true
}

// ActiveClip returns a copy of the retargeted clip being played.
func (e *Engine) ActiveClip() (*clip.Clip, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.player == nil {
		return nil, false
	}
	c, err := e.player.Clip().Clone()
	if err != nil {
		klog.Warningf("Copy of clip %q failed: %v", e.player.Clip().Name, err)
		return nil, false
	}
	return c, true
}

// Tick drains queued commands, then advances the active clip by dt seconds
// and writes its pose.
func (e *Engine) Tick(dt float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.drain()
	if e.player == nil {
		return nil
	}
	err := e.player.Tick(dt, e.pose)
	e.metrics.Tick()
	klog.V(4).Infof("Tick %q: t=%.4f", e.player.Clip().Name, e.player.Time())
	if err != nil {
		return fmt.Errorf("engine: tick: %w", err)
	}
	return nil
}
