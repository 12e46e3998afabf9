package clip

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tiendc/go-deepcopy"

	"avatar-rig/internal/mathutil"
)

var (
	ErrInvalidTrack   = errors.New("invalid track")
	ErrInvalidChannel = errors.New("invalid channel")
)

// Channel is the animated property of a track.
type Channel string

const (
	Rotation Channel = "rotation"
	Position Channel = "position"
)

// ParseChannel accepts "rotation" and "position"; "quaternion" is an alias
// for rotation as written by three.js exporters.
func ParseChannel(s string) (Channel, error) {
	switch strings.ToLower(s) {
	case "rotation", "quaternion":
		return Rotation, nil
	case "position":
		return Position, nil
	}
	return "", fmt.Errorf("clip: parse channel %q: %w", s, ErrInvalidChannel)
}

// Stride is the number of values per key: 4 (x, y, z, w) for rotation, 3 for position.
func (c Channel) Stride() int {
	switch c {
	case Rotation:
		return 4
	case Position:
		return 3
	}
	return 0
}

// Track is one (joint, channel) curve sampled at ascending key times.
type Track struct {
	Name    string
	Channel Channel
	Times   []float64
	Values  []float64
}

// NewTrack validates and returns a track. The slices are retained.
func NewTrack(name string, ch Channel, times, values []float64) (*Track, error) {
	if name == "" {
		return nil, fmt.Errorf("clip: new track: empty name: %w", ErrInvalidTrack)
	}
	stride := ch.Stride()
	if stride == 0 {
		return nil, fmt.Errorf("clip: new track %q: channel %q: %w", name, ch, ErrInvalidChannel)
	}
	if len(times) == 0 {
		return nil, fmt.Errorf("clip: new track %q: no keys: %w", name, ErrInvalidTrack)
	}
	if len(values) != len(times)*stride {
		return nil, fmt.Errorf("clip: new track %q: %d values for %d keys of stride %d: %w",
			name, len(values), len(times), stride, ErrInvalidTrack)
	}
	for i, tm := range times {
		if !mathutil.IsFinite(tm) || (i > 0 && tm <= times[i-1]) {
			return nil, fmt.Errorf("clip: new track %q: key %d time %g not ascending: %w", name, i, tm, ErrInvalidTrack)
		}
	}
	for i, v := range values {
		if !mathutil.IsFinite(v) {
			return nil, fmt.Errorf("clip: new track %q: value %d not finite: %w", name, i, ErrInvalidTrack)
		}
	}
	return &Track{Name: name, Channel: ch, Times: times, Values: values}, nil
}

// SplitPath splits "LeftForeArm.rotation" into joint and channel.
func SplitPath(path string) (string, Channel, error) {
	dot := strings.IndexByte(path, '.')
	if dot <= 0 {
		return "", "", fmt.Errorf("clip: split path %q: %w", path, ErrInvalidTrack)
	}
	ch, err := ParseChannel(path[dot+1:])
	if err != nil {
		return "", "", err
	}
	return path[:dot], ch, nil
}

// Path returns "joint.channel".
func (t *Track) Path() string {
	return t.Name + "." + string(t.Channel)
}

// Len returns the number of keys.
func (t *Track) Len() int {
	return len(t.Times)
}

// EndTime is the time of the last key.
func (t *Track) EndTime() float64 {
	return t.Times[len(t.Times)-1]
}

// Renamed returns a deep copy of the track addressed to another joint.
// Key times and values are copied unchanged.
func (t *Track) Renamed(name string) (*Track, error) {
	var out Track
	if err := deepcopy.Copy(&out, *t); err != nil {
		return nil, fmt.Errorf("clip: copy track %q: %w", t.Path(), err)
	}
	out.Name = name
	return &out, nil
}

// locate returns the key pair bracketing at and the blend factor between them.
// Times before the first key or at/after the last key clamp to that key.
func (t *Track) locate(at float64) (int, int, float64) {
	n := len(t.Times)
	if n == 1 || at <= t.Times[0] {
		return 0, 0, 0
	}
	if at >= t.Times[n-1] {
		return n - 1, n - 1, 0
	}
	hi := sort.SearchFloat64s(t.Times, at)
	lo := hi - 1
	if t.Times[hi] == at {
		return hi, hi, 0
	}
	return lo, hi, (at - t.Times[lo]) / (t.Times[hi] - t.Times[lo])
}

// SampleRotation evaluates a rotation track with spherical interpolation.
func (t *Track) SampleRotation(at float64) mgl64.Quat {
	lo, hi, f := t.locate(at)
	a := mathutil.QuatFromXYZW(t.Values[lo*4 : lo*4+4])
	if lo == hi {
		return a
	}
	b := mathutil.QuatFromXYZW(t.Values[hi*4 : hi*4+4])
	return mathutil.Slerp(a, b, f)
}

// SamplePosition evaluates a position track with linear interpolation.
func (t *Track) SamplePosition(at float64) mgl64.Vec3 {
	lo, hi, f := t.locate(at)
	a := mathutil.Vec3FromSlice(t.Values[lo*3 : lo*3+3])
	if lo == hi {
		return a
	}
	b := mathutil.Vec3FromSlice(t.Values[hi*3 : hi*3+3])
	return mathutil.Lerp(a, b, f)
}

// Sample evaluates the track at time at and returns the raw components
// (4 for rotation, 3 for position).
func (t *Track) Sample(at float64) []float64 {
	switch t.Channel {
	case Rotation:
		q := mathutil.QuatXYZW(t.SampleRotation(at))
		return q[:]
	case Position:
		v := t.SamplePosition(at)
		return v[:]
	}
	return nil
}
