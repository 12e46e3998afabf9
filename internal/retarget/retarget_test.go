package retarget

import (
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"avatar-rig/internal/clip"
	"avatar-rig/internal/mathutil"
)

type boneSet map[string]bool

func (b boneSet) Has(name string) bool { return b[name] }

func rotTrack(t *testing.T, joint string, angles ...float64) *clip.Track {
	t.Helper()
	times := make([]float64, len(angles))
	var values []float64
	for i, a := range angles {
		times[i] = float64(i)
		q := mathutil.QuatXYZW(mathutil.RotZ(a))
		values = append(values, q[:]...)
	}
	tr, err := clip.NewTrack(joint, clip.Rotation, times, values)
	require.NoError(t, err)
	return tr
}

func posTrack(t *testing.T, joint string) *clip.Track {
	t.Helper()
	tr, err := clip.NewTrack(joint, clip.Position, []float64{0, 1}, []float64{0, 0, 0, 1, 1, 1})
	require.NoError(t, err)
	return tr
}

func TestMappingResolveIgnoresCase(t *testing.T) {
	m := DefaultMapping()
	for _, joint := range []string{"LeftHand", "lefthand", "LEFTHAND", "lHand", "LHAND"} {
		got, ok := m.Resolve(joint)
		require.True(t, ok, joint)
		assert.Equal(t, "mWristLeft", got)
	}
	_, ok := m.Resolve("Spine2")
	assert.False(t, ok)
}

func TestMappingTargets(t *testing.T) {
	m := DefaultMapping()
	assert.Len(t, m.Entries(), 31)
	targets := m.Targets()
	assert.Len(t, targets, 19)
	assert.Equal(t, "mPelvis", targets[0])
}

func TestNewMappingRejectsConflicts(t *testing.T) {
	_, err := NewMapping([]Entry{{"Hip", "mPelvis"}, {"HIP", "mTorso"}})
	assert.ErrorIs(t, err, ErrMappingConflict)

	m, err := NewMapping([]Entry{{"Hip", "mPelvis"}, {"hip", "mPelvis"}})
	require.NoError(t, err)
	assert.Len(t, m.Entries(), 1)

	_, err = NewMapping([]Entry{{"", "mPelvis"}})
	assert.Error(t, err)
}

func TestParseMapping(t *testing.T) {
	m, err := ParseMapping([]byte(`
entries:
  - source: Hips
    target: mPelvis
  - source: Spine1
    target: mTorso
`))
	require.NoError(t, err)
	got, ok := m.Resolve("hips")
	require.True(t, ok)
	assert.Equal(t, "mPelvis", got)
}

func TestRetargetScenario(t *testing.T) {
	skel := boneSet{"mElbowLeft": true, "mWristLeft": true}
	src := clip.New("bvh", -1, []*clip.Track{
		rotTrack(t, "LeftForeArm", 0, 1),
		rotTrack(t, "LeftHand", 0, 0.5),
		rotTrack(t, "Spine2", 0, 2),
	})

	out, rep, err := Retarget(src, skel, DefaultMapping())
	require.NoError(t, err)

	assert.Equal(t, RemappedName, out.Name)
	assert.Equal(t, src.Duration, out.Duration)
	require.Len(t, out.Tracks, 2)
	assert.Equal(t, "mElbowLeft.rotation", out.Tracks[0].Path())
	assert.Equal(t, "mWristLeft.rotation", out.Tracks[1].Path())
	_, ok := out.Track("Spine2.rotation")
	assert.False(t, ok)

	assert.Equal(t, 2, rep.Retained)
	assert.Equal(t, 1, rep.Dropped)
	assert.Equal(t, []string{"Spine2"}, rep.Unmapped)
	assert.Empty(t, rep.Missing)
	assert.NotEmpty(t, rep.ID)
	assert.InDelta(t, 1.0/3, rep.DropRatio(), 1e-12)
}

func TestRetargetKeepsEveryMappedJoint(t *testing.T) {
	m := DefaultMapping()
	skel := boneSet{}
	for _, target := range m.Targets() {
		skel[target] = true
	}
	var tracks []*clip.Track
	for i, e := range m.Entries() {
		name := e.Source
		if i%2 == 0 {
			name = strings.ToLower(name)
		} else {
			name = strings.ToUpper(name)
		}
		tracks = append(tracks, rotTrack(t, name, 0, 0.1))
	}
	out, rep, err := Retarget(clip.New("all", -1, tracks), skel, m)
	require.NoError(t, err)

	assert.Len(t, out.Tracks, len(m.Entries()))
	assert.Equal(t, 0, rep.Dropped)
	for i, e := range m.Entries() {
		assert.Equal(t, e.Target, out.Tracks[i].Name)
	}
}

func TestRetargetDropsBonesMissingFromSkeleton(t *testing.T) {
	skel := boneSet{"mElbowLeft": true}
	src := clip.New("bvh", -1, []*clip.Track{
		rotTrack(t, "LeftForeArm", 0, 1),
		rotTrack(t, "Head", 0, 1),
		posTrack(t, "Head"),
	})
	out, rep, err := Retarget(src, skel, DefaultMapping())
	require.NoError(t, err)
	assert.Len(t, out.Tracks, 1)
	assert.Equal(t, 2, rep.Dropped)
	assert.Equal(t, []string{"mHead"}, rep.Missing)
	assert.Empty(t, rep.Unmapped)
}

func TestRetargetPreservesCurveDataAndSource(t *testing.T) {
	src := clip.New("bvh", -1, []*clip.Track{rotTrack(t, "LeftForeArm", 0, 1), posTrack(t, "LeftForeArm")})
	out, _, err := Retarget(src, boneSet{"mElbowLeft": true}, DefaultMapping())
	require.NoError(t, err)
	require.Len(t, out.Tracks, 2)

	assert.Equal(t, src.Tracks[0].Times, out.Tracks[0].Times)
	assert.Equal(t, src.Tracks[0].Values, out.Tracks[0].Values)
	assert.Equal(t, clip.Position, out.Tracks[1].Channel)

	out.Tracks[0].Values[0] = 9
	assert.Equal(t, "LeftForeArm", src.Tracks[0].Name)
	assert.NotEqual(t, 9.0, src.Tracks[0].Values[0])
}

func TestRetargetWithNoSurvivors(t *testing.T) {
	src := clip.New("bvh", -1, []*clip.Track{rotTrack(t, "Tail", 0, 1)})
	out, rep, err := Retarget(src, boneSet{}, DefaultMapping())
	require.NoError(t, err)
	assert.Empty(t, out.Tracks)
	assert.Equal(t, 1.0, out.Duration)
	assert.Equal(t, 1.0, rep.DropRatio())

	p := NewPlayer(out)
	sink := &recordingSink{}
	require.NoError(t, p.Tick(0.5, sink))
	assert.Empty(t, sink.writes)
}

type recordingSink struct {
	writes map[string]mgl64.Quat
	calls  int
}

func (s *recordingSink) SetOrientation(bone string, q mgl64.Quat) error {
	if s.writes == nil {
		s.writes = map[string]mgl64.Quat{}
	}
	s.writes[bone] = q
	s.calls++
	return nil
}

type countingFaults map[string]int

func (c countingFaults) Fault(kind string) { c[kind]++ }

func TestPlayerClampsAndHolds(t *testing.T) {
	c, _, err := Retarget(
		clip.New("bvh", -1, []*clip.Track{rotTrack(t, "LeftHand", 0, math.Pi/2), posTrack(t, "LeftHand")}),
		boneSet{"mWristLeft": true}, DefaultMapping())
	require.NoError(t, err)

	faults := countingFaults{}
	p := NewPlayer(c, WithPlayerFaults(faults))
	sink := &recordingSink{}

	require.NoError(t, p.Tick(0.5, sink))
	assert.Equal(t, 0.5, p.Time())
	assert.True(t, sink.writes["mWristLeft"].ApproxEqualThreshold(mathutil.RotZ(math.Pi/4), 1e-9))
	assert.False(t, p.Done())

	require.NoError(t, p.Tick(0.5, sink))
	atEnd := sink.writes["mWristLeft"]
	assert.True(t, p.Done())

	require.NoError(t, p.Tick(0.25, sink))
	require.NoError(t, p.Tick(3, sink))
	assert.Equal(t, 1.0, p.Time())
	assert.Equal(t, atEnd, sink.writes["mWristLeft"])
	assert.Equal(t, 1, faults["clip_boundary_overrun"])

	// position channel is never written
	assert.Equal(t, 4, sink.calls)
}

func TestPlayerIgnoresBadDeltas(t *testing.T) {
	p := NewPlayer(clip.New("c", -1, []*clip.Track{rotTrack(t, "mNeck", 0, 1)}))
	sink := &recordingSink{}
	require.NoError(t, p.Tick(-1, sink))
	require.NoError(t, p.Tick(math.NaN(), sink))
	assert.Equal(t, 0.0, p.Time())
	assert.Equal(t, 2, sink.calls)
}

func TestPlayerSeek(t *testing.T) {
	p := NewPlayer(clip.New("c", -1, []*clip.Track{rotTrack(t, "mNeck", 0, 1, 2)}))
	p.Seek(1.5)
	assert.Equal(t, 1.5, p.Time())
	p.Seek(10)
	assert.Equal(t, 2.0, p.Time())
	p.Seek(-1)
	assert.Equal(t, 0.0, p.Time())

	sink := &recordingSink{}
	p.Seek(1)
	require.NoError(t, p.Apply(sink))
	assert.True(t, sink.writes["mNeck"].ApproxEqualThreshold(mathutil.RotZ(1), 1e-12))
}

type failingSink struct{}

func (failingSink) SetOrientation(string, mgl64.Quat) error { return assert.AnError }

func TestPlayerCollectsSinkErrors(t *testing.T) {
	p := NewPlayer(clip.New("c", -1, []*clip.Track{rotTrack(t, "a", 0, 1), rotTrack(t, "b", 0, 1)}))
	err := p.Tick(0.1, failingSink{})
	assert.ErrorIs(t, err, assert.AnError)
}
