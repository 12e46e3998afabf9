package retarget

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"

	"avatar-rig/internal/clip"
	"avatar-rig/internal/mathutil"
	"avatar-rig/internal/metrics"
)

// Sink receives evaluated rotation samples. pose.State implements it; each
// call must leave world transforms current before returning.
type Sink interface {
	SetOrientation(bone string, q mgl64.Quat) error
}

// FaultRecorder receives recoverable fault kinds.
type FaultRecorder interface {
	Fault(kind string)
}

// Player drives one clip from an internal clock. The clock clamps at the clip
// duration and holds the final sample; there is no looping.
type Player struct {
	clip    *clip.Clip
	time    float64
	overrun bool
	faults  FaultRecorder
}

// PlayerOption configures a Player.
type PlayerOption func(*Player)

// WithPlayerFaults reports clip-boundary overruns to r.
func WithPlayerFaults(r FaultRecorder) PlayerOption {
	return func(p *Player) { p.faults = r }
}

// NewPlayer starts c at time zero.
func NewPlayer(c *clip.Clip, opts ...PlayerOption) *Player {
	p := &Player{clip: c}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Clip returns the clip being played.
func (p *Player) Clip() *clip.Clip {
	return p.clip
}

// Time returns the current playback time.
func (p *Player) Time() float64 {
	return p.time
}

// Done reports whether the clock has reached the end of the clip.
func (p *Player) Done() bool {
	return p.time >= p.clip.Duration
}

// Seek moves the clock to t, clamped to [0, Duration].
func (p *Player) Seek(t float64) {
	if !mathutil.IsFinite(t) {
		return
	}
	p.time = mgl64.Clamp(t, 0, p.clip.Duration)
	if p.time < p.clip.Duration {
		p.overrun = false
	}
}

// Tick advances the clock by dt seconds and writes the pose for the new time.
// Negative or non-finite deltas do not move the clock.
func (p *Player) Tick(dt float64, sink Sink) error {
	if dt > 0 && mathutil.IsFinite(dt) {
		p.time += dt
		if p.time > p.clip.Duration {
			p.time = p.clip.Duration
			if !p.overrun {
				p.overrun = true
				if p.faults != nil {
					p.faults.Fault(metrics.FaultClipBoundaryOverrun)
				}
			}
		}
	}
	return p.Apply(sink)
}

// Apply evaluates every track at the current time. Rotation samples replace
// the bone orientation. Position tracks stay in the clip but are not applied;
// retargeted clips drive orientation only.
func (p *Player) Apply(sink Sink) error {
	var errs []error
	for _, tr := range p.clip.Tracks {
		switch tr.Channel {
		case clip.Rotation:
			if err := sink.SetOrientation(tr.Name, tr.SampleRotation(p.time)); err != nil {
				errs = append(errs, err)
			}
		case clip.Position:
			// not applied
		}
	}
	return errors.Join(errs...)
}
