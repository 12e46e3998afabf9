// Package metrics exposes prometheus counters for pose and retargeting activity.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Fault kinds.
const (
	FaultUnknownBone         = "unknown_bone"
	FaultUnmappedJoint       = "unmapped_joint"
	FaultMissingBone         = "missing_bone"
	FaultDegenerateScale     = "degenerate_scale"
	FaultNonFinite           = "non_finite_value"
	FaultClipBoundaryOverrun = "clip_boundary_overrun"
)

// Metrics groups the engine counters. A nil *Metrics is valid and records nothing.
type Metrics struct {
	Faults         *prometheus.CounterVec
	TracksRetained prometheus.Counter
	TracksDropped  prometheus.Counter
	Retargets      prometheus.Counter
	Ticks          prometheus.Counter
}

// New creates the counters and registers them with reg (if non-nil).
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Faults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "avatar_rig",
			Name:      "faults_total",
			Help:      "Recoverable faults by kind.",
		}, []string{"kind"}),
		TracksRetained: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "avatar_rig",
			Subsystem: "retarget",
			Name:      "tracks_retained_total",
			Help:      "Tracks kept after name mapping.",
		}),
		TracksDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "avatar_rig",
			Subsystem: "retarget",
			Name:      "tracks_dropped_total",
			Help:      "Tracks discarded because the joint had no mapped bone.",
		}),
		Retargets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "avatar_rig",
			Subsystem: "retarget",
			Name:      "clips_total",
			Help:      "Clips retargeted.",
		}),
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "avatar_rig",
			Subsystem: "playback",
			Name:      "ticks_total",
			Help:      "Playback ticks evaluated.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Faults, m.TracksRetained, m.TracksDropped, m.Retargets, m.Ticks)
	}
	return m
}

// Fault counts one fault of the given kind.
func (m *Metrics) Fault(kind string) {
	if m == nil {
		return
	}
	m.Faults.WithLabelValues(kind).Inc()
}

// Retargeted records the outcome of one retarget pass.
func (m *Metrics) Retargeted(retained, dropped int) {
	if m == nil {
		return
	}
	m.Retargets.Inc()
	m.TracksRetained.Add(float64(retained))
	m.TracksDropped.Add(float64(dropped))
}

// Tick counts one evaluated playback tick.
func (m *Metrics) Tick() {
	if m == nil {
		return
	}
	m.Ticks.Inc()
}
