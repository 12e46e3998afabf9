// Package clip models animation clips as named sets of sampled tracks.
package clip

import (
	"fmt"

	"github.com/tiendc/go-deepcopy"
)

// Clip is a named, time-bounded set of tracks. Treat as immutable once built.
type Clip struct {
	Name     string
	Duration float64
	Tracks   []*Track
}

// New builds a clip. A negative duration is replaced by the latest key time
// across all tracks.
func New(name string, duration float64, tracks []*Track) *Clip {
	c := &Clip{Name: name, Duration: duration, Tracks: tracks}
	if duration < 0 {
		c.Duration = 0
		for _, t := range tracks {
			if end := t.EndTime(); end > c.Duration {
				c.Duration = end
			}
		}
	}
	return c
}

// Track finds a track by its "joint.channel" path.
func (c *Clip) Track(path string) (*Track, bool) {
	for _, t := range c.Tracks {
		if t.Path() == path {
			return t, true
		}
	}
	return nil, false
}

// Joints returns the distinct joint names addressed by the clip, in track order.
func (c *Clip) Joints() []string {
	seen := make(map[string]bool, len(c.Tracks))
	var out []string
	for _, t := range c.Tracks {
		if !seen[t.Name] {
			seen[t.Name] = true
			out = append(out, t.Name)
		}
	}
	return out
}

// Clone returns a deep copy sharing no slices with c.
func (c *Clip) Clone() (*Clip, error) {
	var out Clip
	if err := deepcopy.Copy(&out, *c); err != nil {
		return nil, fmt.Errorf("clip: clone %q: %w", c.Name, err)
	}
	return &out, nil
}
