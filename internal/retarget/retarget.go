// Package retarget renames foreign motion-capture tracks onto the avatar's
// bones and plays the result back into a pose.
package retarget

import (
	"github.com/google/uuid"

	"avatar-rig/internal/clip"
)

// RemappedName is the name given to every retargeted clip.
const RemappedName = "remapped"

// BoneSet is the part of a loaded skeleton the retargeter needs.
type BoneSet interface {
	Has(name string) bool
}

// Report summarizes one retarget pass. Unmapped lists distinct source joints
// with no mapping entry; Missing lists distinct mapped bones absent from the
// skeleton.
type Report struct {
	ID       string
	Source   string
	Retained int
	Dropped  int
	Unmapped []string
	Missing  []string
}

// DropRatio is the share of source tracks that were discarded.
func (r Report) DropRatio() float64 {
	total := r.Retained + r.Dropped
	if total == 0 {
		return 0
	}
	return float64(r.Dropped) / float64(total)
}

// Retarget builds a new clip whose tracks address target bones. Tracks whose
// joint has no mapping entry, or whose mapped bone is not in bones, are
// dropped. Curve data is copied unchanged; src is not modified.
func Retarget(src *clip.Clip, bones BoneSet, m *Mapping) (*clip.Clip, Report, error) {
	rep := Report{ID: uuid.NewString(), Source: src.Name}
	unmapped := map[string]bool{}
	missing := map[string]bool{}

	var tracks []*clip.Track
	for _, tr := range src.Tracks {
		target, ok := m.Resolve(tr.Name)
		if !ok {
			rep.Dropped++
			if !unmapped[tr.Name] {
				unmapped[tr.Name] = true
				rep.Unmapped = append(rep.Unmapped, tr.Name)
			}
			continue
		}
		if !bones.Has(target) {
			rep.Dropped++
			if !missing[target] {
				missing[target] = true
				rep.Missing = append(rep.Missing, target)
			}
			continue
		}
		renamed, err := tr.Renamed(target)
		if err != nil {
			return nil, rep, err
		}
		tracks = append(tracks, renamed)
		rep.Retained++
	}
	return clip.New(RemappedName, src.Duration, tracks), rep, nil
}
