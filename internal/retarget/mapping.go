package retarget

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"sigs.k8s.io/yaml"
)

var ErrMappingConflict = errors.New("conflicting mapping entries")

// Entry maps one foreign joint name to a target bone name.
type Entry struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Mapping is a fixed, case-insensitive joint-name table. Built once, read only.
type Mapping struct {
	entries []Entry
	byLower map[string]string
}

// defaultEntries is the reference table for common BVH skeletons
// (CMU-style and Daz/Poser-style joint names).
var defaultEntries = []Entry{
	{"Hip", "mPelvis"},
	{"Spine", "mTorso"},
	{"Chest", "mChest"},
	{"Neck", "mNeck"},
	{"Head", "mHead"},
	{"LeftShoulder", "mCollarLeft"},
	{"LeftArm", "mShoulderLeft"},
	{"LeftForeArm", "mElbowLeft"},
	{"LeftHand", "mWristLeft"},
	{"RightShoulder", "mCollarRight"},
	{"RightArm", "mShoulderRight"},
	{"RightForeArm", "mElbowRight"},
	{"RightHand", "mWristRight"},
	{"LeftUpLeg", "mHipLeft"},
	{"LeftLeg", "mKneeLeft"},
	{"LeftFoot", "mAnkleLeft"},
	{"RightUpLeg", "mHipRight"},
	{"RightLeg", "mKneeRight"},
	{"RightFoot", "mAnkleRight"},
	{"rThigh", "mHipRight"},
	{"rShin", "mKneeRight"},
	{"rFoot", "mAnkleRight"},
	{"lThigh", "mHipLeft"},
	{"lShin", "mKneeLeft"},
	{"lFoot", "mAnkleLeft"},
	{"rShldr", "mShoulderRight"},
	{"rForeArm", "mElbowRight"},
	{"rHand", "mWristRight"},
	{"lShldr", "mShoulderLeft"},
	{"lForeArm", "mElbowLeft"},
	{"lHand", "mWristLeft"},
}

// NewMapping validates entries. Sources that only differ in case must agree
// on the target.
func NewMapping(entries []Entry) (*Mapping, error) {
	m := &Mapping{byLower: make(map[string]string, len(entries))}
	for _, e := range entries {
		if e.Source == "" || e.Target == "" {
			return nil, fmt.Errorf("retarget: mapping entry %q -> %q: empty name", e.Source, e.Target)
		}
		key := strings.ToLower(e.Source)
		if prev, ok := m.byLower[key]; ok {
			if prev != e.Target {
				return nil, fmt.Errorf("retarget: mapping %q -> %q and %q: %w", e.Source, prev, e.Target, ErrMappingConflict)
			}
			continue
		}
		m.byLower[key] = e.Target
		m.entries = append(m.entries, e)
	}
	return m, nil
}

// DefaultMapping returns the built-in BVH-to-avatar table.
func DefaultMapping() *Mapping {
	m, err := NewMapping(defaultEntries)
	if err != nil {
		panic(err)
	}
	return m
}

// Resolve returns the target bone for a foreign joint, ignoring case.
func (m *Mapping) Resolve(joint string) (string, bool) {
	t, ok := m.byLower[strings.ToLower(joint)]
	return t, ok
}

// Entries returns the table in declaration order.
func (m *Mapping) Entries() []Entry {
	return append([]Entry(nil), m.entries...)
}

// Targets returns the distinct target bones in declaration order.
func (m *Mapping) Targets() []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range m.entries {
		if !seen[e.Target] {
			seen[e.Target] = true
			out = append(out, e.Target)
		}
	}
	return out
}

type mappingFile struct {
	Entries []Entry `json:"entries"`
}

// ParseMapping decodes a YAML or JSON mapping document.
func ParseMapping(data []byte) (*Mapping, error) {
	var f mappingFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("retarget: decode mapping: %w", err)
	}
	return NewMapping(f.Entries)
}

// LoadMapping reads a mapping file.
func LoadMapping(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("retarget: read %s: %w", path, err)
	}
	m, err := ParseMapping(data)
	if err != nil {
		return nil, fmt.Errorf("retarget: parse %s: %w", path, err)
	}
	return m, nil
}
