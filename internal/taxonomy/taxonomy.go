// Package taxonomy classifies humanoid bone names into semantic categories and
// naming conventions. A Taxonomy is built once and only read afterwards.
package taxonomy

import (
	"math"
	"strings"
)

// Category is a named, ordered group of bone names.
type Category struct {
	Key   string // lookup key, e.g. "torso"
	Name  string // display name, e.g. "Torso"
	Bones []string
}

// Taxonomy answers category and convention lookups over static tables.
type Taxonomy struct {
	categories []Category
	byKey      map[string]int
	byBone     map[string]int // first category containing the bone
	known      []string
}

// New builds a Taxonomy from the given categories. The input is copied.
// When a bone appears in several categories the first one wins.
func New(categories []Category, known []string) *Taxonomy {
	t := &Taxonomy{
		categories: make([]Category, len(categories)),
		byKey:      make(map[string]int, len(categories)),
		byBone:     make(map[string]int),
		known:      append([]string(nil), known...),
	}
	for i, c := range categories {
		c.Bones = append([]string(nil), c.Bones...)
		t.categories[i] = c
		t.byKey[c.Key] = i
		for _, b := range c.Bones {
			if _, seen := t.byBone[b]; !seen {
				t.byBone[b] = i
			}
		}
	}
	return t
}

// Default returns the taxonomy of the reference humanoid avatar.
func Default() *Taxonomy {
	return New(defaultCategories, knownBones)
}

// Categories returns all categories in declaration order.
func (t *Taxonomy) Categories() []Category {
	out := make([]Category, len(t.categories))
	for i, c := range t.categories {
		c.Bones = append([]string(nil), c.Bones...)
		out[i] = c
	}
	return out
}

// CategoryOf returns the category containing name.
func (t *Taxonomy) CategoryOf(name string) (Category, bool) {
	i, ok := t.byBone[name]
	if !ok {
		return Category{}, false
	}
	c := t.categories[i]
	c.Bones = append([]string(nil), c.Bones...)
	return c, true
}

// BoneNames returns the ordered bone names of the category with the given key,
// or nil for an unknown key.
func (t *Taxonomy) BoneNames(key string) []string {
	i, ok := t.byKey[key]
	if !ok {
		return nil
	}
	return append([]string(nil), t.categories[i].Bones...)
}

// KnownBones returns the complete bone list of the reference model.
func (t *Taxonomy) KnownBones() []string {
	return append([]string(nil), t.known...)
}

// IsPrimaryConvention reports whether name uses the "m"-prefixed convention.
// Primary bones take rotation controls; alternate bones take scale and position.
func IsPrimaryConvention(name string) bool {
	return strings.HasPrefix(name, "m")
}

// IsPrimaryConvention is the method form of the package function.
func (t *Taxonomy) IsPrimaryConvention(name string) bool {
	return IsPrimaryConvention(name)
}

// Control targets, as used by pose-control surfaces.
const (
	TargetRotX  = "rot_x"
	TargetRotY  = "rot_y"
	TargetRotZ  = "rot_z"
	TargetScale = "scale"
	TargetPosX  = "pos_x"
	TargetPosY  = "pos_y"
	TargetPosZ  = "pos_z"
)

// PositionLimit bounds each position-offset axis symmetrically.
const PositionLimit = 0.25

// MaxScale is the upper bound of the scale control (400%).
const MaxScale = 4.0

// Control is one adjustable value of a bone and its range.
type Control struct {
	Target string
	Min    float64
	Max    float64
}

// Controls returns the pose controls valid for a bone: rotations for primary
// bones, scale and position for alternate ones.
func Controls(name string) []Control {
	if name == "" {
		return nil
	}
	if IsPrimaryConvention(name) {
		return []Control{
			{Target: TargetRotX, Min: -math.Pi, Max: math.Pi},
			{Target: TargetRotY, Min: -math.Pi, Max: math.Pi},
			{Target: TargetRotZ, Min: -math.Pi, Max: math.Pi},
		}
	}
	return []Control{
		{Target: TargetScale, Min: 0, Max: MaxScale},
		{Target: TargetPosX, Min: -PositionLimit, Max: PositionLimit},
		{Target: TargetPosY, Min: -PositionLimit, Max: PositionLimit},
		{Target: TargetPosZ, Min: -PositionLimit, Max: PositionLimit},
	}
}
