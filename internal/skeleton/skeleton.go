package skeleton

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	ErrEmptyName     = errors.New("empty bone name")
	ErrDuplicateBone = errors.New("duplicate bone")
	ErrUnknownParent = errors.New("unknown parent")
	ErrCycle         = errors.New("parent cycle")
)

// Transform is a local rest or pose transform.
type Transform struct {
	Translation mgl64.Vec3
	Rotation    mgl64.Quat
	Scale       mgl64.Vec3
}

// IdentityTransform returns zero translation, identity rotation and unit scale.
func IdentityTransform() Transform {
	return Transform{
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// BoneDescriptor is what the model loader supplies per bone.
// Parent is empty for roots.
type BoneDescriptor struct {
	Name   string
	Parent string
	Rest   Transform
}

// Bone is a registered joint. Indices refer to Skeleton order.
type Bone struct {
	Index    int
	Name     string
	Parent   int // -1 for roots
	Children []int
	Rest     Transform
}

// Skeleton is an immutable bone registry, stored parent-first.
type Skeleton struct {
	bones []Bone
	index map[string]int
}

// New validates descriptors and builds the registry. Bones are reordered so
// every parent precedes its children; otherwise input order is kept.
func New(descs []BoneDescriptor) (*Skeleton, error) {
	byName := make(map[string]int, len(descs))
	for i, d := range descs {
		if d.Name == "" {
			return nil, fmt.Errorf("skeleton: bone #%d: %w", i, ErrEmptyName)
		}
		if _, dup := byName[d.Name]; dup {
			return nil, fmt.Errorf("skeleton: bone %q: %w", d.Name, ErrDuplicateBone)
		}
		byName[d.Name] = i
	}
	for _, d := range descs {
		if d.Parent == "" {
			continue
		}
		if _, ok := byName[d.Parent]; !ok {
			return nil, fmt.Errorf("skeleton: bone %q parent %q: %w", d.Name, d.Parent, ErrUnknownParent)
		}
	}

	// Depth-first placement: a bone is placed once its parent is placed.
	const (
		unvisited = iota
		visiting
		placed
	)
	state := make([]int, len(descs))
	order := make([]int, 0, len(descs))
	var place func(i int) error
	place = func(i int) error {
		switch state[i] {
		case placed:
			return nil
		case visiting:
			return fmt.Errorf("skeleton: bone %q: %w", descs[i].Name, ErrCycle)
		}
		state[i] = visiting
		if p := descs[i].Parent; p != "" {
			if err := place(byName[p]); err != nil {
				return err
			}
		}
		state[i] = placed
		order = append(order, i)
		return nil
	}
	for i := range descs {
		if err := place(i); err != nil {
			return nil, err
		}
	}

	s := &Skeleton{
		bones: make([]Bone, len(order)),
		index: make(map[string]int, len(order)),
	}
	for pos, src := range order {
		d := descs[src]
		rest := d.Rest
		if rest.Rotation == (mgl64.Quat{}) {
			rest.Rotation = mgl64.QuatIdent()
		}
		if rest.Scale == (mgl64.Vec3{}) {
			rest.Scale = mgl64.Vec3{1, 1, 1}
		}
		s.bones[pos] = Bone{Index: pos, Name: d.Name, Parent: -1, Rest: rest}
		s.index[d.Name] = pos
	}
	for i := range s.bones {
		p := descs[order[i]].Parent
		if p == "" {
			continue
		}
		pi := s.index[p]
		s.bones[i].Parent = pi
		s.bones[pi].Children = append(s.bones[pi].Children, i)
	}
	return s, nil
}

// Len returns the number of bones.
func (s *Skeleton) Len() int {
	return len(s.bones)
}

// Index returns the position of the named bone.
func (s *Skeleton) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Has reports whether the named bone exists.
func (s *Skeleton) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Bone returns the bone at index i. Callers must stay within [0, Len()).
func (s *Skeleton) Bone(i int) Bone {
	return s.bones[i]
}

// Names returns bone names in skeleton (parent-first) order.
func (s *Skeleton) Names() []string {
	names := make([]string, len(s.bones))
	for i, b := range s.bones {
		names[i] = b.Name
	}
	return names
}

// Descendants returns i followed by every bone below it, parents first.
func (s *Skeleton) Descendants(i int) []int {
	out := []int{i}
	for k := 0; k < len(out); k++ {
		out = append(out, s.bones[out[k]].Children...)
	}
	return out
}
