package skeleton

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"sigs.k8s.io/yaml"

	"avatar-rig/internal/mathutil"
)

// skeletonFile matches the YAML/JSON skeleton schema.
type skeletonFile struct {
	Bones []boneEntry `json:"bones"`
}

type boneEntry struct {
	Name   string     `json:"name"`
	Parent string     `json:"parent,omitempty"`
	Rest   *restEntry `json:"rest,omitempty"`
}

// restEntry holds the rest transform. Rotation is a quaternion (x, y, z, w);
// Euler (XYZ radians) is used when Rotation is absent.
type restEntry struct {
	Translation []float64 `json:"translation,omitempty"`
	Rotation    []float64 `json:"rotation,omitempty"`
	Euler       []float64 `json:"euler,omitempty"`
	Scale       []float64 `json:"scale,omitempty"`
}

// Load reads a skeleton description file (YAML or JSON).
func Load(path string) (*Skeleton, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("skeleton: read %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("skeleton: parse %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a skeleton description and builds the registry.
func Parse(data []byte) (*Skeleton, error) {
	descs, err := ParseDescriptors(data)
	if err != nil {
		return nil, err
	}
	return New(descs)
}

// ParseDescriptors decodes a skeleton description without validating the hierarchy.
func ParseDescriptors(data []byte) ([]BoneDescriptor, error) {
	var f skeletonFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	descs := make([]BoneDescriptor, 0, len(f.Bones))
	for _, b := range f.Bones {
		rest, err := b.Rest.transform()
		if err != nil {
			return nil, fmt.Errorf("bone %q: %w", b.Name, err)
		}
		descs = append(descs, BoneDescriptor{Name: b.Name, Parent: b.Parent, Rest: rest})
	}
	return descs, nil
}

func (r *restEntry) transform() (Transform, error) {
	t := IdentityTransform()
	if r == nil {
		return t, nil
	}
	if len(r.Translation) > 0 {
		if len(r.Translation) != 3 {
			return t, fmt.Errorf("translation needs 3 values, got %d", len(r.Translation))
		}
		t.Translation = mathutil.Vec3FromSlice(r.Translation)
	}
	switch {
	case len(r.Rotation) > 0:
		if len(r.Rotation) != 4 {
			return t, fmt.Errorf("rotation needs 4 values (x, y, z, w), got %d", len(r.Rotation))
		}
		t.Rotation = mathutil.QuatFromXYZW(r.Rotation).Normalize()
	case len(r.Euler) > 0:
		if len(r.Euler) != 3 {
			return t, fmt.Errorf("euler needs 3 values, got %d", len(r.Euler))
		}
		t.Rotation = mathutil.ComposeXYZ(mathutil.Vec3FromSlice(r.Euler))
	}
	if len(r.Scale) > 0 {
		if len(r.Scale) != 3 {
			return t, fmt.Errorf("scale needs 3 values, got %d", len(r.Scale))
		}
		t.Scale = mgl64.Vec3{r.Scale[0], r.Scale[1], r.Scale[2]}
	}
	return t, nil
}
