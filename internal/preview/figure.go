package preview

import (
	"github.com/go-gl/mathgl/mgl64"

	"avatar-rig/internal/pose"
	"avatar-rig/internal/skeleton"
)

// Figure is the joint layout of one frame: world positions in skeleton order
// plus the parent of each joint (-1 for roots).
type Figure struct {
	Names   []string
	Points  []mgl64.Vec3
	Parents []int
}

// FigureOf pairs a pose snapshot with the hierarchy of its skeleton.
func FigureOf(skel *skeleton.Skeleton, bones []pose.BoneTransform) Figure {
	f := Figure{
		Names:   make([]string, len(bones)),
		Points:  make([]mgl64.Vec3, len(bones)),
		Parents: make([]int, len(bones)),
	}
	for i, b := range bones {
		f.Names[i] = b.Name
		f.Points[i] = b.Position
		f.Parents[i] = skel.Bone(i).Parent
	}
	return f
}

// bounds returns the min and max of the projected points.
func bounds(pts []mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	lo, hi := pts[0], pts[0]
	for _, p := range pts[1:] {
		for k := 0; k < 3; k++ {
			lo[k] = min(lo[k], p[k])
			hi[k] = max(hi[k], p[k])
		}
	}
	return lo, hi
}
