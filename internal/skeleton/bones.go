package skeleton

import (
	"github.com/go-gl/mathgl/mgl64"

	"avatar-rig/internal/mathutil"
)

// RestLocals returns the rest-pose local matrix of each bone.
func RestLocals(s *Skeleton) []mgl64.Mat4 {
	locals := make([]mgl64.Mat4, s.Len())
	for i, b := range s.bones {
		locals[i] = mathutil.TRS(b.Rest.Translation, b.Rest.Rotation, b.Rest.Scale)
	}
	return locals
}

// BuildWorldMatrices chains local matrices from root to leaf.
// Returns a slice of 4×4 matrices indexed by bone index.
func BuildWorldMatrices(s *Skeleton, locals []mgl64.Mat4) []mgl64.Mat4 {
	worlds := make([]mgl64.Mat4, s.Len())
	for i, bone := range s.bones {
		// Parents always precede children, so worlds[Parent] is final here.
		if bone.Parent >= 0 {
			worlds[i] = worlds[bone.Parent].Mul4(locals[i])
		} else {
			worlds[i] = locals[i]
		}
	}
	return worlds
}
