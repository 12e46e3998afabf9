package bvh

import "github.com/go-gl/mathgl/mgl64"

// Joint is one node of a BVH hierarchy. End sites are not recorded.
type Joint struct {
	Name     string
	Parent   int // -1 for the root
	Offset   mgl64.Vec3
	Channels []string // e.g. "Xposition", "Zrotation", in file order
}

// Motion is a parsed BVH file.
type Motion struct {
	Joints    []Joint
	FrameTime float64
	Frames    [][]float64 // one row of channel values per frame
}
