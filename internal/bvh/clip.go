package bvh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"avatar-rig/internal/clip"
	"avatar-rig/internal/mathutil"
)

// Clip converts the motion into one position and one rotation track per
// joint. Positions are the joint offset plus the position channels; rotations
// multiply per-channel axis rotations in channel order. Key i is at
// i * FrameTime and the clip lasts until the last key.
func (m *Motion) Clip(name string) (*clip.Clip, error) {
	if len(m.Frames) == 0 {
		return clip.New(name, 0, nil), nil
	}

	times := make([]float64, len(m.Frames))
	for i := range times {
		times[i] = float64(i) * m.FrameTime
	}

	var tracks []*clip.Track
	col := 0
	for _, j := range m.Joints {
		positions := make([]float64, 0, len(m.Frames)*3)
		rotations := make([]float64, 0, len(m.Frames)*4)
		for _, row := range m.Frames {
			pos := j.Offset
			rot := mgl64.QuatIdent()
			for k, ch := range j.Channels {
				axis, isRot, _ := channelAxis(ch)
				v := row[col+k]
				if isRot {
					rot = rot.Mul(mgl64.QuatRotate(mathutil.Deg2Rad(v), axisVector(axis)))
				} else {
					pos[axis] += v
				}
			}
			q := mathutil.QuatXYZW(rot.Normalize())
			positions = append(positions, pos[0], pos[1], pos[2])
			rotations = append(rotations, q[:]...)
		}
		col += len(j.Channels)

		pt, err := clip.NewTrack(j.Name, clip.Position, times, positions)
		if err != nil {
			return nil, fmt.Errorf("bvh: joint %s: %w", j.Name, err)
		}
		rt, err := clip.NewTrack(j.Name, clip.Rotation, times, rotations)
		if err != nil {
			return nil, fmt.Errorf("bvh: joint %s: %w", j.Name, err)
		}
		tracks = append(tracks, pt, rt)
	}
	return clip.New(name, -1, tracks), nil
}

func axisVector(axis int) mgl64.Vec3 {
	switch axis {
	case 0:
		return mathutil.AxisX
	case 1:
		return mathutil.AxisY
	}
	return mathutil.AxisZ
}
