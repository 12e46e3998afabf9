package batch

import (
	"fmt"

	"avatar-rig/internal/engine"
	"avatar-rig/internal/preview"
)

// Frame is one captured pose, ready to render.
type Frame struct {
	Index  int
	Time   float64
	Figure preview.Figure
}

// Capture ticks e n times by dt and snapshots the pose after each tick.
// The first frame is taken after a zero-length tick so it shows time zero.
func Capture(e *engine.Engine, n int, dt float64) ([]Frame, error) {
	skel, ok := e.Skeleton()
	if !ok {
		return nil, fmt.Errorf("batch: capture: %w", engine.ErrNoSkeleton)
	}
	frames := make([]Frame, 0, n)
	step := 0.0
	for i := 0; i < n; i++ {
		if err := e.Tick(step); err != nil {
			return frames, fmt.Errorf("batch: capture frame %d: %w", i, err)
		}
		step = dt
		t, _ := e.Playing()
		frames = append(frames, Frame{
			Index:  i,
			Time:   t,
			Figure: preview.FigureOf(skel, e.Snapshot()),
		})
	}
	return frames, nil
}
