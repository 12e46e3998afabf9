package engine

import (
	"k8s.io/klog/v2"
)

// Command is a pose mutation posted from outside the tick loop. Target is a
// taxonomy control target such as "rot_x" or "scale".
type Command struct {
	Bone   string
	Target string
	Value  float64
}

// Enqueue posts cmd for the next Tick. It never blocks on a running tick.
func (e *Engine) Enqueue(cmd Command) {
	e.qmu.Lock()
	e.queue = append(e.queue, cmd)
	e.qmu.Unlock()
}

// Pending returns the number of queued commands.
func (e *Engine) Pending() int {
	e.qmu.Lock()
	defer e.qmu.Unlock()
	return len(e.queue)
}

// drain applies queued commands in arrival order. Failing commands are
// logged and skipped. Must be called with e.mu held.
func (e *Engine) drain() {
	e.qmu.Lock()
	cmds := e.queue
	e.queue = nil
	e.qmu.Unlock()

	for _, cmd := range cmds {
		if err := e.applyControl(cmd.Bone, cmd.Target, cmd.Value); err != nil {
			klog.Warningf("Skipping queued command %s=%g on %q: %v", cmd.Target, cmd.Value, cmd.Bone, err)
		}
	}
}
