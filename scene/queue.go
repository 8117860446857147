// Package scene collects the host's scene draws for the current frame.
//
// The host pushes commands while handling OnAppDraw. The frame procedure
// replays them, in push order, into the frame's render pass before the
// overlay is drawn, and then empties the queue.
package scene

import (
	"errors"

	"github.com/gogpu/hostapp/gpu"
)

// Command records draws into a render pass.
type Command func(pass gpu.RenderPass) error

// Renderer adapts a gpu.SceneRenderer to a Command.
func Renderer(r gpu.SceneRenderer) Command {
	return r.RenderScene
}

// Queue is a per-frame list of scene commands.
//
// Queue is not safe for concurrent use; it is filled and drained on the
// run loop thread.
type Queue struct {
	cmds []Command
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{cmds: make([]Command, 0, 8)}
}

// Push appends a command. Nil commands are ignored.
func (q *Queue) Push(cmd Command) {
	if cmd == nil {
		return
	}
	q.cmds = append(q.cmds, cmd)
}

// Len returns the number of queued commands.
func (q *Queue) Len() int {
	return len(q.cmds)
}

// Reset drops all queued commands.
func (q *Queue) Reset() {
	clear(q.cmds)
	q.cmds = q.cmds[:0]
}

// RenderScene runs every queued command against pass and empties the
// queue. All commands run even if one fails; the errors are joined.
func (q *Queue) RenderScene(pass gpu.RenderPass) error {
	var errs []error
	for _, cmd := range q.cmds {
		if err := cmd(pass); err != nil {
			errs = append(errs, err)
		}
	}
	q.Reset()
	return errors.Join(errs...)
}

var _ gpu.SceneRenderer = (*Queue)(nil)
