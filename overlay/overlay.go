// Package overlay defines the bridge between the hostapp run loop and an
// immediate-mode UI drawn on top of the scene.
//
// Per frame the run loop calls Prepare before the host's idle callback and
// Render inside the frame's render pass after the scene. Every platform
// event is forwarded through HandleEvent so the UI can track input state.
package overlay

import (
	"time"

	"github.com/gogpu/hostapp/gpu"
	"github.com/gogpu/hostapp/platform"
)

// Overlay is a UI layer rendered on top of the scene.
type Overlay interface {
	// Prepare starts a new UI frame.
	Prepare(dt time.Duration, win platform.Window)

	// HandleEvent records a platform event for UI input state.
	HandleEvent(ev platform.Event)

	// Render draws the UI frame into pass.
	Render(pass gpu.RenderPass) error

	// Scale returns the UI scale factor the overlay was built for.
	Scale() float32

	// Release frees UI resources.
	Release()
}

// Nop is an overlay that draws nothing.
type Nop struct{}

func (Nop) Prepare(time.Duration, platform.Window) {}
func (Nop) HandleEvent(platform.Event)             {}
func (Nop) Render(gpu.RenderPass) error            { return nil }
func (Nop) Scale() float32                         { return 1 }
func (Nop) Release()                               {}

var _ Overlay = Nop{}
