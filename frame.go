package hostapp

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/hostapp/gpu"
	"github.com/gogpu/hostapp/platform"
)

// defaultFrameDelta is the delta time of the first frame.
const defaultFrameDelta = time.Second / 60

// clearColor is the color the frame is cleared to before the scene draws.
var clearColor = gputypes.ColorBlack

// frameTiming measures the time between consecutive frames.
type frameTiming struct {
	last  time.Time
	valid bool
}

// advance records now as the current frame time and returns the time
// since the previous frame, or defaultFrameDelta for the first frame.
func (t *frameTiming) advance(now time.Time) time.Duration {
	dt := defaultFrameDelta
	if t.valid {
		dt = now.Sub(t.last)
	}
	t.last = now
	t.valid = true
	return dt
}

// redraw runs the frame procedure: timing, overlay preparation, the host
// update, surface acquisition, the host draw, one render pass with the
// scene under the overlay, submission and presentation.
func (a *App) redraw() {
	dt := a.timing.advance(a.now())
	a.overlay.Prepare(dt, a.window)

	if !a.delegate.OnAppIdle(float32(dt.Seconds())) {
		a.exit = true
		return
	}
	if a.suspended || a.targets == nil {
		if w, ok := a.window.(platform.Waiter); ok {
			w.WaitNext()
		}
		return
	}

	frame, err := a.device.AcquireFrame()
	if err != nil {
		Logger().Warn("hostapp: failed to acquire next surface texture", "err", err)
		return
	}
	if frame.Suboptimal() {
		Logger().Debug("hostapp: surface is suboptimal")
	}

	a.delegate.OnAppDraw()

	if err := a.encode(frame); err != nil {
		Logger().Error("hostapp: frame dropped", "err", err)
		a.scene.Reset()
		frame.Discard()
		return
	}
	if err := a.device.Present(frame); err != nil {
		Logger().Error("hostapp: present", "err", err)
		return
	}

	a.delegate.OnAppPostDraw()
}

// encode records the frame's render pass and submits it.
func (a *App) encode(frame gpu.Frame) error {
	enc, err := a.device.CreateEncoder("hostapp frame")
	if err != nil {
		return fmt.Errorf("create encoder: %w", err)
	}

	pass, err := enc.BeginRenderPass(gpu.FramePass(frame.View(), a.targets, clearColor))
	if err != nil {
		enc.Discard()
		return fmt.Errorf("begin render pass: %w", err)
	}

	sceneErr := a.scene.RenderScene(pass)
	overlayErr := a.overlay.Render(pass)
	endErr := pass.End()
	if err := errors.Join(sceneErr, overlayErr, endErr); err != nil {
		enc.Discard()
		return err
	}

	cmd, err := enc.Finish()
	if err != nil {
		return fmt.Errorf("finish encoder: %w", err)
	}
	if err := a.device.Submit(cmd); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	return nil
}
