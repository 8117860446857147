package main

import (
	"math"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/hostapp"
	"github.com/gogpu/hostapp/desktop"
	wgpudev "github.com/gogpu/hostapp/gpu/wgpu"
	"github.com/gogpu/hostapp/input"
	"github.com/gogpu/hostapp/scene"
)

// demo is the host delegate.
type demo struct {
	app *hostapp.App
	sys *desktop.Subsystems
	bg  *wgpudev.Background

	size    hostapp.WindowSize
	elapsed float64
	fps     fpsCounter
	animate bool
	pads    map[int]string
	quit    bool

	// lastStats is the elapsed time of the last stats report.
	lastStats float64
}

var (
	_ hostapp.Delegate             = (*demo)(nil)
	_ hostapp.InputDelegate        = (*demo)(nil)
	_ hostapp.ControllerDelegate   = (*demo)(nil)
	_ hostapp.DisplayScaleDelegate = (*demo)(nil)
)

func newDemo(app *hostapp.App, sys *desktop.Subsystems) *demo {
	top, bottom := gradientAt(0)
	return &demo{
		app:     app,
		sys:     sys,
		bg:      wgpudev.NewBackground(sys.Device, top, bottom),
		animate: true,
		pads:    make(map[int]string),
	}
}

func (d *demo) OnAppLaunched() {
	hostapp.Logger().Info("demo: launched", "args", d.app.Args(), "dxt", d.app.DxtSupported())
}

func (d *demo) OnAppWindowResized(size hostapp.WindowSize) { d.size = size }

func (d *demo) OnAppWindowMoved(int, int) {}

func (d *demo) OnAppIdle(dt float32) bool {
	d.elapsed += float64(dt)
	d.fps.add(dt)
	if d.animate {
		d.bg.SetColors(gradientAt(d.elapsed))
	}
	d.statsWindow()
	return !d.quit
}

func (d *demo) OnAppDraw() {
	d.app.Scene().Push(scene.Renderer(d.bg))
}

func (d *demo) OnAppPostDraw() {}

func (d *demo) OnAppExiting() {
	d.bg.Release()
	hostapp.Logger().Info("demo: exiting", "seconds", d.elapsed)
}

func (d *demo) OnAppDisplayScaleChanged(scale float32) {
	hostapp.Logger().Info("demo: display scale changed", "scale", scale)
}

func (d *demo) OnKeyDown(key gpucontext.Key, _ gpucontext.Modifiers, repeat bool) {
	if repeat || overlayWantsKeyboard(d.sys.Overlay) {
		return
	}
	switch key {
	case gpucontext.KeyEscape:
		d.quit = true
	case gpucontext.KeyF1:
		d.animate = !d.animate
	case gpucontext.KeyF11:
		d.app.SetFullscreen(!d.app.IsFullscreen())
	}
}

func (d *demo) OnKeyUp(gpucontext.Key, gpucontext.Modifiers)                 {}
func (d *demo) OnTextInput(string)                                           {}
func (d *demo) OnMouseMove(float64, float64)                                 {}
func (d *demo) OnMouseButton(gpucontext.MouseButton, float64, float64, bool) {}
func (d *demo) OnScroll(float64, float64)                                    {}

func (d *demo) OnControllerAdded(id int) {
	c := d.app.Controllers()
	c.SetPlayerIndex(id, len(d.pads))
	d.pads[id] = c.Name(id)
	hostapp.Logger().Info("demo: controller added", "id", id, "name", d.pads[id], "gamecube", c.IsGameCube(id))
}

func (d *demo) OnControllerRemoved(id int) {
	delete(d.pads, id)
	hostapp.Logger().Info("demo: controller removed", "id", id)
}

func (d *demo) OnControllerButton(id int, button input.Button, pressed bool) {
	c := d.app.Controllers()
	if button == input.ButtonSouth && pressed && c.HasRumble(id) {
		if err := c.Rumble(id, 0x4000, 0x4000, 150*time.Millisecond); err != nil {
			hostapp.Logger().Warn("demo: rumble", "id", id, "err", err)
		}
	}
}

func (d *demo) OnControllerAxis(int, input.Axis, int16) {}

// gradientAt returns the background colors t seconds into the animation.
func gradientAt(t float64) (top, bottom gputypes.Color) {
	s := 0.5 + 0.5*math.Sin(t*0.5)
	top = gputypes.Color{R: 0.05 + 0.10*s, G: 0.08, B: 0.20 + 0.20*s, A: 1}
	bottom = gputypes.Color{R: 0.01, G: 0.02 + 0.05*(1-s), B: 0.05, A: 1}
	return top, bottom
}

// fpsCounter averages the frame rate over half-second windows.
type fpsCounter struct {
	frames int
	acc    float32
	rate   float32
}

func (f *fpsCounter) add(dt float32) {
	f.frames++
	f.acc += dt
	if f.acc >= 0.5 {
		f.rate = float32(f.frames) / f.acc
		f.frames, f.acc = 0, 0
	}
}
