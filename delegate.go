package hostapp

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/hostapp/input"
)

// WindowSize is a window size in framebuffer pixels.
type WindowSize struct {
	Width, Height int
}

// Delegate receives application lifecycle callbacks from the run loop.
//
// Callbacks are delivered on the run loop thread in this order:
//
//	OnAppLaunched
//	OnAppWindowResized(initial size)
//	per frame: OnAppIdle, OnAppDraw, OnAppPostDraw
//	OnAppExiting
//
// OnAppWindowResized and OnAppWindowMoved are also delivered between frames
// whenever the window changes. OnAppDraw is skipped when OnAppIdle returns
// false or no surface texture could be acquired; OnAppPostDraw is skipped
// whenever the frame was not presented.
type Delegate interface {
	// OnAppLaunched is called once before anything else.
	OnAppLaunched()

	// OnAppWindowResized is called after the surface has been resized.
	OnAppWindowResized(size WindowSize)

	// OnAppWindowMoved is called when the window moves.
	OnAppWindowMoved(x, y int)

	// OnAppIdle runs the host's per-frame update. dt is the time since the
	// previous frame in seconds. Returning false stops the application.
	OnAppIdle(dt float32) bool

	// OnAppDraw is called once the frame's surface texture is acquired.
	// Scene draws are queued on App.Scene.
	OnAppDraw()

	// OnAppPostDraw is called after the frame has been presented.
	OnAppPostDraw()

	// OnAppExiting is called once, last.
	OnAppExiting()
}

// DisplayScaleDelegate is implemented by delegates that track the
// window's content scale.
type DisplayScaleDelegate interface {
	OnAppDisplayScaleChanged(scale float32)
}

// OverlayDelegate is implemented by delegates that set up overlay state
// (fonts, style) before launch.
type OverlayDelegate interface {
	// OnOverlayInit is called once, before OnAppLaunched, with the overlay's
	// scale factor.
	OnOverlayInit(scale float32)
}

// InputDelegate is implemented by delegates that want keyboard and mouse
// input from the window.
type InputDelegate interface {
	OnKeyDown(key gpucontext.Key, mods gpucontext.Modifiers, repeat bool)
	OnKeyUp(key gpucontext.Key, mods gpucontext.Modifiers)
	OnTextInput(text string)
	OnMouseMove(x, y float64)
	OnMouseButton(button gpucontext.MouseButton, x, y float64, pressed bool)
	OnScroll(dx, dy float64)
}

// ControllerDelegate is implemented by delegates that want game controller
// events from the secondary input source.
type ControllerDelegate interface {
	OnControllerAdded(id int)
	OnControllerRemoved(id int)
	OnControllerButton(id int, button input.Button, pressed bool)
	OnControllerAxis(id int, axis input.Axis, value int16)
}

// controllerSink forwards controller events to a ControllerDelegate.
// Events are dropped when the delegate does not implement it.
type controllerSink struct {
	d ControllerDelegate
}

func newControllerSink(d Delegate) controllerSink {
	cd, _ := d.(ControllerDelegate)
	return controllerSink{d: cd}
}

func (s controllerSink) ControllerAdded(id int) {
	if s.d != nil {
		s.d.OnControllerAdded(id)
	}
}

func (s controllerSink) ControllerRemoved(id int) {
	if s.d != nil {
		s.d.OnControllerRemoved(id)
	}
}

func (s controllerSink) ControllerButton(id int, button input.Button, pressed bool) {
	if s.d != nil {
		s.d.OnControllerButton(id, button, pressed)
	}
}

func (s controllerSink) ControllerAxis(id int, axis input.Axis, value int16) {
	if s.d != nil {
		s.d.OnControllerAxis(id, axis, value)
	}
}

var _ input.Sink = controllerSink{}
