package hostapp

import (
	"github.com/gogpu/hostapp/input"
	"github.com/gogpu/hostapp/platform"
)

// Run drives the application until it terminates, then releases the App.
//
// Each iteration polls the secondary input source, then takes one platform
// event, dispatches it and forwards it to the overlay. Termination is
// cooperative: closing the window, a quit from the input source, OnAppIdle
// returning false or Exit all set a flag that is checked at the top of the
// next iteration, after which OnAppExiting is called and the App is
// released.
//
// A nil delegate releases the App without running the loop. Run returns
// ErrAppReleased if the App has already been released.
func (a *App) Run(d Delegate) error {
	if err := a.Start(d); err != nil {
		return err
	}
	for a.Pump() {
	}
	return nil
}

// Start delivers the start-up callbacks to d without entering the loop.
// Platforms that own the OS event loop call Start once and then Pump from
// their frame callback instead of calling Run.
//
// A nil delegate releases the App. Start returns ErrAppReleased once the
// App has been released and ErrAppStarted if it was started before.
func (a *App) Start(d Delegate) error {
	if a.released {
		return ErrAppReleased
	}
	if a.delegate != nil {
		return ErrAppStarted
	}
	if d == nil {
		a.release()
		return nil
	}

	a.delegate = d
	a.sink = newControllerSink(d)
	a.launch()
	return nil
}

// Pump runs loop iterations until the window's current pump cycle is
// exhausted or the App terminates. It reports whether the App is still
// running; it returns false before Start and after release.
func (a *App) Pump() bool {
	if a.released || a.delegate == nil {
		return false
	}
	for !a.released {
		if a.exit {
			a.dispatch(platform.Event{Kind: platform.EventLoopDestroyed})
			break
		}
		if !a.step() {
			break
		}
	}
	return !a.released
}

// launch delivers the start-up callbacks.
func (a *App) launch() {
	if od, ok := a.delegate.(OverlayDelegate); ok {
		od.OnOverlayInit(a.overlay.Scale())
	}

	Logger().Info("hostapp: launched",
		"backend", BackendOf(a.device.Backend()).String(),
		"adapter", a.device.AdapterInfo().Name,
		"width", a.surface.Width, "height", a.surface.Height)

	a.delegate.OnAppLaunched()
	a.delegate.OnAppWindowResized(WindowSize{Width: int(a.surface.Width), Height: int(a.surface.Height)})
}

// step runs one loop iteration. It returns false once the window's pump
// cycle is exhausted or the App has been released.
func (a *App) step() bool {
	if a.input.Poll(a.sink) == input.Quit {
		Logger().Debug("hostapp: quit from input source")
		a.exit = true
		return true
	}

	ev, ok := a.window.PollEvent()
	if !ok {
		return false
	}
	a.dispatch(ev)
	if a.released {
		return false
	}
	a.overlay.HandleEvent(ev)
	return true
}

// dispatch handles one platform event.
func (a *App) dispatch(ev platform.Event) {
	switch ev.Kind {
	case platform.EventCloseRequested:
		a.exit = true
	case platform.EventResized:
		a.resize(ev.Width, ev.Height)
	case platform.EventMoved:
		a.delegate.OnAppWindowMoved(ev.X, ev.Y)
	case platform.EventMainEventsCleared:
		a.window.RequestRedraw()
	case platform.EventRedrawRequested:
		a.redraw()
	case platform.EventLoopDestroyed:
		a.shutdown()
	case platform.EventScaleChanged:
		if sd, ok := a.delegate.(DisplayScaleDelegate); ok {
			sd.OnAppDisplayScaleChanged(ev.Scale)
		}
	case platform.EventKey, platform.EventChar, platform.EventMouseMove,
		platform.EventMouseButton, platform.EventScroll:
		if id, ok := a.delegate.(InputDelegate); ok {
			dispatchInput(id, ev)
		}
	}
}

func dispatchInput(d InputDelegate, ev platform.Event) {
	switch ev.Kind {
	case platform.EventKey:
		if ev.Pressed {
			d.OnKeyDown(ev.Key, ev.Mods, ev.Repeat)
		} else {
			d.OnKeyUp(ev.Key, ev.Mods)
		}
	case platform.EventChar:
		d.OnTextInput(ev.Text)
	case platform.EventMouseMove:
		d.OnMouseMove(ev.CursorX, ev.CursorY)
	case platform.EventMouseButton:
		d.OnMouseButton(ev.Button, ev.CursorX, ev.CursorY, ev.Pressed)
	case platform.EventScroll:
		d.OnScroll(ev.ScrollX, ev.ScrollY)
	}
}

// resize applies a new framebuffer size to the surface and the render
// targets, then notifies the host. A zero size suspends rendering until
// the next non-zero resize.
func (a *App) resize(width, height int) {
	a.surface = a.surface.Resized(uint32(max(width, 0)), uint32(max(height, 0)))
	if a.surface.Empty() {
		Logger().Debug("hostapp: surface suspended", "width", width, "height", height)
		a.suspended = true
		a.targets.Release()
		a.targets = nil
	} else if err := a.configureSurface(); err != nil {
		Logger().Error("hostapp: reconfigure surface", "width", width, "height", height, "err", err)
		a.suspended = true
	} else {
		Logger().Debug("hostapp: surface reconfigured", "width", width, "height", height)
		a.suspended = false
	}
	a.delegate.OnAppWindowResized(WindowSize{Width: width, Height: height})
}

// shutdown notifies the host and releases the App.
func (a *App) shutdown() {
	Logger().Info("hostapp: exiting")
	a.delegate.OnAppExiting()
	a.release()
}
