// Package desktop wires the standard hostapp subsystems for the build
// platform.
//
// On Windows with cgo the window is a GLFW window, the wgpu device owns its
// surface, game controllers come from SDL and the overlay is Dear ImGui.
// Everywhere else, and always with CGO_ENABLED=0, the window is a gogpu
// application that owns the surface, the wgpu device renders into gogpu's
// frames, and the input source and overlay are the no-op ones. On Linux,
// macOS and FreeBSD the package must be built with CGO_ENABLED=0: the
// pure-Go FFI behind wgpu does not link into cgo binaries there.
//
// The window requires the main OS thread. The package locks the main
// goroutine to it from init, so Launch and Run must be called from main.
package desktop

import (
	"fmt"
	"runtime"

	"github.com/gogpu/hostapp"
	wgpudev "github.com/gogpu/hostapp/gpu/wgpu"
	"github.com/gogpu/hostapp/input"
	"github.com/gogpu/hostapp/overlay"
	"github.com/gogpu/hostapp/platform"
)

func init() {
	runtime.LockOSThread()
}

// Subsystems are the platform objects behind an App. They are owned by the
// App and released when it exits.
type Subsystems struct {
	Window  platform.Window
	Device  *wgpudev.Device
	Overlay overlay.Overlay
	Input   input.Source
}

func (s *Subsystems) close() {
	if s.Overlay != nil {
		s.Overlay.Release()
	}
	if s.Input != nil {
		if err := s.Input.Close(); err != nil {
			hostapp.Logger().Warn("desktop: closing input source", "err", err)
		}
	}
	if s.Device != nil {
		s.Device.Release()
	}
	if s.Window != nil {
		if err := s.Window.Close(); err != nil {
			hostapp.Logger().Warn("desktop: closing window", "err", err)
		}
	}
}

// DelegateFunc builds the delegate of a new App. It runs once the
// subsystems exist, on the run loop thread.
type DelegateFunc func(app *hostapp.App, sys *Subsystems) hostapp.Delegate

// Launch opens the window, the GPU device, the input source and the overlay,
// builds an App from them and runs it with the delegate newDelegate returns
// until the App exits.
//
// A malformed icon or config is a fatal startup error; nothing is opened.
// A nil delegate releases the App at once.
func Launch(cfg hostapp.Config, icon hostapp.Icon, args []string, newDelegate DelegateFunc) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := icon.Validate(); err != nil {
		return err
	}
	return launch(cfg, icon, args, newDelegate)
}

// Run launches an App with d as its delegate.
//
// A malformed icon is a fatal startup error. A nil delegate makes Run a
// no-op; nothing is opened.
func Run(d hostapp.Delegate, icon hostapp.Icon, args []string, cfg hostapp.Config) error {
	if err := icon.Validate(); err != nil {
		return err
	}
	if d == nil {
		return nil
	}
	return Launch(cfg, icon, args, func(*hostapp.App, *Subsystems) hostapp.Delegate { return d })
}

// assemble builds the App over sys. On failure sys is closed.
func assemble(cfg hostapp.Config, icon hostapp.Icon, args []string, sys *Subsystems) (*hostapp.App, error) {
	app, err := hostapp.New(cfg, hostapp.Deps{
		Window:  sys.Window,
		Device:  sys.Device,
		Overlay: sys.Overlay,
		Input:   sys.Input,
		Icon:    icon,
		Args:    args,
	})
	if err != nil {
		sys.close()
		return nil, err
	}

	info := sys.Device.AdapterInfo()
	hostapp.Logger().Info("desktop: started",
		"adapter", info.Name,
		"backend", app.BackendString(),
		"window", fmt.Sprintf("%T", sys.Window),
		"input", fmt.Sprintf("%T", sys.Input))
	return app, nil
}
