//go:build windows && cgo

package desktop

import (
	"fmt"

	"github.com/gogpu/hostapp"
	wgpudev "github.com/gogpu/hostapp/gpu/wgpu"
	"github.com/gogpu/hostapp/input"
	"github.com/gogpu/hostapp/overlay/imgui"
	"github.com/gogpu/hostapp/platform/glfw"

	_ "github.com/gogpu/hostapp/input/sdl"
)

func launch(cfg hostapp.Config, icon hostapp.Icon, args []string, newDelegate DelegateFunc) error {
	sys := &Subsystems{}
	win, err := glfw.New(glfw.Options{
		Title:      cfg.Title,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Resizable:  cfg.Resizable,
		Fullscreen: cfg.Fullscreen,
	})
	if err != nil {
		return err
	}
	sys.Window = win

	device, err := wgpudev.New(win, wgpudev.Options{
		Backends:        cfg.GPUBackends(),
		PowerPreference: cfg.GPUPowerPreference(),
		Label:           cfg.Title,
	})
	if err != nil {
		sys.close()
		return err
	}
	sys.Device = device

	sys.Input = input.Open(cfg.Input.Source)

	ui, err := imgui.New(device, imgui.Options{
		IniFile:   cfg.UI.IniFile,
		Scale:     float32(win.ScaleFactor()),
		FontScale: cfg.UI.FontScale,
	})
	if err != nil {
		sys.close()
		return fmt.Errorf("desktop: overlay: %w", err)
	}
	sys.Overlay = ui

	app, err := assemble(cfg, icon, args, sys)
	if err != nil {
		return err
	}
	return app.Run(newDelegate(app, sys))
}
