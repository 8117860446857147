//go:build !(windows && cgo)

package desktop

import (
	"github.com/gogpu/gogpu/gpu/types"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/hostapp"
	wgpudev "github.com/gogpu/hostapp/gpu/wgpu"
	"github.com/gogpu/hostapp/input"
	"github.com/gogpu/hostapp/overlay"
	"github.com/gogpu/hostapp/platform/gogpu"
)

// launch runs the App inside a gogpu application. The App is built on the
// first frame, once gogpu has created the GPU device.
func launch(cfg hostapp.Config, icon hostapp.Icon, args []string, newDelegate DelegateFunc) error {
	win := gogpu.New(gogpu.Options{
		Title:           cfg.Title,
		Width:           cfg.Width,
		Height:          cfg.Height,
		Resizable:       cfg.Resizable,
		Fullscreen:      cfg.Fullscreen,
		VSync:           vsync(cfg.GPUPresentMode()),
		GraphicsAPI:     graphicsAPI(cfg.GPUBackends()),
		PowerPreference: cfg.GPUPowerPreference(),
	})
	sys := &Subsystems{
		Window:  win,
		Overlay: overlay.Nop{},
		Input:   input.Open(cfg.Input.Source),
	}

	owned := false
	err := win.Run(func() (gogpu.Pumper, error) {
		owned = true
		device, adapter, format, err := win.GPU()
		if err != nil {
			sys.close()
			return nil, err
		}
		sys.Device, err = wgpudev.NewHosted(wgpudev.Hosted{
			Device:  device,
			Adapter: adapter,
			Format:  format,
			Frames:  win,
		}, wgpudev.Options{
			Backends:        cfg.GPUBackends(),
			PowerPreference: cfg.GPUPowerPreference(),
			Label:           cfg.Title,
		})
		if err != nil {
			sys.close()
			return nil, err
		}

		app, err := assemble(cfg, icon, args, sys)
		if err != nil {
			return nil, err
		}
		if err := app.Start(newDelegate(app, sys)); err != nil {
			return nil, err
		}
		return app, nil
	})
	if !owned {
		sys.close()
	}
	return err
}

// graphicsAPI maps a single requested backend to the gogpu graphics API.
// Backend sets leave the choice to gogpu.
func graphicsAPI(b gputypes.Backends) types.GraphicsAPI {
	switch b {
	case gputypes.BackendsVulkan:
		return types.GraphicsAPIVulkan
	case gputypes.BackendsMetal:
		return types.GraphicsAPIMetal
	case gputypes.BackendsDX12:
		return types.GraphicsAPIDX12
	case gputypes.BackendsGL:
		return types.GraphicsAPIGLES
	default:
		return types.GraphicsAPIAuto
	}
}

// vsync reports whether a present mode waits for vertical blank. gogpu
// exposes only the vsync switch.
func vsync(m gputypes.PresentMode) bool {
	switch m {
	case gputypes.PresentModeFifo, gputypes.PresentModeFifoRelaxed:
		return true
	default:
		return false
	}
}
