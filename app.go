package hostapp

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/hostapp/gpu"
	"github.com/gogpu/hostapp/input"
	"github.com/gogpu/hostapp/overlay"
	"github.com/gogpu/hostapp/platform"
	"github.com/gogpu/hostapp/scene"
)

// live is set while an App exists. At most one App may be live per process
// because the window system and the input source are process-wide.
var live atomic.Bool

// Deps are the subsystems an App drives. Window and Device are required;
// Overlay and Input default to no-op implementations.
type Deps struct {
	Window  platform.Window
	Device  gpu.Device
	Overlay overlay.Overlay
	Input   input.Source

	// Icon is applied to the window. Malformed icon data fails New.
	Icon Icon

	// Args are the process arguments, kept verbatim for the host.
	Args []string
}

// App is the application instance. It owns the window, the GPU device and
// surface, the render targets, the overlay and the input source, and is
// driven by Run.
//
// An App is created by New and released when Run returns. All methods must
// be called from the run loop thread. Calling an accessor on a released App
// panics with an error wrapping ErrAppReleased.
type App struct {
	cfg     Config
	window  platform.Window
	device  gpu.Device
	overlay overlay.Overlay
	input   input.Source
	scene   *scene.Queue
	args    []string

	surface   gpu.SurfaceConfig
	targets   *gpu.Targets
	suspended bool

	timing   frameTiming
	now      func() time.Time
	delegate Delegate
	sink     controllerSink
	exit     bool
	released bool
}

// New creates the application instance: it validates the icon, configures
// the surface at the window's framebuffer size and creates the render
// targets.
//
// New fails with ErrAppExists while another App is live.
func New(cfg Config, deps Deps) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if deps.Window == nil {
		return nil, ErrNoWindow
	}
	if deps.Device == nil {
		return nil, ErrNoDevice
	}
	icons, err := deps.Icon.Candidates()
	if err != nil {
		return nil, err
	}
	if !live.CompareAndSwap(false, true) {
		return nil, ErrAppExists
	}

	a := &App{
		cfg:     cfg,
		window:  deps.Window,
		device:  deps.Device,
		overlay: deps.Overlay,
		input:   deps.Input,
		scene:   scene.NewQueue(),
		args:    append([]string(nil), deps.Args...),
		now:     time.Now,
	}
	if a.overlay == nil {
		a.overlay = overlay.Nop{}
	}
	if a.input == nil {
		a.input = input.Null{}
	}
	if len(icons) > 0 {
		a.window.SetIcon(icons)
	}

	w, h := a.window.Size()
	a.surface = gpu.SurfaceConfig{
		Width:       uint32(max(w, 0)),
		Height:      uint32(max(h, 0)),
		Format:      a.device.SurfaceFormat(),
		DepthFormat: cfg.GPUDepthFormat(),
		SampleCount: cfg.SampleCount,
		PresentMode: cfg.GPUPresentMode(),
	}
	if a.surface.Empty() {
		a.suspended = true
	} else if err := a.configureSurface(); err != nil {
		live.Store(false)
		return nil, err
	}
	return a, nil
}

// configureSurface applies a.surface to the device and recreates the
// render targets to match it. The old targets are released first, so on
// failure the App holds no targets rather than targets of a stale size.
func (a *App) configureSurface() error {
	a.targets.Release()
	a.targets = nil
	if err := a.surface.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrSurfaceConfig, err)
	}
	if err := a.device.Configure(a.surface); err != nil {
		return fmt.Errorf("%w: %v", ErrSurfaceConfig, err)
	}
	targets, err := a.device.CreateTargets(a.surface)
	if err != nil {
		return fmt.Errorf("%w: render targets: %v", ErrSurfaceConfig, err)
	}
	a.targets = targets
	return nil
}

// release tears the App down in dependency order and clears the live flag.
func (a *App) release() {
	if a.released {
		return
	}
	a.released = true
	a.overlay.Release()
	if err := a.input.Close(); err != nil {
		Logger().Warn("hostapp: closing input source", "err", err)
	}
	a.scene.Reset()
	a.targets.Release()
	a.targets = nil
	a.device.Release()
	if err := a.window.Close(); err != nil {
		Logger().Warn("hostapp: closing window", "err", err)
	}
	a.delegate = nil
	live.Store(false)
}

// mustBeLive panics if the App has been released.
func (a *App) mustBeLive(op string) {
	if a.released {
		panic(fmt.Errorf("%w: %s called after release", ErrAppReleased, op))
	}
}

// Released reports whether the App has been released.
func (a *App) Released() bool {
	return a.released
}

// WindowSize returns the current framebuffer size of the window.
func (a *App) WindowSize() WindowSize {
	a.mustBeLive("WindowSize")
	return WindowSize{Width: int(a.surface.Width), Height: int(a.surface.Height)}
}

// WindowTitle returns the window title.
func (a *App) WindowTitle() string {
	a.mustBeLive("WindowTitle")
	return a.window.Title()
}

// SetWindowTitle changes the window title.
func (a *App) SetWindowTitle(title string) {
	a.mustBeLive("SetWindowTitle")
	a.window.SetTitle(title)
}

// Backend returns the graphics API in use.
func (a *App) Backend() Backend {
	a.mustBeLive("Backend")
	return BackendOf(a.device.Backend())
}

// BackendString returns the display name of the graphics API in use.
func (a *App) BackendString() string {
	return a.Backend().String()
}

// TextureCompressionSupported reports whether the device can sample
// textures of the given compression family.
func (a *App) TextureCompressionSupported(c TextureCompression) bool {
	a.mustBeLive("TextureCompressionSupported")
	return supportsCompression(a.device.Features(), c)
}

// DxtSupported reports whether BC (DXT) compressed textures are supported.
func (a *App) DxtSupported() bool {
	return a.TextureCompressionSupported(CompressionBC)
}

// SetFullscreen toggles borderless fullscreen.
func (a *App) SetFullscreen(enabled bool) {
	a.mustBeLive("SetFullscreen")
	a.window.SetFullscreen(enabled)
}

// IsFullscreen reports whether the window is fullscreen.
func (a *App) IsFullscreen() bool {
	a.mustBeLive("IsFullscreen")
	return a.window.IsFullscreen()
}

// Args returns the process arguments passed at startup.
func (a *App) Args() []string {
	a.mustBeLive("Args")
	return a.args
}

// Scene returns the scene queue for the current frame.
func (a *App) Scene() *scene.Queue {
	a.mustBeLive("Scene")
	return a.scene
}

// Controllers returns the game controllers of the input source. Sources
// without controller support answer every query with zero values.
func (a *App) Controllers() input.Controllers {
	a.mustBeLive("Controllers")
	if c, ok := a.input.(input.Controllers); ok {
		return c
	}
	return input.Null{}
}

// Config returns the configuration the App was created with.
func (a *App) Config() Config {
	a.mustBeLive("Config")
	return a.cfg
}

// Exit asks the run loop to stop after the current iteration.
func (a *App) Exit() {
	a.mustBeLive("Exit")
	a.exit = true
}

// Size implements gpucontext.WindowProvider.
func (a *App) Size() (width, height int) {
	s := a.WindowSize()
	return s.Width, s.Height
}

// ScaleFactor implements gpucontext.WindowProvider.
func (a *App) ScaleFactor() float64 {
	a.mustBeLive("ScaleFactor")
	return a.window.ScaleFactor()
}

// RequestRedraw implements gpucontext.WindowProvider.
func (a *App) RequestRedraw() {
	a.mustBeLive("RequestRedraw")
	a.window.RequestRedraw()
}

// Device implements gpucontext.DeviceProvider.
func (a *App) Device() gpucontext.Device {
	a.mustBeLive("Device")
	return a.device.Device()
}

// Queue implements gpucontext.DeviceProvider.
func (a *App) Queue() gpucontext.Queue {
	a.mustBeLive("Queue")
	return a.device.Queue()
}

// Adapter implements gpucontext.DeviceProvider.
func (a *App) Adapter() gpucontext.Adapter {
	a.mustBeLive("Adapter")
	return a.device.Adapter()
}

// SurfaceFormat implements gpucontext.DeviceProvider.
func (a *App) SurfaceFormat() gputypes.TextureFormat {
	a.mustBeLive("SurfaceFormat")
	return a.surface.Format
}

// AdapterInfo implements gpucontext.DeviceProvider.
func (a *App) AdapterInfo() gpucontext.AdapterInfo {
	a.mustBeLive("AdapterInfo")
	return a.device.AdapterInfo()
}

var (
	_ gpucontext.WindowProvider = (*App)(nil)
	_ gpucontext.DeviceProvider = (*App)(nil)
)
