//go:build windows || !cgo

package gogpu

import (
	"errors"
	"image"
	"sync"

	gogpuapp "github.com/gogpu/gogpu"
	"github.com/gogpu/gogpu/gpu/types"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/hostapp"
	"github.com/gogpu/hostapp/platform"
)

// ErrNoDevice is returned by GPU before gogpu has created its device.
var ErrNoDevice = errors.New("gogpu: GPU device not created yet")

// Options configures the window.
type Options struct {
	Title         string
	Width, Height int
	Resizable     bool
	Fullscreen    bool
	VSync         bool

	// GraphicsAPI forces a graphics API. GraphicsAPIAuto keeps gogpu's
	// choice, which honours GOGPU_GRAPHICS_API.
	GraphicsAPI     types.GraphicsAPI
	PowerPreference gputypes.PowerPreference
}

// Pumper is the run loop driven by the window. *hostapp.App implements it.
type Pumper interface {
	// Pump runs one event cycle and reports whether the loop goes on.
	Pump() bool
}

// Window is a gogpu application window.
type Window struct {
	app *gogpuapp.App

	mu     sync.Mutex
	queue  platform.Queue
	keys   keyState
	scale  float64
	title  string
	closed bool

	// frame is the draw context of the frame in progress.
	frame *gogpuapp.Context
}

var _ platform.Window = (*Window)(nil)

// New configures a gogpu application. The OS window opens when Run is
// called.
func New(opts Options) *Window {
	title := norm.NFC.String(opts.Title)
	cfg := gogpuapp.DefaultConfig().
		WithTitle(title).
		WithSize(opts.Width, opts.Height).
		WithVSync(opts.VSync).
		WithContinuousRender(true).
		WithPowerPreference(opts.PowerPreference)
	if opts.GraphicsAPI != types.GraphicsAPIAuto {
		cfg = cfg.WithGraphicsAPI(opts.GraphicsAPI)
	}
	if opts.Fullscreen {
		cfg = cfg.WithFullscreen()
	}
	cfg.Resizable = opts.Resizable

	w := &Window{app: gogpuapp.NewApp(cfg), title: title, scale: 1}
	w.registerCallbacks()
	return w
}

func (w *Window) registerCallbacks() {
	es := w.app.EventSource()
	es.OnKeyPress(func(key gpucontext.Key, mods gpucontext.Modifiers) {
		w.mu.Lock()
		defer w.mu.Unlock()
		w.queue.Push(w.keys.event(key, mods, true))
	})
	es.OnKeyRelease(func(key gpucontext.Key, mods gpucontext.Modifiers) {
		w.mu.Lock()
		defer w.mu.Unlock()
		w.queue.Push(w.keys.event(key, mods, false))
	})
	es.OnTextInput(func(text string) {
		w.push(platform.Event{Kind: platform.EventChar, Text: text})
	})
	es.OnMouseMove(func(x, y float64) {
		w.push(w.cursorEvent(platform.EventMouseMove, x, y))
	})
	es.OnMousePress(func(b gpucontext.MouseButton, x, y float64) {
		ev := w.cursorEvent(platform.EventMouseButton, x, y)
		ev.Button, ev.Pressed = b, true
		w.push(ev)
	})
	es.OnMouseRelease(func(b gpucontext.MouseButton, x, y float64) {
		ev := w.cursorEvent(platform.EventMouseButton, x, y)
		ev.Button = b
		w.push(ev)
	})
	es.OnScroll(func(dx, dy float64) {
		w.push(platform.Event{Kind: platform.EventScroll, ScrollX: dx, ScrollY: dy})
	})
	es.OnFocus(func(focused bool) {
		w.push(platform.Event{Kind: platform.EventFocus, Focused: focused})
	})
	// gogpu reports the logical size; the surface follows the physical one.
	w.app.OnResize(func(int, int) {
		width, height := w.app.PhysicalSize()
		w.push(platform.Event{Kind: platform.EventResized, Width: width, Height: height})
	})
}

func (w *Window) push(ev platform.Event) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.queue.Push(ev)
}

// cursorEvent builds a pointer event at logical position x, y, converted
// to framebuffer pixels.
func (w *Window) cursorEvent(kind platform.EventKind, x, y float64) platform.Event {
	scale := w.app.ScaleFactor()
	w.mu.Lock()
	mods := w.keys.mods
	w.mu.Unlock()
	return platform.Event{
		Kind:    kind,
		Mods:    mods,
		CursorX: toPixels(x, scale),
		CursorY: toPixels(y, scale),
	}
}

func toPixels(v, scale float64) float64 {
	if scale <= 0 {
		return v
	}
	return v * scale
}

// keyState tracks held keys and the last modifier state. A press of a key
// that is already down is reported as a repeat.
type keyState struct {
	down map[gpucontext.Key]bool
	mods gpucontext.Modifiers
}

func (s *keyState) event(key gpucontext.Key, mods gpucontext.Modifiers, pressed bool) platform.Event {
	if s.down == nil {
		s.down = make(map[gpucontext.Key]bool)
	}
	repeat := pressed && s.down[key]
	if pressed {
		s.down[key] = true
	} else {
		delete(s.down, key)
	}
	s.mods = mods
	return platform.Event{Kind: platform.EventKey, Key: key, Mods: mods, Pressed: pressed, Repeat: repeat}
}

// Run runs the gogpu application until the window closes or the loop
// ends. It must be called from the main goroutine locked to the main OS
// thread.
//
// start is called on the first frame, once the GPU device exists, and
// returns the loop to drive; every frame then pumps one event cycle
// through it. If gogpu shuts down while the loop is still running, a close
// request is queued and the loop is pumped to its end before the device
// is destroyed.
func (w *Window) Run(start func() (Pumper, error)) error {
	var (
		loop     Pumper
		startErr error
	)
	w.app.OnDraw(func(ctx *gogpuapp.Context) {
		if startErr != nil {
			return
		}
		w.beginFrame(ctx, loop == nil)
		defer w.endFrame()

		if loop == nil {
			loop, startErr = start()
			if startErr != nil || loop == nil {
				w.app.Quit()
				return
			}
		}
		if !loop.Pump() {
			w.app.Quit()
		}
	})
	w.app.OnClose(func() {
		if loop == nil {
			return
		}
		w.push(platform.Event{Kind: platform.EventCloseRequested})
		for loop.Pump() {
		}
	})

	err := w.app.Run()
	if startErr != nil {
		return startErr
	}
	return err
}

// beginFrame records the frame in progress and turns a changed scale
// factor into an event. The first frame only records the scale.
func (w *Window) beginFrame(ctx *gogpuapp.Context, first bool) {
	w.frame = ctx
	scale := ctx.ScaleFactor()
	w.mu.Lock()
	defer w.mu.Unlock()
	if scale != w.scale && !first {
		w.queue.Push(platform.Event{Kind: platform.EventScaleChanged, Scale: float32(scale)})
	}
	w.scale = scale
}

func (w *Window) endFrame() { w.frame = nil }

// CurrentView returns the surface view of the frame in progress, or nil
// outside a frame. The surface texture is acquired on the first call.
func (w *Window) CurrentView() *wgpu.TextureView {
	if w.frame == nil {
		return nil
	}
	return w.frame.SurfaceView()
}

// GPU returns the device, the adapter and the surface format gogpu renders
// with. It fails before the first frame.
func (w *Window) GPU() (*wgpu.Device, *wgpu.Adapter, gputypes.TextureFormat, error) {
	dp := w.app.DeviceProvider()
	if dp == nil || dp.Device() == nil {
		return nil, nil, gputypes.TextureFormatUndefined, ErrNoDevice
	}
	var adapter *wgpu.Adapter
	if p := w.app.GPUContextProvider(); p != nil {
		adapter, _ = p.Adapter().(*wgpu.Adapter)
	}
	return dp.Device(), adapter, dp.SurfaceFormat(), nil
}

// PollEvent implements platform.Window. Events are queued by gogpu's
// callbacks between frames, so a cycle never blocks.
func (w *Window) PollEvent() (platform.Event, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.queue.Next(nil)
}

// Size returns the framebuffer size in pixels.
func (w *Window) Size() (width, height int) {
	return w.app.PhysicalSize()
}

// ScaleFactor returns the display scale factor.
func (w *Window) ScaleFactor() float64 {
	return w.app.ScaleFactor()
}

// RequestRedraw implements gpucontext.WindowProvider.
func (w *Window) RequestRedraw() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.queue.RequestRedraw()
}

// Title returns the window title.
func (w *Window) Title() string { return w.title }

// SetTitle records the title. gogpu fixes the title when the window opens.
func (w *Window) SetTitle(title string) {
	w.title = norm.NFC.String(title)
	hostapp.Logger().Debug("gogpu: window title is fixed at creation", "title", w.title)
}

// SetIcon is a no-op; gogpu windows use the executable's icon.
func (w *Window) SetIcon(candidates []image.Image) {
	hostapp.Logger().Debug("gogpu: window icons are not supported", "candidates", len(candidates))
}

// SetFullscreen implements platform.Window.
func (w *Window) SetFullscreen(enabled bool) {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return
	}
	w.app.SetFullscreen(enabled)
}

// IsFullscreen implements platform.Window.
func (w *Window) IsFullscreen() bool {
	return w.app.IsFullscreen()
}

// Close ends the window's event stream and asks gogpu to quit. The OS
// window is destroyed when Run returns.
func (w *Window) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	w.queue.Destroy()
	w.app.Quit()
	return nil
}
