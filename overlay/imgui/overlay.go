//go:build windows && cgo

// Package imgui implements overlay.Overlay with Dear ImGui.
//
// The overlay owns the ImGui context. Hosts build their UI with the
// imgui-go API between Prepare and Render, which in the hostapp run loop
// means inside OnAppIdle or OnAppDraw. Draw data is rendered with wgpu into
// the frame pass, after the scene.
package imgui

import (
	"time"

	imgui "github.com/inkyblackness/imgui-go/v4"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/hostapp"
	"github.com/gogpu/hostapp/gpu"
	wgpudev "github.com/gogpu/hostapp/gpu/wgpu"
	"github.com/gogpu/hostapp/overlay"
	"github.com/gogpu/hostapp/platform"
)

// Options configures the overlay.
type Options struct {
	// IniFile persists window layout. Empty disables persistence.
	IniFile string

	// Scale is the display scale factor. Zero means 1.
	Scale float32

	// FontScale is applied on top of Scale. Zero means 1.
	FontScale float32
}

// Overlay is a Dear ImGui overlay.
type Overlay struct {
	ctx      *imgui.Context
	io       imgui.IO
	renderer *Renderer
	scale    float32

	width, height int
	inFrame       bool
}

var _ overlay.Overlay = (*Overlay)(nil)

// minDelta keeps the ImGui delta time positive, which ImGui asserts.
const minDelta = float32(1e-6)

// New creates the ImGui context and uploads the font atlas to dev.
func New(dev *wgpudev.Device, opts Options) (*Overlay, error) {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	fontScale := opts.FontScale
	if fontScale <= 0 {
		fontScale = 1
	}

	ctx := imgui.CreateContext(nil)
	io := imgui.CurrentIO()
	io.SetIniFilename(opts.IniFile)
	io.SetFontGlobalScale(scale * fontScale)
	imgui.CurrentStyle().ScaleAllSizes(scale)
	setKeyMap(io)

	renderer, err := NewRenderer(dev, io.Fonts())
	if err != nil {
		ctx.Destroy()
		return nil, err
	}

	hostapp.Logger().Debug("imgui: overlay created", "version", imgui.Version(), "scale", scale)
	return &Overlay{ctx: ctx, io: io, renderer: renderer, scale: scale}, nil
}

// Prepare implements overlay.Overlay. A frame that was prepared but never
// rendered is ended first.
func (o *Overlay) Prepare(dt time.Duration, win platform.Window) {
	if o.inFrame {
		imgui.EndFrame()
	}
	o.width, o.height = win.Size()
	o.io.SetDisplaySize(imgui.Vec2{X: float32(o.width), Y: float32(o.height)})
	o.io.SetDeltaTime(max(float32(dt.Seconds()), minDelta))
	imgui.NewFrame()
	o.inFrame = true
}

// HandleEvent implements overlay.Overlay.
func (o *Overlay) HandleEvent(ev platform.Event) {
	switch ev.Kind {
	case platform.EventMouseMove:
		o.io.SetMousePosition(imgui.Vec2{X: float32(ev.CursorX), Y: float32(ev.CursorY)})
	case platform.EventMouseButton:
		o.io.SetMousePosition(imgui.Vec2{X: float32(ev.CursorX), Y: float32(ev.CursorY)})
		if i, ok := mouseIndex(ev.Button); ok {
			o.io.SetMouseButtonDown(i, ev.Pressed)
		}
	case platform.EventScroll:
		o.io.AddMouseWheelDelta(float32(ev.ScrollX), float32(ev.ScrollY))
	case platform.EventKey:
		i, ok := keyIndex(ev.Key)
		if !ok {
			return
		}
		if ev.Pressed {
			o.io.KeyPress(i)
		} else {
			o.io.KeyRelease(i)
		}
		o.io.KeyCtrl(int(gpucontext.KeyLeftControl), int(gpucontext.KeyRightControl))
		o.io.KeyShift(int(gpucontext.KeyLeftShift), int(gpucontext.KeyRightShift))
		o.io.KeyAlt(int(gpucontext.KeyLeftAlt), int(gpucontext.KeyRightAlt))
		o.io.KeySuper(int(gpucontext.KeyLeftSuper), int(gpucontext.KeyRightSuper))
	case platform.EventChar:
		o.io.AddInputCharacters(ev.Text)
	}
}

// Render implements overlay.Overlay.
func (o *Overlay) Render(pass gpu.RenderPass) error {
	if !o.inFrame {
		return nil
	}
	o.inFrame = false
	imgui.Render()
	return o.renderer.Draw(pass, imgui.RenderedDrawData(), o.width, o.height)
}

// Scale implements overlay.Overlay.
func (o *Overlay) Scale() float32 { return o.scale }

// WantsInput reports whether ImGui wants to consume mouse or keyboard
// input, so the host can ignore it.
func (o *Overlay) WantsInput() (mouse, keyboard bool) {
	return o.io.WantCaptureMouse(), o.io.WantCaptureKeyboard()
}

// Release implements overlay.Overlay.
func (o *Overlay) Release() {
	if o.ctx == nil {
		return
	}
	if o.inFrame {
		imgui.EndFrame()
		o.inFrame = false
	}
	o.renderer.Release()
	o.ctx.Destroy()
	o.ctx = nil
}
