//go:build cgo

// Package glfw implements platform.Window on GLFW 3.3.
//
// The window is created without a client API so that a GPU surface can be
// attached to its native handle. GLFW must be driven from the main OS
// thread; callers lock it with runtime.LockOSThread before New.
package glfw

import (
	"fmt"
	"image"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/hostapp"
	"github.com/gogpu/hostapp/platform"
	"golang.org/x/text/unicode/norm"
)

// Options configures window creation.
type Options struct {
	Title         string
	Width, Height int
	Resizable     bool
	Fullscreen    bool
}

// Window is a GLFW window.
type Window struct {
	win   *glfw.Window
	queue platform.Queue
	title string

	fullscreen bool
	// windowed geometry restored when leaving fullscreen.
	restoreX, restoreY, restoreW, restoreH int

	cursorX, cursorY float64
	closed           bool

	// pushed counts the events of the last pump; wait is set by the run
	// loop when its last cycle presented nothing.
	pushed int
	wait   bool
}

var (
	_ platform.Window       = (*Window)(nil)
	_ platform.NativeWindow = (*Window)(nil)
	_ platform.Waiter       = (*Window)(nil)
)

// idleWaitTimeout bounds how long a pump blocks while nothing is rendered,
// so the host keeps receiving idle callbacks.
const idleWaitTimeout = 100 * time.Millisecond

// New initializes GLFW and opens a window.
func New(opts Options) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw: init: %w", err)
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, boolHint(opts.Resizable))
	glfw.WindowHint(glfw.ScaleToMonitor, glfw.True)

	title := normalizeTitle(opts.Title)
	win, err := glfw.CreateWindow(opts.Width, opts.Height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glfw: create window: %w", err)
	}

	w := &Window{win: win, title: title}
	w.registerCallbacks()
	if opts.Fullscreen {
		w.SetFullscreen(true)
	}

	fw, fh := win.GetFramebufferSize()
	hostapp.Logger().Debug("glfw: window created", "title", title, "width", fw, "height", fh)
	return w, nil
}

func boolHint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

// normalizeTitle puts the title in NFC so window managers that compare or
// truncate titles byte-wise see composed characters.
func normalizeTitle(title string) string {
	return norm.NFC.String(title)
}

func (w *Window) registerCallbacks() {
	w.win.SetCloseCallback(func(*glfw.Window) {
		w.push(platform.Event{Kind: platform.EventCloseRequested})
	})
	w.win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.push(platform.Event{Kind: platform.EventResized, Width: width, Height: height})
	})
	w.win.SetPosCallback(func(_ *glfw.Window, x, y int) {
		w.push(platform.Event{Kind: platform.EventMoved, X: x, Y: y})
	})
	w.win.SetContentScaleCallback(func(_ *glfw.Window, x, _ float32) {
		w.push(platform.Event{Kind: platform.EventScaleChanged, Scale: x})
	})
	w.win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		w.push(platform.Event{Kind: platform.EventFocus, Focused: focused})
	})
	w.win.SetRefreshCallback(func(*glfw.Window) {
		w.queue.RequestRedraw()
	})
	w.win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		w.push(keyEvent(key, action, mods))
	})
	w.win.SetCharCallback(func(_ *glfw.Window, r rune) {
		w.push(platform.Event{Kind: platform.EventChar, Text: string(r)})
	})
	w.win.SetCursorPosCallback(func(win *glfw.Window, x, y float64) {
		ww, wh := win.GetSize()
		fw, fh := win.GetFramebufferSize()
		x, y = toPixels(x, ww, fw), toPixels(y, wh, fh)
		w.cursorX, w.cursorY = x, y
		w.push(platform.Event{Kind: platform.EventMouseMove, CursorX: x, CursorY: y})
	})
	w.win.SetMouseButtonCallback(func(_ *glfw.Window, b glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		w.push(platform.Event{
			Kind:    platform.EventMouseButton,
			Button:  mapButton(b),
			Mods:    mapMods(mods),
			Pressed: action != glfw.Release,
			CursorX: w.cursorX,
			CursorY: w.cursorY,
		})
	})
	w.win.SetScrollCallback(func(_ *glfw.Window, dx, dy float64) {
		w.push(platform.Event{Kind: platform.EventScroll, ScrollX: dx, ScrollY: dy})
	})
}

// toPixels converts a cursor coordinate from screen units to framebuffer
// pixels. The two differ on HiDPI displays that scale in the compositor.
func toPixels(v float64, screen, pixels int) float64 {
	if screen <= 0 {
		return v
	}
	return v * float64(pixels) / float64(screen)
}

func keyEvent(key glfw.Key, action glfw.Action, mods glfw.ModifierKey) platform.Event {
	return platform.Event{
		Kind:    platform.EventKey,
		Key:     mapKey(key),
		Mods:    mapMods(mods),
		Pressed: action != glfw.Release,
		Repeat:  action == glfw.Repeat,
	}
}

func (w *Window) push(ev platform.Event) {
	w.pushed++
	w.queue.Push(ev)
}

// PollEvent implements platform.Window. The first call of each cycle pumps
// the GLFW event queue. The pump blocks for up to idleWaitTimeout when the
// previous cycle was idle; see WaitNext.
func (w *Window) PollEvent() (platform.Event, bool) {
	return w.queue.Next(w.pump)
}

func (w *Window) pump() {
	wait := shouldWait(w.wait, w.pushed)
	w.wait = false
	w.pushed = 0
	if wait {
		glfw.WaitEventsTimeout(idleWaitTimeout.Seconds())
	} else {
		glfw.PollEvents()
	}
}

// shouldWait reports whether the next pump may block: the run loop
// presented nothing in its last cycle and that cycle brought no events.
func shouldWait(idle bool, lastEvents int) bool {
	return idle && lastEvents == 0
}

// WaitNext implements platform.Waiter.
func (w *Window) WaitNext() { w.wait = true }

// Size returns the framebuffer size in pixels.
func (w *Window) Size() (width, height int) {
	if w.closed {
		return 0, 0
	}
	return w.win.GetFramebufferSize()
}

// ScaleFactor returns the horizontal content scale.
func (w *Window) ScaleFactor() float64 {
	if w.closed {
		return 1
	}
	x, _ := w.win.GetContentScale()
	return float64(x)
}

// RequestRedraw implements gpucontext.WindowProvider.
func (w *Window) RequestRedraw() { w.queue.RequestRedraw() }

// Title returns the window title.
func (w *Window) Title() string { return w.title }

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.title = normalizeTitle(title)
	if !w.closed {
		w.win.SetTitle(w.title)
	}
}

// SetIcon sets the window icon candidates. GLFW ignores icons on macOS.
func (w *Window) SetIcon(candidates []image.Image) {
	if w.closed {
		return
	}
	w.win.SetIcon(candidates)
}

// SetFullscreen switches between fullscreen on the monitor that holds the
// window, at that monitor's current video mode, and the previous windowed
// geometry.
func (w *Window) SetFullscreen(enabled bool) {
	if w.closed || enabled == w.fullscreen {
		return
	}
	if enabled {
		monitor := w.currentMonitor()
		if monitor == nil {
			hostapp.Logger().Warn("glfw: no monitor for fullscreen")
			return
		}
		mode := monitor.GetVideoMode()
		w.restoreX, w.restoreY = w.win.GetPos()
		w.restoreW, w.restoreH = w.win.GetSize()
		w.win.SetMonitor(monitor, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
	} else {
		w.win.SetMonitor(nil, w.restoreX, w.restoreY, w.restoreW, w.restoreH, glfw.DontCare)
	}
	w.fullscreen = enabled
}

// currentMonitor returns the monitor that contains the centre of the
// window, falling back to the primary monitor.
func (w *Window) currentMonitor() *glfw.Monitor {
	monitors := glfw.GetMonitors()
	areas := make([]image.Rectangle, len(monitors))
	for i, m := range monitors {
		mode := m.GetVideoMode()
		if mode == nil {
			continue
		}
		x, y := m.GetPos()
		areas[i] = image.Rect(x, y, x+mode.Width, y+mode.Height)
	}
	x, y := w.win.GetPos()
	width, height := w.win.GetSize()
	if i := monitorAt(areas, image.Pt(x+width/2, y+height/2)); i >= 0 {
		return monitors[i]
	}
	return glfw.GetPrimaryMonitor()
}

// monitorAt returns the index of the first area containing p, or -1.
func monitorAt(areas []image.Rectangle, p image.Point) int {
	for i, r := range areas {
		if p.In(r) {
			return i
		}
	}
	return -1
}

// IsFullscreen reports whether the window is fullscreen.
func (w *Window) IsFullscreen() bool { return w.fullscreen }

// Close destroys the window and terminates GLFW.
func (w *Window) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	w.queue.Destroy()
	w.win.Destroy()
	glfw.Terminate()
	return nil
}
