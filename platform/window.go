package platform

import (
	"image"

	"github.com/gogpu/gpucontext"
)

// Window is a native window driven by the hostapp run loop.
//
// All methods must be called from the thread that created the window.
// Size reports the framebuffer size in pixels, which is the size the GPU
// surface must be configured with.
type Window interface {
	gpucontext.WindowProvider

	// PollEvent returns the next pending event. The second result is false
	// when the current pump cycle is exhausted.
	PollEvent() (Event, bool)

	// Title returns the current window title.
	Title() string

	// SetTitle changes the window title.
	SetTitle(title string)

	// SetIcon sets the window icon. Candidates of different sizes may be
	// passed; the platform picks the closest one.
	SetIcon(candidates []image.Image)

	// SetFullscreen toggles borderless fullscreen on the current monitor.
	SetFullscreen(enabled bool)

	// IsFullscreen reports whether the window is in fullscreen mode.
	IsFullscreen() bool

	// Close destroys the window. Further calls are no-ops.
	Close() error
}

// NativeWindow is implemented by windows that can expose native handles
// for GPU surface creation.
//
// The meaning of the handles follows the platform conventions:
//   - Windows: display=0, window=HWND
//   - macOS: display=0, window=NSView*
//   - Linux/X11: display=Display*, window=Window
//   - Linux/Wayland: display=wl_display*, window=wl_surface*
type NativeWindow interface {
	NativeHandle() (display, window uintptr, err error)
}

// Waiter is implemented by windows whose event pump can block. The run
// loop calls WaitNext after a cycle that presented no frame, such as while
// rendering is suspended at zero size, so the next pump may wait for OS
// events instead of returning at once.
type Waiter interface {
	WaitNext()
}
