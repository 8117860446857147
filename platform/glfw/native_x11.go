//go:build cgo && (linux || freebsd || netbsd || openbsd) && !wayland

package glfw

import (
	"errors"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// NativeHandle returns the X11 Display* and Window.
func (w *Window) NativeHandle() (display, window uintptr, err error) {
	if w.closed {
		return 0, 0, errors.New("glfw: window closed")
	}
	display = uintptr(unsafe.Pointer(glfw.GetX11Display()))
	window = uintptr(w.win.GetX11Window())
	return display, window, nil
}
