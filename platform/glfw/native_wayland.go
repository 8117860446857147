//go:build cgo && (linux || freebsd || netbsd || openbsd) && wayland

package glfw

import (
	"errors"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// NativeHandle returns the wl_display* and wl_surface*.
func (w *Window) NativeHandle() (display, window uintptr, err error) {
	if w.closed {
		return 0, 0, errors.New("glfw: window closed")
	}
	display = uintptr(unsafe.Pointer(glfw.GetWaylandDisplay()))
	window = uintptr(unsafe.Pointer(w.win.GetWaylandWindow()))
	return display, window, nil
}
