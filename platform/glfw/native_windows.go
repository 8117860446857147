//go:build cgo && windows

package glfw

import (
	"errors"
	"unsafe"
)

// NativeHandle returns the HWND of the window.
func (w *Window) NativeHandle() (display, window uintptr, err error) {
	if w.closed {
		return 0, 0, errors.New("glfw: window closed")
	}
	return 0, uintptr(unsafe.Pointer(w.win.GetWin32Window())), nil
}
