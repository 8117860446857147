//go:build cgo && darwin

package glfw

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa
#import <Cocoa/Cocoa.h>

static void* contentView(void* window) {
	return [(NSWindow*)window contentView];
}
*/
import "C"

import (
	"errors"
	"unsafe"
)

// NativeHandle returns the NSView* of the window's content view, which is
// what Metal layers attach to.
func (w *Window) NativeHandle() (display, window uintptr, err error) {
	if w.closed {
		return 0, 0, errors.New("glfw: window closed")
	}
	ns := w.win.GetCocoaWindow()
	if ns == nil {
		return 0, 0, errors.New("glfw: no Cocoa window")
	}
	view := C.contentView(ns)
	return 0, uintptr(view), nil
}
