//go:build windows || !cgo

// Package gogpu implements platform.Window on a gogpu application.
//
// gogpu owns the OS event loop, the GPU device and the window surface, and
// it needs no cgo on Windows, macOS, X11 and Wayland. The hostapp loop runs
// inside its frame callback: [Window.Run] starts the gogpu application,
// builds the loop on the first frame once the device exists, and pumps one
// event cycle per frame. The surface view of the frame in progress is
// available through [Window.CurrentView] for a hosted wgpu device.
//
// The package builds wherever gogpu links: on Windows, and elsewhere with
// CGO_ENABLED=0.
//
// gogpu reports no window moves or scale changes as events. Scale changes
// are detected per frame and delivered as platform.EventScaleChanged. The
// title and icon cannot be changed once the window is open.
package gogpu
