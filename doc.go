// Package hostapp runs a host application on a native window and a GPU
// device, and delivers its lifecycle as callbacks.
//
// # Overview
//
// hostapp sits between a host application and the platform. It owns the
// window, the GPU device and surface, the depth and MSAA render targets, a
// UI overlay and a secondary input source, and it drives them from a single
// run loop:
//
//	app, err := hostapp.New(cfg, hostapp.Deps{Window: win, Device: dev})
//	if err != nil {
//	    return err
//	}
//	return app.Run(myDelegate)
//
// The desktop package wires the standard subsystems for the build platform
// (a GLFW or gogpu window, a wgpu device, SDL controllers and a Dear ImGui
// overlay where cgo allows) and is what most hosts use:
//
//	err := desktop.Run(myDelegate, icon, os.Args[1:], hostapp.DefaultConfig())
//
// Windows that own the OS loop drive the App with Start and then Pump
// once per frame instead of Run.
//
// # Frames
//
// Every frame is recorded into one render pass. The MSAA color target is
// cleared to black and resolved into the surface texture, the depth target
// is cleared to 1.0, the scene queued during OnAppDraw is drawn first and
// the overlay on top of it.
//
// # Ownership
//
// There is no global application object. The *App returned by New is the
// only way to reach the accessors (window size, title, backend, texture
// compression support, fullscreen, process arguments). Once Run returns the
// App is released and the accessors panic with ErrAppReleased. Only one App
// may be live at a time.
//
// # Logging
//
// hostapp logs through log/slog and is silent by default; see SetLogger.
package hostapp
