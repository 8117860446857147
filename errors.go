package hostapp

import "errors"

// Startup errors. These are fatal: the application does not start.
var (
	// ErrInvalidIcon is returned when icon data does not describe a
	// width x height RGBA8 image.
	ErrInvalidIcon = errors.New("hostapp: invalid icon")

	// ErrNoWindow is returned by New when no window is supplied.
	ErrNoWindow = errors.New("hostapp: no window")

	// ErrNoDevice is returned by New when no GPU device is supplied.
	ErrNoDevice = errors.New("hostapp: no GPU device")

	// ErrInvalidConfig is returned when a Config fails validation.
	ErrInvalidConfig = errors.New("hostapp: invalid config")

	// ErrSurfaceConfig is returned when the surface or its render targets
	// cannot be configured.
	ErrSurfaceConfig = errors.New("hostapp: surface configuration failed")
)

// Usage errors.
var (
	// ErrAppExists is returned by New while another App is live.
	ErrAppExists = errors.New("hostapp: an application is already running")

	// ErrAppStarted is returned by Start when the App is already running.
	ErrAppStarted = errors.New("hostapp: application already started")

	// ErrAppReleased is returned by Run, and raised as a panic by the
	// accessors, once the App has been released.
	ErrAppReleased = errors.New("hostapp: application released")
)
