// Package gpu defines the device and surface contract the hostapp frame
// procedure renders through.
//
// The contract is deliberately small: configure the surface, create the
// auxiliary render targets, acquire a frame, record one render pass, submit
// and present. Implementations live in subpackages (see gpu/wgpu).
//
// Resource handles ([TextureView], [CommandBuffer]) are opaque tokens.
// Code that needs the concrete backend type type-asserts to it, in the same
// way gpucontext exposes device and queue handles.
package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Errors reported by Device implementations.
var (
	// ErrAcquire is returned when the next surface texture cannot be
	// acquired. It is transient: the frame is skipped and the loop goes on.
	ErrAcquire = errors.New("gpu: failed to acquire surface texture")

	// ErrSurfaceOutdated is returned (wrapped in ErrAcquire) when the
	// surface no longer matches the window and must be reconfigured.
	ErrSurfaceOutdated = errors.New("gpu: surface outdated")

	// ErrInvalidConfig is returned when a SurfaceConfig cannot be applied.
	ErrInvalidConfig = errors.New("gpu: invalid surface configuration")

	// ErrReleased is returned by operations on a released device.
	ErrReleased = errors.New("gpu: device released")
)

// SurfaceConfig describes the swapchain and the auxiliary render targets
// that go with it.
type SurfaceConfig struct {
	Width, Height uint32
	Format        gputypes.TextureFormat
	DepthFormat   gputypes.TextureFormat
	SampleCount   uint32
	PresentMode   gputypes.PresentMode
}

// Resized returns a copy of c with the given size.
func (c SurfaceConfig) Resized(width, height uint32) SurfaceConfig {
	c.Width = width
	c.Height = height
	return c
}

// Empty reports whether the configuration has a zero dimension. An empty
// configuration cannot be applied to a surface.
func (c SurfaceConfig) Empty() bool {
	return c.Width == 0 || c.Height == 0
}

// Multisampled reports whether rendering goes through an MSAA color target.
func (c SurfaceConfig) Multisampled() bool {
	return c.SampleCount > 1
}

// Validate checks the configuration for values no backend accepts.
func (c SurfaceConfig) Validate() error {
	if c.Empty() {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	switch c.SampleCount {
	case 1, 4:
	default:
		return fmt.Errorf("%w: sample count %d (want 1 or 4)", ErrInvalidConfig, c.SampleCount)
	}
	if !c.DepthFormat.IsDepthStencil() {
		return fmt.Errorf("%w: %v is not a depth format", ErrInvalidConfig, c.DepthFormat)
	}
	return nil
}

// TextureView is an opaque backend texture view.
type TextureView interface {
	Release()
}

// CommandBuffer is an opaque finished command buffer.
type CommandBuffer interface{}

// Frame is an acquired surface texture. A frame is either presented with
// Device.Present or given back with Discard, never both.
type Frame interface {
	// View returns the view of the surface texture.
	View() TextureView

	// Suboptimal reports whether the surface should be reconfigured soon.
	Suboptimal() bool

	// Discard releases the frame without presenting it.
	Discard()
}

// RenderPass is a render pass being recorded.
type RenderPass interface {
	// End finishes recording the pass.
	End() error
}

// Encoder records commands for one frame.
type Encoder interface {
	BeginRenderPass(desc *PassDescriptor) (RenderPass, error)
	Finish() (CommandBuffer, error)

	// Discard abandons the recorded commands.
	Discard()
}

// Device is a GPU device bound to one window surface.
type Device interface {
	gpucontext.DeviceProvider

	// Backend reports the graphics API the device runs on.
	Backend() gputypes.Backend

	// Features reports the features enabled on the device.
	Features() gputypes.Features

	// Configure (re)configures the surface.
	Configure(cfg SurfaceConfig) error

	// CreateTargets creates the depth and MSAA color targets for cfg.
	CreateTargets(cfg SurfaceConfig) (*Targets, error)

	// AcquireFrame acquires the next surface texture. Errors wrap ErrAcquire.
	AcquireFrame() (Frame, error)

	// CreateEncoder creates a command encoder.
	CreateEncoder(label string) (Encoder, error)

	// Submit submits a finished command buffer to the queue.
	Submit(cmd CommandBuffer) error

	// Present presents an acquired frame.
	Present(frame Frame) error

	// Release destroys the device and its surface.
	Release()
}

// SceneRenderer draws scene content into the frame's render pass.
type SceneRenderer interface {
	RenderScene(pass RenderPass) error
}
