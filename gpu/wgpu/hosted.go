package wgpu

import (
	"errors"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/hostapp"
	"github.com/gogpu/wgpu"
)

// FrameSource supplies surface textures when a host application acquires
// and presents the surface itself.
type FrameSource interface {
	// CurrentView returns the surface view of the frame in progress, or
	// nil outside a frame.
	CurrentView() *wgpu.TextureView
}

// Hosted describes the GPU objects of a host application.
type Hosted struct {
	Device  *wgpu.Device
	Adapter *wgpu.Adapter

	// Format is the format the host configured its surface with.
	Format gputypes.TextureFormat

	Frames FrameSource
}

// NewHosted creates a device that renders into the frames of a host that
// owns the surface, such as a gogpu application. Configure only records
// the attachment state, AcquireFrame borrows the host's frame and Present
// leaves presentation to the host. The host keeps ownership of the device.
func NewHosted(h Hosted, opts Options) (*Device, error) {
	if h.Device == nil {
		return nil, errors.New("wgpu: hosted device without a wgpu device")
	}
	if h.Frames == nil {
		return nil, errors.New("wgpu: hosted device without a frame source")
	}
	if opts.Label == "" {
		opts.Label = "hostapp"
	}
	d := &Device{
		opts:    opts,
		adapter: h.Adapter,
		device:  h.Device,
		queue:   h.Device.Queue(),
		format:  h.Format,
		frames:  h.Frames,
	}
	if h.Adapter != nil {
		d.info = h.Adapter.Info()
	}
	hostapp.Logger().Debug("wgpu: hosted device ready",
		"adapter", d.info.Name,
		"backend", d.info.Backend,
		"format", d.format)
	return d, nil
}
