package wgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/hostapp"
	"github.com/gogpu/hostapp/gpu"
	"github.com/gogpu/hostapp/platform"
	"github.com/gogpu/wgpu"

	// Register the HAL backends for the current OS.
	_ "github.com/gogpu/wgpu/hal/allbackends"
)

// Options configures device creation.
type Options struct {
	// Backends restricts the graphics APIs the instance may pick.
	// Zero means gputypes.BackendsPrimary.
	Backends gputypes.Backends

	PowerPreference gputypes.PowerPreference

	// Debug enables backend validation layers when available.
	Debug bool

	// Label prefixes the debug labels of created objects.
	Label string
}

// compressionFeatures are requested from the adapter when it offers them.
const compressionFeatures = gputypes.Features(gputypes.FeatureTextureCompressionBC |
	gputypes.FeatureTextureCompressionETC2 |
	gputypes.FeatureTextureCompressionASTC)

// Device is a wgpu device bound to one window surface.
type Device struct {
	opts     Options
	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	info   gputypes.AdapterInfo
	caps   *wgpu.SurfaceCapabilities
	format gputypes.TextureFormat
	alpha  gputypes.CompositeAlphaMode

	// frames is set when a host application owns and presents the surface.
	frames FrameSource

	cfg        gpu.SurfaceConfig
	configured bool
	released   bool
}

var _ gpu.Device = (*Device)(nil)

// New creates a device that renders into win.
func New(win platform.NativeWindow, opts Options) (*Device, error) {
	display, handle, err := win.NativeHandle()
	if err != nil {
		return nil, fmt.Errorf("wgpu: native window handle: %w", err)
	}
	if opts.Backends == 0 {
		opts.Backends = gputypes.BackendsPrimary
	}
	if opts.Label == "" {
		opts.Label = "hostapp"
	}

	desc := &wgpu.InstanceDescriptor{Backends: opts.Backends}
	if opts.Debug {
		desc.Flags = gputypes.InstanceFlagsDebug
	}
	instance, err := wgpu.CreateInstance(desc)
	if err != nil {
		return nil, fmt.Errorf("wgpu: create instance: %w", err)
	}
	d := &Device{opts: opts, instance: instance}

	if err := d.init(display, handle); err != nil {
		d.Release()
		return nil, err
	}
	return d, nil
}

func (d *Device) init(display, handle uintptr) error {
	log := hostapp.Logger()

	surface, err := d.instance.CreateSurface(display, handle)
	if err != nil {
		return fmt.Errorf("wgpu: create surface: %w", err)
	}
	d.surface = surface

	adapter, err := d.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference:   d.opts.PowerPreference,
		CompatibleSurface: surface,
	})
	if err != nil {
		return fmt.Errorf("wgpu: request adapter: %w", err)
	}
	d.adapter = adapter
	d.info = adapter.Info()

	required := adapter.Features().Intersect(compressionFeatures)
	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label:            d.opts.Label,
		RequiredFeatures: required,
		RequiredLimits:   wgpu.DefaultLimits(),
	})
	if err != nil {
		return fmt.Errorf("wgpu: request device: %w", err)
	}
	d.device = device
	d.queue = device.Queue()

	d.caps = adapter.GetSurfaceCapabilities(surface)
	if d.caps != nil {
		d.format = pickFormat(d.caps.Formats)
		d.alpha = pickAlphaMode(d.caps.AlphaModes)
	} else {
		d.format = gputypes.TextureFormatBGRA8Unorm
		d.alpha = gputypes.CompositeAlphaModeOpaque
	}

	log.Debug("wgpu: device ready",
		"adapter", d.info.Name,
		"vendor", d.info.Vendor,
		"type", d.info.DeviceType,
		"backend", d.info.Backend,
		"format", d.format,
		"features", required.Count())
	return nil
}

// Configure implements gpu.Device.
func (d *Device) Configure(cfg gpu.SurfaceConfig) error {
	if d.released {
		return gpu.ErrReleased
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	format := cfg.Format
	if format == gputypes.TextureFormatUndefined {
		format = d.format
	}
	if d.frames != nil {
		// The host sizes and presents its surface; only the attachment
		// state is kept.
		cfg.Format = format
		d.cfg = cfg
		d.configured = true
		return nil
	}
	var modes []gputypes.PresentMode
	if d.caps != nil {
		modes = d.caps.PresentModes
	}
	mode := pickPresentMode(modes, cfg.PresentMode)
	if mode != cfg.PresentMode {
		hostapp.Logger().Debug("wgpu: present mode unavailable, falling back",
			"want", cfg.PresentMode, "got", mode)
	}

	err := d.surface.Configure(d.device, &wgpu.SurfaceConfiguration{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Format:      format,
		Usage:       gputypes.TextureUsageRenderAttachment,
		PresentMode: mode,
		AlphaMode:   d.alpha,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", gpu.ErrInvalidConfig, err)
	}
	cfg.Format = format
	d.cfg = cfg
	d.configured = true
	hostapp.Logger().Debug("wgpu: surface configured", "width", cfg.Width, "height", cfg.Height)
	return nil
}

// AcquireFrame implements gpu.Device. An outdated or lost surface is
// reconfigured at the current size before the error is returned, so the
// next frame can proceed.
func (d *Device) AcquireFrame() (gpu.Frame, error) {
	if d.released {
		return nil, fmt.Errorf("%w: %w", gpu.ErrAcquire, gpu.ErrReleased)
	}
	if !d.configured {
		return nil, fmt.Errorf("%w: surface not configured", gpu.ErrAcquire)
	}
	if d.frames != nil {
		view := d.frames.CurrentView()
		if view == nil {
			return nil, fmt.Errorf("%w: no host frame in progress", gpu.ErrAcquire)
		}
		return &frame{view: view, hosted: true}, nil
	}
	tex, suboptimal, err := d.surface.GetCurrentTexture()
	if err != nil {
		if errors.Is(err, wgpu.ErrSurfaceOutdated) || errors.Is(err, wgpu.ErrSurfaceLost) {
			if cerr := d.Configure(d.cfg); cerr != nil {
				hostapp.Logger().Warn("wgpu: reconfigure after outdated surface", "err", cerr)
			}
			return nil, fmt.Errorf("%w: %w: %v", gpu.ErrAcquire, gpu.ErrSurfaceOutdated, err)
		}
		return nil, fmt.Errorf("%w: %w", gpu.ErrAcquire, err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		d.surface.DiscardTexture()
		return nil, fmt.Errorf("%w: surface view: %w", gpu.ErrAcquire, err)
	}
	return &frame{surface: d.surface, texture: tex, view: view, suboptimal: suboptimal}, nil
}

// CreateEncoder implements gpu.Device.
func (d *Device) CreateEncoder(label string) (gpu.Encoder, error) {
	if d.released {
		return nil, gpu.ErrReleased
	}
	enc, err := d.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return nil, err
	}
	return &encoder{enc: enc}, nil
}

// Submit implements gpu.Device.
func (d *Device) Submit(cmd gpu.CommandBuffer) error {
	cb, ok := cmd.(*wgpu.CommandBuffer)
	if !ok {
		return fmt.Errorf("wgpu: submit: unexpected command buffer %T", cmd)
	}
	_, err := d.queue.Submit(cb)
	return err
}

// Present implements gpu.Device.
func (d *Device) Present(f gpu.Frame) error {
	fr, ok := f.(*frame)
	if !ok {
		return fmt.Errorf("wgpu: present: unexpected frame %T", f)
	}
	return fr.present()
}

// Release destroys the device, the surface and the instance. A hosted
// device leaves them to the host.
func (d *Device) Release() {
	if d.released {
		return
	}
	d.released = true
	if d.device != nil {
		if err := d.device.WaitIdle(); err != nil {
			hostapp.Logger().Warn("wgpu: wait idle before release", "err", err)
		}
	}
	if d.frames != nil {
		return
	}
	if d.surface != nil {
		d.surface.Release()
	}
	if d.device != nil {
		d.device.Release()
	}
	if d.adapter != nil {
		d.adapter.Release()
	}
	if d.instance != nil {
		d.instance.Release()
	}
}

// Backend implements gpu.Device.
func (d *Device) Backend() gputypes.Backend { return d.info.Backend }

// Features implements gpu.Device.
func (d *Device) Features() gputypes.Features {
	if d.device == nil {
		return 0
	}
	return d.device.Features()
}

// WGPU returns the underlying wgpu device, for code that builds its own
// pipelines.
func (d *Device) WGPU() *wgpu.Device { return d.device }

// WGPUQueue returns the underlying wgpu queue.
func (d *Device) WGPUQueue() *wgpu.Queue { return d.queue }

// Device implements gpucontext.DeviceProvider.
func (d *Device) Device() gpucontext.Device { return d.device }

// Queue implements gpucontext.DeviceProvider.
func (d *Device) Queue() gpucontext.Queue { return d.queue }

// Adapter implements gpucontext.DeviceProvider.
func (d *Device) Adapter() gpucontext.Adapter { return d.adapter }

// SurfaceFormat implements gpucontext.DeviceProvider.
func (d *Device) SurfaceFormat() gputypes.TextureFormat { return d.format }

// AdapterInfo implements gpucontext.DeviceProvider.
func (d *Device) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: d.info.Name, Type: adapterType(d.info.DeviceType)}
}
