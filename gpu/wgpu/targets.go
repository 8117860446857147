package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/hostapp/gpu"
	"github.com/gogpu/wgpu"
)

// CreateTargets implements gpu.Device. The depth target always matches the
// sample count; the MSAA color target exists only when multisampling.
func (d *Device) CreateTargets(cfg gpu.SurfaceConfig) (*gpu.Targets, error) {
	if d.released {
		return nil, gpu.ErrReleased
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	format := cfg.Format
	if format == gputypes.TextureFormatUndefined {
		format = d.format
	}

	t := &gpu.Targets{Width: cfg.Width, Height: cfg.Height, SampleCount: cfg.SampleCount}
	depth, err := d.attachment(d.opts.Label+" depth", cfg, cfg.DepthFormat)
	if err != nil {
		return nil, err
	}
	t.Depth = depth

	if cfg.Multisampled() {
		color, err := d.attachment(d.opts.Label+" msaa", cfg, format)
		if err != nil {
			t.Release()
			return nil, err
		}
		t.Color = color
	}
	return t, nil
}

func (d *Device) attachment(label string, cfg gpu.SurfaceConfig, format gputypes.TextureFormat) (*ownedView, error) {
	tex, err := d.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         label,
		Size:          wgpu.Extent3D{Width: cfg.Width, Height: cfg.Height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   cfg.SampleCount,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create %s: %w", label, err)
	}
	view, err := d.device.CreateTextureView(tex, nil)
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("wgpu: create %s view: %w", label, err)
	}
	return &ownedView{texture: tex, view: view}, nil
}
