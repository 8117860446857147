package wgpu

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/hostapp/gpu"
	"github.com/gogpu/wgpu"
)

// TargetState describes the attachments of the frame pass. Pipelines that
// draw in that pass must be built against it.
type TargetState struct {
	ColorFormat gputypes.TextureFormat
	DepthFormat gputypes.TextureFormat
	SampleCount uint32
}

// TargetState returns the attachment state of the configured surface.
func (d *Device) TargetState() TargetState {
	t := targetStateOf(d.cfg)
	if t.ColorFormat == gputypes.TextureFormatUndefined {
		t.ColorFormat = d.format
	}
	return t
}

func targetStateOf(cfg gpu.SurfaceConfig) TargetState {
	return TargetState{
		ColorFormat: cfg.Format,
		DepthFormat: cfg.DepthFormat,
		SampleCount: max(cfg.SampleCount, 1),
	}
}

// ColorTargets returns the single color target with the given blending.
func (t TargetState) ColorTargets(blend *gputypes.BlendState) []gputypes.ColorTargetState {
	return []gputypes.ColorTargetState{{
		Format:    t.ColorFormat,
		Blend:     blend,
		WriteMask: gputypes.ColorWriteMaskAll,
	}}
}

// DepthStencil returns the depth state for a pipeline in the frame pass.
// Nil when the pass has no depth attachment.
func (t TargetState) DepthStencil(write bool, compare gputypes.CompareFunction) *wgpu.DepthStencilState {
	if t.DepthFormat == gputypes.TextureFormatUndefined {
		return nil
	}
	return &wgpu.DepthStencilState{
		Format:            t.DepthFormat,
		DepthWriteEnabled: write,
		DepthCompare:      compare,
		StencilFront:      wgpu.StencilFaceState{Compare: gputypes.CompareFunctionAlways},
		StencilBack:       wgpu.StencilFaceState{Compare: gputypes.CompareFunctionAlways},
	}
}

// Multisample returns the multisample state matching the pass.
func (t TargetState) Multisample() gputypes.MultisampleState {
	ms := gputypes.DefaultMultisampleState()
	ms.Count = t.SampleCount
	return ms
}
