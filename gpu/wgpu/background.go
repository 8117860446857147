package wgpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/hostapp/gpu"
	"github.com/gogpu/wgpu"
)

const backgroundWGSL = `
struct Gradient {
    top: vec4<f32>,
    bottom: vec4<f32>,
}

@group(0) @binding(0) var<uniform> gradient: Gradient;

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) t: f32,
}

@vertex
fn vs_main(@builtin(vertex_index) idx: u32) -> VertexOutput {
    var pos = array<vec2<f32>, 3>(
        vec2<f32>(-1.0, -1.0),
        vec2<f32>(3.0, -1.0),
        vec2<f32>(-1.0, 3.0)
    );
    let p = pos[idx];
    var out: VertexOutput;
    out.position = vec4<f32>(p, 1.0, 1.0);
    out.t = (1.0 - p.y) * 0.5;
    return out;
}

@fragment
fn fs_main(v: VertexOutput) -> @location(0) vec4<f32> {
    return mix(gradient.top, gradient.bottom, clamp(v.t, 0.0, 1.0));
}
`

// gradientSize is two vec4<f32>.
const gradientSize = 32

// Background draws a full-screen vertical gradient at the far plane. It is
// a gpu.SceneRenderer; queue it first so later geometry draws over it.
//
// The pipeline is built on first use against the device's current target
// state.
type Background struct {
	dev   *Device
	top   gputypes.Color
	bot   gputypes.Color
	dirty bool

	target   TargetState
	shader   *wgpu.ShaderModule
	layout   *wgpu.BindGroupLayout
	pipeLay  *wgpu.PipelineLayout
	pipeline *wgpu.RenderPipeline
	uniform  *wgpu.Buffer
	group    *wgpu.BindGroup
}

var _ gpu.SceneRenderer = (*Background)(nil)

// NewBackground returns a background renderer for dev.
func NewBackground(dev *Device, top, bottom gputypes.Color) *Background {
	return &Background{dev: dev, top: top, bot: bottom, dirty: true}
}

// SetColors changes the gradient colors.
func (b *Background) SetColors(top, bottom gputypes.Color) {
	if top == b.top && bottom == b.bot {
		return
	}
	b.top, b.bot = top, bottom
	b.dirty = true
}

// RenderScene implements gpu.SceneRenderer.
func (b *Background) RenderScene(pass gpu.RenderPass) error {
	rp, err := PassEncoder(pass)
	if err != nil {
		return err
	}
	if target := b.dev.TargetState(); b.pipeline == nil || target != b.target {
		b.releasePipeline()
		if err := b.build(target); err != nil {
			return err
		}
	}
	if b.dirty {
		if err := b.dev.queue.WriteBuffer(b.uniform, 0, gradientBytes(b.top, b.bot)); err != nil {
			return fmt.Errorf("wgpu: background uniforms: %w", err)
		}
		b.dirty = false
	}
	rp.SetPipeline(b.pipeline)
	rp.SetBindGroup(0, b.group, nil)
	rp.Draw(3, 1, 0, 0)
	return nil
}

func (b *Background) build(target TargetState) error {
	dev := b.dev.device
	var err error
	if b.shader == nil {
		if b.shader, err = ShaderModule(dev, "background", backgroundWGSL); err != nil {
			return err
		}
		b.layout, err = dev.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
			Label: "background",
			Entries: []gputypes.BindGroupLayoutEntry{{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			}},
		})
		if err != nil {
			return fmt.Errorf("wgpu: background layout: %w", err)
		}
		b.pipeLay, err = dev.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
			Label:            "background",
			BindGroupLayouts: []*wgpu.BindGroupLayout{b.layout},
		})
		if err != nil {
			return fmt.Errorf("wgpu: background pipeline layout: %w", err)
		}
		b.uniform, err = dev.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "background uniforms",
			Size:  gradientSize,
			Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("wgpu: background uniforms: %w", err)
		}
		b.group, err = dev.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:   "background",
			Layout:  b.layout,
			Entries: []wgpu.BindGroupEntry{{Binding: 0, Buffer: b.uniform, Size: gradientSize}},
		})
		if err != nil {
			return fmt.Errorf("wgpu: background bind group: %w", err)
		}
	}

	b.pipeline, err = dev.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "background",
		Layout: b.pipeLay,
		Vertex: wgpu.VertexState{Module: b.shader, EntryPoint: "vs_main"},
		Primitive: gputypes.PrimitiveState{
			Topology:  gputypes.PrimitiveTopologyTriangleList,
			FrontFace: gputypes.FrontFaceCCW,
			CullMode:  gputypes.CullModeNone,
		},
		DepthStencil: target.DepthStencil(false, gputypes.CompareFunctionLessEqual),
		Multisample:  target.Multisample(),
		Fragment: &wgpu.FragmentState{
			Module:     b.shader,
			EntryPoint: "fs_main",
			Targets:    target.ColorTargets(nil),
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: background pipeline: %w", err)
	}
	b.target = target
	b.dirty = true
	return nil
}

func (b *Background) releasePipeline() {
	if b.pipeline != nil {
		b.pipeline.Release()
		b.pipeline = nil
	}
}

// Release frees the GPU objects of the background.
func (b *Background) Release() {
	b.releasePipeline()
	if b.group != nil {
		b.group.Release()
	}
	if b.uniform != nil {
		b.uniform.Release()
	}
	if b.pipeLay != nil {
		b.pipeLay.Release()
	}
	if b.layout != nil {
		b.layout.Release()
	}
	if b.shader != nil {
		b.shader.Release()
	}
	*b = Background{dev: b.dev, top: b.top, bot: b.bot, dirty: true}
}

// gradientBytes lays out the Gradient uniform: top then bottom, RGBA f32.
func gradientBytes(top, bottom gputypes.Color) []byte {
	buf := make([]byte, gradientSize)
	for i, c := range [2]gputypes.Color{top, bottom} {
		o := i * 16
		binary.LittleEndian.PutUint32(buf[o:], math.Float32bits(float32(c.R)))
		binary.LittleEndian.PutUint32(buf[o+4:], math.Float32bits(float32(c.G)))
		binary.LittleEndian.PutUint32(buf[o+8:], math.Float32bits(float32(c.B)))
		binary.LittleEndian.PutUint32(buf[o+12:], math.Float32bits(float32(c.A)))
	}
	return buf
}
