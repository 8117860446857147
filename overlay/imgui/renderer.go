//go:build windows && cgo

package imgui

import (
	"encoding/binary"
	"fmt"
	"math"
	"unsafe"

	imgui "github.com/inkyblackness/imgui-go/v4"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/hostapp/gpu"
	wgpudev "github.com/gogpu/hostapp/gpu/wgpu"
	"github.com/gogpu/wgpu"
)

// fontTextureID is the TextureID of the font atlas. Draw commands with any
// other id are drawn with the atlas too.
const fontTextureID imgui.TextureID = 1

// uniformSize is one mat4x4<f32>.
const uniformSize = 64

// Renderer draws ImGui draw data into a wgpu render pass.
type Renderer struct {
	dev *wgpudev.Device

	vertexStride          int
	posOff, uvOff, colOff int
	indexSize             int

	fontTex  *wgpu.Texture
	fontView *wgpu.TextureView
	sampler  *wgpu.Sampler
	uniform  *wgpu.Buffer
	layout   *wgpu.BindGroupLayout
	pipeLay  *wgpu.PipelineLayout
	group    *wgpu.BindGroup
	shader   *wgpu.ShaderModule

	target   wgpudev.TargetState
	pipeline *wgpu.RenderPipeline

	vbuf, ibuf   *wgpu.Buffer
	vcap, icap   uint64
	vdata, idata []byte
}

// NewRenderer uploads the font atlas and creates the bind group. The
// pipeline is built on the first Draw against the device's target state.
func NewRenderer(dev *wgpudev.Device, fonts imgui.FontAtlas) (*Renderer, error) {
	r := &Renderer{dev: dev}
	r.vertexStride, r.posOff, r.uvOff, r.colOff = imgui.VertexBufferLayout()
	r.indexSize = imgui.IndexBufferLayout()

	if err := r.init(fonts); err != nil {
		r.Release()
		return nil, err
	}
	return r, nil
}

func (r *Renderer) init(fonts imgui.FontAtlas) error {
	device := r.dev.WGPU()
	var err error

	img := fonts.TextureDataRGBA32()
	w, h := uint32(img.Width), uint32(img.Height)
	r.fontTex, err = device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "imgui font",
		Size:          wgpu.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("imgui: font texture: %w", err)
	}
	pixels := unsafe.Slice((*byte)(img.Pixels), int(w*h*4))
	err = r.dev.WGPUQueue().WriteTexture(
		&wgpu.ImageCopyTexture{Texture: r.fontTex, Aspect: gputypes.TextureAspectAll},
		pixels,
		&wgpu.ImageDataLayout{BytesPerRow: 4 * w, RowsPerImage: h},
		&wgpu.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	)
	if err != nil {
		return fmt.Errorf("imgui: upload font atlas: %w", err)
	}
	fonts.SetTextureID(fontTextureID)

	if r.fontView, err = device.CreateTextureView(r.fontTex, nil); err != nil {
		return fmt.Errorf("imgui: font view: %w", err)
	}
	r.sampler, err = device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:        "imgui",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
		LodMaxClamp:  32,
	})
	if err != nil {
		return fmt.Errorf("imgui: sampler: %w", err)
	}
	r.uniform, err = device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "imgui uniforms",
		Size:  uniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("imgui: uniforms: %w", err)
	}

	r.layout, err = device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "imgui",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("imgui: bind group layout: %w", err)
	}
	r.pipeLay, err = device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "imgui",
		BindGroupLayouts: []*wgpu.BindGroupLayout{r.layout},
	})
	if err != nil {
		return fmt.Errorf("imgui: pipeline layout: %w", err)
	}
	r.group, err = device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "imgui",
		Layout: r.layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: r.uniform, Size: uniformSize},
			{Binding: 1, Sampler: r.sampler},
			{Binding: 2, TextureView: r.fontView},
		},
	})
	if err != nil {
		return fmt.Errorf("imgui: bind group: %w", err)
	}
	if r.shader, err = wgpudev.ShaderModule(device, "imgui", uiWGSL); err != nil {
		return err
	}
	return nil
}

func (r *Renderer) buildPipeline(target wgpudev.TargetState) error {
	// ImGui vertex colors are straight alpha.
	blend := gputypes.BlendStateAlpha()
	var err error
	r.pipeline, err = r.dev.WGPU().CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "imgui",
		Layout: r.pipeLay,
		Vertex: wgpu.VertexState{
			Module:     r.shader,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{vertexLayout(r.vertexStride, r.posOff, r.uvOff, r.colOff)},
		},
		Primitive: gputypes.PrimitiveState{
			Topology:  gputypes.PrimitiveTopologyTriangleList,
			FrontFace: gputypes.FrontFaceCCW,
			CullMode:  gputypes.CullModeNone,
		},
		DepthStencil: target.DepthStencil(false, gputypes.CompareFunctionAlways),
		Multisample:  target.Multisample(),
		Fragment: &wgpu.FragmentState{
			Module:     r.shader,
			EntryPoint: "fs_main",
			Targets:    target.ColorTargets(&blend),
		},
	})
	if err != nil {
		return fmt.Errorf("imgui: pipeline: %w", err)
	}
	r.target = target
	return nil
}

// Draw records the draw data into pass. width and height are the
// framebuffer size the UI was laid out for.
func (r *Renderer) Draw(pass gpu.RenderPass, data imgui.DrawData, width, height int) error {
	if !data.Valid() || width <= 0 || height <= 0 {
		return nil
	}
	lists := data.CommandLists()
	if len(lists) == 0 {
		return nil
	}
	rp, err := wgpudev.PassEncoder(pass)
	if err != nil {
		return err
	}
	if target := r.dev.TargetState(); r.pipeline == nil || target != r.target {
		if r.pipeline != nil {
			r.pipeline.Release()
			r.pipeline = nil
		}
		if err := r.buildPipeline(target); err != nil {
			return err
		}
	}

	r.vdata, r.idata = r.vdata[:0], r.idata[:0]
	for _, list := range lists {
		vp, vn := list.VertexBuffer()
		ip, in := list.IndexBuffer()
		r.vdata = append(r.vdata, unsafe.Slice((*byte)(vp), vn)...)
		r.idata = append(r.idata, unsafe.Slice((*byte)(ip), in)...)
	}
	r.vdata, r.idata = pad4(r.vdata), pad4(r.idata)

	queue := r.dev.WGPUQueue()
	if r.vbuf, r.vcap, err = r.ensure(r.vbuf, r.vcap, len(r.vdata), "imgui vertices", gputypes.BufferUsageVertex); err != nil {
		return err
	}
	if r.ibuf, r.icap, err = r.ensure(r.ibuf, r.icap, len(r.idata), "imgui indices", gputypes.BufferUsageIndex); err != nil {
		return err
	}
	if err := queue.WriteBuffer(r.vbuf, 0, r.vdata); err != nil {
		return fmt.Errorf("imgui: write vertices: %w", err)
	}
	if err := queue.WriteBuffer(r.ibuf, 0, r.idata); err != nil {
		return fmt.Errorf("imgui: write indices: %w", err)
	}
	if err := queue.WriteBuffer(r.uniform, 0, projection(float32(width), float32(height))); err != nil {
		return fmt.Errorf("imgui: write uniforms: %w", err)
	}

	rp.SetPipeline(r.pipeline)
	rp.SetBindGroup(0, r.group, nil)
	rp.SetVertexBuffer(0, r.vbuf, 0)
	rp.SetIndexBuffer(r.ibuf, indexFormat(r.indexSize), 0)
	rp.SetViewport(0, 0, float32(width), float32(height), 0, 1)

	var baseVertex int32
	var firstIndex uint32
	for _, list := range lists {
		_, vn := list.VertexBuffer()
		_, in := list.IndexBuffer()
		offset := firstIndex
		for _, cmd := range list.Commands() {
			if cmd.HasUserCallback() {
				cmd.CallUserCallback(list)
				continue
			}
			count := uint32(cmd.ElementCount())
			if x, y, w, h, ok := scissor(cmd.ClipRect(), width, height); ok {
				rp.SetScissorRect(x, y, w, h)
				rp.DrawIndexed(count, 1, offset, baseVertex, 0)
			}
			offset += count
		}
		baseVertex += int32(vn / r.vertexStride)
		firstIndex += uint32(in / r.indexSize)
	}
	rp.SetScissorRect(0, 0, uint32(width), uint32(height))
	return nil
}

// ensure returns a buffer of at least size bytes, replacing buf if it is
// too small.
func (r *Renderer) ensure(buf *wgpu.Buffer, capacity uint64, size int, label string, usage gputypes.BufferUsage) (*wgpu.Buffer, uint64, error) {
	if buf != nil && uint64(size) <= capacity {
		return buf, capacity, nil
	}
	if buf != nil {
		buf.Release()
	}
	capacity = grow(capacity, uint64(size))
	buf, err := r.dev.WGPU().CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  capacity,
		Usage: usage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("imgui: %s: %w", label, err)
	}
	return buf, capacity, nil
}

// Release frees the GPU objects of the renderer.
func (r *Renderer) Release() {
	if r.pipeline != nil {
		r.pipeline.Release()
	}
	if r.vbuf != nil {
		r.vbuf.Release()
	}
	if r.ibuf != nil {
		r.ibuf.Release()
	}
	if r.shader != nil {
		r.shader.Release()
	}
	if r.group != nil {
		r.group.Release()
	}
	if r.pipeLay != nil {
		r.pipeLay.Release()
	}
	if r.layout != nil {
		r.layout.Release()
	}
	if r.uniform != nil {
		r.uniform.Release()
	}
	if r.sampler != nil {
		r.sampler.Release()
	}
	if r.fontView != nil {
		r.fontView.Release()
	}
	if r.fontTex != nil {
		r.fontTex.Release()
	}
	*r = Renderer{dev: r.dev}
}

func vertexLayout(stride, posOff, uvOff, colOff int) wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(stride),
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x2, Offset: uint64(posOff), ShaderLocation: 0},
			{Format: gputypes.VertexFormatFloat32x2, Offset: uint64(uvOff), ShaderLocation: 1},
			{Format: gputypes.VertexFormatUnorm8x4, Offset: uint64(colOff), ShaderLocation: 2},
		},
	}
}

func indexFormat(size int) gputypes.IndexFormat {
	if size == 4 {
		return gputypes.IndexFormatUint32
	}
	return gputypes.IndexFormatUint16
}

// projection is the column-major orthographic matrix mapping the display
// rectangle (origin top-left) to clip space.
func projection(width, height float32) []byte {
	m := [16]float32{
		2 / width, 0, 0, 0,
		0, -2 / height, 0, 0,
		0, 0, 1, 0,
		-1, 1, 0, 1,
	}
	buf := make([]byte, uniformSize)
	for i, v := range m {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// scissor converts an ImGui clip rectangle (min x, min y, max x, max y) to
// a scissor rectangle clamped to the framebuffer.
func scissor(clip imgui.Vec4, width, height int) (x, y, w, h uint32, ok bool) {
	minX := max(clip.X, 0)
	minY := max(clip.Y, 0)
	maxX := min(clip.Z, float32(width))
	maxY := min(clip.W, float32(height))
	if maxX <= minX || maxY <= minY {
		return 0, 0, 0, 0, false
	}
	return uint32(minX), uint32(minY), uint32(maxX - minX), uint32(maxY - minY), true
}

// pad4 extends b with zeros to a multiple of four bytes, as buffer writes
// require.
func pad4(b []byte) []byte {
	for len(b)%4 != 0 {
		b = append(b, 0)
	}
	return b
}

// grow returns a buffer capacity of at least need, with headroom so that
// growing UIs do not reallocate every frame.
func grow(current, need uint64) uint64 {
	c := max(current, 4096)
	for c < need {
		c *= 2
	}
	return c
}
