package wgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/hostapp/gpu"
	"github.com/gogpu/wgpu"
)

// frame is an acquired surface texture and its view. A hosted frame
// borrows the view of the host's frame in progress; the host presents it.
type frame struct {
	surface    *wgpu.Surface
	texture    *wgpu.SurfaceTexture
	view       *wgpu.TextureView
	suboptimal bool
	hosted     bool
	done       bool
}

func (f *frame) View() gpu.TextureView { return f.view }
func (f *frame) Suboptimal() bool      { return f.suboptimal }

func (f *frame) Discard() {
	if f.done {
		return
	}
	f.done = true
	if f.hosted {
		return
	}
	f.view.Release()
	f.surface.DiscardTexture()
}

func (f *frame) present() error {
	if f.done {
		return errors.New("wgpu: frame already presented or discarded")
	}
	f.done = true
	if f.hosted {
		return nil
	}
	err := f.surface.Present(f.texture)
	f.view.Release()
	return err
}

// ownedView is a texture view that also owns its texture.
type ownedView struct {
	texture *wgpu.Texture
	view    *wgpu.TextureView
}

func (v *ownedView) Release() {
	v.view.Release()
	v.texture.Release()
}

// rawView unwraps a gpu.TextureView created by this package. A nil view
// yields nil.
func rawView(v gpu.TextureView) (*wgpu.TextureView, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case *wgpu.TextureView:
		return v, nil
	case *ownedView:
		return v.view, nil
	default:
		return nil, fmt.Errorf("wgpu: foreign texture view %T", v)
	}
}

type encoder struct {
	enc *wgpu.CommandEncoder
}

func (e *encoder) BeginRenderPass(desc *gpu.PassDescriptor) (gpu.RenderPass, error) {
	rp, err := renderPassDescriptor(desc)
	if err != nil {
		return nil, err
	}
	pass, err := e.enc.BeginRenderPass(rp)
	if err != nil {
		return nil, err
	}
	return pass, nil
}

func (e *encoder) Finish() (gpu.CommandBuffer, error) {
	cb, err := e.enc.Finish()
	if err != nil {
		return nil, err
	}
	return cb, nil
}

func (e *encoder) Discard() { e.enc.DiscardEncoding() }

// renderPassDescriptor converts a gpu pass descriptor to wgpu.
func renderPassDescriptor(desc *gpu.PassDescriptor) (*wgpu.RenderPassDescriptor, error) {
	view, err := rawView(desc.Color.View)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, errors.New("wgpu: render pass without color view")
	}
	resolve, err := rawView(desc.Color.ResolveTarget)
	if err != nil {
		return nil, err
	}
	rp := &wgpu.RenderPassDescriptor{
		Label: desc.Label,
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:          view,
			ResolveTarget: resolve,
			LoadOp:        desc.Color.LoadOp,
			StoreOp:       desc.Color.StoreOp,
			ClearValue:    desc.Color.ClearValue,
		}},
	}
	if desc.Depth != nil {
		depth, err := rawView(desc.Depth.View)
		if err != nil {
			return nil, err
		}
		rp.DepthStencilAttachment = &wgpu.RenderPassDepthStencilAttachment{
			View:            depth,
			DepthLoadOp:     desc.Depth.DepthLoadOp,
			DepthStoreOp:    desc.Depth.DepthStoreOp,
			DepthClearValue: desc.Depth.DepthClearValue,
		}
	}
	return rp, nil
}

// PassEncoder returns the wgpu render pass behind pass. It fails for
// passes that were not created by a Device of this package.
func PassEncoder(pass gpu.RenderPass) (*wgpu.RenderPassEncoder, error) {
	rp, ok := pass.(*wgpu.RenderPassEncoder)
	if !ok {
		return nil, fmt.Errorf("wgpu: render pass %T is not a wgpu pass", pass)
	}
	return rp, nil
}
