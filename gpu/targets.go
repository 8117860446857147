package gpu

import "github.com/gogpu/gputypes"

// Targets holds the auxiliary render targets that accompany the surface:
// a depth texture and, when multisampling, an MSAA color texture that is
// resolved into the surface texture at the end of the pass.
type Targets struct {
	// Depth is the depth attachment view.
	Depth TextureView

	// Color is the MSAA color attachment view. Nil when SampleCount is 1.
	Color TextureView

	Width, Height uint32
	SampleCount   uint32
}

// Matches reports whether the targets were created for cfg's size and
// sample count.
func (t *Targets) Matches(cfg SurfaceConfig) bool {
	if t == nil {
		return false
	}
	return t.Width == cfg.Width && t.Height == cfg.Height && t.SampleCount == cfg.SampleCount
}

// Release releases both views. It is safe to call on a nil *Targets.
func (t *Targets) Release() {
	if t == nil {
		return
	}
	if t.Color != nil {
		t.Color.Release()
		t.Color = nil
	}
	if t.Depth != nil {
		t.Depth.Release()
		t.Depth = nil
	}
}

// ColorAttachment describes the color attachment of a render pass.
type ColorAttachment struct {
	View          TextureView
	ResolveTarget TextureView
	LoadOp        gputypes.LoadOp
	StoreOp       gputypes.StoreOp
	ClearValue    gputypes.Color
}

// DepthAttachment describes the depth attachment of a render pass.
type DepthAttachment struct {
	View            TextureView
	DepthLoadOp     gputypes.LoadOp
	DepthStoreOp    gputypes.StoreOp
	DepthClearValue float32
}

// PassDescriptor describes a render pass with one color attachment and an
// optional depth attachment.
type PassDescriptor struct {
	Label string
	Color ColorAttachment
	Depth *DepthAttachment
}

// FramePass returns the descriptor for the single render pass of a frame.
//
// With multisampling the MSAA target is the color attachment and the
// surface view is its resolve target; otherwise the surface view is drawn
// to directly. Color is cleared to clear and depth to 1.0.
func FramePass(surface TextureView, targets *Targets, clear gputypes.Color) *PassDescriptor {
	color := ColorAttachment{
		View:       surface,
		LoadOp:     gputypes.LoadOpClear,
		StoreOp:    gputypes.StoreOpStore,
		ClearValue: clear,
	}
	if targets != nil && targets.Color != nil {
		color.View = targets.Color
		color.ResolveTarget = surface
	}

	desc := &PassDescriptor{
		Label: "frame pass",
		Color: color,
	}
	if targets != nil && targets.Depth != nil {
		desc.Depth = &DepthAttachment{
			View:            targets.Depth,
			DepthLoadOp:     gputypes.LoadOpClear,
			DepthStoreOp:    gputypes.StoreOpStore,
			DepthClearValue: 1.0,
		}
	}
	return desc
}
