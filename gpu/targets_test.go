package gpu

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

type fakeView struct {
	name     string
	released bool
}

func (v *fakeView) Release() { v.released = true }

func TestFramePass_Multisampled(t *testing.T) {
	surface := &fakeView{name: "surface"}
	msaa := &fakeView{name: "msaa"}
	depth := &fakeView{name: "depth"}
	targets := &Targets{Depth: depth, Color: msaa, Width: 8, Height: 8, SampleCount: 4}

	desc := FramePass(surface, targets, gputypes.ColorBlack)

	if desc.Color.View != msaa {
		t.Errorf("color view = %v, want MSAA target", desc.Color.View)
	}
	if desc.Color.ResolveTarget != surface {
		t.Errorf("resolve target = %v, want surface view", desc.Color.ResolveTarget)
	}
	if desc.Color.LoadOp != gputypes.LoadOpClear || desc.Color.StoreOp != gputypes.StoreOpStore {
		t.Errorf("color ops = %v/%v, want Clear/Store", desc.Color.LoadOp, desc.Color.StoreOp)
	}
	if desc.Color.ClearValue != gputypes.ColorBlack {
		t.Errorf("clear value = %+v, want opaque black", desc.Color.ClearValue)
	}
	if desc.Depth == nil {
		t.Fatal("depth attachment missing")
	}
	if desc.Depth.View != depth {
		t.Errorf("depth view = %v, want depth target", desc.Depth.View)
	}
	if desc.Depth.DepthClearValue != 1.0 || desc.Depth.DepthLoadOp != gputypes.LoadOpClear {
		t.Errorf("depth clear = %v/%v, want Clear to 1.0", desc.Depth.DepthLoadOp, desc.Depth.DepthClearValue)
	}
}

func TestFramePass_SingleSample(t *testing.T) {
	surface := &fakeView{name: "surface"}
	targets := &Targets{Depth: &fakeView{name: "depth"}, Width: 8, Height: 8, SampleCount: 1}

	desc := FramePass(surface, targets, gputypes.ColorBlack)

	if desc.Color.View != surface {
		t.Errorf("color view = %v, want surface view", desc.Color.View)
	}
	if desc.Color.ResolveTarget != nil {
		t.Errorf("resolve target = %v, want nil", desc.Color.ResolveTarget)
	}
}

func TestTargets_Matches(t *testing.T) {
	cfg := SurfaceConfig{Width: 640, Height: 480, SampleCount: 4}
	tests := []struct {
		name    string
		targets *Targets
		want    bool
	}{
		{"nil", nil, false},
		{"same", &Targets{Width: 640, Height: 480, SampleCount: 4}, true},
		{"stale size", &Targets{Width: 320, Height: 480, SampleCount: 4}, false},
		{"other samples", &Targets{Width: 640, Height: 480, SampleCount: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.targets.Matches(cfg); got != tt.want {
				t.Errorf("Matches = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTargets_Release(t *testing.T) {
	depth, color := &fakeView{}, &fakeView{}
	targets := &Targets{Depth: depth, Color: color}
	targets.Release()
	if !depth.released || !color.released {
		t.Errorf("released depth=%v color=%v, want both", depth.released, color.released)
	}
	targets.Release() // second call is a no-op

	var nilTargets *Targets
	nilTargets.Release()
}

func TestSurfaceConfig_Validate(t *testing.T) {
	base := SurfaceConfig{
		Width: 1280, Height: 720,
		Format:      gputypes.TextureFormatBGRA8Unorm,
		DepthFormat: gputypes.TextureFormatDepth32Float,
		SampleCount: 4,
		PresentMode: gputypes.PresentModeFifo,
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	tests := []struct {
		name   string
		mutate func(*SurfaceConfig)
	}{
		{"zero width", func(c *SurfaceConfig) { c.Width = 0 }},
		{"zero height", func(c *SurfaceConfig) { c.Height = 0 }},
		{"bad samples", func(c *SurfaceConfig) { c.SampleCount = 3 }},
		{"color depth format", func(c *SurfaceConfig) { c.DepthFormat = gputypes.TextureFormatRGBA8Unorm }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestSurfaceConfig_Resized(t *testing.T) {
	cfg := SurfaceConfig{Width: 1, Height: 1, SampleCount: 4}
	got := cfg.Resized(300, 200)
	if got.Width != 300 || got.Height != 200 || got.SampleCount != 4 {
		t.Errorf("Resized = %+v", got)
	}
	if cfg.Width != 1 {
		t.Error("Resized modified the receiver")
	}
	if !cfg.Resized(0, 200).Empty() {
		t.Error("Empty() = false for zero width")
	}
	if !got.Multisampled() {
		t.Error("Multisampled() = false for 4 samples")
	}
}
