//go:build !(windows && cgo)

package desktop

import (
	"testing"

	"github.com/gogpu/gogpu/gpu/types"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/hostapp"
)

func TestGraphicsAPI(t *testing.T) {
	tests := []struct {
		backends string
		want     types.GraphicsAPI
	}{
		{"primary", types.GraphicsAPIAuto},
		{"all", types.GraphicsAPIAuto},
		{"vulkan", types.GraphicsAPIVulkan},
		{"metal", types.GraphicsAPIMetal},
		{"dx12", types.GraphicsAPIDX12},
		{"gl", types.GraphicsAPIGLES},
	}
	for _, tt := range tests {
		cfg := hostapp.DefaultConfig()
		cfg.Backends = tt.backends
		if got := graphicsAPI(cfg.GPUBackends()); got != tt.want {
			t.Errorf("graphicsAPI(%s) = %v, want %v", tt.backends, got, tt.want)
		}
	}
}

func TestVSync(t *testing.T) {
	tests := []struct {
		mode gputypes.PresentMode
		want bool
	}{
		{gputypes.PresentModeFifo, true},
		{gputypes.PresentModeFifoRelaxed, true},
		{gputypes.PresentModeMailbox, false},
		{gputypes.PresentModeImmediate, false},
	}
	for _, tt := range tests {
		if got := vsync(tt.mode); got != tt.want {
			t.Errorf("vsync(%v) = %v, want %v", tt.mode, got, tt.want)
		}
	}
}
