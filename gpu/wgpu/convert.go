package wgpu

import (
	"slices"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// preferredFormats lists surface formats in order of preference. Linear
// (non-sRGB) formats come first because the overlay and scene shaders
// output sRGB-encoded colors.
var preferredFormats = []gputypes.TextureFormat{
	gputypes.TextureFormatBGRA8Unorm,
	gputypes.TextureFormatRGBA8Unorm,
	gputypes.TextureFormatBGRA8UnormSrgb,
	gputypes.TextureFormatRGBA8UnormSrgb,
}

func pickFormat(supported []gputypes.TextureFormat) gputypes.TextureFormat {
	for _, f := range preferredFormats {
		if slices.Contains(supported, f) {
			return f
		}
	}
	if len(supported) > 0 {
		return supported[0]
	}
	return gputypes.TextureFormatBGRA8Unorm
}

// pickPresentMode returns want if the surface supports it, else FIFO.
// An empty list means capabilities are unknown and want is trusted.
func pickPresentMode(supported []gputypes.PresentMode, want gputypes.PresentMode) gputypes.PresentMode {
	if len(supported) == 0 || slices.Contains(supported, want) {
		return want
	}
	return gputypes.PresentModeFifo
}

func pickAlphaMode(supported []gputypes.CompositeAlphaMode) gputypes.CompositeAlphaMode {
	if len(supported) == 0 || slices.Contains(supported, gputypes.CompositeAlphaModeOpaque) {
		return gputypes.CompositeAlphaModeOpaque
	}
	return supported[0]
}

func adapterType(t gputypes.DeviceType) gpucontext.AdapterType {
	switch t {
	case gputypes.DeviceTypeDiscreteGPU:
		return gpucontext.AdapterTypeDiscrete
	case gputypes.DeviceTypeIntegratedGPU:
		return gpucontext.AdapterTypeIntegrated
	case gputypes.DeviceTypeCPU:
		return gpucontext.AdapterTypeSoftware
	default:
		return gpucontext.AdapterTypeUnknown
	}
}
