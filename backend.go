package hostapp

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// Backend identifies the graphics API the application renders with.
type Backend uint8

const (
	// BackendInvalid means no usable backend (or an unknown one).
	BackendInvalid Backend = iota
	BackendVulkan
	BackendMetal
	BackendD3D12
	BackendD3D11
	BackendOpenGLES
	BackendWebGPU
)

// String returns the display name of the backend.
func (b Backend) String() string {
	switch b {
	case BackendVulkan:
		return "Vulkan"
	case BackendMetal:
		return "Metal"
	case BackendD3D12:
		return "D3D12"
	case BackendD3D11:
		return "D3D11"
	case BackendOpenGLES:
		return "OpenGL ES"
	case BackendWebGPU:
		return "WebGPU"
	default:
		return "Invalid"
	}
}

// GoString implements fmt.GoStringer.
func (b Backend) GoString() string {
	return fmt.Sprintf("hostapp.Backend(%s)", b)
}

// BackendOf maps a gputypes backend to the application backend.
// The GL backend runs on OpenGL ES (EGL) contexts.
func BackendOf(b gputypes.Backend) Backend {
	switch b {
	case gputypes.BackendVulkan:
		return BackendVulkan
	case gputypes.BackendMetal:
		return BackendMetal
	case gputypes.BackendDX12:
		return BackendD3D12
	case gputypes.BackendGL:
		return BackendOpenGLES
	case gputypes.BackendBrowserWebGPU:
		return BackendWebGPU
	default:
		return BackendInvalid
	}
}

// TextureCompression is a block-compressed texture format family.
type TextureCompression uint8

const (
	// CompressionBC is the BC1-BC7 family (DXT/S3TC on desktop GPUs).
	CompressionBC TextureCompression = iota
	// CompressionETC2 is the ETC2/EAC family.
	CompressionETC2
	// CompressionASTC is the ASTC LDR family.
	CompressionASTC
)

func (c TextureCompression) String() string {
	switch c {
	case CompressionBC:
		return "BC"
	case CompressionETC2:
		return "ETC2"
	case CompressionASTC:
		return "ASTC"
	default:
		return fmt.Sprintf("TextureCompression(%d)", uint8(c))
	}
}

func (c TextureCompression) feature() (gputypes.Feature, bool) {
	switch c {
	case CompressionBC:
		return gputypes.FeatureTextureCompressionBC, true
	case CompressionETC2:
		return gputypes.FeatureTextureCompressionETC2, true
	case CompressionASTC:
		return gputypes.FeatureTextureCompressionASTC, true
	default:
		return 0, false
	}
}

// supportsCompression reports whether features contains the device
// feature for c.
func supportsCompression(features gputypes.Features, c TextureCompression) bool {
	f, ok := c.feature()
	return ok && features.Contains(f)
}
