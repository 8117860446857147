// Package wgpu implements the gpu.Device contract on gogpu/wgpu.
//
// A Device owns one wgpu instance, the surface created from a native window
// handle, the adapter, the logical device and its queue. Render passes are
// handed out as *wgpu.RenderPassEncoder from github.com/gogpu/wgpu; scene
// code that records draw calls obtains it with [PassEncoder].
//
// WGSL sources go through naga before module creation (see [ShaderModule])
// so that shader errors surface with line information at pipeline build
// time rather than as a driver failure.
package wgpu
