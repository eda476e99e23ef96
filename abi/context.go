package abi

import (
	"log/slog"

	"github.com/gogpu/legacygfx/core"
	"github.com/gogpu/legacygfx/device"
	"github.com/gogpu/legacygfx/hal"
	"github.com/gogpu/legacygfx/herrors"
	"github.com/gogpu/legacygfx/internal/shaderlang"
	"github.com/gogpu/legacygfx/internal/transpiler"
	"github.com/gogpu/legacygfx/resource"
	"github.com/gogpu/legacygfx/types"
)

// Context is the host-visible device instance: the handle tables plus
// the draw engine bound to one Metal device. The host holds an opaque
// pointer to one of these for the process's lifetime (DESIGN NOTES §9:
// "no singleton in code").
type Context struct {
	Hub    *core.Hub
	Device *device.Device
	log    *slog.Logger
}

// NewContext creates a context driving backend.
func NewContext(backend device.Backend, log *slog.Logger) *Context {
	if log == nil {
		log = hal.Logger()
	}
	return &Context{
		Hub:    core.NewHub(log),
		Device: device.New(backend, log),
		log:    log,
	}
}

// logFailure classifies err and logs it at a severity matching
// spec.md §7's taxonomy: a soft failure (invalid handle, unsupported
// operation) logs at Warn and the caller degrades gracefully; a fatal
// failure (contract violation, pipeline compilation, out of memory) logs
// at Error, since the host has no recovery path for it.
func (c *Context) logFailure(op string, err error) {
	if err == nil {
		return
	}
	if herrors.IsFatal(err) {
		c.log.Error("abi: fatal failure", "op", op, "error", err)
		return
	}
	c.log.Warn("abi: soft failure", "op", op, "error", err)
}

// CreateShader transpiles a host shader program and registers the
// compiled module, returning 0 on a malformed-shader failure.
func (c *Context) CreateShader(prog *shaderlang.Program) core.ShaderHandle {
	result, err := transpiler.Compile(prog)
	if err != nil {
		c.logFailure("create_shader", err)
		return core.ShaderHandle{}
	}
	h := c.Hub.Shaders.Insert(result)
	if err := c.Device.RegisterShader(h.Raw(), result); err != nil {
		c.logFailure("create_shader", err)
		c.Hub.Shaders.Remove(h)
		return core.ShaderHandle{}
	}
	return h
}

// DestroyShader releases a shader handle. Destroying an unknown or
// already-released handle is a soft failure (spec.md §4.1): it is
// logged, not propagated.
func (c *Context) DestroyShader(h core.ShaderHandle) {
	if _, ok := c.Hub.Shaders.Remove(h); !ok {
		c.logFailure("destroy_shader", herrors.ErrInvalidHandle)
		return
	}
	c.Device.UnregisterShader(h.Raw())
}

// shaderResult looks up a compiled shader module by handle.
func (c *Context) shaderResult(h core.ShaderHandle) (*transpiler.Result, error) {
	v, ok := c.Hub.Shaders.Get(h)
	if !ok {
		return nil, herrors.ErrInvalidHandle
	}
	result, ok := v.(*transpiler.Result)
	if !ok {
		return nil, herrors.ErrInvalidHandle
	}
	return result, nil
}

// SetShaderProgram binds the vertex and fragment shaders subsequent draw
// calls use. Returns false if either handle does not name a live shader.
func (c *Context) SetShaderProgram(vertex, fragment core.ShaderHandle) bool {
	vs, err := c.shaderResult(vertex)
	if err != nil {
		c.logFailure("set_shader_program(vertex)", err)
		return false
	}
	fs, err := c.shaderResult(fragment)
	if err != nil {
		c.logFailure("set_shader_program(fragment)", err)
		return false
	}
	c.Device.SetProgram(&device.Program{
		Vertex:     vs,
		Fragment:   fs,
		VertexID:   vertex.Raw(),
		FragmentID: fragment.Raw(),
	})
	return true
}

// CreateVertexBuffer registers a vertex buffer resource built by the
// caller (the Metal buffer allocation itself is the device layer's
// responsibility, supplied here already populated).
func (c *Context) CreateVertexBuffer(vb *resource.VertexBuffer) core.VertexBufferHandle {
	return c.Hub.VertexBuffers.Insert(vb)
}

// DestroyVertexBuffer releases a vertex buffer handle.
func (c *Context) DestroyVertexBuffer(h core.VertexBufferHandle) {
	if _, ok := c.Hub.VertexBuffers.Remove(h); !ok {
		c.logFailure("destroy_vertex_buffer", herrors.ErrInvalidHandle)
	}
}

// CreateIndexBuffer registers an index buffer resource.
func (c *Context) CreateIndexBuffer(ib *resource.IndexBuffer) core.IndexBufferHandle {
	return c.Hub.IndexBuffers.Insert(ib)
}

// DestroyIndexBuffer releases an index buffer handle.
func (c *Context) DestroyIndexBuffer(h core.IndexBufferHandle) {
	if _, ok := c.Hub.IndexBuffers.Remove(h); !ok {
		c.logFailure("destroy_index_buffer", herrors.ErrInvalidHandle)
	}
}

// CreateTexture registers a texture resource. Volume (3D) textures are
// out of scope (Non-goals); callers must not pass a 3D descriptor here —
// there is no host entry point for one.
func (c *Context) CreateTexture(t *resource.Texture) core.TextureHandle {
	return c.Hub.Textures.Insert(t)
}

// DestroyTexture releases a texture handle.
func (c *Context) DestroyTexture(h core.TextureHandle) {
	if _, ok := c.Hub.Textures.Remove(h); !ok {
		c.logFailure("destroy_texture", herrors.ErrInvalidHandle)
	}
}

// CreateStageSurface registers a stage surface resource.
func (c *Context) CreateStageSurface(s *resource.StageSurface) core.StageSurfaceHandle {
	return c.Hub.StageSurfaces.Insert(s)
}

// DestroyStageSurface releases a stage surface handle.
func (c *Context) DestroyStageSurface(h core.StageSurfaceHandle) {
	if _, ok := c.Hub.StageSurfaces.Remove(h); !ok {
		c.logFailure("destroy_stage_surface", herrors.ErrInvalidHandle)
	}
}

// CreateSampler registers an immutable sampler resource.
func (c *Context) CreateSampler(s *resource.SamplerState) core.SamplerHandle {
	return c.Hub.Samplers.Insert(s)
}

// DestroySampler releases a sampler handle.
func (c *Context) DestroySampler(h core.SamplerHandle) {
	if _, ok := c.Hub.Samplers.Remove(h); !ok {
		c.logFailure("destroy_sampler", herrors.ErrInvalidHandle)
	}
}

// CreateSwapChainLayer registers a swap-chain layer resource.
func (c *Context) CreateSwapChainLayer(l *resource.SwapChainLayer) core.SwapChainLayerHandle {
	return c.Hub.SwapChainLayers.Insert(l)
}

// DestroySwapChainLayer releases a swap-chain layer handle.
func (c *Context) DestroySwapChainLayer(h core.SwapChainLayerHandle) {
	if _, ok := c.Hub.SwapChainLayers.Remove(h); !ok {
		c.logFailure("destroy_swap_chain_layer", herrors.ErrInvalidHandle)
	}
}

// BeginScene starts a new frame. Returns false (a soft failure) if a
// scene is already open.
func (c *Context) BeginScene() bool {
	if err := c.Device.BeginScene(); err != nil {
		c.logFailure("begin_scene", err)
		return false
	}
	return true
}

// Draw issues a non-indexed draw call against the vertex buffer that
// vbHandle names.
func (c *Context) Draw(vbHandle core.VertexBufferHandle, uniforms []byte, start, count int) bool {
	v, ok := c.Hub.VertexBuffers.Get(vbHandle)
	if !ok {
		c.logFailure("draw", herrors.ErrInvalidHandle)
		return false
	}
	vb, ok := v.(*resource.VertexBuffer)
	if !ok {
		c.logFailure("draw", herrors.ErrInvalidHandle)
		return false
	}
	if err := c.Device.Draw(vb, uniforms, start, count); err != nil {
		c.logFailure("draw", err)
		return false
	}
	return true
}

// DrawIndexed issues an indexed draw call.
func (c *Context) DrawIndexed(vbHandle core.VertexBufferHandle, ibHandle core.IndexBufferHandle, uniforms []byte, start, count int) bool {
	v, ok := c.Hub.VertexBuffers.Get(vbHandle)
	if !ok {
		c.logFailure("draw_indexed", herrors.ErrInvalidHandle)
		return false
	}
	vb, ok := v.(*resource.VertexBuffer)
	if !ok {
		c.logFailure("draw_indexed", herrors.ErrInvalidHandle)
		return false
	}
	i, ok := c.Hub.IndexBuffers.Get(ibHandle)
	if !ok {
		c.logFailure("draw_indexed", herrors.ErrInvalidHandle)
		return false
	}
	ib, ok := i.(*resource.IndexBuffer)
	if !ok {
		c.logFailure("draw_indexed", herrors.ErrInvalidHandle)
		return false
	}
	if err := c.Device.DrawIndexed(vb, ib, uniforms, start, count); err != nil {
		c.logFailure("draw_indexed", err)
		return false
	}
	return true
}

// Clear queues a clear against the currently bound render targets.
func (c *Context) Clear(flags device.ClearFlags, r, g, b, a float64, depth float32, stencil uint32) {
	c.Device.Clear(flags, types.Color{R: r, G: g, B: b, A: a}, depth, stencil)
}

// Present ends the current scene and schedules the swap-chain layer's
// drawable for presentation.
func (c *Context) Present(layerHandle core.SwapChainLayerHandle) bool {
	v, ok := c.Hub.SwapChainLayers.Get(layerHandle)
	if !ok {
		c.logFailure("present", herrors.ErrInvalidHandle)
		return false
	}
	c.Device.Present(v)
	return true
}

// Flush blocks until all queued GPU work completes.
func (c *Context) Flush() {
	c.Device.Flush()
}

// IsFormatSupported is a capability probe (spec.md §6): every host
// pixel format this backend's conversion table recognizes is supported
// on Metal 3, so this degrades to a table lookup rather than a live
// device query.
func (c *Context) IsFormatSupported(format int) bool {
	f := types.HostPixelFormat(format)
	return f > types.HostFormatUnknown && f <= types.HostFormatZ32FS8X24
}
