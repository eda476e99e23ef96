package device

import (
	"github.com/gogpu/legacygfx/internal/pipelinecache"
	"github.com/gogpu/legacygfx/internal/transpiler"
)

// Backend is the narrow seam between the draw engine's orchestration
// logic and the actual Metal calls, implemented by package hal/metal's
// glue code. Keeping it an interface lets this package's sequencing
// (validate, resolve pending clears, acquire a pass, bind, draw) be
// tested without a GPU, the same way the teacher's command-recording
// types separate "what to record" from "how to issue it to Metal".
type Backend interface {
	// RegisterShader compiles a transpiled shader module's MSL source into
	// an MTLLibrary and caches it under id, the ShaderHandle's raw value,
	// for CompilePipeline to look up on a pipeline-cache miss.
	RegisterShader(id uint32, result *transpiler.Result) error

	// UnregisterShader releases a shader module previously registered
	// under id. Unregistering an unknown id is a no-op.
	UnregisterShader(id uint32)

	// BeginRenderPass opens (or returns the already-open) render command
	// encoder for the given color/depth targets, applying any queued
	// clears as that pass's load action.
	BeginRenderPass(colorTargets [4]any, depthTarget any, clears []PendingClear) (encoder any, err error)

	// EndRenderPass closes the render command encoder.
	EndRenderPass(encoder any)

	// CompilePipeline builds the MTLRenderPipelineState for a pipelinecache
	// miss.
	CompilePipeline(key pipelinecache.Key) (*pipelinecache.Pipeline, error)

	// BindPipeline sets the render pipeline state and the fixed-function
	// depth/stencil, cull, and fill state that Metal also bundles into an
	// encoder-level call rather than the pipeline state object.
	BindPipeline(encoder any, pipeline *pipelinecache.Pipeline, ds DepthStencilState, raster RasterState)

	// BindVertexBuffers binds each stream buffer to its stream index.
	BindVertexBuffers(encoder any, buffers []any)

	// BindUniforms binds the transient buffer holding this draw's uniform
	// data at the given byte offset.
	BindUniforms(encoder any, buffer any, offset int)

	// BindTextures binds the shader's referenced textures and samplers.
	BindTextures(encoder any, textures []any, samplers []any)

	// SetViewportAndScissor applies the rasterizer state not captured by
	// the pipeline state object.
	SetViewportAndScissor(encoder any, v Viewport, r ScissorRect, scissorEnabled bool)

	// Draw issues a non-indexed draw call.
	Draw(encoder any, topology PrimitiveTopology, start, count int)

	// DrawIndexed issues an indexed draw call.
	DrawIndexed(encoder any, topology PrimitiveTopology, indexBuffer any, indexIs32Bit bool, start, count int)

	// AllocTransientBuffer creates a fresh Metal buffer of at least size
	// bytes, for the transient pool to hand out on a cache miss.
	AllocTransientBuffer(size int) any

	// WriteToBuffer copies data into a buffer's CPU-visible storage at
	// offset.
	WriteToBuffer(buffer any, offset int, data []byte)

	// SynthesizeClear issues a clear-only pass against the given targets,
	// for present()'s known-defect workaround: Metal drops a clear that
	// never reaches a drawable through an actual draw.
	SynthesizeClear(colorTargets [4]any, depthTarget any, clears []PendingClear)

	// PresentDrawable schedules presentation of the swap-chain layer's
	// current drawable.
	PresentDrawable(target any)

	// WaitIdle blocks until every command buffer submitted so far has
	// completed, for flush()'s synchronous contract.
	WaitIdle()
}
