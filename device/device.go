package device

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gogpu/legacygfx/hal"
	"github.com/gogpu/legacygfx/herrors"
	"github.com/gogpu/legacygfx/internal/pipelinecache"
	"github.com/gogpu/legacygfx/internal/transientpool"
	"github.com/gogpu/legacygfx/internal/transpiler"
	"github.com/gogpu/legacygfx/resource"
	"github.com/gogpu/legacygfx/types"
)

// Program is a compiled vertex+fragment shader pair, bound as a unit the
// way the legacy API's set_shader entry point does.
type Program struct {
	Vertex     *transpiler.Result
	Fragment   *transpiler.Result
	VertexID   uint32 // the vertex ShaderHandle's raw value, for pipeline-cache keying
	FragmentID uint32
}

// Device is the device-state block and draw engine for one Metal device.
// It is the single writer spec.md §5 requires: nothing outside this type
// (other than the transient pool's completion-handler callback) is
// allowed to mutate a device's resources or state.
type Device struct {
	backend Backend
	log     *slog.Logger

	State      *State
	Projection *ProjectionStack
	Clears     PendingClearQueue

	pool  *transientpool.Pool
	cache *pipelinecache.Cache

	program *Program

	encoder          any
	drawsThisFrame   int
	sceneOpen        bool
}

// New creates a device driving backend, logging through log (or the
// package default if nil).
func New(backend Backend, log *slog.Logger) *Device {
	if log == nil {
		log = hal.Logger()
	}
	d := &Device{
		backend:    backend,
		log:        log,
		State:      NewState(),
		Projection: NewProjectionStack(),
	}
	d.pool = transientpool.New(func(size int) *transientpool.Buffer {
		return &transientpool.Buffer{Backend: backend.AllocTransientBuffer(size), Capacity: size}
	})
	d.cache = pipelinecache.New(backend.CompilePipeline)
	return d
}

// BeginScene marks the start of a frame. It is a contract violation to
// call BeginScene again before Present or Flush ends the current one.
func (d *Device) BeginScene() error {
	if d.sceneOpen {
		return fmt.Errorf("%w: begin_scene called while a scene is already open", herrors.ErrContractViolation)
	}
	d.sceneOpen = true
	d.drawsThisFrame = 0
	return nil
}

// SetProgram binds the vertex+fragment shader pair subsequent draw calls
// use.
func (d *Device) SetProgram(p *Program) { d.program = p }

// RegisterShader forwards a compiled shader module to the backend so it
// can be compiled to an MTLLibrary ahead of pipeline construction.
func (d *Device) RegisterShader(id uint32, result *transpiler.Result) error {
	return d.backend.RegisterShader(id, result)
}

// UnregisterShader releases a shader module the backend cached under id.
func (d *Device) UnregisterShader(id uint32) {
	d.backend.UnregisterShader(id)
}

// Clear queues a clear against the render targets currently bound in
// State, to be folded into the next render pass that targets them.
//
// Per spec.md §9's known defect, flags must be tested bit-by-bit
// (flag&ClearColor != 0), never flag == 1: a caller that ORs multiple
// clear flags together must still see every requested attachment
// cleared.
func (d *Device) Clear(flags ClearFlags, color types.Color, depth float32, stencil uint32) {
	target := d.currentTargetIdentity()
	d.Clears.Push(PendingClear{Target: target, Flags: flags, Color: color, Depth: depth, Stencil: stencil})
}

// currentTargetIdentity derives a single comparable value identifying the
// currently bound render-target set, for matching against PendingClear
// entries.
func (d *Device) currentTargetIdentity() any {
	return [5]any{
		d.State.RenderTargets[0], d.State.RenderTargets[1],
		d.State.RenderTargets[2], d.State.RenderTargets[3],
		d.State.DepthTarget,
	}
}

// Draw issues one draw call: validate the bound program and vertex
// buffer, take any pending clears queued for the current render targets,
// open a render pass if one is not already open (ending the open pass
// first when clears were taken, so they become the new pass's load
// actions), look up or compile the matching pipeline state, bind vertex
// buffers, upload and bind this draw's uniform data through the
// transient pool, apply viewport and scissor state, and finally issue
// the draw. Textures and samplers are not bound by Draw.
func (d *Device) Draw(vb *resource.VertexBuffer, uniforms []byte, start, count int) error {
	if d.program == nil {
		d.log.Warn("device: draw with no shader program bound")
		return fmt.Errorf("%w: draw issued with no shader program bound", herrors.ErrContractViolation)
	}
	if vb == nil {
		d.log.Warn("device: draw with no vertex buffer bound")
		return fmt.Errorf("%w: draw issued with no vertex buffer bound", herrors.ErrContractViolation)
	}

	target := d.currentTargetIdentity()
	clears := d.Clears.TakeFor(target)

	if d.encoder != nil && len(clears) > 0 {
		d.backend.EndRenderPass(d.encoder)
		d.encoder = nil
	}
	if d.encoder == nil {
		enc, err := d.backend.BeginRenderPass(d.State.RenderTargets, d.State.DepthTarget, clears)
		if err != nil {
			return err
		}
		d.encoder = enc
	}

	key := d.pipelineKey()
	pipeline, err := d.cache.Get(key)
	if err != nil {
		return err
	}
	d.backend.BindPipeline(d.encoder, pipeline, d.State.DepthStencil, d.State.Raster)

	bufs, ok := vb.BuffersForShader(streamsConsumedFor(d.program))
	if !ok {
		return fmt.Errorf("%w: vertex buffer does not provide enough streams for the bound shader", herrors.ErrContractViolation)
	}
	d.backend.BindVertexBuffers(d.encoder, bufs)

	if len(uniforms) > 0 {
		buf := d.pool.GetBufferForSize(len(uniforms))
		d.backend.WriteToBuffer(buf.Backend, 0, uniforms)
		d.backend.BindUniforms(d.encoder, buf.Backend, 0)
	}

	d.backend.SetViewportAndScissor(d.encoder, d.State.Viewport, d.State.Scissor, d.State.Raster.ScissorTest)

	d.backend.Draw(d.encoder, d.State.Topology, start, count)
	d.drawsThisFrame++
	return nil
}

// DrawIndexed is Draw's indexed-primitive counterpart.
func (d *Device) DrawIndexed(vb *resource.VertexBuffer, ib *resource.IndexBuffer, uniforms []byte, start, count int) error {
	if d.program == nil {
		return fmt.Errorf("%w: draw issued with no shader program bound", herrors.ErrContractViolation)
	}
	if vb == nil || ib == nil {
		return fmt.Errorf("%w: indexed draw issued with no vertex or index buffer bound", herrors.ErrContractViolation)
	}

	target := d.currentTargetIdentity()
	clears := d.Clears.TakeFor(target)

	if d.encoder != nil && len(clears) > 0 {
		d.backend.EndRenderPass(d.encoder)
		d.encoder = nil
	}
	if d.encoder == nil {
		enc, err := d.backend.BeginRenderPass(d.State.RenderTargets, d.State.DepthTarget, clears)
		if err != nil {
			return err
		}
		d.encoder = enc
	}

	key := d.pipelineKey()
	pipeline, err := d.cache.Get(key)
	if err != nil {
		return err
	}
	d.backend.BindPipeline(d.encoder, pipeline, d.State.DepthStencil, d.State.Raster)

	bufs, ok := vb.BuffersForShader(streamsConsumedFor(d.program))
	if !ok {
		return fmt.Errorf("%w: vertex buffer does not provide enough streams for the bound shader", herrors.ErrContractViolation)
	}
	d.backend.BindVertexBuffers(d.encoder, bufs)

	if len(uniforms) > 0 {
		buf := d.pool.GetBufferForSize(len(uniforms))
		d.backend.WriteToBuffer(buf.Backend, 0, uniforms)
		d.backend.BindUniforms(d.encoder, buf.Backend, 0)
	}

	d.backend.SetViewportAndScissor(d.encoder, d.State.Viewport, d.State.Scissor, d.State.Raster.ScissorTest)

	d.backend.DrawIndexed(d.encoder, d.State.Topology, ib.Backend, ib.Type == resource.IndexTypeUint32, start, count)
	d.drawsThisFrame++
	return nil
}

// Present ends the current scene: any render pass left open is closed,
// the transient pool is rotated (current buffers move to retired), and
// the swap-chain layer's drawable is scheduled for presentation. No GPU
// completion handler is registered here, so retired buffers are not
// returned to available by Present; only Flush returns them.
//
// Per spec.md §9's known defect, Metal requires an actual draw to flush a
// clear to a drawable: a frame that called clear() but issued zero draws
// synthesizes a clear-only pass here so the cleared color is not silently
// dropped.
func (d *Device) Present(swapChainTarget any) {
	if d.drawsThisFrame == 0 {
		target := d.currentTargetIdentity()
		clears := d.Clears.TakeFor(target)
		if len(clears) > 0 {
			d.backend.SynthesizeClear(d.State.RenderTargets, d.State.DepthTarget, clears)
		}
	}
	if d.encoder != nil {
		d.backend.EndRenderPass(d.encoder)
		d.encoder = nil
	}
	d.backend.PresentDrawable(swapChainTarget)
	d.pool.Present()
	d.sceneOpen = false
}

// Flush forces every queued GPU work item to complete synchronously
// before returning, rotating the transient pool's current and retired
// buffers straight to available since there is no outstanding async
// completion left to wait for afterward.
func (d *Device) Flush() {
	if d.encoder != nil {
		d.backend.EndRenderPass(d.encoder)
		d.encoder = nil
	}
	d.backend.WaitIdle()
	d.pool.FlushSync()
	d.sceneOpen = false
}

func (d *Device) pipelineKey() pipelinecache.Key {
	key := pipelinecache.Key{
		VertexShader:   d.program.VertexID,
		FragmentShader: d.program.FragmentID,
		VertexLayout:   vertexLayoutKey(d.program.Vertex),
		BlendState: pipelinecache.BlendState{
			Enabled:   d.State.Blend.Enabled,
			SrcColor:  uint8(d.State.Blend.SrcColor),
			DstColor:  uint8(d.State.Blend.DstColor),
			SrcAlpha:  uint8(d.State.Blend.SrcAlpha),
			DstAlpha:  uint8(d.State.Blend.DstAlpha),
			ColorOp:   uint8(d.State.Blend.ColorOp),
			AlphaOp:   uint8(d.State.Blend.AlphaOp),
			WriteMask: d.State.Blend.WriteMask,
		},
		SampleCount: 1,
	}
	for i, rt := range d.State.RenderTargets {
		if tex, ok := rt.(*resource.Texture); ok {
			key.ColorFormats[i] = uint32(tex.Format)
		}
	}
	if tex, ok := d.State.DepthTarget.(*resource.Texture); ok {
		key.DepthFormat = uint32(tex.Format)
	}
	return key
}

// vertexLayoutKey renders a vertex shader's input descriptor as a
// canonical string, so two shaders whose vertex layouts are
// structurally identical (but were compiled separately) still collide
// on the same pipeline-cache entry only when every stream/offset/type
// triple matches exactly.
func vertexLayoutKey(vs *transpiler.Result) string {
	if vs == nil {
		return ""
	}
	var b strings.Builder
	for _, a := range vs.Metadata.VertexDescriptor {
		fmt.Fprintf(&b, "%d:%d:%s|", a.Stream, a.Offset, a.MSLType)
	}
	return b.String()
}

func streamsConsumedFor(p *Program) int {
	if p == nil || p.Vertex == nil {
		return 0
	}
	return p.Vertex.Metadata.StreamsConsumed
}
