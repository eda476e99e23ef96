// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build darwin

package metal

import (
	"fmt"
	"unsafe"

	"github.com/gogpu/legacygfx/device"
	"github.com/gogpu/legacygfx/hal"
	"github.com/gogpu/legacygfx/herrors"
	"github.com/gogpu/legacygfx/internal/pipelinecache"
	"github.com/gogpu/legacygfx/internal/transpiler"
	"github.com/gogpu/legacygfx/resource"
	"github.com/gogpu/legacygfx/types"
)

// shaderEntry is one RegisterShader-ed module: the transpiler's metadata
// plus the MTLLibrary it was compiled into.
type shaderEntry struct {
	result  *transpiler.Result
	library ID
}

// compiledPipeline is the *pipelinecache.Pipeline.Backend value this
// package hands back: an id<MTLRenderPipelineState>.
type compiledPipeline struct {
	raw ID
}

// renderEncoder is the `any` value BeginRenderPass hands back to the
// device package: a retained id<MTLRenderCommandEncoder>.
type renderEncoder struct {
	raw ID
}

// DrawBackend implements device.Backend directly against the Metal
// object model, bypassing the WebGPU-shaped hal.Device/hal.Queue layer
// (and its WGSL/naga compile path) this package otherwise exposes: the
// fixed-function draw engine only ever needs one device, one queue, and
// MSL already in hand from internal/transpiler, so there is no bind
// group, pipeline layout, or render-bundle machinery to thread through.
type DrawBackend struct {
	device       ID // id<MTLDevice>
	commandQueue ID // id<MTLCommandQueue>

	shaders           map[uint32]*shaderEntry
	depthStencilCache map[device.DepthStencilState]ID

	cmdBuffer ID // the frame's in-flight id<MTLCommandBuffer>, 0 between frames
}

// NewDrawBackend opens the system's default Metal device and its
// command queue, grounded on hal/metal/device.go's newDevice.
func NewDrawBackend() (*DrawBackend, error) {
	if err := Init(); err != nil {
		return nil, fmt.Errorf("metal: %w", err)
	}

	raw := CreateSystemDefaultDevice()
	if raw == 0 {
		return nil, fmt.Errorf("metal: no Metal device available")
	}

	queue := MsgSend(raw, Sel("newCommandQueue"))
	if queue == 0 {
		return nil, fmt.Errorf("metal: failed to create command queue")
	}

	hal.Logger().Info("metal: draw backend opened", "name", DeviceName(raw))

	return &DrawBackend{
		device:            raw,
		commandQueue:      queue,
		shaders:           make(map[uint32]*shaderEntry),
		depthStencilCache: make(map[device.DepthStencilState]ID),
	}, nil
}

// ensureCommandBuffer returns the frame's open command buffer, creating
// and retaining one if none is open yet.
func (b *DrawBackend) ensureCommandBuffer() ID {
	if b.cmdBuffer != 0 {
		return b.cmdBuffer
	}
	cb := MsgSend(b.commandQueue, Sel("commandBuffer"))
	if cb == 0 {
		return 0
	}
	Retain(cb)
	b.cmdBuffer = cb
	return cb
}

// RegisterShader compiles result's MSL into an MTLLibrary, grounded on
// hal/metal/device.go's CreateShaderModule.
func (b *DrawBackend) RegisterShader(id uint32, result *transpiler.Result) error {
	if result == nil {
		return fmt.Errorf("%w: nil shader result for handle %d", herrors.ErrMalformedShader, id)
	}

	pool := NewAutoreleasePool()
	defer pool.Drain()

	mslSource := NSString(result.MSL)
	defer Release(mslSource)

	var errorPtr ID
	library := MsgSend(b.device, Sel("newLibraryWithSource:options:error:"),
		uintptr(mslSource), 0, uintptr(unsafe.Pointer(&errorPtr)))
	if library == 0 {
		return fmt.Errorf("%w: %s", herrors.ErrMalformedShader, formatNSError(errorPtr))
	}

	if old, ok := b.shaders[id]; ok && old.library != 0 {
		Release(old.library)
	}
	b.shaders[id] = &shaderEntry{result: result, library: library}
	return nil
}

// UnregisterShader releases a previously compiled module.
func (b *DrawBackend) UnregisterShader(id uint32) {
	e, ok := b.shaders[id]
	if !ok {
		return
	}
	if e.library != 0 {
		Release(e.library)
	}
	delete(b.shaders, id)
}

// buildRenderPassDescriptor constructs an MTLRenderPassDescriptor for
// colorTargets/depthTarget, applying clears as each attachment's load
// action — grounded on (*CommandEncoder).BeginRenderPass.
func (b *DrawBackend) buildRenderPassDescriptor(colorTargets [4]any, depthTarget any, clears []device.PendingClear) ID {
	var colorClear, depthClear, stencilClear *device.PendingClear
	for i := range clears {
		c := &clears[i]
		if c.Flags&device.ClearColor != 0 {
			colorClear = c
		}
		if c.Flags&device.ClearDepth != 0 {
			depthClear = c
		}
		if c.Flags&device.ClearStencil != 0 {
			stencilClear = c
		}
	}

	rpDesc := MsgSend(ID(GetClass("MTLRenderPassDescriptor")), Sel("renderPassDescriptor"))
	if rpDesc == 0 {
		return 0
	}

	colorAttachments := MsgSend(rpDesc, Sel("colorAttachments"))
	for i, target := range colorTargets {
		tex, ok := target.(*resource.Texture)
		if !ok || tex == nil {
			continue
		}
		raw, _ := tex.Backend.(ID)
		attachment := MsgSend(colorAttachments, Sel("objectAtIndexedSubscript:"), uintptr(i))
		if attachment == 0 {
			continue
		}
		_ = MsgSend(attachment, Sel("setTexture:"), uintptr(raw))
		if colorClear != nil {
			_ = MsgSend(attachment, Sel("setLoadAction:"), uintptr(MTLLoadActionClear))
			clearColor := MTLClearColor{Red: colorClear.Color.R, Green: colorClear.Color.G, Blue: colorClear.Color.B, Alpha: colorClear.Color.A}
			msgSendClearColor(attachment, Sel("setClearColor:"), clearColor)
		} else {
			_ = MsgSend(attachment, Sel("setLoadAction:"), uintptr(MTLLoadActionLoad))
		}
		_ = MsgSend(attachment, Sel("setStoreAction:"), uintptr(MTLStoreActionStore))
	}

	if tex, ok := depthTarget.(*resource.Texture); ok && tex != nil {
		raw, _ := tex.Backend.(ID)

		depthAttachment := MsgSend(rpDesc, Sel("depthAttachment"))
		_ = MsgSend(depthAttachment, Sel("setTexture:"), uintptr(raw))
		if depthClear != nil {
			_ = MsgSend(depthAttachment, Sel("setLoadAction:"), uintptr(MTLLoadActionClear))
			msgSendVoid(depthAttachment, Sel("setClearDepth:"), argFloat64(float64(depthClear.Depth)))
		} else {
			_ = MsgSend(depthAttachment, Sel("setLoadAction:"), uintptr(MTLLoadActionLoad))
		}
		_ = MsgSend(depthAttachment, Sel("setStoreAction:"), uintptr(MTLStoreActionStore))

		if hasStencilBits(tex.Format) {
			stencilAttachment := MsgSend(rpDesc, Sel("stencilAttachment"))
			_ = MsgSend(stencilAttachment, Sel("setTexture:"), uintptr(raw))
			if stencilClear != nil {
				_ = MsgSend(stencilAttachment, Sel("setLoadAction:"), uintptr(MTLLoadActionClear))
				_ = MsgSend(stencilAttachment, Sel("setClearStencil:"), uintptr(stencilClear.Stencil))
			} else {
				_ = MsgSend(stencilAttachment, Sel("setLoadAction:"), uintptr(MTLLoadActionLoad))
			}
			_ = MsgSend(stencilAttachment, Sel("setStoreAction:"), uintptr(MTLStoreActionStore))
		}
	}

	return rpDesc
}

// BeginRenderPass opens the frame's command buffer if needed and
// encodes a render command encoder against the given targets.
func (b *DrawBackend) BeginRenderPass(colorTargets [4]any, depthTarget any, clears []device.PendingClear) (any, error) {
	pool := NewAutoreleasePool()
	defer pool.Drain()

	cmdBuffer := b.ensureCommandBuffer()
	if cmdBuffer == 0 {
		return nil, fmt.Errorf("metal: failed to create command buffer")
	}

	rpDesc := b.buildRenderPassDescriptor(colorTargets, depthTarget, clears)
	if rpDesc == 0 {
		return nil, fmt.Errorf("metal: failed to create render pass descriptor")
	}

	enc := MsgSend(cmdBuffer, Sel("renderCommandEncoderWithDescriptor:"), uintptr(rpDesc))
	if enc == 0 {
		return nil, fmt.Errorf("metal: failed to create render command encoder")
	}
	Retain(enc)
	return &renderEncoder{raw: enc}, nil
}

// EndRenderPass ends the render command encoder. The command buffer
// itself stays open until PresentDrawable or WaitIdle commits it.
func (b *DrawBackend) EndRenderPass(encoder any) {
	enc, ok := encoder.(*renderEncoder)
	if !ok || enc == nil || enc.raw == 0 {
		return
	}
	_ = MsgSend(enc.raw, Sel("endEncoding"))
	Release(enc.raw)
	enc.raw = 0
}

// vertexFormatFor maps one MSL scalar/vector type string, as emitted by
// internal/transpiler/typemap.go, to its MTLVertexFormat and byte size.
// Every vertex attribute occupies its own dedicated buffer (one stream
// per field, per internal/transpiler/structs.go's emitStructs), so the
// format's size doubles as that buffer's tightly packed stride.
func vertexFormatFor(mslType string) (MTLVertexFormat, int) {
	switch mslType {
	case "float":
		return MTLVertexFormatFloat, 4
	case "float2":
		return MTLVertexFormatFloat2, 8
	case "float3":
		return MTLVertexFormatFloat3, 12
	case "float4":
		return MTLVertexFormatFloat4, 16
	case "int":
		return MTLVertexFormatInt, 4
	case "int2":
		return MTLVertexFormatInt2, 8
	case "int3":
		return MTLVertexFormatInt3, 12
	case "int4":
		return MTLVertexFormatInt4, 16
	case "uint":
		return MTLVertexFormatUInt, 4
	case "uint2":
		return MTLVertexFormatUInt2, 8
	case "uint3":
		return MTLVertexFormatUInt3, 12
	case "uint4":
		return MTLVertexFormatUInt4, 16
	case "half2":
		return MTLVertexFormatHalf2, 4
	case "half3":
		return MTLVertexFormatHalf3, 6
	case "half4":
		return MTLVertexFormatHalf4, 8
	default:
		// bool and the scalar "half" have no single-component
		// MTLVertexFormat in this codebase's constant set; fall back to
		// the widest float format rather than silently truncating data.
		return MTLVertexFormatFloat4, 16
	}
}

func blendFactorFor(v uint8) MTLBlendFactor {
	switch device.BlendFactor(v) {
	case device.BlendFactorZero:
		return MTLBlendFactorZero
	case device.BlendFactorOne:
		return MTLBlendFactorOne
	case device.BlendFactorSrcColor:
		return MTLBlendFactorSourceColor
	case device.BlendFactorInvSrcColor:
		return MTLBlendFactorOneMinusSourceColor
	case device.BlendFactorSrcAlpha:
		return MTLBlendFactorSourceAlpha
	case device.BlendFactorInvSrcAlpha:
		return MTLBlendFactorOneMinusSourceAlpha
	case device.BlendFactorDstAlpha:
		return MTLBlendFactorDestinationAlpha
	case device.BlendFactorInvDstAlpha:
		return MTLBlendFactorOneMinusDestinationAlpha
	case device.BlendFactorDstColor:
		return MTLBlendFactorDestinationColor
	case device.BlendFactorInvDstColor:
		return MTLBlendFactorOneMinusDestinationColor
	default:
		return MTLBlendFactorOne
	}
}

func blendOpFor(v uint8) MTLBlendOperation {
	switch device.BlendOp(v) {
	case device.BlendOpAdd:
		return MTLBlendOperationAdd
	case device.BlendOpSubtract:
		return MTLBlendOperationSubtract
	case device.BlendOpRevSubtract:
		return MTLBlendOperationReverseSubtract
	case device.BlendOpMin:
		return MTLBlendOperationMin
	case device.BlendOpMax:
		return MTLBlendOperationMax
	default:
		return MTLBlendOperationAdd
	}
}

func stencilOpFor(op device.StencilOp) MTLStencilOperation {
	switch op {
	case device.StencilOpKeep:
		return MTLStencilOperationKeep
	case device.StencilOpZero:
		return MTLStencilOperationZero
	case device.StencilOpReplace:
		return MTLStencilOperationReplace
	case device.StencilOpIncrSat:
		return MTLStencilOperationIncrementClamp
	case device.StencilOpDecrSat:
		return MTLStencilOperationDecrementClamp
	case device.StencilOpInvert:
		return MTLStencilOperationInvert
	case device.StencilOpIncr:
		return MTLStencilOperationIncrementWrap
	case device.StencilOpDecr:
		return MTLStencilOperationDecrementWrap
	default:
		return MTLStencilOperationKeep
	}
}

func cullModeFor(m device.CullMode) MTLCullMode {
	switch m {
	case device.CullFront:
		return MTLCullModeFront
	case device.CullBack:
		return MTLCullModeBack
	default:
		return MTLCullModeNone
	}
}

func fillModeFor(m device.FillMode) MTLTriangleFillMode {
	if m == device.FillWireframe {
		return MTLTriangleFillModeLines
	}
	return MTLTriangleFillModeFill
}

// hasStencilBits reports whether f actually carries a stencil plane —
// narrower than types.HostPixelFormat.IsDepthStencil, which also
// reports true for the depth-only Z16/Z32F formats.
func hasStencilBits(f types.HostPixelFormat) bool {
	return f == types.HostFormatZ24S8 || f == types.HostFormatZ32FS8X24
}

func primitiveTypeFor(t device.PrimitiveTopology) MTLPrimitiveType {
	switch t {
	case device.PrimitiveTriangleStrip:
		return MTLPrimitiveTypeTriangleStrip
	case device.PrimitiveLineList:
		return MTLPrimitiveTypeLine
	case device.PrimitiveLineStrip:
		return MTLPrimitiveTypeLineStrip
	case device.PrimitivePointList:
		return MTLPrimitiveTypePoint
	default:
		return MTLPrimitiveTypeTriangle
	}
}

// CompilePipeline builds the MTLRenderPipelineState for a pipeline-cache
// miss, grounded on hal/metal/device.go's CreateRenderPipeline — with
// the vertex descriptor that method never builds, and pixel formats
// resolved from key's HostPixelFormat-encoded fields rather than a
// WebGPU TextureFormat.
func (b *DrawBackend) CompilePipeline(key pipelinecache.Key) (*pipelinecache.Pipeline, error) {
	pool := NewAutoreleasePool()
	defer pool.Drain()

	vs, ok := b.shaders[key.VertexShader]
	if !ok || vs.library == 0 {
		return nil, fmt.Errorf("%w: no registered vertex shader for handle %d", herrors.ErrPipelineCompilation, key.VertexShader)
	}
	fs, ok := b.shaders[key.FragmentShader]
	if !ok || fs.library == 0 {
		return nil, fmt.Errorf("%w: no registered fragment shader for handle %d", herrors.ErrPipelineCompilation, key.FragmentShader)
	}

	pipelineDesc := MsgSend(ID(GetClass("MTLRenderPipelineDescriptor")), Sel("new"))
	if pipelineDesc == 0 {
		return nil, fmt.Errorf("%w: failed to create pipeline descriptor", herrors.ErrPipelineCompilation)
	}
	defer Release(pipelineDesc)

	vertexFuncName := NSString(vs.result.Metadata.EntryPoint)
	vertexFunc := MsgSend(vs.library, Sel("newFunctionWithName:"), uintptr(vertexFuncName))
	Release(vertexFuncName)
	if vertexFunc == 0 {
		return nil, fmt.Errorf("%w: vertex function %q not found", herrors.ErrPipelineCompilation, vs.result.Metadata.EntryPoint)
	}
	defer Release(vertexFunc)
	_ = MsgSend(pipelineDesc, Sel("setVertexFunction:"), uintptr(vertexFunc))

	fragmentFuncName := NSString(fs.result.Metadata.EntryPoint)
	fragmentFunc := MsgSend(fs.library, Sel("newFunctionWithName:"), uintptr(fragmentFuncName))
	Release(fragmentFuncName)
	if fragmentFunc == 0 {
		return nil, fmt.Errorf("%w: fragment function %q not found", herrors.ErrPipelineCompilation, fs.result.Metadata.EntryPoint)
	}
	defer Release(fragmentFunc)
	_ = MsgSend(pipelineDesc, Sel("setFragmentFunction:"), uintptr(fragmentFunc))

	if len(vs.result.Metadata.VertexDescriptor) > 0 {
		vertexDesc := MsgSend(ID(GetClass("MTLVertexDescriptor")), Sel("new"))
		if vertexDesc != 0 {
			defer Release(vertexDesc)
			attributes := MsgSend(vertexDesc, Sel("attributes"))
			layouts := MsgSend(vertexDesc, Sel("layouts"))
			for _, a := range vs.result.Metadata.VertexDescriptor {
				format, size := vertexFormatFor(a.MSLType)

				attr := MsgSend(attributes, Sel("objectAtIndexedSubscript:"), uintptr(a.Stream))
				if attr != 0 {
					_ = MsgSend(attr, Sel("setFormat:"), uintptr(format))
					_ = MsgSend(attr, Sel("setOffset:"), uintptr(a.Offset))
					_ = MsgSend(attr, Sel("setBufferIndex:"), uintptr(a.Stream))
				}

				layout := MsgSend(layouts, Sel("objectAtIndexedSubscript:"), uintptr(a.Stream))
				if layout != 0 {
					_ = MsgSend(layout, Sel("setStride:"), uintptr(size))
					_ = MsgSend(layout, Sel("setStepFunction:"), uintptr(MTLVertexStepFunctionPerVertex))
					_ = MsgSend(layout, Sel("setStepRate:"), uintptr(1))
				}
			}
			_ = MsgSend(pipelineDesc, Sel("setVertexDescriptor:"), uintptr(vertexDesc))
		}
	}

	colorAttachments := MsgSend(pipelineDesc, Sel("colorAttachments"))
	for i, fmtv := range key.ColorFormats {
		if fmtv == 0 {
			continue
		}
		attachment := MsgSend(colorAttachments, Sel("objectAtIndexedSubscript:"), uintptr(i))
		if attachment == 0 {
			continue
		}
		pixelFormat := HostPixelFormatToMTL(types.HostPixelFormat(fmtv))
		_ = MsgSend(attachment, Sel("setPixelFormat:"), uintptr(pixelFormat))
		_ = MsgSend(attachment, Sel("setWriteMask:"), uintptr(key.BlendState.WriteMask))
		if key.BlendState.Enabled {
			_ = MsgSend(attachment, Sel("setBlendingEnabled:"), uintptr(1))
			_ = MsgSend(attachment, Sel("setSourceRGBBlendFactor:"), uintptr(blendFactorFor(key.BlendState.SrcColor)))
			_ = MsgSend(attachment, Sel("setDestinationRGBBlendFactor:"), uintptr(blendFactorFor(key.BlendState.DstColor)))
			_ = MsgSend(attachment, Sel("setRgbBlendOperation:"), uintptr(blendOpFor(key.BlendState.ColorOp)))
			_ = MsgSend(attachment, Sel("setSourceAlphaBlendFactor:"), uintptr(blendFactorFor(key.BlendState.SrcAlpha)))
			_ = MsgSend(attachment, Sel("setDestinationAlphaBlendFactor:"), uintptr(blendFactorFor(key.BlendState.DstAlpha)))
			_ = MsgSend(attachment, Sel("setAlphaBlendOperation:"), uintptr(blendOpFor(key.BlendState.AlphaOp)))
		}
	}

	if key.DepthFormat != 0 {
		depthFormat := types.HostPixelFormat(key.DepthFormat)
		pixelFormat := HostPixelFormatToMTL(depthFormat)
		_ = MsgSend(pipelineDesc, Sel("setDepthAttachmentPixelFormat:"), uintptr(pixelFormat))
		if hasStencilBits(depthFormat) {
			_ = MsgSend(pipelineDesc, Sel("setStencilAttachmentPixelFormat:"), uintptr(pixelFormat))
		}
	}

	sampleCount := key.SampleCount
	if sampleCount == 0 {
		sampleCount = 1
	}
	_ = MsgSend(pipelineDesc, Sel("setSampleCount:"), uintptr(sampleCount))

	var errorPtr ID
	pipelineState := MsgSend(b.device, Sel("newRenderPipelineStateWithDescriptor:error:"),
		uintptr(pipelineDesc), uintptr(unsafe.Pointer(&errorPtr)))
	if pipelineState == 0 {
		return nil, fmt.Errorf("%w: %s", herrors.ErrPipelineCompilation, formatNSError(errorPtr))
	}

	return &pipelinecache.Pipeline{Backend: &compiledPipeline{raw: pipelineState}}, nil
}

// depthStencilState returns the cached MTLDepthStencilState for ds,
// building and caching one on first use. The teacher's HAL never builds
// this object (CreateRenderPipeline never references desc.DepthStencil),
// so this is built fresh from MTLDepthStencilDescriptor rather than
// ported from any existing method.
func (b *DrawBackend) depthStencilState(ds device.DepthStencilState) ID {
	if cached, ok := b.depthStencilCache[ds]; ok {
		return cached
	}

	pool := NewAutoreleasePool()
	defer pool.Drain()

	desc := MsgSend(ID(GetClass("MTLDepthStencilDescriptor")), Sel("new"))
	if desc == 0 {
		return 0
	}
	defer Release(desc)

	depthFunc := types.CompareFunctionAlways
	if ds.DepthTestEnabled {
		depthFunc = ds.DepthFunc
	}
	_ = MsgSend(desc, Sel("setDepthCompareFunction:"), uintptr(compareFunctionToMTL(depthFunc)))
	writeEnabled := uintptr(0)
	if ds.DepthWriteEnabled {
		writeEnabled = 1
	}
	_ = MsgSend(desc, Sel("setDepthWriteEnabled:"), writeEnabled)

	if ds.StencilEnabled {
		stencilDesc := MsgSend(ID(GetClass("MTLStencilDescriptor")), Sel("new"))
		if stencilDesc != 0 {
			_ = MsgSend(stencilDesc, Sel("setStencilFailureOperation:"), uintptr(stencilOpFor(ds.StencilFail)))
			_ = MsgSend(stencilDesc, Sel("setDepthFailureOperation:"), uintptr(stencilOpFor(ds.StencilDepthFail)))
			_ = MsgSend(stencilDesc, Sel("setDepthStencilPassOperation:"), uintptr(stencilOpFor(ds.StencilPass)))
			_ = MsgSend(stencilDesc, Sel("setStencilCompareFunction:"), uintptr(compareFunctionToMTL(ds.StencilFunc)))
			_ = MsgSend(stencilDesc, Sel("setReadMask:"), uintptr(ds.StencilReadMask))
			_ = MsgSend(stencilDesc, Sel("setWriteMask:"), uintptr(ds.StencilWriteMask))
			_ = MsgSend(desc, Sel("setFrontFaceStencil:"), uintptr(stencilDesc))
			_ = MsgSend(desc, Sel("setBackFaceStencil:"), uintptr(stencilDesc))
			Release(stencilDesc)
		}
	}

	state := MsgSend(b.device, Sel("newDepthStencilStateWithDescriptor:"), uintptr(desc))
	if state == 0 {
		return 0
	}
	b.depthStencilCache[ds] = state
	return state
}

// BindPipeline sets the pipeline state plus every piece of fixed-function
// state Metal binds at the encoder rather than the pipeline-state level.
func (b *DrawBackend) BindPipeline(encoder any, pipeline *pipelinecache.Pipeline, ds device.DepthStencilState, raster device.RasterState) {
	enc, ok := encoder.(*renderEncoder)
	if !ok || enc == nil || enc.raw == 0 || pipeline == nil {
		return
	}
	cp, ok := pipeline.Backend.(*compiledPipeline)
	if !ok || cp == nil {
		return
	}

	_ = MsgSend(enc.raw, Sel("setRenderPipelineState:"), uintptr(cp.raw))

	if dss := b.depthStencilState(ds); dss != 0 {
		_ = MsgSend(enc.raw, Sel("setDepthStencilState:"), uintptr(dss))
	}
	_ = MsgSend(enc.raw, Sel("setStencilReferenceValue:"), uintptr(ds.StencilRef))

	_ = MsgSend(enc.raw, Sel("setCullMode:"), uintptr(cullModeFor(raster.CullMode)))
	_ = MsgSend(enc.raw, Sel("setTriangleFillMode:"), uintptr(fillModeFor(raster.FillMode)))

	winding := MTLWindingClockwise
	if raster.FrontCCW {
		winding = MTLWindingCounterClockwise
	}
	_ = MsgSend(enc.raw, Sel("setFrontFacingWinding:"), uintptr(winding))

	msgSendVoid(enc.raw, Sel("setDepthBias:slopeScale:clamp:"),
		argFloat32(raster.DepthBias), argFloat32(0), argFloat32(0))
}

// BindVertexBuffers binds each stream buffer to the Metal buffer index
// matching its stream, per vertexFormatFor's one-attribute-one-buffer
// model.
func (b *DrawBackend) BindVertexBuffers(encoder any, buffers []any) {
	enc, ok := encoder.(*renderEncoder)
	if !ok || enc == nil || enc.raw == 0 {
		return
	}
	for i, buf := range buffers {
		raw, _ := buf.(ID)
		_ = MsgSend(enc.raw, Sel("setVertexBuffer:offset:atIndex:"), uintptr(raw), 0, uintptr(i))
	}
}

// uniformBufferIndex is the Metal buffer index reserved for the
// per-draw uniform block, past the highest vertex-attribute stream any
// shader this backend compiles is expected to use.
const uniformBufferIndex = 8

// BindUniforms binds buffer at offset to both the vertex and fragment
// stages' uniform buffer index — the transpiled MSL declares the same
// uniforms struct for both, per internal/transpiler's single shared
// layout.
func (b *DrawBackend) BindUniforms(encoder any, buffer any, offset int) {
	enc, ok := encoder.(*renderEncoder)
	if !ok || enc == nil || enc.raw == 0 {
		return
	}
	raw, _ := buffer.(ID)
	_ = MsgSend(enc.raw, Sel("setVertexBuffer:offset:atIndex:"), uintptr(raw), uintptr(offset), uniformBufferIndex)
	_ = MsgSend(enc.raw, Sel("setFragmentBuffer:offset:atIndex:"), uintptr(raw), uintptr(offset), uniformBufferIndex)
}

// BindTextures binds each texture/sampler pair to the same index on
// both stages, matching internal/transpiler's SamplerBindingDescriptor
// assignment.
func (b *DrawBackend) BindTextures(encoder any, textures []any, samplers []any) {
	enc, ok := encoder.(*renderEncoder)
	if !ok || enc == nil || enc.raw == 0 {
		return
	}
	for i, t := range textures {
		raw, _ := t.(ID)
		_ = MsgSend(enc.raw, Sel("setVertexTexture:atIndex:"), uintptr(raw), uintptr(i))
		_ = MsgSend(enc.raw, Sel("setFragmentTexture:atIndex:"), uintptr(raw), uintptr(i))
	}
	for i, s := range samplers {
		raw, _ := s.(ID)
		_ = MsgSend(enc.raw, Sel("setVertexSamplerState:atIndex:"), uintptr(raw), uintptr(i))
		_ = MsgSend(enc.raw, Sel("setFragmentSamplerState:atIndex:"), uintptr(raw), uintptr(i))
	}
}

// SetViewportAndScissor applies the rasterizer state the pipeline state
// object does not capture.
func (b *DrawBackend) SetViewportAndScissor(encoder any, v device.Viewport, r device.ScissorRect, scissorEnabled bool) {
	enc, ok := encoder.(*renderEncoder)
	if !ok || enc == nil || enc.raw == 0 {
		return
	}

	viewport := MTLViewport{
		OriginX: float64(v.X), OriginY: float64(v.Y),
		Width: float64(v.Width), Height: float64(v.Height),
		ZNear: float64(v.MinDepth), ZFar: float64(v.MaxDepth),
	}
	msgSendVoid(enc.raw, Sel("setViewport:"), argStruct(viewport, mtlViewportType))

	scissor := MTLScissorRect{X: 0, Y: 0, Width: NSUInteger(v.Width), Height: NSUInteger(v.Height)}
	if scissorEnabled {
		scissor = MTLScissorRect{X: NSUInteger(r.X), Y: NSUInteger(r.Y), Width: NSUInteger(r.Width), Height: NSUInteger(r.Height)}
	}
	msgSendVoid(enc.raw, Sel("setScissorRect:"), argStruct(scissor, mtlScissorRectType))
}

// Draw issues a non-indexed draw call.
func (b *DrawBackend) Draw(encoder any, topology device.PrimitiveTopology, start, count int) {
	enc, ok := encoder.(*renderEncoder)
	if !ok || enc == nil || enc.raw == 0 {
		return
	}
	_ = MsgSend(enc.raw, Sel("drawPrimitives:vertexStart:vertexCount:"),
		uintptr(primitiveTypeFor(topology)), uintptr(start), uintptr(count))
}

// DrawIndexed issues an indexed draw call.
func (b *DrawBackend) DrawIndexed(encoder any, topology device.PrimitiveTopology, indexBuffer any, indexIs32Bit bool, start, count int) {
	enc, ok := encoder.(*renderEncoder)
	if !ok || enc == nil || enc.raw == 0 {
		return
	}
	raw, _ := indexBuffer.(ID)

	idxType := MTLIndexTypeUInt16
	idxSize := 2
	if indexIs32Bit {
		idxType = MTLIndexTypeUInt32
		idxSize = 4
	}

	_ = MsgSend(enc.raw, Sel("drawIndexedPrimitives:indexCount:indexType:indexBuffer:indexBufferOffset:"),
		uintptr(primitiveTypeFor(topology)), uintptr(count), uintptr(idxType), uintptr(raw), uintptr(start*idxSize))
}

// AllocTransientBuffer creates a CPU-visible Metal buffer for the
// transient pool to hand out.
func (b *DrawBackend) AllocTransientBuffer(size int) any {
	pool := NewAutoreleasePool()
	defer pool.Drain()

	raw := MsgSend(b.device, Sel("newBufferWithLength:options:"), uintptr(size), uintptr(MTLResourceStorageModeShared))
	if raw == 0 {
		return nil
	}
	Retain(raw)
	return raw
}

// WriteToBuffer copies data into buffer's CPU-visible storage at offset.
func (b *DrawBackend) WriteToBuffer(buffer any, offset int, data []byte) {
	if len(data) == 0 {
		return
	}
	raw, ok := buffer.(ID)
	if !ok || raw == 0 {
		return
	}
	ptr := uintptr(MsgSend(raw, Sel("contents")))
	if ptr == 0 {
		return
	}
	dst := unsafe.Slice((*byte)(unsafe.Pointer(ptr+uintptr(offset))), len(data))
	copy(dst, data)
}

// SynthesizeClear issues a one-shot clear-only render pass, for
// present()'s known-defect workaround (spec.md §9): Metal drops a clear
// that never reaches a drawable through an actual draw.
func (b *DrawBackend) SynthesizeClear(colorTargets [4]any, depthTarget any, clears []device.PendingClear) {
	pool := NewAutoreleasePool()
	defer pool.Drain()

	cmdBuffer := b.ensureCommandBuffer()
	if cmdBuffer == 0 {
		return
	}

	rpDesc := b.buildRenderPassDescriptor(colorTargets, depthTarget, clears)
	if rpDesc == 0 {
		return
	}

	enc := MsgSend(cmdBuffer, Sel("renderCommandEncoderWithDescriptor:"), uintptr(rpDesc))
	if enc == 0 {
		return
	}
	_ = MsgSend(enc, Sel("endEncoding"))
}

// PresentDrawable schedules the swap-chain layer's current drawable for
// presentation and commits the frame's command buffer.
func (b *DrawBackend) PresentDrawable(target any) {
	layer, ok := target.(*resource.SwapChainLayer)
	if !ok || layer == nil {
		return
	}
	drawable, ok := layer.Drawable().(ID)
	if !ok || drawable == 0 {
		return
	}

	cmdBuffer := b.ensureCommandBuffer()
	if cmdBuffer == 0 {
		return
	}

	_ = MsgSend(cmdBuffer, Sel("presentDrawable:"), uintptr(drawable))
	_ = MsgSend(cmdBuffer, Sel("commit"))
	Release(cmdBuffer)
	b.cmdBuffer = 0

	layer.Present()
}

// WaitIdle blocks until every command buffer submitted so far has
// completed. Metal executes command buffers from one queue in
// submission order, so committing and waiting on a fresh empty buffer
// is a correct barrier for everything committed before it — the
// teacher's own WaitIdle (hal/metal/device.go) is a no-op stub; this
// replaces it with a real one since flush()'s synchronous contract
// depends on it.
func (b *DrawBackend) WaitIdle() {
	pool := NewAutoreleasePool()
	defer pool.Drain()

	if b.cmdBuffer != 0 {
		_ = MsgSend(b.cmdBuffer, Sel("commit"))
		_ = MsgSend(b.cmdBuffer, Sel("waitUntilCompleted"))
		Release(b.cmdBuffer)
		b.cmdBuffer = 0
		return
	}

	cmdBuffer := MsgSend(b.commandQueue, Sel("commandBuffer"))
	if cmdBuffer == 0 {
		return
	}
	Retain(cmdBuffer)
	_ = MsgSend(cmdBuffer, Sel("commit"))
	_ = MsgSend(cmdBuffer, Sel("waitUntilCompleted"))
	Release(cmdBuffer)
}
