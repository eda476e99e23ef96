package device

import "github.com/gogpu/legacygfx/types"

// BlendFactor mirrors the legacy fixed-function blend factor enum.
type BlendFactor int

const (
	BlendFactorZero BlendFactor = iota
	BlendFactorOne
	BlendFactorSrcColor
	BlendFactorInvSrcColor
	BlendFactorSrcAlpha
	BlendFactorInvSrcAlpha
	BlendFactorDstAlpha
	BlendFactorInvDstAlpha
	BlendFactorDstColor
	BlendFactorInvDstColor
)

// BlendOp mirrors the legacy fixed-function blend equation enum.
type BlendOp int

const (
	BlendOpAdd BlendOp = iota
	BlendOpSubtract
	BlendOpRevSubtract
	BlendOpMin
	BlendOpMax
)

// StencilOp mirrors the legacy fixed-function stencil op enum.
type StencilOp int

const (
	StencilOpKeep StencilOp = iota
	StencilOpZero
	StencilOpReplace
	StencilOpIncrSat
	StencilOpDecrSat
	StencilOpInvert
	StencilOpIncr
	StencilOpDecr
)

// CullMode mirrors the legacy fixed-function face-culling enum.
type CullMode int

const (
	CullNone CullMode = iota
	CullFront
	CullBack
)

// FillMode selects solid or wireframe rasterization.
type FillMode int

const (
	FillSolid FillMode = iota
	FillWireframe
)

// PrimitiveTopology mirrors the legacy fixed-function primitive topology enum.
type PrimitiveTopology int

const (
	PrimitiveTriangleList PrimitiveTopology = iota
	PrimitiveTriangleStrip
	PrimitiveLineList
	PrimitiveLineStrip
	PrimitivePointList
)

// ClearFlags is a bitmask of which attachments clear() targets. Per
// spec.md §9's known defect, every test against this mask must use
// flag != 0, never flag == 1 — the source this backend was ported from
// tested equality with 1 and silently skipped any clear whose flag value
// happened to be a different nonzero bit pattern.
type ClearFlags uint32

const (
	ClearColor ClearFlags = 1 << iota
	ClearDepth
	ClearStencil
)

// Viewport is the rasterizer's viewport rectangle plus depth range.
type Viewport struct {
	X, Y, Width, Height float32
	MinDepth, MaxDepth  float32
}

// ScissorRect is the rasterizer's scissor rectangle, in pixels.
type ScissorRect struct {
	X, Y, Width, Height int
}

// BlendState is the fixed-function blend configuration for one color
// attachment.
type BlendState struct {
	Enabled              bool
	SrcColor, DstColor   BlendFactor
	ColorOp              BlendOp
	SrcAlpha, DstAlpha   BlendFactor
	AlphaOp              BlendOp
	WriteMask            uint8 // bit 0=R, 1=G, 2=B, 3=A
}

// DepthStencilState is the fixed-function depth/stencil test configuration.
type DepthStencilState struct {
	DepthTestEnabled  bool
	DepthWriteEnabled bool
	DepthFunc         types.CompareFunction

	StencilEnabled   bool
	StencilReadMask  uint8
	StencilWriteMask uint8
	StencilRef       uint32
	StencilFunc      types.CompareFunction
	StencilFail      StencilOp
	StencilDepthFail StencilOp
	StencilPass      StencilOp
}

// RasterState is the fixed-function rasterizer configuration.
type RasterState struct {
	CullMode     CullMode
	FillMode     FillMode
	FrontCCW     bool
	DepthBias    float32
	ScissorTest  bool
}

// State is the persistent device-state block (spec.md §9's
// recommendation, carried as a required design rather than an optional
// one): every fixed-function setting the ~150 state setters touch, with
// explicit defaults rather than leaving any field to Go's zero value
// when that value would not match the legacy API's documented default.
type State struct {
	Blend         BlendState
	DepthStencil  DepthStencilState
	Raster        RasterState
	Viewport      Viewport
	Scissor       ScissorRect
	Topology      PrimitiveTopology
	RenderTargets [4]any // bound color render targets; nil means unbound
	DepthTarget   any
}

// NewState returns a device-state block initialized to the legacy API's
// documented defaults: depth test enabled with Less comparison and
// writes on, culling back faces, solid fill, blend disabled with
// One/Zero (source-replace) factors, and an all-channel write mask.
func NewState() *State {
	return &State{
		Blend: BlendState{
			Enabled:   false,
			SrcColor:  BlendFactorOne,
			DstColor:  BlendFactorZero,
			ColorOp:   BlendOpAdd,
			SrcAlpha:  BlendFactorOne,
			DstAlpha:  BlendFactorZero,
			AlphaOp:   BlendOpAdd,
			WriteMask: 0xF,
		},
		DepthStencil: DepthStencilState{
			DepthTestEnabled:  true,
			DepthWriteEnabled: true,
			DepthFunc:         types.CompareFunctionLess,
			StencilReadMask:   0xFF,
			StencilWriteMask:  0xFF,
			StencilFunc:       types.CompareFunctionAlways,
			StencilFail:       StencilOpKeep,
			StencilDepthFail:  StencilOpKeep,
			StencilPass:       StencilOpKeep,
		},
		Raster: RasterState{
			CullMode: CullBack,
			FillMode: FillSolid,
			FrontCCW: false,
		},
		Topology: PrimitiveTriangleList,
	}
}
