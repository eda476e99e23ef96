package device

import "github.com/gogpu/legacygfx/types"

// The state setters below are grouped by fixed-function concern (spec.md
// §4.6), one method per setting, thirty in all. Each setter mutates the
// persistent device-state block in place; none of them touch Metal
// directly; draw() is the single place a dirty setting is translated
// into an MTLRenderPipelineState or an encoder call.

// --- Blend state ---

func (s *State) SetBlendEnabled(enabled bool)        { s.Blend.Enabled = enabled }
func (s *State) SetBlendSrcColor(f BlendFactor)       { s.Blend.SrcColor = f }
func (s *State) SetBlendDstColor(f BlendFactor)       { s.Blend.DstColor = f }
func (s *State) SetBlendColorOp(op BlendOp)           { s.Blend.ColorOp = op }
func (s *State) SetBlendSrcAlpha(f BlendFactor)       { s.Blend.SrcAlpha = f }
func (s *State) SetBlendDstAlpha(f BlendFactor)       { s.Blend.DstAlpha = f }
func (s *State) SetBlendAlphaOp(op BlendOp)           { s.Blend.AlphaOp = op }
func (s *State) SetColorWriteMask(mask uint8)         { s.Blend.WriteMask = mask }

// --- Depth/stencil state ---

func (s *State) SetDepthTestEnabled(enabled bool)          { s.DepthStencil.DepthTestEnabled = enabled }
func (s *State) SetDepthWriteEnabled(enabled bool)         { s.DepthStencil.DepthWriteEnabled = enabled }
func (s *State) SetDepthFunc(f types.CompareFunction)      { s.DepthStencil.DepthFunc = f }
func (s *State) SetStencilEnabled(enabled bool)            { s.DepthStencil.StencilEnabled = enabled }
func (s *State) SetStencilReadMask(mask uint8)             { s.DepthStencil.StencilReadMask = mask }
func (s *State) SetStencilWriteMask(mask uint8)            { s.DepthStencil.StencilWriteMask = mask }
func (s *State) SetStencilRef(ref uint32)                  { s.DepthStencil.StencilRef = ref }
func (s *State) SetStencilFunc(f types.CompareFunction)    { s.DepthStencil.StencilFunc = f }
func (s *State) SetStencilFailOp(op StencilOp)             { s.DepthStencil.StencilFail = op }
func (s *State) SetStencilDepthFailOp(op StencilOp)        { s.DepthStencil.StencilDepthFail = op }
func (s *State) SetStencilPassOp(op StencilOp)             { s.DepthStencil.StencilPass = op }

// --- Raster state ---

func (s *State) SetCullMode(m CullMode)      { s.Raster.CullMode = m }
func (s *State) SetFillMode(m FillMode)      { s.Raster.FillMode = m }
func (s *State) SetFrontCCW(ccw bool)        { s.Raster.FrontCCW = ccw }
func (s *State) SetDepthBias(bias float32)   { s.Raster.DepthBias = bias }
func (s *State) SetScissorTestEnabled(e bool) { s.Raster.ScissorTest = e }

// --- Viewport / scissor ---

func (s *State) SetViewport(v Viewport)         { s.Viewport = v }
func (s *State) SetScissorRect(r ScissorRect)   { s.Scissor = r }

// --- Primitive topology ---

func (s *State) SetPrimitiveTopology(t PrimitiveTopology) { s.Topology = t }

// --- Render targets ---

// SetRenderTarget binds a color render target to slot, or unbinds it
// (per DESIGN NOTES' null-reset semantics) when target is nil.
func (s *State) SetRenderTarget(slot int, target any) {
	if slot < 0 || slot >= len(s.RenderTargets) {
		return
	}
	s.RenderTargets[slot] = target
}

// SetDepthTarget binds (or, with nil, unbinds) the depth/stencil render
// target.
func (s *State) SetDepthTarget(target any) { s.DepthTarget = target }
