package abi

import (
	"github.com/gogpu/legacygfx/core"
	"github.com/gogpu/legacygfx/device"
	"github.com/gogpu/legacygfx/herrors"
	"github.com/gogpu/legacygfx/types"
)

// The setters below forward directly to the persistent device-state
// block (device.State), one host entry point per fixed-function setting.
// None of them touch Metal or do any validation beyond what State itself
// does (render-target slot bounds-checking); the state is only consulted
// when a draw call actually needs it.

// --- Blend state ---

func (c *Context) SetBlendEnabled(enabled bool)       { c.Device.State.SetBlendEnabled(enabled) }
func (c *Context) SetBlendSrcColor(f device.BlendFactor) { c.Device.State.SetBlendSrcColor(f) }
func (c *Context) SetBlendDstColor(f device.BlendFactor) { c.Device.State.SetBlendDstColor(f) }
func (c *Context) SetBlendColorOp(op device.BlendOp)     { c.Device.State.SetBlendColorOp(op) }
func (c *Context) SetBlendSrcAlpha(f device.BlendFactor) { c.Device.State.SetBlendSrcAlpha(f) }
func (c *Context) SetBlendDstAlpha(f device.BlendFactor) { c.Device.State.SetBlendDstAlpha(f) }
func (c *Context) SetBlendAlphaOp(op device.BlendOp)     { c.Device.State.SetBlendAlphaOp(op) }
func (c *Context) SetColorWriteMask(mask uint8)          { c.Device.State.SetColorWriteMask(mask) }

// --- Depth/stencil state ---

func (c *Context) SetDepthTestEnabled(enabled bool)  { c.Device.State.SetDepthTestEnabled(enabled) }
func (c *Context) SetDepthWriteEnabled(enabled bool) { c.Device.State.SetDepthWriteEnabled(enabled) }
func (c *Context) SetDepthFunc(f types.CompareFunction) { c.Device.State.SetDepthFunc(f) }
func (c *Context) SetStencilEnabled(enabled bool)    { c.Device.State.SetStencilEnabled(enabled) }
func (c *Context) SetStencilReadMask(mask uint8)     { c.Device.State.SetStencilReadMask(mask) }
func (c *Context) SetStencilWriteMask(mask uint8)    { c.Device.State.SetStencilWriteMask(mask) }
func (c *Context) SetStencilRef(ref uint32)          { c.Device.State.SetStencilRef(ref) }
func (c *Context) SetStencilFunc(f types.CompareFunction) { c.Device.State.SetStencilFunc(f) }
func (c *Context) SetStencilFailOp(op device.StencilOp)      { c.Device.State.SetStencilFailOp(op) }
func (c *Context) SetStencilDepthFailOp(op device.StencilOp) { c.Device.State.SetStencilDepthFailOp(op) }
func (c *Context) SetStencilPassOp(op device.StencilOp)      { c.Device.State.SetStencilPassOp(op) }

// --- Raster state ---

func (c *Context) SetCullMode(m device.CullMode)  { c.Device.State.SetCullMode(m) }
func (c *Context) SetFillMode(m device.FillMode)  { c.Device.State.SetFillMode(m) }
func (c *Context) SetFrontCCW(ccw bool)           { c.Device.State.SetFrontCCW(ccw) }
func (c *Context) SetDepthBias(bias float32)      { c.Device.State.SetDepthBias(bias) }
func (c *Context) SetScissorTestEnabled(e bool)   { c.Device.State.SetScissorTestEnabled(e) }

// --- Viewport / scissor / topology ---

func (c *Context) SetViewport(v device.Viewport)           { c.Device.State.SetViewport(v) }
func (c *Context) SetScissorRect(r device.ScissorRect)     { c.Device.State.SetScissorRect(r) }
func (c *Context) SetPrimitiveTopology(t device.PrimitiveTopology) {
	c.Device.State.SetPrimitiveTopology(t)
}

// --- Render targets ---

// SetRenderTarget binds slot to the texture that h names, or unbinds it
// when h is the zero handle.
func (c *Context) SetRenderTarget(slot int, h core.TextureHandle) bool {
	if h.IsZero() {
		c.Device.State.SetRenderTarget(slot, nil)
		return true
	}
	v, ok := c.Hub.Textures.Get(h)
	if !ok {
		c.logFailure("set_render_target", herrors.ErrInvalidHandle)
		return false
	}
	c.Device.State.SetRenderTarget(slot, v)
	return true
}

// SetDepthTarget binds (or, with the zero handle, unbinds) the
// depth/stencil render target.
func (c *Context) SetDepthTarget(h core.TextureHandle) bool {
	if h.IsZero() {
		c.Device.State.SetDepthTarget(nil)
		return true
	}
	v, ok := c.Hub.Textures.Get(h)
	if !ok {
		c.logFailure("set_depth_target", herrors.ErrInvalidHandle)
		return false
	}
	c.Device.State.SetDepthTarget(v)
	return true
}

// --- Projection stack ---

// PushProjection duplicates the current projection matrix onto the stack.
func (c *Context) PushProjection() { c.Device.Projection.Push() }

// PopProjection restores the matrix beneath the top of the projection
// stack. Returns false if the stack holds only its base entry.
func (c *Context) PopProjection() bool {
	if err := c.Device.Projection.Pop(); err != nil {
		c.logFailure("pop_projection", err)
		return false
	}
	return true
}

// SetProjection replaces the top of the projection stack.
func (c *Context) SetProjection(m device.Mat4) { c.Device.Projection.SetCurrent(m) }

// CurrentProjection returns the top of the projection stack.
func (c *Context) CurrentProjection() device.Mat4 { return c.Device.Projection.Current() }
