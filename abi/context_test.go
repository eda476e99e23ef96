package abi

import (
	"testing"

	"github.com/gogpu/legacygfx/device"
	"github.com/gogpu/legacygfx/internal/pipelinecache"
	"github.com/gogpu/legacygfx/internal/shaderlang"
	"github.com/gogpu/legacygfx/internal/transpiler"
	"github.com/gogpu/legacygfx/resource"
	"github.com/gogpu/legacygfx/types"
)

// fakeBackend is a minimal device.Backend double, exercising the abi
// layer's dispatch without a real Metal device.
type fakeBackend struct{}

func (f *fakeBackend) RegisterShader(id uint32, result *transpiler.Result) error { return nil }
func (f *fakeBackend) UnregisterShader(id uint32)                               {}
func (f *fakeBackend) BeginRenderPass(colorTargets [4]any, depthTarget any, clears []device.PendingClear) (any, error) {
	return "encoder", nil
}
func (f *fakeBackend) EndRenderPass(encoder any) {}
func (f *fakeBackend) CompilePipeline(key pipelinecache.Key) (*pipelinecache.Pipeline, error) {
	return &pipelinecache.Pipeline{Backend: "pipeline"}, nil
}
func (f *fakeBackend) BindPipeline(encoder any, pipeline *pipelinecache.Pipeline, ds device.DepthStencilState, raster device.RasterState) {
}
func (f *fakeBackend) BindVertexBuffers(encoder any, buffers []any)                         {}
func (f *fakeBackend) BindUniforms(encoder any, buffer any, offset int)                     {}
func (f *fakeBackend) BindTextures(encoder any, textures []any, samplers []any)              {}
func (f *fakeBackend) SetViewportAndScissor(encoder any, v device.Viewport, r device.ScissorRect, scissorEnabled bool) {
}
func (f *fakeBackend) Draw(encoder any, topology device.PrimitiveTopology, start, count int) {}
func (f *fakeBackend) DrawIndexed(encoder any, topology device.PrimitiveTopology, indexBuffer any, indexIs32Bit bool, start, count int) {
}
func (f *fakeBackend) AllocTransientBuffer(size int) any                           { return size }
func (f *fakeBackend) WriteToBuffer(buffer any, offset int, data []byte)           {}
func (f *fakeBackend) SynthesizeClear(colorTargets [4]any, depthTarget any, clears []device.PendingClear) {
}
func (f *fakeBackend) PresentDrawable(target any) {}
func (f *fakeBackend) WaitIdle()                  {}

func newTestContext() *Context {
	return NewContext(&fakeBackend{}, nil)
}

func simpleVertexProgram() *shaderlang.Program {
	return &shaderlang.Program{
		Kind: shaderlang.ShaderKindVertex,
		Structs: []shaderlang.StructDecl{
			{Name: "VSOutput", Fields: []shaderlang.StructField{
				{Name: "position", Type: "float4", Semantic: shaderlang.SemanticPosition},
			}},
		},
		Functions: []shaderlang.FunctionDecl{
			{
				Name:       "vs_main",
				ReturnType: "VSOutput",
				Body: []shaderlang.Token{
					{Kind: shaderlang.TokenName, Text: "return"},
					{Kind: shaderlang.TokenSpaceTab, Text: " "},
					{Kind: shaderlang.TokenName, Text: "out"},
					{Kind: shaderlang.TokenOther, Text: ";"},
				},
			},
		},
		MainFunction: "vs_main",
	}
}

func TestCreateShaderRegistersCompiledModule(t *testing.T) {
	c := newTestContext()
	h := c.CreateShader(simpleVertexProgram())
	if h.IsZero() {
		t.Fatal("CreateShader returned the zero handle for a well-formed program")
	}
	if c.Hub.Shaders.Len() != 1 {
		t.Fatalf("Shaders.Len() = %d, want 1", c.Hub.Shaders.Len())
	}
}

func TestCreateShaderRejectsMalformedProgram(t *testing.T) {
	c := newTestContext()
	prog := &shaderlang.Program{
		Kind: shaderlang.ShaderKindVertex,
		Functions: []shaderlang.FunctionDecl{
			{Name: "vs_main", ReturnType: "SomeUnknownStruct"},
		},
		MainFunction: "vs_main",
	}
	h := c.CreateShader(prog)
	if !h.IsZero() {
		t.Fatal("CreateShader returned a non-zero handle for a malformed program")
	}
}

func TestDestroyShaderOfUnknownHandleIsSoftFailure(t *testing.T) {
	c := newTestContext()
	h := c.Hub.Shaders.Insert(nil)
	c.DestroyShader(h)
	c.DestroyShader(h)
}

func TestVertexBufferLifecycleAndDraw(t *testing.T) {
	c := newTestContext()
	vertex := c.CreateShader(simpleVertexProgram())
	fragment := c.CreateShader(&shaderlang.Program{
		Kind: shaderlang.ShaderKindFragment,
		Functions: []shaderlang.FunctionDecl{
			{Name: "fs_main", ReturnType: "float4"},
		},
		MainFunction: "fs_main",
	})
	if !c.SetShaderProgram(vertex, fragment) {
		t.Fatal("SetShaderProgram failed for two well-formed shaders")
	}

	vb := c.CreateVertexBuffer(&resource.VertexBuffer{Streams: []resource.Stream{{Backend: "buf0"}}})
	if !c.Draw(vb, nil, 0, 3) {
		t.Fatal("Draw failed against a valid program and vertex buffer")
	}
	c.DestroyVertexBuffer(vb)
}

func TestDrawRejectsUnknownVertexBufferHandle(t *testing.T) {
	c := newTestContext()
	vertex := c.CreateShader(simpleVertexProgram())
	fragment := c.CreateShader(&shaderlang.Program{
		Kind:         shaderlang.ShaderKindFragment,
		Functions:    []shaderlang.FunctionDecl{{Name: "fs_main", ReturnType: "float4"}},
		MainFunction: "fs_main",
	})
	c.SetShaderProgram(vertex, fragment)

	bogus := c.CreateVertexBuffer(&resource.VertexBuffer{})
	c.DestroyVertexBuffer(bogus)
	if c.Draw(bogus, nil, 0, 3) {
		t.Fatal("Draw succeeded against a destroyed vertex buffer handle")
	}
}

func TestStateSettersForwardToDeviceState(t *testing.T) {
	c := newTestContext()
	c.SetCullMode(device.CullNone)
	if c.Device.State.Raster.CullMode != device.CullNone {
		t.Error("SetCullMode did not update device state")
	}
	c.SetBlendEnabled(true)
	if !c.Device.State.Blend.Enabled {
		t.Error("SetBlendEnabled did not update device state")
	}
}

func TestPresentSynthesizesClearThroughAbiLayer(t *testing.T) {
	c := newTestContext()
	c.Clear(device.ClearColor, 1, 0, 0, 1, 1, 0)
	layer := c.CreateSwapChainLayer(&resource.SwapChainLayer{Format: types.HostFormatRGBA})
	if !c.Present(layer) {
		t.Fatal("Present failed against a valid swap-chain layer handle")
	}
}

func TestProjectionPushPopThroughAbiLayer(t *testing.T) {
	c := newTestContext()
	c.SetProjection(device.Identity4())
	c.PushProjection()
	if !c.PopProjection() {
		t.Fatal("PopProjection failed after a matching Push")
	}
	if c.PopProjection() {
		t.Fatal("PopProjection succeeded on the base entry")
	}
}
