package device

import (
	"errors"
	"testing"

	"github.com/gogpu/legacygfx/herrors"
	"github.com/gogpu/legacygfx/internal/pipelinecache"
	"github.com/gogpu/legacygfx/internal/transpiler"
	"github.com/gogpu/legacygfx/resource"
	"github.com/gogpu/legacygfx/types"
)

// fakeBackend records the calls Device makes so tests can assert on
// sequencing without a real Metal device.
type fakeBackend struct {
	passesOpened   int
	draws          int
	presented      bool
	waitedIdle     int
	synthesizedClears int
	clearsSeenAtOpen  []PendingClear
}

func (f *fakeBackend) RegisterShader(id uint32, result *transpiler.Result) error { return nil }
func (f *fakeBackend) UnregisterShader(id uint32)                               {}
func (f *fakeBackend) BeginRenderPass(colorTargets [4]any, depthTarget any, clears []PendingClear) (any, error) {
	f.passesOpened++
	f.clearsSeenAtOpen = clears
	return "encoder", nil
}
func (f *fakeBackend) EndRenderPass(encoder any) {}
func (f *fakeBackend) CompilePipeline(key pipelinecache.Key) (*pipelinecache.Pipeline, error) {
	return &pipelinecache.Pipeline{Backend: "pipeline"}, nil
}
func (f *fakeBackend) BindPipeline(encoder any, pipeline *pipelinecache.Pipeline, ds DepthStencilState, raster RasterState) {
}
func (f *fakeBackend) BindVertexBuffers(encoder any, buffers []any) {}
func (f *fakeBackend) BindUniforms(encoder any, buffer any, offset int)            {}
func (f *fakeBackend) BindTextures(encoder any, textures []any, samplers []any)    {}
func (f *fakeBackend) SetViewportAndScissor(encoder any, v Viewport, r ScissorRect, scissorEnabled bool) {
}
func (f *fakeBackend) Draw(encoder any, topology PrimitiveTopology, start, count int) { f.draws++ }
func (f *fakeBackend) DrawIndexed(encoder any, topology PrimitiveTopology, indexBuffer any, indexIs32Bit bool, start, count int) {
	f.draws++
}
func (f *fakeBackend) AllocTransientBuffer(size int) any       { return size }
func (f *fakeBackend) WriteToBuffer(buffer any, offset int, data []byte) {}
func (f *fakeBackend) SynthesizeClear(colorTargets [4]any, depthTarget any, clears []PendingClear) {
	f.synthesizedClears++
}
func (f *fakeBackend) PresentDrawable(target any) { f.presented = true }
func (f *fakeBackend) WaitIdle()                  { f.waitedIdle++ }

func testProgram() *Program {
	return &Program{
		Vertex:     &transpiler.Result{Metadata: transpiler.Metadata{StreamsConsumed: 1}},
		Fragment:   &transpiler.Result{},
		VertexID:   1,
		FragmentID: 2,
	}
}

func TestDrawRejectsMissingProgram(t *testing.T) {
	d := New(&fakeBackend{}, nil)
	vb := &resource.VertexBuffer{Streams: []resource.Stream{{}}}
	if err := d.Draw(vb, nil, 0, 3); !errors.Is(err, herrors.ErrContractViolation) {
		t.Fatalf("Draw with no program: err = %v, want ErrContractViolation", err)
	}
}

func TestDrawRejectsMissingVertexBuffer(t *testing.T) {
	d := New(&fakeBackend{}, nil)
	d.SetProgram(testProgram())
	if err := d.Draw(nil, nil, 0, 3); !errors.Is(err, herrors.ErrContractViolation) {
		t.Fatalf("Draw with no vertex buffer: err = %v, want ErrContractViolation", err)
	}
}

func TestDrawOpensPassAndIssuesDrawCall(t *testing.T) {
	backend := &fakeBackend{}
	d := New(backend, nil)
	d.SetProgram(testProgram())
	vb := &resource.VertexBuffer{Streams: []resource.Stream{{}}}

	if err := d.Draw(vb, nil, 0, 3); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if backend.passesOpened != 1 {
		t.Errorf("passesOpened = %d, want 1", backend.passesOpened)
	}
	if backend.draws != 1 {
		t.Errorf("draws = %d, want 1", backend.draws)
	}

	// A second draw against the same target set reuses the open pass.
	if err := d.Draw(vb, nil, 0, 3); err != nil {
		t.Fatalf("second Draw: %v", err)
	}
	if backend.passesOpened != 1 {
		t.Errorf("passesOpened after second draw = %d, want 1 (pass should be reused)", backend.passesOpened)
	}
}

func TestClearIsConsumedByMatchingTargetOnly(t *testing.T) {
	backend := &fakeBackend{}
	d := New(backend, nil)
	d.SetProgram(testProgram())
	vb := &resource.VertexBuffer{Streams: []resource.Stream{{}}}

	d.Clear(ClearColor, types.Color{R: 1}, 1, 0)
	if d.Clears.Len() != 1 {
		t.Fatalf("Clears.Len() = %d, want 1", d.Clears.Len())
	}

	if err := d.Draw(vb, nil, 0, 3); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if d.Clears.Len() != 0 {
		t.Errorf("Clears.Len() after matching draw = %d, want 0", d.Clears.Len())
	}
	if len(backend.clearsSeenAtOpen) != 1 {
		t.Errorf("BeginRenderPass saw %d clears, want 1", len(backend.clearsSeenAtOpen))
	}
}

func TestPresentSynthesizesClearWhenNoDrawsIssued(t *testing.T) {
	backend := &fakeBackend{}
	d := New(backend, nil)

	d.Clear(ClearColor, types.Color{R: 1}, 1, 0)
	d.Present("layer")

	if backend.synthesizedClears != 1 {
		t.Errorf("synthesizedClears = %d, want 1", backend.synthesizedClears)
	}
	if !backend.presented {
		t.Error("PresentDrawable was not called")
	}
}

func TestPresentDoesNotSynthesizeClearWhenDrawsIssued(t *testing.T) {
	backend := &fakeBackend{}
	d := New(backend, nil)
	d.SetProgram(testProgram())
	vb := &resource.VertexBuffer{Streams: []resource.Stream{{}}}

	d.Clear(ClearColor, types.Color{R: 1}, 1, 0)
	if err := d.Draw(vb, nil, 0, 3); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	d.Present("layer")

	if backend.synthesizedClears != 0 {
		t.Errorf("synthesizedClears = %d, want 0 (a real draw already flushed the clear)", backend.synthesizedClears)
	}
}

func TestFlushWaitsIdle(t *testing.T) {
	backend := &fakeBackend{}
	d := New(backend, nil)
	d.Flush()
	if backend.waitedIdle != 1 {
		t.Errorf("waitedIdle = %d, want 1", backend.waitedIdle)
	}
}
