// Package pipelinecache memoizes compiled Metal render pipeline state
// objects by descriptor (spec.md §4.5), so that repeated draw calls using
// the same shader/vertex-layout/blend-state/attachment-format combination
// never re-invoke newRenderPipelineStateWithDescriptor:error: — the
// single most expensive call on the draw path, grounded on
// hal/metal/device.go's CreateRenderPipeline.
package pipelinecache

import (
	"fmt"

	"github.com/gogpu/legacygfx/herrors"
)

// Key identifies one compiled pipeline's shape. Every field that affects
// MTLRenderPipelineDescriptor must be represented here, or two distinct
// pipelines will incorrectly collide on the same cache slot.
type Key struct {
	VertexShader   uint32
	FragmentShader uint32
	VertexLayout   string // canonical string form of the vertex descriptor
	BlendState     BlendState
	ColorFormats   [4]uint32 // 0 means "no attachment at this index"
	DepthFormat    uint32
	SampleCount    int
}

// BlendState is the subset of fixed-function blend state that changes
// which MTLRenderPipelineState is needed.
type BlendState struct {
	Enabled             bool
	SrcColor, DstColor   uint8
	SrcAlpha, DstAlpha   uint8
	ColorOp, AlphaOp     uint8
	WriteMask            uint8
}

func (k Key) String() string {
	return fmt.Sprintf("v%d/f%d/%s/%+v/%v/d%d/s%d",
		k.VertexShader, k.FragmentShader, k.VertexLayout, k.BlendState, k.ColorFormats, k.DepthFormat, k.SampleCount)
}

// Pipeline is the compiled result the cache stores. Backend holds the
// Metal MTLRenderPipelineState handle; the cache itself never interprets
// it.
type Pipeline struct {
	Backend any
}

// Compiler builds a Pipeline from a Key on a cache miss.
type Compiler func(Key) (*Pipeline, error)

// Cache memoizes Pipeline by Key. It is not safe for concurrent use,
// consistent with spec.md §5's single-writer device model.
type Cache struct {
	compile Compiler
	entries map[Key]*Pipeline
}

// New creates an empty cache that calls compile on a miss.
func New(compile Compiler) *Cache {
	return &Cache{compile: compile, entries: make(map[Key]*Pipeline)}
}

// Get returns the pipeline for key, compiling and storing it on first
// request. A compile failure is cached as a nil entry so a shader with a
// structurally invalid descriptor does not retry newRenderPipelineState
// on every subsequent draw call using it.
func (c *Cache) Get(key Key) (*Pipeline, error) {
	if p, ok := c.entries[key]; ok {
		if p == nil {
			return nil, fmt.Errorf("%w: pipeline %s previously failed to compile", herrors.ErrPipelineCompilation, key)
		}
		return p, nil
	}

	p, err := c.compile(key)
	if err != nil {
		c.entries[key] = nil
		return nil, err
	}
	c.entries[key] = p
	return p, nil
}

// Len reports the number of distinct descriptors seen, including failed
// compiles.
func (c *Cache) Len() int { return len(c.entries) }

// Clear evicts every cached pipeline (used on device loss / teardown).
func (c *Cache) Clear() { c.entries = make(map[Key]*Pipeline) }
