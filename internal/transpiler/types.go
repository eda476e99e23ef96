package transpiler

import "github.com/gogpu/legacygfx/internal/shaderlang"

// UniformLayoutEntry records where one uniform landed in the emitted MSL
// uniforms struct.
type UniformLayoutEntry struct {
	Name       string
	Offset     int // bytes, from the start of the uniforms struct
	Size       int // bytes, excluding any trailing alignment padding
	ArrayCount int
}

// VertexAttributeDescriptor records one input-struct field's stream
// assignment, for the device to build a matching MTLVertexDescriptor.
type VertexAttributeDescriptor struct {
	Semantic   shaderlang.Semantic
	Stream     int // vertex-buffer stream index the field is sourced from
	Offset     int // byte offset into that stream's per-vertex record
	MSLType    string
}

// SamplerBindingDescriptor records the binding index assigned to one
// sampler/texture pair referenced by a shader's Sample/Load calls.
type SamplerBindingDescriptor struct {
	Name          string
	TextureIndex  int
	SamplerIndex  int
}

// Metadata is the Stage 7 record: everything beyond the MSL text itself
// that the device needs to finish wiring a compiled shader module into a
// render pipeline.
type Metadata struct {
	EntryPoint       string // the MSL function name newFunctionWithName: must look up
	UniformLayout    []UniformLayoutEntry
	UniformBlockSize int // total size of the uniforms struct, 16-byte aligned
	VertexDescriptor []VertexAttributeDescriptor
	Samplers         []SamplerBindingDescriptor
	StreamsConsumed  int // number of distinct vertex-buffer streams referenced
}

// Result is the transpiler's output: MSL source ready to hand to
// newLibraryWithSource:options:error:, plus its metadata record.
type Result struct {
	MSL      string
	Metadata Metadata
}
