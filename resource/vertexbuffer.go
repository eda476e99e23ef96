package resource

// Stream is one vertex-buffer stream: a single Metal buffer plus the
// stride of one vertex record within it. The host may bind up to the
// number of streams the shader's vertex descriptor consumes (spec.md
// §4.4's StreamsConsumed metadata field).
type Stream struct {
	Backend any // Metal id<MTLBuffer>, opaque to this package
	Stride  int
	Size    int
}

// VertexBuffer is a multi-stream vertex buffer resource.
//
// Static buffers are created once with immutable contents and never
// touched again. Dynamic buffers are backed by the transient buffer pool
// and are expected to be refilled once per frame; spec.md §9's
// known defect applies here unmodified: holding a dynamic buffer's
// contents across more than one frame without refilling it produces
// visible artifacts, since its backing storage may already have been
// handed to a different caller by the pool.
type VertexBuffer struct {
	Streams []Stream
	Dynamic bool
}

// BuffersForShader returns the backend handle for each stream index the
// shader's vertex descriptor consumes, in stream order, and reports false
// if the buffer does not provide enough streams to satisfy it.
func (vb *VertexBuffer) BuffersForShader(streamsConsumed int) ([]any, bool) {
	if streamsConsumed > len(vb.Streams) {
		return nil, false
	}
	out := make([]any, streamsConsumed)
	for i := 0; i < streamsConsumed; i++ {
		out[i] = vb.Streams[i].Backend
	}
	return out, true
}
