package core

import "log/slog"

// Hub aggregates one Table per resource kind named in the data model
// (spec.md §3), so that a device has a single place to insert, look up,
// and release any externally visible GPU object regardless of kind.
//
// The per-kind split is deliberate (DESIGN NOTES §9: "tagged-variant per
// kind, each kind a distinct handle table") rather than one polymorphic
// table keyed by a tagged union, so that Go's type system keeps a
// TextureHandle from ever being accepted where a ShaderHandle belongs.
type Hub struct {
	VertexBuffers    *Table[any, vertexBufferMarker]
	IndexBuffers     *Table[any, indexBufferMarker]
	Textures         *Table[any, textureMarker]
	StageSurfaces    *Table[any, stageSurfaceMarker]
	Samplers         *Table[any, samplerMarker]
	SwapChainLayers  *Table[any, swapChainLayerMarker]
	Shaders          *Table[any, shaderMarker]
}

// NewHub creates an empty Hub whose tables log soft warnings through log.
func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		VertexBuffers:   NewTable[any, vertexBufferMarker](log),
		IndexBuffers:    NewTable[any, indexBufferMarker](log),
		Textures:        NewTable[any, textureMarker](log),
		StageSurfaces:   NewTable[any, stageSurfaceMarker](log),
		Samplers:        NewTable[any, samplerMarker](log),
		SwapChainLayers: NewTable[any, swapChainLayerMarker](log),
		Shaders:         NewTable[any, shaderMarker](log),
	}
}

// ResourceCounts reports the number of live entries per kind, keyed by
// name, for diagnostics.
func (h *Hub) ResourceCounts() map[string]int {
	return map[string]int{
		"vertex_buffers":    h.VertexBuffers.Len(),
		"index_buffers":     h.IndexBuffers.Len(),
		"textures":          h.Textures.Len(),
		"stage_surfaces":    h.StageSurfaces.Len(),
		"samplers":          h.Samplers.Len(),
		"swap_chain_layers": h.SwapChainLayers.Len(),
		"shaders":           h.Shaders.Len(),
	}
}
