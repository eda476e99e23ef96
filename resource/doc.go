// Package resource implements the six GPU resource kinds of the data
// model (spec.md §3): vertex buffers, index buffers, textures, stage
// surfaces, sampler states, and swap-chain layers. Each kind is a plain
// Go struct; package core's handle tables are the only thing that knows
// how to look one up from a handle, and package device is the only thing
// that mutates one (spec.md §5's single-writer rule).
//
// Per DESIGN NOTES §9 ("no multiple inheritance of resource kinds: model
// as a tagged variant per kind, one handle table per kind"), there is no
// shared base Resource type here; each kind owns exactly the state it
// needs, grounded on hal/metal/device.go's per-kind Buffer/Texture/
// Sampler Go types.
package resource
