// Package core implements the handle table: the growable dense map from
// small non-zero integer handles to resource values that backs every
// externally visible GPU object (vertex buffers, index buffers, textures,
// stage surfaces, sampler states, swap-chain layers, shaders).
//
// A handle table is not thread-safe. All access goes through the device,
// which is the single writer for state-mutating operations (see package
// device); the table itself performs no locking.
package core
