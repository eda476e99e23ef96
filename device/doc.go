// Package device implements the device-state block and draw engine
// (spec.md §4.6): the single-writer translation layer from the host's
// immediate-mode state setters and draw calls onto Metal's stateless
// command-buffer/encoder model.
//
// Device owns the transient buffer pool (package transientpool) and the
// pipeline state cache (package pipelinecache). The handle tables
// (package core) and the resource values they point at (package
// resource) are held by abi.Context's Hub, not by Device.
// It is not safe for concurrent use beyond the one exception spec.md §5
// carves out: command-buffer completion handlers touching the transient
// pool from an arbitrary driver thread.
package device
