// Package legacygfx implements a fixed-function GPU rendering backend on
// top of Apple Metal 3: a shader transpiler (package transpiler) that
// lowers a pre-tokenized HLSL-like host shader language to MSL, and a
// device-state/draw-engine layer (package device) that turns the host's
// immediate-mode state setters and draw calls into Metal's
// command-buffer/encoder model.
//
// Open (this package) wires hal/metal's concrete device.Backend into a
// new abi.Context, which is the entry surface a host embedding this
// backend calls into from there; package core holds the handle tables;
// package resource holds the per-kind GPU resource types; package
// hal/metal holds the Objective-C interop and the concrete
// device.Backend implementation.
package wgpu
