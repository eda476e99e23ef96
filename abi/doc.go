// Package abi is the host ABI shim (spec.md §4.6/§6): one exported
// function per host-visible capability, translating the host's flat
// handle/primitive calling convention into calls against package device
// and package core's handle tables, and translating a Go error back into
// the host's degenerate-return convention — a zero handle, false, or a
// null pointer — rather than an exception or an out-parameter error
// code, since the host ABI carries no error channel (spec.md §7).
//
// This package does not define //export C entry points: the C call
// boundary itself is out of scope (spec.md §1). It defines the Go-side
// capability surface a thin cgo shim would forward to, grounded on
// hal/gles/api.go's thin per-platform wrapper shape.
package abi
