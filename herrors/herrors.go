// Package herrors classifies the failure taxonomy of spec.md §7 as Go
// sentinel errors, grounded on hal/error.go's sentinel-error style.
//
// There is no cross-boundary error channel to the host: its ABI is
// strictly value-returning (spec.md §7). These sentinels exist so the
// Go-side implementation can classify a failure with errors.Is before
// abi translates it into the host's degenerate-return convention (null
// pointer, zero, or false).
package herrors

import "errors"

var (
	// ErrInvalidHandle marks a soft failure: the host passed an unknown
	// or already-released handle. Callers log and return a sentinel so
	// the host can continue.
	ErrInvalidHandle = errors.New("herrors: invalid handle")

	// ErrMalformedShader marks a shader transpiler failure: a parser
	// error, an unsupported type, or an unexpected token. Shader
	// creation returns a nil handle; the transpiler logs diagnostics.
	ErrMalformedShader = errors.New("herrors: malformed shader")

	// ErrPipelineCompilation marks a fatal failure: the render-pipeline
	// descriptor was structurally invalid and Metal refused to compile
	// it. There is no host recovery path for this.
	ErrPipelineCompilation = errors.New("herrors: pipeline compilation failed")

	// ErrUnsupportedOperation marks an operation the backend declares
	// out of scope (volume textures, cube render targets, GPU timers).
	// It is not an error condition for the host: callers silently no-op
	// or return a zero/false/null sentinel instead of propagating this.
	ErrUnsupportedOperation = errors.New("herrors: unsupported operation")

	// ErrContractViolation marks a fatal host bug: a draw issued with no
	// bound vertex buffer or shader, a copy whose destination is too
	// small, a dynamic-buffer flush against a static buffer, or a 2D
	// texture operation against a cube texture.
	ErrContractViolation = errors.New("herrors: contract violation")

	// ErrOutOfMemory marks a fatal failure allocating a GPU buffer or
	// texture.
	ErrOutOfMemory = errors.New("herrors: out of memory")
)

// IsFatal reports whether err must abort the process rather than degrade
// to a logged, sentinel-valued return (spec.md §7's propagation rule).
func IsFatal(err error) bool {
	return errors.Is(err, ErrPipelineCompilation) ||
		errors.Is(err, ErrContractViolation) ||
		errors.Is(err, ErrOutOfMemory)
}
