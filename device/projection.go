package device

import "github.com/gogpu/legacygfx/herrors"

// Mat4 is a column-major 4x4 matrix, matching Metal's own convention.
type Mat4 [16]float32

// Identity4 returns the 4x4 identity matrix.
func Identity4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Ortho builds a column-major orthographic projection matrix mapping
// [left,right]x[bottom,top]x[near,far] onto Metal's [-1,1]x[-1,1]x[0,1]
// clip volume.
func Ortho(left, right, bottom, top, near, far float32) Mat4 {
	rl := right - left
	tb := top - bottom
	fn := far - near
	return Mat4{
		2 / rl, 0, 0, 0,
		0, 2 / tb, 0, 0,
		0, 0, 1 / fn, 0,
		-(right + left) / rl, -(top + bottom) / tb, -near / fn, 1,
	}
}

// Frustum builds a column-major perspective projection matrix for the
// frustum [left,right]x[bottom,top] at the near plane, extending to far.
func Frustum(left, right, bottom, top, near, far float32) Mat4 {
	rl := right - left
	tb := top - bottom
	fn := far - near
	return Mat4{
		2 * near / rl, 0, 0, 0,
		0, 2 * near / tb, 0, 0,
		(right + left) / rl, (top + bottom) / tb, -far / fn, -1,
		0, 0, -far * near / fn, 0,
	}
}

// ProjectionStack is a LIFO of projection matrices (spec.md §3's
// ProjectionStack entity): push_projection/pop_projection bracket a
// nested transform the same way the legacy API's push/pop matrix calls
// did.
type ProjectionStack struct {
	stack []Mat4
}

// NewProjectionStack returns a stack seeded with a single identity
// matrix, so Current is always valid even before the first Push.
func NewProjectionStack() *ProjectionStack {
	return &ProjectionStack{stack: []Mat4{Identity4()}}
}

// Push duplicates the current matrix onto the stack, so the caller can
// mutate the new top without disturbing the matrix beneath it.
func (p *ProjectionStack) Push() {
	p.stack = append(p.stack, p.Current())
}

// Pop discards the current matrix, restoring the one beneath it. It is a
// contract violation to pop the stack's last remaining entry.
func (p *ProjectionStack) Pop() error {
	if len(p.stack) <= 1 {
		return herrors.ErrContractViolation
	}
	p.stack = p.stack[:len(p.stack)-1]
	return nil
}

// Current returns the matrix on top of the stack.
func (p *ProjectionStack) Current() Mat4 {
	return p.stack[len(p.stack)-1]
}

// SetCurrent overwrites the top-of-stack matrix, as set_ortho/set_frustum
// do.
func (p *ProjectionStack) SetCurrent(m Mat4) {
	p.stack[len(p.stack)-1] = m
}
