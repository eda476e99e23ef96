package resource

import (
	"fmt"

	"github.com/gogpu/legacygfx/herrors"
	"github.com/gogpu/legacygfx/types"
)

// SwapChainLayer wraps a CAMetalLayer and its current drawable. Unlike a
// render-target texture, its backing storage changes every frame:
// AcquireNext fetches a fresh drawable and its texture from the layer, and
// Present drops it again, rather than reusing one texture across frames.
type SwapChainLayer struct {
	Backend any // CAMetalLayer*
	Format  types.HostPixelFormat
	Width   int
	Height  int

	currentDrawable any // id<CAMetalDrawable>, nil between AcquireNext calls
}

// AcquireNext fetches the layer's next drawable and its backing texture.
// It is a contract violation to call this again before the previous
// drawable has been presented or discarded.
func (l *SwapChainLayer) AcquireNext(acquire func() (drawable, texture any)) (texture any, err error) {
	if l.currentDrawable != nil {
		return nil, fmt.Errorf("%w: swap-chain layer already has an unpresented drawable", herrors.ErrContractViolation)
	}
	drawable, tex := acquire()
	l.currentDrawable = drawable
	return tex, nil
}

// Present clears the acquired drawable, after the caller has scheduled
// its presentation on the command buffer.
func (l *SwapChainLayer) Present() {
	l.currentDrawable = nil
}

// Drawable returns the currently acquired drawable, or nil if none is
// outstanding. The backend uses this at present() time to schedule
// presentDrawable: without reaching into this package's internals.
func (l *SwapChainLayer) Drawable() any {
	return l.currentDrawable
}
