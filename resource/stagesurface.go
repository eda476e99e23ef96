package resource

import (
	"fmt"

	"github.com/gogpu/legacygfx/herrors"
	"github.com/gogpu/legacygfx/types"
)

// StageSurface is a CPU-readable managed 2D texture: the destination of
// a GPU-to-CPU readback (e.g. render-target capture), backed by an
// MTLStorageModeManaged texture synchronized via a blit encoder before
// Map reads it.
//
// Volumetric stage surfaces are out of scope (Non-goals); their creation
// entry point returns a null handle rather than a StageSurface value.
type StageSurface struct {
	Backend any
	Format  types.HostPixelFormat
	Width   int
	Height  int
	mapped  bool
}

// Map returns the surface's contents after its owning device has issued
// a synchronize blit and waited for it. It is a contract violation to map
// a surface that is already mapped.
func (s *StageSurface) Map(read func() []byte) ([]byte, error) {
	if s.mapped {
		return nil, fmt.Errorf("%w: stage surface already mapped", herrors.ErrContractViolation)
	}
	s.mapped = true
	return read(), nil
}

// Unmap releases a previous Map call.
func (s *StageSurface) Unmap() {
	s.mapped = false
}
