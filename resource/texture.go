package resource

import (
	"fmt"

	"github.com/gogpu/legacygfx/herrors"
	"github.com/gogpu/legacygfx/types"
)

// TextureKind distinguishes a 2D texture from a cube texture. Volume
// (3D) textures are out of scope (spec.md Non-goals): their creation
// entry points exist in the host ABI but return a null handle.
type TextureKind int

const (
	TextureKind2D TextureKind = iota
	TextureKindCube
)

// MipLevel is one uploaded mip of a texture.
type MipLevel struct {
	Backend any // the Metal texture slice this level writes through
	Width   int
	Height  int
}

// Texture is a 2D or cube GPU texture resource.
type Texture struct {
	Backend  any // id<MTLTexture>
	Kind     TextureKind
	Format   types.HostPixelFormat
	Width    int
	Height   int
	MipCount int
	Mips     []MipLevel
}

// Upload writes data into one mip level. It is a contract violation to
// target a mip beyond MipCount, or to call this on a texture created
// without CPU write access.
func (t *Texture) Upload(level int, data []byte, upload func(m MipLevel, data []byte) error) error {
	if level < 0 || level >= len(t.Mips) {
		return fmt.Errorf("%w: mip level %d out of range [0,%d)", herrors.ErrContractViolation, level, len(t.Mips))
	}
	return upload(t.Mips[level], data)
}

// CopyRegion validates a region copy's destination bounds before the
// caller performs the actual blit. Metal silently corrupts memory (or
// the driver validation layer aborts) if the destination region exceeds
// the destination texture's dimensions at the given mip, so this backend
// checks it up front and reports a contract violation instead.
func (t *Texture) CopyRegion(dstLevel, dstX, dstY, width, height int) error {
	if dstLevel < 0 || dstLevel >= len(t.Mips) {
		return fmt.Errorf("%w: destination mip %d out of range", herrors.ErrContractViolation, dstLevel)
	}
	m := t.Mips[dstLevel]
	if dstX+width > m.Width || dstY+height > m.Height {
		return fmt.Errorf("%w: copy region (%d,%d)+(%d,%d) exceeds destination mip %dx%d",
			herrors.ErrContractViolation, dstX, dstY, width, height, m.Width, m.Height)
	}
	return nil
}

// IOSurfaceRef is an opaque IOSurface handle, as passed to
// open_from_iosurface. Querying its pixel format and dimensions requires
// Objective-C interop owned by the device layer; this package only
// records the derived host format.
type IOSurfaceRef uintptr

// FourCCToHostFormat maps an IOSurface FourCC pixel format code to the
// equivalent host pixel format, for open_from_iosurface (spec.md §6).
func FourCCToHostFormat(fourCC uint32) (types.HostPixelFormat, bool) {
	switch fourCC {
	case 0x42475241: // 'BGRA'
		return types.HostFormatBGRA, true
	default:
		return types.HostFormatUnknown, false
	}
}
