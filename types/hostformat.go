package types

// HostPixelFormat is the legacy host-API pixel format name, as the
// device-state and resource layers receive it from the host. It is kept
// distinct from TextureFormat (this module's WebGPU-shaped enum) because
// the host's format vocabulary predates WebGPU's and has no one-to-one
// correspondence with it (A8Unorm, R16Unorm, and RGBA16Unorm have no
// WebGPU equivalent at all).
type HostPixelFormat int

const (
	HostFormatUnknown HostPixelFormat = iota

	HostFormatA8
	HostFormatR8
	HostFormatRGBA
	HostFormatBGRX
	HostFormatBGRA
	HostFormatR10G10B10A2
	HostFormatRGBA16
	HostFormatR16
	HostFormatRGBA16F
	HostFormatRGBA32F
	HostFormatRG16F
	HostFormatRG32F
	HostFormatR16F
	HostFormatR32F
	HostFormatDXT1
	HostFormatDXT3
	HostFormatDXT5
	HostFormatR8G8

	// Depth/stencil formats.
	HostFormatZ16
	HostFormatZ24S8
	HostFormatZ32F
	HostFormatZ32FS8X24
)

// String returns the host API's own spelling of f, matching spec.md §6's
// format table.
func (f HostPixelFormat) String() string {
	switch f {
	case HostFormatA8:
		return "A8"
	case HostFormatR8:
		return "R8"
	case HostFormatRGBA:
		return "RGBA"
	case HostFormatBGRX:
		return "BGRX"
	case HostFormatBGRA:
		return "BGRA"
	case HostFormatR10G10B10A2:
		return "R10G10B10A2"
	case HostFormatRGBA16:
		return "RGBA16"
	case HostFormatR16:
		return "R16"
	case HostFormatRGBA16F:
		return "RGBA16F"
	case HostFormatRGBA32F:
		return "RGBA32F"
	case HostFormatRG16F:
		return "RG16F"
	case HostFormatRG32F:
		return "RG32F"
	case HostFormatR16F:
		return "R16F"
	case HostFormatR32F:
		return "R32F"
	case HostFormatDXT1:
		return "DXT1"
	case HostFormatDXT3:
		return "DXT3"
	case HostFormatDXT5:
		return "DXT5"
	case HostFormatR8G8:
		return "R8G8"
	case HostFormatZ16:
		return "Z16"
	case HostFormatZ24S8:
		return "Z24_S8"
	case HostFormatZ32F:
		return "Z32F"
	case HostFormatZ32FS8X24:
		return "Z32F_S8X24"
	default:
		return "Unknown"
	}
}

// IsDepthStencil reports whether f names a depth or depth/stencil format.
func (f HostPixelFormat) IsDepthStencil() bool {
	switch f {
	case HostFormatZ16, HostFormatZ24S8, HostFormatZ32F, HostFormatZ32FS8X24:
		return true
	default:
		return false
	}
}

// IsCompressed reports whether f names a block-compressed format.
func (f HostPixelFormat) IsCompressed() bool {
	switch f {
	case HostFormatDXT1, HostFormatDXT3, HostFormatDXT5:
		return true
	default:
		return false
	}
}
