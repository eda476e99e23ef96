package resource

// IndexType is the width of one index in an index buffer.
type IndexType int

const (
	IndexTypeUint16 IndexType = iota
	IndexTypeUint32
)

// HostIndexFormat is the legacy host-API index format name. Its two
// members, despite the "SHORT"/"LONG" naming, map to the sizes their
// names suggest: GS_UNSIGNED_SHORT is the 16-bit format and
// GS_UNSIGNED_LONG is the 32-bit one. The source this backend was ported
// from had this backwards (spec.md §9's known defect); IndexTypeFor
// implements the corrected mapping.
type HostIndexFormat int

const (
	HostIndexUnsignedShort HostIndexFormat = iota
	HostIndexUnsignedLong
)

// IndexTypeFor converts a legacy host-API index format to the width this
// backend actually uses.
func IndexTypeFor(f HostIndexFormat) IndexType {
	switch f {
	case HostIndexUnsignedLong:
		return IndexTypeUint32
	default:
		return IndexTypeUint16
	}
}

// IndexBuffer is a single-stream index buffer resource.
type IndexBuffer struct {
	Backend any
	Type    IndexType
	Count   int
}

// Bytes returns the size in bytes of one index of ib's type.
func (t IndexType) Bytes() int {
	if t == IndexTypeUint32 {
		return 4
	}
	return 2
}
