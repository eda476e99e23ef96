package transpiler

import (
	"fmt"
	"strings"

	"github.com/gogpu/legacygfx/herrors"
	"github.com/gogpu/legacygfx/internal/shaderlang"
)

// alignUp16 rounds n up to the next multiple of 16, MSL's constant-address-
// space struct alignment rule for a uniforms block.
func alignUp16(n int) int {
	return (n + 15) &^ 15
}

// analyzeUniforms is Stage 1: walk the declared uniform list in order and
// assign each a 16-byte-aligned offset. Vectors/scalars smaller than 16
// bytes are packed back-to-back as long as they fit within the current
// 16-byte slot; a field that would straddle a 16-byte boundary starts a
// new slot instead, matching MSL's own uniform packing rule.
func analyzeUniforms(uniforms []shaderlang.UniformDecl) ([]UniformLayoutEntry, int, error) {
	var layout []UniformLayoutEntry
	offset := 0
	for _, u := range uniforms {
		size := sizeOfType(u.Type)
		if size == 0 {
			return nil, 0, fmt.Errorf("%w: uniform %q has unsupported type %q", herrors.ErrMalformedShader, u.Name, u.Type)
		}
		count := u.ArrayCount
		if count < 1 {
			count = 1
		}
		elemSize := size
		if count > 1 {
			// Array elements are each rounded up to a 16-byte stride.
			elemSize = alignUp16(size)
		}
		total := elemSize * count

		slotRemaining := 16 - offset%16
		if count == 1 && size <= slotRemaining && slotRemaining != 16 {
			// Packs into the remainder of the current 16-byte slot.
		} else if offset%16 != 0 {
			offset = alignUp16(offset)
		}

		layout = append(layout, UniformLayoutEntry{
			Name:       u.Name,
			Offset:     offset,
			Size:       size,
			ArrayCount: u.ArrayCount,
		})
		offset += total
	}
	return layout, alignUp16(offset), nil
}

// emitUniformsStruct is Stage 4: render the uniforms struct declaration in
// original declaration order, one field per UniformLayoutEntry, with an
// explicit [[id]] omitted since this targets the constant address space
// rather than an argument buffer.
func emitUniformsStruct(uniforms []shaderlang.UniformDecl, layout []UniformLayoutEntry) string {
	if len(uniforms) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("struct Uniforms {\n")
	for i, u := range uniforms {
		mslType := mslTypeFor(u.Type)
		if u.ArrayCount > 1 {
			fmt.Fprintf(&b, "    %s %s[%d];\n", mslType, u.Name, u.ArrayCount)
		} else {
			fmt.Fprintf(&b, "    %s %s;\n", mslType, u.Name)
		}
		_ = layout[i].Offset // offsets are reported in Metadata, not spelled out in MSL
	}
	b.WriteString("};\n\n")
	return b.String()
}
