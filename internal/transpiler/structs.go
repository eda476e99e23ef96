package transpiler

import (
	"fmt"
	"strings"

	"github.com/gogpu/legacygfx/internal/shaderlang"
)

// structRole records how a struct is used by the shader's entry point, so
// Stage 5 knows whether to emit one spelling of it or an _In/_Out pair.
type structRole struct {
	usedAsVertexInput  bool
	usedAsVertexOutput bool
	usedAsFragmentIn   bool
}

// analyzeStructRoles is Stage 2 (the struct-classification half of it):
// a struct passed as the vertex shader's sole parameter is a vertex input;
// a struct returned by the vertex shader or taken as the fragment shader's
// sole parameter is a vertex-output/fragment-input (the same struct, in
// the legacy host language, typically plays both roles).
func analyzeStructRoles(prog *shaderlang.Program, structsByName map[string]shaderlang.StructDecl) map[string]*structRole {
	roles := make(map[string]*structRole)
	roleFor := func(name string) *structRole {
		r, ok := roles[name]
		if !ok {
			r = &structRole{}
			roles[name] = r
		}
		return r
	}
	for _, fn := range prog.Functions {
		if fn.Name != prog.MainFunction {
			continue
		}
		if len(fn.Params) == 1 {
			if _, ok := structsByName[string(fn.Params[0].Type)]; ok {
				r := roleFor(string(fn.Params[0].Type))
				if prog.Kind == shaderlang.ShaderKindVertex {
					r.usedAsVertexInput = true
				} else {
					r.usedAsFragmentIn = true
				}
			}
		}
		if _, ok := structsByName[string(fn.ReturnType)]; ok && prog.Kind == shaderlang.ShaderKindVertex {
			roleFor(string(fn.ReturnType)).usedAsVertexOutput = true
		}
	}
	return roles
}

// emitStructs is Stage 5. A struct used purely as a vertex input is
// emitted once, its semantic fields tagged with [[attribute(n)]] bound to
// a vertex-buffer stream. A struct used as the vertex shader's output and
// the fragment shader's input is split into two spellings sharing a base
// name: <Name>_Out (Metal [[position]]/[[user(...)]] interpolants, emitted
// by the vertex shader) and <Name>_In (identical field list, consumed by
// the fragment shader as [[stage_in]]) — MSL requires the fragment stage's
// stage_in struct to be distinct from the vertex stage's return type only
// in name, not layout, so the two are emitted with identical fields.
func emitStructs(structs []shaderlang.StructDecl, roles map[string]*structRole) (string, []VertexAttributeDescriptor) {
	var b strings.Builder
	var vertexDesc []VertexAttributeDescriptor

	for _, s := range structs {
		role := roles[s.Name]
		if role == nil {
			role = &structRole{}
		}

		if role.usedAsVertexInput {
			fmt.Fprintf(&b, "struct %s {\n", s.Name)
			for i, f := range s.Fields {
				fmt.Fprintf(&b, "    %s %s [[attribute(%d)]];\n", mslTypeFor(f.Type), f.Name, i)
				vertexDesc = append(vertexDesc, VertexAttributeDescriptor{
					Semantic: f.Semantic,
					Stream:   i,
					MSLType:  mslTypeFor(f.Type),
				})
			}
			b.WriteString("};\n\n")
			continue
		}

		if role.usedAsVertexOutput || role.usedAsFragmentIn {
			emitInterpolantStruct(&b, s, s.Name+"_Out", false)
			emitInterpolantStruct(&b, s, s.Name+"_In", true)
			continue
		}

		// Plain value struct: emitted verbatim, field types translated.
		fmt.Fprintf(&b, "struct %s {\n", s.Name)
		for _, f := range s.Fields {
			fmt.Fprintf(&b, "    %s %s;\n", mslTypeFor(f.Type), f.Name)
		}
		b.WriteString("};\n\n")
	}
	return b.String(), vertexDesc
}

func emitInterpolantStruct(b *strings.Builder, s shaderlang.StructDecl, name string, stageIn bool) {
	fmt.Fprintf(b, "struct %s {\n", name)
	userIndex := 0
	for _, f := range s.Fields {
		attr := semanticAttribute(f.Semantic, f.Semantic == shaderlang.SemanticPosition)
		if attr == "" {
			attr = fmt.Sprintf("[[user(locn%d)]]", userIndex)
			userIndex++
		}
		fmt.Fprintf(b, "    %s %s %s;\n", mslTypeFor(f.Type), f.Name, attr)
	}
	if stageIn {
		b.WriteString("}; // consumed with [[stage_in]]\n\n")
	} else {
		b.WriteString("};\n\n")
	}
}
