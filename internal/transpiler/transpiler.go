package transpiler

import (
	"fmt"
	"strings"

	"github.com/gogpu/legacygfx/internal/shaderlang"
)

// Compile runs the seven-stage pipeline over prog and returns the
// resulting MSL source plus its metadata record. It returns an error
// wrapping herrors.ErrMalformedShader if prog references an unsupported
// type or intrinsic.
func Compile(prog *shaderlang.Program) (*Result, error) {
	structsByName := make(map[string]shaderlang.StructDecl, len(prog.Structs))
	for _, s := range prog.Structs {
		structsByName[s.Name] = s
	}

	uniformLayout, blockSize, err := analyzeUniforms(prog.Uniforms)
	if err != nil {
		return nil, err
	}

	roles := analyzeStructRoles(prog, structsByName)

	samplerNames := make(map[string]bool, len(prog.Samplers))
	for _, s := range prog.Samplers {
		samplerNames[s.Name] = true
	}
	referenced := collectTextureReferences(prog, samplerNames)

	var out strings.Builder
	out.WriteString("#include <metal_stdlib>\n#include <metal_common>\nusing namespace metal;\n\n")
	out.WriteString(emitUniformsStruct(prog.Uniforms, uniformLayout))

	structsMSL, vertexDesc := emitStructs(prog.Structs, roles)
	out.WriteString(structsMSL)

	var samplers []SamplerBindingDescriptor
	idx := 0
	for _, s := range prog.Samplers {
		if !referenced[s.Name] {
			continue
		}
		samplers = append(samplers, SamplerBindingDescriptor{
			Name:         s.Name,
			TextureIndex: idx,
			SamplerIndex: idx,
		})
		idx++
	}

	ctx := &bodyContext{samplerNames: samplerNames, referenced: referenced}
	for _, fn := range prog.Functions {
		sig := emitSignature(prog, fn, structsByName, roles)
		body, err := emitFunction(fn, ctx)
		if err != nil {
			return nil, fmt.Errorf("function %q: %w", fn.Name, err)
		}
		out.WriteString(sig)
		out.WriteString(" {\n")
		out.WriteString(body)
		out.WriteString("\n}\n\n")
	}

	streams := 0
	for _, v := range vertexDesc {
		if v.Stream+1 > streams {
			streams = v.Stream + 1
		}
	}

	return &Result{
		MSL: out.String(),
		Metadata: Metadata{
			EntryPoint:       prog.MainFunction,
			UniformLayout:    uniformLayout,
			UniformBlockSize: blockSize,
			VertexDescriptor: vertexDesc,
			Samplers:         samplers,
			StreamsConsumed:  streams,
		},
	}, nil
}

// emitSignature renders a function's MSL signature. The shader's entry
// point gets the stage attribute and stage_in/buffer parameter
// decorations; helper functions are emitted as plain MSL functions.
func emitSignature(prog *shaderlang.Program, fn shaderlang.FunctionDecl, structsByName map[string]shaderlang.StructDecl, roles map[string]*structRole) string {
	returnType := mslTypeFor(fn.ReturnType)
	if prog.Kind == shaderlang.ShaderKindFragment && fn.Name == prog.MainFunction && fn.ReturnType == "float3" {
		// A fragment entry point returning float3 is widened to float4
		// with alpha forced to 1, since a Metal fragment function must
		// return a full RGBA color.
		returnType = "float4"
	}

	var params []string
	for _, p := range fn.Params {
		pType := mslTypeFor(p.Type)
		if _, isStruct := structsByName[string(p.Type)]; isStruct && fn.Name == prog.MainFunction {
			if prog.Kind == shaderlang.ShaderKindVertex {
				pType = string(p.Type) + " [[stage_in]]"
			} else {
				pType = string(p.Type) + "_In [[stage_in]]"
			}
		} else if isStruct && roles[string(p.Type)] != nil && roles[string(p.Type)].usedAsVertexOutput {
			pType = string(p.Type) + "_In [[stage_in]]"
		}
		params = append(params, fmt.Sprintf("%s %s", pType, p.Name))
	}

	if fn.Name != prog.MainFunction {
		return fmt.Sprintf("%s %s(%s)", returnType, fn.Name, strings.Join(params, ", "))
	}

	stageAttr := "vertex"
	if prog.Kind == shaderlang.ShaderKindFragment {
		stageAttr = "fragment"
	}
	rt := returnType
	if prog.Kind == shaderlang.ShaderKindVertex {
		if role, ok := roles[string(fn.ReturnType)]; ok && role.usedAsVertexOutput {
			rt = string(fn.ReturnType) + "_Out"
		}
	}
	return fmt.Sprintf("%s %s %s(%s)", stageAttr, rt, fn.Name, strings.Join(params, ", "))
}
