package transpiler

import "github.com/gogpu/legacygfx/internal/shaderlang"

// hlslToMSLType maps an HLSL-ish scalar/vector/matrix/resource type
// keyword to its MSL spelling.
var hlslToMSLType = map[shaderlang.TypeName]string{
	"float":   "float",
	"float2":  "float2",
	"float3":  "float3",
	"float4":  "float4",
	"float3x3": "float3x3",
	"float4x4": "float4x4",
	"int":     "int",
	"int2":    "int2",
	"int3":    "int3",
	"int4":    "int4",
	"uint":    "uint",
	"uint2":   "uint2",
	"uint3":   "uint3",
	"uint4":   "uint4",
	"bool":    "bool",
	"half":    "half",
	"half2":   "half2",
	"half3":   "half3",
	"half4":   "half4",
	"texture2d":   "texture2d<float>",
	"textureCube": "texturecube<float>",
	"sampler":     "sampler",
}

// mslTypeFor returns the MSL spelling for t, falling back to t's own text
// unchanged if it is a user struct name not present in the builtin map.
func mslTypeFor(t shaderlang.TypeName) string {
	if m, ok := hlslToMSLType[t]; ok {
		return m
	}
	return string(t)
}

// sizeOfType returns the size in bytes of a uniform scalar/vector/matrix
// type for the purposes of the Stage 1 layout pass. Unknown (struct) types
// return 0 and are handled by the caller as a hard error, since spec.md
// §4.4 only allows scalar/vector/matrix/array uniforms.
func sizeOfType(t shaderlang.TypeName) int {
	switch t {
	case "float", "int", "uint", "bool":
		return 4
	case "half":
		return 2
	case "float2", "int2", "uint2":
		return 8
	case "half2":
		return 4
	case "float3", "int3", "uint3":
		return 12
	case "half3":
		return 6
	case "float4", "int4", "uint4":
		return 16
	case "half4":
		return 8
	case "float3x3":
		return 48 // three float4-padded columns, matching MSL's column_major layout
	case "float4x4":
		return 64
	default:
		return 0
	}
}

// intrinsicRewrites maps an HLSL intrinsic function name to its MSL
// equivalent (spec.md §4.4 Stage 6).
var intrinsicRewrites = map[string]string{
	"ddx":  "dfdx",
	"ddy":  "dfdy",
	"frac": "fract",
	"lerp": "mix",
	"rsqrt": "rsqrt",
	"saturate": "saturate",
}

// unsupportedIntrinsics names HLSL intrinsics with no direct MSL
// equivalent; the transpiler rejects shaders that call them with
// herrors.ErrMalformedShader (spec.md §4.4 Stage 6: "clip unsupported").
var unsupportedIntrinsics = map[string]bool{
	"clip": true,
}

// semanticAttribute returns the MSL stage-in attribute string for a
// vertex-input semantic (e.g. "[[attribute(0)]]" keyed by stream, handled
// by the caller) or the built-in attribute for special semantics like
// SV_Position / vertex id.
func semanticAttribute(s shaderlang.Semantic, isVertexOutputPosition bool) string {
	switch {
	case isVertexOutputPosition:
		return "[[position]]"
	case s == shaderlang.SemanticVertexID:
		return "[[vertex_id]]"
	default:
		return ""
	}
}
