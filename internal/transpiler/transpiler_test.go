package transpiler

import (
	"strings"
	"testing"

	"github.com/gogpu/legacygfx/internal/shaderlang"
)

func tok(text string) shaderlang.Token {
	kind := shaderlang.TokenOther
	if len(text) > 0 && (text[0] == '_' || (text[0] >= 'a' && text[0] <= 'z') || (text[0] >= 'A' && text[0] <= 'Z')) {
		kind = shaderlang.TokenName
	}
	return shaderlang.Token{Kind: kind, Text: text}
}

func TestCompileSimpleVertexShader(t *testing.T) {
	prog := &shaderlang.Program{
		Kind: shaderlang.ShaderKindVertex,
		Uniforms: []shaderlang.UniformDecl{
			{Name: "mvp", Type: "float4x4"},
		},
		Structs: []shaderlang.StructDecl{
			{Name: "VSInput", Fields: []shaderlang.StructField{
				{Name: "position", Type: "float3", Semantic: shaderlang.SemanticPosition},
			}},
			{Name: "VSOutput", Fields: []shaderlang.StructField{
				{Name: "position", Type: "float4", Semantic: shaderlang.SemanticPosition},
			}},
		},
		Functions: []shaderlang.FunctionDecl{
			{
				Name:       "vs_main",
				ReturnType: "VSOutput",
				Params:     []shaderlang.Param{{Name: "in", Type: "VSInput"}},
				Body: []shaderlang.Token{
					tok("VSOutput"), tok(" "), tok("out"), tok(";"), tok("\n"),
					tok("out"), tok("."), tok("position"), tok("="), tok("mul"), tok("("), tok("mvp"), tok(","), tok(" "), tok("float4"), tok("("), tok("in"), tok("."), tok("position"), tok(","), tok(" "), tok("1.0"), tok(")"), tok(")"), tok(";"), tok("\n"),
					tok("return"), tok(" "), tok("out"), tok(";"),
				},
			},
		},
		MainFunction: "vs_main",
	}

	result, err := Compile(prog)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if result.Metadata.UniformBlockSize != 64 {
		t.Errorf("UniformBlockSize = %d, want 64", result.Metadata.UniformBlockSize)
	}
	if len(result.Metadata.VertexDescriptor) != 1 {
		t.Fatalf("VertexDescriptor = %v, want 1 entry", result.Metadata.VertexDescriptor)
	}
	if !strings.Contains(result.MSL, "vertex VSOutput_Out vs_main") {
		t.Errorf("MSL missing vertex entry point signature:\n%s", result.MSL)
	}
	if !strings.Contains(result.MSL, "(mvp * float4(in.position, 1.0))") {
		t.Errorf("MSL missing rewritten mul() call:\n%s", result.MSL)
	}
}

func TestCompileRejectsClip(t *testing.T) {
	prog := &shaderlang.Program{
		Kind: shaderlang.ShaderKindFragment,
		Functions: []shaderlang.FunctionDecl{
			{
				Name:       "ps_main",
				ReturnType: "float4",
				Body:       []shaderlang.Token{tok("clip"), tok("("), tok("alpha"), tok(")"), tok(";")},
			},
		},
		MainFunction: "ps_main",
	}
	if _, err := Compile(prog); err == nil {
		t.Fatal("Compile: expected error for clip() call, got nil")
	}
}

func TestCompileRejectsUnsupportedUniformType(t *testing.T) {
	prog := &shaderlang.Program{
		Kind: shaderlang.ShaderKindVertex,
		Uniforms: []shaderlang.UniformDecl{
			{Name: "bogus", Type: "SomeUnknownStruct"},
		},
		MainFunction: "vs_main",
	}
	if _, err := Compile(prog); err == nil {
		t.Fatal("Compile: expected error for unsupported uniform type, got nil")
	}
}
