package shaderlang

// TypeName is a raw HLSL-ish type spelling as the host's parser recorded
// it (e.g. "float4", "texture2d", "min16float3"). The transpiler's emit
// stage is responsible for translating these into MSL spellings.
type TypeName string

// UniformDecl describes one uniform as the host's parser recorded it.
type UniformDecl struct {
	Name          string
	Type          TypeName
	Semantic      Semantic
	ConstQualified bool
	Default       []byte
	ArrayCount    int // 0 or 1 means scalar, >1 means an array of that many elements
}

// StructField describes one field of a host-declared struct.
type StructField struct {
	Name     string
	Type     TypeName
	Semantic Semantic
}

// StructDecl describes a host-declared struct.
type StructDecl struct {
	Name   string
	Fields []StructField
}

// Param describes one function parameter as parsed: either a struct type
// (by name) or a scalar/vector type.
type Param struct {
	Name string
	Type TypeName
}

// FunctionDecl describes a host-declared function, including the token
// range of its body for the body-walk stages (shaderlang.Token is the
// shared token vocabulary between the lexer collaborator and this
// package).
type FunctionDecl struct {
	Name       string
	ReturnType TypeName
	Params     []Param
	Body       []Token
}

// SamplerDecl describes one legacy sampler-info declaration.
type SamplerDecl struct {
	Name          string
	AddressU      AddressMode
	AddressV      AddressMode
	AddressW      AddressMode
	Filter        FilterMode
	MaxAnisotropy int
	BorderColor   uint32 // packed RGBA8
}

// AddressMode mirrors the legacy sampler-info address mode enum.
type AddressMode int

const (
	AddressClamp AddressMode = iota
	AddressWrap
	AddressMirror
	AddressBorder
)

// FilterMode mirrors the legacy sampler-info filter enum.
type FilterMode int

const (
	FilterPoint FilterMode = iota
	FilterLinear
	FilterAnisotropic
)

// Program is the pre-tokenized intermediate representation the host's
// lexer/parser collaborator hands to the transpiler (spec.md §4.4).
type Program struct {
	Kind      ShaderKind
	Uniforms  []UniformDecl
	Structs   []StructDecl
	Functions []FunctionDecl
	Samplers  []SamplerDecl
	// MainFunction names which entry of Functions is the shader's main.
	MainFunction string
}
