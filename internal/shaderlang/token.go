// Package shaderlang models the output of the host's shader lexer/parser
// collaborator (spec.md §4.4, out of scope per spec.md §1): a stream of
// typed tokens plus pre-parsed uniform, struct, function, and sampler
// tables. The transpiler package consumes these types; nothing in this
// package parses shader text — that collaborator is explicitly external.
package shaderlang

// TokenKind enumerates the token types the host's lexer emits.
type TokenKind int

const (
	// TokenNone is the zero value; never emitted, used as a sentinel.
	TokenNone TokenKind = iota
	// TokenName is an identifier or keyword.
	TokenName
	// TokenOther is punctuation or an operator (braces, parens, commas,
	// the arithmetic/comparison operators, dots, etc).
	TokenOther
	// TokenSpaceTab is horizontal whitespace.
	TokenSpaceTab
	// TokenNewline is a line break.
	TokenNewline
)

// Token is one lexed unit of host shader source.
type Token struct {
	Kind TokenKind
	Text string
}

// ShaderKind distinguishes a vertex shader from a fragment shader; the
// transpiler's semantic remapping (stage qualifiers, stream assignment,
// sampler/texture binding indices) differs by kind.
type ShaderKind int

const (
	ShaderKindVertex ShaderKind = iota
	ShaderKindFragment
)

// Semantic is the legacy HLSL-style semantic attached to a struct field,
// used to pick a Metal attribute ([[position]], [[texture(n)]]-style
// binding, or a vertex stream assignment).
type Semantic int

const (
	SemanticNone Semantic = iota
	SemanticPosition
	SemanticNormal
	SemanticTangent
	SemanticColor
	SemanticTexCoord0
	SemanticTexCoord1
	SemanticTexCoord2
	SemanticTexCoord3
	SemanticVertexID
)

// TexCoordIndex returns the texcoord slot (0-based) for a TEXCOORD<n>
// semantic, or -1 if s is not a texcoord semantic.
func (s Semantic) TexCoordIndex() int {
	switch s {
	case SemanticTexCoord0:
		return 0
	case SemanticTexCoord1:
		return 1
	case SemanticTexCoord2:
		return 2
	case SemanticTexCoord3:
		return 3
	default:
		return -1
	}
}
