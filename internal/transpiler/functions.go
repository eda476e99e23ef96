package transpiler

import (
	"strings"

	"github.com/gogpu/legacygfx/herrors"
	"github.com/gogpu/legacygfx/internal/shaderlang"
)

// bodyContext carries the state a function body rewrite needs to thread
// through: which names are samplers (so a.Sample(...)/a.Load(...) member
// calls can be rewritten to MSL's .sample(...)/.read(...) spelling) and
// the set of textures the body actually references (Stage 3's output,
// used to build the Stage 7 sampler binding table).
type bodyContext struct {
	samplerNames map[string]bool
	textureNames map[string]bool
	referenced   map[string]bool
}

// collectTextureReferences is Stage 3: a dry walk over every function
// body that records which declared textures/samplers it touches, without
// emitting anything. Compile uses the resulting set, in declaration
// order, to assign [[texture(n)]]/[[sampler(n)]] binding indices.
func collectTextureReferences(prog *shaderlang.Program, samplerNames map[string]bool) map[string]bool {
	referenced := make(map[string]bool)
	for _, fn := range prog.Functions {
		for i := 0; i+1 < len(fn.Body); i++ {
			if fn.Body[i].Kind != shaderlang.TokenName {
				continue
			}
			name := fn.Body[i].Text
			if !samplerNames[name] {
				continue
			}
			if fn.Body[i+1].Text == "." {
				referenced[name] = true
			}
		}
	}
	return referenced
}

// emitFunction is Stage 6: rewrite one function's token stream to MSL,
// returning the function body text (braces excluded; the caller supplies
// the signature).
func emitFunction(fn shaderlang.FunctionDecl, ctx *bodyContext) (string, error) {
	var b strings.Builder
	toks := fn.Body
	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		if tok.Kind != shaderlang.TokenName {
			b.WriteString(tok.Text)
			continue
		}

		name := tok.Text

		if unsupportedIntrinsics[name] {
			return "", errUnsupported(name)
		}

		if repl, ok := intrinsicRewrites[name]; ok && nextNonSpaceIs(toks, i, "(") {
			b.WriteString(repl)
			continue
		}

		if name == "mul" && nextNonSpaceIs(toks, i, "(") {
			args, end, ok := splitCallArgs(toks, i+1)
			if ok && len(args) == 2 {
				b.WriteString("(")
				b.WriteString(renderTokens(args[0]))
				b.WriteString(" * ")
				b.WriteString(renderTokens(args[1]))
				b.WriteString(")")
				i = end
				continue
			}
		}

		if name == "mad" && nextNonSpaceIs(toks, i, "(") {
			b.WriteString("fma")
			continue
		}

		if ctx.samplerNames[name] && i+1 < len(toks) && toks[i+1].Text == "." {
			b.WriteString(name)
			continue
		}
		if name == "Sample" || name == "SampleLevel" {
			b.WriteString("sample")
			continue
		}
		if name == "Load" {
			b.WriteString("read")
			continue
		}

		if mslType, ok := hlslToMSLType[shaderlang.TypeName(name)]; ok {
			b.WriteString(mslType)
			continue
		}

		b.WriteString(name)
	}
	return b.String(), nil
}

// errUnsupported builds the malformed-shader error for a call to an
// intrinsic with no MSL equivalent (spec.md §4.4 Stage 6: "clip
// unsupported").
func errUnsupported(name string) error {
	return wrapErrf(herrors.ErrMalformedShader, "unsupported intrinsic %q", name)
}

func nextNonSpaceIs(toks []shaderlang.Token, i int, s string) bool {
	for j := i + 1; j < len(toks); j++ {
		if toks[j].Kind == shaderlang.TokenSpaceTab || toks[j].Kind == shaderlang.TokenNewline {
			continue
		}
		return toks[j].Text == s
	}
	return false
}

// splitCallArgs splits the parenthesized, comma-separated argument list
// starting at toks[openParenIdx] (which must be "(") into per-argument
// token slices, returning the index of the matching close paren.
func splitCallArgs(toks []shaderlang.Token, openParenIdx int) (args [][]shaderlang.Token, closeIdx int, ok bool) {
	depth := 0
	start := openParenIdx + 1
	for i := openParenIdx; i < len(toks); i++ {
		switch toks[i].Text {
		case "(":
			depth++
		case ")":
			depth--
			if depth == 0 {
				args = append(args, toks[start:i])
				return args, i, true
			}
		case ",":
			if depth == 1 {
				args = append(args, toks[start:i])
				start = i + 1
			}
		}
	}
	return nil, 0, false
}

func renderTokens(toks []shaderlang.Token) string {
	var b strings.Builder
	for _, t := range toks {
		b.WriteString(t.Text)
	}
	return strings.TrimSpace(b.String())
}
