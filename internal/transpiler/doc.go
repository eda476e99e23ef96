// Package transpiler implements the host shader language to Metal Shading
// Language compiler (spec.md §4.4). It consumes the pre-tokenized
// intermediate representation produced by the host's lexer/parser
// collaborator (package shaderlang) and emits MSL source text plus a
// metadata record describing the uniform layout, vertex input descriptor,
// and sampler/texture binding table the device needs to wire the shader
// into a render pipeline.
//
// The pipeline runs in the seven stages spec.md §4.4 lays out:
//
//  1. Analyze uniforms: walk the declared uniform list, assign each a
//     16-byte-aligned offset.
//  2. Analyze structs and function signatures: classify each struct as an
//     input struct, an output struct, or a plain value type.
//  3. Analyze function bodies: nothing is mutated yet; this pass collects,
//     across all function bodies, the declared textures/samplers used in a
//     member call (name followed by "."), from which Compile assigns the
//     binding indices.
//  4. Emit the uniforms struct, in original declaration order. No padding
//     fields are written; the offsets appear only in the metadata.
//  5. Emit structs: a vertex-input struct is emitted once with
//     [[attribute(n)]] fields; a struct used as the vertex output or the
//     fragment input is split into distinct _Out/_In spellings with Metal
//     attributes.
//  6. Emit functions: rewrite intrinsics, arithmetic builtins, texture
//     sampling calls, and HLSL type keywords to their MSL equivalents.
//  7. Build the metadata record consumed by package device and package
//     resource to wire the compiled module into a render pipeline.
package transpiler
