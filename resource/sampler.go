package resource

import "github.com/gogpu/legacygfx/internal/shaderlang"

// SamplerState is an immutable sampler resource. Unlike every other
// resource kind, nothing about a sampler can be changed after creation —
// there is no sampler state setter in the host ABI, only create/destroy —
// so this struct has no mutating methods.
type SamplerState struct {
	Backend       any
	AddressU      shaderlang.AddressMode
	AddressV      shaderlang.AddressMode
	AddressW      shaderlang.AddressMode
	Filter        shaderlang.FilterMode
	MaxAnisotropy int
	BorderColor   uint32
}
