// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build !darwin

package wgpu

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/legacygfx/abi"
)

// Open always fails on non-Darwin platforms: the only device.Backend
// implementation this module ships is hal/metal, which requires the
// Metal framework.
func Open(log *slog.Logger) (*abi.Context, error) {
	return nil, fmt.Errorf("wgpu: Metal backend is only available on darwin")
}
