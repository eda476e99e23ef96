// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build darwin

package wgpu

import (
	"log/slog"

	"github.com/gogpu/legacygfx/abi"
	"github.com/gogpu/legacygfx/hal/metal"
)

// Open creates a context against the default Metal device, logging
// through log (or the package default if nil). This is the one
// reachable entry point a host embedding this backend calls into;
// everything else hangs off the returned Context (package abi).
func Open(log *slog.Logger) (*abi.Context, error) {
	backend, err := metal.NewDrawBackend()
	if err != nil {
		return nil, err
	}
	return abi.NewContext(backend, log), nil
}
