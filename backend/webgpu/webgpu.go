//go:build windows

// Copyright 2025 Tensora ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the WebGPU backend for GPU-accelerated layout
// operations.
//
// The backend reduces every layout operator to either a closed-formula
// shift kernel or an index-gather kernel over a host-built permutation
// table. Kernels operate on float32 tensors.
//
// Example:
//
//	import (
//	    "github.com/tensora-ml/tensora/backend/webgpu"
//	    "github.com/tensora-ml/tensora/op"
//	)
//
//	func main() {
//	    gpu, err := webgpu.New()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer gpu.Release()
//
//	    ctx := op.NewContext(gpu)
//	    _ = ctx
//	}
package webgpu

import (
	internalwebgpu "github.com/tensora-ml/tensora/internal/backend/webgpu"
	"github.com/tensora-ml/tensora/op"
)

// Backend represents the WebGPU backend implementation for
// GPU-accelerated layout kernels.
type Backend = internalwebgpu.Backend

// Compile-time check that Backend implements op.Backend.
var _ op.Backend = (*Backend)(nil)

// New creates a new WebGPU backend.
// Returns an error if WebGPU is not available or initialization fails.
func New() (*Backend, error) {
	return internalwebgpu.New()
}

// IsAvailable checks if WebGPU is available on the current system.
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
