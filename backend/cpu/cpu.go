// Copyright 2025 Tensora ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/tensora-ml/tensora/internal/backend/cpu"
	"github.com/tensora-ml/tensora/op"
)

// Backend represents the CPU backend implementation.
//
// CPU backend provides pure Go implementations of all layout kernels
// with chunked multi-goroutine execution for large tensors.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements op.Backend.
var _ op.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	import (
//	    "github.com/tensora-ml/tensora/backend/cpu"
//	    "github.com/tensora-ml/tensora/op"
//	)
//
//	func main() {
//	    ctx := op.NewContext(cpu.New())
//	    _ = ctx
//	}
func New() *Backend {
	return internalcpu.New()
}
