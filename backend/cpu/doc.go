// Copyright 2025 Tensora ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for layout operations.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - All supported element types (float32, float64, int32, int64, uint8, bool)
//   - Chunked goroutine parallelism for large tensors
//   - Write-request semantics: overwrite, accumulate, or skip
//
// # Basic Usage
//
//	import (
//	    "github.com/tensora-ml/tensora/backend/cpu"
//	    "github.com/tensora-ml/tensora/op"
//	    "github.com/tensora-ml/tensora/tensor"
//	)
//
//	func main() {
//	    ctx := op.NewContext(cpu.New())
//
//	    x, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{4})
//	    y, _ := tensor.NewRaw(tensor.Shape{4}, tensor.Float32, tensor.CPU)
//	    op.Roll(ctx, op.RollParam{Shift: []int{1}},
//	        []*tensor.RawTensor{x}, []op.WriteReq{op.WriteTo}, []*tensor.RawTensor{y})
//	}
package cpu
