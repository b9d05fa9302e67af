// Copyright 2025 Tensora ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides dense tensor buffers for layout operations.
//
// # Overview
//
// Tensors are the data structure every operator in Tensora consumes and
// produces. This package provides:
//   - RawTensor: a contiguous row-major buffer tagged with shape and dtype
//   - Zero-copy views (View, RowView) for reshapes that preserve layout
//   - Device abstraction (CPU, WebGPU)
//
// # Basic Usage
//
//	import (
//	    "github.com/tensora-ml/tensora/tensor"
//	)
//
//	func main() {
//	    x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(x.Shape(), x.DType())
//	}
//
// # Supported Data Types
//
// The tensor package supports the following data types via the DType
// constraint:
//   - float32, float64 (floating-point)
//   - int32, int64 (signed integers)
//   - uint8 (unsigned integers, useful for images)
//   - bool (boolean masks)
package tensor
