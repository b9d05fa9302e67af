// Copyright 2025 Tensora ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public tensor types for the Tensora
// layout-operator library.
//
// The package re-exports the core types used by every operator:
//   - RawTensor: dtype-tagged dense buffer with row-major layout
//   - Shape, DataType, Device: core type definitions
//   - DType: generic constraint over the supported element types
package tensor

import (
	"github.com/tensora-ml/tensora/internal/tensor"
)

// Type aliases for public API

// DType is a constraint for tensor data types.
// Supported types: float32, float64, int32, int64, uint8, bool.
type DType = tensor.DType

// DataType represents the runtime element type of a tensor.
type DataType = tensor.DataType

// Supported data types.
const (
	Float32 = tensor.Float32
	Float64 = tensor.Float64
	Int32   = tensor.Int32
	Int64   = tensor.Int64
	Uint8   = tensor.Uint8
	Bool    = tensor.Bool
)

// Device represents where tensor data lives.
type Device = tensor.Device

// Supported devices.
const (
	CPU    = tensor.CPU
	WebGPU = tensor.WebGPU
)

// Shape represents tensor dimensions in row-major order.
type Shape = tensor.Shape

// RawTensor is a dense, contiguous tensor buffer tagged with its shape,
// element type and device.
type RawTensor = tensor.RawTensor

// NewRaw allocates a zero-filled tensor with the given shape and dtype.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// FromSlice creates a tensor from a typed slice. The data is copied.
func FromSlice[T DType](data []T, shape Shape) (*RawTensor, error) {
	return tensor.FromSlice(data, shape)
}

// AsSlice returns a typed view of the tensor's buffer. The view shares
// memory with the tensor.
func AsSlice[T DType](r *RawTensor) []T {
	return tensor.AsSlice[T](r)
}

// TypeOf returns the DataType corresponding to the type parameter T.
func TypeOf[T DType]() DataType {
	return tensor.TypeOf[T]()
}
