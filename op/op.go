// Copyright 2025 Tensora ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package op provides the public operator API: transpose, row-wise
// stacking (vstack) with its gradient, and circular shifting (roll),
// each dispatched to a pluggable execution backend.
//
// Example:
//
//	import (
//	    "github.com/tensora-ml/tensora/backend/cpu"
//	    "github.com/tensora-ml/tensora/op"
//	    "github.com/tensora-ml/tensora/tensor"
//	)
//
//	func main() {
//	    ctx := op.NewContext(cpu.New())
//	    x, _ := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
//	    y, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
//	    op.Roll(ctx, op.RollParam{Shift: []int{1}, Axis: []int{1}},
//	        []*tensor.RawTensor{x}, []op.WriteReq{op.WriteTo}, []*tensor.RawTensor{y})
//	}
package op

import (
	"github.com/tensora-ml/tensora/internal/op"
	"github.com/tensora-ml/tensora/tensor"
)

// WriteReq describes how an operator writes its output.
type WriteReq = op.WriteReq

// Write request values.
const (
	WriteTo = op.WriteTo
	AddTo   = op.AddTo
	NullOp  = op.NullOp
)

// Backend is the execution capability an operator context carries.
type Backend = op.Backend

// Context carries the backend and scratch workspace for operator calls.
type Context[B Backend] = op.Context[B]

// Workspace holds reusable scratch memory for index tables.
type Workspace = op.Workspace

// NewContext creates an operator context bound to the given backend.
func NewContext[B Backend](b B) *Context[B] {
	return op.NewContext(b)
}

// Concatenator joins tensors along an axis and redistributes gradients.
type Concatenator = op.Concatenator

// ConcatConfig configures a Concatenator.
type ConcatConfig = op.ConcatConfig

// Operator parameters.
type (
	// TransposeParam configures Transpose. A nil Axes reverses all axes.
	TransposeParam = op.TransposeParam
	// VstackParam configures VstackForward and VstackBackward.
	VstackParam = op.VstackParam
	// RollParam configures Roll. A nil Axis rolls over the flattened tensor.
	RollParam = op.RollParam
)

// Transpose permutes the axes of inputs[0] into outputs[0].
func Transpose[B Backend](ctx *Context[B], param TransposeParam, inputs []*tensor.RawTensor, reqs []WriteReq, outputs []*tensor.RawTensor) {
	op.Transpose(ctx, param, inputs, reqs, outputs)
}

// InverseAxes returns the permutation that undoes axes. It is the axes
// argument of the transpose gradient.
func InverseAxes(axes []int) []int {
	return op.InverseAxes(axes)
}

// VstackForward stacks the inputs row-wise into outputs[0].
func VstackForward[B Backend](ctx *Context[B], param VstackParam, inputs []*tensor.RawTensor, reqs []WriteReq, outputs []*tensor.RawTensor) {
	op.VstackForward(ctx, param, inputs, reqs, outputs)
}

// VstackBackward splits the output gradient in inputs[0] back into the
// per-input gradient slots in outputs.
func VstackBackward[B Backend](ctx *Context[B], param VstackParam, inputs []*tensor.RawTensor, reqs []WriteReq, outputs []*tensor.RawTensor) {
	op.VstackBackward(ctx, param, inputs, reqs, outputs)
}

// Roll circularly shifts inputs[0] into outputs[0], either over the
// flattened tensor or along the given axes.
func Roll[B Backend](ctx *Context[B], param RollParam, inputs []*tensor.RawTensor, reqs []WriteReq, outputs []*tensor.RawTensor) {
	op.Roll(ctx, param, inputs, reqs, outputs)
}
