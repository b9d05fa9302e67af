package op

import (
	"fmt"

	"github.com/tensora-ml/tensora/internal/tensor"
)

// VstackForward stacks inputs row-wise into outputs[0].
//
// Every input is first coerced to a 2-D row view: rank-0 and rank-1
// inputs become a single row of their element count, higher ranks are
// used as-is. The row views are then concatenated along axis 0 by the
// backend's concatenation primitive. The input count must equal the
// declared argument count; exactly one output and one write request are
// expected.
func VstackForward[B Backend](ctx *Context[B], param VstackParam, inputs []*tensor.RawTensor, reqs []WriteReq, outputs []*tensor.RawTensor) {
	if param.NumArgs < 1 {
		panic(fmt.Sprintf("vstack: num_args must be positive, got %d", param.NumArgs))
	}
	if len(inputs) != param.NumArgs {
		panic(fmt.Sprintf("vstack: expected %d inputs, got %d", param.NumArgs, len(inputs)))
	}
	if len(outputs) != 1 || len(reqs) != 1 {
		panic(fmt.Sprintf("vstack: expected 1 output and 1 req, got %d/%d", len(outputs), len(reqs)))
	}

	data := make([]*tensor.RawTensor, param.NumArgs)
	for i, in := range inputs {
		data[i] = in.RowView()
	}

	c := ctx.Backend.Concat()
	c.Init(ConcatConfig{NumArgs: param.NumArgs, Axis: 0})
	c.Forward(data, reqs, outputs)
}

// VstackBackward distributes the incoming gradient inputs[0] back to the
// per-input gradient buffers in outputs.
//
// Each gradient slot is reshaped to the same row view used at forward
// time, then the concatenation primitive's inverse splits the incoming
// gradient row-contiguously in forward order, honoring each slot's
// write request.
func VstackBackward[B Backend](ctx *Context[B], param VstackParam, inputs []*tensor.RawTensor, reqs []WriteReq, outputs []*tensor.RawTensor) {
	if param.NumArgs < 1 {
		panic(fmt.Sprintf("vstack: num_args must be positive, got %d", param.NumArgs))
	}
	if len(inputs) != 1 {
		panic(fmt.Sprintf("vstack backward: expected 1 gradient input, got %d", len(inputs)))
	}
	if len(outputs) != param.NumArgs || len(reqs) != param.NumArgs {
		panic(fmt.Sprintf("vstack backward: expected %d gradient outputs and reqs, got %d/%d",
			param.NumArgs, len(outputs), len(reqs)))
	}

	data := make([]*tensor.RawTensor, param.NumArgs)
	for i, out := range outputs {
		data[i] = out.RowView()
	}

	c := ctx.Backend.Concat()
	c.Init(ConcatConfig{NumArgs: param.NumArgs, Axis: 0})
	c.Backward(inputs[0], reqs, data)
}
