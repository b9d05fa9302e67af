package op

import (
	"fmt"

	"github.com/tensora-ml/tensora/internal/tensor"
)

// Transpose permutes the dimensions of inputs[0] into outputs[0].
//
// With a nil axis list the dimensions are reversed: axis i of the output
// is axis (ndim-1-i) of the input. Otherwise the axes must form a
// bijection over [0, ndim). The single write request must be WriteTo;
// in-place or accumulating transpose is unsupported. All element-level
// work is delegated to the backend's strided copy.
func Transpose[B Backend](ctx *Context[B], param TransposeParam, inputs []*tensor.RawTensor, reqs []WriteReq, outputs []*tensor.RawTensor) {
	if len(inputs) != 1 || len(outputs) != 1 || len(reqs) != 1 {
		panic(fmt.Sprintf("transpose: expected 1 input/output/req, got %d/%d/%d",
			len(inputs), len(outputs), len(reqs)))
	}
	if reqs[0] != WriteTo {
		panic("transpose: does not support inplace or accumulate write")
	}

	in, out := inputs[0], outputs[0]
	shape := in.Shape()
	ndim := len(shape)

	axes := param.Axes
	if axes == nil {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}

	if len(axes) != ndim {
		panic(fmt.Sprintf("transpose: axes length %d != ndim %d", len(axes), ndim))
	}
	seen := make([]bool, ndim)
	for _, ax := range axes {
		if ax < 0 || ax >= ndim {
			panic(fmt.Sprintf("transpose: invalid axis %d for %dD tensor", ax, ndim))
		}
		if seen[ax] {
			panic(fmt.Sprintf("transpose: duplicate axis %d", ax))
		}
		seen[ax] = true
	}

	for i, ax := range axes {
		if out.Shape()[i] != shape[ax] {
			panic(fmt.Sprintf("transpose: output shape %v does not match input %v permuted by %v",
				out.Shape(), shape, axes))
		}
	}

	ctx.Backend.TransposeInto(out, in, axes)
}

// InverseAxes returns the permutation that undoes axes. Transposing by
// axes and then by InverseAxes(axes) restores the original layout, which
// is how the executor propagates gradients through a transpose node.
func InverseAxes(axes []int) []int {
	inv := make([]int, len(axes))
	for i, ax := range axes {
		inv[ax] = i
	}
	return inv
}
