package op

import (
	"fmt"

	"github.com/tensora-ml/tensora/internal/tensor"
)

// Roll circularly shifts the elements of inputs[0] into outputs[0].
//
// Without an axis list the array is treated as flattened: a single shift
// amount is applied and the kernel computes each source offset by closed
// formula, so no index table is built. With an axis list, each listed
// axis carries an independent shift and an explicit permutation table
// (destination offset -> source offset) is built on host memory, then
// handed to the backend for the element-wise gather.
//
// A zero-size input is a legal no-op. Shift/axis length mismatches and
// out-of-range axes are configuration errors and panic.
func Roll[B Backend](ctx *Context[B], param RollParam, inputs []*tensor.RawTensor, reqs []WriteReq, outputs []*tensor.RawTensor) {
	if len(inputs) != 1 || len(outputs) != 1 || len(reqs) != 1 {
		panic(fmt.Sprintf("roll: expected 1 input/output/req, got %d/%d/%d",
			len(inputs), len(outputs), len(reqs)))
	}
	in, out := inputs[0], outputs[0]
	size := in.NumElements()
	if size == 0 {
		return
	}
	if len(param.Shift) == 0 {
		panic("roll: shift is required")
	}

	if param.Axis == nil {
		shift := param.Shift[0] % size
		if shift < 0 {
			shift += size
		}
		ctx.Backend.ShiftFlat(out, in, shift, reqs[0])
		return
	}

	shape := in.Shape()
	ndim := len(shape)

	axes := make([]int, len(param.Axis))
	copy(axes, param.Axis)
	for i := range axes {
		if axes[i] < 0 {
			axes[i] += ndim
		}
		if axes[i] < 0 || axes[i] >= ndim {
			panic(fmt.Sprintf("roll: axis %d exceeds input dimensions %v", param.Axis[i], shape))
		}
	}

	shifts := make([]int, ndim)
	switch {
	case len(param.Shift) == 1:
		for _, ax := range axes {
			shifts[ax] = param.Shift[0]
		}
	case len(param.Shift) == len(axes):
		for i, ax := range axes {
			shifts[ax] = param.Shift[i]
		}
	default:
		panic("roll: shift and axis must be tuples of the same size")
	}

	// Reduce each shift toward [0, dim). A shift below -dim stays
	// negative here; it is congruent mod dim and the per-axis map
	// reduces it again.
	for i, dim := range shape {
		trans := shifts[i] % dim
		if trans < 0 {
			trans = shifts[i] + dim
		}
		shifts[i] = trans
	}

	table := ctx.Workspace.IndexTable(size)
	buildRollIndex(shape, shifts, table)
	ctx.Backend.IndexGather(out, in, table, reqs[0])
}

// buildRollIndex fills table with the source linear offset for every
// destination linear offset of a per-axis circular shift. shifts holds
// one reduced shift per axis; a negative value is taken modulo dim by
// the per-axis map.
//
// For each axis, destination index j along that axis reads original
// index (j + dim - shift) % dim. The per-axis mappings are combined
// with row-major strides by walking destination coordinates in linear
// order, outermost axis slowest. The walk is an explicit odometer
// rather than a recursion so rank never threatens the stack.
func buildRollIndex(shape tensor.Shape, shifts []int, table []int) {
	ndim := len(shape)
	strides := shape.ComputeStrides()

	newAxes := make([][]int, ndim)
	for i, dim := range shape {
		m := make([]int, dim)
		if shifts[i] != 0 {
			for j := 0; j < dim; j++ {
				m[j] = (j + dim - shifts[i]) % dim
			}
		} else {
			for j := range m {
				m[j] = j
			}
		}
		newAxes[i] = m
	}

	counters := make([]int, ndim)
	for d := range table {
		src := 0
		for k := 0; k < ndim; k++ {
			src += newAxes[k][counters[k]] * strides[k]
		}
		table[d] = src

		for k := ndim - 1; k >= 0; k-- {
			counters[k]++
			if counters[k] < shape[k] {
				break
			}
			counters[k] = 0
		}
	}
}
