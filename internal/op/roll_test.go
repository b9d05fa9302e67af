package op_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensora-ml/tensora/internal/backend/cpu"
	"github.com/tensora-ml/tensora/internal/op"
	"github.com/tensora-ml/tensora/internal/tensor"
)

func newCPUContext() *op.Context[*cpu.CPUBackend] {
	return op.NewContext(cpu.New())
}

func fromFloat32(t *testing.T, data []float32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.FromSlice(data, shape)
	require.NoError(t, err)
	return raw
}

func emptyFloat32(t *testing.T, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	return raw
}

func roll(t *testing.T, ctx *op.Context[*cpu.CPUBackend], param op.RollParam, in *tensor.RawTensor, outShape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	out := emptyFloat32(t, outShape)
	op.Roll(ctx, param,
		[]*tensor.RawTensor{in}, []op.WriteReq{op.WriteTo}, []*tensor.RawTensor{out})
	return out
}

func TestRoll_Flatten(t *testing.T) {
	ctx := newCPUContext()
	in := fromFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	out := roll(t, ctx, op.RollParam{Shift: []int{2}}, in, tensor.Shape{2, 3})
	want := []float32{5, 6, 1, 2, 3, 4}
	if diff := cmp.Diff(want, out.AsFloat32()); diff != "" {
		t.Errorf("roll(shift=2) mismatch (-want +got):\n%s", diff)
	}
}

func TestRoll_FlattenNegativeShift(t *testing.T) {
	ctx := newCPUContext()
	in := fromFloat32(t, []float32{1, 2, 3, 4, 5}, tensor.Shape{5})

	out := roll(t, ctx, op.RollParam{Shift: []int{-2}}, in, tensor.Shape{5})
	assert.Equal(t, []float32{3, 4, 5, 1, 2}, out.AsFloat32())
}

func TestRoll_FlattenPeriodicity(t *testing.T) {
	// Shifting by s and by s+k*size must agree, and rolling back by -s
	// must restore the input.
	ctx := newCPUContext()
	in := fromFloat32(t, []float32{1, 2, 3, 4, 5, 6, 7, 8}, tensor.Shape{8})

	a := roll(t, ctx, op.RollParam{Shift: []int{3}}, in, tensor.Shape{8})
	b := roll(t, ctx, op.RollParam{Shift: []int{3 + 2*8}}, in, tensor.Shape{8})
	assert.Equal(t, a.AsFloat32(), b.AsFloat32(), "shift s and s+k*size must agree")

	back := roll(t, ctx, op.RollParam{Shift: []int{-3}}, a, tensor.Shape{8})
	assert.Equal(t, in.AsFloat32(), back.AsFloat32(), "roll then inverse roll must restore input")
}

func TestRoll_SingleAxis(t *testing.T) {
	ctx := newCPUContext()
	// [[1 2 3]
	//  [4 5 6]]
	in := fromFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	out := roll(t, ctx, op.RollParam{Shift: []int{1}, Axis: []int{1}}, in, tensor.Shape{2, 3})
	want := []float32{3, 1, 2, 6, 4, 5}
	if diff := cmp.Diff(want, out.AsFloat32()); diff != "" {
		t.Errorf("roll(shift=1, axis=1) mismatch (-want +got):\n%s", diff)
	}
}

func TestRoll_MultiAxis(t *testing.T) {
	ctx := newCPUContext()
	in := fromFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	out := roll(t, ctx, op.RollParam{Shift: []int{1, 1}, Axis: []int{0, 1}}, in, tensor.Shape{2, 3})
	want := []float32{6, 4, 5, 3, 1, 2}
	assert.Equal(t, want, out.AsFloat32())
}

func TestRoll_ShiftBroadcast(t *testing.T) {
	// A single shift value applies to every listed axis.
	ctx := newCPUContext()
	in := fromFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	a := roll(t, ctx, op.RollParam{Shift: []int{1}, Axis: []int{0, 1}}, in, tensor.Shape{2, 3})
	b := roll(t, ctx, op.RollParam{Shift: []int{1, 1}, Axis: []int{0, 1}}, in, tensor.Shape{2, 3})
	assert.Equal(t, b.AsFloat32(), a.AsFloat32())
}

func TestRoll_NegativeAxis(t *testing.T) {
	ctx := newCPUContext()
	in := fromFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	a := roll(t, ctx, op.RollParam{Shift: []int{1}, Axis: []int{-1}}, in, tensor.Shape{2, 3})
	b := roll(t, ctx, op.RollParam{Shift: []int{1}, Axis: []int{1}}, in, tensor.Shape{2, 3})
	assert.Equal(t, b.AsFloat32(), a.AsFloat32())
}

func TestRoll_UnlistedAxesUntouched(t *testing.T) {
	// Rolling along axis 1 must leave the order of rows intact.
	ctx := newCPUContext()
	in := fromFloat32(t, []float32{1, 2, 10, 20, 100, 200}, tensor.Shape{3, 2})

	out := roll(t, ctx, op.RollParam{Shift: []int{1}, Axis: []int{1}}, in, tensor.Shape{3, 2})
	assert.Equal(t, []float32{2, 1, 20, 10, 200, 100}, out.AsFloat32())
}

func TestRoll_ZeroShift(t *testing.T) {
	ctx := newCPUContext()
	in := fromFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{4})

	out := roll(t, ctx, op.RollParam{Shift: []int{0}, Axis: []int{0}}, in, tensor.Shape{4})
	assert.Equal(t, in.AsFloat32(), out.AsFloat32())
}

func TestRoll_ZeroSizeInput(t *testing.T) {
	ctx := newCPUContext()
	in := emptyFloat32(t, tensor.Shape{0, 3})
	out := emptyFloat32(t, tensor.Shape{0, 3})

	// Must not panic, must not touch anything.
	op.Roll(ctx, op.RollParam{Shift: []int{2}, Axis: []int{1}},
		[]*tensor.RawTensor{in}, []op.WriteReq{op.WriteTo}, []*tensor.RawTensor{out})
}

func TestRoll_AddTo(t *testing.T) {
	ctx := newCPUContext()
	in := fromFloat32(t, []float32{1, 2, 3}, tensor.Shape{3})
	out := fromFloat32(t, []float32{10, 10, 10}, tensor.Shape{3})

	op.Roll(ctx, op.RollParam{Shift: []int{1}},
		[]*tensor.RawTensor{in}, []op.WriteReq{op.AddTo}, []*tensor.RawTensor{out})
	assert.Equal(t, []float32{13, 11, 12}, out.AsFloat32())
}

func TestRoll_ShiftAxisLengthMismatchPanics(t *testing.T) {
	ctx := newCPUContext()
	in := fromFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	out := emptyFloat32(t, tensor.Shape{2, 3})

	assert.PanicsWithValue(t, "roll: shift and axis must be tuples of the same size", func() {
		op.Roll(ctx, op.RollParam{Shift: []int{1, 2, 3}, Axis: []int{0, 1}},
			[]*tensor.RawTensor{in}, []op.WriteReq{op.WriteTo}, []*tensor.RawTensor{out})
	})
}

func TestRoll_AxisOutOfRangePanics(t *testing.T) {
	ctx := newCPUContext()
	in := fromFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	out := emptyFloat32(t, tensor.Shape{2, 3})

	assert.Panics(t, func() {
		op.Roll(ctx, op.RollParam{Shift: []int{1}, Axis: []int{2}},
			[]*tensor.RawTensor{in}, []op.WriteReq{op.WriteTo}, []*tensor.RawTensor{out})
	})
}

func TestRoll_MissingShiftPanics(t *testing.T) {
	ctx := newCPUContext()
	in := fromFloat32(t, []float32{1, 2}, tensor.Shape{2})
	out := emptyFloat32(t, tensor.Shape{2})

	assert.Panics(t, func() {
		op.Roll(ctx, op.RollParam{},
			[]*tensor.RawTensor{in}, []op.WriteReq{op.WriteTo}, []*tensor.RawTensor{out})
	})
}
