package op_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/tensora-ml/tensora/internal/op"
	"github.com/tensora-ml/tensora/internal/tensor"
)

func TestVstackForward_MixedRanks(t *testing.T) {
	ctx := newCPUContext()

	// (3,), (1,3) and (2,3) stack to (4,3): vectors count as one row.
	vec := fromFloat32(t, []float32{1, 2, 3}, tensor.Shape{3})
	row := fromFloat32(t, []float32{4, 5, 6}, tensor.Shape{1, 3})
	matIn := fromFloat32(t, []float32{7, 8, 9, 10, 11, 12}, tensor.Shape{2, 3})
	out := emptyFloat32(t, tensor.Shape{4, 3})

	op.VstackForward(ctx, op.VstackParam{NumArgs: 3},
		[]*tensor.RawTensor{vec, row, matIn},
		[]op.WriteReq{op.WriteTo},
		[]*tensor.RawTensor{out})

	want := []float32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	if diff := cmp.Diff(want, out.AsFloat32()); diff != "" {
		t.Errorf("vstack mismatch (-want +got):\n%s", diff)
	}
}

func TestVstackForward_Scalars(t *testing.T) {
	ctx := newCPUContext()

	a := fromFloat32(t, []float32{1}, tensor.Shape{})
	b := fromFloat32(t, []float32{2}, tensor.Shape{})
	out := emptyFloat32(t, tensor.Shape{2, 1})

	op.VstackForward(ctx, op.VstackParam{NumArgs: 2},
		[]*tensor.RawTensor{a, b},
		[]op.WriteReq{op.WriteTo},
		[]*tensor.RawTensor{out})

	assert.Equal(t, []float32{1, 2}, out.AsFloat32())
}

func TestVstackForward_InputsUntouched(t *testing.T) {
	ctx := newCPUContext()

	vec := fromFloat32(t, []float32{1, 2, 3}, tensor.Shape{3})
	row := fromFloat32(t, []float32{4, 5, 6}, tensor.Shape{1, 3})
	out := emptyFloat32(t, tensor.Shape{2, 3})

	op.VstackForward(ctx, op.VstackParam{NumArgs: 2},
		[]*tensor.RawTensor{vec, row},
		[]op.WriteReq{op.WriteTo},
		[]*tensor.RawTensor{out})

	assert.Equal(t, []float32{1, 2, 3}, vec.AsFloat32(), "input buffer must not change")
	assert.True(t, vec.Shape().Equal(tensor.Shape{3}), "input shape must not change")
}

func TestVstackForward_CountMismatchPanics(t *testing.T) {
	ctx := newCPUContext()

	a := fromFloat32(t, []float32{1, 2}, tensor.Shape{2})
	out := emptyFloat32(t, tensor.Shape{2, 2})

	assert.Panics(t, func() {
		op.VstackForward(ctx, op.VstackParam{NumArgs: 2},
			[]*tensor.RawTensor{a},
			[]op.WriteReq{op.WriteTo},
			[]*tensor.RawTensor{out})
	})
}

func TestVstackForward_TrailingDimMismatchPanics(t *testing.T) {
	ctx := newCPUContext()

	a := fromFloat32(t, []float32{1, 2}, tensor.Shape{2})
	b := fromFloat32(t, []float32{1, 2, 3}, tensor.Shape{3})
	out := emptyFloat32(t, tensor.Shape{2, 2})

	assert.Panics(t, func() {
		op.VstackForward(ctx, op.VstackParam{NumArgs: 2},
			[]*tensor.RawTensor{a, b},
			[]op.WriteReq{op.WriteTo},
			[]*tensor.RawTensor{out})
	})
}

func TestVstackBackward(t *testing.T) {
	ctx := newCPUContext()

	grad := fromFloat32(t, []float32{1, 2, 3, 4, 5, 6, 7, 8, 9}, tensor.Shape{3, 3})
	g1 := emptyFloat32(t, tensor.Shape{3})    // was a vector at forward time
	g2 := emptyFloat32(t, tensor.Shape{2, 3}) // was a matrix

	op.VstackBackward(ctx, op.VstackParam{NumArgs: 2},
		[]*tensor.RawTensor{grad},
		[]op.WriteReq{op.WriteTo, op.WriteTo},
		[]*tensor.RawTensor{g1, g2})

	assert.Equal(t, []float32{1, 2, 3}, g1.AsFloat32())
	assert.Equal(t, []float32{4, 5, 6, 7, 8, 9}, g2.AsFloat32())
}

func TestVstackBackward_MixedReqs(t *testing.T) {
	ctx := newCPUContext()

	grad := fromFloat32(t, []float32{1, 2, 3}, tensor.Shape{3, 1})
	g1 := emptyFloat32(t, tensor.Shape{1})
	g2 := fromFloat32(t, []float32{50}, tensor.Shape{1})
	g3 := fromFloat32(t, []float32{10}, tensor.Shape{1})

	op.VstackBackward(ctx, op.VstackParam{NumArgs: 3},
		[]*tensor.RawTensor{grad},
		[]op.WriteReq{op.WriteTo, op.NullOp, op.AddTo},
		[]*tensor.RawTensor{g1, g2, g3})

	assert.Equal(t, []float32{1}, g1.AsFloat32(), "overwrite slot")
	assert.Equal(t, []float32{50}, g2.AsFloat32(), "skipped slot keeps its value")
	assert.Equal(t, []float32{13}, g3.AsFloat32(), "accumulate slot")
}

func TestVstackBackward_RoundTrip(t *testing.T) {
	ctx := newCPUContext()

	a := fromFloat32(t, []float32{1, 2}, tensor.Shape{2})
	b := fromFloat32(t, []float32{3, 4, 5, 6}, tensor.Shape{2, 2})
	stacked := emptyFloat32(t, tensor.Shape{3, 2})

	op.VstackForward(ctx, op.VstackParam{NumArgs: 2},
		[]*tensor.RawTensor{a, b}, []op.WriteReq{op.WriteTo}, []*tensor.RawTensor{stacked})

	ga := emptyFloat32(t, tensor.Shape{2})
	gb := emptyFloat32(t, tensor.Shape{2, 2})
	op.VstackBackward(ctx, op.VstackParam{NumArgs: 2},
		[]*tensor.RawTensor{stacked},
		[]op.WriteReq{op.WriteTo, op.WriteTo},
		[]*tensor.RawTensor{ga, gb})

	assert.Equal(t, a.AsFloat32(), ga.AsFloat32())
	assert.Equal(t, b.AsFloat32(), gb.AsFloat32())
}

func TestVstackBackward_SlotCountPanics(t *testing.T) {
	ctx := newCPUContext()

	grad := fromFloat32(t, []float32{1, 2}, tensor.Shape{2, 1})
	g1 := emptyFloat32(t, tensor.Shape{1})

	assert.Panics(t, func() {
		op.VstackBackward(ctx, op.VstackParam{NumArgs: 2},
			[]*tensor.RawTensor{grad},
			[]op.WriteReq{op.WriteTo},
			[]*tensor.RawTensor{g1})
	})
}
