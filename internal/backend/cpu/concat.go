package cpu

import (
	"fmt"

	"github.com/tensora-ml/tensora/internal/op"
	"github.com/tensora-ml/tensora/internal/parallel"
	"github.com/tensora-ml/tensora/internal/tensor"
)

// concatOp is the CPU implementation of the concatenation primitive.
// One instance serves exactly one operator invocation.
type concatOp struct {
	cfg      op.ConcatConfig
	parallel parallel.Config
	device   tensor.Device
	inited   bool
}

// Init binds the instance to a configuration.
func (c *concatOp) Init(cfg op.ConcatConfig) {
	if cfg.NumArgs < 1 {
		panic(fmt.Sprintf("concat: num_args must be positive, got %d", cfg.NumArgs))
	}
	c.cfg = cfg
	c.inited = true
}

// Forward concatenates inputs along the configured axis into outputs[0].
//
// All inputs must share rank, dtype, and every dimension except the
// concatenation axis. The output must carry the summed size along the
// axis.
func (c *concatOp) Forward(inputs []*tensor.RawTensor, reqs []op.WriteReq, outputs []*tensor.RawTensor) {
	if !c.inited {
		panic("concat: Forward before Init")
	}
	if len(inputs) != c.cfg.NumArgs {
		panic(fmt.Sprintf("concat: expected %d inputs, got %d", c.cfg.NumArgs, len(inputs)))
	}
	if len(outputs) != 1 || len(reqs) != 1 {
		panic(fmt.Sprintf("concat: expected 1 output and 1 req, got %d/%d", len(outputs), len(reqs)))
	}
	if reqs[0] == op.NullOp {
		return
	}

	shape := inputs[0].Shape()
	ndim := len(shape)
	dtype := inputs[0].DType()

	dim := c.cfg.Axis
	if dim < 0 {
		dim = ndim + dim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("concat: axis %d out of range for %dD tensor", c.cfg.Axis, ndim))
	}

	totalDim := 0
	for i, t := range inputs {
		tShape := t.Shape()
		if len(tShape) != ndim {
			panic(fmt.Sprintf("concat: input %d has %d dimensions, expected %d", i, len(tShape), ndim))
		}
		if t.DType() != dtype {
			panic(fmt.Sprintf("concat: input %d has dtype %s, expected %s", i, t.DType(), dtype))
		}
		for d := 0; d < ndim; d++ {
			if d == dim {
				totalDim += tShape[d]
			} else if tShape[d] != shape[d] {
				panic(fmt.Sprintf("concat: input %d dimension %d is %d, expected %d", i, d, tShape[d], shape[d]))
			}
		}
	}

	out := outputs[0]
	if out.Shape()[dim] != totalDim {
		panic(fmt.Sprintf("concat: output size %d along axis %d, expected %d", out.Shape()[dim], dim, totalDim))
	}
	outStrides := out.Shape().ComputeStrides()

	offset := 0
	for _, t := range inputs {
		c.scatterInput(out, t, dim, offset, outStrides, reqs[0])
		offset += t.Shape()[dim]
	}
}

// Backward splits gradOutput along the configured axis back into
// gradInputs, honoring the per-slot write request. Slots are filled
// contiguously in forward order.
func (c *concatOp) Backward(gradOutput *tensor.RawTensor, reqs []op.WriteReq, gradInputs []*tensor.RawTensor) {
	if !c.inited {
		panic("concat: Backward before Init")
	}
	if len(gradInputs) != c.cfg.NumArgs || len(reqs) != c.cfg.NumArgs {
		panic(fmt.Sprintf("concat: expected %d gradient slots and reqs, got %d/%d",
			c.cfg.NumArgs, len(gradInputs), len(reqs)))
	}

	ndim := len(gradOutput.Shape())
	dim := c.cfg.Axis
	if dim < 0 {
		dim = ndim + dim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("concat: axis %d out of range for %dD tensor", c.cfg.Axis, ndim))
	}

	srcStrides := gradOutput.Shape().ComputeStrides()

	offset := 0
	for i, g := range gradInputs {
		if reqs[i] != op.NullOp {
			c.extractSlice(g, gradOutput, dim, offset, srcStrides, reqs[i])
		}
		offset += g.Shape()[dim]
	}
}

// scatterInput copies one input into its slot of the concatenated
// output, honoring req per element.
func (c *concatOp) scatterInput(out, in *tensor.RawTensor, dim, offset int, outStrides []int, req op.WriteReq) {
	switch in.DType() {
	case tensor.Float32:
		catScatter(out.AsFloat32(), in.AsFloat32(), in.Shape(), outStrides, dim, offset, req, c.parallel)
	case tensor.Float64:
		catScatter(out.AsFloat64(), in.AsFloat64(), in.Shape(), outStrides, dim, offset, req, c.parallel)
	case tensor.Int32:
		catScatter(out.AsInt32(), in.AsInt32(), in.Shape(), outStrides, dim, offset, req, c.parallel)
	case tensor.Int64:
		catScatter(out.AsInt64(), in.AsInt64(), in.Shape(), outStrides, dim, offset, req, c.parallel)
	case tensor.Uint8:
		catScatter(out.AsUint8(), in.AsUint8(), in.Shape(), outStrides, dim, offset, req, c.parallel)
	case tensor.Bool:
		catScatterBool(out.AsBool(), in.AsBool(), in.Shape(), outStrides, dim, offset, req, c.parallel)
	default:
		panic(fmt.Sprintf("concat: unsupported dtype %s", in.DType()))
	}
}

// extractSlice copies one slot's slice of src into dst, honoring req.
func (c *concatOp) extractSlice(dst, src *tensor.RawTensor, dim, offset int, srcStrides []int, req op.WriteReq) {
	switch src.DType() {
	case tensor.Float32:
		sliceExtract(dst.AsFloat32(), src.AsFloat32(), dst.Shape(), srcStrides, dim, offset, req, c.parallel)
	case tensor.Float64:
		sliceExtract(dst.AsFloat64(), src.AsFloat64(), dst.Shape(), srcStrides, dim, offset, req, c.parallel)
	case tensor.Int32:
		sliceExtract(dst.AsInt32(), src.AsInt32(), dst.Shape(), srcStrides, dim, offset, req, c.parallel)
	case tensor.Int64:
		sliceExtract(dst.AsInt64(), src.AsInt64(), dst.Shape(), srcStrides, dim, offset, req, c.parallel)
	case tensor.Uint8:
		sliceExtract(dst.AsUint8(), src.AsUint8(), dst.Shape(), srcStrides, dim, offset, req, c.parallel)
	case tensor.Bool:
		sliceExtractBool(dst.AsBool(), src.AsBool(), dst.Shape(), srcStrides, dim, offset, req, c.parallel)
	default:
		panic(fmt.Sprintf("concat: unsupported dtype %s", src.DType()))
	}
}

// catScatter writes every element of in to its concatenated position in
// out: the coordinate along dim is displaced by offset.
func catScatter[T number](out, in []T, inShape tensor.Shape, outStrides []int, dim, offset int, req op.WriteReq, cfg parallel.Config) {
	inStrides := inShape.ComputeStrides()
	parallel.For(len(in), func(i int) {
		outIdx := 0
		temp := i
		for d := 0; d < len(inShape); d++ {
			coord := temp / inStrides[d]
			temp %= inStrides[d]
			if d == dim {
				coord += offset
			}
			outIdx += coord * outStrides[d]
		}
		if req == op.AddTo {
			out[outIdx] += in[i]
		} else {
			out[outIdx] = in[i]
		}
	}, cfg)
}

func catScatterBool(out, in []bool, inShape tensor.Shape, outStrides []int, dim, offset int, req op.WriteReq, cfg parallel.Config) {
	if req == op.AddTo {
		panic("concat: accumulate write unsupported for bool")
	}
	inStrides := inShape.ComputeStrides()
	parallel.For(len(in), func(i int) {
		outIdx := 0
		temp := i
		for d := 0; d < len(inShape); d++ {
			coord := temp / inStrides[d]
			temp %= inStrides[d]
			if d == dim {
				coord += offset
			}
			outIdx += coord * outStrides[d]
		}
		out[outIdx] = in[i]
	}, cfg)
}

// sliceExtract reads the slice of src starting at offset along dim into
// dst, element by element.
func sliceExtract[T number](dst, src []T, dstShape tensor.Shape, srcStrides []int, dim, offset int, req op.WriteReq, cfg parallel.Config) {
	dstStrides := dstShape.ComputeStrides()
	parallel.For(len(dst), func(i int) {
		srcIdx := 0
		temp := i
		for d := 0; d < len(dstShape); d++ {
			coord := temp / dstStrides[d]
			temp %= dstStrides[d]
			if d == dim {
				coord += offset
			}
			srcIdx += coord * srcStrides[d]
		}
		if req == op.AddTo {
			dst[i] += src[srcIdx]
		} else {
			dst[i] = src[srcIdx]
		}
	}, cfg)
}

func sliceExtractBool(dst, src []bool, dstShape tensor.Shape, srcStrides []int, dim, offset int, req op.WriteReq, cfg parallel.Config) {
	if req == op.AddTo {
		panic("concat: accumulate write unsupported for bool")
	}
	dstStrides := dstShape.ComputeStrides()
	parallel.For(len(dst), func(i int) {
		srcIdx := 0
		temp := i
		for d := 0; d < len(dstShape); d++ {
			coord := temp / dstStrides[d]
			temp %= dstStrides[d]
			if d == dim {
				coord += offset
			}
			srcIdx += coord * srcStrides[d]
		}
		dst[i] = src[srcIdx]
	}, cfg)
}
