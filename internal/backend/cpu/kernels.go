package cpu

import (
	"github.com/tensora-ml/tensora/internal/op"
	"github.com/tensora-ml/tensora/internal/parallel"
	"github.com/tensora-ml/tensora/internal/tensor"
)

// number covers the element types that support accumulation.
type number interface {
	~float32 | ~float64 | ~int32 | ~int64 | ~uint8
}

// shiftFlat applies the closed-formula flat roll: destination i reads
// source (i - shift + size) when i - shift is negative, i - shift
// otherwise. One independent unit of work per output element.
func shiftFlat[T number](dst, src []T, shift int, req op.WriteReq, cfg parallel.Config) {
	size := len(src)
	switch req {
	case op.AddTo:
		parallel.For(len(dst), func(i int) {
			j := i - shift
			if j < 0 {
				j += size
			}
			dst[i] += src[j]
		}, cfg)
	default:
		parallel.For(len(dst), func(i int) {
			j := i - shift
			if j < 0 {
				j += size
			}
			dst[i] = src[j]
		}, cfg)
	}
}

func shiftFlatBool(dst, src []bool, shift int, req op.WriteReq, cfg parallel.Config) {
	if req == op.AddTo {
		panic("shiftflat: accumulate write unsupported for bool")
	}
	size := len(src)
	parallel.For(len(dst), func(i int) {
		j := i - shift
		if j < 0 {
			j += size
		}
		dst[i] = src[j]
	}, cfg)
}

// gather applies a precomputed index table: dst[i] = src[index[i]].
func gather[T number](dst, src []T, index []int, req op.WriteReq, cfg parallel.Config) {
	switch req {
	case op.AddTo:
		parallel.For(len(dst), func(i int) {
			dst[i] += src[index[i]]
		}, cfg)
	default:
		parallel.For(len(dst), func(i int) {
			dst[i] = src[index[i]]
		}, cfg)
	}
}

func gatherBool(dst, src []bool, index []int, req op.WriteReq, cfg parallel.Config) {
	if req == op.AddTo {
		panic("gather: accumulate write unsupported for bool")
	}
	parallel.For(len(dst), func(i int) {
		dst[i] = src[index[i]]
	}, cfg)
}

// transposeCopy performs the strided copy of a transpose: the source
// element at multi-index c lands at the destination multi-index that
// permutes c by axes.
func transposeCopy[T any](dst, src []T, shape tensor.Shape, axes []int, cfg parallel.Config) {
	ndim := len(shape)
	srcStrides := shape.ComputeStrides()

	dstShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		dstShape[i] = shape[ax]
	}
	dstStrides := dstShape.ComputeStrides()

	parallel.For(len(src), func(i int) {
		coords := make([]int, ndim)
		idx := i
		for d := 0; d < ndim; d++ {
			coords[d] = idx / srcStrides[d]
			idx %= srcStrides[d]
		}

		dstIdx := 0
		for d, ax := range axes {
			dstIdx += coords[ax] * dstStrides[d]
		}
		dst[dstIdx] = src[i]
	}, cfg)
}
