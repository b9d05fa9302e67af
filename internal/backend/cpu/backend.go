// Package cpu implements the CPU execution backend for the layout operators.
package cpu

import (
	"fmt"

	"github.com/tensora-ml/tensora/internal/op"
	"github.com/tensora-ml/tensora/internal/parallel"
	"github.com/tensora-ml/tensora/internal/tensor"
)

// CPUBackend runs element-wise kernels on the host, chunked across
// goroutines. It implements op.Backend.
type CPUBackend struct {
	device   tensor.Device
	parallel parallel.Config
}

// New creates a new CPU backend with default parallelism.
func New() *CPUBackend {
	return &CPUBackend{
		device:   tensor.CPU,
		parallel: parallel.DefaultConfig(),
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Concat returns a fresh concatenation primitive bound to this backend.
func (cpu *CPUBackend) Concat() op.Concatenator {
	return &concatOp{parallel: cpu.parallel, device: cpu.device}
}

// ShiftFlat writes dst[i] = src[(i - shift) mod size] over the flattened
// buffers. shift must already be normalized into [0, size).
func (cpu *CPUBackend) ShiftFlat(dst, src *tensor.RawTensor, shift int, req op.WriteReq) {
	if req == op.NullOp {
		return
	}
	if dst.NumElements() != src.NumElements() {
		panic(fmt.Sprintf("shiftflat: size mismatch: %v vs %v", dst.Shape(), src.Shape()))
	}
	switch src.DType() {
	case tensor.Float32:
		shiftFlat(dst.AsFloat32(), src.AsFloat32(), shift, req, cpu.parallel)
	case tensor.Float64:
		shiftFlat(dst.AsFloat64(), src.AsFloat64(), shift, req, cpu.parallel)
	case tensor.Int32:
		shiftFlat(dst.AsInt32(), src.AsInt32(), shift, req, cpu.parallel)
	case tensor.Int64:
		shiftFlat(dst.AsInt64(), src.AsInt64(), shift, req, cpu.parallel)
	case tensor.Uint8:
		shiftFlat(dst.AsUint8(), src.AsUint8(), shift, req, cpu.parallel)
	case tensor.Bool:
		shiftFlatBool(dst.AsBool(), src.AsBool(), shift, req, cpu.parallel)
	default:
		panic(fmt.Sprintf("shiftflat: unsupported dtype %s", src.DType()))
	}
}

// IndexGather writes dst[i] = src[index[i]] for every destination offset.
func (cpu *CPUBackend) IndexGather(dst, src *tensor.RawTensor, index []int, req op.WriteReq) {
	if req == op.NullOp {
		return
	}
	if dst.NumElements() != len(index) {
		panic(fmt.Sprintf("gather: index table has %d entries for %d outputs", len(index), dst.NumElements()))
	}
	switch src.DType() {
	case tensor.Float32:
		gather(dst.AsFloat32(), src.AsFloat32(), index, req, cpu.parallel)
	case tensor.Float64:
		gather(dst.AsFloat64(), src.AsFloat64(), index, req, cpu.parallel)
	case tensor.Int32:
		gather(dst.AsInt32(), src.AsInt32(), index, req, cpu.parallel)
	case tensor.Int64:
		gather(dst.AsInt64(), src.AsInt64(), index, req, cpu.parallel)
	case tensor.Uint8:
		gather(dst.AsUint8(), src.AsUint8(), index, req, cpu.parallel)
	case tensor.Bool:
		gatherBool(dst.AsBool(), src.AsBool(), index, req, cpu.parallel)
	default:
		panic(fmt.Sprintf("gather: unsupported dtype %s", src.DType()))
	}
}

// TransposeInto performs the strided copy dst = transpose(src, axes).
func (cpu *CPUBackend) TransposeInto(dst, src *tensor.RawTensor, axes []int) {
	switch src.DType() {
	case tensor.Float32:
		transposeCopy(dst.AsFloat32(), src.AsFloat32(), src.Shape(), axes, cpu.parallel)
	case tensor.Float64:
		transposeCopy(dst.AsFloat64(), src.AsFloat64(), src.Shape(), axes, cpu.parallel)
	case tensor.Int32:
		transposeCopy(dst.AsInt32(), src.AsInt32(), src.Shape(), axes, cpu.parallel)
	case tensor.Int64:
		transposeCopy(dst.AsInt64(), src.AsInt64(), src.Shape(), axes, cpu.parallel)
	case tensor.Uint8:
		transposeCopy(dst.AsUint8(), src.AsUint8(), src.Shape(), axes, cpu.parallel)
	case tensor.Bool:
		transposeCopy(dst.AsBool(), src.AsBool(), src.Shape(), axes, cpu.parallel)
	default:
		panic(fmt.Sprintf("transpose: unsupported dtype %s", src.DType()))
	}
}
