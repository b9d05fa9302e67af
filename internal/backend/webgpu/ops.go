//go:build windows

package webgpu

import (
	"encoding/binary"
	"fmt"

	"github.com/go-webgpu/webgpu/wgpu"
	"github.com/tensora-ml/tensora/internal/op"
	"github.com/tensora-ml/tensora/internal/tensor"
)

var _ op.Backend = (*Backend)(nil)

// Name returns the backend name.
func (b *Backend) Name() string {
	return "WebGPU"
}

// Device returns the compute device.
func (b *Backend) Device() tensor.Device {
	return tensor.WebGPU
}

// Concat returns a fresh concatenation primitive bound to this backend.
func (b *Backend) Concat() op.Concatenator {
	return &gpuConcat{backend: b}
}

// ShiftFlat applies the closed-formula flat roll on GPU. The kernel
// computes each source offset directly; no index table is transferred.
func (b *Backend) ShiftFlat(dst, src *tensor.RawTensor, shift int, req op.WriteReq) {
	if req == op.NullOp {
		return
	}
	requireFloat32("shiftflat", src)

	numElements := src.NumElements()
	shaderName := "roll_flat"
	shaderCode := rollFlatShader
	if req == op.AddTo {
		shaderName = "roll_flat_add"
		shaderCode = rollFlatAddShader
	}

	params := make([]byte, 16)
	binary.LittleEndian.PutUint32(params[0:4], uint32(numElements))  //nolint:gosec // G115: element counts fit u32
	binary.LittleEndian.PutUint32(params[4:8], uint32(shift))        //nolint:gosec // G115: shift normalized into [0, size)
	bufferParams := b.createUniformBuffer(params)
	defer bufferParams.Release()

	bufferSrc := b.createBuffer(src.Data(), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer bufferSrc.Release()

	// Result starts from the destination's current contents so the
	// accumulate variant reads valid values.
	bufferResult := b.createBuffer(dst.Data(), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc|wgpu.BufferUsageCopyDst)
	defer bufferResult.Release()

	resultSize := uint64(dst.ByteSize()) //nolint:gosec // G115: ByteSize() is non-negative

	shader := b.compileShader(shaderName, shaderCode)
	pipeline := b.getOrCreatePipeline(shaderName, shader)

	bindGroupLayout := pipeline.GetBindGroupLayout(0)
	bindGroup := b.device.CreateBindGroupSimple(bindGroupLayout, []wgpu.BindGroupEntry{
		wgpu.BufferBindingEntry(0, bufferSrc, 0, resultSize),
		wgpu.BufferBindingEntry(1, bufferResult, 0, resultSize),
		wgpu.BufferBindingEntry(2, bufferParams, 0, 16),
	})
	defer bindGroup.Release()

	b.dispatch(pipeline, bindGroup, numElements)
	b.readInto(dst, bufferResult, resultSize)
}

// IndexGather applies a host-built permutation table on GPU. The table
// upload and the consuming dispatch are submitted on the same queue, so
// the copy is ordered before the kernel reads it even though the launch
// is asynchronous with respect to the host.
func (b *Backend) IndexGather(dst, src *tensor.RawTensor, index []int, req op.WriteReq) {
	if req == op.NullOp {
		return
	}
	requireFloat32("gather", src)

	numElements := dst.NumElements()
	if len(index) != numElements {
		panic(fmt.Sprintf("webgpu: gather: index table has %d entries for %d outputs", len(index), numElements))
	}

	shaderName := "gather"
	shaderCode := gatherShader
	if req == op.AddTo {
		shaderName = "gather_add"
		shaderCode = gatherAddShader
	}

	indexData := make([]byte, 4*len(index))
	for i, v := range index {
		binary.LittleEndian.PutUint32(indexData[4*i:], uint32(v)) //nolint:gosec // G115: offsets fit u32
	}

	params := make([]byte, 16)
	binary.LittleEndian.PutUint32(params[0:4], uint32(numElements)) //nolint:gosec // G115: element counts fit u32
	bufferParams := b.createUniformBuffer(params)
	defer bufferParams.Release()

	bufferSrc := b.createBuffer(src.Data(), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer bufferSrc.Release()

	bufferIndex := b.createBuffer(indexData, wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer bufferIndex.Release()

	bufferResult := b.createBuffer(dst.Data(), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc|wgpu.BufferUsageCopyDst)
	defer bufferResult.Release()

	resultSize := uint64(dst.ByteSize()) //nolint:gosec // G115: ByteSize() is non-negative

	shader := b.compileShader(shaderName, shaderCode)
	pipeline := b.getOrCreatePipeline(shaderName, shader)

	bindGroupLayout := pipeline.GetBindGroupLayout(0)
	bindGroup := b.device.CreateBindGroupSimple(bindGroupLayout, []wgpu.BindGroupEntry{
		wgpu.BufferBindingEntry(0, bufferSrc, 0, uint64(src.ByteSize())), //nolint:gosec // G115
		wgpu.BufferBindingEntry(1, bufferIndex, 0, uint64(len(indexData))),
		wgpu.BufferBindingEntry(2, bufferResult, 0, resultSize),
		wgpu.BufferBindingEntry(3, bufferParams, 0, 16),
	})
	defer bindGroup.Release()

	b.dispatch(pipeline, bindGroup, numElements)
	b.readInto(dst, bufferResult, resultSize)
}

// TransposeInto performs the strided copy as a gather over a host-built
// index table mapping each destination offset to its source offset.
func (b *Backend) TransposeInto(dst, src *tensor.RawTensor, axes []int) {
	requireFloat32("transpose", src)
	b.IndexGather(dst, src, transposeIndex(src.Shape(), axes), op.WriteTo)
}

// transposeIndex builds the destination-to-source offset table of a
// transpose: destination coordinate c reads source coordinate c
// permuted back through axes.
func transposeIndex(shape tensor.Shape, axes []int) []int {
	ndim := len(shape)
	srcStrides := shape.ComputeStrides()

	dstShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		dstShape[i] = shape[ax]
	}
	dstStrides := dstShape.ComputeStrides()

	table := make([]int, shape.NumElements())
	for i := range table {
		srcIdx := 0
		temp := i
		for d := 0; d < ndim; d++ {
			coord := temp / dstStrides[d]
			temp %= dstStrides[d]
			srcIdx += coord * srcStrides[axes[d]]
		}
		table[i] = srcIdx
	}
	return table
}

// dispatch runs one compute pass over numElements invocations.
func (b *Backend) dispatch(pipeline *wgpu.ComputePipeline, bindGroup *wgpu.BindGroup, numElements int) {
	encoder := b.device.CreateCommandEncoder(nil)
	computePass := encoder.BeginComputePass(nil)

	computePass.SetPipeline(pipeline)
	computePass.SetBindGroup(0, bindGroup, nil)

	workgroups := uint32((numElements + workgroupSize - 1) / workgroupSize) //nolint:gosec // G115
	computePass.DispatchWorkgroups(workgroups, 1, 1)
	computePass.End()

	cmdBuffer := encoder.Finish(nil)
	b.queue.Submit(cmdBuffer)
}

// readInto copies a GPU result buffer back into the destination tensor.
func (b *Backend) readInto(dst *tensor.RawTensor, buffer *wgpu.Buffer, size uint64) {
	data, err := b.readBuffer(buffer, size)
	if err != nil {
		panic(fmt.Sprintf("webgpu: read back failed: %v", err))
	}
	copy(dst.Data(), data)
}

func requireFloat32(name string, t *tensor.RawTensor) {
	if t.DType() != tensor.Float32 {
		panic(fmt.Sprintf("webgpu: %s: only float32 is supported, got %s", name, t.DType()))
	}
}
