//go:build windows

package webgpu

import (
	"encoding/binary"
	"fmt"

	"github.com/go-webgpu/webgpu/wgpu"
	"github.com/tensora-ml/tensora/internal/op"
	"github.com/tensora-ml/tensora/internal/tensor"
)

// gpuConcat concatenates row-major tensors along the leading axis.
// Axis-0 concatenation is a contiguous byte layout, so the forward
// pass is a sequence of buffer-to-buffer copies and the accumulate
// paths run the addRange kernel over element ranges.
type gpuConcat struct {
	backend *Backend
	cfg     op.ConcatConfig
	inited  bool
}

func (c *gpuConcat) Init(cfg op.ConcatConfig) {
	if cfg.NumArgs < 1 {
		panic(fmt.Sprintf("concat: num_args must be at least 1, got %d", cfg.NumArgs))
	}
	c.cfg = cfg
	c.inited = true
}

func (c *gpuConcat) Forward(inputs []*tensor.RawTensor, reqs []op.WriteReq, outputs []*tensor.RawTensor) {
	if !c.inited {
		panic("concat: Forward called before Init")
	}
	if len(inputs) != c.cfg.NumArgs {
		panic(fmt.Sprintf("concat: expected %d inputs, got %d", c.cfg.NumArgs, len(inputs)))
	}
	if len(outputs) != 1 || len(reqs) != 1 {
		panic("concat: expected exactly one output and one write request")
	}
	if reqs[0] == op.NullOp {
		return
	}

	out := outputs[0]
	c.checkAxis(inputs[0])
	requireFloat32("concat", inputs[0])

	totalDim := 0
	for _, in := range inputs {
		if in.DType() != out.DType() {
			panic("concat: input dtype does not match output dtype")
		}
		if len(in.Shape()) != len(out.Shape()) {
			panic("concat: input rank does not match output rank")
		}
		for d := 1; d < len(in.Shape()); d++ {
			if in.Shape()[d] != out.Shape()[d] {
				panic(fmt.Sprintf("concat: dimension %d mismatch: %d vs %d", d, in.Shape()[d], out.Shape()[d]))
			}
		}
		totalDim += in.Shape()[0]
	}
	if totalDim != out.Shape()[0] {
		panic(fmt.Sprintf("concat: output dimension %d does not match total input dimension %d", out.Shape()[0], totalDim))
	}

	outSize := uint64(out.ByteSize()) //nolint:gosec // G115: ByteSize() is non-negative

	if reqs[0] == op.WriteTo {
		bufferOut := c.backend.device.CreateBuffer(&wgpu.BufferDescriptor{
			Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst,
			Size:  outSize,
		})
		defer bufferOut.Release()

		encoder := c.backend.device.CreateCommandEncoder(nil)
		byteOffset := uint64(0)
		buffers := make([]*wgpu.Buffer, 0, len(inputs))
		for _, in := range inputs {
			bufferIn := c.backend.createBuffer(in.Data(), wgpu.BufferUsageCopySrc)
			buffers = append(buffers, bufferIn)
			size := uint64(in.ByteSize()) //nolint:gosec // G115
			encoder.CopyBufferToBuffer(bufferIn, 0, bufferOut, byteOffset, size)
			byteOffset += size
		}
		cmdBuffer := encoder.Finish(nil)
		c.backend.queue.Submit(cmdBuffer)
		for _, buf := range buffers {
			buf.Release()
		}

		c.backend.readInto(out, bufferOut, outSize)
		return
	}

	// AddTo: seed the result with the current output and accumulate
	// each input into its element range.
	bufferOut := c.backend.createBuffer(out.Data(), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc|wgpu.BufferUsageCopyDst)
	defer bufferOut.Release()

	elemOffset := 0
	for _, in := range inputs {
		bufferIn := c.backend.createBuffer(in.Data(), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
		c.backend.addRange(bufferOut, bufferIn, in.NumElements(), 0, elemOffset, outSize, uint64(in.ByteSize())) //nolint:gosec // G115
		bufferIn.Release()
		elemOffset += in.NumElements()
	}

	c.backend.readInto(out, bufferOut, outSize)
}

func (c *gpuConcat) Backward(gradOutput *tensor.RawTensor, reqs []op.WriteReq, gradInputs []*tensor.RawTensor) {
	if !c.inited {
		panic("concat: Backward called before Init")
	}
	if len(gradInputs) != c.cfg.NumArgs || len(reqs) != c.cfg.NumArgs {
		panic(fmt.Sprintf("concat: expected %d gradient slots, got %d", c.cfg.NumArgs, len(gradInputs)))
	}
	c.checkAxis(gradOutput)
	requireFloat32("concat", gradOutput)

	gradSize := uint64(gradOutput.ByteSize()) //nolint:gosec // G115
	bufferGrad := c.backend.createBuffer(gradOutput.Data(), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer bufferGrad.Release()

	elemOffset := 0
	for i, slot := range gradInputs {
		slotElems := slot.NumElements()
		slotSize := uint64(slot.ByteSize()) //nolint:gosec // G115
		switch reqs[i] {
		case op.NullOp:
			// nothing to write, the range is still consumed
		case op.WriteTo:
			bufferSlot := c.backend.device.CreateBuffer(&wgpu.BufferDescriptor{
				Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst,
				Size:  slotSize,
			})
			encoder := c.backend.device.CreateCommandEncoder(nil)
			encoder.CopyBufferToBuffer(bufferGrad, uint64(elemOffset)*4, bufferSlot, 0, slotSize) //nolint:gosec // G115
			cmdBuffer := encoder.Finish(nil)
			c.backend.queue.Submit(cmdBuffer)
			c.backend.readInto(slot, bufferSlot, slotSize)
			bufferSlot.Release()
		case op.AddTo:
			bufferSlot := c.backend.createBuffer(slot.Data(), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc|wgpu.BufferUsageCopyDst)
			c.backend.addRange(bufferSlot, bufferGrad, slotElems, elemOffset, 0, slotSize, gradSize)
			c.backend.readInto(slot, bufferSlot, slotSize)
			bufferSlot.Release()
		}
		elemOffset += slotElems
	}
}

func (c *gpuConcat) checkAxis(t *tensor.RawTensor) {
	axis := c.cfg.Axis
	if axis < 0 {
		axis += len(t.Shape())
	}
	if axis != 0 {
		panic(fmt.Sprintf("webgpu: concat: only axis 0 is supported, got %d", c.cfg.Axis))
	}
}

// addRange accumulates count elements of src starting at srcOffset into
// dst starting at dstOffset.
func (b *Backend) addRange(dst, src *wgpu.Buffer, count, srcOffset, dstOffset int, dstSize, srcSize uint64) {
	params := make([]byte, 16)
	binary.LittleEndian.PutUint32(params[0:4], uint32(count))      //nolint:gosec // G115: element counts fit u32
	binary.LittleEndian.PutUint32(params[4:8], uint32(srcOffset))  //nolint:gosec // G115
	binary.LittleEndian.PutUint32(params[8:12], uint32(dstOffset)) //nolint:gosec // G115
	bufferParams := b.createUniformBuffer(params)
	defer bufferParams.Release()

	shader := b.compileShader("add_range", addRangeShader)
	pipeline := b.getOrCreatePipeline("add_range", shader)

	bindGroupLayout := pipeline.GetBindGroupLayout(0)
	bindGroup := b.device.CreateBindGroupSimple(bindGroupLayout, []wgpu.BindGroupEntry{
		wgpu.BufferBindingEntry(0, src, 0, srcSize),
		wgpu.BufferBindingEntry(1, dst, 0, dstSize),
		wgpu.BufferBindingEntry(2, bufferParams, 0, 16),
	})
	defer bindGroup.Release()

	b.dispatch(pipeline, bindGroup, count)
}
