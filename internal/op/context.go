package op

import "github.com/tensora-ml/tensora/internal/tensor"

// Backend is the execution capability consumed by the operator entry
// points. Implementations run one independent unit of work per output
// element; no unit communicates with or orders against another.
//
// Implementations:
//   - cpu: chunked goroutine execution
//   - webgpu: WGSL compute kernels
type Backend interface {
	// ShiftFlat writes dst[i] = src[(i - shift) mod size] over the
	// flattened buffers, honoring req per element. shift must already
	// be normalized into [0, size).
	ShiftFlat(dst, src *tensor.RawTensor, shift int, req WriteReq)

	// IndexGather writes dst[i] = src[index[i]], honoring req per
	// element. The index table lives in host memory; device backends
	// transfer it before the consuming launch on the same queue.
	IndexGather(dst, src *tensor.RawTensor, index []int, req WriteReq)

	// TransposeInto performs the strided copy dst = transpose(src, axes).
	// axes must be a bijection over [0, ndim); dst is fully overwritten.
	TransposeInto(dst, src *tensor.RawTensor, axes []int)

	// Concat returns a fresh, uninitialized concatenation primitive.
	Concat() Concatenator

	// Metadata
	Name() string
	Device() tensor.Device
}

// Context carries everything one operator invocation needs: the compute
// backend and request-scoped scratch memory. The backend is a type
// parameter so dispatch is resolved at compile time, the same way
// tensors are parameterized over their backend.
type Context[B Backend] struct {
	Backend   B
	Workspace *Workspace
}

// NewContext creates a Context with a fresh workspace.
func NewContext[B Backend](b B) *Context[B] {
	return &Context[B]{Backend: b, Workspace: &Workspace{}}
}

// Workspace hands out request-scoped scratch memory. It is valid for
// the duration of one operator call and must not be shared between
// concurrent calls.
type Workspace struct {
	index []int
}

// IndexTable returns scratch space for an n-entry index table.
// The contents are unspecified; the caller fills every entry.
func (w *Workspace) IndexTable(n int) []int {
	if w == nil {
		return make([]int, n)
	}
	if cap(w.index) < n {
		w.index = make([]int, n)
	}
	return w.index[:n]
}
