package op

import "github.com/tensora-ml/tensora/internal/tensor"

// ConcatConfig configures a Concatenator instance.
type ConcatConfig struct {
	NumArgs int // number of inputs to concatenate
	Axis    int // axis along which to concatenate
}

// Concatenator is the generic N-dimensional concatenation primitive.
// It is an external collaborator of this package: vstack decomposes into
// row views plus a Concatenator call and never concatenates elements
// itself. Backends supply the implementation.
type Concatenator interface {
	// Init binds the instance to a configuration. Must be called
	// exactly once before Forward or Backward.
	Init(cfg ConcatConfig)

	// Forward concatenates inputs along the configured axis into
	// outputs[0], honoring reqs[0].
	Forward(inputs []*tensor.RawTensor, reqs []WriteReq, outputs []*tensor.RawTensor)

	// Backward splits gradOutput along the configured axis back into
	// gradInputs, honoring the per-slot write request.
	Backward(gradOutput *tensor.RawTensor, reqs []WriteReq, gradInputs []*tensor.RawTensor)
}
