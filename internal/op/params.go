package op

// Operator configuration is decoded from the graph description by the
// surrounding executor and handed to the entry points as plain structs.
// Optional fields use a nil slice as the "unset" sentinel, which stays
// distinguishable from an explicitly empty value.

// TransposeParam configures the transpose operator.
type TransposeParam struct {
	// Axes permutes the dimensions of the input. When nil, the
	// dimensions are reversed; otherwise Axes must be a permutation
	// of [0, ndim).
	Axes []int
}

// VstackParam configures the row-stack operator.
type VstackParam struct {
	// NumArgs is the declared number of inputs to be stacked.
	NumArgs int
}

// RollParam configures the circular-shift operator.
type RollParam struct {
	// Shift is the number of places by which elements are shifted.
	// With multiple values, Axis must list the same number of axes and
	// each listed axis is shifted by the corresponding amount. A single
	// value is broadcast to every listed axis.
	Shift []int
	// Axis lists the axes along which elements are shifted. Negative
	// values count from the end. When nil, the array is flattened
	// before shifting and the original shape is restored afterwards.
	Axis []int
}
