// Package op implements layout-transformation operators (transpose, vstack,
// roll) over raw tensors, dispatching element-wise work to a compute backend.
package op

// WriteReq tells a kernel how to combine a computed element with the
// destination buffer. It is a closed set consumed uniformly by every
// element-producing kernel; write policies are never re-implemented per
// operator.
type WriteReq int

const (
	// WriteTo overwrites the destination element unconditionally.
	WriteTo WriteReq = iota
	// AddTo accumulates into the existing destination element.
	AddTo
	// NullOp skips the write entirely.
	NullOp
)

// String returns a human-readable name for the write request.
func (r WriteReq) String() string {
	switch r {
	case WriteTo:
		return "write"
	case AddTo:
		return "add"
	case NullOp:
		return "null"
	default:
		return "unknown"
	}
}
