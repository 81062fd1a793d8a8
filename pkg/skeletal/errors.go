package skeletal

import "errors"

// Sentinel errors for skeletal graph operations. Call sites wrap these
// with context; match with errors.Is.
var (
	// ErrInvalidArgument indicates a null or stale descriptor, an
	// out-of-range index, or an unmet precondition such as collapsing a
	// vertex of the wrong degree.
	ErrInvalidArgument = errors.New("skeletal: invalid argument")

	// ErrNoPath indicates a breadth-first search ran out of reachable
	// vertices or exhausted its iteration budget without reaching the
	// target vertex.
	ErrNoPath = errors.New("skeletal: no path between vertices")

	// ErrInternal indicates an invariant violation detected at runtime.
	// The operation that reports it is aborted and the graph should be
	// treated as suspect.
	ErrInternal = errors.New("skeletal: internal inconsistency")
)
