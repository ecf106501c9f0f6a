package aggregate

import "fmt"

// NotImplementedError reports a construction parameter, aggregate kind, or
// scalar type the table declares but does not (yet) support: downsizing,
// resizing a non-empty table, parallel mode, an unknown AggKind, or an AVG
// gather over a type outside the dispatchable set.
type NotImplementedError struct {
	Reason string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("not implemented: %s", e.Reason)
}

// OutOfMemoryError reports an allocation failure. Requested is the byte
// count that could not be obtained.
type OutOfMemoryError struct {
	Requested int
}

func (e *OutOfMemoryError) Error() string {
	return fmt.Sprintf("out of memory: requested %d bytes", e.Requested)
}

func notImplemented(reason string) error {
	return &NotImplementedError{Reason: reason}
}
