// Package bulk issues the bulk attribute-listing call against an open
// directory descriptor. Each Refill writes a batch of attr records into a
// caller supplied scratch buffer.
package bulk

import "errors"

// ScratchSize is the size of the scratch buffer handed to Refill.
const ScratchSize = 128 * 1024

// Reasons an Open can fail. OpenError unwraps to one of these and to the errno.
var (
	ErrNotFound    = errors.New("no such file or directory")
	ErrPermission  = errors.New("permission denied")
	ErrNotDir      = errors.New("not a directory")
	ErrAccess      = errors.New("cannot access directory")
	ErrUnsupported = errors.New("bulk attribute listing is not supported on this platform")
)

// OpenError is returned by Open.
type OpenError struct {
	Path   string
	Reason error
	Err    error
}

func (e *OpenError) Error() string {
	return e.Path + ": " + e.Reason.Error()
}

func (e *OpenError) Unwrap() []error {
	return []error{e.Reason, e.Err}
}

// ReadError is returned by Refill when the bulk call itself fails.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return e.Path + ": cannot read directory contents: " + e.Err.Error()
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

func trimNul(p []byte) string {
	if n := len(p); n > 0 && p[n-1] == 0 {
		p = p[:n-1]
	}
	return string(p)
}
