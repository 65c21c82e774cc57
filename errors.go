package stratum

import (
	"errors"

	"github.com/stratumcfg/stratum/source"
)

var (
	// ErrNotFound reports that no layer defines the path. Recoverable: the
	// caller decides whether a fallback is meaningful.
	ErrNotFound = errors.New("configuration key not found")

	// ErrNotWritable reports a write against a stack with no layer marked
	// as the write target.
	ErrNotWritable = errors.New("no writable layer configured")

	// ErrWriteRejected reports that the writable layer's adapter refused
	// the write. The adapter's cause is attached.
	ErrWriteRejected = errors.New("write rejected by layer")
)

// Adapter-level failures surface unchanged through the engine; aliases here
// save callers an extra import when matching with errors.Is.
var (
	// ErrUnavailable: a remote backend could not be reached. Distinct from
	// ErrNotFound by design — an unreachable layer is not an absent one.
	ErrUnavailable = source.ErrUnavailable

	// ErrTypeMismatch: a path addressed a section as a key or vice versa.
	ErrTypeMismatch = source.ErrTypeMismatch
)
