package optimize

import "errors"

// Fatal error categories for an optimization run. Per-file transform
// failures are never fatal; they are logged, the file keeps its original
// bytes, and the run continues.
var (
	// ErrProvider indicates the working copy could not be materialized
	// from the source provider.
	ErrProvider = errors.New("provider unavailable")

	// ErrPackaging indicates the output archive could not be created.
	ErrPackaging = errors.New("packaging failed")
)
