package optimizerun

import "encoding/json"

// Status describes the terminal (or current) state of an optimization run.
type Status string

const (
	// StatusProcessing indicates that the run is still in progress.
	StatusProcessing = Status("processing")

	// StatusCompleted indicates that the run completed successfully.
	StatusCompleted = Status("completed")

	// StatusFailed indicates that the run was aborted by a fatal error.
	// Per-file failures do not produce this status; they are reflected as
	// a smaller processed-file count in the final stats.
	StatusFailed = Status("failed")

	// StatusCancelled indicates that the run was interrupted via context
	// cancellation before it could complete.
	StatusCancelled = Status("cancelled")
)

// MarshalJSON implements the json.Marshaler interface.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}
