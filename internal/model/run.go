package model

import (
	"time"

	"github.com/google/uuid"
)

// RunRecord is a persisted record of one pipeline run. The parse, clean,
// and export commands save a record on completion so that a corpus
// directory carries its own processing history.
type RunRecord struct {
	// ID is a random UUID assigned when the run starts.
	ID string `json:"id"`

	// Command is the subcommand that performed the run (parse, clean, export).
	Command string `json:"command"`

	// InputFile is the path of the corpus file that was read.
	InputFile string `json:"input_file"`

	// OutputFile is the path that was written. For export runs this is the
	// output directory rather than a single file.
	OutputFile string `json:"output_file"`

	// Rows is the number of corpus rows processed.
	Rows int `json:"rows"`

	// Skipped is the number of texts replaced with a complexity skip marker.
	Skipped int `json:"skipped"`

	// TimedOut is the number of texts replaced with a timeout marker.
	TimedOut int `json:"timed_out"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// FinishedAt is when the run completed.
	FinishedAt time.Time `json:"finished_at"`

	// ErrorMessage holds the failure message for runs that did not complete.
	ErrorMessage string `json:"error,omitempty"` //nolint:tagliatelle // error is conventional
}

// NewRunRecord creates a run record for the given command and input file.
// The record gets a fresh UUID and the current time as its start time.
func NewRunRecord(command, inputFile string) *RunRecord {
	return &RunRecord{
		ID:        uuid.NewString(),
		Command:   command,
		InputFile: inputFile,
		StartedAt: time.Now(),
	}
}

// Finish stamps the completion time. It is safe to call once the counters
// have been filled in.
func (r *RunRecord) Finish() {
	r.FinishedAt = time.Now()
}

// Duration returns how long the run took. Zero if the run never finished.
func (r *RunRecord) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
