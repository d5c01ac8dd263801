package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess   = 0 // Command completed
	ExitJobFailed = 1 // A watched job reached the failed state
	ExitError     = 2 // Configuration or runtime error
)

// JobFailedError indicates a job was watched to completion and the backend
// reported it failed.
type JobFailedError struct {
	JobID   string
	Message string
}

func (e *JobFailedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("job %s failed", e.JobID)
	}
	return fmt.Sprintf("job %s failed: %s", e.JobID, e.Message)
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var jobErr *JobFailedError
		if errors.As(err, &jobErr) {
			os.Exit(ExitJobFailed)
		}

		os.Exit(ExitError)
	}
}
