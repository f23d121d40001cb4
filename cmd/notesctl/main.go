package main

import (
	"fmt"
	"os"
)

// Exit codes
const (
	ExitSuccess      = 0
	ExitError        = 1
	ExitSweepFailure = 3 // the sweep ran but some records failed to send
)

// SweepFailureError reports records that were not delivered during a sweep
type SweepFailureError struct {
	Failed int
}

func (e *SweepFailureError) Error() string {
	return fmt.Sprintf("%d record(s) could not be sent", e.Failed)
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if _, ok := err.(*SweepFailureError); ok {
			os.Exit(ExitSweepFailure)
		}
		os.Exit(ExitError)
	}
}
