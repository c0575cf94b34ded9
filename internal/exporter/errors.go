package exporter

import (
	"fmt"
)

// EpochError reports the epoch that stopped a run.
type EpochError struct {
	Source string
	Epoch  int
	Err    error
}

func (e *EpochError) Error() string {
	return fmt.Sprintf("unable to export epoch %d from %s: %s", e.Epoch, e.Source, e.Err)
}

func (e *EpochError) Unwrap() error {
	return e.Err
}
