package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInterval indicates a non-positive interval length.
	ErrInvalidInterval = errors.New("interval must be positive")
	// ErrInsufficientTotalTime indicates the total budget cannot hold interval x repeats.
	ErrInsufficientTotalTime = errors.New("total time cannot accommodate the requested repeats")
)

// ValidationError reports rejected timer inputs.
type ValidationError struct {
	Err             error
	TotalSeconds    int
	IntervalSeconds int
	RepeatCount     int
}

func (err *ValidationError) Error() string {
	if errors.Is(err.Err, ErrInvalidInterval) {
		return fmt.Sprintf("invalid timer config: interval %ds: %v", err.IntervalSeconds, err.Err)
	}
	return fmt.Sprintf("invalid timer config: total %ds, interval %ds, repeats %d: %v",
		err.TotalSeconds, err.IntervalSeconds, err.RepeatCount, err.Err)
}

func (err *ValidationError) Unwrap() error {
	return err.Err
}
