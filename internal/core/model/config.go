package model

import "fmt"

// TimerConfig describes one interval-repeat run. It is built once per start
// and never modified afterwards.
type TimerConfig struct {
	IntervalSeconds int
	TotalSeconds    int
	RepeatCount     int
}

// NewTimerConfig validates the inputs and derives the repeat count.
// A positive repeatOverride takes precedence over the derived count; a
// non-positive override means "derive from the total".
func NewTimerConfig(totalSeconds, intervalSeconds, repeatOverride int) (TimerConfig, error) {
	derived, err := ComputeRepeatCount(totalSeconds, intervalSeconds)
	if err != nil {
		return TimerConfig{}, &ValidationError{
			Err:             err,
			TotalSeconds:    totalSeconds,
			IntervalSeconds: intervalSeconds,
		}
	}

	repeatCount := derived
	if repeatOverride > 0 {
		repeatCount = repeatOverride
	}
	if repeatCount < 1 {
		repeatCount = 1
	}

	config := TimerConfig{
		IntervalSeconds: intervalSeconds,
		TotalSeconds:    totalSeconds,
		RepeatCount:     repeatCount,
	}
	if err := config.Validate(); err != nil {
		return TimerConfig{}, err
	}
	return config, nil
}

// Validate checks that the interval is positive and that the total budget
// accommodates every repeat.
func (config TimerConfig) Validate() error {
	if config.IntervalSeconds <= 0 {
		return config.invalid(ErrInvalidInterval)
	}
	// IntervalSeconds*RepeatCount <= TotalSeconds, checked without overflow.
	if config.RepeatCount < 1 || config.TotalSeconds < 0 ||
		config.RepeatCount > config.TotalSeconds/config.IntervalSeconds {
		return config.invalid(ErrInsufficientTotalTime)
	}
	return nil
}

// String renders the config for log lines.
func (config TimerConfig) String() string {
	return fmt.Sprintf("%dx%ds of %ds", config.RepeatCount, config.IntervalSeconds, config.TotalSeconds)
}

func (config TimerConfig) invalid(err error) error {
	return &ValidationError{
		Err:             err,
		TotalSeconds:    config.TotalSeconds,
		IntervalSeconds: config.IntervalSeconds,
		RepeatCount:     config.RepeatCount,
	}
}
