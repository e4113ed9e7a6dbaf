package model

// ComputeRepeatCount returns how many whole intervals fit into totalSeconds.
// It does not check that the result is usable; callers that need at least one
// repeat clamp the result themselves.
func ComputeRepeatCount(totalSeconds, intervalSeconds int) (int, error) {
	if intervalSeconds <= 0 {
		return 0, ErrInvalidInterval
	}
	if totalSeconds <= 0 {
		return 0, nil
	}
	return totalSeconds / intervalSeconds, nil
}
