package model

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimerConfigDerivesRepeats(t *testing.T) {
	config, err := NewTimerConfig(60, 30, 0)
	require.NoError(t, err)
	assert.Equal(t, TimerConfig{IntervalSeconds: 30, TotalSeconds: 60, RepeatCount: 2}, config)
}

func TestNewTimerConfigOverrideWins(t *testing.T) {
	config, err := NewTimerConfig(600, 30, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, config.RepeatCount)
}

func TestNewTimerConfigInvalidInterval(t *testing.T) {
	for _, total := range []int{-5, 0, 60, 3600} {
		_, err := NewTimerConfig(total, 0, 0)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInterval)

		var validation *ValidationError
		require.True(t, errors.As(err, &validation))
		assert.Equal(t, total, validation.TotalSeconds)
	}
}

func TestNewTimerConfigInsufficientTotal(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		interval int
		override int
	}{
		{name: "derived count clamps to one", total: 10, interval: 30},
		{name: "override exceeds budget", total: 60, interval: 30, override: 3},
		{name: "negative total", total: -1, interval: 1},
		{name: "product wraps to negative", total: 0, interval: math.MaxInt/2 + 1, override: 2},
		{name: "product wraps past total", total: 10, interval: 3, override: math.MaxInt/2 + 1},
		{name: "huge interval and override", total: math.MaxInt, interval: math.MaxInt, override: math.MaxInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTimerConfig(tt.total, tt.interval, tt.override)
			assert.ErrorIs(t, err, ErrInsufficientTotalTime)
			assert.NotErrorIs(t, err, ErrInvalidInterval)
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	_, err := NewTimerConfig(60, 30, 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "total 60s")
	assert.Contains(t, err.Error(), "repeats 3")
}

func TestValidateAcceptsExactFit(t *testing.T) {
	assert.NoError(t, TimerConfig{IntervalSeconds: 30, TotalSeconds: 90, RepeatCount: 3}.Validate())
	assert.NoError(t, TimerConfig{IntervalSeconds: math.MaxInt, TotalSeconds: math.MaxInt, RepeatCount: 1}.Validate())
	assert.ErrorIs(t, TimerConfig{IntervalSeconds: 30, TotalSeconds: 89, RepeatCount: 3}.Validate(), ErrInsufficientTotalTime)
}
