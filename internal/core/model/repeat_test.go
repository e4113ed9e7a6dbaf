package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeRepeatCount(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		interval int
		want     int
	}{
		{name: "exact fit", total: 60, interval: 30, want: 2},
		{name: "remainder dropped", total: 65, interval: 30, want: 2},
		{name: "total shorter than interval", total: 10, interval: 30, want: 0},
		{name: "zero total", total: 0, interval: 5, want: 0},
		{name: "one second interval", total: 90, interval: 1, want: 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeRepeatCount(tt.total, tt.interval)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeRepeatCountFloorProperty(t *testing.T) {
	for interval := 1; interval <= 25; interval++ {
		for total := 0; total <= 200; total += 7 {
			got, err := ComputeRepeatCount(total, interval)
			require.NoError(t, err)
			assert.Equal(t, total/interval, got, "total=%d interval=%d", total, interval)
			assert.LessOrEqual(t, got*interval, total)
		}
	}
}

func TestComputeRepeatCountRejectsNonPositiveInterval(t *testing.T) {
	for _, interval := range []int{0, -1, -30} {
		_, err := ComputeRepeatCount(60, interval)
		assert.ErrorIs(t, err, ErrInvalidInterval, "interval=%d", interval)
	}
}
