package preferences

import (
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalSeconds(t *testing.T) {
	assert.Equal(t, 1800, DefaultSettings().TotalSeconds())
	assert.Equal(t, 0, Settings{}.TotalSeconds())
	assert.Equal(t, math.MaxInt, Settings{TotalMinutes: math.MaxInt/60 + 1}.TotalSeconds())
	assert.Equal(t, math.MaxInt, Settings{TotalMinutes: math.MaxInt}.TotalSeconds())
}

func TestStartOptions(t *testing.T) {
	assert.Empty(t, Settings{Repeats: 0}.StartOptions())
	assert.Len(t, Settings{Repeats: 4}.StartOptions(), 1)
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, Settings{LogLevel: "debug"}.SlogLevel())
	assert.Equal(t, slog.LevelWarn, Settings{LogLevel: "warning"}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, Settings{LogLevel: "loud"}.SlogLevel())
}
