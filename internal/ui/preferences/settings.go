package preferences

import (
	"log/slog"
	"math"
	"time"

	"intervaltimer/internal/controller"
	"intervaltimer/internal/core/countdown"
)

// Settings holds the run defaults and host options loaded at startup.
type Settings struct {
	TotalMinutes    int
	IntervalSeconds int
	// Repeats overrides the derived repeat count when positive.
	Repeats    int
	GraceDelay time.Duration

	NotificationTitle   string
	NotificationMessage string

	LogLevel    string
	MetricsAddr string
}

// DefaultSettings returns default settings for the interval timer.
func DefaultSettings() Settings {
	return Settings{
		TotalMinutes:        30,
		IntervalSeconds:     90,
		Repeats:             0,
		GraceDelay:          countdown.DefaultGraceDelay,
		NotificationTitle:   "Interval Timer",
		NotificationMessage: "Time is up!",
		LogLevel:            "info",
		MetricsAddr:         "",
	}
}

// TotalSeconds converts the session budget to seconds, saturating at the
// largest int.
func (settings Settings) TotalSeconds() int {
	if settings.TotalMinutes > math.MaxInt/60 {
		return math.MaxInt
	}
	return settings.TotalMinutes * 60
}

// StartOptions converts settings to controller start options.
func (settings Settings) StartOptions() []controller.StartOption {
	if settings.Repeats <= 0 {
		return nil
	}
	return []controller.StartOption{controller.WithRepeatCount(settings.Repeats)}
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (settings Settings) SlogLevel() slog.Level {
	levels := map[string]slog.Level{
		"trace":   slog.Level(-8),
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	if level, ok := levels[settings.LogLevel]; ok {
		return level
	}
	return slog.LevelInfo
}
