package notify

import (
	"log/slog"
	"sync/atomic"
)

// Sink receives a cue each time an interval runs out.
//
// Fire is called while the countdown engine holds its lock: it must return
// promptly and must not call back into the engine.
type Sink interface {
	Fire()
}

// SinkFunc adapts a plain function to Sink.
type SinkFunc func()

// Fire calls fn.
func (fn SinkFunc) Fire() {
	fn()
}

type multiSink []Sink

// Multi fans a cue out to every non-nil sink in order.
func Multi(sinks ...Sink) Sink {
	filtered := make(multiSink, 0, len(sinks))
	for _, sink := range sinks {
		if sink != nil {
			filtered = append(filtered, sink)
		}
	}
	return filtered
}

func (sinks multiSink) Fire() {
	for _, sink := range sinks {
		sink.Fire()
	}
}

type logSink struct {
	logger  *slog.Logger
	message string
}

// NewLogSink returns a sink that records each cue as an info log line.
func NewLogSink(logger *slog.Logger, message string) Sink {
	if logger == nil {
		logger = slog.Default()
	}
	if message == "" {
		message = "interval finished"
	}
	return &logSink{logger: logger, message: message}
}

func (sink *logSink) Fire() {
	sink.logger.Info(sink.message, slog.String("event", "notification"))
}

// Counter counts cues. The zero value is ready to use.
type Counter struct {
	fired atomic.Int64
}

// Fire increments the counter.
func (counter *Counter) Fire() {
	counter.fired.Add(1)
}

// Count returns the number of cues received.
func (counter *Counter) Count() int {
	return int(counter.fired.Load())
}
