package controller

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"intervaltimer/internal/core/countdown"
	"intervaltimer/internal/core/model"
	"intervaltimer/internal/core/notify"
	"intervaltimer/internal/core/schedule"
	"intervaltimer/internal/metrics"
)

// ErrClosed is returned by Start once the controller has been closed.
var ErrClosed = errors.New("controller closed")

type controllerOptions struct {
	logger     *slog.Logger
	registry   prometheus.Registerer
	graceDelay time.Duration
}

// ControllerOption customises a Controller at construction.
type ControllerOption func(*controllerOptions)

// WithLogger sets the logger for run lifecycle events. Output is discarded by
// default.
func WithLogger(logger *slog.Logger) ControllerOption {
	return func(options *controllerOptions) {
		options.logger = logger
	}
}

// WithMetricsRegistry registers the controller's Prometheus series with
// registry.
func WithMetricsRegistry(registry prometheus.Registerer) ControllerOption {
	return func(options *controllerOptions) {
		options.registry = registry
	}
}

// WithGraceDelay overrides the pause between an interval's cue and the next
// repeat.
func WithGraceDelay(delay time.Duration) ControllerOption {
	return func(options *controllerOptions) {
		options.graceDelay = delay
	}
}

type startOptions struct {
	repeatCount int
}

// StartOption customises a single Start call.
type StartOption func(*startOptions)

// WithRepeatCount replaces the derived repeat count. Values below one are
// treated as one.
func WithRepeatCount(repeatCount int) StartOption {
	return func(options *startOptions) {
		if repeatCount < 1 {
			repeatCount = 1
		}
		options.repeatCount = repeatCount
	}
}

// Controller validates timer requests and drives a single countdown engine.
type Controller struct {
	mu       sync.Mutex
	engine   *countdown.Engine
	logger   *slog.Logger
	recorder *metrics.Recorder
	active   *RunHandle
	closed   bool
	done     chan struct{}
}

// RunHandle identifies a started run.
type RunHandle struct {
	ID         uuid.UUID
	Config     model.TimerConfig
	StartedAt  time.Time
	generation uint64
	controller *Controller
}

// Stop stops the run if it is still the active one.
func (handle *RunHandle) Stop() {
	if handle == nil || handle.controller == nil {
		return
	}
	handle.controller.stopHandle(handle)
}

// Active reports whether the run is still in progress.
func (handle *RunHandle) Active() bool {
	if handle == nil || handle.controller == nil {
		return false
	}
	return handle.controller.engine.Current(handle.generation)
}

// New creates a Controller that schedules through scheduler and signals
// expiries through sink.
func New(scheduler schedule.Scheduler, sink notify.Sink, opts ...ControllerOption) *Controller {
	options := controllerOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	if options.logger == nil {
		options.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	controller := &Controller{
		engine: countdown.New(scheduler, sink, countdown.Config{GraceDelay: options.graceDelay}),
		logger: options.logger,
		done:   make(chan struct{}),
	}
	if options.registry != nil {
		controller.recorder = metrics.New(options.registry)
	}

	go controller.observe(controller.engine.Subscribe(64))
	return controller
}

// Start validates the inputs and starts a run, replacing any active one.
// Validation failures return a *model.ValidationError and leave the current
// state untouched.
func (controller *Controller) Start(totalSeconds, intervalSeconds int, opts ...StartOption) (*RunHandle, error) {
	options := startOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	config, err := model.NewTimerConfig(totalSeconds, intervalSeconds, options.repeatCount)
	if err != nil {
		controller.logger.Warn("start rejected",
			slog.Int("total_seconds", totalSeconds),
			slog.Int("interval_seconds", intervalSeconds),
			slog.Int("repeat_override", options.repeatCount),
			slog.String("error", err.Error()),
		)
		if controller.recorder != nil {
			controller.recorder.Rejected(err)
		}
		return nil, err
	}

	controller.mu.Lock()
	defer controller.mu.Unlock()

	if controller.closed {
		return nil, ErrClosed
	}
	if controller.active != nil && controller.engine.Current(controller.active.generation) {
		controller.logger.Info("superseding active run", slog.String("run_id", controller.active.ID.String()))
	}

	handle := &RunHandle{
		ID:         uuid.New(),
		Config:     config,
		StartedAt:  time.Now(),
		controller: controller,
	}
	handle.generation = controller.engine.Start(config)
	controller.active = handle

	controller.logger.Info("run started",
		slog.String("run_id", handle.ID.String()),
		slog.Int("interval_seconds", config.IntervalSeconds),
		slog.Int("total_seconds", config.TotalSeconds),
		slog.Int("repeat_count", config.RepeatCount),
	)
	return handle, nil
}

// Stop cancels the active run, if any. It is safe to call at any time.
func (controller *Controller) Stop() {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	if !controller.engine.Stop() {
		return
	}
	if controller.active != nil {
		controller.logger.Info("run stopped", slog.String("run_id", controller.active.ID.String()))
	}
	controller.active = nil
}

// Active returns the handle of the run in progress, or nil when idle.
func (controller *Controller) Active() *RunHandle {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	if controller.active == nil || !controller.engine.Current(controller.active.generation) {
		return nil
	}
	return controller.active
}

// State returns the current countdown snapshot.
func (controller *Controller) State() countdown.State {
	return controller.engine.State()
}

// Subscribe registers an observer of the countdown event stream.
func (controller *Controller) Subscribe(buffer int) <-chan countdown.Event {
	return controller.engine.Subscribe(buffer)
}

// Close stops any run and releases observers. Later calls to Start fail
// with ErrClosed.
func (controller *Controller) Close() {
	controller.mu.Lock()
	controller.active = nil
	controller.closed = true
	controller.mu.Unlock()

	controller.engine.Close()
	<-controller.done
}

func (controller *Controller) stopHandle(handle *RunHandle) {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	if !controller.engine.StopGeneration(handle.generation) {
		return
	}
	controller.logger.Info("run stopped", slog.String("run_id", handle.ID.String()))
	if controller.active == handle {
		controller.active = nil
	}
}

func (controller *Controller) observe(events <-chan countdown.Event) {
	defer close(controller.done)

	for event := range events {
		if controller.recorder != nil {
			controller.recorder.Observe(event)
		}

		attrs := []any{
			slog.String("type", string(event.Type)),
			slog.String("phase", string(event.State.Phase)),
			slog.Int("remaining_seconds", event.State.RemainingSeconds),
			slog.Int("repeat", event.State.RepeatIndex+1),
			slog.Int("repeat_count", event.State.RepeatCount),
		}
		if event.Type == countdown.EventProgress {
			controller.logger.Debug("tick", attrs...)
			continue
		}
		message := event.Message
		if message == "" {
			message = string(event.Type)
		}
		controller.logger.Info(message, attrs...)
	}
}

// IsValidationError reports whether err came from input validation.
func IsValidationError(err error) bool {
	var validation *model.ValidationError
	return errors.As(err, &validation)
}
