package countdown

import (
	"fmt"
	"sync"
	"time"

	"intervaltimer/internal/core/model"
	"intervaltimer/internal/core/notify"
	"intervaltimer/internal/core/schedule"
)

// DefaultGraceDelay is the pause between an interval's cue and the next step.
const DefaultGraceDelay = time.Second

// Config contains runtime options for Engine.
type Config struct {
	GraceDelay time.Duration
}

// Engine is the interval-repeat state machine. All state changes happen under
// its lock, driven by Scheduler callbacks or by Start and Stop.
type Engine struct {
	mu        sync.Mutex
	options   Config
	scheduler schedule.Scheduler
	sink      notify.Sink
	config    model.TimerConfig
	state     State
	// generation changes whenever a run starts or ends; callbacks scheduled
	// for an older generation are dropped.
	generation   uint64
	tickHandle   schedule.Handle
	ticking      bool
	graceHandle  schedule.Handle
	gracePending bool
	events       []chan Event
	closed       bool
}

// New creates an idle Engine.
func New(scheduler schedule.Scheduler, sink notify.Sink, options Config) *Engine {
	if options.GraceDelay <= 0 {
		options.GraceDelay = DefaultGraceDelay
	}
	if sink == nil {
		sink = notify.Multi()
	}
	return &Engine{
		options:   options,
		scheduler: scheduler,
		sink:      sink,
		state:     IdleState,
	}
}

// Subscribe registers a new observer channel. Sends never block: a full
// channel misses events.
func (engine *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	engine.mu.Lock()
	if engine.closed {
		close(ch)
	} else {
		engine.events = append(engine.events, ch)
	}
	engine.mu.Unlock()
	return ch
}

// State returns a copy of the current state.
func (engine *Engine) State() State {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.state
}

// Config returns the configuration of the active run. The zero value is
// returned when idle.
func (engine *Engine) Config() model.TimerConfig {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if !engine.state.Phase.Active() {
		return model.TimerConfig{}
	}
	return engine.config
}

// Start begins a run and returns its generation. An active run is stopped
// first. The config is assumed to be valid. After Close, Start does nothing
// and returns a generation that is never current.
func (engine *Engine) Start(config model.TimerConfig) uint64 {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	if engine.closed {
		return 0
	}

	if engine.state.Phase.Active() {
		engine.resetLocked("superseded")
	}

	engine.generation++
	engine.config = config
	engine.state = State{
		RemainingSeconds: config.IntervalSeconds,
		RepeatIndex:      0,
		RepeatCount:      config.RepeatCount,
		Phase:            PhaseRunning,
	}
	engine.subscribeTicksLocked()

	engine.emitLocked(Event{
		Type:    EventStateChange,
		State:   engine.state,
		Message: fmt.Sprintf("started %s", config),
		At:      time.Now(),
	})
	return engine.generation
}

// Stop cancels the active run and returns to idle. Once Stop returns no
// pending tick or grace callback will touch the state. It reports whether a
// run was active.
func (engine *Engine) Stop() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	if !engine.state.Phase.Active() {
		return false
	}
	engine.resetLocked("stopped")
	return true
}

// StopGeneration stops the run only if it is still the one identified by
// generation.
func (engine *Engine) StopGeneration(generation uint64) bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	if generation != engine.generation || !engine.state.Phase.Active() {
		return false
	}
	engine.resetLocked("stopped")
	return true
}

// Current reports whether generation identifies the active run.
func (engine *Engine) Current(generation uint64) bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return generation == engine.generation && engine.state.Phase.Active()
}

// Close stops any run and closes all observer channels.
func (engine *Engine) Close() {
	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		return
	}
	if engine.state.Phase.Active() {
		engine.resetLocked("closed")
	}
	engine.closed = true
	events := engine.events
	engine.events = nil
	engine.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (engine *Engine) tick(generation uint64) {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	if generation != engine.generation || engine.state.Phase != PhaseRunning {
		return
	}

	if engine.state.RemainingSeconds > 0 {
		engine.state.RemainingSeconds--
	}
	if engine.state.RemainingSeconds > 0 {
		engine.emitLocked(Event{
			Type:  EventProgress,
			State: engine.state,
			At:    time.Now(),
		})
		return
	}

	engine.expireLocked()
}

func (engine *Engine) expireLocked() {
	engine.cancelTicksLocked()
	engine.state.Phase = PhaseAwaitingReset

	engine.sink.Fire()

	generation := engine.generation
	engine.graceHandle = engine.scheduler.After(engine.options.GraceDelay, func() {
		engine.finishGrace(generation)
	})
	engine.gracePending = true

	engine.emitLocked(Event{
		Type:    EventExpired,
		State:   engine.state,
		Message: fmt.Sprintf("repeat %d/%d expired", engine.state.RepeatIndex+1, engine.state.RepeatCount),
		At:      time.Now(),
	})
}

func (engine *Engine) finishGrace(generation uint64) {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	if generation != engine.generation || engine.state.Phase != PhaseAwaitingReset {
		return
	}
	engine.gracePending = false
	now := time.Now()

	engine.emitLocked(Event{
		Type:    EventRepeatCompleted,
		State:   engine.state,
		Message: fmt.Sprintf("repeat %d completed", engine.state.RepeatIndex+1),
		At:      now,
	})

	if engine.state.RepeatIndex < engine.state.RepeatCount-1 {
		engine.state.RepeatIndex++
		engine.state.RemainingSeconds = engine.config.IntervalSeconds
		engine.state.Phase = PhaseRunning
		engine.subscribeTicksLocked()

		engine.emitLocked(Event{
			Type:  EventStateChange,
			State: engine.state,
			At:    now,
		})
		return
	}

	engine.state.Phase = PhaseCompleted
	engine.emitLocked(Event{
		Type:    EventStateChange,
		State:   engine.state,
		Message: "all repeats finished",
		At:      now,
	})
	engine.resetLocked("completed")
}

// resetLocked cancels outstanding callbacks and collapses to idle.
func (engine *Engine) resetLocked(reason string) {
	engine.cancelTicksLocked()
	if engine.gracePending {
		engine.scheduler.Cancel(engine.graceHandle)
		engine.gracePending = false
	}
	engine.generation++
	engine.state = IdleState

	engine.emitLocked(Event{
		Type:    EventStateChange,
		State:   engine.state,
		Message: reason,
		At:      time.Now(),
	})
}

func (engine *Engine) subscribeTicksLocked() {
	generation := engine.generation
	engine.tickHandle = engine.scheduler.OnTick(func() {
		engine.tick(generation)
	})
	engine.ticking = true
}

func (engine *Engine) cancelTicksLocked() {
	if !engine.ticking {
		return
	}
	engine.scheduler.Cancel(engine.tickHandle)
	engine.ticking = false
}

func (engine *Engine) emitLocked(event Event) {
	for _, ch := range engine.events {
		select {
		case ch <- event:
		default:
		}
	}
}
