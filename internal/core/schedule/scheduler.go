package schedule

import (
	"sync"
	"time"
)

// TickInterval is the default period between OnTick callbacks.
const TickInterval = time.Second

// Handle identifies a tick subscription or a delayed callback.
type Handle uint64

// Scheduler delivers periodic ticks and single-shot delayed callbacks.
//
// Implementations never invoke a callback while holding their own locks, so a
// callback may call back into the Scheduler.
type Scheduler interface {
	// OnTick invokes callback once per tick until the handle is cancelled.
	OnTick(callback func()) Handle
	// After invokes callback once, after delay, unless cancelled first.
	After(delay time.Duration, callback func()) Handle
	// Cancel stops a subscription or pending callback. Unknown or already
	// finished handles are ignored.
	Cancel(handle Handle)
}

// Config contains runtime options for the system scheduler.
type Config struct {
	TickInterval time.Duration
}

// System is a Scheduler backed by the runtime timers.
type System struct {
	mu      sync.Mutex
	options Config
	next    Handle
	active  map[Handle]func()
}

var _ Scheduler = (*System)(nil)

// NewSystem creates a wall-clock scheduler.
func NewSystem(options Config) *System {
	if options.TickInterval <= 0 {
		options.TickInterval = TickInterval
	}
	return &System{
		options: options,
		active:  make(map[Handle]func()),
	}
}

// OnTick starts a ticker goroutine for callback.
func (scheduler *System) OnTick(callback func()) Handle {
	ticker := time.NewTicker(scheduler.options.TickInterval)
	stopCh := make(chan struct{})

	scheduler.mu.Lock()
	handle := scheduler.nextLocked()
	scheduler.active[handle] = func() {
		ticker.Stop()
		close(stopCh)
	}
	scheduler.mu.Unlock()

	go func() {
		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				select {
				case <-stopCh:
					return
				default:
				}
				callback()
			}
		}
	}()

	return handle
}

// After arms a runtime timer for callback.
func (scheduler *System) After(delay time.Duration, callback func()) Handle {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	handle := scheduler.nextLocked()
	timer := time.AfterFunc(delay, func() {
		if scheduler.release(handle) {
			callback()
		}
	})
	scheduler.active[handle] = func() {
		timer.Stop()
	}
	return handle
}

// Cancel stops the subscription or timer behind handle.
func (scheduler *System) Cancel(handle Handle) {
	scheduler.mu.Lock()
	stop, ok := scheduler.active[handle]
	delete(scheduler.active, handle)
	scheduler.mu.Unlock()

	if ok {
		stop()
	}
}

// Close cancels everything still scheduled.
func (scheduler *System) Close() {
	scheduler.mu.Lock()
	active := scheduler.active
	scheduler.active = make(map[Handle]func())
	scheduler.mu.Unlock()

	for _, stop := range active {
		stop()
	}
}

// Pending reports how many subscriptions and timers are still active.
func (scheduler *System) Pending() int {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return len(scheduler.active)
}

func (scheduler *System) release(handle Handle) bool {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if _, ok := scheduler.active[handle]; !ok {
		return false
	}
	delete(scheduler.active, handle)
	return true
}

func (scheduler *System) nextLocked() Handle {
	scheduler.next++
	return scheduler.next
}
