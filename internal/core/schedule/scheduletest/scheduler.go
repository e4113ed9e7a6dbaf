// Package scheduletest provides a manually driven schedule.Scheduler.
package scheduletest

import (
	"sort"
	"sync"
	"time"

	"intervaltimer/internal/core/schedule"
)

type entry struct {
	handle   schedule.Handle
	at       time.Duration
	periodic bool
	callback func()
}

// Scheduler keeps virtual time. Nothing fires until Advance is called, and
// callbacks run synchronously on the caller's goroutine.
type Scheduler struct {
	mu      sync.Mutex
	now     time.Duration
	period  time.Duration
	next    schedule.Handle
	entries map[schedule.Handle]*entry
}

var _ schedule.Scheduler = (*Scheduler)(nil)

// New returns a scheduler at virtual time zero ticking once per second.
func New() *Scheduler {
	return &Scheduler{
		period:  schedule.TickInterval,
		entries: make(map[schedule.Handle]*entry),
	}
}

func (scheduler *Scheduler) OnTick(callback func()) schedule.Handle {
	return scheduler.add(scheduler.period, true, callback)
}

func (scheduler *Scheduler) After(delay time.Duration, callback func()) schedule.Handle {
	if delay < 0 {
		delay = 0
	}
	return scheduler.add(delay, false, callback)
}

func (scheduler *Scheduler) Cancel(handle schedule.Handle) {
	scheduler.mu.Lock()
	delete(scheduler.entries, handle)
	scheduler.mu.Unlock()
}

// Advance moves virtual time forward by d, firing every tick and delayed
// callback that falls due, in time order.
func (scheduler *Scheduler) Advance(d time.Duration) {
	scheduler.mu.Lock()
	target := scheduler.now + d
	scheduler.mu.Unlock()

	for {
		callback, ok := scheduler.popDue(target)
		if !ok {
			break
		}
		callback()
	}

	scheduler.mu.Lock()
	scheduler.now = target
	scheduler.mu.Unlock()
}

// Tick advances virtual time by one tick period.
func (scheduler *Scheduler) Tick() {
	scheduler.Advance(scheduler.period)
}

// Ticks advances virtual time by n tick periods.
func (scheduler *Scheduler) Ticks(n int) {
	for i := 0; i < n; i++ {
		scheduler.Tick()
	}
}

// Now returns the virtual time elapsed since New.
func (scheduler *Scheduler) Now() time.Duration {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.now
}

// TickSubscribers returns the number of live tick subscriptions.
func (scheduler *Scheduler) TickSubscribers() int {
	return scheduler.count(true)
}

// PendingDelays returns the number of delayed callbacks not yet fired.
func (scheduler *Scheduler) PendingDelays() int {
	return scheduler.count(false)
}

func (scheduler *Scheduler) add(delay time.Duration, periodic bool, callback func()) schedule.Handle {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	scheduler.next++
	handle := scheduler.next
	scheduler.entries[handle] = &entry{
		handle:   handle,
		at:       scheduler.now + delay,
		periodic: periodic,
		callback: callback,
	}
	return handle
}

func (scheduler *Scheduler) popDue(target time.Duration) (func(), bool) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	due := make([]*entry, 0, len(scheduler.entries))
	for _, item := range scheduler.entries {
		if item.at <= target {
			due = append(due, item)
		}
	}
	if len(due) == 0 {
		return nil, false
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at != due[j].at {
			return due[i].at < due[j].at
		}
		return due[i].handle < due[j].handle
	})

	first := due[0]
	scheduler.now = first.at
	if first.periodic {
		first.at += scheduler.period
	} else {
		delete(scheduler.entries, first.handle)
	}
	return first.callback, true
}

func (scheduler *Scheduler) count(periodic bool) int {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	total := 0
	for _, item := range scheduler.entries {
		if item.periodic == periodic {
			total++
		}
	}
	return total
}
