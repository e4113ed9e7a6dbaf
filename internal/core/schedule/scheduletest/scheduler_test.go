package scheduletest

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestAdvanceOrdersTicksAndDelays(t *testing.T) {
	scheduler := New()
	var log []string

	scheduler.OnTick(func() { log = append(log, "tick@"+scheduler.Now().String()) })
	scheduler.After(1500*time.Millisecond, func() { log = append(log, "delay@"+scheduler.Now().String()) })

	scheduler.Advance(3 * time.Second)

	want := []string{"tick@1s", "delay@1.5s", "tick@2s", "tick@3s"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("fired sequence mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3*time.Second, scheduler.Now())
	assert.Equal(t, 0, scheduler.PendingDelays())
}

func TestCancelStopsDelivery(t *testing.T) {
	scheduler := New()
	ticks := 0
	handle := scheduler.OnTick(func() { ticks++ })

	scheduler.Ticks(2)
	scheduler.Cancel(handle)
	scheduler.Ticks(2)

	assert.Equal(t, 2, ticks)
	assert.Equal(t, 0, scheduler.TickSubscribers())
}

func TestCallbackMayScheduleAndCancel(t *testing.T) {
	scheduler := New()
	var tick func()
	handle := scheduler.OnTick(func() { tick() })
	fired := 0
	tick = func() {
		scheduler.Cancel(handle)
		scheduler.After(time.Second, func() { fired++ })
	}

	scheduler.Tick()
	assert.Equal(t, 0, scheduler.TickSubscribers())
	assert.Equal(t, 1, scheduler.PendingDelays())

	scheduler.Tick()
	assert.Equal(t, 1, fired)
}
