package tray

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"intervaltimer/internal/core/countdown"
)

func TestStatusLine(t *testing.T) {
	tests := []struct {
		state countdown.State
		want  string
	}{
		{state: countdown.IdleState, want: "idle"},
		{state: countdown.State{RemainingSeconds: 75, RepeatIndex: 1, RepeatCount: 3, Phase: countdown.PhaseRunning}, want: "01:15  repeat 2/3"},
		{state: countdown.State{RepeatIndex: 2, RepeatCount: 3, Phase: countdown.PhaseAwaitingReset}, want: "time! repeat 3/3"},
		{state: countdown.State{Phase: countdown.PhaseCompleted}, want: "finished"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusLine(tt.state))
	}
}

func TestUpdateTogglesMenuItems(t *testing.T) {
	manager := New(nil, Callbacks{})

	manager.Update(countdown.State{RemainingSeconds: 5, RepeatCount: 1, Phase: countdown.PhaseRunning})
	assert.True(t, manager.startItem.Disabled)
	assert.False(t, manager.stopItem.Disabled)
	assert.Equal(t, "Status: 00:05  repeat 1/1", manager.statusItem.Label)

	manager.Update(countdown.IdleState)
	assert.False(t, manager.startItem.Disabled)
	assert.True(t, manager.stopItem.Disabled)
}
