package countdown

import "time"

// Phase is the engine's position in the run lifecycle.
type Phase string

const (
	PhaseIdle          Phase = "idle"
	PhaseRunning       Phase = "running"
	PhaseAwaitingReset Phase = "awaiting_reset"
	PhaseCompleted     Phase = "completed"
)

// Active reports whether a run is in progress.
func (phase Phase) Active() bool {
	return phase == PhaseRunning || phase == PhaseAwaitingReset
}

// State is a snapshot of the countdown.
type State struct {
	RemainingSeconds int
	RepeatIndex      int
	RepeatCount      int
	Phase            Phase
}

// IdleState is the state outside of any run.
var IdleState = State{Phase: PhaseIdle}

// EventType defines the type of countdown event.
type EventType string

const (
	EventStateChange     EventType = "state_change"
	EventProgress        EventType = "progress"
	EventExpired         EventType = "expired"
	EventRepeatCompleted EventType = "repeat_completed"
)

// Event represents a countdown update for observers.
type Event struct {
	Type    EventType
	State   State
	Message string
	At      time.Time
}
