package countdown

import (
	"time"

	"annoyingtimer/internal/alarm"
	"annoyingtimer/internal/core/model"
)

// State represents the current controller mode.
type State string

const (
	StateStopped   State = "stopped"
	StateStarted   State = "started"
	StatePaused    State = "paused"
	StateCompleted State = "completed"
)

// Action is the label of the single action button.
type Action string

const (
	ActionStart  Action = "Start"
	ActionPause  Action = "Pause"
	ActionResume Action = "Resume"
	ActionSnooze Action = "Snooze"
)

// ActionFor returns the action button label shown in state.
func ActionFor(state State) Action {
	switch state {
	case StateStarted:
		return ActionPause
	case StatePaused:
		return ActionResume
	case StateCompleted:
		return ActionSnooze
	default:
		return ActionStart
	}
}

// EventType defines the type of controller event.
type EventType string

const (
	EventStateChange   EventType = "state_change"
	EventProgress      EventType = "progress"
	EventConfigChange  EventType = "config_change"
	EventAlarmChange   EventType = "alarm_change"
	EventSnoozed       EventType = "snoozed"
	EventPlaybackError EventType = "playback_error"
)

// View is everything a host needs to render the timer screen.
type View struct {
	State          State
	Display        string
	Remaining      int
	Config         model.CountdownConfig
	Action         Action
	SlidersEnabled bool
	ResetVisible   bool
	Alarm          alarm.Clip
	Ringing        bool
}

// Event represents a controller update for observers.
type Event struct {
	Type    EventType
	View    View
	Message string
	At      time.Time
}
