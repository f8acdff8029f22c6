package timekeeper

import (
	"time"

	"focustimer/internal/core/model"
)

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventTick        EventType = "tick"
	EventComplete    EventType = "complete"
)

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type     EventType
	State    model.SessionState
	Progress float64
	Message  string
	At       time.Time
}

const (
	// CompletionMessageDuration is how long the completion banner stays up.
	CompletionMessageDuration = 3 * time.Second

	focusCompleteMessage = "Focus session complete! Great job!"
	breakCompleteMessage = "Break time is over! Ready to focus?"
)

// CompletionMessage returns the banner text shown when mode finishes.
func CompletionMessage(mode model.Mode) string {
	if mode == model.ModeFocus {
		return focusCompleteMessage
	}
	return breakCompleteMessage
}
