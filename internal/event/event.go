// internal/event/event.go
package event

import (
	"github.com/gdamore/tcell/v2"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// History events. Payloads are declared by the history package.
	TypeActionApplied  // an action passed validation and was appended to the log
	TypeActionRejected // an action failed validation; nothing changed
	TypeHistoryQueried // a range query was served

	// Session lifecycle
	TypeSessionStarted
	TypeSessionEnded

	// Raw key press forwarded by the terminal viewer
	TypeKeyPressed
)

var typeNames = map[Type]string{
	TypeUnknown:        "unknown",
	TypeActionApplied:  "action-applied",
	TypeActionRejected: "action-rejected",
	TypeHistoryQueried: "history-queried",
	TypeSessionStarted: "session-started",
	TypeSessionEnded:   "session-ended",
	TypeKeyPressed:     "key-pressed",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type        // The kind of event
	Data interface{} // Payload carrying event-specific data
}

// SessionStartedData identifies the session that just started.
type SessionStartedData struct {
	SessionID string
}

// SessionEndedData reports where the session's history stopped.
type SessionEndedData struct {
	SessionID string
	Version   int
}

// KeyPressedData contains the raw tcell key event.
type KeyPressedData struct {
	KeyEvent *tcell.EventKey
}
