package history

import "github.com/bethropolis/texthistory/internal/types"

// AppliedData is the payload of event.TypeActionApplied.
type AppliedData struct {
	Action  Action
	Version int            // version after the action
	Edit    types.EditInfo // byte-level edit of the pre-apply text
}

// RejectedData is the payload of event.TypeActionRejected.
type RejectedData struct {
	Action Action
	Err    error
}

// QueriedData is the payload of event.TypeHistoryQueried.
type QueriedData struct {
	From, To  int
	Raw       int // matching log entries
	Compacted int // entries after optimization
}
