package app

import (
	"github.com/bethropolis/texthistory/internal/event"
	"github.com/bethropolis/texthistory/internal/history"
	"github.com/bethropolis/texthistory/internal/logger"
)

// subscribeEvents attaches the session's own logging to history events.
func (s *Session) subscribeEvents() {
	s.events.Subscribe(event.TypeActionApplied, func(e event.Event) bool {
		if data, ok := e.Data.(history.AppliedData); ok {
			logger.DebugTagf("app", "session %s: %v, now v%d, bytes %d..%d→%d",
				s.ID, data.Action, data.Version, data.Edit.StartIndex, data.Edit.OldEndIndex, data.Edit.NewEndIndex)
		}
		return false
	})
	s.events.Subscribe(event.TypeActionRejected, func(e event.Event) bool {
		if data, ok := e.Data.(history.RejectedData); ok {
			logger.InfoTagf("app", "session %s: rejected %v: %v", s.ID, data.Action, data.Err)
		}
		return false
	})
}
