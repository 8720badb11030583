package history

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/bethropolis/texthistory/internal/event"
	"github.com/bethropolis/texthistory/internal/logger"
)

const logTag = "history"

// TextHistory owns a document, its version counter and the append-only log of
// actions that produced it. It is a single-writer timeline: Submit and the edit
// methods are serialised, range queries may run concurrently with each other.
type TextHistory struct {
	mu      sync.RWMutex
	text    string
	length  int // rune count of text
	version int
	log     []Action
	events  *event.Manager
}

// Option configures a TextHistory.
type Option func(*TextHistory)

// WithEventManager dispatches history events on m.
func WithEventManager(m *event.Manager) Option {
	return func(h *TextHistory) {
		h.events = m
	}
}

// New creates an empty history at version 0.
func New(opts ...Option) *TextHistory {
	h := &TextHistory{}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Text returns the current document.
func (h *TextHistory) Text() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.text
}

// Version returns the current version.
func (h *TextHistory) Version() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.version
}

// Len returns the document length in runes.
func (h *TextHistory) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.length
}

// EditOption adjusts where and to which version an edit is made.
type EditOption func(*editParams)

type editParams struct {
	pos     int
	hasPos  bool
	version int
	hasVer  bool
}

// At sets the edit position. The default is the end of the document.
func At(pos int) EditOption {
	return func(p *editParams) {
		p.pos, p.hasPos = pos, true
	}
}

// WithVersion sets the version the edit moves to. The default is current+1.
func WithVersion(v int) EditOption {
	return func(p *editParams) {
		p.version, p.hasVer = v, true
	}
}

// Insert inserts text and returns the resulting version.
func (h *TextHistory) Insert(text string, opts ...EditOption) (int, error) {
	return h.edit(opts, func(pos, from, to int) (Action, error) {
		return NewInsert(pos, text, from, to), nil
	})
}

// Replace overwrites len(text) runes starting at the position and returns the
// resulting version. Overwriting past the end extends the document.
func (h *TextHistory) Replace(text string, opts ...EditOption) (int, error) {
	return h.edit(opts, func(pos, from, to int) (Action, error) {
		return NewReplace(pos, text, from, to), nil
	})
}

// Delete removes length runes starting at the position and returns the resulting version.
// The length is checked against the resolved position.
func (h *TextHistory) Delete(length int, opts ...EditOption) (int, error) {
	return h.edit(opts, func(pos, from, to int) (Action, error) {
		action := NewDelete(pos, length, from, to)
		available := h.length - pos
		if length < 0 || length > available {
			return action, fmt.Errorf("%w: cannot delete %d at %d, %d available", ErrLength, length, pos, available)
		}
		return action, nil
	})
}

// edit resolves the options against the current state, builds the action and submits it
// under a single write lock. Every outcome, including a bad position or length, is
// reported through notify. build always returns the action it describes, even with an error.
func (h *TextHistory) edit(opts []EditOption, build func(pos, from, to int) (Action, error)) (int, error) {
	var p editParams
	for _, opt := range opts {
		opt(&p)
	}

	h.mu.Lock()
	to := h.version + 1
	if p.hasVer {
		to = p.version
	}

	var action Action
	pos, err := h.resolvePosition(p)
	if err != nil {
		action, _ = build(p.pos, h.version, to)
	} else {
		action, err = build(pos, h.version, to)
	}

	var applied *AppliedData
	if err == nil {
		applied, err = h.submitLocked(action)
	}
	version := h.version
	h.mu.Unlock()

	h.notify(action, applied, version, err)
	return version, err
}

func (h *TextHistory) resolvePosition(p editParams) (int, error) {
	if !p.hasPos {
		return h.length, nil
	}
	if p.pos < 0 || p.pos > h.length {
		return 0, fmt.Errorf("%w: %d not in [0, %d]", ErrPosition, p.pos, h.length)
	}
	return p.pos, nil
}

// Submit validates an action against the current state, applies it and appends it
// to the log. It returns the resulting version. A rejected action changes nothing.
//
// A zero-span action (FromVersion == ToVersion) is accepted only from the current
// version. Version-bumping actions are not required to start at the current version,
// but the version never moves backwards.
func (h *TextHistory) Submit(action Action) (int, error) {
	h.mu.Lock()
	applied, err := h.submitLocked(action)
	version := h.version
	h.mu.Unlock()

	h.notify(action, applied, version, err)
	return version, err
}

func (h *TextHistory) submitLocked(a Action) (*AppliedData, error) {
	if err := h.checkVersions(a); err != nil {
		return nil, err
	}
	if err := a.check(h.text); err != nil {
		return nil, err
	}

	edit := a.EditInfo(h.text)
	h.text = a.Apply(h.text)
	h.length = utf8.RuneCountInString(h.text)
	h.version = a.ToVersion
	h.log = append(h.log, a)

	logger.DebugTagf(logTag, "Applied %v, version %d, %d actions", a, h.version, len(h.log))
	return &AppliedData{Action: a, Version: h.version, Edit: edit}, nil
}

func (h *TextHistory) checkVersions(a Action) error {
	switch {
	case a.FromVersion == a.ToVersion && a.FromVersion != h.version:
		return fmt.Errorf("%w: zero-span action at v%d, history is at v%d", ErrVersion, a.FromVersion, h.version)
	case a.FromVersion < 0:
		return fmt.Errorf("%w: negative from version %d", ErrVersion, a.FromVersion)
	case a.ToVersion < a.FromVersion:
		return fmt.Errorf("%w: span v%d→v%d runs backwards", ErrVersion, a.FromVersion, a.ToVersion)
	case a.ToVersion < h.version:
		return fmt.Errorf("%w: v%d is behind current v%d", ErrVersion, a.ToVersion, h.version)
	}
	return nil
}

// notify dispatches the outcome of a submit. It must be called without the lock held
// so handlers can read the history.
func (h *TextHistory) notify(a Action, applied *AppliedData, version int, err error) {
	if err != nil {
		logger.DebugTagf(logTag, "Rejected %v at v%d: %v", a, version, err)
	}
	if h.events == nil {
		return
	}
	if err != nil {
		h.events.Dispatch(event.TypeActionRejected, RejectedData{Action: a, Err: err})
		return
	}
	h.events.Dispatch(event.TypeActionApplied, *applied)
}

// Actions returns the compacted log entries whose version span lies within [from, to].
func (h *TextHistory) Actions(from, to int) ([]Action, error) {
	raw, err := h.RawActions(from, to)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return raw, nil
	}

	compacted := Optimize(raw)
	logger.DebugTagf(logTag, "Query v%d..v%d: %d actions compacted to %d", from, to, len(raw), len(compacted))
	if h.events != nil {
		h.events.Dispatch(event.TypeHistoryQueried, QueriedData{From: from, To: to, Raw: len(raw), Compacted: len(compacted)})
	}
	return compacted, nil
}

// AllActions is Actions(0, Version()).
func (h *TextHistory) AllActions() []Action {
	// The range is always valid for the version read here; a concurrent writer
	// can only move the version forward.
	actions, _ := h.Actions(0, h.Version())
	return actions
}

// RawActions returns the log entries whose version span lies within [from, to],
// without compaction.
func (h *TextHistory) RawActions(from, to int) ([]Action, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if from < 0 || from > to || to > h.version {
		return nil, fmt.Errorf("%w: [%d, %d] with current version %d", ErrRange, from, to, h.version)
	}

	out := make([]Action, 0, len(h.log))
	for _, a := range h.log {
		if from <= a.FromVersion && a.ToVersion <= to {
			out = append(out, a)
		}
	}
	return out, nil
}
