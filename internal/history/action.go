// Package history records text mutations as version-stamped actions and serves
// compacted views of the resulting log.
package history

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/bethropolis/texthistory/internal/types"
	"github.com/bethropolis/texthistory/internal/utils"
)

// ActionType indicates which mutation an Action performs.
type ActionType int

const (
	InsertAction ActionType = iota + 1
	ReplaceAction
	DeleteAction
)

func (t ActionType) String() string {
	switch t {
	case InsertAction:
		return "insert"
	case ReplaceAction:
		return "replace"
	case DeleteAction:
		return "delete"
	}
	return "ActionType(" + strconv.Itoa(int(t)) + ")"
}

// MarshalYAML renders the type by name.
func (t ActionType) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

// Action is a single immutable mutation moving the document from FromVersion to ToVersion.
// Pos and Length count runes in the text the action is applied to.
// Text is the payload of Insert and Replace; Length is the payload of Delete.
type Action struct {
	Type        ActionType `yaml:"type"`
	Pos         int        `yaml:"pos"`
	FromVersion int        `yaml:"from_version"`
	ToVersion   int        `yaml:"to_version"`
	Text        string     `yaml:"text,omitempty"`
	Length      int        `yaml:"length,omitempty"`
}

// NewInsert builds an action inserting text at pos.
func NewInsert(pos int, text string, from, to int) Action {
	return Action{Type: InsertAction, Pos: pos, Text: text, FromVersion: from, ToVersion: to}
}

// NewReplace builds an action overwriting len(text) runes at pos.
func NewReplace(pos int, text string, from, to int) Action {
	return Action{Type: ReplaceAction, Pos: pos, Text: text, FromVersion: from, ToVersion: to}
}

// NewDelete builds an action removing length runes at pos.
func NewDelete(pos, length, from, to int) Action {
	return Action{Type: DeleteAction, Pos: pos, Length: length, FromVersion: from, ToVersion: to}
}

// TextLen is the rune length of the inserted or replacing text.
func (a Action) TextLen() int {
	return utf8.RuneCountInString(a.Text)
}

// check reports whether the action can be applied to pre without clamping.
func (a Action) check(pre string) error {
	n := utf8.RuneCountInString(pre)
	switch a.Type {
	case InsertAction, ReplaceAction, DeleteAction:
	default:
		return fmt.Errorf("unknown action type %v", a.Type)
	}
	if a.Pos < 0 || a.Pos > n {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrPosition, a.Pos, n)
	}
	if a.Type == DeleteAction && (a.Length < 0 || a.Length > n-a.Pos) {
		return fmt.Errorf("%w: cannot delete %d at %d, %d available", ErrLength, a.Length, a.Pos, n-a.Pos)
	}
	return nil
}

// Apply returns the text produced by applying the action to pre. pre is not modified.
// The action must fit pre; Submit and Replay check this before applying.
func (a Action) Apply(pre string) string {
	runes := []rune(pre)
	head := string(runes[:a.Pos])

	switch a.Type {
	case InsertAction:
		return head + a.Text + string(runes[a.Pos:])
	case ReplaceAction:
		// Overwrites; may run past the end and extend the document.
		end := a.Pos + a.TextLen()
		if end > len(runes) {
			end = len(runes)
		}
		return head + a.Text + string(runes[end:])
	case DeleteAction:
		return head + string(runes[a.Pos+a.Length:])
	default:
		panic(fmt.Sprintf("history: apply of unknown action type %v", a.Type))
	}
}

// EditInfo describes the action as a byte-level edit of pre for incremental parsers.
func (a Action) EditInfo(pre string) types.EditInfo {
	start := utils.RuneIndexToByteOffset(pre, a.Pos)
	if start < 0 {
		start = len(pre)
	}

	var removed int
	var inserted string
	switch a.Type {
	case InsertAction:
		inserted = a.Text
	case ReplaceAction:
		removed, inserted = a.TextLen(), a.Text
	case DeleteAction:
		removed = a.Length
	}

	oldEnd := utils.RuneIndexToByteOffset(pre, a.Pos+removed)
	if oldEnd < 0 {
		oldEnd = len(pre)
	}
	return types.NewEditInfo(pre, start, oldEnd, inserted)
}

func (a Action) String() string {
	switch a.Type {
	case DeleteAction:
		return fmt.Sprintf("%s@%d %d v%d→v%d", a.Type, a.Pos, a.Length, a.FromVersion, a.ToVersion)
	default:
		return fmt.Sprintf("%s@%d %q v%d→v%d", a.Type, a.Pos, a.Text, a.FromVersion, a.ToVersion)
	}
}
