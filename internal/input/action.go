// internal/input/action.go
package input

// Action represents an operation of the history viewer.
type Action int

const (
	ActionUnknown Action = iota // Default/invalid action
	ActionQuit

	// --- Scrolling ---
	ActionScrollUp
	ActionScrollDown
	ActionPageUp
	ActionPageDown
	ActionTop
	ActionBottom

	ActionSwitchPane // text <-> action log
)

var actionNames = map[Action]string{
	ActionUnknown:    "unknown",
	ActionQuit:       "quit",
	ActionScrollUp:   "scroll-up",
	ActionScrollDown: "scroll-down",
	ActionPageUp:     "page-up",
	ActionPageDown:   "page-down",
	ActionTop:        "top",
	ActionBottom:     "bottom",
	ActionSwitchPane: "switch-pane",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}
