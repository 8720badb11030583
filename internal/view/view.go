// Package view is a read-only terminal viewer for a text history.
package view

import (
	"context"
	"fmt"

	"github.com/bethropolis/texthistory/internal/config"
	"github.com/bethropolis/texthistory/internal/event"
	"github.com/bethropolis/texthistory/internal/history"
	"github.com/bethropolis/texthistory/internal/input"
	"github.com/bethropolis/texthistory/internal/logger"
	"github.com/bethropolis/texthistory/internal/statusbar"
	"github.com/gdamore/tcell/v2"
)

// Pane selects what the viewer shows.
type Pane int

const (
	PaneText Pane = iota
	PaneLog
)

func (p Pane) String() string {
	if p == PaneLog {
		return "log"
	}
	return "text"
}

// Styles defines the viewer colours.
type Styles struct {
	Default    tcell.Style
	LineNumber tcell.Style
}

// DefaultStyles provides sensible defaults.
func DefaultStyles() Styles {
	base := tcell.StyleDefault.Background(tcell.ColorReset)
	return Styles{
		Default:    base,
		LineNumber: base.Foreground(tcell.NewHexColor(0x5c6370)),
	}
}

// Viewer draws a history's document or compacted action log on a tcell screen.
type Viewer struct {
	screen   tcell.Screen
	history  *history.TextHistory
	events   *event.Manager
	styles   Styles
	tabWidth int
	keys     *input.InputProcessor
	status   *statusbar.StatusBar

	pane     Pane
	offsetY  int
	logLines []string // formatted compacted log, refreshed on pane switch
}

// Open creates and initializes a terminal screen.
func Open() (tcell.Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create tcell screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize tcell screen: %w", err)
	}
	return s, nil
}

// New creates a viewer on an initialized screen. Key presses are dispatched on events
// before the viewer handles them; events may be nil.
func New(screen tcell.Screen, h *history.TextHistory, events *event.Manager, tabWidth int) *Viewer {
	if tabWidth <= 0 {
		tabWidth = config.DefaultTabWidth
	}
	v := &Viewer{
		screen:   screen,
		history:  h,
		events:   events,
		styles:   DefaultStyles(),
		tabWidth: tabWidth,
		keys:     input.NewInputProcessor(),
		status:   statusbar.New(statusbar.DefaultConfig()),
	}
	screen.SetStyle(v.styles.Default)
	v.refreshLog()
	return v
}

// Pane returns the pane being shown.
func (v *Viewer) Pane() Pane {
	return v.pane
}

// Offset returns the index of the first visible line.
func (v *Viewer) Offset() int {
	return v.offsetY
}

// Run draws and handles events until q, Esc or Ctrl-C is pressed, the screen is
// finalized, or ctx is done.
func (v *Viewer) Run(ctx context.Context) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = v.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-stop:
		}
	}()

	v.status.SetTemporaryMessage("Tab: switch pane, arrows: scroll, q: quit")
	v.Draw()
	for {
		ev := v.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return nil
		case *tcell.EventInterrupt:
			return ctx.Err()
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			if v.handleKey(ev) {
				return nil
			}
		}
		v.Draw()
	}
}

// handleKey processes one key and reports whether the viewer should exit.
func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	if v.events != nil && v.events.Dispatch(event.TypeKeyPressed, event.KeyPressedData{KeyEvent: ev}) {
		return false
	}

	_, height := v.screen.Size()
	page := height - 1
	if page < 1 {
		page = 1
	}

	action := v.keys.ProcessEvent(ev)
	switch action {
	case input.ActionQuit:
		return true
	case input.ActionScrollUp:
		v.scroll(-1)
	case input.ActionScrollDown:
		v.scroll(1)
	case input.ActionPageUp:
		v.scroll(-page)
	case input.ActionPageDown:
		v.scroll(page)
	case input.ActionTop:
		v.offsetY = 0
	case input.ActionBottom:
		v.scroll(len(v.lines()))
	case input.ActionSwitchPane:
		v.pane = (v.pane + 1) % 2
		v.offsetY = 0
		v.refreshLog()
		v.status.ResetTemporaryMessage()
	default:
		logger.DebugTagf("view", "Unbound key %s", ev.Name())
		v.status.SetTemporaryMessage("unbound key %s", ev.Name())
	}
	return false
}

// scroll moves the viewport by delta lines, keeping the last line reachable.
func (v *Viewer) scroll(delta int) {
	_, height := v.screen.Size()
	maxOffset := len(v.lines()) - (height - 1)
	if maxOffset < 0 {
		maxOffset = 0
	}
	v.offsetY += delta
	if v.offsetY > maxOffset {
		v.offsetY = maxOffset
	}
	if v.offsetY < 0 {
		v.offsetY = 0
	}
}

// refreshLog queries and formats the compacted action log.
func (v *Viewer) refreshLog() {
	actions := v.history.AllActions()
	v.logLines = make([]string, len(actions))
	for i, a := range actions {
		v.logLines[i] = fmt.Sprintf("%3d  %v", i+1, a)
	}
}

// lines returns the content of the current pane.
func (v *Viewer) lines() []string {
	if v.pane == PaneLog {
		return v.logLines
	}
	return splitLines(v.history.Text())
}
