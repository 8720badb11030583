// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/bethropolis/texthistory/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Config defines the appearance and behavior of the status bar.
type Config struct {
	StyleDefault   tcell.Style
	StyleMessage   tcell.Style // Style for temporary messages
	MessageTimeout time.Duration
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{
		StyleDefault:   tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorBlue),
		StyleMessage:   tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlue).Bold(true),
		MessageTimeout: 4 * time.Second,
	}
}

// StatusBar is the viewer's bottom line: history version, pane, log size and the
// position of the end of the document.
type StatusBar struct {
	config Config
	mu     sync.RWMutex

	version int
	actions int
	pane    string
	end     types.Position

	tempMessage     string
	tempMessageTime time.Time

	now func() time.Time
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{
		config: config,
		now:    time.Now,
	}
}

// SetHistoryInfo updates the version and raw log size shown.
func (sb *StatusBar) SetHistoryInfo(version, actions int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.version = version
	sb.actions = actions
}

// SetPane updates the displayed pane name.
func (sb *StatusBar) SetPane(pane string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.pane = pane
}

// SetEnd updates the end-of-document position.
func (sb *StatusBar) SetEnd(pos types.Position) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.end = pos
}

// SetTemporaryMessage displays a message for the configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
}

// ResetTemporaryMessage clears any temporary message being displayed.
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

func (sb *StatusBar) defaultText() string {
	pane := sb.pane
	if pane == "" {
		pane = "text"
	}
	return fmt.Sprintf(" v%d -- %s -- %d actions -- end %s", sb.version, pane, sb.actions, sb.end)
}

// Text returns the line Draw would render, expiring a stale temporary message.
func (sb *StatusBar) Text() (string, tcell.Style) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if !sb.tempMessageTime.IsZero() {
		if sb.now().Sub(sb.tempMessageTime) <= sb.config.MessageTimeout {
			return " " + sb.tempMessage, sb.config.StyleMessage
		}
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}
	return sb.defaultText(), sb.config.StyleDefault
}

// Draw renders the status bar on the last screen row using visual widths.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1
	text, style := sb.Text()

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	gr := uniseg.NewGraphemes(text)
	currentX := 0
	for gr.Next() {
		clusterWidth := gr.Width()
		if currentX+clusterWidth > width {
			break
		}
		runes := gr.Runes()
		screen.SetContent(currentX, y, runes[0], runes[1:], style)
		currentX += clusterWidth
	}
}
