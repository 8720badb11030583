package view

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/texthistory/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

func splitLines(text string) []string {
	return strings.Split(text, "\n")
}

// gutterWidth returns the width of the line number column, or 0 when the screen
// is too narrow for it.
func gutterWidth(lineCount, screenWidth int) int {
	w := len(fmt.Sprint(lineCount)) + 1
	if w >= screenWidth {
		return 0
	}
	return w
}

// Draw renders the visible lines and the status bar.
func (v *Viewer) Draw() {
	width, height := v.screen.Size()
	viewHeight := height - 1
	v.screen.Clear()
	if viewHeight <= 0 || width <= 0 {
		v.screen.Show()
		return
	}

	lines := v.lines()
	v.scroll(0)
	gutter := 0
	if v.pane == PaneText {
		gutter = gutterWidth(len(lines), width)
	}

	for screenY := 0; screenY < viewHeight; screenY++ {
		lineIdx := screenY + v.offsetY
		fill(v.screen, screenY, width, v.styles.Default)
		if lineIdx >= len(lines) {
			continue
		}
		if gutter > 0 {
			num := fmt.Sprintf("%*d", gutter-1, lineIdx+1)
			drawString(v.screen, 0, screenY, gutter-1, num, v.styles.LineNumber)
		}
		v.drawLine(gutter, screenY, width, lines[lineIdx])
	}

	v.updateStatus()
	v.status.Draw(v.screen, width, height)
	v.screen.Show()
}

// drawLine draws one line starting at screen column x0, expanding tabs and
// clipping at the screen edge.
func (v *Viewer) drawLine(x0, y, width int, line string) {
	visualX := 0
	gr := uniseg.NewGraphemes(line)
	for gr.Next() {
		runes := gr.Runes()
		screenX := x0 + visualX
		if screenX >= width {
			return
		}

		if runes[0] == '\t' {
			spaces := v.tabWidth - visualX%v.tabWidth
			for i := 0; i < spaces && screenX+i < width; i++ {
				v.screen.SetContent(screenX+i, y, ' ', nil, v.styles.Default)
			}
			visualX += spaces
			continue
		}

		clusterWidth := gr.Width()
		if screenX+clusterWidth > width {
			return
		}
		v.screen.SetContent(screenX, y, runes[0], runes[1:], v.styles.Default)
		visualX += clusterWidth
	}
}

// updateStatus refreshes the status bar from the history.
func (v *Viewer) updateStatus() {
	text := v.history.Text()
	version := v.history.Version()
	raw, _ := v.history.RawActions(0, version)

	v.status.SetHistoryInfo(version, len(raw))
	v.status.SetPane(v.pane.String())
	v.status.SetEnd(types.PositionAt(text, utf8.RuneCountInString(text)))
}

func fill(screen tcell.Screen, y, width int, style tcell.Style) {
	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}
}

// drawString draws s from column x, stopping before maxWidth cells are exceeded.
func drawString(screen tcell.Screen, x, y, maxWidth int, s string, style tcell.Style) {
	used := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		w := gr.Width()
		if used+w > maxWidth {
			return
		}
		runes := gr.Runes()
		screen.SetContent(x+used, y, runes[0], runes[1:], style)
		used += w
	}
}
