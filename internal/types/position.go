// internal/types/position.go
package types

import "fmt"

// Position represents a place in the document.
// Line is the 0-based line index.
// Col is the 0-based column (rune) index within the line.
type Position struct {
	Line int
	Col  int // Rune index
}

// String renders the position 1-based, the way editors show it.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Col+1)
}

// PositionAt converts a rune offset in text to a line/column position.
// Offsets past the end resolve to the end of the text.
func PositionAt(text string, runeOffset int) Position {
	var pos Position
	i := 0
	for _, r := range text {
		if i == runeOffset {
			break
		}
		if r == '\n' {
			pos.Line++
			pos.Col = 0
		} else {
			pos.Col++
		}
		i++
	}
	return pos
}
