package types

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// EditInfo encapsulates the information needed for tree-sitter's Edit function.
type EditInfo struct {
	StartIndex     uint32       // Start byte of the edit
	OldEndIndex    uint32       // End byte of the old text
	NewEndIndex    uint32       // End byte of the new text
	StartPosition  sitter.Point // Start position (row, byte column)
	OldEndPosition sitter.Point // Old end position
	NewEndPosition sitter.Point // New end position
}

// NewEditInfo describes replacing pre[start:oldEnd] (byte offsets) with inserted.
func NewEditInfo(pre string, start, oldEnd int, inserted string) EditInfo {
	startPoint := PointAt(pre, start)
	return EditInfo{
		StartIndex:     uint32(start),
		OldEndIndex:    uint32(oldEnd),
		NewEndIndex:    uint32(start + len(inserted)),
		StartPosition:  startPoint,
		OldEndPosition: PointAt(pre, oldEnd),
		NewEndPosition: advancePoint(startPoint, inserted),
	}
}

// InputEdit converts the info into the value tree-sitter's Tree.Edit expects.
func (e EditInfo) InputEdit() sitter.EditInput {
	return sitter.EditInput{
		StartIndex:  e.StartIndex,
		OldEndIndex: e.OldEndIndex,
		NewEndIndex: e.NewEndIndex,
		StartPoint:  e.StartPosition,
		OldEndPoint: e.OldEndPosition,
		NewEndPoint: e.NewEndPosition,
	}
}

// PointAt returns the row and byte column of a byte offset in text.
func PointAt(text string, byteOffset int) sitter.Point {
	if byteOffset > len(text) {
		byteOffset = len(text)
	}
	return advancePoint(sitter.Point{}, text[:byteOffset])
}

func advancePoint(p sitter.Point, s string) sitter.Point {
	rows := strings.Count(s, "\n")
	if rows == 0 {
		return sitter.Point{Row: p.Row, Column: p.Column + uint32(len(s))}
	}
	last := strings.LastIndexByte(s, '\n')
	return sitter.Point{Row: p.Row + uint32(rows), Column: uint32(len(s) - last - 1)}
}
