package types

import (
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
)

func TestPositionAt(t *testing.T) {
	text := "ab\ncdé\n"
	tests := []struct {
		off  int
		want Position
	}{
		{0, Position{0, 0}},
		{2, Position{0, 2}},
		{3, Position{1, 0}},
		{6, Position{1, 3}},
		{7, Position{2, 0}},
		{99, Position{2, 0}},
	}
	for _, tt := range tests {
		if got := PositionAt(text, tt.off); got != tt.want {
			t.Errorf("PositionAt(%d) = %v, want %v", tt.off, got, tt.want)
		}
	}
	if s := (Position{Line: 1, Col: 3}).String(); s != "2:4" {
		t.Errorf("String() = %q", s)
	}
}

func TestNewEditInfo(t *testing.T) {
	pre := "one\ntwo"
	// replace "wo" with "x\nyz"
	e := NewEditInfo(pre, 5, 7, "x\nyz")

	if e.StartIndex != 5 || e.OldEndIndex != 7 || e.NewEndIndex != 9 {
		t.Errorf("indexes = %d/%d/%d", e.StartIndex, e.OldEndIndex, e.NewEndIndex)
	}
	if e.StartPosition != (sitter.Point{Row: 1, Column: 1}) {
		t.Errorf("start = %+v", e.StartPosition)
	}
	if e.OldEndPosition != (sitter.Point{Row: 1, Column: 3}) {
		t.Errorf("old end = %+v", e.OldEndPosition)
	}
	if e.NewEndPosition != (sitter.Point{Row: 2, Column: 2}) {
		t.Errorf("new end = %+v", e.NewEndPosition)
	}

	in := e.InputEdit()
	if in.StartIndex != e.StartIndex || in.NewEndPoint != e.NewEndPosition {
		t.Errorf("InputEdit mismatch: %+v", in)
	}
}
