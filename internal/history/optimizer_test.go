package history

import (
	"errors"
	"reflect"
	"testing"
)

func TestOptimize(t *testing.T) {
	tests := []struct {
		name string
		in   []Action
		want []Action
	}{
		{
			name: "empty",
			in:   nil,
			want: []Action{},
		},
		{
			name: "single action passes through",
			in:   []Action{NewDelete(0, 1, 0, 1)},
			want: []Action{NewDelete(0, 1, 0, 1)},
		},
		{
			name: "append at end of previous insert",
			in:   []Action{NewInsert(3, "ab", 0, 1), NewInsert(5, "cd", 1, 2)},
			want: []Action{NewInsert(3, "abcd", 0, 2)},
		},
		{
			name: "insert inside an insert made at the start",
			in:   []Action{NewInsert(0, "abc", 0, 1), NewInsert(1, "X", 1, 2)},
			want: []Action{NewInsert(0, "aXbc", 0, 2)},
		},
		{
			name: "insert at the very start of an insert made at the start",
			in:   []Action{NewInsert(0, "abc", 0, 1), NewInsert(0, "X", 1, 2)},
			want: []Action{NewInsert(0, "Xabc", 0, 2)},
		},
		{
			name: "versions not contiguous",
			in:   []Action{NewInsert(0, "a", 0, 1), NewInsert(1, "b", 2, 3)},
			want: []Action{NewInsert(0, "a", 0, 1), NewInsert(1, "b", 2, 3)},
		},
		{
			name: "inside an insert not made at the start",
			in:   []Action{NewInsert(2, "ab", 0, 1), NewInsert(3, "X", 1, 2)},
			want: []Action{NewInsert(2, "ab", 0, 1), NewInsert(3, "X", 1, 2)},
		},
		{
			name: "chain of three",
			in:   []Action{NewInsert(0, "a", 0, 1), NewInsert(1, "b", 1, 2), NewInsert(2, "c", 2, 3)},
			want: []Action{NewInsert(0, "abc", 0, 3)},
		},
		{
			name: "delete breaks a run",
			in: []Action{
				NewInsert(0, "ab", 0, 1),
				NewDelete(0, 1, 1, 2),
				NewInsert(1, "c", 2, 3),
				NewInsert(2, "d", 3, 4),
			},
			want: []Action{
				NewInsert(0, "ab", 0, 1),
				NewDelete(0, 1, 1, 2),
				NewInsert(1, "cd", 2, 4),
			},
		},
		{
			name: "replace is never merged",
			in:   []Action{NewInsert(0, "a", 0, 1), NewReplace(1, "b", 1, 2)},
			want: []Action{NewInsert(0, "a", 0, 1), NewReplace(1, "b", 1, 2)},
		},
		{
			name: "failed merge resumes from the next action",
			in: []Action{
				NewInsert(0, "a", 0, 1),
				NewInsert(5, "x", 1, 2),
				NewInsert(6, "y", 2, 3),
			},
			want: []Action{
				NewInsert(0, "a", 0, 1),
				NewInsert(5, "xy", 1, 3),
			},
		},
		{
			name: "runes, not bytes",
			in:   []Action{NewInsert(0, "☃é", 0, 1), NewInsert(1, "-", 1, 2)},
			want: []Action{NewInsert(0, "☃-é", 0, 2)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var before []Action
			if tt.in != nil {
				before = append([]Action(nil), tt.in...)
			}

			got := Optimize(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Optimize = %v, want %v", got, tt.want)
			}
			if !reflect.DeepEqual(tt.in, before) {
				t.Errorf("input modified: %v", tt.in)
			}
			if again := Optimize(got); !reflect.DeepEqual(again, got) {
				t.Errorf("second pass = %v, want %v", again, got)
			}
		})
	}
}

func TestMergedInsertIsEquivalent(t *testing.T) {
	pairs := []struct {
		pre  string
		a, b Action
	}{
		{"hello", NewInsert(5, " world", 0, 1), NewInsert(11, "!", 1, 2)},
		{"hello", NewInsert(0, ">> ", 0, 1), NewInsert(1, "|", 1, 2)},
		{"", NewInsert(0, "abc", 0, 1), NewInsert(3, "d", 1, 2)},
		{"xyz", NewInsert(0, "", 0, 1), NewInsert(0, "q", 1, 2)},
		{"tail", NewInsert(2, "é☃", 0, 1), NewInsert(4, "!", 1, 2)},
	}

	for _, p := range pairs {
		merged, ok := mergeInserts(p.a, p.b)
		if !ok {
			t.Errorf("expected %v and %v to merge", p.a, p.b)
			continue
		}
		sequential := p.b.Apply(p.a.Apply(p.pre))
		if got := merged.Apply(p.pre); got != sequential {
			t.Errorf("merged %v on %q = %q, sequential = %q", merged, p.pre, got, sequential)
		}
		if merged.FromVersion != p.a.FromVersion || merged.ToVersion != p.b.ToVersion {
			t.Errorf("merged span v%d→v%d", merged.FromVersion, merged.ToVersion)
		}
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		a    Action
		pre  string
		want string
	}{
		{NewInsert(1, "kek", 0, 1), "asd", "akeksd"},
		{NewInsert(3, "!", 0, 1), "asd", "asd!"},
		{NewReplace(2, "dea", 0, 1), "akeksd", "akdead"},
		{NewReplace(1, "xyz", 0, 1), "ab", "axyz"},
		{NewReplace(0, "", 0, 1), "ab", "ab"},
		{NewDelete(3, 2, 0, 1), "akdead", "akdd"},
		{NewDelete(0, 0, 0, 1), "ab", "ab"},
		{NewDelete(1, 1, 0, 1), "a☃b", "ab"},
	}
	for _, tt := range tests {
		if got := tt.a.Apply(tt.pre); got != tt.want {
			t.Errorf("%v.Apply(%q) = %q, want %q", tt.a, tt.pre, got, tt.want)
		}
	}
}

func TestApplyUnknownTypePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Action{}.Apply("abc")
}

func TestReplay(t *testing.T) {
	text, err := Replay([]Action{
		NewInsert(0, "asd", 0, 1),
		NewInsert(1, "kek", 1, 2),
		NewReplace(2, "dea", 2, 3),
		NewDelete(3, 2, 3, 4),
	})
	if err != nil || text != "akdd" {
		t.Errorf("Replay = %q, %v", text, err)
	}

	text, err = Replay([]Action{NewInsert(0, "ab", 0, 1), NewDelete(1, 5, 1, 2)})
	if !errors.Is(err, ErrLength) {
		t.Errorf("err = %v, want ErrLength", err)
	}
	if text != "ab" {
		t.Errorf("partial text = %q", text)
	}

	if _, err := Replay([]Action{NewInsert(1, "x", 0, 1)}); !errors.Is(err, ErrPosition) {
		t.Errorf("err = %v, want ErrPosition", err)
	}
}

func TestActionString(t *testing.T) {
	if s := NewInsert(1, "kek", 1, 2).String(); s != `insert@1 "kek" v1→v2` {
		t.Errorf("got %s", s)
	}
	if s := NewDelete(3, 2, 3, 4).String(); s != "delete@3 2 v3→v4" {
		t.Errorf("got %s", s)
	}
	if s := ActionType(9).String(); s != "ActionType(9)" {
		t.Errorf("got %s", s)
	}
}
