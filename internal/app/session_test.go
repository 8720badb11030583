package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/bethropolis/texthistory/internal/config"
	"github.com/bethropolis/texthistory/internal/event"
)

func newTestSession(t *testing.T, cfg *config.Config) (*Session, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	s, err := NewSession(cfg, &out)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	t.Cleanup(s.Close)
	return s, &out
}

func TestRunScenario(t *testing.T) {
	s, out := newTestSession(t, nil)
	script := `
# the regression chain
insert asd
insert kek 1
replace dea 2
delete 2 3
text
version
log
raw 0 2
replay
`
	if err := s.Run(context.Background(), strings.NewReader(script)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := strings.Join([]string{
		"v1", "v2", "v3", "v4",
		"akdd",
		"4",
		`  1  insert@0 "akeksd" v0→v2`,
		`  2  replace@2 "dea" v2→v3`,
		`  3  delete@3 2 v3→v4`,
		`  1  insert@0 "asd" v0→v1`,
		`  2  insert@1 "kek" v1→v2`,
		"akdd",
	}, "\n") + "\n"
	if out.String() != want {
		t.Errorf("output:\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestRunReportsErrorsAndContinues(t *testing.T) {
	s, out := newTestSession(t, nil)
	script := "insert abc\ninsert x 99\ndelete 5 1\nlog 3 1\nbogus\ninsert \"unterminated\ntext\n"
	if err := s.Run(context.Background(), strings.NewReader(script)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines:\n%s", len(lines), out.String())
	}
	for i, want := range []string{"position out of range", "length out of range", "invalid version range", "unknown command", "unterminated"} {
		line := lines[i+1]
		if !strings.HasPrefix(line, "error: ") || !strings.Contains(line, want) {
			t.Errorf("line %d = %q, want error containing %q", i+1, line, want)
		}
	}
	if lines[6] != "abc" {
		t.Errorf("text = %q", lines[6])
	}
}

func TestQuitStopsRun(t *testing.T) {
	s, _ := newTestSession(t, nil)
	if err := s.Run(context.Background(), strings.NewReader("insert a\nquit\ninsert b\n")); err != nil {
		t.Fatal(err)
	}
	if !s.Done() || s.History().Version() != 1 {
		t.Errorf("done=%v version=%d", s.Done(), s.History().Version())
	}
}

func TestRunCancelled(t *testing.T) {
	s, _ := newTestSession(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := s.Run(ctx, strings.NewReader("insert a\n"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if s.History().Version() != 0 {
		t.Error("command ran after cancellation")
	}
}

func TestRunCancelledWhileWaitingForInput(t *testing.T) {
	s, _ := newTestSession(t, nil)
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- s.Run(ctx, pr) }()
	cancel()

	select {
	case err := <-errc:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("err = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run still blocked on input after cancellation")
	}
}

func TestRunLongLine(t *testing.T) {
	s, out := newTestSession(t, nil)
	long := strings.Repeat("x", 200*1024)
	script := "insert " + long + "\nversion\n"
	if err := s.Run(context.Background(), strings.NewReader(script)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.String() != "v1\n1\n" {
		t.Errorf("output = %q", out.String())
	}
	if s.History().Len() != len(long) {
		t.Errorf("len = %d, want %d", s.History().Len(), len(long))
	}
}

func TestYankAndPaste(t *testing.T) {
	s, out := newTestSession(t, nil)
	for _, line := range []string{"insert akdd", "yank 1 2", "paste 0", "yank", "paste"} {
		if err := s.Execute(line); err != nil {
			t.Fatalf("%s: %v", line, err)
		}
	}
	if got := s.History().Text(); got != "kdakddkdakdd" {
		t.Errorf("text = %q", got)
	}
	if !strings.Contains(out.String(), "yanked 2 characters") {
		t.Errorf("output = %q", out.String())
	}
}

func TestPasteEmptyClipboard(t *testing.T) {
	s, _ := newTestSession(t, nil)
	if err := s.Execute("paste"); err == nil {
		t.Error("expected error")
	}
}

func TestVersionArgument(t *testing.T) {
	s, _ := newTestSession(t, nil)
	for _, line := range []string{"insert a", "insert b 1 1", "insert c 2 7"} {
		if err := s.Execute(line); err != nil {
			t.Fatalf("%s: %v", line, err)
		}
	}
	if s.History().Version() != 7 || s.History().Text() != "abc" {
		t.Errorf("state = v%d %q", s.History().Version(), s.History().Text())
	}
	if err := s.Execute("insert d 0 3"); err == nil {
		t.Error("expected version error for a target behind the head")
	}
}

func TestYAMLOutput(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Output.Format = config.FormatYAML
	s, out := newTestSession(t, cfg)

	for _, line := range []string{"insert ab", "insert c", "log"} {
		if err := s.Execute(line); err != nil {
			t.Fatal(err)
		}
	}
	got := out.String()
	for _, want := range []string{"- type: insert", "pos: 0", "from_version: 0", "to_version: 2", "text: abc"} {
		if !strings.Contains(got, want) {
			t.Errorf("yaml output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "length:") {
		t.Errorf("inserts should omit length:\n%s", got)
	}
}

func TestCompactDisabled(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.History.Compact = false
	s, out := newTestSession(t, cfg)
	for _, line := range []string{"insert a", "insert b", "log"} {
		if err := s.Execute(line); err != nil {
			t.Fatal(err)
		}
	}
	if n := strings.Count(out.String(), "insert@"); n != 2 {
		t.Errorf("expected 2 uncompacted inserts, output:\n%s", out.String())
	}
}

func TestInitialTextAndPlugins(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.History.InitialText = "hello world"
	s, out := newTestSession(t, cfg)

	if s.History().Version() != 1 {
		t.Fatalf("version = %d", s.History().Version())
	}
	if err := s.Execute("wc"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Words: 2") || !strings.Contains(out.String(), "Edits: 1") {
		t.Errorf("wc output = %q", out.String())
	}
	if err := s.RegisterCommand("wc", "dup", func([]string) error { return nil }); err == nil {
		t.Error("expected duplicate command error")
	}
}

func TestSessionEndedEvent(t *testing.T) {
	var out bytes.Buffer
	s, err := NewSession(nil, &out)
	if err != nil {
		t.Fatal(err)
	}
	var ended []event.SessionEndedData
	s.SubscribeEvent(event.TypeSessionEnded, func(e event.Event) bool {
		ended = append(ended, e.Data.(event.SessionEndedData))
		return false
	})
	_ = s.Execute("insert x")
	s.Close()
	if len(ended) != 1 || ended[0].SessionID != s.ID || ended[0].Version != 1 {
		t.Errorf("ended = %+v", ended)
	}
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"insert asd", []string{"insert", "asd"}},
		{`insert "hello world" 3`, []string{"insert", "hello world", "3"}},
		{`insert "a\nb"`, []string{"insert", "a\nb"}},
		{`insert "say \"hi\""`, []string{"insert", `say "hi"`}},
		{"insert `raw \\n`  2", []string{"insert", `raw \n`, "2"}},
		{`insert ""`, []string{"insert", ""}},
		{"  text\t", []string{"text"}},
	}
	for _, tt := range tests {
		got, err := splitArgs(tt.line)
		if err != nil {
			t.Errorf("splitArgs(%q): %v", tt.line, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitArgs(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}

	for _, bad := range []string{`insert "abc`, "insert `abc", "   "} {
		if _, err := splitArgs(bad); err == nil {
			t.Errorf("splitArgs(%q) should fail", bad)
		}
	}
}
