// Package app runs a line-oriented command session over a text history.
package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bethropolis/texthistory/internal/clipboard"
	"github.com/bethropolis/texthistory/internal/config"
	"github.com/bethropolis/texthistory/internal/event"
	"github.com/bethropolis/texthistory/internal/history"
	"github.com/bethropolis/texthistory/internal/logger"
	"github.com/bethropolis/texthistory/internal/plugin"
	"github.com/bethropolis/texthistory/plugins/wordcount"
	"github.com/google/uuid"
)

// Session owns one history and everything that operates on it.
type Session struct {
	ID string

	cfg       *config.Config
	history   *history.TextHistory
	events    *event.Manager
	clipboard *clipboard.Manager
	plugins   *plugin.Manager

	commands map[string]command
	out      io.Writer
	quit     bool
}

// NewSession creates a session writing command output to out.
func NewSession(cfg *config.Config, out io.Writer) (*Session, error) {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	events := event.NewManager()
	s := &Session{
		ID:        uuid.NewString(),
		cfg:       cfg,
		events:    events,
		history:   history.New(history.WithEventManager(events)),
		clipboard: clipboard.NewManager(cfg.Clipboard.System),
		plugins:   plugin.NewManager(),
		commands:  make(map[string]command),
		out:       out,
	}

	s.subscribeEvents()
	registerBuiltinCommands(s)

	if err := s.plugins.Register(wordcount.New()); err != nil {
		return nil, fmt.Errorf("error registering plugins: %w", err)
	}
	s.plugins.InitializePlugins(s)

	if cfg.History.InitialText != "" {
		if _, err := s.history.Insert(cfg.History.InitialText); err != nil {
			return nil, fmt.Errorf("error inserting initial text: %w", err)
		}
	}

	logger.InfoTagf("app", "Session %s started", s.ID)
	s.events.Dispatch(event.TypeSessionStarted, event.SessionStartedData{SessionID: s.ID})
	return s, nil
}

// History returns the session's history.
func (s *Session) History() *history.TextHistory {
	return s.history
}

// Events returns the session's event manager.
func (s *Session) Events() *event.Manager {
	return s.events
}

// Done reports whether the quit command ran.
func (s *Session) Done() bool {
	return s.quit
}

// Execute parses and runs one command line. Blank lines and # comments are ignored.
func (s *Session) Execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	args, err := splitArgs(line)
	if err != nil {
		return err
	}
	name := strings.ToLower(args[0])
	cmd, ok := s.commands[name]
	if !ok {
		return fmt.Errorf("unknown command '%s' (try 'help')", name)
	}

	logger.DebugTagf("app", "Executing %s %q", name, args[1:])
	return cmd.fn(args[1:])
}

// maxLineSize bounds a single command line, and so the text one insert can carry.
const maxLineSize = 16 * 1024 * 1024

// Run executes commands read from r, one per line, until EOF, quit or ctx is done.
// Command errors are printed and do not stop the loop. Lines are read on a separate
// goroutine so cancellation does not wait for input; that goroutine exits once the
// pending read on r returns.
func (s *Session) Run(ctx context.Context, r io.Reader) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for !s.quit {
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("error reading commands: %w", err)
				}
				return nil
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := s.Execute(line); err != nil {
				fmt.Fprintf(s.out, "error: %v\n", err)
			}
		}
	}
	return nil
}

// Close shuts plugins down and announces the end of the session.
func (s *Session) Close() {
	s.plugins.ShutdownPlugins()
	version := s.history.Version()
	s.events.Dispatch(event.TypeSessionEnded, event.SessionEndedData{SessionID: s.ID, Version: version})
	logger.InfoTagf("app", "Session %s ended at v%d", s.ID, version)
}

// --- plugin.HostAPI ---

// Text returns the current document.
func (s *Session) Text() string { return s.history.Text() }

// Version returns the current version.
func (s *Session) Version() int { return s.history.Version() }

// SubscribeEvent forwards to the session's event manager.
func (s *Session) SubscribeEvent(eventType event.Type, handler event.Handler) {
	s.events.Subscribe(eventType, handler)
}

// Printf writes command output.
func (s *Session) Printf(format string, args ...interface{}) {
	fmt.Fprintf(s.out, format, args...)
}
