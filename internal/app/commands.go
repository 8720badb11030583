package app

import (
	"fmt"
	"sort"

	"github.com/bethropolis/texthistory/internal/history"
	"github.com/bethropolis/texthistory/internal/plugin"
	"github.com/bethropolis/texthistory/internal/utils"
)

type command struct {
	usage string
	fn    plugin.CommandFunc
}

// RegisterCommand makes a command available to Execute.
func (s *Session) RegisterCommand(name, usage string, fn plugin.CommandFunc) error {
	if name == "" || fn == nil {
		return fmt.Errorf("command registration failed: name and function are required")
	}
	if _, exists := s.commands[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	s.commands[name] = command{usage: usage, fn: fn}
	return nil
}

// registerBuiltinCommands registers the history, clipboard and session commands.
func registerBuiltinCommands(s *Session) {
	builtins := []struct {
		name, usage string
		fn          plugin.CommandFunc
	}{
		{"insert", "insert <text> [pos] [version]: insert text (default: at end, next version)", s.cmdInsert},
		{"replace", "replace <text> [pos] [version]: overwrite len(text) characters", s.cmdReplace},
		{"delete", "delete <length> [pos] [version]: remove characters", s.cmdDelete},
		{"text", "text: print the document", s.cmdText},
		{"version", "version: print the current version", s.cmdVersion},
		{"log", "log [from] [to]: print the action log for a version range", s.cmdLog},
		{"raw", "raw [from] [to]: print the uncompacted action log", s.cmdRaw},
		{"replay", "replay [from] [to]: rebuild text from the compacted log", s.cmdReplay},
		{"yank", "yank [pos] [length]: copy the document or a span to the clipboard", s.cmdYank},
		{"paste", "paste [pos] [version]: insert the clipboard contents", s.cmdPaste},
		{"help", "help: list commands", s.cmdHelp},
		{"quit", "quit: end the session", s.cmdQuit},
	}
	for _, b := range builtins {
		if err := s.RegisterCommand(b.name, b.usage, b.fn); err != nil {
			panic(err) // builtin names are unique
		}
	}
}

// editOptions parses the optional [pos] [version] arguments starting at args[i].
func editOptions(args []string, i int) ([]history.EditOption, error) {
	var opts []history.EditOption
	pos, ok, err := intArg(args, i, "position", 0)
	if err != nil {
		return nil, err
	}
	if ok {
		opts = append(opts, history.At(pos))
	}
	version, ok, err := intArg(args, i+1, "version", 0)
	if err != nil {
		return nil, err
	}
	if ok {
		opts = append(opts, history.WithVersion(version))
	}
	if len(args) > i+2 {
		return nil, fmt.Errorf("too many arguments")
	}
	return opts, nil
}

func (s *Session) printVersion(v int, err error) error {
	if err != nil {
		return err
	}
	s.Printf("v%d\n", v)
	return nil
}

func (s *Session) cmdInsert(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: %s", s.commands["insert"].usage)
	}
	opts, err := editOptions(args, 1)
	if err != nil {
		return err
	}
	return s.printVersion(s.history.Insert(args[0], opts...))
}

func (s *Session) cmdReplace(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: %s", s.commands["replace"].usage)
	}
	opts, err := editOptions(args, 1)
	if err != nil {
		return err
	}
	return s.printVersion(s.history.Replace(args[0], opts...))
}

func (s *Session) cmdDelete(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: %s", s.commands["delete"].usage)
	}
	length, _, err := intArg(args, 0, "length", 0)
	if err != nil {
		return err
	}
	opts, err := editOptions(args, 1)
	if err != nil {
		return err
	}
	return s.printVersion(s.history.Delete(length, opts...))
}

func (s *Session) cmdText(args []string) error {
	s.Printf("%s\n", s.history.Text())
	return nil
}

func (s *Session) cmdVersion(args []string) error {
	s.Printf("%d\n", s.history.Version())
	return nil
}

// versionRange parses [from] [to], defaulting to the whole history.
func (s *Session) versionRange(args []string) (int, int, error) {
	if len(args) > 2 {
		return 0, 0, fmt.Errorf("too many arguments")
	}
	from, _, err := intArg(args, 0, "from version", 0)
	if err != nil {
		return 0, 0, err
	}
	to, _, err := intArg(args, 1, "to version", s.history.Version())
	if err != nil {
		return 0, 0, err
	}
	return from, to, nil
}

func (s *Session) queryActions(args []string, compact bool) ([]history.Action, error) {
	from, to, err := s.versionRange(args)
	if err != nil {
		return nil, err
	}
	if compact {
		return s.history.Actions(from, to)
	}
	return s.history.RawActions(from, to)
}

func (s *Session) cmdLog(args []string) error {
	actions, err := s.queryActions(args, s.cfg.History.Compact)
	if err != nil {
		return err
	}
	return writeActions(s.out, s.cfg.Output.Format, actions)
}

func (s *Session) cmdRaw(args []string) error {
	actions, err := s.queryActions(args, false)
	if err != nil {
		return err
	}
	return writeActions(s.out, s.cfg.Output.Format, actions)
}

func (s *Session) cmdReplay(args []string) error {
	actions, err := s.queryActions(args, true)
	if err != nil {
		return err
	}
	text, err := history.Replay(actions)
	if err != nil {
		return err
	}
	s.Printf("%s\n", text)
	return nil
}

func (s *Session) cmdYank(args []string) error {
	text := s.history.Text()
	if len(args) > 0 {
		pos, _, err := intArg(args, 0, "position", 0)
		if err != nil {
			return err
		}
		length, _, err := intArg(args, 1, "length", -1)
		if err != nil {
			return err
		}
		if pos < 0 || pos > s.history.Len() {
			return fmt.Errorf("%w: %d not in [0, %d]", history.ErrPosition, pos, s.history.Len())
		}
		text = utils.RuneSpan(text, pos, length)
	}
	if err := s.clipboard.Yank(text); err != nil {
		return err
	}
	s.Printf("yanked %d characters\n", len([]rune(text)))
	return nil
}

func (s *Session) cmdPaste(args []string) error {
	text, ok := s.clipboard.Contents()
	if !ok {
		return fmt.Errorf("clipboard is empty")
	}
	opts, err := editOptions(args, 0)
	if err != nil {
		return err
	}
	return s.printVersion(s.history.Insert(text, opts...))
}

func (s *Session) cmdHelp(args []string) error {
	names := make([]string, 0, len(s.commands))
	for name := range s.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s.Printf("  %s\n", s.commands[name].usage)
	}
	return nil
}

func (s *Session) cmdQuit(args []string) error {
	s.quit = true
	return nil
}
