package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.History.Compact || cfg.View.TabWidth != DefaultTabWidth || cfg.Output.Format != FormatText {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Logger.LogLevel != "info" {
		t.Errorf("log level = %q", cfg.Logger.LogLevel)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
[logger]
log_level = "debug"
disabled_tags = ["event"]

[history]
compact = false
initial_text = "hello"

[clipboard]
system = true

[view]
tab_width = 8

[output]
format = "YAML"

[extra]
key = 1
`)
	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Logger.LogLevel != "debug" || len(cfg.Logger.DisabledTags) != 1 {
		t.Errorf("logger = %+v", cfg.Logger)
	}
	if cfg.History.Compact || cfg.History.InitialText != "hello" {
		t.Errorf("history = %+v", cfg.History)
	}
	if !cfg.Clipboard.System || cfg.View.TabWidth != 8 || cfg.Output.Format != FormatYAML {
		t.Errorf("cfg = %+v", cfg)
	}
	if len(cfg.Warnings) != 1 || !strings.Contains(cfg.Warnings[0], "extra.key") {
		t.Errorf("warnings = %v", cfg.Warnings)
	}
}

func TestLoadInvalidValuesReset(t *testing.T) {
	path := writeConfig(t, `
[logger]
log_level = "loud"
[view]
tab_width = -2
[output]
format = "xml"
`)
	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.View.TabWidth != DefaultTabWidth || cfg.Output.Format != FormatText || cfg.Logger.LogLevel != "info" {
		t.Errorf("cfg = %+v", cfg)
	}
	if len(cfg.Warnings) != 3 {
		t.Errorf("warnings = %v", cfg.Warnings)
	}
}

func TestLoadParseError(t *testing.T) {
	path := writeConfig(t, "[history\ncompact = ")
	if _, err := Load(path, nil); err == nil {
		t.Error("expected parse error")
	}
}

func TestFlagOverrides(t *testing.T) {
	path := writeConfig(t, `
[history]
compact = true
[view]
tab_width = 8
`)
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	var flags Flags
	flags.Define(fs)
	if err := fs.Parse([]string{"--compact=false", "--format", "yaml", "--log-tags", "history,app"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, &flags)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.History.Compact {
		t.Error("compact flag not applied")
	}
	if cfg.Output.Format != FormatYAML {
		t.Errorf("format = %q", cfg.Output.Format)
	}
	// Unset flags keep the file's value.
	if cfg.View.TabWidth != 8 {
		t.Errorf("tab width = %d", cfg.View.TabWidth)
	}
	if len(cfg.Logger.EnabledTags) != 2 || cfg.Logger.EnabledTags[1] != "app" {
		t.Errorf("tags = %v", cfg.Logger.EnabledTags)
	}
}
