// internal/config/flags.go
package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Flags holds values parsed from command-line flags.
// Only flags the user actually set override the config file.
type Flags struct {
	ConfigFilePath  string
	LogLevel        string
	LogFilePath     string
	EnableTags      []string
	DisableTags     []string
	EnablePkgs      []string
	DisablePkgs     []string
	DebugLog        bool
	SystemClipboard bool
	Compact         bool
	Format          string
	TabWidth        int

	set *pflag.FlagSet
}

// Define registers the flags on fs.
func (f *Flags) Define(fs *pflag.FlagSet) {
	f.set = fs
	fs.StringVar(&f.ConfigFilePath, "config", "", fmt.Sprintf("path to TOML configuration file (default <config dir>/%s/%s)", AppName, DefaultConfigFileName))
	fs.StringVar(&f.LogLevel, "loglevel", "", "log level (debug, info, warn, error)")
	fs.StringVar(&f.LogFilePath, "logfile", "", "path to write the log file ('-' for stderr)")
	fs.StringSliceVar(&f.EnableTags, "log-tags", nil, "only log these tags")
	fs.StringSliceVar(&f.DisableTags, "log-disable-tags", nil, "never log these tags")
	fs.StringSliceVar(&f.EnablePkgs, "log-packages", nil, "only log from these packages")
	fs.StringSliceVar(&f.DisablePkgs, "log-disable-packages", nil, "never log from these packages")
	fs.BoolVar(&f.DebugLog, "debug-log", false, "print the log filter's decisions to stderr")
	fs.BoolVar(&f.SystemClipboard, "system-clipboard", SystemClipboard, "use the system clipboard for yank/paste")
	fs.BoolVar(&f.Compact, "compact", DefaultCompact, "optimize action logs before printing")
	fs.StringVar(&f.Format, "format", FormatText, "action log output format (text, yaml)")
	fs.IntVar(&f.TabWidth, "tabwidth", DefaultTabWidth, "spaces per tab in the viewer")
}

// ApplyOverrides updates cfg with the values of flags that were set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	if f.set == nil {
		return
	}
	f.set.Visit(func(fl *pflag.Flag) {
		switch fl.Name {
		case "loglevel":
			cfg.Logger.LogLevel = f.LogLevel
		case "logfile":
			cfg.Logger.LogFilePath = f.LogFilePath
		case "log-tags":
			cfg.Logger.EnabledTags = f.EnableTags
		case "log-disable-tags":
			cfg.Logger.DisabledTags = f.DisableTags
		case "log-packages":
			cfg.Logger.EnabledPackages = f.EnablePkgs
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = f.DisablePkgs
		case "system-clipboard":
			cfg.Clipboard.System = f.SystemClipboard
		case "compact":
			cfg.History.Compact = f.Compact
		case "format":
			cfg.Output.Format = f.Format
		case "tabwidth":
			cfg.View.TabWidth = f.TabWidth
		}
	})
}
