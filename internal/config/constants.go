package config

// Base application details
const AppName = "texthistory"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "texthistory.log"

// Output formats for the log command
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

const DefaultTabWidth = 4
const DefaultCompact = true
const SystemClipboard = false
