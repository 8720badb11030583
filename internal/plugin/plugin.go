package plugin

import (
	"github.com/bethropolis/texthistory/internal/event"
)

// CommandFunc defines the signature for commands registered by plugins.
// It takes the command's arguments and returns an error.
type CommandFunc func(args []string) error

// HostAPI is what plugins can reach of the running session.
type HostAPI interface {
	// --- Document (read-only) ---
	Text() string
	Version() int

	// --- Event Bus Interaction ---
	SubscribeEvent(eventType event.Type, handler event.Handler)

	// --- Command Registration ---
	RegisterCommand(name, usage string, cmdFunc CommandFunc) error

	// --- Output ---
	Printf(format string, args ...interface{})
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once when the plugin is loaded.
	// Used for subscribing to events and registering commands.
	Initialize(api HostAPI) error

	// Shutdown is called once when the session ends.
	Shutdown() error
}
