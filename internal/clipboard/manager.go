// Package clipboard holds yanked text for the session, optionally mirrored to the
// system clipboard.
package clipboard

import (
	"fmt"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/bethropolis/texthistory/internal/logger"
)

// Manager handles clipboard operations
type Manager struct {
	mu        sync.Mutex
	system    bool
	clipboard string
	hasData   bool
}

// NewManager creates a clipboard manager. With system set, yanks and pastes go
// through the OS clipboard and fall back to the internal one when it is unavailable.
func NewManager(system bool) *Manager {
	if system && clipboard.Unsupported {
		logger.WarnTagf("clipboard", "System clipboard unsupported on this platform, using internal clipboard")
		system = false
	}
	return &Manager{system: system}
}

// System reports whether the OS clipboard is in use.
func (m *Manager) System() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.system
}

// Yank stores text in the clipboard.
func (m *Manager) Yank(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clipboard = text
	m.hasData = true
	logger.DebugTagf("clipboard", "Yanked %d bytes", len(text))

	if m.system {
		if err := clipboard.WriteAll(text); err != nil {
			return fmt.Errorf("system clipboard write failed: %w", err)
		}
	}
	return nil
}

// Contents returns the text a paste would insert and whether there is any.
func (m *Manager) Contents() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.system {
		text, err := clipboard.ReadAll()
		if err == nil {
			return text, text != ""
		}
		logger.WarnTagf("clipboard", "System clipboard read failed, using internal clipboard: %v", err)
	}
	return m.clipboard, m.hasData
}
