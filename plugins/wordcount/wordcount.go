package wordcount

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/bethropolis/texthistory/internal/event"
	"github.com/bethropolis/texthistory/internal/plugin"
	"github.com/rivo/uniseg"
)

// Ensure WordCount implements plugin.Plugin
var _ plugin.Plugin = (*WordCount)(nil)

// Stats summarises a document.
type Stats struct {
	Lines     int
	Words     int
	Graphemes int // user-perceived characters
	Runes     int
	Bytes     int
}

// Count computes Stats for text. An empty text has zero lines.
func Count(text string) Stats {
	s := Stats{
		Words:     len(strings.Fields(text)),
		Graphemes: uniseg.GraphemeClusterCount(text),
		Runes:     utf8.RuneCountInString(text),
		Bytes:     len(text),
	}
	if text != "" {
		s.Lines = strings.Count(text, "\n") + 1
	}
	return s
}

func (s Stats) String() string {
	return fmt.Sprintf("Lines: %d, Words: %d, Graphemes: %d, Runes: %d, Bytes: %d",
		s.Lines, s.Words, s.Graphemes, s.Runes, s.Bytes)
}

// WordCount registers the wc command and counts edits applied during the session.
type WordCount struct {
	api plugin.HostAPI

	mu    sync.Mutex
	edits int
}

// New creates a new instance of the WordCount plugin.
func New() *WordCount {
	return &WordCount{}
}

// Name returns the unique name of the plugin.
func (p *WordCount) Name() string {
	return "wordcount"
}

// Initialize registers the wc command and subscribes to applied actions.
func (p *WordCount) Initialize(api plugin.HostAPI) error {
	p.api = api

	if err := api.RegisterCommand("wc", "wc: count lines, words, graphemes, runes and bytes", p.executeWordCount); err != nil {
		return fmt.Errorf("failed to register 'wc' command: %w", err)
	}
	api.SubscribeEvent(event.TypeActionApplied, func(event.Event) bool {
		p.mu.Lock()
		p.edits++
		p.mu.Unlock()
		return false
	})
	return nil
}

// Shutdown performs cleanup (nothing needed for this simple plugin).
func (p *WordCount) Shutdown() error {
	return nil
}

// Edits returns the number of actions applied since the plugin was initialized.
func (p *WordCount) Edits() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.edits
}

func (p *WordCount) executeWordCount(args []string) error {
	if p.api == nil {
		return fmt.Errorf("wordcount plugin not initialized with API")
	}
	p.api.Printf("%s, Edits: %d (v%d)\n", Count(p.api.Text()), p.Edits(), p.api.Version())
	return nil
}
