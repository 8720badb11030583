package app

import (
	"fmt"
	"io"

	"github.com/bethropolis/texthistory/internal/config"
	"github.com/bethropolis/texthistory/internal/history"
	"gopkg.in/yaml.v3"
)

// writeActions prints an action log in the configured format.
func writeActions(w io.Writer, format string, actions []history.Action) error {
	switch format {
	case config.FormatYAML:
		data, err := yaml.Marshal(actions)
		if err != nil {
			return fmt.Errorf("failed to encode actions: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		if len(actions) == 0 {
			_, err := fmt.Fprintln(w, "(no actions)")
			return err
		}
		for i, a := range actions {
			if _, err := fmt.Fprintf(w, "%3d  %v\n", i+1, a); err != nil {
				return err
			}
		}
		return nil
	}
}
