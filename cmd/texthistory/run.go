package main

import (
	"fmt"
	"os"

	"github.com/bethropolis/texthistory/internal/app"
	"github.com/spf13/cobra"
)

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <script>",
		Short: "Execute a command script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.NewSession(cfg, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer session.Close()
			return runScript(cmd, session, args[0])
		},
	}
}

// runScript executes the commands in path on session.
func runScript(cmd *cobra.Command, session *app.Session, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()
	return session.Run(cmd.Context(), f)
}
