package main

import (
	"bytes"

	"github.com/bethropolis/texthistory/internal/app"
	"github.com/bethropolis/texthistory/internal/logger"
	"github.com/bethropolis/texthistory/internal/view"
	"github.com/spf13/cobra"
)

func viewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view [script]",
		Short: "Browse the document and its action log in the terminal",
		Long: `Run an optional command script, then show the resulting document and its
compacted action log. Tab switches between them, arrows scroll and q quits.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var out bytes.Buffer
			session, err := app.NewSession(cfg, &out)
			if err != nil {
				return err
			}
			defer session.Close()

			if len(args) == 1 {
				if err := runScript(cmd, session, args[0]); err != nil {
					return err
				}
				logger.DebugTagf("app", "Script output:\n%s", out.String())
			}

			screen, err := view.Open()
			if err != nil {
				return err
			}
			defer screen.Fini()

			v := view.New(screen, session.History(), session.Events(), cfg.View.TabWidth)
			return v.Run(cmd.Context())
		},
	}
}
