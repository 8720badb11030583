package main

import (
	"os"
	"os/signal"

	"github.com/bethropolis/texthistory/internal/app"
	"github.com/spf13/cobra"
)

func replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Read commands from standard input",
		Long: `Read history commands from standard input, one per line, until EOF or quit.
Type 'help' for the list of commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			session, err := app.NewSession(cfg, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer session.Close()
			return session.Run(ctx, cmd.InOrStdin())
		},
	}
}
