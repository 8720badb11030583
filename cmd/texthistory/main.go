package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bethropolis/texthistory/internal/config"
	"github.com/bethropolis/texthistory/internal/logger"
	"github.com/spf13/cobra"
)

var Version = "dev"

var (
	flags     config.Flags
	cfg       *config.Config
	logCloser io.Closer
)

func main() {
	rootCmd := &cobra.Command{
		Use:   config.AppName,
		Short: "Versioned text history with a compacting action log",
		Long: `texthistory keeps a document together with the log of insert, replace and
delete actions that produced it. Adjacent inserts are merged when the log is queried.`,
		Version:            Version,
		SilenceUsage:       true,
		PersistentPreRunE:  setup,
		PersistentPostRunE: teardown,
	}
	flags.Define(rootCmd.PersistentFlags())

	rootCmd.AddCommand(replCmd())
	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(viewCmd())
	rootCmd.AddCommand(grepCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the configuration and starts the logger before any subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	logger.SetDebugFilter(flags.DebugLog)

	var err error
	cfg, err = config.Load(flags.ConfigFilePath, &flags)
	if err != nil {
		return err
	}

	// The viewer owns the terminal, so its log cannot go to stderr.
	if cmd.Name() == "view" && (cfg.Logger.LogFilePath == "" || cfg.Logger.LogFilePath == "-") {
		cfg.Logger.LogFilePath = config.DefaultLogFileName
	}

	logCloser, err = logger.Setup(cfg.Logger)
	if err != nil {
		return err
	}
	cfg.LogWarnings()
	logger.Debugf("Running %s with log level %s", cmd.CommandPath(), cfg.Logger.LogLevel)
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	if logCloser != nil {
		return logCloser.Close()
	}
	return nil
}
