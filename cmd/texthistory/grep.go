package main

import (
	"io"
	"os"

	"github.com/bethropolis/texthistory/internal/grep"
	"github.com/spf13/cobra"
)

func grepCmd() *cobra.Command {
	var opts grep.Options
	cmd := &cobra.Command{
		Use:   "grep <pattern> [file]",
		Short: "Print lines matching a glob pattern",
		Long: `Print lines of file (or standard input) containing a match for pattern.
'*' matches any run of characters and '?' matches a single character.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Pattern = args[0]
			var in io.Reader = cmd.InOrStdin()
			if len(args) == 2 {
				f, err := os.Open(args[1])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			_, err := grep.Grep(in, cmd.OutOrStdout(), opts)
			return err
		},
	}

	cmd.Flags().BoolVarP(&opts.IgnoreCase, "ignore-case", "i", false, "perform case insensitive matching")
	cmd.Flags().BoolVarP(&opts.Invert, "invert-match", "v", false, "select lines that do not match")
	cmd.Flags().BoolVarP(&opts.Count, "count", "c", false, "print only the number of selected lines")
	cmd.Flags().BoolVarP(&opts.LineNumber, "line-number", "n", false, "prefix each line with its line number")
	cmd.Flags().IntVarP(&opts.After, "after-context", "A", 0, "print num lines of trailing context")
	cmd.Flags().IntVarP(&opts.Before, "before-context", "B", 0, "print num lines of leading context")
	cmd.Flags().IntVarP(&opts.Context, "context", "C", 0, "print num lines of leading and trailing context")

	return cmd
}
