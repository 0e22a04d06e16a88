package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tononidis/cJSONLogger/internal/severity"
)

var thresholdCmd = &cobra.Command{
	Use:   "set-threshold NAME",
	Short: "Validate a severity threshold name",
	Long: `set-threshold parses NAME the same way the other subcommands
parse --threshold and reports whether it's a valid severity. It's a dry-run helper for
scripts assembling --threshold flags for the other subcommands; it
does not touch any logger state.`,
	Args: cobra.ExactArgs(1),
	RunE: runThreshold,
}

func runThreshold(cmd *cobra.Command, args []string) error {
	lvl, err := severity.ParseLevel(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%q is a valid threshold (%s, ordinal %d)\n", args[0], lvl, int(lvl))
	return nil
}
