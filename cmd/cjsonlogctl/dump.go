package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Pretty-print the primary log file at --path",
	Long: `dump has no in-process tree to flush across separate CLI
invocations, so it reads --path from disk and re-pretty-prints it to
stdout as a well-formedness check, rather than mutating the file.`,
	RunE: runDump,
}

func runDump(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(primaryPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", primaryPath, err)
	}
	os.Stdout.Write(pretty.Pretty(data))
	return nil
}
