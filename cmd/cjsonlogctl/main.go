// Package main implements the cjsonlogctl CLI for exercising a
// cJSONLogger instance from the command line.
//
// cJSONLogger is an in-process library: its tree lives in the memory
// of whatever process called Init, and nothing persists that state
// between separate invocations of this binary. The init and log
// subcommands are therefore each a single, self-contained run of the
// library's lifecycle — init, act, dump, destroy — rather than a
// client talking to a long-lived daemon; dump and rotate work on the
// file at --path directly, and set-threshold only validates a name.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	primaryPath string
	threshold   string
	version     = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "cjsonlogctl",
	Short:   "Exercise a cJSONLogger instance from the command line",
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&primaryPath, "path", "p", "cjsonlogger.json", "primary log file path")
	rootCmd.PersistentFlags().StringVarP(&threshold, "threshold", "t", "info", "severity threshold (critical|error|warn|info|debug)")
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(rotateCmd)
	rootCmd.AddCommand(thresholdCmd)
}
