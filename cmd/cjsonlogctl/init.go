package main

import (
	"fmt"

	"github.com/spf13/cobra"

	cjsonlogger "github.com/tononidis/cJSONLogger"
	"github.com/tononidis/cJSONLogger/internal/severity"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an empty primary log file at --path",
	Long: `init brings up a logger, immediately dumps its empty tree to
--path, and tears the logger back down. It's a quick way to lay down a
fresh primary file before an application's first real log call.`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	lvl, err := severity.ParseLevel(threshold)
	if err != nil {
		return fmt.Errorf("invalid threshold %q: %w", threshold, err)
	}

	cjsonlogger.Init(lvl, primaryPath)
	cjsonlogger.Dump()
	cjsonlogger.Destroy()

	fmt.Printf("initialized %s at threshold %s\n", primaryPath, lvl)
	return nil
}
