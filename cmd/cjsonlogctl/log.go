package main

import (
	"fmt"

	"github.com/spf13/cobra"

	cjsonlogger "github.com/tononidis/cJSONLogger"
	"github.com/tononidis/cJSONLogger/internal/severity"
)

var (
	logLevel    string
	logTemplate string
	logArgs     []string
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Init, emit a single record, dump, and destroy",
	Long: `log runs the full lifecycle for one record: Init at
--threshold, call the level helper named by --level with --template
and any --arg values (consumed left to right by %<1> directives and
printf verbs), then Dump and Destroy.

Example:
  cjsonlogctl log --level info --template "%<1>started" --arg server`,
	RunE: runLog,
}

func init() {
	logCmd.Flags().StringVarP(&logLevel, "level", "l", "info", "record severity (critical|error|warn|info|debug)")
	logCmd.Flags().StringVarP(&logTemplate, "template", "m", "", "log template, e.g. \"%<1>started\"")
	logCmd.Flags().StringArrayVarP(&logArgs, "arg", "a", nil, "argument consumed by the template, in order; repeatable")
}

func runLog(cmd *cobra.Command, args []string) error {
	if logTemplate == "" {
		return fmt.Errorf("--template is required")
	}

	thresholdLvl, err := severity.ParseLevel(threshold)
	if err != nil {
		return fmt.Errorf("invalid threshold %q: %w", threshold, err)
	}

	levelFn, err := levelHelper(logLevel)
	if err != nil {
		return err
	}

	templateArgs := make([]interface{}, len(logArgs))
	for i, a := range logArgs {
		templateArgs[i] = a
	}

	cjsonlogger.Init(thresholdLvl, primaryPath)
	levelFn(logTemplate, templateArgs...)
	cjsonlogger.Dump()
	cjsonlogger.Destroy()

	fmt.Printf("logged one %s record to %s\n", logLevel, primaryPath)
	return nil
}

func levelHelper(name string) (func(string, ...interface{}), error) {
	switch name {
	case "critical", "CRITICAL":
		return cjsonlogger.Critical, nil
	case "error", "ERROR":
		return cjsonlogger.Error, nil
	case "warn", "WARN", "warning", "WARNING":
		return cjsonlogger.Warn, nil
	case "info", "INFO":
		return cjsonlogger.Info, nil
	case "debug", "DEBUG":
		return cjsonlogger.Debug, nil
	default:
		return nil, fmt.Errorf("unknown level %q", name)
	}
}
