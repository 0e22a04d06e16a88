package main

import (
	"testing"
)

func findCommand(name string) bool {
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == name {
			return true
		}
	}
	return false
}

func TestRootCmdRegistersAllSubcommands(t *testing.T) {
	for _, name := range []string{"init", "log", "dump", "rotate", "set-threshold"} {
		if !findCommand(name) {
			t.Errorf("subcommand %q not registered on rootCmd", name)
		}
	}
}

func TestRootCmdHasPersistentFlags(t *testing.T) {
	if rootCmd.PersistentFlags().Lookup("path") == nil {
		t.Error("rootCmd should have a --path persistent flag")
	}
	if rootCmd.PersistentFlags().Lookup("threshold") == nil {
		t.Error("rootCmd should have a --threshold persistent flag")
	}
}
