package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitCmdCreatesPrimaryFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.json")

	primaryPath = path
	threshold = "info"
	defer func() { primaryPath, threshold = "cjsonlogger.json", "info" }()

	if err := runInit(initCmd, nil); err != nil {
		t.Fatalf("runInit: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected %s to exist: %v", path, err)
	}
}

func TestInitCmdRejectsUnknownThreshold(t *testing.T) {
	threshold = "not-a-level"
	defer func() { threshold = "info" }()

	if err := runInit(initCmd, nil); err == nil {
		t.Error("expected an error for an unknown threshold")
	}
}
