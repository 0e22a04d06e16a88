package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRotateCmdRequiresExistingFile(t *testing.T) {
	primaryPath = filepath.Join(t.TempDir(), "missing.json")
	defer func() { primaryPath = "cjsonlogger.json" }()

	if err := runRotate(rotateCmd, nil); err == nil {
		t.Error("expected an error rotating a missing file")
	}
}

func TestRotateCmdRenamesPrimaryFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	primaryPath = path
	defer func() { primaryPath = "cjsonlogger.json" }()

	if err := runRotate(rotateCmd, nil); err != nil {
		t.Fatalf("runRotate: %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("primary file should have been renamed away")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one rotated file, got %d", len(entries))
	}
}

func TestTrimRetainedKeepsOnlyNewestFiles(t *testing.T) {
	dir := t.TempDir()
	base := "app.json"
	primary := filepath.Join(dir, base)

	var oldest string
	for i := 0; i < 7; i++ {
		name := fmt.Sprintf("%d_0_0_%d_%s", i, i, base)
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte("{}"), 0o644); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
		if i == 0 {
			oldest = p
		}
		// force distinct mtimes regardless of filesystem timestamp resolution
		modTime := time.Now().Add(time.Duration(i) * time.Second)
		if err := os.Chtimes(p, modTime, modTime); err != nil {
			t.Fatalf("chtimes %s: %v", p, err)
		}
	}

	if err := trimRetained(primary); err != nil {
		t.Fatalf("trimRetained: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("expected 5 retained files, got %d", len(entries))
	}
	if _, err := os.Stat(oldest); !os.IsNotExist(err) {
		t.Error("oldest rotated file should have been trimmed")
	}
}
