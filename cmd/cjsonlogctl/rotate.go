package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/tononidis/cJSONLogger/internal/rotation"
)

type rotatedFile struct {
	path    string
	modTime time.Time
}

var rotateCmd = &cobra.Command{
	Use:   "rotate",
	Short: "Move the primary log file at --path to a rotated name",
	Long: `rotate has no in-process tree to swap out across separate
CLI invocations, so it renames --path to the same timestamped
"H_M_S_NS_<basename>" form Rotate uses, then trims the directory back
to the same retention bound the in-process registry enforces.`,
	RunE: runRotate,
}

func runRotate(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(primaryPath); err != nil {
		return fmt.Errorf("stat %s: %w", primaryPath, err)
	}

	rotated := rotation.RotatedPath(primaryPath, time.Now())
	if err := os.Rename(primaryPath, rotated); err != nil {
		return fmt.Errorf("rotate %s: %w", primaryPath, err)
	}

	if err := trimRetained(primaryPath); err != nil {
		return fmt.Errorf("trim rotated files for %s: %w", primaryPath, err)
	}

	fmt.Printf("rotated %s -> %s\n", primaryPath, rotated)
	return nil
}

// trimRetained deletes the oldest rotated siblings of primary beyond
// rotation.MaxRetained, mirroring the eviction order Registry.Push
// applies in-process.
func trimRetained(primary string) error {
	dir := filepath.Dir(primary)
	base := filepath.Base(primary)
	matches, err := filepath.Glob(filepath.Join(dir, "*_*_*_*_"+base))
	if err != nil {
		return err
	}
	if len(matches) <= rotation.MaxRetained {
		return nil
	}

	files := make([]rotatedFile, 0, len(matches))
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		files = append(files, rotatedFile{path: path, modTime: info.ModTime()})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].modTime.Before(files[j].modTime) })

	excess := len(files) - rotation.MaxRetained
	for _, f := range files[:excess] {
		if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}
