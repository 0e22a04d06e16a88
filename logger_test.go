package cjsonlogger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tononidis/cJSONLogger/internal/severity"
)

// resetGlobal clears the package-wide singleton between tests. Tests
// in this package never run under t.Parallel for this reason.
func resetGlobal(t *testing.T) {
	t.Helper()
	globalMu.Lock()
	global = nil
	globalMu.Unlock()
	t.Cleanup(func() {
		globalMu.Lock()
		global = nil
		globalMu.Unlock()
	})
}

func tempPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "cjsonlogger.json")
}

func readTree(t *testing.T, path string) map[string]interface{} {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestSingleRecordAtRoot(t *testing.T) {
	resetGlobal(t)
	path := tempPath(t)
	Init(severity.Info, path)
	Info("bar")
	Dump()

	out := readTree(t, path)
	logs, ok := out["logs"].([]interface{})
	require.True(t, ok, "expected root logs array")
	require.Len(t, logs, 1)
	rec := logs[0].(map[string]interface{})
	require.Equal(t, "bar", rec["Log"])
	require.Equal(t, "INFO", rec["LogLevel"])
}

func TestSingleRecordOneLevelDeep(t *testing.T) {
	resetGlobal(t)
	path := tempPath(t)
	Init(severity.Info, path)
	Info("%<1>bar", "foo")
	Dump()

	out := readTree(t, path)
	foo, ok := out["foo"].(map[string]interface{})
	require.True(t, ok, "expected child node %q", "foo")
	logs, ok := foo["logs"].([]interface{})
	require.True(t, ok)
	require.Len(t, logs, 1)
	rec := logs[0].(map[string]interface{})
	require.Equal(t, "bar", rec["Log"])
}

func TestThreeLevelsNested(t *testing.T) {
	resetGlobal(t)
	path := tempPath(t)
	Init(severity.Info, path)
	Error("%<1>%<1>%<1>qux", "foo", "bar", "baz")
	Dump()

	out := readTree(t, path)
	foo := out["foo"].(map[string]interface{})
	bar := foo["bar"].(map[string]interface{})
	baz := bar["baz"].(map[string]interface{})
	logs := baz["logs"].([]interface{})
	require.Len(t, logs, 1)
	rec := logs[0].(map[string]interface{})
	require.Equal(t, "qux", rec["Log"])
	require.Equal(t, "ERROR", rec["LogLevel"])
}

func TestSeverityFilterDropsBelowThreshold(t *testing.T) {
	resetGlobal(t)
	path := tempPath(t)
	Init(severity.Info, path)
	Debug("should be dropped")
	Dump()

	out := readTree(t, path)
	_, hasLogs := out["logs"]
	require.False(t, hasLogs, "Debug record should not have been accepted under an Info threshold")
}

func TestSeverityFilterPassesAfterThresholdRaise(t *testing.T) {
	resetGlobal(t)
	path := tempPath(t)
	Init(severity.Info, path)
	SetThreshold(severity.Debug)
	Debug("now accepted")
	Dump()

	out := readTree(t, path)
	logs := out["logs"].([]interface{})
	require.Len(t, logs, 1)
	rec := logs[0].(map[string]interface{})
	require.Equal(t, "now accepted", rec["Log"])
}

func TestImplicitRotationAt501Records(t *testing.T) {
	resetGlobal(t)
	path := tempPath(t)
	Init(severity.Info, path)

	for i := 0; i < 501; i++ {
		Info("%<1>entry", "x")
	}
	Dump()

	dir := filepath.Dir(path)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var rotated []string
	for _, e := range entries {
		if e.Name() != filepath.Base(path) {
			rotated = append(rotated, e.Name())
		}
	}
	require.Len(t, rotated, 1, "expected exactly one rotated file, got %v", rotated)

	rotatedData, err := os.ReadFile(filepath.Join(dir, rotated[0]))
	require.NoError(t, err)
	var rotatedTree map[string]interface{}
	require.NoError(t, json.Unmarshal(rotatedData, &rotatedTree))
	x := rotatedTree["x"].(map[string]interface{})
	logs := x["logs"].([]interface{})
	require.Len(t, logs, 501, "the record that crossed the threshold is flushed along with the rest")

	out := readTree(t, path)
	_, hasX := out["x"]
	require.False(t, hasX, "the tree must be freshly empty right after rotation")
}

func TestRotationMidBatchSplitsEventsAcrossTrees(t *testing.T) {
	resetGlobal(t)
	path := tempPath(t)
	Init(severity.Info, path)

	globalMu.Lock()
	global.counter = global.cfg.Rotation.MaxRecords
	globalMu.Unlock()

	// One Log call, two Emits: "started" flushes at root before the
	// "%<1>" directive is even seen. With the counter primed at the
	// ceiling, that first Emit alone pushes it over. The second
	// Emit ("session", under "user123") must land in the tree that
	// rotation leaves behind, not the one just flushed.
	Info("started%<1>session", "user123")
	Dump()

	dir := filepath.Dir(path)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var rotated []string
	for _, e := range entries {
		if e.Name() != filepath.Base(path) {
			rotated = append(rotated, e.Name())
		}
	}
	require.Len(t, rotated, 1, "expected exactly one rotated file, got %v", rotated)

	rotatedData, err := os.ReadFile(filepath.Join(dir, rotated[0]))
	require.NoError(t, err)
	var rotatedTree map[string]interface{}
	require.NoError(t, json.Unmarshal(rotatedData, &rotatedTree))
	rotatedLogs, ok := rotatedTree["logs"].([]interface{})
	require.True(t, ok, "the root-level record should have been flushed by the rotation")
	require.Len(t, rotatedLogs, 1)
	rec := rotatedLogs[0].(map[string]interface{})
	require.Equal(t, "started", rec["Log"])
	_, hasUser := rotatedTree["user123"]
	require.False(t, hasUser, "the second record must not have been flushed with the first")

	out := readTree(t, path)
	user123, ok := out["user123"].(map[string]interface{})
	require.True(t, ok, "the second record should have landed in the fresh post-rotation tree")
	logs := user123["logs"].([]interface{})
	require.Len(t, logs, 1)
	rec = logs[0].(map[string]interface{})
	require.Equal(t, "session", rec["Log"])
}

func TestConcurrentLogsAtRootAccumulateAll(t *testing.T) {
	resetGlobal(t)
	path := tempPath(t)
	Init(severity.Critical, path)

	var wg sync.WaitGroup
	wg.Add(2)
	for i := 0; i < 2; i++ {
		go func() {
			defer wg.Done()
			Critical("foo")
		}()
	}
	wg.Wait()
	Dump()

	out := readTree(t, path)
	logs := out["logs"].([]interface{})
	require.Len(t, logs, 2)
}

func TestConcurrentLogAndRotateNeverSplitsOrLosesRecords(t *testing.T) {
	resetGlobal(t)
	path := tempPath(t)
	Init(severity.Info, path)

	const n = 200
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			Info("%<1>entry", "x")
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 5; i++ {
			Rotate()
		}
	}()
	wg.Wait()
	Dump()

	dir := filepath.Dir(path)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	total := 0
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		var tr map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &tr))
		if x, ok := tr["x"].(map[string]interface{}); ok {
			if logs, ok := x["logs"].([]interface{}); ok {
				total += len(logs)
			}
		}
	}
	require.Equal(t, n, total, "every accepted record must survive exactly once across primary + rotated files")
}

func TestInactiveLoggerLogIsNoOp(t *testing.T) {
	resetGlobal(t)
	require.NotPanics(t, func() {
		Info("nobody is listening")
		Dump()
		Rotate()
	})
}

func TestDestroyThenReinitKeepsWorking(t *testing.T) {
	resetGlobal(t)
	path := tempPath(t)
	Init(severity.Info, path)
	Info("first")
	Destroy()

	_, err := os.Stat(path)
	require.NoError(t, err, "Destroy should have dumped the tree before freeing it")

	path2 := tempPath(t)
	Init(severity.Info, path2)
	Info("second")
	Dump()

	out := readTree(t, path2)
	logs := out["logs"].([]interface{})
	require.Len(t, logs, 1)
	rec := logs[0].(map[string]interface{})
	require.Equal(t, "second", rec["Log"])
}

func TestEmptyPrimaryPathInitIsNoOp(t *testing.T) {
	resetGlobal(t)
	Init(severity.Info, "")
	require.Nil(t, getState(), "Init with an empty primary path must not install a logger")
}
