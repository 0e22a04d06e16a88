package cjsonlogger

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tononidis/cJSONLogger/internal/config"
	"github.com/tononidis/cJSONLogger/internal/logging"
	"github.com/tononidis/cJSONLogger/internal/metrics"
	"github.com/tononidis/cJSONLogger/internal/parser"
	"github.com/tononidis/cJSONLogger/internal/rotation"
	"github.com/tononidis/cJSONLogger/internal/severity"
	"github.com/tononidis/cJSONLogger/internal/sink"
	"github.com/tononidis/cJSONLogger/internal/tree"
)

// state is the logger's process-wide singleton. Two locks guard it,
// always acquired in the fixed order treeMu before configMu:
// treeMu protects the tree itself; configMu protects everything else
// — threshold, primary path, counter, rotated-file registry, and
// lifecycle state.
type state struct {
	treeMu sync.Mutex
	tree   *tree.Tree

	configMu    sync.Mutex
	lifecycle   lifecycleState
	filter      *severity.Filter
	primaryPath string
	counter     int
	cfg         *config.Config
	registry    *rotation.Registry

	diag    *logging.Logger
	metrics *metrics.Collectors

	exitOnce sync.Once
	stopExit chan struct{}
}

var (
	globalMu sync.Mutex
	global   *state
)

func newState(cfg *config.Config) *state {
	diagCfg := diagnosticsLoggingConfig(&cfg.Diagnostics)
	diagCfg.Fields["instance"] = uuid.NewString()

	diag, err := logging.NewLogger(diagCfg)
	if err != nil {
		diag, _ = logging.NewLogger(logging.NewDefaultConfig())
	}
	mc := metrics.NewCollectors()
	return &state{
		filter:   severity.NewFilter(),
		registry: rotation.NewRegistryWithCapacity(cfg.Rotation.MaxRetainedFiles),
		cfg:      cfg,
		diag:     diag,
		metrics:  mc,
		stopExit: make(chan struct{}),
	}
}

func diagnosticsLoggingConfig(d *config.DiagnosticsConfig) *logging.Config {
	lvl, err := logging.LevelFromString(d.Level)
	if err != nil {
		lvl = logging.NewDefaultConfig().Level
	}
	return &logging.Config{
		Level:  lvl,
		Format: d.Format,
		Sampling: logging.SamplingConfig{
			Enabled:    d.Sampling.Enabled,
			Tick:       d.Sampling.Tick.Duration(),
			Initial:    d.Sampling.Initial,
			Thereafter: d.Sampling.Thereafter,
		},
		Caller: logging.CallerConfig{Enabled: true, Skip: 1},
		Fields: map[string]string{"component": "cjsonlogger"},
	}
}

// Init installs or replaces the threshold and primary path, creating
// an empty tree only if none exists yet. Calling Init again — even
// after Destroy — never drops accumulated records on its own; only
// Destroy clears the tree, and only because it also frees it.
func Init(threshold severity.Level, primaryPath string) {
	if primaryPath == "" {
		return
	}

	globalMu.Lock()
	s := global
	if s == nil {
		s = newState(config.Default())
		global = s
	}
	globalMu.Unlock()

	applyInit(s, threshold, primaryPath)
}

// InitFromConfigFile loads configuration from configPath via
// config.LoadWithFile (YAML file overridden by CJSONLOGGER_*
// environment variables), initializes the logger from it, and starts
// watching configPath for changes. Threshold and rotation settings
// reload live on every write to the file. The rotated-file retention
// count is read when the logger state is first created and again when
// Destroy rebuilds the registry; a later InitFromConfigFile on an
// existing logger does not change it.
//
// The returned Watcher must be stopped by the caller when done; it
// outlives the call that created it.
func InitFromConfigFile(configPath, primaryPath string) (*config.Watcher, error) {
	cfg, err := config.LoadWithFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("cjsonlogger: load config: %w", err)
	}
	threshold, err := severity.ParseLevel(cfg.Threshold)
	if err != nil {
		return nil, fmt.Errorf("cjsonlogger: parse threshold: %w", err)
	}

	globalMu.Lock()
	s := global
	if s == nil {
		s = newState(cfg)
		global = s
	} else {
		s.configMu.Lock()
		s.cfg = cfg
		s.configMu.Unlock()
	}
	globalMu.Unlock()

	applyInit(s, threshold, primaryPath)

	watcher, err := config.NewWatcher(configPath)
	if err != nil {
		return nil, fmt.Errorf("cjsonlogger: watch config: %w", err)
	}
	watcher.Start(context.Background(), s.applyConfigReload, func(reloadErr error) {
		s.reportIOFailure("config reload", reloadErr)
	})

	return watcher, nil
}

func applyInit(s *state, threshold severity.Level, primaryPath string) {
	s.treeMu.Lock()
	if s.tree == nil {
		s.tree = tree.New()
	}
	s.treeMu.Unlock()

	s.configMu.Lock()
	s.filter.SetThreshold(threshold)
	s.primaryPath = primaryPath
	wasInactive := s.lifecycle != stateActive
	s.lifecycle = stateActive
	s.configMu.Unlock()

	if wasInactive {
		s.registerExitHook()
	}
}

// applyConfigReload swaps in a freshly loaded Config and re-applies its
// threshold, called from a Watcher's reload callback. An unparseable
// threshold in the new file leaves the current one in place rather
// than disabling the filter.
func (s *state) applyConfigReload(cfg *config.Config) {
	lvl, err := severity.ParseLevel(cfg.Threshold)

	s.configMu.Lock()
	s.cfg = cfg
	if err == nil {
		s.filter.SetThreshold(lvl)
	}
	s.configMu.Unlock()

	if s.diag != nil {
		s.diag.Info("config reloaded")
	}
}

// Destroy dumps the current tree to the primary path, then frees the
// tree, path, and registry, and resets the counter and threshold to
// uninitialized. A subsequent Init returns the logger to Active.
func Destroy() {
	s := getState()
	if s == nil {
		return
	}

	s.treeMu.Lock()
	s.configMu.Lock()
	path := s.primaryPath
	tr := s.tree

	if tr != nil && path != "" {
		if err := sink.Dump(tr, path); err != nil {
			s.reportIOFailure("destroy: dump", err)
		}
	}

	retained := 0
	if s.cfg != nil {
		retained = s.cfg.Rotation.MaxRetainedFiles
	}
	s.tree = nil
	s.primaryPath = ""
	s.registry = rotation.NewRegistryWithCapacity(retained)
	s.counter = 0
	s.filter.ResetThreshold()
	s.lifecycle = stateDestroyed
	s.configMu.Unlock()
	s.treeMu.Unlock()

	if s.diag != nil {
		_ = s.diag.Sync() // Best-effort sync on shutdown
	}
}

// SetThreshold reconfigures the severity filter. Out-of-range values
// are silently ignored.
func SetThreshold(level severity.Level) {
	s := getState()
	if s == nil {
		return
	}
	s.configMu.Lock()
	s.filter.SetThreshold(level)
	s.configMu.Unlock()
}

// Log decodes template against args via the path+format parser,
// mutates the tree under the severity filter's decision, and fires an
// implicit rotation if the accepted-record counter crosses the
// configured ceiling. Level-specific helpers (Critical, Error, Warn,
// Info, Debug) are the intended call sites; Log is exported for
// callers that want to supply their own header.
func Log(level severity.Level, template string, args ...interface{}) {
	s := getState()
	if s == nil {
		return
	}

	s.configMu.Lock()
	active := s.lifecycle == stateActive
	threshold := s.filter.Threshold()
	accepted := s.filter.ShouldLog(active, level)
	s.configMu.Unlock()

	if !accepted {
		if !active && level.InRange() && threshold.InRange() && level <= threshold {
			assertUninitializedAccept("log called while uninitialized but threshold would accept the record")
		}
		s.metrics.Dropped.WithLabelValues(dropReason(active, level, threshold)).Inc()
		return
	}

	res := parser.Parse(template, args...)
	if res.Dropped {
		s.metrics.Dropped.WithLabelValues(metrics.ReasonTemplateLen).Inc()
		return
	}

	s.treeMu.Lock()
	defer s.treeMu.Unlock()

	node := s.tree.Root
	for _, ev := range res.Events {
		switch ev.Kind {
		case parser.Descend:
			node = node.DescendOrCreate(ev.Name)
		case parser.Emit:
			rec := tree.NewRecord(level, res.Header.FileName, res.Header.FuncName, res.Header.FileLine, ev.Message)
			node.AppendRecord(rec)
			s.metrics.Accepted.Inc()

			s.configMu.Lock()
			s.counter++
			mustRotate := s.counter > rotationThreshold(s.cfg)
			s.configMu.Unlock()

			// A template with literal text before its first directive
			// (e.g. "started%<1>session") emits once per node it
			// touches in a single call. Checking the ceiling here,
			// right after this record lands, rather than once after
			// the whole loop, keeps every record after the crossing
			// one landing in the fresh post-rotation tree instead of
			// the one about to be flushed.
			if mustRotate {
				s.rotateLocked()
				node = s.tree.Root
			}
		}
	}
}

func dropReason(active bool, level severity.Level, threshold severity.Level) string {
	if !active {
		return metrics.ReasonInactive
	}
	return metrics.ReasonThreshold
}

func rotationThreshold(cfg *config.Config) int {
	if cfg == nil || cfg.Rotation.MaxRecords <= 0 {
		return rotation.MaxRecordsPerTree
	}
	return cfg.Rotation.MaxRecords
}

// Dump serializes the current tree and writes it to the primary path
// in truncate mode. A no-op on an inactive logger.
func Dump() {
	s := getState()
	if s == nil {
		return
	}

	s.configMu.Lock()
	active := s.lifecycle == stateActive
	path := s.primaryPath
	s.configMu.Unlock()
	if !active {
		return
	}

	s.treeMu.Lock()
	err := sink.Dump(s.tree, path)
	s.treeMu.Unlock()

	if err != nil {
		s.reportIOFailure("dump", err)
	}
}

// Rotate moves the current tree to a timestamped rotated file,
// evicting the oldest retained rotation if the registry is full, then
// replaces the tree with a fresh empty root. Failure to write the
// rotated file leaves the in-memory tree untouched.
func Rotate() {
	s := getState()
	if s == nil {
		return
	}

	s.treeMu.Lock()
	defer s.treeMu.Unlock()
	s.rotateLocked()
}

// rotateLocked does the actual tree flip. Callers must already hold
// treeMu and must not be holding configMu.
func (s *state) rotateLocked() {
	s.configMu.Lock()
	active := s.lifecycle == stateActive
	if !active {
		s.configMu.Unlock()
		return
	}
	path := s.primaryPath
	compress := s.cfg != nil && s.cfg.Rotation.Compress
	s.counter = 0
	rotatedPath := rotation.RotatedPath(path, time.Now())
	pushErr := s.registry.Push(rotatedPath)
	s.configMu.Unlock()

	if pushErr != nil {
		s.reportIOFailure("rotate: evict", pushErr)
	}

	writeErr := sink.WriteRotated(s.tree, rotatedPath, compress)
	if writeErr != nil {
		s.reportIOFailure("rotate: write", writeErr)
		return
	}

	s.metrics.Rotations.Inc()
	s.tree.Reset()
}

func getState() *state {
	globalMu.Lock()
	defer globalMu.Unlock()
	return global
}

func (s *state) reportIOFailure(op string, err error) {
	assertHere(op + ": " + err.Error())
	if s.diag != nil {
		s.diag.Error(op, zap.Error(err))
	}
}

// registerExitHook starts a background goroutine that calls Destroy
// exactly once on SIGINT/SIGTERM. Go has no true atexit: a process
// that exits via a bare return from main, a panic, or os.Exit bypasses
// this hook entirely. Callers that need the tree flushed on every exit
// path must call Destroy explicitly; this hook only covers the common
// signal-driven shutdown case.
func (s *state) registerExitHook() {
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sig)

		select {
		case <-sig:
			s.exitOnce.Do(Destroy)
		case <-s.stopExit:
		}
	}()
}
