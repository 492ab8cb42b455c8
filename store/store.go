// Package store loads schema documents from a content directory into
// immutable snapshots and keeps the current snapshot fresh via a file
// watcher and a periodic rescan.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/c360studio/semshape/metrics"
)

// Options configures a Store.
type Options struct {
	// ContentDir is the root directory holding schema files.
	ContentDir string

	// RescanInterval forces a rebuild even without file events.
	RescanInterval time.Duration

	// DebounceDelay is how long to wait for more file changes before
	// rebuilding.
	DebounceDelay time.Duration

	// Publisher receives snapshot and quarantine events; may be nil.
	Publisher *Publisher

	Logger *slog.Logger
}

// Store owns the current snapshot. Readers call Snapshot and use the result
// for the whole request; rebuilds happen off to the side and swap the
// pointer atomically.
type Store struct {
	dir       string
	rescan    time.Duration
	debounce  time.Duration
	publisher *Publisher
	logger    *slog.Logger

	current atomic.Pointer[Snapshot]

	pendingMu sync.Mutex
	pending   bool
}

// New creates a Store. The first snapshot is built by Run or by an explicit
// Rebuild call.
func New(opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	rescan := opts.RescanInterval
	if rescan == 0 {
		rescan = 30 * time.Minute
	}
	debounce := opts.DebounceDelay
	if debounce == 0 {
		debounce = 500 * time.Millisecond
	}
	return &Store{
		dir:       opts.ContentDir,
		rescan:    rescan,
		debounce:  debounce,
		publisher: opts.Publisher,
		logger:    logger,
	}
}

// Snapshot returns the current snapshot.
func (s *Store) Snapshot() (*Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrNoSnapshot
	}
	return snap, nil
}

// Rebuild constructs a fresh snapshot from the content directory and makes
// it current. Concurrent readers keep the snapshot they already hold.
func (s *Store) Rebuild(ctx context.Context) error {
	start := time.Now()
	snap, err := Build(s.dir, s.logger)
	if err != nil {
		metrics.SnapshotBuilds.WithLabelValues("error").Inc()
		return fmt.Errorf("rebuild snapshot: %w", err)
	}
	metrics.SnapshotBuilds.WithLabelValues("ok").Inc()
	metrics.SnapshotBuildSeconds.Observe(time.Since(start).Seconds())
	metrics.DocumentsLoaded.Set(float64(len(snap.Paths())))
	metrics.DocumentsQuarantined.Set(float64(len(snap.Quarantine())))

	prev := s.current.Swap(snap)
	if prev != nil && prev.Version == snap.Version {
		return nil
	}

	if err := s.publisher.PublishSnapshot(snap); err != nil {
		s.logger.Warn("Failed to publish snapshot event", "error", err)
	}
	for _, rec := range snap.Quarantine() {
		if err := s.publisher.PublishQuarantine(rec); err != nil {
			s.logger.Warn("Failed to publish quarantine event", "error", err)
		}
	}
	return nil
}

// Run builds the initial snapshot, then watches the content directory and
// rescans periodically until the context is cancelled.
func (s *Store) Run(ctx context.Context) error {
	if err := s.Rebuild(ctx); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := s.addWatchesRecursive(watcher, s.dir); err != nil {
		return fmt.Errorf("watch content dir: %w", err)
	}

	s.logger.Info("Schema store started",
		"dir", s.dir,
		"rescan", s.rescan,
		"debounce", s.debounce)

	debounce := time.NewTicker(s.debounce)
	defer debounce.Stop()
	rescan := time.NewTicker(s.rescan)
	defer rescan.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			s.handleFSEvent(watcher, event)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("Watcher error", "error", err)

		case <-debounce.C:
			if s.takePending() {
				if err := s.Rebuild(ctx); err != nil {
					s.logger.Error("Rebuild after file change failed", "error", err)
				}
			}

		case <-rescan.C:
			if err := s.Rebuild(ctx); err != nil {
				s.logger.Error("Periodic rescan failed", "error", err)
			}
		}
	}
}

func (s *Store) handleFSEvent(watcher *fsnotify.Watcher, event fsnotify.Event) {
	name := event.Name

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(name); err == nil && info.IsDir() {
			s.addWatchesRecursive(watcher, name)
			s.markPending()
			return
		}
	}

	if _, ok := FormatForFile(name); !ok {
		return
	}

	rel, _ := filepath.Rel(s.dir, name)
	s.logger.Debug("Schema file changed", "file", rel, "op", event.Op.String())
	s.markPending()
}

func (s *Store) markPending() {
	s.pendingMu.Lock()
	s.pending = true
	s.pendingMu.Unlock()
}

func (s *Store) takePending() bool {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	p := s.pending
	s.pending = false
	return p
}

func (s *Store) addWatchesRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if base := filepath.Base(path); strings.HasPrefix(base, ".") && path != root {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			s.logger.Warn("Failed to watch directory", "path", path, "error", err)
		}
		return nil
	})
}
