package store

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"lukechampine.com/blake3"
)

// globPatterns lists the schema file extensions a content directory may hold.
var globPatterns = []string{"**/*.ttl", "**/*.jsonld"}

// Build scans the content directory, parses every schema file, quarantines
// the ones that fail, and returns the resulting snapshot. A quarantined
// document never aborts the build for the others.
func Build(dir string, logger *slog.Logger) (*Snapshot, error) {
	if logger == nil {
		logger = slog.Default()
	}

	files, err := discover(dir)
	if err != nil {
		return nil, fmt.Errorf("scan content dir: %w", err)
	}

	docs := make(map[string]*Document, len(files))
	var quarantine []QuarantineRecord
	hasher := blake3.New(32, nil)

	for _, rel := range files {
		content, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", rel, err)
		}

		// Every file feeds the version hash, quarantined or not, so a fix
		// to a broken file still changes the snapshot version.
		fmt.Fprintf(hasher, "%s\n%d\n", rel, len(content))
		hasher.Write(content)

		path := SchemaPath(rel)
		format, ok := FormatForFile(rel)
		if !ok {
			continue
		}

		g, err := ParseDocument(path, format, content)
		if err != nil {
			logger.Warn("Quarantined schema", "file", rel, "error", err)
			quarantine = append(quarantine, QuarantineRecord{
				File:   rel,
				Path:   path,
				Reason: err.Error(),
				At:     time.Now().UTC(),
			})
			continue
		}

		doc := &Document{Path: path, File: rel, Format: format, Content: content, Graph: g}
		if !doc.MentionsOwnPath() {
			logger.Warn("Quarantined schema", "file", rel, "reason", "no origin on this server")
			quarantine = append(quarantine, QuarantineRecord{
				File:   rel,
				Path:   path,
				Reason: fmt.Sprintf("schema does not reference its own path %q (no origin on this server)", path),
				At:     time.Now().UTC(),
			})
			continue
		}

		docs[path] = doc
	}

	version := hex.EncodeToString(hasher.Sum(nil))
	snap := newSnapshot(version, docs, quarantine)
	logger.Info("Snapshot built",
		"version", shortVersion(version),
		"documents", len(docs),
		"quarantined", len(quarantine),
		"triples", snap.Graph.Len())
	return snap, nil
}

// discover returns schema files under dir as slash-separated relative
// paths, sorted so builds are deterministic.
func discover(dir string) ([]string, error) {
	var files []string
	fsys := os.DirFS(dir)
	for _, pattern := range globPatterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}

func shortVersion(v string) string {
	if len(v) > 12 {
		return v[:12]
	}
	return v
}
