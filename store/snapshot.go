package store

import (
	"sort"
	"strings"
	"time"

	"github.com/c360studio/semshape/graph"
)

// Snapshot is one immutable, fully-parsed version of the content directory.
// Readers hold a snapshot for the duration of a request; it never changes
// after Build returns it.
type Snapshot struct {
	// Version is a content hash over every discovered file, quarantined or
	// not. Identical content yields an identical version.
	Version string

	// BuiltAt is when the build finished.
	BuiltAt time.Time

	// Graph is the union of every healthy document's triples.
	Graph *graph.Graph

	docs       map[string]*Document
	paths      []string
	quarantine []QuarantineRecord
}

// Document returns the document stored exactly at path.
func (s *Snapshot) Document(path string) (*Document, bool) {
	d, ok := s.docs[path]
	return d, ok
}

// Owner resolves a namespace path to the document that defines it: the
// document at the path itself, or the nearest ancestor document when the
// path addresses an element inside one (for example "org/person/address"
// when "org/person" is a file).
func (s *Snapshot) Owner(path string) (*Document, bool) {
	p := strings.Trim(path, "/")
	for p != "" {
		if d, ok := s.docs[p]; ok {
			return d, true
		}
		i := strings.LastIndex(p, "/")
		if i < 0 {
			break
		}
		p = p[:i]
	}
	return nil, false
}

// Paths returns the namespace paths of all healthy documents, sorted.
func (s *Snapshot) Paths() []string {
	return s.paths
}

// Quarantine returns the records for documents excluded from this snapshot.
func (s *Snapshot) Quarantine() []QuarantineRecord {
	return s.quarantine
}

// IsQuarantined reports whether a namespace path belongs to a quarantined
// document, with the recorded reason.
func (s *Snapshot) IsQuarantined(path string) (string, bool) {
	p := strings.Trim(path, "/")
	for _, q := range s.quarantine {
		if q.Path == p {
			return q.Reason, true
		}
	}
	return "", false
}

// SnapshotFromGraph wraps an already-assembled graph in a snapshot. Used by
// callers that manage their own documents, and by tests.
func SnapshotFromGraph(version string, g *graph.Graph) *Snapshot {
	return &Snapshot{
		Version: version,
		BuiltAt: time.Now().UTC(),
		Graph:   g,
		docs:    make(map[string]*Document),
	}
}

func newSnapshot(version string, docs map[string]*Document, quarantine []QuarantineRecord) *Snapshot {
	paths := make([]string, 0, len(docs))
	for p := range docs {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	g := graph.New()
	for _, p := range paths {
		g.AddAll(docs[p].Graph)
	}

	sort.Slice(quarantine, func(i, j int) bool { return quarantine[i].File < quarantine[j].File })

	return &Snapshot{
		Version:    version,
		BuiltAt:    time.Now().UTC(),
		Graph:      g,
		docs:       docs,
		paths:      paths,
		quarantine: quarantine,
	}
}
