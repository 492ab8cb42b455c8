package shape

import (
	"fmt"
	"sort"
	"strings"
)

// ConflictRecord captures mutually incompatible constraint declarations for
// one property path on one class.
type ConflictRecord struct {
	Path        string
	Class       string
	Constraints []*PropertyConstraint
}

// Shapes returns the sorted node-shape IRIs that declared the conflicting
// constraints.
func (cr *ConflictRecord) Shapes() []string {
	seen := map[string]bool{}
	var out []string
	for _, pc := range cr.Constraints {
		if s := pc.Provenance.Shape; s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

// ConflictError is the compile-time outcome when a class's shape set merges
// into at least one conflict. It maps to HTTP 422 at the boundary.
type ConflictError struct {
	Class   string
	Records []*ConflictRecord
}

func (e *ConflictError) Error() string {
	var parts []string
	for _, r := range e.Records {
		parts = append(parts, fmt.Sprintf("%s (declared by %s)", r.Path, strings.Join(r.Shapes(), ", ")))
	}
	return fmt.Sprintf("conflicting constraints for class %s: %s", e.Class, strings.Join(parts, "; "))
}

// CompiledShape is the compiler's output for one class: per property path,
// either a merged constraint or a conflict record, never both.
type CompiledShape struct {
	// Class is the target class IRI.
	Class string

	// Version is the snapshot version the shape was compiled from.
	Version string

	// ShapeSet lists the effective node-shape IRIs, nearest class first.
	ShapeSet []string

	// Properties maps path IRI to the merged constraint.
	Properties map[string]*PropertyConstraint

	// Conflicts maps path IRI to its conflict record.
	Conflicts map[string]*ConflictRecord
}

// Conflicted reports whether any path failed to merge.
func (cs *CompiledShape) Conflicted() bool {
	return len(cs.Conflicts) > 0
}

// ConflictError returns the typed error for a conflicted shape, nil
// otherwise. Records come out sorted by path.
func (cs *CompiledShape) ConflictError() error {
	if !cs.Conflicted() {
		return nil
	}
	paths := make([]string, 0, len(cs.Conflicts))
	for p := range cs.Conflicts {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	records := make([]*ConflictRecord, 0, len(paths))
	for _, p := range paths {
		records = append(records, cs.Conflicts[p])
	}
	return &ConflictError{Class: cs.Class, Records: records}
}

// Paths returns the merged property paths, sorted.
func (cs *CompiledShape) Paths() []string {
	paths := make([]string, 0, len(cs.Properties))
	for p := range cs.Properties {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
