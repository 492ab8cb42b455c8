package store

import (
	"path"
	"strings"
	"time"

	"github.com/c360studio/semshape/graph"
)

// Format identifies the RDF serialization of a stored schema document.
type Format string

const (
	FormatTurtle Format = "text/turtle"
	FormatJSONLD Format = "application/ld+json"
)

// FormatForFile returns the serialization implied by a file's extension.
func FormatForFile(file string) (Format, bool) {
	switch strings.ToLower(path.Ext(file)) {
	case ".ttl":
		return FormatTurtle, true
	case ".jsonld":
		return FormatJSONLD, true
	}
	return "", false
}

// Document is one schema file loaded into a snapshot. Path is the file's
// location relative to the content directory with the extension stripped;
// it doubles as the document's namespace path.
type Document struct {
	Path    string
	File    string
	Format  Format
	Content []byte
	Graph   *graph.Graph
}

// SchemaPath derives the namespace path for a schema file relative to the
// content directory.
func SchemaPath(relFile string) string {
	p := strings.TrimSuffix(relFile, path.Ext(relFile))
	return strings.Trim(p, "/")
}

// MentionsOwnPath reports whether any IRI in the document's graph contains
// the document's own namespace path. Documents that never reference their
// own path have no origin on this server and are quarantined.
func (d *Document) MentionsOwnPath() bool {
	needle := "/" + d.Path
	mentions := func(iri string) bool {
		return strings.Contains(iri, needle) || strings.HasPrefix(iri, d.Path)
	}
	for _, t := range d.Graph.Triples() {
		if mentions(t.Subject) || mentions(t.Predicate) {
			return true
		}
		if t.Object.IsIRI && mentions(t.Object.Value) {
			return true
		}
	}
	return false
}

// QuarantineRecord explains why a schema file was excluded from a snapshot.
type QuarantineRecord struct {
	File   string    `json:"file"`
	Path   string    `json:"path"`
	Reason string    `json:"reason"`
	At     time.Time `json:"at"`
}
