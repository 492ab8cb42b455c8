// Package namespace maps hierarchical schema paths to documents, element
// IRIs, and remote repository bases.
package namespace

import (
	"fmt"
	"strings"

	"github.com/c360studio/semshape/graph"
	"github.com/c360studio/semshape/store"
)

// NotFoundError indicates that no document anywhere defines the path.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no schema found for path %q", e.Path)
}

// RemoteRef points a path at another repository instance.
type RemoteRef struct {
	// Base is the remote instance's base URL, scheme included.
	Base string

	// Path is the remaining schema path on the remote.
	Path string
}

// Resolution is the outcome of resolving a namespace path. Exactly one of
// Remote and Doc is set. Subject carries the IRI of the addressed element
// when the path reaches inside a document; it is empty when the path
// addresses the document itself.
type Resolution struct {
	Remote  *RemoteRef
	Doc     *store.Document
	Subject string
}

// Resolver resolves paths against one snapshot. It holds no state beyond
// the snapshot's document index.
type Resolver struct {
	snap *store.Snapshot
}

// New returns a Resolver over the given snapshot.
func New(snap *store.Snapshot) *Resolver {
	return &Resolver{snap: snap}
}

// Resolve maps a path to a local document (and optionally an element inside
// it) or to a remote repository reference. Local resolution wins; only a
// path that resolves nowhere locally and starts with a host-like segment
// becomes a remote reference.
func (r *Resolver) Resolve(path string) (*Resolution, error) {
	p := strings.Trim(path, "/")
	if p == "" {
		return nil, &NotFoundError{Path: path}
	}

	if doc, ok := r.snap.Owner(p); ok {
		res := &Resolution{Doc: doc}
		if p != doc.Path {
			element := strings.TrimPrefix(p, doc.Path+"/")
			subject, ok := findElement(doc.Graph, doc.Path, element)
			if !ok {
				return nil, &NotFoundError{Path: path}
			}
			res.Subject = subject
		}
		return res, nil
	}

	if host, rest, ok := splitHost(p); ok {
		return &Resolution{Remote: &RemoteRef{Base: "http://" + host, Path: rest}}, nil
	}

	return nil, &NotFoundError{Path: path}
}

// ElementIRI resolves a path to the IRI it names: the addressed element, or
// the document's own subject when the path addresses a whole document whose
// graph defines a node at that path.
func (r *Resolver) ElementIRI(path string) (string, error) {
	res, err := r.Resolve(path)
	if err != nil {
		return "", err
	}
	if res.Remote != nil {
		return "", &NotFoundError{Path: path}
	}
	if res.Subject != "" {
		return res.Subject, nil
	}
	// The document itself: prefer a subject IRI that ends at the path.
	needle := "/" + res.Doc.Path
	for _, s := range res.Doc.Graph.Subjects() {
		if strings.HasSuffix(s, needle) || s == res.Doc.Path {
			return s, nil
		}
	}
	return "", &NotFoundError{Path: path}
}

// findElement locates the subject IRI for an element inside a document:
// a subject whose IRI ends with "/element" or "#element" and mentions the
// document path.
func findElement(g *graph.Graph, docPath, element string) (string, bool) {
	for _, s := range g.Subjects() {
		if graph.IsBlankNode(s) {
			continue
		}
		if !strings.Contains(s, docPath) {
			continue
		}
		if strings.HasSuffix(s, "/"+element) || strings.HasSuffix(s, "#"+element) {
			return s, true
		}
	}
	return "", false
}

// splitHost splits a leading host[:port] segment off a path. A segment is
// host-like when it carries a port, contains a dot, or is localhost.
func splitHost(p string) (host, rest string, ok bool) {
	seg, remainder, found := strings.Cut(p, "/")
	if !found || remainder == "" {
		return "", "", false
	}
	if !looksLikeHost(seg) {
		return "", "", false
	}
	return seg, remainder, true
}

func looksLikeHost(seg string) bool {
	if seg == "localhost" || strings.Contains(seg, ":") {
		return true
	}
	return strings.Contains(seg, ".")
}
