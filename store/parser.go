package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/knakk/rdf"
	"github.com/piprate/json-gold/ld"

	"github.com/c360studio/semshape/graph"
	"github.com/c360studio/semshape/vocabulary/xsd"
)

const langString = "http://www.w3.org/1999/02/22-rdf-syntax-ns#langString"

// ParseDocument parses one schema file's content into a graph. Blank-node
// labels are namespaced by the document path so blank nodes from different
// documents never collide when graphs are merged into a snapshot.
func ParseDocument(docPath string, format Format, content []byte) (*graph.Graph, error) {
	switch format {
	case FormatTurtle:
		return parseTurtle(docPath, content)
	case FormatJSONLD:
		return parseJSONLD(docPath, content)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

func parseTurtle(docPath string, content []byte) (*graph.Graph, error) {
	g := graph.New()
	dec := rdf.NewTripleDecoder(strings.NewReader(string(content)), rdf.Turtle)
	for {
		t, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse turtle: %w", err)
		}
		g.Add(convertTriple(docPath, t))
	}
	return g, nil
}

// parseJSONLD expands JSON-LD to N-Quads first, then decodes the quads.
// The graph component of each quad is discarded; snapshots are a single
// merged graph.
func parseJSONLD(docPath string, content []byte) (*graph.Graph, error) {
	var doc any
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("parse json-ld: %w", err)
	}

	proc := ld.NewJsonLdProcessor()
	opts := ld.NewJsonLdOptions("")
	opts.Format = "application/n-quads"
	nquads, err := proc.ToRDF(doc, opts)
	if err != nil {
		return nil, fmt.Errorf("expand json-ld: %w", err)
	}
	serialized, ok := nquads.(string)
	if !ok {
		return nil, fmt.Errorf("expand json-ld: unexpected serialization %T", nquads)
	}

	g := graph.New()
	dec := rdf.NewQuadDecoder(strings.NewReader(serialized), rdf.NQuads)
	for {
		q, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse json-ld quads: %w", err)
		}
		g.Add(convertTriple(docPath, q.Triple))
	}
	return g, nil
}

func convertTriple(docPath string, t rdf.Triple) graph.Triple {
	return graph.Triple{
		Subject:   termIRI(docPath, t.Subj),
		Predicate: t.Pred.String(),
		Object:    convertObject(docPath, t.Obj),
	}
}

// termIRI returns the IRI of a subject or predicate term, namespacing
// blank-node labels by document.
func termIRI(docPath string, term rdf.Term) string {
	if term.Type() == rdf.TermBlank {
		return scopedBlank(docPath, term.String())
	}
	return term.String()
}

func convertObject(docPath string, term rdf.Object) graph.Object {
	switch term.Type() {
	case rdf.TermBlank:
		return graph.IRIObject(scopedBlank(docPath, term.String()))
	case rdf.TermLiteral:
		lit := term.(rdf.Literal)
		o := graph.Object{Value: lit.String()}
		if lang := lit.Lang(); lang != "" {
			o.Lang = lang
			return o
		}
		// Plain string literals keep an empty datatype so that identical
		// values written with and without ^^xsd:string compare equal.
		if dt := lit.DataType.String(); dt != "" && dt != xsd.String && dt != langString {
			o.Datatype = dt
		}
		return o
	default:
		return graph.IRIObject(term.String())
	}
}

func scopedBlank(docPath, label string) string {
	return "_:" + docPath + "." + strings.TrimPrefix(label, "_:")
}
