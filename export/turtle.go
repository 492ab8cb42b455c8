package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/c360studio/semshape/graph"
	"github.com/c360studio/semshape/vocabulary/dct"
	"github.com/c360studio/semshape/vocabulary/owl"
	"github.com/c360studio/semshape/vocabulary/rdf"
	"github.com/c360studio/semshape/vocabulary/rdfs"
	"github.com/c360studio/semshape/vocabulary/shacl"
	"github.com/c360studio/semshape/vocabulary/xsd"
)

// defaultPrefixes returns the namespace prefixes used when re-serializing a
// parsed document.
func defaultPrefixes() map[string]string {
	return map[string]string{
		"rdf":  rdf.Namespace,
		"rdfs": rdfs.Namespace,
		"owl":  owl.Namespace,
		"xsd":  xsd.Namespace,
		"sh":   shacl.Namespace,
		"dct":  dct.Namespace,
	}
}

// Turtle serializes a graph to Turtle, grouping triples by subject in the
// graph's insertion order.
func Turtle(g *graph.Graph) string {
	var sb strings.Builder
	prefixes := defaultPrefixes()

	keys := make([]string, 0, len(prefixes))
	for k := range prefixes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, prefix := range keys {
		fmt.Fprintf(&sb, "@prefix %s: <%s> .\n", prefix, prefixes[prefix])
	}
	sb.WriteString("\n")

	for _, subject := range g.Subjects() {
		writeSubjectTurtle(&sb, g, subject, prefixes)
		sb.WriteString("\n")
	}
	return sb.String()
}

func writeSubjectTurtle(sb *strings.Builder, g *graph.Graph, subject string, prefixes map[string]string) {
	fmt.Fprintf(sb, "%s\n", turtleRef(subject, prefixes))

	type line struct {
		pred string
		obj  string
	}
	var lines []line
	for _, pred := range g.Predicates(subject) {
		for _, o := range g.Objects(subject, pred) {
			p := compactIRI(pred, prefixes)
			if pred == rdf.Type {
				p = "a"
			}
			lines = append(lines, line{pred: p, obj: turtleObject(o, prefixes)})
		}
	}

	for i, l := range lines {
		terminator := " ;"
		if i == len(lines)-1 {
			terminator = " ."
		}
		fmt.Fprintf(sb, "    %s %s%s\n", l.pred, l.obj, terminator)
	}
}

func turtleObject(o graph.Object, prefixes map[string]string) string {
	if o.IsIRI {
		return turtleRef(o.Value, prefixes)
	}
	lit := fmt.Sprintf("%q", o.Value)
	if o.Lang != "" {
		return lit + "@" + o.Lang
	}
	if o.Datatype != "" {
		return lit + "^^" + compactIRI(o.Datatype, prefixes)
	}
	return lit
}

func turtleRef(iri string, prefixes map[string]string) string {
	if graph.IsBlankNode(iri) {
		return "_:" + blankLabel(iri)
	}
	return compactIRI(iri, prefixes)
}

// compactIRI renders an IRI as prefix:local when a known prefix matches and
// the remainder is a plain local name, angle-bracketed otherwise.
func compactIRI(iri string, prefixes map[string]string) string {
	for prefix, ns := range prefixes {
		if rest, ok := strings.CutPrefix(iri, ns); ok {
			if rest != "" && !strings.ContainsAny(rest, "/#:") {
				return prefix + ":" + rest
			}
		}
	}
	return "<" + iri + ">"
}

// blankLabel sanitizes a document-scoped blank-node label into a valid
// Turtle label.
func blankLabel(iri string) string {
	label := strings.TrimPrefix(iri, "_:")
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, label)
}
