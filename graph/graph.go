package graph

import (
	"sort"

	"github.com/c360studio/semshape/vocabulary/rdf"
)

// Graph is a set of triples indexed by subject and predicate. Duplicate
// triples collapse; insertion order of distinct triples is preserved so
// ordered constructs (sh:property lists, sh:in collections) keep their
// document order. A Graph is mutable only while a snapshot is being built;
// published snapshots treat it as read-only.
type Graph struct {
	spo     map[string]map[string][]Object
	seen    map[Triple]struct{}
	order   []Triple
	subject []string
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{
		spo:  make(map[string]map[string][]Object),
		seen: make(map[Triple]struct{}),
	}
}

// Add inserts a triple. Re-adding an identical triple is a no-op.
func (g *Graph) Add(t Triple) {
	if _, dup := g.seen[t]; dup {
		return
	}
	g.seen[t] = struct{}{}
	g.order = append(g.order, t)

	po, ok := g.spo[t.Subject]
	if !ok {
		po = make(map[string][]Object)
		g.spo[t.Subject] = po
		g.subject = append(g.subject, t.Subject)
	}
	po[t.Predicate] = append(po[t.Predicate], t.Object)
}

// AddAll inserts every triple of other into g.
func (g *Graph) AddAll(other *Graph) {
	for _, t := range other.order {
		g.Add(t)
	}
}

// Len returns the number of distinct triples.
func (g *Graph) Len() int { return len(g.order) }

// Triples returns all triples in insertion order. The returned slice is
// shared; callers must not modify it.
func (g *Graph) Triples() []Triple { return g.order }

// Subjects returns all subjects in insertion order.
func (g *Graph) Subjects() []string { return g.subject }

// Predicates returns the sorted predicates present on a subject.
func (g *Graph) Predicates(subject string) []string {
	po := g.spo[subject]
	preds := make([]string, 0, len(po))
	for p := range po {
		preds = append(preds, p)
	}
	sort.Strings(preds)
	return preds
}

// Objects returns the objects of (subject, predicate) in insertion order.
func (g *Graph) Objects(subject, predicate string) []Object {
	return g.spo[subject][predicate]
}

// FirstIRI returns the first IRI-valued object of (subject, predicate).
func (g *Graph) FirstIRI(subject, predicate string) (string, bool) {
	for _, o := range g.Objects(subject, predicate) {
		if o.IsIRI {
			return o.Value, true
		}
	}
	return "", false
}

// FirstLiteral returns the first literal-valued object of (subject, predicate).
func (g *Graph) FirstLiteral(subject, predicate string) (string, bool) {
	for _, o := range g.Objects(subject, predicate) {
		if !o.IsIRI {
			return o.Value, true
		}
	}
	return "", false
}

// HasType reports whether subject carries an rdf:type assertion for class.
func (g *Graph) HasType(subject, class string) bool {
	for _, o := range g.Objects(subject, rdf.Type) {
		if o.IsIRI && o.Value == class {
			return true
		}
	}
	return false
}

// Types returns all rdf:type IRIs of a subject in insertion order.
func (g *Graph) Types(subject string) []string {
	var types []string
	for _, o := range g.Objects(subject, rdf.Type) {
		if o.IsIRI {
			types = append(types, o.Value)
		}
	}
	return types
}

// SubjectsOfType returns all subjects typed as class, in insertion order.
func (g *Graph) SubjectsOfType(class string) []string {
	var out []string
	for _, s := range g.subject {
		if g.HasType(s, class) {
			out = append(out, s)
		}
	}
	return out
}

// SubjectsWith returns all subjects carrying (predicate, object), in
// insertion order.
func (g *Graph) SubjectsWith(predicate string, object Object) []string {
	var out []string
	for _, s := range g.subject {
		for _, o := range g.spo[s][predicate] {
			if o == object {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

// List expands an RDF collection starting at head into its member objects.
// Malformed lists terminate at the first node without rdf:first.
func (g *Graph) List(head string) []Object {
	var out []Object
	node := head
	for node != "" && node != rdf.Nil {
		first := g.Objects(node, rdf.First)
		if len(first) == 0 {
			break
		}
		out = append(out, first[0])
		next, ok := g.FirstIRI(node, rdf.Rest)
		if !ok {
			break
		}
		node = next
	}
	return out
}
