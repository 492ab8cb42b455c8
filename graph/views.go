package graph

import (
	"fmt"
	"strings"

	"github.com/c360studio/semshape/vocabulary/dct"
	"github.com/c360studio/semshape/vocabulary/owl"
	"github.com/c360studio/semshape/vocabulary/rdf"
	"github.com/c360studio/semshape/vocabulary/rdfs"
	"github.com/c360studio/semshape/vocabulary/shacl"
)

// Class is the typed view of an RDFS/OWL class declaration.
type Class struct {
	IRI          string
	Label        string
	Comment      string
	SuperClasses []string
}

// Property is the typed view of an rdf:Property (or rdfs:Property /
// owl:*Property) declaration.
type Property struct {
	IRI             string
	Label           string
	Comment         string
	Domain          string
	Range           string
	SuperProperties []string
}

// PropertyRef is one entry of a node shape's sh:property sequence: either a
// reference to a named, reusable property-shape resource or an anonymous
// blank-node constraint scoped to the shape.
type PropertyRef struct {
	Node      string
	Anonymous bool
}

// Shape is the typed view of a sh:NodeShape declaration.
type Shape struct {
	IRI         string
	Label       string
	Comment     string
	TargetClass string
	Properties  []PropertyRef
}

// InheritanceCycleError reports a cyclic subClassOf (or subPropertyOf)
// relation, which is a data-quality defect that must surface rather than be
// silently broken.
type InheritanceCycleError struct {
	Relation string
	Cycle    []string
}

func (e *InheritanceCycleError) Error() string {
	return fmt.Sprintf("cyclic %s relation: %s", e.Relation, strings.Join(e.Cycle, " -> "))
}

// LocalName returns the fragment or last path segment of an IRI, used as a
// fallback display name when a resource has no label.
func LocalName(iri string) string {
	if i := strings.LastIndex(iri, "#"); i >= 0 && i < len(iri)-1 {
		return iri[i+1:]
	}
	trimmed := strings.TrimSuffix(iri, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

// LabelOf returns rdfs:label, falling back to dct:title, falling back to
// the IRI's local name.
func LabelOf(g *Graph, iri string) string {
	if l, ok := g.FirstLiteral(iri, rdfs.Label); ok {
		return l
	}
	if t, ok := g.FirstLiteral(iri, dct.Title); ok {
		return t
	}
	return LocalName(iri)
}

// CommentOf returns rdfs:comment, falling back to dct:description.
func CommentOf(g *Graph, iri string) string {
	if c, ok := g.FirstLiteral(iri, rdfs.Comment); ok {
		return c
	}
	if d, ok := g.FirstLiteral(iri, dct.Description); ok {
		return d
	}
	return ""
}

// isClassSubject reports whether a subject is declared as a class.
func isClassSubject(g *Graph, s string) bool {
	return g.HasType(s, rdfs.Class) || g.HasType(s, owl.Class)
}

// isPropertySubject reports whether a subject is declared as a property.
func isPropertySubject(g *Graph, s string) bool {
	return g.HasType(s, rdf.Property) || g.HasType(s, rdfs.Property) ||
		g.HasType(s, owl.DatatypeProperty) || g.HasType(s, owl.ObjectProperty)
}

// ClassViews returns the typed views of every declared class, excluding
// subjects that are also declared as properties or property shapes (those
// end up typed as classes in some published schemas).
func ClassViews(g *Graph) []Class {
	var out []Class
	for _, s := range g.Subjects() {
		if !isClassSubject(g, s) || IsBlankNode(s) {
			continue
		}
		if isPropertySubject(g, s) || g.HasType(s, shacl.PropertyShape) || g.HasType(s, shacl.PropertyClass) {
			continue
		}
		out = append(out, ClassView(g, s))
	}
	return out
}

// ClassView builds the typed view for one class IRI.
func ClassView(g *Graph, iri string) Class {
	c := Class{
		IRI:     iri,
		Label:   LabelOf(g, iri),
		Comment: CommentOf(g, iri),
	}
	for _, o := range g.Objects(iri, rdfs.SubClassOf) {
		if o.IsIRI {
			c.SuperClasses = append(c.SuperClasses, o.Value)
		}
	}
	return c
}

// PropertyViews returns the typed views of every declared property.
func PropertyViews(g *Graph) []Property {
	var out []Property
	for _, s := range g.Subjects() {
		if !isPropertySubject(g, s) || IsBlankNode(s) {
			continue
		}
		out = append(out, PropertyView(g, s))
	}
	return out
}

// PropertyView builds the typed view for one property IRI.
func PropertyView(g *Graph, iri string) Property {
	p := Property{
		IRI:     iri,
		Label:   LabelOf(g, iri),
		Comment: CommentOf(g, iri),
	}
	p.Domain, _ = g.FirstIRI(iri, rdfs.Domain)
	p.Range, _ = g.FirstIRI(iri, rdfs.Range)
	for _, o := range g.Objects(iri, rdfs.SubPropertyOf) {
		if o.IsIRI {
			p.SuperProperties = append(p.SuperProperties, o.Value)
		}
	}
	return p
}

// ShapeViews returns the typed views of every sh:NodeShape.
func ShapeViews(g *Graph) []Shape {
	var out []Shape
	for _, s := range g.SubjectsOfType(shacl.NodeShape) {
		out = append(out, ShapeView(g, s))
	}
	return out
}

// ShapeView builds the typed view for one node shape IRI, keeping the
// document order of its sh:property references.
func ShapeView(g *Graph, iri string) Shape {
	sh := Shape{
		IRI:     iri,
		Label:   LabelOf(g, iri),
		Comment: CommentOf(g, iri),
	}
	sh.TargetClass, _ = g.FirstIRI(iri, shacl.TargetClass)
	for _, o := range g.Objects(iri, shacl.Property) {
		if !o.IsIRI {
			continue
		}
		sh.Properties = append(sh.Properties, PropertyRef{
			Node:      o.Value,
			Anonymous: IsBlankNode(o.Value),
		})
	}
	return sh
}

// ShapesTargeting returns the node shapes whose sh:targetClass is exactly
// class, in insertion order.
func ShapesTargeting(g *Graph, class string) []Shape {
	var out []Shape
	for _, s := range g.SubjectsWith(shacl.TargetClass, IRIObject(class)) {
		if g.HasType(s, shacl.NodeShape) {
			out = append(out, ShapeView(g, s))
		}
	}
	return out
}

// SuperClassClosure returns the reflexive-transitive closure of
// rdfs:subClassOf for class, in breadth-first order starting with the class
// itself. A cyclic relation returns an InheritanceCycleError.
func SuperClassClosure(g *Graph, class string) ([]string, error) {
	return closure(g, class, rdfs.SubClassOf, "subClassOf")
}

// SuperPropertyClosure returns the reflexive-transitive closure of
// rdfs:subPropertyOf for prop, nearest superproperties first.
func SuperPropertyClosure(g *Graph, prop string) ([]string, error) {
	return closure(g, prop, rdfs.SubPropertyOf, "subPropertyOf")
}

func closure(g *Graph, start, predicate, relation string) ([]string, error) {
	if cycle := findCycle(g, start, predicate); cycle != nil {
		return nil, &InheritanceCycleError{Relation: relation, Cycle: cycle}
	}

	seen := map[string]bool{start: true}
	out := []string{start}
	queue := []string{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, o := range g.Objects(cur, predicate) {
			if !o.IsIRI || seen[o.Value] {
				continue
			}
			seen[o.Value] = true
			out = append(out, o.Value)
			queue = append(queue, o.Value)
		}
	}
	return out, nil
}

// findCycle walks the relation depth-first from start and returns the first
// cycle reachable from it, start included or not. A node revisited while
// still on the walk stack closes a cycle; a node finished on an earlier
// branch is a diamond, not a cycle.
func findCycle(g *Graph, start, predicate string) []string {
	const (
		unvisited = iota
		onStack
		done
	)
	state := map[string]int{}
	var stack []string

	var walk func(node string) []string
	walk = func(node string) []string {
		state[node] = onStack
		stack = append(stack, node)
		defer func() {
			state[node] = done
			stack = stack[:len(stack)-1]
		}()

		for _, o := range g.Objects(node, predicate) {
			if !o.IsIRI {
				continue
			}
			switch state[o.Value] {
			case onStack:
				for i, n := range stack {
					if n == o.Value {
						cycle := append([]string{}, stack[i:]...)
						return append(cycle, o.Value)
					}
				}
			case unvisited:
				if c := walk(o.Value); c != nil {
					return c
				}
			}
		}
		return nil
	}
	return walk(start)
}
