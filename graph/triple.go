// Package graph provides the in-memory triple graph that schema documents
// are parsed into, plus typed views (classes, properties, node shapes)
// computed over it.
package graph

import (
	"fmt"
	"strings"
)

// Object is the object position of a triple: either a reference to a
// resource (IRI or blank node) or a literal with an optional datatype IRI
// and language tag.
type Object struct {
	Value    string
	Datatype string
	Lang     string
	IsIRI    bool
}

// IRIObject returns an Object referencing the given IRI or blank node.
func IRIObject(iri string) Object {
	return Object{Value: iri, IsIRI: true}
}

// Literal returns a plain string literal Object.
func Literal(value string) Object {
	return Object{Value: value}
}

// TypedLiteral returns a literal Object carrying a datatype IRI.
func TypedLiteral(value, datatype string) Object {
	return Object{Value: value, Datatype: datatype}
}

// LangLiteral returns a language-tagged literal Object.
func LangLiteral(value, lang string) Object {
	return Object{Value: value, Lang: lang}
}

// IsBlank reports whether the object references a blank node.
func (o Object) IsBlank() bool {
	return o.IsIRI && strings.HasPrefix(o.Value, "_:")
}

// String renders the object for log and error messages.
func (o Object) String() string {
	if o.IsIRI {
		return "<" + o.Value + ">"
	}
	if o.Datatype != "" {
		return fmt.Sprintf("%q^^<%s>", o.Value, o.Datatype)
	}
	if o.Lang != "" {
		return fmt.Sprintf("%q@%s", o.Value, o.Lang)
	}
	return fmt.Sprintf("%q", o.Value)
}

// Triple is a single (subject, predicate, object) fact. Subjects and
// predicates are IRIs; blank-node subjects use the "_:" prefix.
type Triple struct {
	Subject   string
	Predicate string
	Object    Object
}

// IsBlankNode reports whether an IRI string denotes a blank node.
func IsBlankNode(iri string) bool {
	return strings.HasPrefix(iri, "_:")
}
