// Package rdf defines IRI constants from the RDF syntax vocabulary.
package rdf

// Namespace is the base IRI for the RDF syntax vocabulary.
const Namespace = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

const (
	// Type asserts the class membership of a resource.
	Type = Namespace + "type"

	// Property is the class of RDF properties.
	Property = Namespace + "Property"

	// LangString is the datatype of language-tagged literals.
	LangString = Namespace + "langString"

	// First, Rest and Nil encode RDF collections (used by sh:in lists).
	First = Namespace + "first"
	Rest  = Namespace + "rest"
	Nil   = Namespace + "nil"
)
