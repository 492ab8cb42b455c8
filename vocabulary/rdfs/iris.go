// Package rdfs defines IRI constants from the RDF Schema vocabulary.
package rdfs

// Namespace is the base IRI for the RDF Schema vocabulary.
const Namespace = "http://www.w3.org/2000/01/rdf-schema#"

const (
	// Class is the class of RDFS classes.
	Class = Namespace + "Class"

	// Property is a non-standard spelling of rdf:Property that appears in
	// published schemas often enough that it has to be recognized.
	Property = Namespace + "Property"

	// SubClassOf links a class to its direct superclasses.
	SubClassOf = Namespace + "subClassOf"

	// SubPropertyOf links a property to its direct superproperties.
	SubPropertyOf = Namespace + "subPropertyOf"

	// Label is the human-readable name of a resource.
	Label = Namespace + "label"

	// Comment is the human-readable description of a resource.
	Comment = Namespace + "comment"

	// Domain names the class whose instances carry a property.
	Domain = Namespace + "domain"

	// Range names the class or datatype of a property's values.
	Range = Namespace + "range"
)
