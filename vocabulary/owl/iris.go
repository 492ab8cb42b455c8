// Package owl defines the few OWL IRIs the repository recognizes.
package owl

// Namespace is the base IRI for the OWL vocabulary.
const Namespace = "http://www.w3.org/2002/07/owl#"

const (
	// Class marks OWL class declarations; treated the same as rdfs:Class.
	Class = Namespace + "Class"

	// Ontology marks the document-level ontology resource.
	Ontology = Namespace + "Ontology"

	// DatatypeProperty and ObjectProperty are treated the same as rdf:Property.
	DatatypeProperty = Namespace + "DatatypeProperty"
	ObjectProperty   = Namespace + "ObjectProperty"
)
