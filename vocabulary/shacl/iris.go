// Package shacl defines IRI constants from the SHACL vocabulary.
package shacl

// Namespace is the base IRI for the SHACL vocabulary.
const Namespace = "http://www.w3.org/ns/shacl#"

// Shape and property-shape classes.
const (
	NodeShape     = Namespace + "NodeShape"
	PropertyShape = Namespace + "PropertyShape"

	// PropertyClass is the (lowercase-P) sh:Property class some schemas use
	// for standalone, reusable property shapes.
	PropertyClass = Namespace + "Property"
)

// Linking predicates.
const (
	// Property links a node shape to one of its property shapes.
	Property = Namespace + "property"

	// Path names the property a property shape constrains.
	Path = Namespace + "path"

	// TargetClass names the class a node shape applies to.
	TargetClass = Namespace + "targetClass"
)

// Constraint predicates.
const (
	Datatype     = Namespace + "datatype"
	Class        = Namespace + "class"
	MinCount     = Namespace + "minCount"
	MaxCount     = Namespace + "maxCount"
	MinLength    = Namespace + "minLength"
	MaxLength    = Namespace + "maxLength"
	MinInclusive = Namespace + "minInclusive"
	MaxInclusive = Namespace + "maxInclusive"
	MinExclusive = Namespace + "minExclusive"
	MaxExclusive = Namespace + "maxExclusive"
	Pattern      = Namespace + "pattern"
	In           = Namespace + "in"
	Message      = Namespace + "message"
)
