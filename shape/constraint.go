// Package shape compiles node shapes into per-class constraint sets,
// resolving class and property inheritance and detecting irreconcilable
// declarations.
package shape

import (
	"strconv"

	"github.com/c360studio/semshape/graph"
	"github.com/c360studio/semshape/vocabulary/shacl"
)

// Provenance records where a constraint came from, for conflict reports and
// the named-over-anonymous tie-break.
type Provenance struct {
	// Shape is the node shape that declared the constraint.
	Shape string

	// Source is the resource the constraint was read from: a named property
	// or property shape, or the anonymous blank node.
	Source string

	// Named is false for anonymous blank-node constraints.
	Named bool
}

// PropertyConstraint is a single path's resolved restrictions. Datatype and
// Class are mutually exclusive: scalar versus object-valued. Unset numeric
// bounds stay nil, which means unconstrained.
type PropertyConstraint struct {
	Path string

	Datatype string
	Class    string

	MinCount *int
	MaxCount *int

	MinLength *int
	MaxLength *int

	MinInclusive *float64
	MaxInclusive *float64
	MinExclusive *float64
	MaxExclusive *float64

	Pattern string
	In      []graph.Object
	Message string

	Provenance Provenance
}

// EquivalentTo reports field-for-field equality of the constraint content,
// ignoring provenance. Identical duplicate declarations merge silently.
func (pc *PropertyConstraint) EquivalentTo(other *PropertyConstraint) bool {
	if pc.Path != other.Path ||
		pc.Datatype != other.Datatype ||
		pc.Class != other.Class ||
		pc.Pattern != other.Pattern ||
		pc.Message != other.Message {
		return false
	}
	if !intPtrEq(pc.MinCount, other.MinCount) ||
		!intPtrEq(pc.MaxCount, other.MaxCount) ||
		!intPtrEq(pc.MinLength, other.MinLength) ||
		!intPtrEq(pc.MaxLength, other.MaxLength) {
		return false
	}
	if !floatPtrEq(pc.MinInclusive, other.MinInclusive) ||
		!floatPtrEq(pc.MaxInclusive, other.MaxInclusive) ||
		!floatPtrEq(pc.MinExclusive, other.MinExclusive) ||
		!floatPtrEq(pc.MaxExclusive, other.MaxExclusive) {
		return false
	}
	if len(pc.In) != len(other.In) {
		return false
	}
	for i := range pc.In {
		if pc.In[i] != other.In[i] {
			return false
		}
	}
	return true
}

// inheritFrom copies every constraint field the receiver leaves unset from
// an inherited source. Explicit declarations always override.
func (pc *PropertyConstraint) inheritFrom(src *PropertyConstraint) {
	if pc.Datatype == "" && pc.Class == "" {
		pc.Datatype = src.Datatype
		pc.Class = src.Class
	}
	if pc.MinCount == nil {
		pc.MinCount = src.MinCount
	}
	if pc.MaxCount == nil {
		pc.MaxCount = src.MaxCount
	}
	if pc.MinLength == nil {
		pc.MinLength = src.MinLength
	}
	if pc.MaxLength == nil {
		pc.MaxLength = src.MaxLength
	}
	if pc.MinInclusive == nil {
		pc.MinInclusive = src.MinInclusive
	}
	if pc.MaxInclusive == nil {
		pc.MaxInclusive = src.MaxInclusive
	}
	if pc.MinExclusive == nil {
		pc.MinExclusive = src.MinExclusive
	}
	if pc.MaxExclusive == nil {
		pc.MaxExclusive = src.MaxExclusive
	}
	if pc.Pattern == "" {
		pc.Pattern = src.Pattern
	}
	if len(pc.In) == 0 {
		pc.In = src.In
	}
	if pc.Message == "" {
		pc.Message = src.Message
	}
}

// readConstraint extracts SHACL constraint predicates from a subject. The
// path defaults to the subject itself when sh:path is absent, which is how
// properties carrying inline constraints are read.
func readConstraint(g *graph.Graph, subject string) *PropertyConstraint {
	pc := &PropertyConstraint{Path: subject}
	if p, ok := g.FirstIRI(subject, shacl.Path); ok {
		pc.Path = p
	}
	pc.Datatype, _ = g.FirstIRI(subject, shacl.Datatype)
	pc.Class, _ = g.FirstIRI(subject, shacl.Class)
	pc.MinCount = intOf(g, subject, shacl.MinCount)
	pc.MaxCount = intOf(g, subject, shacl.MaxCount)
	pc.MinLength = intOf(g, subject, shacl.MinLength)
	pc.MaxLength = intOf(g, subject, shacl.MaxLength)
	pc.MinInclusive = floatOf(g, subject, shacl.MinInclusive)
	pc.MaxInclusive = floatOf(g, subject, shacl.MaxInclusive)
	pc.MinExclusive = floatOf(g, subject, shacl.MinExclusive)
	pc.MaxExclusive = floatOf(g, subject, shacl.MaxExclusive)
	pc.Pattern, _ = g.FirstLiteral(subject, shacl.Pattern)
	pc.Message, _ = g.FirstLiteral(subject, shacl.Message)
	if head, ok := g.FirstIRI(subject, shacl.In); ok {
		pc.In = g.List(head)
	}
	return pc
}

// empty reports whether the subject carried no constraint predicates at all.
func (pc *PropertyConstraint) empty() bool {
	return pc.Datatype == "" && pc.Class == "" &&
		pc.MinCount == nil && pc.MaxCount == nil &&
		pc.MinLength == nil && pc.MaxLength == nil &&
		pc.MinInclusive == nil && pc.MaxInclusive == nil &&
		pc.MinExclusive == nil && pc.MaxExclusive == nil &&
		pc.Pattern == "" && len(pc.In) == 0 && pc.Message == ""
}

func intOf(g *graph.Graph, subject, predicate string) *int {
	if v, ok := g.FirstLiteral(subject, predicate); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return &n
		}
	}
	return nil
}

func floatOf(g *graph.Graph, subject, predicate string) *float64 {
	if v, ok := g.FirstLiteral(subject, predicate); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return &f
		}
	}
	return nil
}

func intPtrEq(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func floatPtrEq(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
