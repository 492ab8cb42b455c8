package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semshape/graph"
	"github.com/c360studio/semshape/shape"
	"github.com/c360studio/semshape/vocabulary/rdf"
	"github.com/c360studio/semshape/vocabulary/shacl"
	"github.com/c360studio/semshape/vocabulary/xsd"
)

const ns = "http://example.org/test/"

func intPtr(n int) *int { return &n }

func floatPtr(f float64) *float64 { return &f }

func compiledShape(class string, constraints ...*shape.PropertyConstraint) *shape.CompiledShape {
	cs := &shape.CompiledShape{
		Class:      class,
		ShapeSet:   []string{ns + "Shape"},
		Properties: make(map[string]*shape.PropertyConstraint),
		Conflicts:  make(map[string]*shape.ConflictRecord),
	}
	for _, pc := range constraints {
		cs.Properties[pc.Path] = pc
	}
	return cs
}

func person(g *graph.Graph, subject string) {
	g.Add(graph.Triple{Subject: subject, Predicate: rdf.Type, Object: graph.IRIObject(ns + "Person")})
}

func set(g *graph.Graph, s, p string, o graph.Object) {
	g.Add(graph.Triple{Subject: s, Predicate: p, Object: o})
}

func constraintsOf(violations []Violation) []string {
	out := make([]string, 0, len(violations))
	for _, v := range violations {
		out = append(out, v.Constraint)
	}
	return out
}

func TestValidateConformingInstance(t *testing.T) {
	g := graph.New()
	person(g, ns+"jane")
	set(g, ns+"jane", ns+"name", graph.Literal("Jane"))
	set(g, ns+"jane", ns+"age", graph.TypedLiteral("41", xsd.Integer))

	cs := compiledShape(ns+"Person",
		&shape.PropertyConstraint{Path: ns + "name", Datatype: xsd.String, MinCount: intPtr(1), MaxCount: intPtr(1)},
		&shape.PropertyConstraint{Path: ns + "age", Datatype: xsd.Integer, MaxCount: intPtr(1)},
	)

	report := NewEngine(nil).Validate(g, cs)
	assert.True(t, report.Conforms)
	assert.Equal(t, 1, report.Subjects)
	assert.Empty(t, report.Violations)
}

func TestValidateCardinality(t *testing.T) {
	g := graph.New()
	person(g, ns+"jane")
	set(g, ns+"jane", ns+"email", graph.Literal("a@example.org"))
	set(g, ns+"jane", ns+"email", graph.Literal("b@example.org"))

	cs := compiledShape(ns+"Person",
		&shape.PropertyConstraint{Path: ns + "name", MinCount: intPtr(1)},
		&shape.PropertyConstraint{Path: ns + "email", MaxCount: intPtr(1)},
	)

	report := NewEngine(nil).Validate(g, cs)
	assert.False(t, report.Conforms)
	assert.ElementsMatch(t, []string{"minCount", "maxCount"}, constraintsOf(report.Violations))
}

func TestValidateDatatypeAndPattern(t *testing.T) {
	g := graph.New()
	person(g, ns+"jane")
	set(g, ns+"jane", ns+"age", graph.Literal("not-a-number"))
	set(g, ns+"jane", ns+"code", graph.Literal("XYZ"))

	cs := compiledShape(ns+"Person",
		&shape.PropertyConstraint{Path: ns + "age", Datatype: xsd.Integer},
		&shape.PropertyConstraint{Path: ns + "code", Datatype: xsd.String, Pattern: "^[a-z]+$"},
	)

	report := NewEngine(nil).Validate(g, cs)
	assert.False(t, report.Conforms)
	assert.ElementsMatch(t, []string{"datatype", "pattern"}, constraintsOf(report.Violations))
}

func TestValidateExplicitForeignDatatypeFails(t *testing.T) {
	g := graph.New()
	person(g, ns+"jane")
	set(g, ns+"jane", ns+"age", graph.TypedLiteral("2001-01-01", xsd.Date))

	cs := compiledShape(ns+"Person",
		&shape.PropertyConstraint{Path: ns + "age", Datatype: xsd.Integer},
	)

	report := NewEngine(nil).Validate(g, cs)
	require.Len(t, report.Violations, 1)
	assert.Equal(t, "datatype", report.Violations[0].Constraint)
}

func TestValidateNumericBounds(t *testing.T) {
	g := graph.New()
	person(g, ns+"jane")
	set(g, ns+"jane", ns+"age", graph.TypedLiteral("150", xsd.Integer))

	cs := compiledShape(ns+"Person",
		&shape.PropertyConstraint{Path: ns + "age", Datatype: xsd.Integer, MaxInclusive: floatPtr(120)},
	)

	report := NewEngine(nil).Validate(g, cs)
	require.Len(t, report.Violations, 1)
	assert.Equal(t, "maxInclusive", report.Violations[0].Constraint)
}

func TestValidateLengthAndInList(t *testing.T) {
	g := graph.New()
	person(g, ns+"jane")
	set(g, ns+"jane", ns+"nickname", graph.Literal("J"))
	set(g, ns+"jane", ns+"status", graph.Literal("unknown"))

	cs := compiledShape(ns+"Person",
		&shape.PropertyConstraint{Path: ns + "nickname", Datatype: xsd.String, MinLength: intPtr(2)},
		&shape.PropertyConstraint{
			Path:     ns + "status",
			Datatype: xsd.String,
			In:       []graph.Object{graph.Literal("active"), graph.Literal("inactive")},
		},
	)

	report := NewEngine(nil).Validate(g, cs)
	assert.ElementsMatch(t, []string{"minLength", "in"}, constraintsOf(report.Violations))
}

func TestValidateLengthCountsCharacters(t *testing.T) {
	g := graph.New()
	person(g, ns+"jane")
	// 2 characters, 4 UTF-8 bytes.
	set(g, ns+"jane", ns+"initials", graph.Literal("éé"))

	cs := compiledShape(ns+"Person",
		&shape.PropertyConstraint{Path: ns + "initials", Datatype: xsd.String, MinLength: intPtr(2), MaxLength: intPtr(3)},
	)

	report := NewEngine(nil).Validate(g, cs)
	assert.True(t, report.Conforms)
}

func TestValidateClassConstraint(t *testing.T) {
	g := graph.New()
	person(g, ns+"jane")
	set(g, ns+"home", rdf.Type, graph.IRIObject(ns+"Address"))
	set(g, ns+"jane", ns+"address", graph.IRIObject(ns+"home"))
	set(g, ns+"jane", ns+"work", graph.Literal("not a resource"))

	cs := compiledShape(ns+"Person",
		&shape.PropertyConstraint{Path: ns + "address", Class: ns + "Address"},
		&shape.PropertyConstraint{Path: ns + "work", Class: ns + "Address"},
	)

	report := NewEngine(nil).Validate(g, cs)
	require.Len(t, report.Violations, 1)
	assert.Equal(t, "class", report.Violations[0].Constraint)
	assert.Equal(t, ns+"work", report.Violations[0].Path)
}

func TestValidateUntypedReferenceIsAccepted(t *testing.T) {
	g := graph.New()
	person(g, ns+"jane")
	// The referenced resource carries no rdf:type at all; absence of typing
	// is not a violation.
	set(g, ns+"jane", ns+"address", graph.IRIObject(ns+"somewhere"))

	cs := compiledShape(ns+"Person",
		&shape.PropertyConstraint{Path: ns + "address", Class: ns + "Address"},
	)

	report := NewEngine(nil).Validate(g, cs)
	assert.True(t, report.Conforms)
}

func TestValidateCustomMessageWins(t *testing.T) {
	g := graph.New()
	person(g, ns+"jane")

	cs := compiledShape(ns+"Person",
		&shape.PropertyConstraint{Path: ns + "name", MinCount: intPtr(1), Message: "a person needs a name"},
	)

	report := NewEngine(nil).Validate(g, cs)
	require.Len(t, report.Violations, 1)
	assert.Equal(t, "a person needs a name", report.Violations[0].Message)
}

func TestValidateNoSubjectsConforms(t *testing.T) {
	g := graph.New()
	set(g, ns+"thing", rdf.Type, graph.IRIObject(ns+"Other"))

	cs := compiledShape(ns+"Person",
		&shape.PropertyConstraint{Path: ns + "name", MinCount: intPtr(1)},
	)

	report := NewEngine(nil).Validate(g, cs)
	assert.True(t, report.Conforms)
	assert.Zero(t, report.Subjects)
}

func TestValidateEachShapeReportsIndependently(t *testing.T) {
	schemas := graph.New()
	// Two shapes for the same class with incompatible constraints.
	set(schemas, ns+"S1", rdf.Type, graph.IRIObject(shacl.NodeShape))
	set(schemas, ns+"S1", shacl.TargetClass, graph.IRIObject(ns+"Person"))
	set(schemas, ns+"S1", shacl.Property, graph.IRIObject("_:a"))
	set(schemas, "_:a", shacl.Path, graph.IRIObject(ns+"name"))
	set(schemas, "_:a", shacl.MinLength, graph.Literal("5"))

	set(schemas, ns+"S2", rdf.Type, graph.IRIObject(shacl.NodeShape))
	set(schemas, ns+"S2", shacl.TargetClass, graph.IRIObject(ns+"Person"))
	set(schemas, ns+"S2", shacl.Property, graph.IRIObject("_:b"))
	set(schemas, "_:b", shacl.Path, graph.IRIObject(ns+"name"))
	set(schemas, "_:b", shacl.MaxLength, graph.Literal("3"))

	instance := graph.New()
	person(instance, ns+"jane")
	set(instance, ns+"jane", ns+"name", graph.Literal("Jane"))

	cs := &shape.CompiledShape{
		Class:    ns + "Person",
		ShapeSet: []string{ns + "S1", ns + "S2"},
	}

	reports, err := NewEngine(nil).ValidateEachShape(instance, schemas, cs)
	require.NoError(t, err)
	require.Len(t, reports, 2)

	byShape := map[string]*Report{}
	for _, r := range reports {
		byShape[r.Shape] = r.Report
	}
	// "Jane" is 4 characters: fails minLength 5, fails maxLength 3.
	assert.False(t, byShape[ns+"S1"].Conforms)
	assert.False(t, byShape[ns+"S2"].Conforms)

	instance2 := graph.New()
	person(instance2, ns+"jo")
	set(instance2, ns+"jo", ns+"name", graph.Literal("Jo"))
	reports, err = NewEngine(nil).ValidateEachShape(instance2, schemas, cs)
	require.NoError(t, err)
	byShape = map[string]*Report{}
	for _, r := range reports {
		byShape[r.Shape] = r.Report
	}
	assert.False(t, byShape[ns+"S1"].Conforms)
	assert.True(t, byShape[ns+"S2"].Conforms)
}

func TestInferTargets(t *testing.T) {
	g := graph.New()
	set(g, "http://localhost:8000/acme/person/jane", rdf.Type,
		graph.IRIObject("http://localhost:8000/acme/person/Person"))
	set(g, "http://localhost:8000/acme/person/jane", "http://schema.org/name", graph.Literal("Jane"))
	set(g, "_:b1", "https://w3id.example/org/member", graph.IRIObject("file:///tmp/x"))

	targets := InferTargets(g, []string{"schema.org", "w3.org"})
	assert.Equal(t, []string{
		"localhost:8000/acme/person/Person",
		"localhost:8000/acme/person/jane",
		"w3id.example/org/member",
	}, targets)
}

func TestInferTargetsStripsFragments(t *testing.T) {
	g := graph.New()
	set(g, "http://host.example/acme/person#jane", rdf.Type,
		graph.IRIObject("http://host.example/acme/person#Person"))

	targets := InferTargets(g, []string{"w3.org"})
	assert.Equal(t, []string{"host.example/acme/person"}, targets)
}
