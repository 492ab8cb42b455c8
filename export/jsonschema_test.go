package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"
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

func emit(t *testing.T, g *graph.Graph, cs *shape.CompiledShape) map[string]any {
	t.Helper()
	out, err := NewSchemaEmitter(g).Emit(cs)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(out, &doc))
	return doc
}

func compiled(class string, constraints ...*shape.PropertyConstraint) *shape.CompiledShape {
	cs := &shape.CompiledShape{
		Class:      class,
		Properties: make(map[string]*shape.PropertyConstraint),
		Conflicts:  make(map[string]*shape.ConflictRecord),
	}
	for _, pc := range constraints {
		cs.Properties[pc.Path] = pc
	}
	return cs
}

func TestEmitCardinalityMapping(t *testing.T) {
	tests := []struct {
		name      string
		minCount  *int
		maxCount  *int
		wantArray bool
		wantReq   bool
	}{
		{"required scalar", intPtr(1), intPtr(1), false, true},
		{"optional scalar", nil, intPtr(1), false, false},
		{"optional array", nil, intPtr(5), true, false},
		{"required array", intPtr(1), intPtr(9999), true, true},
		{"unbounded array", nil, nil, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := compiled(ns+"A", &shape.PropertyConstraint{
				Path:     ns + "otherAddress",
				Datatype: xsd.String,
				MinCount: tt.minCount,
				MaxCount: tt.maxCount,
			})

			doc := emit(t, graph.New(), cs)
			props := doc["properties"].(map[string]any)
			field := props["otherAddress"].(map[string]any)

			if tt.wantArray {
				assert.Equal(t, "array", field["type"])
				assert.NotNil(t, field["items"])
			} else {
				assert.Equal(t, "string", field["type"])
			}

			if tt.wantReq {
				require.Contains(t, doc, "required")
				assert.Contains(t, doc["required"], "otherAddress")
			} else {
				assert.NotContains(t, doc, "required")
			}
		})
	}
}

func TestEmitEnumKeepsDeclarationOrder(t *testing.T) {
	cs := compiled(ns+"A", &shape.PropertyConstraint{
		Path:     ns + "firstName",
		Datatype: xsd.String,
		MaxCount: intPtr(1),
		In: []graph.Object{
			graph.Literal("Jane"),
			graph.Literal("John"),
			graph.Literal("Joe"),
			graph.Literal("Janet"),
		},
	})

	doc := emit(t, graph.New(), cs)
	field := doc["properties"].(map[string]any)["firstName"].(map[string]any)
	assert.Equal(t, []any{"Jane", "John", "Joe", "Janet"}, field["enum"])
}

func TestEmitNumericEnumUnquoted(t *testing.T) {
	cs := compiled(ns+"A", &shape.PropertyConstraint{
		Path:     ns + "rating",
		Datatype: xsd.Integer,
		MaxCount: intPtr(1),
		In: []graph.Object{
			graph.TypedLiteral("1", xsd.Integer),
			graph.TypedLiteral("2", xsd.Integer),
		},
	})

	doc := emit(t, graph.New(), cs)
	field := doc["properties"].(map[string]any)["rating"].(map[string]any)
	assert.Equal(t, []any{float64(1), float64(2)}, field["enum"])
}

func TestEmitIsByteStable(t *testing.T) {
	cs := compiled(ns+"A",
		&shape.PropertyConstraint{Path: ns + "b", Datatype: xsd.String, MaxCount: intPtr(1)},
		&shape.PropertyConstraint{Path: ns + "a", Datatype: xsd.Integer, MinCount: intPtr(1), MaxCount: intPtr(1)},
		&shape.PropertyConstraint{Path: ns + "c", Datatype: xsd.Boolean},
	)
	g := graph.New()

	first, err := NewSchemaEmitter(g).Emit(cs)
	require.NoError(t, err)
	second, err := NewSchemaEmitter(g).Emit(cs)
	require.NoError(t, err)

	assert.True(t, bytes.Equal(first, second))
}

func TestEmitConflictedShapeFails(t *testing.T) {
	cs := compiled(ns + "A")
	cs.Conflicts[ns+"p1"] = &shape.ConflictRecord{
		Path:  ns + "p1",
		Class: ns + "A",
		Constraints: []*shape.PropertyConstraint{
			{Path: ns + "p1", Datatype: xsd.String, Provenance: shape.Provenance{Shape: ns + "S1"}},
			{Path: ns + "p1", Datatype: xsd.Integer, Provenance: shape.Provenance{Shape: ns + "S2"}},
		},
	}

	_, err := NewSchemaEmitter(graph.New()).Emit(cs)
	require.Error(t, err)
	var conflictErr *shape.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Contains(t, conflictErr.Error(), ns+"p1")
}

func TestEmitObjectReferences(t *testing.T) {
	g := graph.New()
	// One shape targets Address; two shapes target Phone.
	g.Add(graph.Triple{Subject: ns + "AddressShape", Predicate: rdf.Type, Object: graph.IRIObject(shacl.NodeShape)})
	g.Add(graph.Triple{Subject: ns + "AddressShape", Predicate: shacl.TargetClass, Object: graph.IRIObject(ns + "Address")})
	g.Add(graph.Triple{Subject: ns + "PhoneShape1", Predicate: rdf.Type, Object: graph.IRIObject(shacl.NodeShape)})
	g.Add(graph.Triple{Subject: ns + "PhoneShape1", Predicate: shacl.TargetClass, Object: graph.IRIObject(ns + "Phone")})
	g.Add(graph.Triple{Subject: ns + "PhoneShape2", Predicate: rdf.Type, Object: graph.IRIObject(shacl.NodeShape)})
	g.Add(graph.Triple{Subject: ns + "PhoneShape2", Predicate: shacl.TargetClass, Object: graph.IRIObject(ns + "Phone")})

	cs := compiled(ns+"Person",
		&shape.PropertyConstraint{Path: ns + "address", Class: ns + "Address", MaxCount: intPtr(1)},
		&shape.PropertyConstraint{Path: ns + "phone", Class: ns + "Phone", MaxCount: intPtr(1)},
		&shape.PropertyConstraint{Path: ns + "pet", Class: ns + "Pet", MaxCount: intPtr(1)},
	)

	doc := emit(t, g, cs)
	props := doc["properties"].(map[string]any)

	address := props["address"].(map[string]any)
	assert.Equal(t, ns+"AddressShape", address["$ref"])

	phone := props["phone"].(map[string]any)
	assert.Equal(t, "object", phone["type"])
	assert.Len(t, phone["x-ambiguous-reference"], 2)

	pet := props["pet"].(map[string]any)
	assert.Equal(t, "object", pet["type"])
	assert.NotContains(t, pet, "x-ambiguous-reference")
}

// TestEmitRoundTrip re-parses an emitted document with a JSON Schema
// compiler and checks the field classifications survive.
func TestEmitRoundTrip(t *testing.T) {
	cs := compiled(ns+"Person",
		&shape.PropertyConstraint{Path: ns + "name", Datatype: xsd.String, MinCount: intPtr(1), MaxCount: intPtr(1)},
		&shape.PropertyConstraint{Path: ns + "nickname", Datatype: xsd.String, MaxCount: intPtr(1)},
		&shape.PropertyConstraint{Path: ns + "otherAddress", Datatype: xsd.String, MinCount: intPtr(1), MaxCount: intPtr(9999)},
	)

	out, err := NewSchemaEmitter(graph.New()).Emit(cs)
	require.NoError(t, err)

	sch, err := jsonschema.CompileString("person.json", string(out))
	require.NoError(t, err)

	// Conforming instance: required scalar, optional scalar omitted,
	// required array present.
	valid := map[string]any{
		"name":         "Jane",
		"otherAddress": []any{"somewhere"},
	}
	assert.NoError(t, sch.Validate(valid))

	// Missing required array fails.
	invalid := map[string]any{"name": "Jane"}
	assert.Error(t, sch.Validate(invalid))

	// Scalar where the array is required fails.
	wrongShape := map[string]any{
		"name":         "Jane",
		"otherAddress": "somewhere",
	}
	assert.Error(t, sch.Validate(wrongShape))
}
