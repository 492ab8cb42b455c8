package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/c360studio/semshape/graph"
	"github.com/c360studio/semshape/vocabulary/rdf"
	"github.com/c360studio/semshape/vocabulary/rdfs"
	"github.com/c360studio/semshape/vocabulary/xsd"
)

func TestTurtleSerialization(t *testing.T) {
	g := graph.New()
	g.Add(graph.Triple{Subject: ns + "Person", Predicate: rdf.Type, Object: graph.IRIObject(rdfs.Class)})
	g.Add(graph.Triple{Subject: ns + "Person", Predicate: rdfs.Label, Object: graph.Literal("Person")})
	g.Add(graph.Triple{Subject: ns + "Person", Predicate: rdfs.Comment, Object: graph.LangLiteral("A person", "en")})

	out := Turtle(g)

	assert.Contains(t, out, "@prefix rdfs: <"+rdfs.Namespace+"> .")
	assert.Contains(t, out, "<"+ns+"Person>")
	// Predicates come out sorted; rdf:type first as "a", rdfs:label last.
	assert.Contains(t, out, "a rdfs:Class ;")
	assert.Contains(t, out, `rdfs:comment "A person"@en ;`)
	assert.Contains(t, out, `rdfs:label "Person" .`)
}

func TestTurtleTypedLiteralAndBlank(t *testing.T) {
	g := graph.New()
	g.Add(graph.Triple{Subject: "_:doc.b1", Predicate: ns + "count", Object: graph.TypedLiteral("5", xsd.Integer)})

	out := Turtle(g)
	assert.Contains(t, out, "_:doc_b1")
	assert.Contains(t, out, `"5"^^xsd:integer`)
}

func TestJSONLDSerialization(t *testing.T) {
	g := graph.New()
	g.Add(graph.Triple{Subject: ns + "Person", Predicate: rdf.Type, Object: graph.IRIObject(rdfs.Class)})
	g.Add(graph.Triple{Subject: ns + "Person", Predicate: rdfs.Label, Object: graph.Literal("Person")})

	out, err := JSONLD(g)
	assert.NoError(t, err)

	s := string(out)
	assert.True(t, strings.Contains(s, `"@id": "`+ns+`Person"`))
	assert.True(t, strings.Contains(s, `"@type"`))
	assert.True(t, strings.Contains(s, rdfs.Class))
}

func TestJSONLDIsDeterministic(t *testing.T) {
	g := graph.New()
	g.Add(graph.Triple{Subject: ns + "a", Predicate: rdfs.Label, Object: graph.Literal("x")})
	g.Add(graph.Triple{Subject: ns + "b", Predicate: rdfs.Label, Object: graph.Literal("y")})

	first, err := JSONLD(g)
	assert.NoError(t, err)
	second, err := JSONLD(g)
	assert.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}
