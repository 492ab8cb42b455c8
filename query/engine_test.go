package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semshape/graph"
	"github.com/c360studio/semshape/vocabulary/rdf"
	"github.com/c360studio/semshape/vocabulary/rdfs"
)

const ns = "http://example.org/test/"

func sampleGraph() *graph.Graph {
	g := graph.New()
	g.Add(graph.Triple{Subject: ns + "Person", Predicate: rdf.Type, Object: graph.IRIObject(rdfs.Class)})
	g.Add(graph.Triple{Subject: ns + "Person", Predicate: rdfs.Label, Object: graph.Literal("Person")})
	g.Add(graph.Triple{Subject: ns + "Address", Predicate: rdf.Type, Object: graph.IRIObject(rdfs.Class)})
	g.Add(graph.Triple{Subject: ns + "Address", Predicate: rdfs.Label, Object: graph.Literal("Address")})
	g.Add(graph.Triple{Subject: ns + "name", Predicate: rdf.Type, Object: graph.IRIObject(rdf.Property)})
	return g
}

func TestParseQuery(t *testing.T) {
	patterns, err := Parse(`# classes
?s <` + rdf.Type + `> <` + rdfs.Class + `> .

?s <` + rdfs.Label + `> "Person"`)
	require.NoError(t, err)
	require.Len(t, patterns, 2)

	assert.True(t, patterns[0].S.IsVar)
	assert.Equal(t, "s", patterns[0].S.Value)
	assert.True(t, patterns[0].P.IsIRI)
	assert.Equal(t, rdf.Type, patterns[0].P.Value)

	o := patterns[1].O
	assert.False(t, o.IsVar)
	assert.False(t, o.IsIRI)
	assert.Equal(t, "Person", o.Value)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"two terms", "?s ?p"},
		{"four terms", "?s ?p ?o ?x"},
		{"literal subject", `"x" ?p ?o`},
		{"literal predicate", `?s "x" ?o`},
		{"unterminated literal", `?s ?p "open`},
		{"unterminated iri", `?s ?p <http://open`},
		{"bare word", `?s ?p word`},
		{"nameless variable", `? ?p ?o`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.query)
			var qerr *Error
			require.ErrorAs(t, err, &qerr)
			assert.Equal(t, 1, qerr.Line)
		})
	}
}

func TestQuerySinglePattern(t *testing.T) {
	res, err := NewPatternEngine().Query(sampleGraph(),
		"?s <"+rdf.Type+"> <"+rdfs.Class+">")
	require.NoError(t, err)

	assert.Equal(t, []string{"s"}, res.Vars)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, ns+"Person", res.Rows[0]["s"])
	assert.Equal(t, ns+"Address", res.Rows[1]["s"])
}

func TestQueryJoinsOnSharedVariables(t *testing.T) {
	q := "?s <" + rdf.Type + "> <" + rdfs.Class + "> .\n" +
		"?s <" + rdfs.Label + "> ?label ."
	res, err := NewPatternEngine().Query(sampleGraph(), q)
	require.NoError(t, err)

	assert.Equal(t, []string{"s", "label"}, res.Vars)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, "Person", res.Rows[0]["label"])
	assert.Equal(t, "Address", res.Rows[1]["label"])
}

func TestQueryLiteralVersusIRIKind(t *testing.T) {
	// A quoted literal never matches an IRI object of the same spelling.
	g := graph.New()
	g.Add(graph.Triple{Subject: ns + "a", Predicate: ns + "p", Object: graph.IRIObject("Person")})

	res, err := NewPatternEngine().Query(g, `?s <`+ns+`p> "Person"`)
	require.NoError(t, err)
	assert.Empty(t, res.Rows)
}

func TestQueryNoMatches(t *testing.T) {
	res, err := NewPatternEngine().Query(sampleGraph(),
		`?s <`+rdfs.Label+`> "Nobody"`)
	require.NoError(t, err)
	assert.NotNil(t, res.Rows)
	assert.Empty(t, res.Rows)
}

func TestQueryEmptyIsAnError(t *testing.T) {
	_, err := NewPatternEngine().Query(sampleGraph(), "\n# only a comment\n")
	var qerr *Error
	require.ErrorAs(t, err, &qerr)
}
