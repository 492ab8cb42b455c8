package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	full := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func personSchema() string {
	return `@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
<http://localhost:8000/acme/person/Person> a rdfs:Class ;
    rdfs:label "Person" .
`
}

func TestBuildLoadsNestedDocuments(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "acme/person.ttl", personSchema())
	writeFile(t, dir, "acme/address.jsonld", `{
  "@id": "http://localhost:8000/acme/address",
  "@type": "http://www.w3.org/2000/01/rdf-schema#Class"
}`)
	writeFile(t, dir, "README.md", "not a schema")

	snap, err := Build(dir, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"acme/address", "acme/person"}, snap.Paths())
	assert.Empty(t, snap.Quarantine())
	assert.NotZero(t, snap.Graph.Len())

	doc, ok := snap.Document("acme/person")
	require.True(t, ok)
	assert.Equal(t, FormatTurtle, doc.Format)
	assert.Equal(t, "acme/person.ttl", doc.File)
}

func TestBuildQuarantinesParseFailures(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "acme/person.ttl", personSchema())
	writeFile(t, dir, "acme/broken.ttl", "<http://a> <http://b> .")

	snap, err := Build(dir, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"acme/person"}, snap.Paths())
	require.Len(t, snap.Quarantine(), 1)
	q := snap.Quarantine()[0]
	assert.Equal(t, "acme/broken.ttl", q.File)
	assert.Equal(t, "acme/broken", q.Path)

	reason, ok := snap.IsQuarantined("acme/broken")
	assert.True(t, ok)
	assert.NotEmpty(t, reason)
}

func TestBuildQuarantinesNoOriginDocuments(t *testing.T) {
	dir := t.TempDir()
	// Valid Turtle, but no IRI mentions the document's own path.
	writeFile(t, dir, "acme/stray.ttl", `@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
<http://elsewhere.example/thing> a rdfs:Class .
`)

	snap, err := Build(dir, nil)
	require.NoError(t, err)

	assert.Empty(t, snap.Paths())
	require.Len(t, snap.Quarantine(), 1)
	assert.Contains(t, snap.Quarantine()[0].Reason, "no origin on this server")
}

func TestBuildVersionIsContentAddressed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "acme/person.ttl", personSchema())

	first, err := Build(dir, nil)
	require.NoError(t, err)
	second, err := Build(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, first.Version, second.Version)

	// Changing any file changes the version, even a quarantined one.
	writeFile(t, dir, "acme/broken.ttl", "<http://a> <http://b> .")
	third, err := Build(dir, nil)
	require.NoError(t, err)
	assert.NotEqual(t, first.Version, third.Version)
}

func TestSnapshotOwnerWalksUp(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "acme/person.ttl", personSchema())

	snap, err := Build(dir, nil)
	require.NoError(t, err)

	// Exact path.
	doc, ok := snap.Owner("acme/person")
	require.True(t, ok)
	assert.Equal(t, "acme/person", doc.Path)

	// Element inside the document resolves to the document.
	doc, ok = snap.Owner("acme/person/Person")
	require.True(t, ok)
	assert.Equal(t, "acme/person", doc.Path)

	// Nothing above the content root.
	_, ok = snap.Owner("elsewhere/thing")
	assert.False(t, ok)
}
