// Package dct defines the Dublin Core terms used for document metadata.
package dct

// Namespace is the base IRI for Dublin Core terms.
const Namespace = "http://purl.org/dc/terms/"

const (
	Title       = Namespace + "title"
	Description = Namespace + "description"
)
