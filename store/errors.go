package store

import "errors"

var (
	// ErrUnsupportedFormat indicates a schema file whose extension maps to
	// no known RDF serialization.
	ErrUnsupportedFormat = errors.New("unsupported schema format")

	// ErrNoSnapshot indicates the store has not completed its first build.
	ErrNoSnapshot = errors.New("no snapshot available")

	// ErrDocumentNotFound indicates no document owns the requested path.
	ErrDocumentNotFound = errors.New("document not found")
)
