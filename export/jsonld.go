package export

import (
	"encoding/json"
	"fmt"

	"github.com/c360studio/semshape/graph"
	"github.com/c360studio/semshape/vocabulary/rdf"
)

// jsonldDocument is the flat @graph form emitted when a stored Turtle
// document is requested as JSON-LD.
type jsonldDocument struct {
	Context map[string]string `json:"@context"`
	Graph   []jsonldNode      `json:"@graph"`
}

type jsonldNode struct {
	ID         string
	Types      []string
	Properties map[string]any
}

func (n jsonldNode) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(n.Properties)+2)
	m["@id"] = n.ID
	if len(n.Types) > 0 {
		m["@type"] = n.Types
	}
	for k, v := range n.Properties {
		m[k] = v
	}
	return json.Marshal(m)
}

// JSONLD serializes a graph to JSON-LD. Map keys are sorted by the encoder,
// so output is deterministic for a given graph.
func JSONLD(g *graph.Graph) ([]byte, error) {
	doc := jsonldDocument{
		Context: defaultPrefixes(),
		Graph:   make([]jsonldNode, 0, len(g.Subjects())),
	}

	for _, subject := range g.Subjects() {
		node := jsonldNode{
			ID:         subject,
			Types:      g.Types(subject),
			Properties: make(map[string]any),
		}
		for _, pred := range g.Predicates(subject) {
			if pred == rdf.Type {
				continue
			}
			var values []any
			for _, o := range g.Objects(subject, pred) {
				values = append(values, jsonldValue(o))
			}
			if len(values) == 1 {
				node.Properties[pred] = values[0]
			} else {
				node.Properties[pred] = values
			}
		}
		doc.Graph = append(doc.Graph, node)
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode json-ld: %w", err)
	}
	return append(out, '\n'), nil
}

func jsonldValue(o graph.Object) any {
	if o.IsIRI {
		return map[string]any{"@id": o.Value}
	}
	if o.Lang != "" {
		return map[string]any{"@value": o.Value, "@language": o.Lang}
	}
	if o.Datatype != "" {
		return map[string]any{"@value": o.Value, "@type": o.Datatype}
	}
	return o.Value
}
