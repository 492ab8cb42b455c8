package export

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/c360studio/semshape/graph"
	"github.com/c360studio/semshape/shape"
)

// draft is the JSON Schema dialect emitted documents declare.
const draft = "https://json-schema.org/draft/2020-12/schema"

// SchemaEmitter renders compiled shapes into JSON Schema documents. Emission
// is deterministic: the same compiled shape always yields byte-identical
// output, because properties are emitted through maps whose keys the JSON
// encoder sorts and the required list is sorted explicitly.
type SchemaEmitter struct {
	g *graph.Graph
}

// NewSchemaEmitter returns an emitter reading shape lookups from g.
func NewSchemaEmitter(g *graph.Graph) *SchemaEmitter {
	return &SchemaEmitter{g: g}
}

// Emit renders a compiled shape. A conflicted shape does not emit; the
// ConflictError names every conflicted path and its declaring shapes.
func (e *SchemaEmitter) Emit(cs *shape.CompiledShape) ([]byte, error) {
	if err := cs.ConflictError(); err != nil {
		return nil, err
	}

	properties := make(map[string]any, len(cs.Properties))
	var required []string

	for _, path := range cs.Paths() {
		pc := cs.Properties[path]
		name := graph.LocalName(path)
		properties[name] = e.fieldSchema(pc)
		if pc.MinCount != nil && *pc.MinCount >= 1 {
			required = append(required, name)
		}
	}
	sort.Strings(required)

	doc := map[string]any{
		"$schema":     draft,
		"$id":         cs.Class,
		"title":       graph.LabelOf(e.g, cs.Class),
		"description": graph.CommentOf(e.g, cs.Class),
		"type":        "object",
		"properties":  properties,
	}
	if len(required) > 0 {
		doc["required"] = required
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode schema for %s: %w", cs.Class, err)
	}
	return append(out, '\n'), nil
}

// fieldSchema renders one constraint, wrapping the base type in an array
// unless maxCount is exactly one.
func (e *SchemaEmitter) fieldSchema(pc *shape.PropertyConstraint) map[string]any {
	base := e.baseSchema(pc)

	scalar := pc.MaxCount != nil && *pc.MaxCount == 1
	if scalar {
		if pc.Message != "" {
			base["description"] = pc.Message
		}
		return base
	}

	field := map[string]any{
		"type":  "array",
		"items": base,
	}
	if pc.MinCount != nil && *pc.MinCount >= 1 {
		field["minItems"] = *pc.MinCount
	}
	if pc.MaxCount != nil {
		field["maxItems"] = *pc.MaxCount
	}
	if pc.Message != "" {
		field["description"] = pc.Message
	}
	return field
}

func (e *SchemaEmitter) baseSchema(pc *shape.PropertyConstraint) map[string]any {
	if pc.Class != "" {
		return e.objectSchema(pc.Class)
	}

	tm := MapDatatype(pc.Datatype)
	base := map[string]any{"type": tm.Type}
	if tm.Format != "" {
		base["format"] = tm.Format
	}
	if pc.Pattern != "" {
		base["pattern"] = pc.Pattern
	}
	if pc.MinLength != nil {
		base["minLength"] = *pc.MinLength
	}
	if pc.MaxLength != nil {
		base["maxLength"] = *pc.MaxLength
	}
	if pc.MinInclusive != nil {
		base["minimum"] = *pc.MinInclusive
	}
	if pc.MaxInclusive != nil {
		base["maximum"] = *pc.MaxInclusive
	}
	if pc.MinExclusive != nil {
		base["exclusiveMinimum"] = *pc.MinExclusive
	}
	if pc.MaxExclusive != nil {
		base["exclusiveMaximum"] = *pc.MaxExclusive
	}
	if len(pc.In) > 0 {
		base["enum"] = enumValues(pc.In, tm)
	}
	return base
}

// objectSchema renders an object-valued property. One shape on the target
// class becomes a reference; none becomes an opaque object; several are
// flagged as ambiguous rather than picking one.
func (e *SchemaEmitter) objectSchema(class string) map[string]any {
	shapes := graph.ShapesTargeting(e.g, class)
	switch len(shapes) {
	case 1:
		return map[string]any{"$ref": shapes[0].IRI}
	case 0:
		return map[string]any{"type": "object"}
	default:
		iris := make([]string, len(shapes))
		for i, sh := range shapes {
			iris[i] = sh.IRI
		}
		sort.Strings(iris)
		return map[string]any{
			"type":                  "object",
			"x-ambiguous-reference": iris,
		}
	}
}

// enumValues renders an sh:in list in document order using the datatype's
// quoting rule: numbers and booleans unquoted, strings quoted, resource
// values as their identifiers.
func enumValues(in []graph.Object, tm TypeMapping) []any {
	values := make([]any, 0, len(in))
	for _, o := range in {
		if o.IsIRI {
			values = append(values, o.Value)
			continue
		}
		if tm.Quoted {
			values = append(values, o.Value)
			continue
		}
		switch tm.Type {
		case "integer":
			if n, err := strconv.Atoi(o.Value); err == nil {
				values = append(values, n)
				continue
			}
		case "number":
			if f, err := strconv.ParseFloat(o.Value, 64); err == nil {
				values = append(values, f)
				continue
			}
		case "boolean":
			if b, err := strconv.ParseBool(o.Value); err == nil {
				values = append(values, b)
				continue
			}
		}
		values = append(values, o.Value)
	}
	return values
}
