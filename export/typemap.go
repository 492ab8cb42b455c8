// Package export renders snapshots and compiled shapes into their external
// representations: Turtle, JSON-LD, JSON Schema, and HTML.
package export

import (
	"github.com/c360studio/semshape/vocabulary/xsd"
)

// TypeMapping is one row of the datatype table: the JSON Schema type and
// format a semantic datatype maps to, and whether its values are quoted in
// the target representation.
type TypeMapping struct {
	Type   string
	Format string
	Quoted bool
}

var typeTable = map[string]TypeMapping{
	xsd.String:  {Type: "string", Quoted: true},
	xsd.Boolean: {Type: "boolean"},

	xsd.Integer:            {Type: "integer"},
	xsd.Int:                {Type: "integer"},
	xsd.Long:               {Type: "integer"},
	xsd.Short:              {Type: "integer"},
	xsd.Byte:               {Type: "integer"},
	xsd.UnsignedByte:       {Type: "integer"},
	xsd.UnsignedShort:      {Type: "integer"},
	xsd.UnsignedInt:        {Type: "integer"},
	xsd.UnsignedLong:       {Type: "integer"},
	xsd.PositiveInteger:    {Type: "integer"},
	xsd.NonNegativeInteger: {Type: "integer"},
	xsd.NegativeInteger:    {Type: "integer"},
	xsd.NonPositiveInteger: {Type: "integer"},

	xsd.Decimal: {Type: "number"},
	xsd.Float:   {Type: "number"},
	xsd.Double:  {Type: "number"},

	xsd.Date:          {Type: "string", Format: "date", Quoted: true},
	xsd.DateTime:      {Type: "string", Format: "date-time", Quoted: true},
	xsd.DateTimeStamp: {Type: "string", Format: "date-time", Quoted: true},
	xsd.Time:          {Type: "string", Format: "time", Quoted: true},
	xsd.AnyURI:        {Type: "string", Format: "uri", Quoted: true},
}

// MapDatatype returns the mapping for a datatype IRI. Unknown datatypes
// map to a quoted string.
func MapDatatype(datatype string) TypeMapping {
	if tm, ok := typeTable[datatype]; ok {
		return tm
	}
	return TypeMapping{Type: "string", Quoted: true}
}
