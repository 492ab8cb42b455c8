package export

import (
	"testing"

	"github.com/c360studio/semshape/vocabulary/xsd"
)

func TestMapDatatype(t *testing.T) {
	tests := []struct {
		datatype   string
		wantType   string
		wantFormat string
		wantQuoted bool
	}{
		{xsd.String, "string", "", true},
		{xsd.Boolean, "boolean", "", false},
		{xsd.Integer, "integer", "", false},
		{xsd.UnsignedLong, "integer", "", false},
		{xsd.NonNegativeInteger, "integer", "", false},
		{xsd.Decimal, "number", "", false},
		{xsd.Float, "number", "", false},
		{xsd.Double, "number", "", false},
		{xsd.Date, "string", "date", true},
		{xsd.DateTime, "string", "date-time", true},
		{xsd.DateTimeStamp, "string", "date-time", true},
		{xsd.Time, "string", "time", true},
		{xsd.AnyURI, "string", "uri", true},
		{xsd.Duration, "string", "", true},
		{"http://example.org/custom", "string", "", true},
		{"", "string", "", true},
	}

	for _, tt := range tests {
		got := MapDatatype(tt.datatype)
		if got.Type != tt.wantType || got.Format != tt.wantFormat || got.Quoted != tt.wantQuoted {
			t.Errorf("MapDatatype(%q) = %+v, want type=%q format=%q quoted=%v",
				tt.datatype, got, tt.wantType, tt.wantFormat, tt.wantQuoted)
		}
	}
}
