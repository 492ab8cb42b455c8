package validate

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/c360studio/semshape/graph"
	"github.com/c360studio/semshape/shape"
	"github.com/c360studio/semshape/vocabulary/xsd"
)

// checkLexical verifies that a literal's lexical form is valid for the
// expected datatype. A literal carrying an explicit different datatype is
// also a violation.
func checkLexical(o graph.Object, expected string) error {
	if o.Datatype != "" && o.Datatype != expected {
		return fmt.Errorf("value %q has datatype %s, expected %s", o.Value, o.Datatype, expected)
	}

	v := o.Value
	var err error
	switch expected {
	case xsd.String, "":
		return nil
	case xsd.Boolean:
		_, err = strconv.ParseBool(v)
	case xsd.Integer, xsd.Int, xsd.Long, xsd.Short, xsd.Byte,
		xsd.UnsignedByte, xsd.UnsignedShort, xsd.UnsignedInt, xsd.UnsignedLong,
		xsd.PositiveInteger, xsd.NonNegativeInteger, xsd.NegativeInteger, xsd.NonPositiveInteger:
		_, err = strconv.ParseInt(v, 10, 64)
	case xsd.Decimal, xsd.Float, xsd.Double:
		_, err = strconv.ParseFloat(v, 64)
	case xsd.Date:
		_, err = time.Parse("2006-01-02", v)
	case xsd.DateTime, xsd.DateTimeStamp:
		_, err = time.Parse(time.RFC3339, v)
	case xsd.Time:
		_, err = time.Parse("15:04:05", v)
	case xsd.AnyURI:
		_, err = url.Parse(v)
	default:
		// Unknown datatypes carry no lexical rule here.
		return nil
	}
	if err != nil {
		return fmt.Errorf("value %q is not a valid %s", v, graph.LocalName(expected))
	}
	return nil
}

// checkRange applies the numeric bound constraints to one literal value.
func checkRange(subject string, pc *shape.PropertyConstraint, o graph.Object) []Violation {
	if pc.MinInclusive == nil && pc.MaxInclusive == nil &&
		pc.MinExclusive == nil && pc.MaxExclusive == nil {
		return nil
	}

	var violations []Violation
	add := func(constraint, defaultMsg string) {
		msg := pc.Message
		if msg == "" {
			msg = defaultMsg
		}
		violations = append(violations, Violation{
			Subject:    subject,
			Path:       pc.Path,
			Constraint: constraint,
			Value:      o.Value,
			Message:    msg,
		})
	}

	f, err := strconv.ParseFloat(o.Value, 64)
	if err != nil {
		add("range", fmt.Sprintf("value %q is not numeric but %s carries numeric bounds", o.Value, pc.Path))
		return violations
	}

	if pc.MinInclusive != nil && f < *pc.MinInclusive {
		add("minInclusive", fmt.Sprintf("value %v is below the minimum %v", f, *pc.MinInclusive))
	}
	if pc.MaxInclusive != nil && f > *pc.MaxInclusive {
		add("maxInclusive", fmt.Sprintf("value %v is above the maximum %v", f, *pc.MaxInclusive))
	}
	if pc.MinExclusive != nil && f <= *pc.MinExclusive {
		add("minExclusive", fmt.Sprintf("value %v must be greater than %v", f, *pc.MinExclusive))
	}
	if pc.MaxExclusive != nil && f >= *pc.MaxExclusive {
		add("maxExclusive", fmt.Sprintf("value %v must be less than %v", f, *pc.MaxExclusive))
	}
	return violations
}
