// Package xsd defines IRI constants for XML Schema datatypes.
package xsd

// Namespace is the base IRI for XML Schema datatypes.
const Namespace = "http://www.w3.org/2001/XMLSchema#"

const (
	String  = Namespace + "string"
	Boolean = Namespace + "boolean"

	Integer            = Namespace + "integer"
	Int                = Namespace + "int"
	Long               = Namespace + "long"
	Short              = Namespace + "short"
	Byte               = Namespace + "byte"
	UnsignedByte       = Namespace + "unsignedByte"
	UnsignedShort      = Namespace + "unsignedShort"
	UnsignedInt        = Namespace + "unsignedInt"
	UnsignedLong       = Namespace + "unsignedLong"
	PositiveInteger    = Namespace + "positiveInteger"
	NonNegativeInteger = Namespace + "nonNegativeInteger"
	NegativeInteger    = Namespace + "negativeInteger"
	NonPositiveInteger = Namespace + "nonPositiveInteger"

	Decimal = Namespace + "decimal"
	Float   = Namespace + "float"
	Double  = Namespace + "double"

	Date          = Namespace + "date"
	Time          = Namespace + "time"
	DateTime      = Namespace + "dateTime"
	DateTimeStamp = Namespace + "dateTimeStamp"

	AnyURI = Namespace + "anyURI"

	Duration          = Namespace + "duration"
	YearMonthDuration = Namespace + "yearMonthDuration"
	DayTimeDuration   = Namespace + "dayTimeDuration"
	GMonth            = Namespace + "gMonth"
	GDay              = Namespace + "gDay"
	GYearMonth        = Namespace + "gYearMonth"
	GMonthDay         = Namespace + "gMonthDay"

	HexBinary        = Namespace + "hexBinary"
	Base64Binary     = Namespace + "base64Binary"
	Language         = Namespace + "language"
	NormalizedString = Namespace + "normalizedString"
	Token            = Namespace + "token"
	NMTOKEN          = Namespace + "NMTOKEN"
	Name             = Namespace + "Name"
	NCName           = Namespace + "NCName"
)
