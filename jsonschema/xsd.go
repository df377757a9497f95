package jsonschema

import (
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/voc/xsd"
)

// xsdSchemas maps XSD datatype local names to their JSON Schema rendering.
// Entries are templates; ForXSD hands out copies so callers may decorate
// them with titles and descriptions.
var xsdSchemas = map[string]Schema{
	"string":             {Type: "string"},
	"normalizedString":   {Type: "string"},
	"token":              {Type: "string"},
	"language":           {Type: "string"},
	"boolean":            {Type: "boolean"},
	"decimal":            {Type: "number"},
	"float":              {Type: "number"},
	"double":             {Type: "number"},
	"integer":            {Type: "integer"},
	"nonNegativeInteger": {Type: "integer", Minimum: Int(0)},
	"positiveInteger":    {Type: "integer", Minimum: Int(1)},
	"nonPositiveInteger": {Type: "integer", Maximum: Int(0)},
	"negativeInteger":    {Type: "integer", Maximum: Int(-1)},
	"long":               {Type: "integer"},
	"int":                {Type: "integer"},
	"short":              {Type: "integer"},
	"byte":               {Type: "integer", Minimum: Int(-128), Maximum: Int(127)},
	"unsignedLong":       {Type: "integer", Minimum: Int(0)},
	"unsignedInt":        {Type: "integer", Minimum: Int(0)},
	"unsignedShort":      {Type: "integer", Minimum: Int(0), Maximum: Int(65535)},
	"unsignedByte":       {Type: "integer", Minimum: Int(0), Maximum: Int(255)},
	"date":               {Type: "string", Format: "date"},
	"time":               {Type: "string", Format: "time"},
	"dateTime":           {Type: "string", Format: "date-time"},
	"duration":           {Type: "string"},
	"anyURI":             {Type: "string", Format: "uri"},
	"hexBinary":          {Type: "string"},
	"base64Binary":       {Type: "string"},
}

// ForXSD returns the JSON Schema rendering of an XSD datatype IRI, or nil
// when the IRI is not in the XSD namespace. Unknown XSD datatypes fall back
// to a plain string schema.
func ForXSD(datatype quad.IRI) *Schema {
	full := string(datatype.Full())
	if !strings.HasPrefix(full, xsd.NS) {
		return nil
	}
	if tmpl, ok := xsdSchemas[strings.TrimPrefix(full, xsd.NS)]; ok {
		s := tmpl
		return &s
	}
	return &Schema{Type: "string"}
}

// DefaultDatatype is the schema used for a datatype property with no
// declared range.
func DefaultDatatype() *Schema {
	return &Schema{Type: "string"}
}

// IsXSD reports whether the IRI names an XSD datatype.
func IsXSD(datatype quad.IRI) bool {
	return strings.HasPrefix(string(datatype.Full()), xsd.NS)
}
