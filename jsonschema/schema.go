// Package jsonschema holds the output document model for the converter: a
// draft-07 subset large enough to express class definitions, property
// schemas, combinator composition and examples, plus the builder that
// assembles rule fragments into one document.
package jsonschema

// Schema is a single JSON Schema object. Field order here fixes the key
// order of marshaled objects; map-valued fields marshal with sorted keys,
// so repeated runs over the same input produce byte-identical output.
type Schema struct {
	URI         string `json:"$schema,omitempty" yaml:"$schema,omitempty"`
	ID          string `json:"$id,omitempty" yaml:"$id,omitempty"`
	Ref         string `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Comment     string `json:"$comment,omitempty" yaml:"$comment,omitempty"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Version     string `json:"version,omitempty" yaml:"version,omitempty"`

	Type   string        `json:"type,omitempty" yaml:"type,omitempty"`
	Format string        `json:"format,omitempty" yaml:"format,omitempty"`
	Enum   []interface{} `json:"enum,omitempty" yaml:"enum,omitempty"`
	Const  interface{}   `json:"const,omitempty" yaml:"const,omitempty"`

	Properties           map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required             []string           `json:"required,omitempty" yaml:"required,omitempty"`
	AdditionalProperties *bool              `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`

	Items    *Schema `json:"items,omitempty" yaml:"items,omitempty"`
	Contains *Schema `json:"contains,omitempty" yaml:"contains,omitempty"`
	MinItems *uint   `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems *uint   `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`
	Minimum  *int64  `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum  *int64  `json:"maximum,omitempty" yaml:"maximum,omitempty"`

	AllOf []*Schema `json:"allOf,omitempty" yaml:"allOf,omitempty"`
	AnyOf []*Schema `json:"anyOf,omitempty" yaml:"anyOf,omitempty"`
	OneOf []*Schema `json:"oneOf,omitempty" yaml:"oneOf,omitempty"`
	Not   *Schema   `json:"not,omitempty" yaml:"not,omitempty"`

	Examples []interface{} `json:"examples,omitempty" yaml:"examples,omitempty"`

	Definitions map[string]*Schema `json:"definitions,omitempty" yaml:"definitions,omitempty"`
}

// Draft07 is the $schema value stamped on every output document.
const Draft07 = "http://json-schema.org/draft-07/schema#"

// Ref returns a reference to a named definition.
func Ref(name string) *Schema {
	return &Schema{Ref: "#/definitions/" + name}
}

// Object returns an empty object schema.
func Object() *Schema {
	return &Schema{Type: "object", Properties: map[string]*Schema{}}
}

// Bool, Uint and Int return pointers for optional facets.
func Bool(v bool) *bool { return &v }

func Uint(v uint) *uint { return &v }

func Int(v int64) *int64 { return &v }

// IsZero reports whether the schema carries no facet at all.
func (s *Schema) IsZero() bool {
	if s == nil {
		return true
	}
	return s.URI == "" && s.ID == "" && s.Ref == "" && s.Comment == "" &&
		s.Title == "" && s.Description == "" && s.Version == "" &&
		s.Type == "" && s.Format == "" && s.Enum == nil && s.Const == nil &&
		len(s.Properties) == 0 && len(s.Required) == 0 && s.AdditionalProperties == nil &&
		s.Items == nil && s.Contains == nil &&
		s.MinItems == nil && s.MaxItems == nil && s.Minimum == nil && s.Maximum == nil &&
		len(s.AllOf) == 0 && len(s.AnyOf) == 0 && len(s.OneOf) == 0 && s.Not == nil &&
		len(s.Examples) == 0 && len(s.Definitions) == 0
}
