package jsonschema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Format selects the serialization of the output document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// EncodeJSON renders the schema as indented JSON with a trailing newline.
func EncodeJSON(s *Schema, indent int) ([]byte, error) {
	if indent < 0 {
		indent = 0
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", spaces(indent))
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("encode schema: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeYAML renders the schema as YAML.
func EncodeYAML(s *Schema, indent int) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	if indent > 0 {
		enc.SetIndent(indent)
	}
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("encode schema: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode schema: %w", err)
	}
	return buf.Bytes(), nil
}

// Encode renders the schema in the given format.
func Encode(s *Schema, format Format, indent int) ([]byte, error) {
	switch format {
	case FormatYAML:
		return EncodeYAML(s, indent)
	case FormatJSON, "":
		return EncodeJSON(s, indent)
	}
	return nil, fmt.Errorf("unsupported output format %q", format)
}

func spaces(n int) string {
	const pad = "        "
	if n <= len(pad) {
		return pad[:n]
	}
	out := make([]byte, n)
	for i := range out {
		out[i] = ' '
	}
	return string(out)
}
