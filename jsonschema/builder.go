package jsonschema

// Fragment is one rule contribution to the output document. Class names a
// definition; an empty Class targets the document root. Property names the
// property within the class schema the fragment applies to; an empty
// Property means the fragment is class-level (title, hierarchy, combinator
// composition). Required marks the property for the class's required list.
type Fragment struct {
	Class    string
	Property string
	Schema   *Schema
	Required bool
}

// Builder accumulates fragments and assembles them into a single schema
// document. Same-property fragments compose: facets a fragment adds to a
// property already carrying a conflicting facet are wrapped in an allOf
// conjunction rather than overwriting it.
type Builder struct {
	root *Schema
	defs map[string]*Schema
}

// NewBuilder returns an empty builder with the draft-07 header set.
func NewBuilder() *Builder {
	return &Builder{
		root: &Schema{URI: Draft07},
		defs: map[string]*Schema{},
	}
}

// Definition returns the named class definition, creating an empty object
// schema on first use.
func (b *Builder) Definition(name string) *Schema {
	if d, ok := b.defs[name]; ok {
		return d
	}
	d := Object()
	b.defs[name] = d
	return d
}

// Add merges one fragment into the document.
func (b *Builder) Add(f Fragment) {
	if f.Class == "" {
		if f.Schema != nil {
			mergeRoot(b.root, f.Schema)
		}
		return
	}
	def := b.Definition(f.Class)
	if f.Property == "" {
		if f.Schema != nil {
			mergeClass(def, f.Schema)
		}
		return
	}
	if f.Schema != nil {
		if def.Properties == nil {
			def.Properties = map[string]*Schema{}
		}
		def.Properties[f.Property] = MergeProperty(def.Properties[f.Property], f.Schema)
	}
	if f.Required && !contains(def.Required, f.Property) {
		def.Required = append(def.Required, f.Property)
	}
}

// Document assembles and returns the final schema. Definitions carrying an
// allOf composition get their own properties and required list folded into
// the trailing own-fields member, and empty required lists are dropped so
// an optional-only class never shows an empty array.
func (b *Builder) Document() *Schema {
	doc := b.root
	if len(b.defs) != 0 {
		doc.Definitions = make(map[string]*Schema, len(b.defs))
		for name, def := range b.defs {
			doc.Definitions[name] = finishDefinition(def)
		}
		if doc.Type == "" && len(doc.Properties) == 0 {
			doc.Type = "object"
		}
	}
	return doc
}

func finishDefinition(def *Schema) *Schema {
	if len(def.Required) == 0 {
		def.Required = nil
	}
	if len(def.AllOf) == 0 {
		if len(def.Properties) == 0 {
			def.Properties = nil
		}
		return def
	}
	// Fold own fields into the allOf's trailing object member.
	own := &Schema{Type: "object", Properties: map[string]*Schema{}}
	def.AllOf = append(def.AllOf, own)
	if len(def.Properties) != 0 {
		own.Properties = def.Properties
	}
	own.Required = def.Required
	def.Type = ""
	def.Properties = nil
	def.Required = nil
	if len(own.Properties) == 0 {
		own.Properties = nil
	}
	if len(own.Required) == 0 {
		own.Required = nil
	}
	return def
}

// mergeRoot folds a root-level fragment into the document header.
func mergeRoot(dst, src *Schema) {
	if dst.ID == "" {
		dst.ID = src.ID
	}
	if dst.Title == "" {
		dst.Title = src.Title
	}
	if dst.Description == "" {
		dst.Description = src.Description
	}
	if dst.Comment == "" {
		dst.Comment = src.Comment
	}
	if dst.Version == "" {
		dst.Version = src.Version
	}
	dst.Examples = append(dst.Examples, src.Examples...)
}

// mergeClass folds a class-level fragment into a definition. Scalars fill
// empty slots only; composition lists append; properties go through the
// property merge.
func mergeClass(dst, src *Schema) {
	if dst.Type == "" {
		dst.Type = src.Type
	}
	if dst.Title == "" {
		dst.Title = src.Title
	}
	if dst.Description == "" {
		dst.Description = src.Description
	}
	if dst.Comment == "" {
		dst.Comment = src.Comment
	}
	if dst.Enum == nil {
		dst.Enum = src.Enum
	}
	if dst.Not == nil {
		dst.Not = src.Not
	}
	dst.AllOf = append(dst.AllOf, src.AllOf...)
	dst.AnyOf = append(dst.AnyOf, src.AnyOf...)
	dst.OneOf = append(dst.OneOf, src.OneOf...)
	dst.Examples = append(dst.Examples, src.Examples...)
	for name, ps := range src.Properties {
		if dst.Properties == nil {
			dst.Properties = map[string]*Schema{}
		}
		dst.Properties[name] = MergeProperty(dst.Properties[name], ps)
	}
	for _, r := range src.Required {
		if !contains(dst.Required, r) {
			dst.Required = append(dst.Required, r)
		}
	}
}

// MergeProperty composes two schemas for the same property. Missing facets
// are copied across and numeric bounds tighten; a facet both sides set to
// different values turns the result into an allOf of the two schemas, so
// contributions from different rules conjoin rather than overwrite.
func MergeProperty(dst, src *Schema) *Schema {
	if dst == nil {
		return src
	}
	if src == nil || src.IsZero() {
		return dst
	}
	if conflicts(dst, src) {
		if len(dst.AllOf) != 0 && onlyAllOf(dst) {
			dst.AllOf = append(dst.AllOf, src)
			return dst
		}
		return &Schema{AllOf: []*Schema{dst, src}}
	}
	if dst.Ref == "" {
		dst.Ref = src.Ref
	}
	if dst.Type == "" {
		dst.Type = src.Type
	}
	if dst.Format == "" {
		dst.Format = src.Format
	}
	if dst.Title == "" {
		dst.Title = src.Title
	}
	if dst.Description == "" {
		dst.Description = src.Description
	}
	if dst.Const == nil {
		dst.Const = src.Const
	}
	if dst.Enum == nil {
		dst.Enum = src.Enum
	}
	if dst.Items == nil {
		dst.Items = src.Items
	} else if src.Items != nil {
		dst.Items = MergeProperty(dst.Items, src.Items)
	}
	if dst.Contains == nil {
		dst.Contains = src.Contains
	}
	if src.MinItems != nil && (dst.MinItems == nil || *src.MinItems > *dst.MinItems) {
		dst.MinItems = src.MinItems
	}
	if src.MaxItems != nil && (dst.MaxItems == nil || *src.MaxItems < *dst.MaxItems) {
		dst.MaxItems = src.MaxItems
	}
	if src.Minimum != nil && (dst.Minimum == nil || *src.Minimum > *dst.Minimum) {
		dst.Minimum = src.Minimum
	}
	if src.Maximum != nil && (dst.Maximum == nil || *src.Maximum < *dst.Maximum) {
		dst.Maximum = src.Maximum
	}
	if len(src.OneOf) != 0 && len(dst.OneOf) == 0 {
		dst.OneOf = src.OneOf
	}
	if len(src.AnyOf) != 0 && len(dst.AnyOf) == 0 {
		dst.AnyOf = src.AnyOf
	}
	dst.AllOf = append(dst.AllOf, src.AllOf...)
	for name, ps := range src.Properties {
		if dst.Properties == nil {
			dst.Properties = map[string]*Schema{}
		}
		dst.Properties[name] = MergeProperty(dst.Properties[name], ps)
	}
	for _, r := range src.Required {
		if !contains(dst.Required, r) {
			dst.Required = append(dst.Required, r)
		}
	}
	return dst
}

func conflicts(a, b *Schema) bool {
	// Draft-07 ignores sibling keywords next to $ref, so a reference can
	// only combine with typed facets through allOf.
	if a.Ref != "" && typed(b) || b.Ref != "" && typed(a) {
		return true
	}
	switch {
	case a.Ref != "" && b.Ref != "" && a.Ref != b.Ref:
		return true
	case a.Type != "" && b.Type != "" && a.Type != b.Type:
		return true
	case a.Format != "" && b.Format != "" && a.Format != b.Format:
		return true
	case a.Const != nil && b.Const != nil && a.Const != b.Const:
		return true
	case len(a.OneOf) != 0 && len(b.OneOf) != 0:
		return true
	case len(a.AnyOf) != 0 && len(b.AnyOf) != 0:
		return true
	}
	return false
}

func typed(s *Schema) bool {
	return s.Type != "" || s.Const != nil || s.Enum != nil ||
		len(s.OneOf) != 0 || len(s.AnyOf) != 0 || s.Items != nil
}

func onlyAllOf(s *Schema) bool {
	return s.Ref == "" && s.Type == "" && s.Format == "" && s.Const == nil &&
		s.Enum == nil && len(s.Properties) == 0 && s.Items == nil &&
		len(s.OneOf) == 0 && len(s.AnyOf) == 0
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
