package transform

import (
	"github.com/cayleygraph/quad"

	"github.com/ontojson/ontojson/jsonschema"
	"github.com/ontojson/ontojson/owl"
	owlvoc "github.com/ontojson/ontojson/voc/owl"
)

var classKinds = kindSet{KindClass}

// classToObjectRule emits each class as an object definition, carrying its
// localized label and comment.
type classToObjectRule struct{}

func (*classToObjectRule) ID() string                 { return RuleClassToObject }
func (*classToObjectRule) Handles(k ElementKind) bool { return classKinds.Handles(k) }

func (*classToObjectRule) Apply(ctx *Context, el Element) []jsonschema.Fragment {
	c := el.Class
	s := jsonschema.Object()
	s.Title = ctx.Text(c.Label)
	s.Description = ctx.Text(c.Comment)
	return []jsonschema.Fragment{{Class: owl.LocalName(c.IRI), Schema: s}}
}

// classHierarchyRule renders named superclasses as an allOf of references.
// The builder appends the class's own-fields object as the trailing allOf
// member when the document is assembled.
type classHierarchyRule struct{}

func (*classHierarchyRule) ID() string                 { return RuleClassHierarchy }
func (*classHierarchyRule) Handles(k ElementKind) bool { return classKinds.Handles(k) }

func (*classHierarchyRule) Apply(ctx *Context, el Element) []jsonschema.Fragment {
	c := el.Class
	var refs []*jsonschema.Schema
	for _, sup := range c.SuperClasses {
		if !sup.IsNamed() || sup.IRI == quad.IRI(owlvoc.Thing) {
			continue
		}
		refs = append(refs, jsonschema.Ref(owl.LocalName(sup.IRI)))
	}
	if len(refs) == 0 {
		return nil
	}
	return []jsonschema.Fragment{{
		Class:  owl.LocalName(c.IRI),
		Schema: &jsonschema.Schema{AllOf: refs},
	}}
}

// classRestrictionsRule is the consumer of resolved constraints: for every
// property the class restricts, it emits the property schema derived from
// the normalized constraint and marks the property required when the
// merged restrictions prove at least one value must exist.
type classRestrictionsRule struct{}

func (*classRestrictionsRule) ID() string                 { return RuleClassRestrictions }
func (*classRestrictionsRule) Handles(k ElementKind) bool { return classKinds.Handles(k) }

func (*classRestrictionsRule) Apply(ctx *Context, el Element) []jsonschema.Fragment {
	c := el.Class
	name := owl.LocalName(c.IRI)
	var frags []jsonschema.Fragment
	for _, pc := range ctx.Constraints(c) {
		frags = append(frags, jsonschema.Fragment{
			Class:    name,
			Property: owl.LocalName(pc.Property),
			Schema:   constraintSchema(pc),
			Required: pc.Required,
		})
	}
	return frags
}

// constraintSchema renders one resolved constraint as a property schema.
// A multiplicity above one becomes an array with item bounds; otherwise
// the value type stands alone, matching the single-value shape.
func constraintSchema(pc *PropertyConstraint) *jsonschema.Schema {
	item := typesSchema(pc.Types)
	if pc.HasValue != nil {
		hv := &jsonschema.Schema{Const: constValue(pc.HasValue)}
		item = jsonschema.MergeProperty(item, hv)
	}
	if !multiValued(pc) {
		if item == nil {
			item = &jsonschema.Schema{}
		}
		return item
	}
	arr := &jsonschema.Schema{Type: "array", Items: item}
	if pc.Min != nil && *pc.Min > 0 {
		arr.MinItems = pc.Min
	}
	arr.MaxItems = pc.Max
	return arr
}

// multiValued reports whether the bounds allow or demand more than one
// value. An upper bound of one, or no bound at all, keeps the single-value
// shape.
func multiValued(pc *PropertyConstraint) bool {
	if pc.Max != nil {
		return *pc.Max > 1
	}
	return pc.Min != nil && *pc.Min > 1
}

// typesSchema renders the resolved value types: one type becomes a direct
// reference or datatype schema; an intersection of types becomes an allOf
// conjunction.
func typesSchema(types []quad.Value) *jsonschema.Schema {
	switch len(types) {
	case 0:
		return nil
	case 1:
		return typeRef(types[0])
	}
	all := make([]*jsonschema.Schema, 0, len(types))
	for _, t := range types {
		all = append(all, typeRef(t))
	}
	return &jsonschema.Schema{AllOf: all}
}

// typeRef renders a single filler: XSD datatypes map to their JSON type,
// anything else references the class definition.
func typeRef(v quad.Value) *jsonschema.Schema {
	if iri, ok := v.(quad.IRI); ok {
		if s := jsonschema.ForXSD(iri); s != nil {
			return s
		}
		return jsonschema.Ref(owl.LocalName(iri))
	}
	return &jsonschema.Schema{}
}

// constValue renders a hasValue filler as a JSON constant: IRIs keep their
// full form, literals their native value.
func constValue(v quad.Value) interface{} {
	switch v := v.(type) {
	case quad.IRI:
		return string(v)
	case quad.BNode:
		return string(v)
	default:
		return quad.NativeOf(v)
	}
}
