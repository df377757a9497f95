package transform

import (
	"github.com/cayleygraph/quad"

	"github.com/ontojson/ontojson/jsonschema"
	"github.com/ontojson/ontojson/owl"
)

// globalClass collects properties with no resolvable domain when the
// object property rule is configured to keep them.
const globalClass = "_global"

// objectPropertyRule assigns each object property to its domain classes as
// a reference-valued property. Values validate either as the full target
// object or as an @id link, the usual shape of linked data payloads.
// Domain, range and functionality fall back to the property's inverse when
// not declared directly.
type objectPropertyRule struct{}

func (*objectPropertyRule) ID() string                 { return RuleObjectProperty }
func (*objectPropertyRule) Handles(k ElementKind) bool { return k == KindObjectProperty }

func (r *objectPropertyRule) Apply(ctx *Context, el Element) []jsonschema.Fragment {
	p := el.ObjectProperty
	inverse := inverseOf(ctx.Model, p)

	domains := p.Domain
	if len(domains) == 0 && inverse != nil {
		domains = inverse.Range
	}

	var rangeIRI quad.IRI
	switch {
	case len(p.Range) != 0:
		rangeIRI = p.Range[0]
	case inverse != nil && len(inverse.Domain) != 0:
		rangeIRI = inverse.Domain[0]
	case inverse != nil:
		rangeIRI = domainFromUsage(ctx.Model, inverse.IRI)
	}

	var target *jsonschema.Schema
	if rangeIRI != "" && ctx.Model.ClassByIRI(rangeIRI) != nil {
		target = jsonschema.Ref(owl.LocalName(rangeIRI))
	} else {
		target = &jsonschema.Schema{Type: "object"}
	}
	s := &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{target, idReference()},
	}
	s.Title = ctx.Text(p.Label)
	s.Description = ctx.Text(p.Comment)

	functional := p.Functional || (inverse != nil && inverse.InverseFunctional)
	if !functional {
		// Without a functional declaration the multiplicity is 0..*.
		s = &jsonschema.Schema{Type: "array", Items: s}
	}

	return domainFragments(domains, owl.LocalName(p.IRI), s,
		ctx.Config.Rules.ObjectProperty.IncludeGlobalProperties)
}

// idReference is the @id link alternative of an object property value.
func idReference() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"@id": {Type: "string", Format: "uri"},
		},
		Required:             []string{"@id"},
		AdditionalProperties: jsonschema.Bool(false),
	}
}

func inverseOf(m *owl.Model, p *owl.ObjectProperty) *owl.ObjectProperty {
	if p.InverseOf == "" {
		return nil
	}
	return m.ObjectPropertyByIRI(p.InverseOf)
}

// domainFromUsage infers a property's domain from the classes whose
// restrictions mention it, first declaration wins.
func domainFromUsage(m *owl.Model, prop quad.IRI) quad.IRI {
	for _, c := range m.Classes {
		for _, id := range c.Restrictions {
			if rst, ok := m.Expr(id).(*owl.Restriction); ok && rst.OnProperty == prop {
				return c.IRI
			}
		}
	}
	return ""
}

func domainFragments(domains []quad.IRI, name string, s *jsonschema.Schema, includeGlobal bool) []jsonschema.Fragment {
	if len(domains) == 0 {
		if !includeGlobal {
			return nil
		}
		return []jsonschema.Fragment{{Class: globalClass, Property: name, Schema: s}}
	}
	frags := make([]jsonschema.Fragment, 0, len(domains))
	for _, d := range domains {
		frags = append(frags, jsonschema.Fragment{
			Class:    owl.LocalName(d),
			Property: name,
			Schema:   s,
		})
	}
	return frags
}

// datatypePropertyRule assigns each datatype property to its domain
// classes, mapping the declared XSD range to the matching JSON type and
// format. Properties without a functional declaration become arrays.
type datatypePropertyRule struct{}

func (*datatypePropertyRule) ID() string                 { return RuleDatatypeProperty }
func (*datatypePropertyRule) Handles(k ElementKind) bool { return k == KindDatatypeProperty }

func (r *datatypePropertyRule) Apply(ctx *Context, el Element) []jsonschema.Fragment {
	p := el.DatatypeProperty

	var s *jsonschema.Schema
	if len(p.Range) != 0 {
		s = jsonschema.ForXSD(p.Range[0])
	}
	if s == nil {
		s = jsonschema.DefaultDatatype()
	}
	s.Title = ctx.Text(p.Label)
	s.Description = ctx.Text(p.Comment)

	if !p.Functional {
		s = &jsonschema.Schema{Type: "array", Items: s}
	}
	return domainFragments(p.Domain, owl.LocalName(p.IRI), s, false)
}
