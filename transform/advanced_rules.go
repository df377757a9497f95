package transform

import (
	"strings"

	"github.com/cayleygraph/quad"

	"github.com/ontojson/ontojson/jsonschema"
	"github.com/ontojson/ontojson/owl"
)

// enumerationToEnumRule turns owl:oneOf classes into enum schemas. Members
// render as their label when the rule is configured to use labels and the
// member is a known individual, otherwise as the IRI local name.
type enumerationToEnumRule struct{}

func (*enumerationToEnumRule) ID() string                 { return RuleEnumerationToEnum }
func (*enumerationToEnumRule) Handles(k ElementKind) bool { return classKinds.Handles(k) }

func (*enumerationToEnumRule) Apply(ctx *Context, el Element) []jsonschema.Fragment {
	c := el.Class
	if len(c.OneOf) == 0 {
		return nil
	}
	useLabels := ctx.Config.Rules.EnumerationToEnum.UseLabels
	values := make([]interface{}, 0, len(c.OneOf))
	for _, member := range c.OneOf {
		values = append(values, enumValue(ctx, member, useLabels))
	}
	return []jsonschema.Fragment{{
		Class:  owl.LocalName(c.IRI),
		Schema: &jsonschema.Schema{Type: "string", Enum: values},
	}}
}

func enumValue(ctx *Context, member quad.Value, useLabels bool) interface{} {
	if iri, ok := member.(quad.IRI); ok {
		if useLabels {
			if ind := ctx.Model.IndividualByIRI(iri); ind != nil {
				if label := ctx.Text(ind.Label); label != "" {
					return label
				}
			}
		}
		return owl.LocalName(iri)
	}
	return quad.NativeOf(member)
}

// unionToAnyOfRule renders a class declared equivalent to a unionOf as an
// anyOf over its member schemas.
type unionToAnyOfRule struct{}

func (*unionToAnyOfRule) ID() string                 { return RuleUnionToAnyOf }
func (*unionToAnyOfRule) Handles(k ElementKind) bool { return classKinds.Handles(k) }

func (*unionToAnyOfRule) Apply(ctx *Context, el Element) []jsonschema.Fragment {
	return combinatorFragment(ctx, el.Class, owl.Union)
}

// intersectionToAllOfRule renders a class declared equivalent to an
// intersectionOf as an allOf over its member schemas.
type intersectionToAllOfRule struct{}

func (*intersectionToAllOfRule) ID() string                 { return RuleIntersectionToAllOf }
func (*intersectionToAllOfRule) Handles(k ElementKind) bool { return classKinds.Handles(k) }

func (*intersectionToAllOfRule) Apply(ctx *Context, el Element) []jsonschema.Fragment {
	return combinatorFragment(ctx, el.Class, owl.Intersection)
}

// complementToNotRule renders a class declared equivalent to a
// complementOf as a not over its member schema.
type complementToNotRule struct{}

func (*complementToNotRule) ID() string                 { return RuleComplementToNot }
func (*complementToNotRule) Handles(k ElementKind) bool { return classKinds.Handles(k) }

func (*complementToNotRule) Apply(ctx *Context, el Element) []jsonschema.Fragment {
	return combinatorFragment(ctx, el.Class, owl.Complement)
}

// equivalentClassesRule links named-equivalent classes through a shared
// group definition: every member of an equivalence group gains an allOf
// reference to the group, so instances of any member validate against the
// same shared schema. Runs once over the whole ontology since equivalence
// is symmetric and groups span class declarations.
type equivalentClassesRule struct{}

func (*equivalentClassesRule) ID() string                 { return RuleEquivalentClasses }
func (*equivalentClassesRule) Handles(k ElementKind) bool { return k == KindOntology }

func (*equivalentClassesRule) Apply(ctx *Context, el Element) []jsonschema.Fragment {
	var frags []jsonschema.Fragment
	processed := map[string]bool{}
	for _, c := range el.Ontology.Classes {
		if len(c.EquivalentClasses) == 0 {
			continue
		}
		anchor := owl.LocalName(c.IRI)
		if processed[anchor] {
			continue
		}
		group := []string{anchor}
		for _, equiv := range c.EquivalentClasses {
			if name := owl.LocalName(equiv); name != anchor && !processed[name] {
				group = append(group, name)
			}
		}
		if len(group) < 2 {
			continue
		}
		shared := "_shared_" + anchor
		frags = append(frags, jsonschema.Fragment{Class: shared, Schema: jsonschema.Object()})
		for _, name := range group {
			processed[name] = true
			frags = append(frags, jsonschema.Fragment{
				Class:  name,
				Schema: &jsonschema.Schema{AllOf: []*jsonschema.Schema{jsonschema.Ref(shared)}},
			})
		}
	}
	return frags
}

// disjointClassesRule surfaces owl:disjointWith assertions, which JSON
// Schema cannot enforce, as a $comment on the declaring class. Off by
// default.
type disjointClassesRule struct{}

func (*disjointClassesRule) ID() string                 { return RuleDisjointClasses }
func (*disjointClassesRule) Handles(k ElementKind) bool { return classKinds.Handles(k) }

func (*disjointClassesRule) Apply(ctx *Context, el Element) []jsonschema.Fragment {
	c := el.Class
	if len(c.DisjointWith) == 0 {
		return nil
	}
	names := make([]string, 0, len(c.DisjointWith))
	for _, d := range c.DisjointWith {
		names = append(names, owl.LocalName(d))
	}
	return []jsonschema.Fragment{{
		Class:  owl.LocalName(c.IRI),
		Schema: &jsonschema.Schema{Comment: "Disjoint with: " + strings.Join(names, ", ")},
	}}
}

func combinatorFragment(ctx *Context, c *owl.Class, kind owl.CombinatorKind) []jsonschema.Fragment {
	if c.Definition == owl.NoExpr {
		return nil
	}
	comb, ok := ctx.Model.Expr(c.Definition).(*owl.Combinator)
	if !ok || comb.Kind != kind {
		return nil
	}
	s := combinatorSchema(ctx.Model, comb, map[owl.ExprID]bool{c.Definition: true})
	if s == nil {
		return nil
	}
	return []jsonschema.Fragment{{Class: owl.LocalName(c.IRI), Schema: s}}
}

// combinatorSchema renders a combinator tree as nested anyOf/allOf/not
// composition. Named members become definition references; restriction
// members stay opaque at this level, their constraints already flow
// through the resolver. The seen set guards shared and cyclic subtrees.
func combinatorSchema(m *owl.Model, comb *owl.Combinator, seen map[owl.ExprID]bool) *jsonschema.Schema {
	members := make([]*jsonschema.Schema, 0, len(comb.Members))
	for _, ref := range comb.Members {
		if s := memberSchema(m, ref, seen); s != nil {
			members = append(members, s)
		}
	}
	if len(members) == 0 {
		return nil
	}
	switch comb.Kind {
	case owl.Union:
		return &jsonschema.Schema{AnyOf: members}
	case owl.Intersection:
		return &jsonschema.Schema{AllOf: members}
	case owl.Complement:
		return &jsonschema.Schema{Not: members[0]}
	}
	return nil
}

func memberSchema(m *owl.Model, ref owl.ClassRef, seen map[owl.ExprID]bool) *jsonschema.Schema {
	if ref.IsNamed() {
		return jsonschema.Ref(owl.LocalName(ref.IRI))
	}
	if seen[ref.Expr] {
		return nil
	}
	seen[ref.Expr] = true
	if sub, ok := m.Expr(ref.Expr).(*owl.Combinator); ok {
		return combinatorSchema(m, sub, seen)
	}
	return nil
}
