// Package parser builds an owl.Model from a stream of RDF quads. It is the
// glue between serialized ontology documents and the transformation engine,
// which never reads ontology syntax itself.
package parser

import (
	"fmt"
	"strconv"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/voc/rdf"
	"github.com/cayleygraph/quad/voc/rdfs"

	"github.com/ontojson/ontojson/clog"
	"github.com/ontojson/ontojson/owl"
	owlvoc "github.com/ontojson/ontojson/voc/owl"
)

var (
	rdfType  = quad.IRI(rdf.Type).Full()
	rdfFirst = quad.IRI(rdf.First).Full()
	rdfRest  = quad.IRI(rdf.Rest).Full()
	rdfNil   = quad.IRI(rdf.Nil).Full()

	rdfsLabel         = quad.IRI(rdfs.Label).Full()
	rdfsComment       = quad.IRI(rdfs.Comment).Full()
	rdfsSubClassOf    = quad.IRI(rdfs.SubClassOf).Full()
	rdfsSubPropertyOf = quad.IRI(rdfs.SubPropertyOf).Full()
	rdfsDomain        = quad.IRI(rdfs.Domain).Full()
	rdfsRange         = quad.IRI(rdfs.Range).Full()
)

// predicates folded into dedicated model fields; everything else on a known
// subject becomes a generic annotation.
var knownPredicates = map[quad.IRI]bool{
	rdfType:  true,
	rdfFirst: true,
	rdfRest:  true,

	rdfsLabel:         true,
	rdfsComment:       true,
	rdfsSubClassOf:    true,
	rdfsSubPropertyOf: true,
	rdfsDomain:        true,
	rdfsRange:         true,

	quad.IRI(owlvoc.OnProperty):              true,
	quad.IRI(owlvoc.OnClass):                 true,
	quad.IRI(owlvoc.SomeValuesFrom):          true,
	quad.IRI(owlvoc.AllValuesFrom):           true,
	quad.IRI(owlvoc.HasValue):                true,
	quad.IRI(owlvoc.Cardinality):             true,
	quad.IRI(owlvoc.MinCardinality):          true,
	quad.IRI(owlvoc.MaxCardinality):          true,
	quad.IRI(owlvoc.QualifiedCardinality):    true,
	quad.IRI(owlvoc.MinQualifiedCardinality): true,
	quad.IRI(owlvoc.MaxQualifiedCardinality): true,
	quad.IRI(owlvoc.IntersectionOf):          true,
	quad.IRI(owlvoc.UnionOf):                 true,
	quad.IRI(owlvoc.ComplementOf):            true,
	quad.IRI(owlvoc.OneOf):                   true,
	quad.IRI(owlvoc.EquivalentClass):         true,
	quad.IRI(owlvoc.DisjointWith):            true,
	quad.IRI(owlvoc.InverseOf):               true,
	quad.IRI(owlvoc.Imports):                 true,
	quad.IRI(owlvoc.VersionInfo):             true,
}

// Parse indexes the given quads and assembles the ontology model. Declaration
// order of classes, properties and individuals follows the first appearance
// of the subject in the quad stream, which keeps repeated runs on the same
// document deterministic.
func Parse(quads []quad.Quad) *owl.Model {
	g := newGraph(quads)
	p := &builder{
		g:     g,
		exprs: make(map[quad.Value]owl.ExprID),
	}
	p.model = owl.NewModel(p.ontologyIRI())

	p.parseClasses()
	p.parseObjectProperties()
	p.parseDatatypeProperties()
	p.parseIndividuals()
	p.parseOntologyMetadata()
	return p.model
}

type builder struct {
	g     *graph
	model *owl.Model
	exprs map[quad.Value]owl.ExprID
}

func (p *builder) ontologyIRI() quad.IRI {
	for _, s := range p.g.subjectsOfType(quad.IRI(owlvoc.Ontology)) {
		if iri, ok := s.(quad.IRI); ok {
			return iri
		}
	}
	return ""
}

func (p *builder) parseClasses() {
	for _, s := range p.g.subjectsOfType(quad.IRI(owlvoc.Class)) {
		iri, ok := s.(quad.IRI)
		if !ok {
			continue // anonymous class expressions are reached through their owners
		}
		c := p.model.AddClass(iri)
		p.parseText(iri, rdfsLabel, c.Label)
		p.parseText(iri, rdfsComment, c.Comment)

		for _, o := range p.g.objects(iri, rdfsSubClassOf) {
			switch o := o.(type) {
			case quad.IRI:
				c.SuperClasses = append(c.SuperClasses, owl.NamedRef(o))
			case quad.BNode:
				p.attachExpr(c, o)
			}
		}
		for _, o := range p.g.objects(iri, quad.IRI(owlvoc.EquivalentClass)) {
			switch o := o.(type) {
			case quad.IRI:
				c.EquivalentClasses = append(c.EquivalentClasses, o)
			case quad.BNode:
				if vals := p.g.objects(o, quad.IRI(owlvoc.OneOf)); len(vals) != 0 {
					c.OneOf = append(c.OneOf, p.g.list(vals[0])...)
					continue
				}
				if ref, ok := p.parseExpr(o); ok && !ref.IsNamed() {
					if _, isComb := p.model.Expr(ref.Expr).(*owl.Combinator); isComb {
						c.Definition = ref.Expr
					}
				}
			}
		}
		for _, o := range p.g.objects(iri, quad.IRI(owlvoc.DisjointWith)) {
			if dis, ok := o.(quad.IRI); ok {
				c.DisjointWith = append(c.DisjointWith, dis)
			}
		}
		c.Annotations = p.annotations(iri)
	}
}

// attachExpr parses a blank superclass node and attaches it to the class:
// restrictions and combinators become restriction attachments reachable by
// the extractor, enumerations fill OneOf.
func (p *builder) attachExpr(c *owl.Class, node quad.BNode) {
	if vals := p.g.objects(node, quad.IRI(owlvoc.OneOf)); len(vals) != 0 {
		c.OneOf = append(c.OneOf, p.g.list(vals[0])...)
		return
	}
	ref, ok := p.parseExpr(node)
	if !ok {
		return
	}
	if ref.IsNamed() {
		c.SuperClasses = append(c.SuperClasses, ref)
		return
	}
	switch p.model.Expr(ref.Expr).(type) {
	case *owl.Restriction:
		c.Restrictions = append(c.Restrictions, ref.Expr)
	case *owl.Combinator:
		c.SuperClasses = append(c.SuperClasses, ref)
	}
}

// parseExpr resolves a class-expression node to a ClassRef. Blank nodes are
// memoized so expressions shared by reference stay shared in the arena.
func (p *builder) parseExpr(node quad.Value) (owl.ClassRef, bool) {
	if iri, ok := node.(quad.IRI); ok {
		return owl.NamedRef(iri), true
	}
	if id, ok := p.exprs[node]; ok {
		return owl.ExprRef(id), true
	}
	if p.g.hasType(node, quad.IRI(owlvoc.Restriction)) {
		r := p.parseRestriction(node)
		if r == nil {
			return owl.ClassRef{}, false
		}
		id := p.model.AddExpr(r)
		p.exprs[node] = id
		return owl.ExprRef(id), true
	}
	for _, k := range []struct {
		pred quad.IRI
		kind owl.CombinatorKind
	}{
		{quad.IRI(owlvoc.IntersectionOf), owl.Intersection},
		{quad.IRI(owlvoc.UnionOf), owl.Union},
		{quad.IRI(owlvoc.ComplementOf), owl.Complement},
	} {
		vals := p.g.objects(node, k.pred)
		if len(vals) == 0 {
			continue
		}
		comb := &owl.Combinator{Kind: k.kind}
		// reserve the arena slot before descending so cyclic references
		// resolve to this node instead of recursing forever
		id := p.model.AddExpr(comb)
		p.exprs[node] = id
		var members []quad.Value
		if k.kind == owl.Complement {
			members = vals[:1]
		} else {
			members = p.g.list(vals[0])
		}
		for _, m := range members {
			if ref, ok := p.parseExpr(m); ok {
				comb.Members = append(comb.Members, ref)
			}
		}
		return owl.ExprRef(id), true
	}
	clog.Warningf("skipping unrecognized class expression %v", node)
	return owl.ClassRef{}, false
}

// malformed records a dropped restriction node on the model; the resolver
// surfaces these as warnings at transformation time.
func (p *builder) malformed(node quad.Value, prop quad.IRI, detail string) *owl.Restriction {
	p.model.Malformed = append(p.model.Malformed, owl.MalformedRestriction{
		Node:     owl.LocalName(node),
		Property: prop,
		Detail:   detail,
	})
	return nil
}

func (p *builder) parseRestriction(node quad.Value) *owl.Restriction {
	prop, ok := p.g.first(node, quad.IRI(owlvoc.OnProperty))
	if !ok {
		return p.malformed(node, "", "missing owl:onProperty")
	}
	propIRI, ok := prop.(quad.IRI)
	if !ok {
		return p.malformed(node, "", "owl:onProperty is not an IRI")
	}
	r := &owl.Restriction{OnProperty: propIRI}

	if v, ok := p.g.first(node, quad.IRI(owlvoc.SomeValuesFrom)); ok {
		r.Kind, r.Filler = owl.SomeValuesFrom, v
		return r
	}
	if v, ok := p.g.first(node, quad.IRI(owlvoc.AllValuesFrom)); ok {
		r.Kind, r.Filler = owl.AllValuesFrom, v
		return r
	}
	if v, ok := p.g.first(node, quad.IRI(owlvoc.HasValue)); ok {
		r.Kind, r.Filler = owl.HasValue, v
		return r
	}
	for _, k := range []struct {
		pred quad.IRI
		kind owl.RestrictionKind
	}{
		{quad.IRI(owlvoc.MinCardinality), owl.MinCardinality},
		{quad.IRI(owlvoc.MaxCardinality), owl.MaxCardinality},
		{quad.IRI(owlvoc.Cardinality), owl.ExactCardinality},
		{quad.IRI(owlvoc.MinQualifiedCardinality), owl.MinQualifiedCardinality},
		{quad.IRI(owlvoc.MaxQualifiedCardinality), owl.MaxQualifiedCardinality},
		{quad.IRI(owlvoc.QualifiedCardinality), owl.ExactQualifiedCardinality},
	} {
		v, ok := p.g.first(node, k.pred)
		if !ok {
			continue
		}
		n, ok := cardinalityOf(v)
		if !ok {
			return p.malformed(node, propIRI, fmt.Sprintf("%v is not a non-negative integer", v))
		}
		r.Kind, r.Cardinality = k.kind, n
		if k.kind.IsQualified() {
			if on, ok := p.g.first(node, quad.IRI(owlvoc.OnClass)); ok {
				if onIRI, ok := on.(quad.IRI); ok {
					r.OnClass = onIRI
					r.Filler = onIRI
				}
			}
		}
		return r
	}
	return p.malformed(node, propIRI, "no restriction body")
}

func (p *builder) parseObjectProperties() {
	for _, s := range p.g.subjectsOfType(quad.IRI(owlvoc.ObjectProperty)) {
		iri, ok := s.(quad.IRI)
		if !ok {
			continue
		}
		op := p.model.AddObjectProperty(iri)
		p.parsePropertyBase(&op.Property)

		op.InverseFunctional = p.g.hasType(iri, quad.IRI(owlvoc.InverseFunctionalProperty))
		op.Transitive = p.g.hasType(iri, quad.IRI(owlvoc.TransitiveProperty))
		op.Symmetric = p.g.hasType(iri, quad.IRI(owlvoc.SymmetricProperty))
		op.Asymmetric = p.g.hasType(iri, quad.IRI(owlvoc.AsymmetricProperty))
		op.Reflexive = p.g.hasType(iri, quad.IRI(owlvoc.ReflexiveProperty))
		op.Irreflexive = p.g.hasType(iri, quad.IRI(owlvoc.IrreflexiveProperty))
		if v, ok := p.g.first(iri, quad.IRI(owlvoc.InverseOf)); ok {
			if inv, ok := v.(quad.IRI); ok {
				op.InverseOf = inv
			}
		}
	}
	// inverse declarations are often stated on one side only
	for _, op := range p.model.ObjectProperties {
		if op.InverseOf == "" {
			continue
		}
		if inv := p.model.ObjectPropertyByIRI(op.InverseOf); inv != nil && inv.InverseOf == "" {
			inv.InverseOf = op.IRI
		}
	}
}

func (p *builder) parseDatatypeProperties() {
	for _, s := range p.g.subjectsOfType(quad.IRI(owlvoc.DatatypeProperty)) {
		iri, ok := s.(quad.IRI)
		if !ok {
			continue
		}
		dp := p.model.AddDatatypeProperty(iri)
		p.parsePropertyBase(&dp.Property)
	}
}

func (p *builder) parsePropertyBase(prop *owl.Property) {
	iri := prop.IRI
	p.parseText(iri, rdfsLabel, prop.Label)
	p.parseText(iri, rdfsComment, prop.Comment)
	for _, o := range p.g.objects(iri, rdfsDomain) {
		if d, ok := o.(quad.IRI); ok {
			prop.Domain = append(prop.Domain, d)
		}
	}
	for _, o := range p.g.objects(iri, rdfsRange) {
		if r, ok := o.(quad.IRI); ok {
			prop.Range = append(prop.Range, r)
		}
	}
	for _, o := range p.g.objects(iri, rdfsSubPropertyOf) {
		if sp, ok := o.(quad.IRI); ok {
			prop.SuperProperties = append(prop.SuperProperties, sp)
		}
	}
	prop.Functional = p.g.hasType(iri, quad.IRI(owlvoc.FunctionalProperty))
	prop.Annotations = p.annotations(iri)
}

func (p *builder) parseIndividuals() {
	for _, s := range p.g.subjectsOfType(quad.IRI(owlvoc.NamedIndividual)) {
		iri, ok := s.(quad.IRI)
		if !ok {
			continue
		}
		ind := p.model.AddIndividual(iri)
		p.parseText(iri, rdfsLabel, ind.Label)
		for _, o := range p.g.objects(iri, rdfType) {
			if t, ok := o.(quad.IRI); ok && t != quad.IRI(owlvoc.NamedIndividual) {
				ind.Types = append(ind.Types, t)
			}
		}
		for _, q := range p.g.bySubject[iri] {
			pred, ok := q.Predicate.(quad.IRI)
			if !ok || pred == rdfType || pred == rdfsLabel || pred == rdfsComment {
				continue
			}
			ind.Values = append(ind.Values, owl.PropertyValue{Property: pred, Value: q.Object})
		}
	}
}

func (p *builder) parseOntologyMetadata() {
	iri := p.model.IRI
	if iri == "" {
		return
	}
	if v, ok := p.g.first(iri, quad.IRI(owlvoc.VersionInfo)); ok {
		p.model.VersionInfo = textOf(v)
	}
	for _, o := range p.g.objects(iri, quad.IRI(owlvoc.Imports)) {
		if imp, ok := o.(quad.IRI); ok {
			p.model.Imports = append(p.model.Imports, imp)
		}
	}
	// the ontology node has no dedicated label/comment fields, so those
	// stay visible as annotations for the document header
	for _, pred := range []quad.IRI{rdfsLabel, rdfsComment} {
		for _, o := range p.g.objects(iri, pred) {
			p.model.Annotations = append(p.model.Annotations, owl.Annotation{Property: pred, Value: o})
		}
	}
	p.model.Annotations = append(p.model.Annotations, p.annotations(iri)...)
}

func (p *builder) parseText(subj quad.Value, pred quad.IRI, into owl.Text) {
	for _, o := range p.g.objects(subj, pred) {
		switch o := o.(type) {
		case quad.LangString:
			into.Set(o.Lang, string(o.Value))
		case quad.String:
			into.Set("", string(o))
		case quad.TypedString:
			into.Set("", string(o.Value))
		}
	}
}

func (p *builder) annotations(subj quad.Value) []owl.Annotation {
	var out []owl.Annotation
	for _, q := range p.g.bySubject[subj] {
		pred, ok := q.Predicate.(quad.IRI)
		if !ok || knownPredicates[pred] {
			continue
		}
		out = append(out, owl.Annotation{Property: pred, Value: q.Object})
	}
	return out
}

func textOf(v quad.Value) string {
	switch v := v.(type) {
	case quad.String:
		return string(v)
	case quad.LangString:
		return string(v.Value)
	case quad.TypedString:
		return string(v.Value)
	case quad.IRI:
		return string(v)
	}
	return quad.StringOf(v)
}

func cardinalityOf(v quad.Value) (uint, bool) {
	switch v := v.(type) {
	case quad.Int:
		if v < 0 {
			return 0, false
		}
		return uint(v), true
	case quad.TypedString:
		if n, err := v.ParseValue(); err == nil {
			if i, ok := n.(quad.Int); ok {
				if i < 0 {
					return 0, false
				}
				return uint(i), true
			}
		}
		if n, err := strconv.ParseUint(string(v.Value), 10, 32); err == nil {
			return uint(n), true
		}
	case quad.String:
		if n, err := strconv.ParseUint(string(v), 10, 32); err == nil {
			return uint(n), true
		}
	}
	return 0, false
}
