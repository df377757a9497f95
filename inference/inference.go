// Package inference implements an in-memory store for schema-level inference
// over RDFS/OWL declarations, used as an optional pre-pass that materializes
// entailed triples before the ontology model is parsed.
//
// RDFS rules:
// 2.  (p rdfs:domain c), (x p y) -> (x rdf:type c)
// 3.  (p rdfs:range c), (x p y) -> (y rdf:type c)
// 5.  (p rdfs:subPropertyOf q), (q rdfs:subPropertyOf r) -> (p rdfs:subPropertyOf r)
// 9.  (c rdfs:subClassOf d), (x rdf:type c) -> (x rdf:type d)
// 11. (c rdfs:subClassOf d), (d rdfs:subClassOf e) -> (c rdfs:subClassOf e)
// Implemented here: 2 3 5 9 11
package inference

import (
	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/voc/rdf"
	"github.com/cayleygraph/quad/voc/rdfs"

	owlvoc "github.com/ontojson/ontojson/voc/owl"
)

var (
	rdfType           = quad.IRI(rdf.Type).Full()
	rdfsSubClassOf    = quad.IRI(rdfs.SubClassOf).Full()
	rdfsSubPropertyOf = quad.IRI(rdfs.SubPropertyOf).Full()
	rdfsDomain        = quad.IRI(rdfs.Domain).Full()
	rdfsRange         = quad.IRI(rdfs.Range).Full()
)

// node tracks one class or property with its direct super links, in first
// declaration order so closures come out deterministic.
type node struct {
	name  quad.Value
	super []quad.Value
}

func (n *node) addSuper(v quad.Value) {
	for _, s := range n.super {
		if s == v {
			return
		}
	}
	n.super = append(n.super, v)
}

// Store accumulates schema statements fed through ProcessQuad.
type Store struct {
	classes   map[quad.Value]*node
	classList []quad.Value

	properties map[quad.Value]*node
	propList   []quad.Value

	domains map[quad.Value][]quad.Value
	ranges  map[quad.Value][]quad.Value
}

// NewStore creates an empty inference store.
func NewStore() *Store {
	return &Store{
		classes:    make(map[quad.Value]*node),
		properties: make(map[quad.Value]*node),
		domains:    make(map[quad.Value][]quad.Value),
		ranges:     make(map[quad.Value][]quad.Value),
	}
}

func (s *Store) class(v quad.Value) *node {
	if n, ok := s.classes[v]; ok {
		return n
	}
	n := &node{name: v}
	s.classes[v] = n
	s.classList = append(s.classList, v)
	return n
}

func (s *Store) property(v quad.Value) *node {
	if n, ok := s.properties[v]; ok {
		return n
	}
	n := &node{name: v}
	s.properties[v] = n
	s.propList = append(s.propList, v)
	return n
}

// ProcessQuad updates the store with one schema statement. Instance-level
// statements are ignored here and only consulted during Materialize.
func (s *Store) ProcessQuad(q quad.Quad) {
	pred, ok := q.Predicate.(quad.IRI)
	if !ok {
		return
	}
	switch pred.Full() {
	case rdfsSubClassOf:
		s.class(subjectKey(q.Subject)).addSuper(subjectKey(q.Object))
		s.class(subjectKey(q.Object))
	case rdfsSubPropertyOf:
		s.property(subjectKey(q.Subject)).addSuper(subjectKey(q.Object))
		s.property(subjectKey(q.Object))
	case rdfsDomain:
		p := subjectKey(q.Subject)
		s.property(p)
		s.domains[p] = append(s.domains[p], subjectKey(q.Object))
	case rdfsRange:
		p := subjectKey(q.Subject)
		s.property(p)
		s.ranges[p] = append(s.ranges[p], subjectKey(q.Object))
	case rdfType:
		obj, ok := q.Object.(quad.IRI)
		if !ok {
			return
		}
		switch string(obj.Full()) {
		case rdfs.NS + "Class", owlvoc.Class:
			s.class(subjectKey(q.Subject))
		case rdf.NS + "Property", owlvoc.ObjectProperty, owlvoc.DatatypeProperty:
			s.property(subjectKey(q.Subject))
		}
	}
}

// ProcessQuads updates the store with multiple statements.
func (s *Store) ProcessQuads(quads []quad.Quad) {
	for _, q := range quads {
		s.ProcessQuad(q)
	}
}

// Supers returns the transitive super closure of v within the given node set,
// excluding v itself, in deterministic discovery order.
func supers(nodes map[quad.Value]*node, v quad.Value) []quad.Value {
	var out []quad.Value
	seen := map[quad.Value]bool{v: true}
	stack := []quad.Value{v}
	for len(stack) != 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := nodes[cur]
		if n == nil {
			continue
		}
		for _, sup := range n.super {
			if seen[sup] {
				continue
			}
			seen[sup] = true
			out = append(out, sup)
			stack = append(stack, sup)
		}
	}
	return out
}

// SuperClasses returns every transitive superclass of the given class.
func (s *Store) SuperClasses(class quad.Value) []quad.Value {
	return supers(s.classes, subjectKey(class))
}

// SuperProperties returns every transitive superproperty of the property.
func (s *Store) SuperProperties(prop quad.Value) []quad.Value {
	return supers(s.properties, subjectKey(prop))
}

// Materialize returns the input quads followed by every entailed statement
// not already present: transitive subclass and subproperty links, and
// rdf:type statements derived from domains, ranges and the class hierarchy.
// The result is deterministic for a fixed input order.
func Materialize(quads []quad.Quad) []quad.Quad {
	s := NewStore()
	s.ProcessQuads(quads)

	out := make([]quad.Quad, len(quads), len(quads)+16)
	copy(out, quads)
	have := make(map[[3]quad.Value]bool, len(quads))
	for _, q := range quads {
		have[key(q)] = true
	}
	add := func(q quad.Quad) {
		k := key(q)
		if !have[k] {
			have[k] = true
			out = append(out, q)
		}
	}

	for _, c := range s.classList {
		for _, sup := range supers(s.classes, c) {
			add(quad.Quad{Subject: c, Predicate: rdfsSubClassOf, Object: sup})
		}
	}
	for _, p := range s.propList {
		for _, sup := range supers(s.properties, p) {
			add(quad.Quad{Subject: p, Predicate: rdfsSubPropertyOf, Object: sup})
		}
	}

	// domain/range typing of instance data, then closure over the hierarchy
	for _, q := range quads {
		pred, ok := q.Predicate.(quad.IRI)
		if !ok {
			continue
		}
		p := subjectKey(pred)
		for _, d := range s.domains[p] {
			add(quad.Quad{Subject: q.Subject, Predicate: rdfType, Object: d})
			for _, sup := range supers(s.classes, d) {
				add(quad.Quad{Subject: q.Subject, Predicate: rdfType, Object: sup})
			}
		}
		for _, r := range s.ranges[p] {
			if _, isIRI := q.Object.(quad.IRI); !isIRI {
				continue
			}
			add(quad.Quad{Subject: q.Object, Predicate: rdfType, Object: r})
			for _, sup := range supers(s.classes, r) {
				add(quad.Quad{Subject: q.Object, Predicate: rdfType, Object: sup})
			}
		}
	}
	return out
}

func key(q quad.Quad) [3]quad.Value {
	return [3]quad.Value{subjectKey(q.Subject), subjectKey(q.Predicate), subjectKey(q.Object)}
}

func subjectKey(v quad.Value) quad.Value {
	if iri, ok := v.(quad.IRI); ok {
		return iri.Full()
	}
	return v
}
