package parser

import (
	"github.com/cayleygraph/quad"
)

// graph is a subject-indexed view over a quad slice. Quads keep their stream
// order inside each bucket, and subjects keep their order of first
// appearance, which is what fixes the model's declaration order.
type graph struct {
	bySubject map[quad.Value][]quad.Quad
	subjects  []quad.Value
}

func newGraph(quads []quad.Quad) *graph {
	g := &graph{bySubject: make(map[quad.Value][]quad.Quad, len(quads))}
	for _, q := range quads {
		q = normalize(q)
		if _, ok := g.bySubject[q.Subject]; !ok {
			g.subjects = append(g.subjects, q.Subject)
		}
		g.bySubject[q.Subject] = append(g.bySubject[q.Subject], q)
	}
	return g
}

// normalize expands prefixed IRIs so that lookups against full-IRI vocabulary
// constants work regardless of the notation used by the source document.
func normalize(q quad.Quad) quad.Quad {
	if iri, ok := q.Subject.(quad.IRI); ok {
		q.Subject = iri.Full()
	}
	if iri, ok := q.Predicate.(quad.IRI); ok {
		q.Predicate = iri.Full()
	}
	if iri, ok := q.Object.(quad.IRI); ok {
		q.Object = iri.Full()
	}
	return q
}

// objects returns all objects of (subj, pred, ?) in stream order.
func (g *graph) objects(subj quad.Value, pred quad.IRI) []quad.Value {
	var out []quad.Value
	for _, q := range g.bySubject[subj] {
		if q.Predicate == pred {
			out = append(out, q.Object)
		}
	}
	return out
}

// first returns the first object of (subj, pred, ?), if any.
func (g *graph) first(subj quad.Value, pred quad.IRI) (quad.Value, bool) {
	for _, q := range g.bySubject[subj] {
		if q.Predicate == pred {
			return q.Object, true
		}
	}
	return nil, false
}

// hasType reports whether (subj, rdf:type, typ) is present.
func (g *graph) hasType(subj quad.Value, typ quad.IRI) bool {
	for _, q := range g.bySubject[subj] {
		if q.Predicate == rdfType && q.Object == quad.Value(typ) {
			return true
		}
	}
	return false
}

// subjectsOfType returns, in order of first appearance, every subject typed
// as typ.
func (g *graph) subjectsOfType(typ quad.IRI) []quad.Value {
	var out []quad.Value
	for _, s := range g.subjects {
		if g.hasType(s, typ) {
			out = append(out, s)
		}
	}
	return out
}

// list walks an RDF collection from its head node. Malformed or cyclic lists
// terminate at the first repeated node.
func (g *graph) list(head quad.Value) []quad.Value {
	var out []quad.Value
	seen := make(map[quad.Value]bool)
	for head != nil && head != quad.Value(rdfNil) {
		if seen[head] {
			break
		}
		seen[head] = true
		v, ok := g.first(head, rdfFirst)
		if !ok {
			break
		}
		out = append(out, v)
		rest, ok := g.first(head, rdfRest)
		if !ok {
			break
		}
		head = rest
	}
	return out
}
