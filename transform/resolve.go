package transform

import (
	"fmt"

	"github.com/cayleygraph/quad"

	"github.com/ontojson/ontojson/clog"
	"github.com/ontojson/ontojson/jsonschema"
	"github.com/ontojson/ontojson/owl"
)

// PropertyConstraint is the normalized view of every restriction a class
// places on one property. It is derived per transformation run and never
// written back into the model.
type PropertyConstraint struct {
	Property quad.IRI
	Required bool
	// Types holds the resolved value types, narrowest first. Empty means
	// unresolved; more than one entry is an intersection of types the
	// builder renders as a conjunction.
	Types           []quad.Value
	HasValue        quad.Value
	Min             *uint
	Max             *uint
	QualifyingClass quad.IRI
}

// Bounded reports whether any cardinality bound was declared.
func (pc *PropertyConstraint) Bounded() bool {
	return pc.Min != nil || pc.Max != nil
}

type constraintKey struct {
	class    quad.IRI
	property quad.IRI
}

// Resolver merges the flat restriction facts of a (class, property) pair
// into one PropertyConstraint. Merging is monotonic and commutative, so
// results are independent of extraction order and safe to memoize for the
// lifetime of one transformation.
type Resolver struct {
	model     *owl.Model
	extractor *Extractor
	memo      map[constraintKey]*PropertyConstraint
	warnings  []Warning
}

// NewResolver returns a resolver with a fresh extractor and memo table.
// Restriction nodes the parser dropped as malformed surface here, so one
// warning channel covers the whole run.
func NewResolver(m *owl.Model) *Resolver {
	r := &Resolver{
		model:     m,
		extractor: NewExtractor(m),
		memo:      map[constraintKey]*PropertyConstraint{},
	}
	for _, mr := range m.Malformed {
		r.warn(Warning{
			Kind:     MalformedRestriction,
			Property: mr.Property,
			Detail:   fmt.Sprintf("node %s: %s", mr.Node, mr.Detail),
		})
	}
	return r
}

// Warnings returns the diagnostics accumulated so far, in emission order.
func (r *Resolver) Warnings() []Warning { return r.warnings }

func (r *Resolver) warn(w Warning) {
	clog.Warningf("%v", w)
	r.warnings = append(r.warnings, w)
}

// ResolveAll resolves every property the class restricts, in the order the
// properties first appear in the extracted facts.
func (r *Resolver) ResolveAll(c *owl.Class) []*PropertyConstraint {
	facts := r.extractor.Extract(c)
	var order []quad.IRI
	seen := map[quad.IRI]bool{}
	for _, f := range facts.Facts {
		if p := f.Restriction.OnProperty; !seen[p] {
			seen[p] = true
			order = append(order, p)
		}
	}
	out := make([]*PropertyConstraint, 0, len(order))
	for _, p := range order {
		out = append(out, r.Resolve(c, p))
	}
	return out
}

// Resolve returns the constraint for one (class, property) pair.
func (r *Resolver) Resolve(c *owl.Class, prop quad.IRI) *PropertyConstraint {
	k := constraintKey{class: c.IRI, property: prop}
	if pc, ok := r.memo[k]; ok {
		return pc
	}
	pc := r.resolve(c, prop)
	r.memo[k] = pc
	return pc
}

func (r *Resolver) resolve(c *owl.Class, prop quad.IRI) *PropertyConstraint {
	facts := r.extractor.Extract(c)
	pc := &PropertyConstraint{Property: prop}
	// union group -> set of branches that independently require prop
	unionReq := map[int]map[int]bool{}

	for _, f := range facts.Facts {
		rst := f.Restriction
		if rst.OnProperty != prop {
			continue
		}
		switch f.Context {
		case ContextComplement:
			// Recorded for exclusion handling only; a complement never
			// contributes a positive requirement or bound.
			continue
		case ContextUnion:
			if rst.Requires() {
				if unionReq[f.UnionGroup] == nil {
					unionReq[f.UnionGroup] = map[int]bool{}
				}
				unionReq[f.UnionGroup][f.UnionBranch] = true
			}
		default:
			if rst.Requires() {
				pc.Required = true
			}
		}
		r.applyBounds(pc, rst)
		r.applyType(c, pc, rst)
	}

	// A union forces presence only when all of its disjuncts do.
	for g, branches := range unionReq {
		if n := facts.UnionBranches[g]; n > 0 && len(branches) == n {
			pc.Required = true
		}
	}

	if pc.Min != nil && pc.Max != nil && *pc.Min > *pc.Max {
		r.warn(Warning{
			Kind:     ConflictingCardinality,
			Class:    c.IRI,
			Property: prop,
			Detail:   fmt.Sprintf("min %d exceeds max %d", *pc.Min, *pc.Max),
		})
		m := *pc.Min
		pc.Max = &m
	}
	return pc
}

// applyBounds folds one cardinality fact into the bounds: the lower bound
// is the maximum of declared minimums, the upper the minimum of declared
// maximums, and an exact cardinality contributes to both.
func (r *Resolver) applyBounds(pc *PropertyConstraint, rst *owl.Restriction) {
	if !rst.Kind.IsCardinality() {
		return
	}
	n := rst.Cardinality
	switch rst.Kind {
	case owl.MinCardinality, owl.MinQualifiedCardinality:
		setMin(pc, n)
	case owl.MaxCardinality, owl.MaxQualifiedCardinality:
		setMax(pc, n)
	case owl.ExactCardinality, owl.ExactQualifiedCardinality:
		setMin(pc, n)
		setMax(pc, n)
	}
	if rst.Kind.IsQualified() && rst.OnClass != "" && pc.QualifyingClass == "" {
		pc.QualifyingClass = rst.OnClass
	}
}

func setMin(pc *PropertyConstraint, n uint) {
	if pc.Min == nil || n > *pc.Min {
		pc.Min = &n
	}
}

func setMax(pc *PropertyConstraint, n uint) {
	if pc.Max == nil || n < *pc.Max {
		pc.Max = &n
	}
}

// applyType folds a fact's filler into the resolved value types. hasValue
// fillers become a constant instead; unqualified plain cardinality facts
// carry no filler and leave the type unresolved.
func (r *Resolver) applyType(c *owl.Class, pc *PropertyConstraint, rst *owl.Restriction) {
	if rst.Kind == owl.HasValue {
		if pc.HasValue == nil {
			pc.HasValue = rst.Filler
		}
		return
	}
	if rst.Filler == nil {
		return
	}
	switch rst.Kind {
	case owl.SomeValuesFrom, owl.AllValuesFrom,
		owl.MinQualifiedCardinality, owl.MaxQualifiedCardinality, owl.ExactQualifiedCardinality:
	default:
		return
	}
	filler := rst.Filler
	if iri, ok := filler.(quad.IRI); ok && !jsonschema.IsXSD(iri) {
		if r.model.ClassByIRI(iri) == nil {
			r.warn(Warning{
				Kind:     UnresolvedTypeReference,
				Class:    c.IRI,
				Property: pc.Property,
				Detail:   fmt.Sprintf("filler <%s> is not a class in this model", iri),
			})
			return
		}
	}
	r.addType(c, pc, filler)
}

// addType keeps the narrower of comparable fillers: a subclass replaces its
// ancestor, an ancestor of an existing entry is dropped. Incomparable
// fillers accumulate as an intersection of types, with a warning.
func (r *Resolver) addType(c *owl.Class, pc *PropertyConstraint, v quad.Value) {
	vIRI, vNamed := v.(quad.IRI)
	for i, t := range pc.Types {
		if t == v {
			return
		}
		tIRI, tNamed := t.(quad.IRI)
		if !vNamed || !tNamed {
			continue
		}
		if r.model.IsSubClassOf(vIRI, tIRI) {
			pc.Types[i] = v
			return
		}
		if r.model.IsSubClassOf(tIRI, vIRI) {
			return
		}
	}
	if len(pc.Types) != 0 {
		r.warn(Warning{
			Kind:     ConflictingValueTypes,
			Class:    c.IRI,
			Property: pc.Property,
			Detail:   fmt.Sprintf("filler <%s> is incomparable with earlier fillers", v),
		})
	}
	pc.Types = append(pc.Types, v)
}
