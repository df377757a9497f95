// Package owl defines the in-memory model of an OWL ontology: classes,
// properties, individuals and the class-expression arena holding restriction
// and combinator nodes.
//
// A Model is produced by the parser and is read-only afterwards. All derived
// state (resolved constraints, schema fragments) lives outside of the model,
// so the same Model can be transformed repeatedly with different rule
// configurations.
package owl

import (
	"sort"

	"github.com/cayleygraph/quad"
)

// Text holds language-tagged variants of a label or comment. The empty
// language tag stores the plain (untagged) literal.
type Text map[string]string

// Set records a variant for the given language tag.
func (t Text) Set(lang, s string) { t[lang] = s }

// IsZero reports whether no variant is recorded.
func (t Text) IsZero() bool { return len(t) == 0 }

// Pick returns the variant for lang, falling back to English, to the untagged
// variant, and finally to the lexicographically smallest tag so that the
// result is deterministic.
func (t Text) Pick(lang string) string {
	if s, ok := t[lang]; ok {
		return s
	}
	if s, ok := t["en"]; ok {
		return s
	}
	if s, ok := t[""]; ok {
		return s
	}
	tags := make([]string, 0, len(t))
	for tag := range t {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	if len(tags) != 0 {
		return t[tags[0]]
	}
	return ""
}

// Model is an entire OWL ontology. Slices preserve declaration order, which
// fixes the traversal order of the transformation.
type Model struct {
	IRI                quad.IRI
	Classes            []*Class
	ObjectProperties   []*ObjectProperty
	DatatypeProperties []*DatatypeProperty
	Individuals        []*Individual
	Imports            []quad.IRI
	VersionInfo        string
	Annotations        []Annotation
	Malformed          []MalformedRestriction

	exprs      []Expr
	classes    map[quad.IRI]*Class
	objProps   map[quad.IRI]*ObjectProperty
	dataProps  map[quad.IRI]*DatatypeProperty
	individual map[quad.IRI]*Individual
}

// Annotation is a single annotation-property value attached to an element.
type Annotation struct {
	Property quad.IRI
	Value    quad.Value
}

// MalformedRestriction records a restriction node dropped during parsing
// because a required field was missing or unreadable. Property is empty
// when the node lacked owl:onProperty.
type MalformedRestriction struct {
	Node     string
	Property quad.IRI
	Detail   string
}

// NewModel creates an empty ontology model.
func NewModel(iri quad.IRI) *Model {
	return &Model{
		IRI:        iri,
		classes:    make(map[quad.IRI]*Class),
		objProps:   make(map[quad.IRI]*ObjectProperty),
		dataProps:  make(map[quad.IRI]*DatatypeProperty),
		individual: make(map[quad.IRI]*Individual),
	}
}

// AddClass appends a class declaration. Re-adding a known IRI returns the
// existing class so that statements spread over the document accumulate on
// one node.
func (m *Model) AddClass(iri quad.IRI) *Class {
	if c, ok := m.classes[iri]; ok {
		return c
	}
	c := &Class{IRI: iri, Label: Text{}, Comment: Text{}, Definition: NoExpr}
	m.classes[iri] = c
	m.Classes = append(m.Classes, c)
	return c
}

// AddObjectProperty appends an object property declaration.
func (m *Model) AddObjectProperty(iri quad.IRI) *ObjectProperty {
	if p, ok := m.objProps[iri]; ok {
		return p
	}
	p := &ObjectProperty{Property: Property{IRI: iri, Label: Text{}, Comment: Text{}}}
	m.objProps[iri] = p
	m.ObjectProperties = append(m.ObjectProperties, p)
	return p
}

// AddDatatypeProperty appends a datatype property declaration.
func (m *Model) AddDatatypeProperty(iri quad.IRI) *DatatypeProperty {
	if p, ok := m.dataProps[iri]; ok {
		return p
	}
	p := &DatatypeProperty{Property: Property{IRI: iri, Label: Text{}, Comment: Text{}}}
	m.dataProps[iri] = p
	m.DatatypeProperties = append(m.DatatypeProperties, p)
	return p
}

// AddIndividual appends a named individual declaration.
func (m *Model) AddIndividual(iri quad.IRI) *Individual {
	if ind, ok := m.individual[iri]; ok {
		return ind
	}
	ind := &Individual{IRI: iri, Label: Text{}}
	m.individual[iri] = ind
	m.Individuals = append(m.Individuals, ind)
	return ind
}

// AddExpr stores a class-expression node in the arena and returns its index.
func (m *Model) AddExpr(e Expr) ExprID {
	m.exprs = append(m.exprs, e)
	return ExprID(len(m.exprs) - 1)
}

// Expr returns the arena node for id, or nil for NoExpr and out-of-range ids.
func (m *Model) Expr(id ExprID) Expr {
	if id < 0 || int(id) >= len(m.exprs) {
		return nil
	}
	return m.exprs[id]
}

// ClassByIRI returns the named class, or nil.
func (m *Model) ClassByIRI(iri quad.IRI) *Class { return m.classes[iri] }

// ObjectPropertyByIRI returns the object property, or nil.
func (m *Model) ObjectPropertyByIRI(iri quad.IRI) *ObjectProperty { return m.objProps[iri] }

// DatatypePropertyByIRI returns the datatype property, or nil.
func (m *Model) DatatypePropertyByIRI(iri quad.IRI) *DatatypeProperty { return m.dataProps[iri] }

// IndividualByIRI returns the named individual, or nil.
func (m *Model) IndividualByIRI(iri quad.IRI) *Individual { return m.individual[iri] }

// IsSubClassOf recursively checks whether sub is equal to, or a transitive
// named subclass of, super. Cycles in the hierarchy terminate through the
// visited set.
func (m *Model) IsSubClassOf(sub, super quad.IRI) bool {
	return m.isSubClassOf(sub, super, make(map[quad.IRI]bool))
}

func (m *Model) isSubClassOf(sub, super quad.IRI, seen map[quad.IRI]bool) bool {
	if sub == super {
		return true
	}
	if seen[sub] {
		return false
	}
	seen[sub] = true
	c := m.classes[sub]
	if c == nil {
		return false
	}
	for _, ref := range c.SuperClasses {
		if !ref.IsNamed() {
			continue
		}
		if m.isSubClassOf(ref.IRI, super, seen) {
			return true
		}
	}
	return false
}

// Class is an OWL class declaration together with everything stated about it.
// Definition points at a combinator the class is declared equivalent to
// (an intersection, union or complement definition), or NoExpr.
type Class struct {
	IRI               quad.IRI
	Label             Text
	Comment           Text
	SuperClasses      []ClassRef
	EquivalentClasses []quad.IRI
	DisjointWith      []quad.IRI
	Restrictions      []ExprID
	OneOf             []quad.Value
	Definition        ExprID
	Annotations       []Annotation
}

// Property carries the fields shared by object and datatype properties.
type Property struct {
	IRI             quad.IRI
	Label           Text
	Comment         Text
	Domain          []quad.IRI
	Range           []quad.IRI
	SuperProperties []quad.IRI
	Functional      bool
	Annotations     []Annotation
}

// ObjectProperty is an OWL object property.
type ObjectProperty struct {
	Property
	InverseOf         quad.IRI
	InverseFunctional bool
	Transitive        bool
	Symmetric         bool
	Asymmetric        bool
	Reflexive         bool
	Irreflexive       bool
}

// DatatypeProperty is an OWL datatype property.
type DatatypeProperty struct {
	Property
}

// Individual is a named individual with its asserted property values.
type Individual struct {
	IRI    quad.IRI
	Label  Text
	Types  []quad.IRI
	Values []PropertyValue
}

// PropertyValue is one asserted (property, value) pair on an individual.
type PropertyValue struct {
	Property quad.IRI
	Value    quad.Value
}
