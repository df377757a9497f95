package transform

import (
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ontojson/ontojson/owl"
)

const ns = "http://example.org/vocab#"

func exIRI(name string) quad.IRI { return quad.IRI(ns + name) }

func TestResolveDefaultOptionality(t *testing.T) {
	m := owl.NewModel(quad.IRI(ns))
	m.AddClass(exIRI("LegalEntity"))

	r := NewResolver(m)
	pcs := r.ResolveAll(m.ClassByIRI(exIRI("LegalEntity")))
	assert.Empty(t, pcs)

	pc := r.Resolve(m.ClassByIRI(exIRI("LegalEntity")), exIRI("creationDate"))
	assert.False(t, pc.Required)
	assert.Empty(t, pc.Types)
	assert.False(t, pc.Bounded())
}

// Requiredness is an OR over contributing facts: adding one requiring
// restriction flips it on, in any position, and repeating the merge keeps
// it there.
func TestResolveORMergeMonotonic(t *testing.T) {
	restrictions := []*owl.Restriction{
		{Kind: owl.MaxCardinality, OnProperty: exIRI("ofType"), Cardinality: 4},
		{Kind: owl.SomeValuesFrom, OnProperty: exIRI("ofType"), Filler: exIRI("VehicleType")},
		{Kind: owl.MinCardinality, OnProperty: exIRI("ofType"), Cardinality: 0},
	}
	perms := [][]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}
	for _, perm := range perms {
		m := owl.NewModel(quad.IRI(ns))
		c := m.AddClass(exIRI("Vehicle"))
		m.AddClass(exIRI("VehicleType"))
		for _, i := range perm {
			rst := *restrictions[i]
			c.Restrictions = append(c.Restrictions, m.AddExpr(&rst))
		}
		pc := NewResolver(m).Resolve(c, exIRI("ofType"))
		assert.True(t, pc.Required, "permutation %v", perm)
		require.NotNil(t, pc.Max, "permutation %v", perm)
		assert.Equal(t, uint(4), *pc.Max, "permutation %v", perm)
		require.Len(t, pc.Types, 1, "permutation %v", perm)
		assert.Equal(t, quad.Value(exIRI("VehicleType")), pc.Types[0])
	}
}

// A restriction declared directly and the same restriction as the sole
// member of an intersectionOf resolve identically.
func TestResolveIntersectionEquivalence(t *testing.T) {
	direct := owl.NewModel(quad.IRI(ns))
	dc := direct.AddClass(exIRI("Vehicle"))
	direct.AddClass(exIRI("VehicleType"))
	dc.Restrictions = append(dc.Restrictions, direct.AddExpr(&owl.Restriction{
		Kind: owl.SomeValuesFrom, OnProperty: exIRI("ofType"), Filler: exIRI("VehicleType"),
	}))

	nested := owl.NewModel(quad.IRI(ns))
	nc := nested.AddClass(exIRI("Vehicle"))
	nested.AddClass(exIRI("VehicleType"))
	rid := nested.AddExpr(&owl.Restriction{
		Kind: owl.SomeValuesFrom, OnProperty: exIRI("ofType"), Filler: exIRI("VehicleType"),
	})
	comb := nested.AddExpr(&owl.Combinator{
		Kind:    owl.Intersection,
		Members: []owl.ClassRef{owl.ExprRef(rid)},
	})
	nc.SuperClasses = append(nc.SuperClasses, owl.ExprRef(comb))

	a := NewResolver(direct).Resolve(dc, exIRI("ofType"))
	b := NewResolver(nested).Resolve(nc, exIRI("ofType"))
	assert.Equal(t, a, b)
}

func TestResolveCardinalityNarrowing(t *testing.T) {
	m := owl.NewModel(quad.IRI(ns))
	c := m.AddClass(exIRI("Vehicle"))
	min := m.AddExpr(&owl.Restriction{Kind: owl.MinCardinality, OnProperty: exIRI("ofType"), Cardinality: 1})
	max := m.AddExpr(&owl.Restriction{Kind: owl.MaxCardinality, OnProperty: exIRI("ofType"), Cardinality: 1})
	comb := m.AddExpr(&owl.Combinator{
		Kind:    owl.Intersection,
		Members: []owl.ClassRef{owl.ExprRef(min), owl.ExprRef(max)},
	})
	c.SuperClasses = append(c.SuperClasses, owl.ExprRef(comb))

	pc := NewResolver(m).Resolve(c, exIRI("ofType"))
	assert.True(t, pc.Required)
	require.NotNil(t, pc.Min)
	require.NotNil(t, pc.Max)
	assert.Equal(t, uint(1), *pc.Min)
	assert.Equal(t, uint(1), *pc.Max)
}

func TestResolveQualifiedCardinality(t *testing.T) {
	m := owl.NewModel(quad.IRI(ns))
	c := m.AddClass(exIRI("Fleet"))
	m.AddClass(exIRI("Vehicle"))
	for _, rst := range []*owl.Restriction{
		{Kind: owl.MinQualifiedCardinality, OnProperty: exIRI("hasMember"), Cardinality: 1,
			OnClass: exIRI("Vehicle"), Filler: exIRI("Vehicle")},
		{Kind: owl.MaxQualifiedCardinality, OnProperty: exIRI("hasMember"), Cardinality: 1,
			OnClass: exIRI("Vehicle"), Filler: exIRI("Vehicle")},
	} {
		c.Restrictions = append(c.Restrictions, m.AddExpr(rst))
	}

	pc := NewResolver(m).Resolve(c, exIRI("hasMember"))
	assert.True(t, pc.Required)
	assert.Equal(t, exIRI("Vehicle"), pc.QualifyingClass)
	require.Len(t, pc.Types, 1)
	assert.Equal(t, quad.Value(exIRI("Vehicle")), pc.Types[0])
}

// A union only forces presence when every branch independently requires
// the property.
func TestResolveUnionRequiredness(t *testing.T) {
	build := func(branchKinds []owl.RestrictionKind) *PropertyConstraint {
		m := owl.NewModel(quad.IRI(ns))
		c := m.AddClass(exIRI("Vehicle"))
		var members []owl.ClassRef
		for _, kind := range branchKinds {
			rst := &owl.Restriction{Kind: kind, OnProperty: exIRI("ofType")}
			if kind == owl.SomeValuesFrom {
				rst.Filler = exIRI("VehicleType")
				m.AddClass(exIRI("VehicleType"))
			}
			members = append(members, owl.ExprRef(m.AddExpr(rst)))
		}
		comb := m.AddExpr(&owl.Combinator{Kind: owl.Union, Members: members})
		c.SuperClasses = append(c.SuperClasses, owl.ExprRef(comb))
		return NewResolver(m).Resolve(c, exIRI("ofType"))
	}

	all := build([]owl.RestrictionKind{owl.SomeValuesFrom, owl.SomeValuesFrom})
	assert.True(t, all.Required, "every branch requires the property")

	some := build([]owl.RestrictionKind{owl.SomeValuesFrom, owl.AllValuesFrom})
	assert.False(t, some.Required, "one branch does not require the property")
}

func TestResolveConflictingCardinality(t *testing.T) {
	m := owl.NewModel(quad.IRI(ns))
	c := m.AddClass(exIRI("Vehicle"))
	for _, rst := range []*owl.Restriction{
		{Kind: owl.MinCardinality, OnProperty: exIRI("ofType"), Cardinality: 3},
		{Kind: owl.MaxCardinality, OnProperty: exIRI("ofType"), Cardinality: 2},
	} {
		c.Restrictions = append(c.Restrictions, m.AddExpr(rst))
	}

	r := NewResolver(m)
	pc := r.Resolve(c, exIRI("ofType"))
	require.NotNil(t, pc.Min)
	require.NotNil(t, pc.Max)
	assert.Equal(t, uint(3), *pc.Min)
	assert.Equal(t, uint(3), *pc.Max, "bounds clamp to a non-empty range")
	require.Len(t, r.Warnings(), 1)
	assert.Equal(t, ConflictingCardinality, r.Warnings()[0].Kind)
}

func TestResolveNarrowerFillerWins(t *testing.T) {
	m := owl.NewModel(quad.IRI(ns))
	c := m.AddClass(exIRI("Garage"))
	car := m.AddClass(exIRI("Car"))
	m.AddClass(exIRI("Vehicle"))
	car.SuperClasses = append(car.SuperClasses, owl.NamedRef(exIRI("Vehicle")))
	for _, filler := range []quad.IRI{exIRI("Vehicle"), exIRI("Car")} {
		c.Restrictions = append(c.Restrictions, m.AddExpr(&owl.Restriction{
			Kind: owl.SomeValuesFrom, OnProperty: exIRI("stores"), Filler: filler,
		}))
	}

	r := NewResolver(m)
	pc := r.Resolve(c, exIRI("stores"))
	require.Len(t, pc.Types, 1)
	assert.Equal(t, quad.Value(exIRI("Car")), pc.Types[0])
	assert.Empty(t, r.Warnings())
}

func TestResolveIncomparableFillers(t *testing.T) {
	m := owl.NewModel(quad.IRI(ns))
	c := m.AddClass(exIRI("Dock"))
	m.AddClass(exIRI("Boat"))
	m.AddClass(exIRI("Plane"))
	for _, filler := range []quad.IRI{exIRI("Boat"), exIRI("Plane")} {
		c.Restrictions = append(c.Restrictions, m.AddExpr(&owl.Restriction{
			Kind: owl.SomeValuesFrom, OnProperty: exIRI("holds"), Filler: filler,
		}))
	}

	r := NewResolver(m)
	pc := r.Resolve(c, exIRI("holds"))
	assert.Len(t, pc.Types, 2, "incomparable fillers kept as an intersection of types")
	require.Len(t, r.Warnings(), 1)
	assert.Equal(t, ConflictingValueTypes, r.Warnings()[0].Kind)
}

func TestResolveUnresolvedFiller(t *testing.T) {
	m := owl.NewModel(quad.IRI(ns))
	c := m.AddClass(exIRI("Vehicle"))
	c.Restrictions = append(c.Restrictions, m.AddExpr(&owl.Restriction{
		Kind:       owl.SomeValuesFrom,
		OnProperty: exIRI("ofType"),
		Filler:     quad.IRI("http://elsewhere.example/External"),
	}))

	r := NewResolver(m)
	pc := r.Resolve(c, exIRI("ofType"))
	assert.True(t, pc.Required, "requiredness survives an unresolved filler")
	assert.Empty(t, pc.Types, "no type constraint for an unresolved filler")
	require.Len(t, r.Warnings(), 1)
	assert.Equal(t, UnresolvedTypeReference, r.Warnings()[0].Kind)
}

func TestResolveMemoized(t *testing.T) {
	m := owl.NewModel(quad.IRI(ns))
	c := m.AddClass(exIRI("Vehicle"))
	m.AddClass(exIRI("VehicleType"))
	c.Restrictions = append(c.Restrictions, m.AddExpr(&owl.Restriction{
		Kind: owl.SomeValuesFrom, OnProperty: exIRI("ofType"), Filler: exIRI("VehicleType"),
	}))

	r := NewResolver(m)
	first := r.Resolve(c, exIRI("ofType"))
	second := r.Resolve(c, exIRI("ofType"))
	assert.Same(t, first, second)
}

func TestResolveMalformedSurfaced(t *testing.T) {
	m := owl.NewModel(quad.IRI(ns))
	m.AddClass(exIRI("Vehicle"))
	m.Malformed = append(m.Malformed, owl.MalformedRestriction{
		Node:   "b1",
		Detail: "missing owl:onProperty",
	})

	r := NewResolver(m)
	require.Len(t, r.Warnings(), 1)
	w := r.Warnings()[0]
	assert.Equal(t, MalformedRestriction, w.Kind)
	assert.Contains(t, w.Detail, "missing owl:onProperty")
}
