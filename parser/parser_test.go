package parser

import (
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ontojson/ontojson/owl"
)

const (
	ns     = "http://example.org/vocab#"
	owlNS  = "http://www.w3.org/2002/07/owl#"
	rdfNS  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	rdfsNS = "http://www.w3.org/2000/01/rdf-schema#"
	xsdNS  = "http://www.w3.org/2001/XMLSchema#"
)

func ex(name string) quad.IRI { return quad.IRI(ns + name) }

func st(s, p quad.Value, o quad.Value) quad.Quad {
	return quad.Quad{Subject: s, Predicate: p, Object: o}
}

func typeOf(s quad.Value, typ string) quad.Quad {
	return st(s, quad.IRI(rdfNS+"type"), quad.IRI(typ))
}

// list builds the rdf:first/rdf:rest chain for the given members, returning
// the head node and the statements.
func list(prefix string, members ...quad.Value) (quad.Value, []quad.Quad) {
	if len(members) == 0 {
		return quad.IRI(rdfNS + "nil"), nil
	}
	var out []quad.Quad
	head := quad.BNode(prefix + "0")
	node := head
	for i, m := range members {
		out = append(out, st(node, quad.IRI(rdfNS+"first"), m))
		if i == len(members)-1 {
			out = append(out, st(node, quad.IRI(rdfNS+"rest"), quad.IRI(rdfNS+"nil")))
			break
		}
		next := quad.BNode(prefix + string(rune('1'+i)))
		out = append(out, st(node, quad.IRI(rdfNS+"rest"), next))
		node = next
	}
	return head, out
}

func TestParseClassBasics(t *testing.T) {
	quads := []quad.Quad{
		typeOf(ex("Vehicle"), owlNS+"Class"),
		st(ex("Vehicle"), quad.IRI(rdfsNS+"label"), quad.LangString{Value: "Vehicle", Lang: "en"}),
		st(ex("Vehicle"), quad.IRI(rdfsNS+"label"), quad.LangString{Value: "Fahrzeug", Lang: "de"}),
		st(ex("Vehicle"), quad.IRI(rdfsNS+"comment"), quad.String("A means of transport")),
		typeOf(ex("Car"), owlNS+"Class"),
		st(ex("Car"), quad.IRI(rdfsNS+"subClassOf"), ex("Vehicle")),
	}
	m := Parse(quads)

	require.Len(t, m.Classes, 2)
	v := m.ClassByIRI(ex("Vehicle"))
	require.NotNil(t, v)
	assert.Equal(t, "Vehicle", v.Label.Pick("en"))
	assert.Equal(t, "Fahrzeug", v.Label.Pick("de"))
	assert.Equal(t, "A means of transport", v.Comment.Pick("en"))

	car := m.ClassByIRI(ex("Car"))
	require.NotNil(t, car)
	require.Len(t, car.SuperClasses, 1)
	assert.Equal(t, ex("Vehicle"), car.SuperClasses[0].IRI)
	assert.True(t, m.IsSubClassOf(ex("Car"), ex("Vehicle")))
}

func TestParseSomeValuesFromRestriction(t *testing.T) {
	r := quad.BNode("r1")
	quads := []quad.Quad{
		typeOf(ex("Vehicle"), owlNS+"Class"),
		typeOf(ex("VehicleType"), owlNS+"Class"),
		st(ex("Vehicle"), quad.IRI(rdfsNS+"subClassOf"), r),
		typeOf(r, owlNS+"Restriction"),
		st(r, quad.IRI(owlNS+"onProperty"), ex("ofType")),
		st(r, quad.IRI(owlNS+"someValuesFrom"), ex("VehicleType")),
	}
	m := Parse(quads)

	v := m.ClassByIRI(ex("Vehicle"))
	require.NotNil(t, v)
	require.Len(t, v.Restrictions, 1)
	rst, ok := m.Expr(v.Restrictions[0]).(*owl.Restriction)
	require.True(t, ok)
	assert.Equal(t, owl.SomeValuesFrom, rst.Kind)
	assert.Equal(t, ex("ofType"), rst.OnProperty)
	assert.Equal(t, quad.Value(ex("VehicleType")), rst.Filler)
	assert.True(t, rst.Requires())
}

func TestParseCardinalityVariants(t *testing.T) {
	nonNeg := func(s string) quad.TypedString {
		return quad.TypedString{Value: quad.String(s), Type: quad.IRI(xsdNS + "nonNegativeInteger")}
	}
	min := quad.BNode("min")
	max := quad.BNode("max")
	qual := quad.BNode("qual")
	quads := []quad.Quad{
		typeOf(ex("Fleet"), owlNS+"Class"),
		typeOf(ex("Vehicle"), owlNS+"Class"),
		st(ex("Fleet"), quad.IRI(rdfsNS+"subClassOf"), min),
		typeOf(min, owlNS+"Restriction"),
		st(min, quad.IRI(owlNS+"onProperty"), ex("hasMember")),
		st(min, quad.IRI(owlNS+"minCardinality"), nonNeg("1")),
		st(ex("Fleet"), quad.IRI(rdfsNS+"subClassOf"), max),
		typeOf(max, owlNS+"Restriction"),
		st(max, quad.IRI(owlNS+"onProperty"), ex("hasMember")),
		st(max, quad.IRI(owlNS+"maxCardinality"), quad.Int(5)),
		st(ex("Fleet"), quad.IRI(rdfsNS+"subClassOf"), qual),
		typeOf(qual, owlNS+"Restriction"),
		st(qual, quad.IRI(owlNS+"onProperty"), ex("hasFlagship")),
		st(qual, quad.IRI(owlNS+"qualifiedCardinality"), nonNeg("1")),
		st(qual, quad.IRI(owlNS+"onClass"), ex("Vehicle")),
	}
	m := Parse(quads)

	fleet := m.ClassByIRI(ex("Fleet"))
	require.NotNil(t, fleet)
	require.Len(t, fleet.Restrictions, 3)

	kinds := map[owl.RestrictionKind]*owl.Restriction{}
	for _, id := range fleet.Restrictions {
		rst := m.Expr(id).(*owl.Restriction)
		kinds[rst.Kind] = rst
	}
	require.Contains(t, kinds, owl.MinCardinality)
	assert.Equal(t, uint(1), kinds[owl.MinCardinality].Cardinality)
	require.Contains(t, kinds, owl.MaxCardinality)
	assert.Equal(t, uint(5), kinds[owl.MaxCardinality].Cardinality)
	require.Contains(t, kinds, owl.ExactQualifiedCardinality)
	assert.Equal(t, ex("Vehicle"), kinds[owl.ExactQualifiedCardinality].OnClass)
}

func TestParseIntersectionOfRestrictions(t *testing.T) {
	r1 := quad.BNode("r1")
	r2 := quad.BNode("r2")
	comb := quad.BNode("comb")
	head, listQuads := list("l", r1, r2)
	quads := append([]quad.Quad{
		typeOf(ex("Vehicle"), owlNS+"Class"),
		st(ex("Vehicle"), quad.IRI(rdfsNS+"subClassOf"), comb),
		st(comb, quad.IRI(owlNS+"intersectionOf"), head),
		typeOf(r1, owlNS+"Restriction"),
		st(r1, quad.IRI(owlNS+"onProperty"), ex("ofType")),
		st(r1, quad.IRI(owlNS+"minCardinality"), quad.Int(1)),
		typeOf(r2, owlNS+"Restriction"),
		st(r2, quad.IRI(owlNS+"onProperty"), ex("ofType")),
		st(r2, quad.IRI(owlNS+"maxCardinality"), quad.Int(1)),
	}, listQuads...)
	m := Parse(quads)

	v := m.ClassByIRI(ex("Vehicle"))
	require.NotNil(t, v)
	require.Len(t, v.SuperClasses, 1)
	ref := v.SuperClasses[0]
	require.False(t, ref.IsNamed())
	c, ok := m.Expr(ref.Expr).(*owl.Combinator)
	require.True(t, ok)
	assert.Equal(t, owl.Intersection, c.Kind)
	require.Len(t, c.Members, 2)
	first := m.Expr(c.Members[0].Expr).(*owl.Restriction)
	assert.Equal(t, owl.MinCardinality, first.Kind)
}

func TestParseEnumeration(t *testing.T) {
	e := quad.BNode("enum")
	head, listQuads := list("l", ex("Red"), ex("Green"), ex("Blue"))
	quads := append([]quad.Quad{
		typeOf(ex("Color"), owlNS+"Class"),
		st(ex("Color"), quad.IRI(owlNS+"equivalentClass"), e),
		st(e, quad.IRI(owlNS+"oneOf"), head),
	}, listQuads...)
	m := Parse(quads)

	c := m.ClassByIRI(ex("Color"))
	require.NotNil(t, c)
	assert.Equal(t, []quad.Value{ex("Red"), ex("Green"), ex("Blue")}, c.OneOf)
}

func TestParseMalformedRestrictionSkipped(t *testing.T) {
	r := quad.BNode("r1")
	quads := []quad.Quad{
		typeOf(ex("Vehicle"), owlNS+"Class"),
		st(ex("Vehicle"), quad.IRI(rdfsNS+"subClassOf"), r),
		typeOf(r, owlNS+"Restriction"),
		// no owl:onProperty
		st(r, quad.IRI(owlNS+"minCardinality"), quad.Int(1)),
	}
	m := Parse(quads)

	v := m.ClassByIRI(ex("Vehicle"))
	require.NotNil(t, v)
	assert.Empty(t, v.Restrictions, "a restriction without onProperty is skipped")
	require.Len(t, m.Malformed, 1, "the dropped node is recorded for diagnostics")
	assert.Equal(t, "r1", m.Malformed[0].Node)
	assert.Equal(t, "missing owl:onProperty", m.Malformed[0].Detail)
}

func TestParseUnreadableCardinalityRecorded(t *testing.T) {
	r := quad.BNode("r1")
	quads := []quad.Quad{
		typeOf(ex("Vehicle"), owlNS+"Class"),
		st(ex("Vehicle"), quad.IRI(rdfsNS+"subClassOf"), r),
		typeOf(r, owlNS+"Restriction"),
		st(r, quad.IRI(owlNS+"onProperty"), ex("ofType")),
		st(r, quad.IRI(owlNS+"minCardinality"), quad.String("many")),
	}
	m := Parse(quads)

	v := m.ClassByIRI(ex("Vehicle"))
	require.NotNil(t, v)
	assert.Empty(t, v.Restrictions)
	require.Len(t, m.Malformed, 1)
	assert.Equal(t, ex("ofType"), m.Malformed[0].Property)
}

func TestParseProperties(t *testing.T) {
	quads := []quad.Quad{
		typeOf(ex("Person"), owlNS+"Class"),
		typeOf(ex("Vehicle"), owlNS+"Class"),

		typeOf(ex("owns"), owlNS+"ObjectProperty"),
		st(ex("owns"), quad.IRI(rdfsNS+"domain"), ex("Person")),
		st(ex("owns"), quad.IRI(rdfsNS+"range"), ex("Vehicle")),
		st(ex("owns"), quad.IRI(owlNS+"inverseOf"), ex("ownedBy")),
		typeOf(ex("ownedBy"), owlNS+"ObjectProperty"),

		typeOf(ex("serial"), owlNS+"DatatypeProperty"),
		typeOf(ex("serial"), owlNS+"FunctionalProperty"),
		st(ex("serial"), quad.IRI(rdfsNS+"domain"), ex("Vehicle")),
		st(ex("serial"), quad.IRI(rdfsNS+"range"), quad.IRI(xsdNS+"string")),
	}
	m := Parse(quads)

	owns := m.ObjectPropertyByIRI(ex("owns"))
	require.NotNil(t, owns)
	assert.Equal(t, []quad.IRI{ex("Person")}, owns.Domain)
	assert.Equal(t, []quad.IRI{ex("Vehicle")}, owns.Range)
	assert.Equal(t, ex("ownedBy"), owns.InverseOf)

	ownedBy := m.ObjectPropertyByIRI(ex("ownedBy"))
	require.NotNil(t, ownedBy)
	assert.Equal(t, ex("owns"), ownedBy.InverseOf, "inverse declarations propagate to the other side")

	serial := m.DatatypePropertyByIRI(ex("serial"))
	require.NotNil(t, serial)
	assert.True(t, serial.Functional)
	assert.Equal(t, []quad.IRI{quad.IRI(xsdNS + "string")}, serial.Range)
}

func TestParseIndividualsAndMetadata(t *testing.T) {
	quads := []quad.Quad{
		typeOf(quad.IRI(ns), owlNS+"Ontology"),
		st(quad.IRI(ns), quad.IRI(owlNS+"versionInfo"), quad.String("2.0")),
		st(quad.IRI(ns), quad.IRI(owlNS+"imports"), quad.IRI("http://example.org/base")),
		st(quad.IRI(ns), quad.IRI(rdfsNS+"label"), quad.String("Example vocabulary")),

		typeOf(ex("Mini"), owlNS+"NamedIndividual"),
		typeOf(ex("Mini"), ns+"Car"),
		st(ex("Mini"), quad.IRI(rdfsNS+"label"), quad.String("Mini")),
		st(ex("Mini"), ex("serial"), quad.String("ABC-123")),
	}
	m := Parse(quads)

	assert.Equal(t, quad.IRI(ns), m.IRI)
	assert.Equal(t, "2.0", m.VersionInfo)
	assert.Equal(t, []quad.IRI{"http://example.org/base"}, m.Imports)
	require.NotEmpty(t, m.Annotations)
	assert.Equal(t, quad.IRI(rdfsNS+"label"), m.Annotations[0].Property)

	mini := m.IndividualByIRI(ex("Mini"))
	require.NotNil(t, mini)
	assert.Equal(t, []quad.IRI{quad.IRI(ns + "Car")}, mini.Types)
	require.Len(t, mini.Values, 1)
	assert.Equal(t, ex("serial"), mini.Values[0].Property)
}

func TestParseDeclarationOrderStable(t *testing.T) {
	quads := []quad.Quad{
		typeOf(ex("B"), owlNS+"Class"),
		typeOf(ex("A"), owlNS+"Class"),
		typeOf(ex("C"), owlNS+"Class"),
	}
	m := Parse(quads)
	require.Len(t, m.Classes, 3)
	assert.Equal(t, ex("B"), m.Classes[0].IRI)
	assert.Equal(t, ex("A"), m.Classes[1].IRI)
	assert.Equal(t, ex("C"), m.Classes[2].IRI)
}
