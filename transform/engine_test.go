package transform

import (
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ontojson/ontojson/jsonschema"
	"github.com/ontojson/ontojson/owl"
)

func TestTransformVehicleEndToEnd(t *testing.T) {
	m := owl.NewModel("http://example.org/vocab")
	vehicle := m.AddClass(exIRI("Vehicle"))
	m.AddClass(exIRI("VehicleType"))
	vehicle.Restrictions = append(vehicle.Restrictions, m.AddExpr(&owl.Restriction{
		Kind:       owl.SomeValuesFrom,
		OnProperty: exIRI("ofType"),
		Filler:     exIRI("VehicleType"),
	}))

	doc, warnings := Transform(m, nil)
	assert.Empty(t, warnings)

	def := doc.Definitions["Vehicle"]
	require.NotNil(t, def)
	require.NotNil(t, def.Properties["ofType"])
	assert.Equal(t, "#/definitions/VehicleType", def.Properties["ofType"].Ref)
	assert.Equal(t, []string{"ofType"}, def.Required)
	assert.NotNil(t, doc.Definitions["VehicleType"])
	assert.Equal(t, jsonschema.Draft07, doc.URI)
}

func TestTransformUnconstrainedPropertyStaysOptional(t *testing.T) {
	m := owl.NewModel("http://example.org/vocab")
	m.AddClass(exIRI("LegalEntity"))
	p := m.AddDatatypeProperty(exIRI("creationDate"))
	p.Domain = append(p.Domain, exIRI("LegalEntity"))
	p.Range = append(p.Range, "http://www.w3.org/2001/XMLSchema#date")
	p.Functional = true

	doc, _ := Transform(m, nil)
	def := doc.Definitions["LegalEntity"]
	require.NotNil(t, def)
	cd := def.Properties["creationDate"]
	require.NotNil(t, cd)
	assert.Equal(t, "string", cd.Type)
	assert.Equal(t, "date", cd.Format)
	assert.Nil(t, def.Required, "no required array may appear for optional-only classes")
}

func TestTransformRoundTripIdempotent(t *testing.T) {
	m := owl.NewModel("http://example.org/vocab")
	vehicle := m.AddClass(exIRI("Vehicle"))
	vehicle.Label.Set("en", "Vehicle")
	vehicle.SuperClasses = append(vehicle.SuperClasses, owl.NamedRef(exIRI("Asset")))
	m.AddClass(exIRI("Asset"))
	m.AddClass(exIRI("VehicleType"))
	vehicle.Restrictions = append(vehicle.Restrictions, m.AddExpr(&owl.Restriction{
		Kind: owl.SomeValuesFrom, OnProperty: exIRI("ofType"), Filler: exIRI("VehicleType"),
	}))
	dp := m.AddDatatypeProperty(exIRI("serial"))
	dp.Domain = append(dp.Domain, exIRI("Vehicle"))
	dp.Functional = true

	cfg := DefaultConfig()
	first, _ := Transform(m, cfg)
	second, _ := Transform(m, cfg)
	a, err := jsonschema.EncodeJSON(first, cfg.Indent)
	require.NoError(t, err)
	b, err := jsonschema.EncodeJSON(second, cfg.Indent)
	require.NoError(t, err)
	assert.Equal(t, a, b, "repeated runs produce byte-identical output")
}

func TestTransformHierarchyAllOf(t *testing.T) {
	m := owl.NewModel("http://example.org/vocab")
	m.AddClass(exIRI("Asset"))
	car := m.AddClass(exIRI("Car"))
	car.SuperClasses = append(car.SuperClasses, owl.NamedRef(exIRI("Asset")))
	m.AddClass(exIRI("VehicleType"))
	car.Restrictions = append(car.Restrictions, m.AddExpr(&owl.Restriction{
		Kind: owl.SomeValuesFrom, OnProperty: exIRI("ofType"), Filler: exIRI("VehicleType"),
	}))

	doc, _ := Transform(m, nil)
	def := doc.Definitions["Car"]
	require.NotNil(t, def)
	require.Len(t, def.AllOf, 2, "parent reference plus own-fields object")
	assert.Equal(t, "#/definitions/Asset", def.AllOf[0].Ref)
	own := def.AllOf[1]
	assert.Equal(t, "object", own.Type)
	require.NotNil(t, own.Properties["ofType"])
	assert.Equal(t, []string{"ofType"}, own.Required)
	assert.Empty(t, def.Properties, "own fields move into the allOf member")
	assert.Empty(t, def.Required)
}

func TestTransformQualifiedCardinalitySchema(t *testing.T) {
	m := owl.NewModel("http://example.org/vocab")
	fleet := m.AddClass(exIRI("Fleet"))
	m.AddClass(exIRI("Vehicle"))
	for _, kind := range []owl.RestrictionKind{owl.MinQualifiedCardinality, owl.MaxQualifiedCardinality} {
		fleet.Restrictions = append(fleet.Restrictions, m.AddExpr(&owl.Restriction{
			Kind:        kind,
			OnProperty:  exIRI("hasMember"),
			Cardinality: 1,
			OnClass:     exIRI("Vehicle"),
			Filler:      exIRI("Vehicle"),
		}))
	}

	doc, _ := Transform(m, nil)
	def := doc.Definitions["Fleet"]
	require.NotNil(t, def)
	hm := def.Properties["hasMember"]
	require.NotNil(t, hm)
	assert.Equal(t, "#/definitions/Vehicle", hm.Ref, "the property schema references the qualifying class")
	assert.Equal(t, []string{"hasMember"}, def.Required)
}

func TestTransformEnumeration(t *testing.T) {
	m := owl.NewModel("http://example.org/vocab")
	c := m.AddClass(exIRI("Color"))
	c.OneOf = []quad.Value{exIRI("Red"), exIRI("Green")}
	red := m.AddIndividual(exIRI("Red"))
	red.Label.Set("en", "red")

	doc, _ := Transform(m, nil)
	def := doc.Definitions["Color"]
	require.NotNil(t, def)
	assert.Equal(t, []interface{}{"red", "Green"}, def.Enum)
}

func TestTransformObjectPropertyShape(t *testing.T) {
	m := owl.NewModel("http://example.org/vocab")
	m.AddClass(exIRI("Person"))
	m.AddClass(exIRI("Vehicle"))
	op := m.AddObjectProperty(exIRI("owns"))
	op.Domain = append(op.Domain, exIRI("Person"))
	op.Range = append(op.Range, exIRI("Vehicle"))

	doc, _ := Transform(m, nil)
	def := doc.Definitions["Person"]
	require.NotNil(t, def)
	owns := def.Properties["owns"]
	require.NotNil(t, owns)
	assert.Equal(t, "array", owns.Type, "non-functional properties are arrays")
	require.NotNil(t, owns.Items)
	require.Len(t, owns.Items.OneOf, 2)
	assert.Equal(t, "#/definitions/Vehicle", owns.Items.OneOf[0].Ref)
	idRef := owns.Items.OneOf[1]
	require.NotNil(t, idRef.Properties["@id"])
	assert.Equal(t, []string{"@id"}, idRef.Required)
}

func TestTransformEquivalentClasses(t *testing.T) {
	m := owl.NewModel("http://example.org/vocab")
	org := m.AddClass(exIRI("Organization"))
	org.EquivalentClasses = append(org.EquivalentClasses, exIRI("Company"))
	m.AddClass(exIRI("Company"))

	doc, _ := Transform(m, nil)
	shared := doc.Definitions["_shared_Organization"]
	require.NotNil(t, shared, "equivalence groups get a shared definition")
	for _, name := range []string{"Organization", "Company"} {
		def := doc.Definitions[name]
		require.NotNil(t, def)
		require.NotEmpty(t, def.AllOf, "%s references the shared definition", name)
		assert.Equal(t, "#/definitions/_shared_Organization", def.AllOf[0].Ref)
	}
}

func TestTransformEquivalentClassesDisabled(t *testing.T) {
	m := owl.NewModel("http://example.org/vocab")
	org := m.AddClass(exIRI("Organization"))
	org.EquivalentClasses = append(org.EquivalentClasses, exIRI("Company"))
	m.AddClass(exIRI("Company"))

	cfg := DefaultConfig()
	require.NoError(t, cfg.SetEnabled(RuleEquivalentClasses, false))
	doc, _ := Transform(m, cfg)
	assert.Nil(t, doc.Definitions["_shared_Organization"])
	assert.Empty(t, doc.Definitions["Organization"].AllOf)
}

func TestTransformDisjointComment(t *testing.T) {
	m := owl.NewModel("http://example.org/vocab")
	c := m.AddClass(exIRI("Car"))
	c.DisjointWith = append(c.DisjointWith, exIRI("Boat"))
	m.AddClass(exIRI("Boat"))

	doc, _ := Transform(m, nil)
	assert.Empty(t, doc.Definitions["Car"].Comment, "disjointness stays silent by default")

	cfg := DefaultConfig()
	require.NoError(t, cfg.SetEnabled(RuleDisjointClasses, true))
	doc, _ = Transform(m, cfg)
	assert.Equal(t, "Disjoint with: Boat", doc.Definitions["Car"].Comment)
}

func TestTransformDisabledRuleSkipped(t *testing.T) {
	m := owl.NewModel("http://example.org/vocab")
	c := m.AddClass(exIRI("Vehicle"))
	c.SuperClasses = append(c.SuperClasses, owl.NamedRef(exIRI("Asset")))
	m.AddClass(exIRI("Asset"))

	cfg := DefaultConfig()
	require.NoError(t, cfg.SetEnabled(RuleClassHierarchy, false))
	doc, _ := Transform(m, cfg)
	def := doc.Definitions["Vehicle"]
	require.NotNil(t, def)
	assert.Empty(t, def.AllOf)
}

func TestTransformOntologyHeader(t *testing.T) {
	m := owl.NewModel("http://example.org/vocab")
	m.VersionInfo = "1.2.0"
	m.Imports = append(m.Imports, "http://example.org/base")
	m.AddClass(exIRI("Vehicle"))

	doc, _ := Transform(m, nil)
	assert.Equal(t, "http://example.org/vocab", doc.ID)
	assert.Equal(t, "1.2.0", doc.Version)
	assert.Equal(t, "Imports: http://example.org/base", doc.Comment)
	assert.Equal(t, "vocab", doc.Title)
}
