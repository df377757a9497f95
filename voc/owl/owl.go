// Package owl contains constants of the Web Ontology Language (OWL)
package owl

import "github.com/cayleygraph/quad/voc"

func init() {
	voc.RegisterPrefix(Prefix, NS)
}

const (
	NS     = `http://www.w3.org/2002/07/owl#`
	Prefix = `owl:`
)

const (
	// Classes

	Ontology         = NS + "Ontology"
	Class            = NS + "Class"
	Restriction      = NS + "Restriction"
	ObjectProperty   = NS + "ObjectProperty"
	DatatypeProperty = NS + "DatatypeProperty"
	NamedIndividual  = NS + "NamedIndividual"
	Thing            = NS + "Thing"
	Nothing          = NS + "Nothing"

	// Property characteristics

	FunctionalProperty        = NS + "FunctionalProperty"
	InverseFunctionalProperty = NS + "InverseFunctionalProperty"
	TransitiveProperty        = NS + "TransitiveProperty"
	SymmetricProperty         = NS + "SymmetricProperty"
	AsymmetricProperty        = NS + "AsymmetricProperty"
	ReflexiveProperty         = NS + "ReflexiveProperty"
	IrreflexiveProperty       = NS + "IrreflexiveProperty"

	// Restriction properties

	OnProperty              = NS + "onProperty"
	OnClass                 = NS + "onClass"
	SomeValuesFrom          = NS + "someValuesFrom"
	AllValuesFrom           = NS + "allValuesFrom"
	HasValue                = NS + "hasValue"
	Cardinality             = NS + "cardinality"
	MinCardinality          = NS + "minCardinality"
	MaxCardinality          = NS + "maxCardinality"
	QualifiedCardinality    = NS + "qualifiedCardinality"
	MinQualifiedCardinality = NS + "minQualifiedCardinality"
	MaxQualifiedCardinality = NS + "maxQualifiedCardinality"

	// Class expressions

	IntersectionOf = NS + "intersectionOf"
	UnionOf        = NS + "unionOf"
	ComplementOf   = NS + "complementOf"
	OneOf          = NS + "oneOf"

	// Relations between classes and properties

	EquivalentClass = NS + "equivalentClass"
	DisjointWith    = NS + "disjointWith"
	InverseOf       = NS + "inverseOf"

	// Ontology metadata

	Imports     = NS + "imports"
	VersionInfo = NS + "versionInfo"
)
