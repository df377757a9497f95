package owl

import (
	"fmt"
	"strings"

	"github.com/cayleygraph/quad"
)

// ExprID addresses a class-expression node in the model's arena. Expressions
// reference each other by ID rather than by pointer, so trees shared between
// classes stay shared and cyclic references cannot leak ownership.
type ExprID int

// NoExpr is the zero reference.
const NoExpr ExprID = -1

// ClassRef points at either a named class or an expression-arena node.
type ClassRef struct {
	IRI  quad.IRI
	Expr ExprID
}

// NamedRef references a class by IRI.
func NamedRef(iri quad.IRI) ClassRef { return ClassRef{IRI: iri, Expr: NoExpr} }

// ExprRef references an arena node.
func ExprRef(id ExprID) ClassRef { return ClassRef{Expr: id} }

// IsNamed reports whether the reference is to a named class.
func (r ClassRef) IsNamed() bool { return r.IRI != "" }

// Expr is a class-expression node: either a Restriction or a Combinator.
type Expr interface {
	isExpr()
}

// RestrictionKind enumerates the supported owl:Restriction forms.
type RestrictionKind int

const (
	SomeValuesFrom RestrictionKind = iota
	AllValuesFrom
	HasValue
	MinCardinality
	MaxCardinality
	ExactCardinality
	MinQualifiedCardinality
	MaxQualifiedCardinality
	ExactQualifiedCardinality
)

var restrictionKindNames = [...]string{
	SomeValuesFrom:            "someValuesFrom",
	AllValuesFrom:             "allValuesFrom",
	HasValue:                  "hasValue",
	MinCardinality:            "minCardinality",
	MaxCardinality:            "maxCardinality",
	ExactCardinality:          "cardinality",
	MinQualifiedCardinality:   "minQualifiedCardinality",
	MaxQualifiedCardinality:   "maxQualifiedCardinality",
	ExactQualifiedCardinality: "qualifiedCardinality",
}

func (k RestrictionKind) String() string {
	if k < 0 || int(k) >= len(restrictionKindNames) {
		return "unknown"
	}
	return restrictionKindNames[k]
}

// IsCardinality reports whether the kind carries a numeric bound.
func (k RestrictionKind) IsCardinality() bool {
	switch k {
	case MinCardinality, MaxCardinality, ExactCardinality,
		MinQualifiedCardinality, MaxQualifiedCardinality, ExactQualifiedCardinality:
		return true
	}
	return false
}

// IsQualified reports whether the kind counts only values of an onClass.
func (k RestrictionKind) IsQualified() bool {
	switch k {
	case MinQualifiedCardinality, MaxQualifiedCardinality, ExactQualifiedCardinality:
		return true
	}
	return false
}

// Restriction is an atomic owl:Restriction node. Filler holds the
// someValuesFrom/allValuesFrom/hasValue object; OnClass is set only for
// qualified cardinality kinds; Cardinality only for cardinality kinds.
type Restriction struct {
	Kind        RestrictionKind
	OnProperty  quad.IRI
	Filler      quad.Value
	OnClass     quad.IRI
	Cardinality uint
}

func (*Restriction) isExpr() {}

// Requires reports whether the restriction guarantees at least one value of
// OnProperty on every instance of the restricted class.
func (r *Restriction) Requires() bool {
	switch r.Kind {
	case SomeValuesFrom, HasValue:
		return true
	case MinCardinality, ExactCardinality, MinQualifiedCardinality, ExactQualifiedCardinality:
		return r.Cardinality >= 1
	}
	return false
}

// CombinatorKind enumerates the logical class combinators.
type CombinatorKind int

const (
	Intersection CombinatorKind = iota
	Union
	Complement
)

func (k CombinatorKind) String() string {
	switch k {
	case Intersection:
		return "intersectionOf"
	case Union:
		return "unionOf"
	case Complement:
		return "complementOf"
	}
	return "unknown"
}

// Combinator is an intersection, union or complement of class expressions.
// Members preserve the RDF list order of the source document.
type Combinator struct {
	Kind    CombinatorKind
	Members []ClassRef
}

func (*Combinator) isExpr() {}

// LocalName returns the fragment or last path segment of an IRI-like value,
// the way definition and property names are derived for the output schema.
func LocalName(v quad.Value) string {
	var s string
	switch v := v.(type) {
	case quad.IRI:
		s = string(v)
	case quad.BNode:
		return string(v)
	default:
		if v == nil {
			return ""
		}
		return fmt.Sprint(quad.NativeOf(v))
	}
	if i := strings.LastIndex(s, "#"); i >= 0 {
		return s[i+1:]
	}
	if i := strings.LastIndex(s, "/"); i >= 0 {
		return s[i+1:]
	}
	if i := strings.LastIndex(s, ":"); i >= 0 {
		return s[i+1:]
	}
	return s
}
