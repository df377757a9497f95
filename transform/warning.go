package transform

import (
	"fmt"

	"github.com/cayleygraph/quad"
)

// WarningKind classifies non-fatal conditions found during resolution.
// Nothing in this package aborts a run; affected classes and properties
// degrade to the safest default (optional, untyped) instead.
type WarningKind int

const (
	// MalformedRestriction marks a restriction node missing a required
	// field, dropped by the parser and reported here.
	MalformedRestriction WarningKind = iota
	// ConflictingCardinality marks a resolved lower bound above the upper
	// bound; the bounds are clamped to a non-empty range.
	ConflictingCardinality
	// UnresolvedTypeReference marks a filler or range class absent from
	// the model; the property is emitted without a type constraint.
	UnresolvedTypeReference
	// ConflictingValueTypes marks incomparable fillers for one property,
	// kept as an intersection of types.
	ConflictingValueTypes
)

func (k WarningKind) String() string {
	switch k {
	case MalformedRestriction:
		return "malformed restriction"
	case ConflictingCardinality:
		return "conflicting cardinality"
	case UnresolvedTypeReference:
		return "unresolved type reference"
	case ConflictingValueTypes:
		return "conflicting value types"
	}
	return "unknown"
}

// Warning is one diagnostic attached to a class or property.
type Warning struct {
	Kind     WarningKind
	Class    quad.IRI
	Property quad.IRI
	Detail   string
}

func (w Warning) String() string {
	s := w.Kind.String()
	if w.Class != "" {
		s += fmt.Sprintf(" on class <%s>", w.Class)
	}
	if w.Property != "" {
		s += fmt.Sprintf(" property <%s>", w.Property)
	}
	if w.Detail != "" {
		s += ": " + w.Detail
	}
	return s
}
