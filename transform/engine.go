// Package transform turns a parsed ontology model into a JSON Schema
// document. It flattens each class's restriction graph (extract), merges
// the restrictions of every (class, property) pair into one normalized
// constraint (resolve), and runs an ordered set of transformation rules
// over the model, collecting schema fragments into a builder.
package transform

import (
	"github.com/ontojson/ontojson/jsonschema"
	"github.com/ontojson/ontojson/owl"
)

// ElementKind tags the model element a rule is visiting.
type ElementKind int

const (
	KindOntology ElementKind = iota
	KindClass
	KindObjectProperty
	KindDatatypeProperty
	KindIndividual
)

func (k ElementKind) String() string {
	switch k {
	case KindOntology:
		return "ontology"
	case KindClass:
		return "class"
	case KindObjectProperty:
		return "object property"
	case KindDatatypeProperty:
		return "datatype property"
	case KindIndividual:
		return "individual"
	}
	return "unknown"
}

// Element is the tagged sum of model element kinds handed to rules. Exactly
// the field matching Kind is set.
type Element struct {
	Kind             ElementKind
	Ontology         *owl.Model
	Class            *owl.Class
	ObjectProperty   *owl.ObjectProperty
	DatatypeProperty *owl.DatatypeProperty
	Individual       *owl.Individual
}

// Rule is one transformation rule. Rules see the original, unmodified
// model and the resolved constraints, never each other's output, so rule
// order only affects fragment accumulation order.
type Rule interface {
	// ID is the rule identifier used in configuration files.
	ID() string
	// Handles reports whether the rule applies to the element kind.
	Handles(kind ElementKind) bool
	// Apply visits one element and returns schema fragments, or nil when
	// the rule declines to produce output for it.
	Apply(ctx *Context, el Element) []jsonschema.Fragment
}

// Context carries the model, configuration and resolver shared by every
// rule invocation of one run.
type Context struct {
	Model    *owl.Model
	Config   *Config
	resolver *Resolver
}

// Text picks the localized string for the configured language.
func (ctx *Context) Text(t owl.Text) string {
	return t.Pick(ctx.Config.Language)
}

// Constraints resolves every restricted property of the class.
func (ctx *Context) Constraints(c *owl.Class) []*PropertyConstraint {
	return ctx.resolver.ResolveAll(c)
}

// Engine runs the enabled rules over the model in a fixed traversal order:
// the ontology element first, then classes, object properties, datatype
// properties and individuals, each in declaration order.
type Engine struct {
	model  *owl.Model
	config *Config
	rules  []Rule
}

// NewEngine returns an engine over the model with the standard rule set.
func NewEngine(m *owl.Model, cfg *Config) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Engine{model: m, config: cfg, rules: standardRules()}
}

// Rules returns the registered rules in registration order.
func (e *Engine) Rules() []Rule { return e.rules }

// Run executes one transformation and returns the assembled document plus
// the warnings accumulated during resolution.
func (e *Engine) Run() (*jsonschema.Schema, []Warning) {
	ctx := &Context{
		Model:    e.model,
		Config:   e.config,
		resolver: NewResolver(e.model),
	}
	b := jsonschema.NewBuilder()

	e.visit(ctx, b, Element{Kind: KindOntology, Ontology: e.model})
	for _, c := range e.model.Classes {
		e.visit(ctx, b, Element{Kind: KindClass, Class: c})
	}
	for _, p := range e.model.ObjectProperties {
		e.visit(ctx, b, Element{Kind: KindObjectProperty, ObjectProperty: p})
	}
	for _, p := range e.model.DatatypeProperties {
		e.visit(ctx, b, Element{Kind: KindDatatypeProperty, DatatypeProperty: p})
	}
	for _, ind := range e.model.Individuals {
		e.visit(ctx, b, Element{Kind: KindIndividual, Individual: ind})
	}

	return b.Document(), ctx.resolver.Warnings()
}

func (e *Engine) visit(ctx *Context, b *jsonschema.Builder, el Element) {
	for _, rule := range e.rules {
		if !rule.Handles(el.Kind) || !e.config.Enabled(rule.ID()) {
			continue
		}
		for _, frag := range rule.Apply(ctx, el) {
			b.Add(frag)
		}
	}
}

// Transform is the single-call entry point: resolve the whole model under
// the configuration and return the output document and warnings.
func Transform(m *owl.Model, cfg *Config) (*jsonschema.Schema, []Warning) {
	return NewEngine(m, cfg).Run()
}

func standardRules() []Rule {
	return []Rule{
		&ontologyMetadataRule{},
		&classToObjectRule{},
		&classHierarchyRule{},
		&classRestrictionsRule{},
		&enumerationToEnumRule{},
		&unionToAnyOfRule{},
		&intersectionToAllOfRule{},
		&complementToNotRule{},
		&equivalentClassesRule{},
		&disjointClassesRule{},
		&objectPropertyRule{},
		&datatypePropertyRule{},
		&labelsToTitlesRule{},
		&commentsToDescriptionsRule{},
		&individualsToExamplesRule{},
	}
}

// kindSet is a small helper embedded by rules to declare handled kinds.
type kindSet []ElementKind

func (s kindSet) Handles(kind ElementKind) bool {
	for _, k := range s {
		if k == kind {
			return true
		}
	}
	return false
}
