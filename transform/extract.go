package transform

import (
	"github.com/cayleygraph/quad"

	"github.com/ontojson/ontojson/owl"
)

// FactContext records the combinator context a restriction was found in.
// Direct and intersection facts contribute to requiredness unconditionally;
// union facts only do so when every branch of their group requires the
// property; complement facts never contribute a positive requirement.
type FactContext int

const (
	ContextDirect FactContext = iota
	ContextIntersection
	ContextUnion
	ContextComplement
)

func (c FactContext) String() string {
	switch c {
	case ContextDirect:
		return "direct"
	case ContextIntersection:
		return "intersection"
	case ContextUnion:
		return "union"
	case ContextComplement:
		return "complement"
	}
	return "unknown"
}

// Fact is one atomic restriction found on a class, with its combinator
// context. UnionGroup and UnionBranch are meaningful only for union facts:
// they identify which branch of which union group the restriction sits in.
type Fact struct {
	Restriction *owl.Restriction
	Context     FactContext
	UnionGroup  int
	UnionBranch int
}

// ClassFacts is the flattened restriction view of one class: every atomic
// restriction reachable from the class's attachments, in depth-first
// document order, plus the branch count of each union group encountered.
type ClassFacts struct {
	Facts         []Fact
	UnionBranches map[int]int
}

// Extractor flattens class restriction attachments. Results are cached per
// class for the lifetime of one transformation, since deep hierarchies
// reach the same class through multiple ancestor paths.
type Extractor struct {
	model *owl.Model
	cache map[quad.IRI]*ClassFacts
}

// NewExtractor returns an extractor over the model.
func NewExtractor(m *owl.Model) *Extractor {
	return &Extractor{model: m, cache: map[quad.IRI]*ClassFacts{}}
}

// Extract returns the flattened restriction facts for a class.
func (e *Extractor) Extract(c *owl.Class) *ClassFacts {
	if f, ok := e.cache[c.IRI]; ok {
		return f
	}
	w := &walker{
		model:     e.model,
		out:       &ClassFacts{UnionBranches: map[int]int{}},
		seenExpr:  map[owl.ExprID]bool{},
		seenClass: map[quad.IRI]bool{},
	}
	w.walkClass(c, ContextDirect, 0, 0)
	e.cache[c.IRI] = w.out
	return w.out
}

type walker struct {
	model     *owl.Model
	out       *ClassFacts
	seenExpr  map[owl.ExprID]bool
	seenClass map[quad.IRI]bool
	groups    int
}

func (w *walker) walkClass(c *owl.Class, ctx FactContext, group, branch int) {
	if w.seenClass[c.IRI] {
		return
	}
	w.seenClass[c.IRI] = true
	for _, id := range c.Restrictions {
		w.visitExpr(id, ctx, group, branch)
	}
	for _, sup := range c.SuperClasses {
		if !sup.IsNamed() {
			w.visitExpr(sup.Expr, ctx, group, branch)
		}
	}
	if c.Definition != owl.NoExpr {
		w.visitExpr(c.Definition, ctx, group, branch)
	}
}

func (w *walker) visitExpr(id owl.ExprID, ctx FactContext, group, branch int) {
	switch node := w.model.Expr(id).(type) {
	case *owl.Restriction:
		w.out.Facts = append(w.out.Facts, Fact{
			Restriction: node,
			Context:     ctx,
			UnionGroup:  group,
			UnionBranch: branch,
		})
	case *owl.Combinator:
		// Combinator trees may be shared and, through reserved arena
		// slots, cyclic. Each node is expanded once per extraction.
		if w.seenExpr[id] {
			return
		}
		w.seenExpr[id] = true
		switch node.Kind {
		case owl.Intersection:
			next := ctx
			if next == ContextDirect {
				next = ContextIntersection
			}
			for _, m := range node.Members {
				w.visitMember(m, next, group, branch)
			}
		case owl.Union:
			w.groups++
			g := w.groups
			w.out.UnionBranches[g] = len(node.Members)
			for i, m := range node.Members {
				w.visitMember(m, ContextUnion, g, i)
			}
		case owl.Complement:
			for _, m := range node.Members {
				w.visitMember(m, ContextComplement, group, branch)
			}
		}
	}
}

func (w *walker) visitMember(m owl.ClassRef, ctx FactContext, group, branch int) {
	if !m.IsNamed() {
		w.visitExpr(m.Expr, ctx, group, branch)
		return
	}
	// A named class inside an intersection pulls its own restrictions in:
	// membership in the intersection implies membership in that class.
	// Union and complement members stay opaque here; the combinator rules
	// render them as anyOf/not composition instead.
	if ctx != ContextIntersection {
		return
	}
	if cls := w.model.ClassByIRI(m.IRI); cls != nil {
		w.walkClass(cls, ContextIntersection, group, branch)
	}
}
