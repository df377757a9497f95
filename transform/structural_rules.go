package transform

import (
	"github.com/cayleygraph/quad"

	"github.com/ontojson/ontojson/jsonschema"
	"github.com/ontojson/ontojson/owl"
	owlvoc "github.com/ontojson/ontojson/voc/owl"
)

// individualsToExamplesRule turns named individuals into document-level
// examples: an @type tag for their declared classes, their label, and
// their asserted property values. Off by default.
type individualsToExamplesRule struct{}

func (*individualsToExamplesRule) ID() string                 { return RuleIndividualsToExamples }
func (*individualsToExamplesRule) Handles(k ElementKind) bool { return k == KindIndividual }

func (*individualsToExamplesRule) Apply(ctx *Context, el Element) []jsonschema.Fragment {
	ind := el.Individual
	cfg := ctx.Config.Rules.IndividualsToExamples

	example := map[string]interface{}{}
	if cfg.IncludeType {
		if t := typeTag(ind.Types); t != nil {
			example["@type"] = t
		}
	}
	if label := ctx.Text(ind.Label); label != "" {
		example["label"] = label
	}
	for _, pv := range ind.Values {
		example[owl.LocalName(pv.Property)] = exampleValue(pv.Value)
	}
	if cfg.IncludeID {
		example["@id"] = string(ind.IRI)
	}
	if len(example) == 0 {
		return nil
	}
	return []jsonschema.Fragment{{
		Schema: &jsonschema.Schema{Examples: []interface{}{example}},
	}}
}

func typeTag(types []quad.IRI) interface{} {
	var names []string
	for _, t := range types {
		if string(t) == owlvoc.NamedIndividual {
			continue
		}
		names = append(names, owl.LocalName(t))
	}
	switch len(names) {
	case 0:
		return nil
	case 1:
		return names[0]
	}
	return names
}

func exampleValue(v quad.Value) interface{} {
	switch v := v.(type) {
	case quad.IRI:
		return owl.LocalName(v)
	case quad.BNode:
		return string(v)
	default:
		return quad.NativeOf(v)
	}
}
