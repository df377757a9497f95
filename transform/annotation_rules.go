package transform

import (
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/voc/rdfs"

	"github.com/ontojson/ontojson/jsonschema"
	"github.com/ontojson/ontojson/owl"
)

// ontologyMetadataRule stamps the document header from the ontology node:
// $id from the ontology IRI, title and description from its annotations,
// version from owl:versionInfo and an $comment listing imports.
type ontologyMetadataRule struct{}

func (*ontologyMetadataRule) ID() string                 { return RuleOntologyMetadata }
func (*ontologyMetadataRule) Handles(k ElementKind) bool { return k == KindOntology }

func (*ontologyMetadataRule) Apply(ctx *Context, el Element) []jsonschema.Fragment {
	m := el.Ontology
	s := &jsonschema.Schema{
		ID:      string(m.IRI),
		Version: m.VersionInfo,
	}
	label := quad.IRI(rdfs.Label).Full()
	comment := quad.IRI(rdfs.Comment).Full()
	for _, a := range m.Annotations {
		switch a.Property {
		case label:
			if s.Title == "" {
				s.Title = annotationText(a.Value)
			}
		case comment:
			if s.Description == "" {
				s.Description = annotationText(a.Value)
			}
		}
	}
	if s.Title == "" && m.IRI != "" {
		s.Title = owl.LocalName(m.IRI)
	}
	if len(m.Imports) != 0 {
		names := make([]string, 0, len(m.Imports))
		for _, imp := range m.Imports {
			names = append(names, string(imp))
		}
		s.Comment = "Imports: " + strings.Join(names, ", ")
	}
	return []jsonschema.Fragment{{Schema: s}}
}

func annotationText(v quad.Value) string {
	switch v := v.(type) {
	case quad.String:
		return string(v)
	case quad.LangString:
		return string(v.Value)
	case quad.TypedString:
		return string(v.Value)
	}
	return ""
}

// labelsToTitlesRule lifts rdfs:label into schema titles for classes and
// for properties on each of their domain classes. The configured language
// picks among localized labels.
type labelsToTitlesRule struct{}

func (*labelsToTitlesRule) ID() string { return RuleLabelsToTitles }
func (*labelsToTitlesRule) Handles(k ElementKind) bool {
	return k == KindClass || k == KindObjectProperty || k == KindDatatypeProperty
}

func (*labelsToTitlesRule) Apply(ctx *Context, el Element) []jsonschema.Fragment {
	switch el.Kind {
	case KindClass:
		if t := ctx.Text(el.Class.Label); t != "" {
			return []jsonschema.Fragment{{
				Class:  owl.LocalName(el.Class.IRI),
				Schema: &jsonschema.Schema{Title: t},
			}}
		}
	case KindObjectProperty:
		return propertyAnnotation(ctx, &el.ObjectProperty.Property, el.ObjectProperty.Label, true)
	case KindDatatypeProperty:
		return propertyAnnotation(ctx, &el.DatatypeProperty.Property, el.DatatypeProperty.Label, true)
	}
	return nil
}

// commentsToDescriptionsRule lifts rdfs:comment into schema descriptions,
// mirroring the labels rule.
type commentsToDescriptionsRule struct{}

func (*commentsToDescriptionsRule) ID() string { return RuleCommentsToDescriptions }
func (*commentsToDescriptionsRule) Handles(k ElementKind) bool {
	return k == KindClass || k == KindObjectProperty || k == KindDatatypeProperty
}

func (*commentsToDescriptionsRule) Apply(ctx *Context, el Element) []jsonschema.Fragment {
	switch el.Kind {
	case KindClass:
		if t := ctx.Text(el.Class.Comment); t != "" {
			return []jsonschema.Fragment{{
				Class:  owl.LocalName(el.Class.IRI),
				Schema: &jsonschema.Schema{Description: t},
			}}
		}
	case KindObjectProperty:
		return propertyAnnotation(ctx, &el.ObjectProperty.Property, el.ObjectProperty.Comment, false)
	case KindDatatypeProperty:
		return propertyAnnotation(ctx, &el.DatatypeProperty.Property, el.DatatypeProperty.Comment, false)
	}
	return nil
}

func propertyAnnotation(ctx *Context, p *owl.Property, text owl.Text, asTitle bool) []jsonschema.Fragment {
	t := ctx.Text(text)
	if t == "" || len(p.Domain) == 0 {
		return nil
	}
	s := &jsonschema.Schema{}
	if asTitle {
		s.Title = t
	} else {
		s.Description = t
	}
	name := owl.LocalName(p.IRI)
	frags := make([]jsonschema.Fragment, 0, len(p.Domain))
	for _, d := range p.Domain {
		frags = append(frags, jsonschema.Fragment{
			Class:    owl.LocalName(d),
			Property: name,
			Schema:   s,
		})
	}
	return frags
}
