package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// Rule identifiers accepted in configuration files.
const (
	RuleOntologyMetadata       = "ontology_metadata"
	RuleClassToObject          = "class_to_object"
	RuleClassHierarchy         = "class_hierarchy"
	RuleClassRestrictions      = "class_restrictions"
	RuleEnumerationToEnum      = "enumeration_to_enum"
	RuleUnionToAnyOf           = "union_to_anyOf"
	RuleIntersectionToAllOf    = "intersection_to_allOf"
	RuleComplementToNot        = "complement_to_not"
	RuleEquivalentClasses      = "equivalent_classes"
	RuleDisjointClasses        = "disjoint_classes"
	RuleObjectProperty         = "object_property"
	RuleDatatypeProperty       = "datatype_property"
	RuleLabelsToTitles         = "labels_to_titles"
	RuleCommentsToDescriptions = "comments_to_descriptions"
	RuleIndividualsToExamples  = "individuals_to_examples"
)

// RuleConfig is the common per-rule switch.
type RuleConfig struct {
	Enabled bool `mapstructure:"enabled" json:"enabled" yaml:"enabled"`
}

// ObjectPropertyConfig configures the object property rule.
type ObjectPropertyConfig struct {
	RuleConfig `mapstructure:",squash" yaml:",inline"`
	// IncludeGlobalProperties emits properties with no resolvable domain
	// into a _global definition instead of dropping them.
	IncludeGlobalProperties bool `mapstructure:"include_global_properties" json:"include_global_properties" yaml:"include_global_properties"`
}

// EnumerationConfig configures the enumeration rule.
type EnumerationConfig struct {
	RuleConfig `mapstructure:",squash" yaml:",inline"`
	// UseLabels renders enum members by their label when one exists,
	// falling back to the IRI local name.
	UseLabels bool `mapstructure:"use_labels" json:"use_labels" yaml:"use_labels"`
}

// IndividualsConfig configures the individuals-to-examples rule.
type IndividualsConfig struct {
	RuleConfig  `mapstructure:",squash" yaml:",inline"`
	IncludeType bool `mapstructure:"include_type" json:"include_type" yaml:"include_type"`
	IncludeID   bool `mapstructure:"include_id" json:"include_id" yaml:"include_id"`
}

// RulesConfig enumerates every known rule. Unknown rule identifiers in a
// configuration file are rejected at load time rather than silently
// ignored.
type RulesConfig struct {
	OntologyMetadata       RuleConfig           `mapstructure:"ontology_metadata" json:"ontology_metadata" yaml:"ontology_metadata"`
	ClassToObject          RuleConfig           `mapstructure:"class_to_object" json:"class_to_object" yaml:"class_to_object"`
	ClassHierarchy         RuleConfig           `mapstructure:"class_hierarchy" json:"class_hierarchy" yaml:"class_hierarchy"`
	ClassRestrictions      RuleConfig           `mapstructure:"class_restrictions" json:"class_restrictions" yaml:"class_restrictions"`
	EnumerationToEnum      EnumerationConfig    `mapstructure:"enumeration_to_enum" json:"enumeration_to_enum" yaml:"enumeration_to_enum"`
	UnionToAnyOf           RuleConfig           `mapstructure:"union_to_anyOf" json:"union_to_anyOf" yaml:"union_to_anyOf"`
	IntersectionToAllOf    RuleConfig           `mapstructure:"intersection_to_allOf" json:"intersection_to_allOf" yaml:"intersection_to_allOf"`
	ComplementToNot        RuleConfig           `mapstructure:"complement_to_not" json:"complement_to_not" yaml:"complement_to_not"`
	EquivalentClasses      RuleConfig           `mapstructure:"equivalent_classes" json:"equivalent_classes" yaml:"equivalent_classes"`
	DisjointClasses        RuleConfig           `mapstructure:"disjoint_classes" json:"disjoint_classes" yaml:"disjoint_classes"`
	ObjectProperty         ObjectPropertyConfig `mapstructure:"object_property" json:"object_property" yaml:"object_property"`
	DatatypeProperty       RuleConfig           `mapstructure:"datatype_property" json:"datatype_property" yaml:"datatype_property"`
	LabelsToTitles         RuleConfig           `mapstructure:"labels_to_titles" json:"labels_to_titles" yaml:"labels_to_titles"`
	CommentsToDescriptions RuleConfig           `mapstructure:"comments_to_descriptions" json:"comments_to_descriptions" yaml:"comments_to_descriptions"`
	IndividualsToExamples  IndividualsConfig    `mapstructure:"individuals_to_examples" json:"individuals_to_examples" yaml:"individuals_to_examples"`
}

// Config is the full transformation configuration.
type Config struct {
	// Language selects which localized label and comment is used.
	Language string `mapstructure:"language" json:"language" yaml:"language"`
	// Indent is the output indentation width in spaces.
	Indent int `mapstructure:"indent" json:"indent" yaml:"indent"`
	// Format selects json or yaml output.
	Format string `mapstructure:"format" json:"format" yaml:"format"`

	Rules RulesConfig `mapstructure:"rules" json:"rules" yaml:"rules"`
}

// DefaultConfig returns the standard configuration: every rule enabled
// except disjoint_classes and individuals_to_examples, English labels,
// two-space JSON output.
func DefaultConfig() *Config {
	on := RuleConfig{Enabled: true}
	return &Config{
		Language: "en",
		Indent:   2,
		Format:   "json",
		Rules: RulesConfig{
			OntologyMetadata:       on,
			ClassToObject:          on,
			ClassHierarchy:         on,
			ClassRestrictions:      on,
			EnumerationToEnum:      EnumerationConfig{RuleConfig: on, UseLabels: true},
			UnionToAnyOf:           on,
			IntersectionToAllOf:    on,
			ComplementToNot:        on,
			EquivalentClasses:      on,
			ObjectProperty:         ObjectPropertyConfig{RuleConfig: on},
			DatatypeProperty:       on,
			LabelsToTitles:         on,
			CommentsToDescriptions: on,
			IndividualsToExamples:  IndividualsConfig{IncludeType: true},
		},
	}
}

func (rc *RulesConfig) byID() map[string]*RuleConfig {
	return map[string]*RuleConfig{
		RuleOntologyMetadata:       &rc.OntologyMetadata,
		RuleClassToObject:          &rc.ClassToObject,
		RuleClassHierarchy:         &rc.ClassHierarchy,
		RuleClassRestrictions:      &rc.ClassRestrictions,
		RuleEnumerationToEnum:      &rc.EnumerationToEnum.RuleConfig,
		RuleUnionToAnyOf:           &rc.UnionToAnyOf,
		RuleIntersectionToAllOf:    &rc.IntersectionToAllOf,
		RuleComplementToNot:        &rc.ComplementToNot,
		RuleEquivalentClasses:      &rc.EquivalentClasses,
		RuleDisjointClasses:        &rc.DisjointClasses,
		RuleObjectProperty:         &rc.ObjectProperty.RuleConfig,
		RuleDatatypeProperty:       &rc.DatatypeProperty,
		RuleLabelsToTitles:         &rc.LabelsToTitles,
		RuleCommentsToDescriptions: &rc.CommentsToDescriptions,
		RuleIndividualsToExamples:  &rc.IndividualsToExamples.RuleConfig,
	}
}

// KnownRules returns every accepted rule identifier, sorted.
func KnownRules() []string {
	ids := make([]string, 0, 15)
	for id := range (&RulesConfig{}).byID() {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Enabled reports whether the identified rule is switched on. Unknown
// identifiers are off; they cannot occur via LoadConfig.
func (c *Config) Enabled(id string) bool {
	if rc, ok := c.Rules.byID()[id]; ok {
		return rc.Enabled
	}
	return false
}

// SetEnabled flips one rule. It returns an error for unknown identifiers.
func (c *Config) SetEnabled(id string, enabled bool) error {
	rc, ok := c.Rules.byID()[id]
	if !ok {
		return fmt.Errorf("unknown rule identifier %q", id)
	}
	rc.Enabled = enabled
	return nil
}

// LoadConfig reads a JSON or YAML configuration file over the defaults.
// Rule identifiers not in KnownRules are an error.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}
	known := (&RulesConfig{}).byID()
	for id := range v.GetStringMap("rules") {
		if !knownID(known, id) {
			return nil, fmt.Errorf("config %q: unknown rule identifier %q", path, id)
		}
	}
	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	return cfg, nil
}

// viper lowercases configuration keys, so identifiers compare folded.
func knownID(known map[string]*RuleConfig, id string) bool {
	for k := range known {
		if strings.EqualFold(k, id) {
			return true
		}
	}
	return false
}
