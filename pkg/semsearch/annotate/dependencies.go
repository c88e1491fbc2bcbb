package annotate

import (
	"context"
	"regexp"

	"github.com/biofinder/semsearch/pkg/semsearch/annotation"
)

// DependencyPattern matches one syntactic shape of the abstracted query
// text. The regex captures word ids into named groups; the group names
// become statement roles ("subject", "predicate", "object", "taxon",
// "location").
//
// Annotation markers keep their ambiguity in the placeholder, so patterns
// match the type leniently with "{.*?type<id>}" rather than "{type<id>}".
type DependencyPattern struct {
	Name         string
	Regex        *regexp.Regexp
	Relationship annotation.RelationshipType
}

// DefaultPatterns returns the built-in dependency patterns in matching
// order. Specific shapes come before general ones; the linker stops at the
// first pattern that matches.
func DefaultPatterns() []DependencyPattern {
	return []DependencyPattern{
		{
			// "Pflanzen mit roten Blüten" / "plants with red flowers"
			Name: "taxon-property",
			Regex: regexp.MustCompile(
				`\{.*?(?:taxon|plant|animal)<(?P<subject>.+?)>\} +(?:mit<.+?> +|with<.+?> +)?` +
					`\{.*?miscellaneous<(?P<object>.+?)>\} +` +
					`\{.*?miscellaneous<(?P<predicate>.+?)>\}`),
		},
		{
			// "Pflanzen mit 3 Kelchblättern" / "plants with 3 petals"
			Name: "taxon-numeric-property",
			Regex: regexp.MustCompile(
				`\{.*?(?:taxon|plant|animal)<(?P<subject>.+?)>\} +(?:mit<.+?> +|with<.+?> +)?` +
					`[0-9]+<(?P<object>.+?)> +` +
					`\{.*?miscellaneous<(?P<predicate>.+?)>\}`),
		},
		{
			Name: "and-conjunction",
			Regex: regexp.MustCompile(
				`\S+<(?P<subject>.+?)>\}? (?:und<.+?>|and<.+?>) \S+<(?P<object>.+?)>`),
			Relationship: annotation.RelationshipAnd,
		},
		{
			Name: "or-conjunction",
			Regex: regexp.MustCompile(
				`\S+<(?P<subject>.+?)>\}? (?:oder<.+?>|or<.+?>) \S+<(?P<object>.+?)>`),
			Relationship: annotation.RelationshipOr,
		},
		{
			// "Fagus in Deutschland", with or without the connective
			Name: "taxon-location",
			Regex: regexp.MustCompile(
				`\{.*?(?:taxon|plant|animal)<(?P<taxon>.*?)>\} +(?:in<.+?> +)?` +
					`\{.*?location<(?P<location>.*?)>\}`),
		},
		{
			// "Fagus", "Fagus sylvatica"
			Name:  "only-taxon",
			Regex: regexp.MustCompile(`\{.*?(?:taxon|plant|animal)<(?P<taxon>.*?)>\}`),
		},
	}
}

// DependencyLinker infers relations between annotations and literals by
// matching regex patterns against the abstracted query text.
type DependencyLinker struct {
	patterns []DependencyPattern
}

// NewDependencyLinker creates a linker. Nil patterns fall back to the
// default set.
func NewDependencyLinker(patterns []DependencyPattern) *DependencyLinker {
	if patterns == nil {
		patterns = DefaultPatterns()
	}
	return &DependencyLinker{patterns: patterns}
}

// Name implements Engine.
func (d *DependencyLinker) Name() string { return DependenciesName }

// Requires implements Engine.
func (d *DependencyLinker) Requires() []string {
	return []string{DisambiguatorName, LiteralsName}
}

// Annotate implements Engine. Patterns are tried in order and the first
// match wins, even when a later pattern would also apply.
func (d *DependencyLinker) Annotate(_ context.Context, text string, result *annotation.Result) error {
	abstracted := annotation.AbstractedText(text, result.NamedEntities, result.Literals)

	for _, pattern := range d.patterns {
		match := pattern.Regex.FindStringSubmatch(abstracted)
		if match == nil {
			continue
		}

		roles := make(map[string]string)
		for i, name := range pattern.Regex.SubexpNames() {
			if name == "" || match[i] == "" {
				continue
			}
			roles[name] = match[i]
		}

		result.Relations = []annotation.Relation{{
			Roles:        roles,
			Relationship: pattern.Relationship,
		}}
		return nil
	}
	return nil
}
