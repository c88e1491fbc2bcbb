package annotate

import (
	"context"
	"regexp"

	"github.com/biofinder/semsearch/pkg/semsearch/annotation"
)

// CueRule decides an ambiguous entity in favor of Type when the query text,
// with the entity occurrence abstracted to its type placeholder, matches
// Pattern. Rules are checked in order and the first match wins.
type CueRule struct {
	Type    annotation.NamedEntityType
	Pattern *regexp.Regexp
}

// DefaultCueRules returns the built-in context cues. "X in Y" marks Y as a
// location ("Fagus in Paris"), which overrides the type priority order.
func DefaultCueRules() []CueRule {
	return []CueRule{
		{
			Type:    annotation.Location,
			Pattern: regexp.MustCompile(`.* in .*?\{location\}`),
		},
	}
}

// Disambiguator resolves ambiguous entity annotations. An annotation with
// alternative readings is decided by context cues first and by the type
// priority as fallback; the chosen reading records whether a cue confirmed
// it (IsSafe) so downstream consumers can treat priority-only guesses
// differently.
type Disambiguator struct {
	rules []CueRule
}

// NewDisambiguator creates a disambiguator. Nil rules fall back to the
// default cue set.
func NewDisambiguator(rules []CueRule) *Disambiguator {
	if rules == nil {
		rules = DefaultCueRules()
	}
	return &Disambiguator{rules: rules}
}

// Name implements Engine.
func (d *Disambiguator) Name() string { return DisambiguatorName }

// Requires implements Engine.
func (d *Disambiguator) Requires() []string {
	return []string{RecognizerName, LiteralsName}
}

// Annotate implements Engine. Every named entity occurrence is decided
// independently, so two occurrences of the same surface form may resolve to
// different types.
func (d *Disambiguator) Annotate(_ context.Context, text string, result *annotation.Result) error {
	decided := make([]*annotation.Annotation, len(result.NamedEntities))
	for i, ann := range result.NamedEntities {
		choice := d.decide(text, ann)
		decided[i] = choice
		result.Disambiguated[ann.ID()] = choice
	}
	result.NamedEntities = decided
	return nil
}

// decide returns the resolved reading of ann as a fresh annotation without
// leftover alternatives.
func (d *Disambiguator) decide(text string, ann *annotation.Annotation) *annotation.Annotation {
	if len(ann.Ambiguities) == 0 {
		choice := ann.Clone()
		choice.IsSafe = true
		return choice
	}

	for _, rule := range d.rules {
		alternative := readingOfType(ann, rule.Type)
		if alternative == nil {
			continue
		}
		probe := annotation.ReplaceSpan(text, "{"+rule.Type.Placeholder()+"}", ann.Begin, ann.End)
		if rule.Pattern.MatchString(probe) {
			choice := alternative.Clone()
			choice.Ambiguities = nil
			choice.IsSafe = true
			return choice
		}
	}

	// No cue fired; the recognizer already put the highest-priority type
	// first, but the guess stays marked unsafe.
	choice := ann.Clone()
	choice.Ambiguities = nil
	choice.IsSafe = false
	return choice
}

// readingOfType returns the reading of ann with the given entity type, or
// nil when the type is not among its candidates.
func readingOfType(ann *annotation.Annotation, entityType annotation.NamedEntityType) *annotation.Annotation {
	if ann.NamedEntityType == entityType {
		return ann
	}
	for _, alternative := range ann.Ambiguities {
		if alternative.NamedEntityType == entityType {
			return alternative
		}
	}
	return nil
}
