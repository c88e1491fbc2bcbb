package annotate

import (
	"context"
	"strings"

	"github.com/biofinder/semsearch/pkg/semsearch/annotation"
)

// LanguageDetector guesses the query language from high-frequency marker
// words. Only languages with a marker set are considered; when no marker
// matches, the result language is left untouched and downstream engines
// fall back to their default.
type LanguageDetector struct {
	markers map[string]map[string]struct{}
}

// NewLanguageDetector creates a detector for German and English.
func NewLanguageDetector() *LanguageDetector {
	return &LanguageDetector{markers: map[string]map[string]struct{}{
		"de": wordSet("der", "die", "das", "ein", "eine", "mit", "und",
			"oder", "wo", "finde", "ich", "welche", "im", "von"),
		"en": wordSet("the", "a", "an", "with", "and", "or", "where",
			"find", "which", "what", "of", "are", "is"),
	}}
}

// Name implements Engine.
func (d *LanguageDetector) Name() string { return LanguageName }

// Requires implements Engine.
func (d *LanguageDetector) Requires() []string { return nil }

// Annotate implements Engine.
func (d *LanguageDetector) Annotate(_ context.Context, text string, result *annotation.Result) error {
	scores := make(map[string]int, len(d.markers))
	for _, field := range strings.Fields(strings.ToLower(text)) {
		word := strings.Trim(field, "!?;,.")
		for language, markers := range d.markers {
			if _, ok := markers[word]; ok {
				scores[language]++
			}
		}
	}

	best, bestScore := "", 0
	tied := false
	for language, score := range scores {
		switch {
		case score > bestScore:
			best, bestScore, tied = language, score, false
		case score == bestScore && score > 0:
			tied = true
		}
	}

	if best != "" && !tied {
		result.Language = best
	}
	return nil
}

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
